// Package notify delivers domain notifications to external channels without
// blocking the code that raises them.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/domain"
	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultQueueSize  = 256
	DefaultMaxRetries = 5
)

type Sink interface {
	Name() string
	Send(ctx context.Context, n domain.Notification) error
}

type Dispatcher struct {
	logger     *slog.Logger
	sinks      []Sink
	queue      chan domain.Notification
	maxRetries uint64
	newBackOff func() backoff.BackOff

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

type Option func(*Dispatcher)

func WithQueueSize(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queue = make(chan domain.Notification, n)
		}
	}
}

func WithMaxRetries(n uint64) Option {
	return func(d *Dispatcher) { d.maxRetries = n }
}

func WithBackOff(fn func() backoff.BackOff) Option {
	return func(d *Dispatcher) { d.newBackOff = fn }
}

func NewDispatcher(logger *slog.Logger, sinks []Sink, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		logger:     logger,
		sinks:      sinks,
		queue:      make(chan domain.Notification, DefaultQueueSize),
		maxRetries: DefaultMaxRetries,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxElapsedTime = 30 * time.Second
			return b
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start runs the delivery worker until ctx is done or Close drains the queue.
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case n, ok := <-d.queue:
				if !ok {
					return
				}
				d.deliver(ctx, n)
			}
		}
	}()
}

// Notify enqueues n. A full queue drops the notification with a warning.
func (d *Dispatcher) Notify(ctx context.Context, n domain.Notification) {
	if n.At.IsZero() {
		n.At = time.Now()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.logger.WarnContext(ctx, "notification dropped, dispatcher closed", "kind", string(n.Kind))
		return
	}

	select {
	case d.queue <- n:
	default:
		d.logger.WarnContext(ctx, "notification dropped, queue full", "kind", string(n.Kind), "subject", n.Subject)
	}
}

// Close stops accepting notifications and waits for queued ones to be sent.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, n domain.Notification) {
	for _, sink := range d.sinks {
		policy := backoff.WithContext(backoff.WithMaxRetries(d.newBackOff(), d.maxRetries), ctx)
		attempts := 0
		err := backoff.Retry(func() error {
			attempts++
			return sink.Send(ctx, n)
		}, policy)
		if err != nil {
			d.logger.ErrorContext(ctx, "notification delivery failed",
				"sink", sink.Name(),
				"kind", string(n.Kind),
				"attempts", attempts,
				"err", err.Error(),
			)
		}
	}
}
