package probe

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultConcurrency = 16
	MaxConcurrency     = 64
)

// Single probes one address.
type Single interface {
	Probe(ctx context.Context, addr string) Result
}

// Batch runs a Single over many addresses in sequential chunks. A chunk of
// at most concurrency probes runs in parallel and must finish completely
// before the next chunk starts.
type Batch struct {
	probe   Single
	onChunk func(size int)
}

type BatchOption func(*Batch)

// WithChunkHook is called with the size of each chunk before it starts.
func WithChunkHook(fn func(size int)) BatchOption {
	return func(b *Batch) { b.onChunk = fn }
}

func NewBatch(p Single, opts ...BatchOption) *Batch {
	b := &Batch{probe: p}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Batch) Probe(ctx context.Context, addr string) Result {
	return b.probe.Probe(ctx, addr)
}

// ProbeAll returns one result per distinct address. Duplicate inputs
// collapse to whichever result is stored last.
func (b *Batch) ProbeAll(ctx context.Context, addrs []string, concurrency int) map[string]Result {
	concurrency = ClampConcurrency(concurrency)
	results := make(map[string]Result, len(addrs))
	var mu sync.Mutex

	for start := 0; start < len(addrs); start += concurrency {
		end := min(start+concurrency, len(addrs))
		chunk := addrs[start:end]
		if b.onChunk != nil {
			b.onChunk(len(chunk))
		}

		var g errgroup.Group
		for _, addr := range chunk {
			g.Go(func() error {
				r := b.probe.Probe(ctx, addr)
				mu.Lock()
				results[addr] = r
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()
	}

	return results
}

func ClampConcurrency(n int) int {
	if n <= 0 {
		return DefaultConcurrency
	}
	if n > MaxConcurrency {
		return MaxConcurrency
	}
	return n
}
