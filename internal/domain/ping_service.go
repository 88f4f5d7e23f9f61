package domain

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Flarenzy/ipam-monitor/internal/probe"
)

const (
	DefaultHistoryLimit     = 100
	MaxHistoryLimit         = 1000
	DefaultHistoryRetention = 30 * 24 * time.Hour
	DefaultConflictLookback = 24 * time.Hour
)

type pingService struct {
	logger      *slog.Logger
	subnets     SubnetRepository
	ips         IPRepository
	history     PingHistoryRepository
	devices     DeviceRepository
	prober      Prober
	detector    *ConflictDetector
	scans       *ScanCoordinator
	notifier    Notifier
	observer    ProbeObserver
	retention   time.Duration
	window      time.Duration
	concurrency int
	now         func() time.Time
}

type PingOption func(*pingService)

func WithNotifier(n Notifier) PingOption {
	return func(s *pingService) { s.notifier = n }
}

func WithObserver(o ProbeObserver) PingOption {
	return func(s *pingService) { s.observer = o }
}

func WithConflictWindow(d time.Duration) PingOption {
	return func(s *pingService) { s.window = d }
}

func WithRetention(d time.Duration) PingOption {
	return func(s *pingService) {
		if d > 0 {
			s.retention = d
		}
	}
}

// WithScanConcurrency sets the batch size used by full scans.
func WithScanConcurrency(n int) PingOption {
	return func(s *pingService) { s.concurrency = probe.ClampConcurrency(n) }
}

func WithScanCoordinator(c *ScanCoordinator) PingOption {
	return func(s *pingService) { s.scans = c }
}

func WithPingClock(now func() time.Time) PingOption {
	return func(s *pingService) { s.now = now }
}

func NewPingService(
	logger *slog.Logger,
	subnets SubnetRepository,
	ips IPRepository,
	history PingHistoryRepository,
	devices DeviceRepository,
	prober Prober,
	opts ...PingOption,
) PingService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &pingService{
		logger:      logger,
		subnets:     subnets,
		ips:         ips,
		history:     history,
		devices:     devices,
		prober:      prober,
		retention:   DefaultHistoryRetention,
		window:      DefaultConflictWindow,
		concurrency: probe.DefaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scans == nil {
		s.scans = NewScanCoordinator()
	}
	s.detector = NewConflictDetector(logger, history, s.window)
	return s
}

func (s *pingService) PingIP(ctx context.Context, id IPAddressID) (PingEntry, error) {
	rec, err := s.ips.FindByID(ctx, id)
	if err != nil {
		return PingEntry{}, err
	}

	res := s.prober.Probe(ctx, rec.IP.String())
	return s.record(ctx, rec, res)
}

func (s *pingService) PingSubnet(ctx context.Context, subnetID int64, concurrency int) (SegmentPingReport, error) {
	entries, results, err := s.pingSubnet(ctx, subnetID, probe.ClampConcurrency(concurrency))
	if err != nil {
		return SegmentPingReport{}, err
	}
	return SegmentPingReport{
		SubnetID: subnetID,
		Entries:  entries,
		Summary:  probe.Summarize(results),
	}, nil
}

func (s *pingService) pingSubnet(ctx context.Context, subnetID int64, concurrency int) ([]PingEntry, map[string]probe.Result, error) {
	if _, err := s.subnets.FindByID(ctx, subnetID); err != nil {
		return nil, nil, err
	}
	records, err := s.ips.ListBySubnetID(ctx, subnetID, IPFilter{SortByIP: true})
	if err != nil {
		return nil, nil, err
	}
	SortByIP(records)

	addrs := make([]string, 0, len(records))
	for _, rec := range records {
		addrs = append(addrs, rec.IP.String())
	}
	results := s.prober.ProbeAll(ctx, addrs, concurrency)

	entries := make([]PingEntry, 0, len(records))
	for _, rec := range records {
		res, ok := results[rec.IP.String()]
		if !ok {
			continue
		}
		entry, err := s.record(ctx, rec, res)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, entry)
	}
	return entries, results, nil
}

// record turns a probe result into a stored history entry and applies its
// side effects: last-seen and MAC on the record, the linked device's MAC,
// conflict notification and metrics.
func (s *pingService) record(ctx context.Context, rec IPAddress, res probe.Result) (PingEntry, error) {
	checkedAt := res.At
	if checkedAt.IsZero() {
		checkedAt = s.now()
	}

	entry := PingEntry{
		IPID:      rec.ID,
		IP:        rec.IP,
		Status:    res.Status,
		Method:    res.Method,
		Latency:   res.Latency,
		MAC:       res.MAC,
		Error:     res.Error,
		CheckedAt: checkedAt,
	}
	s.detector.Annotate(ctx, &entry)

	saved, err := s.history.Create(ctx, entry)
	if err != nil {
		return PingEntry{}, err
	}

	if s.observer != nil {
		s.observer.ObserveProbe(res)
		if saved.HasConflict {
			s.observer.ObserveConflict()
		}
	}

	if res.Up() {
		if err := s.ips.RecordObservation(ctx, rec.ID, saved.MAC, checkedAt); err != nil {
			s.logger.WarnContext(ctx, "record observation failed", "ip", rec.IP.String(), "err", err.Error())
		}
	}
	if rec.DeviceID != nil && s.devices != nil && saved.MAC != "" && !sameMAC(saved.MAC, rec.MAC) {
		if err := s.devices.UpdateMAC(ctx, *rec.DeviceID, saved.MAC); err != nil {
			s.logger.WarnContext(ctx, "device mac update failed", "device_id", string(*rec.DeviceID), "err", err.Error())
		}
	}
	if saved.HasConflict && s.notifier != nil {
		s.notifier.Notify(ctx, Notification{
			Kind:    NotifyConflictDetected,
			Subject: fmt.Sprintf("MAC conflict on %s", rec.IP),
			Message: fmt.Sprintf("%s answered from %s, previously %s", rec.IP, saved.MAC, saved.PreviousMAC),
			Fields: map[string]string{
				"ip":           rec.IP.String(),
				"mac":          saved.MAC,
				"previous_mac": saved.PreviousMAC,
			},
			At: checkedAt,
		})
	}

	return saved, nil
}

func (s *pingService) History(ctx context.Context, id IPAddressID, limit int) (PingHistory, error) {
	rec, err := s.ips.FindByID(ctx, id)
	if err != nil {
		return PingHistory{}, err
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)

	entries, err := s.history.ListByIP(ctx, id, limit)
	if err != nil {
		return PingHistory{}, err
	}
	return PingHistory{IP: rec, Entries: entries, Stats: ComputeStats(entries)}, nil
}

// ComputeStats derives uptime from entries: online and blocked both count as
// up. AvgLatencyMs is nil when no entry carries a latency.
func ComputeStats(entries []PingEntry) PingStats {
	stats := PingStats{Total: len(entries)}

	var sum time.Duration
	var n int
	for _, e := range entries {
		if e.Status == probe.StatusOnline || e.Status == probe.StatusBlocked {
			stats.Up++
		}
		if e.Latency != nil {
			sum += *e.Latency
			n++
		}
	}
	if stats.Total > 0 {
		stats.UptimePercent = float64(stats.Up) * 100 / float64(stats.Total)
	}
	if n > 0 {
		avg := float64(sum) / float64(n) / float64(time.Millisecond)
		stats.AvgLatencyMs = &avg
	}
	return stats
}

func (s *pingService) Conflicts(ctx context.Context, window time.Duration) ([]AddressConflicts, error) {
	if window <= 0 {
		window = DefaultConflictLookback
	}

	entries, err := s.history.ListConflicts(ctx, s.now().Add(-window))
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	out := make([]AddressConflicts, 0)
	for _, e := range entries {
		key := e.IP.String()
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, AddressConflicts{IP: e.IP})
		}
		out[i].Entries = append(out[i].Entries, e)
	}
	return out, nil
}

// StartScan probes every subnet in the background. The scan keeps running
// after the caller's context is cancelled.
func (s *pingService) StartScan(ctx context.Context) error {
	return s.scans.Start(context.WithoutCancel(ctx), s.scanAll)
}

func (s *pingService) scanAll(ctx context.Context) (probe.Summary, error) {
	started := s.now()

	summary, err := s.scanSubnets(ctx)

	state := ScanIdle
	if err != nil {
		state = ScanError
		s.logger.ErrorContext(ctx, "scan failed", "err", err.Error())
	}
	if s.observer != nil {
		s.observer.ObserveScan(state, s.now().Sub(started))
	}
	if s.notifier != nil {
		n := Notification{
			Kind:    NotifyScanComplete,
			Subject: "network scan finished",
			Message: fmt.Sprintf("%d addresses probed, %d online, %d blocked, %d offline", summary.Total, summary.Online, summary.Blocked, summary.Offline),
			Fields: map[string]string{
				"state": string(state),
				"total": fmt.Sprint(summary.Total),
			},
			At: s.now(),
		}
		if err != nil {
			n.Fields["error"] = err.Error()
		}
		s.notifier.Notify(ctx, n)
	}
	return summary, err
}

func (s *pingService) scanSubnets(ctx context.Context) (probe.Summary, error) {
	subnets, err := s.subnets.List(ctx)
	if err != nil {
		return probe.Summary{}, err
	}

	all := make(map[string]probe.Result)
	for _, subnet := range subnets {
		if err := ctx.Err(); err != nil {
			return probe.Summarize(all), err
		}
		_, results, err := s.pingSubnet(ctx, subnet.ID, s.concurrency)
		if err != nil {
			return probe.Summarize(all), fmt.Errorf("scan subnet %d: %w", subnet.ID, err)
		}
		for addr, res := range results {
			all[addr] = res
		}
	}
	return probe.Summarize(all), nil
}

func (s *pingService) ScanStatus() ScanStatus {
	return s.scans.Status()
}

func (s *pingService) PruneHistory(ctx context.Context, now time.Time) (int64, error) {
	return s.history.DeleteOlderThan(ctx, now.Add(-s.retention))
}
