/*
scheduler.go - Periodic staffing snapshot scheduler

PURPOSE:
  Periodically computes today's staffing metrics, records them as a
  snapshot, and publishes them to the Prometheus gauges so dashboards and
  alerts see the current day without anyone opening the UI.

DESIGN:
  - Runs a background goroutine with configurable interval
  - Takes one snapshot immediately on start
  - Recording the same date again replaces the earlier snapshot
  - Errors are logged and counted, never fatal

CONFIGURATION:
  - Interval: How often to snapshot (default: 15 minutes)
  - Enabled: Whether scheduler is active (false when interval is zero)

USAGE:
  scheduler := NewSnapshotScheduler(service, logger)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - operations/service.go: Snapshot
  - metrics/metrics.go: Gauges
*/
package api

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jbrannon972/MITAPP-sub000/metrics"
	"github.com/jbrannon972/MITAPP-sub000/operations"
	"github.com/jbrannon972/MITAPP-sub000/roster"
)

// DefaultSnapshotInterval is used by NewSnapshotScheduler.
const DefaultSnapshotInterval = 15 * time.Minute

// SnapshotScheduler records staffing snapshots on a timer.
type SnapshotScheduler struct {
	Service  *operations.Service
	Logger   *zap.Logger
	Interval time.Duration
	Enabled  bool

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewSnapshotScheduler creates a new scheduler.
func NewSnapshotScheduler(svc *operations.Service, logger *zap.Logger) *SnapshotScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotScheduler{
		Service:  svc,
		Logger:   logger.Named("scheduler"),
		Interval: DefaultSnapshotInterval,
		Enabled:  true,
	}
}

// Start begins the scheduler. Calling Start on a running scheduler is a
// no-op.
func (s *SnapshotScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Enabled || s.Interval <= 0 {
		s.Logger.Info("disabled, not starting")
		return
	}
	if s.ticker != nil {
		return
	}

	s.ticker = time.NewTicker(s.Interval)
	s.stop = make(chan struct{})
	s.wg.Add(1)

	go s.run(s.ticker, s.stop)

	s.Logger.Info("started", zap.Duration("interval", s.Interval))
}

// Stop stops the scheduler and waits for an in-flight snapshot to finish.
func (s *SnapshotScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
		s.wg.Wait()
		s.ticker = nil
		s.Logger.Info("stopped")
	}
}

func (s *SnapshotScheduler) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer s.wg.Done()

	// Run immediately on start
	s.RunNow(context.Background())

	for {
		select {
		case <-ticker.C:
			s.RunNow(context.Background())
		case <-stop:
			return
		}
	}
}

// RunNow records today's snapshot and publishes the gauges.
func (s *SnapshotScheduler) RunNow(ctx context.Context) (operations.Snapshot, error) {
	today := s.Service.Today()

	snap, err := s.Service.Snapshot(ctx, today)
	if err != nil {
		metrics.SnapshotErrorsTotal.Inc()
		s.Logger.Error("snapshot failed", zap.String("date", roster.FormatDate(today)), zap.Error(err))
		return operations.Snapshot{}, err
	}
	metrics.PublishStaffing(snap.Metrics)

	if day, err := s.Service.ResolveDay(ctx, today); err == nil {
		metrics.PublishStatusCounts(statusCounts(day.Entries))
	}

	s.Logger.Debug("snapshot recorded",
		zap.String("date", roster.FormatDate(today)),
		zap.Int("techs_on_route", snap.Metrics.TechsOnRoute),
		zap.Int("potential_new_jobs", snap.Metrics.PotentialNewJobs),
	)
	return snap, nil
}
