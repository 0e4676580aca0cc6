/*
Package operations wires the pure resolution core to its gateways.

PURPOSE:
  schedule and staffing compute answers from values they are handed. This
  package fetches those values (roster, month document, stats, config),
  calls the core, and writes the results of the one mutating operation, the
  single-day save.

FLOW:
  ResolveDay:  roster + month doc -> active people -> Resolver.ResolveDay
  Staffing:    ResolveDay + config + stats -> Aggregator.Aggregate
  SaveDay:     roster + month doc + proposals -> BuildDayUpdate -> SaveMonth

CACHING:
  Resolved days are kept in an LRU keyed by calendar date. Any write through
  the service (day save, person save, person end) purges the whole cache, and
  a generation counter stops a resolve that raced a write from repopulating
  it with stale data. Writes that bypass the service are not seen until the
  entry is evicted.

SEE ALSO:
  - store.go:  Gateway interfaces
  - errors.go: Sentinel errors
*/
package operations

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/jbrannon972/MITAPP-sub000/metrics"
	"github.com/jbrannon972/MITAPP-sub000/roster"
	"github.com/jbrannon972/MITAPP-sub000/schedule"
	"github.com/jbrannon972/MITAPP-sub000/staffing"
)

// DefaultCacheSize is used when Options.CacheSize is not positive.
const DefaultCacheSize = 128

// Options configures a Service. The zero value is usable.
type Options struct {
	Weeks      schedule.WeekNumberer
	Forecaster staffing.Forecaster

	// DefaultConfig applies to months with no stored staffing config.
	DefaultConfig staffing.Config

	CacheSize int
	Logger    *zap.Logger
}

// Service is the entry point for every read and write the API performs.
type Service struct {
	store      Store
	resolver   *schedule.Resolver
	aggregator *staffing.Aggregator
	defaults   staffing.Config
	logger     *zap.Logger

	cache      *lru.Cache[string, schedule.DayResult]
	mu         sync.Mutex // guards generation; serializes writes
	generation uint64

	now func() time.Time
}

// NewService creates a service over store.
func NewService(store Store, opts Options) (*Service, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, schedule.DayResult](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create day cache: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		store:      store,
		resolver:   schedule.NewResolver(opts.Weeks),
		aggregator: staffing.NewAggregator(opts.Forecaster),
		defaults:   opts.DefaultConfig,
		logger:     logger,
		cache:      cache,
		now:        time.Now,
	}, nil
}

// Today returns the current calendar day.
func (s *Service) Today() time.Time {
	return roster.Day(s.now().UTC())
}

// =============================================================================
// RESOLUTION
// =============================================================================

// ResolveDay resolves everyone on the roster for date. People whose end date
// is on or before date are excluded.
func (s *Service) ResolveDay(ctx context.Context, date time.Time) (schedule.DayResult, error) {
	date = roster.Day(date)
	key := roster.FormatDate(date)

	if cached, ok := s.cache.Get(key); ok {
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return cloneDay(cached), nil
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	start := time.Now()
	gen := s.currentGeneration()

	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return schedule.DayResult{}, fmt.Errorf("failed to load roster: %w", err)
	}
	doc, err := s.store.LoadMonth(ctx, date.Year(), date.Month())
	if err != nil {
		return schedule.DayResult{}, fmt.Errorf("failed to load month %d-%02d: %w", date.Year(), date.Month(), err)
	}

	result := s.resolver.ResolveDay(date, doc, roster.ActiveOn(people, date))
	metrics.ResolveDurationSeconds.Observe(time.Since(start).Seconds())

	s.mu.Lock()
	if s.generation == gen {
		s.cache.Add(key, cloneDay(result))
	}
	s.mu.Unlock()

	return result, nil
}

// ResolveMonth resolves every calendar day of the month.
func (s *Service) ResolveMonth(ctx context.Context, year int, month time.Month) ([]schedule.DayResult, error) {
	if err := validateMonth(year, month); err != nil {
		return nil, err
	}

	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	doc, err := s.store.LoadMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load month %d-%02d: %w", year, month, err)
	}

	return s.resolver.ResolveMonth(year, month, doc, people), nil
}

// Staffing computes the staffing metrics for date.
func (s *Service) Staffing(ctx context.Context, date time.Time) (staffing.Metrics, error) {
	day, err := s.ResolveDay(ctx, date)
	if err != nil {
		return staffing.Metrics{}, err
	}

	cfg, err := s.GetConfig(ctx, day.Date.Year(), day.Date.Month())
	if err != nil {
		return staffing.Metrics{}, err
	}
	stats, err := s.GetStats(ctx, day.Date)
	if err != nil {
		return staffing.Metrics{}, err
	}

	return s.aggregator.Aggregate(day.Date, day.Entries, cfg, stats), nil
}

// Snapshot computes the metrics for date and records them.
func (s *Service) Snapshot(ctx context.Context, date time.Time) (Snapshot, error) {
	m, err := s.Staffing(ctx, date)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Date: roster.Day(date), Metrics: m, RecordedAt: s.now().UTC()}
	if err := s.store.SaveSnapshot(ctx, snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to save snapshot: %w", err)
	}
	return snap, nil
}

// ListSnapshots returns recorded snapshots with dates in [from, to].
func (s *Service) ListSnapshots(ctx context.Context, from, to time.Time) ([]Snapshot, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range ends before it starts", ErrInvalidDate)
	}
	return s.store.ListSnapshots(ctx, roster.Day(from), roster.Day(to))
}

// =============================================================================
// SAVE ONE DAY
// =============================================================================

// SaveDay writes proposals and notes for date into the month document and
// returns how many overrides the day holds afterwards. Only proposals that
// differ from the rule-or-default value become overrides.
//
// The month document is rewritten whole. A concurrent save from another
// process to the same month is overwritten, not merged.
func (s *Service) SaveDay(ctx context.Context, date time.Time, proposals []schedule.Proposal, notes string) (int, error) {
	date = roster.Day(date)
	if err := validateProposals(proposals); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load roster: %w", err)
	}
	current, err := s.store.LoadMonth(ctx, date.Year(), date.Month())
	if err != nil {
		return 0, fmt.Errorf("failed to load month %d-%02d: %w", date.Year(), date.Month(), err)
	}

	update := s.resolver.BuildDayUpdate(date, current, roster.ActiveOn(people, date), proposals, notes)

	var doc schedule.MonthSchedule
	if current != nil {
		doc = *current
	}
	next := update.Apply(doc)

	version, err := s.store.SaveMonth(ctx, next)
	if err != nil {
		return 0, fmt.Errorf("failed to save month %d-%02d: %w", date.Year(), date.Month(), err)
	}
	s.invalidateLocked()

	n := len(update.Day.Overrides)
	metrics.DaySavesTotal.Inc()
	metrics.OverridesPersisted.Set(float64(n))
	s.logger.Info("saved day",
		zap.String("date", roster.FormatDate(date)),
		zap.Int("overrides", n),
		zap.Int("proposals", len(proposals)),
		zap.Int64("version", version),
	)
	return n, nil
}

// =============================================================================
// ROSTER ADMINISTRATION
// =============================================================================

// SavePerson validates and stores p. A missing id (person or rule) is
// assigned a new UUID. The stored person is returned.
func (s *Service) SavePerson(ctx context.Context, p roster.Person) (roster.Person, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := validatePerson(p); err != nil {
		return roster.Person{}, err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Rules = roster.SortRulesByPriority(p.Rules)
	if !p.HireDate.IsZero() {
		p.HireDate = roster.Day(p.HireDate)
	}
	rules := make([]roster.RecurringRule, len(p.Rules))
	for i, r := range p.Rules {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		rules[i] = r
	}
	p.Rules = rules

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SavePerson(ctx, p); err != nil {
		return roster.Person{}, fmt.Errorf("failed to save person %s: %w", p.ID, err)
	}
	s.invalidateLocked()

	s.logger.Info("saved person", zap.String("person_id", p.ID), zap.String("role", string(p.Role)))
	return p, nil
}

// GetPerson returns ErrNotFound for unknown ids.
func (s *Service) GetPerson(ctx context.Context, id string) (roster.Person, error) {
	return s.store.GetPerson(ctx, id)
}

// ListPeople returns the roster. When activeOn is set, only people active on
// that date are returned.
func (s *Service) ListPeople(ctx context.Context, activeOn *time.Time) ([]roster.Person, error) {
	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}
	if activeOn != nil {
		people = roster.ActiveOn(people, *activeOn)
	}
	return people, nil
}

// EndPerson sets the person's end date. They disappear from every date on or
// after it; nothing is deleted.
func (s *Service) EndPerson(ctx context.Context, id string, endDate time.Time) (roster.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.GetPerson(ctx, id)
	if err != nil {
		return roster.Person{}, err
	}
	end := roster.Day(endDate)
	p.EndDate = &end

	if err := s.store.SavePerson(ctx, p); err != nil {
		return roster.Person{}, fmt.Errorf("failed to end person %s: %w", id, err)
	}
	s.invalidateLocked()

	s.logger.Info("ended person", zap.String("person_id", id), zap.String("end_date", roster.FormatDate(end)))
	return p, nil
}

// =============================================================================
// CONFIG AND STATS
// =============================================================================

// GetConfig returns the stored config for the month, or the defaults.
func (s *Service) GetConfig(ctx context.Context, year int, month time.Month) (staffing.Config, error) {
	if err := validateMonth(year, month); err != nil {
		return staffing.Config{}, err
	}
	cfg, ok, err := s.store.GetStaffingConfig(ctx, year, month)
	if err != nil {
		return staffing.Config{}, fmt.Errorf("failed to load config %d-%02d: %w", year, month, err)
	}
	if !ok {
		return s.defaults, nil
	}
	return cfg, nil
}

func (s *Service) SaveConfig(ctx context.Context, year int, month time.Month, cfg staffing.Config) error {
	if err := validateMonth(year, month); err != nil {
		return err
	}
	if err := s.store.SaveStaffingConfig(ctx, year, month, cfg); err != nil {
		return fmt.Errorf("failed to save config %d-%02d: %w", year, month, err)
	}
	return nil
}

// GetStats returns the recorded figures for date; a date with nothing
// recorded yields zero stats.
func (s *Service) GetStats(ctx context.Context, date time.Time) (staffing.DailyStats, error) {
	stats, _, err := s.store.GetDailyStats(ctx, roster.Day(date))
	if err != nil {
		return staffing.DailyStats{}, fmt.Errorf("failed to load stats %s: %w", roster.FormatDate(date), err)
	}
	return stats, nil
}

func (s *Service) SaveStats(ctx context.Context, date time.Time, stats staffing.DailyStats) error {
	if err := s.store.SaveDailyStats(ctx, roster.Day(date), stats); err != nil {
		return fmt.Errorf("failed to save stats %s: %w", roster.FormatDate(date), err)
	}
	return nil
}

// =============================================================================
// RESET
// =============================================================================

type resetter interface {
	Reset(ctx context.Context) error
}

// Reset clears every stored record. It is only available on stores that
// support it (demo and test environments).
func (s *Service) Reset(ctx context.Context) error {
	r, ok := s.store.(resetter)
	if !ok {
		return ErrResetUnsupported
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := r.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}
	s.invalidateLocked()
	s.logger.Warn("store reset")
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Service) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// invalidateLocked must be called with s.mu held.
func (s *Service) invalidateLocked() {
	s.generation++
	s.cache.Purge()
}

func cloneDay(d schedule.DayResult) schedule.DayResult {
	out := d
	out.Entries = append([]schedule.ResolvedDayEntry(nil), d.Entries...)
	return out
}

func validateMonth(year int, month time.Month) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if year < 1 || year > 9999 {
		return fmt.Errorf("%w: year %d", ErrInvalidDate, year)
	}
	return nil
}

func validatePerson(p roster.Person) error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Message: "required"}
	}
	if !p.Role.Valid() {
		return &ValidationError{Field: "role", Message: fmt.Sprintf("unknown role %q", p.Role)}
	}
	ruleIDs := make(map[string]bool, len(p.Rules))
	for i, r := range p.Rules {
		if !r.Status.IsKnown() {
			return &ValidationError{Field: fmt.Sprintf("rules[%d].status", i), Message: fmt.Sprintf("unknown status %q", r.Status)}
		}
		if r.ID != "" {
			if ruleIDs[r.ID] {
				return &ValidationError{Field: fmt.Sprintf("rules[%d].id", i), Message: fmt.Sprintf("duplicate rule id %q", r.ID)}
			}
			ruleIDs[r.ID] = true
		}
		for _, d := range r.Days {
			if d < 0 || d > 6 {
				return &ValidationError{Field: fmt.Sprintf("rules[%d].days", i), Message: fmt.Sprintf("weekday %d out of range", d)}
			}
		}
		if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
			return &ValidationError{Field: fmt.Sprintf("rules[%d]", i), Message: "end date before start date"}
		}
	}
	return nil
}

func validateProposals(proposals []schedule.Proposal) error {
	for i, p := range proposals {
		if !p.Status.IsKnown() {
			return &ValidationError{Field: fmt.Sprintf("entries[%d].status", i), Message: fmt.Sprintf("unknown status %q", p.Status)}
		}
	}
	return nil
}
