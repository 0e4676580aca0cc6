// Package memory provides an in-memory implementation of the operations
// gateways (for testing/dev).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jbrannon972/MITAPP-sub000/operations"
	"github.com/jbrannon972/MITAPP-sub000/roster"
	"github.com/jbrannon972/MITAPP-sub000/schedule"
	"github.com/jbrannon972/MITAPP-sub000/staffing"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	people    map[string]roster.Person
	months    map[monthKey]schedule.MonthSchedule
	stats     map[string]staffing.DailyStats
	configs   map[monthKey]staffing.Config
	snapshots map[string]operations.Snapshot
}

type monthKey struct {
	Year  int
	Month time.Month
}

var _ operations.Store = (*Memory)(nil)

func New() *Memory {
	return &Memory{
		people:    make(map[string]roster.Person),
		months:    make(map[monthKey]schedule.MonthSchedule),
		stats:     make(map[string]staffing.DailyStats),
		configs:   make(map[monthKey]staffing.Config),
		snapshots: make(map[string]operations.Snapshot),
	}
}

// =============================================================================
// ROSTER
// =============================================================================

func (m *Memory) SavePerson(_ context.Context, p roster.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.people[p.ID] = clonePerson(p)
	return nil
}

func (m *Memory) GetPerson(_ context.Context, id string) (roster.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.people[id]
	if !ok {
		return roster.Person{}, operations.ErrNotFound
	}
	return clonePerson(p), nil
}

// ListPeople returns everyone ordered by name, then id.
func (m *Memory) ListPeople(_ context.Context) ([]roster.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]roster.Person, 0, len(m.people))
	for _, p := range m.people {
		result = append(result, clonePerson(p))
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := strings.ToLower(result[i].Name), strings.ToLower(result[j].Name)
		if a != b {
			return a < b
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// =============================================================================
// MONTH DOCUMENTS
// =============================================================================

func (m *Memory) LoadMonth(_ context.Context, year int, month time.Month) (*schedule.MonthSchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.months[monthKey{year, month}]
	if !ok {
		return nil, nil
	}
	out := cloneMonth(doc)
	return &out, nil
}

// SaveMonth replaces the document. The version is one more than the stored
// document's, whatever the caller passed.
func (m *Memory) SaveMonth(_ context.Context, doc schedule.MonthSchedule) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := monthKey{doc.Year, doc.Month}
	doc = cloneMonth(doc)
	doc.Version = m.months[k].Version + 1
	m.months[k] = doc
	return doc.Version, nil
}

// =============================================================================
// DAILY STATS AND CONFIG
// =============================================================================

func (m *Memory) GetDailyStats(_ context.Context, date time.Time) (staffing.DailyStats, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.stats[roster.FormatDate(date)]
	return s, ok, nil
}

func (m *Memory) SaveDailyStats(_ context.Context, date time.Time, stats staffing.DailyStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[roster.FormatDate(date)] = stats
	return nil
}

func (m *Memory) GetStaffingConfig(_ context.Context, year int, month time.Month) (staffing.Config, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.configs[monthKey{year, month}]
	return c, ok, nil
}

func (m *Memory) SaveStaffingConfig(_ context.Context, year int, month time.Month, cfg staffing.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configs[monthKey{year, month}] = cfg
	return nil
}

// =============================================================================
// SNAPSHOTS
// =============================================================================

func (m *Memory) SaveSnapshot(_ context.Context, snap operations.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[roster.FormatDate(snap.Date)] = snap
	return nil
}

func (m *Memory) ListSnapshots(_ context.Context, from, to time.Time) ([]operations.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []operations.Snapshot
	for _, s := range m.snapshots {
		if !s.Date.Before(from) && !s.Date.After(to) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// Reset clears all data.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.people = make(map[string]roster.Person)
	m.months = make(map[monthKey]schedule.MonthSchedule)
	m.stats = make(map[string]staffing.DailyStats)
	m.configs = make(map[monthKey]staffing.Config)
	m.snapshots = make(map[string]operations.Snapshot)
	return nil
}

// =============================================================================
// COPIES
// =============================================================================
// Callers get their own copies so that mutating a loaded value never reaches
// the stored one.

func clonePerson(p roster.Person) roster.Person {
	out := p
	out.Rules = make([]roster.RecurringRule, len(p.Rules))
	for i, r := range p.Rules {
		r.Days = append([]int(nil), r.Days...)
		out.Rules[i] = r
	}
	return out
}

func cloneMonth(doc schedule.MonthSchedule) schedule.MonthSchedule {
	out := doc
	out.Days = make(map[int]schedule.DaySchedule, len(doc.Days))
	for d, day := range doc.Days {
		overrides := make(map[string]schedule.DailyOverride, len(day.Overrides))
		for id, o := range day.Overrides {
			overrides[id] = o
		}
		if len(overrides) == 0 {
			overrides = nil
		}
		out.Days[d] = schedule.DaySchedule{Notes: day.Notes, Overrides: overrides}
	}
	return out
}
