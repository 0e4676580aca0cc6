/*
store.go - Gateway interfaces between the operations layer and persistence

PURPOSE:
  The resolution core is pure. Everything it reads (roster, month documents,
  recorded daily figures, monthly configuration) comes through the gateways
  defined here. Different implementations can use SQLite or in-memory storage.

KEY INTERFACES:
  RosterStore:   People with their recurring rules embedded
  MonthStore:    One override document per (year, month)
  StatsStore:    Recorded job/labor figures per date
  ConfigStore:   Staffing configuration per (year, month)
  SnapshotStore: History of computed staffing metrics

WHOLE-DOCUMENT WRITES:
  SaveMonth replaces the stored document for its (year, month). There is no
  merge: two administrators saving the same month concurrently means the later
  write wins. Version is bumped by the store on every save so readers can tell
  documents apart, but it is never checked.

MISSING DATA:
  A month with no document, a date with no stats and a month with no config
  are all normal. Loaders report them with a nil document or ok=false, never
  with an error. Only GetPerson returns ErrNotFound.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - store/memory/memory.go: In-memory for testing

SEE ALSO:
  - service.go: The only consumer of these interfaces
*/
package operations

import (
	"context"
	"time"

	"github.com/jbrannon972/MITAPP-sub000/roster"
	"github.com/jbrannon972/MITAPP-sub000/schedule"
	"github.com/jbrannon972/MITAPP-sub000/staffing"
)

// =============================================================================
// ROSTER
// =============================================================================

// RosterStore persists people. People are never deleted.
type RosterStore interface {
	// SavePerson inserts or replaces a person, including the rule list.
	SavePerson(ctx context.Context, p roster.Person) error

	// GetPerson returns ErrNotFound when id is unknown.
	GetPerson(ctx context.Context, id string) (roster.Person, error)

	// ListPeople returns everyone ever saved, ordered by name.
	ListPeople(ctx context.Context) ([]roster.Person, error)
}

// =============================================================================
// MONTH DOCUMENTS
// =============================================================================

type MonthStore interface {
	// LoadMonth returns nil when no document exists for the month.
	LoadMonth(ctx context.Context, year int, month time.Month) (*schedule.MonthSchedule, error)

	// SaveMonth replaces the whole document and returns the stored version.
	SaveMonth(ctx context.Context, doc schedule.MonthSchedule) (int64, error)
}

// =============================================================================
// DAILY STATS AND CONFIG
// =============================================================================

type StatsStore interface {
	GetDailyStats(ctx context.Context, date time.Time) (staffing.DailyStats, bool, error)
	SaveDailyStats(ctx context.Context, date time.Time, stats staffing.DailyStats) error
}

type ConfigStore interface {
	GetStaffingConfig(ctx context.Context, year int, month time.Month) (staffing.Config, bool, error)
	SaveStaffingConfig(ctx context.Context, year int, month time.Month, cfg staffing.Config) error
}

// =============================================================================
// SNAPSHOTS
// =============================================================================

// Snapshot is one recorded staffing computation.
type Snapshot struct {
	Date       time.Time
	Metrics    staffing.Metrics
	RecordedAt time.Time
}

// SnapshotStore keeps the latest snapshot per date.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snap Snapshot) error
	ListSnapshots(ctx context.Context, from, to time.Time) ([]Snapshot, error)
}

// Store is the full gateway set the service needs.
type Store interface {
	RosterStore
	MonthStore
	StatsStore
	ConfigStore
	SnapshotStore
}
