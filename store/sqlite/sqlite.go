/*
Package sqlite provides a SQLite-backed implementation of the operations
gateways.

PURPOSE:
  Implements every persistence interface the operations layer needs
  (RosterStore, MonthStore, StatsStore, ConfigStore, SnapshotStore) using
  SQLite.

KEY TABLES:
  people:             Roster records, never deleted (end_date instead)
  recurring_rules:    Rules per person, position preserves list order
  month_schedules:    One JSON override document per (year, month)
  daily_stats:        Recorded job/labor figures per date
  staffing_config:    Numeric staffing configuration per (year, month)
  staffing_snapshots: Last computed metrics per date

RULE ORDER:
  Rule matching is first-match-wins in list order, so the position column is
  part of the data, not an implementation detail. SavePerson rewrites a
  person's rules atomically in the order given.

MONTH DOCUMENTS:
  The override document is stored whole as JSON. SaveMonth replaces it and
  bumps the version; there is no merge and no version check.

DECIMALS:
  Hours are stored as TEXT decimal strings so values round-trip exactly.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened with WAL.

USAGE:
  store, err := sqlite.New("./data/staffing.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). Every statement is idempotent.

SEE ALSO:
  - operations/store.go: Interface definitions
  - store/memory/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/jbrannon972/MITAPP-sub000/operations"
	"github.com/jbrannon972/MITAPP-sub000/roster"
	"github.com/jbrannon972/MITAPP-sub000/schedule"
	"github.com/jbrannon972/MITAPP-sub000/staffing"
)

// Store implements all gateway interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ operations.Store = (*Store)(nil)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- People (never deleted; end_date removes them from later dates)
	CREATE TABLE IF NOT EXISTS people (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		zone TEXT NOT NULL DEFAULT '',
		hire_date TEXT,
		end_date TEXT,
		in_training BOOLEAN NOT NULL DEFAULT FALSE,
		training_end_date TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_people_name
		ON people(name COLLATE NOCASE);

	-- Recurring rules, ordered by position within a person
	CREATE TABLE IF NOT EXISTS recurring_rules (
		id TEXT NOT NULL,
		person_id TEXT NOT NULL REFERENCES people(id),
		position INTEGER NOT NULL,
		days_json TEXT NOT NULL,
		status TEXT NOT NULL,
		hours TEXT NOT NULL DEFAULT '',
		frequency TEXT NOT NULL DEFAULT '',
		week_anchor INTEGER NOT NULL DEFAULT 0,
		start_date TEXT,
		end_date TEXT,
		priority INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (person_id, id)
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_rules_person_position
		ON recurring_rules(person_id, position);

	-- Override documents, one per month
	CREATE TABLE IF NOT EXISTS month_schedules (
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		document_json TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (year, month)
	);

	-- Recorded job/labor figures
	CREATE TABLE IF NOT EXISTS daily_stats (
		date TEXT PRIMARY KEY,
		total_labor_hours TEXT NOT NULL,
		dt_labor_hours TEXT NOT NULL,
		sub_team_count INTEGER NOT NULL DEFAULT 0,
		sub_hours_json TEXT NOT NULL DEFAULT '[]',
		forecasted_new_jobs INTEGER,
		updated_at TEXT NOT NULL
	);

	-- Staffing configuration per month
	CREATE TABLE IF NOT EXISTS staffing_config (
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		average_drive_time_hours TEXT NOT NULL,
		overtime_hours_per_tech TEXT NOT NULL,
		average_job_duration_hours TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (year, month)
	);

	-- Computed staffing snapshots (latest per date)
	CREATE TABLE IF NOT EXISTS staffing_snapshots (
		date TEXT PRIMARY KEY,
		metrics_json TEXT NOT NULL,
		recorded_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// withTx executes fn within a database transaction. Callers hold s.mu.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(sqlTx); err != nil {
		return err
	}
	return sqlTx.Commit()
}

// =============================================================================
// ROSTER (operations.RosterStore)
// =============================================================================

// SavePerson upserts the person and replaces their rules in one transaction.
func (s *Store) SavePerson(ctx context.Context, p roster.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)

	return s.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO people (id, name, role, zone, hire_date, end_date, in_training, training_end_date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				role = excluded.role,
				zone = excluded.zone,
				hire_date = excluded.hire_date,
				end_date = excluded.end_date,
				in_training = excluded.in_training,
				training_end_date = excluded.training_end_date,
				updated_at = excluded.updated_at
		`
		_, err := tx.ExecContext(ctx, query,
			p.ID, p.Name, string(p.Role), p.Zone,
			nullDate(dateOrNil(p.HireDate)),
			nullDate(p.EndDate),
			p.InTraining,
			nullDate(p.TrainingEndDate),
			now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to save person: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM recurring_rules WHERE person_id = ?", p.ID); err != nil {
			return fmt.Errorf("failed to clear rules: %w", err)
		}
		for i, r := range p.Rules {
			if err := insertRule(ctx, tx, p.ID, i, r); err != nil {
				return err
			}
		}
		return nil
	})
}

// insertRule stores r at position. A rule without an id is keyed by its
// owner and position.
func insertRule(ctx context.Context, db execer, personID string, position int, r roster.RecurringRule) error {
	if r.ID == "" {
		r.ID = fmt.Sprintf("%s-rule-%d", personID, position)
	}
	days := r.Days
	if days == nil {
		days = []int{}
	}
	daysJSON, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("failed to encode rule days: %w", err)
	}

	query := `
		INSERT INTO recurring_rules
		(id, person_id, position, days_json, status, hours, frequency, week_anchor, start_date, end_date, priority)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = db.ExecContext(ctx, query,
		r.ID, personID, position, string(daysJSON),
		string(r.Status), r.Hours, string(r.Frequency), r.WeekAnchor,
		nullDate(r.StartDate), nullDate(r.EndDate), r.Priority,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("duplicate rule id %q: %w", r.ID, err)
		}
		return fmt.Errorf("failed to save rule: %w", err)
	}
	return nil
}

// GetPerson retrieves a person by ID with their rules.
func (s *Store) GetPerson(ctx context.Context, id string) (roster.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	people, err := s.queryPeople(ctx, "WHERE id = ?", id)
	if err != nil {
		return roster.Person{}, err
	}
	if len(people) == 0 {
		return roster.Person{}, fmt.Errorf("person %s: %w", id, operations.ErrNotFound)
	}
	return people[0], nil
}

// ListPeople returns everyone, ordered by name.
func (s *Store) ListPeople(ctx context.Context) ([]roster.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryPeople(ctx, "")
}

// queryPeople loads people matching where, then their rules. The people rows
// are fully read before the rules query runs so that a single-connection
// database never has two open result sets.
func (s *Store) queryPeople(ctx context.Context, where string, args ...any) ([]roster.Person, error) {
	query := `
		SELECT id, name, role, zone, hire_date, end_date, in_training, training_end_date
		FROM people ` + where + `
		ORDER BY name COLLATE NOCASE, id
	`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var people []roster.Person
	index := make(map[string]int)
	for rows.Next() {
		var p roster.Person
		var role string
		var hireDate, endDate, trainingEnd sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &role, &p.Zone, &hireDate, &endDate, &p.InTraining, &trainingEnd); err != nil {
			rows.Close()
			return nil, err
		}
		p.Role = roster.Role(role)
		if d := parseNullDate(hireDate); d != nil {
			p.HireDate = *d
		}
		p.EndDate = parseNullDate(endDate)
		p.TrainingEndDate = parseNullDate(trainingEnd)

		index[p.ID] = len(people)
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(people) == 0 {
		return people, nil
	}

	ruleQuery := `
		SELECT id, person_id, days_json, status, hours, frequency, week_anchor, start_date, end_date, priority
		FROM recurring_rules
		ORDER BY person_id, position
	`
	ruleArgs := []any{}
	if len(people) == 1 {
		ruleQuery = `
			SELECT id, person_id, days_json, status, hours, frequency, week_anchor, start_date, end_date, priority
			FROM recurring_rules
			WHERE person_id = ?
			ORDER BY position
		`
		ruleArgs = append(ruleArgs, people[0].ID)
	}

	ruleRows, err := s.db.QueryContext(ctx, ruleQuery, ruleArgs...)
	if err != nil {
		return nil, err
	}
	defer ruleRows.Close()

	for ruleRows.Next() {
		var r roster.RecurringRule
		var personID, daysJSON, status, frequency string
		var startDate, endDate sql.NullString
		if err := ruleRows.Scan(&r.ID, &personID, &daysJSON, &status, &r.Hours, &frequency,
			&r.WeekAnchor, &startDate, &endDate, &r.Priority); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(daysJSON), &r.Days); err != nil {
			return nil, fmt.Errorf("failed to decode rule %s days: %w", r.ID, err)
		}
		r.Status = roster.Status(status)
		r.Frequency = roster.Frequency(frequency)
		r.StartDate = parseNullDate(startDate)
		r.EndDate = parseNullDate(endDate)

		if i, ok := index[personID]; ok {
			people[i].Rules = append(people[i].Rules, r)
		}
	}
	return people, ruleRows.Err()
}

// =============================================================================
// MONTH DOCUMENTS (operations.MonthStore)
// =============================================================================

// monthDocument is the stored JSON shape of a month schedule.
type monthDocument struct {
	Days map[string]dayDocument `json:"days"`
}

type dayDocument struct {
	Notes     string                      `json:"notes,omitempty"`
	Overrides map[string]overrideDocument `json:"overrides,omitempty"`
}

type overrideDocument struct {
	Status string `json:"status"`
	Hours  string `json:"hours,omitempty"`
}

// LoadMonth returns nil when no document exists.
func (s *Store) LoadMonth(ctx context.Context, year int, month time.Month) (*schedule.MonthSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docJSON string
	var version int64
	err := s.db.QueryRowContext(ctx,
		"SELECT document_json, version FROM month_schedules WHERE year = ? AND month = ?",
		year, int(month),
	).Scan(&docJSON, &version)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stored monthDocument
	if err := json.Unmarshal([]byte(docJSON), &stored); err != nil {
		return nil, fmt.Errorf("failed to decode month %d-%02d: %w", year, month, err)
	}

	doc := schedule.NewMonthSchedule(year, month)
	doc.Version = version
	for key, day := range stored.Days {
		var d int
		if _, err := fmt.Sscanf(key, "%d", &d); err != nil {
			continue
		}
		ds := schedule.DaySchedule{Notes: day.Notes}
		if len(day.Overrides) > 0 {
			ds.Overrides = make(map[string]schedule.DailyOverride, len(day.Overrides))
			for id, o := range day.Overrides {
				ds.Overrides[id] = schedule.DailyOverride{Status: roster.Status(o.Status), Hours: o.Hours}
			}
		}
		doc.Days[d] = ds
	}
	return &doc, nil
}

// SaveMonth replaces the whole document and bumps its version.
func (s *Store) SaveMonth(ctx context.Context, doc schedule.MonthSchedule) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := monthDocument{Days: make(map[string]dayDocument, len(doc.Days))}
	for d, day := range doc.Days {
		if day.IsEmpty() {
			continue
		}
		dd := dayDocument{Notes: day.Notes}
		if len(day.Overrides) > 0 {
			dd.Overrides = make(map[string]overrideDocument, len(day.Overrides))
			for id, o := range day.Overrides {
				dd.Overrides[id] = overrideDocument{Status: string(o.Status), Hours: o.Hours}
			}
		}
		stored.Days[fmt.Sprintf("%d", d)] = dd
	}
	docJSON, err := json.Marshal(stored)
	if err != nil {
		return 0, fmt.Errorf("failed to encode month: %w", err)
	}

	var version int64
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO month_schedules (year, month, document_json, version, updated_at)
			VALUES (?, ?, ?, 1, ?)
			ON CONFLICT(year, month) DO UPDATE SET
				document_json = excluded.document_json,
				version = month_schedules.version + 1,
				updated_at = excluded.updated_at
		`
		if _, err := tx.ExecContext(ctx, query,
			doc.Year, int(doc.Month), string(docJSON),
			time.Now().UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("failed to save month: %w", err)
		}
		return tx.QueryRowContext(ctx,
			"SELECT version FROM month_schedules WHERE year = ? AND month = ?",
			doc.Year, int(doc.Month),
		).Scan(&version)
	})
	return version, err
}

// =============================================================================
// DAILY STATS (operations.StatsStore)
// =============================================================================

func (s *Store) GetDailyStats(ctx context.Context, date time.Time) (staffing.DailyStats, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats staffing.DailyStats
	var total, dt, subHoursJSON string
	var forecast sql.NullInt64

	err := s.db.QueryRowContext(ctx, `
		SELECT total_labor_hours, dt_labor_hours, sub_team_count, sub_hours_json, forecasted_new_jobs
		FROM daily_stats WHERE date = ?`,
		roster.FormatDate(date),
	).Scan(&total, &dt, &stats.SubTeamCount, &subHoursJSON, &forecast)
	if err == sql.ErrNoRows {
		return staffing.DailyStats{}, false, nil
	}
	if err != nil {
		return staffing.DailyStats{}, false, err
	}

	stats.TotalLaborHours = parseDecimal(total)
	stats.DTLaborHours = parseDecimal(dt)
	if err := json.Unmarshal([]byte(subHoursJSON), &stats.SubContractorJobHours); err != nil {
		return staffing.DailyStats{}, false, fmt.Errorf("failed to decode sub hours: %w", err)
	}
	if forecast.Valid {
		n := int(forecast.Int64)
		stats.ForecastedNewJobs = &n
	}
	return stats, true, nil
}

func (s *Store) SaveDailyStats(ctx context.Context, date time.Time, stats staffing.DailyStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subHours := stats.SubContractorJobHours
	if subHours == nil {
		subHours = []decimal.Decimal{}
	}
	subHoursJSON, err := json.Marshal(subHours)
	if err != nil {
		return fmt.Errorf("failed to encode sub hours: %w", err)
	}

	var forecast sql.NullInt64
	if stats.ForecastedNewJobs != nil {
		forecast = sql.NullInt64{Int64: int64(*stats.ForecastedNewJobs), Valid: true}
	}

	query := `
		INSERT INTO daily_stats (date, total_labor_hours, dt_labor_hours, sub_team_count, sub_hours_json, forecasted_new_jobs, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			total_labor_hours = excluded.total_labor_hours,
			dt_labor_hours = excluded.dt_labor_hours,
			sub_team_count = excluded.sub_team_count,
			sub_hours_json = excluded.sub_hours_json,
			forecasted_new_jobs = excluded.forecasted_new_jobs,
			updated_at = excluded.updated_at
	`
	_, err = s.db.ExecContext(ctx, query,
		roster.FormatDate(date),
		stats.TotalLaborHours.String(),
		stats.DTLaborHours.String(),
		stats.SubTeamCount,
		string(subHoursJSON),
		forecast,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// =============================================================================
// STAFFING CONFIG (operations.ConfigStore)
// =============================================================================

func (s *Store) GetStaffingConfig(ctx context.Context, year int, month time.Month) (staffing.Config, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var drive, overtime, duration string
	err := s.db.QueryRowContext(ctx, `
		SELECT average_drive_time_hours, overtime_hours_per_tech, average_job_duration_hours
		FROM staffing_config WHERE year = ? AND month = ?`,
		year, int(month),
	).Scan(&drive, &overtime, &duration)
	if err == sql.ErrNoRows {
		return staffing.Config{}, false, nil
	}
	if err != nil {
		return staffing.Config{}, false, err
	}

	return staffing.Config{
		AverageDriveTimeHours:      parseDecimal(drive),
		OvertimeHoursPerTechPerDay: parseDecimal(overtime),
		AverageJobDurationHours:    parseDecimal(duration),
	}, true, nil
}

func (s *Store) SaveStaffingConfig(ctx context.Context, year int, month time.Month, cfg staffing.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO staffing_config (year, month, average_drive_time_hours, overtime_hours_per_tech, average_job_duration_hours, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(year, month) DO UPDATE SET
			average_drive_time_hours = excluded.average_drive_time_hours,
			overtime_hours_per_tech = excluded.overtime_hours_per_tech,
			average_job_duration_hours = excluded.average_job_duration_hours,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		year, int(month),
		cfg.AverageDriveTimeHours.String(),
		cfg.OvertimeHoursPerTechPerDay.String(),
		cfg.AverageJobDurationHours.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// =============================================================================
// SNAPSHOTS (operations.SnapshotStore)
// =============================================================================

func (s *Store) SaveSnapshot(ctx context.Context, snap operations.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	metricsJSON, err := json.Marshal(snap.Metrics)
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}

	query := `
		INSERT INTO staffing_snapshots (date, metrics_json, recorded_at)
		VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			metrics_json = excluded.metrics_json,
			recorded_at = excluded.recorded_at
	`
	_, err = s.db.ExecContext(ctx, query,
		roster.FormatDate(snap.Date),
		string(metricsJSON),
		snap.RecordedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// ListSnapshots returns snapshots with dates in [from, to], oldest first.
func (s *Store) ListSnapshots(ctx context.Context, from, to time.Time) ([]operations.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, metrics_json, recorded_at FROM staffing_snapshots
		WHERE date >= ? AND date <= ?
		ORDER BY date`,
		roster.FormatDate(from), roster.FormatDate(to),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []operations.Snapshot
	for rows.Next() {
		var date, metricsJSON, recordedAt string
		if err := rows.Scan(&date, &metricsJSON, &recordedAt); err != nil {
			return nil, err
		}
		var snap operations.Snapshot
		snap.Date, _ = roster.ParseDate(date)
		snap.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt)
		if err := json.Unmarshal([]byte(metricsJSON), &snap.Metrics); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot %s: %w", date, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"recurring_rules", "people", "month_schedules", "daily_stats", "staffing_config", "staffing_snapshots"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// Helper functions

func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: roster.FormatDate(*t), Valid: true}
}

func dateOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func parseNullDate(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := roster.ParseDate(s.String)
	if err != nil {
		return nil
	}
	return &t
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
