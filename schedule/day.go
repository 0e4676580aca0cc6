package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/jbrannon972/MITAPP-sub000/roster"
)

// =============================================================================
// MONTH SCHEDULE - the persisted override document
// =============================================================================

// DailyOverride is an explicit exception for one person on one date.
type DailyOverride struct {
	Status roster.Status
	Hours  string
}

// DaySchedule holds the note and overrides recorded for one day.
type DaySchedule struct {
	Notes     string
	Overrides map[string]DailyOverride // keyed by person id
}

// IsEmpty reports whether the day carries neither a note nor an override.
func (d DaySchedule) IsEmpty() bool {
	return d.Notes == "" && len(d.Overrides) == 0
}

// MonthSchedule is the override document for one (year, month). A day that
// is absent from Days has no note and no overrides.
type MonthSchedule struct {
	Year    int
	Month   time.Month
	Days    map[int]DaySchedule
	Version int64
}

// NewMonthSchedule returns an empty document.
func NewMonthSchedule(year int, month time.Month) MonthSchedule {
	return MonthSchedule{Year: year, Month: month, Days: make(map[int]DaySchedule)}
}

// Covers reports whether date falls in the document's month.
func (m *MonthSchedule) Covers(date time.Time) bool {
	return m != nil && m.Year == date.Year() && m.Month == date.Month()
}

// DayFor returns the day entry for date. Missing documents, other months and
// absent days all yield an empty entry.
func (m *MonthSchedule) DayFor(date time.Time) DaySchedule {
	if !m.Covers(date) {
		return DaySchedule{}
	}
	return m.Days[date.Day()]
}

// WithDay returns a copy of the document with the given day replaced. An
// empty day is removed instead of stored.
func (m MonthSchedule) WithDay(day int, ds DaySchedule) MonthSchedule {
	out := m
	out.Days = make(map[int]DaySchedule, len(m.Days)+1)
	for k, v := range m.Days {
		out.Days[k] = v
	}
	if ds.IsEmpty() {
		delete(out.Days, day)
	} else {
		out.Days[day] = ds
	}
	return out
}

// =============================================================================
// DAY RESOLUTION - the whole roster for one date
// =============================================================================

// DayResult is the resolved roster for one date.
type DayResult struct {
	Date    time.Time
	Notes   string
	Entries []ResolvedDayEntry
}

// ResolveDay resolves every person in people for date. Entries are sorted by
// name, case-insensitively, with the person id breaking ties. Neither the
// document nor the roster is modified.
func (r *Resolver) ResolveDay(date time.Time, month *MonthSchedule, people []roster.Person) DayResult {
	date = roster.Day(date)
	day := month.DayFor(date)

	entries := make([]ResolvedDayEntry, 0, len(people))
	for _, p := range people {
		entries = append(entries, r.Resolve(p, date, day.Overrides))
	}
	sortEntries(entries)

	return DayResult{Date: date, Notes: day.Notes, Entries: entries}
}

func sortEntries(entries []ResolvedDayEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if a != b {
			return a < b
		}
		return entries[i].PersonID < entries[j].PersonID
	})
}

// StatusCounts counts entries per status.
func StatusCounts(entries []ResolvedDayEntry) map[roster.Status]int {
	counts := make(map[roster.Status]int, len(roster.KnownStatuses))
	for _, s := range roster.KnownStatuses {
		counts[s] = 0
	}
	for _, e := range entries {
		counts[e.Status]++
	}
	return counts
}

// =============================================================================
// MONTH VIEW
// =============================================================================

// ResolveMonth resolves every calendar day of (year, month). Each day only
// includes the people active on that day.
func (r *Resolver) ResolveMonth(year int, month time.Month, doc *MonthSchedule, people []roster.Person) []DayResult {
	n := roster.DaysInMonth(year, month)
	days := make([]DayResult, 0, n)
	for d := 1; d <= n; d++ {
		date := roster.Date(year, month, d)
		days = append(days, r.ResolveDay(date, doc, roster.ActiveOn(people, date)))
	}
	return days
}
