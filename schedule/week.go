/*
Package schedule resolves the effective work status of every person on the
roster for a calendar day.

PURPOSE:
  Three sources overlap for any (person, date):
    1. A baseline: working on weekdays, off on weekends
    2. The person's recurring rules, evaluated in list order
    3. Sparse manual overrides stored per (year, month) document
  The resolver applies them with a fixed precedence:

      specific override > first matching recurring rule > weekday/weekend default

  and tags every result with the tier that produced it (Provenance).

PURITY:
  Nothing in this package performs I/O, holds locks, or mutates its inputs.
  Every function returns a value for any well-typed input; malformed rules
  simply never match. Callers may invoke it concurrently and repeatedly
  (once per calendar cell) without coordination.

SEE ALSO:
  - rules.go:    Recurring rule matching (day set, bounds, week parity)
  - resolver.go: Per-person resolution
  - day.go:      Whole-roster resolution for one day
  - prune.go:    Turning proposed edits into the minimal override set
*/
package schedule

import (
	"time"

	"github.com/jbrannon972/MITAPP-sub000/roster"
)

// =============================================================================
// WEEK NUMBERING - parity source for every-other-week rules
// =============================================================================

// WeekNumberer maps a date to a week number. Only the parity of the result is
// used, so implementations must be stable: the same date always yields the
// same number.
type WeekNumberer interface {
	WeekNumber(date time.Time) int
}

// ThursdayWeek numbers weeks by shifting the date to the Thursday of its
// Monday-start week and counting whole weeks from January 1 of that
// Thursday's year. This is the default numbering.
type ThursdayWeek struct{}

func (ThursdayWeek) WeekNumber(date time.Time) int {
	d := roster.Day(date)

	// Sunday counts as day 7 so that it belongs to the preceding Monday.
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7
	}
	thursday := d.AddDate(0, 0, 4-wd)

	yearStart := roster.Date(thursday.Year(), time.January, 1)
	days := int(thursday.Sub(yearStart).Hours() / 24)
	return (days + 7) / 7
}

// ISOWeek numbers weeks with the standard library's ISO-8601 week.
type ISOWeek struct{}

func (ISOWeek) WeekNumber(date time.Time) int {
	_, week := roster.Day(date).ISOWeek()
	return week
}

// WeekNumbererFor returns the numbering strategy for a configured name.
// Unknown names fall back to ThursdayWeek.
func WeekNumbererFor(name string) WeekNumberer {
	if name == "iso" {
		return ISOWeek{}
	}
	return ThursdayWeek{}
}
