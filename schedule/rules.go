package schedule

import (
	"time"

	"github.com/jbrannon972/MITAPP-sub000/roster"
)

// =============================================================================
// DEFAULT STATUS
// =============================================================================

// Provenance records which precedence tier produced a resolved status.
type Provenance string

const (
	ProvenanceWeekdayDefault   Provenance = "weekday-default"
	ProvenanceWeekendDefault   Provenance = "weekend-default"
	ProvenanceRecurringRule    Provenance = "recurring-rule"
	ProvenanceSpecificOverride Provenance = "specific-override"
)

// Default returns the baseline status for a date before any person-specific
// data is considered: off on weekends, working otherwise. Hours are empty.
func Default(date time.Time) (roster.Status, Provenance) {
	if roster.IsWeekend(date) {
		return roster.StatusOff, ProvenanceWeekendDefault
	}
	return roster.StatusWorking, ProvenanceWeekdayDefault
}

// =============================================================================
// RULE MATCHING
// =============================================================================

// MatchRule returns the first rule, in list order, whose date bounds, day set
// and frequency condition all hold for date. A false result is a normal
// outcome, not an error.
//
// A rule with an empty day set or an unrecognized frequency never matches.
// An empty frequency is read as every-week.
func MatchRule(rules []roster.RecurringRule, date time.Time, weeks WeekNumberer) (roster.RecurringRule, bool) {
	if weeks == nil {
		weeks = ThursdayWeek{}
	}
	day := roster.Day(date)

	for _, rule := range rules {
		if ruleMatches(rule, day, weeks) {
			return rule, true
		}
	}
	return roster.RecurringRule{}, false
}

func ruleMatches(rule roster.RecurringRule, day time.Time, weeks WeekNumberer) bool {
	if rule.StartDate != nil && day.Before(roster.Day(*rule.StartDate)) {
		return false
	}
	if rule.EndDate != nil && day.After(roster.Day(*rule.EndDate)) {
		return false
	}
	if !rule.HasDay(day.Weekday()) {
		return false
	}

	switch rule.Frequency {
	case roster.EveryWeek, "":
		return true
	case roster.EveryOtherWeek:
		return parity(weeks.WeekNumber(day)) == parity(rule.WeekAnchor)
	default:
		return false
	}
}

func parity(n int) int {
	return ((n % 2) + 2) % 2
}
