package schedule

import (
	"time"

	"github.com/jbrannon972/MITAPP-sub000/roster"
)

// ResolvedDayEntry is the resolved status for one person on one date.
// It is output only and never persisted.
type ResolvedDayEntry struct {
	PersonID   string
	Name       string
	Role       roster.Role
	Zone       string
	InTraining bool
	Status     roster.Status
	Hours      string
	Provenance Provenance
}

// SpeciallyScheduled reports whether the entry carries an hours/notes value,
// which marks the person for display even when the status is the default.
func (e ResolvedDayEntry) SpeciallyScheduled() bool {
	return e.Hours != ""
}

// RouteEligible reports whether the entry counts toward route headcount.
func (e ResolvedDayEntry) RouteEligible() bool {
	return roster.RouteEligible(e.Role, e.InTraining)
}

// Resolver composes the default, the rule matcher and the override lookup.
// The zero value is usable and numbers weeks with ThursdayWeek.
type Resolver struct {
	weeks WeekNumberer
}

// NewResolver creates a resolver with the given week numbering strategy.
func NewResolver(weeks WeekNumberer) *Resolver {
	return &Resolver{weeks: weeks}
}

func (r *Resolver) weekNumberer() WeekNumberer {
	if r == nil || r.weeks == nil {
		return ThursdayWeek{}
	}
	return r.weeks
}

// Resolve returns the status for person on date. overrides holds the
// overrides recorded for that date keyed by person id; it may be nil.
func (r *Resolver) Resolve(person roster.Person, date time.Time, overrides map[string]DailyOverride) ResolvedDayEntry {
	entry := r.ResolveBase(person, date)
	if o, ok := overrides[person.ID]; ok {
		entry.Status = o.Status
		entry.Hours = o.Hours
		entry.Provenance = ProvenanceSpecificOverride
	}
	return entry
}

// ResolveBase resolves person on date ignoring any override: the value an
// override is compared against when deciding whether it needs to exist.
func (r *Resolver) ResolveBase(person roster.Person, date time.Time) ResolvedDayEntry {
	status, provenance := Default(date)
	entry := ResolvedDayEntry{
		PersonID:   person.ID,
		Name:       person.Name,
		Role:       person.Role,
		Zone:       person.Zone,
		InTraining: person.InTrainingOn(date),
		Status:     status,
		Provenance: provenance,
	}

	if rule, ok := MatchRule(person.Rules, date, r.weekNumberer()); ok {
		entry.Status = rule.Status
		entry.Hours = rule.Hours
		entry.Provenance = ProvenanceRecurringRule
	}
	return entry
}
