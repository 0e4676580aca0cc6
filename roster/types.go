/*
Package roster defines the staff roster: people, their roles, and the
recurring calendar rules attached to each person.

PURPOSE:
  The roster is the read-only snapshot that every schedule resolution runs
  against. It is owned by administrators and supplied by the roster gateway;
  nothing in the resolution core mutates it.

KEY CONCEPTS IN THIS FILE (types.go):
  - Status: The effective work status for a person on a date
  - Role: Fixed set of job roles (managers, leads, technicians, fleet)
  - RecurringRule: A dated, weekday-based pattern ("off every other Friday")
  - Person: Identity, role, zone, employment window, training window, rules

REMOVAL:
  People are never deleted. Setting EndDate removes them from every date on or
  after that day (see Person.ActiveOn).

SEE ALSO:
  - date.go: Calendar-day helpers shared by all packages
  - schedule/rules.go: How RecurringRule is matched against a date
*/
package roster

import (
	"sort"
	"time"
)

// =============================================================================
// STATUS
// =============================================================================

// Status is the work status resolved for a person on a date.
// Values outside the known set are carried through unchanged.
type Status string

const (
	StatusWorking  Status = "working"
	StatusOff      Status = "off"
	StatusSick     Status = "sick"
	StatusVacation Status = "vacation"
	StatusNoShow   Status = "no-show"
)

// KnownStatuses lists the statuses the dashboards count explicitly.
var KnownStatuses = []Status{StatusWorking, StatusOff, StatusSick, StatusVacation, StatusNoShow}

// IsKnown reports whether s is one of KnownStatuses.
func (s Status) IsKnown() bool {
	for _, k := range KnownStatuses {
		if s == k {
			return true
		}
	}
	return false
}

// =============================================================================
// ROLE
// =============================================================================

type Role string

const (
	RoleManager         Role = "manager"
	RoleSupervisor      Role = "supervisor"
	RoleMITLead         Role = "mit-lead"
	RoleSecondShiftLead Role = "second-shift-lead"
	RoleMITTech         Role = "mit-tech"
	RoleDemoTech        Role = "demo-tech"
	RoleFleet           Role = "fleet"
	RoleFleetSafety     Role = "fleet-safety"
	RoleWarehouse       Role = "warehouse"
)

// Roles is the fixed role set, in display order.
var Roles = []Role{
	RoleManager, RoleSupervisor, RoleMITLead, RoleSecondShiftLead,
	RoleMITTech, RoleDemoTech, RoleFleet, RoleFleetSafety, RoleWarehouse,
}

// Valid reports whether r belongs to the fixed role set.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// =============================================================================
// RECURRING RULE
// =============================================================================

type Frequency string

const (
	EveryWeek      Frequency = "every-week"
	EveryOtherWeek Frequency = "every-other-week"
)

// RecurringRule is a reusable, dated weekday pattern attached to one person.
//
// Days holds weekday indices with Sunday=0 .. Saturday=6. WeekAnchor is only
// read for EveryOtherWeek rules: the rule fires in weeks whose number has the
// same parity as the anchor. StartDate and EndDate are inclusive bounds.
type RecurringRule struct {
	ID         string
	Days       []int
	Status     Status
	Hours      string
	Frequency  Frequency
	WeekAnchor int
	StartDate  *time.Time
	EndDate    *time.Time

	// Priority is optional. Matching is positional; saved rules are stored
	// in SortRulesByPriority order, so equal priorities keep their list order.
	Priority int
}

// HasDay reports whether weekday is in the rule's day set.
func (r RecurringRule) HasDay(weekday time.Weekday) bool {
	for _, d := range r.Days {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// SortRulesByPriority returns a copy of rules ordered by ascending Priority.
// Rules with equal priority keep their stored order.
func SortRulesByPriority(rules []RecurringRule) []RecurringRule {
	out := make([]RecurringRule, len(rules))
	copy(out, rules)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// =============================================================================
// PERSON
// =============================================================================

type Person struct {
	ID              string
	Name            string
	Role            Role
	Zone            string
	HireDate        time.Time
	EndDate         *time.Time
	InTraining      bool
	TrainingEndDate *time.Time
	Rules           []RecurringRule
}

// ActiveOn reports whether the person is on the roster for date: the end date
// is unset or strictly after date.
func (p Person) ActiveOn(date time.Time) bool {
	if p.EndDate == nil {
		return true
	}
	return Day(*p.EndDate).After(Day(date))
}

// InTrainingOn reports whether the person is still in training on date.
func (p Person) InTrainingOn(date time.Time) bool {
	if !p.InTraining {
		return false
	}
	if p.TrainingEndDate == nil {
		return true
	}
	return Day(date).Before(Day(*p.TrainingEndDate))
}

// RouteEligibleOn reports whether the person counts toward route headcount:
// main-line technicians out of training, plus the second-shift lead.
func (p Person) RouteEligibleOn(date time.Time) bool {
	return RouteEligible(p.Role, p.InTrainingOn(date))
}

// RouteEligible is the route headcount rule for a role and training state.
func RouteEligible(role Role, inTraining bool) bool {
	switch role {
	case RoleMITTech:
		return !inTraining
	case RoleSecondShiftLead:
		return true
	default:
		return false
	}
}

// ActiveOn filters people down to those active on date. The input is not
// modified.
func ActiveOn(people []Person, date time.Time) []Person {
	active := make([]Person, 0, len(people))
	for _, p := range people {
		if p.ActiveOn(date) {
			active = append(active, p)
		}
	}
	return active
}
