package schedule

import (
	"strings"
	"time"

	"github.com/jbrannon972/MITAPP-sub000/roster"
)

// =============================================================================
// OVERRIDE PRUNING
// =============================================================================
// Overrides are sparse: one exists only where it changes the value the
// resolver would produce without it. Writing the would-be-resolved value is a
// no-op and removes any stale override for that person.

// Proposal is an edited value for one person on the day being saved.
type Proposal struct {
	PersonID string
	Status   roster.Status
	Hours    string
}

// PruneOverride compares a proposal against the base resolution (the value
// without any override). It returns false when the proposal is a no-op.
// Hours are compared and stored trimmed.
func PruneOverride(base ResolvedDayEntry, proposed Proposal) (DailyOverride, bool) {
	hours := strings.TrimSpace(proposed.Hours)
	if proposed.Status == base.Status && hours == strings.TrimSpace(base.Hours) {
		return DailyOverride{}, false
	}
	return DailyOverride{Status: proposed.Status, Hours: hours}, true
}

// DayUpdate is the replacement content for one day of a month document.
type DayUpdate struct {
	Date time.Time
	Day  DaySchedule
}

// BuildDayUpdate applies proposals on top of the day's current overrides.
//
// People without a proposal keep their current override unless it now equals
// the base resolution (a rule changed underneath it). Proposals for ids not
// on the roster are ignored. The result holds only overrides that differ
// from the base resolution, so feeding a resolved day straight back in
// produces no new entries.
func (r *Resolver) BuildDayUpdate(date time.Time, current *MonthSchedule, people []roster.Person, proposals []Proposal, notes string) DayUpdate {
	date = roster.Day(date)
	existing := current.DayFor(date)

	overrides := make(map[string]DailyOverride, len(existing.Overrides))
	for id, o := range existing.Overrides {
		overrides[id] = o
	}

	byID := make(map[string]roster.Person, len(people))
	for _, p := range people {
		byID[p.ID] = p
	}

	for id, o := range overrides {
		person, ok := byID[id]
		if !ok {
			continue
		}
		stale := Proposal{PersonID: id, Status: o.Status, Hours: o.Hours}
		if _, keep := PruneOverride(r.ResolveBase(person, date), stale); !keep {
			delete(overrides, id)
		}
	}

	for _, prop := range proposals {
		person, ok := byID[prop.PersonID]
		if !ok {
			continue
		}
		base := r.ResolveBase(person, date)
		if o, keep := PruneOverride(base, prop); keep {
			overrides[prop.PersonID] = o
		} else {
			delete(overrides, prop.PersonID)
		}
	}

	if len(overrides) == 0 {
		overrides = nil
	}
	return DayUpdate{
		Date: date,
		Day:  DaySchedule{Notes: strings.TrimSpace(notes), Overrides: overrides},
	}
}

// Apply returns doc with the update written into its day. The document is
// replaced as a whole; concurrent edits to the same month are not merged.
func (u DayUpdate) Apply(doc MonthSchedule) MonthSchedule {
	if doc.Year == 0 {
		doc = NewMonthSchedule(u.Date.Year(), u.Date.Month())
	}
	return doc.WithDay(u.Date.Day(), u.Day)
}

// ProposalsFrom converts resolved entries back into proposals, the shape a
// save form submits.
func ProposalsFrom(entries []ResolvedDayEntry) []Proposal {
	out := make([]Proposal, len(entries))
	for i, e := range entries {
		out[i] = Proposal{PersonID: e.PersonID, Status: e.Status, Hours: e.Hours}
	}
	return out
}
