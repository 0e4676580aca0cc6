package operations_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbrannon972/MITAPP-sub000/operations"
	"github.com/jbrannon972/MITAPP-sub000/roster"
	"github.com/jbrannon972/MITAPP-sub000/schedule"
	"github.com/jbrannon972/MITAPP-sub000/staffing"
	"github.com/jbrannon972/MITAPP-sub000/store/memory"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) time.Time {
	return roster.Date(year, month, day)
}

// 2025-01-08 is a Wednesday.
var wednesday = date(2025, time.January, 8)

func newTestService(t *testing.T, opts operations.Options) (*operations.Service, *memory.Memory) {
	t.Helper()
	store := memory.New()
	svc, err := operations.NewService(store, opts)
	require.NoError(t, err)
	return svc, store
}

func seedRoster(t *testing.T, store *memory.Memory) {
	t.Helper()
	ctx := context.Background()
	ended := date(2025, time.January, 8)
	people := []roster.Person{
		{ID: "p-ann", Name: "Ann", Role: roster.RoleMITTech},
		{ID: "p-bob", Name: "Bob", Role: roster.RoleMITTech, Rules: []roster.RecurringRule{
			{Days: []int{3}, Status: roster.StatusOff, Frequency: roster.EveryWeek},
		}},
		{ID: "p-cy", Name: "Cy", Role: roster.RoleDemoTech},
		{ID: "p-dee", Name: "Dee", Role: roster.RoleDemoTech},
		{ID: "p-gone", Name: "Gone", Role: roster.RoleMITTech, EndDate: &ended},
	}
	for _, p := range people {
		require.NoError(t, store.SavePerson(ctx, p))
	}
}

func names(entries []schedule.ResolvedDayEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

// =============================================================================
// RESOLUTION
// =============================================================================

func TestResolveDay_ExcludesEndedPeople(t *testing.T) {
	// GIVEN: A roster where one person's end date is the target date
	// WHEN: Resolving that date and the day before
	// THEN: They appear only on the day before

	svc, store := newTestService(t, operations.Options{})
	seedRoster(t, store)
	ctx := context.Background()

	day, err := svc.ResolveDay(ctx, wednesday)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Bob", "Cy", "Dee"}, names(day.Entries))

	before, err := svc.ResolveDay(ctx, wednesday.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Contains(t, names(before.Entries), "Gone")
}

func TestResolveDay_UsesStoredOverridesAndNotes(t *testing.T) {
	svc, store := newTestService(t, operations.Options{})
	seedRoster(t, store)
	ctx := context.Background()

	doc := schedule.NewMonthSchedule(2025, time.January).WithDay(8, schedule.DaySchedule{
		Notes:     "Inventory",
		Overrides: map[string]schedule.DailyOverride{"p-ann": {Status: roster.StatusSick}},
	})
	_, err := store.SaveMonth(ctx, doc)
	require.NoError(t, err)

	day, err := svc.ResolveDay(ctx, wednesday)
	require.NoError(t, err)

	assert.Equal(t, "Inventory", day.Notes)
	assert.Equal(t, roster.StatusSick, day.Entries[0].Status)
	assert.Equal(t, schedule.ProvenanceSpecificOverride, day.Entries[0].Provenance)
	assert.Equal(t, roster.StatusOff, day.Entries[1].Status, "Bob is off on Wednesdays")
	assert.Equal(t, schedule.ProvenanceRecurringRule, day.Entries[1].Provenance)
}

func TestResolveDay_CachedResultIsNotShared(t *testing.T) {
	svc, store := newTestService(t, operations.Options{})
	seedRoster(t, store)
	ctx := context.Background()

	first, err := svc.ResolveDay(ctx, wednesday)
	require.NoError(t, err)
	first.Entries[0].Status = roster.StatusNoShow

	second, err := svc.ResolveDay(ctx, wednesday)
	require.NoError(t, err)
	assert.Equal(t, roster.StatusWorking, second.Entries[0].Status)
}

func TestResolveMonth(t *testing.T) {
	svc, store := newTestService(t, operations.Options{})
	seedRoster(t, store)
	ctx := context.Background()

	days, err := svc.ResolveMonth(ctx, 2025, time.January)
	require.NoError(t, err)
	require.Len(t, days, 31)
	assert.Len(t, days[6].Entries, 5, "Jan 7: everyone")
	assert.Len(t, days[7].Entries, 4, "Jan 8: ended person gone")

	_, err = svc.ResolveMonth(ctx, 2025, time.Month(13))
	assert.ErrorIs(t, err, operations.ErrInvalidDate)
}

// =============================================================================
// SAVE ONE DAY
// =============================================================================

func TestSaveDay_ResolvedRoundTripWritesNothing(t *testing.T) {
	// GIVEN: A resolved day with no overrides
	// WHEN: Saving the resolved values back unchanged
	// THEN: No overrides are persisted and the month has no entry for the day

	svc, store := newTestService(t, operations.Options{})
	seedRoster(t, store)
	ctx := context.Background()

	day, err := svc.ResolveDay(ctx, wednesday)
	require.NoError(t, err)

	n, err := svc.SaveDay(ctx, wednesday, schedule.ProposalsFrom(day.Entries), "")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	doc, err := store.LoadMonth(ctx, 2025, time.January)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.NotContains(t, doc.Days, 8)
}

func TestSaveDay_PersistsOnlyDifferencesAndInvalidatesCache(t *testing.T) {
	svc, store := newTestService(t, operations.Options{})
	seedRoster(t, store)
	ctx := context.Background()

	day, err := svc.ResolveDay(ctx, wednesday)
	require.NoError(t, err)

	proposals := schedule.ProposalsFrom(day.Entries)
	proposals[0].Status = roster.StatusVacation // Ann
	proposals[1].Status = roster.StatusWorking  // Bob, overriding his rule
	proposals[1].Hours = " 10-2 "

	n, err := svc.SaveDay(ctx, wednesday, proposals, "  Short day  ")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	doc, err := store.LoadMonth(ctx, 2025, time.January)
	require.NoError(t, err)
	assert.Equal(t, "Short day", doc.Days[8].Notes)
	assert.Equal(t, schedule.DailyOverride{Status: roster.StatusWorking, Hours: "10-2"}, doc.Days[8].Overrides["p-bob"])

	after, err := svc.ResolveDay(ctx, wednesday)
	require.NoError(t, err)
	assert.Equal(t, roster.StatusVacation, after.Entries[0].Status, "cache was purged by the save")
	assert.Equal(t, "Short day", after.Notes)

	// Feeding the new resolution back is a no-op.
	n, err = svc.SaveDay(ctx, wednesday, schedule.ProposalsFrom(after.Entries), after.Notes)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSaveDay_RejectsUnknownStatus(t *testing.T) {
	svc, store := newTestService(t, operations.Options{})
	seedRoster(t, store)
	ctx := context.Background()

	tests := []struct {
		name   string
		status roster.Status
	}{
		{"missing status", ""},
		{"unknown status", "bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN: A valid proposal followed by one with a status outside the fixed set
			proposals := []schedule.Proposal{
				{PersonID: "p-bob", Status: roster.StatusSick},
				{PersonID: "p-ann", Status: tt.status, Hours: "9-5"},
			}

			// WHEN: Saving
			_, err := svc.SaveDay(ctx, wednesday, proposals, "")

			// THEN: The save is rejected and nothing is written
			require.ErrorIs(t, err, operations.ErrInvalidInput)
			var verr *operations.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "entries[1].status", verr.Field)

			doc, err := store.LoadMonth(ctx, 2025, time.January)
			require.NoError(t, err)
			assert.Nil(t, doc)

			day, err := svc.ResolveDay(ctx, wednesday)
			require.NoError(t, err)
			assert.Equal(t, roster.StatusWorking, day.Entries[0].Status)
		})
	}
}

func TestSaveDay_PrunesStaleOverrideAfterRuleChange(t *testing.T) {
	svc, store := newTestService(t, operations.Options{})
	seedRoster(t, store)
	ctx := context.Background()

	// GIVEN: Ann is marked off on Wednesday by override
	n, err := svc.SaveDay(ctx, wednesday, []schedule.Proposal{{PersonID: "p-ann", Status: roster.StatusOff}}, "")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// AND: Ann later gets a weekly Wednesday-off rule
	ann, err := svc.GetPerson(ctx, "p-ann")
	require.NoError(t, err)
	ann.Rules = []roster.RecurringRule{{Days: []int{3}, Status: roster.StatusOff}}
	_, err = svc.SavePerson(ctx, ann)
	require.NoError(t, err)

	// WHEN: Saving the day with an edit for someone else
	n, err = svc.SaveDay(ctx, wednesday, []schedule.Proposal{{PersonID: "p-cy", Status: roster.StatusSick}}, "")
	require.NoError(t, err)

	// THEN: Ann's override now equals her rule and is dropped
	assert.Equal(t, 1, n)
	doc, err := store.LoadMonth(ctx, 2025, time.January)
	require.NoError(t, err)
	assert.NotContains(t, doc.Days[8].Overrides, "p-ann")
	assert.Contains(t, doc.Days[8].Overrides, "p-cy")
}

func TestSaveDay_LastWriteWins(t *testing.T) {
	svc, store := newTestService(t, operations.Options{})
	seedRoster(t, store)
	ctx := context.Background()

	_, err := svc.SaveDay(ctx, wednesday, []schedule.Proposal{{PersonID: "p-ann", Status: roster.StatusSick}}, "first")
	require.NoError(t, err)
	_, err = svc.SaveDay(ctx, wednesday, []schedule.Proposal{{PersonID: "p-ann", Status: roster.StatusVacation}}, "second")
	require.NoError(t, err)

	doc, err := store.LoadMonth(ctx, 2025, time.January)
	require.NoError(t, err)
	assert.Equal(t, "second", doc.Days[8].Notes)
	assert.Equal(t, roster.StatusVacation, doc.Days[8].Overrides["p-ann"].Status)
	assert.Equal(t, int64(2), doc.Version)
}

// =============================================================================
// STAFFING
// =============================================================================

func TestStaffing_UsesDefaultConfigWhenMonthUnset(t *testing.T) {
	// GIVEN: Ann on route (Bob is off), 2 demo techs, no stored config
	// WHEN: Computing staffing with defaults of 1.5h drive and 4h jobs
	// THEN: 6.5 hours available against 2.5 booked leaves room for 1 job

	defaults := staffing.NewConfig(1.5, 0, 4)
	svc, store := newTestService(t, operations.Options{DefaultConfig: defaults})
	seedRoster(t, store)
	ctx := context.Background()

	require.NoError(t, svc.SaveStats(ctx, wednesday, staffing.DailyStats{TotalLaborHours: decimal.NewFromInt(1), SubTeamCount: 1}))

	m, err := svc.Staffing(ctx, wednesday)
	require.NoError(t, err)
	assert.Equal(t, 1, m.TechsOnRoute)
	assert.Equal(t, 2, m.DemoTechsWorking)
	assert.Equal(t, 1, m.SubTeams)
	assert.True(t, decimal.RequireFromString("2.5").Equal(m.TotalLaborHours), "got %s", m.TotalLaborHours)
	assert.Equal(t, 1, m.PotentialNewJobs)
}

func TestStaffing_StoredConfigWins(t *testing.T) {
	svc, store := newTestService(t, operations.Options{DefaultConfig: staffing.NewConfig(1.5, 0, 4)})
	seedRoster(t, store)
	ctx := context.Background()

	require.NoError(t, svc.SaveConfig(ctx, 2025, time.January, staffing.NewConfig(0, 0, 2)))

	m, err := svc.Staffing(ctx, wednesday)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(8).Equal(m.HoursPerTech))
	assert.Equal(t, 4, m.PotentialNewJobs)
}

func TestSnapshot_RecordsMetrics(t *testing.T) {
	svc, store := newTestService(t, operations.Options{DefaultConfig: staffing.NewConfig(1, 0, 4)})
	seedRoster(t, store)
	ctx := context.Background()

	snap, err := svc.Snapshot(ctx, wednesday)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Metrics.TechsOnRoute)

	snaps, err := svc.ListSnapshots(ctx, wednesday, wednesday)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, wednesday, snaps[0].Date)

	_, err = svc.ListSnapshots(ctx, wednesday, wednesday.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, operations.ErrInvalidDate)
}

// =============================================================================
// ROSTER ADMINISTRATION
// =============================================================================

func TestSavePerson_AssignsIDs(t *testing.T) {
	svc, _ := newTestService(t, operations.Options{})
	ctx := context.Background()

	p, err := svc.SavePerson(ctx, roster.Person{
		Name:  "  Eve ",
		Role:  roster.RoleFleet,
		Rules: []roster.RecurringRule{{Days: []int{5}, Status: roster.StatusOff}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.NotEmpty(t, p.Rules[0].ID)
	assert.Equal(t, "Eve", p.Name)

	got, err := svc.GetPerson(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestSavePerson_OrdersRulesByPriority(t *testing.T) {
	svc, _ := newTestService(t, operations.Options{})
	ctx := context.Background()

	// GIVEN: Rules submitted out of priority order, two sharing a priority
	p, err := svc.SavePerson(ctx, roster.Person{Name: "Eve", Role: roster.RoleMITTech, Rules: []roster.RecurringRule{
		{ID: "late", Days: []int{3}, Status: roster.StatusWorking, Priority: 5},
		{ID: "first", Days: []int{3}, Status: roster.StatusOff, Priority: 1},
		{ID: "second", Days: []int{3}, Status: roster.StatusSick, Priority: 1},
	}})
	require.NoError(t, err)

	// THEN: They are stored by ascending priority, ties in submitted order
	got, err := svc.GetPerson(ctx, p.ID)
	require.NoError(t, err)
	ids := []string{got.Rules[0].ID, got.Rules[1].ID, got.Rules[2].ID}
	assert.Equal(t, []string{"first", "second", "late"}, ids)

	// AND: The lowest priority rule wins on Wednesday
	day, err := svc.ResolveDay(ctx, wednesday)
	require.NoError(t, err)
	assert.Equal(t, roster.StatusOff, day.Entries[0].Status)
}

func TestSavePerson_CloneKeepsRuleIDs(t *testing.T) {
	svc, _ := newTestService(t, operations.Options{})
	ctx := context.Background()

	// GIVEN: A person with a rule
	ann, err := svc.SavePerson(ctx, roster.Person{Name: "Ann", Role: roster.RoleMITTech, Rules: []roster.RecurringRule{
		{Days: []int{5}, Status: roster.StatusOff},
	}})
	require.NoError(t, err)

	// WHEN: Saving a copy as a new person with the same rule ids
	clone := ann
	clone.ID = ""
	clone.Name = "Ann Copy"
	saved, err := svc.SavePerson(ctx, clone)

	// THEN: The copy is stored with its own id and the copied rule
	require.NoError(t, err)
	assert.NotEqual(t, ann.ID, saved.ID)
	assert.Equal(t, ann.Rules[0].ID, saved.Rules[0].ID)
}

func TestSavePerson_Validation(t *testing.T) {
	svc, _ := newTestService(t, operations.Options{})
	ctx := context.Background()

	tests := []struct {
		name   string
		person roster.Person
		field  string
	}{
		{"missing name", roster.Person{Role: roster.RoleFleet}, "name"},
		{"unknown role", roster.Person{Name: "X", Role: "pilot"}, "role"},
		{"weekday out of range", roster.Person{Name: "X", Role: roster.RoleFleet,
			Rules: []roster.RecurringRule{{Days: []int{7}, Status: roster.StatusOff}}}, "rules[0].days"},
		{"unknown rule status", roster.Person{Name: "X", Role: roster.RoleFleet,
			Rules: []roster.RecurringRule{{Days: []int{1}, Status: "bogus"}}}, "rules[0].status"},
		{"missing rule status", roster.Person{Name: "X", Role: roster.RoleFleet,
			Rules: []roster.RecurringRule{{Days: []int{1}}}}, "rules[0].status"},
		{"duplicate rule id", roster.Person{Name: "X", Role: roster.RoleFleet, Rules: []roster.RecurringRule{
			{ID: "r-1", Days: []int{1}, Status: roster.StatusOff},
			{ID: "r-1", Days: []int{2}, Status: roster.StatusOff},
		}}, "rules[1].id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SavePerson(ctx, tt.person)
			require.ErrorIs(t, err, operations.ErrInvalidInput)
			assert.True(t, operations.IsClientError(err))

			var verr *operations.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestEndPerson_RemovesFromLaterDates(t *testing.T) {
	svc, store := newTestService(t, operations.Options{})
	seedRoster(t, store)
	ctx := context.Background()

	before, err := svc.ResolveDay(ctx, wednesday)
	require.NoError(t, err)
	require.Contains(t, names(before.Entries), "Ann")

	_, err = svc.EndPerson(ctx, "p-ann", wednesday)
	require.NoError(t, err)

	after, err := svc.ResolveDay(ctx, wednesday)
	require.NoError(t, err)
	assert.NotContains(t, names(after.Entries), "Ann")

	active, err := svc.ListPeople(ctx, &wednesday)
	require.NoError(t, err)
	assert.Len(t, active, 3)

	all, err := svc.ListPeople(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 5, "ending never deletes")
}

func TestGetPerson_NotFound(t *testing.T) {
	svc, _ := newTestService(t, operations.Options{})

	_, err := svc.GetPerson(context.Background(), "nobody")
	assert.True(t, operations.IsNotFound(err))

	_, err = svc.EndPerson(context.Background(), "nobody", wednesday)
	assert.ErrorIs(t, err, operations.ErrNotFound)
}
