package sqlite_test

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
	"github.com/jbrannon972/MITAPP-sub000/store/sqlite"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := roster.Date(year, month, day)
	return &d
}

// =============================================================================
// ROSTER
// =============================================================================

func TestPerson_RoundTripKeepsRuleOrder(t *testing.T) {
	// GIVEN: A person with two overlapping rules
	// WHEN: Saving and loading
	// THEN: Every field survives and the rules keep their list order

	store := newTestStore(t)
	ctx := context.Background()

	person := roster.Person{
		ID:              "p-1",
		Name:            "Riley",
		Role:            roster.RoleMITTech,
		Zone:            "North",
		HireDate:        roster.Date(2023, time.March, 1),
		InTraining:      true,
		TrainingEndDate: datePtr(2025, time.February, 1),
		Rules: []roster.RecurringRule{
			{ID: "r-2", Days: []int{5}, Status: roster.StatusOff, Frequency: roster.EveryOtherWeek, WeekAnchor: 3},
			{ID: "r-1", Days: []int{1, 5}, Status: roster.StatusWorking, Hours: "7-3", Frequency: roster.EveryWeek,
				StartDate: datePtr(2025, time.January, 1), EndDate: datePtr(2025, time.June, 30), Priority: 2},
		},
	}
	require.NoError(t, store.SavePerson(ctx, person))

	got, err := store.GetPerson(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, person, got)
}

func TestPerson_SaveReplacesRules(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p := roster.Person{ID: "p-1", Name: "Riley", Role: roster.RoleFleet, Rules: []roster.RecurringRule{
		{Days: []int{1}, Status: roster.StatusOff},
		{Days: []int{2}, Status: roster.StatusOff},
	}}
	require.NoError(t, store.SavePerson(ctx, p))

	p.Rules = p.Rules[1:]
	end := roster.Date(2025, time.May, 1)
	p.EndDate = &end
	require.NoError(t, store.SavePerson(ctx, p))

	got, err := store.GetPerson(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, got.Rules, 1)
	assert.Equal(t, []int{2}, got.Rules[0].Days)
	assert.Equal(t, "p-1-rule-0", got.Rules[0].ID)
	require.NotNil(t, got.EndDate)
	assert.Equal(t, end, *got.EndDate)
}

func TestPerson_RuleIDsAreScopedToPerson(t *testing.T) {
	// GIVEN: A saved person
	store := newTestStore(t)
	ctx := context.Background()

	original := roster.Person{ID: "p-1", Name: "Riley", Role: roster.RoleMITTech, Rules: []roster.RecurringRule{
		{ID: "r-1", Days: []int{5}, Status: roster.StatusOff},
	}}
	require.NoError(t, store.SavePerson(ctx, original))

	// WHEN: Saving a copy under another id with the same rule ids
	clone := original
	clone.ID = "p-2"
	clone.Name = "Robin"
	require.NoError(t, store.SavePerson(ctx, clone))

	// THEN: Both keep their rule
	for _, id := range []string{"p-1", "p-2"} {
		got, err := store.GetPerson(ctx, id)
		require.NoError(t, err)
		require.Len(t, got.Rules, 1)
		assert.Equal(t, "r-1", got.Rules[0].ID)
	}

	// AND: Re-saving the clone replaces only its own rules
	clone.Rules = []roster.RecurringRule{{ID: "r-1", Days: []int{1}, Status: roster.StatusSick}}
	require.NoError(t, store.SavePerson(ctx, clone))
	got, err := store.GetPerson(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, []int{5}, got.Rules[0].Days)
}

func TestPerson_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetPerson(context.Background(), "missing")
	assert.ErrorIs(t, err, operations.ErrNotFound)
}

func TestListPeople_OrderedByNameWithRules(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePerson(ctx, roster.Person{ID: "b", Name: "bea", Role: roster.RoleDemoTech,
		Rules: []roster.RecurringRule{{ID: "rb", Days: []int{0}, Status: roster.StatusWorking}}}))
	require.NoError(t, store.SavePerson(ctx, roster.Person{ID: "a", Name: "Al", Role: roster.RoleMITTech}))
	require.NoError(t, store.SavePerson(ctx, roster.Person{ID: "c", Name: "Cam", Role: roster.RoleWarehouse,
		Rules: []roster.RecurringRule{{ID: "rc", Days: []int{6}, Status: roster.StatusWorking}}}))

	people, err := store.ListPeople(ctx)
	require.NoError(t, err)
	require.Len(t, people, 3)
	assert.Equal(t, "Al", people[0].Name)
	assert.Equal(t, "bea", people[1].Name)
	assert.Empty(t, people[0].Rules)
	assert.Equal(t, "rb", people[1].Rules[0].ID)
	assert.Equal(t, "rc", people[2].Rules[0].ID)
}

// =============================================================================
// MONTH DOCUMENTS
// =============================================================================

func TestMonth_MissingIsNil(t *testing.T) {
	store := newTestStore(t)

	doc, err := store.LoadMonth(context.Background(), 2025, time.January)
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestMonth_SaveReplacesWholeDocumentAndBumpsVersion(t *testing.T) {
	// GIVEN: A stored document with two days
	// WHEN: Saving a document holding only one of them
	// THEN: The other day is gone and the version increased

	store := newTestStore(t)
	ctx := context.Background()

	first := schedule.NewMonthSchedule(2025, time.January).
		WithDay(8, schedule.DaySchedule{Notes: "Truck 4 in the shop",
			Overrides: map[string]schedule.DailyOverride{"p-1": {Status: roster.StatusSick}}}).
		WithDay(9, schedule.DaySchedule{Overrides: map[string]schedule.DailyOverride{"p-2": {Status: roster.StatusWorking, Hours: "9-5"}}})

	v, err := store.SaveMonth(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	loaded, err := store.LoadMonth(ctx, 2025, time.January)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, first.Days, loaded.Days)
	assert.Equal(t, int64(1), loaded.Version)

	second := schedule.NewMonthSchedule(2025, time.January).WithDay(9, first.Days[9])
	v, err = store.SaveMonth(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	loaded, err = store.LoadMonth(ctx, 2025, time.January)
	require.NoError(t, err)
	assert.NotContains(t, loaded.Days, 8)
	assert.Equal(t, "9-5", loaded.Days[9].Overrides["p-2"].Hours)
}

// =============================================================================
// STATS, CONFIG, SNAPSHOTS
// =============================================================================

func TestDailyStats_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	day := roster.Date(2025, time.January, 8)

	_, ok, err := store.GetDailyStats(ctx, day)
	require.NoError(t, err)
	assert.False(t, ok)

	forecast := 4
	stats := staffing.DailyStats{
		TotalLaborHours:       decimal.RequireFromString("50.25"),
		DTLaborHours:          decimal.NewFromInt(40),
		SubTeamCount:          2,
		SubContractorJobHours: []decimal.Decimal{decimal.RequireFromString("6.5"), decimal.NewFromInt(4)},
		ForecastedNewJobs:     &forecast,
	}
	require.NoError(t, store.SaveDailyStats(ctx, day, stats))

	got, ok, err := store.GetDailyStats(ctx, day)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, stats.TotalLaborHours.Equal(got.TotalLaborHours))
	assert.True(t, stats.DTLaborHours.Equal(got.DTLaborHours))
	assert.Equal(t, 2, got.SubTeamCount)
	require.Len(t, got.SubContractorJobHours, 2)
	assert.True(t, decimal.RequireFromString("6.5").Equal(got.SubContractorJobHours[0]))
	require.NotNil(t, got.ForecastedNewJobs)
	assert.Equal(t, 4, *got.ForecastedNewJobs)
}

func TestStaffingConfig_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, ok, err := store.GetStaffingConfig(ctx, 2025, time.March)
	require.NoError(t, err)
	assert.False(t, ok)

	cfg := staffing.NewConfig(1.5, 0.5, 4)
	require.NoError(t, store.SaveStaffingConfig(ctx, 2025, time.March, cfg))
	require.NoError(t, store.SaveStaffingConfig(ctx, 2025, time.March, staffing.NewConfig(2, 0.5, 4)))

	got, ok, err := store.GetStaffingConfig(ctx, 2025, time.March)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(2).Equal(got.AverageDriveTimeHours))
	assert.True(t, decimal.RequireFromString("0.5").Equal(got.OvertimeHoursPerTechPerDay))
}

func TestSnapshots_LatestPerDate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	day := roster.Date(2025, time.January, 8)

	for _, techs := range []int{3, 5} {
		snap := operations.Snapshot{
			Date:       day,
			Metrics:    staffing.Metrics{TechsOnRoute: techs, BaseWorkSurplus: decimal.RequireFromString("-2.5")},
			RecordedAt: time.Date(2025, time.January, 8, 12, 0, techs, 0, time.UTC),
		}
		require.NoError(t, store.SaveSnapshot(ctx, snap))
	}

	snaps, err := store.ListSnapshots(ctx, day, day)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, 5, snaps[0].Metrics.TechsOnRoute)
	assert.True(t, decimal.RequireFromString("-2.5").Equal(snaps[0].Metrics.BaseWorkSurplus))
	assert.Equal(t, day, snaps[0].Date)
}

// =============================================================================
// SERVICE OVER SQLITE
// =============================================================================

func TestService_SaveDayRoundTripOverSQLite(t *testing.T) {
	// GIVEN: The operations service backed by SQLite
	// WHEN: Saving a resolved day back unchanged, then one real change
	// THEN: Only the change is persisted

	store := newTestStore(t)
	ctx := context.Background()
	svc, err := operations.NewService(store, operations.Options{})
	require.NoError(t, err)

	_, err = svc.SavePerson(ctx, roster.Person{ID: "p-1", Name: "Riley", Role: roster.RoleMITTech})
	require.NoError(t, err)
	_, err = svc.SavePerson(ctx, roster.Person{ID: "p-2", Name: "Sam", Role: roster.RoleDemoTech})
	require.NoError(t, err)

	day := roster.Date(2025, time.January, 8)
	resolved, err := svc.ResolveDay(ctx, day)
	require.NoError(t, err)

	n, err := svc.SaveDay(ctx, day, schedule.ProposalsFrom(resolved.Entries), "")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	proposals := schedule.ProposalsFrom(resolved.Entries)
	proposals[1].Status = roster.StatusNoShow
	n, err = svc.SaveDay(ctx, day, proposals, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	doc, err := store.LoadMonth(ctx, 2025, time.January)
	require.NoError(t, err)
	assert.Equal(t, map[string]schedule.DailyOverride{"p-2": {Status: roster.StatusNoShow}}, doc.Days[8].Overrides)
}
