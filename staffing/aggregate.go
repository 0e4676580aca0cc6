package staffing

import (
	"time"

	"github.com/jbrannon972/MITAPP-sub000/roster"
	"github.com/jbrannon972/MITAPP-sub000/schedule"
	"github.com/shopspring/decimal"
)

var (
	shiftHours          = decimal.NewFromInt(8)
	prepHoursPerSubTeam = decimal.RequireFromString("1.5")
)

// Aggregator computes Metrics for a resolved day.
type Aggregator struct {
	forecaster Forecaster
}

// NewAggregator creates an aggregator. A nil forecaster uses DefaultForecast.
func NewAggregator(forecaster Forecaster) *Aggregator {
	if forecaster == nil {
		forecaster = DefaultForecast{}
	}
	return &Aggregator{forecaster: forecaster}
}

// Aggregate computes the staffing metrics for date.
//
//	hoursPerTech            = 8 - driveTime + overtime
//	hoursAvailable          = techsOnRoute * hoursPerTech
//	dtHoursAvailable        = demoTechsWorking * hoursPerTech
//	totalLaborHours, dtHours = recorded figures + subTeamCount * 1.5 prep hours
//	baseWorkSurplus         = hoursAvailable - totalLaborHours   (signed)
//	potentialNewJobs        = floor(max(0, surplus) / averageJobDuration)
//	internalDemoHoursNeeded = max(0, dtHours - subHoursHandled)
//	inefficientDemoHours    = max(0, dtHoursAvailable - internalDemoHoursNeeded)
//	availableHoursGoal      = totalLaborHours + dtHours + forecast * averageJobDuration
//
// It never fails: a zero or missing job duration yields zero potential jobs.
func (a *Aggregator) Aggregate(date time.Time, entries []schedule.ResolvedDayEntry, cfg Config, stats DailyStats) Metrics {
	if a == nil {
		a = NewAggregator(nil)
	}

	var m Metrics

	m.HoursPerTech = nonNegative(shiftHours.Sub(cfg.AverageDriveTimeHours).Add(cfg.OvertimeHoursPerTechPerDay))
	m.TechsOnRoute = CountOnRoute(entries)
	m.DemoTechsWorking = CountWorking(entries, roster.RoleDemoTech)
	m.SubTeams = m.DemoTechsWorking / 2

	m.HoursAvailable = m.HoursPerTech.Mul(decimal.NewFromInt(int64(m.TechsOnRoute)))
	m.DTHoursAvailable = m.HoursPerTech.Mul(decimal.NewFromInt(int64(m.DemoTechsWorking)))

	subTeamCount := stats.SubTeamCount
	if subTeamCount < 0 {
		subTeamCount = 0
	}
	prep := prepHoursPerSubTeam.Mul(decimal.NewFromInt(int64(subTeamCount)))
	m.TotalLaborHours = nonNegative(stats.TotalLaborHours.Add(prep))
	m.DTHours = nonNegative(stats.DTLaborHours.Add(prep))

	m.BaseWorkSurplus = m.HoursAvailable.Sub(m.TotalLaborHours)

	jobDuration := nonNegative(cfg.AverageJobDurationHours)
	if jobDuration.IsPositive() {
		jobs, _ := nonNegative(m.BaseWorkSurplus).QuoRem(jobDuration, 0)
		m.PotentialNewJobs = int(jobs.IntPart())
	}

	m.SubHoursHandled = nonNegative(decimal.Sum(decimal.Zero, stats.SubContractorJobHours...))
	m.InternalDemoHoursNeeded = nonNegative(m.DTHours.Sub(m.SubHoursHandled))
	m.InefficientDemoHours = nonNegative(m.DTHoursAvailable.Sub(m.InternalDemoHoursNeeded))

	if stats.ForecastedNewJobs != nil {
		m.ForecastedNewJobs = *stats.ForecastedNewJobs
	} else {
		m.ForecastedNewJobs = a.forecaster.ForecastNewJobs(date)
	}
	if m.ForecastedNewJobs < 0 {
		m.ForecastedNewJobs = 0
	}
	m.AvailableHoursGoal = m.TotalLaborHours.
		Add(m.DTHours).
		Add(decimal.NewFromInt(int64(m.ForecastedNewJobs)).Mul(jobDuration))

	return m
}

// CountOnRoute counts route-eligible entries whose status is working.
func CountOnRoute(entries []schedule.ResolvedDayEntry) int {
	n := 0
	for _, e := range entries {
		if e.RouteEligible() && e.Status == roster.StatusWorking {
			n++
		}
	}
	return n
}

// CountWorking counts working entries with the given role.
func CountWorking(entries []schedule.ResolvedDayEntry, role roster.Role) int {
	n := 0
	for _, e := range entries {
		if e.Role == role && e.Status == roster.StatusWorking {
			n++
		}
	}
	return n
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
