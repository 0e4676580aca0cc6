/*
Package staffing turns a resolved roster into the operational numbers that
drive daily staffing decisions.

PURPOSE:
  Given who is working on a date, plus a small per-month configuration and
  the job/labor figures already recorded for that date, compute:
    - route headcount and demo sub-crew count
    - labor hours available vs. hours already booked
    - how many more jobs could be booked
    - demo capacity that is going unused

PRECISION:
  All hours use decimal.Decimal, like the ledger amounts elsewhere in the
  codebase. Operators compare these numbers to printed reports, so 6.5 hours
  times 10 techs must be exactly 65.

NON-NEGATIVE:
  Every metric is clamped at zero except BaseWorkSurplus, which is signed on
  purpose (a negative surplus means the day is overbooked).

SEE ALSO:
  - aggregate.go: The formulas
  - forecast.go:  Expected new jobs per day of week
*/
package staffing

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// INPUTS
// =============================================================================

// Config is the per-month numeric configuration.
type Config struct {
	AverageDriveTimeHours      decimal.Decimal
	OvertimeHoursPerTechPerDay decimal.Decimal
	AverageJobDurationHours    decimal.Decimal
}

// NewConfig builds a Config from float inputs.
func NewConfig(driveTime, overtime, jobDuration float64) Config {
	return Config{
		AverageDriveTimeHours:      decimal.NewFromFloat(driveTime),
		OvertimeHoursPerTechPerDay: decimal.NewFromFloat(overtime),
		AverageJobDurationHours:    decimal.NewFromFloat(jobDuration),
	}
}

// DailyStats are job and labor figures already recorded for a date. They are
// opaque inputs; nothing here computes them.
type DailyStats struct {
	TotalLaborHours       decimal.Decimal
	DTLaborHours          decimal.Decimal
	SubTeamCount          int
	SubContractorJobHours []decimal.Decimal

	// ForecastedNewJobs overrides the day-of-week default when set.
	ForecastedNewJobs *int
}

// =============================================================================
// OUTPUT
// =============================================================================

type Metrics struct {
	HoursPerTech            decimal.Decimal
	TechsOnRoute            int
	DemoTechsWorking        int
	SubTeams                int
	HoursAvailable          decimal.Decimal
	DTHoursAvailable        decimal.Decimal
	TotalLaborHours         decimal.Decimal
	DTHours                 decimal.Decimal
	BaseWorkSurplus         decimal.Decimal
	PotentialNewJobs        int
	SubHoursHandled         decimal.Decimal
	InternalDemoHoursNeeded decimal.Decimal
	InefficientDemoHours    decimal.Decimal
	ForecastedNewJobs       int
	AvailableHoursGoal      decimal.Decimal
}
