// Package metrics provides Prometheus metrics for the staffing service.
// The staffing gauges always describe the most recent snapshot taken.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jbrannon972/MITAPP-sub000/staffing"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// =============================================================================
// STAFFING GAUGES - Latest snapshot
// =============================================================================

// TechsOnRoute is the route headcount for the last snapshot date.
var TechsOnRoute = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "techs_on_route",
	Help:      "Route-eligible technicians working on the snapshot date",
})

// DemoTechsWorking is the working demo technician count.
var DemoTechsWorking = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "demo_techs_working",
	Help:      "Demo technicians working on the snapshot date",
})

var SubTeams = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "sub_teams",
	Help:      "Demo sub-crews formed from working demo technicians",
})

// HoursAvailable is route labor capacity in hours.
var HoursAvailable = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "hours_available",
	Help:      "Route labor hours available on the snapshot date",
})

// BaseWorkSurplus is signed; negative means the day is overbooked.
var BaseWorkSurplus = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "base_work_surplus_hours",
	Help:      "Available route hours minus booked labor hours (may be negative)",
})

var PotentialNewJobs = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "potential_new_jobs",
	Help:      "Additional jobs that fit in the spare route hours",
})

var InefficientDemoHours = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "inefficient_demo_hours",
	Help:      "Demo labor hours available but not needed",
})

var AvailableHoursGoal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "available_hours_goal",
	Help:      "Labor hours needed to cover booked work plus forecasted new jobs",
})

// StatusCount tracks how many people resolved to each status.
var StatusCount = factory.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "staffing",
	Name:      "status_count",
	Help:      "People per resolved status on the snapshot date",
}, []string{"status"})

// =============================================================================
// OPERATIONAL METRICS
// =============================================================================

// CacheLookupsTotal counts resolved-day cache lookups by result (hit, miss).
var CacheLookupsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "schedule",
	Name:      "cache_lookups_total",
	Help:      "Resolved day cache lookups by result",
}, []string{"result"})

// DaySavesTotal counts save-one-day writes.
var DaySavesTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "schedule",
	Name:      "day_saves_total",
	Help:      "Number of single-day schedule saves",
})

// OverridesPersisted tracks the override count written by the last day save.
var OverridesPersisted = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "schedule",
	Name:      "overrides_persisted",
	Help:      "Overrides stored for the most recently saved day",
})

// ResolveDurationSeconds tracks time to resolve one day from the stores.
var ResolveDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "schedule",
	Name:      "resolve_duration_seconds",
	Help:      "Time taken to load and resolve one day",
	Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
})

// SnapshotErrorsTotal counts failed background snapshots.
var SnapshotErrorsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "staffing",
	Name:      "snapshot_errors_total",
	Help:      "Background staffing snapshots that failed",
})

// =============================================================================
// Helper Functions
// =============================================================================

// PublishStaffing sets the staffing gauges from m.
func PublishStaffing(m staffing.Metrics) {
	TechsOnRoute.Set(float64(m.TechsOnRoute))
	DemoTechsWorking.Set(float64(m.DemoTechsWorking))
	SubTeams.Set(float64(m.SubTeams))
	HoursAvailable.Set(m.HoursAvailable.InexactFloat64())
	BaseWorkSurplus.Set(m.BaseWorkSurplus.InexactFloat64())
	PotentialNewJobs.Set(float64(m.PotentialNewJobs))
	InefficientDemoHours.Set(m.InefficientDemoHours.InexactFloat64())
	AvailableHoursGoal.Set(m.AvailableHoursGoal.InexactFloat64())
}

// PublishStatusCounts replaces the per-status gauges.
func PublishStatusCounts(counts map[string]int) {
	StatusCount.Reset()
	for status, n := range counts {
		StatusCount.WithLabelValues(status).Set(float64(n))
	}
}
