package staffing

import "time"

// Forecaster predicts how many new jobs will be booked on a date.
type Forecaster interface {
	ForecastNewJobs(date time.Time) int
}

// DefaultForecast is the day-of-week fallback: 3 on weekdays, 1 on Saturday,
// none on Sunday.
type DefaultForecast struct{}

func (DefaultForecast) ForecastNewJobs(date time.Time) int {
	switch date.Weekday() {
	case time.Saturday:
		return 1
	case time.Sunday:
		return 0
	default:
		return 3
	}
}
