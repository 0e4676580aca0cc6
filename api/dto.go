/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients (some double as request bodies)
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

DATES AND HOURS:
  Dates are YYYY-MM-DD strings. Hours travel as JSON numbers; the domain
  keeps them as decimals and converts at this boundary only.

VALIDATION:
  Parsing (dates, numbers) happens in the to* helpers below. Business
  validation (roles, required fields) is done by the operations service.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jbrannon972/MITAPP-sub000/operations"
	"github.com/jbrannon972/MITAPP-sub000/roster"
	"github.com/jbrannon972/MITAPP-sub000/schedule"
	"github.com/jbrannon972/MITAPP-sub000/staffing"
)

// =============================================================================
// ROSTER
// =============================================================================

// PersonDTO represents a person in API requests and responses.
type PersonDTO struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	Zone            string    `json:"zone,omitempty"`
	HireDate        string    `json:"hire_date,omitempty"`
	EndDate         *string   `json:"end_date,omitempty"`
	InTraining      bool      `json:"in_training"`
	TrainingEndDate *string   `json:"training_end_date,omitempty"`
	Rules           []RuleDTO `json:"rules"`
}

// RuleDTO is a recurring rule. Days are 0 (Sunday) through 6 (Saturday).
type RuleDTO struct {
	ID         string  `json:"id,omitempty"`
	Days       []int   `json:"days"`
	Status     string  `json:"status"`
	Hours      string  `json:"hours,omitempty"`
	Frequency  string  `json:"frequency,omitempty"`
	WeekAnchor int     `json:"week_anchor,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Priority   int     `json:"priority,omitempty"`
}

// EndPersonRequest sets a person's last day on the roster (exclusive).
type EndPersonRequest struct {
	EndDate string `json:"end_date"`
}

// =============================================================================
// SCHEDULE
// =============================================================================

// EntryDTO is one person's resolved status.
type EntryDTO struct {
	PersonID           string `json:"person_id"`
	Name               string `json:"name"`
	Role               string `json:"role"`
	Zone               string `json:"zone,omitempty"`
	Status             string `json:"status"`
	Hours              string `json:"hours,omitempty"`
	Provenance         string `json:"provenance"`
	SpeciallyScheduled bool   `json:"specially_scheduled"`
	InTraining         bool   `json:"in_training,omitempty"`
}

// DayDTO is a resolved day.
type DayDTO struct {
	Date    string         `json:"date"`
	Notes   string         `json:"notes,omitempty"`
	Entries []EntryDTO     `json:"entries"`
	Counts  map[string]int `json:"counts"`
}

// MonthDTO is the month view, one DayDTO per calendar day.
type MonthDTO struct {
	Year  int      `json:"year"`
	Month int      `json:"month"`
	Days  []DayDTO `json:"days"`
}

// ProposalDTO is an edited value for one person.
type ProposalDTO struct {
	PersonID string `json:"person_id"`
	Status   string `json:"status"`
	Hours    string `json:"hours,omitempty"`
}

// SaveDayRequest carries the edited day. Entries may be the full resolved
// roster; values equal to the rule-or-default resolution are dropped.
type SaveDayRequest struct {
	Notes   string        `json:"notes"`
	Entries []ProposalDTO `json:"entries"`
}

type SaveDayResponse struct {
	Date      string `json:"date"`
	Overrides int    `json:"overrides"`
}

// =============================================================================
// STAFFING
// =============================================================================

// MetricsDTO is staffing.Metrics with hours as numbers.
type MetricsDTO struct {
	Date                    string  `json:"date"`
	HoursPerTech            float64 `json:"hours_per_tech"`
	TechsOnRoute            int     `json:"techs_on_route"`
	DemoTechsWorking        int     `json:"demo_techs_working"`
	SubTeams                int     `json:"sub_teams"`
	HoursAvailable          float64 `json:"hours_available"`
	DTHoursAvailable        float64 `json:"dt_hours_available"`
	TotalLaborHours         float64 `json:"total_labor_hours"`
	DTHours                 float64 `json:"dt_hours"`
	BaseWorkSurplus         float64 `json:"base_work_surplus"`
	PotentialNewJobs        int     `json:"potential_new_jobs"`
	SubHoursHandled         float64 `json:"sub_hours_handled"`
	InternalDemoHoursNeeded float64 `json:"internal_demo_hours_needed"`
	InefficientDemoHours    float64 `json:"inefficient_demo_hours"`
	ForecastedNewJobs       int     `json:"forecasted_new_jobs"`
	AvailableHoursGoal      float64 `json:"available_hours_goal"`
}

// ConfigDTO is the per-month staffing configuration.
type ConfigDTO struct {
	Year                       int     `json:"year"`
	Month                      int     `json:"month"`
	AverageDriveTimeHours      float64 `json:"average_drive_time_hours"`
	OvertimeHoursPerTechPerDay float64 `json:"overtime_hours_per_tech_per_day"`
	AverageJobDurationHours    float64 `json:"average_job_duration_hours"`
}

// StatsDTO is the recorded job/labor figures for a date.
type StatsDTO struct {
	Date                  string    `json:"date"`
	TotalLaborHours       float64   `json:"total_labor_hours"`
	DTLaborHours          float64   `json:"dt_labor_hours"`
	SubTeamCount          int       `json:"sub_team_count"`
	SubContractorJobHours []float64 `json:"sub_contractor_job_hours"`
	ForecastedNewJobs     *int      `json:"forecasted_new_jobs,omitempty"`
}

type SnapshotDTO struct {
	Date       string     `json:"date"`
	RecordedAt string     `json:"recorded_at"`
	Metrics    MetricsDTO `json:"metrics"`
}

// =============================================================================
// MISC
// =============================================================================

// ScenarioDTO describes a demo data set.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toPersonDTO(p roster.Person) PersonDTO {
	dto := PersonDTO{
		ID:              p.ID,
		Name:            p.Name,
		Role:            string(p.Role),
		Zone:            p.Zone,
		EndDate:         formatDatePtr(p.EndDate),
		InTraining:      p.InTraining,
		TrainingEndDate: formatDatePtr(p.TrainingEndDate),
		Rules:           make([]RuleDTO, len(p.Rules)),
	}
	if !p.HireDate.IsZero() {
		dto.HireDate = roster.FormatDate(p.HireDate)
	}
	for i, r := range p.Rules {
		dto.Rules[i] = RuleDTO{
			ID:         r.ID,
			Days:       r.Days,
			Status:     string(r.Status),
			Hours:      r.Hours,
			Frequency:  string(r.Frequency),
			WeekAnchor: r.WeekAnchor,
			StartDate:  formatDatePtr(r.StartDate),
			EndDate:    formatDatePtr(r.EndDate),
			Priority:   r.Priority,
		}
		if dto.Rules[i].Days == nil {
			dto.Rules[i].Days = []int{}
		}
	}
	return dto
}

func toPerson(dto PersonDTO) (roster.Person, error) {
	p := roster.Person{
		ID:         dto.ID,
		Name:       dto.Name,
		Role:       roster.Role(dto.Role),
		Zone:       dto.Zone,
		InTraining: dto.InTraining,
	}

	var err error
	if dto.HireDate != "" {
		if p.HireDate, err = parseDate(dto.HireDate); err != nil {
			return roster.Person{}, err
		}
	}
	if p.EndDate, err = parseDatePtr(dto.EndDate); err != nil {
		return roster.Person{}, err
	}
	if p.TrainingEndDate, err = parseDatePtr(dto.TrainingEndDate); err != nil {
		return roster.Person{}, err
	}

	for i, r := range dto.Rules {
		rule := roster.RecurringRule{
			ID:         r.ID,
			Days:       r.Days,
			Status:     roster.Status(r.Status),
			Hours:      r.Hours,
			Frequency:  roster.Frequency(r.Frequency),
			WeekAnchor: r.WeekAnchor,
			Priority:   r.Priority,
		}
		if rule.StartDate, err = parseDatePtr(r.StartDate); err != nil {
			return roster.Person{}, fmt.Errorf("rules[%d].start_date: %w", i, err)
		}
		if rule.EndDate, err = parseDatePtr(r.EndDate); err != nil {
			return roster.Person{}, fmt.Errorf("rules[%d].end_date: %w", i, err)
		}
		p.Rules = append(p.Rules, rule)
	}
	return p, nil
}

func toEntryDTO(e schedule.ResolvedDayEntry) EntryDTO {
	return EntryDTO{
		PersonID:           e.PersonID,
		Name:               e.Name,
		Role:               string(e.Role),
		Zone:               e.Zone,
		Status:             string(e.Status),
		Hours:              e.Hours,
		Provenance:         string(e.Provenance),
		SpeciallyScheduled: e.SpeciallyScheduled(),
		InTraining:         e.InTraining,
	}
}

func toDayDTO(d schedule.DayResult) DayDTO {
	dto := DayDTO{
		Date:    roster.FormatDate(d.Date),
		Notes:   d.Notes,
		Entries: make([]EntryDTO, len(d.Entries)),
		Counts:  statusCounts(d.Entries),
	}
	for i, e := range d.Entries {
		dto.Entries[i] = toEntryDTO(e)
	}
	return dto
}

func statusCounts(entries []schedule.ResolvedDayEntry) map[string]int {
	counts := schedule.StatusCounts(entries)
	out := make(map[string]int, len(counts))
	for status, n := range counts {
		out[string(status)] = n
	}
	return out
}

func toProposals(dtos []ProposalDTO) []schedule.Proposal {
	out := make([]schedule.Proposal, len(dtos))
	for i, p := range dtos {
		out[i] = schedule.Proposal{PersonID: p.PersonID, Status: roster.Status(p.Status), Hours: p.Hours}
	}
	return out
}

func toMetricsDTO(date time.Time, m staffing.Metrics) MetricsDTO {
	return MetricsDTO{
		Date:                    roster.FormatDate(date),
		HoursPerTech:            m.HoursPerTech.InexactFloat64(),
		TechsOnRoute:            m.TechsOnRoute,
		DemoTechsWorking:        m.DemoTechsWorking,
		SubTeams:                m.SubTeams,
		HoursAvailable:          m.HoursAvailable.InexactFloat64(),
		DTHoursAvailable:        m.DTHoursAvailable.InexactFloat64(),
		TotalLaborHours:         m.TotalLaborHours.InexactFloat64(),
		DTHours:                 m.DTHours.InexactFloat64(),
		BaseWorkSurplus:         m.BaseWorkSurplus.InexactFloat64(),
		PotentialNewJobs:        m.PotentialNewJobs,
		SubHoursHandled:         m.SubHoursHandled.InexactFloat64(),
		InternalDemoHoursNeeded: m.InternalDemoHoursNeeded.InexactFloat64(),
		InefficientDemoHours:    m.InefficientDemoHours.InexactFloat64(),
		ForecastedNewJobs:       m.ForecastedNewJobs,
		AvailableHoursGoal:      m.AvailableHoursGoal.InexactFloat64(),
	}
}

func toConfigDTO(year int, month time.Month, c staffing.Config) ConfigDTO {
	return ConfigDTO{
		Year:                       year,
		Month:                      int(month),
		AverageDriveTimeHours:      c.AverageDriveTimeHours.InexactFloat64(),
		OvertimeHoursPerTechPerDay: c.OvertimeHoursPerTechPerDay.InexactFloat64(),
		AverageJobDurationHours:    c.AverageJobDurationHours.InexactFloat64(),
	}
}

func toConfig(dto ConfigDTO) staffing.Config {
	return staffing.NewConfig(dto.AverageDriveTimeHours, dto.OvertimeHoursPerTechPerDay, dto.AverageJobDurationHours)
}

func toStatsDTO(date time.Time, s staffing.DailyStats) StatsDTO {
	dto := StatsDTO{
		Date:                  roster.FormatDate(date),
		TotalLaborHours:       s.TotalLaborHours.InexactFloat64(),
		DTLaborHours:          s.DTLaborHours.InexactFloat64(),
		SubTeamCount:          s.SubTeamCount,
		SubContractorJobHours: make([]float64, len(s.SubContractorJobHours)),
		ForecastedNewJobs:     s.ForecastedNewJobs,
	}
	for i, h := range s.SubContractorJobHours {
		dto.SubContractorJobHours[i] = h.InexactFloat64()
	}
	return dto
}

func toStats(dto StatsDTO) staffing.DailyStats {
	s := staffing.DailyStats{
		TotalLaborHours:   decimal.NewFromFloat(dto.TotalLaborHours),
		DTLaborHours:      decimal.NewFromFloat(dto.DTLaborHours),
		SubTeamCount:      dto.SubTeamCount,
		ForecastedNewJobs: dto.ForecastedNewJobs,
	}
	for _, h := range dto.SubContractorJobHours {
		s.SubContractorJobHours = append(s.SubContractorJobHours, decimal.NewFromFloat(h))
	}
	return s
}

func toSnapshotDTO(s operations.Snapshot) SnapshotDTO {
	return SnapshotDTO{
		Date:       roster.FormatDate(s.Date),
		RecordedAt: s.RecordedAt.UTC().Format(time.RFC3339),
		Metrics:    toMetricsDTO(s.Date, s.Metrics),
	}
}

// parseDate wraps roster.ParseDate so that handlers can map the failure to
// a 400 with errors.Is(err, operations.ErrInvalidDate).
func parseDate(s string) (time.Time, error) {
	t, err := roster.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", operations.ErrInvalidDate, err)
	}
	return t, nil
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := roster.FormatDate(*t)
	return &s
}
