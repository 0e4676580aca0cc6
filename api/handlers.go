/*
handlers.go - HTTP API handlers for the staffing service

PURPOSE:
  Exposes schedule resolution and staffing metrics via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the operations
  service.

ENDPOINTS:
  Roster:
    GET    /api/people                       List people (?active_on=YYYY-MM-DD)
    POST   /api/people                       Create or update a person
    GET    /api/people/{id}                  Get one person
    POST   /api/people/{id}/end              Set end date (never deletes)

  Schedule:
    GET    /api/schedule/{date}              Resolved day
    PUT    /api/schedule/{date}              Save one day
    GET    /api/schedule/month/{year}/{month} Month view

  Staffing:
    GET    /api/staffing/{date}              Staffing metrics
    GET    /api/staffing/snapshots           Recorded snapshots (?from=&to=)
    GET    /api/config/{year}/{month}        Staffing config
    PUT    /api/config/{year}/{month}
    GET    /api/stats/{date}                 Recorded daily figures
    PUT    /api/stats/{date}

  Scenarios:
    GET    /api/scenarios                    List demo data sets
    POST   /api/scenarios/load               Reset and load one

REQUEST FLOW:
  1. Parse HTTP request (path params, JSON body)
  2. Convert DTO to domain values
  3. Call the operations service
  4. Serialize response
  5. Map errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid dates, months, person records, malformed bodies
  - 404: Unknown person
  - 500: Store failures

SECURITY NOTE:
  No authentication or authorization. Access control is handled upstream.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jbrannon972/MITAPP-sub000/operations"
	"github.com/jbrannon972/MITAPP-sub000/roster"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service *operations.Service
	Logger  *zap.Logger

	// Track currently loaded scenario
	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a new handler over the given service.
func NewHandler(svc *operations.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Service: svc, Logger: logger}
}

// =============================================================================
// ROSTER HANDLERS
// =============================================================================

// ListPeople returns the roster, optionally filtered to one date.
func (h *Handler) ListPeople(w http.ResponseWriter, r *http.Request) {
	var activeOn *time.Time
	if q := r.URL.Query().Get("active_on"); q != "" {
		d, err := parseDate(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid active_on date", err)
			return
		}
		activeOn = &d
	}

	people, err := h.Service.ListPeople(r.Context(), activeOn)
	if err != nil {
		h.writeServiceError(w, "Failed to list people", err)
		return
	}

	dtos := make([]PersonDTO, len(people))
	for i, p := range people {
		dtos[i] = toPersonDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SavePerson creates or replaces a person. An empty id creates a new one.
func (h *Handler) SavePerson(w http.ResponseWriter, r *http.Request) {
	var req PersonDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	person, err := toPerson(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid person", err)
		return
	}

	status := http.StatusOK
	if person.ID == "" {
		status = http.StatusCreated
	}

	saved, err := h.Service.SavePerson(r.Context(), person)
	if err != nil {
		h.writeServiceError(w, "Failed to save person", err)
		return
	}
	writeJSON(w, status, toPersonDTO(saved))
}

// GetPerson returns one person.
func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetPerson(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, "Person not found", err)
		return
	}
	writeJSON(w, http.StatusOK, toPersonDTO(p))
}

// EndPerson sets the person's end date.
func (h *Handler) EndPerson(w http.ResponseWriter, r *http.Request) {
	var req EndPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date", err)
		return
	}

	p, err := h.Service.EndPerson(r.Context(), chi.URLParam(r, "id"), end)
	if err != nil {
		h.writeServiceError(w, "Failed to end person", err)
		return
	}
	writeJSON(w, http.StatusOK, toPersonDTO(p))
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// GetDay returns the resolved roster for a date.
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	day, err := h.Service.ResolveDay(r.Context(), date)
	if err != nil {
		h.writeServiceError(w, "Failed to resolve day", err)
		return
	}
	writeJSON(w, http.StatusOK, toDayDTO(day))
}

// SaveDay persists the edited day. Only values that differ from the
// rule-or-default resolution are stored.
func (h *Handler) SaveDay(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	var req SaveDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	n, err := h.Service.SaveDay(r.Context(), date, toProposals(req.Entries), req.Notes)
	if err != nil {
		h.writeServiceError(w, "Failed to save day", err)
		return
	}
	writeJSON(w, http.StatusOK, SaveDayResponse{Date: roster.FormatDate(date), Overrides: n})
}

// GetMonth returns the month view.
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, month, ok := monthParams(w, r)
	if !ok {
		return
	}

	days, err := h.Service.ResolveMonth(r.Context(), year, month)
	if err != nil {
		h.writeServiceError(w, "Failed to resolve month", err)
		return
	}

	dto := MonthDTO{Year: year, Month: int(month), Days: make([]DayDTO, len(days))}
	for i, d := range days {
		dto.Days[i] = toDayDTO(d)
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// STAFFING HANDLERS
// =============================================================================

// GetStaffing returns the staffing metrics for a date.
func (h *Handler) GetStaffing(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	m, err := h.Service.Staffing(r.Context(), date)
	if err != nil {
		h.writeServiceError(w, "Failed to compute staffing", err)
		return
	}
	writeJSON(w, http.StatusOK, toMetricsDTO(date, m))
}

// ListSnapshots returns recorded snapshots. The range defaults to the last
// 30 days.
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	to := h.Service.Today()
	from := to.AddDate(0, 0, -30)

	var err error
	if q := r.URL.Query().Get("from"); q != "" {
		if from, err = parseDate(q); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date", err)
			return
		}
	}
	if q := r.URL.Query().Get("to"); q != "" {
		if to, err = parseDate(q); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date", err)
			return
		}
	}

	snaps, err := h.Service.ListSnapshots(r.Context(), from, to)
	if err != nil {
		h.writeServiceError(w, "Failed to list snapshots", err)
		return
	}

	dtos := make([]SnapshotDTO, len(snaps))
	for i, s := range snaps {
		dtos[i] = toSnapshotDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	year, month, ok := monthParams(w, r)
	if !ok {
		return
	}

	cfg, err := h.Service.GetConfig(r.Context(), year, month)
	if err != nil {
		h.writeServiceError(w, "Failed to load config", err)
		return
	}
	writeJSON(w, http.StatusOK, toConfigDTO(year, month, cfg))
}

func (h *Handler) SaveConfig(w http.ResponseWriter, r *http.Request) {
	year, month, ok := monthParams(w, r)
	if !ok {
		return
	}

	var req ConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	cfg := toConfig(req)
	if err := h.Service.SaveConfig(r.Context(), year, month, cfg); err != nil {
		h.writeServiceError(w, "Failed to save config", err)
		return
	}
	writeJSON(w, http.StatusOK, toConfigDTO(year, month, cfg))
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	stats, err := h.Service.GetStats(r.Context(), date)
	if err != nil {
		h.writeServiceError(w, "Failed to load stats", err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsDTO(date, stats))
}

func (h *Handler) SaveStats(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(w, r)
	if !ok {
		return
	}

	var req StatsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	stats := toStats(req)
	if err := h.Service.SaveStats(r.Context(), date, stats); err != nil {
		h.writeServiceError(w, "Failed to save stats", err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsDTO(date, stats))
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func dateParam(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	date, err := parseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return time.Time{}, false
	}
	return date, true
}

func monthParams(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return 0, 0, false
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return 0, 0, false
	}
	return year, time.Month(month), true
}

// writeServiceError maps operations errors to a status code.
func (h *Handler) writeServiceError(w http.ResponseWriter, message string, err error) {
	switch {
	case operations.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case operations.IsClientError(err):
		var verr *operations.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   message,
				Code:    "validation_failed",
				Details: map[string]string{"field": verr.Field, "message": verr.Message},
			})
			return
		}
		writeError(w, http.StatusBadRequest, message, err)
	default:
		h.Logger.Error(message, zap.Error(err))
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
