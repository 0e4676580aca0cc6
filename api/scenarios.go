/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the store with a realistic
	crew for demos. Each scenario creates people with recurring rules, a
	staffing config for the current month, and recorded figures for today.

AVAILABLE SCENARIOS:

	small-crew:          Six techs, two demo techs, weekday defaults only
	alternating-fridays: Techs split across every-other-week Friday rules
	short-staffed:       Sick calls and vacation on an overbooked day

HOW SCENARIOS WORK:
 1. Reset store (clear all data)
 2. Create people and their rules
 3. Save the current month's staffing config
 4. Save today's recorded figures
 5. Optionally save day edits (overrides)

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "short-staffed"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the store. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Handler struct
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jbrannon972/MITAPP-sub000/roster"
	"github.com/jbrannon972/MITAPP-sub000/schedule"
	"github.com/jbrannon972/MITAPP-sub000/staffing"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "small-crew",
		Name:        "Small Crew",
		Description: "Six route techs and two demo techs on weekday defaults",
	},
	{
		ID:          "alternating-fridays",
		Name:        "Alternating Fridays",
		Description: "Half the crew off on even-week Fridays, half on odd-week Fridays",
	},
	{
		ID:          "short-staffed",
		Name:        "Short Staffed",
		Description: "Sick calls and vacation on a heavily booked day",
	},
}

// ListScenarios returns all available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{ID: current, Name: current})
}

// LoadScenario resets the store and loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var load func(context.Context) error
	switch req.ScenarioID {
	case "small-crew":
		load = h.loadSmallCrewScenario
	case "alternating-fridays":
		load = h.loadAlternatingFridaysScenario
	case "short-staffed":
		load = h.loadShortStaffedScenario
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	ctx := r.Context()

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.Service.Reset(ctx); err != nil {
		h.writeServiceError(w, "Failed to reset store", err)
		return
	}
	h.currentScenario = ""

	if err := load(ctx); err != nil {
		h.writeServiceError(w, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}
	h.currentScenario = req.ScenarioID

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "loaded",
		"scenario": req.ScenarioID,
	})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.Service.Reset(r.Context()); err != nil {
		h.writeServiceError(w, "Failed to reset store", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadSmallCrewScenario(ctx context.Context) error {
	today := h.Service.Today()
	hired := today.AddDate(-1, 0, 0)

	crew := []roster.Person{
		{Name: "Avery Cole", Role: roster.RoleMITLead, Zone: "Zone 1"},
		{Name: "Blake Ortiz", Role: roster.RoleMITTech, Zone: "Zone 1"},
		{Name: "Casey Lin", Role: roster.RoleMITTech, Zone: "Zone 1"},
		{Name: "Devon Price", Role: roster.RoleMITTech, Zone: "Zone 2"},
		{Name: "Emery Shah", Role: roster.RoleMITTech, Zone: "Zone 2"},
		{Name: "Finley Ross", Role: roster.RoleMITTech, Zone: "Zone 3"},
		{Name: "Gray Novak", Role: roster.RoleSecondShiftLead, Zone: "Zone 3"},
		{Name: "Harper Diaz", Role: roster.RoleDemoTech},
		{Name: "Indigo Park", Role: roster.RoleDemoTech},
		{Name: "Jules Reyes", Role: roster.RoleWarehouse},
	}
	for _, p := range crew {
		p.HireDate = hired
		if _, err := h.Service.SavePerson(ctx, p); err != nil {
			return err
		}
	}

	if err := h.saveDemoConfig(ctx, today); err != nil {
		return err
	}
	return h.Service.SaveStats(ctx, today, staffing.DailyStats{
		TotalLaborHours:       decimal.NewFromInt(38),
		DTLaborHours:          decimal.NewFromInt(9),
		SubTeamCount:          1,
		SubContractorJobHours: []decimal.Decimal{decimal.NewFromInt(5)},
	})
}

func (h *Handler) loadAlternatingFridaysScenario(ctx context.Context) error {
	today := h.Service.Today()
	hired := today.AddDate(-1, 0, 0)
	friday := []int{int(time.Friday)}

	crew := []struct {
		name   string
		role   roster.Role
		anchor int
	}{
		{"Kai Morgan", roster.RoleMITTech, 0},
		{"Lane Foster", roster.RoleMITTech, 0},
		{"Marlow Quinn", roster.RoleMITTech, 0},
		{"Noel Brooks", roster.RoleMITTech, 1},
		{"Oakley Hayes", roster.RoleMITTech, 1},
		{"Parker Wells", roster.RoleMITTech, 1},
		{"Quinn Ellis", roster.RoleDemoTech, 0},
		{"Reese Tanaka", roster.RoleDemoTech, 1},
	}
	for _, c := range crew {
		p := roster.Person{
			Name:     c.name,
			Role:     c.role,
			HireDate: hired,
			Rules: []roster.RecurringRule{{
				Days:       friday,
				Status:     roster.StatusOff,
				Frequency:  roster.EveryOtherWeek,
				WeekAnchor: c.anchor,
			}},
		}
		if _, err := h.Service.SavePerson(ctx, p); err != nil {
			return err
		}
	}

	// One trainee works Saturdays until training ends.
	trainingEnd := today.AddDate(0, 1, 0)
	trainee := roster.Person{
		Name:            "Sage Whitman",
		Role:            roster.RoleMITTech,
		HireDate:        today.AddDate(0, -1, 0),
		InTraining:      true,
		TrainingEndDate: &trainingEnd,
		Rules: []roster.RecurringRule{{
			Days:   []int{int(time.Saturday)},
			Status: roster.StatusWorking,
			Hours:  "8-12",
		}},
	}
	if _, err := h.Service.SavePerson(ctx, trainee); err != nil {
		return err
	}

	if err := h.saveDemoConfig(ctx, today); err != nil {
		return err
	}
	return h.Service.SaveStats(ctx, today, staffing.DailyStats{
		TotalLaborHours: decimal.NewFromInt(30),
		DTLaborHours:    decimal.NewFromInt(6),
	})
}

func (h *Handler) loadShortStaffedScenario(ctx context.Context) error {
	today := h.Service.Today()
	hired := today.AddDate(-2, 0, 0)

	names := []string{"Tatum Reed", "Uma Castillo", "Vale Mercer", "Wren Holt", "Xen Abbott", "Yael Burke"}
	var ids []string
	for _, name := range names {
		p, err := h.Service.SavePerson(ctx, roster.Person{Name: name, Role: roster.RoleMITTech, HireDate: hired})
		if err != nil {
			return err
		}
		ids = append(ids, p.ID)
	}
	if _, err := h.Service.SavePerson(ctx, roster.Person{Name: "Zion Frost", Role: roster.RoleDemoTech, HireDate: hired}); err != nil {
		return err
	}

	proposals := []schedule.Proposal{
		{PersonID: ids[0], Status: roster.StatusSick},
		{PersonID: ids[1], Status: roster.StatusVacation},
		{PersonID: ids[2], Status: roster.StatusWorking, Hours: "7-3"},
	}
	if _, err := h.Service.SaveDay(ctx, today, proposals, "Two out, one early start"); err != nil {
		return err
	}

	if err := h.saveDemoConfig(ctx, today); err != nil {
		return err
	}
	return h.Service.SaveStats(ctx, today, staffing.DailyStats{
		TotalLaborHours:       decimal.NewFromInt(44),
		DTLaborHours:          decimal.NewFromInt(14),
		SubTeamCount:          2,
		SubContractorJobHours: []decimal.Decimal{decimal.NewFromInt(6), decimal.NewFromInt(5)},
	})
}

func (h *Handler) saveDemoConfig(ctx context.Context, today time.Time) error {
	return h.Service.SaveConfig(ctx, today.Year(), today.Month(), staffing.NewConfig(0.5, 0, 3))
}
