/*
scenarios_test.go - Unit tests for demo scenarios

PURPOSE:
	Tests that each scenario correctly sets up the expected state:
	- People are created
	- Config and today's figures are stored
	- Day edits show up as overrides

These tests double as integration tests of the whole handler stack.
*/
package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbrannon972/MITAPP-sub000/roster"
)

func loadScenario(t *testing.T, router http.Handler, id string) {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/api/scenarios/load", map[string]string{"scenario_id": id})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestListScenarios(t *testing.T) {
	router, _ := newTestRouter(t)

	list := decode[[]ScenarioDTO](t, doRequest(t, router, http.MethodGet, "/api/scenarios", nil))
	require.Len(t, list, len(scenarios))
	for _, s := range list {
		assert.NotEmpty(t, s.ID)
		assert.NotEmpty(t, s.Description)
	}
}

func TestLoadScenario_EachScenarioLoads(t *testing.T) {
	expectedPeople := map[string]int{
		"small-crew":          10,
		"alternating-fridays": 9,
		"short-staffed":       7,
	}

	for _, s := range scenarios {
		t.Run(s.ID, func(t *testing.T) {
			router, h := newTestRouter(t)
			loadScenario(t, router, s.ID)

			people := decode[[]PersonDTO](t, doRequest(t, router, http.MethodGet, "/api/people", nil))
			assert.Len(t, people, expectedPeople[s.ID])

			today := h.Service.Today()
			cfg := decode[ConfigDTO](t, doRequest(t, router, http.MethodGet,
				fmt.Sprintf("/api/config/%d/%d", today.Year(), int(today.Month())), nil))
			assert.Equal(t, 3.0, cfg.AverageJobDurationHours)

			stats := decode[StatsDTO](t, doRequest(t, router, http.MethodGet, "/api/stats/"+roster.FormatDate(today), nil))
			assert.Positive(t, stats.TotalLaborHours)

			current := decode[ScenarioDTO](t, doRequest(t, router, http.MethodGet, "/api/scenarios/current", nil))
			assert.Equal(t, s.ID, current.ID)
		})
	}
}

func TestLoadScenario_ShortStaffedOverrides(t *testing.T) {
	router, h := newTestRouter(t)
	loadScenario(t, router, "short-staffed")

	day := decode[DayDTO](t, doRequest(t, router, http.MethodGet, "/api/schedule/"+roster.FormatDate(h.Service.Today()), nil))
	assert.Equal(t, "Two out, one early start", day.Notes)
	assert.Equal(t, 1, day.Counts["sick"])
	assert.Equal(t, 1, day.Counts["vacation"])

	var early int
	for _, e := range day.Entries {
		if e.Hours == "7-3" {
			early++
			assert.Equal(t, "specific-override", e.Provenance)
		}
	}
	assert.Equal(t, 1, early)
}

func TestLoadScenario_ReplacesPreviousData(t *testing.T) {
	router, _ := newTestRouter(t)

	// GIVEN: One scenario loaded
	loadScenario(t, router, "small-crew")

	// WHEN: Loading another
	loadScenario(t, router, "short-staffed")

	// THEN: Only the second scenario's people remain
	people := decode[[]PersonDTO](t, doRequest(t, router, http.MethodGet, "/api/people", nil))
	assert.Len(t, people, 7)
}

func TestLoadScenario_Unknown(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/scenarios/load", map[string]string{"scenario_id": "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetDatabase(t *testing.T) {
	router, _ := newTestRouter(t)
	loadScenario(t, router, "small-crew")

	rec := doRequest(t, router, http.MethodPost, "/api/scenarios/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	people := decode[[]PersonDTO](t, doRequest(t, router, http.MethodGet, "/api/people", nil))
	assert.Empty(t, people)

	rec = doRequest(t, router, http.MethodGet, "/api/scenarios/current", nil)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}
