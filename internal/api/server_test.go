package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avandyck/symbiont/internal/persistence"
	"github.com/avandyck/symbiont/internal/solver"
)

func newTestServer(t *testing.T, adminKey string, withDB bool) *httptest.Server {
	t.Helper()

	srv := &Server{AdminKey: adminKey}
	if withDB {
		db, err := persistence.Open(filepath.Join(t.TempDir(), "runs.db"))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		srv.DB = db
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, token string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestScenariosEndpoint(t *testing.T) {
	ts := newTestServer(t, "", false)

	resp, err := http.Get(ts.URL + "/api/v1/scenarios")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var list []struct {
		Name    string `json:"name"`
		Variant string `json:"variant"`
		Pick    int    `json:"pick"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 3)
	assert.Equal(t, "reef", list[0].Name)
	assert.Equal(t, "ecosystem", list[0].Variant)
}

func TestSolveEndpoint(t *testing.T) {
	ts := newTestServer(t, "", false)

	resp := postJSON(t, ts.URL+"/api/v1/solve", "", map[string]any{
		"scenario":      "reef",
		"max_solutions": 2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res solver.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Greater(t, res.Stats.Enumerated, 0)
	assert.LessOrEqual(t, res.Stats.Accepted, 2)
}

func TestSolveUnknownScenario(t *testing.T) {
	ts := newTestServer(t, "", false)

	resp := postJSON(t, ts.URL+"/api/v1/solve", "", map[string]any{"scenario": "atlantis"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSolveWrongVariant(t *testing.T) {
	ts := newTestServer(t, "", false)

	resp := postJSON(t, ts.URL+"/api/v1/solve", "", map[string]any{"scenario": "seawolf"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/api/v1/assign", "", map[string]any{"scenario": "reef"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSolveInvalidJSON(t *testing.T) {
	ts := newTestServer(t, "", false)

	resp, err := http.Post(ts.URL+"/api/v1/solve", "application/json", bytes.NewReader([]byte("{broken")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSolveRequiresMethodPost(t *testing.T) {
	ts := newTestServer(t, "", false)

	resp, err := http.Get(ts.URL + "/api/v1/solve")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestAdminKeyGatesSolve(t *testing.T) {
	ts := newTestServer(t, "hunter2", false)

	body := map[string]any{"scenario": "reef", "max_solutions": 1}

	resp := postJSON(t, ts.URL+"/api/v1/solve", "", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/api/v1/solve", "wrong", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/api/v1/solve", "hunter2", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAssignEndpoint(t *testing.T) {
	ts := newTestServer(t, "", false)

	resp := postJSON(t, ts.URL+"/api/v1/assign", "", map[string]any{
		"scenario":    "seawolf",
		"allow_reuse": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res solver.AssignResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Len(t, res.PerSite, 3)
}

func TestRunsWithoutStore(t *testing.T) {
	ts := newTestServer(t, "", false)

	resp, err := http.Get(ts.URL + "/api/v1/runs")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSolveSavesRun(t *testing.T) {
	ts := newTestServer(t, "", true)

	resp := postJSON(t, ts.URL+"/api/v1/solve", "", map[string]any{
		"scenario":      "reef",
		"max_solutions": 1,
		"save":          true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	listResp, err := http.Get(ts.URL + "/api/v1/runs")
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var runs []persistence.Run
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "reef", runs[0].Scenario)
	assert.Equal(t, "ecosystem", runs[0].Variant)
}
