// Package api exposes the solver over HTTP. GET endpoints are public
// (read-only); solve POSTs can be gated behind a bearer token.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/avandyck/symbiont/internal/persistence"
	"github.com/avandyck/symbiont/internal/scenario"
	"github.com/avandyck/symbiont/internal/solver"
)

// Server serves scenarios, solve requests and stored runs.
type Server struct {
	DB       *persistence.DB // optional; runs are persisted when set
	Port     int
	AdminKey string // bearer token for POST endpoints; empty = POSTs open
}

// Handler builds the route table. Split out from Start so tests can
// drive the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/scenarios", s.handleScenarios)
	mux.HandleFunc("/api/v1/runs", s.handleRuns)

	mux.HandleFunc("/api/v1/solve", s.adminOnly(s.handleSolve))
	mux.HandleFunc("/api/v1/assign", s.adminOnly(s.handleAssign))

	return mux
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, s.Handler()); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// adminOnly wraps a handler to require bearer token auth on POST
// requests when an admin key is configured.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey != "" && !s.checkBearerToken(r) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (s *Server) checkBearerToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Bearer ") && strings.TrimPrefix(auth, "Bearer ") == s.AdminKey
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	type scenarioSummary struct {
		Name    string `json:"name"`
		Title   string `json:"title"`
		Variant string `json:"variant"`
		Pick    int    `json:"pick"`
		Pool    int    `json:"pool_size"`
		Sites   int    `json:"sites,omitempty"`
	}

	var result []scenarioSummary
	for _, scn := range scenario.Builtin() {
		result = append(result, scenarioSummary{
			Name:    scn.Name,
			Title:   scn.Title,
			Variant: string(scn.Variant),
			Pick:    scn.Pick,
			Pool:    len(scn.Pool),
			Sites:   len(scn.Sites),
		})
	}
	writeJSON(w, result)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.DB == nil {
		http.Error(w, "run store not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	runs, err := s.DB.RecentRuns(limit)
	if err != nil {
		slog.Error("runs query failed", "error", err)
		http.Error(w, "runs query failed", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []persistence.Run{}
	}
	writeJSON(w, runs)
}

// solveRequest is the POST body for /solve and /assign. Pick and
// MaxSolutions default from the scenario and to 5, matching the CLI.
type solveRequest struct {
	Scenario     string `json:"scenario"`
	Pick         int    `json:"pick,omitempty"`
	MaxSolutions int    `json:"max_solutions,omitempty"`
	AllowReuse   bool   `json:"allow_reuse,omitempty"`
	Save         bool   `json:"save,omitempty"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	req, scn, ok := s.decodeRequest(w, r, scenario.VariantEcosystem)
	if !ok {
		return
	}

	res, err := solver.SolveEcosystem(scn.Pool, solver.Options{
		Pick:         req.Pick,
		MaxSolutions: req.MaxSolutions,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Save && s.DB != nil {
		run := persistence.NewRun(scn.Name, string(scn.Variant))
		run.Pick = req.Pick
		run.MaxSolutions = req.MaxSolutions
		run.Enumerated = res.Stats.Enumerated
		run.CheckerPassed = res.Stats.CheckerPass
		run.Simulated = res.Stats.Simulated
		run.Accepted = res.Stats.Accepted
		run.Solutions = res.Solutions
		if err := s.DB.SaveRun(run); err != nil {
			slog.Error("run save failed", "error", err)
		}
	}

	writeJSON(w, res)
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	req, scn, ok := s.decodeRequest(w, r, scenario.VariantAssignment)
	if !ok {
		return
	}

	res, err := solver.AssignSites(scn.Pool, scn.Sites, solver.AssignOptions{
		Pick:         req.Pick,
		MaxSolutions: req.MaxSolutions,
		AllowReuse:   req.AllowReuse,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Save && s.DB != nil {
		run := persistence.NewRun(scn.Name, string(scn.Variant))
		run.Pick = req.Pick
		run.MaxSolutions = req.MaxSolutions
		run.AllowReuse = req.AllowReuse
		run.Enumerated = res.Stats.Enumerated
		run.CheckerPassed = res.Stats.CheckerPass
		run.Accepted = res.Stats.Accepted
		run.Assignments = res.Assignments
		if err := s.DB.SaveRun(run); err != nil {
			slog.Error("run save failed", "error", err)
		}
	}

	writeJSON(w, res)
}

// decodeRequest parses the solve body, resolves the scenario and checks
// it matches the endpoint's variant.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, want scenario.Variant) (solveRequest, scenario.Scenario, bool) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return req, scenario.Scenario{}, false
	}

	scn, err := scenario.Lookup(req.Scenario)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return req, scenario.Scenario{}, false
	}
	if scn.Variant != want {
		http.Error(w, fmt.Sprintf("scenario %q is a %s puzzle", scn.Name, scn.Variant), http.StatusBadRequest)
		return req, scenario.Scenario{}, false
	}

	if req.Pick <= 0 {
		req.Pick = scn.Pick
	}
	if req.MaxSolutions <= 0 {
		req.MaxSolutions = 5
	}
	return req, scn, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response failed", "error", err)
	}
}
