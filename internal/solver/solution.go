// Package solver implements the selection engine: constraint checking,
// the order-sensitive feeding simulation, capped subset enumeration, and
// the multi-site assignment backtracker.
//
// The engine returns the first N valid selections in a fixed enumeration
// order. It does not rank solutions and it stops examining candidates as
// soon as the cap is reached, so callers must not assume completeness.
package solver

import "github.com/avandyck/symbiont/internal/species"

// Solution is one accepted selection. Window is populated in
// intersection mode, Means in average mode; Log carries the feeding
// simulation transcript for the ecosystem variant.
type Solution struct {
	Species []species.Species           `json:"species"`
	Window  map[string]species.Interval `json:"window,omitempty"`
	Means   map[string]float64          `json:"means,omitempty"`
	Log     []string                    `json:"log,omitempty"`
}

// Names returns the selected species names in selection order.
func (s Solution) Names() []string {
	out := make([]string, len(s.Species))
	for i, sp := range s.Species {
		out[i] = sp.Name
	}
	return out
}

// SiteSelection is the group chosen for one site within an assignment.
type SiteSelection struct {
	Site    string             `json:"site"`
	Species []species.Species  `json:"species"`
	Means   map[string]float64 `json:"means,omitempty"`
}

// Assignment is one full multi-site solution: a selection for every site,
// in site order.
type Assignment struct {
	Sites []SiteSelection `json:"sites"`
}

// Stats counts the work one solve invocation performed. The counters make
// the engine's short-circuit behavior observable: a candidate rejected by
// the checker never increments Simulated, and enumeration halts once
// Accepted reaches the cap.
type Stats struct {
	Enumerated  int `json:"enumerated"`
	CheckerPass int `json:"checker_passed"`
	Simulated   int `json:"simulated"`
	Accepted    int `json:"accepted"`
}

// Result bundles the accepted solutions of one solve with its work
// counters. An empty Solutions slice is a normal outcome.
type Result struct {
	Solutions []Solution `json:"solutions"`
	Stats     Stats      `json:"stats"`
}

// AssignResult is the outcome of a multi-site solve. Assignments is
// populated in no-reuse mode; PerSite in independent mode (one Result per
// site, in site order).
type AssignResult struct {
	Assignments []Assignment `json:"assignments,omitempty"`
	PerSite     []SiteResult `json:"per_site,omitempty"`
	Stats       Stats        `json:"stats"`
}

// SiteResult pairs a site name with its independent-mode solve result.
type SiteResult struct {
	Site string `json:"site"`
	Result
}
