package solver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avandyck/symbiont/internal/species"
)

// EntityState is the mutable per-species simulation state: what remains
// of its capacity and of its requirement.
type EntityState struct {
	Provided float64 `json:"provided"`
	Needed   float64 `json:"needed"`
}

// Alive reports whether the species still has capacity left.
func (s EntityState) Alive() bool { return s.Provided > 0 }

// Satisfied reports whether the species' requirement has been met.
func (s EntityState) Satisfied() bool { return s.Needed <= 0 }

// SimResult is the feeding simulation outcome. Log records each feeding
// step in processing order and is purely informational; Final maps
// species name to its end state.
type SimResult struct {
	OK       bool                   `json:"ok"`
	Log      []string               `json:"log,omitempty"`
	Final    map[string]EntityState `json:"final,omitempty"`
	Starved  string                 `json:"starved,omitempty"`  // consumer whose requirement went unmet
	Depleted []string               `json:"depleted,omitempty"` // species eaten down to zero capacity
}

// Simulate runs the feeding pass over an already-checked selection. The
// input is never mutated; all bookkeeping happens on a private copy.
//
// Species feed in descending order of initial capacity, ties keeping the
// order of the input slice. Each consumer draws from its declared food
// sources that are present with positive remaining capacity, richest
// current source first (equal sources in declared order), taking
// min(remaining requirement, source capacity) per step. A consumer left
// short fails the whole selection immediately and no later species feed.
//
// Depletion is deliberately not checked as it happens: only after every
// consumer has fed does a final sweep fail the selection if any species
// was eaten down to zero. A species can therefore fully feed and still
// doom the selection. This matches the puzzle's accepted rules.
func Simulate(selection []species.Species) SimResult {
	state := make(map[string]EntityState, len(selection))
	for _, s := range selection {
		state[s.Name] = EntityState{Provided: s.Provided, Needed: s.Needed}
	}

	order := make([]species.Species, len(selection))
	copy(order, selection)
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Provided > order[j].Provided
	})

	res := SimResult{Final: state}

	for _, s := range order {
		if s.Category == species.Producer {
			res.Log = append(res.Log, fmt.Sprintf("%s (%g): producer", s.Name, s.Provided))
			continue
		}

		need := s.Needed
		foods := eligibleFoods(s, state)

		for _, food := range foods {
			if need <= 0 {
				break
			}
			fs := state[food]
			bite := need
			if fs.Provided < bite {
				bite = fs.Provided
			}
			fs.Provided -= bite
			need -= bite
			state[food] = fs
			res.Log = append(res.Log, fmt.Sprintf("%s eats %s: %g - %g = %g",
				s.Name, food, fs.Provided+bite, bite, fs.Provided))
		}

		cs := state[s.Name]
		cs.Needed = need
		state[s.Name] = cs

		if need > 0 {
			res.Starved = s.Name
			res.Log = append(res.Log, fmt.Sprintf("%s starves (short %g)", s.Name, need))
			return res
		}
	}

	// Final sweep: anything eaten down to zero kills the selection even
	// though every feeding step above succeeded.
	for _, s := range order {
		if !state[s.Name].Alive() {
			res.Depleted = append(res.Depleted, s.Name)
		}
	}
	if len(res.Depleted) > 0 {
		res.Log = append(res.Log, fmt.Sprintf("consumed to extinction: %s", strings.Join(res.Depleted, ", ")))
		return res
	}

	res.OK = true
	res.Log = append(res.Log, fmt.Sprintf("all %d survive", len(selection)))
	return res
}

// eligibleFoods returns the consumer's declared food sources that are
// present in the selection with positive current capacity, sorted by
// descending current capacity; equal capacities keep declared order.
func eligibleFoods(consumer species.Species, state map[string]EntityState) []string {
	var foods []string
	for _, food := range consumer.Eats {
		if name, ok := resolveName(food, state); ok && state[name].Provided > 0 {
			foods = append(foods, name)
		}
	}
	sort.SliceStable(foods, func(i, j int) bool {
		return state[foods[i]].Provided > state[foods[j]].Provided
	})
	return foods
}

// resolveName finds the state key matching a food-source name,
// case-insensitive.
func resolveName(name string, state map[string]EntityState) (string, bool) {
	if _, ok := state[name]; ok {
		return name, true
	}
	for key := range state {
		if strings.EqualFold(key, name) {
			return key, true
		}
	}
	return "", false
}
