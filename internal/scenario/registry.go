package scenario

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Builtin returns the built-in scenarios in presentation order.
func Builtin() []Scenario {
	return []Scenario{Reef(), Mountain(), Seawolf()}
}

// Lookup finds a built-in scenario by name, case-insensitive. An unknown
// name comes back with a "did you mean" suggestion when a built-in name
// is close enough.
func Lookup(name string) (Scenario, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, scn := range Builtin() {
		if strings.ToLower(scn.Name) == want {
			return scn, nil
		}
	}

	if suggestion := closest(want); suggestion != "" {
		return Scenario{}, fmt.Errorf("unknown scenario %q (did you mean %q?)", name, suggestion)
	}
	return Scenario{}, fmt.Errorf("unknown scenario %q", name)
}

// closest returns the built-in name within edit distance 3 of the input,
// or "" when nothing is plausibly close.
func closest(name string) string {
	best := ""
	bestDist := 4
	for _, scn := range Builtin() {
		d := levenshtein.ComputeDistance(name, strings.ToLower(scn.Name))
		if d < bestDist {
			best = scn.Name
			bestDist = d
		}
	}
	return best
}
