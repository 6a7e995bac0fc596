package solver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/avandyck/symbiont/internal/species"
)

// Verdict is the constraint checker's outcome for one candidate subset.
// The checker is pure: it never mutates its inputs, and a failing verdict
// carries a diagnostic naming the specific attribute or trait at fault.
type Verdict struct {
	OK     bool                        `json:"ok"`
	Reason string                      `json:"reason,omitempty"`
	Window map[string]species.Interval `json:"window,omitempty"`
	Means  map[string]float64          `json:"means,omitempty"`
}

// CheckWindow validates a subset in intersection mode: for every
// attribute, the overlap of the members' ranges must be non-empty. The
// subset must hold exactly k species; a size mismatch is a precondition
// error, not a rejection.
func CheckWindow(subset []species.Species, k int) (Verdict, error) {
	if len(subset) != k {
		return Verdict{}, fmt.Errorf("checker: subset has %d species, want %d", len(subset), k)
	}
	return checkWindow(subset), nil
}

func checkWindow(subset []species.Species) Verdict {
	window := make(map[string]species.Interval)
	for _, s := range subset {
		for attr, iv := range s.Attrs {
			if cur, ok := window[attr]; ok {
				window[attr] = species.Intersect(cur, iv)
			} else {
				window[attr] = iv
			}
		}
	}

	var failing []string
	for _, attr := range sortedAttrs(window) {
		if iv := window[attr]; !iv.Valid() {
			failing = append(failing, fmt.Sprintf("%s window empty (%g > %g)", attr, iv.Min, iv.Max))
		}
	}
	if len(failing) > 0 {
		return Verdict{Reason: strings.Join(failing, "; ")}
	}

	return Verdict{OK: true, Window: window}
}

// CheckAverages validates a subset in average mode against a site: for
// each attribute the site constrains, the arithmetic mean of the members'
// values must lie within the site's interval, bounds inclusive, and the
// union of the members' traits must cover the site's required traits.
// Point attributes read as the interval midpoint. A species missing a
// constrained attribute is a precondition error.
func CheckAverages(subset []species.Species, site species.Site, k int) (Verdict, error) {
	if len(subset) != k {
		return Verdict{}, fmt.Errorf("checker: subset has %d species, want %d", len(subset), k)
	}
	for _, attr := range sortedAttrs(site.Ranges) {
		for _, s := range subset {
			if _, ok := s.Attrs[attr]; !ok {
				return Verdict{}, fmt.Errorf("checker: species %q lacks attribute %q required by site %q", s.Name, attr, site.Name)
			}
		}
	}
	return checkAverages(subset, site), nil
}

func checkAverages(subset []species.Species, site species.Site) Verdict {
	means := make(map[string]float64, len(site.Ranges))
	var failing []string

	for _, attr := range sortedAttrs(site.Ranges) {
		sum := 0.0
		for _, s := range subset {
			sum += s.Attrs[attr].Mid()
		}
		mean := sum / float64(len(subset))
		means[attr] = mean

		if iv := site.Ranges[attr]; !iv.Contains(mean) {
			failing = append(failing, fmt.Sprintf("%s mean %.2f outside [%g, %g]", attr, mean, iv.Min, iv.Max))
		}
	}

	if missing := missingTraits(subset, site.RequiredTraits); len(missing) > 0 {
		failing = append(failing, fmt.Sprintf("missing traits: %s", strings.Join(missing, ", ")))
	}

	if len(failing) > 0 {
		return Verdict{Reason: strings.Join(failing, "; "), Means: means}
	}
	return Verdict{OK: true, Means: means}
}

// CheckFoodCoverage validates the ecosystem dependency rule: every
// consumer in the subset must have at least one of its declared food
// sources also present in the subset (name match is case-insensitive).
// Producers always pass.
func CheckFoodCoverage(subset []species.Species) Verdict {
	present := make(map[string]bool, len(subset))
	for _, s := range subset {
		present[strings.ToLower(s.Name)] = true
	}

	var failing []string
	for _, s := range subset {
		if s.Category != species.Consumer {
			continue
		}
		fed := false
		for _, food := range s.Eats {
			if present[strings.ToLower(food)] {
				fed = true
				break
			}
		}
		if !fed {
			failing = append(failing, fmt.Sprintf("%s has no food source in the selection", s.Name))
		}
	}

	if len(failing) > 0 {
		return Verdict{Reason: strings.Join(failing, "; ")}
	}
	return Verdict{OK: true}
}

// missingTraits returns the required traits no subset member carries,
// preserving the required order.
func missingTraits(subset []species.Species, required []string) []string {
	var missing []string
	for _, trait := range required {
		covered := false
		for _, s := range subset {
			if s.HasTrait(trait) {
				covered = true
				break
			}
		}
		if !covered {
			missing = append(missing, trait)
		}
	}
	return missing
}

// sortedAttrs returns map keys in sorted order so diagnostics and
// aggregates are deterministic.
func sortedAttrs[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
