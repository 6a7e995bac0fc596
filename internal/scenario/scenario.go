// Package scenario supplies the datasets the solver runs against:
// built-in puzzles, YAML-defined ones, and procedurally generated pools.
package scenario

import (
	"fmt"

	"github.com/avandyck/symbiont/internal/species"
)

// Variant selects which solve pipeline a scenario is played with.
type Variant string

const (
	// VariantEcosystem: shared habitat window + food-web simulation.
	VariantEcosystem Variant = "ecosystem"
	// VariantAssignment: per-site attribute averages + trait coverage.
	VariantAssignment Variant = "assignment"
)

// Scenario bundles a candidate pool with the puzzle it belongs to.
type Scenario struct {
	Name    string         `json:"name"`    // registry key, e.g. "reef"
	Title   string         `json:"title"`   // human-readable description
	Variant Variant        `json:"variant"`
	Pick    int            `json:"pick"`    // selection size per group
	Pool    species.Pool   `json:"pool"`
	Sites   []species.Site `json:"sites,omitempty"` // assignment variant only
}

// Validate checks the scenario is structurally sound for its variant.
func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	if s.Pick <= 0 {
		return fmt.Errorf("scenario %q: pick must be positive, got %d", s.Name, s.Pick)
	}

	switch s.Variant {
	case VariantEcosystem:
		if len(s.Sites) > 0 {
			return fmt.Errorf("scenario %q: ecosystem scenarios take no sites", s.Name)
		}
	case VariantAssignment:
		if len(s.Sites) == 0 {
			return fmt.Errorf("scenario %q: assignment scenarios need at least one site", s.Name)
		}
		for _, site := range s.Sites {
			if err := site.Validate(); err != nil {
				return fmt.Errorf("scenario %q: %w", s.Name, err)
			}
		}
	default:
		return fmt.Errorf("scenario %q: unknown variant %q", s.Name, s.Variant)
	}

	if err := s.Pool.Validate(); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return nil
}
