package species

import (
	"fmt"
	"strings"
)

// Pool is the ordered candidate pool. Order matters: the solver's
// tie-breaking rules are defined relative to pool position.
type Pool []Species

// Names returns the species names in pool order.
func (p Pool) Names() []string {
	out := make([]string, len(p))
	for i, s := range p {
		out[i] = s.Name
	}
	return out
}

// Contains reports whether the pool holds a species with the given name,
// case-insensitive.
func (p Pool) Contains(name string) bool {
	for _, s := range p {
		if strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}

// Validate checks the pool's structural preconditions: unique names,
// category consistency, well-formed attribute intervals, and food-source
// references that resolve within the pool. A pool that fails Validate is
// a caller error, distinct from a candidate subset merely being rejected.
func (p Pool) Validate() error {
	seen := make(map[string]bool, len(p))
	for _, s := range p {
		key := strings.ToLower(s.Name)
		if s.Name == "" {
			return fmt.Errorf("species with empty name")
		}
		if seen[key] {
			return fmt.Errorf("duplicate species name %q", s.Name)
		}
		seen[key] = true
	}

	for _, s := range p {
		for attr, iv := range s.Attrs {
			if !iv.Valid() {
				return fmt.Errorf("species %q: inverted %s range [%g, %g]", s.Name, attr, iv.Min, iv.Max)
			}
		}

		switch s.Category {
		case Producer:
			if s.Needed != 0 {
				return fmt.Errorf("producer %q has nonzero requirement %g", s.Name, s.Needed)
			}
			if len(s.Eats) > 0 {
				return fmt.Errorf("producer %q declares food sources", s.Name)
			}
		case Consumer:
			if s.Needed <= 0 {
				return fmt.Errorf("consumer %q has no requirement", s.Name)
			}
			if len(s.Eats) == 0 {
				return fmt.Errorf("consumer %q declares no food sources", s.Name)
			}
			for _, food := range s.Eats {
				if !p.Contains(food) {
					return fmt.Errorf("species %q eats %q, which is not in the pool", s.Name, food)
				}
			}
		default:
			return fmt.Errorf("species %q has unknown category %d", s.Name, s.Category)
		}
	}

	return nil
}
