package solver

import (
	"fmt"

	"github.com/avandyck/symbiont/internal/species"
)

// Options configures a single-group solve.
type Options struct {
	Pick         int `json:"pick"`          // selection size K
	MaxSolutions int `json:"max_solutions"` // stop after this many accepted
}

func (o Options) validate() error {
	if o.MaxSolutions <= 0 {
		return fmt.Errorf("solver: max solutions must be positive, got %d", o.MaxSolutions)
	}
	return nil
}

// degenerate reports whether the inputs admit no candidate subsets at
// all. Such inputs short-circuit to an empty result before any mean or
// index arithmetic runs.
func degenerate(poolSize, pick int) bool {
	return poolSize == 0 || pick <= 0 || pick > poolSize
}

// SolveEcosystem finds up to MaxSolutions selections of Pick species
// that share a habitat window on every attribute, give every consumer a
// food source, and survive the feeding simulation. Solutions come back
// in enumeration order over the capacity-sorted pool; an empty result
// means no valid selection was found before exhaustion, which is a
// normal outcome.
func SolveEcosystem(pool species.Pool, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := pool.Validate(); err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}

	res := &Result{}
	if degenerate(len(pool), opts.Pick) {
		return res, nil
	}

	sorted := presort(pool)
	combinations(len(sorted), opts.Pick, func(idx []int) bool {
		res.Stats.Enumerated++
		subset := pick(sorted, idx)

		window := checkWindow(subset)
		if !window.OK {
			return true
		}
		if food := CheckFoodCoverage(subset); !food.OK {
			return true
		}
		res.Stats.CheckerPass++

		res.Stats.Simulated++
		sim := Simulate(subset)
		if !sim.OK {
			return true
		}

		res.Stats.Accepted++
		res.Solutions = append(res.Solutions, Solution{
			Species: subset,
			Window:  window.Window,
			Log:     sim.Log,
		})
		return res.Stats.Accepted < opts.MaxSolutions
	})

	return res, nil
}

// SolveSite finds up to MaxSolutions groups of Pick species whose
// attribute means fall inside the site's acceptance intervals and whose
// combined traits cover the site's requirements. No simulation runs in
// this variant.
func SolveSite(pool species.Pool, site species.Site, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := pool.Validate(); err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}
	if err := site.Validate(); err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}
	if err := checkSiteAttrs(pool, site); err != nil {
		return nil, err
	}

	res := &Result{}
	if degenerate(len(pool), opts.Pick) {
		return res, nil
	}

	sorted := presort(pool)
	combinations(len(sorted), opts.Pick, func(idx []int) bool {
		res.Stats.Enumerated++
		subset := pick(sorted, idx)

		v := checkAverages(subset, site)
		if !v.OK {
			return true
		}
		res.Stats.CheckerPass++

		res.Stats.Accepted++
		res.Solutions = append(res.Solutions, Solution{
			Species: subset,
			Means:   v.Means,
		})
		return res.Stats.Accepted < opts.MaxSolutions
	})

	return res, nil
}

// checkSiteAttrs verifies every pool species carries every attribute the
// site constrains, so the mean computation inside the hot loop can never
// hit a missing value.
func checkSiteAttrs(pool species.Pool, site species.Site) error {
	for _, attr := range sortedAttrs(site.Ranges) {
		for _, s := range pool {
			if _, ok := s.Attrs[attr]; !ok {
				return fmt.Errorf("solver: species %q lacks attribute %q required by site %q", s.Name, attr, site.Name)
			}
		}
	}
	return nil
}
