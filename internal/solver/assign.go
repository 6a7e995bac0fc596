package solver

import (
	"fmt"
	"strings"

	"github.com/avandyck/symbiont/internal/species"
)

// AssignOptions configures a multi-site solve.
type AssignOptions struct {
	Pick         int  `json:"pick"`          // group size per site
	MaxSolutions int  `json:"max_solutions"` // global cap on accepted assignments
	AllowReuse   bool `json:"allow_reuse"`   // solve sites independently, permitting reuse
}

// AssignSites solves all sites together. In the default no-reuse mode a
// depth-first search walks the sites in order, committing each accepted
// group and barring its species from later sites; every completed walk is
// one Assignment. With AllowReuse set, each site is instead solved
// independently against the full pool and the per-site results are
// returned side by side.
//
// With a single site the two modes produce identical selections.
func AssignSites(pool species.Pool, sites []species.Site, opts AssignOptions) (*AssignResult, error) {
	if opts.MaxSolutions <= 0 {
		return nil, fmt.Errorf("solver: max solutions must be positive, got %d", opts.MaxSolutions)
	}
	if err := pool.Validate(); err != nil {
		return nil, fmt.Errorf("solver: %w", err)
	}
	for _, site := range sites {
		if err := site.Validate(); err != nil {
			return nil, fmt.Errorf("solver: %w", err)
		}
		if err := checkSiteAttrs(pool, site); err != nil {
			return nil, err
		}
	}

	res := &AssignResult{}
	if len(sites) == 0 || degenerate(len(pool), opts.Pick) {
		return res, nil
	}

	if opts.AllowReuse {
		for _, site := range sites {
			sub, err := SolveSite(pool, site, Options{Pick: opts.Pick, MaxSolutions: opts.MaxSolutions})
			if err != nil {
				return nil, err
			}
			res.PerSite = append(res.PerSite, SiteResult{Site: site.Name, Result: *sub})
			res.Stats.Enumerated += sub.Stats.Enumerated
			res.Stats.CheckerPass += sub.Stats.CheckerPass
			res.Stats.Accepted += sub.Stats.Accepted
		}
		return res, nil
	}

	search := &assignSearch{
		pool:  presort(pool),
		sites: sites,
		opts:  opts,
		res:   res,
	}
	search.run(0, nil, nil)
	return res, nil
}

// assignSearch holds the fixed inputs of one no-reuse solve. All search
// state (committed species, partial assignment) travels through the
// recursion as values; nothing is mutated across backtracks.
type assignSearch struct {
	pool  []species.Species
	sites []species.Site
	opts  AssignOptions
	res   *AssignResult
}

// run explores groups for sites[siteIdx] given the species committed so
// far. It returns false once the global cap is reached, which unwinds
// the whole search.
func (a *assignSearch) run(siteIdx int, committed map[string]bool, partial []SiteSelection) bool {
	if siteIdx == len(a.sites) {
		a.res.Assignments = append(a.res.Assignments, Assignment{
			Sites: append([]SiteSelection(nil), partial...),
		})
		a.res.Stats.Accepted++
		return a.res.Stats.Accepted < a.opts.MaxSolutions
	}

	site := a.sites[siteIdx]

	// Restrict to species not committed along this search path; the
	// filtered slice keeps the capacity-sorted order.
	var avail []species.Species
	for _, s := range a.pool {
		if !committed[strings.ToLower(s.Name)] {
			avail = append(avail, s)
		}
	}

	keepGoing := true
	combinations(len(avail), a.opts.Pick, func(idx []int) bool {
		a.res.Stats.Enumerated++
		group := pick(avail, idx)

		v := checkAverages(group, site)
		if !v.OK {
			return true
		}
		a.res.Stats.CheckerPass++

		// Extend the committed set on a fresh copy so backtracking is a
		// plain return, with nothing to undo.
		next := make(map[string]bool, len(committed)+len(group))
		for name := range committed {
			next[name] = true
		}
		for _, s := range group {
			next[strings.ToLower(s.Name)] = true
		}

		keepGoing = a.run(siteIdx+1, next, append(partial, SiteSelection{
			Site:    site.Name,
			Species: group,
			Means:   v.Means,
		}))
		return keepGoing
	})
	return keepGoing
}
