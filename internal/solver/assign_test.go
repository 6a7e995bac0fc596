package solver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avandyck/symbiont/internal/species"
)

func assignPool() species.Pool {
	return species.Pool{
		microbe("Acid A", 4, "acid-loving"),
		microbe("Acid B", 5, "acid-loving"),
		microbe("Neutral A", 7, "hardy"),
		microbe("Neutral B", 7, "hardy"),
	}
}

func assignSites() []species.Site {
	return []species.Site{
		{
			Name:           "Bog",
			Ranges:         map[string]species.Interval{"ph": {Min: 4, Max: 5}},
			RequiredTraits: []string{"acid-loving"},
		},
		{
			Name:           "Pond",
			Ranges:         map[string]species.Interval{"ph": {Min: 6.5, Max: 7.5}},
			RequiredTraits: []string{"hardy"},
		},
	}
}

func TestAssignSitesNoReuse(t *testing.T) {
	res, err := AssignSites(assignPool(), assignSites(), AssignOptions{Pick: 2, MaxSolutions: 10})
	require.NoError(t, err)

	// The acid pair is the only Bog group and the neutral pair the only
	// Pond group, so exactly one complete assignment exists.
	require.Len(t, res.Assignments, 1)
	a := res.Assignments[0]
	require.Len(t, a.Sites, 2)
	assert.Equal(t, "Bog", a.Sites[0].Site)
	assert.Equal(t, "Pond", a.Sites[1].Site)

	// No species appears in two sites of the same assignment.
	used := make(map[string]bool)
	for _, sel := range a.Sites {
		for _, s := range sel.Species {
			key := strings.ToLower(s.Name)
			assert.False(t, used[key], "species %s assigned twice", s.Name)
			used[key] = true
		}
	}

	assert.Empty(t, res.PerSite)
	assert.Equal(t, 1, res.Stats.Accepted)
}

func TestAssignSitesAllowReuse(t *testing.T) {
	res, err := AssignSites(assignPool(), assignSites(), AssignOptions{Pick: 2, MaxSolutions: 10, AllowReuse: true})
	require.NoError(t, err)

	assert.Empty(t, res.Assignments)
	require.Len(t, res.PerSite, 2)
	assert.Equal(t, "Bog", res.PerSite[0].Site)
	assert.Equal(t, "Pond", res.PerSite[1].Site)
	require.Len(t, res.PerSite[0].Solutions, 1)
	require.Len(t, res.PerSite[1].Solutions, 1)
}

func TestAssignSingleSiteModesAgree(t *testing.T) {
	pool := assignPool()
	single := assignSites()[:1]

	noReuse, err := AssignSites(pool, single, AssignOptions{Pick: 2, MaxSolutions: 10})
	require.NoError(t, err)
	reuse, err := AssignSites(pool, single, AssignOptions{Pick: 2, MaxSolutions: 10, AllowReuse: true})
	require.NoError(t, err)

	require.Len(t, reuse.PerSite, 1)
	require.Equal(t, len(noReuse.Assignments), len(reuse.PerSite[0].Solutions))
	for i, a := range noReuse.Assignments {
		require.Len(t, a.Sites, 1)
		assert.Equal(t, reuse.PerSite[0].Solutions[i].Names(), selectionNames(a.Sites[0]))
	}
}

func selectionNames(sel SiteSelection) []string {
	out := make([]string, len(sel.Species))
	for i, s := range sel.Species {
		out[i] = s.Name
	}
	return out
}

func TestAssignSitesConflictBacktracks(t *testing.T) {
	// Both sites accept only the same pair, so no complete assignment
	// survives the no-reuse rule.
	pool := species.Pool{
		microbe("A", 6, "hardy"),
		microbe("B", 6, "hardy"),
		microbe("Outlier", 13),
	}
	sites := []species.Site{
		{Name: "One", Ranges: map[string]species.Interval{"ph": {Min: 5, Max: 7}}},
		{Name: "Two", Ranges: map[string]species.Interval{"ph": {Min: 5, Max: 7}}},
	}

	res, err := AssignSites(pool, sites, AssignOptions{Pick: 2, MaxSolutions: 10})
	require.NoError(t, err)
	assert.Empty(t, res.Assignments)
	assert.Zero(t, res.Stats.Accepted)
	assert.Greater(t, res.Stats.Enumerated, 0)
}

func TestAssignSitesCap(t *testing.T) {
	// Four interchangeable microbes and two permissive sites give many
	// complete assignments; the cap keeps only the first two.
	pool := species.Pool{
		microbe("A", 6), microbe("B", 6), microbe("C", 6), microbe("D", 6),
	}
	sites := []species.Site{
		{Name: "One", Ranges: map[string]species.Interval{"ph": {Min: 5, Max: 7}}},
		{Name: "Two", Ranges: map[string]species.Interval{"ph": {Min: 5, Max: 7}}},
	}

	res, err := AssignSites(pool, sites, AssignOptions{Pick: 2, MaxSolutions: 2})
	require.NoError(t, err)
	assert.Len(t, res.Assignments, 2)
	assert.Equal(t, 2, res.Stats.Accepted)
}

func TestAssignSitesDegenerateAndErrors(t *testing.T) {
	res, err := AssignSites(assignPool(), nil, AssignOptions{Pick: 2, MaxSolutions: 5})
	require.NoError(t, err)
	assert.Empty(t, res.Assignments)

	res, err = AssignSites(assignPool(), assignSites(), AssignOptions{Pick: 9, MaxSolutions: 5})
	require.NoError(t, err)
	assert.Empty(t, res.Assignments)

	_, err = AssignSites(assignPool(), assignSites(), AssignOptions{Pick: 2, MaxSolutions: 0})
	require.Error(t, err)

	badSite := []species.Site{{Name: "Bad", Ranges: map[string]species.Interval{"ph": {Min: 7, Max: 4}}}}
	_, err = AssignSites(assignPool(), badSite, AssignOptions{Pick: 2, MaxSolutions: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inverted ph range")
}
