package species

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalContainsInclusive(t *testing.T) {
	iv := Interval{Min: 5, Max: 7}

	assert.True(t, iv.Contains(5))
	assert.True(t, iv.Contains(6))
	assert.True(t, iv.Contains(7))
	assert.False(t, iv.Contains(4.999))
	assert.False(t, iv.Contains(7.001))
}

func TestIntervalPointAndMid(t *testing.T) {
	p := Point(6.5)
	assert.Equal(t, 6.5, p.Min)
	assert.Equal(t, 6.5, p.Max)
	assert.Equal(t, 6.5, p.Mid())

	assert.Equal(t, 15.0, Interval{Min: 10, Max: 20}.Mid())
}

func TestIntersect(t *testing.T) {
	got := Intersect(Interval{Min: 5, Max: 30}, Interval{Min: 10, Max: 20})
	assert.Equal(t, Interval{Min: 10, Max: 20}, got)

	// Disjoint inputs produce an inverted interval, detected via Valid.
	got = Intersect(Interval{Min: 0, Max: 5}, Interval{Min: 10, Max: 20})
	assert.False(t, got.Valid())
	assert.Equal(t, 10.0, got.Min)
	assert.Equal(t, 5.0, got.Max)
}

func TestCategoryRoundTrip(t *testing.T) {
	for _, name := range []string{"producer", "consumer"} {
		cat, err := ParseCategory(name)
		require.NoError(t, err)
		assert.Equal(t, name, cat.String())
	}

	cat, err := ParseCategory("  Producer ")
	require.NoError(t, err)
	assert.Equal(t, Producer, cat)

	_, err = ParseCategory("apex")
	assert.Error(t, err)
}

func TestHasTrait(t *testing.T) {
	s := Species{Name: "Diatom", Traits: []string{"photosynthetic", "silica-shell"}}

	assert.True(t, s.HasTrait("photosynthetic"))
	assert.True(t, s.HasTrait("Silica-Shell"))
	assert.False(t, s.HasTrait("anaerobic"))
}

func TestSiteValidate(t *testing.T) {
	ok := Site{Name: "Lake", Ranges: map[string]Interval{"ph": {Min: 6, Max: 7.5}}}
	require.NoError(t, ok.Validate())

	bad := Site{Name: "Lake", Ranges: map[string]Interval{"ph": {Min: 8, Max: 6}}}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inverted ph range")
}

func validPool() Pool {
	return Pool{
		{Name: "Kelp", Category: Producer, Provided: 1000},
		{Name: "Snail", Category: Consumer, Provided: 100, Needed: 200, Eats: []string{"Kelp"}},
	}
}

func TestPoolValidateOK(t *testing.T) {
	require.NoError(t, validPool().Validate())
	require.NoError(t, Pool{}.Validate())
}

func TestPoolValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(Pool) Pool
		wantErr string
	}{
		{
			name: "duplicate name",
			mutate: func(p Pool) Pool {
				return append(p, Species{Name: "kelp", Category: Producer})
			},
			wantErr: "duplicate species name",
		},
		{
			name: "empty name",
			mutate: func(p Pool) Pool {
				return append(p, Species{Category: Producer})
			},
			wantErr: "empty name",
		},
		{
			name: "inverted attribute",
			mutate: func(p Pool) Pool {
				p[0].Attrs = map[string]Interval{"depth": {Min: 30, Max: 5}}
				return p
			},
			wantErr: "inverted depth range",
		},
		{
			name: "producer with requirement",
			mutate: func(p Pool) Pool {
				p[0].Needed = 50
				return p
			},
			wantErr: "nonzero requirement",
		},
		{
			name: "producer with food sources",
			mutate: func(p Pool) Pool {
				p[0].Eats = []string{"Snail"}
				return p
			},
			wantErr: "declares food sources",
		},
		{
			name: "consumer without requirement",
			mutate: func(p Pool) Pool {
				p[1].Needed = 0
				return p
			},
			wantErr: "no requirement",
		},
		{
			name: "consumer without food sources",
			mutate: func(p Pool) Pool {
				p[1].Eats = nil
				return p
			},
			wantErr: "no food sources",
		},
		{
			name: "dangling food reference",
			mutate: func(p Pool) Pool {
				p[1].Eats = []string{"Plankton"}
				return p
			},
			wantErr: "not in the pool",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.mutate(validPool()).Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestPoolNamesAndContains(t *testing.T) {
	p := validPool()

	assert.Equal(t, []string{"Kelp", "Snail"}, p.Names())
	assert.True(t, p.Contains("kelp"))
	assert.False(t, p.Contains("Shark"))
}
