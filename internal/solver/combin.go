package solver

import (
	"sort"

	"github.com/avandyck/symbiont/internal/species"
)

// presort returns a copy of the pool ordered by descending capacity,
// ties keeping original pool order. The ordering is a heuristic only, to
// surface calorie-rich selections earlier in the enumeration; correctness
// never depends on it.
func presort(pool species.Pool) []species.Species {
	sorted := make([]species.Species, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Provided > sorted[j].Provided
	})
	return sorted
}

// combinations calls fn with each k-element index subset of [0, n) in
// lexicographic order, stopping early when fn returns false. The index
// slice is reused between calls; fn must not retain it. Degenerate
// inputs (k <= 0, k > n) produce no calls.
func combinations(n, k int, fn func(idx []int) bool) {
	if k <= 0 || k > n {
		return
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}

	for {
		if !fn(idx) {
			return
		}

		// Advance to the next combination: bump the rightmost index that
		// has headroom, then reset everything after it.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// pick materializes the subset selected by idx from the sorted pool.
func pick(sorted []species.Species, idx []int) []species.Species {
	subset := make([]species.Species, len(idx))
	for i, j := range idx {
		subset[i] = sorted[j]
	}
	return subset
}
