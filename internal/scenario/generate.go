package scenario

import (
	"fmt"
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/avandyck/symbiont/internal/species"
)

// GenConfig holds procedural scenario generation parameters. The same
// seed always yields the same scenario.
type GenConfig struct {
	Seed      int64 // 0 = random
	Species   int   // pool size
	Pick      int   // selection size
	Producers int   // producers at the head of the pool
}

// DefaultGenConfig returns a pool in the documented size range the
// solver is designed for (~12-15 entities).
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Seed:      0,
		Species:   12,
		Pick:      6,
		Producers: 4,
	}
}

var producerNames = []string{
	"Reed Bed", "Kelp Stand", "Moss Mat", "Algae Bloom",
	"Fern Grove", "Lichen Crust", "Grass Tussock", "Cattail Marsh",
}

var consumerNames = []string{
	"Grazer Snail", "Shield Shrimp", "Darter Fish", "Mud Crab",
	"River Perch", "Marsh Frog", "Dragonfly Nymph", "Heron",
	"Stickleback", "Water Vole", "Pike", "Kingfisher",
}

// Generate builds a random but valid ecosystem scenario. Two layered
// noise fields drive the habitat surfaces: sampling them at increasing
// offsets gives each species a depth/temperature band that drifts
// smoothly across the pool, so neighbouring species tend to overlap and
// the puzzle stays solvable-looking without being trivial.
func Generate(cfg GenConfig) (Scenario, error) {
	if cfg.Species < 3 || cfg.Producers < 1 || cfg.Producers >= cfg.Species {
		return Scenario{}, fmt.Errorf("scenario: generator needs at least one producer and two consumers, got %d/%d", cfg.Producers, cfg.Species)
	}
	if cfg.Pick <= 0 || cfg.Pick > cfg.Species {
		return Scenario{}, fmt.Errorf("scenario: pick %d out of range for pool of %d", cfg.Pick, cfg.Species)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	// Independent noise layers, offset the same way the world generator
	// splits elevation/rainfall/temperature.
	depthNoise := opensimplex.NewNormalized(seed)
	tempNoise := opensimplex.NewNormalized(seed + 1)
	calNoise := opensimplex.NewNormalized(seed + 2)
	rng := rand.New(rand.NewSource(seed + 400))

	scn := Scenario{
		Name:    fmt.Sprintf("gen-%d", seed),
		Title:   fmt.Sprintf("Generated ecosystem (seed %d)", seed),
		Variant: VariantEcosystem,
		Pick:    cfg.Pick,
	}

	for i := 0; i < cfg.Species; i++ {
		x := float64(i) * 0.35

		depthMid := 10 + depthNoise.Eval2(x, 0)*30 // 10..40m
		depthSpan := 8 + depthNoise.Eval2(x, 5)*12 // half-width 8..20m
		tempMid := 8 + tempNoise.Eval2(x, 0)*14    // 8..22°C
		tempSpan := 3 + tempNoise.Eval2(x, 5)*5    // half-width 3..8°C

		attrs := map[string]species.Interval{
			"depth": {Min: math.Round(depthMid - depthSpan), Max: math.Round(depthMid + depthSpan)},
			"temp":  {Min: math.Round(tempMid - tempSpan), Max: math.Round(tempMid + tempSpan)},
		}

		if i < cfg.Producers {
			provided := 1500 + math.Round(calNoise.Eval2(x, 0)*2500)
			scn.Pool = append(scn.Pool, species.Species{
				Name:     genName(producerNames, i),
				Category: species.Producer,
				Provided: provided,
				Attrs:    attrs,
			})
			continue
		}

		provided := 400 + math.Round(calNoise.Eval2(x, 0)*500)
		needed := 300 + math.Round(calNoise.Eval2(x, 5)*450)
		scn.Pool = append(scn.Pool, species.Species{
			Name:     genName(consumerNames, i-cfg.Producers),
			Category: species.Consumer,
			Provided: provided,
			Needed:   needed,
			Attrs:    attrs,
			Eats:     pickFoods(scn.Pool, rng),
		})
	}

	if err := scn.Validate(); err != nil {
		return Scenario{}, fmt.Errorf("scenario: generated pool invalid: %w", err)
	}
	return scn, nil
}

// pickFoods selects one or two distinct food sources among the species
// generated so far. Earlier species only, which keeps the food web
// acyclic by construction.
func pickFoods(prior species.Pool, rng *rand.Rand) []string {
	first := rng.Intn(len(prior))
	foods := []string{prior[first].Name}
	if len(prior) > 1 && rng.Float64() < 0.7 {
		second := rng.Intn(len(prior) - 1)
		if second >= first {
			second++
		}
		foods = append(foods, prior[second].Name)
	}
	return foods
}

// genName draws from the name table, suffixing on wrap-around so names
// stay unique for any pool size.
func genName(table []string, i int) string {
	name := table[i%len(table)]
	if i >= len(table) {
		return fmt.Sprintf("%s %d", name, i/len(table)+1)
	}
	return name
}
