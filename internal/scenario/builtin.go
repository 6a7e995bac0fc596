package scenario

import "github.com/avandyck/symbiont/internal/species"

// Built-in puzzles. Reef and Mountain are the two ecosystem boards;
// Seawolf is the three-site microbe assignment puzzle.

func rng(min, max float64) species.Interval {
	return species.Interval{Min: min, Max: max}
}

func producer(name string, provided float64, attrs map[string]species.Interval) species.Species {
	return species.Species{
		Name:     name,
		Category: species.Producer,
		Provided: provided,
		Attrs:    attrs,
	}
}

func consumer(name string, provided, needed float64, attrs map[string]species.Interval, eats ...string) species.Species {
	return species.Species{
		Name:     name,
		Category: species.Consumer,
		Provided: provided,
		Needed:   needed,
		Attrs:    attrs,
		Eats:     eats,
	}
}

func microbe(name string, ph, salinity, temp float64, traits ...string) species.Species {
	return species.Species{
		Name:     name,
		Category: species.Producer,
		Attrs: map[string]species.Interval{
			"ph":       species.Point(ph),
			"salinity": species.Point(salinity),
			"temp":     species.Point(temp),
		},
		Traits: traits,
	}
}

// Reef is the coral reef ecosystem puzzle: pick 8 of 11 species sharing a
// depth/temperature window whose food web survives the feeding pass.
func Reef() Scenario {
	return Scenario{
		Name:    "reef",
		Title:   "Coral Reef ecosystem",
		Variant: VariantEcosystem,
		Pick:    8,
		Pool: species.Pool{
			producer("Giant Kelp", 4000, map[string]species.Interval{"depth": rng(5, 30), "temp": rng(12, 20)}),
			producer("Sea Grass", 2500, map[string]species.Interval{"depth": rng(0, 25), "temp": rng(15, 24)}),
			producer("Coral", 1800, map[string]species.Interval{"depth": rng(5, 20), "temp": rng(18, 26)}),
			consumer("Sea Urchin", 800, 600, map[string]species.Interval{"depth": rng(5, 25), "temp": rng(14, 22)}, "Giant Kelp", "Sea Grass"),
			consumer("Small Fish", 500, 350, map[string]species.Interval{"depth": rng(0, 30), "temp": rng(12, 24)}, "Sea Grass", "Coral"),
			consumer("Crab", 700, 450, map[string]species.Interval{"depth": rng(5, 20), "temp": rng(14, 20)}, "Giant Kelp", "Coral"),
			consumer("Lobster", 600, 400, map[string]species.Interval{"depth": rng(10, 30), "temp": rng(12, 18)}, "Sea Urchin", "Small Fish"),
			consumer("Octopus", 750, 500, map[string]species.Interval{"depth": rng(5, 35), "temp": rng(14, 22)}, "Crab", "Lobster"),
			consumer("Sea Bass", 650, 450, map[string]species.Interval{"depth": rng(10, 40), "temp": rng(12, 20)}, "Small Fish", "Crab"),
			consumer("Barracuda", 550, 600, map[string]species.Interval{"depth": rng(5, 30), "temp": rng(16, 24)}, "Sea Bass", "Small Fish"),
			consumer("Shark", 700, 800, map[string]species.Interval{"depth": rng(10, 50), "temp": rng(14, 22)}, "Sea Bass", "Octopus", "Barracuda"),
		},
	}
}

// Mountain is the alpine ecosystem puzzle: pick 8 of 10 species sharing
// an elevation/temperature window.
func Mountain() Scenario {
	return Scenario{
		Name:    "mountain",
		Title:   "Mountain ecosystem",
		Variant: VariantEcosystem,
		Pick:    8,
		Pool: species.Pool{
			producer("Alpine Grass", 3500, map[string]species.Interval{"elevation": rng(1500, 3000), "temp": rng(5, 18)}),
			producer("Mountain Shrub", 2800, map[string]species.Interval{"elevation": rng(1200, 2500), "temp": rng(8, 20)}),
			producer("Pine Tree", 2000, map[string]species.Interval{"elevation": rng(1000, 2200), "temp": rng(5, 15)}),
			consumer("Mountain Hare", 700, 500, map[string]species.Interval{"elevation": rng(1500, 2800), "temp": rng(4, 16)}, "Alpine Grass", "Mountain Shrub"),
			consumer("Marmot", 600, 400, map[string]species.Interval{"elevation": rng(1800, 3000), "temp": rng(2, 14)}, "Alpine Grass"),
			consumer("Mountain Goat", 800, 650, map[string]species.Interval{"elevation": rng(2000, 3500), "temp": rng(0, 12)}, "Alpine Grass", "Mountain Shrub"),
			consumer("Red Fox", 550, 450, map[string]species.Interval{"elevation": rng(1200, 2600), "temp": rng(5, 18)}, "Mountain Hare", "Marmot"),
			consumer("Golden Eagle", 650, 500, map[string]species.Interval{"elevation": rng(1500, 3500), "temp": rng(2, 16)}, "Mountain Hare", "Marmot"),
			consumer("Snow Leopard", 750, 700, map[string]species.Interval{"elevation": rng(2000, 3500), "temp": rng(-5, 10)}, "Mountain Goat", "Mountain Hare"),
			consumer("Wolf", 850, 750, map[string]species.Interval{"elevation": rng(1500, 3000), "temp": rng(0, 15)}, "Mountain Goat", "Red Fox", "Marmot"),
		},
	}
}

// Seawolf is the microbe assignment puzzle: staff three sites with three
// microbes each, matching attribute averages and required traits.
func Seawolf() Scenario {
	return Scenario{
		Name:    "seawolf",
		Title:   "Sea Wolf microbe assignment",
		Variant: VariantAssignment,
		Pick:    3,
		Pool: species.Pool{
			microbe("Cyanobacteria A", 6.5, 3.0, 7.0, "photosynthetic", "nitrogen-fixing"),
			microbe("Cyanobacteria B", 7.0, 2.5, 6.5, "photosynthetic"),
			microbe("Diatom", 6.0, 5.0, 5.5, "photosynthetic", "silica-shell"),
			microbe("Green Algae", 5.5, 4.0, 6.0, "photosynthetic"),
			microbe("Nitrosomonas", 7.5, 4.5, 7.5, "nitrogen-fixing", "aerobic"),
			microbe("Nitrobacter", 7.0, 5.0, 7.0, "nitrogen-fixing", "aerobic"),
			microbe("Sulfur Bacteria", 4.0, 6.0, 8.0, "anaerobic", "sulfur-oxidizing"),
			microbe("Methanogen", 6.0, 3.5, 8.5, "anaerobic", "methane-producing"),
			microbe("Purple Bacteria", 5.0, 4.0, 7.0, "photosynthetic", "anaerobic"),
			microbe("Iron Bacteria", 5.5, 5.5, 6.5, "aerobic", "iron-oxidizing"),
			microbe("Archaea X", 3.5, 7.0, 9.0, "extremophile", "anaerobic"),
			microbe("Archaea Y", 4.0, 8.0, 8.5, "extremophile", "sulfur-oxidizing"),
		},
		Sites: []species.Site{
			{
				Name: "Coastal Estuary",
				Ranges: map[string]species.Interval{
					"ph": rng(5.5, 7.0), "salinity": rng(3.0, 5.0), "temp": rng(6.0, 7.5),
				},
				RequiredTraits: []string{"photosynthetic", "nitrogen-fixing"},
			},
			{
				Name: "Deep Ocean Vent",
				Ranges: map[string]species.Interval{
					"ph": rng(3.5, 5.0), "salinity": rng(6.0, 8.0), "temp": rng(7.5, 9.0),
				},
				RequiredTraits: []string{"anaerobic", "sulfur-oxidizing"},
			},
			{
				Name: "Freshwater Lake",
				Ranges: map[string]species.Interval{
					"ph": rng(6.0, 7.5), "salinity": rng(2.0, 4.0), "temp": rng(5.5, 7.0),
				},
				RequiredTraits: []string{"photosynthetic"},
			},
		},
	}
}
