// Package species defines the immutable candidate records the solver
// selects over: species with habitat ranges, calorie budgets and traits,
// and the sites they are placed into.
package species

import (
	"fmt"
	"strings"
)

// Category distinguishes producers from consumers. Producers supply
// calories and need nothing; consumers must eat to survive.
type Category uint8

const (
	Producer Category = iota
	Consumer
)

var categoryNames = [...]string{"producer", "consumer"}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category#%d", uint8(c))
}

// MarshalText renders the category as its lowercase name in JSON output.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses "producer" or "consumer".
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory converts a category name to its value.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "producer":
		return Producer, nil
	case "consumer":
		return Consumer, nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// Interval is a closed numeric range [Min, Max]. A point attribute is
// stored with Min == Max.
type Interval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Point returns the degenerate interval [v, v].
func Point(v float64) Interval {
	return Interval{Min: v, Max: v}
}

// Valid reports whether Min <= Max.
func (iv Interval) Valid() bool {
	return iv.Min <= iv.Max
}

// Contains reports whether v lies within the interval, bounds inclusive.
func (iv Interval) Contains(v float64) bool {
	return iv.Min <= v && v <= iv.Max
}

// Mid returns the interval midpoint. For point attributes this is the
// stored value itself.
func (iv Interval) Mid() float64 {
	return (iv.Min + iv.Max) / 2
}

// Intersect returns the overlap of two intervals. The result may be
// inverted (Min > Max) when the intervals are disjoint; callers check
// Valid on the result.
func Intersect(a, b Interval) Interval {
	out := a
	if b.Min > out.Min {
		out.Min = b.Min
	}
	if b.Max < out.Max {
		out.Max = b.Max
	}
	return out
}

// Species is one candidate entity. Records are value types and never
// mutated by the solver; the simulation works on per-candidate copies of
// the calorie figures.
type Species struct {
	Name     string              `json:"name"`
	Category Category            `json:"category"`
	Provided float64             `json:"provided"`         // calories supplied
	Needed   float64             `json:"needed"`           // calories required (0 for producers)
	Attrs    map[string]Interval `json:"attrs,omitempty"`  // range-defining attributes
	Traits   []string            `json:"traits,omitempty"` // categorical traits
	Eats     []string            `json:"eats,omitempty"`   // food-source names (empty for producers)
}

// HasTrait reports whether the species carries the named trait,
// case-insensitive.
func (s Species) HasTrait(trait string) bool {
	for _, t := range s.Traits {
		if strings.EqualFold(t, trait) {
			return true
		}
	}
	return false
}

// Site describes one placement target: acceptance intervals per attribute
// and the traits the selected group must cover between them.
type Site struct {
	Name           string              `json:"name"`
	Ranges         map[string]Interval `json:"ranges,omitempty"`
	RequiredTraits []string            `json:"required_traits,omitempty"`
}

// Validate reports the first inverted acceptance interval, if any.
func (s Site) Validate() error {
	for attr, iv := range s.Ranges {
		if !iv.Valid() {
			return fmt.Errorf("site %q: inverted %s range [%g, %g]", s.Name, attr, iv.Min, iv.Max)
		}
	}
	return nil
}
