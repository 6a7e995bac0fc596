package scenario

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/avandyck/symbiont/internal/species"
)

// YAML scenario documents use a flatter shape than the in-memory model:
// categories are names, attributes accept either a scalar (a point value)
// or a {min, max} pair.

type scenarioDoc struct {
	Name    string       `yaml:"name"`
	Title   string       `yaml:"title,omitempty"`
	Variant string       `yaml:"variant"`
	Pick    int          `yaml:"pick"`
	Pool    []speciesDoc `yaml:"pool"`
	Sites   []siteDoc    `yaml:"sites,omitempty"`
}

type speciesDoc struct {
	Name     string             `yaml:"name"`
	Category string             `yaml:"category"`
	Provided float64            `yaml:"provided,omitempty"`
	Needed   float64            `yaml:"needed,omitempty"`
	Attrs    map[string]attrDoc `yaml:"attrs,omitempty"`
	Traits   []string           `yaml:"traits,omitempty"`
	Eats     []string           `yaml:"eats,omitempty"`
}

type siteDoc struct {
	Name           string             `yaml:"name"`
	Ranges         map[string]attrDoc `yaml:"ranges,omitempty"`
	RequiredTraits []string           `yaml:"required_traits,omitempty"`
}

// attrDoc decodes either `6.5` or `{min: 5, max: 30}`.
type attrDoc struct {
	iv species.Interval
}

func (a *attrDoc) UnmarshalYAML(node *yaml.Node) error {
	var scalar float64
	if err := node.Decode(&scalar); err == nil {
		a.iv = species.Point(scalar)
		return nil
	}

	var pair struct {
		Min float64 `yaml:"min"`
		Max float64 `yaml:"max"`
	}
	if err := node.Decode(&pair); err != nil {
		return fmt.Errorf("attribute must be a number or {min, max}: %w", err)
	}
	a.iv = species.Interval{Min: pair.Min, Max: pair.Max}
	return nil
}

func (a attrDoc) MarshalYAML() (any, error) {
	if a.iv.Min == a.iv.Max {
		return a.iv.Min, nil
	}
	return map[string]float64{"min": a.iv.Min, "max": a.iv.Max}, nil
}

// Parse decodes and validates a YAML scenario document.
func Parse(data []byte) (Scenario, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Scenario{}, fmt.Errorf("scenario: document is empty")
	}

	var doc scenarioDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Scenario{}, fmt.Errorf("scenario: decode: %w", err)
	}

	scn := Scenario{
		Name:    doc.Name,
		Title:   doc.Title,
		Variant: Variant(doc.Variant),
		Pick:    doc.Pick,
	}

	for _, sd := range doc.Pool {
		cat, err := species.ParseCategory(sd.Category)
		if err != nil {
			return Scenario{}, fmt.Errorf("scenario: species %q: %w", sd.Name, err)
		}
		scn.Pool = append(scn.Pool, species.Species{
			Name:     sd.Name,
			Category: cat,
			Provided: sd.Provided,
			Needed:   sd.Needed,
			Attrs:    toIntervals(sd.Attrs),
			Traits:   sd.Traits,
			Eats:     sd.Eats,
		})
	}

	for _, sd := range doc.Sites {
		scn.Sites = append(scn.Sites, species.Site{
			Name:           sd.Name,
			Ranges:         toIntervals(sd.Ranges),
			RequiredTraits: sd.RequiredTraits,
		})
	}

	if err := scn.Validate(); err != nil {
		return Scenario{}, err
	}
	return scn, nil
}

// Load reads and parses a YAML scenario file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	scn, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: %s: %w", path, err)
	}
	return scn, nil
}

// Marshal renders a scenario as a YAML document.
func Marshal(scn Scenario) ([]byte, error) {
	doc := scenarioDoc{
		Name:    scn.Name,
		Title:   scn.Title,
		Variant: string(scn.Variant),
		Pick:    scn.Pick,
	}

	for _, s := range scn.Pool {
		doc.Pool = append(doc.Pool, speciesDoc{
			Name:     s.Name,
			Category: s.Category.String(),
			Provided: s.Provided,
			Needed:   s.Needed,
			Attrs:    toDocs(s.Attrs),
			Traits:   s.Traits,
			Eats:     s.Eats,
		})
	}
	for _, site := range scn.Sites {
		doc.Sites = append(doc.Sites, siteDoc{
			Name:           site.Name,
			Ranges:         toDocs(site.Ranges),
			RequiredTraits: site.RequiredTraits,
		})
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("scenario: encode %q: %w", scn.Name, err)
	}
	return out, nil
}

// Save writes a scenario to a YAML file.
func Save(scn Scenario, path string) error {
	data, err := Marshal(scn)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("scenario: write %s: %w", path, err)
	}
	return nil
}

func toIntervals(docs map[string]attrDoc) map[string]species.Interval {
	if len(docs) == 0 {
		return nil
	}
	out := make(map[string]species.Interval, len(docs))
	for name, d := range docs {
		out[name] = d.iv
	}
	return out
}

func toDocs(ivs map[string]species.Interval) map[string]attrDoc {
	if len(ivs) == 0 {
		return nil
	}
	out := make(map[string]attrDoc, len(ivs))
	for _, name := range sortedKeys(ivs) {
		out[name] = attrDoc{iv: ivs[name]}
	}
	return out
}

func sortedKeys(m map[string]species.Interval) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
