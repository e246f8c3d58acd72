// Package catalog holds the static DVSA skill catalog: the assessable
// skills in display order, their named sections, and the fixed set of
// skills flagged as problem areas. The data is embedded at build time
// and loaded once; all lookups are pure and never fail — absent names
// degrade to empty results or false.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var rawCatalog []byte

// Section is a named group of related skills, in display order.
type Section struct {
	Name   string   `yaml:"name"`
	Skills []string `yaml:"skills"`
}

// catalog holds the parsed data with precomputed indices.
type catalog struct {
	sections     []Section
	skills       []string // flat, section order preserved
	skillSet     map[string]bool
	bySection    map[string][]string
	problemAreas map[string]bool
	problemList  []string
}

// c is the package-level catalog singleton, set by init().
var c *catalog

func init() {
	loaded, err := load(rawCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded data invalid: %v", err))
	}
	c = loaded
}

// load parses and validates the catalog document.
func load(raw []byte) (*catalog, error) {
	var doc struct {
		Sections     []Section `yaml:"sections"`
		ProblemAreas []string  `yaml:"problem_areas"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.Sections) == 0 {
		return nil, fmt.Errorf("no sections defined")
	}

	cat := &catalog{
		sections:     doc.Sections,
		skillSet:     make(map[string]bool),
		bySection:    make(map[string][]string, len(doc.Sections)),
		problemAreas: make(map[string]bool, len(doc.ProblemAreas)),
		problemList:  doc.ProblemAreas,
	}

	for _, sec := range doc.Sections {
		if sec.Name == "" {
			return nil, fmt.Errorf("section with empty name")
		}
		if len(sec.Skills) == 0 {
			return nil, fmt.Errorf("section %q has no skills", sec.Name)
		}
		if _, dup := cat.bySection[sec.Name]; dup {
			return nil, fmt.Errorf("duplicate section %q", sec.Name)
		}
		cat.bySection[sec.Name] = sec.Skills
		for _, name := range sec.Skills {
			if cat.skillSet[name] {
				return nil, fmt.Errorf("duplicate skill %q", name)
			}
			cat.skillSet[name] = true
			cat.skills = append(cat.skills, name)
		}
	}

	for _, name := range doc.ProblemAreas {
		if !cat.skillSet[name] {
			return nil, fmt.Errorf("problem area %q is not a catalog skill", name)
		}
		cat.problemAreas[name] = true
	}

	return cat, nil
}

// Skills returns all skill names in display order.
func Skills() []string {
	return slices.Clone(c.skills)
}

// Sections returns all sections in display order.
func Sections() []Section {
	out := make([]Section, len(c.sections))
	for i, sec := range c.sections {
		out[i] = Section{Name: sec.Name, Skills: slices.Clone(sec.Skills)}
	}
	return out
}

// SkillsInSection returns the ordered skills for a section name.
// Unknown section names return nil.
func SkillsInSection(name string) []string {
	return slices.Clone(c.bySection[name])
}

// Contains reports whether name is a catalog skill.
func Contains(name string) bool {
	return c.skillSet[name]
}

// IsProblemArea reports whether the skill is flagged for extra attention.
// Names outside the catalog are never problem areas.
func IsProblemArea(name string) bool {
	return c.problemAreas[name]
}

// ProblemAreas returns the flagged skill names in catalog order.
func ProblemAreas() []string {
	return slices.Clone(c.problemList)
}

// Count returns the number of skills in the catalog.
func Count() int {
	return len(c.skills)
}
