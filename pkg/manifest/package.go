package manifest

import (
	"encoding/json"
	"strings"
)

// Person is an npm author or contributor. package.json allows either a
// plain string or an object with name, email and url.
type Person struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// UnmarshalJSON accepts "Jane" as well as {"name": "Jane"}.
func (p *Person) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Person{Name: s}
		return nil
	}
	type plain Person
	return json.Unmarshal(data, (*plain)(p))
}

// Bugs is the npm bugs field: a URL string or an object.
type Bugs struct {
	Name  string `json:"name,omitempty"`
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
}

// UnmarshalJSON accepts a URL string as well as an object.
func (b *Bugs) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = Bugs{URL: s}
		return nil
	}
	type plain Bugs
	return json.Unmarshal(data, (*plain)(b))
}

// Contact returns the first non-empty of name, url and email.
func (b *Bugs) Contact() string {
	if b == nil {
		return ""
	}
	for _, s := range []string{b.Name, b.URL, b.Email} {
		if s != "" {
			return s
		}
	}
	return ""
}

// DLC holds the Space Age feature flags. They are only valid for
// factorio_version 2.0 and later.
type DLC struct {
	QualityRequired          bool `json:"quality_required,omitempty"`
	SpaceTravelRequired      bool `json:"space_travel_required,omitempty"`
	SpoilingRequired         bool `json:"spoiling_required,omitempty"`
	FreezingRequired         bool `json:"freezing_required,omitempty"`
	SegmentedUnitsRequired   bool `json:"segmented_units_required,omitempty"`
	ExpansionShadersRequired bool `json:"expansion_shaders_required,omitempty"`
}

// Any reports whether at least one DLC feature is required.
func (d DLC) Any() bool {
	return d.QualityRequired || d.SpaceTravelRequired || d.SpoilingRequired ||
		d.FreezingRequired || d.SegmentedUnitsRequired || d.ExpansionShadersRequired
}

// Factorio is the "factorio" section of package.json.
//
// A nil Dependencies means the field was absent; an empty, non-nil slice
// means the mod explicitly has no dependencies.
type Factorio struct {
	Title           string   `json:"title"`
	FactorioVersion string   `json:"factorio_version,omitempty"`
	Dependencies    []string `json:"dependencies,omitempty"`
	DLC
}

// Package is the subset of package.json used to build info.json.
type Package struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Description  string   `json:"description,omitempty"`
	Author       Person   `json:"author"`
	Contributors []Person `json:"contributors,omitempty"`
	Bugs         *Bugs    `json:"bugs,omitempty"`
	Homepage     string   `json:"homepage,omitempty"`
	Factorio     Factorio `json:"factorio"`
}

// Authors joins the author and all contributors, e.g. "Jane, Joe".
func (p *Package) Authors() string {
	names := make([]string, 0, 1+len(p.Contributors))
	if p.Author.Name != "" {
		names = append(names, p.Author.Name)
	}
	for _, c := range p.Contributors {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return strings.Join(names, ", ")
}
