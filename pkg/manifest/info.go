package manifest

import (
	"slices"

	"github.com/matzehuels/factoriogen/pkg/version"
)

// DefaultDependencies is what the game assumes when info.json has no
// dependencies field.
var DefaultDependencies = []string{"base"}

// Info is a Factorio info.json document.
type Info struct {
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Contact         string   `json:"contact,omitempty"`
	Homepage        string   `json:"homepage,omitempty"`
	Description     string   `json:"description,omitempty"`
	FactorioVersion string   `json:"factorio_version"`
	Dependencies    []string `json:"dependencies"`
	DLC
}

// FromPackage maps a package.json onto info.json.
//
// Defaults the game would apply are written out explicitly:
// factorio_version "0.12" and dependencies ["base"].
func FromPackage(pkg *Package) Info {
	info := Info{
		Name:            pkg.Name,
		Version:         pkg.Version,
		Title:           pkg.Factorio.Title,
		Author:          pkg.Authors(),
		Contact:         pkg.Bugs.Contact(),
		Homepage:        pkg.Homepage,
		Description:     pkg.Description,
		FactorioVersion: pkg.Factorio.FactorioVersion,
		Dependencies:    slices.Clone(pkg.Factorio.Dependencies),
		DLC:             pkg.Factorio.DLC,
	}
	if info.FactorioVersion == "" {
		info.FactorioVersion = version.DefaultGameVersion.String()
	}
	if pkg.Factorio.Dependencies == nil {
		info.Dependencies = slices.Clone(DefaultDependencies)
	}
	return info
}
