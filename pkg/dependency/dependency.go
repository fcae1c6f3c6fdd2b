package dependency

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	ferrors "github.com/matzehuels/factoriogen/pkg/errors"
	"github.com/matzehuels/factoriogen/pkg/version"
)

// Relation marks the strength or polarity of a dependency.
type Relation string

// Relation markers. Required is the absence of a marker.
const (
	Required       Relation = ""
	Incompatible   Relation = "!"
	Optional       Relation = "?"
	HiddenOptional Relation = "(?)"
	Unordered      Relation = "~"
)

// relations lists the markers in the order Parse tries them.
var relations = []Relation{Incompatible, Optional, HiddenOptional, Unordered}

// Valid reports whether r is a known relation marker.
func (r Relation) Valid() bool {
	return r == Required || slices.Contains(relations, r)
}

// Operator constrains acceptable versions of a dependency.
type Operator string

// Comparison operators. NoOperator means no version constraint.
const (
	NoOperator     Operator = ""
	Less           Operator = "<"
	LessOrEqual    Operator = "<="
	Equal          Operator = "="
	GreaterOrEqual Operator = ">="
	Greater        Operator = ">"
)

// operators is ordered longest match first.
var operators = []Operator{LessOrEqual, GreaterOrEqual, Less, Equal, Greater}

// Valid reports whether o is a known comparison operator or NoOperator.
func (o Operator) Valid() bool {
	return o == NoOperator || slices.Contains(operators, o)
}

// Satisfied reports whether a candidate whose comparison to the target
// version is cmp (-1, 0 or 1) satisfies o. NoOperator is always satisfied.
func (o Operator) Satisfied(cmp int) bool {
	switch o {
	case NoOperator:
		return true
	case Less:
		return cmp < 0
	case LessOrEqual:
		return cmp <= 0
	case Equal:
		return cmp == 0
	case GreaterOrEqual:
		return cmp >= 0
	case Greater:
		return cmp > 0
	}
	return false
}

// Dependency is the structured form of a dependency string.
// Compare and Version are either both set or both unset.
type Dependency struct {
	Name     string
	Relation Relation
	Compare  Operator
	Version  *version.Version
}

// HasConstraint reports whether d carries a version constraint.
func (d Dependency) HasConstraint() bool {
	return d.Compare != NoOperator && d.Version != nil
}

// IsOptional reports whether the dependency may be absent.
func (d Dependency) IsOptional() bool {
	return d.Relation == Optional || d.Relation == HiddenOptional
}

// String encodes d as "[RELATION ]NAME[ COMPARE VERSION]".
func (d Dependency) String() string {
	var b strings.Builder
	if d.Relation != Required {
		b.WriteString(string(d.Relation))
		b.WriteByte(' ')
	}
	b.WriteString(d.Name)
	if d.HasConstraint() {
		fmt.Fprintf(&b, " %s %s", d.Compare, d.Version)
	}
	return b.String()
}

// Validate checks that d is structurally well formed and round-trips
// through String and Parse.
func (d Dependency) Validate() error {
	if err := ferrors.ValidateModName(d.Name); err != nil {
		return ferrors.Wrap(ferrors.ErrCodeInvalidDependency, err, "dependency %q", d.Name)
	}
	if !d.Relation.Valid() {
		return ferrors.New(ferrors.ErrCodeInvalidDependency, "dependency %q: unknown relation %q", d.Name, d.Relation)
	}
	if !d.Compare.Valid() {
		return ferrors.New(ferrors.ErrCodeInvalidDependency, "dependency %q: unknown operator %q", d.Name, d.Compare)
	}
	if (d.Compare == NoOperator) != (d.Version == nil) {
		return ferrors.New(ferrors.ErrCodeInvalidDependency, "dependency %q: operator and version must be given together", d.Name)
	}
	if hasRelationPrefix(d.Name) || hasConstraintSuffix(d.Name) {
		return ferrors.New(ferrors.ErrCodeInvalidDependency, "dependency %q: name would not round-trip", d.Name)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler so a Dependency is encoded
// as its string form in JSON.
func (d Dependency) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dependency) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseAll decodes every entry of deps. Entries that fail to decode are
// skipped in the returned slice and their errors are joined.
func ParseAll(deps []string) ([]Dependency, error) {
	out := make([]Dependency, 0, len(deps))
	var errs []error
	for _, s := range deps {
		d, err := Parse(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, d)
	}
	return out, errors.Join(errs...)
}

// FormatAll encodes deps in order.
func FormatAll(deps []Dependency) []string {
	out := make([]string, len(deps))
	for i, d := range deps {
		out[i] = d.String()
	}
	return out
}
