package version

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/factoriogen/pkg/errors"
)

// Version is a MAJOR.MIDDLE.MINOR triple as used in info.json and in
// dependency constraints. Each part fits in 0..65535.
type Version struct {
	Major uint16
	Minor uint16
	Patch uint16
}

// ParseVersion parses a strict "N.N.N" triple of decimal digits.
func ParseVersion(s string) (Version, error) {
	fields := strings.Split(s, ".")
	if len(fields) != 3 {
		return Version{}, errors.New(errors.ErrCodeInvalidVersion,
			"version %q must have the form major.minor.patch", s)
	}

	var parts [3]uint16
	for i, f := range fields {
		n, err := parsePart(f)
		if err != nil {
			return Version{}, errors.Wrap(errors.ErrCodeInvalidVersion, err, "version %q", s)
		}
		parts[i] = n
	}
	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

// MustParse is like [ParseVersion] but panics on error.
// Intended for constants and tests.
func MustParse(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// parsePart accepts only ASCII digits so signs and whitespace are rejected.
func parsePart(s string) (uint16, error) {
	if !IsDigits(s) {
		return 0, fmt.Errorf("part %q is not a decimal number", s)
	}
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("part %q is out of range 0..65535", s)
	}
	return uint16(n), nil
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String formats v as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1 ordering v relative to o by (major, minor, patch).
func (v Version) Compare(o Version) int {
	if c := cmp.Compare(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, o.Minor); c != 0 {
		return c
	}
	return cmp.Compare(v.Patch, o.Patch)
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// GameVersion is the "major.minor" game version a mod targets.
type GameVersion struct {
	Major uint16
	Minor uint16
}

// DefaultGameVersion is assumed when info.json omits factorio_version.
var DefaultGameVersion = GameVersion{Major: 0, Minor: 12}

// ParseGameVersion parses a strict "N.N" pair.
func ParseGameVersion(s string) (GameVersion, error) {
	major, minor, ok := strings.Cut(s, ".")
	if !ok || strings.Contains(minor, ".") {
		return GameVersion{}, errors.New(errors.ErrCodeInvalidVersion,
			"game version %q must have the form major.minor", s)
	}
	ma, err := parsePart(major)
	if err != nil {
		return GameVersion{}, errors.Wrap(errors.ErrCodeInvalidVersion, err, "game version %q", s)
	}
	mi, err := parsePart(minor)
	if err != nil {
		return GameVersion{}, errors.Wrap(errors.ErrCodeInvalidVersion, err, "game version %q", s)
	}
	return GameVersion{Major: ma, Minor: mi}, nil
}

// String formats g as "major.minor".
func (g GameVersion) String() string {
	return fmt.Sprintf("%d.%d", g.Major, g.Minor)
}
