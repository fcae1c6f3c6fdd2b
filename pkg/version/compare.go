package version

import (
	"slices"
	"strconv"
	"strings"
)

// Parts is the structural decomposition of a release version string.
type Parts struct {
	Numbers       []int  // Dot-separated numeric parts; malformed parts are 0
	Prerelease    string // Segment after the first '-' and before any '+'
	HasPrerelease bool   // True when a '-' was present, even if Prerelease is empty
	Metadata      string // Segment after the first '+'; never used for ordering
}

// Split decomposes s into numeric parts, prerelease and build metadata.
func Split(s string) Parts {
	rest, meta, _ := strings.Cut(s, "+")
	core, pre, hasPre := strings.Cut(rest, "-")

	fields := strings.Split(core, ".")
	nums := make([]int, len(fields))
	for i, f := range fields {
		nums[i] = leadingInt(strings.TrimSpace(f))
	}

	return Parts{
		Numbers:       nums,
		Prerelease:    pre,
		HasPrerelease: hasPre,
		Metadata:      meta,
	}
}

// leadingInt parses the decimal digits at the start of s, returning 0 when
// there are none or the value overflows.
func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// Compare returns -1 if a < b, 0 if a == b and 1 if a > b.
func Compare(a, b string) int {
	return Split(a).Compare(Split(b))
}

// Compare orders p relative to o. See [Compare].
func (p Parts) Compare(o Parts) int {
	for i := range max(len(p.Numbers), len(o.Numbers)) {
		x, y := at(p.Numbers, i), at(o.Numbers, i)
		if x != y {
			if x < y {
				return -1
			}
			return 1
		}
	}

	switch {
	case !p.HasPrerelease && o.HasPrerelease:
		return 1
	case p.HasPrerelease && !o.HasPrerelease:
		return -1
	case p.HasPrerelease && o.HasPrerelease:
		return strings.Compare(p.Prerelease, o.Prerelease)
	}
	return 0
}

func at(nums []int, i int) int {
	if i < len(nums) {
		return nums[i]
	}
	return 0
}

// SortDesc returns a copy of versions sorted from newest to oldest.
// Versions that compare equal keep their input order.
func SortDesc(versions []string) []string {
	out := slices.Clone(versions)
	slices.SortStableFunc(out, func(a, b string) int { return Compare(b, a) })
	return out
}
