// Package dependency encodes and decodes mod dependency strings.
//
// # Grammar
//
// A dependency entry in info.json is a single string:
//
//	[RELATION ]NAME[ COMPARE VERSION]
//
// RELATION is one of:
//
//   - "!"   incompatible: the named mod must not be loaded
//   - "?"   optional
//   - "(?)" hidden optional
//   - "~"   required, but without a load-order requirement
//
// No relation means a required dependency that loads first. COMPARE is one
// of "<", "<=", "=", ">=", ">" and VERSION is a major.minor.patch triple.
//
// # Decoding
//
// [Parse] strips fixed tokens from the ends of the string in a fixed order:
// trailing version, then trailing operator, then leading relation. What
// remains is the mod name. Because operators and relations are a closed set
// of tokens, this never splits a valid mod name.
//
//	d, _ := dependency.Parse("~ some-mod >= 1.2.3")
//	// d.Relation == dependency.Unordered
//	// d.Compare  == dependency.GreaterOrEqual
//	// d.Version  == &version.Version{Major: 1, Minor: 2, Patch: 3}
//
// [Dependency.String] is the inverse of [Parse]:
// Parse(d.String()) == d for every d that passes [Dependency.Validate].
package dependency
