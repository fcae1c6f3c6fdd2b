// Package version compares mod and release versions.
//
// Two representations are used across factoriogen:
//
//   - Release versions published by the mod portal are free-form strings of
//     the shape MAJOR.MIDDLE.MINOR[-PRERELEASE][+METADATA]. They are ordered
//     with [Compare], which never fails: malformed parts compare as 0.
//   - Versions written by mod authors in info.json and in dependency
//     constraints are strict triples, parsed with [ParseVersion] into a
//     [Version] whose parts are limited to 0..65535.
//
// # Ordering
//
// Numeric parts are compared pairwise, missing trailing parts count as 0.
// A version without a prerelease sorts after the same version with one,
// two prereleases compare lexicographically, and build metadata is ignored:
//
//	version.Compare("1.2.0", "1.2.0-rc1")        //  1
//	version.Compare("1.2.0-alpha", "1.2.0-beta") // -1
//	version.Compare("1.2", "1.2.0+build.7")      //  0
package version
