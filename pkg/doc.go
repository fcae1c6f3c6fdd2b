// Package pkg provides the libraries behind factoriogen.
//
// # Overview
//
// factoriogen turns the package.json of a Factorio mod project into the
// info.json the game reads, and checks the declared dependencies against
// the Factorio mod portal. The pkg directory is organized as:
//
//  1. [version] - Version comparison and strict version parsing
//  2. [dependency] - Dependency string encoding and decoding
//  3. [integrations] - HTTP client and the mod portal client
//  4. [validate] - Per-dependency and batch validation
//  5. [manifest] - package.json to info.json conversion and offline checks
//  6. [pipeline] - A complete generation run
//
// # Architecture
//
// The data flow of a generation run:
//
//	package.json
//	     ↓
//	[manifest] (decode, convert, check)
//	     ↓
//	[dependency] (decode each dependency string)
//	     ↓
//	[validate] → [integrations/modportal] (look up published releases)
//	     ↓
//	info.json + pass/warning/error status
//
// # Quick Start
//
// Check a few dependency strings against the mod portal:
//
//	import (
//	    "context"
//
//	    "github.com/matzehuels/factoriogen/pkg/integrations/modportal"
//	    "github.com/matzehuels/factoriogen/pkg/validate"
//	)
//
//	v := validate.New(modportal.NewClient(modportal.Options{}))
//	res := v.ValidateStrings(context.Background(),
//	    []string{"base >= 2.0.0", "? flib >= 0.14.0"},
//	    validate.Options{})
//	for _, w := range res.Warnings {
//	    fmt.Println(w.Message, w.Suggestion)
//	}
//
// # Supporting Packages
//
//   - [errors] - Coded errors and input validation helpers
//   - [observability] - Hooks for HTTP and validation events
//   - [buildinfo] - Version information injected at build time
package pkg
