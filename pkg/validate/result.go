package validate

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a finding that fails validation.
type ErrorKind string

// Error kinds.
const (
	InvalidDependency    ErrorKind = "invalid-dependency"
	InvalidVersionFormat ErrorKind = "invalid-version-format"
	ModNotFound          ErrorKind = "mod-not-found"
	VersionNotFound      ErrorKind = "version-not-found"
	NetworkError         ErrorKind = "network-error"
	TimeoutError         ErrorKind = "timeout-error"
)

// WarningKind classifies an advisory finding.
type WarningKind string

// Warning kinds.
const (
	WarnModNotFound         WarningKind = "mod-not-found"
	WarnVersionNotAvailable WarningKind = "version-not-available"
)

// Error is a validation finding that is fatal to the overall outcome.
type Error struct {
	Kind       ErrorKind `json:"type"`
	Message    string    `json:"message"`
	Dependency string    `json:"dependency,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// Error implements the error interface.
func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Warning is an advisory validation finding.
type Warning struct {
	Kind       WarningKind `json:"type"`
	Message    string      `json:"message"`
	Dependency string      `json:"dependency,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Result aggregates the findings of one or more dependency validations.
//
// Skipped is set when a batch exceeded its time budget; Errors and Warnings
// are then empty because the batch result was discarded.
type Result struct {
	Errors   []Error   `json:"errors"`
	Warnings []Warning `json:"warnings"`
	Skipped  bool      `json:"validation_skipped,omitempty"`
}

// Merge appends the findings of o to r.
func (r *Result) Merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
	r.Skipped = r.Skipped || o.Skipped
}

// HasErrors reports whether r holds any error.
func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether r holds any warning.
func (r Result) HasWarnings() bool { return len(r.Warnings) > 0 }

// Err joins all errors of r, or returns nil.
func (r Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}
