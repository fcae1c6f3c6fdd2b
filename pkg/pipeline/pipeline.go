// Package pipeline runs a complete info.json generation.
//
// A run has four stages:
//
//  1. Read: decode package.json
//  2. Check: build info.json and check it offline (game errors, portal warnings)
//  3. Validate: check dependencies against the mod portal (optional)
//  4. Write: write info.json, unless a previous stage produced errors
//
// The outcome is summarized as a [Status]: pass, warning or error. Only
// errors prevent the output from being written.
//
// # Usage
//
//	client := modportal.NewClient(modportal.Options{})
//	runner := pipeline.NewRunner(validate.New(client), logger)
//	result, err := runner.Generate(ctx, pipeline.Options{
//	    Input:  "package.json",
//	    Output: "info.json",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.Status == pipeline.StatusError {
//	    os.Exit(1)
//	}
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	ferrors "github.com/matzehuels/factoriogen/pkg/errors"
	"github.com/matzehuels/factoriogen/pkg/manifest"
	"github.com/matzehuels/factoriogen/pkg/validate"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultInput is the package.json read when no input is given.
	DefaultInput = "package.json"

	// DefaultOutput is the info.json written when no output is given.
	DefaultOutput = "info.json"

	// DefaultTimeout bounds dependency validation for a whole run.
	DefaultTimeout = validate.DefaultBatchTimeout
)

// Status is the overall outcome of a run.
type Status string

// Run outcomes, from best to worst.
const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// worse returns the more severe of s and o.
func (s Status) worse(o Status) Status {
	rank := map[Status]int{StatusPass: 0, StatusWarning: 1, StatusError: 2}
	if rank[o] > rank[s] {
		return o
	}
	return s
}

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options configures a generation run.
type Options struct {
	Input  string `json:"input,omitempty"`
	Output string `json:"output,omitempty"`

	SkipValidation bool          `json:"skip_validation,omitempty"` // Skip portal lookups (default: false = validate)
	Sequential     bool          `json:"sequential,omitempty"`      // Look up dependencies one at a time
	Strict         bool          `json:"strict,omitempty"`          // Treat portal warnings as errors
	Timeout        time.Duration `json:"timeout,omitempty"`         // Validation budget for the whole run

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks paths and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		o.Input = DefaultInput
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Timeout < 0 {
		return ferrors.New(ferrors.ErrCodeInvalidInput, "timeout must be positive, got %s", o.Timeout)
	}
	if err := ferrors.ValidatePath(o.Input); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if err := ferrors.ValidatePath(o.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ValidateOptions maps run options onto batch validation options.
func (o *Options) ValidateOptions() validate.Options {
	return validate.Options{
		Sequential: o.Sequential,
		Timeout:    o.Timeout,
		Strict:     o.Strict,
		Logger:     o.Logger,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outcome of a run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string `json:"run_id"`

	// Status is the overall outcome.
	Status Status `json:"status"`

	// Info is the generated info.json, also when it was not written.
	Info manifest.Info `json:"info"`

	// Manifest holds the offline check findings.
	Manifest manifest.Report `json:"manifest"`

	// Dependencies holds the mod portal findings.
	Dependencies validate.Result `json:"dependencies"`

	// Written is the output path, or empty if nothing was written.
	Written string `json:"written,omitempty"`

	// Stats contains timing information.
	Stats Stats `json:"stats"`
}

// Stats contains run timing.
type Stats struct {
	CheckTime    time.Duration `json:"check_time"`
	ValidateTime time.Duration `json:"validate_time"`
}
