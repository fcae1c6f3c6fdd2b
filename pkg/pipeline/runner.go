package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/factoriogen/pkg/manifest"
	"github.com/matzehuels/factoriogen/pkg/validate"
)

// Runner executes generation runs.
//
// The Runner holds no per-run state. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Validator *validate.Validator
	Logger    *log.Logger
}

// NewRunner creates a runner. A nil validator disables portal lookups
// regardless of Options.SkipValidation.
func NewRunner(v *validate.Validator, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Validator: v, Logger: logger}
}

// Generate reads opts.Input, checks it and writes opts.Output.
//
// Problems with the manifest or its dependencies are reported through
// Result.Status, not the returned error. The error is reserved for
// failures to read the input or write the output, and for ctx being
// cancelled before the output is written. A cancelled run writes nothing.
func (r *Runner) Generate(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.NewString(), Status: StatusPass}
	logger := opts.Logger.With("run", result.RunID)
	opts.Logger = logger

	// Stage 1: Read
	pkg, err := manifest.ReadPackage(opts.Input)
	if err != nil {
		return nil, err
	}
	logger.Debug("read package", "path", opts.Input, "name", pkg.Name)

	// Stage 2: Check
	checkStart := time.Now()
	result.Info = manifest.FromPackage(pkg)
	result.Manifest = manifest.Check(result.Info)
	result.Stats.CheckTime = time.Since(checkStart)

	for _, w := range result.Manifest.Warnings {
		logger.Debug("mod portal would reject field", "field", w.Field, "reason", w.Message)
	}
	if result.Manifest.HasErrors() {
		for _, e := range result.Manifest.Errors {
			logger.Debug("invalid field", "field", e.Field, "reason", e.Message)
		}
		result.Status = StatusError
		return result, nil
	}
	if result.Manifest.HasWarnings() {
		result.Status = StatusWarning
	}

	// Stage 3: Validate
	if !opts.SkipValidation && r.Validator != nil {
		validateStart := time.Now()
		result.Dependencies = r.validateDependencies(ctx, result.Info, opts)
		result.Stats.ValidateTime = time.Since(validateStart)
		result.Status = result.Status.worse(dependencyStatus(result.Dependencies))

		logger.Info("validated dependencies",
			"count", len(result.Info.Dependencies),
			"errors", len(result.Dependencies.Errors),
			"warnings", len(result.Dependencies.Warnings),
			"duration", result.Stats.ValidateTime)

		if result.Status == StatusError {
			return result, nil
		}
	}

	// Stage 4: Write
	if err := ctx.Err(); err != nil {
		logger.Debug("run cancelled before writing", "err", err)
		return nil, fmt.Errorf("generate cancelled: %w", err)
	}
	if err := manifest.WriteInfo(opts.Output, result.Info); err != nil {
		return nil, err
	}
	result.Written = opts.Output
	logger.Debug("wrote info.json", "path", opts.Output, "status", result.Status)

	return result, nil
}

func (r *Runner) validateDependencies(ctx context.Context, info manifest.Info, opts Options) validate.Result {
	deps, res := validate.Decode(info.Dependencies)
	res.Merge(r.Validator.ValidateSafe(ctx, deps, opts.ValidateOptions()))

	for _, e := range res.Errors {
		opts.Logger.Debug(e.Message, "dependency", e.Dependency, "hint", e.Suggestion)
	}
	for _, w := range res.Warnings {
		opts.Logger.Debug(w.Message, "dependency", w.Dependency, "hint", w.Suggestion)
	}
	if res.Skipped {
		opts.Logger.Debug("dependency validation skipped", "timeout", opts.Timeout)
	}
	return res
}

// dependencyStatus maps portal findings onto a status. A skipped batch is
// a warning: the output is written but was not verified.
func dependencyStatus(res validate.Result) Status {
	switch {
	case res.HasErrors():
		return StatusError
	case res.HasWarnings() || res.Skipped:
		return StatusWarning
	}
	return StatusPass
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
