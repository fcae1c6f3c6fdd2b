package validate

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/factoriogen/pkg/dependency"
	ferrors "github.com/matzehuels/factoriogen/pkg/errors"
	"github.com/matzehuels/factoriogen/pkg/observability"
)

// DefaultBatchTimeout bounds a whole ValidateSafe run.
const DefaultBatchTimeout = 30 * time.Second

// Options configures batch validation.
type Options struct {
	// Sequential validates one dependency at a time in list order. By
	// default all dependencies are looked up concurrently.
	Sequential bool

	// Timeout bounds ValidateSafe. Zero means DefaultBatchTimeout.
	Timeout time.Duration

	// Strict promotes registry warnings to errors: a missing mod becomes
	// ModNotFound and an unsatisfiable constraint becomes VersionNotFound.
	Strict bool

	// Logger receives per-dependency debug output. Nil disables logging.
	Logger *log.Logger
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultBatchTimeout
	}
	return o.Timeout
}

// ValidateAll validates every dependency and merges the findings.
//
// Findings keep the order of deps regardless of Sequential. A failure of one
// dependency never prevents the others from being checked.
func (v *Validator) ValidateAll(ctx context.Context, deps []dependency.Dependency, opts Options) Result {
	hooks := observability.Validation()
	start := time.Now()
	hooks.OnBatchStart(ctx, len(deps), !opts.Sequential)

	results := make([]Result, len(deps))
	check := func(i int) {
		depStart := time.Now()
		res := v.Validate(ctx, deps[i])
		if opts.Strict {
			res = escalate(res)
		}
		results[i] = res

		elapsed := time.Since(depStart)
		hooks.OnDependency(ctx, deps[i].Name, len(res.Errors), len(res.Warnings), elapsed)
		if opts.Logger != nil {
			opts.Logger.Debug("validated dependency",
				"dependency", deps[i].String(),
				"errors", len(res.Errors),
				"warnings", len(res.Warnings),
				"duration", elapsed)
		}
	}

	if opts.Sequential {
		for i := range deps {
			check(i)
		}
	} else {
		var g errgroup.Group
		for i := range deps {
			g.Go(func() error {
				check(i)
				return nil
			})
		}
		_ = g.Wait()
	}

	var out Result
	for _, res := range results {
		out.Merge(res)
	}
	hooks.OnBatchComplete(ctx, len(out.Errors), len(out.Warnings), false, time.Since(start))
	return out
}

// ValidateSafe runs ValidateAll under a time budget.
//
// If the budget elapses or ctx is done first, the batch result is discarded
// and an empty Result with Skipped set is returned. Requests still in flight
// are left to finish on their own; their results are dropped. Skipped does
// not tell a timeout from cancellation: callers that must stop on
// cancellation check ctx.Err().
func (v *Validator) ValidateSafe(ctx context.Context, deps []dependency.Dependency, opts Options) Result {
	start := time.Now()
	done := make(chan Result, 1)
	go func() {
		done <- v.ValidateAll(ctx, deps, opts)
	}()

	timer := time.NewTimer(opts.timeout())
	defer timer.Stop()

	select {
	case res := <-done:
		return res
	case <-timer.C:
		if opts.Logger != nil {
			opts.Logger.Warn("dependency validation timed out, skipping", "timeout", opts.timeout())
		}
	case <-ctx.Done():
		if opts.Logger != nil {
			opts.Logger.Warn("dependency validation cancelled, skipping", "err", ctx.Err())
		}
	}
	observability.Validation().OnBatchComplete(ctx, 0, 0, true, time.Since(start))
	return Result{Skipped: true}
}

// ValidateStrings decodes raw dependency strings and validates the ones that
// decode cleanly. Decode failures are reported as InvalidDependency or
// InvalidVersionFormat errors.
func (v *Validator) ValidateStrings(ctx context.Context, raw []string, opts Options) Result {
	deps, res := Decode(raw)
	res.Merge(v.ValidateSafe(ctx, deps, opts))
	return res
}

// Decode parses and structurally validates raw dependency strings. It
// returns the dependencies that are well formed, in input order, and a
// Result holding one error per malformed entry.
func Decode(raw []string) ([]dependency.Dependency, Result) {
	var (
		res  Result
		deps = make([]dependency.Dependency, 0, len(raw))
	)
	for _, s := range raw {
		dep, err := dependency.Parse(s)
		if err == nil {
			err = dep.Validate()
		}
		if err != nil {
			res.Errors = append(res.Errors, decodeError(s, err))
			continue
		}
		deps = append(deps, dep)
	}
	return deps, res
}

func decodeError(raw string, err error) Error {
	e := Error{
		Kind:       InvalidDependency,
		Message:    ferrors.UserMessage(err),
		Dependency: raw,
		Suggestion: `Use the form "[! | ? | (?) | ~] name [< | <= | = | >= | >] x.y.z"`,
	}
	if ferrors.Is(err, ferrors.ErrCodeInvalidVersion) {
		e.Kind = InvalidVersionFormat
		e.Suggestion = "Each version part must be a number between 0 and 65535"
	}
	return e
}

// escalate turns registry warnings into the matching errors.
func escalate(res Result) Result {
	out := Result{Errors: res.Errors, Skipped: res.Skipped}
	for _, w := range res.Warnings {
		kind := ModNotFound
		if w.Kind == WarnVersionNotAvailable {
			kind = VersionNotFound
		}
		out.Errors = append(out.Errors, Error{
			Kind:       kind,
			Message:    w.Message,
			Dependency: w.Dependency,
			Suggestion: w.Suggestion,
		})
	}
	return out
}
