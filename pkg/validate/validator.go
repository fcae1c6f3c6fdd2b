package validate

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/factoriogen/pkg/dependency"
	"github.com/matzehuels/factoriogen/pkg/integrations"
	"github.com/matzehuels/factoriogen/pkg/integrations/modportal"
	"github.com/matzehuels/factoriogen/pkg/version"
)

// DefaultBuiltins are shipped with the game and never published on the portal.
var DefaultBuiltins = []string{"base", "core"}

// maxListedVersions caps the versions named in a version-not-available hint.
const maxListedVersions = 5

// Fetcher retrieves the published releases of a mod.
// *modportal.Client implements it.
type Fetcher interface {
	FetchMod(ctx context.Context, name string) (*modportal.ModInfo, error)
}

// Validator checks declared dependencies against published releases.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	fetcher  Fetcher
	builtins map[string]bool
}

// New creates a Validator. extraBuiltins are skipped in addition to
// DefaultBuiltins.
func New(fetcher Fetcher, extraBuiltins ...string) *Validator {
	builtins := make(map[string]bool, len(DefaultBuiltins)+len(extraBuiltins))
	for _, name := range DefaultBuiltins {
		builtins[name] = true
	}
	for _, name := range extraBuiltins {
		builtins[name] = true
	}
	return &Validator{fetcher: fetcher, builtins: builtins}
}

// IsBuiltin reports whether name is exempt from registry validation.
func (v *Validator) IsBuiltin(name string) bool { return v.builtins[name] }

// Validate checks a single dependency.
//
// Built-in mods and incompatibilities are not looked up. A mod missing from
// the portal and an unsatisfiable version constraint are warnings; network
// failures and timeouts are errors.
func (v *Validator) Validate(ctx context.Context, dep dependency.Dependency) Result {
	var res Result

	if v.IsBuiltin(dep.Name) || dep.Relation == dependency.Incompatible {
		return res
	}

	mod, err := v.fetcher.FetchMod(ctx, dep.Name)
	switch {
	case errors.Is(err, integrations.ErrNotFound):
		res.Warnings = append(res.Warnings, modNotFound(dep.Name))
		return res
	case errors.Is(err, integrations.ErrTimeout):
		res.Errors = append(res.Errors, Error{
			Kind:       TimeoutError,
			Message:    fmt.Sprintf("Timeout fetching mod '%s' from Factorio mod portal", dep.Name),
			Dependency: dep.Name,
			Suggestion: "Check your internet connection or try again later",
		})
		return res
	case err != nil:
		res.Errors = append(res.Errors, networkError(dep.Name, err))
		return res
	case mod == nil:
		res.Warnings = append(res.Warnings, modNotFound(dep.Name))
		return res
	}

	if !dep.HasConstraint() {
		return res
	}

	target := dep.Version.String()
	ok, available := CheckConstraint(mod.Versions(), dep.Compare, target)
	if !ok {
		res.Warnings = append(res.Warnings, Warning{
			Kind:       WarnVersionNotAvailable,
			Message:    fmt.Sprintf("Version constraint '%s %s' not satisfied for mod '%s'", dep.Compare, target, dep.Name),
			Dependency: dep.Name,
			Suggestion: availableHint(available),
		})
	}
	return res
}

// networkError names the HTTP status when the portal answered, and the
// transport failure otherwise.
func networkError(name string, err error) Error {
	var (
		status *integrations.StatusError
		req    *integrations.RequestError
		msg    string
	)
	switch {
	case errors.As(err, &status):
		msg = fmt.Sprintf("HTTP %d error fetching mod '%s'", status.StatusCode, name)
	case errors.As(err, &req):
		msg = fmt.Sprintf("Network error fetching mod '%s': %v", name, req.Err)
	default:
		msg = fmt.Sprintf("Network error fetching mod '%s': %v", name, err)
	}
	return Error{
		Kind:       NetworkError,
		Message:    msg,
		Dependency: name,
		Suggestion: "Verify your internet connection and that the mod portal is accessible",
	}
}

func modNotFound(name string) Warning {
	return Warning{
		Kind:       WarnModNotFound,
		Message:    fmt.Sprintf("Mod '%s' not found on Factorio mod portal", name),
		Dependency: name,
		Suggestion: "Check the mod name spelling or verify it exists on the mod portal",
	}
}

// CheckConstraint reports whether any of the published versions satisfies
// "op target" and returns the versions sorted newest first.
//
// Equal requires the exact target string to be published; the other
// operators use [version.Compare].
func CheckConstraint(published []string, op dependency.Operator, target string) (bool, []string) {
	available := version.SortDesc(published)

	switch op {
	case dependency.NoOperator:
		return true, available
	case dependency.Equal:
		return slices.Contains(available, target), available
	}

	for _, v := range available {
		if op.Satisfied(version.Compare(v, target)) {
			return true, available
		}
	}
	return false, available
}

func availableHint(available []string) string {
	if len(available) == 0 {
		return "No releases are published for this mod"
	}
	shown := available[:min(len(available), maxListedVersions)]
	hint := "Available versions: " + strings.Join(shown, ", ")
	if rest := len(available) - len(shown); rest > 0 {
		hint += fmt.Sprintf(" (and %d more)", rest)
	}
	return hint
}
