package manifest

import (
	"errors"
	"fmt"

	"github.com/matzehuels/factoriogen/pkg/dependency"
	ferrors "github.com/matzehuels/factoriogen/pkg/errors"
	"github.com/matzehuels/factoriogen/pkg/version"
)

// MaxTitleLength is the longest title the game accepts.
const MaxTitleLength = 100

// Issue is one problem found in an info.json field.
type Issue struct {
	Field   string       `json:"field"`
	Code    ferrors.Code `json:"code"`
	Message string       `json:"message"`
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// Report holds the outcome of [Check]. Errors make the game reject the mod;
// warnings only affect publishing to the mod portal.
type Report struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// HasErrors reports whether r holds any error.
func (r Report) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether r holds any warning.
func (r Report) HasWarnings() bool { return len(r.Warnings) > 0 }

// Err joins all errors of r, or returns nil.
func (r Report) Err() error {
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

func (r *Report) fail(field string, err error) {
	r.Errors = append(r.Errors, issue(field, err))
}

func (r *Report) warn(field string, err error) {
	r.Warnings = append(r.Warnings, issue(field, err))
}

func issue(field string, err error) Issue {
	code := ferrors.GetCode(err)
	if code == "" {
		code = ferrors.ErrCodeInvalidManifest
	}
	return Issue{Field: field, Code: code, Message: ferrors.UserMessage(err)}
}

// Check validates info offline. It does not contact the mod portal.
func Check(info Info) Report {
	var r Report

	if err := ferrors.ValidateModName(info.Name); err != nil {
		r.fail("name", err)
	} else if err := ferrors.ValidatePortalModName(info.Name); err != nil {
		r.warn("name", err)
	}

	if _, err := version.ParseVersion(info.Version); err != nil {
		r.fail("version", err)
	}

	switch {
	case info.Title == "":
		r.fail("title", ferrors.New(ferrors.ErrCodeInvalidManifest, "title is required"))
	case len(info.Title) > MaxTitleLength:
		r.fail("title", ferrors.New(ferrors.ErrCodeInvalidManifest, "title too long (max %d characters)", MaxTitleLength))
	}

	if info.Author == "" {
		r.fail("author", ferrors.New(ferrors.ErrCodeInvalidManifest, "author is required"))
	}

	if info.Homepage != "" {
		if err := ferrors.ValidateURL(info.Homepage); err != nil {
			r.fail("homepage", err)
		}
	}

	game, err := version.ParseGameVersion(info.FactorioVersion)
	switch {
	case err != nil:
		r.fail("factorio_version", err)
	case info.DLC.Any() && game.Major < 2:
		r.fail("factorio_version", ferrors.New(ferrors.ErrCodeInvalidManifest,
			"DLC features require factorio_version 2.0 or later, got %s", game))
	}

	for i, s := range info.Dependencies {
		d, err := dependency.Parse(s)
		if err == nil {
			err = d.Validate()
		}
		field := fmt.Sprintf("dependencies[%d]", i)
		switch {
		case err != nil:
			r.fail(field, err)
		case d.Relation == dependency.Incompatible && d.HasConstraint():
			r.warn(field, ferrors.New(ferrors.ErrCodeInvalidDependency,
				"version constraint on incompatible mod %q is not checked against the mod portal", d.Name))
		}
	}

	return r
}
