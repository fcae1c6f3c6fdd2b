package dependency

import (
	"strings"

	ferrors "github.com/matzehuels/factoriogen/pkg/errors"
	"github.com/matzehuels/factoriogen/pkg/version"
)

// Parse decodes a dependency string.
//
// On malformed input Parse still returns its best-effort decoding together
// with an error: an operator without a version, or a version without an
// operator, is folded back into the name and reported with code
// INVALID_DEPENDENCY. A version part above 65535 is reported with
// INVALID_VERSION.
//
// Version parts are stored as numbers, so leading zeros are not preserved:
// "x >= 01.2.3" decodes to 1.2.3 and encodes back as "x >= 1.2.3". The
// String(Parse(s)) == s law holds for strings without leading zeros.
func Parse(text string) (Dependency, error) {
	var d Dependency
	rest := text

	if r, after, ok := cutRelation(rest); ok {
		d.Relation = r
		rest = after
	}

	var verText string
	if head, tail, ok := cutLastToken(rest); ok && isTriple(tail) {
		verText, rest = tail, head
	}

	op := NoOperator
	if head, tail, ok := cutLastToken(rest); ok {
		if o, found := lookupOperator(tail); found {
			op, rest = o, head
		}
	}

	d.Name = rest
	switch {
	case op != NoOperator && verText == "":
		d.Name = rest + " " + string(op)
		return d, ferrors.New(ferrors.ErrCodeInvalidDependency,
			"dependency %q: operator %q is not followed by a version", text, op)
	case op == NoOperator && verText != "":
		d.Name = rest + " " + verText
		return d, ferrors.New(ferrors.ErrCodeInvalidDependency,
			"dependency %q: version %s has no comparison operator", text, verText)
	}

	if err := ferrors.ValidateModName(d.Name); err != nil {
		return d, ferrors.Wrap(ferrors.ErrCodeInvalidDependency, err, "dependency %q", text)
	}

	if verText != "" {
		v, err := version.ParseVersion(verText)
		if err != nil {
			return d, ferrors.Wrap(ferrors.ErrCodeInvalidVersion, err, "dependency %q", text)
		}
		d.Compare = op
		d.Version = &v
	}
	return d, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse(text string) Dependency {
	d, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return d
}

func cutRelation(s string) (Relation, string, bool) {
	for _, r := range relations {
		if after, ok := strings.CutPrefix(s, string(r)+" "); ok {
			return r, after, true
		}
	}
	return Required, s, false
}

// cutLastToken splits s at its last space.
func cutLastToken(s string) (head, tail string, ok bool) {
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return "", s, false
	}
	return s[:i], s[i+1:], true
}

func lookupOperator(tok string) (Operator, bool) {
	for _, o := range operators {
		if tok == string(o) {
			return o, true
		}
	}
	return NoOperator, false
}

// isTriple reports whether s looks like N.N.N, without checking ranges.
func isTriple(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if !version.IsDigits(p) {
			return false
		}
	}
	return true
}

func hasRelationPrefix(name string) bool {
	_, _, ok := cutRelation(name)
	return ok
}

func hasConstraintSuffix(name string) bool {
	_, tail, ok := cutLastToken(name)
	if !ok {
		return false
	}
	_, isOp := lookupOperator(tail)
	return isOp || isTriple(tail)
}
