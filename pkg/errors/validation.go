package errors

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"
)

// Mod name limits enforced by the game and by the mod portal.
const (
	MaxModNameLength       = 100
	MinPortalModNameLength = 3
	MaxPortalModNameLength = 50
)

// ValidateModName validates a mod name against the rules the game itself applies.
//
// The game accepts almost anything as a mod name, so the checks are limited to:
//   - No empty names
//   - No control characters
//   - No leading or trailing whitespace
//   - Maximum length of 100 characters
func ValidateModName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidModName, "mod name cannot be empty")
	}

	if len(name) > MaxModNameLength {
		return New(ErrCodeInvalidModName, "mod name too long (max %d characters)", MaxModNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidModName, "mod name contains invalid control characters")
		}
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidModName, "mod name cannot start or end with whitespace")
	}

	return nil
}

// portalModNameRegex matches names the mod portal accepts for upload.
var portalModNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidatePortalModName validates a mod name against the stricter mod portal rules.
func ValidatePortalModName(name string) error {
	if err := ValidateModName(name); err != nil {
		return err
	}

	if len(name) < MinPortalModNameLength || len(name) > MaxPortalModNameLength {
		return New(ErrCodeInvalidModName, "mod portal requires names of %d to %d characters, got %d",
			MinPortalModNameLength, MaxPortalModNameLength, len(name))
	}

	if !portalModNameRegex.MatchString(name) {
		return New(ErrCodeInvalidModName, "mod portal name must contain only letters, numbers, underscores, and hyphens: %q", name)
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https) and a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL must include a host")
	}

	return nil
}

// ValidatePath validates an input or output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
