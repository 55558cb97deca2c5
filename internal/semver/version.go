package semver

import (
	"errors"
	"strings"

	mmsemver "github.com/Masterminds/semver/v3"
)

// Clean normalizes a declared version string to strict SemVer 2.0 form.
// Surrounding whitespace and a leading "v" or "=" are tolerated; anything else
// must already be a complete MAJOR.MINOR.PATCH version. Partial versions such
// as "1.2" are rejected rather than guessed.
func Clean(raw string) (string, error) {
	v, err := mmsemver.StrictNewVersion(trimPrefix(raw))
	if err != nil {
		return "", &FormatError{Raw: raw, Err: err}
	}
	return v.String(), nil
}

// CleanField is Clean with the source field recorded on failure.
func CleanField(field, raw string) (string, error) {
	v, err := Clean(raw)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Field = field
		}
		return "", err
	}
	return v, nil
}

// Coerce normalizes a loosely written version such as "v0.0" or "1" to full
// SemVer form. Used for schema API versions, which are conventionally written
// as "vMAJOR.MINOR".
func Coerce(raw string) (string, error) {
	trimmed := trimPrefix(raw)
	if trimmed == "" {
		return "", &FormatError{Raw: raw, Err: errors.New("empty version")}
	}
	v, err := mmsemver.NewVersion(trimmed)
	if err != nil {
		return "", &FormatError{Raw: raw, Err: err}
	}
	return v.String(), nil
}

// Compare compares two versions after coercion.
// Returns a negative value, zero, or a positive value.
func Compare(a, b string) (int, error) {
	va, err := mmsemver.NewVersion(trimPrefix(a))
	if err != nil {
		return 0, &FormatError{Raw: a, Err: err}
	}
	vb, err := mmsemver.NewVersion(trimPrefix(b))
	if err != nil {
		return 0, &FormatError{Raw: b, Err: err}
	}
	return va.Compare(vb), nil
}

// trimPrefix drops surrounding whitespace, then at most one "=" and one "v".
// Whatever follows must be the version itself.
func trimPrefix(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "=")
	return strings.TrimPrefix(s, "v")
}
