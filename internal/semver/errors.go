package semver

import "fmt"

// FormatError reports a version string that cannot be normalized to SemVer.
// Field names the document field the string was read from, when known.
type FormatError struct {
	Raw   string
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid version %q in %s: %v", e.Raw, e.Field, e.Err)
	}
	return fmt.Sprintf("invalid version %q: %v", e.Raw, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
