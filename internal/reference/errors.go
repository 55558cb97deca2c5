package reference

import "fmt"

// UnsupportedProtocolError reports a URI whose protocol (or element kind) is
// not one of the recognized set.
type UnsupportedProtocolError struct {
	URI      string
	Protocol string
}

func (e *UnsupportedProtocolError) Error() string {
	return fmt.Sprintf("unsupported protocol %q in %q", e.Protocol, e.URI)
}

// MalformedURIError reports a URI with a recognized protocol whose qualifier
// has the wrong shape.
type MalformedURIError struct {
	URI    string
	Reason string
}

func (e *MalformedURIError) Error() string {
	return fmt.Sprintf("malformed reference %q: %s", e.URI, e.Reason)
}
