// Package fetch retrieves configuration documents named by Config References.
//
// Each fetcher serves one reference variant. Router dispatches a parsed
// reference to the fetcher for its variant, and Cached memoizes the bytes
// returned by any Fetcher. Fetchers return raw document bytes; decoding and
// validation happen in the schema package.
package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/reference"
)

// ErrNotFound is returned when the referenced document does not exist.
var ErrNotFound = errors.New("config document not found")

// Fetcher returns the bytes of the document a reference points at.
// Implementations must be safe for concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context, ref reference.ConfigRef) ([]byte, error)
}

// Func adapts a plain function to the Fetcher interface.
type Func func(ctx context.Context, ref reference.ConfigRef) ([]byte, error)

func (f Func) Fetch(ctx context.Context, ref reference.ConfigRef) ([]byte, error) {
	return f(ctx, ref)
}

// UnsupportedRefError is returned when a fetcher is asked for a reference
// variant it cannot serve.
type UnsupportedRefError struct {
	Ref    reference.ConfigRef
	Reason string
}

func (e *UnsupportedRefError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot fetch %s: %s", e.Ref, e.Reason)
	}
	return fmt.Sprintf("cannot fetch %s: unsupported %s reference", e.Ref, e.Ref.Type())
}

func unsupported(ref reference.ConfigRef) error {
	return &UnsupportedRefError{Ref: ref}
}
