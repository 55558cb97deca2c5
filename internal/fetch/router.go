package fetch

import (
	"context"
	"log/slog"

	"github.com/MyCarrier-DevOps/go-flowconfig/internal/reference"
)

// Router dispatches each reference to the fetcher for its variant. A nil
// fetcher for a variant makes references of that variant unsupported.
type Router struct {
	File   Fetcher
	Branch Fetcher
	HTTP   Fetcher
	GLFS   Fetcher

	// Source is the file that config:// resolves to, read through File.
	Source reference.FileRef

	Logger *slog.Logger
}

func (r *Router) Fetch(ctx context.Context, ref reference.ConfigRef) ([]byte, error) {
	var next Fetcher
	switch ref.(type) {
	case reference.ConfigSource:
		if r.Source.Path == "" {
			return nil, &UnsupportedRefError{Ref: ref, Reason: "no config source configured"}
		}
		next, ref = r.File, r.Source
	case reference.FileRef:
		next = r.File
	case reference.BranchRef:
		next = r.Branch
	case reference.HTTPRef:
		next = r.HTTP
	case reference.GLFSRef:
		next = r.GLFS
	}
	if next == nil {
		return nil, unsupported(ref)
	}

	if r.Logger != nil {
		r.Logger.DebugContext(ctx, "fetching config document", "ref", ref.String(), "type", ref.Type().String())
	}
	return next.Fetch(ctx, ref)
}
