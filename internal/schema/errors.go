package schema

import "fmt"

// ValidationError reports a document that matches no registered shape.
// Path names the first offending field, e.g.
// "submodules[0].config.features[1].branchName". It is empty when the
// document as a whole is rejected.
type ValidationError struct {
	Path   string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "invalid config document: " + e.Reason
	}
	return fmt.Sprintf("invalid config document at %s: %s", e.Path, e.Reason)
}
