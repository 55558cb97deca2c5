package config

import "errors"

// ErrStopWalk can be returned from a WalkFunc to end the walk early without
// Walk reporting an error.
var ErrStopWalk = errors.New("stop walk")

// WalkFunc is called for every Config in a tree. path holds the identifiers
// from the root down to and including node.
type WalkFunc func(path []string, node *Config) error

// Walk visits root and every nested submodule Config depth-first, in
// declaration order. Shadow submodules are visited too. The first error
// returned by fn stops the walk and is returned, except ErrStopWalk.
func Walk(root *Config, fn WalkFunc) error {
	if root == nil {
		return nil
	}
	err := walk(nil, root, fn)
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

func walk(parent []string, node *Config, fn WalkFunc) error {
	path := make([]string, len(parent), len(parent)+1)
	copy(path, parent)
	path = append(path, node.Identifier)

	if err := fn(path, node); err != nil {
		return err
	}
	for i := range node.Submodules {
		if child := node.Submodules[i].Config; child != nil {
			if err := walk(path, child, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
