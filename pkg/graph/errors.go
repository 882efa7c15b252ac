package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural failures. Content problems (dangling
// references, malformed CVSS data) are never errors here; they belong to
// pkg/validation.
var (
	ErrNotMapping   = errors.New("input is not a mapping")
	ErrNodeNotFound = errors.New("node not found")
)

// GraphError carries the operation and node involved in a structural failure.
type GraphError struct {
	Op    string
	Node  string
	Cause error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("%s %q: %v", e.Op, e.Node, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error { return e.Cause }

// Is reports whether the target matches this error's cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// NewNodeNotFound builds the structural error raised when an operation
// strictly requires a node that is absent from the model.
func NewNodeNotFound(op, node string) error {
	return &GraphError{Op: op, Node: node, Cause: ErrNodeNotFound}
}
