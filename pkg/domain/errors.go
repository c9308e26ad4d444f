package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownNode means a node id is absent from the graph. With a validated
	// graph this indicates an engine bug and should be treated as fatal.
	ErrUnknownNode = errors.New("unknown node")

	// ErrInvalidOperation means an operation's precondition did not hold.
	// The engine only reports it in strict mode; otherwise the call is a no-op.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrInvalidSelection is returned when an answer is neither positive nor negative.
	ErrInvalidSelection = errors.New("invalid selection")
)

// UnknownNodeError carries the id that failed to resolve.
type UnknownNodeError struct {
	NodeID string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown node: %q", e.NodeID)
}

func (e *UnknownNodeError) Unwrap() error {
	return ErrUnknownNode
}

// InvalidOperationError describes an operation attempted outside its precondition.
type InvalidOperationError struct {
	Op     string
	Reason string
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid operation %s: %s", e.Op, e.Reason)
}

func (e *InvalidOperationError) Unwrap() error {
	return ErrInvalidOperation
}
