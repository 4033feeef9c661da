// Package apperrors defines the error kinds the lifecycle engine returns.
// The HTTP layer maps these to status codes; services never import gin.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks a lookup for an id that is unknown or soft-deleted.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a lost optimistic-lock race. The caller should
	// re-fetch the current state before retrying; the engine never retries.
	ErrConflict = errors.New("conflict: concurrent modification detected")

	// ErrDuplicate marks a uniqueness violation (one application per
	// candidate/job pair, one candidate per email).
	ErrDuplicate = errors.New("duplicate")
)

// TransitionErrorKind distinguishes why a proposed transition was rejected.
type TransitionErrorKind int

const (
	// TransitionNoChange: proposed status equals the current status.
	TransitionNoChange TransitionErrorKind = iota
	// TransitionTerminalState: current status is HIRED or REJECTED.
	TransitionTerminalState
	// TransitionIllegal: proposed status is not in the allowed-next set.
	TransitionIllegal
)

// InvalidTransitionError rejects a single proposed status change. It always
// carries the full allowed-next list so clients can self-correct without a
// second round trip.
type InvalidTransitionError struct {
	Kind      TransitionErrorKind
	Current   string
	Requested string
	Allowed   []string
	Message   string
}

func (e *InvalidTransitionError) Error() string {
	return e.Message
}

// NewNoChangeError rejects a self-transition. It still carries the
// allowed-next list so the client can pick a real target without another
// round trip.
func NewNoChangeError(current string, allowed []string) *InvalidTransitionError {
	return &InvalidTransitionError{
		Kind:      TransitionNoChange,
		Current:   current,
		Requested: current,
		Allowed:   allowed,
		Message:   fmt.Sprintf("status is already %s, no change needed", current),
	}
}

// NewTerminalStateError rejects any transition out of HIRED or REJECTED.
// The two terminal states carry distinct messages because callers display them.
func NewTerminalStateError(current, requested string) *InvalidTransitionError {
	var msg string
	if current == "HIRED" {
		msg = "cannot change status from HIRED (terminal state): application has been finalized"
	} else {
		msg = fmt.Sprintf("cannot change status from %s (terminal state): rejected applications cannot be reopened", current)
	}
	return &InvalidTransitionError{
		Kind:      TransitionTerminalState,
		Current:   current,
		Requested: requested,
		Allowed:   []string{},
		Message:   msg,
	}
}

// NewIllegalTransitionError rejects an edge not present in the status graph.
func NewIllegalTransitionError(current, requested string, allowed []string) *InvalidTransitionError {
	return &InvalidTransitionError{
		Kind:      TransitionIllegal,
		Current:   current,
		Requested: requested,
		Allowed:   allowed,
		Message: fmt.Sprintf(
			"invalid status transition %s -> %s: allowed transitions from %s are [%s], stage skipping is not permitted",
			current, requested, current, strings.Join(allowed, ", "),
		),
	}
}

// StorageError wraps a persistence failure unrelated to business rules.
// It is fatal to the call; nothing was committed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
