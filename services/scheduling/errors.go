package scheduling

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the base of all pre-store validation failures.
// Conflicts are NOT errors; they are Decision values (see Decision).
var ErrInvalidInput = errors.New("scheduling: invalid input")

var (
	ErrEndNotAfterStart = fmt.Errorf("%w: end must be strictly after start", ErrInvalidInput)
	ErrMissingStart     = fmt.Errorf("%w: start is required", ErrInvalidInput)
	ErrMissingEnd       = fmt.Errorf("%w: end is required for bookings", ErrInvalidInput)
	ErrMissingOwner     = fmt.Errorf("%w: employee id is required", ErrInvalidInput)
	ErrWrongOwnerKind   = fmt.Errorf("%w: interval owner kind does not match the entry point", ErrInvalidInput)
	ErrBadSlotWindow    = fmt.Errorf("%w: business window or granularity is malformed", ErrInvalidInput)
	ErrBadDuration      = fmt.Errorf("%w: service duration must be positive", ErrInvalidInput)
)

// ErrNoActiveTimer is returned by StopTimer when the employee has no
// running timer to close.
var ErrNoActiveTimer = errors.New("scheduling: no active timer")

// RejectReason classifies why an admission was refused.
type RejectReason string

const (
	ReasonConflict      RejectReason = "conflict"
	ReasonAlreadyActive RejectReason = "already_active"
)

// Decision is the outcome of an admission check. A rejected admission is a
// normal, recoverable business outcome and never surfaces as a Go error;
// only store/infrastructure failures do.
type Decision struct {
	Accepted      bool         `json:"accepted"`
	Reason        RejectReason `json:"reason,omitempty"`
	ConflictIDs   []string     `json:"conflictIds,omitempty"`   // identifiers of the blocking interval(s)
	ActiveTimerID string       `json:"activeTimerId,omitempty"` // set when Reason is already_active
}

func accepted() Decision {
	return Decision{Accepted: true}
}

func rejectedConflict(ids ...string) Decision {
	return Decision{Reason: ReasonConflict, ConflictIDs: ids}
}

func rejectedAlreadyActive(id string) Decision {
	return Decision{Reason: ReasonAlreadyActive, ActiveTimerID: id}
}
