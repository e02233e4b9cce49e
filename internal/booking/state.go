package booking

import (
	"net/http"

	"github.com/nekogravitycat/item-sharing-backend/internal/pkg/apperror"
)

// StateFilter is a read-time classification over bookings, orthogonal to the
// persisted Status: WAITING and REJECTED match on status, CURRENT/PAST/FUTURE
// are derived from the booking interval relative to "now".
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// ErrUnknownState builds the failure for an unrecognized state literal.
// The literal is kept in the message so the client can see what it sent.
func ErrUnknownState(literal string) *apperror.AppError {
	return apperror.New(http.StatusBadRequest, "Unknown state: "+literal)
}

// ParseStateFilter maps a raw query literal onto a StateFilter.
// An empty literal defaults to ALL.
func ParseStateFilter(literal string) (StateFilter, error) {
	if literal == "" {
		return FilterAll, nil
	}
	switch f := StateFilter(literal); f {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return f, nil
	default:
		return "", ErrUnknownState(literal)
	}
}

// NextStatus applies the booking state machine to a status change request.
// APPROVED is a terminal sink: once set, no further transition is legal, not
// even re-approving. Rejecting an already rejected booking is allowed and
// idempotent.
func NextStatus(current Status, approve bool) (Status, error) {
	if current == StatusApproved {
		return "", ErrStatusAlreadySet
	}
	if approve {
		return StatusApproved, nil
	}
	return StatusRejected, nil
}
