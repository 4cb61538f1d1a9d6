package reservation

import "github.com/BarberiaElCorte/barber-pos-api/internal/httperr"

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusPaid       Status = "paid"
	StatusCancelled  Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

func IsValid(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Terminal states accept no further transitions.
func IsTerminal(s Status) bool {
	return s == StatusPaid || s == StatusCancelled
}

// IsOpen reports whether the reservation can still be edited
// (products added or removed, details changed).
func IsOpen(s Status) bool {
	return !IsTerminal(s)
}

// forward is the monotonic service progression. Cancellation is handled
// separately because it additionally depends on whether a sale exists.
var forward = map[Status]Status{
	StatusPending:    StatusInProgress,
	StatusInProgress: StatusCompleted,
	StatusCompleted:  StatusPaid,
}

// CanTransition validates a manual status change.
func CanTransition(from, to Status) error {
	if !IsValid(to) {
		return httperr.ErrBusiness("invalid_status")
	}
	if to == StatusCancelled {
		return CanCancel(from)
	}
	for cur := from; ; {
		next, ok := forward[cur]
		if !ok {
			return httperr.ErrBusiness("invalid_state")
		}
		if next == to {
			return nil
		}
		cur = next
	}
}

// CanCancel allows cancellation from any non-terminal state. The caller
// must separately verify that no sale exists for the reservation.
func CanCancel(current Status) error {
	if IsTerminal(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete guards the complete-and-create-sale flow. A paid reservation
// already has its sale; a cancelled one never gets one.
func CanComplete(current Status) error {
	if current == StatusPaid {
		return httperr.ErrBusiness("reservation_already_paid")
	}
	if current == StatusCancelled {
		return httperr.ErrBusiness("reservation_cancelled")
	}
	return nil
}
