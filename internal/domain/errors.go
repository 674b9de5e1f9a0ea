package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOrder       = errors.New("invalid order")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrManagerActive      = errors.New("another manager session is already active")
	ErrNoSession          = errors.New("no active session")
	ErrTableBilled        = errors.New("table is billed, new orders are blocked")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// InvalidTransitionError names both ends of an illegal status change so the
// caller can show which step was refused.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}
