// Package apperr defines the request-local error taxonomy. Every error is
// caught at the HTTP boundary and rendered as a structured response; none of
// them crash the process.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a referenced entity that does not exist or does
	// not belong to the caller.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart signals a checkout against a cart with zero lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrPermissionDenied signals a failed role or ownership check.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidState signals an order whose current status has no defined
	// next step (already DELIVERED, or unknown).
	ErrInvalidState = errors.New("invalid current status")

	// ErrPaymentProvider signals a transient external-provider failure.
	// Order state is never mutated when this is returned.
	ErrPaymentProvider = errors.New("payment provider error")
)

// ValidationError reports malformed input, e.g. a quantity below 1 or a
// rating outside 1..5.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IllegalTransitionError reports a status jump that is not the single next
// step in the workflow, carrying the one status that would have been legal.
type IllegalTransitionError struct {
	Current   string
	Requested string
	Allowed   string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition %s -> %s, allowed next status is %s",
		e.Current, e.Requested, e.Allowed)
}
