package dynamo

import "errors"

// Domain errors for body and world construction.
var (
	// ErrInvalidBody indicates a non-positive or non-finite mass or radius.
	ErrInvalidBody = errors.New("dynamo: invalid body (mass and radius must be positive and finite)")

	// ErrInvalidWorld indicates unusable bounds or gravity.
	ErrInvalidWorld = errors.New("dynamo: invalid world (bounds must be positive, gravity non-negative)")

	// ErrInvalidState indicates a NaN or Inf in a body's kinematic state.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
)

// BodyError wraps an error with the index of the offending body.
type BodyError struct {
	Index   int
	Wrapped error
}

func (e *BodyError) Error() string {
	return e.Wrapped.Error()
}

func (e *BodyError) Unwrap() error {
	return e.Wrapped
}
