package chat

import (
	"context"
	"errors"
	"fmt"
)

// TurnError is returned when a chat turn cannot complete. Retryable errors
// come from transient NLU transport failures; cancelled errors from a
// caller-initiated abort. In both cases the draft is untouched.
type TurnError struct {
	Code      string
	Message   string
	Retryable bool
	Err       error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *TurnError) Unwrap() error {
	return e.Err
}

func NewRetryableError(msg string, err error) error {
	return &TurnError{Code: "nluUnavailable", Message: msg, Retryable: true, Err: err}
}

func NewCancelledError(err error) error {
	return &TurnError{Code: "cancelled", Message: "turn cancelled by caller", Err: err}
}

// IsRetryable reports whether the caller may retry the same turn.
func IsRetryable(err error) bool {
	var te *TurnError
	return errors.As(err, &te) && te.Retryable
}

// IsCancelled distinguishes a caller abort from a failure. No retry implied.
func IsCancelled(err error) bool {
	if errors.Is(err, context.Canceled) {
		return true
	}
	var te *TurnError
	return errors.As(err, &te) && te.Code == "cancelled"
}
