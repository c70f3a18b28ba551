package claim

import (
	"errors"
	"fmt"

	vo "github.com/claimdesk/claimdesk/internal/domain/claim/valueobjects"
	permvo "github.com/claimdesk/claimdesk/internal/domain/permission/valueobjects"
)

// ErrorKind is the machine-readable failure category reported per item in
// bulk results.
type ErrorKind string

const (
	KindInvalidTransition ErrorKind = "INVALID_TRANSITION"
	KindNotPermitted      ErrorKind = "NOT_PERMITTED"
	KindValidation        ErrorKind = "VALIDATION_ERROR"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindStale             ErrorKind = "STALE_CLAIM"
	KindInternal          ErrorKind = "INTERNAL_ERROR"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrNotPermitted      = errors.New("not permitted")
	ErrValidation        = errors.New("validation failed")
	ErrClaimNotFound     = errors.New("claim not found")
	ErrStaleClaim        = errors.New("claim was modified concurrently")
)

// InvalidTransitionError is returned when a transition is attempted outside
// its precondition. It names the state the claim was in.
type InvalidTransitionError struct {
	ClaimID    string
	Transition vo.Transition
	Status     vo.ClaimStatus
	Authorized bool
	Payment    vo.PaymentStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s claim %s: status=%s authorizedForPayment=%t paymentStatus=%s",
		e.Transition, e.ClaimID, e.Status, e.Authorized, e.Payment)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// NotPermittedError is returned when the caller's role lacks the
// capability a transition requires.
type NotPermittedError struct {
	Role       string
	Transition vo.Transition
	Capability permvo.Capability
}

func (e *NotPermittedError) Error() string {
	return fmt.Sprintf("role %q is not permitted to %s: missing %s", e.Role, e.Transition, e.Capability)
}

func (e *NotPermittedError) Is(target error) bool {
	return target == ErrNotPermitted
}

// ValidationError reports a missing or malformed transition input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// UnknownTransitionError is the panic value for a transition name missing
// from the transition table.
type UnknownTransitionError struct {
	Transition vo.Transition
}

func (e *UnknownTransitionError) Error() string {
	return fmt.Sprintf("unknown transition: %s", e.Transition)
}

// KindOf classifies err. Errors outside the claim taxonomy are internal.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrNotPermitted):
		return KindNotPermitted
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrClaimNotFound):
		return KindNotFound
	case errors.Is(err, ErrStaleClaim):
		return KindStale
	default:
		return KindInternal
	}
}
