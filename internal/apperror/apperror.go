package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure families the auth and profile layers
// produce. Callers branch with errors.Is instead of matching message strings.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation error")
	ErrConflict          = errors.New("conflict")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrUnavailable       = errors.New("backend unavailable")
)

// AppError pairs a sentinel (via Err) with a human-readable message and,
// optionally, the lower-level cause that produced it. The cause stays in the
// chain so logs keep the original failure even though the HTTP layer only
// shows Message to clients.
type AppError struct {
	Err     error  // sentinel — drives errors.Is matching
	Cause   error  // underlying store/provider failure, may be nil
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes both the sentinel and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, key string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s already exists for %s", resource, key),
	}
}

// Unauthenticated indicates there is no valid session behind the request.
// HTTP handlers map this to 401.
func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

// InvalidCredential covers wrong password AND unknown email. Both cases
// return the same error so a login response never reveals whether an
// address is registered.
func InvalidCredential() *AppError {
	return &AppError{
		Err:     ErrInvalidCredential,
		Message: "invalid email or password",
	}
}

// Unavailable wraps a transport or backend failure (identity store down,
// document store unreachable, OAuth provider rejecting the exchange).
// Distinct from NotFound so callers can tell "no such profile" apart from
// "the read itself failed".
func Unavailable(message string, cause error) *AppError {
	return &AppError{
		Err:     ErrUnavailable,
		Cause:   cause,
		Message: message,
	}
}
