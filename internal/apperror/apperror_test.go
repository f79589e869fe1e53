package apperror

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("profile", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("email", "email is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("account", "ann@example.com"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "Unauthenticated wraps ErrUnauthenticated",
			err:       Unauthenticated("no session"),
			target:    ErrUnauthenticated,
			wantMatch: true,
		},
		{
			name:      "InvalidCredential wraps ErrInvalidCredential",
			err:       InvalidCredential(),
			target:    ErrInvalidCredential,
			wantMatch: true,
		},
		{
			name:      "Unavailable wraps ErrUnavailable",
			err:       Unavailable("profile read failed", errors.New("socket closed")),
			target:    ErrUnavailable,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrUnavailable",
			err:       NotFound("profile", "abc123"),
			target:    ErrUnavailable,
			wantMatch: false,
		},
		{
			name:      "InvalidCredential does NOT match ErrUnauthenticated",
			err:       InvalidCredential(),
			target:    ErrUnauthenticated,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

// The cause of an Unavailable error must stay reachable through the chain —
// log lines and tests rely on errors.Is finding the original failure.
func TestUnavailableKeepsCause(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := Unavailable("document store read failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Error("errors.Is should find the sentinel alongside the cause")
	}
	if err.Error() != "document store read failed" {
		t.Errorf("Error() = %q, want the message, not the cause", err.Error())
	}
}

func TestErrorsAs(t *testing.T) {
	err := ValidationFailed("displayName", "display name too long")

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("errors.As should extract *AppError")
	}
	if appErr.Field != "displayName" {
		t.Errorf("Field = %q, want %q", appErr.Field, "displayName")
	}
}
