// Package repository declares the storage interfaces the service layer
// programs against. Concrete implementations live in the sqlite (identity
// store) and mongodb (profile document store) subpackages; tests substitute
// in-memory fakes.
package repository

import (
	"context"

	"github.com/sakif/hackhub/internal/model"
)

// AccountRepository is the identity-store side of a user: credentials and
// the canonical account record.
type AccountRepository interface {
	// Create inserts a new password account. Returns apperror.ErrConflict
	// when the email is already registered.
	Create(ctx context.Context, account *model.Account) error

	// GetByID returns the account with the given internal ID, or
	// apperror.ErrNotFound.
	GetByID(ctx context.Context, id string) (*model.Account, error)

	// GetByEmail returns the account registered under email, or
	// apperror.ErrNotFound. Used by password login.
	GetByEmail(ctx context.Context, email string) (*model.Account, error)

	// UpsertFederated inserts or refreshes a federated account keyed on
	// (provider, subject). On return account.ID is the canonical internal
	// ID — the existing one for returning users, a fresh one otherwise.
	UpsertFederated(ctx context.Context, account *model.Account) error

	// UpdateProfileFields applies a partial update of the mutable profile
	// attributes (display name, photo URL) and stamps updated_at. Fields
	// left nil in update are untouched.
	UpdateProfileFields(ctx context.Context, id string, update model.ProfileUpdate) error
}

// ProfileRepository is the document-store side of a user: the public
// profile mirrored from the account.
type ProfileRepository interface {
	// EnsureExists creates the profile document if and only if no document
	// with its UID exists yet. Atomic: concurrent calls for the same UID
	// result in exactly one document, and an existing document is never
	// overwritten.
	EnsureExists(ctx context.Context, profile *model.Profile) error

	// Get returns the document for uid, or apperror.ErrNotFound.
	Get(ctx context.Context, uid string) (*model.Profile, error)

	// Merge applies a partial update: only the fields set in update
	// change, everything else keeps its stored value, and updatedAt is
	// server-stamped. Returns apperror.ErrNotFound for an unknown uid.
	Merge(ctx context.Context, uid string, update model.ProfileUpdate) error
}
