// Package model defines the data structures used throughout the application.
package model

import "time"

// Auth providers an Account can originate from.
//
// ProviderPassword accounts carry a bcrypt hash and an empty Subject.
// Federated accounts (Google/GitHub) carry the provider's stable user ID in
// Subject and no password hash.
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
	ProviderGithub   = "github"
)

// Account is a row in the identity store — the "who can sign in" side of a
// user. The profile document in MongoDB is the "what the community sees"
// side; Account.ID is the join key between the two and never changes.
//
// WHY A SEPARATE Subject FIELD?
// Federated providers issue their own user IDs (Google's "sub" claim,
// GitHub's numeric ID). We key the upsert-on-login on (provider, subject)
// because the email on a federated account can change or be hidden, but the
// subject is stable for the life of the account.
type Account struct {
	ID           string    `json:"id"          db:"id"`
	Provider     string    `json:"provider"    db:"provider"` // "password", "google" or "github"
	Subject      string    `json:"-"           db:"subject"`  // provider-issued user ID, "" for password accounts
	Email        string    `json:"email"       db:"email"`
	PasswordHash string    `json:"-"           db:"password_hash"` // never serialized
	DisplayName  string    `json:"displayName" db:"display_name"`
	PhotoURL     string    `json:"photoUrl"    db:"photo_url"`
	CreatedAt    time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt"   db:"updated_at"`
}
