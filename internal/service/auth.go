// Package service contains the business logic layer of the application.
//
// AuthService is the identity wrapper: it mediates between the HTTP
// handlers and the two stores every user lives in —
//
//	AuthHandler (HTTP) → AuthService (rules) → AccountRepository (identity store)
//	                   ↘ TokenService (JWT)  ↘ ProfileRepository (document store)
//
// THE MIRROR INVARIANT:
// A profile document exists if and only if an account exists. Accounts are
// created by Register (password) or the first federated login; both paths
// immediately bootstrap the profile document under the same ID. The ID is
// the join key and never changes.
//
// PARTIAL FAILURE:
// Register and UpdateUserProfile each touch both stores with no rollback —
// if the second write fails the stores disagree until the next successful
// write. The returned error names which store failed so the mismatch is at
// least diagnosable from logs.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/hackhub/internal/apperror"
	"github.com/sakif/hackhub/internal/auth"
	"github.com/sakif/hackhub/internal/model"
	"github.com/sakif/hackhub/internal/repository"
)

// Validation constants.
const (
	// MinPasswordLength matches the limit the previous auth backend
	// enforced, so existing users can keep their passwords.
	MinPasswordLength    = 6
	MaxDisplayNameLength = 100
	MaxPhotoURLLength    = 2048
)

// AuthService handles the authentication and profile business logic.
type AuthService struct {
	accounts  repository.AccountRepository
	profiles  repository.ProfileRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all dependencies injected.
// Wired in server.go — the service itself never constructs a store or
// client, which is what lets tests hand it fakes.
func NewAuthService(
	accounts repository.AccountRepository,
	profiles repository.ProfileRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		accounts:  accounts,
		profiles:  profiles,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the authenticated account with its issued session
// token so the handler can set the cookie and respond in one step.
type AuthResult struct {
	Account *model.Account
	Token   string
}

// Register creates a password account and its mirrored profile document.
//
// Display name defaults to the local part of the email when none is
// supplied ("ann@example.com" → "ann") — a profile always has something to
// show. Duplicate email → ErrConflict; the profile document is only written
// after the account insert succeeds, so a failed registration never leaves
// an orphaned document.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = emailLocalPart(email)
	}
	if len(displayName) > MaxDisplayNameLength {
		return nil, apperror.ValidationFailed("displayName", "display name too long")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing password: %w", err)
	}

	account := &model.Account{
		Provider:     model.ProviderPassword,
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		return nil, apperror.Unavailable("could not create account", err)
	}

	if err := s.profiles.EnsureExists(ctx, model.NewProfile(account)); err != nil {
		// The account exists but the mirror does not. No rollback — the
		// next successful login bootstraps the document.
		s.logger.Error("profile bootstrap failed after registration",
			slog.String("userID", account.ID),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Unavailable("account created but profile write failed", err)
	}

	s.logger.Info("user registered",
		slog.String("userID", account.ID),
		slog.String("email", account.Email),
	)

	return s.issueSession(account)
}

// Login authenticates an email/password pair.
//
// Unknown email, a federated-only account, and a wrong password all return
// the same ErrInvalidCredential — the response never reveals whether an
// address is registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.InvalidCredential()
		}
		return nil, apperror.Unavailable("could not look up account", err)
	}

	if account.Provider != model.ProviderPassword || account.PasswordHash == "" {
		return nil, apperror.InvalidCredential()
	}
	if err := s.passwords.Verify(account.PasswordHash, password); err != nil {
		return nil, apperror.InvalidCredential()
	}

	s.logger.Info("user logged in", slog.String("userID", account.ID))

	return s.issueSession(account)
}

// LoginFederated completes a Google or GitHub sign-in after the OAuth
// handler has exchanged the code for a FederatedUser.
//
// The account is upserted on (provider, subject): first login inserts,
// returning logins refresh the email/name/avatar snapshot. The profile
// document is bootstrapped with an atomic create-if-absent — a returning
// user's document is never overwritten, so edits they made (bio, skills)
// survive every subsequent login.
func (s *AuthService) LoginFederated(ctx context.Context, fu *auth.FederatedUser) (*AuthResult, error) {
	if fu == nil {
		return nil, fmt.Errorf("service/auth: federated user must not be nil")
	}

	account := &model.Account{
		Provider:    fu.Provider,
		Subject:     fu.Subject,
		Email:       strings.ToLower(fu.Email),
		DisplayName: fu.Name,
		PhotoURL:    fu.AvatarURL,
	}
	if err := s.accounts.UpsertFederated(ctx, account); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			// The provider reported an email already registered to a
			// different account.
			return nil, err
		}
		return nil, apperror.Unavailable("could not upsert account", err)
	}

	if err := s.profiles.EnsureExists(ctx, model.NewProfile(account)); err != nil {
		s.logger.Error("profile bootstrap failed after federated login",
			slog.String("userID", account.ID),
			slog.String("provider", fu.Provider),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Unavailable("signed in but profile write failed", err)
	}

	s.logger.Info("user authenticated via provider",
		slog.String("userID", account.ID),
		slog.String("provider", fu.Provider),
	)

	return s.issueSession(account)
}

// GetAccount returns the account for the given internal ID. Backs the
// /api/me handler after the middleware has validated the session.
func (s *AuthService) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	if id == "" {
		return nil, apperror.Unauthenticated("no session")
	}

	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, apperror.Unavailable("could not look up account", err)
	}
	return account, nil
}

// GetUserData reads the profile document for userID.
//
// "No such profile" and "the read failed" are different answers: the first
// is ErrNotFound, the second is logged here and returned as ErrUnavailable.
// Collapsing the two would leave callers unable to tell a missing user from
// a down document store.
func (s *AuthService) GetUserData(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("profile read failed",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Unavailable("could not read profile", err)
	}
	return profile, nil
}

// UpdateUserProfile applies a partial update of the user-editable fields
// (display name, photo URL) to BOTH stores: the identity store first, then
// a merge write on the profile document. Fields left nil are untouched;
// updatedAt is stamped on the document.
//
// No rollback across the two writes — the error says which one failed.
func (s *AuthService) UpdateUserProfile(ctx context.Context, userID string, update model.ProfileUpdate) error {
	if userID == "" {
		return apperror.Unauthenticated("no session")
	}
	if update.Empty() {
		return apperror.ValidationFailed("updates", "no fields to update")
	}
	if update.DisplayName != nil {
		trimmed := strings.TrimSpace(*update.DisplayName)
		if trimmed == "" {
			return apperror.ValidationFailed("displayName", "display name must not be empty")
		}
		if len(trimmed) > MaxDisplayNameLength {
			return apperror.ValidationFailed("displayName", "display name too long")
		}
		update.DisplayName = &trimmed
	}
	if update.PhotoURL != nil && len(*update.PhotoURL) > MaxPhotoURLLength {
		return apperror.ValidationFailed("photoUrl", "photo URL too long")
	}

	if err := s.accounts.UpdateProfileFields(ctx, userID, update); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return err
		}
		return apperror.Unavailable("identity store update failed", err)
	}

	if err := s.profiles.Merge(ctx, userID, update); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			// Account row updated but the mirror document is missing —
			// the stores already disagreed before this call.
			s.logger.Warn("profile document missing during update",
				slog.String("userID", userID),
			)
			return err
		}
		return apperror.Unavailable("document store update failed", err)
	}

	s.logger.Info("profile updated", slog.String("userID", userID))
	return nil
}

// ValidateToken verifies a session token and returns the account ID it
// encodes. Thin delegation so callers only import the service package.
func (s *AuthService) ValidateToken(tokenStr string) (string, error) {
	userID, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return "", apperror.Unauthenticated("invalid session")
	}
	return userID, nil
}

func (s *AuthService) issueSession(account *model.Account) (*AuthResult, error) {
	token, err := s.tokens.Generate(account.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for %s: %w", account.ID, err)
	}
	return &AuthResult{Account: account, Token: token}, nil
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return apperror.ValidationFailed("email", "invalid email address")
	}
	return nil
}

// emailLocalPart returns everything before the @. validateEmail has already
// guaranteed the @ exists with content on both sides.
func emailLocalPart(email string) string {
	return email[:strings.Index(email, "@")]
}
