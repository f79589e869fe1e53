package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/hackhub/internal/apperror"
	"github.com/sakif/hackhub/internal/model"
)

// newTestDB returns a *DB backed by an in-memory database. Each test gets
// its own — no shared state, no cleanup files.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(:memory:): %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestAccount(t *testing.T, db *DB, email string) *model.Account {
	t.Helper()
	account := &model.Account{
		Provider:     model.ProviderPassword,
		Email:        email,
		PasswordHash: "$2a$04$fakedhashforrepositorytests",
		DisplayName:  "Test User",
	}
	if err := db.Create(context.Background(), account); err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	db := newTestDB(t)

	account := createTestAccount(t, db, "ann@example.com")

	if account.ID == "" {
		t.Error("Create() did not set account.ID")
	}
	if account.CreatedAt.IsZero() || account.UpdatedAt.IsZero() {
		t.Error("Create() did not stamp timestamps")
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	createTestAccount(t, db, "taken@example.com")

	dup := &model.Account{
		Provider: model.ProviderPassword,
		Email:    "taken@example.com",
	}
	err := db.Create(context.Background(), dup)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Create() with duplicate email = %v, want ErrConflict", err)
	}
}

func TestGetByID(t *testing.T) {
	db := newTestDB(t)
	created := createTestAccount(t, db, "ann@example.com")

	got, err := db.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != "ann@example.com" {
		t.Errorf("Email = %q, want %q", got.Email, "ann@example.com")
	}
	if got.PasswordHash == "" {
		t.Error("GetByID() should return the password hash for login checks")
	}
}

func TestGetByID_Unknown(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByID(context.Background(), "no-such-id")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID(unknown) = %v, want ErrNotFound", err)
	}
}

func TestGetByEmail(t *testing.T) {
	db := newTestDB(t)
	created := createTestAccount(t, db, "login@example.com")

	got, err := db.GetByEmail(context.Background(), "login@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID = %q, want %q", got.ID, created.ID)
	}

	if _, err := db.GetByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByEmail(unknown) = %v, want ErrNotFound", err)
	}
}

func TestUpsertFederated_FirstLoginInserts(t *testing.T) {
	db := newTestDB(t)

	account := &model.Account{
		Provider:    model.ProviderGithub,
		Subject:     "583231",
		Email:       "octocat@github.com",
		DisplayName: "The Octocat",
	}
	if err := db.UpsertFederated(context.Background(), account); err != nil {
		t.Fatalf("UpsertFederated() error = %v", err)
	}
	if account.ID == "" {
		t.Error("UpsertFederated() did not assign an ID on insert")
	}
}

func TestUpsertFederated_ReturningLoginKeepsID(t *testing.T) {
	db := newTestDB(t)

	first := &model.Account{
		Provider:    model.ProviderGoogle,
		Subject:     "109876",
		Email:       "old@gmail.com",
		DisplayName: "Old Name",
	}
	if err := db.UpsertFederated(context.Background(), first); err != nil {
		t.Fatalf("first login: %v", err)
	}

	second := &model.Account{
		Provider:    model.ProviderGoogle,
		Subject:     "109876",
		Email:       "new@gmail.com",
		DisplayName: "New Name",
	}
	if err := db.UpsertFederated(context.Background(), second); err != nil {
		t.Fatalf("second login: %v", err)
	}

	// The internal ID is the join key to the profile document —
	// it must survive profile refreshes.
	if second.ID != first.ID {
		t.Errorf("returning login changed ID: %q → %q", first.ID, second.ID)
	}

	got, err := db.GetByID(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != "new@gmail.com" || got.DisplayName != "New Name" {
		t.Errorf("returning login did not refresh profile fields: %+v", got)
	}
}

func TestUpsertFederated_HiddenEmailsDoNotCollide(t *testing.T) {
	db := newTestDB(t)

	// GitHub users can hide their email; the provider then reports it as
	// empty. Two distinct users with hidden emails must both get accounts.
	first := &model.Account{Provider: model.ProviderGithub, Subject: "2001", Email: "", DisplayName: "hidden-one"}
	second := &model.Account{Provider: model.ProviderGithub, Subject: "2002", Email: "", DisplayName: "hidden-two"}

	if err := db.UpsertFederated(context.Background(), first); err != nil {
		t.Fatalf("first hidden-email upsert: %v", err)
	}
	if err := db.UpsertFederated(context.Background(), second); err != nil {
		t.Fatalf("second hidden-email upsert: %v", err)
	}
	if first.ID == second.ID {
		t.Error("distinct hidden-email accounts must not share an ID")
	}

	// Returning login for each still resolves its own row.
	again := &model.Account{Provider: model.ProviderGithub, Subject: "2002", Email: ""}
	if err := db.UpsertFederated(context.Background(), again); err != nil {
		t.Fatalf("returning hidden-email upsert: %v", err)
	}
	if again.ID != second.ID {
		t.Errorf("returning login resolved wrong account: %q, want %q", again.ID, second.ID)
	}
}

func TestUpsertFederated_EmailOwnedByAnotherAccount(t *testing.T) {
	db := newTestDB(t)
	createTestAccount(t, db, "taken@example.com")

	fed := &model.Account{
		Provider: model.ProviderGithub,
		Subject:  "3001",
		Email:    "taken@example.com",
	}
	err := db.UpsertFederated(context.Background(), fed)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("UpsertFederated() with registered email = %v, want ErrConflict", err)
	}
}

func TestUpsertFederated_RefreshToTakenEmail(t *testing.T) {
	db := newTestDB(t)
	createTestAccount(t, db, "taken@example.com")

	fed := &model.Account{Provider: model.ProviderGoogle, Subject: "4001", Email: "free@gmail.com"}
	if err := db.UpsertFederated(context.Background(), fed); err != nil {
		t.Fatalf("initial upsert: %v", err)
	}

	// The provider now reports an email already registered to another
	// account — the refresh must reject it, not clobber uniqueness.
	err := db.UpsertFederated(context.Background(),
		&model.Account{Provider: model.ProviderGoogle, Subject: "4001", Email: "taken@example.com"})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("UpsertFederated() refresh to registered email = %v, want ErrConflict", err)
	}
}

func TestUpsertFederated_SameSubjectDifferentProvider(t *testing.T) {
	db := newTestDB(t)

	gh := &model.Account{Provider: model.ProviderGithub, Subject: "12345", Email: "a@example.com"}
	gg := &model.Account{Provider: model.ProviderGoogle, Subject: "12345", Email: "b@example.com"}

	if err := db.UpsertFederated(context.Background(), gh); err != nil {
		t.Fatalf("github upsert: %v", err)
	}
	if err := db.UpsertFederated(context.Background(), gg); err != nil {
		t.Fatalf("google upsert: %v", err)
	}

	if gh.ID == gg.ID {
		t.Error("accounts from different providers must not collide on subject alone")
	}
}

func TestUpdateProfileFields_PartialUpdate(t *testing.T) {
	db := newTestDB(t)
	account := createTestAccount(t, db, "ann@example.com")

	photo := "https://cdn.example.com/ann.png"
	err := db.UpdateProfileFields(context.Background(), account.ID, model.ProfileUpdate{
		PhotoURL: &photo,
	})
	if err != nil {
		t.Fatalf("UpdateProfileFields() error = %v", err)
	}

	got, err := db.GetByID(context.Background(), account.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.PhotoURL != photo {
		t.Errorf("PhotoURL = %q, want %q", got.PhotoURL, photo)
	}
	// Display name was not in the update — it must keep its prior value.
	if got.DisplayName != "Test User" {
		t.Errorf("DisplayName = %q, want unchanged %q", got.DisplayName, "Test User")
	}
}

func TestUpdateProfileFields_UnknownAccount(t *testing.T) {
	db := newTestDB(t)

	name := "Ghost"
	err := db.UpdateProfileFields(context.Background(), "no-such-id", model.ProfileUpdate{
		DisplayName: &name,
	})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateProfileFields(unknown) = %v, want ErrNotFound", err)
	}
}
