package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"
	sqlite3 "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/sakif/hackhub/internal/apperror"
	"github.com/sakif/hackhub/internal/model"
	"github.com/sakif/hackhub/internal/repository"
)

// compile-time check that *DB implements repository.AccountRepository
var _ repository.AccountRepository = (*DB)(nil)

const accountColumns = `id, provider, subject, email, password_hash, display_name, photo_url, created_at, updated_at`

// isUniqueViolation reports whether err is one of the unique indexes
// firing (email or provider/subject). Callers translate it to ErrConflict
// so a duplicate surfaces as 409, not 503.
func isUniqueViolation(err error) bool {
	var serr *sqlite3.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE
}

// Create inserts a new password account. The ID (xid) and timestamps are
// assigned here and written back into the caller's struct.
//
// The duplicate-email check runs before the INSERT so we can return a clean
// conflict error; the UNIQUE constraint on email remains the backstop for
// the small window between check and insert.
func (db *DB) Create(ctx context.Context, account *model.Account) error {
	var existing string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM accounts WHERE email = ?`, account.Email,
	).Scan(&existing)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("sqlite: checking email %s: %w", account.Email, err)
	}
	if existing != "" {
		return apperror.Conflict("account", account.Email)
	}

	now := time.Now()
	account.ID = xid.New().String()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		account.ID,
		account.Provider,
		account.Subject,
		account.Email,
		account.PasswordHash,
		account.DisplayName,
		account.PhotoURL,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		// The window between the check above and this INSERT: a
		// concurrent registration won the race and the UNIQUE index
		// fired. Same answer as the check — conflict, not a 5xx.
		if isUniqueViolation(err) {
			return apperror.Conflict("account", account.Email)
		}
		return fmt.Errorf("sqlite: inserting account for %s: %w", account.Email, err)
	}
	return nil
}

// GetByID retrieves an account by its internal ID.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Account, error) {
	return db.getOne(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id, id)
}

// GetByEmail retrieves an account by email. Password login's first step.
// Empty email is never a match — hidden-email federated rows all store ''
// and are only addressable by ID or (provider, subject).
func (db *DB) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	if email == "" {
		return nil, apperror.NotFound("account", email)
	}
	return db.getOne(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email, email)
}

func (db *DB) getOne(ctx context.Context, query, arg, label string) (*model.Account, error) {
	var a model.Account
	err := db.conn.QueryRowContext(ctx, query, arg).Scan(
		&a.ID,
		&a.Provider,
		&a.Subject,
		&a.Email,
		&a.PasswordHash,
		&a.DisplayName,
		&a.PhotoURL,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("account", label)
		}
		return nil, fmt.Errorf("sqlite: getting account %s: %w", label, err)
	}
	return &a, nil
}

// UpsertFederated inserts or refreshes an account keyed on
// (provider, subject).
//
// First federated login → INSERT with a fresh internal ID. Returning login
// → UPDATE email/display name/photo in case they changed upstream, keeping
// the existing internal ID so the profile-document join key never moves.
func (db *DB) UpsertFederated(ctx context.Context, account *model.Account) error {
	var existingID string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM accounts WHERE provider = ? AND subject = ?`,
		account.Provider, account.Subject,
	).Scan(&existingID)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("sqlite: looking up %s account %s: %w", account.Provider, account.Subject, err)
	}

	if existingID != "" {
		account.ID = existingID
		account.UpdatedAt = time.Now()
		_, err = db.conn.ExecContext(ctx,
			`UPDATE accounts SET email = ?, display_name = ?, photo_url = ?, updated_at = ?
			 WHERE id = ?`,
			account.Email,
			account.DisplayName,
			account.PhotoURL,
			account.UpdatedAt,
			account.ID,
		)
		if err != nil {
			// The refreshed email now belongs to a different account.
			if isUniqueViolation(err) {
				return apperror.Conflict("account", account.Email)
			}
			return fmt.Errorf("sqlite: refreshing account %s: %w", account.ID, err)
		}
		return nil
	}

	now := time.Now()
	account.ID = xid.New().String()
	account.CreatedAt = now
	account.UpdatedAt = now

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`)
		 VALUES (?, ?, ?, ?, '', ?, ?, ?, ?)`,
		account.ID,
		account.Provider,
		account.Subject,
		account.Email,
		account.DisplayName,
		account.PhotoURL,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		// Not the (provider, subject) index — we just looked that up.
		// The email index: the address is already registered to another
		// account, password or federated.
		if isUniqueViolation(err) {
			return apperror.Conflict("account", account.Email)
		}
		return fmt.Errorf("sqlite: inserting %s account %s: %w", account.Provider, account.Subject, err)
	}
	return nil
}

// UpdateProfileFields applies a partial update of display name and photo
// URL. Only the fields set in update are written; updated_at is always
// stamped.
func (db *DB) UpdateProfileFields(ctx context.Context, id string, update model.ProfileUpdate) error {
	set := `updated_at = ?`
	args := []any{time.Now()}

	if update.DisplayName != nil {
		set += `, display_name = ?`
		args = append(args, *update.DisplayName)
	}
	if update.PhotoURL != nil {
		set += `, photo_url = ?`
		args = append(args, *update.PhotoURL)
	}
	args = append(args, id)

	res, err := db.conn.ExecContext(ctx,
		`UPDATE accounts SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("sqlite: updating account %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: updating account %s: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("account", id)
	}
	return nil
}
