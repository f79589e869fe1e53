// Package sqlite implements the identity store on SQLite.
//
// WHY SQLITE FOR IDENTITY?
// Accounts are small, relational (unique email, unique provider identity)
// and queried by exact key — a single embedded database file handles that
// without any infrastructure. modernc.org/sqlite is a pure-Go driver, so
// the binary cross-compiles without cgo.
//
// The profile documents deliberately do NOT live here: they are
// free-form, collection-heavy documents owned by the MongoDB store (see
// repository/mongodb). This package only knows who can sign in.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql at init time.
	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB pool and implements repository.AccountRepository.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force a real connection now so a bad path fails here, not on the
	// first login attempt.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a registration is being written.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	// email is unique per address, but only when present: one account per
	// address, regardless of provider — registering with a password and
	// later signing in with Google under the same address are different
	// accounts by design, and the second one is rejected at insert.
	// Federated providers may withhold the email entirely (GitHub users
	// can hide theirs); those rows store email = '' and are excluded from
	// the uniqueness rule, so any number of hidden-email accounts coexist.
	//
	// (provider, subject) is unique only for federated rows; password
	// accounts all share subject = '' and are excluded via the partial
	// index.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS accounts (
			id            TEXT PRIMARY KEY,
			provider      TEXT NOT NULL,
			subject       TEXT NOT NULL DEFAULT '',
			email         TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL DEFAULT '',
			display_name  TEXT NOT NULL DEFAULT '',
			photo_url     TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email
			ON accounts(email) WHERE email != '';
		CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_provider_subject
			ON accounts(provider, subject) WHERE subject != '';
	`)
	if err != nil {
		return fmt.Errorf("creating accounts table: %w", err)
	}
	return nil
}
