package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ericfisherdev/readtrack/internal/domain/model"
	"github.com/ericfisherdev/readtrack/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AccountStore = (*AccountRepo)(nil)

// AccountRepo is the SQLite implementation of the AccountStore port interface.
// It stores password hashes only; hashing happens in the application layer.
type AccountRepo struct {
	db *DB
}

// NewAccountRepo creates a new AccountRepo backed by the given DB.
func NewAccountRepo(db *DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// Create inserts a new account. Returns ErrAccountAlreadyExists if the
// username is already registered.
func (r *AccountRepo) Create(ctx context.Context, account model.Account) error {
	const query = `INSERT INTO users (username, password_hash) VALUES (?, ?)`

	_, err := r.db.Writer.ExecContext(ctx, query, account.Username, account.PasswordHash)
	if err != nil {
		if isConstraintError(err, "UNIQUE constraint", "PRIMARY KEY constraint") {
			return fmt.Errorf("create account %q: %w", account.Username, driven.ErrAccountAlreadyExists)
		}
		return fmt.Errorf("create account %q: %w", account.Username, err)
	}

	return nil
}

// GetByUsername retrieves an account. Returns nil, nil if it does not exist.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	const query = `SELECT username, password_hash, created_at FROM users WHERE username = ?`

	var account model.Account
	var createdAt string
	err := r.db.Reader.QueryRowContext(ctx, query, username).
		Scan(&account.Username, &account.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account %q: %w", username, err)
	}

	account.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for account %q: %w", username, err)
	}

	return &account, nil
}

// isConstraintError reports whether err is a SQLite constraint violation whose
// message contains any of the given fragments.
func isConstraintError(err error, fragments ...string) bool {
	msg := err.Error()
	for _, f := range fragments {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}
