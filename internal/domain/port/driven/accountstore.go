package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/readtrack/internal/domain/model"
)

// Sentinel errors returned by AccountStore and ReadingStore implementations.
var (
	// ErrAccountAlreadyExists indicates the username is already registered.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrAccountNotFound indicates a write referenced an unregistered username.
	ErrAccountNotFound = errors.New("account not found")
)

// AccountStore defines the driven port for account persistence.
type AccountStore interface {
	// Create stores a new account. Returns ErrAccountAlreadyExists if the
	// username is taken; nothing is written in that case.
	Create(ctx context.Context, account model.Account) error

	// GetByUsername returns the account, or nil, nil if it does not exist.
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
}
