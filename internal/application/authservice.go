package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/ericfisherdev/readtrack/internal/domain/model"
	"github.com/ericfisherdev/readtrack/internal/domain/port/driven"
)

// ErrInvalidCredentialsInput is returned by Register when the username or
// password is empty.
var ErrInvalidCredentialsInput = errors.New("username and password are required")

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// ErrPasswordTooLong is returned by Register when the password exceeds
// MaxPasswordBytes.
var ErrPasswordTooLong = fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)

// dummyPassword is hashed once and compared against when the username is
// unknown, so both login failure paths perform one bcrypt comparison.
const dummyPassword = "readtrack-timing-equalizer"

// AuthService registers accounts and verifies logins. Passwords are hashed
// with bcrypt before they reach the AccountStore.
type AuthService struct {
	accounts driven.AccountStore
	cost     int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates an AuthService. cost is the bcrypt work factor;
// values below bcrypt.MinCost fall back to bcrypt.DefaultCost.
func NewAuthService(accounts driven.AccountStore, cost int) *AuthService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		accounts: accounts,
		cost:     cost,
	}
}

// Register creates an account for username. Returns
// driven.ErrAccountAlreadyExists if the username is taken.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrInvalidCredentialsInput
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.accounts.Create(ctx, model.Account{
		Username:     username,
		PasswordHash: string(hash),
	})
}

// Authenticate reports whether password matches the stored hash for username.
// An unknown username and a wrong password both return false with a nil
// error; only storage faults produce an error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	account, err := s.accounts.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return false, fmt.Errorf("look up account: %w", err)
	}

	if account == nil {
		// Burn one comparison so unknown users cost the same as wrong passwords.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return false, nil
	}

	return bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) == nil, nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), s.cost)
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
