package application

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ericfisherdev/readtrack/internal/domain/port/driven"
)

func newTestAuthService(store *mockAccountStore) *AuthService {
	return NewAuthService(store, bcrypt.MinCost)
}

func TestAuthService_RegisterThenAuthenticate(t *testing.T) {
	store := newMockAccountStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "pw"))

	ok, err := svc.Authenticate(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.True(t, ok)

	stored := store.accounts["alice"]
	assert.NotEqual(t, "pw", stored.PasswordHash, "password must never be stored in plaintext")
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc := newTestAuthService(newMockAccountStore())
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "pw"))

	err := svc.Register(ctx, "alice", "pw2")
	assert.ErrorIs(t, err, driven.ErrAccountAlreadyExists)

	ok, err := svc.Authenticate(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.True(t, ok, "first password must still work after a rejected registration")

	ok, err = svc.Authenticate(ctx, "alice", "pw2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthService_RegisterRejectsEmptyInput(t *testing.T) {
	svc := newTestAuthService(newMockAccountStore())
	ctx := context.Background()

	assert.ErrorIs(t, svc.Register(ctx, "", "pw"), ErrInvalidCredentialsInput)
	assert.ErrorIs(t, svc.Register(ctx, "   ", "pw"), ErrInvalidCredentialsInput)
	assert.ErrorIs(t, svc.Register(ctx, "alice", ""), ErrInvalidCredentialsInput)
}

func TestAuthService_RegisterPasswordLength(t *testing.T) {
	store := newMockAccountStore()
	svc := newTestAuthService(store)
	ctx := context.Background()

	err := svc.Register(ctx, "alice", strings.Repeat("x", MaxPasswordBytes+8))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.Empty(t, store.accounts)

	longest := strings.Repeat("y", MaxPasswordBytes)
	require.NoError(t, svc.Register(ctx, "bob", longest))
	ok, err := svc.Authenticate(ctx, "bob", longest)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuthService_AuthenticateFailuresLookAlike(t *testing.T) {
	svc := newTestAuthService(newMockAccountStore())
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, "alice", "pw"))

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "wrong"},
		{"unknown user", "nobody", "x"},
		{"empty password", "alice", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := svc.Authenticate(ctx, tt.username, tt.password)
			assert.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestAuthService_AuthenticateStorageError(t *testing.T) {
	store := newMockAccountStore()
	store.getErr = errStorage
	svc := newTestAuthService(store)

	ok, err := svc.Authenticate(context.Background(), "alice", "pw")
	assert.False(t, ok)
	assert.ErrorIs(t, err, errStorage)
}

func TestNewAuthService_DefaultsLowCost(t *testing.T) {
	svc := NewAuthService(newMockAccountStore(), 0)
	assert.Equal(t, bcrypt.DefaultCost, svc.cost)
}
