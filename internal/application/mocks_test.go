package application

import (
	"context"
	"errors"
	"sync"

	"github.com/ericfisherdev/readtrack/internal/domain/model"
	"github.com/ericfisherdev/readtrack/internal/domain/port/driven"
)

// mockAccountStore is an in-memory driven.AccountStore.
type mockAccountStore struct {
	mu       sync.Mutex
	accounts map[string]model.Account
	getErr   error
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]model.Account)}
}

func (m *mockAccountStore) Create(_ context.Context, account model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.Username]; ok {
		return driven.ErrAccountAlreadyExists
	}
	m.accounts[account.Username] = account
	return nil
}

func (m *mockAccountStore) GetByUsername(_ context.Context, username string) (*model.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	a, ok := m.accounts[username]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

type readingKey struct {
	username string
	title    string
}

// mockReadingStore is an in-memory driven.ReadingStore that keeps insertion order.
type mockReadingStore struct {
	mu        sync.Mutex
	order     []readingKey
	entries   map[readingKey]model.ReadingEntry
	upserts   int
	listErr   error
	upsertErr error
}

func newMockReadingStore() *mockReadingStore {
	return &mockReadingStore{entries: make(map[readingKey]model.ReadingEntry)}
}

func (m *mockReadingStore) ListByAccount(_ context.Context, username string) ([]model.ReadingEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []model.ReadingEntry{}
	for _, k := range m.order {
		if k.username == username {
			out = append(out, m.entries[k])
		}
	}
	return out, nil
}

func (m *mockReadingStore) Get(_ context.Context, username, title string) (*model.ReadingEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[readingKey{username, title}]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *mockReadingStore) Upsert(_ context.Context, username string, entry model.ReadingEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts++
	k := readingKey{username, entry.Title}
	if _, ok := m.entries[k]; !ok {
		m.order = append(m.order, k)
	}
	m.entries[k] = entry
	return nil
}

// mockPinger implements driven.Pinger.
type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

var errStorage = errors.New("disk I/O error")
