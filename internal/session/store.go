// Package session decides whether the user is logged in, remembers where a
// denied action wanted to go, and runs the one-time-code login flow.
package session

import "sync"

// Well-known keys.
const (
	TokenKey    = "auth_token"
	RedirectKey = "redirect_after_login"
)

// LoginPath is where denied actions are sent.
const LoginPath = "/login"

// Store is a minimal key-value capability. The persistent scope is backed by
// the database; the session scope lives in memory for one run.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryStore is an in-memory Store, used for the session scope and in tests.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
