// Package credentials holds the local implementations of ports.CredentialStore
// and helpers for inspecting bearer credentials.
package credentials

import (
	"context"
	"sync"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/ports"
)

// MemoryStore keeps the credential for the lifetime of the process.
type MemoryStore struct {
	mu   sync.Mutex
	cred *domain.StoredCredential
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (*domain.StoredCredential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cred == nil {
		return nil, ports.ErrNoCredential
	}
	c := *m.cred
	return &c, nil
}

func (m *MemoryStore) Save(_ context.Context, cred domain.StoredCredential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = &cred
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cred = nil
	return nil
}
