package ports

import (
	"context"
	"errors"

	"github.com/startupscout/showcase/internal/core/domain"
)

// ErrNoCredential is returned by Load when nothing has been persisted.
var ErrNoCredential = errors.New("no stored credential")

// CredentialStore persists the session credential between process runs.
type CredentialStore interface {
	Load(ctx context.Context) (*domain.StoredCredential, error)
	Save(ctx context.Context, cred domain.StoredCredential) error
	Clear(ctx context.Context) error
}
