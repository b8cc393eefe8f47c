package storage

import (
	"context"
	"errors"

	"dispute-assistant/internal/session"
)

// ErrNotFound is returned by Load for an identifier that was never saved.
// Callers treat it as lazy session creation, not as a failure.
var ErrNotFound = errors.New("session not found")

// Store abstracts persistence of one full session record per identifier.
// Implementations can be file-based, database, etc. and must be safe for
// concurrent use. Serializing turns against a single identifier is the
// caller's job (see chat.Service); the store only guarantees that each
// Save lands atomically.
type Store interface {
	Load(ctx context.Context, id string) (*session.State, error)
	Save(ctx context.Context, id string, state *session.State) error
	List(ctx context.Context) ([]string, error)
}
