package chat

import "github.com/google/uuid"

// Router resolves a caller-presented session token to a canonical session
// identifier, minting a new one when the caller has none. It is purely an
// identity-resolution layer and never touches session state.
type Router struct {
	// NewID generates session identifiers. Replaceable in tests; the
	// default is a random UUID (crypto/rand backed, 122 bits of entropy).
	NewID func() string
}

func NewRouter() *Router {
	return &Router{NewID: uuid.NewString}
}

// Resolve returns the identifier for token and whether it was newly minted.
// Non-empty tokens map to themselves, so the token-to-record mapping stays
// 1:1 and stable for the session's lifetime.
func (r *Router) Resolve(token string) (id string, minted bool) {
	if token != "" {
		return token, false
	}
	return r.NewID(), true
}
