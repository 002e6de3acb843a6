package ports

import (
	"context"

	"github.com/medscript/clinical-records/internal/core/domain"
)

// SessionManager owns the single active identity.
//
// Login moves the manager from unauthenticated to authenticated, Logout back.
// The persisted copy is the durable side of the same state: absence (or a
// malformed payload) means unauthenticated.
type SessionManager interface {
	// Restore loads a previously persisted identity, typically at process
	// start. Returns nil when none is persisted or the payload is malformed.
	Restore(ctx context.Context) *domain.Identity
	// Login sets the active identity and persists it. The identity is
	// trusted verbatim; credential checks happen upstream.
	Login(ctx context.Context, identity domain.Identity) error
	// Logout clears the active identity and removes the persisted copy.
	Logout(ctx context.Context) error
	// Active returns a copy of the current identity, or nil when unauthenticated.
	Active() *domain.Identity
}
