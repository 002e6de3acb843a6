// Package kv provides the durable named-entry medium the record store and
// session manager persist into. An entry is an opaque payload under a fixed
// name; absence is a normal condition (empty collection, unauthenticated),
// never an error to callers that treat ErrNotFound accordingly.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no entry exists under the name.
var ErrNotFound = errors.New("kv: entry not found")

// Medium is a durable key-value store of named entries.
type Medium interface {
	// Get returns the payload stored under name, or ErrNotFound.
	Get(ctx context.Context, name string) ([]byte, error)
	// Put stores the payload under name, replacing any previous value.
	Put(ctx context.Context, name string, payload []byte) error
	// Delete removes the entry. Deleting an absent entry is a no-op.
	Delete(ctx context.Context, name string) error
}
