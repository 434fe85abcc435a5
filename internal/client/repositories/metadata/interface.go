// Package metadata is the client's persisted key/value slot store. It backs
// the identity state the client must remember between runs.
package metadata

import (
	"context"
)

// Repository stores string values by key.
// Get reports ok=false when the key has never been set.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error

	// Tx runs fn against a repository whose writes are applied together
	// when fn returns nil and discarded otherwise.
	Tx(ctx context.Context, fn func(ctx context.Context, tx Repository) error) error
}
