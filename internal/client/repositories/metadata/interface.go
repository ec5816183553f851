// Package metadata persists small key/value facts the client must remember
// across restarts, such as the bearer token of the current session.
package metadata

import (
	"context"
)

// Repository is a string key/value store.
//
// Get reports found=false (and no error) for a missing key. Delete is
// idempotent.
type Repository interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
