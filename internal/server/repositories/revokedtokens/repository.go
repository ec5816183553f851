// Package revokedtokens remembers the ids of logged-out bearer tokens until
// they would have expired anyway.
package revokedtokens

import (
	"context"
	"sync"
	"time"
)

// Repository defines operations for revoking tokens and checking revocation.
type Repository interface {
	// Revoke marks the token id jti as unusable until expiresAt.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error

	// IsRevoked reports whether jti was revoked and has not expired yet.
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type MemoryRepository struct {
	mu      sync.Mutex
	now     func() time.Time
	revoked map[string]time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now, revoked: make(map[string]time.Time)}
}

func (r *MemoryRepository) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prune()
	r.revoked[jti] = expiresAt
	return nil
}

func (r *MemoryRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exp, ok := r.revoked[jti]
	return ok && r.now().Before(exp), nil
}

// prune drops entries past their expiry. Caller holds mu.
func (r *MemoryRepository) prune() {
	now := r.now()
	for jti, exp := range r.revoked {
		if !now.Before(exp) {
			delete(r.revoked, jti)
		}
	}
}
