// Package otps keeps the outstanding email challenges, one per address.
package otps

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/studiobook/internal/server/models"
	"github.com/dmitrijs2005/studiobook/internal/shared"
)

// Repository is keyed by the normalized email. Put replaces any previous
// challenge; Delete of a missing key is not an error.
type Repository interface {
	Put(ctx context.Context, otp *models.OTP) error
	Get(ctx context.Context, email string) (*models.OTP, error)
	Delete(ctx context.Context, email string) error
}

type MemoryRepository struct {
	mu    sync.Mutex
	codes map[string]models.OTP
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{codes: make(map[string]models.OTP)}
}

func (r *MemoryRepository) Put(ctx context.Context, otp *models.OTP) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[otp.Email] = *otp
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, email string) (*models.OTP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.codes[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &o, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, email)
	return nil
}
