// Package bookings stores studio reservations in memory.
package bookings

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/studiobook/internal/server/models"
	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, b *models.Booking) (*models.Booking, error)
	// ListByUser returns the bookings of userID, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
}

type MemoryRepository struct {
	mu    sync.RWMutex
	items []models.Booking
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := *b
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = time.Now().UTC()
	}
	r.items = append(r.items, out)
	return &out, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Booking{}
	for _, b := range r.items {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
