package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/studiobook/internal/server/models"
	"github.com/dmitrijs2005/studiobook/internal/shared"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

// NormalizeEmail is the key under which an address is stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := *user
	u.Email = NormalizeEmail(u.Email)
	if u.Email != "" {
		if _, taken := r.byEmail[u.Email]; taken {
			return nil, shared.ErrAlreadyExists
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	r.byID[u.ID] = &u
	if u.Email != "" {
		r.byEmail[u.Email] = u.ID
	}

	out := u
	return &out, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	out := *r.byID[id]
	return &out, nil
}

// Update replaces the stored profile of user.ID. The email is not re-keyed.
func (r *MemoryRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[user.ID]
	if !ok {
		return shared.ErrNotFound
	}
	u := *user
	u.Email = cur.Email
	r.byID[u.ID] = &u
	return nil
}
