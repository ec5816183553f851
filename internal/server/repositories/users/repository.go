// Package users declares the account repository of the development backend
// and its in-memory implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/studiobook/internal/server/models"
)

// Repository stores accounts keyed by id and by lower-cased email.
//
// Create returns shared.ErrAlreadyExists when the email is taken; lookups
// return shared.ErrNotFound for a missing account.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}
