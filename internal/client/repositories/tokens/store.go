// Package tokens persists the bearer token of the current session.
//
// The token is written under two keys: "auth_token", the canonical one read
// by the HTTP client, and "token", kept for older consumers. Reads prefer
// the canonical key and fall back to the legacy one; clearing removes both.
package tokens

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/studiobook/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/studiobook/internal/dbx"
)

const (
	KeyAuthToken = "auth_token"
	KeyToken     = "token"
)

// Store keeps the token in the local metadata table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Token returns the persisted token or "" when none is stored.
func (s *Store) Token(ctx context.Context) (string, error) {
	repo := metadata.NewSQLiteRepository(s.db)
	for _, key := range []string{KeyAuthToken, KeyToken} {
		v, found, err := repo.Get(ctx, key)
		if err != nil {
			return "", fmt.Errorf("read token: %w", err)
		}
		if found && v != "" {
			return v, nil
		}
	}
	return "", nil
}

// SetToken writes token under both keys in one transaction.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyAuthToken, token); err != nil {
			return err
		}
		return repo.Set(ctx, KeyToken, token)
	})
}

// ClearToken removes both keys. Clearing an empty store is not an error.
func (s *Store) ClearToken(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, KeyAuthToken, KeyToken)
}
