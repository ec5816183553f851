package tokens

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func rawGet(t *testing.T, db *sql.DB, key string) (string, bool) {
	t.Helper()
	var v string
	err := db.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", false
	}
	require.NoError(t, err)
	return v, true
}

func TestStore_SetWritesBothKeys(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)
	ctx := context.Background()

	require.NoError(t, s.SetToken(ctx, "abc"))

	v, ok := rawGet(t, db, KeyAuthToken)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
	v, ok = rawGet(t, db, KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	got, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestStore_ReadFallsBackToLegacyKey(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES ('token', 'legacy')`)
	require.NoError(t, err)

	got, err := NewStore(db).Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "legacy", got)
}

func TestStore_CanonicalKeyWins(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES ('token', 'old'), ('auth_token', 'new')`)
	require.NoError(t, err)

	got, err := NewStore(db).Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestStore_ClearRemovesBoth(t *testing.T) {
	db := setupDB(t)
	s := NewStore(db)
	ctx := context.Background()

	require.NoError(t, s.SetToken(ctx, "abc"))
	require.NoError(t, s.ClearToken(ctx))
	require.NoError(t, s.ClearToken(ctx))

	_, ok := rawGet(t, db, KeyAuthToken)
	assert.False(t, ok)
	_, ok = rawGet(t, db, KeyToken)
	assert.False(t, ok)

	got, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}
