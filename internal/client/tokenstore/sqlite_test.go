package tokenstore

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/portalcli/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func validToken() string {
	return strings.Repeat("t", common.MinTokenLength)
}

func TestSave_RoundTrip(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	token := validToken()
	require.NoError(t, s.Save(ctx, token, "sess-123"))

	got, err := s.AuthToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, got)

	sess, err := s.SessionToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sess-123", sess)
}

func TestSave_EmptyTokenRejected(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	err := s.Save(ctx, "", "sess")
	require.ErrorIs(t, err, common.ErrInvalidToken)

	// nothing must have been written
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM credentials`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestAuthToken_ShortTokenTreatedAsAbsent(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	// simulate a corrupted partial write below the minimum length
	_, err := db.Exec(`INSERT INTO credentials(key, value) VALUES ('authToken', 'short')`)
	require.NoError(t, err)

	got, err := s.AuthToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, s.HasValidToken(ctx))
}

func TestHasValidToken(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	assert.False(t, s.HasValidToken(ctx), "empty store")

	require.NoError(t, s.Save(ctx, validToken(), ""))
	assert.True(t, s.HasValidToken(ctx))
}

func TestClear_Idempotent(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	require.NoError(t, s.Clear(ctx), "clearing an empty store must succeed")

	require.NoError(t, s.Save(ctx, validToken(), "sess"))
	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx), "second clear must also succeed")

	got, err := s.AuthToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	sess, err := s.SessionToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, sess)
}

func TestClientID_StableAcrossCallsAndClears(t *testing.T) {
	s := NewSQLiteStore(setupDB(t))
	ctx := context.Background()

	id1, err := s.ClientID(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, id1)

	id2, err := s.ClientID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	require.NoError(t, s.Clear(ctx))
	id3, err := s.ClientID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id1, id3, "client id must survive a token clear")
}

func TestStorageUnavailable(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	err := s.Save(ctx, validToken(), "")
	require.Error(t, err)

	_, err = s.AuthToken(ctx)
	require.ErrorIs(t, err, common.ErrStorageUnavailable)
}
