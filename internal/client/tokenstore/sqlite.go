package tokenstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/portalcli/internal/common"
	"github.com/dmitrijs2005/portalcli/internal/dbx"
)

const (
	keyAuthToken    = "authToken"
	keySessionToken = "sessionToken"
	keyClientID     = "clientID"
)

// SQLiteStore keeps credentials in the local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) get(ctx context.Context, q dbx.DBTX, key string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read credentials[%s]: %w", key, common.ErrStorageUnavailable)
	}
	return value, nil
}

func (s *SQLiteStore) set(ctx context.Context, q dbx.DBTX, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write credentials[%s]: %w", key, common.ErrStorageUnavailable)
	}
	return nil
}

// Save writes the auth token and the session token in one transaction.
// An empty auth token is rejected before storage is touched.
func (s *SQLiteStore) Save(ctx context.Context, authToken, sessionToken string) error {
	if authToken == "" {
		return fmt.Errorf("auth token must not be empty: %w", common.ErrInvalidToken)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.set(ctx, tx, keyAuthToken, authToken); err != nil {
			return err
		}
		return s.set(ctx, tx, keySessionToken, sessionToken)
	})
}

// AuthToken returns the stored bearer token, or "" when none is stored.
// A token shorter than common.MinTokenLength is treated as absent.
func (s *SQLiteStore) AuthToken(ctx context.Context) (string, error) {
	token, err := s.get(ctx, s.db, keyAuthToken)
	if err != nil {
		return "", err
	}
	if len(token) < common.MinTokenLength {
		return "", nil
	}
	return token, nil
}

func (s *SQLiteStore) SessionToken(ctx context.Context) (string, error) {
	return s.get(ctx, s.db, keySessionToken)
}

// Clear removes both tokens. It is idempotent: clearing an empty store
// succeeds. The client identifier survives a clear.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM credentials WHERE key IN (?, ?)`, keyAuthToken, keySessionToken)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", common.ErrStorageUnavailable)
	}
	return nil
}

// HasValidToken reports whether a token of plausible shape is stored.
// Presence alone is not proof of validity; callers must still verify
// against the server before revealing anything protected.
func (s *SQLiteStore) HasValidToken(ctx context.Context) bool {
	token, err := s.AuthToken(ctx)
	return err == nil && token != ""
}

// ClientID returns the persistent install identifier, generating one on
// first use.
func (s *SQLiteStore) ClientID(ctx context.Context) (string, error) {
	id, err := s.get(ctx, s.db, keyClientID)
	if err != nil {
		return "", err
	}
	if id != "" {
		return id, nil
	}

	id = uuid.New().String()
	if err := s.set(ctx, s.db, keyClientID, id); err != nil {
		return "", err
	}
	return id, nil
}
