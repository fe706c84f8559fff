// Package tokenstore is the single point of truth for the bearer token
// and the optional session token persisted between runs, plus the
// stable per-install client identifier.
package tokenstore

import "context"

// Store persists authentication credentials locally.
//
// Contract:
//   - Save: rejects an empty auth token before touching storage; writes
//     both values atomically.
//   - AuthToken: returns "" when no token is stored. Tokens shorter than
//     the configured minimum are reported as absent, guarding against
//     corrupted partial writes.
//   - Clear: removes both tokens; idempotent, never fails on an empty store.
//   - HasValidToken: pure shape check (presence + minimum length), no I/O
//     beyond the local database and no network.
//   - ClientID: returns the persistent install identifier, generating and
//     saving one on first use.
type Store interface {
	Save(ctx context.Context, authToken, sessionToken string) error
	AuthToken(ctx context.Context) (string, error)
	SessionToken(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
	HasValidToken(ctx context.Context) bool
	ClientID(ctx context.Context) (string, error)
}
