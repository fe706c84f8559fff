// Package session coordinates client-side authentication state: it
// submits credentials, persists the issued tokens, and confirms a
// stored token against the server before anything protected is shown.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/portalcli/internal/client/api"
	"github.com/dmitrijs2005/portalcli/internal/client/tokenstore"
	"github.com/dmitrijs2005/portalcli/internal/client/validate"
	"github.com/dmitrijs2005/portalcli/internal/logging"
)

// Verdict is the outcome of a verification round. When Authenticated is
// false the caller must fail closed, whatever the accompanying error.
type Verdict struct {
	Authenticated bool
	User          *api.User
}

// AuthService defines the authentication operations of the client.
//
// Contract:
//   - Login: validate credentials locally, authenticate against the
//     server, persist the issued tokens.
//   - Register: create a new account; persist tokens when issued
//     immediately (no e-mail verification required).
//   - Verify: confirm the stored token with the server. A rejection
//     clears the token; a transient failure keeps it, since the server
//     being unreachable does not prove invalidity.
//   - HasValidToken: local shape check only, used as the fast-path gate
//     before any round-trip.
//   - Logout: best-effort server logout, then unconditional local clear.
//
// All methods honor context cancellation.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*api.User, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResult, error)
	Verify(ctx context.Context) (Verdict, error)
	HasValidToken(ctx context.Context) bool
	Logout(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client api.Client
	store  tokenstore.Store
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API
// client and token store.
func NewAuthService(client api.Client, store tokenstore.Store, log logging.Logger) AuthService {
	return &authService{client: client, store: store, log: log}
}

func (s *authService) Login(ctx context.Context, email, password string) (*api.User, error) {
	if err := validate.Email(email); err != nil {
		return nil, err
	}
	if err := validate.Password(password); err != nil {
		return nil, err
	}

	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	// A login that cannot be persisted is surfaced to the caller: the
	// user would silently lose the session on the next start otherwise.
	if err := s.store.Save(ctx, res.Token, res.SessionToken); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	s.client.SetToken(res.Token)

	return res.User, nil
}

func (s *authService) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResult, error) {
	if req.Username == "" {
		return nil, errors.New("username must not be empty")
	}
	if err := validate.Email(req.Email); err != nil {
		return nil, err
	}
	if err := validate.Password(req.Password); err != nil {
		return nil, err
	}

	res, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("registration error: %w", err)
	}

	if res.Token != "" {
		if err := s.store.Save(ctx, res.Token, ""); err != nil {
			return nil, fmt.Errorf("saving session: %w", err)
		}
		s.client.SetToken(res.Token)
	}

	return res, nil
}

func (s *authService) HasValidToken(ctx context.Context) bool {
	return s.store.HasValidToken(ctx)
}

// Verify confirms the stored token against the server and returns the
// current user snapshot.
//
// Outcomes:
//   - no (plausible) stored token: unauthenticated, zero network calls;
//   - token is a JWT that has already expired: treated like a server
//     rejection, cleared locally without a round-trip;
//   - server rejection: token cleared, unauthenticated;
//   - transient failure: unauthenticated, token kept.
//
// Repeated calls are idempotent; each performs its own round-trip.
func (s *authService) Verify(ctx context.Context) (Verdict, error) {
	token, err := s.store.AuthToken(ctx)
	if err != nil {
		return Verdict{}, err
	}
	if token == "" {
		return Verdict{}, nil
	}

	if tokenExpired(token) {
		s.log.Info(ctx, "stored token already expired, clearing")
		if err := s.store.Clear(ctx); err != nil {
			return Verdict{}, err
		}
		return Verdict{}, nil
	}

	s.client.SetToken(token)
	user, err := s.client.Verify(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.log.Info(ctx, "token rejected by server, clearing")
			if cerr := s.store.Clear(ctx); cerr != nil {
				return Verdict{}, cerr
			}
			return Verdict{}, nil
		}
		// Transient: the token might still be valid, keep it.
		return Verdict{}, fmt.Errorf("verification error: %w", err)
	}

	return Verdict{Authenticated: true, User: user}, nil
}

// Logout tells the server to invalidate the session and always clears
// local state, even when the server cannot be reached.
func (s *authService) Logout(ctx context.Context) error {
	sessionToken, err := s.store.SessionToken(ctx)
	if err != nil {
		s.log.Warn(ctx, "could not read session token", "error", err)
	}

	if err := s.client.Logout(ctx, sessionToken); err != nil {
		s.log.Warn(ctx, "server logout failed", "error", err)
	}

	s.client.SetToken("")
	return s.store.Clear(ctx)
}

func (s *authService) Close(ctx context.Context) error {
	return s.client.Close()
}
