package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/portalcli/internal/client/api"
	"github.com/dmitrijs2005/portalcli/internal/client/session"
	"github.com/dmitrijs2005/portalcli/internal/common"
)

func stubInputs(t *testing.T, texts []string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(texts) {
			return "", io.EOF
		}
		s := texts[i]
		i++
		return s, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) {
		return append([]byte(nil), password...), nil
	}
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

type fakeAuth struct {
	// Login
	loginEmail string
	loginPass  string
	loginUser  *api.User
	loginErr   error

	// Register
	regReq api.RegisterRequest
	regRes *api.RegisterResult
	regErr error

	// Logout
	logoutCalled bool
	logoutErr    error
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*api.User, error) {
	f.loginEmail, f.loginPass = email, password
	return f.loginUser, f.loginErr
}
func (f *fakeAuth) Register(_ context.Context, req api.RegisterRequest) (*api.RegisterResult, error) {
	f.regReq = req
	return f.regRes, f.regErr
}
func (f *fakeAuth) Verify(context.Context) (session.Verdict, error) {
	return session.Verdict{}, nil
}
func (f *fakeAuth) HasValidToken(context.Context) bool { return false }
func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}
func (f *fakeAuth) Close(context.Context) error { return nil }

func newTestApp(f *fakeAuth) *App {
	a := &App{auth: f}
	a.ui = newTerminalUI(a)
	return a
}

func TestLogin_Success(t *testing.T) {
	f := &fakeAuth{loginUser: &api.User{ID: 1, Username: "alice", IsAdmin: false}}
	a := newTestApp(f)

	restore := stubInputs(t, []string{"alice@example.org"}, []byte("secret-password"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.loginEmail != "alice@example.org" {
		t.Fatalf("Login email mismatch: %q", f.loginEmail)
	}
	if f.loginPass != "secret-password" {
		t.Fatalf("Login password mismatch: %q", f.loginPass)
	}
	if a.user == nil || a.user.Username != "alice" {
		t.Fatalf("user snapshot not set: %+v", a.user)
	}
}

func TestLogin_RejectionDoesNotSetUser(t *testing.T) {
	f := &fakeAuth{loginErr: api.ErrUnauthorized}
	a := newTestApp(f)

	restore := stubInputs(t, []string{"alice@example.org"}, []byte("wrong"))
	defer restore()

	if err := a.Login(context.Background()); err == nil {
		t.Fatalf("want error from Login")
	}
	if a.user != nil {
		t.Fatalf("user snapshot set after rejected login: %+v", a.user)
	}
}

func TestRegister_Success(t *testing.T) {
	f := &fakeAuth{regRes: &api.RegisterResult{
		User: &api.User{ID: 2, Username: "bob"},
	}}
	a := newTestApp(f)

	restore := stubInputs(t, []string{"bob", "bob@example.org", "Bob", "Builder"}, []byte("secret-password"))
	defer restore()

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	want := api.RegisterRequest{
		Username:  "bob",
		Email:     "bob@example.org",
		FirstName: "Bob",
		LastName:  "Builder",
		Password:  "secret-password",
	}
	if f.regReq != want {
		t.Fatalf("Register request mismatch: got %+v, want %+v", f.regReq, want)
	}
	if a.user == nil || a.user.Username != "bob" {
		t.Fatalf("user snapshot not set: %+v", a.user)
	}
}

func TestRegister_RequiresVerification(t *testing.T) {
	f := &fakeAuth{regRes: &api.RegisterResult{RequiresVerification: true}}
	a := newTestApp(f)

	restore := stubInputs(t, []string{"bob", "bob@example.org", "Bob", "Builder"}, []byte("secret-password"))
	defer restore()

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if a.user != nil {
		t.Fatalf("user snapshot set before verification: %+v", a.user)
	}
}

func TestLogout(t *testing.T) {
	f := &fakeAuth{}
	a := newTestApp(f)
	a.user = &api.User{ID: 1, Username: "alice"}
	a.lastLoad = func(context.Context) error { return nil }

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if !f.logoutCalled {
		t.Fatalf("auth.Logout not called")
	}
	if a.user != nil {
		t.Fatalf("user snapshot not cleared")
	}
	if a.lastLoad != nil {
		t.Fatalf("lastLoad not cleared")
	}
}

func TestLogout_ErrorPropagates(t *testing.T) {
	f := &fakeAuth{logoutErr: errors.New("clear-fail")}
	a := newTestApp(f)
	if err := a.Logout(context.Background()); err == nil {
		t.Fatalf("want error from Logout")
	}
}

func TestAuthFailureMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unauthorized", api.ErrUnauthorized, "Invalid email or password."},
		{"unavailable", api.ErrUnavailable, "Could not reach the server. Please check your connection."},
		{"storage", common.ErrStorageUnavailable, "This device cannot store the session (local storage unavailable)."},
		{"rate limited", &api.RateLimitError{RetryAfter: 30}, "Too many attempts. Retry in 30 seconds."},
		{"rate limited no hint", &api.RateLimitError{}, "Too many attempts. Please retry shortly."},
		{"generic", errors.New("boom"), "Something went wrong. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authFailureMessage(tt.err); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthFailureMessage_TruncatesServerMessage(t *testing.T) {
	long := ""
	for i := 0; i < 50; i++ {
		long += "very long "
	}
	got := authFailureMessage(&api.APIError{StatusCode: 400, Message: long})
	if want := common.MaxNoticeLength + len("..."); len(got) != want {
		t.Fatalf("notice not capped: %d chars, want %d", len(got), want)
	}
}
