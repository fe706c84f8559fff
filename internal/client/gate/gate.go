// Package gate sequences the reveal of protected UI: nothing protected
// is shown before a verification round-trip confirms the stored token,
// and every uncertain outcome ends in a redirect to login.
package gate

import (
	"context"
	"time"

	"github.com/dmitrijs2005/portalcli/internal/client/api"
	"github.com/dmitrijs2005/portalcli/internal/client/session"
	"github.com/dmitrijs2005/portalcli/internal/logging"
)

// State is the gate's position in its per-run state machine.
type State int

const (
	StateStart State = iota
	StateVerifying
	StateRevealed
	StateRedirecting
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateVerifying:
		return "verifying"
	case StateRevealed:
		return "revealed"
	case StateRedirecting:
		return "redirecting"
	default:
		return "unknown"
	}
}

// Verifier is the slice of the auth service the gate needs.
type Verifier interface {
	HasValidToken(ctx context.Context) bool
	Verify(ctx context.Context) (session.Verdict, error)
}

// UI is the surface the gate drives. Implementations must render
// protected content hidden until Reveal is called.
type UI interface {
	// ShowLoading displays a placeholder while verification runs.
	ShowLoading()

	// Reveal shows the protected surface for the given user. Admin-only
	// controls are enabled only when user.IsAdmin.
	Reveal(user *api.User)

	// Notify shows a brief user-facing notice.
	Notify(msg string)

	// RedirectToLogin navigates to the login surface.
	RedirectToLogin()
}

// Gate owns its state explicitly and is safe to construct per page run;
// it holds no globals.
type Gate struct {
	verifier Verifier
	ui       UI
	delay    time.Duration
	log      logging.Logger
	state    State

	// sleep is a test seam so redirect delays don't slow the suite.
	sleep func(time.Duration)
}

// New constructs a gate. delay is how long a redirect notice stays
// visible before navigation.
func New(verifier Verifier, ui UI, delay time.Duration, log logging.Logger) *Gate {
	return &Gate{
		verifier: verifier,
		ui:       ui,
		delay:    delay,
		log:      log,
		state:    StateStart,
		sleep:    time.Sleep,
	}
}

// State returns the gate's current state.
func (g *Gate) State() State { return g.state }

// Run executes one pass of the state machine and returns the terminal
// state (StateRevealed or StateRedirecting).
//
// Fail-closed invariant: any error, unauthenticated verdict, or panic
// during verification ends in StateRedirecting. Reveal happens only
// after a successful round-trip.
func (g *Gate) Run(ctx context.Context) State {
	g.state = StateStart

	if !g.verifier.HasValidToken(ctx) {
		g.redirect(ctx, "Please log in to continue.")
		return g.state
	}

	g.state = StateVerifying
	g.ui.ShowLoading()

	verdict := g.verifySafe(ctx)
	if !verdict.Authenticated {
		g.redirect(ctx, "Your session has expired. Please log in again.")
		return g.state
	}

	g.state = StateRevealed
	g.ui.Reveal(verdict.User)
	g.log.Debug(ctx, "protected surface revealed",
		"user", verdict.User.Username, "admin", verdict.User.IsAdmin)
	return g.state
}

// verifySafe never lets a verification failure escape as anything other
// than an unauthenticated verdict.
func (g *Gate) verifySafe(ctx context.Context) (v session.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error(ctx, "panic during verification", "panic", r)
			v = session.Verdict{}
		}
	}()

	v, err := g.verifier.Verify(ctx)
	if err != nil {
		g.log.Warn(ctx, "verification failed", "error", err)
	}
	return v
}

func (g *Gate) redirect(ctx context.Context, notice string) {
	g.state = StateRedirecting
	g.ui.Notify(notice)
	// keep the notice perceivable before navigating away
	g.sleep(g.delay)
	g.ui.RedirectToLogin()
	g.log.Debug(ctx, "redirected to login")
}
