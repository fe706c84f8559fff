package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/portalcli/internal/client/admin"
	"github.com/dmitrijs2005/portalcli/internal/client/api"
	"github.com/dmitrijs2005/portalcli/internal/client/config"
	"github.com/dmitrijs2005/portalcli/internal/client/gate"
	"github.com/dmitrijs2005/portalcli/internal/client/session"
	"github.com/dmitrijs2005/portalcli/internal/client/tokenstore"
	"github.com/dmitrijs2005/portalcli/internal/logging"

	_ "modernc.org/sqlite"
)

// App is the interactive terminal client. It holds the session state
// for one run: the verified user snapshot lives in memory only and is
// discarded on logout or exit.
type App struct {
	config     *config.Config
	auth       session.AuthService
	apiClient  api.Client
	dispatcher *admin.Dispatcher
	ui         *terminalUI
	log        logging.Logger

	user   *api.User
	reader *bufio.Reader

	// lastLoad re-runs the most recently shown admin table, so a
	// successful admin action refreshes what the user is looking at.
	lastLoad func(ctx context.Context) error
}

// NewApp wires the local store, API client, auth service, and admin
// dispatcher.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := tokenstore.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing local database", "error", err)
		return nil, err
	}
	store := tokenstore.NewSQLiteStore(db)

	clientID, err := store.ClientID(ctx)
	if err != nil {
		// Not fatal: the header is a convenience for the server.
		log.Warn(ctx, "could not load client id", "error", err)
	}

	apiClient := api.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout, clientID)
	auth := session.NewAuthService(apiClient, store, log)

	app := &App{
		config:    cfg,
		auth:      auth,
		apiClient: apiClient,
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
	}
	app.ui = newTerminalUI(app)
	app.dispatcher = admin.NewDispatcher(apiClient, app.ui, app.refreshLast, log)

	return app, nil
}

// Run verifies any stored session first (nothing protected is shown
// until the gate reveals it), then enters the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.auth.Close(ctx)

	g := gate.New(a.auth, a.ui, a.config.RedirectDelay, a.log)
	g.Run(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) isAdmin() bool {
	return a.user != nil && a.user.IsAdmin
}

func (a *App) getStatus() string {
	switch {
	case a.isAdmin():
		return "(" + a.user.Username + ", admin)"
	case a.isLoggedIn():
		return "(" + a.user.Username + ")"
	default:
		return "(not logged in)"
	}
}

func (a *App) refreshLast(ctx context.Context) error {
	if a.lastLoad == nil {
		return nil
	}
	return a.lastLoad(ctx)
}
