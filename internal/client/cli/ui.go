package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/portalcli/internal/client/api"
)

// terminalUI renders gate transitions and notices on the terminal. It
// implements gate.UI and admin.Notifier. The terminal equivalent of
// "protected content hidden by default" is that the authenticated shell
// is entered only from Reveal.
type terminalUI struct {
	app *App

	green  *color.Color
	red    *color.Color
	yellow *color.Color
	cyan   *color.Color
}

func newTerminalUI(app *App) *terminalUI {
	return &terminalUI{
		app:    app,
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		cyan:   color.New(color.FgCyan),
	}
}

func (u *terminalUI) ShowLoading() {
	u.cyan.Println("Checking session...")
}

// Reveal enters the authenticated shell. Admin commands become visible
// in help only when the snapshot carries the admin flag.
func (u *terminalUI) Reveal(user *api.User) {
	u.app.user = user
	name := user.DisplayName
	if name == "" {
		name = user.Username
	}
	u.green.Printf("Welcome back, %s!\n", name)
	if user.IsAdmin {
		u.cyan.Println("Admin tools are available. Type 'help' for commands.")
	}
}

func (u *terminalUI) Notify(msg string) {
	u.yellow.Println(msg)
}

// RedirectToLogin drops back to the unauthenticated prompt.
func (u *terminalUI) RedirectToLogin() {
	u.app.user = nil
	fmt.Println("Use 'login' to sign in or 'register' to create an account.")
}

func (u *terminalUI) Success(msg string) {
	u.green.Println(msg)
}

func (u *terminalUI) Error(msg string) {
	u.red.Println(msg)
}
