package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/portalcli/internal/client/admin"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to
// operate. The real App type satisfies this interface; tests can
// provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
	Users(ctx context.Context) error
	Locations(ctx context.Context) error
	Table(ctx context.Context, args []string) error
	UserAction(ctx context.Context, action admin.Action, args []string, enable bool) error
}

// runREPL starts a simple read-eval-print loop for the portalcli
// client.
//
// It reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the
// user types "exit" or "quit".
//
// Admin commands are listed in help only for admins, but every command
// still goes through the dispatcher's allow-list and, ultimately, the
// server's own authorization — hiding them here is presentation, not
// access control.
//
// Any errors returned by command handlers are ignored here; handlers
// show their own notices. This keeps the REPL loop resilient and
// focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("portal %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printHelp(a)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			if requireLogin(a) {
				_ = a.WhoAmI(ctx)
			}

		case "upload":
			if requireLogin(a) {
				_ = a.Upload(ctx, args)
			}

		case "users":
			if requireAdmin(a) {
				_ = a.Users(ctx)
			}

		case "locations":
			if requireAdmin(a) {
				_ = a.Locations(ctx)
			}

		case "table":
			if requireAdmin(a) {
				_ = a.Table(ctx, args)
			}

		case "promote":
			if requireAdmin(a) {
				_ = a.UserAction(ctx, admin.ActionToggleUserAdmin, args, true)
			}

		case "demote":
			if requireAdmin(a) {
				_ = a.UserAction(ctx, admin.ActionToggleUserAdmin, args, false)
			}

		case "activate":
			if requireAdmin(a) {
				_ = a.UserAction(ctx, admin.ActionToggleUserActive, args, true)
			}

		case "deactivate":
			if requireAdmin(a) {
				_ = a.UserAction(ctx, admin.ActionToggleUserActive, args, false)
			}

		case "rmuser":
			if requireAdmin(a) {
				_ = a.UserAction(ctx, admin.ActionDeleteUser, args, false)
			}

		case "rmloc":
			if requireAdmin(a) {
				_ = a.UserAction(ctx, admin.ActionDeleteLocation, args, false)
			}

		case "rmphoto":
			if requireAdmin(a) {
				_ = a.UserAction(ctx, admin.ActionDeletePhoto, args, false)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requireLogin(a execIface) bool {
	if !a.isLoggedIn() {
		printlnFn("Please 'login' first.")
		return false
	}
	return true
}

func requireAdmin(a execIface) bool {
	if !requireLogin(a) {
		return false
	}
	if !a.isAdmin() {
		printlnFn("Unknown command for this account.")
		return false
	}
	return true
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: register, login, exit")
		return
	}
	if a.isAdmin() {
		printlnFn("Available commands: whoami, upload, users, locations, table, promote, demote, activate, deactivate, rmuser, rmloc, rmphoto, logout, exit")
		return
	}
	printlnFn("Available commands: whoami, upload, logout, exit")
}
