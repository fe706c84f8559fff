package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/portalcli/internal/client/admin"
)

// Users loads and prints the user table, and makes it the refresh
// target for subsequent admin actions.
func (a *App) Users(ctx context.Context) error {
	a.lastLoad = a.loadUsers
	return a.loadUsers(ctx)
}

func (a *App) loadUsers(ctx context.Context) error {
	users, err := a.apiClient.ListUsers(ctx)
	if err != nil {
		a.ui.Error("Could not load users: " + err.Error())
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tADMIN\tACTIVE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%t\n", u.ID, u.Username, u.Email, u.IsAdmin, u.IsActive)
	}
	return w.Flush()
}

// Locations loads and prints the map-marker table.
func (a *App) Locations(ctx context.Context) error {
	a.lastLoad = a.loadLocations
	return a.loadLocations(ctx)
}

func (a *App) loadLocations(ctx context.Context) error {
	locations, err := a.apiClient.ListLocations(ctx)
	if err != nil {
		a.ui.Error("Could not load locations: " + err.Error())
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLAT\tLON")
	for _, l := range locations {
		fmt.Fprintf(w, "%d\t%s\t%.6f\t%.6f\n", l.ID, l.Name, l.Latitude, l.Longitude)
	}
	return w.Flush()
}

// Table loads and prints an arbitrary table by name (the admin
// database viewer).
func (a *App) Table(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: table <name>")
		return nil
	}
	name := args[0]
	a.lastLoad = func(ctx context.Context) error { return a.loadTable(ctx, name) }
	return a.loadTable(ctx, name)
}

func (a *App) loadTable(ctx context.Context, name string) error {
	table, err := a.apiClient.TableRows(ctx, name)
	if err != nil {
		a.ui.Error("Could not load table: " + err.Error())
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, col := range table.Columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col)
	}
	fmt.Fprintln(w)
	for _, row := range table.Rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, formatCell(cell))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func formatCell(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case float64:
		// JSON numbers decode as float64; show integers without a
		// fractional part.
		if value == float64(int64(value)) {
			return strconv.FormatInt(int64(value), 10)
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}

// UserAction routes an admin REPL command through the dispatcher. The
// dispatcher enforces the allow-list, id validation, and the rate gate;
// errors have already been shown to the user when it returns.
func (a *App) UserAction(ctx context.Context, action admin.Action, args []string, enable bool) error {
	if len(args) == 0 {
		fmt.Printf("Usage: %s <id>\n", replCommand(action, enable))
		return nil
	}
	return a.dispatcher.Dispatch(ctx, action, parseID(args[0]), enable)
}

// parseID returns 0 for anything that is not a positive integer; the
// dispatcher rejects 0 with a user-visible message.
func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func replCommand(action admin.Action, enable bool) string {
	switch action {
	case admin.ActionToggleUserAdmin:
		if enable {
			return "promote"
		}
		return "demote"
	case admin.ActionToggleUserActive:
		if enable {
			return "activate"
		}
		return "deactivate"
	case admin.ActionDeleteUser:
		return "rmuser"
	case admin.ActionDeleteLocation:
		return "rmloc"
	case admin.ActionDeletePhoto:
		return "rmphoto"
	default:
		return string(action)
	}
}
