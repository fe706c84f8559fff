package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/portalcli/internal/client/api"
	"github.com/dmitrijs2005/portalcli/internal/client/validate"
	"github.com/dmitrijs2005/portalcli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped
// in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates against the server.
// On success the user snapshot is kept in memory and the issued token
// persisted for the next run. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		a.ui.Error(authFailureMessage(err))
		return err
	}

	a.ui.Reveal(user)
	return nil
}

// Register prompts for the registration fields and creates a new
// account. When the server issues a token immediately the user is
// logged in; otherwise they are told to verify their e-mail first.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "First name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	fmt.Printf("Password strength: %s\n", validate.StrengthLabel(validate.Strength(string(password))))

	res, err := a.auth.Register(ctx, api.RegisterRequest{
		Username:  username,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  string(password),
	})
	if err != nil {
		a.ui.Error(authFailureMessage(err))
		return err
	}

	if res.RequiresVerification {
		a.ui.Notify("Account created. Check your e-mail to verify it, then use 'login'.")
		return nil
	}

	a.ui.Reveal(res.User)
	return nil
}

// Logout invalidates the session server-side (best effort), clears the
// stored tokens, and discards the in-memory snapshot.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.ui.Error("Could not clear the stored session: " + err.Error())
		return err
	}
	a.user = nil
	a.lastLoad = nil
	a.ui.Success("Logged out.")
	return nil
}

// WhoAmI prints the current user snapshot.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.user
	fmt.Printf("id:       %d\n", u.ID)
	fmt.Printf("username: %s\n", u.Username)
	fmt.Printf("email:    %s\n", u.Email)
	fmt.Printf("name:     %s\n", u.DisplayName)
	fmt.Printf("admin:    %t\n", u.IsAdmin)
	return nil
}

// authFailureMessage converts authentication failures into short
// user-facing notices. An explicit rejection never reveals which of
// email/password was wrong, and server internals are never echoed.
func authFailureMessage(err error) string {
	var rle *api.RateLimitError
	if errors.As(err, &rle) {
		if rle.RetryAfter > 0 {
			return fmt.Sprintf("Too many attempts. Retry in %d seconds.", rle.RetryAfter)
		}
		return "Too many attempts. Please retry shortly."
	}

	switch {
	case errors.Is(err, common.ErrInvalidEmail), errors.Is(err, common.ErrInvalidPassword):
		return common.Truncate(err.Error(), common.MaxNoticeLength)
	case errors.Is(err, common.ErrStorageUnavailable):
		return "This device cannot store the session (local storage unavailable)."
	case errors.Is(err, api.ErrUnauthorized):
		return "Invalid email or password."
	case errors.Is(err, api.ErrUnavailable):
		return "Could not reach the server. Please check your connection."
	default:
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return common.Truncate(apiErr.Message, common.MaxNoticeLength)
		}
		return "Something went wrong. Please try again."
	}
}
