// Package admin translates admin UI clicks into exactly one REST call
// each, behind an allow-list, id validation, and a client-side rate
// gate. None of this is a security boundary: the server independently
// authorizes every call.
package admin

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/portalcli/internal/client/api"
	"github.com/dmitrijs2005/portalcli/internal/common"
	"github.com/dmitrijs2005/portalcli/internal/logging"
)

var (
	// ErrActionNotAllowed means the action name is outside the allow-list.
	ErrActionNotAllowed = errors.New("action not allowed")

	// ErrInvalidID means the target id is not a positive integer.
	ErrInvalidID = errors.New("invalid resource id")

	// ErrTooManyActions means the client-side rate gate rejected the
	// action. A double-submit guard, not server-side rate limiting.
	ErrTooManyActions = errors.New("too many actions")
)

// Action names accepted by the dispatcher. Anything else is rejected
// locally without a network call.
type Action string

const (
	ActionToggleUserAdmin  Action = "toggleUserAdmin"
	ActionToggleUserActive Action = "toggleUserActive"
	ActionDeleteUser       Action = "deleteUser"
	ActionDeleteLocation   Action = "deleteLocation"
	ActionDeletePhoto      Action = "deletePhoto"
)

// API is the slice of the remote client the dispatcher calls.
type API interface {
	SetUserAdmin(ctx context.Context, id int64, admin bool) error
	SetUserActive(ctx context.Context, id int64, active bool) error
	DeleteUser(ctx context.Context, id int64) error
	DeleteLocation(ctx context.Context, id int64) error
	DeletePhoto(ctx context.Context, id int64) error
}

// Notifier shows short user-facing notices.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// RefreshFunc re-loads the data table affected by a successful action.
type RefreshFunc func(ctx context.Context) error

// Dispatcher owns its rate-gate state explicitly; construct one per
// admin surface.
type Dispatcher struct {
	api      API
	notifier Notifier
	refresh  RefreshFunc
	limiter  *rate.Limiter
	log      logging.Logger
}

func NewDispatcher(apiClient API, notifier Notifier, refresh RefreshFunc, log logging.Logger) *Dispatcher {
	return &Dispatcher{
		api:      apiClient,
		notifier: notifier,
		refresh:  refresh,
		limiter:  rate.NewLimiter(rate.Every(common.ActionMinInterval), 1),
		log:      log,
	}
}

// Dispatch performs one admin action against the resource id. For the
// toggle actions, enable carries the desired state; delete actions
// ignore it.
//
// Checks run in order: allow-list, id validation, rate gate. Each
// failure is reported to the user and no request is sent.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action, id int64, enable bool) error {
	if !allowed(action) {
		d.log.Warn(ctx, "rejected unknown admin action", "action", string(action))
		d.notifier.Error("This action is not available.")
		return ErrActionNotAllowed
	}

	if id <= 0 {
		d.notifier.Error("Invalid id: must be a positive number.")
		return ErrInvalidID
	}

	if !d.limiter.Allow() {
		d.notifier.Error("Please wait a moment before the next action.")
		return ErrTooManyActions
	}

	if err := d.call(ctx, action, id, enable); err != nil {
		d.log.Warn(ctx, "admin action failed", "action", string(action), "id", id, "error", err)
		d.notifier.Error(userMessage(err))
		return err
	}

	d.notifier.Success(fmt.Sprintf("%s succeeded for #%d.", action, id))

	if d.refresh != nil {
		if err := d.refresh(ctx); err != nil {
			d.log.Warn(ctx, "table refresh failed", "error", err)
			d.notifier.Error("The action succeeded, but the table could not be refreshed.")
		}
	}
	return nil
}

func allowed(action Action) bool {
	switch action {
	case ActionToggleUserAdmin, ActionToggleUserActive,
		ActionDeleteUser, ActionDeleteLocation, ActionDeletePhoto:
		return true
	}
	return false
}

func (d *Dispatcher) call(ctx context.Context, action Action, id int64, enable bool) error {
	switch action {
	case ActionToggleUserAdmin:
		return d.api.SetUserAdmin(ctx, id, enable)
	case ActionToggleUserActive:
		return d.api.SetUserActive(ctx, id, enable)
	case ActionDeleteUser:
		return d.api.DeleteUser(ctx, id)
	case ActionDeleteLocation:
		return d.api.DeleteLocation(ctx, id)
	case ActionDeletePhoto:
		return d.api.DeletePhoto(ctx, id)
	default:
		return ErrActionNotAllowed
	}
}

// userMessage converts a call failure into a short notice. Raw server
// internals are never shown; server-provided messages are length-capped.
func userMessage(err error) string {
	var rle *api.RateLimitError
	if errors.As(err, &rle) {
		if rle.RetryAfter > 0 {
			return fmt.Sprintf("Too many requests. Retry in %d seconds.", rle.RetryAfter)
		}
		return "Too many requests. Please retry shortly."
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return common.Truncate(apiErr.Message, common.MaxNoticeLength)
	}

	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "You are not authorized to perform this action."
	case errors.Is(err, api.ErrUnavailable):
		return "Could not reach the server. Please check your connection."
	default:
		return "The action failed. Please try again."
	}
}
