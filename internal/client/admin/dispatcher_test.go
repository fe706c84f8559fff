package admin

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/portalcli/internal/client/api"
	"github.com/dmitrijs2005/portalcli/internal/common"
	"github.com/dmitrijs2005/portalcli/internal/logging"
)

// ---- fakes ----

type fakeAPI struct {
	calls     int
	lastID    int64
	lastState bool
	err       error
}

func (f *fakeAPI) SetUserAdmin(_ context.Context, id int64, admin bool) error {
	f.calls++
	f.lastID, f.lastState = id, admin
	return f.err
}

func (f *fakeAPI) SetUserActive(_ context.Context, id int64, active bool) error {
	f.calls++
	f.lastID, f.lastState = id, active
	return f.err
}

func (f *fakeAPI) DeleteUser(_ context.Context, id int64) error {
	f.calls++
	f.lastID = id
	return f.err
}

func (f *fakeAPI) DeleteLocation(_ context.Context, id int64) error {
	f.calls++
	f.lastID = id
	return f.err
}

func (f *fakeAPI) DeletePhoto(_ context.Context, id int64) error {
	f.calls++
	f.lastID = id
	return f.err
}

type fakeNotifier struct {
	successes []string
	errors    []string
}

func (f *fakeNotifier) Success(msg string) { f.successes = append(f.successes, msg) }
func (f *fakeNotifier) Error(msg string)   { f.errors = append(f.errors, msg) }

func newDispatcher(a *fakeAPI, n *fakeNotifier, refresh RefreshFunc) *Dispatcher {
	return NewDispatcher(a, n, refresh, logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

// ---- tests ----

func TestDispatch_UnknownActionMakesNoCall(t *testing.T) {
	a := &fakeAPI{}
	n := &fakeNotifier{}
	d := newDispatcher(a, n, nil)

	err := d.Dispatch(context.Background(), Action("dropAllTables"), 1, false)
	require.ErrorIs(t, err, ErrActionNotAllowed)
	assert.Equal(t, 0, a.calls, "rejected actions must not reach the network")
	require.NotEmpty(t, n.errors)
}

func TestDispatch_InvalidIDRejected(t *testing.T) {
	a := &fakeAPI{}
	n := &fakeNotifier{}
	d := newDispatcher(a, n, nil)

	for _, id := range []int64{0, -1, -42} {
		err := d.Dispatch(context.Background(), ActionDeleteUser, id, false)
		require.ErrorIs(t, err, ErrInvalidID, "id %d", id)
	}
	assert.Equal(t, 0, a.calls)
}

func TestDispatch_RateGateAllowsExactlyOne(t *testing.T) {
	a := &fakeAPI{}
	n := &fakeNotifier{}
	d := newDispatcher(a, n, nil)

	// two immediate clicks: the second lands well inside the minimum interval
	err1 := d.Dispatch(context.Background(), ActionToggleUserAdmin, 7, true)
	err2 := d.Dispatch(context.Background(), ActionToggleUserAdmin, 7, true)

	require.NoError(t, err1)
	require.ErrorIs(t, err2, ErrTooManyActions)
	assert.Equal(t, 1, a.calls, "double submit must result in exactly one call")
}

func TestDispatch_SuccessNotifiesAndRefreshes(t *testing.T) {
	a := &fakeAPI{}
	n := &fakeNotifier{}
	refreshed := 0
	d := newDispatcher(a, n, func(context.Context) error {
		refreshed++
		return nil
	})

	require.NoError(t, d.Dispatch(context.Background(), ActionToggleUserActive, 3, false))
	assert.Equal(t, int64(3), a.lastID)
	assert.False(t, a.lastState)
	assert.Equal(t, 1, refreshed)
	require.Len(t, n.successes, 1)
}

func TestDispatch_FailureShowsCappedMessage(t *testing.T) {
	long := strings.Repeat("x", common.MaxNoticeLength+100)
	a := &fakeAPI{err: &api.APIError{StatusCode: 400, Message: long}}
	n := &fakeNotifier{}
	d := newDispatcher(a, n, nil)

	err := d.Dispatch(context.Background(), ActionDeletePhoto, 9, false)
	require.Error(t, err)
	require.Len(t, n.errors, 1)
	assert.LessOrEqual(t, len(n.errors[0]), common.MaxNoticeLength+len("..."))
	assert.Empty(t, n.successes)
}

func TestDispatch_RateLimitHintSurfaced(t *testing.T) {
	a := &fakeAPI{err: &api.RateLimitError{RetryAfter: 30}}
	n := &fakeNotifier{}
	d := newDispatcher(a, n, nil)

	err := d.Dispatch(context.Background(), ActionDeleteUser, 2, false)
	require.Error(t, err)
	require.Len(t, n.errors, 1)
	assert.Contains(t, n.errors[0], "30 seconds")
}

func TestDispatch_UnavailableGetsConnectivityMessage(t *testing.T) {
	a := &fakeAPI{err: api.ErrUnavailable}
	n := &fakeNotifier{}
	d := newDispatcher(a, n, nil)

	err := d.Dispatch(context.Background(), ActionDeleteLocation, 5, false)
	require.Error(t, err)
	require.Len(t, n.errors, 1)
	assert.Contains(t, n.errors[0], "connection")
}

func TestDispatch_RefreshFailureStillSucceeds(t *testing.T) {
	a := &fakeAPI{}
	n := &fakeNotifier{}
	d := newDispatcher(a, n, func(context.Context) error { return api.ErrUnavailable })

	require.NoError(t, d.Dispatch(context.Background(), ActionDeleteUser, 4, false))
	require.Len(t, n.successes, 1)
	require.Len(t, n.errors, 1, "refresh failure is reported separately")
}
