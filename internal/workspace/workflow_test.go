package workspace

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiodash/internal/notify"
)

type apiCall struct {
	op  string
	key string
}

// fakeAPI answers every call with res/err and records the calls.
type fakeAPI struct {
	mu    sync.Mutex
	res   Result
	err   error
	calls []apiCall
	// block, when set, holds calls until it is closed or ctx is done.
	block chan struct{}
}

func (f *fakeAPI) do(ctx context.Context, op, key string) (Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, apiCall{op, key})
	block := f.block
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}
	return f.res, f.err
}

func (f *fakeAPI) QuitWorkspace(ctx context.Context, key string) (Result, error) {
	return f.do(ctx, "quit", key)
}

func (f *fakeAPI) DeleteWorkspace(ctx context.Context, key string) (Result, error) {
	return f.do(ctx, "delete", key)
}

func (f *fakeAPI) RestoreWorkspace(ctx context.Context, key string) (Result, error) {
	return f.do(ctx, "restore", key)
}

func (f *fakeAPI) Calls() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiCall(nil), f.calls...)
}

type fakeMask struct {
	mu     sync.Mutex
	shown  []ConfirmAction
	hidden int
}

func (m *fakeMask) ShowMask(a ConfirmAction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shown = append(m.shown, a)
}

func (m *fakeMask) HideMask() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hidden++
}

func (m *fakeMask) last(t *testing.T) ConfirmAction {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.shown, "expected a mask to be shown")
	return m.shown[len(m.shown)-1]
}

func (m *fakeMask) Hidden() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hidden
}

type fakeOpener struct {
	urls []string
	err  error
}

func (o *fakeOpener) Open(url string) error {
	o.urls = append(o.urls, url)
	return o.err
}

type harness struct {
	api      *fakeAPI
	mask     *fakeMask
	opener   *fakeOpener
	notes    *notify.Recorder
	refreshs int
	wf       *Workflow
}

func newHarness(card Card) *harness {
	h := &harness{
		api:    &fakeAPI{},
		mask:   &fakeMask{},
		opener: &fakeOpener{},
		notes:  &notify.Recorder{},
	}
	h.wf = NewWorkflow(card, Deps{
		API:       h.api,
		Notifier:  h.notes,
		Mask:      h.mask,
		Opener:    h.opener,
		Refresh:   func() { h.refreshs++ },
		Navigator: Navigator{StudioOrigin: "https://studio.example.com"},
	})
	return h
}

func onlineOwned() Card {
	return Card{
		Workspace: Workspace{
			SpaceKey:       "ws1",
			OwnerName:      "alice",
			ProjectName:    "demo",
			OwnerGlobalKey: "alice",
			WorkingStatus:  StatusOnline,
		},
		ViewerGlobalKey: "alice",
	}
}

func TestWorkflow_StopSuccess(t *testing.T) {
	h := newHarness(onlineOwned())
	h.api.res = Result{Code: 0, Msg: "stopped"}

	require.NoError(t, h.wf.Request(ActionStop))
	assert.Equal(t, StateConfirming, h.wf.State())

	ca := h.mask.last(t)
	assert.Equal(t, ActionStop, ca.Action)
	assert.True(t, ca.IsWarn)
	assert.Equal(t, "Stop", ca.ConfirmText)
	assert.Equal(t, "Cancel", ca.CancelText)
	assert.Equal(t, "Stopping...", ca.PendingText)
	assert.Equal(t, "alice/demo", ca.Title)

	require.NoError(t, ca.OnConfirm(context.Background()))

	assert.Equal(t, []apiCall{{"quit", "ws1"}}, h.api.Calls())
	assert.Equal(t, 1, h.refreshs)
	assert.Equal(t, 1, h.mask.Hidden())
	assert.Equal(t, StateIdle, h.wf.State())
	last, ok := h.notes.Last()
	require.True(t, ok)
	assert.Equal(t, "stopped", last.Message)
	assert.False(t, last.IsError())
	assert.Empty(t, h.opener.urls, "plain stop must not open anything")
}

func TestWorkflow_StopUsesOpenedSpaceKey(t *testing.T) {
	card := onlineOwned()
	card.OpenedSpaceKey = "other"
	h := newHarness(card)

	require.NoError(t, h.wf.Request(ActionStop))
	require.NoError(t, h.mask.last(t).OnConfirm(context.Background()))
	assert.Equal(t, []apiCall{{"quit", "other"}}, h.api.Calls())
}

func TestWorkflow_LogicalFailure(t *testing.T) {
	h := newHarness(onlineOwned())
	h.api.res = Result{Code: 1, Msg: "workspace busy"}

	require.NoError(t, h.wf.Request(ActionDelete))
	err := h.mask.last(t).OnConfirm(context.Background())

	var le *LogicalError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 1, le.Code)
	assert.Equal(t, 0, h.refreshs, "refresh only on success")
	assert.Equal(t, 1, h.mask.Hidden(), "mask dismissed on failure")
	last, _ := h.notes.Last()
	assert.True(t, last.IsError())
	assert.Equal(t, "workspace busy", last.Message)
	assert.Equal(t, StateIdle, h.wf.State())
}

func TestWorkflow_TransportFailure(t *testing.T) {
	h := newHarness(onlineOwned())
	h.api.err = errors.New("connection refused")

	require.NoError(t, h.wf.Request(ActionStop))
	err := h.mask.last(t).OnConfirm(context.Background())

	require.Error(t, err)
	assert.Equal(t, 0, h.refreshs)
	assert.Equal(t, 1, h.mask.Hidden())
	require.Len(t, h.notes.Items, 1)
	assert.True(t, h.notes.Items[0].IsError())
	assert.Equal(t, "connection refused", h.notes.Items[0].Message)
	assert.Len(t, h.api.Calls(), 1, "no retry")
}

func TestWorkflow_DeleteAndRestoreOnlyRefresh(t *testing.T) {
	h := newHarness(onlineOwned())
	h.api.res = Result{Code: 0, Msg: "deleted"}

	require.NoError(t, h.wf.Request(ActionDelete))
	require.NoError(t, h.mask.last(t).OnConfirm(context.Background()))
	assert.Equal(t, 1, h.refreshs)
	assert.Empty(t, h.notes.Items, "delete success does not notify")

	invalid := onlineOwned()
	invalid.WorkingStatus = StatusInvalid
	h2 := newHarness(invalid)
	require.NoError(t, h2.wf.Request(ActionRestore))
	ca := h2.mask.last(t)
	assert.False(t, ca.IsWarn)
	require.NoError(t, ca.OnConfirm(context.Background()))
	assert.Equal(t, []apiCall{{"restore", "ws1"}}, h2.api.Calls())
	assert.Equal(t, 1, h2.refreshs)
}

func TestWorkflow_RequestGating(t *testing.T) {
	invalid := onlineOwned()
	invalid.WorkingStatus = StatusInvalid
	h := newHarness(invalid)
	assert.ErrorIs(t, h.wf.Request(ActionStop), ErrNotAllowed)
	assert.ErrorIs(t, h.wf.Request(ActionDelete), ErrNotAllowed)

	notOwner := onlineOwned()
	notOwner.ViewerGlobalKey = "bob"
	h = newHarness(notOwner)
	assert.ErrorIs(t, h.wf.Request(ActionStop), ErrNotAllowed)
	assert.ErrorIs(t, h.wf.Request(ActionRestore), ErrNotAllowed)
	assert.Empty(t, h.mask.shown)
}

func TestWorkflow_CancelReturnsToIdle(t *testing.T) {
	h := newHarness(onlineOwned())
	require.NoError(t, h.wf.Request(ActionDelete))
	ca := h.mask.last(t)

	ca.OnCancel()
	assert.Equal(t, StateIdle, h.wf.State())
	assert.Equal(t, 1, h.mask.Hidden())

	// A stale confirm after cancel is rejected and calls nothing.
	assert.ErrorIs(t, ca.OnConfirm(context.Background()), ErrBusy)
	assert.Empty(t, h.api.Calls())
}

func TestWorkflow_BusyGuard(t *testing.T) {
	h := newHarness(onlineOwned())
	h.api.block = make(chan struct{})

	require.NoError(t, h.wf.Request(ActionStop))
	ca := h.mask.last(t)

	done := make(chan error, 1)
	go func() { done <- ca.OnConfirm(context.Background()) }()

	require.Eventually(t, func() bool { return h.wf.State() == StatePending }, timeout, tick)
	assert.True(t, h.wf.Busy())
	assert.ErrorIs(t, h.wf.Request(ActionDelete), ErrBusy)
	assert.ErrorIs(t, ca.OnConfirm(context.Background()), ErrBusy, "double confirm rejected")

	close(h.api.block)
	require.NoError(t, <-done)
	assert.Len(t, h.api.Calls(), 1)
	assert.False(t, h.wf.Busy())
}

func TestWorkflow_DisposeIgnoresLateCompletion(t *testing.T) {
	h := newHarness(onlineOwned())
	h.api.block = make(chan struct{})

	require.NoError(t, h.wf.Request(ActionStop))
	ca := h.mask.last(t)

	done := make(chan error, 1)
	go func() { done <- ca.OnConfirm(context.Background()) }()
	require.Eventually(t, func() bool { return h.wf.State() == StatePending }, timeout, tick)

	h.wf.Dispose()
	assert.Equal(t, 1, h.mask.Hidden(), "dispose hides the open mask")

	assert.ErrorIs(t, <-done, ErrDisposed)
	assert.Equal(t, 0, h.refreshs)
	assert.Empty(t, h.notes.Items)
	assert.Equal(t, 1, h.mask.Hidden(), "late completion must not touch the mask")
	assert.ErrorIs(t, h.wf.Request(ActionStop), ErrDisposed)
}

func TestWorkflow_ActivateOpensURL(t *testing.T) {
	h := newHarness(onlineOwned())
	nav, err := h.wf.Activate()
	require.NoError(t, err)
	assert.Equal(t, NavOpen, nav.Kind)
	assert.Equal(t, []string{"https://studio.example.com/ws/ws1"}, h.opener.urls)
}

func TestWorkflow_ActivateInvalidIsDead(t *testing.T) {
	card := onlineOwned()
	card.WorkingStatus = StatusInvalid
	card.HasWSOpened = true
	h := newHarness(card)

	nav, err := h.wf.Activate()
	require.NoError(t, err)
	assert.Equal(t, NavNone, nav.Kind)
	assert.Empty(t, h.opener.urls)
	assert.Empty(t, h.mask.shown)
}

func TestWorkflow_AlreadyOpenStopsThenOpens(t *testing.T) {
	card := onlineOwned()
	card.ViewerGlobalKey = "bob"
	card.HasWSOpened = true
	card.OpenedSpaceKey = "bobs-ws"
	h := newHarness(card)
	h.api.res = Result{Code: 0, Msg: "stopped"}

	nav, err := h.wf.Activate()
	require.NoError(t, err)
	assert.Equal(t, NavConfirmStop, nav.Kind)
	assert.Empty(t, h.opener.urls, "no direct navigation")

	ca := h.mask.last(t)
	assert.Equal(t, ActionStopAndOpen, ca.Action)
	assert.Equal(t, "OK", ca.CancelText)
	assert.Equal(t, "Stop", ca.ConfirmText)

	require.NoError(t, ca.OnConfirm(context.Background()))
	assert.Equal(t, []apiCall{{"quit", "bobs-ws"}}, h.api.Calls())
	assert.Equal(t, 1, h.refreshs)
	assert.Equal(t, []string{"https://studio.example.com/ws/ws1"}, h.opener.urls)
	assert.Empty(t, h.notes.Items, "opening replaces the info notification")
}

func TestWorkflow_SynchronousMask(t *testing.T) {
	api := &fakeAPI{}
	var wf *Workflow
	wf = NewWorkflow(onlineOwned(), Deps{
		API:      api,
		Notifier: &notify.Recorder{},
		Mask: maskFunc(func(a ConfirmAction) {
			// Confirm from inside ShowMask, like a CLI prompt does.
			_ = a.OnConfirm(context.Background())
		}),
	})
	require.NoError(t, wf.Request(ActionDelete))
	assert.Len(t, api.Calls(), 1)
	assert.Equal(t, StateIdle, wf.State())
}

type maskFunc func(ConfirmAction)

func (f maskFunc) ShowMask(a ConfirmAction) { f(a) }
func (f maskFunc) HideMask()                {}
