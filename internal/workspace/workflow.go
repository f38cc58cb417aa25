package workspace

import (
	"context"
	"log/slog"
	"sync"

	"studiodash/internal/i18n"
	"studiodash/internal/logging"
	"studiodash/internal/notify"
	"studiodash/internal/trace"
)

// State is the workflow position of one card.
type State int

const (
	StateIdle State = iota
	StateConfirming
	StatePending
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfirming:
		return "confirming"
	case StatePending:
		return "pending"
	default:
		return "unknown"
	}
}

// Deps are the collaborators a Workflow talks to. API, Notifier and Mask are
// required; the rest have defaults.
type Deps struct {
	API        API
	Notifier   notify.Notifier
	Mask       Mask
	Opener     Opener
	Refresh    func()
	Translator i18n.Translator
	Navigator  Navigator
	Logger     *slog.Logger
}

// Workflow runs the confirm-then-call sequence for one card:
// Idle -> Confirming -> Pending -> Idle.
//
// At most one action is in flight. Dispose ends the workflow's lifetime: the
// in-flight request is cancelled and late completions reach no port.
type Workflow struct {
	deps Deps

	mu       sync.Mutex
	card     Card
	state    State
	pending  Action
	ctx      context.Context
	cancel   context.CancelFunc
	disposed bool
}

// NewWorkflow creates an idle workflow for card.
func NewWorkflow(card Card, deps Deps) *Workflow {
	if deps.Translator == nil {
		deps.Translator = i18n.Default()
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	if deps.Refresh == nil {
		deps.Refresh = func() {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Workflow{deps: deps, card: card, ctx: ctx, cancel: cancel}
}

// Card returns the card the workflow acts on.
func (w *Workflow) Card() Card {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.card
}

// SetCard replaces the card after the caller re-fetched its list.
func (w *Workflow) SetCard(c Card) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.card = c
}

// State returns the current state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Busy reports whether controls should be disabled.
func (w *Workflow) Busy() bool {
	return w.State() != StateIdle
}

// Request moves Idle -> Confirming and shows the confirmation mask for a.
func (w *Workflow) Request(a Action) error {
	w.mu.Lock()
	if w.disposed {
		w.mu.Unlock()
		return ErrDisposed
	}
	if w.state != StateIdle {
		w.mu.Unlock()
		return ErrBusy
	}
	if !w.card.Allows(a) {
		w.mu.Unlock()
		return ErrNotAllowed
	}
	w.state = StateConfirming
	w.pending = a
	ca := newConfirmAction(a, w.card.Title(), w.deps.Translator)
	key := w.card.SpaceKey
	w.mu.Unlock()

	ca.OnConfirm = func(ctx context.Context) error { return w.run(ctx, a) }
	ca.OnCancel = w.Cancel
	w.deps.Logger.Debug("workspace action requested", "space_key", key, "action", a.String())
	// Called without the lock: a Mask may confirm synchronously.
	w.deps.Mask.ShowMask(ca)
	return nil
}

// Activate handles a click on the card body. NavOpen opens the URL,
// NavConfirmStop requests ActionStopAndOpen, NavNone does nothing.
func (w *Workflow) Activate() (Navigation, error) {
	nav := w.Card().Navigation(w.deps.Navigator)
	switch nav.Kind {
	case NavOpen:
		if w.deps.Opener == nil {
			return nav, nil
		}
		return nav, w.deps.Opener.Open(nav.URL)
	case NavConfirmStop:
		return nav, w.Request(ActionStopAndOpen)
	default:
		return nav, nil
	}
}

// Cancel moves Confirming -> Idle and hides the mask. Other states are left
// alone: a pending request cannot be cancelled by the user.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	if w.state != StateConfirming {
		w.mu.Unlock()
		return
	}
	w.state = StateIdle
	w.pending = ActionNone
	disposed := w.disposed
	w.mu.Unlock()
	if !disposed {
		w.deps.Mask.HideMask()
	}
}

// Dispose ends the workflow. An open mask is hidden, the in-flight request
// is cancelled and its completion is ignored.
func (w *Workflow) Dispose() {
	w.mu.Lock()
	if w.disposed {
		w.mu.Unlock()
		return
	}
	w.disposed = true
	masked := w.state != StateIdle
	w.mu.Unlock()

	w.cancel()
	if masked {
		w.deps.Mask.HideMask()
	}
}

// run is the OnConfirm body: Confirming -> Pending -> Idle.
func (w *Workflow) run(ctx context.Context, a Action) error {
	w.mu.Lock()
	if w.disposed {
		w.mu.Unlock()
		return ErrDisposed
	}
	if w.state != StateConfirming || w.pending != a {
		w.mu.Unlock()
		return ErrBusy
	}
	w.state = StatePending
	card := w.card
	life := w.ctx
	w.mu.Unlock()

	reqCtx, cancel := context.WithCancel(life)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	key := card.SpaceKey
	if a == ActionStop || a == ActionStopAndOpen {
		key = card.StopKey()
	}

	spanCtx, span := trace.Start(reqCtx, "workspace."+a.String(),
		trace.AttrWorkspaceKey.String(key),
		trace.AttrAction.String(a.String()),
	)
	res, err := w.call(spanCtx, a, key)
	if err == nil && !res.OK() {
		err = &LogicalError{Action: a, Code: res.Code, Msg: res.Msg}
	}
	span.SetAttributes(trace.AttrAPICode.Int(res.Code))
	trace.End(span, err)

	w.mu.Lock()
	w.state = StateIdle
	w.pending = ActionNone
	disposed := w.disposed
	w.mu.Unlock()

	log := w.deps.Logger.With("space_key", key, "action", a.String())
	if disposed {
		log.Debug("ignoring completion after dispose", "err", err)
		return ErrDisposed
	}

	w.deps.Mask.HideMask()
	if err != nil {
		log.Warn("workspace action failed", "err", err)
		w.deps.Notifier.Notify(notify.Error(err.Error()))
		return err
	}

	log.Debug("workspace action succeeded", "msg", res.Msg)
	w.deps.Refresh()
	switch a {
	case ActionStopAndOpen:
		url := w.deps.Navigator.URL(card.SpaceKey)
		if w.deps.Opener != nil {
			if oerr := w.deps.Opener.Open(url); oerr != nil {
				w.deps.Notifier.Notify(notify.Error(oerr.Error()))
				return oerr
			}
		}
	case ActionStop:
		if res.Msg != "" {
			w.deps.Notifier.Notify(notify.Info(res.Msg))
		}
	}
	return nil
}

func (w *Workflow) call(ctx context.Context, a Action, key string) (Result, error) {
	switch a {
	case ActionStop, ActionStopAndOpen:
		return w.deps.API.QuitWorkspace(ctx, key)
	case ActionDelete:
		return w.deps.API.DeleteWorkspace(ctx, key)
	case ActionRestore:
		return w.deps.API.RestoreWorkspace(ctx, key)
	default:
		return Result{}, ErrNotAllowed
	}
}
