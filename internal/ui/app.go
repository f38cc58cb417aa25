package ui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studiodash/internal/i18n"
	"studiodash/internal/logging"
	"studiodash/internal/notify"
	"studiodash/internal/workspace"
	"studiodash/internal/wsapi"
)

// WorkspaceService is the workspace backend the dashboard talks to.
type WorkspaceService interface {
	workspace.API
	ListWorkspaces(ctx context.Context) (wsapi.Listing, error)
}

// Options configures NewAppModel.
type Options struct {
	Service WorkspaceService
	// Viewer is the global key of the user looking at the dashboard.
	Viewer         string
	Navigator      workspace.Navigator
	Opener         workspace.Opener
	Translator     i18n.Translator
	Logger         *slog.Logger
	RequestTimeout time.Duration
	Studio         StudioEnv
	StartMode      AppMode
}

// quitMsg shuts the app down after releasing workflows and shells.
type quitMsg struct{}

// AppModel is the root model. It switches between the workspace dashboard
// and the studio, and owns the overlays and the port bus.
type AppModel struct {
	Mode       AppMode
	Dashboard  *DashboardView
	Studio     *StudioView
	KeyHandler *KeyHandler
	Overlays   OverlayStack
	Log        *NotificationLog

	opts   Options
	bus    *Bus
	ctx    context.Context
	cancel context.CancelFunc
	width  int
	height int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model.
func NewAppModel(opts Options) *AppModel {
	if opts.Translator == nil {
		opts.Translator = i18n.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Studio.Translator == nil {
		opts.Studio.Translator = opts.Translator
	}
	ctx, cancel := context.WithCancel(logging.WithLogger(context.Background(), opts.Logger))
	bus := NewBus()

	var api workspace.API
	if opts.Service != nil {
		api = opts.Service
	}
	dash := NewDashboardView(workspace.Deps{
		API:        api,
		Notifier:   bus.Notifier(),
		Mask:       bus.Mask(),
		Opener:     opts.Opener,
		Refresh:    bus.Refresh,
		Translator: opts.Translator,
		Navigator:  opts.Navigator,
		Logger:     opts.Logger,
	})

	return &AppModel{
		Mode:       opts.StartMode,
		Dashboard:  dash,
		KeyHandler: NewKeyHandler(newKeybindings()),
		Log:        NewNotificationLog(),
		opts:       opts,
		bus:        bus,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func newKeybindings() *KeybindRegistry {
	send := func(msg tea.Msg) tea.Cmd { return func() tea.Msg { return msg } }
	dashboard := []AppMode{ModeDashboard}

	reg := NewKeybindRegistry()
	reg.Group("SPC w", "Workspace")
	reg.Group("SPC v", "View")
	reg.BindWithDesc("SPC q", send(quitMsg{}), "Quit")
	reg.BindWithDesc("SPC n", send(ShowNotificationsMsg{}), "Notifications")
	reg.BindWithDescForMode("SPC w s", send(RequestActionMsg{Action: workspace.ActionStop}), "Stop workspace", dashboard)
	reg.BindWithDescForMode("SPC w d", send(RequestActionMsg{Action: workspace.ActionDelete}), "Delete workspace", dashboard)
	reg.BindWithDescForMode("SPC w r", send(RequestActionMsg{Action: workspace.ActionRestore}), "Restore workspace", dashboard)
	reg.BindWithDescForMode("SPC w f", send(RefreshMsg{}), "Refresh list", dashboard)
	reg.BindWithDesc("SPC v s", send(SwitchModeMsg{Mode: ModeStudio}), "Studio")
	reg.BindWithDesc("SPC v d", send(SwitchModeMsg{Mode: ModeDashboard}), "Dashboard")
	return reg
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	cmds := []tea.Cmd{
		a.bus.Wait(),
		a.bus.WaitNotification(),
		a.Dashboard.Init(),
		a.Dashboard.SetLoading(true),
		loadWorkspacesCmd(a.ctx, a.opts.Service, a.opts.RequestTimeout),
	}
	if a.Mode == ModeStudio {
		cmds = append(cmds, a.ensureStudio())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case busMsg:
		_, cmd := a.Update(msg.Msg)
		return a, tea.Batch(cmd, a.bus.Wait())
	case notify.Notification:
		a.Log.Add(msg)
		var cmd tea.Cmd
		if a.Studio != nil {
			_, cmd = a.Studio.Update(msg)
		}
		return a, tea.Batch(cmd, a.bus.WaitNotification())
	case tea.WindowSizeMsg:
		return a, a.resize(msg)
	case quitMsg:
		a.shutdown()
		return a, tea.Quit
	case ShowMaskMsg:
		modal := NewConfirmModal(a.ctx, msg.Action)
		a.Overlays.Push(Overlay{View: modal})
		a.Dashboard.Update(msg)
		return a, modal.Init()
	case HideMaskMsg:
		a.Overlays.Remove(func(v View) bool {
			_, isConfirm := v.(*ConfirmModal)
			return isConfirm
		})
		a.Dashboard.Update(msg)
		return a, nil
	case confirmDoneMsg:
		cmd, _ := a.Overlays.UpdateTop(msg)
		a.Dashboard.Update(msg)
		return a, cmd
	case RefreshMsg:
		return a, tea.Batch(a.Dashboard.SetLoading(true),
			loadWorkspacesCmd(a.ctx, a.opts.Service, a.opts.RequestTimeout))
	case WorkspacesLoadedMsg:
		a.Dashboard.SetLoading(false)
		if msg.Err != nil {
			a.Dashboard.SetError(msg.Err)
			a.opts.Logger.Warn("workspace list failed", "err", msg.Err)
			a.bus.Notifier().Notify(notify.Error(msg.Err.Error()))
			return a, nil
		}
		a.Dashboard.SetCards(msg.Listing.Cards(a.opts.Viewer))
		return a, nil
	case RequestActionMsg:
		a.Dashboard.Request(msg.Action)
		return a, nil
	case SwitchModeMsg:
		a.Mode = msg.Mode
		if a.Mode == ModeStudio {
			return a, a.ensureStudio()
		}
		return a, nil
	case ShowNotificationsMsg:
		a.Overlays.Push(Overlay{View: a.Log})
		return a, nil
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	// Background results reach every live view.
	var cmds []tea.Cmd
	if cmd, ok := a.Overlays.UpdateTop(msg); ok {
		cmds = append(cmds, cmd)
	}
	_, cmd := a.Dashboard.Update(msg)
	cmds = append(cmds, cmd)
	if a.Studio != nil {
		_, cmd = a.Studio.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a *appModelAdapter) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+q" {
		return func() tea.Msg { return quitMsg{} }
	}
	if a.Overlays.Len() > 0 {
		top, _ := a.Overlays.Peek()
		if top.IsDismissKey(msg.String()) {
			a.Overlays.Pop()
			return nil
		}
		cmd, _ := a.Overlays.UpdateTop(msg)
		return cmd
	}
	if !a.capturesInput() {
		a.KeyHandler.Mode = a.Mode
		if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
			return cmd
		}
		switch msg.String() {
		case "ctrl+c":
			return func() tea.Msg { return quitMsg{} }
		case "q":
			if a.Mode == ModeDashboard {
				return func() tea.Msg { return quitMsg{} }
			}
		}
	}
	_, cmd := a.currentView().Update(msg)
	return cmd
}

func (a *appModelAdapter) capturesInput() bool {
	return a.Mode == ModeStudio && a.Studio != nil && a.Studio.CapturesInput()
}

func (a *appModelAdapter) currentView() View {
	if a.Mode == ModeStudio && a.Studio != nil {
		return a.Studio
	}
	return a.Dashboard
}

// ensureStudio builds the studio on first use.
func (a *appModelAdapter) ensureStudio() tea.Cmd {
	if a.Studio != nil {
		return nil
	}
	a.Studio = NewStudioView(a.opts.Studio)
	cmds := []tea.Cmd{a.Studio.Init()}
	if a.width > 0 {
		_, cmd := a.Studio.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (a *appModelAdapter) resize(msg tea.WindowSizeMsg) tea.Cmd {
	a.width, a.height = msg.Width, msg.Height
	var cmds []tea.Cmd
	_, cmd := a.Dashboard.Update(tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 1})
	cmds = append(cmds, cmd)
	a.Log.Update(msg)
	if a.Studio != nil {
		_, cmd = a.Studio.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Close releases workflows and shells when the program ends without a quit
// key, for example on a cancelled context. It may run more than once.
func (a *AppModel) Close() {
	a.shutdown()
}

func (a *AppModel) shutdown() {
	a.Dashboard.Dispose()
	if a.Studio != nil {
		a.Studio.Close()
	}
	a.cancel()
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if top, ok := a.Overlays.Peek(); ok {
		if a.width > 0 && a.height > 0 {
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, top.View.View())
		}
		return top.View.View()
	}
	base := a.currentView().View()
	if a.Mode == ModeDashboard {
		base += "\n" + a.statusLine()
	}
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		base += "\n" + RenderKeybindHelp(a.KeyHandler, a.Mode)
	}
	return base
}

func (a *appModelAdapter) statusLine() string {
	n, ok := a.Log.Last()
	if !ok {
		return ""
	}
	line := typeIcon(n) + " " + n.Message
	if n.IsError() {
		return Styles.Error.Render(line)
	}
	return Styles.Status.Render(line)
}
