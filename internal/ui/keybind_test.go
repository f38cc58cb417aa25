package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func TestKeybindRegistry_BindLookup(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	reg.Bind("space q", tea.Quit)
	reg.Bind("j", nil)

	assert.NotNil(t, reg.Lookup("q"))
	assert.NotNil(t, reg.Lookup("SPC q"), "space and SPC are the same key")
	assert.Nil(t, reg.Lookup("j"))
	assert.Nil(t, reg.Lookup("unknown"))
}

func TestKeybindRegistry_ModeFilter(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDescForMode("SPC w s", send(RequestActionMsg{}), "Stop workspace", []AppMode{ModeDashboard})

	assert.NotNil(t, reg.LookupForMode("SPC w s", ModeDashboard))
	assert.Nil(t, reg.LookupForMode("SPC w s", ModeStudio))
	assert.NotNil(t, reg.Lookup("SPC w s"), "Lookup ignores modes")

	assert.True(t, reg.HasPrefixForMode("SPC w", ModeDashboard))
	assert.False(t, reg.HasPrefixForMode("SPC w", ModeStudio))
	assert.True(t, reg.HasPrefix("SPC w"))
}

func TestKeybindRegistry_LeaderHints(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Group("SPC w", "Workspace")
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDescForMode("SPC w s", send(RequestActionMsg{}), "Stop workspace", []AppMode{ModeDashboard})
	reg.BindWithDescForMode("SPC w d", send(RequestActionMsg{}), "Delete workspace", []AppMode{ModeDashboard})
	reg.BindWithDesc("SPC v s", send(SwitchModeMsg{Mode: ModeStudio}), "Studio")

	assert.Equal(t, map[string]string{"q": "Quit", "w": "Workspace", "v": "v…"},
		reg.LeaderHints("", ModeDashboard))
	assert.Equal(t, map[string]string{"q": "Quit", "v": "v…"},
		reg.LeaderHints("", ModeStudio))
	assert.Equal(t, map[string]string{"s": "Stop workspace", "d": "Delete workspace"},
		reg.LeaderHints("SPC w", ModeDashboard))
}

func TestKeyHandler_LeaderKey(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC x", send(RefreshMsg{}))
	h := NewKeyHandler(reg)

	// Bubble Tea reports space as " ".
	consumed, cmd := h.Handle(keyMsg(" "))
	assert.True(t, consumed)
	assert.Nil(t, cmd)
	require.True(t, h.LeaderWaiting)
	assert.Equal(t, []string{"SPC"}, h.Buffer)

	consumed, cmd = h.Handle(keyMsg("x"))
	assert.True(t, consumed)
	assert.False(t, h.LeaderWaiting)
	require.NotNil(t, cmd)
	assert.Equal(t, RefreshMsg{}, cmd())
}

func TestKeyHandler_MultiKeySequence(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC w s", send(RequestActionMsg{}))
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	consumed, cmd := h.Handle(keyMsg("w"))
	assert.True(t, consumed)
	assert.Nil(t, cmd)
	assert.True(t, h.LeaderWaiting, "a longer binding keeps the leader open")
	assert.Equal(t, []string{"SPC", "w"}, h.Buffer)

	_, cmd = h.Handle(keyMsg("s"))
	require.NotNil(t, cmd)
	assert.False(t, h.LeaderWaiting)
}

func TestKeyHandler_DeadEndIsSwallowed(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC w s", send(RequestActionMsg{}))
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	consumed, cmd := h.Handle(keyMsg("z"))
	assert.True(t, consumed)
	assert.Nil(t, cmd)
	assert.False(t, h.LeaderWaiting)
	assert.Empty(t, h.Buffer)
}

func TestKeyHandler_ModeFiltered(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDescForMode("SPC w s", send(RequestActionMsg{}), "Stop workspace", []AppMode{ModeDashboard})
	h := NewKeyHandler(reg)
	h.Mode = ModeStudio

	h.Handle(keyMsg(" "))
	h.Handle(keyMsg("w"))
	assert.False(t, h.LeaderWaiting, "no studio binding continues SPC w")
}

func TestKeyHandler_EscCancelsLeader(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC x", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	require.True(t, h.LeaderWaiting)

	consumed, cmd := h.Handle(keyMsg("esc"))
	assert.True(t, consumed)
	assert.Nil(t, cmd)
	assert.False(t, h.LeaderWaiting)

	consumed, _ = h.Handle(keyMsg("esc"))
	assert.False(t, consumed, "esc outside leader mode belongs to the views")
}

func TestKeyHandler_SingleKey(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	h := NewKeyHandler(reg)

	consumed, cmd := h.Handle(keyMsg("q"))
	assert.True(t, consumed)
	assert.NotNil(t, cmd)

	consumed, _ = h.Handle(keyMsg("j"))
	assert.False(t, consumed, "unbound keys fall through")
}

func TestKeyMap_ShortHelpSortedWithEsc(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC n", send(ShowNotificationsMsg{}), "Notifications")
	h := NewKeyHandler(reg)

	bindings := NewKeyMap(reg, h, ModeDashboard).ShortHelp()
	require.Len(t, bindings, 3)
	assert.Equal(t, "n", bindings[0].Help().Key)
	assert.Equal(t, "q", bindings[1].Help().Key)
	assert.Equal(t, "esc", bindings[2].Help().Key)

	assert.Nil(t, NewKeyMap(NewKeybindRegistry(), h, ModeDashboard).ShortHelp())
}

// keyMsg builds the tea.KeyMsg Bubble Tea would deliver for s.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+q":
		return tea.KeyMsg{Type: tea.KeyCtrlQ}
	case "alt+[", "alt+]":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s[len("alt+"):]), Alt: true}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
