package ui

import (
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// binding is one registered key sequence.
type binding struct {
	cmd   tea.Cmd
	desc  string
	modes []AppMode // empty: every mode
}

func (b binding) appliesTo(mode AppMode) bool {
	return len(b.modes) == 0 || slices.Contains(b.modes, mode)
}

// KeybindRegistry maps key sequences to commands.
// Key sequences use spacemacs-style notation: "SPC" for space, "SPC w s" for
// SPC then w then s. Single keys: "j", "k", "esc", "ctrl+c", "enter".
type KeybindRegistry struct {
	bindings map[string]binding
	groups   map[string]string // prefix -> submenu label
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings: make(map[string]binding),
		groups:   make(map[string]string),
	}
}

// Bind registers a key sequence for every mode, replacing any earlier binding.
func (r *KeybindRegistry) Bind(seq string, cmd tea.Cmd) {
	r.BindWithDesc(seq, cmd, "")
}

// BindWithDesc registers a key sequence for every mode with a help text.
func (r *KeybindRegistry) BindWithDesc(seq string, cmd tea.Cmd, desc string) {
	r.BindWithDescForMode(seq, cmd, desc, nil)
}

// BindWithDescForMode registers a key sequence that only fires, and is only
// hinted, in modes. A nil or empty modes means every mode.
func (r *KeybindRegistry) BindWithDescForMode(seq string, cmd tea.Cmd, desc string, modes []AppMode) {
	r.bindings[normalizeSeq(seq)] = binding{cmd: cmd, desc: desc, modes: modes}
}

// Group labels the submenu under prefix, e.g. Group("SPC w", "Workspace").
func (r *KeybindRegistry) Group(prefix, label string) {
	r.groups[normalizeSeq(prefix)] = label
}

// Lookup returns the command for a key sequence in any mode, or nil.
func (r *KeybindRegistry) Lookup(seq string) tea.Cmd {
	return r.bindings[normalizeSeq(seq)].cmd
}

// LookupForMode returns the command for a key sequence bound in mode, or nil.
func (r *KeybindRegistry) LookupForMode(seq string, mode AppMode) tea.Cmd {
	b, ok := r.bindings[normalizeSeq(seq)]
	if !ok || !b.appliesTo(mode) {
		return nil
	}
	return b.cmd
}

// HasPrefix reports whether a longer binding continues seq in any mode.
func (r *KeybindRegistry) HasPrefix(seq string) bool {
	return r.hasPrefix(seq, func(binding) bool { return true })
}

// HasPrefixForMode reports whether a longer binding continues seq in mode.
func (r *KeybindRegistry) HasPrefixForMode(seq string, mode AppMode) bool {
	return r.hasPrefix(seq, func(b binding) bool { return b.appliesTo(mode) })
}

func (r *KeybindRegistry) hasPrefix(seq string, keep func(binding) bool) bool {
	prefix := normalizeSeq(seq) + " "
	for k, b := range r.bindings {
		if strings.HasPrefix(k, prefix) && keep(b) {
			return true
		}
	}
	return false
}

// LeaderHints returns the next keys after currentSeq (after SPC when empty)
// that are bound in mode, mapped to their help text. A key that opens a
// submenu shows the group label, or "key…" when none was registered.
func (r *KeybindRegistry) LeaderHints(currentSeq string, mode AppMode) map[string]string {
	prefix := "SPC "
	if currentSeq != "" {
		prefix = normalizeSeq(currentSeq) + " "
	}
	out := make(map[string]string)
	for seq, b := range r.bindings {
		if b.cmd == nil || !strings.HasPrefix(seq, prefix) || !b.appliesTo(mode) {
			continue
		}
		parts := strings.Fields(strings.TrimPrefix(seq, prefix))
		if len(parts) == 0 {
			continue
		}
		next := parts[0]
		switch {
		case len(parts) > 1:
			label, ok := r.groups[prefix+next]
			if !ok {
				label = next + "…"
			}
			out[next] = label
		case b.desc != "":
			out[next] = b.desc
		default:
			out[next] = seq
		}
	}
	return out
}

// normalizeSeq converts tea key strings to the registry's notation.
// "space" -> "SPC", "ctrl+c" -> "ctrl+c", "j" -> "j".
func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		parts[i] = keyToSeqPart(p)
	}
	return joinSeq(parts)
}

// KeyHandler tracks the leader sequence being typed and dispatches completed
// sequences bound for the current Mode.
type KeyHandler struct {
	Registry      *KeybindRegistry
	LeaderKey     string // tea.KeyMsg.String() of the leader
	LeaderSeq     string // the leader in registry notation
	LeaderWaiting bool
	Buffer        []string
	// Mode selects which mode-filtered bindings fire.
	Mode AppMode
}

// NewKeyHandler creates a handler with SPC as leader.
// Bubble Tea reports space as " " (KeySpace), not "space".
func NewKeyHandler(reg *KeybindRegistry) *KeyHandler {
	return &KeyHandler{
		Registry:  reg,
		LeaderKey: " ",
		LeaderSeq: "SPC",
	}
}

// Handle processes a KeyMsg. consumed means the key belongs to the keybind
// system and must not reach the views; cmd may still be nil.
func (h *KeyHandler) Handle(msg tea.KeyMsg) (consumed bool, cmd tea.Cmd) {
	s := msg.String()

	switch {
	case s == "esc":
		if h.LeaderWaiting {
			h.reset()
			return true, nil
		}
		return false, nil
	case s == h.LeaderKey && !h.LeaderWaiting:
		h.LeaderWaiting = true
		h.Buffer = []string{h.LeaderSeq}
		return true, nil
	case h.LeaderWaiting:
		h.Buffer = append(h.Buffer, keyToSeqPart(s))
		seq := joinSeq(h.Buffer)
		if c := h.Registry.LookupForMode(seq, h.Mode); c != nil {
			h.reset()
			return true, c
		}
		if !h.Registry.HasPrefixForMode(seq, h.Mode) {
			// Dead end: drop the sequence, swallow the key.
			h.reset()
		}
		return true, nil
	}

	if c := h.Registry.LookupForMode(keyToSeqPart(s), h.Mode); c != nil {
		return true, c
	}
	return false, nil
}

func (h *KeyHandler) reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}

// keyToSeqPart converts a tea key string to a sequence part.
func keyToSeqPart(s string) string {
	if s == " " || s == "space" {
		return "SPC"
	}
	return s
}

func joinSeq(parts []string) string {
	return strings.Join(parts, " ")
}

// KeyMap implements help.KeyMap over the leader hints for the sequence typed
// so far.
type KeyMap struct {
	registry   *KeybindRegistry
	keyHandler *KeyHandler
	mode       AppMode
}

// NewKeyMap creates a KeyMap for the given registry, handler, and mode.
func NewKeyMap(registry *KeybindRegistry, keyHandler *KeyHandler, mode AppMode) help.KeyMap {
	return &KeyMap{
		registry:   registry,
		keyHandler: keyHandler,
		mode:       mode,
	}
}

// ShortHelp returns the hints sorted by key, then esc.
func (km *KeyMap) ShortHelp() []key.Binding {
	if km.registry == nil {
		return nil
	}
	currentSeq := ""
	if km.keyHandler != nil && len(km.keyHandler.Buffer) > 0 {
		currentSeq = joinSeq(km.keyHandler.Buffer)
	}
	hints := km.registry.LeaderHints(currentSeq, km.mode)
	if len(hints) == 0 {
		return nil
	}

	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bindings := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, hints[k]),
		))
	}
	return append(bindings, key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	))
}

// FullHelp returns ShortHelp as a single column.
func (km *KeyMap) FullHelp() [][]key.Binding {
	short := km.ShortHelp()
	if len(short) == 0 {
		return nil
	}
	return [][]key.Binding{short}
}
