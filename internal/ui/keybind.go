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
	modes []AppMode // empty = every mode
}

func (b binding) appliesTo(mode AppMode) bool {
	return len(b.modes) == 0 || slices.Contains(b.modes, mode)
}

// KeybindRegistry maps key sequences to commands.
// Sequences use spacemacs-style notation: "SPC" for space, "SPC a 3" for SPC
// then a then 3. Single keys: "tab", "esc", "ctrl+c", "enter".
type KeybindRegistry struct {
	bindings map[string]binding
	submenus map[string]string // first key after SPC -> label
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings: make(map[string]binding),
		submenus: make(map[string]string),
	}
}

// Bind registers seq for every mode, replacing any earlier binding.
func (r *KeybindRegistry) Bind(seq string, cmd tea.Cmd) {
	r.BindWithDescForMode(seq, cmd, "", nil)
}

// BindWithDesc is Bind with a label for the help view.
func (r *KeybindRegistry) BindWithDesc(seq string, cmd tea.Cmd, desc string) {
	r.BindWithDescForMode(seq, cmd, desc, nil)
}

// BindWithDescForMode registers seq for the given modes only. Nil modes
// means every mode.
func (r *KeybindRegistry) BindWithDescForMode(seq string, cmd tea.Cmd, desc string, modes []AppMode) {
	r.bindings[normalizeSeq(seq)] = binding{cmd: cmd, desc: desc, modes: modes}
}

// Submenu labels the group of bindings under "SPC <k>" in the leader help.
func (r *KeybindRegistry) Submenu(k, label string) {
	r.submenus[k] = label
}

// Lookup returns the command for seq in any mode, or nil.
func (r *KeybindRegistry) Lookup(seq string) tea.Cmd {
	return r.bindings[normalizeSeq(seq)].cmd
}

// LookupForMode is Lookup restricted to bindings active in mode.
func (r *KeybindRegistry) LookupForMode(seq string, mode AppMode) tea.Cmd {
	b, ok := r.bindings[normalizeSeq(seq)]
	if !ok || !b.appliesTo(mode) {
		return nil
	}
	return b.cmd
}

// HasPrefix reports whether a longer binding continues seq.
func (r *KeybindRegistry) HasPrefix(seq string) bool {
	prefix := normalizeSeq(seq) + " "
	for s := range r.bindings {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// LeaderHints returns the next key of every binding under currentSeq that is
// active in mode, mapped to its label. An empty currentSeq means "SPC".
func (r *KeybindRegistry) LeaderHints(currentSeq string, mode AppMode) map[string]string {
	prefix := "SPC "
	if currentSeq != "" {
		prefix = normalizeSeq(currentSeq) + " "
	}
	out := make(map[string]string)
	for seq, b := range r.bindings {
		if b.cmd == nil || !b.appliesTo(mode) || !strings.HasPrefix(seq, prefix) {
			continue
		}
		rest := strings.Fields(strings.TrimPrefix(seq, prefix))
		if len(rest) == 0 {
			continue
		}
		next := rest[0]
		switch {
		case len(rest) > 1:
			if label, ok := r.submenus[next]; ok && currentSeq == "" {
				out[next] = label
			} else {
				out[next] = next + "…"
			}
		case b.desc != "":
			out[next] = b.desc
		default:
			out[next] = seq
		}
	}
	return out
}

// normalizeSeq converts tea key strings to registry notation.
func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		parts[i] = keyToSeqPart(p)
	}
	return strings.Join(parts, " ")
}

// keyToSeqPart maps one tea key string to registry notation.
func keyToSeqPart(s string) string {
	if s == " " || s == "space" {
		return "SPC"
	}
	return s
}

// KeyHandler tracks the pending leader sequence and dispatches to the registry.
type KeyHandler struct {
	Registry      *KeybindRegistry
	LeaderKey     string   // " " (tea.KeyMsg.String() format)
	LeaderSeq     string   // "SPC" (registry format)
	LeaderWaiting bool     // a sequence is in progress
	Buffer        []string // keys typed since the leader
	Mode          AppMode  // bindings outside this mode are ignored
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

// Handle processes a key. A consumed key must not reach the focused module.
func (h *KeyHandler) Handle(msg tea.KeyMsg) (consumed bool, cmd tea.Cmd) {
	s := msg.String()

	if !h.LeaderWaiting {
		switch s {
		case "esc":
			return false, nil
		case h.LeaderKey:
			h.LeaderWaiting = true
			h.Buffer = []string{h.LeaderSeq}
			return true, nil
		}
		if c := h.Registry.LookupForMode(keyToSeqPart(s), h.Mode); c != nil {
			return true, c
		}
		return false, nil
	}

	if s == "esc" {
		h.reset()
		return true, nil
	}
	h.Buffer = append(h.Buffer, keyToSeqPart(s))
	seq := h.CurrentSeq()
	if c := h.Registry.LookupForMode(seq, h.Mode); c != nil {
		h.reset()
		return true, c
	}
	if !h.Registry.HasPrefix(seq) {
		h.reset()
	}
	return true, nil
}

func (h *KeyHandler) reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}

// CurrentSeq returns the pending leader sequence, e.g. "SPC a".
func (h *KeyHandler) CurrentSeq() string {
	return strings.Join(h.Buffer, " ")
}

// KeyMap implements help.KeyMap over the leader hints of a handler.
type KeyMap struct {
	keyHandler *KeyHandler
}

// NewKeyMap creates a KeyMap for the given handler.
func NewKeyMap(keyHandler *KeyHandler) help.KeyMap {
	return &KeyMap{keyHandler: keyHandler}
}

// ShortHelp lists the pending sequence's next keys, sorted, then esc.
func (km *KeyMap) ShortHelp() []key.Binding {
	if km.keyHandler == nil || km.keyHandler.Registry == nil {
		return nil
	}
	hints := km.keyHandler.Registry.LeaderHints(km.keyHandler.CurrentSeq(), km.keyHandler.Mode)
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
		bindings = append(bindings, key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k])))
	}
	return append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}

// FullHelp implements help.KeyMap.
func (km *KeyMap) FullHelp() [][]key.Binding {
	if short := km.ShortHelp(); len(short) > 0 {
		return [][]key.Binding{short}
	}
	return nil
}
