package widgets

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"practicestudio/internal/module"
)

// Tuner shows a target note. There is no pitch detection; t only flips the
// activation state and runs a listening spinner while active.
type Tuner struct {
	Active  bool
	Note    string
	spinner spinner.Model
}

// Ensure Tuner implements module.Widget.
var _ module.Widget = (*Tuner)(nil)

// NewTuner returns an inactive tuner targeting low E.
func NewTuner() *Tuner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accent
	return &Tuner{Note: "E", spinner: s}
}

// Init implements module.Widget.
func (t *Tuner) Init() tea.Cmd { return nil }

// Update implements module.Widget.
func (t *Tuner) Update(msg tea.Msg) (module.Widget, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "t" {
			t.Active = !t.Active
			if t.Active {
				return t, t.spinner.Tick
			}
		}
	case spinner.TickMsg:
		if !t.Active {
			return t, nil
		}
		var cmd tea.Cmd
		t.spinner, cmd = t.spinner.Update(msg)
		return t, cmd
	}
	return t, nil
}

// View implements module.Widget.
func (t *Tuner) View(width, height int) string {
	action := "[t] Activate Tuner"
	hint := ""
	if t.Active {
		action = "[t] Deactivate"
		hint = t.spinner.View() + " Turn tuning peg ↑\n"
	}
	return fit(accent.Render(t.Note)+"\n"+hint+"\n"+muted.Render(action), width, height)
}

var chordShapes = []struct{ name, frets string }{
	{"C", "x32010"},
	{"G", "320003"},
	{"D", "xx0232"},
	{"Am", "x02210"},
	{"Em", "022000"},
	{"F", "133211"},
}

// Chords is a small chord library browsed with [ and ].
type Chords struct {
	Index int
}

// Ensure Chords implements module.Widget.
var _ module.Widget = (*Chords)(nil)

// NewChords opens on the first chord.
func NewChords() *Chords { return &Chords{} }

// Init implements module.Widget.
func (c *Chords) Init() tea.Cmd { return nil }

// Update implements module.Widget.
func (c *Chords) Update(msg tea.Msg) (module.Widget, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "[":
			c.Index = (c.Index + len(chordShapes) - 1) % len(chordShapes)
		case "]":
			c.Index = (c.Index + 1) % len(chordShapes)
		}
	}
	return c, nil
}

// View implements module.Widget.
func (c *Chords) View(width, height int) string {
	ch := chordShapes[c.Index]
	body := "Chord library content...\n\n" + accent.Render(ch.name) + "  " + ch.frets + "\n" + muted.Render("[ ] browse")
	return fitTop(body, width, height)
}

// Journal holds free-form practice notes. i starts editing; while editing
// every key goes to the editor until esc.
type Journal struct {
	editor  textarea.Model
	editing bool
}

// Ensure Journal implements module.Widget and Capturer.
var (
	_ module.Widget = (*Journal)(nil)
	_ Capturer      = (*Journal)(nil)
)

// NewJournal returns an empty journal.
func NewJournal() *Journal {
	ta := textarea.New()
	ta.Placeholder = "Practice journal entries..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	return &Journal{editor: ta}
}

// Init implements module.Widget.
func (j *Journal) Init() tea.Cmd { return nil }

// Capturing implements Capturer.
func (j *Journal) Capturing() bool { return j.editing }

// Text returns the journal contents.
func (j *Journal) Text() string { return j.editor.Value() }

// Update implements module.Widget.
func (j *Journal) Update(msg tea.Msg) (module.Widget, tea.Cmd) {
	k, isKey := msg.(tea.KeyMsg)
	if !j.editing {
		if isKey && k.String() == "i" {
			j.editing = true
			return j, j.editor.Focus()
		}
		return j, nil
	}
	if isKey && k.String() == "esc" {
		j.editing = false
		j.editor.Blur()
		return j, nil
	}
	var cmd tea.Cmd
	j.editor, cmd = j.editor.Update(msg)
	return j, cmd
}

// View implements module.Widget.
func (j *Journal) View(width, height int) string {
	j.editor.SetWidth(max(width, 1))
	j.editor.SetHeight(max(height-1, 1))
	hint := "[i] write"
	if j.editing {
		hint = "esc: done"
	}
	return fitTop(j.editor.View()+"\n"+muted.Render(hint), width, height)
}

var regimenSteps = []string{
	"Warm-up: chromatic runs",
	"Scales: current key",
	"Chord changes",
	"Repertoire",
	"Cool-down: free play",
}

// Regimen lists the steps of a practice routine; n marks the current step done.
type Regimen struct {
	Step int
}

// Ensure Regimen implements module.Widget.
var _ module.Widget = (*Regimen)(nil)

// NewRegimen starts at the first step.
func NewRegimen() *Regimen { return &Regimen{} }

// Init implements module.Widget.
func (r *Regimen) Init() tea.Cmd { return nil }

// Update implements module.Widget.
func (r *Regimen) Update(msg tea.Msg) (module.Widget, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "n":
			if r.Step < len(regimenSteps) {
				r.Step++
			}
		case "0":
			r.Step = 0
		}
	}
	return r, nil
}

// View implements module.Widget.
func (r *Regimen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("Practice routine timer...\n")
	for i, s := range regimenSteps {
		switch {
		case i < r.Step:
			b.WriteString(muted.Render("✓ "+s) + "\n")
		case i == r.Step:
			b.WriteString(picked.Render("▸ "+s) + "\n")
		default:
			b.WriteString("  " + s + "\n")
		}
	}
	b.WriteString(muted.Render("[n] next  [0] restart"))
	return fitTop(b.String(), width, height)
}
