package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"practicestudio/internal/module"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestNewRegistry_CoversCatalog(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	names := map[module.Kind]string{
		module.Metronome: "Metronome",
		module.Scales:    "Key/Scale Guide",
		module.Timer:     "Timer",
		module.Tuner:     "Tuner",
		module.Chords:    "Chord Book",
		module.Journal:   "Practice Journal",
		module.Regimen:   "Practice Regimen",
	}
	for _, k := range module.Kinds() {
		assert.Equal(t, names[k], reg.Descriptor(k).DisplayName)
		w := reg.Render(k)()
		require.NotNil(t, w)
		assert.NotEmpty(t, w.View(30, 8), "kind %s", k)
	}
}

func TestRender_FreshStatePerInstance(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	a := reg.Render(module.Metronome)().(*Metronome)
	b := reg.Render(module.Metronome)().(*Metronome)
	a.Update(keyMsg("+"))
	assert.Equal(t, DefaultBPM+5, a.BPM)
	assert.Equal(t, DefaultBPM, b.BPM)
}

func TestMetronome_TempoBounds(t *testing.T) {
	m := NewMetronome()
	for range 50 {
		m.Update(keyMsg("+"))
	}
	assert.Equal(t, MaxBPM, m.BPM)
	for range 50 {
		m.Update(keyMsg("-"))
	}
	assert.Equal(t, MinBPM, m.BPM)
	m.Update(keyMsg(">"))
	assert.Equal(t, MinBPM+1, m.BPM)
	m.Update(keyMsg("<"))
	assert.Equal(t, MinBPM, m.BPM)
}

func TestMetronome_BeatsOnlyWhilePlaying(t *testing.T) {
	m := NewMetronome()
	_, cmd := m.Update(keyMsg("p"))
	require.True(t, m.Playing)
	require.NotNil(t, cmd)

	m.Update(beatMsg{id: m.id, seq: m.seq})
	assert.Equal(t, 1, m.Beat)

	// Ticks for another metronome or a stale schedule are ignored.
	m.Update(beatMsg{id: m.id + 1000, seq: m.seq})
	m.Update(beatMsg{id: m.id, seq: m.seq - 1})
	assert.Equal(t, 1, m.Beat)

	_, cmd = m.Update(keyMsg("p"))
	assert.False(t, m.Playing)
	assert.Nil(t, cmd)
	_, cmd = m.Update(beatMsg{id: m.id, seq: m.seq})
	assert.Nil(t, cmd)
}

func TestMetronome_View(t *testing.T) {
	m := NewMetronome()
	out := m.View(30, 8)
	assert.Contains(t, out, "120 BPM")
	assert.Contains(t, out, "Start")
	assert.LessOrEqual(t, lipgloss.Width(out), 30)
	assert.LessOrEqual(t, lipgloss.Height(out), 8)
}

func TestTimer_StartPauseReset(t *testing.T) {
	tm := NewTimer()
	assert.Contains(t, tm.View(30, 5), "25:00")
	assert.False(t, tm.Running())

	_, cmd := tm.Update(keyMsg("s"))
	assert.NotNil(t, cmd)
	assert.True(t, tm.Running())

	tm.Update(keyMsg("0"))
	assert.False(t, tm.Running())
	assert.Equal(t, DefaultSession, tm.Remaining())
}

func TestScales_Tabs(t *testing.T) {
	s := NewScales()
	assert.Contains(t, s.View(40, 6), "Major scales content")
	s.Update(keyMsg("]"))
	assert.Contains(t, s.View(40, 6), "Minor scales content")
	s.Update(keyMsg("]"))
	assert.Equal(t, 0, s.Tab)
	s.Update(keyMsg("["))
	assert.Equal(t, 1, s.Tab)
}

func TestJournal_CapturesWhileEditing(t *testing.T) {
	j := NewJournal()
	assert.False(t, j.Capturing())

	j.Update(keyMsg("i"))
	assert.True(t, j.Capturing())
	for _, r := range "scales 20m" {
		j.Update(keyMsg(string(r)))
	}
	assert.Equal(t, "scales 20m", j.Text())

	j.Update(keyMsg("esc"))
	assert.False(t, j.Capturing())
	j.Update(keyMsg("x"))
	assert.Equal(t, "scales 20m", j.Text())
}

func TestTunerChordsRegimen(t *testing.T) {
	tu := NewTuner()
	_, cmd := tu.Update(keyMsg("t"))
	assert.True(t, tu.Active)
	assert.NotNil(t, cmd, "activating starts the spinner")
	assert.Contains(t, tu.View(30, 6), "Turn tuning peg")

	_, cmd = tu.Update(keyMsg("t"))
	assert.False(t, tu.Active)
	assert.Nil(t, cmd)
	_, cmd = tu.Update(spinner.TickMsg{})
	assert.Nil(t, cmd, "an inactive tuner drops spinner ticks")

	c := NewChords()
	c.Update(keyMsg("["))
	assert.Equal(t, len(chordShapes)-1, c.Index)

	r := NewRegimen()
	for range len(regimenSteps) + 3 {
		r.Update(keyMsg("n"))
	}
	assert.Equal(t, len(regimenSteps), r.Step)
	assert.Equal(t, len(regimenSteps), strings.Count(r.View(40, 10), "✓"))
}

func TestFit_ZeroSize(t *testing.T) {
	assert.Empty(t, fit("x", 0, 3))
	assert.Empty(t, fitTop("x", 3, 0))
}
