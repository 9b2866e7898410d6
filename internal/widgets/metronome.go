package widgets

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"practicestudio/internal/module"
)

// Tempo limits of the metronome.
const (
	MinBPM     = 40
	MaxBPM     = 220
	DefaultBPM = 120
	beatsInBar = 4
)

// beatMsg drives a playing metronome. seq invalidates ticks scheduled before
// a stop or a tempo change.
type beatMsg struct {
	id  int
	seq int
}

// Metronome shows a tempo with coarse and fine adjustment and a beat
// indicator while playing. Keys: - and + step by 5, < and > by 1, p toggles.
type Metronome struct {
	id      int
	BPM     int
	Playing bool
	Beat    int
	seq     int
}

// Ensure Metronome implements module.Widget.
var _ module.Widget = (*Metronome)(nil)

// NewMetronome returns a stopped metronome at DefaultBPM.
func NewMetronome() *Metronome {
	return &Metronome{id: nextID(), BPM: DefaultBPM}
}

// Init implements module.Widget.
func (m *Metronome) Init() tea.Cmd {
	return nil
}

// Interval returns the time between beats at the current tempo.
func (m *Metronome) Interval() time.Duration {
	return time.Minute / time.Duration(m.BPM)
}

// SetBPM clamps bpm into range. A running metronome reschedules its beat.
func (m *Metronome) SetBPM(bpm int) tea.Cmd {
	m.BPM = min(max(bpm, MinBPM), MaxBPM)
	if m.Playing {
		m.seq++
		return m.tick()
	}
	return nil
}

// Toggle starts or stops the metronome.
func (m *Metronome) Toggle() tea.Cmd {
	m.Playing = !m.Playing
	m.seq++
	m.Beat = 0
	if m.Playing {
		return m.tick()
	}
	return nil
}

func (m *Metronome) tick() tea.Cmd {
	id, seq := m.id, m.seq
	return tea.Tick(m.Interval(), func(time.Time) tea.Msg {
		return beatMsg{id: id, seq: seq}
	})
}

// Update implements module.Widget.
func (m *Metronome) Update(msg tea.Msg) (module.Widget, tea.Cmd) {
	switch msg := msg.(type) {
	case beatMsg:
		if msg.id != m.id || msg.seq != m.seq || !m.Playing {
			return m, nil
		}
		m.Beat = (m.Beat + 1) % beatsInBar
		return m, m.tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "-":
			return m, m.SetBPM(m.BPM - 5)
		case "+", "=":
			return m, m.SetBPM(m.BPM + 5)
		case "<", ",":
			return m, m.SetBPM(m.BPM - 1)
		case ">", ".":
			return m, m.SetBPM(m.BPM + 1)
		case "p":
			return m, m.Toggle()
		}
	}
	return m, nil
}

// View implements module.Widget.
func (m *Metronome) View(width, height int) string {
	var b strings.Builder
	b.WriteString(accent.Render(fmt.Sprintf("%d BPM", m.BPM)) + "\n")
	b.WriteString(m.slider(max(width-4, 10)) + "\n")
	if m.Playing {
		dots := make([]string, beatsInBar)
		for i := range dots {
			dots[i] = "○"
			if i == m.Beat {
				dots[i] = picked.Render("●")
			}
		}
		b.WriteString(strings.Join(dots, " ") + "\n")
		b.WriteString(danger.Render("[p] Stop"))
	} else {
		b.WriteString("\n" + accent.Render("[p] Start"))
	}
	b.WriteString("\n" + muted.Render("-/+ 5  </> 1"))
	return fit(b.String(), width, height)
}

// slider draws the tempo position within [MinBPM, MaxBPM].
func (m *Metronome) slider(width int) string {
	pos := (m.BPM - MinBPM) * (width - 1) / (MaxBPM - MinBPM)
	return muted.Render(strings.Repeat("─", pos)) + picked.Render("◆") + muted.Render(strings.Repeat("─", width-1-pos))
}
