package widgets

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"

	"practicestudio/internal/module"
)

// DefaultSession is the length of one practice session on the timer.
const DefaultSession = 25 * time.Minute

// Timer is a countdown for a practice session. Keys: s starts and pauses,
// 0 resets.
type Timer struct {
	timer   timer.Model
	started bool
}

// Ensure Timer implements module.Widget.
var _ module.Widget = (*Timer)(nil)

// NewTimer returns a timer set to DefaultSession, not yet running.
func NewTimer() *Timer {
	return &Timer{timer: timer.NewWithInterval(DefaultSession, time.Second)}
}

// Init implements module.Widget.
func (t *Timer) Init() tea.Cmd {
	return nil
}

// Remaining returns the time left in the session.
func (t *Timer) Remaining() time.Duration {
	return t.timer.Timeout
}

// Running reports whether the countdown is ticking.
func (t *Timer) Running() bool {
	return t.started && t.timer.Running()
}

// Update implements module.Widget.
func (t *Timer) Update(msg tea.Msg) (module.Widget, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "s":
			if !t.started {
				// The bubbles timer is born running; its first tick starts it.
				t.started = true
				return t, t.timer.Init()
			}
			return t, t.timer.Toggle()
		case "0":
			t.timer = timer.NewWithInterval(DefaultSession, time.Second)
			t.started = false
			return t, nil
		}
		return t, nil
	}
	if !t.started {
		return t, nil
	}
	var cmd tea.Cmd
	t.timer, cmd = t.timer.Update(msg)
	return t, cmd
}

// View implements module.Widget.
func (t *Timer) View(width, height int) string {
	left := t.timer.Timeout.Round(time.Second)
	clock := fmt.Sprintf("%02d:%02d", int(left.Minutes()), int(left.Seconds())%60)
	action := "[s] Start Timer"
	switch {
	case t.timer.Timedout():
		action = "Done! [0] reset"
	case t.Running():
		action = "[s] Pause"
	}
	return fit(accent.Render(clock)+"\n\n"+muted.Render(action), width, height)
}
