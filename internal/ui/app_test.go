package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"practicestudio/internal/grid"
	"practicestudio/internal/layout"
	"practicestudio/internal/module"
	"practicestudio/internal/widgets"
)

// newTestApp builds an app over the starter layout in a 160x50 terminal
// (1280px at 8px per cell, the "lg" breakpoint).
func newTestApp(t *testing.T, confirmRemove bool) (*App, tea.Model) {
	t.Helper()
	reg, err := widgets.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	store, err := layout.NewStore(layout.WithInstances(layout.DefaultStarter()))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	app, err := NewApp(Config{Store: store, Registry: reg, ConfirmRemove: confirmRemove})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	m := app.AsTeaModel()
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	return app, m
}

// press sends keys without running the commands they return.
func press(m tea.Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(keyMsg(k))
	}
	return cmd
}

// follow runs cmd and feeds app messages back into m. Widget commands
// (ticks, cursor blinks) are not run.
func follow(m tea.Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case AddModuleMsg, RemoveModuleMsg, ShowCatalogMsg, ShowRemoveModuleMsg,
		FocusNextMsg, FocusPrevMsg, StartMoveMsg, StartResizeMsg,
		CommitDraftMsg, CancelDraftMsg, CompactLayoutMsg, DismissModalMsg:
		_, next := m.Update(msg)
		if _, isAdd := msg.(AddModuleMsg); !isAdd {
			follow(m, next)
		}
	}
}

func geometries(instances []layout.Instance) map[string]layout.Geometry {
	out := make(map[string]layout.Geometry, len(instances))
	for _, inst := range instances {
		out[inst.ID] = inst.Geometry
	}
	return out
}

func TestNewApp_RequiresCollaborators(t *testing.T) {
	reg, _ := widgets.NewRegistry()
	store, _ := layout.NewStore()
	if _, err := NewApp(Config{Registry: reg}); err == nil {
		t.Error("expected error without store")
	}
	if _, err := NewApp(Config{Store: store}); err == nil {
		t.Error("expected error without registry")
	}
}

func TestApp_StarterLayout(t *testing.T) {
	app, _ := newTestApp(t, false)

	frame := app.Frame()
	if frame.Breakpoint.Name != "lg" || frame.Breakpoint.Columns != 4 {
		t.Fatalf("breakpoint = %+v, want lg/4", frame.Breakpoint)
	}
	want := []grid.Placement{
		{ID: "metronome1", Kind: module.Metronome, Geometry: layout.Geometry{X: 0, Y: 0, W: 2, H: 3}},
		{ID: "scales1", Kind: module.Scales, Geometry: layout.Geometry{X: 2, Y: 0, W: 2, H: 3}},
	}
	if diff := cmp.Diff(want, frame.Placements); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
	if app.Focus.Current != "metronome1" {
		t.Errorf("focus = %q, want metronome1", app.Focus.Current)
	}
	for _, id := range []string{"metronome1", "scales1"} {
		if _, ok := app.Widget(id); !ok {
			t.Errorf("no widget for %s", id)
		}
	}
}

func TestApp_AddResolvesSentinelInStore(t *testing.T) {
	app, m := newTestApp(t, false)

	follow(m, press(m, " ", "a", "3"))

	inst, ok := app.store.Get("timer1")
	if !ok {
		t.Fatalf("timer1 not added; store = %v", app.store.List())
	}
	if want := (layout.Geometry{X: 0, Y: 3, W: 2, H: 3}); inst.Geometry != want {
		t.Errorf("stored geometry = %+v, want %+v", inst.Geometry, want)
	}
	if app.Focus.Current != "timer1" {
		t.Errorf("focus = %q, want timer1", app.Focus.Current)
	}
	if _, ok := app.Widget("timer1"); !ok {
		t.Error("no widget for timer1")
	}
	if app.Frame().Rows != 6 {
		t.Errorf("rows = %d, want 6", app.Frame().Rows)
	}
}

func TestApp_CatalogModalAddsSelected(t *testing.T) {
	app, m := newTestApp(t, false)

	follow(m, press(m, "a"))
	if app.Overlays.Len() != 1 {
		t.Fatalf("expected catalog overlay, got %d overlays", app.Overlays.Len())
	}
	top, _ := app.Overlays.Peek()
	if _, ok := top.(*CatalogModal); !ok {
		t.Fatalf("expected CatalogModal on overlay, got %T", top)
	}

	press(m, "down")
	follow(m, press(m, "enter"))

	if app.Overlays.Len() != 0 {
		t.Error("catalog should close after adding")
	}
	if _, ok := app.store.Get("scales2"); !ok {
		t.Errorf("expected scales2 in store, got %v", app.store.List())
	}
}

func TestApp_CatalogModalEscCancels(t *testing.T) {
	app, m := newTestApp(t, false)
	follow(m, press(m, "a"))
	follow(m, press(m, "esc"))
	if app.Overlays.Len() != 0 {
		t.Error("esc should dismiss the catalog")
	}
	if app.store.Len() != 2 {
		t.Errorf("store len = %d, want 2", app.store.Len())
	}
}

func TestApp_RemoveFocused(t *testing.T) {
	app, m := newTestApp(t, false)

	follow(m, press(m, "x"))

	if app.store.Len() != 1 {
		t.Fatalf("store len = %d, want 1", app.store.Len())
	}
	if _, ok := app.Widget("metronome1"); ok {
		t.Error("widget should be dropped with its instance")
	}
	if app.Focus.Current != "scales1" {
		t.Errorf("focus = %q, want scales1", app.Focus.Current)
	}

	// Duplicate remove events are harmless.
	m.Update(RemoveModuleMsg{ID: "metronome1"})
	if app.store.Len() != 1 {
		t.Errorf("store len = %d after duplicate remove", app.store.Len())
	}
}

func TestApp_RemoveWithConfirmation(t *testing.T) {
	app, m := newTestApp(t, true)

	follow(m, press(m, "x"))
	top, ok := app.Overlays.Peek()
	if !ok {
		t.Fatal("expected confirm overlay")
	}
	if _, isConfirm := top.(*ConfirmModal); !isConfirm {
		t.Fatalf("expected ConfirmModal, got %T", top)
	}

	follow(m, press(m, "esc"))
	if app.Overlays.Len() != 0 || app.store.Len() != 2 {
		t.Fatalf("esc: overlays=%d store=%d", app.Overlays.Len(), app.store.Len())
	}

	follow(m, press(m, "x"))
	follow(m, press(m, "y"))
	if app.Overlays.Len() != 0 {
		t.Error("confirm should close after removal")
	}
	if _, ok := app.store.Get("metronome1"); ok {
		t.Error("metronome1 should be removed")
	}
}

func TestApp_MoveCommitReconciles(t *testing.T) {
	app, m := newTestApp(t, false)

	follow(m, press(m, "tab"))
	if app.Focus.Current != "scales1" {
		t.Fatalf("focus = %q, want scales1", app.Focus.Current)
	}
	follow(m, press(m, "m"))
	if app.Mode != ModeMove {
		t.Fatalf("mode = %v, want Move", app.Mode)
	}
	press(m, "h", "left")
	follow(m, press(m, "enter"))

	if app.Mode != ModeBrowse {
		t.Errorf("mode = %v after commit", app.Mode)
	}
	want := map[string]layout.Geometry{
		"metronome1": {X: 0, Y: 3, W: 2, H: 3},
		"scales1":    {X: 0, Y: 0, W: 2, H: 3},
	}
	if diff := cmp.Diff(want, geometries(app.store.List())); diff != "" {
		t.Errorf("stored geometry mismatch (-want +got):\n%s", diff)
	}
	if got := app.store.List()[0].ID; got != "metronome1" {
		t.Errorf("collection order changed: first = %q", got)
	}
}

func TestApp_MoveEscAbandons(t *testing.T) {
	app, m := newTestApp(t, false)

	follow(m, press(m, "m"))
	press(m, "l", "j", "j")
	press(m, "esc")

	if app.Mode != ModeBrowse {
		t.Errorf("mode = %v after esc", app.Mode)
	}
	if diff := cmp.Diff(layout.DefaultStarter(), app.store.List()); diff != "" {
		t.Errorf("abandoned move changed the store (-want +got):\n%s", diff)
	}
}

func TestApp_ResizePushesNeighbourDown(t *testing.T) {
	app, m := newTestApp(t, false)

	follow(m, press(m, "r"))
	press(m, "l", "j")
	follow(m, press(m, "enter"))

	want := map[string]layout.Geometry{
		"metronome1": {X: 0, Y: 0, W: 3, H: 4},
		"scales1":    {X: 2, Y: 4, W: 2, H: 3},
	}
	if diff := cmp.Diff(want, geometries(app.store.List())); diff != "" {
		t.Errorf("stored geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestApp_ResizeClampsToColumns(t *testing.T) {
	app, m := newTestApp(t, false)

	follow(m, press(m, "r"))
	press(m, "l", "l", "l", "l", "h", "h", "h", "h", "h")
	if app.draft.geom.W != 1 {
		t.Errorf("draft width = %d, want 1", app.draft.geom.W)
	}
	press(m, "l", "l", "l", "l", "l")
	if app.draft.geom.W != 4 {
		t.Errorf("draft width = %d, want 4", app.draft.geom.W)
	}
}

func TestApp_ResizeSurvivesWindowShrink(t *testing.T) {
	app, m := newTestApp(t, false)

	follow(m, press(m, "tab"))
	follow(m, press(m, "r"))
	if app.draft == nil || app.draft.id != "scales1" {
		t.Fatalf("expected a resize draft for scales1, got %+v", app.draft)
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 50}) // 800px -> sm, 2 columns
	if got, want := app.draft.geom, (layout.Geometry{X: 0, Y: 0, W: 2, H: 3}); got != want {
		t.Errorf("draft after shrink = %+v, want %+v", got, want)
	}

	press(m, "h")
	if app.draft.geom.W != 1 {
		t.Fatalf("draft width = %d, want 1", app.draft.geom.W)
	}
	follow(m, press(m, "enter"))
	if app.StatusIsError {
		t.Fatalf("commit failed: %s", app.Status)
	}

	want := map[string]layout.Geometry{
		"metronome1": {X: 0, Y: 3, W: 2, H: 3},
		"scales1":    {X: 0, Y: 0, W: 1, H: 3},
	}
	if diff := cmp.Diff(want, geometries(app.store.List())); diff != "" {
		t.Errorf("stored geometry mismatch (-want +got):\n%s", diff)
	}
}

func TestApp_NarrowViewportDerivesWithoutMutating(t *testing.T) {
	app, m := newTestApp(t, false)

	m.Update(tea.WindowSizeMsg{Width: 90, Height: 40}) // 720px -> xs, 1 column

	frame := app.Frame()
	if frame.Breakpoint.Name != "xs" {
		t.Fatalf("breakpoint = %q, want xs", frame.Breakpoint.Name)
	}
	want := []grid.Placement{
		{ID: "metronome1", Kind: module.Metronome, Geometry: layout.Geometry{X: 0, Y: 0, W: 1, H: 3}},
		{ID: "scales1", Kind: module.Scales, Geometry: layout.Geometry{X: 0, Y: 3, W: 1, H: 3}},
	}
	if diff := cmp.Diff(want, frame.Placements); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(layout.DefaultStarter(), app.store.List()); diff != "" {
		t.Errorf("resize changed the store (-want +got):\n%s", diff)
	}
}

func TestApp_KeysGoToFocusedWidget(t *testing.T) {
	app, m := newTestApp(t, false)

	press(m, "+")

	w, _ := app.Widget("metronome1")
	if got := w.(*widgets.Metronome).BPM; got != widgets.DefaultBPM+5 {
		t.Errorf("metronome BPM = %d, want %d", got, widgets.DefaultBPM+5)
	}
}

func TestApp_CapturingWidgetGetsEveryKey(t *testing.T) {
	app, m := newTestApp(t, false)
	m.Update(AddModuleMsg{Kind: module.Journal})
	if app.Focus.Current != "journal1" {
		t.Fatalf("focus = %q, want journal1", app.Focus.Current)
	}

	press(m, "i", "x", "a")
	if app.store.Len() != 3 || app.Overlays.Len() != 0 {
		t.Fatalf("keys leaked to the app: store=%d overlays=%d", app.store.Len(), app.Overlays.Len())
	}
	w, _ := app.Widget("journal1")
	if got := w.(*widgets.Journal).Text(); got != "xa" {
		t.Errorf("journal text = %q, want xa", got)
	}

	press(m, "esc")
	follow(m, press(m, "x"))
	if _, ok := app.store.Get("journal1"); ok {
		t.Error("x should remove the journal once editing ends")
	}
}

func TestApp_OnFramePublishes(t *testing.T) {
	reg, _ := widgets.NewRegistry()
	store, _ := layout.NewStore(layout.WithInstances(layout.DefaultStarter()))
	var frames []grid.Frame
	app, err := NewApp(Config{
		Store:    store,
		Registry: reg,
		OnFrame:  func(f grid.Frame) { frames = append(frames, f) },
	})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	app.AsTeaModel().Update(tea.WindowSizeMsg{Width: 200, Height: 50})

	if len(frames) != 2 {
		t.Fatalf("published %d frames, want 2", len(frames))
	}
	if frames[1].Breakpoint.Name != "lg" {
		t.Errorf("last frame breakpoint = %q, want lg", frames[1].Breakpoint.Name)
	}
}

func TestApp_View(t *testing.T) {
	_, m := newTestApp(t, false)
	view := m.View()

	for _, want := range []string{"Practice Studio", "lg", "metronome1", "scales1", "Key/Scale Guide"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	press(m, " ")
	if view := m.View(); !strings.Contains(view, "Add module") {
		t.Error("leader help should list the Add module submenu")
	}
}

func TestApp_Quit(t *testing.T) {
	_, m := newTestApp(t, false)
	for _, k := range []string{"q", "ctrl+c"} {
		cmd := press(m, k)
		if cmd == nil {
			t.Fatalf("%s: expected quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}
