package ui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"practicestudio/internal/grid"
	"practicestudio/internal/layout"
	"practicestudio/internal/module"
	"practicestudio/internal/widgets"
)

// Config wires the dashboard to its collaborators.
type Config struct {
	Store         *layout.Store
	Registry      *module.Registry
	Breakpoints   grid.Breakpoints // zero value means grid.Default()
	CellWidthPx   int              // pixels per terminal cell, default 8
	RowHeight     int              // terminal lines per grid row, default 4
	ConfirmRemove bool
	Logger        *zap.Logger
	// OnFrame is called with every new frame, e.g. to publish it to the
	// status server.
	OnFrame func(grid.Frame)
}

// draft is the uncommitted geometry of a move or resize.
type draft struct {
	id   string
	geom layout.Geometry
}

// App is the root model: the grid of module cards, the catalog bar and
// the modals on top.
type App struct {
	Mode          AppMode
	KeyHandler    *KeyHandler
	Overlays      OverlayStack
	Focus         FocusManager
	Status        string
	StatusIsError bool

	store         *layout.Store
	registry      *module.Registry
	bps           grid.Breakpoints
	cellWidthPx   int
	rowHeight     int
	confirmRemove bool
	log           *zap.Logger
	onFrame       func(grid.Frame)

	widgets map[string]module.Widget
	width   int
	height  int
	frame   grid.Frame
	draft   *draft
}

// Ensure App can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps App to implement tea.Model.
type appModelAdapter struct {
	*App
}

// NewApp creates the root model. Widgets are created for the instances
// already in the store, and the store is given one layout pass.
func NewApp(cfg Config) (*App, error) {
	if cfg.Store == nil {
		return nil, errors.New("ui: nil store")
	}
	if cfg.Registry == nil {
		return nil, errors.New("ui: nil registry")
	}
	if len(cfg.Breakpoints.List()) == 0 {
		cfg.Breakpoints = grid.Default()
	}
	if cfg.CellWidthPx <= 0 {
		cfg.CellWidthPx = 8
	}
	if cfg.RowHeight <= 0 {
		cfg.RowHeight = 4
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	a := &App{
		Mode:          ModeBrowse,
		store:         cfg.Store,
		registry:      cfg.Registry,
		bps:           cfg.Breakpoints,
		cellWidthPx:   cfg.CellWidthPx,
		rowHeight:     cfg.RowHeight,
		confirmRemove: cfg.ConfirmRemove,
		log:           cfg.Logger.Named("ui"),
		onFrame:       cfg.OnFrame,
		widgets:       make(map[string]module.Widget),
	}
	a.KeyHandler = NewKeyHandler(a.newKeybindRegistry())
	for _, inst := range a.store.List() {
		a.widgets[inst.ID] = a.registry.Render(inst.Kind)()
	}
	if err := a.settle(); err != nil {
		return nil, err
	}
	if len(a.Focus.Order) > 0 {
		a.Focus.SetFocus(a.Focus.Order[0])
	}
	return a, nil
}

func (a *App) newKeybindRegistry() *KeybindRegistry {
	reg := NewKeybindRegistry()
	send := func(msg tea.Msg) tea.Cmd { return func() tea.Msg { return msg } }
	browse := []AppMode{ModeBrowse}
	editing := []AppMode{ModeMove, ModeResize}

	reg.BindWithDesc("ctrl+c", tea.Quit, "Quit")
	reg.BindWithDescForMode("q", tea.Quit, "Quit", browse)
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")

	reg.BindWithDescForMode("tab", send(FocusNextMsg{}), "Next module", browse)
	reg.BindWithDescForMode("shift+tab", send(FocusPrevMsg{}), "Previous module", browse)
	reg.BindWithDescForMode("a", send(ShowCatalogMsg{}), "Add module", browse)
	reg.BindWithDescForMode("x", send(ShowRemoveModuleMsg{}), "Remove module", browse)
	reg.BindWithDescForMode("d", send(ShowRemoveModuleMsg{}), "Remove module", browse)
	reg.BindWithDescForMode("m", send(StartMoveMsg{}), "Move module", browse)
	reg.BindWithDescForMode("r", send(StartResizeMsg{}), "Resize module", browse)
	reg.BindWithDescForMode("enter", send(CommitDraftMsg{}), "Apply", editing)

	reg.Submenu("a", "Add module")
	reg.Submenu("l", "Layout")
	reg.BindWithDescForMode("SPC a a", send(ShowCatalogMsg{}), "Catalog", browse)
	for i, d := range a.registry.Descriptors() {
		reg.BindWithDescForMode("SPC a "+strconv.Itoa(i+1), send(AddModuleMsg{Kind: d.Kind}), d.DisplayName, browse)
	}
	reg.BindWithDescForMode("SPC x", send(ShowRemoveModuleMsg{}), "Remove module", browse)
	reg.BindWithDescForMode("SPC l m", send(StartMoveMsg{}), "Move", browse)
	reg.BindWithDescForMode("SPC l r", send(StartResizeMsg{}), "Resize", browse)
	reg.BindWithDescForMode("SPC l c", send(CompactLayoutMsg{}), "Compact", browse)
	return reg
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.widgets))
	for _, inst := range a.store.List() {
		if w, ok := a.widgets[inst.ID]; ok {
			cmds = append(cmds, w.Init())
		}
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if err := a.settle(); err != nil {
			a.setError(err)
		}
		if a.draft != nil {
			a.draft.geom = grid.Clamp(a.draft.geom, a.frame.Breakpoint.Columns)
		}
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(msg)
	case AddModuleMsg:
		return a.handleAddModule(msg)
	case RemoveModuleMsg:
		return a.handleRemoveModule(msg)
	case ShowCatalogMsg:
		return a.handleShowCatalog()
	case ShowRemoveModuleMsg:
		return a.handleShowRemoveModule()
	case FocusNextMsg:
		a.Focus.Next()
		return a, nil
	case FocusPrevMsg:
		a.Focus.Prev()
		return a, nil
	case StartMoveMsg:
		return a.handleStartDraft(ModeMove)
	case StartResizeMsg:
		return a.handleStartDraft(ModeResize)
	case CommitDraftMsg:
		return a.handleCommitDraft()
	case CancelDraftMsg:
		a.cancelDraft()
		return a, nil
	case CompactLayoutMsg:
		if err := a.settle(); err != nil {
			a.setError(err)
		}
		return a, nil
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	}
	return a, a.broadcast(msg)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var b strings.Builder
	b.WriteString(a.headerView())
	b.WriteString("\n")
	b.WriteString(renderCatalogBar(a.registry.Descriptors(), a.width))
	b.WriteString("\n\n")
	b.WriteString(a.gridView())
	if status := a.statusView(); status != "" {
		b.WriteString("\n" + status)
	}
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		b.WriteString("\n" + RenderKeybindHelp(a.KeyHandler))
	}
	base := b.String()

	if top, ok := a.Overlays.Peek(); ok {
		w, h := a.width, a.height
		if w <= 0 || h <= 0 {
			return base + "\n" + top.View()
		}
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, top.View())
	}
	return base
}

func (a *App) headerView() string {
	bp := a.frame.Breakpoint
	header := Styles.Title.Render("Practice Studio") + "  " +
		Styles.Muted.Render(fmt.Sprintf("%s · %d cols · %d modules", bp.Name, bp.Columns, a.store.Len()))
	switch a.Mode {
	case ModeMove:
		header += "  " + Styles.Details.Render("MOVE  arrows/hjkl: move  enter: apply  esc: cancel")
	case ModeResize:
		header += "  " + Styles.Details.Render("RESIZE  arrows/hjkl: resize  enter: apply  esc: cancel")
	default:
		header += "  " + Styles.Hint.Render("Press [SPC] for commands")
	}
	return header
}

func (a *App) gridView() string {
	frame := a.frame
	if a.draft != nil {
		frame.Placements = a.previewDraft()
	}
	metrics := newGridMetrics(a.width, frame.Breakpoint.Columns, a.rowHeight)
	return renderGrid(frame, metrics, func(p grid.Placement, w, h int) string {
		state := cardIdle
		switch {
		case a.draft != nil && p.ID == a.draft.id:
			state = cardDraft
		case p.ID == a.Focus.Current:
			state = cardFocused
		}
		return renderCard(a.registry.Descriptor(p.Kind), p.ID, a.widgets[p.ID], w, h, state)
	})
}

func (a *App) statusView() string {
	if a.Status == "" {
		return ""
	}
	if a.StatusIsError {
		return Styles.Error.Render(a.Status)
	}
	return Styles.Status.Render(a.Status)
}

// Frame returns the current layout frame.
func (a *App) Frame() grid.Frame {
	return a.frame
}

// Widget returns the live widget for instance id.
func (a *App) Widget(id string) (module.Widget, bool) {
	w, ok := a.widgets[id]
	return w, ok
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *App) AsTeaModel() tea.Model {
	return &appModelAdapter{App: a}
}

// settle runs the layout pass: project the collection at the primary
// breakpoint and reconcile the placements back into the store. It then
// recomputes the frame for the current terminal width.
func (a *App) settle() error {
	current := a.store.List()
	placements := grid.Project(current, a.bps.Primary().Columns)
	next := layout.Reconcile(current, grid.Updates(placements))
	if !slices.Equal(current, next) {
		if err := a.store.Replace(next); err != nil {
			return fmt.Errorf("layout pass: %w", err)
		}
	}
	a.refreshFrame()
	return nil
}

func (a *App) refreshFrame() {
	instances := a.store.List()
	a.frame = grid.Layout(instances, a.bps, grid.ViewportPx(a.width, a.cellWidthPx))
	ids := make([]string, len(instances))
	for i, inst := range instances {
		ids[i] = inst.ID
	}
	a.Focus.SetOrder(ids)
	if a.onFrame != nil {
		a.onFrame(a.frame)
	}
}

// broadcast hands a non-key message to every widget; each ignores what is
// not addressed to it.
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, inst := range a.store.List() {
		w, ok := a.widgets[inst.ID]
		if !ok {
			continue
		}
		next, cmd := w.Update(msg)
		a.widgets[inst.ID] = next
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (a *App) focusedWidget() (module.Widget, bool) {
	if a.Focus.Current == "" {
		return nil, false
	}
	w, ok := a.widgets[a.Focus.Current]
	return w, ok
}

func (a *App) setStatus(format string, args ...any) {
	a.Status = fmt.Sprintf(format, args...)
	a.StatusIsError = false
}

func (a *App) setError(err error) {
	a.Status = err.Error()
	a.StatusIsError = true
	a.log.Warn("operation failed", zap.Error(err))
}

// capturing reports whether the focused widget wants every key.
func (a *App) capturing() bool {
	w, ok := a.focusedWidget()
	if !ok {
		return false
	}
	c, ok := w.(widgets.Capturer)
	return ok && c.Capturing()
}
