package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"neoshelf/config"
	"neoshelf/gesture"
	"neoshelf/keys"
	"neoshelf/log"
	"neoshelf/shelf"
	"neoshelf/ui"
	"neoshelf/ui/overlay"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// timerChanSize buffers gesture timer callbacks between the timer
// goroutines and the program loop.
const timerChanSize = 16

// Run is the main entrypoint into the application.
func Run(ctx context.Context) error {
	p := tea.NewProgram(
		newHome(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Mouse press/release on shelf cells
	)
	_, err := p.Run()
	return err
}

type state int

const (
	stateDefault state = iota
	// stateSubmenu is the state when a button's submenu overlay is open.
	stateSubmenu
	// stateManager is the state when the shelf manager overlay is open.
	stateManager
)

// timerMsg carries a gesture timer callback into the program loop so hold
// and double-click timeouts mutate the dispatchers on the loop goroutine.
type timerMsg struct {
	fn func()
}

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	// appConfig stores persistent application configuration
	appConfig *config.Config
	// appState is the locked state file behind the catalogue and triggers
	appState *config.State
	// catalogue holds every shelf and persists edits as they happen
	catalogue *shelf.Catalogue
	// triggerStore persists the trigger map
	triggerStore *gesture.Store

	// -- Gestures --

	// triggers is the live trigger map, re-read by dispatchers per event
	triggers gesture.TriggerMap
	// registry routes pointer events to per-button dispatchers
	registry *gesture.Registry
	// timerCh delivers gesture timer callbacks to the program loop
	timerCh chan func()
	// runner executes button commands
	runner Runner

	// -- State --

	// state is the current discrete state of the application
	state state
	// pressedIdx is the item index of the in-flight left press, -1 if none
	pressedIdx int
	// lastPressIdx and lastPressAt synthesize double-clicks from two left
	// presses on the same cell inside the double-click window
	lastPressIdx int
	lastPressAt  time.Time

	width, height int

	// -- UI Components --

	// shelfView displays the active shelf's button grid
	shelfView *ui.ShelfView
	// menu displays the bottom menu
	menu *ui.Menu
	// errBox displays error messages
	errBox *ui.ErrBox
	// submenuOverlay displays a button's submenu entries
	submenuOverlay *overlay.SubmenuOverlay
	// managerOverlay displays the shelf manager
	managerOverlay *overlay.ManagerOverlay
}

func newHome(ctx context.Context) *home {
	appConfig := config.LoadConfig()
	appState := config.LoadState()

	catalogue, err := shelf.NewCatalogue(appState, appState)
	if err != nil {
		log.ErrorLog.Printf("failed to load shelves: %v", err)
		fmt.Println("Failed to load shelves:", err)
		os.Exit(1)
	}

	store := gesture.NewStore(appState)
	h := &home{
		ctx:          ctx,
		appConfig:    appConfig,
		appState:     appState,
		catalogue:    catalogue,
		triggerStore: store,
		triggers:     store.Load(),
		registry:     gesture.NewRegistry(),
		timerCh:      make(chan func(), timerChanSize),
		runner:       ClipboardRunner{},
		pressedIdx:   -1,
		lastPressIdx: -1,
		shelfView:    ui.NewShelfView(appConfig.ShowLabels),
		menu:         ui.NewMenu(),
		errBox:       &ui.ErrBox{},
	}
	h.rebuild()
	return h
}

func (h *home) Init() tea.Cmd {
	return h.waitForTimer()
}

// waitForTimer re-arms the listener that drains gesture timer callbacks.
func (h *home) waitForTimer() tea.Cmd {
	return func() tea.Msg {
		fn, ok := <-h.timerCh
		if !ok {
			return nil
		}
		return timerMsg{fn: fn}
	}
}

// deliverTimer hands a gesture timer callback to the program loop without
// ever blocking the timer goroutine. Once the program has exited nobody
// drains the channel, so a late expiry is dropped instead; the dispatcher
// generation guards treat a lost expiry like a cancelled timer.
func (h *home) deliverTimer(fn func()) {
	select {
	case h.timerCh <- fn:
	default:
	}
}

func (h *home) holdThreshold() time.Duration {
	return time.Duration(h.appConfig.HoldThresholdMs) * time.Millisecond
}

func (h *home) doubleClickDelay() time.Duration {
	return time.Duration(h.appConfig.DoubleClickDelayMs) * time.Millisecond
}

func buttonKey(idx int) string {
	return fmt.Sprintf("btn-%d", idx)
}

// rebuild refreshes the shelf view and rebinds a dispatcher per button.
// Called on startup and after anything edits the catalogue.
func (h *home) rebuild() {
	active := h.catalogue.ActiveShelf()
	if active == nil {
		if names := h.catalogue.Names(); len(names) > 0 {
			if err := h.catalogue.SetActiveShelf(names[0]); err != nil {
				log.ErrorLog.Printf("failed to set active shelf: %v", err)
			}
			active = h.catalogue.Get(names[0])
		}
	}
	activeName := ""
	if active != nil {
		activeName = active.Name
	}
	h.shelfView.SetShelf(active, h.catalogue.Names(), activeName)

	h.registry.UnbindAll()
	h.pressedIdx = -1
	h.lastPressIdx = -1
	if active == nil {
		return
	}

	factory := gesture.DeliveredFactory(h.deliverTimer)
	triggers := func() gesture.TriggerMap { return h.triggers }
	for i, item := range active.Items {
		btn, ok := item.(*shelf.Button)
		if !ok {
			continue
		}
		h.registry.Bind(buttonKey(i), gesture.NewDispatcher(
			triggers,
			h.callbacksFor(i, btn),
			gesture.WithTimings(h.holdThreshold(), h.doubleClickDelay()),
			gesture.WithTimerFactory(factory),
		))
	}
}

// callbacksFor maps the four logical actions onto one button. Callbacks run
// on the program loop goroutine, so they may mutate the model freely.
func (h *home) callbacksFor(idx int, btn *shelf.Button) gesture.Callbacks {
	return gesture.Callbacks{
		MainCommand: func() {
			h.reportError(h.runner.Run(btn.Command, btn.Kind))
		},
		SecondaryCommand: func() {
			cmd, kind := btn.SecondaryCommand()
			h.reportError(h.runner.Run(cmd, kind))
		},
		OpenManager: func() {
			h.openManager(idx)
		},
		ShowSubmenu: func() {
			h.openSubmenu(btn)
		},
	}
}

func (h *home) reportError(err error) {
	if err == nil {
		return
	}
	log.WarningLog.Printf("%v", err)
	h.errBox.SetError(err)
}

// openManager opens the manager, focused on an item of the active shelf
// when focusItem is non-negative.
func (h *home) openManager(focusItem int) {
	h.state = stateManager
	h.managerOverlay = overlay.NewManagerOverlay(h.catalogue)
	if focusItem >= 0 {
		h.managerOverlay.FocusItem(focusItem)
	}
	h.managerOverlay.SetSize(h.width, h.height)
}

func (h *home) openSubmenu(btn *shelf.Button) {
	title := btn.Name
	if title == "" {
		title = btn.DisplayLabel()
	}
	h.state = stateSubmenu
	h.submenuOverlay = overlay.NewSubmenuOverlay(title, btn.Submenu)
	h.submenuOverlay.OnChoose = func(e *shelf.SubmenuEntry) {
		h.reportError(h.runner.Run(e.Command, e.Kind))
	}
	h.submenuOverlay.SetSize(h.width, h.height)
}

func (h *home) cycleShelf(delta int) {
	names := h.catalogue.Names()
	if len(names) == 0 {
		return
	}
	cur := 0
	if active := h.catalogue.ActiveShelf(); active != nil {
		for i, name := range names {
			if name == active.Name {
				cur = i
				break
			}
		}
	}
	next := (cur + delta + len(names)) % len(names)
	if err := h.catalogue.SetActiveShelf(names[next]); err != nil {
		h.reportError(err)
		return
	}
	h.rebuild()
}

func (h *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width, h.height = msg.Width, msg.Height
		h.shelfView.SetSize(msg.Width, msg.Height-2)
		h.menu.SetSize(msg.Width, 1)
		h.errBox.SetSize(msg.Width, 1)
		if h.managerOverlay != nil {
			h.managerOverlay.SetSize(msg.Width, msg.Height)
		}
		if h.submenuOverlay != nil {
			h.submenuOverlay.SetSize(msg.Width, msg.Height)
		}
		return h, nil
	case timerMsg:
		msg.fn()
		return h, h.waitForTimer()
	case tea.KeyMsg:
		return h.handleKeyPress(msg)
	case tea.MouseMsg:
		return h.handleMouse(msg)
	}
	return h, nil
}

func (h *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h.errBox.Clear()

	switch h.state {
	case stateSubmenu:
		if h.submenuOverlay.HandleKeyPress(msg) {
			h.state = stateDefault
			h.submenuOverlay = nil
		}
		return h, nil
	case stateManager:
		if h.managerOverlay.HandleKeyPress(msg) {
			if h.managerOverlay.Changed {
				h.rebuild()
			}
			h.state = stateDefault
			h.managerOverlay = nil
		}
		return h, nil
	}

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return h, nil
	}
	switch name {
	case keys.KeyQuit:
		return h, tea.Quit
	case keys.KeyLeft:
		h.shelfView.MoveSelection(-1)
	case keys.KeyRight:
		h.shelfView.MoveSelection(1)
	case keys.KeyEnter:
		if btn := h.shelfView.SelectedButton(); btn != nil {
			h.reportError(h.runner.Run(btn.Command, btn.Kind))
		}
	case keys.KeySubmenu:
		if btn := h.shelfView.SelectedButton(); btn != nil {
			h.openSubmenu(btn)
		}
	case keys.KeyManager:
		h.openManager(h.shelfView.Selected())
	case keys.KeyNextShelf:
		h.cycleShelf(1)
	case keys.KeyPrevShelf:
		h.cycleShelf(-1)
	case keys.KeyMoveLeft:
		h.moveSelected(-1)
	case keys.KeyMoveRight:
		h.moveSelected(1)
	case keys.KeyDeleteItem:
		h.deleteSelected()
	case keys.KeyHelp:
		h.menu.SetBindings(
			keys.KeyLeft, keys.KeyRight, keys.KeyEnter, keys.KeySubmenu,
			keys.KeyManager, keys.KeyNextShelf, keys.KeyPrevShelf,
			keys.KeyMoveLeft, keys.KeyMoveRight, keys.KeyDeleteItem,
			keys.KeyQuit,
		)
	}
	return h, nil
}

func (h *home) moveSelected(delta int) {
	active := h.catalogue.ActiveShelf()
	idx := h.shelfView.Selected()
	if active == nil || idx < 0 {
		return
	}
	to := idx + delta
	if to < 0 || to >= len(active.Items) {
		return
	}
	if err := h.catalogue.MoveItem(active.Name, idx, to); err != nil {
		h.reportError(err)
		return
	}
	h.rebuild()
	h.shelfView.SetSelected(to)
}

func (h *home) deleteSelected() {
	active := h.catalogue.ActiveShelf()
	idx := h.shelfView.Selected()
	if active == nil || idx < 0 {
		return
	}
	if err := h.catalogue.RemoveItem(active.Name, idx); err != nil {
		h.reportError(err)
		return
	}
	h.rebuild()
}

// handleMouse turns raw press/release events into gesture dispatcher input.
// Double-clicks are synthesized here: a second left press on the same cell
// inside the double-click window becomes a DoubleClick event instead of a
// fresh Press.
func (h *home) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if h.state != stateDefault {
		return h, nil
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		switch msg.Action {
		case tea.MouseActionPress:
			idx, ok := h.shelfView.HitTest(msg.X, msg.Y)
			if !ok {
				h.shelfView.SetSelected(-1)
				return h, nil
			}
			h.shelfView.SetSelected(idx)
			h.pressedIdx = idx
			now := time.Now()
			if idx == h.lastPressIdx && now.Sub(h.lastPressAt) <= h.doubleClickDelay() {
				h.lastPressIdx = -1
				h.registry.DoubleClick(buttonKey(idx))
				return h, nil
			}
			h.lastPressIdx = idx
			h.lastPressAt = now
			h.registry.Press(buttonKey(idx), msg.Shift)
		case tea.MouseActionRelease:
			if h.pressedIdx >= 0 {
				h.registry.Release(buttonKey(h.pressedIdx))
				h.pressedIdx = -1
			}
		}
	case tea.MouseButtonRight:
		if msg.Action != tea.MouseActionPress {
			return h, nil
		}
		if idx, ok := h.shelfView.HitTest(msg.X, msg.Y); ok {
			h.shelfView.SetSelected(idx)
			h.registry.RightClick(buttonKey(idx))
		}
	}
	return h, nil
}

func (h *home) View() string {
	body := h.shelfView.String()

	var overlayView string
	switch h.state {
	case stateSubmenu:
		if h.submenuOverlay != nil {
			overlayView = h.submenuOverlay.Render()
		}
	case stateManager:
		if h.managerOverlay != nil {
			overlayView = h.managerOverlay.Render()
		}
	}

	status := h.errBox.String()
	if status == "" {
		if btn := h.shelfView.SelectedButton(); btn != nil && btn.Annotation != "" {
			status = ui.StatusText(btn.Annotation, h.width)
		}
	}
	footer := status + "\n" + h.menu.String()
	if overlayView != "" && h.width > 0 && h.height > 0 {
		return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, overlayView)
	}
	if h.height > 2 {
		bodyHeight := h.height - 2
		body = lipgloss.NewStyle().Height(bodyHeight).Render(body)
	}
	return body + "\n" + footer
}
