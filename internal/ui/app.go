package ui

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ultracontrol/ultractl/internal/dispatch"
	"github.com/ultracontrol/ultractl/internal/settings"
	"github.com/ultracontrol/ultractl/internal/tabs"
)

// Services bundles the controllers the tabs consume.
type Services struct {
	Wifi      WifiService
	Volume    VolumeService
	Power     PowerService
	Bluetooth BluetoothService
	Display   DisplayService
}

// Options configures the panel.
type Options struct {
	// Initial is the startup tab selector, "" for none.
	Initial tabs.ID
	// Minimal hides the tab bar.
	Minimal bool
	Settings *settings.Settings
	Logger   *zap.Logger
}

// inputCapturer is implemented by tab models that consume raw text (the
// Wi-Fi password prompt); global single-key bindings step aside for them.
type inputCapturer interface {
	capturingInput() bool
}

// App is the root model. It owns the tab bar, implements tabs.Bar for
// the lazy loader, and bridges control-endpoint commands onto the update
// loop.
type App struct {
	svcs Services
	opts Options

	registry *tabs.Registry
	loader   *tabs.Loader
	queue    dispatch.Queue
	logger   *zap.Logger

	slots   []*tabView
	order   []tabs.ID
	current int

	width   int
	height  int
	started bool

	// pendingCmds collects Init commands from models constructed inside
	// loader callbacks, which cannot return tea.Cmd themselves.
	pendingCmds []tea.Cmd

	wantQuit bool
	restart  bool
}

// NewApp builds the panel model. The queue must be the one the program's
// Send is attached to (see NewAppProgram).
func NewApp(svcs Services, opts Options, queue dispatch.Queue) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &App{
		svcs:   svcs,
		opts:   opts,
		queue:  queue,
		logger: logger,
	}

	app.registry = tabs.NewRegistry(false)
	app.order = tabs.PlanTabs(opts.Settings.TabOrder(), opts.Settings.TabEnabled, opts.Initial)
	app.slots = make([]*tabView, len(app.order))
	for i, id := range app.order {
		v := newTabView(placeholderModel{})
		app.slots[i] = v
		if err := app.registry.Insert(id, i, v); err != nil {
			logger.Warn("tab registration failed", zap.String("tab", string(id)), zap.Error(err))
		}
	}

	app.loader = tabs.NewLoader(app.registry, app, queue,
		app.buildTab, app.buildLoading, tabs.NewAnimator(queue), logger)
	if opts.Initial != "" {
		app.loader.SetInitial(opts.Initial)
	}
	// A failed construction leaves the loading indicator in place; feed it
	// the error so it renders the failure instead of spinning forever.
	app.loader.SetCompletion(func(id tabs.ID, err error) {
		if err == nil {
			return
		}
		if rec, ok := app.registry.FindByID(id); ok {
			if tv, ok := rec.View.(*tabView); ok {
				if lm, ok := tv.model.(*loadingModel); ok {
					lm.err = err.Error()
				}
			}
		}
	})
	return app
}

// NewAppProgram wires an App and its Program together: the program queue
// forwards dispatched callbacks through Program.Send.
func NewAppProgram(svcs Services, opts Options) (*App, *tea.Program) {
	var (
		mu   sync.Mutex
		prog *tea.Program
	)
	queue := NewProgramQueue(func(msg tea.Msg) {
		mu.Lock()
		p := prog
		mu.Unlock()
		if p != nil {
			p.Send(msg)
		}
	})

	app := NewApp(svcs, opts, queue)
	p := tea.NewProgram(app, tea.WithAltScreen())
	mu.Lock()
	prog = p
	mu.Unlock()
	return app, p
}

// buildTab is the loader's content factory.
func (a *App) buildTab(id tabs.ID) (tabs.View, error) {
	var model tea.Model
	switch id {
	case tabs.Volume:
		model = newVolumeModel(a.svcs.Volume)
	case tabs.Wifi:
		model = newWifiModel(a.svcs.Wifi)
	case tabs.Bluetooth:
		model = newBluetoothModel(a.svcs.Bluetooth)
	case tabs.Display:
		model = newDisplayModel(a.svcs.Display)
	case tabs.Power:
		model = newPowerModel(a.svcs.Power)
	default:
		return nil, fmt.Errorf("no content for tab %q", id)
	}
	a.pendingCmds = append(a.pendingCmds, model.Init())
	return newTabView(model), nil
}

// buildLoading is the loader's loading-indicator factory.
func (a *App) buildLoading(id tabs.ID) tabs.View {
	model := newLoadingModel(id)
	a.pendingCmds = append(a.pendingCmds, model.Init())
	return newTabView(model)
}

// Replace implements tabs.Bar.
func (a *App) Replace(position int, v tabs.View) int {
	tv, ok := v.(*tabView)
	if !ok || position < 0 || position >= len(a.slots) {
		return position
	}
	a.slots[position].invalidate()
	a.slots[position] = tv
	return position
}

// SetCurrent implements tabs.Bar.
func (a *App) SetCurrent(position int) {
	if position >= 0 && position < len(a.slots) {
		a.current = position
	}
}

// Current implements tabs.Bar.
func (a *App) Current() int {
	return a.current
}

// Queue returns the app's dispatch queue, for controllers that marshal
// callbacks onto the update loop.
func (a *App) Queue() dispatch.Queue {
	return a.queue
}

// SetWifi installs the Wi-Fi service. The controller needs the app's
// queue at construction, so it is wired after NewApp; tab content loads
// lazily, well after this runs.
func (a *App) SetWifi(svc WifiService) {
	a.svcs.Wifi = svc
}

// Dispatch marshals fn onto the update loop. Safe from any goroutine.
func (a *App) Dispatch(fn func()) {
	a.queue.Dispatch(fn)
}

// CurrentTab returns the id of the visible tab.
func (a *App) CurrentTab() tabs.ID {
	if a.current >= 0 && a.current < len(a.order) {
		return a.order[a.current]
	}
	return ""
}

// RequestSwitch handles a switch-tab command from the control endpoint.
// Must be called on the update loop (it is dispatched via the queue).
func (a *App) RequestSwitch(id tabs.ID) error {
	return a.loader.SwitchTo(id)
}

// RequestRestart makes the panel exit with the restart code so its
// launcher reloads changed settings.
func (a *App) RequestRestart() {
	a.restart = true
	a.wantQuit = true
}

// Restart reports whether the panel exited to apply a settings change.
func (a *App) Restart() bool {
	return a.restart
}

func (a *App) Init() tea.Cmd {
	return func() tea.Msg {
		return invokeMsg{fn: func() {
			a.started = true
			a.loader.Start()
		}}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case invokeMsg:
		msg.fn()
		return a, a.drainPending()

	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case tea.KeyMsg:
		return a.updateKeys(msg)
	}

	// Everything else (spinner ticks, refresh results) goes to every live
	// slot; models ignore messages that are not theirs.
	var cmds []tea.Cmd
	for _, slot := range a.slots {
		if cmd := slot.update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, a.drainPending())
	return a, tea.Batch(cmds...)
}

func (a *App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	capturing := false
	if slot := a.currentSlot(); slot != nil {
		if c, ok := slot.model.(inputCapturer); ok {
			capturing = c.capturingInput()
		}
	}

	if !capturing {
		switch key := msg.String(); key {
		case "q":
			return a, tea.Quit
		case "tab":
			a.loader.Navigate((a.current + 1) % len(a.slots))
			return a, a.drainPending()
		case "shift+tab":
			a.loader.Navigate((a.current - 1 + len(a.slots)) % len(a.slots))
			return a, a.drainPending()
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				idx := int(key[0] - '1')
				if idx < len(a.slots) {
					a.loader.Navigate(idx)
				}
				return a, a.drainPending()
			}
		}
	}

	var cmd tea.Cmd
	if slot := a.currentSlot(); slot != nil {
		cmd = slot.update(msg)
	}
	return a, tea.Batch(cmd, a.drainPending())
}

// drainPending flushes Init commands collected during loader callbacks
// and folds in a quit request raised by a control command.
func (a *App) drainPending() tea.Cmd {
	cmds := a.pendingCmds
	a.pendingCmds = nil
	if a.wantQuit {
		a.wantQuit = false
		cmds = append(cmds, tea.Quit)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (a *App) currentSlot() *tabView {
	if a.current < 0 || a.current >= len(a.slots) {
		return nil
	}
	return a.slots[a.current]
}

func (a *App) View() string {
	var sections []string

	if !a.opts.Minimal {
		sections = append(sections, a.renderTabBar())
	}

	content := ""
	if slot := a.currentSlot(); slot != nil {
		content = slot.render()
	}
	sections = append(sections, PanelStyle.Render(content))
	sections = append(sections, HelpStyle.Render("tab/shift+tab or 1-"+
		fmt.Sprint(len(a.slots))+" switch · q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) renderTabBar() string {
	var cells []string
	for i, id := range a.order {
		label := strings.ToUpper(string(id)[:1]) + string(id)[1:]
		if i == a.current {
			cells = append(cells, TabActiveStyle.Render(label))
		} else {
			cells = append(cells, TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
