package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"dropsel/internal/config"
	"dropsel/internal/domain"
	"dropsel/internal/eventbus"
	"dropsel/internal/ui/views"
)

// Options tweak a Model beyond what the config holds
type Options struct {
	// ShowReady prints a marker under the form once the first window size
	// arrives, for the e2e driver
	ShowReady bool
}

// Model is the form: a stack of dropdowns plus global keys
type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	configSvc config.ConfigService
	opts      Options

	dropdowns []Dropdown
	focused   int

	width  int
	height int
	help   help.Model
	keys   KeyMap

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	helpOps      *HelpOps

	status      string
	statusError bool
	statusSeq   int
	ready       bool
	quitting    bool
}

// NewModel creates the form from cfg. configSvc is used for ctrl+r reloads and may be nil.
func NewModel(cfg *config.Config, configSvc config.ConfigService, bus eventbus.EventBus, opts Options) *Model {
	if bus == nil {
		bus = eventbus.NullBus{}
	}

	m := &Model{
		bus:          bus,
		config:       cfg,
		configSvc:    configSvc,
		opts:         opts,
		help:         help.New(),
		keys:         DefaultKeyMap(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		helpOps:      NewHelpOps(nil),
	}

	picker := PickerSettings{
		StartDir:   cfg.UISettings.StartDir,
		ShowHidden: cfg.UISettings.ShowHidden,
	}
	for _, dc := range cfg.Dropdowns {
		m.dropdowns = append(m.dropdowns, NewDropdown(DropdownSpec{
			ID:              dc.ID,
			Title:           dc.Title,
			Options:         dc.Options,
			AllowFileUpload: dc.FileUploadAllowed(),
			PruneStale:      dc.PruneStale,
		}, bus, picker))
	}

	if len(m.dropdowns) > 0 {
		m.dropdowns[0], _ = m.dropdowns[0].FocusFirst()
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.helpOps.SetProgram(p)
}

// Dropdowns returns the form's dropdowns
func (m *Model) Dropdowns() []Dropdown {
	return m.dropdowns
}

// Focused returns the index of the focused dropdown
func (m *Model) Focused() int {
	return m.focused
}

// Quitting reports whether the user asked to quit
func (m *Model) Quitting() bool {
	return m.quitting
}

// Results reports every dropdown's selection and upload name
func (m *Model) Results() []domain.Result {
	out := make([]domain.Result, 0, len(m.dropdowns))
	for _, d := range m.dropdowns {
		out = append(out, d.Result())
	}
	return out
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cmd := m.broadcast(msg)
		if !m.ready {
			m.ready = true
			m.bus.Publish(eventbus.AppReadyEvent{Dropdowns: len(m.dropdowns)})
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("help pager: %v", msg.err)
			return m, m.setStatus(fmt.Sprintf("Help unavailable: %v", msg.err), true)
		}
		return m, nil

	case configReloadedMsg:
		return m, m.applyReload(msg)

	case clearStatusMsg:
		if msg.seq != m.statusSeq {
			return m, nil
		}
		m.status = ""
		m.statusError = false
		return m, nil
	}

	return m, m.broadcast(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}
	if len(m.dropdowns) == 0 {
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	current := m.dropdowns[m.focused]
	if current.CapturesInput() {
		return m, m.updateFocused(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		return m, m.showHelp()

	case key.Matches(msg, m.keys.Reload):
		return m, m.reload()

	case key.Matches(msg, m.keys.NextFocus):
		return m, m.moveFocus(1)

	case key.Matches(msg, m.keys.PrevFocus):
		return m, m.moveFocus(-1)
	}

	return m, m.updateFocused(msg)
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.dropdowns[m.focused], cmd = m.dropdowns[m.focused].Update(msg)
	return cmd
}

// broadcast forwards a non-key message to every dropdown
func (m *Model) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.dropdowns))
	for i := range m.dropdowns {
		var cmd tea.Cmd
		m.dropdowns[i], cmd = m.dropdowns[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// moveFocus walks zones inside the focused dropdown, then on to its neighbour
func (m *Model) moveFocus(dir int) tea.Cmd {
	var (
		cmd tea.Cmd
		ok  bool
	)
	d := m.dropdowns[m.focused]
	if dir > 0 {
		d, cmd, ok = d.NextZone()
	} else {
		d, cmd, ok = d.PrevZone()
	}
	m.dropdowns[m.focused] = d
	if ok {
		return cmd
	}

	m.dropdowns[m.focused] = d.Blur()
	n := len(m.dropdowns)
	m.focused = (m.focused + dir + n) % n
	if dir > 0 {
		m.dropdowns[m.focused], cmd = m.dropdowns[m.focused].FocusFirst()
	} else {
		m.dropdowns[m.focused], cmd = m.dropdowns[m.focused].FocusLast()
	}
	return cmd
}

// showHelp returns a command that shows help using ov pager
func (m *Model) showHelp() tea.Cmd {
	content := m.helpRenderer.RenderHelpContentPlain()
	return func() tea.Msg {
		return helpPagerMsg{err: m.helpOps.ShowHelpInPager(content)}
	}
}

// reload re-reads the config file in the background
func (m *Model) reload() tea.Cmd {
	if m.configSvc == nil {
		return m.setStatus("No config file to reload", true)
	}
	svc := m.configSvc
	return func() tea.Msg {
		cfg, err := svc.Load()
		return configReloadedMsg{cfg: cfg, err: err}
	}
}

// applyReload swaps option sets. Dropdowns are matched by position; titles,
// selections and uploads stay as they are.
func (m *Model) applyReload(msg configReloadedMsg) tea.Cmd {
	if msg.err != nil {
		log.Printf("reload failed: %v", msg.err)
		return m.setStatus(fmt.Sprintf("Reload failed: %v", msg.err), true)
	}

	n := min(len(m.dropdowns), len(msg.cfg.Dropdowns))
	for i := 0; i < n; i++ {
		m.dropdowns[i] = m.dropdowns[i].SetOptions(msg.cfg.Dropdowns[i].Options)
	}
	if len(msg.cfg.Dropdowns) != len(m.dropdowns) {
		log.Printf("reload: config has %d dropdowns, form has %d; extra entries ignored",
			len(msg.cfg.Dropdowns), len(m.dropdowns))
	}
	return m.setStatus("Options reloaded", false)
}

func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.status = text
	m.statusError = isError
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

// View renders the form
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		StatusMessage: m.status,
		StatusIsError: m.statusError,
		ShowReady:     m.opts.ShowReady && m.ready,
	}
	for _, d := range m.dropdowns {
		state.Dropdowns = append(state.Dropdowns, d.viewState())
	}
	if len(m.dropdowns) > 0 {
		d := m.dropdowns[m.focused]
		state.HelpView = m.help.View(m.keys.helpFor(d.Focus(), d.PickerOpen()))
	}

	return m.renderer.Render(state)
}
