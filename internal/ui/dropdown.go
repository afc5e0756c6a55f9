package ui

import (
	"log"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"dropsel/internal/domain"
	"dropsel/internal/dropdown"
	"dropsel/internal/eventbus"
	"dropsel/internal/ui/views"
)

// Zone is the part of a dropdown that receives keys
type Zone int

const (
	ZoneNone Zone = iota
	ZoneUpload
	ZoneContainer
	ZoneList
)

// DropdownSpec holds a dropdown's construction parameters
type DropdownSpec struct {
	ID              string
	Title           string
	Options         []domain.Option
	AllowFileUpload bool
	PruneStale      bool
}

// PickerSettings configures the upload file picker
type PickerSettings struct {
	StartDir   string
	ShowHidden bool
}

// Dropdown is one multi-select dropdown. It owns its state exclusively.
//
// Keys are routed by focus zone. Keys handled by the list or by the tag row
// never reach the container's open/close handling, which is the terminal
// equivalent of stopping click propagation.
type Dropdown struct {
	id          string
	title       string
	options     []domain.Option
	allowUpload bool
	pruneStale  bool

	state     dropdown.State
	focus     Zone
	tagCursor int
	rowCursor int

	search     textinput.Model
	picker     filepicker.Model
	pickerOpen bool
	pickerCfg  PickerSettings

	bus      eventbus.EventBus
	keys     KeyMap
	renderer *views.Renderer
	width    int
}

// NewDropdown creates a closed dropdown with nothing selected
func NewDropdown(spec DropdownSpec, bus eventbus.EventBus, picker PickerSettings) Dropdown {
	if spec.ID == "" {
		spec.ID = uuid.NewString()
	}
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if picker.StartDir == "" {
		picker.StartDir = "."
	}

	ti := textinput.New()
	ti.Placeholder = views.SearchPlaceholder
	ti.Prompt = "> "

	fp := filepicker.New()
	fp.CurrentDirectory = picker.StartDir
	fp.ShowHidden = picker.ShowHidden
	fp.FileAllowed = true
	fp.DirAllowed = false
	// esc cancels the picker instead of walking up a directory
	fp.KeyMap.Back = key.NewBinding(key.WithKeys("h", "backspace", "left"), key.WithHelp("h", "back"))

	return Dropdown{
		id:          spec.ID,
		title:       spec.Title,
		options:     slices.Clone(spec.Options),
		allowUpload: spec.AllowFileUpload,
		pruneStale:  spec.PruneStale,
		state:       dropdown.New(),
		search:      ti,
		picker:      fp,
		pickerCfg:   picker,
		bus:         bus,
		keys:        DefaultKeyMap(),
		renderer:    views.NewRenderer(),
	}
}

// ID returns the dropdown's identifier
func (d Dropdown) ID() string { return d.id }

// Title returns the dropdown's title
func (d Dropdown) Title() string { return d.title }

// State returns a copy of the dropdown's state
func (d Dropdown) State() dropdown.State { return d.state }

// Options returns the current option set
func (d Dropdown) Options() []domain.Option { return slices.Clone(d.options) }

// Focus returns the focused zone, ZoneNone when the dropdown is not focused
func (d Dropdown) Focus() Zone { return d.focus }

// PickerOpen reports whether the file picker is showing
func (d Dropdown) PickerOpen() bool { return d.pickerOpen }

// Result reports what the user chose
func (d Dropdown) Result() domain.Result {
	r := domain.Result{
		ID:       d.id,
		Title:    d.title,
		Selected: slices.Clone(d.state.Selected),
	}
	if d.state.HasUpload {
		r.Upload = d.state.Upload
	}
	return r
}

// CapturesInput reports whether every key should go to this dropdown,
// bypassing the form's global bindings. True while typing into the search
// box or browsing the file picker.
func (d Dropdown) CapturesInput() bool {
	return d.pickerOpen || d.focus == ZoneList
}

// zones lists the focusable zones in tab order
func (d Dropdown) zones() []Zone {
	var zs []Zone
	if d.allowUpload {
		zs = append(zs, ZoneUpload)
	}
	zs = append(zs, ZoneContainer)
	if d.state.Open {
		zs = append(zs, ZoneList)
	}
	return zs
}

// FocusFirst focuses the first zone
func (d Dropdown) FocusFirst() (Dropdown, tea.Cmd) {
	return d.setFocus(d.zones()[0])
}

// FocusLast focuses the last zone
func (d Dropdown) FocusLast() (Dropdown, tea.Cmd) {
	zs := d.zones()
	return d.setFocus(zs[len(zs)-1])
}

// Blur removes focus from the dropdown
func (d Dropdown) Blur() Dropdown {
	d, _ = d.setFocus(ZoneNone)
	return d
}

// NextZone moves focus forward. ok is false when focus would leave the dropdown.
func (d Dropdown) NextZone() (Dropdown, tea.Cmd, bool) {
	zs := d.zones()
	idx := slices.Index(zs, d.focus)
	if idx < 0 || idx+1 >= len(zs) {
		return d, nil, false
	}
	d, cmd := d.setFocus(zs[idx+1])
	return d, cmd, true
}

// PrevZone moves focus backward. ok is false when focus would leave the dropdown.
func (d Dropdown) PrevZone() (Dropdown, tea.Cmd, bool) {
	zs := d.zones()
	idx := slices.Index(zs, d.focus)
	if idx <= 0 {
		return d, nil, false
	}
	d, cmd := d.setFocus(zs[idx-1])
	return d, cmd, true
}

func (d Dropdown) setFocus(z Zone) (Dropdown, tea.Cmd) {
	if z == ZoneUpload && !d.allowUpload {
		z = ZoneContainer
	}
	if z == ZoneList && !d.state.Open {
		z = ZoneContainer
	}
	d.focus = z

	if z == ZoneList {
		return d, d.search.Focus()
	}
	d.search.Blur()
	return d, nil
}

// SetOptions replaces the option set. Stale selections are kept unless the
// dropdown was built with PruneStale.
func (d Dropdown) SetOptions(options []domain.Option) Dropdown {
	d.options = slices.Clone(options)

	var pruned []string
	if d.pruneStale {
		d.state, pruned = d.state.Prune(d.options)
	}
	d.clampCursors()

	d.bus.Publish(eventbus.OptionsReplacedEvent{
		DropdownID: d.id,
		Count:      len(d.options),
		Pruned:     pruned,
	})
	return d
}

// Init returns the initial command
func (d Dropdown) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d Dropdown) Update(msg tea.Msg) (Dropdown, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.search.Width = max(10, msg.Width-12)
		var cmd tea.Cmd
		d.picker, cmd = d.picker.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		if d.pickerOpen {
			return d.updatePicker(msg)
		}
		switch d.focus {
		case ZoneUpload:
			return d.updateUpload(msg)
		case ZoneContainer:
			return d.updateContainer(msg)
		case ZoneList:
			return d.updateList(msg)
		}
		return d, nil
	}

	// Directory listings and cursor blinks
	var cmds []tea.Cmd
	var cmd tea.Cmd
	d.picker, cmd = d.picker.Update(msg)
	cmds = append(cmds, cmd)
	if d.focus == ZoneList {
		d.search, cmd = d.search.Update(msg)
		cmds = append(cmds, cmd)
	}
	return d, tea.Batch(cmds...)
}

func (d Dropdown) updateContainer(msg tea.KeyMsg) (Dropdown, tea.Cmd) {
	switch {
	case key.Matches(msg, d.keys.ToggleOpen):
		return d.toggleOpen()

	case key.Matches(msg, d.keys.TagLeft):
		if d.tagCursor > 0 {
			d.tagCursor--
		}
		return d, nil

	case key.Matches(msg, d.keys.TagRight):
		if d.tagCursor < len(d.state.Selected)-1 {
			d.tagCursor++
		}
		return d, nil

	case key.Matches(msg, d.keys.RemoveTag):
		if len(d.state.Selected) == 0 {
			return d, nil
		}
		value := d.state.Selected[d.tagCursor]
		d.state = d.state.Remove(value)
		d.clampCursors()
		log.Printf("dropdown %s: removed %q via tag", d.id, value)
		d.bus.Publish(eventbus.OptionDeselectedEvent{
			DropdownID: d.id,
			Value:      value,
			ViaTag:     true,
			Selected:   slices.Clone(d.state.Selected),
		})
		return d, nil
	}
	return d, nil
}

func (d Dropdown) updateList(msg tea.KeyMsg) (Dropdown, tea.Cmd) {
	visible := d.state.Visible(d.options)

	switch {
	case key.Matches(msg, d.keys.Close):
		return d.toggleOpen()

	case key.Matches(msg, d.keys.ToSummary):
		return d.setFocus(ZoneContainer)

	case key.Matches(msg, d.keys.Up):
		if d.rowCursor > 0 {
			d.rowCursor--
		}
		return d, nil

	case key.Matches(msg, d.keys.Down):
		if d.rowCursor < len(visible)-1 {
			d.rowCursor++
		}
		return d, nil

	case key.Matches(msg, d.keys.ToggleRow):
		if len(visible) == 0 {
			return d, nil
		}
		return d.toggleOption(visible[d.rowCursor].Value), nil
	}

	// Everything else edits the search box
	before := d.search.Value()
	var cmd tea.Cmd
	d.search, cmd = d.search.Update(msg)
	if after := d.search.Value(); after != before {
		d = d.setSearch(after)
	}
	return d, cmd
}

func (d Dropdown) updateUpload(msg tea.KeyMsg) (Dropdown, tea.Cmd) {
	if !key.Matches(msg, d.keys.OpenPicker) {
		return d, nil
	}
	d.pickerOpen = true
	d.picker.CurrentDirectory = d.pickerCfg.StartDir
	return d, d.picker.Init()
}

func (d Dropdown) updatePicker(msg tea.KeyMsg) (Dropdown, tea.Cmd) {
	if key.Matches(msg, d.keys.CancelPicker) {
		// Cancelling is a silent no-op on the upload name
		d.pickerOpen = false
		d.state = d.state.SetUpload("")
		return d, nil
	}

	var cmd tea.Cmd
	d.picker, cmd = d.picker.Update(msg)
	if ok, path := d.picker.DidSelectFile(msg); ok {
		return d.chooseFile(path), cmd
	}
	return d, cmd
}

// chooseFile records the base name of path. The file itself is never opened.
func (d Dropdown) chooseFile(path string) Dropdown {
	d.pickerOpen = false
	if path == "" {
		return d
	}
	name := filepath.Base(path)
	d.state = d.state.SetUpload(name)
	log.Printf("dropdown %s: file chosen %q", d.id, name)
	d.bus.Publish(eventbus.FileChosenEvent{DropdownID: d.id, Name: name})
	return d
}

func (d Dropdown) toggleOpen() (Dropdown, tea.Cmd) {
	d.state = d.state.ToggleOpen()
	d.bus.Publish(eventbus.DropdownToggledEvent{DropdownID: d.id, Open: d.state.Open})
	if d.state.Open {
		d.rowCursor = 0
		return d.setFocus(ZoneList)
	}
	return d.setFocus(ZoneContainer)
}

func (d Dropdown) toggleOption(value string) Dropdown {
	wasSelected := d.state.IsSelected(value)
	d.state = d.state.Toggle(d.options, value)
	d.clampCursors()

	selected := slices.Clone(d.state.Selected)
	if wasSelected {
		d.bus.Publish(eventbus.OptionDeselectedEvent{DropdownID: d.id, Value: value, Selected: selected})
	} else if d.state.IsSelected(value) {
		d.bus.Publish(eventbus.OptionSelectedEvent{DropdownID: d.id, Value: value, Selected: selected})
	}
	return d
}

func (d Dropdown) setSearch(term string) Dropdown {
	d.state = d.state.SetSearch(term)
	// The box mirrors the stored term, which is lowercase. ToLower maps rune
	// for rune, so the cursor position stays valid.
	if d.search.Value() != d.state.Search {
		d.search.SetValue(d.state.Search)
	}
	d.clampCursors()
	d.bus.Publish(eventbus.SearchChangedEvent{
		DropdownID: d.id,
		Term:       d.state.Search,
		Visible:    len(d.state.Visible(d.options)),
	})
	return d
}

func (d *Dropdown) clampCursors() {
	d.tagCursor = clamp(d.tagCursor, len(d.state.Selected))
	d.rowCursor = clamp(d.rowCursor, len(d.state.Visible(d.options)))
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// viewState builds the render input for this dropdown
func (d Dropdown) viewState() views.DropdownView {
	v := views.DropdownView{
		Title:            d.title,
		AllowUpload:      d.allowUpload,
		UploadLabel:      d.state.UploadLabel(),
		UploadChosen:     d.state.HasUpload,
		UploadFocused:    d.focus == ZoneUpload,
		Tags:             d.state.Summary(d.options),
		TagCursor:        -1,
		ContainerFocused: d.focus == ZoneContainer,
		Open:             d.state.Open,
		PickerOpen:       d.pickerOpen,
		Width:            d.width,
	}
	if v.ContainerFocused {
		v.TagCursor = d.tagCursor
	}
	if d.state.Open {
		v.SearchBox = d.search.View()
		for i, o := range d.state.Visible(d.options) {
			v.Rows = append(v.Rows, views.Row{
				Label:   o.Label,
				Checked: d.state.IsSelected(o.Value),
				Cursor:  d.focus == ZoneList && i == d.rowCursor,
			})
		}
	}
	if d.pickerOpen {
		v.Picker = d.picker.View()
	}
	return v
}

// View renders the dropdown
func (d Dropdown) View() string {
	return d.renderer.RenderDropdown(d.viewState())
}
