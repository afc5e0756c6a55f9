package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every binding the form understands
type KeyMap struct {
	// global
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Reload    key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding

	// container (selection summary)
	ToggleOpen key.Binding
	TagLeft    key.Binding
	TagRight   key.Binding
	RemoveTag  key.Binding

	// open list
	Up        key.Binding
	Down      key.Binding
	ToggleRow key.Binding
	Close     key.Binding
	ToSummary key.Binding

	// upload control and picker
	OpenPicker   key.Binding
	CancelPicker key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Reload:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload options")),
		NextFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		PrevFocus: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),

		ToggleOpen: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "open/close")),
		TagLeft:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev tag")),
		TagRight:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next tag")),
		RemoveTag:  key.NewBinding(key.WithKeys("x", "delete", "backspace"), key.WithHelp("x", "remove tag")),

		Up:        key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		ToggleRow: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check/uncheck")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		ToSummary: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "tags")),

		OpenPicker:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose file")),
		CancelPicker: key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "cancel")),
	}
}

// contextKeys adapts a fixed set of bindings to help.KeyMap
type contextKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k contextKeys) ShortHelp() []key.Binding  { return k.short }
func (k contextKeys) FullHelp() [][]key.Binding { return k.full }

// helpFor returns the footer bindings for the given focus zone
func (k KeyMap) helpFor(zone Zone, pickerOpen bool) contextKeys {
	var short []key.Binding
	switch {
	case pickerOpen:
		short = []key.Binding{k.Up, k.Down, k.OpenPicker, k.CancelPicker}
	case zone == ZoneList:
		short = []key.Binding{k.Up, k.Down, k.ToggleRow, k.ToSummary, k.Close}
	case zone == ZoneUpload:
		short = []key.Binding{k.OpenPicker, k.NextFocus, k.Help, k.Quit}
	default:
		short = []key.Binding{k.ToggleOpen, k.TagLeft, k.TagRight, k.RemoveTag, k.NextFocus, k.Help, k.Quit}
	}
	return contextKeys{
		short: short,
		full: [][]key.Binding{
			{k.ToggleOpen, k.TagLeft, k.TagRight, k.RemoveTag},
			{k.Up, k.Down, k.ToggleRow, k.Close, k.ToSummary},
			{k.OpenPicker, k.CancelPicker},
			{k.NextFocus, k.PrevFocus, k.Reload, k.Help, k.Quit},
		},
	}
}
