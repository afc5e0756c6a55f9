package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	Dim            lipgloss.Style
	Status         lipgloss.Style
	Help           lipgloss.Style
	Main           lipgloss.Style
	Container      lipgloss.Style
	ContainerFocus lipgloss.Style
	Placeholder    lipgloss.Style
	Tag            lipgloss.Style
	TagCursor      lipgloss.Style
	TagRemove      lipgloss.Style
	Arrow          lipgloss.Style
	List           lipgloss.Style
	Row            lipgloss.Style
	RowCursor      lipgloss.Style
	Checked        lipgloss.Style
	NoOptions      lipgloss.Style
	Upload         lipgloss.Style
	UploadFocus    lipgloss.Style
	UploadChosen   lipgloss.Style
	Picker         lipgloss.Style
	StatusError    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		Help:   lipgloss.NewStyle().Faint(true),
		Main:   lipgloss.NewStyle().Padding(1, 2),
		Container: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		ContainerFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Tag: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 1),
		TagCursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("214")).
			Bold(true).
			Padding(0, 1),
		TagRemove: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Arrow:     lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		List: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Row:          lipgloss.NewStyle(),
		RowCursor:    lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		Checked:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		NoOptions:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Upload:       lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
		UploadFocus:  lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("33")).Bold(true),
		UploadChosen: lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Underline(true),
		Picker: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
	}
}
