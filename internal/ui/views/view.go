package views

import (
	"strings"
)

// ReadyMarker is printed under the form for the e2e driver
const ReadyMarker = "__READY__"

// ViewState contains all the state needed for rendering the form
type ViewState struct {
	Width         int
	Height        int
	Dropdowns     []DropdownView
	StatusMessage string
	StatusIsError bool
	HelpView      string
	ShowReady     bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles         *Styles
	dropdownRender *DropdownRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:         styles,
		dropdownRender: NewDropdownRenderer(styles),
	}
}

// RenderDropdown draws a single dropdown
func (r *Renderer) RenderDropdown(v DropdownView) string {
	return r.dropdownRender.Render(v)
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	for i, d := range state.Dropdowns {
		if i > 0 {
			content.WriteString("\n\n")
		}
		content.WriteString(r.dropdownRender.Render(d))
	}

	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusIsError {
			style = style.Inherit(r.styles.StatusError)
		}
		content.WriteString("\n")
		content.WriteString(style.Render(state.StatusMessage))
	}

	if state.HelpView != "" {
		content.WriteString("\n\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	if state.ShowReady {
		content.WriteString("\n")
		content.WriteString(ReadyMarker)
	}

	return r.styles.Main.Render(content.String())
}
