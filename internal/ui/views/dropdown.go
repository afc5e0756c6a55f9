package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dropsel/internal/domain"
)

// Fixed texts of the dropdown
const (
	SelectPlaceholder = "Select options"
	NoOptionsText     = "No options found"
	SearchPlaceholder = "Search options..."
	RemoveMark        = "✕"
	ArrowClosed       = "▾"
	ArrowOpen         = "▴"
	CheckedBox        = "[x]"
	UncheckedBox      = "[ ]"
)

// Row is one visible option line in the open list
type Row struct {
	Label   string
	Checked bool
	Cursor  bool
}

// DropdownView contains everything needed to draw one dropdown
type DropdownView struct {
	Title            string
	AllowUpload      bool
	UploadLabel      string
	UploadChosen     bool
	UploadFocused    bool
	Tags             []domain.Tag
	TagCursor        int // -1 when no tag is highlighted
	ContainerFocused bool
	Open             bool
	SearchBox        string
	Rows             []Row
	PickerOpen       bool
	Picker           string
	Width            int
}

// DropdownRenderer draws dropdowns
type DropdownRenderer struct {
	styles *Styles
}

// NewDropdownRenderer creates a new dropdown renderer
func NewDropdownRenderer(styles *Styles) *DropdownRenderer {
	return &DropdownRenderer{styles: styles}
}

// Render draws the title line, the selection summary and, when open, the option list
func (r *DropdownRenderer) Render(v DropdownView) string {
	var b strings.Builder

	b.WriteString(r.renderTitle(v))
	b.WriteString("\n")
	b.WriteString(r.renderContainer(v))

	if v.Open {
		b.WriteString("\n")
		b.WriteString(r.renderList(v))
	}

	if v.PickerOpen {
		b.WriteString("\n")
		b.WriteString(r.styles.Picker.Render(
			r.styles.Dim.Render("Choose a file (esc to cancel)") + "\n" + v.Picker,
		))
	}

	return b.String()
}

func (r *DropdownRenderer) renderTitle(v DropdownView) string {
	title := r.styles.Title.Render(v.Title)
	if !v.AllowUpload {
		return title
	}

	style := r.styles.Upload
	if v.UploadChosen {
		style = r.styles.UploadChosen
	}
	if v.UploadFocused {
		style = r.styles.UploadFocus
	}
	return title + "  " + style.Render(v.UploadLabel)
}

func (r *DropdownRenderer) renderContainer(v DropdownView) string {
	var summary string
	if len(v.Tags) == 0 {
		summary = r.styles.Placeholder.Render(SelectPlaceholder)
	} else {
		parts := make([]string, 0, len(v.Tags))
		for i, tag := range v.Tags {
			style := r.styles.Tag
			if v.ContainerFocused && i == v.TagCursor {
				style = r.styles.TagCursor
			}
			parts = append(parts, style.Render(tag.Label+" "+r.styles.TagRemove.Render(RemoveMark)))
		}
		summary = strings.Join(parts, " ")
	}

	arrow := ArrowClosed
	if v.Open {
		arrow = ArrowOpen
	}
	line := summary + "  " + r.styles.Arrow.Render(arrow)

	style := r.styles.Container
	if v.ContainerFocused {
		style = r.styles.ContainerFocus
	}
	if v.Width > 4 && lipgloss.Width(line) < v.Width-4 {
		style = style.Width(v.Width - 4)
	}
	return style.Render(line)
}

func (r *DropdownRenderer) renderList(v DropdownView) string {
	lines := []string{v.SearchBox}

	if len(v.Rows) == 0 {
		lines = append(lines, r.styles.NoOptions.Render(NoOptionsText))
	}
	for _, row := range v.Rows {
		box := UncheckedBox
		if row.Checked {
			box = r.styles.Checked.Render(CheckedBox)
		}
		line := box + " " + row.Label
		if row.Cursor {
			line = r.styles.RowCursor.Render("> " + line)
		} else {
			line = r.styles.Row.Render("  " + line)
		}
		lines = append(lines, line)
	}

	return r.styles.List.Render(strings.Join(lines, "\n"))
}
