// Package dropdown holds the state of a multi-select dropdown and the pure
// transitions that change it. Nothing here renders or does I/O.
package dropdown

import (
	"slices"
	"strings"

	"dropsel/internal/domain"
)

// Option is re-exported so callers only need this package
type Option = domain.Option

// Tag is a selected value with its resolved label
type Tag = domain.Tag

// UploadPrompt is shown on the upload control until a file is chosen
const UploadPrompt = "Upload File"

// State is the complete state of one dropdown instance.
// Transitions return a new State and never write through the receiver's slices.
type State struct {
	Open      bool
	Selected  []string // insertion order, no duplicates
	Search    string   // always lowercase
	Upload    string
	HasUpload bool
}

// New returns the state of a freshly mounted dropdown
func New() State {
	return State{}
}

// ToggleOpen flips whether the option list is visible
func (s State) ToggleOpen() State {
	s.Open = !s.Open
	return s
}

// Select adds value to the selection. Values that are not among options, or
// are already selected, leave the state unchanged.
func (s State) Select(options []Option, value string) State {
	if s.IsSelected(value) || !hasValue(options, value) {
		return s
	}
	s.Selected = append(slices.Clip(s.Selected), value)
	return s
}

// Deselect removes value from the selection if present
func (s State) Deselect(value string) State {
	idx := slices.Index(s.Selected, value)
	if idx < 0 {
		return s
	}
	s.Selected = slices.Delete(slices.Clone(s.Selected), idx, idx+1)
	if len(s.Selected) == 0 {
		s.Selected = nil
	}
	return s
}

// Toggle flips membership of value, as checking or unchecking its box does
func (s State) Toggle(options []Option, value string) State {
	if s.IsSelected(value) {
		return s.Deselect(value)
	}
	return s.Select(options, value)
}

// Remove is the tag row's remove control. It only touches the selection;
// the open state is left as it was.
func (s State) Remove(value string) State {
	return s.Deselect(value)
}

// SetSearch replaces the search term with its lowercase form
func (s State) SetSearch(term string) State {
	s.Search = strings.ToLower(term)
	return s
}

// SetUpload records the chosen file's name. An empty name means the picker
// was cancelled and the previous name is kept.
func (s State) SetUpload(name string) State {
	if name == "" {
		return s
	}
	s.Upload = name
	s.HasUpload = true
	return s
}

// Prune drops selected values that are no longer among options.
// It returns the new state and the values it dropped.
func (s State) Prune(options []Option) (State, []string) {
	var kept, dropped []string
	for _, v := range s.Selected {
		if hasValue(options, v) {
			kept = append(kept, v)
		} else {
			dropped = append(dropped, v)
		}
	}
	if len(dropped) == 0 {
		return s, nil
	}
	s.Selected = kept
	return s, dropped
}

// IsSelected reports whether value is in the selection
func (s State) IsSelected(value string) bool {
	return slices.Contains(s.Selected, value)
}

// Visible returns the options that survive the current search term
func (s State) Visible(options []Option) []Option {
	return Filter(options, s.Search)
}

// Summary returns one tag per selected value in selection order
func (s State) Summary(options []Option) []Tag {
	if len(s.Selected) == 0 {
		return nil
	}
	tags := make([]Tag, 0, len(s.Selected))
	for _, v := range s.Selected {
		tags = append(tags, Tag{Value: v, Label: LabelFor(options, v)})
	}
	return tags
}

// UploadLabel is the text of the upload control
func (s State) UploadLabel() string {
	if s.HasUpload {
		return s.Upload
	}
	return UploadPrompt
}

// Filter returns, in input order, the options whose label contains term,
// ignoring case. An empty term keeps everything.
func Filter(options []Option, term string) []Option {
	if term == "" {
		return slices.Clone(options)
	}
	needle := strings.ToLower(term)
	out := make([]Option, 0, len(options))
	for _, o := range options {
		if strings.Contains(strings.ToLower(o.Label), needle) {
			out = append(out, o)
		}
	}
	return out
}

// LabelFor returns the label of the first option with the given value, or ""
func LabelFor(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return ""
}

func hasValue(options []Option, value string) bool {
	return slices.ContainsFunc(options, func(o Option) bool { return o.Value == value })
}
