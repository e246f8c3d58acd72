package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// FilterInput wraps bubbles/textinput as a list filter.
type FilterInput struct {
	Model  textinput.Model
	active bool
}

// NewFilterInput creates a new filter input with the given placeholder.
func NewFilterInput(placeholder string, charLimit int) FilterInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return FilterInput{Model: ti}
}

// Activate focuses the input and starts capturing keys.
func (f *FilterInput) Activate() tea.Cmd {
	f.active = true
	return f.Model.Focus()
}

// Blur stops capturing keys but keeps the filter value applied.
func (f *FilterInput) Blur() {
	f.active = false
	f.Model.Blur()
}

// Deactivate blurs the input and clears its value.
func (f *FilterInput) Deactivate() {
	f.active = false
	f.Model.Blur()
	f.Model.SetValue("")
}

// Active reports whether the input is capturing keys.
func (f FilterInput) Active() bool {
	return f.active
}

// Update handles messages while active.
func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	if !f.active {
		return f, nil
	}
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders the input.
func (f FilterInput) View() string {
	return f.Model.View()
}

// Value returns the current filter text.
func (f FilterInput) Value() string {
	return f.Model.Value()
}
