package controller

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// FormField describes one input of a FormView.
type FormField struct {
	ID    string
	Label string
	Width int
	// Check renders the field as a checkbox holding "true" or "false".
	Check bool
}

// FormView is a tview form whose inputs are addressed by field id. It implements editor.View.
type FormView struct {
	*tview.Form
	inputs   map[string]*tview.InputField
	checks   map[string]*tview.Checkbox
	labels   map[string]string
	disabled map[string]bool
	commit   []func(id string)
	revert   func(id string)
}

// NewFormView builds a bordered form with one item per field, in order.
func NewFormView(title string, fields ...FormField) *FormView {
	v := &FormView{
		Form:   tview.NewForm(),
		inputs:   map[string]*tview.InputField{},
		checks:   map[string]*tview.Checkbox{},
		labels:   map[string]string{},
		disabled: map[string]bool{},
	}

	v.SetBorder(true).SetTitle(title)
	v.SetCancelFunc(func() {})

	for _, field := range fields {
		id := field.ID
		v.labels[id] = field.Label

		if field.Check {
			box := tview.NewCheckbox().SetLabel(field.Label)
			box.SetChangedFunc(func(bool) { v.committed(id) })
			box.SetDoneFunc(func(key tcell.Key) { v.done(id, key) })

			v.checks[id] = box
			v.AddFormItem(box)

			continue
		}

		input := tview.NewInputField().SetLabel(field.Label).SetFieldWidth(field.Width)
		input.SetDoneFunc(func(key tcell.Key) { v.done(id, key) })
		input.SetAcceptanceFunc(func(string, rune) bool { return !v.disabled[id] })

		v.inputs[id] = input
		v.AddFormItem(input)
	}

	return v
}

// OnCommit registers a handler for a field being committed with enter or tab. Handlers run in
// registration order.
func (v *FormView) OnCommit(fn func(id string)) {
	v.commit = append(v.commit, fn)
}

// OnRevert registers the handler for escape.
func (v *FormView) OnRevert(fn func(id string)) {
	v.revert = fn
}

// Text returns the displayed value of a field.
func (v *FormView) Text(id string) (string, bool) {
	if input, ok := v.inputs[id]; ok {
		return input.GetText(), true
	}

	if box, ok := v.checks[id]; ok {
		return strconv.FormatBool(box.IsChecked()), true
	}

	return "", false
}

// SetText displays a value. Checkboxes are checked for "true".
func (v *FormView) SetText(id, value string) {
	if input, ok := v.inputs[id]; ok {
		input.SetText(value)

		return
	}

	if box, ok := v.checks[id]; ok {
		checked, _ := strconv.ParseBool(value)
		box.SetChecked(checked)
	}
}

// Clear blanks every field.
func (v *FormView) Clear() {
	for _, input := range v.inputs {
		input.SetText("")
	}

	for _, box := range v.checks {
		box.SetChecked(false)
	}
}

func (v *FormView) done(id string, key tcell.Key) {
	switch key {
	case tcell.KeyEscape:
		if v.revert != nil {
			v.revert(id)
		}
	case tcell.KeyEnter, tcell.KeyTab, tcell.KeyBacktab:
		v.committed(id)
	}
}

func (v *FormView) committed(id string) {
	for _, fn := range v.commit {
		fn(id)
	}
}

// SetEnabled greys out a field and stops it taking typed input. A disabled checkbox can still be
// toggled; the commit handler puts the stored value back.
func (v *FormView) SetEnabled(id string, enabled bool) {
	label, ok := v.labels[id]
	if !ok {
		return
	}

	v.disabled[id] = !enabled

	if !enabled {
		label = fmt.Sprintf("[gray]%s", label)
	}

	if input, ok := v.inputs[id]; ok {
		input.SetLabel(label)
	}

	if box, ok := v.checks[id]; ok {
		box.SetLabel(label)
	}
}

// Enabled reports whether a field takes input.
func (v *FormView) Enabled(id string) bool {
	_, ok := v.labels[id]

	return ok && !v.disabled[id]
}
