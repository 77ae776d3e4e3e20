package gui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Prompts shows modal input dialogs. Every callback receives accepted=false when the
// user dismisses the dialog; callers must then abandon the action.
type Prompts struct {
	window fyne.Window
}

func NewPrompts(window fyne.Window) *Prompts {
	return &Prompts{window: window}
}

// Int asks for an integer in [lo, hi]. The confirm button stays disabled while the
// entry holds anything else.
func (p *Prompts) Int(title, label string, lo, hi, def int, cb func(int, bool)) {
	entry := widget.NewEntry()
	entry.SetText(strconv.Itoa(def))
	entry.Validator = BoundedIntValidator(lo, hi)

	items := []*widget.FormItem{
		widget.NewFormItem(label, entry),
	}
	items[0].HintText = fmt.Sprintf("%d to %d", lo, hi)

	d := dialog.NewForm(title, "OK", "Cancel", items, func(ok bool) {
		if !ok {
			cb(0, false)
			return
		}

		v, err := ParseBoundedInt(entry.Text, lo, hi)
		if err != nil {
			cb(0, false)
			return
		}
		cb(v, true)
	}, p.window)
	d.Show()
}

// Choice asks the user to pick one of options; the first is preselected.
func (p *Prompts) Choice(title, label string, options []string, cb func(string, bool)) {
	if len(options) == 0 {
		cb("", false)
		return
	}

	selector := widget.NewSelect(options, nil)
	selector.SetSelected(options[0])

	items := []*widget.FormItem{
		widget.NewFormItem(label, selector),
	}

	d := dialog.NewForm(title, "OK", "Cancel", items, func(ok bool) {
		if !ok || selector.Selected == "" {
			cb("", false)
			return
		}
		cb(selector.Selected, true)
	}, p.window)
	d.Show()
}

// ParseBoundedInt parses s as a base-10 integer and checks it lies in [lo, hi].
func ParseBoundedInt(s string, lo, hi int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%d is outside %d to %d", v, lo, hi)
	}
	return v, nil
}

func BoundedIntValidator(lo, hi int) fyne.StringValidator {
	return func(s string) error {
		_, err := ParseBoundedInt(s, lo, hi)
		return err
	}
}
