package controller

import (
	"github.com/rivo/tview"
)

const (
	modalPage = "modal"
	yes       = "Yes"
)

// Confirm shows a yes/no modal and answers once it is dismissed. Escape answers no.
func (c *Controller) Confirm(message string, answer func(bool)) {
	c.showModal(message, []string{yes, "No"}, func(label string) {
		answer(label == yes)
	})
}

// Warn shows a message until it is dismissed.
func (c *Controller) Warn(message string) {
	c.showModal(message, []string{"OK"}, func(string) {})
}

func (c *Controller) showModal(message string, buttons []string, done func(label string)) {
	focus := c.app.GetFocus()

	modal := tview.NewModal().SetText(message).AddButtons(buttons)
	modal.SetDoneFunc(func(_ int, label string) {
		c.pages.RemovePage(modalPage)
		c.app.SetFocus(focus)

		done(label)
	})

	c.pages.AddPage(modalPage, modal, false, true)
	c.app.SetFocus(modal)
}
