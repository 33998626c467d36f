package controller

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/term-tracker/pkg/dialog"
	"github.com/rivo/tview"
)

func (c *Controller) initEvents() {
	c.events = map[tcell.Key]KeyEvent{}

	c.initShowEvents()
	c.initListEvents()

	c.events[tcell.KeyCtrlE] = KeyEvent{
		Description: "Edit / List",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.toggleFocus()

			return nil
		},
	}

	c.events[tcell.KeyCtrlS] = KeyEvent{
		Description: "Save",
		Action: func(key *tcell.EventKey) *tcell.EventKey {
			c.report(c.save())

			return nil
		},
	}

	quit := func(key *tcell.EventKey) *tcell.EventKey {
		c.quit()

		return nil
	}

	c.events[KeyQ] = KeyEvent{Description: "Quit", Action: quit}
	c.events[tcell.KeyCtrlC] = KeyEvent{Description: "Quit", Action: quit}
}

func (c *Controller) getShowAction(tab dialog.Tab) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.showTab(tab)

		return nil
	}
}

func (c *Controller) initShowEvents() {
	c.events[tcell.KeyF1] = KeyEvent{Description: "Show Terms", Action: c.getShowAction(dialog.TabTerms)}
	c.events[tcell.KeyF2] = KeyEvent{Description: "Show Courses", Action: c.getShowAction(dialog.TabCourses)}
	c.events[tcell.KeyF3] = KeyEvent{Description: "Show Assignment types", Action: c.getShowAction(dialog.TabTypes)}
	c.events[tcell.KeyF4] = KeyEvent{Description: "Show Instructors", Action: c.getShowAction(dialog.TabInstructors)}
	c.events[tcell.KeyF5] = KeyEvent{Description: "Show Textbooks", Action: c.getShowAction(dialog.TabTextbooks)}
}

// getListAction runs the action the active tab binds, if any.
func (c *Controller) getListAction(pick func(*tabView) func()) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if action := pick(c.tabs[c.dlg.Tab()]); action != nil {
			action()
		}

		return nil
	}
}

func (c *Controller) initListEvents() {
	c.events[KeyA] = KeyEvent{Description: "Add", Action: c.getListAction(func(v *tabView) func() { return v.add })}
	c.events[KeyX] = KeyEvent{Description: "Remove", Action: c.getListAction(func(v *tabView) func() { return v.remove })}
	c.events[KeyK] = KeyEvent{Description: "Move up", Action: c.getListAction(func(v *tabView) func() { return v.up })}
	c.events[KeyJ] = KeyEvent{Description: "Move down", Action: c.getListAction(func(v *tabView) func() { return v.down })}
	c.events[KeyT] = KeyEvent{
		Description: "Move course to selected term",
		Action:      c.getListAction(func(v *tabView) func() { return v.toTerm }),
	}
}

func (c *Controller) handleKeys(evt *tcell.EventKey) *tcell.EventKey {
	if c.pages.HasPage(modalPage) {
		return evt
	}

	key := AsKey(evt)

	event, ok := c.events[key]
	if !ok {
		return evt
	}

	// letters belong to the form while it has focus
	if isRuneKey(key) {
		if _, onList := c.app.GetFocus().(*tview.Table); !onList {
			return evt
		}
	}

	return event.Action(evt)
}

func (c *Controller) toggleFocus() {
	view := c.tabs[c.dlg.Tab()]

	if _, onList := c.app.GetFocus().(*tview.Table); onList {
		c.app.SetFocus(view.form)

		return
	}

	c.app.SetFocus(view.table)
}
