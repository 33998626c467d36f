package controller

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matt-steen/term-tracker/pkg/dialog"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

const headerColumns = 3

func (c *Controller) initPages() {
	for _, tab := range []dialog.Tab{
		dialog.TabTerms, dialog.TabCourses, dialog.TabTypes, dialog.TabInstructors, dialog.TabTextbooks,
	} {
		c.pages.AddPage(tab.String(), c.getTabGrid(tab), true, tab == dialog.TabTerms)
	}
}

func (c *Controller) getTabGrid(tab dialog.Tab) *tview.Grid {
	view := c.tabs[tab]

	view.table.SetBorder(true).SetTitle(view.title)

	header := c.getTabHeader(view.title)

	grid := tview.NewGrid().SetRows(header.GetRowCount(), 0, 1).SetColumns(0, 0)

	grid.AddItem(header, 0, 0, 1, 2, 0, 0, false)
	grid.AddItem(view.table, 1, 0, 1, 1, 0, 0, true)
	grid.AddItem(view.form, 1, 1, 1, 1, 0, 0, false)
	grid.AddItem(c.status, 2, 0, 1, 2, 0, 0, false)

	return grid
}

// getTabHeader shows the tab name followed by the keyboard shortcuts: misc shortcuts, "Show <tab>"
// shortcuts and list shortcuts, each column sorted alphabetically.
func (c *Controller) getTabHeader(title string) *tview.Table {
	table := tview.NewTable().SetBorders(false).SetSelectable(false, false)

	table.SetCell(0, 0, tview.NewTableCell(fmt.Sprintf("[yellow]%s", title)))

	shortcuts := make([][]string, headerColumns)

	seen := map[string]bool{}

	for key, event := range c.events {
		if seen[event.Description] {
			continue
		}

		seen[event.Description] = true

		text := fmt.Sprintf("[orange]<%s>[white] %s", keyName(key), event.Description)

		switch {
		case strings.HasPrefix(event.Description, "Show"):
			shortcuts[1] = append(shortcuts[1], text)
		case isRuneKey(key) && event.Description != "Quit":
			shortcuts[2] = append(shortcuts[2], text)
		default:
			shortcuts[0] = append(shortcuts[0], text)
		}
	}

	for col := range shortcuts {
		sort.Strings(shortcuts[col])

		for row, text := range shortcuts[col] {
			table.SetCell(row+1, col, tview.NewTableCell(text).SetExpansion(1))
		}
	}

	return table
}

func (c *Controller) showTab(tab dialog.Tab) {
	c.dlg.SwitchTab(tab)

	view := c.tabs[tab]

	// a rebind or a reshape may have happened while the tab was hidden
	if index := c.dialogIndex(tab); index >= 0 {
		view.table.Select(index+1, 0)
	}

	c.pages.SwitchToPage(tab.String())
	c.app.SetFocus(view.table)
	c.setStatus("")

	log.Debug().Stringer("tab", tab).Msg("showing tab")
}

func (c *Controller) dialogIndex(tab dialog.Tab) int {
	switch tab {
	case dialog.TabTerms:
		return c.dlg.Terms.Tracker.Index()
	case dialog.TabCourses:
		return c.dlg.Courses.Tracker.Index()
	case dialog.TabTypes:
		return c.dlg.Types.Tracker.Index()
	case dialog.TabInstructors:
		return c.dlg.Instructors.Tracker.Index()
	case dialog.TabTextbooks:
		return c.dlg.Textbooks.Tracker.Index()
	}

	return -1
}
