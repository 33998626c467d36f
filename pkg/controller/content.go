package controller

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matt-steen/term-tracker/pkg/collection"
	"github.com/rivo/tview"
)

// Column renders one attribute of a record.
type Column[T any] struct {
	Title     string
	Expansion int
	Text      func(T) string
	// Color is optional.
	Color func(T) tcell.Color
}

// CollectionContent implements tview.TableContent over a live sequence. Row 0 is the header.
type CollectionContent[T any] struct {
	tview.TableContentReadOnly
	sequence func() collection.Sequence[T]
	columns  []Column[T]
}

// NewCollectionContent returns table content that reads sequence on every draw, so rebinding
// a tracker to another list is picked up without rebuilding the table.
func NewCollectionContent[T any](sequence func() collection.Sequence[T], columns ...Column[T]) *CollectionContent[T] {
	return &CollectionContent[T]{
		sequence: sequence,
		columns:  columns,
	}
}

// GetCell returns the cell at the given position or nil if no cell.
func (c *CollectionContent[T]) GetCell(row, col int) *tview.TableCell {
	if col < 0 || col >= len(c.columns) || row < 0 {
		return nil
	}

	column := c.columns[col]

	expansion := column.Expansion
	if expansion == 0 {
		expansion = 1
	}

	if row == 0 {
		return tview.NewTableCell(column.Title).SetExpansion(expansion).
			SetTextColor(tcell.ColorYellow).SetSelectable(false)
	}

	seq := c.sequence()
	if seq == nil || row-1 >= seq.Len() {
		return nil
	}

	rec := seq.At(row - 1)

	cell := tview.NewTableCell(tview.Escape(column.Text(rec))).SetExpansion(expansion).SetReference(rec)
	if column.Color != nil {
		cell.SetTextColor(column.Color(rec))
	}

	return cell
}

// GetRowCount returns the number of rows in the table.
func (c *CollectionContent[T]) GetRowCount() int {
	if seq := c.sequence(); seq != nil {
		return seq.Len() + 1
	}

	return 1
}

// GetColumnCount returns the number of columns in the table.
func (c *CollectionContent[T]) GetColumnCount() int {
	return len(c.columns)
}
