package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rowboat-io/rowboat/internal/domain"
)

const (
	minColumnWidth = 90
	maxColumnWidth = 240
	columnPadding  = 24
)

// TableView renders a data table in a scrollable grid with a sticky
// header row. It holds its own copy of the current table pointer, so
// callers swap data with SetTable and never mutate in place.
type TableView struct {
	widget.BaseWidget

	table *domain.Table
	grid  *widget.Table

	placeholder *widget.Label
	content     *fyne.Container
}

// NewTableView creates an empty table view. The placeholder text shows
// until the first SetTable with data.
func NewTableView(placeholder string) *TableView {
	v := &TableView{}

	v.placeholder = widget.NewLabel(placeholder)
	v.placeholder.Alignment = fyne.TextAlignCenter
	v.placeholder.Importance = widget.LowImportance

	v.grid = widget.NewTable(
		func() (int, int) {
			if v.table == nil {
				return 0, 0
			}
			return len(v.table.Rows), len(v.table.Columns)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(v.cellText(id.Row, id.Col))
		},
	)
	v.grid.ShowHeaderRow = true
	v.grid.CreateHeader = func() fyne.CanvasObject {
		label := widget.NewLabel("")
		label.TextStyle = fyne.TextStyle{Bold: true}
		label.Truncation = fyne.TextTruncateEllipsis
		return label
	}
	v.grid.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		label := obj.(*widget.Label)
		if v.table == nil || id.Col < 0 || id.Col >= len(v.table.Columns) {
			label.SetText("")
			return
		}
		label.SetText(v.table.Columns[id.Col])
	}

	v.content = container.NewStack(container.NewCenter(v.placeholder))

	v.ExtendBaseWidget(v)
	return v
}

// SetTable swaps the displayed table. A nil table or one without
// columns brings the placeholder back.
func (v *TableView) SetTable(t *domain.Table) {
	v.table = t
	if t == nil || len(t.Columns) == 0 {
		v.content.Objects = []fyne.CanvasObject{container.NewCenter(v.placeholder)}
		v.content.Refresh()
		return
	}

	for i, col := range t.Columns {
		v.grid.SetColumnWidth(i, headerWidth(col))
	}
	v.content.Objects = []fyne.CanvasObject{v.grid}
	v.content.Refresh()
	v.grid.Refresh()
}

// Table returns the currently displayed table, nil when empty.
func (v *TableView) Table() *domain.Table {
	return v.table
}

func (v *TableView) cellText(row, col int) string {
	if v.table == nil || row < 0 || row >= len(v.table.Rows) {
		return ""
	}
	cells := v.table.Rows[row]
	if col < 0 || col >= len(cells) {
		return ""
	}
	return cells[col]
}

// headerWidth sizes a column to its header text within sane bounds,
// so short columns do not waste space and long ones do not take over.
func headerWidth(header string) float32 {
	size := fyne.MeasureText(header, theme.TextSize(), fyne.TextStyle{Bold: true})
	width := size.Width + columnPadding
	if width < minColumnWidth {
		return minColumnWidth
	}
	if width > maxColumnWidth {
		return maxColumnWidth
	}
	return width
}

// CreateRenderer implements fyne.Widget.
func (v *TableView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.content)
}
