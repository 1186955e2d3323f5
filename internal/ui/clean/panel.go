package clean

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rowboat-io/rowboat/internal/tabular"
	"github.com/rowboat-io/rowboat/internal/ui/components"
)

// Panel hosts the table transforms: sort, remove-missing and group-by.
// It only collects input; the window runs the transform and decides
// what to do with the result.
type Panel struct {
	widget.BaseWidget

	columns []string

	// Sort
	sortColumn *widget.Select
	direction  *widget.RadioGroup
	sortBtn    *widget.Button

	// Remove missing
	missingChecks *widget.CheckGroup
	dropBtn       *widget.Button

	// Group by: one key, a subset of columns to aggregate, one function
	// applied to all of them.
	keySelect *widget.Select
	aggChecks *widget.CheckGroup
	aggSelect *widget.Select
	groupBtn  *widget.Button

	onSort        func(column string, descending bool)
	onDropMissing func(columns []string)
	onGroup       func(key string, columns []string, agg tabular.Aggregation)
}

// NewPanel creates the transform panel with no columns. Everything
// stays disabled until SetColumns delivers a loaded table.
func NewPanel() *Panel {
	p := &Panel{}

	p.sortColumn = widget.NewSelect(nil, nil)
	p.sortColumn.PlaceHolder = "Column"

	p.direction = widget.NewRadioGroup([]string{"Ascending", "Descending"}, nil)
	p.direction.Horizontal = true
	p.direction.Selected = "Ascending"

	p.sortBtn = widget.NewButton("Sort", func() {
		p.handleSort()
	})

	p.missingChecks = widget.NewCheckGroup(nil, nil)

	p.dropBtn = widget.NewButton("Remove rows", func() {
		p.handleDropMissing()
	})

	p.keySelect = widget.NewSelect(nil, func(string) {
		p.refreshAggOptions()
	})
	p.keySelect.PlaceHolder = "Group key"

	p.aggChecks = widget.NewCheckGroup(nil, nil)

	aggNames := make([]string, 0, len(tabular.Aggregations()))
	for _, a := range tabular.Aggregations() {
		aggNames = append(aggNames, string(a))
	}
	p.aggSelect = widget.NewSelect(aggNames, nil)
	p.aggSelect.SetSelected(string(tabular.AggCount))

	p.groupBtn = widget.NewButton("Group", func() {
		p.handleGroup()
	})

	p.setEnabled(false)

	p.ExtendBaseWidget(p)
	return p
}

// SetOnSort sets the callback for the sort action.
func (p *Panel) SetOnSort(fn func(column string, descending bool)) {
	p.onSort = fn
}

// SetOnDropMissing sets the callback for the remove-missing action.
func (p *Panel) SetOnDropMissing(fn func(columns []string)) {
	p.onDropMissing = fn
}

// SetOnGroup sets the callback for the group-by action.
func (p *Panel) SetOnGroup(fn func(key string, columns []string, agg tabular.Aggregation)) {
	p.onGroup = fn
}

// SetColumns refreshes every column picker after the working table
// changes. Selections that no longer exist are cleared rather than
// silently pointing at a different column.
func (p *Panel) SetColumns(columns []string) {
	p.columns = columns

	p.sortColumn.Options = columns
	p.keySelect.Options = columns

	if !contains(columns, p.sortColumn.Selected) {
		p.sortColumn.ClearSelected()
	}
	if !contains(columns, p.keySelect.Selected) {
		p.keySelect.ClearSelected()
	}

	kept := make([]string, 0, len(p.missingChecks.Selected))
	for _, sel := range p.missingChecks.Selected {
		if contains(columns, sel) {
			kept = append(kept, sel)
		}
	}
	p.missingChecks.Options = columns
	p.missingChecks.SetSelected(kept)

	p.refreshAggOptions()

	p.sortColumn.Refresh()
	p.keySelect.Refresh()
	p.missingChecks.Refresh()

	p.setEnabled(len(columns) > 0)
}

// refreshAggOptions rebuilds the aggregate column checks to every
// column except the group key.
func (p *Panel) refreshAggOptions() {
	options := make([]string, 0, len(p.columns))
	for _, col := range p.columns {
		if col != p.keySelect.Selected {
			options = append(options, col)
		}
	}

	kept := make([]string, 0, len(p.aggChecks.Selected))
	for _, sel := range p.aggChecks.Selected {
		if contains(options, sel) {
			kept = append(kept, sel)
		}
	}

	p.aggChecks.Options = options
	p.aggChecks.SetSelected(kept)
	p.aggChecks.Refresh()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (p *Panel) setEnabled(enabled bool) {
	if enabled {
		p.sortBtn.Enable()
		p.dropBtn.Enable()
		p.groupBtn.Enable()
		return
	}
	p.sortBtn.Disable()
	p.dropBtn.Disable()
	p.groupBtn.Disable()
}

func (p *Panel) handleSort() {
	if p.onSort == nil || p.sortColumn.Selected == "" {
		return
	}
	p.onSort(p.sortColumn.Selected, p.direction.Selected == "Descending")
}

func (p *Panel) handleDropMissing() {
	if p.onDropMissing == nil || len(p.missingChecks.Selected) == 0 {
		return
	}
	columns := append([]string(nil), p.missingChecks.Selected...)
	p.onDropMissing(columns)
}

func (p *Panel) handleGroup() {
	if p.onGroup == nil || p.keySelect.Selected == "" || len(p.aggChecks.Selected) == 0 {
		return
	}
	columns := append([]string(nil), p.aggChecks.Selected...)
	p.onGroup(p.keySelect.Selected, columns, tabular.Aggregation(p.aggSelect.Selected))
}

// CreateRenderer implements fyne.Widget.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	sortSection := components.NewSection("Sort", container.NewVBox(
		p.sortColumn,
		p.direction,
		p.sortBtn,
	), true)

	missingSection := components.NewSection("Remove missing values", container.NewVBox(
		widget.NewLabel("Drop rows with a blank cell in any checked column"),
		p.missingChecks,
		p.dropBtn,
	), false)

	groupSection := components.NewSection("Group by", container.NewVBox(
		p.keySelect,
		widget.NewLabel("Columns to aggregate"),
		p.aggChecks,
		p.aggSelect,
		p.groupBtn,
	), false)

	content := container.NewVScroll(container.NewVBox(
		sortSection,
		missingSection,
		groupSection,
	))
	return widget.NewSimpleRenderer(content)
}
