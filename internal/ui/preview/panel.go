package preview

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rowboat-io/rowboat/internal/domain"
	"github.com/rowboat-io/rowboat/internal/ui/components"
)

const (
	defaultHeadRows = 10
	maxHeadRows     = 100
)

// Panel previews the first rows of the working table. A slider picks
// how many rows to show, capped at maxHeadRows to keep the grid snappy
// on wide tables.
type Panel struct {
	widget.BaseWidget

	table *domain.Table

	view       *components.TableView
	slider     *widget.Slider
	countLabel *widget.Label
}

// NewPanel creates an empty preview panel.
func NewPanel() *Panel {
	p := &Panel{}

	p.view = components.NewTableView("Load a file or run a query to preview data")

	p.slider = widget.NewSlider(1, maxHeadRows)
	p.slider.Step = 1
	p.slider.SetValue(defaultHeadRows)
	p.slider.OnChanged = func(float64) {
		p.refreshHead()
	}
	p.slider.Disable()

	p.countLabel = widget.NewLabel("")

	p.ExtendBaseWidget(p)
	return p
}

// SetTable swaps the previewed table. The slider re-ranges to
// 1..min(100, rows) and falls back to min(10, rows) as its value.
func (p *Panel) SetTable(t *domain.Table) {
	p.table = t

	rows, _ := t.Shape()
	if t == nil || rows == 0 {
		p.slider.Disable()
		if t == nil {
			p.countLabel.SetText("")
			p.view.SetTable(nil)
			return
		}
		// Header-only table still shows its columns.
		p.countLabel.SetText("0 rows")
		p.view.SetTable(t)
		return
	}

	max := rows
	if max > maxHeadRows {
		max = maxHeadRows
	}
	value := defaultHeadRows
	if value > max {
		value = max
	}

	p.slider.Max = float64(max)
	p.slider.SetValue(float64(value))
	p.slider.Enable()
	p.slider.Refresh()

	p.refreshHead()
}

// HeadCount returns the current number of previewed rows.
func (p *Panel) HeadCount() int {
	return int(p.slider.Value)
}

func (p *Panel) refreshHead() {
	if p.table == nil {
		return
	}
	n := int(p.slider.Value)
	p.view.SetTable(p.table.Head(n))

	rows, _ := p.table.Shape()
	shown := n
	if shown > rows {
		shown = rows
	}
	p.countLabel.SetText(fmt.Sprintf("Showing %d of %d rows", shown, rows))
}

// CreateRenderer implements fyne.Widget.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	controls := container.NewBorder(
		nil, nil,
		widget.NewLabel("Rows"),
		p.countLabel,
		p.slider,
	)

	content := container.NewBorder(
		controls,
		nil, nil, nil,
		p.view,
	)
	return widget.NewSimpleRenderer(content)
}
