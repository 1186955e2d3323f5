package stats

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rowboat-io/rowboat/internal/domain"
	"github.com/rowboat-io/rowboat/internal/tabular"
	"github.com/rowboat-io/rowboat/internal/ui/components"
)

// Panel shows summary statistics for the working table: the shape line
// on top and the describe table underneath.
type Panel struct {
	widget.BaseWidget

	shapeLabel *widget.Label
	view       *components.TableView
}

// NewPanel creates an empty statistics panel.
func NewPanel() *Panel {
	p := &Panel{}

	p.shapeLabel = widget.NewLabel("")
	p.shapeLabel.TextStyle = fyne.TextStyle{Bold: true}

	p.view = components.NewTableView("Statistics appear once data is loaded")

	p.ExtendBaseWidget(p)
	return p
}

// SetTable recomputes the summary for the given table. Nil clears the
// panel.
func (p *Panel) SetTable(t *domain.Table) {
	if t == nil {
		p.shapeLabel.SetText("")
		p.view.SetTable(nil)
		return
	}

	p.shapeLabel.SetText(tabular.ShapeLine(t))
	p.view.SetTable(tabular.Describe(t))
}

// CreateRenderer implements fyne.Widget.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	content := container.NewBorder(
		container.NewVBox(p.shapeLabel, widget.NewSeparator()),
		nil, nil, nil,
		p.view,
	)
	return widget.NewSimpleRenderer(content)
}
