package graph

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rowboat-io/rowboat/internal/chart"
)

// Panel plots one column against another. The Y picker only offers
// numeric columns because nothing else can be plotted; X takes any
// column and falls back to category slots for text.
type Panel struct {
	widget.BaseWidget

	xSelect   *widget.Select
	ySelect   *widget.Select
	kindRadio *widget.RadioGroup
	renderBtn *widget.Button

	chartWidget *chart.Widget

	onRender func(kind chart.Kind, xCol, yCol string)
}

// NewPanel creates an empty graph panel.
func NewPanel() *Panel {
	p := &Panel{}

	p.xSelect = widget.NewSelect(nil, nil)
	p.xSelect.PlaceHolder = "X column"

	p.ySelect = widget.NewSelect(nil, nil)
	p.ySelect.PlaceHolder = "Y column"

	kinds := make([]string, 0, len(chart.Kinds()))
	for _, k := range chart.Kinds() {
		kinds = append(kinds, kindLabel(k))
	}
	p.kindRadio = widget.NewRadioGroup(kinds, nil)
	p.kindRadio.Horizontal = true
	p.kindRadio.Selected = kindLabel(chart.Bar)

	p.renderBtn = widget.NewButton("Render", func() {
		p.handleRender()
	})
	p.renderBtn.Importance = widget.HighImportance
	p.renderBtn.Disable()

	p.chartWidget = chart.NewWidget()

	p.ExtendBaseWidget(p)
	return p
}

// SetOnRender sets the callback invoked with the chosen kind and
// columns when Render is clicked.
func (p *Panel) SetOnRender(fn func(kind chart.Kind, xCol, yCol string)) {
	p.onRender = fn
}

// SetColumns refreshes the column pickers. numeric is the subset
// offered for Y; without one there is nothing to plot and the button
// stays disabled.
func (p *Panel) SetColumns(columns, numeric []string) {
	p.xSelect.Options = columns
	p.ySelect.Options = numeric

	if !contains(columns, p.xSelect.Selected) {
		p.xSelect.ClearSelected()
	}
	if !contains(numeric, p.ySelect.Selected) {
		p.ySelect.ClearSelected()
	}

	p.xSelect.Refresh()
	p.ySelect.Refresh()

	if len(columns) == 0 || len(numeric) == 0 {
		p.renderBtn.Disable()
	} else {
		p.renderBtn.Enable()
	}
}

// SetChart shows a rendered chart, or clears the plot area with nil.
func (p *Panel) SetChart(cfg *chart.Config) {
	p.chartWidget.SetConfig(cfg)
}

func (p *Panel) handleRender() {
	if p.onRender == nil || p.xSelect.Selected == "" || p.ySelect.Selected == "" {
		return
	}
	p.onRender(kindFromLabel(p.kindRadio.Selected), p.xSelect.Selected, p.ySelect.Selected)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// kindLabel renders a chart kind for the radio group, "bar" -> "Bar".
func kindLabel(k chart.Kind) string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func kindFromLabel(label string) chart.Kind {
	return chart.Kind(strings.ToLower(label))
}

// CreateRenderer implements fyne.Widget.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	controls := container.NewVBox(
		container.NewGridWithColumns(2, p.xSelect, p.ySelect),
		container.NewBorder(nil, nil, p.kindRadio, p.renderBtn),
	)

	content := container.NewBorder(
		controls,
		nil, nil, nil,
		p.chartWidget,
	)
	return widget.NewSimpleRenderer(content)
}
