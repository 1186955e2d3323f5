package graph

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/rowboat-io/rowboat/internal/chart"
	"github.com/stretchr/testify/assert"
)

func TestPanelStartsDisabled(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	assert.True(t, p.renderBtn.Disabled())
	assert.Equal(t, "Bar", p.kindRadio.Selected)
}

func TestPanelSetColumns(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetColumns([]string{"Region", "Amount"}, []string{"Amount"})

	assert.Equal(t, []string{"Region", "Amount"}, p.xSelect.Options)
	assert.Equal(t, []string{"Amount"}, p.ySelect.Options, "Y only offers numeric columns")
	assert.False(t, p.renderBtn.Disabled())
}

func TestPanelNoNumericColumns(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetColumns([]string{"Name", "Region"}, nil)

	assert.True(t, p.renderBtn.Disabled(), "nothing to plot without a numeric column")
}

func TestPanelRender(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetColumns([]string{"Region", "Amount"}, []string{"Amount"})

	var gotKind chart.Kind
	var gotX, gotY string
	p.SetOnRender(func(kind chart.Kind, xCol, yCol string) {
		gotKind = kind
		gotX = xCol
		gotY = yCol
	})

	p.xSelect.SetSelected("Region")
	p.ySelect.SetSelected("Amount")
	p.kindRadio.SetSelected("Scatter")
	p.handleRender()

	assert.Equal(t, chart.Scatter, gotKind)
	assert.Equal(t, "Region", gotX)
	assert.Equal(t, "Amount", gotY)
}

func TestPanelRenderNeedsBothColumns(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetColumns([]string{"Region", "Amount"}, []string{"Amount"})

	called := false
	p.SetOnRender(func(chart.Kind, string, string) { called = true })

	p.xSelect.SetSelected("Region")
	p.handleRender()
	assert.False(t, called, "render without a Y selection should be ignored")
}

func TestKindLabelRoundTrip(t *testing.T) {
	for _, k := range chart.Kinds() {
		assert.Equal(t, k, kindFromLabel(kindLabel(k)))
	}
	assert.Equal(t, "Bar", kindLabel(chart.Bar))
}
