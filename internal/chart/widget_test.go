package chart

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidgetEmptyRendersNothing(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	w := NewWidget()
	renderer := w.CreateRenderer()
	renderer.Layout(fyne.NewSize(400, 300))

	assert.Empty(t, renderer.Objects())
}

func TestWidgetRendersBars(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	cfg, err := Build(regionTable(), Bar, "Region", "Amount")
	require.NoError(t, err)

	w := NewWidget()
	w.SetConfig(cfg)
	renderer := w.CreateRenderer()
	renderer.Layout(fyne.NewSize(400, 300))

	var bars int
	for _, obj := range renderer.Objects() {
		if _, ok := obj.(*canvas.Rectangle); ok {
			bars++
		}
	}
	assert.Equal(t, len(cfg.Points), bars)
}

func TestWidgetRendersLineSegments(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	cfg, err := Build(regionTable(), Line, "Region", "Amount")
	require.NoError(t, err)

	w := NewWidget()
	w.SetConfig(cfg)
	renderer := w.CreateRenderer()
	renderer.Layout(fyne.NewSize(400, 300))

	var thick int
	for _, obj := range renderer.Objects() {
		if line, ok := obj.(*canvas.Line); ok && line.StrokeWidth == 2 {
			thick++
		}
	}
	assert.Equal(t, len(cfg.Points)-1, thick, "one segment between each pair of points")
}

func TestWidgetClearedByNilConfig(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	cfg, err := Build(regionTable(), Scatter, "Region", "Amount")
	require.NoError(t, err)

	w := NewWidget()
	w.SetConfig(cfg)
	renderer := w.CreateRenderer()
	renderer.Layout(fyne.NewSize(400, 300))
	require.NotEmpty(t, renderer.Objects())

	w.SetConfig(nil)
	renderer.Refresh()
	assert.Empty(t, renderer.Objects())
}

func TestTruncateLabel(t *testing.T) {
	assert.Equal(t, "short", truncateLabel("short", 10))
	assert.Equal(t, "very long…", truncateLabel("very long label", 10))
}

func TestPadRange(t *testing.T) {
	min, max := padRange(1, 5)
	assert.Equal(t, 1.0, min)
	assert.Equal(t, 5.0, max)

	min, max = padRange(3, 3)
	assert.Less(t, min, 3.0)
	assert.Greater(t, max, 3.0)

	min, max = padRange(0, 0)
	assert.Equal(t, -1.0, min)
	assert.Equal(t, 1.0, max)
}
