package chart

import (
	"image/color"
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// seriesColor fills bars, line segments and dots. Indigo holds up on
// both light and dark themes.
var seriesColor = color.NRGBA{R: 0x4F, G: 0x46, B: 0xE5, A: 0xFF}

// axisColor reads on both light and dark themes.
var axisColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}

var gridColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x40}

const (
	marginLeft   float32 = 56
	marginRight  float32 = 12
	marginTop    float32 = 30
	marginBottom float32 = 42
	yTickCount           = 5
	maxXLabels           = 8
	barFill              = 0.6
	dotSize      float32 = 7
)

// Widget draws one Config onto the canvas. SetConfig swaps the chart.
type Widget struct {
	widget.BaseWidget

	config *Config
}

// NewWidget creates an empty chart area.
func NewWidget() *Widget {
	w := &Widget{}
	w.ExtendBaseWidget(w)
	return w
}

// SetConfig replaces the rendered chart; nil clears the area.
func (w *Widget) SetConfig(c *Config) {
	w.config = c
	w.Refresh()
}

// Config returns the chart currently shown, or nil.
func (w *Widget) Config() *Config {
	return w.config
}

// CreateRenderer implements fyne.Widget.
func (w *Widget) CreateRenderer() fyne.WidgetRenderer {
	return &chartRenderer{widget: w}
}

type chartRenderer struct {
	widget  *Widget
	size    fyne.Size
	objects []fyne.CanvasObject
}

func (r *chartRenderer) Layout(size fyne.Size) {
	r.size = size
	r.rebuild()
}

func (r *chartRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 240)
}

func (r *chartRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.widget)
}

func (r *chartRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *chartRenderer) Destroy() {}

// rebuild regenerates every canvas object for the current config and
// size. Cheap enough to redo wholesale on each change.
func (r *chartRenderer) rebuild() {
	r.objects = nil
	cfg := r.widget.config
	if cfg == nil || len(cfg.Points) == 0 {
		return
	}

	plotW := r.size.Width - marginLeft - marginRight
	plotH := r.size.Height - marginTop - marginBottom
	if plotW <= 0 || plotH <= 0 {
		return
	}

	xmin, xmax := cfg.XRange()
	xmin, xmax = padRange(xmin, xmax)
	ymin, ymax := cfg.YRange()
	ymin, ymax = padRange(ymin, ymax)

	px := func(x float64) float32 {
		return marginLeft + float32((x-xmin)/(xmax-xmin))*plotW
	}
	py := func(y float64) float32 {
		return marginTop + plotH - float32((y-ymin)/(ymax-ymin))*plotH
	}

	r.addTitle(cfg)
	r.addYAxis(ymin, ymax, py, plotW)
	r.addXAxis(cfg, xmin, xmax, px, plotH)
	r.addFrame(plotW, plotH)

	switch cfg.Kind {
	case Bar:
		r.addBars(cfg, px, py, plotW)
	case Line:
		r.addLines(cfg, px, py)
	case Scatter:
		r.addDots(cfg, px, py)
	}
}

func (r *chartRenderer) addTitle(cfg *Config) {
	title := canvas.NewText(cfg.Title, theme.Color(theme.ColorNameForeground))
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = theme.TextSize()
	w := fyne.MeasureText(cfg.Title, title.TextSize, title.TextStyle).Width
	title.Move(fyne.NewPos((r.size.Width-w)/2, 4))
	r.objects = append(r.objects, title)
}

func (r *chartRenderer) addFrame(plotW, plotH float32) {
	left := canvas.NewLine(axisColor)
	left.Position1 = fyne.NewPos(marginLeft, marginTop)
	left.Position2 = fyne.NewPos(marginLeft, marginTop+plotH)

	bottom := canvas.NewLine(axisColor)
	bottom.Position1 = fyne.NewPos(marginLeft, marginTop+plotH)
	bottom.Position2 = fyne.NewPos(marginLeft+plotW, marginTop+plotH)

	r.objects = append(r.objects, left, bottom)
}

func (r *chartRenderer) addYAxis(ymin, ymax float64, py func(float64) float32, plotW float32) {
	for i := 0; i < yTickCount; i++ {
		v := ymin + float64(i)*(ymax-ymin)/float64(yTickCount-1)
		y := py(v)

		if i > 0 {
			grid := canvas.NewLine(gridColor)
			grid.Position1 = fyne.NewPos(marginLeft, y)
			grid.Position2 = fyne.NewPos(marginLeft+plotW, y)
			r.objects = append(r.objects, grid)
		}

		label := tickText(formatTick(v))
		sz := fyne.MeasureText(label.Text, label.TextSize, label.TextStyle)
		label.Move(fyne.NewPos(marginLeft-6-sz.Width, y-sz.Height/2))
		r.objects = append(r.objects, label)
	}
}

func (r *chartRenderer) addXAxis(cfg *Config, xmin, xmax float64, px func(float64) float32, plotH float32) {
	bottom := marginTop + plotH
	if cfg.NumericX {
		for i := 0; i < yTickCount; i++ {
			v := xmin + float64(i)*(xmax-xmin)/float64(yTickCount-1)
			label := tickText(formatTick(v))
			sz := fyne.MeasureText(label.Text, label.TextSize, label.TextStyle)
			label.Move(fyne.NewPos(px(v)-sz.Width/2, bottom+4))
			r.objects = append(r.objects, label)
		}
	} else {
		step := (len(cfg.Points) + maxXLabels - 1) / maxXLabels
		for i, p := range cfg.Points {
			if i%step != 0 {
				continue
			}
			label := tickText(truncateLabel(p.Label, 10))
			sz := fyne.MeasureText(label.Text, label.TextSize, label.TextStyle)
			label.Move(fyne.NewPos(px(p.X)-sz.Width/2, bottom+4))
			r.objects = append(r.objects, label)
		}
	}

	name := tickText(cfg.XLabel)
	sz := fyne.MeasureText(name.Text, name.TextSize, name.TextStyle)
	name.Move(fyne.NewPos(marginLeft+(r.size.Width-marginLeft-marginRight-sz.Width)/2, r.size.Height-sz.Height-2))
	r.objects = append(r.objects, name)
}

func (r *chartRenderer) addBars(cfg *Config, px func(float64) float32, py func(float64) float32, plotW float32) {
	slot := plotW / float32(len(cfg.Points))
	width := slot * barFill
	if width < 2 {
		width = 2
	}
	base := py(0)

	for _, p := range cfg.Points {
		bar := canvas.NewRectangle(seriesColor)
		top := py(p.Y)
		y, h := top, base-top
		if h < 0 {
			y, h = base, -h
		}
		bar.Move(fyne.NewPos(px(p.X)-width/2, y))
		bar.Resize(fyne.NewSize(width, h))
		r.objects = append(r.objects, bar)
	}
}

func (r *chartRenderer) addLines(cfg *Config, px func(float64) float32, py func(float64) float32) {
	points := cfg.Points
	if cfg.NumericX {
		points = append([]Point(nil), points...)
		sort.SliceStable(points, func(i, j int) bool { return points[i].X < points[j].X })
	}

	for i := 1; i < len(points); i++ {
		seg := canvas.NewLine(seriesColor)
		seg.StrokeWidth = 2
		seg.Position1 = fyne.NewPos(px(points[i-1].X), py(points[i-1].Y))
		seg.Position2 = fyne.NewPos(px(points[i].X), py(points[i].Y))
		r.objects = append(r.objects, seg)
	}
	if len(points) == 1 {
		r.addDots(cfg, px, py)
	}
}

func (r *chartRenderer) addDots(cfg *Config, px func(float64) float32, py func(float64) float32) {
	for _, p := range cfg.Points {
		dot := canvas.NewCircle(seriesColor)
		dot.Move(fyne.NewPos(px(p.X)-dotSize/2, py(p.Y)-dotSize/2))
		dot.Resize(fyne.NewSize(dotSize, dotSize))
		r.objects = append(r.objects, dot)
	}
}

func tickText(s string) *canvas.Text {
	t := canvas.NewText(s, axisColor)
	t.TextSize = theme.CaptionTextSize()
	return t
}

// padRange widens a degenerate range so scaling never divides by zero.
func padRange(min, max float64) (float64, float64) {
	if min != max {
		return min, max
	}
	pad := 1.0
	if min != 0 {
		pad = min * 0.1
		if pad < 0 {
			pad = -pad
		}
	}
	return min - pad, max + pad
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func truncateLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
