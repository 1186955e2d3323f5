package chart

import (
	"fmt"

	"github.com/rowboat-io/rowboat/internal/domain"
	apperrors "github.com/rowboat-io/rowboat/internal/errors"
	"github.com/rowboat-io/rowboat/internal/tabular"
)

// Kind selects how points are drawn.
type Kind string

const (
	Bar     Kind = "bar"
	Line    Kind = "line"
	Scatter Kind = "scatter"
)

// Kinds returns the chart kinds in menu order.
func Kinds() []Kind {
	return []Kind{Bar, Line, Scatter}
}

// Point is one plotted value. Label keeps the original X cell for
// categorical axes.
type Point struct {
	Label string
	X     float64
	Y     float64
}

// Config is a chart ready to render: the points plus everything the
// renderer needs to lay out axes.
type Config struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string

	// NumericX places points by X value; otherwise each point gets an
	// evenly spaced category slot in row order.
	NumericX bool
	Points   []Point
}

// Build plots yCol against xCol, one point per row. The Y column must
// be numeric; rows with a blank X or an unusable Y are skipped.
func Build(t *domain.Table, kind Kind, xCol, yCol string) (*Config, error) {
	switch kind {
	case Bar, Line, Scatter:
	default:
		return nil, apperrors.ValidationError{Field: "Chart", Message: fmt.Sprintf("unknown chart kind %q", kind)}
	}

	xi := t.ColumnIndex(xCol)
	if xi < 0 {
		return nil, apperrors.ValidationError{Field: "X", Message: fmt.Sprintf("column %q not in table", xCol)}
	}
	yi := t.ColumnIndex(yCol)
	if yi < 0 {
		return nil, apperrors.ValidationError{Field: "Y", Message: fmt.Sprintf("column %q not in table", yCol)}
	}
	if tabular.ColumnKind(t, yi) != tabular.KindNumeric {
		return nil, apperrors.ValidationError{Field: "Y", Message: fmt.Sprintf("column %q is not numeric", yCol)}
	}

	numericX := tabular.ColumnKind(t, xi) == tabular.KindNumeric

	cfg := &Config{
		Kind:     kind,
		Title:    fmt.Sprintf("%s vs %s", yCol, xCol),
		XLabel:   xCol,
		YLabel:   yCol,
		NumericX: numericX,
	}

	for _, row := range t.Rows {
		xc := cellAt(row, xi)
		yc := cellAt(row, yi)
		if tabular.IsMissing(xc) || tabular.IsMissing(yc) {
			continue
		}
		y, ok := tabular.ParseNumber(yc)
		if !ok {
			continue
		}

		p := Point{Label: xc, Y: y}
		if numericX {
			x, ok := tabular.ParseNumber(xc)
			if !ok {
				continue
			}
			p.X = x
		} else {
			p.X = float64(len(cfg.Points))
		}
		cfg.Points = append(cfg.Points, p)
	}

	if len(cfg.Points) == 0 {
		return nil, fmt.Errorf("%w: no plottable rows", apperrors.ErrNoData)
	}
	return cfg, nil
}

// XRange returns the spread of X positions.
func (c *Config) XRange() (min, max float64) {
	return pointRange(c.Points, func(p Point) float64 { return p.X })
}

// YRange returns the spread of Y values. Bar charts always include the
// zero baseline.
func (c *Config) YRange() (min, max float64) {
	min, max = pointRange(c.Points, func(p Point) float64 { return p.Y })
	if c.Kind == Bar {
		if min > 0 {
			min = 0
		}
		if max < 0 {
			max = 0
		}
	}
	return min, max
}

func pointRange(points []Point, get func(Point) float64) (min, max float64) {
	if len(points) == 0 {
		return 0, 0
	}
	min = get(points[0])
	max = min
	for _, p := range points[1:] {
		v := get(p)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return row[col]
}
