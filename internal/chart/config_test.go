package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowboat-io/rowboat/internal/domain"
	apperrors "github.com/rowboat-io/rowboat/internal/errors"
)

func regionTable() *domain.Table {
	return &domain.Table{
		Columns: []string{"Region", "Amount"},
		Rows: [][]string{
			{"West", "100"},
			{"East", "250.5"},
			{"North", "75"},
		},
	}
}

func TestBuildCategoricalX(t *testing.T) {
	cfg, err := Build(regionTable(), Bar, "Region", "Amount")
	require.NoError(t, err)

	assert.Equal(t, Bar, cfg.Kind)
	assert.Equal(t, "Amount vs Region", cfg.Title)
	assert.Equal(t, "Region", cfg.XLabel)
	assert.Equal(t, "Amount", cfg.YLabel)
	assert.False(t, cfg.NumericX)

	require.Len(t, cfg.Points, 3)
	assert.Equal(t, Point{Label: "West", X: 0, Y: 100}, cfg.Points[0])
	assert.Equal(t, Point{Label: "East", X: 1, Y: 250.5}, cfg.Points[1])
	assert.Equal(t, Point{Label: "North", X: 2, Y: 75}, cfg.Points[2])
}

func TestBuildNumericX(t *testing.T) {
	table := &domain.Table{
		Columns: []string{"Day", "Visits"},
		Rows:    [][]string{{"3", "30"}, {"1", "10"}, {"2", "20"}},
	}

	cfg, err := Build(table, Scatter, "Day", "Visits")
	require.NoError(t, err)
	assert.True(t, cfg.NumericX)
	require.Len(t, cfg.Points, 3)
	assert.Equal(t, 3.0, cfg.Points[0].X, "points keep row order, positions come from values")
	assert.Equal(t, 1.0, cfg.Points[1].X)
}

func TestBuildSkipsUnusableRows(t *testing.T) {
	table := &domain.Table{
		Columns: []string{"Region", "Amount"},
		Rows: [][]string{
			{"West", "100"},
			{"", "200"},      // blank X
			{"East", ""},     // blank Y
			{"North", "n/a"}, // unparseable Y in a numeric column
			{"South", "50"},
			{"Central", "25"},
		},
	}

	cfg, err := Build(table, Line, "Region", "Amount")
	require.NoError(t, err)
	require.Len(t, cfg.Points, 3)
	assert.Equal(t, "West", cfg.Points[0].Label)
	assert.Equal(t, "South", cfg.Points[1].Label)
	assert.Equal(t, 1.0, cfg.Points[1].X, "slots count plotted points only")
	assert.Equal(t, 2.0, cfg.Points[2].X)
}

func TestBuildValidation(t *testing.T) {
	table := regionTable()

	cases := []struct {
		name string
		kind Kind
		x, y string
	}{
		{"unknown kind", Kind("pie"), "Region", "Amount"},
		{"unknown x column", Bar, "Ghost", "Amount"},
		{"unknown y column", Bar, "Region", "Ghost"},
		{"text y column", Bar, "Amount", "Region"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Build(table, tc.kind, tc.x, tc.y)
			var v apperrors.ValidationError
			assert.ErrorAs(t, err, &v)
		})
	}
}

func TestBuildNoPlottableRows(t *testing.T) {
	table := &domain.Table{
		Columns: []string{"Region", "Amount"},
		Rows:    [][]string{{"", "100"}, {"West", ""}},
	}

	_, err := Build(table, Bar, "Region", "Amount")
	assert.ErrorIs(t, err, apperrors.ErrNoData)
}

func TestYRangeBarIncludesZero(t *testing.T) {
	cfg := &Config{Kind: Bar, Points: []Point{{Y: 50}, {Y: 100}}}
	min, max := cfg.YRange()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 100.0, max)

	cfg.Kind = Scatter
	min, max = cfg.YRange()
	assert.Equal(t, 50.0, min)
	assert.Equal(t, 100.0, max)
}

func TestXRange(t *testing.T) {
	cfg := &Config{Points: []Point{{X: 2}, {X: -1}, {X: 5}}}
	min, max := cfg.XRange()
	assert.Equal(t, -1.0, min)
	assert.Equal(t, 5.0, max)
}

func TestKindsOrder(t *testing.T) {
	assert.Equal(t, []Kind{Bar, Line, Scatter}, Kinds())
}
