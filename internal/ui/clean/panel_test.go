package clean

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/rowboat-io/rowboat/internal/tabular"
	"github.com/stretchr/testify/assert"
)

func TestPanelStartsDisabled(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()

	assert.True(t, p.sortBtn.Disabled())
	assert.True(t, p.dropBtn.Disabled())
	assert.True(t, p.groupBtn.Disabled())
}

func TestPanelSetColumns(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetColumns([]string{"Name", "Amount"})

	assert.Equal(t, []string{"Name", "Amount"}, p.sortColumn.Options)
	assert.Equal(t, []string{"Name", "Amount"}, p.keySelect.Options)
	assert.Equal(t, []string{"Name", "Amount"}, p.missingChecks.Options)
	assert.Equal(t, []string{"Name", "Amount"}, p.aggChecks.Options, "no key chosen yet, so every column is aggregable")
	assert.False(t, p.sortBtn.Disabled())
}

func TestPanelSetColumnsClearsStaleSelection(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetColumns([]string{"Name", "Amount"})

	p.sortColumn.SetSelected("Amount")
	p.missingChecks.SetSelected([]string{"Name", "Amount"})

	p.SetColumns([]string{"Name", "Region"})

	assert.Equal(t, "", p.sortColumn.Selected, "selection should clear when its column disappears")
	assert.Equal(t, []string{"Name"}, p.missingChecks.Selected, "surviving checks should be kept")
}

func TestPanelSort(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetColumns([]string{"Name", "Amount"})

	var gotColumn string
	var gotDescending bool
	p.SetOnSort(func(column string, descending bool) {
		gotColumn = column
		gotDescending = descending
	})

	p.sortColumn.SetSelected("Amount")
	p.direction.SetSelected("Descending")
	p.handleSort()

	assert.Equal(t, "Amount", gotColumn)
	assert.True(t, gotDescending)
}

func TestPanelSortWithoutColumnDoesNothing(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetColumns([]string{"Name"})

	called := false
	p.SetOnSort(func(string, bool) { called = true })

	p.handleSort()
	assert.False(t, called, "sort without a column selection should be ignored")
}

func TestPanelDropMissing(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetColumns([]string{"Name", "Amount", "Region"})

	var got []string
	p.SetOnDropMissing(func(columns []string) {
		got = columns
	})

	p.missingChecks.SetSelected([]string{"Amount", "Region"})
	p.handleDropMissing()

	assert.Equal(t, []string{"Amount", "Region"}, got)
}

func TestPanelGroup(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetColumns([]string{"Region", "Amount", "Count"})

	var gotKey string
	var gotColumns []string
	var gotAgg tabular.Aggregation
	p.SetOnGroup(func(key string, columns []string, agg tabular.Aggregation) {
		gotKey = key
		gotColumns = columns
		gotAgg = agg
	})

	p.keySelect.SetSelected("Region")
	p.aggChecks.SetSelected([]string{"Amount", "Count"})
	p.aggSelect.SetSelected("mean")
	p.handleGroup()

	assert.Equal(t, "Region", gotKey)
	assert.Equal(t, []string{"Amount", "Count"}, gotColumns)
	assert.Equal(t, tabular.AggMean, gotAgg)
}

func TestPanelGroupKeyExcludedFromAggregates(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetColumns([]string{"Region", "Amount"})

	assert.Equal(t, []string{"Region", "Amount"}, p.aggChecks.Options)

	p.keySelect.SetSelected("Region")
	assert.Equal(t, []string{"Amount"}, p.aggChecks.Options, "the key cannot also be aggregated")

	p.aggChecks.SetSelected([]string{"Amount"})
	p.keySelect.SetSelected("Amount")
	assert.Equal(t, []string{"Region"}, p.aggChecks.Options)
	assert.Empty(t, p.aggChecks.Selected, "a check on the new key is dropped")
}

func TestPanelGroupWithoutColumnsDoesNothing(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetColumns([]string{"Region", "Amount"})

	called := false
	p.SetOnGroup(func(string, []string, tabular.Aggregation) { called = true })

	p.keySelect.SetSelected("Region")
	p.handleGroup()

	assert.False(t, called, "grouping with no aggregate columns should be ignored")
}

func TestPanelAggregationMenu(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()

	assert.Equal(t, []string{"count", "sum", "mean", "min", "max"}, p.aggSelect.Options)
	assert.Equal(t, "count", p.aggSelect.Selected, "count is the safe default for any column type")
}
