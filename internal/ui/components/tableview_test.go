package components

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/rowboat-io/rowboat/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleTable() *domain.Table {
	return &domain.Table{
		Columns: []string{"Name", "Amount"},
		Rows: [][]string{
			{"Acme", "100"},
			{"Globex", "250.5"},
		},
	}
}

func TestTableViewStartsWithPlaceholder(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	v := NewTableView("No data loaded")

	assert.Nil(t, v.Table())
	assert.Len(t, v.content.Objects, 1)
	assert.NotEqual(t, v.grid, v.content.Objects[0], "grid should be hidden while empty")
}

func TestTableViewSetTable(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	v := NewTableView("No data loaded")
	v.SetTable(sampleTable())

	assert.Len(t, v.content.Objects, 1)
	assert.Equal(t, v.grid, v.content.Objects[0], "grid should show once data arrives")

	assert.Equal(t, "Acme", v.cellText(0, 0))
	assert.Equal(t, "250.5", v.cellText(1, 1))
	assert.Equal(t, "", v.cellText(5, 0), "out of range rows render blank")
	assert.Equal(t, "", v.cellText(0, 9), "out of range columns render blank")
}

func TestTableViewHeaderRow(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	v := NewTableView("No data loaded")
	v.SetTable(sampleTable())

	assert.True(t, v.grid.ShowHeaderRow)

	header := v.grid.CreateHeader().(*widget.Label)
	v.grid.UpdateHeader(widget.TableCellID{Row: -1, Col: 1}, header)
	assert.Equal(t, "Amount", header.Text)

	v.grid.UpdateHeader(widget.TableCellID{Row: -1, Col: 7}, header)
	assert.Equal(t, "", header.Text, "missing columns render blank headers")
}

func TestTableViewClears(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	v := NewTableView("No data loaded")
	v.SetTable(sampleTable())
	v.SetTable(nil)

	assert.Nil(t, v.Table())
	assert.NotEqual(t, v.grid, v.content.Objects[0], "placeholder should come back after clearing")
}

func TestHeaderWidthBounds(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	assert.Equal(t, float32(minColumnWidth), headerWidth("Id"), "short headers use the minimum width")
	long := headerWidth("An Extremely Long Column Header That Goes On And On")
	assert.Equal(t, float32(maxColumnWidth), long, "long headers are capped")
}

func TestHintLabelTruncation(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	h := NewHintLabel("short")
	assert.Equal(t, "short", h.label.Text)
	assert.Equal(t, "short", h.Text())

	h.SetText("a very long field type description")
	assert.Equal(t, "a very long f…", h.label.Text)
	assert.Equal(t, "a very long field type description", h.Text())
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{name: "shorter than max", input: "abc", max: 8, expected: "abc"},
		{name: "exactly max", input: "abcdefgh", max: 8, expected: "abcdefgh"},
		{name: "longer than max", input: "abcdefghi", max: 8, expected: "abcdefg…"},
		{name: "multibyte runes", input: "日本語のテキストです", max: 8, expected: "日本語のテキス…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncateRunes(tt.input, tt.max))
		})
	}
}

func TestNewSection(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	expanded := NewSection("CSV", widget.NewLabel("content"), true)
	assert.True(t, expanded.Items[0].Open, "section should start expanded")

	collapsed := NewSection("Database", widget.NewLabel("content"), false)
	assert.False(t, collapsed.Items[0].Open, "section should start collapsed")
}
