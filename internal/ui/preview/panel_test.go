package preview

import (
	"fmt"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/rowboat-io/rowboat/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableWithRows(n int) *domain.Table {
	t := &domain.Table{Columns: []string{"Id", "Name"}}
	for i := 0; i < n; i++ {
		t.Rows = append(t.Rows, []string{fmt.Sprintf("%03d", i), fmt.Sprintf("row %d", i)})
	}
	return t
}

func TestPanelDefaultHead(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetTable(tableWithRows(25))

	assert.False(t, p.slider.Disabled())
	assert.Equal(t, float64(25), p.slider.Max)
	assert.Equal(t, 10, p.HeadCount(), "default preview should be ten rows")
	assert.Equal(t, "Showing 10 of 25 rows", p.countLabel.Text)

	shown := p.view.Table()
	require.NotNil(t, shown)
	assert.Len(t, shown.Rows, 10)
	assert.Equal(t, "row 9", shown.Rows[9][1])
}

func TestPanelSliderChangesHead(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetTable(tableWithRows(25))

	p.slider.SetValue(20)

	assert.Equal(t, 20, p.HeadCount())
	assert.Len(t, p.view.Table().Rows, 20)
	assert.Equal(t, "Showing 20 of 25 rows", p.countLabel.Text)
}

func TestPanelSmallTable(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetTable(tableWithRows(3))

	assert.Equal(t, float64(3), p.slider.Max, "slider should not offer more rows than exist")
	assert.Equal(t, 3, p.HeadCount())
	assert.Equal(t, "Showing 3 of 3 rows", p.countLabel.Text)
}

func TestPanelSliderCapped(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetTable(tableWithRows(500))

	assert.Equal(t, float64(maxHeadRows), p.slider.Max, "preview is capped at one hundred rows")
}

func TestPanelHeaderOnlyTable(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetTable(tableWithRows(0))

	assert.True(t, p.slider.Disabled())
	assert.Equal(t, "0 rows", p.countLabel.Text)
	require.NotNil(t, p.view.Table(), "columns should still show for an empty table")
	assert.Empty(t, p.view.Table().Rows)
}

func TestPanelClear(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	p := NewPanel()
	p.SetTable(tableWithRows(25))
	p.SetTable(nil)

	assert.True(t, p.slider.Disabled())
	assert.Equal(t, "", p.countLabel.Text)
	assert.Nil(t, p.view.Table())
}
