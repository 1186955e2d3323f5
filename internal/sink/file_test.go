package sink

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rowboat-io/rowboat/internal/domain"
	"github.com/rowboat-io/rowboat/internal/source"
)

func exportTable() *domain.Table {
	return &domain.Table{
		Columns: []string{"Name", "Amount"},
		Rows: [][]string{
			{"Acme", "100"},
			{"Globex", "250.5"},
			{"Initech", ""},
		},
	}
}

func TestEncodeCSV(t *testing.T) {
	data, err := EncodeCSV(exportTable(), 0)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Name", "Amount"}, records[0])
	assert.Equal(t, []string{"Initech", ""}, records[3])
}

func TestEncodeCSVRowLimit(t *testing.T) {
	data, err := EncodeCSV(exportTable(), 1)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "header plus one data row")
	assert.Equal(t, []string{"Acme", "100"}, records[1])
}

func TestEncodeCSVLimitPastEnd(t *testing.T) {
	data, err := EncodeCSV(exportTable(), 99)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestEncodeCSVRoundTrip(t *testing.T) {
	tbl := &domain.Table{
		Columns: []string{"Name", "Note", "Amount"},
		Rows: [][]string{
			{"Acme, Inc.", `said "hi"`, "100"},
			{"Globex", "two\nlines", "250.5"},
			{"Initech", "", "75"},
		},
	}

	data, err := EncodeCSV(tbl, 0)
	require.NoError(t, err)

	loaded, err := source.LoadReader("roundtrip.csv", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns, loaded.Columns)
	assert.Equal(t, tbl.Rows, loaded.Rows, "quoting survives a save and reload")
}

func TestEncodeXLSX(t *testing.T) {
	data, err := EncodeXLSX(exportTable(), 0)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Name", "Amount"}, rows[0])
	assert.Equal(t, []string{"Acme", "100"}, rows[1])
	assert.Equal(t, []string{"Globex", "250.5"}, rows[2])

	// text cells land in the shared string table, number cells do not
	nameType, err := f.GetCellType(f.GetSheetName(0), "A2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeSharedString, nameType)

	amountType, err := f.GetCellType(f.GetSheetName(0), "B2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, amountType)
}

func TestEncodeXLSXRowLimit(t *testing.T) {
	data, err := EncodeXLSX(exportTable(), 2)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, WriteFile(path, []byte("first")))
	require.NoError(t, WriteFile(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}
