package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/rowboat-io/rowboat/internal/errors"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileCSV(t *testing.T) {
	path := writeTemp(t, "accounts.csv", "Name,Amount\nAcme,100\nGlobex,250\n")

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Amount"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Globex", "250"}, table.Rows[1])
}

func TestLoadFileCSVRaggedRows(t *testing.T) {
	path := writeTemp(t, "ragged.csv", "A,B,C\n1,2\n4,5,6,7\n")

	table, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"1", "2", ""}, table.Rows[0], "short rows pad to header width")
	assert.Equal(t, []string{"4", "5", "6"}, table.Rows[1], "long rows truncate to header width")
}

func TestLoadFileCSVByteOrderMark(t *testing.T) {
	path := writeTemp(t, "bom.csv", "\uFEFFName,City\nAcme,Omaha\n")

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "City"}, table.Columns)
}

func TestLoadFileCSVHeaderOnly(t *testing.T) {
	path := writeTemp(t, "empty.csv", "Name,Amount\n")

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Amount"}, table.Columns)
	assert.Empty(t, table.Rows)
}

func TestLoadFileCSVNoContent(t *testing.T) {
	path := writeTemp(t, "nothing.csv", "")

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, apperrors.ErrNoData)
}

func TestLoadFileXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Name", "Amount"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Acme", 100}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Globex", 250}))

	path := filepath.Join(t.TempDir(), "accounts.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name", "Amount"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Acme", "100"}, table.Rows[0])
}

func TestLoadFileXLSCorrupt(t *testing.T) {
	path := writeTemp(t, "broken.xls", "this is not a spreadsheet")

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrUnsupportedFormat, ".xls is a supported extension")
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "notes.txt", "Name,Amount\n")

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "gone.csv"))
	assert.Error(t, err)
}

func TestLoadReaderExtensionCase(t *testing.T) {
	table, err := LoadReader("REPORT.CSV", strings.NewReader("A\n1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, table.Columns)
}
