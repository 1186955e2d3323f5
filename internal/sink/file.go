package sink

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/rowboat-io/rowboat/internal/domain"
	"github.com/rowboat-io/rowboat/internal/tabular"
)

const filePermission = 0644

// rowLimit resolves the export row count: limit <= 0 means every row.
func rowLimit(t *domain.Table, limit int) int {
	if limit <= 0 || limit > len(t.Rows) {
		return len(t.Rows)
	}
	return limit
}

// EncodeCSV renders the table as CSV bytes, header first. A positive
// limit caps the number of data rows.
func EncodeCSV(t *domain.Table, limit int) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows[:rowLimit(t, limit)] {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeXLSX renders the table as an xlsx workbook with a single sheet.
// Cells in numeric columns are written as numbers so spreadsheet
// formulas work on them.
func EncodeXLSX(t *domain.Table, limit int) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]any, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	kinds := tabular.Kinds(t)
	for i, row := range t.Rows[:rowLimit(t, limit)] {
		cells := make([]any, len(row))
		for j, c := range row {
			cells[j] = exportCell(c, kinds[j])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// exportCell converts a cell for the workbook: parseable values in
// numeric columns become numbers, everything else stays text.
func exportCell(c string, kind tabular.Kind) any {
	if kind == tabular.KindNumeric && !tabular.IsMissing(c) {
		if f, ok := tabular.ParseNumber(c); ok {
			return f
		}
	}
	return c
}

// WriteFile writes data to path atomically: temp file in the same
// directory, sync, then rename over the target.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := f.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, filePermission); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}
