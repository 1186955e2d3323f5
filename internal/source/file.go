package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/rowboat-io/rowboat/internal/domain"
	apperrors "github.com/rowboat-io/rowboat/internal/errors"
)

// LoadFile reads a tabular file into a table, dispatching on the file
// extension: .csv, .xls or .xlsx. The first row is the header.
func LoadFile(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return LoadReader(filepath.Base(path), f)
}

// LoadReader is LoadFile over an already-open reader; name supplies the
// extension. Any other extension fails with ErrUnsupportedFormat.
func LoadReader(name string, r io.Reader) (*domain.Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return loadCSV(r)
	case ".xlsx":
		return loadXLSX(r)
	case ".xls":
		return loadXLS(r)
	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, name)
	}
}

func loadCSV(r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, normalize below

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return normalize(records)
}

func loadXLSX(r io.Reader) (*domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.ErrNoData
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return normalize(records)
}

func loadXLS(r io.Reader) (*domain.Table, error) {
	// the reader needs to seek, so pull the file into memory first
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read xls: %w", err)
	}

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, apperrors.ErrNoData
	}

	var records [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			records = append(records, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		records = append(records, cells)
	}
	return normalize(records)
}

// normalize shapes raw records into a table: first record is the header,
// data rows are padded or truncated to the header width. A file with no
// records at all is ErrNoData; a header-only file is a valid empty table.
func normalize(records [][]string) (*domain.Table, error) {
	if len(records) == 0 {
		return nil, apperrors.ErrNoData
	}

	header := append([]string(nil), records[0]...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	if len(header) == 0 {
		return nil, apperrors.ErrNoData
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(header))
		copy(row, rec)
		rows = append(rows, row)
	}

	return &domain.Table{Columns: header, Rows: rows}, nil
}
