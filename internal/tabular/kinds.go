package tabular

import (
	"strconv"
	"strings"

	"github.com/rowboat-io/rowboat/internal/domain"
)

// Kind is the inferred type of a column.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
)

func (k Kind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "text"
}

// numericThreshold is the share of non-missing cells that must parse as
// numbers for a column to count as numeric.
const numericThreshold = 0.8

// IsMissing reports whether a cell holds no value. Blank and
// whitespace-only cells are the missing marker.
func IsMissing(cell string) bool {
	return strings.TrimSpace(cell) == ""
}

// ParseNumber parses a cell as a float64. Thousands separators are
// tolerated ("1,234.5").
func ParseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatNumber renders a float the shortest way that round-trips,
// without scientific notation.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ColumnKind infers the kind of one column by sampling every cell:
// numeric when at least 80% of the non-missing cells parse as numbers,
// text otherwise. An all-missing column is text.
func ColumnKind(t *domain.Table, col int) Kind {
	if t == nil || col < 0 || col >= len(t.Columns) {
		return KindText
	}

	present := 0
	numeric := 0
	for _, row := range t.Rows {
		if col >= len(row) || IsMissing(row[col]) {
			continue
		}
		present++
		if _, ok := ParseNumber(row[col]); ok {
			numeric++
		}
	}

	if present == 0 {
		return KindText
	}
	if float64(numeric) >= numericThreshold*float64(present) {
		return KindNumeric
	}
	return KindText
}

// Kinds infers the kind of every column.
func Kinds(t *domain.Table) []Kind {
	if t == nil {
		return nil
	}
	kinds := make([]Kind, len(t.Columns))
	for i := range t.Columns {
		kinds[i] = ColumnKind(t, i)
	}
	return kinds
}

// NumericColumns returns the names of the columns inferred as numeric.
func NumericColumns(t *domain.Table) []string {
	if t == nil {
		return nil
	}
	var out []string
	for i, name := range t.Columns {
		if ColumnKind(t, i) == KindNumeric {
			out = append(out, name)
		}
	}
	return out
}

// cell returns the cell at (row, col), tolerating short rows.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
