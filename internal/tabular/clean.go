package tabular

import (
	"fmt"

	"github.com/rowboat-io/rowboat/internal/domain"
	apperrors "github.com/rowboat-io/rowboat/internal/errors"
)

// DropMissing returns a copy of the table without the rows that have a
// missing cell in any of the given columns.
func DropMissing(t *domain.Table, columns []string) (*domain.Table, error) {
	if t == nil {
		return nil, fmt.Errorf("remove missing: no table loaded")
	}
	if len(columns) == 0 {
		return nil, apperrors.ValidationError{Field: "Columns", Message: "choose at least one column"}
	}

	indices := make([]int, 0, len(columns))
	for _, name := range columns {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("remove missing: unknown column %q", name)
		}
		indices = append(indices, idx)
	}

	out := &domain.Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, 0, len(t.Rows)),
	}

rows:
	for _, row := range t.Rows {
		for _, idx := range indices {
			if IsMissing(cell(row, idx)) {
				continue rows
			}
		}
		out.Rows = append(out.Rows, append([]string(nil), row...))
	}
	return out, nil
}
