package tabular

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rowboat-io/rowboat/internal/domain"
)

// Sort returns a copy of the table ordered by one column. Numeric columns
// compare numerically, text columns lexicographically. Missing cells sort
// after present ones regardless of direction. The sort is stable, so rows
// with equal keys keep their input order.
func Sort(t *domain.Table, column string, descending bool) (*domain.Table, error) {
	if t == nil {
		return nil, fmt.Errorf("sort: no table loaded")
	}
	col := t.ColumnIndex(column)
	if col < 0 {
		return nil, fmt.Errorf("sort: unknown column %q", column)
	}

	kind := ColumnKind(t, col)

	order := make([]int, len(t.Rows))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return rowLess(t.Rows[order[a]], t.Rows[order[b]], col, kind, descending)
	})

	out := &domain.Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, idx := range order {
		out.Rows[i] = append([]string(nil), t.Rows[idx]...)
	}
	return out, nil
}

// rowLess orders two rows by the key column. Cells that are missing, or
// that fail to parse in a numeric column, always rank last.
func rowLess(a, b []string, col int, kind Kind, descending bool) bool {
	av, aok := sortKey(cell(a, col), kind)
	bv, bok := sortKey(cell(b, col), kind)

	if aok != bok {
		return aok
	}
	if !aok {
		return false
	}

	var less bool
	if kind == KindNumeric {
		if av.num == bv.num {
			return false
		}
		less = av.num < bv.num
	} else {
		c := strings.Compare(av.text, bv.text)
		if c == 0 {
			return false
		}
		less = c < 0
	}
	if descending {
		return !less
	}
	return less
}

type sortValue struct {
	num  float64
	text string
}

func sortKey(c string, kind Kind) (sortValue, bool) {
	if IsMissing(c) {
		return sortValue{}, false
	}
	if kind == KindNumeric {
		f, ok := ParseNumber(c)
		if !ok {
			return sortValue{}, false
		}
		return sortValue{num: f}, true
	}
	return sortValue{text: c}, true
}
