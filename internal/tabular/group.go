package tabular

import (
	"fmt"

	"github.com/rowboat-io/rowboat/internal/domain"
	apperrors "github.com/rowboat-io/rowboat/internal/errors"
)

// Aggregation names a group-by aggregation function.
type Aggregation string

const (
	AggCount Aggregation = "count"
	AggSum   Aggregation = "sum"
	AggMean  Aggregation = "mean"
	AggMin   Aggregation = "min"
	AggMax   Aggregation = "max"
)

// Aggregations lists the supported functions in menu order.
func Aggregations() []Aggregation {
	return []Aggregation{AggCount, AggSum, AggMean, AggMin, AggMax}
}

func (a Aggregation) valid() bool {
	switch a {
	case AggCount, AggSum, AggMean, AggMin, AggMax:
		return true
	}
	return false
}

// AggSpec pairs one column with the aggregation applied to it.
type AggSpec struct {
	Column string
	Agg    Aggregation
}

// GroupBy groups the table by one key column and aggregates the chosen
// columns. Groups appear in first-seen order; the output header is the key
// followed by "<column> (<agg>)". sum and mean require a numeric column and
// fail before anything is grouped; count works anywhere; min and max compare
// numerically on numeric columns and lexicographically on text. Missing
// cells are ignored, and a group with nothing to aggregate gets an empty
// cell.
func GroupBy(t *domain.Table, key string, specs []AggSpec) (*domain.Table, error) {
	if t == nil {
		return nil, fmt.Errorf("group by: no table loaded")
	}
	keyIdx := t.ColumnIndex(key)
	if keyIdx < 0 {
		return nil, fmt.Errorf("group by: unknown column %q", key)
	}
	if len(specs) == 0 {
		return nil, apperrors.ValidationError{Field: "Aggregations", Message: "choose at least one column to aggregate"}
	}

	type column struct {
		index int
		agg   Aggregation
		kind  Kind
	}
	cols := make([]column, 0, len(specs))
	for _, spec := range specs {
		idx := t.ColumnIndex(spec.Column)
		if idx < 0 {
			return nil, fmt.Errorf("group by: unknown column %q", spec.Column)
		}
		if idx == keyIdx {
			return nil, apperrors.ValidationError{Field: spec.Column, Message: "cannot aggregate the group key"}
		}
		if !spec.Agg.valid() {
			return nil, fmt.Errorf("group by: unknown aggregation %q", spec.Agg)
		}
		kind := ColumnKind(t, idx)
		if (spec.Agg == AggSum || spec.Agg == AggMean) && kind != KindNumeric {
			return nil, fmt.Errorf("%s of %q: %w", spec.Agg, spec.Column, apperrors.ErrIncompatibleAggregation)
		}
		cols = append(cols, column{index: idx, agg: spec.Agg, kind: kind})
	}

	// One accumulator per (group, aggregated column), groups kept in
	// first-seen order.
	groupIndex := make(map[string]int)
	var groupKeys []string
	var accs [][]*accumulator

	for _, row := range t.Rows {
		k := cell(row, keyIdx)
		gi, ok := groupIndex[k]
		if !ok {
			gi = len(groupKeys)
			groupIndex[k] = gi
			groupKeys = append(groupKeys, k)
			groupAccs := make([]*accumulator, len(cols))
			for i, c := range cols {
				groupAccs[i] = newAccumulator(c.agg, c.kind)
			}
			accs = append(accs, groupAccs)
		}
		for i, c := range cols {
			accs[gi][i].add(cell(row, c.index))
		}
	}

	out := &domain.Table{
		Columns: make([]string, 0, len(cols)+1),
		Rows:    make([][]string, 0, len(groupKeys)),
	}
	out.Columns = append(out.Columns, key)
	for _, spec := range specs {
		out.Columns = append(out.Columns, fmt.Sprintf("%s (%s)", spec.Column, spec.Agg))
	}

	for gi, k := range groupKeys {
		row := make([]string, 0, len(cols)+1)
		row = append(row, k)
		for i := range cols {
			row = append(row, accs[gi][i].result())
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// accumulator folds one column's cells within one group.
type accumulator struct {
	agg  Aggregation
	kind Kind

	count   int
	sum     float64
	numSeen bool
	numMin  float64
	numMax  float64
	txtSeen bool
	txtMin  string
	txtMax  string
}

func newAccumulator(agg Aggregation, kind Kind) *accumulator {
	return &accumulator{agg: agg, kind: kind}
}

func (a *accumulator) add(c string) {
	if IsMissing(c) {
		return
	}

	switch a.agg {
	case AggCount:
		a.count++
	case AggSum, AggMean:
		if f, ok := ParseNumber(c); ok {
			a.sum += f
			a.count++
		}
	case AggMin, AggMax:
		if a.kind == KindNumeric {
			f, ok := ParseNumber(c)
			if !ok {
				return
			}
			if !a.numSeen || f < a.numMin {
				a.numMin = f
			}
			if !a.numSeen || f > a.numMax {
				a.numMax = f
			}
			a.numSeen = true
			return
		}
		if !a.txtSeen || c < a.txtMin {
			a.txtMin = c
		}
		if !a.txtSeen || c > a.txtMax {
			a.txtMax = c
		}
		a.txtSeen = true
	}
}

func (a *accumulator) result() string {
	switch a.agg {
	case AggCount:
		return fmt.Sprintf("%d", a.count)
	case AggSum:
		if a.count == 0 {
			return ""
		}
		return FormatNumber(a.sum)
	case AggMean:
		if a.count == 0 {
			return ""
		}
		return FormatNumber(a.sum / float64(a.count))
	case AggMin:
		if a.kind == KindNumeric {
			if !a.numSeen {
				return ""
			}
			return FormatNumber(a.numMin)
		}
		if !a.txtSeen {
			return ""
		}
		return a.txtMin
	case AggMax:
		if a.kind == KindNumeric {
			if !a.numSeen {
				return ""
			}
			return FormatNumber(a.numMax)
		}
		if !a.txtSeen {
			return ""
		}
		return a.txtMax
	}
	return ""
}
