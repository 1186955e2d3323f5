package tabular

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/rowboat-io/rowboat/internal/domain"
)

// Describe summarizes the table as a new table whose first column is the
// statistic name. With numeric columns present it reports count, mean, std,
// min, 25%, 50%, 75% and max for each of them; without any it falls back to
// count, unique, top and freq over every column.
func Describe(t *domain.Table) *domain.Table {
	if t == nil || len(t.Columns) == 0 {
		return &domain.Table{Columns: []string{"statistic"}}
	}

	var numericIdx []int
	for i := range t.Columns {
		if ColumnKind(t, i) == KindNumeric {
			numericIdx = append(numericIdx, i)
		}
	}

	if len(numericIdx) > 0 {
		return describeNumeric(t, numericIdx)
	}
	return describeText(t)
}

var numericStats = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

func describeNumeric(t *domain.Table, cols []int) *domain.Table {
	out := &domain.Table{Columns: []string{"statistic"}}
	for _, idx := range cols {
		out.Columns = append(out.Columns, t.Columns[idx])
	}

	// Column-major: collect the parsed values once per column.
	values := make([][]float64, len(cols))
	for i, idx := range cols {
		for _, row := range t.Rows {
			if f, ok := ParseNumber(cell(row, idx)); ok {
				values[i] = append(values[i], f)
			}
		}
		sort.Float64s(values[i])
	}

	for _, stat := range numericStats {
		row := []string{stat}
		for i := range cols {
			row = append(row, numericStat(stat, values[i]))
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// numericStat computes one statistic over a sorted value slice.
func numericStat(stat string, sorted []float64) string {
	n := len(sorted)
	if stat == "count" {
		return strconv.Itoa(n)
	}
	if n == 0 {
		return ""
	}

	switch stat {
	case "mean":
		return formatStat(mean(sorted))
	case "std":
		if n < 2 {
			return ""
		}
		m := mean(sorted)
		var ss float64
		for _, v := range sorted {
			d := v - m
			ss += d * d
		}
		return formatStat(math.Sqrt(ss / float64(n-1)))
	case "min":
		return formatStat(sorted[0])
	case "25%":
		return formatStat(quantile(sorted, 0.25))
	case "50%":
		return formatStat(quantile(sorted, 0.5))
	case "75%":
		return formatStat(quantile(sorted, 0.75))
	case "max":
		return formatStat(sorted[n-1])
	}
	return ""
}

func mean(vs []float64) float64 {
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// quantile interpolates linearly between the two nearest ranks.
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}

func describeText(t *domain.Table) *domain.Table {
	out := &domain.Table{Columns: append([]string{"statistic"}, t.Columns...)}

	counts := make([]int, len(t.Columns))
	uniques := make([]int, len(t.Columns))
	tops := make([]string, len(t.Columns))
	freqs := make([]int, len(t.Columns))

	for i := range t.Columns {
		seen := make(map[string]int)
		var order []string
		for _, row := range t.Rows {
			c := cell(row, i)
			if IsMissing(c) {
				continue
			}
			counts[i]++
			if _, ok := seen[c]; !ok {
				order = append(order, c)
			}
			seen[c]++
		}
		uniques[i] = len(seen)
		for _, v := range order {
			if seen[v] > freqs[i] {
				tops[i] = v
				freqs[i] = seen[v]
			}
		}
	}

	rows := [][]string{
		{"count"}, {"unique"}, {"top"}, {"freq"},
	}
	for i := range t.Columns {
		rows[0] = append(rows[0], strconv.Itoa(counts[i]))
		rows[1] = append(rows[1], strconv.Itoa(uniques[i]))
		rows[2] = append(rows[2], tops[i])
		if counts[i] == 0 {
			rows[3] = append(rows[3], "")
		} else {
			rows[3] = append(rows[3], strconv.Itoa(freqs[i]))
		}
	}
	out.Rows = rows
	return out
}

// formatStat renders a statistic with at most six decimals.
func formatStat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 6, 64)
	if len(s) == 0 {
		return s
	}
	// Trim trailing zeros, then a trailing point.
	i := len(s)
	for i > 0 && s[i-1] == '0' {
		i--
	}
	if i > 0 && s[i-1] == '.' {
		i--
	}
	if i == 0 {
		return "0"
	}
	trimmed := s[:i]
	if trimmed == "-0" {
		return "0"
	}
	return trimmed
}

// ShapeLine renders "N rows × M columns" for the status bar and preview.
func ShapeLine(t *domain.Table) string {
	rows, cols := t.Shape()
	return fmt.Sprintf("%d rows × %d columns", rows, cols)
}
