package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowboat-io/rowboat/internal/domain"
)

func numbersTable() *domain.Table {
	return &domain.Table{
		Columns: []string{"Id", "Amount"},
		Rows: [][]string{
			{"a", "100"},
			{"b", "25"},
			{"c", "250"},
			{"d", "75"},
		},
	}
}

func column(t *domain.Table, name string) []string {
	idx := t.ColumnIndex(name)
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, row[idx])
	}
	return out
}

func TestSortNumericAscending(t *testing.T) {
	sorted, err := Sort(numbersTable(), "Amount", false)
	require.NoError(t, err)
	// numeric compare: "25" before "100" even though "1" < "2" as text
	assert.Equal(t, []string{"25", "75", "100", "250"}, column(sorted, "Amount"))
	assert.Equal(t, []string{"b", "d", "a", "c"}, column(sorted, "Id"))
}

func TestSortNumericDescending(t *testing.T) {
	asc, err := Sort(numbersTable(), "Amount", false)
	require.NoError(t, err)
	desc, err := Sort(numbersTable(), "Amount", true)
	require.NoError(t, err)

	// unique keys: descending is the exact reverse of ascending
	for i := range asc.Rows {
		assert.Equal(t, asc.Rows[i], desc.Rows[len(desc.Rows)-1-i])
	}
}

func TestSortTextColumn(t *testing.T) {
	tbl := &domain.Table{
		Columns: []string{"Name"},
		Rows:    [][]string{{"pear"}, {"apple"}, {"plum"}},
	}
	sorted, err := Sort(tbl, "Name", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "pear", "plum"}, column(sorted, "Name"))
}

func TestSortStableOnTies(t *testing.T) {
	tbl := &domain.Table{
		Columns: []string{"Seq", "Group"},
		Rows: [][]string{
			{"1", "b"},
			{"2", "a"},
			{"3", "b"},
			{"4", "a"},
		},
	}

	asc, err := Sort(tbl, "Group", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "4", "1", "3"}, column(asc, "Seq"))

	desc, err := Sort(tbl, "Group", true)
	require.NoError(t, err)
	// ties keep input order in both directions
	assert.Equal(t, []string{"1", "3", "2", "4"}, column(desc, "Seq"))
}

func TestSortMissingAlwaysLast(t *testing.T) {
	tbl := &domain.Table{
		Columns: []string{"Amount"},
		Rows:    [][]string{{"5"}, {""}, {"1"}, {"  "}},
	}

	asc, err := Sort(tbl, "Amount", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "5", "", "  "}, column(asc, "Amount"))

	desc, err := Sort(tbl, "Amount", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "1", "", "  "}, column(desc, "Amount"))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	tbl := numbersTable()
	_, err := Sort(tbl, "Amount", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"100", "25", "250", "75"}, column(tbl, "Amount"))
}

func TestSortUnknownColumn(t *testing.T) {
	_, err := Sort(numbersTable(), "Nope", false)
	assert.Error(t, err)

	_, err = Sort(nil, "Amount", false)
	assert.Error(t, err)
}
