package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rowboat-io/rowboat/internal/domain"
)

func TestIsMissing(t *testing.T) {
	assert.True(t, IsMissing(""))
	assert.True(t, IsMissing("   "))
	assert.False(t, IsMissing("0"))
	assert.False(t, IsMissing("x"))
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"42", 42, true},
		{" 3.5 ", 3.5, true},
		{"-0.25", -0.25, true},
		{"1,234.5", 1234.5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12x", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestColumnKind(t *testing.T) {
	tbl := &domain.Table{
		Columns: []string{"Name", "Amount", "MostlyNumbers", "Empty"},
		Rows: [][]string{
			{"Acme", "100", "1", ""},
			{"Globex", "250.5", "2", ""},
			{"Initech", "75", "3", ""},
			{"Umbrella", "0", "4", ""},
			{"Hooli", "12", "n/a", ""},
		},
	}

	assert.Equal(t, KindText, ColumnKind(tbl, 0))
	assert.Equal(t, KindNumeric, ColumnKind(tbl, 1))
	// 4 of 5 non-missing cells parse: exactly the 80% threshold
	assert.Equal(t, KindNumeric, ColumnKind(tbl, 2))
	// all-missing columns are text
	assert.Equal(t, KindText, ColumnKind(tbl, 3))
	// out of range
	assert.Equal(t, KindText, ColumnKind(tbl, 9))
}

func TestNumericColumns(t *testing.T) {
	tbl := &domain.Table{
		Columns: []string{"Name", "Amount", "Qty"},
		Rows: [][]string{
			{"Acme", "100", "1"},
			{"Globex", "250", "2"},
		},
	}
	assert.Equal(t, []string{"Amount", "Qty"}, NumericColumns(tbl))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "125.5", FormatNumber(125.5))
	assert.Equal(t, "50", FormatNumber(50))
	assert.Equal(t, "0.0000001", FormatNumber(0.0000001))
}
