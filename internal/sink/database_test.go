package sink

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowboat-io/rowboat/internal/domain"
	apperrors "github.com/rowboat-io/rowboat/internal/errors"
	"github.com/rowboat-io/rowboat/internal/logging"
)

func sqliteTarget(t *testing.T, table string) domain.DatabaseTarget {
	t.Helper()
	return domain.DatabaseTarget{
		Driver:   domain.DriverSQLite,
		Database: filepath.Join(t.TempDir(), "rowboat.db"),
		Table:    table,
	}
}

func TestWriteTableSQLite(t *testing.T) {
	target := sqliteTarget(t, "accounts")
	table := &domain.Table{
		Columns: []string{"Name", "Amount"},
		Rows: [][]string{
			{"Acme", "100"},
			{"Globex", "250.5"},
			{"Initech", ""},
		},
	}

	written, err := WriteTable(context.Background(), target, table, logging.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, 3, written)

	db, err := sql.Open("sqlite", target.Database)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "accounts"`).Scan(&count))
	assert.Equal(t, 3, count)

	var amount sql.NullFloat64
	require.NoError(t, db.QueryRow(`SELECT "Amount" FROM "accounts" WHERE "Name" = 'Globex'`).Scan(&amount))
	require.True(t, amount.Valid)
	assert.Equal(t, 250.5, amount.Float64)

	require.NoError(t, db.QueryRow(`SELECT "Amount" FROM "accounts" WHERE "Name" = 'Initech'`).Scan(&amount))
	assert.False(t, amount.Valid, "blank cells store as NULL")
}

func TestWriteTableReplacesExisting(t *testing.T) {
	target := sqliteTarget(t, "accounts")
	first := &domain.Table{
		Columns: []string{"Name", "Amount"},
		Rows:    [][]string{{"Acme", "100"}, {"Globex", "250"}},
	}
	second := &domain.Table{
		Columns: []string{"City"},
		Rows:    [][]string{{"Omaha"}},
	}

	_, err := WriteTable(context.Background(), target, first, logging.NewNopLogger())
	require.NoError(t, err)
	_, err = WriteTable(context.Background(), target, second, logging.NewNopLogger())
	require.NoError(t, err)

	db, err := sql.Open("sqlite", target.Database)
	require.NoError(t, err)
	defer db.Close()

	var city string
	require.NoError(t, db.QueryRow(`SELECT "City" FROM "accounts"`).Scan(&city))
	assert.Equal(t, "Omaha", city)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "accounts"`).Scan(&count))
	assert.Equal(t, 1, count, "old rows are gone")
}

func TestWriteTableEmptyRows(t *testing.T) {
	target := sqliteTarget(t, "empty_ok")
	table := &domain.Table{Columns: []string{"Name"}}

	written, err := WriteTable(context.Background(), target, table, logging.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, 0, written)

	db, err := sql.Open("sqlite", target.Database)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "empty_ok"`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestWriteTableNameValidation(t *testing.T) {
	table := &domain.Table{Columns: []string{"Name"}}

	for _, name := range []string{"", "drop;table", "has space", "1starts_with_digit", `quo"te`} {
		target := sqliteTarget(t, name)
		_, err := WriteTable(context.Background(), target, table, logging.NewNopLogger())

		var v apperrors.ValidationError
		assert.ErrorAs(t, err, &v, "table name %q", name)
	}

	target := sqliteTarget(t, "Fine_Name2")
	_, err := WriteTable(context.Background(), target, table, logging.NewNopLogger())
	assert.NoError(t, err)
}

func TestWriteTableUnknownDriver(t *testing.T) {
	target := domain.DatabaseTarget{Driver: "oracle", Database: "x", Table: "t"}
	table := &domain.Table{Columns: []string{"Name"}}

	_, err := WriteTable(context.Background(), target, table, logging.NewNopLogger())
	assert.Error(t, err)
}

func TestQuoteIdentifiers(t *testing.T) {
	assert.Equal(t, `"plain"`, quoteDouble("plain"))
	assert.Equal(t, `"say ""hi"""`, quoteDouble(`say "hi"`))
	assert.Equal(t, "[plain]", quoteBracket("plain"))
	assert.Equal(t, "[a]]b]", quoteBracket("a]b"))
}
