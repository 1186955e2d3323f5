package sink

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"

	"github.com/rowboat-io/rowboat/internal/domain"
	apperrors "github.com/rowboat-io/rowboat/internal/errors"
	"github.com/rowboat-io/rowboat/internal/tabular"
)

// dialect captures the SQL differences between the supported servers.
type dialect struct {
	quote       func(ident string) string
	placeholder func(n int) string
	numericType string
	textType    string
}

var dialects = map[string]dialect{
	domain.DriverPostgres: {
		quote:       quoteDouble,
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
		numericType: "DOUBLE PRECISION",
		textType:    "TEXT",
	},
	domain.DriverSQLServer: {
		quote:       quoteBracket,
		placeholder: func(n int) string { return fmt.Sprintf("@p%d", n) },
		numericType: "FLOAT",
		textType:    "NVARCHAR(MAX)",
	},
	domain.DriverSQLite: {
		quote:       quoteDouble,
		placeholder: func(n int) string { return "?" },
		numericType: "REAL",
		textType:    "TEXT",
	},
}

func quoteDouble(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func quoteBracket(ident string) string {
	return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
}

// validTableName restricts table names to plain identifiers so they can
// be spliced into DDL safely.
func validTableName(name string) error {
	if name == "" {
		return apperrors.ValidationError{Field: "Table", Message: "table name must not be empty"}
	}
	for i, r := range name {
		switch {
		case r == '_',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return apperrors.ValidationError{Field: "Table", Message: "table name must not start with a digit"}
			}
		default:
			return apperrors.ValidationError{Field: "Table", Message: fmt.Sprintf("table name must not contain %q", r)}
		}
	}
	return nil
}

// WriteTable replaces target.Table in the target database with the
// table's contents: drop, create with column types matching the data,
// then insert every row inside one transaction. It returns the number
// of rows written.
func WriteTable(ctx context.Context, target domain.DatabaseTarget, t *domain.Table, logger *slog.Logger) (int, error) {
	if err := validTableName(target.Table); err != nil {
		return 0, err
	}
	if len(t.Columns) == 0 {
		return 0, apperrors.ErrNoData
	}
	d, ok := dialects[target.Driver]
	if !ok {
		return 0, fmt.Errorf("unsupported driver %q", target.Driver)
	}

	dsn, err := target.DSN()
	if err != nil {
		return 0, err
	}

	db, err := sql.Open(target.Driver, dsn)
	if err != nil {
		return 0, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrConnectionFailed, err)
	}

	kinds := tabular.Kinds(t)
	written, err := replaceTable(ctx, db, d, target.Table, t, kinds)
	if err != nil {
		return 0, err
	}

	logger.Info("Table written to database",
		slog.String("driver", target.Driver),
		slog.String("table", target.Table),
		slog.Int("rows", written),
	)
	return written, nil
}

func replaceTable(ctx context.Context, db *sql.DB, d dialect, tableName string, t *domain.Table, kinds []tabular.Kind) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	quoted := d.quote(tableName)
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoted); err != nil {
		return 0, fmt.Errorf("drop table: %w", err)
	}

	defs := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		colType := d.textType
		if kinds[i] == tabular.KindNumeric {
			colType = d.numericType
		}
		defs[i] = d.quote(col) + " " + colType
	}
	create := "CREATE TABLE " + quoted + " (" + strings.Join(defs, ", ") + ")"
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}

	cols := make([]string, len(t.Columns))
	params := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		cols[i] = d.quote(col)
		params[i] = d.placeholder(i + 1)
	}
	insert := "INSERT INTO " + quoted + " (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(params, ", ") + ")"

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range t.Rows {
		args := make([]any, len(t.Columns))
		for j := range t.Columns {
			args[j] = insertValue(row, j, kinds[j])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(t.Rows), nil
}

// insertValue maps one cell to a bind argument. Blank cells are NULL;
// cells in numeric columns that fail to parse are NULL too, matching
// the column type.
func insertValue(row []string, col int, kind tabular.Kind) any {
	if col >= len(row) {
		return nil
	}
	c := row[col]
	if tabular.IsMissing(c) {
		return nil
	}
	if kind == tabular.KindNumeric {
		f, ok := tabular.ParseNumber(c)
		if !ok {
			return nil
		}
		return f
	}
	return c
}
