package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rowboat-io/rowboat/internal/crm"
	"github.com/rowboat-io/rowboat/internal/domain"
	apperrors "github.com/rowboat-io/rowboat/internal/errors"
)

// attributesKey is the metadata entry the CRM API attaches to every
// record; it carries no row data and is dropped during flattening.
const attributesKey = "attributes"

// Querier runs SOQL queries. *crm.Client satisfies it.
type Querier interface {
	QueryAll(ctx context.Context, soql string) ([]crm.Record, error)
}

// LoadQuery runs a SOQL query through the connected client and flattens
// the result records into a table.
func LoadQuery(ctx context.Context, client Querier, query string, logger *slog.Logger) (*domain.Table, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.ValidationError{Field: "query", Message: "query must not be empty"}
	}

	logger.Debug("Running query", "query", query)

	records, err := client.QueryAll(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: query returned no records", apperrors.ErrNoData)
	}

	table := FlattenRecords(records)
	logger.Info("Query loaded",
		"rows", len(table.Rows),
		"columns", len(table.Columns))
	return table, nil
}

// FlattenRecords converts query records to a rectangular table. Columns
// are the union of record keys in first-seen wire order, minus the
// metadata entry. A record missing a key yields a blank cell.
func FlattenRecords(records []crm.Record) *domain.Table {
	var columns []string
	seen := make(map[string]bool)
	for _, record := range records {
		for _, key := range record.Order {
			if key == attributesKey || seen[key] {
				continue
			}
			seen[key] = true
			columns = append(columns, key)
		}
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := make([]string, len(columns))
		for i, key := range columns {
			if !record.Has(key) {
				continue
			}
			row[i] = cellString(record.Get(key))
		}
		rows = append(rows, row)
	}
	return &domain.Table{Columns: columns, Rows: rows}
}

// cellString renders one field value. JSON decoding hands back
// float64 for every number, so integers are reformatted without the
// trailing ".0" noise.
func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	case map[string]any:
		delete(v, attributesKey)
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	default:
		return fmt.Sprintf("%v", v)
	}
}
