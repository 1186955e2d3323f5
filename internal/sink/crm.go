package sink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rowboat-io/rowboat/internal/domain"
	apperrors "github.com/rowboat-io/rowboat/internal/errors"
	"github.com/rowboat-io/rowboat/internal/tabular"
)

// Saver is the CRM write surface. *crm.Client satisfies it.
type Saver interface {
	Create(ctx context.Context, object string, fields map[string]any) (string, error)
	Update(ctx context.Context, object, id string, fields map[string]any) error
}

// Upload operations.
const (
	OpInsert = "insert"
	OpUpdate = "update"
)

// UploadRequest describes one CRM upload run.
type UploadRequest struct {
	Object    string
	Operation string
	Mapping   domain.FieldMapping
	// IDColumn names the table column holding record IDs; updates
	// require it.
	IDColumn string
}

// RowError records one failed row by its 1-based data row number.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// UploadResult tallies an upload run. Succeeded plus len(Errors) always
// equals the number of rows attempted.
type UploadResult struct {
	Succeeded int
	Errors    []RowError
}

// Upload sends every table row to the CRM one at a time, continuing
// past per-row failures. The returned error covers validation and
// cancellation only; row failures land in the result.
func Upload(ctx context.Context, client Saver, req UploadRequest, t *domain.Table, logger *slog.Logger) (*UploadResult, error) {
	if req.Object == "" {
		return nil, apperrors.ValidationError{Field: "Object", Message: "object name must not be empty"}
	}
	if req.Operation != OpInsert && req.Operation != OpUpdate {
		return nil, apperrors.ValidationError{Field: "Operation", Message: fmt.Sprintf("unknown operation %q", req.Operation)}
	}

	active := req.Mapping.Active()
	if len(active) == 0 {
		return nil, apperrors.ValidationError{Field: "Mapping", Message: "no columns are mapped to fields"}
	}
	sources := make([]int, len(active))
	for i, fm := range active {
		col := t.ColumnIndex(fm.Source)
		if col < 0 {
			return nil, apperrors.ValidationError{Field: "Mapping", Message: fmt.Sprintf("column %q not in table", fm.Source)}
		}
		sources[i] = col
	}

	idCol := -1
	if req.Operation == OpUpdate {
		if req.IDColumn == "" {
			return nil, apperrors.ValidationError{Field: "IDColumn", Message: "updates need an ID column"}
		}
		idCol = t.ColumnIndex(req.IDColumn)
		if idCol < 0 {
			return nil, apperrors.ValidationError{Field: "IDColumn", Message: fmt.Sprintf("column %q not in table", req.IDColumn)}
		}
	}

	logger.Info("CRM upload started",
		slog.String("object", req.Object),
		slog.String("operation", req.Operation),
		slog.Int("rows", len(t.Rows)),
		slog.Int("fields", len(active)),
	)

	kinds := tabular.Kinds(t)
	result := &UploadResult{}
	for i, row := range t.Rows {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("%w after %d rows", apperrors.ErrUserCancelled, i)
		}

		payload := rowPayload(row, active, sources, kinds)
		var err error
		switch req.Operation {
		case OpInsert:
			_, err = client.Create(ctx, req.Object, payload)
		case OpUpdate:
			id := cellAt(row, idCol)
			if tabular.IsMissing(id) {
				err = fmt.Errorf("missing value in ID column %q", req.IDColumn)
			} else {
				err = client.Update(ctx, req.Object, id, payload)
			}
		}

		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: i + 1, Err: err})
			logger.Warn("CRM upload row failed",
				slog.Int("row", i+1),
				slog.Any("error", err),
			)
			continue
		}
		result.Succeeded++
	}

	logger.Info("CRM upload finished",
		slog.String("object", req.Object),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", len(result.Errors)),
	)
	return result, nil
}

// rowPayload builds the field map for one row. Blank cells are left out
// so updates do not blank fields the table has no value for; numeric
// columns are sent as numbers.
func rowPayload(row []string, active domain.FieldMapping, sources []int, kinds []tabular.Kind) map[string]any {
	payload := make(map[string]any, len(active))
	for i, fm := range active {
		c := cellAt(row, sources[i])
		if tabular.IsMissing(c) {
			continue
		}
		if kinds[sources[i]] == tabular.KindNumeric {
			if f, ok := tabular.ParseNumber(c); ok {
				payload[fm.Destination] = f
				continue
			}
		}
		payload[fm.Destination] = c
	}
	return payload
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
