package save

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rowboat-io/rowboat/internal/crm"
	"github.com/rowboat-io/rowboat/internal/domain"
	"github.com/rowboat-io/rowboat/internal/ui/components"
)

// MappingEditor routes table columns to CRM fields. Every column gets
// a destination entry prefilled with its own name; blanking an entry
// drops the column from the upload.
type MappingEditor struct {
	widget.BaseWidget

	rows []*mappingRow
	box  *fyne.Container
}

type mappingRow struct {
	source string
	entry  *widget.Entry
	hint   *components.HintLabel
}

// NewMappingEditor creates an editor with no rows.
func NewMappingEditor() *MappingEditor {
	e := &MappingEditor{
		box: container.NewVBox(),
	}
	e.ExtendBaseWidget(e)
	return e
}

// SetColumns rebuilds the editor for the given source columns. Existing
// destinations are discarded because they belonged to another table.
func (e *MappingEditor) SetColumns(columns []string) {
	e.rows = make([]*mappingRow, 0, len(columns))
	objects := make([]fyne.CanvasObject, 0, len(columns))

	for _, col := range columns {
		row := &mappingRow{source: col}

		row.entry = widget.NewEntry()
		row.entry.SetText(col)

		row.hint = components.NewHintLabel("")

		e.rows = append(e.rows, row)
		objects = append(objects, container.NewBorder(
			nil, nil,
			widget.NewLabel(col),
			row.hint,
			row.entry,
		))
	}

	e.box.Objects = objects
	e.box.Refresh()
}

// ApplySuggestions matches each destination against the described CRM
// fields, case-insensitively. Matches snap to the canonical field name
// and show the field type; everything else is marked so the user sees
// what the server will reject.
func (e *MappingEditor) ApplySuggestions(fields []crm.Field) {
	byName := make(map[string]crm.Field, len(fields))
	for _, f := range fields {
		if !f.Createable && !f.Updateable {
			// Read-only fields can never receive an upload.
			continue
		}
		byName[strings.ToLower(f.Name)] = f
	}

	for _, row := range e.rows {
		dest := strings.TrimSpace(row.entry.Text)
		if dest == "" {
			row.hint.SetText("")
			continue
		}
		if f, ok := byName[strings.ToLower(dest)]; ok {
			row.entry.SetText(f.Name)
			row.hint.SetText(f.Type)
			continue
		}
		row.hint.SetText("no match")
	}
}

// Mapping collects the current routes in column order.
func (e *MappingEditor) Mapping() domain.FieldMapping {
	mapping := make(domain.FieldMapping, 0, len(e.rows))
	for _, row := range e.rows {
		mapping = append(mapping, domain.FieldMap{
			Source:      row.source,
			Destination: row.entry.Text,
		})
	}
	return mapping
}

// CreateRenderer implements fyne.Widget.
func (e *MappingEditor) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(e.box)
}
