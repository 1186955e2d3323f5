package save

import (
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rowboat-io/rowboat/internal/crm"
	"github.com/rowboat-io/rowboat/internal/domain"
	"github.com/rowboat-io/rowboat/internal/sink"
	"github.com/rowboat-io/rowboat/internal/ui/components"
)

// maxListedRowErrors caps how many per-row upload failures the result
// label spells out.
const maxListedRowErrors = 5

// Panel collects export settings, one collapsible section per
// destination: CSV file, Excel file, relational database and CRM
// upload. The window runs every export; the panel only gathers input.
type Panel struct {
	widget.BaseWidget

	hasTable     bool
	crmConnected bool

	// File exports
	csvLimit   *widget.Entry
	csvBtn     *widget.Button
	excelLimit *widget.Entry
	excelBtn   *widget.Button

	// Database export
	driverSelect  *widget.Select
	serverEntry   *widget.Entry
	databaseEntry *widget.Entry
	dbUserEntry   *widget.Entry
	dbPassEntry   *widget.Entry
	tableEntry    *widget.Entry
	dbBtn         *widget.Button

	// CRM upload. The session connection is the default; unchecking
	// useSessionCheck switches to the panel's own login fields, so an
	// upload can target a different org than the query came from.
	useSessionCheck *widget.Check
	crmUserEntry    *widget.Entry
	crmPassEntry    *widget.Entry
	crmTokenEntry   *widget.Entry
	crmHostSelect   *widget.Select
	objectEntry     *widget.Entry
	operationSel    *widget.RadioGroup
	idColumnSel     *widget.Select
	suggestBtn      *widget.Button
	mappingEditor   *MappingEditor
	uploadBtn       *widget.Button
	resultLabel     *widget.Label

	onSaveCSV      func(limit int)
	onSaveExcel    func(limit int)
	onSaveDatabase func(target domain.DatabaseTarget)
	onSuggest      func(object string, creds *domain.CRMCredentials)
	onUpload       func(req sink.UploadRequest, creds *domain.CRMCredentials)
}

// NewPanel creates the export panel. Everything stays disabled until
// SetColumns reports a loaded table.
func NewPanel() *Panel {
	p := &Panel{}

	p.csvLimit = widget.NewEntry()
	p.csvLimit.SetPlaceHolder("all rows")
	p.csvBtn = widget.NewButton("Save CSV…", func() {
		if p.onSaveCSV != nil {
			p.onSaveCSV(parseLimit(p.csvLimit.Text))
		}
	})

	p.excelLimit = widget.NewEntry()
	p.excelLimit.SetPlaceHolder("all rows")
	p.excelBtn = widget.NewButton("Save Excel…", func() {
		if p.onSaveExcel != nil {
			p.onSaveExcel(parseLimit(p.excelLimit.Text))
		}
	})

	p.serverEntry = widget.NewEntry()
	p.serverEntry.SetPlaceHolder("localhost")
	p.databaseEntry = widget.NewEntry()
	p.dbUserEntry = widget.NewEntry()
	p.dbPassEntry = widget.NewPasswordEntry()
	p.tableEntry = widget.NewEntry()

	p.driverSelect = widget.NewSelect([]string{
		domain.DriverPostgres,
		domain.DriverSQLServer,
		domain.DriverSQLite,
	}, func(string) {
		p.updateDatabaseFields()
	})
	p.driverSelect.SetSelected(domain.DriverPostgres)

	p.dbBtn = widget.NewButton("Write to database", func() {
		p.handleSaveDatabase()
	})

	p.useSessionCheck = widget.NewCheck("Use current connection", func(bool) {
		p.updateEnabled()
	})
	p.useSessionCheck.Disable() // nothing to reuse until a login succeeds

	p.crmUserEntry = widget.NewEntry()
	p.crmPassEntry = widget.NewPasswordEntry()
	p.crmTokenEntry = widget.NewPasswordEntry()
	p.crmTokenEntry.SetPlaceHolder("optional")
	p.crmHostSelect = widget.NewSelect([]string{"Production", "Sandbox"}, nil)
	p.crmHostSelect.SetSelected("Production")

	p.objectEntry = widget.NewEntry()
	p.objectEntry.SetText("Account")

	p.operationSel = widget.NewRadioGroup([]string{"Insert", "Update"}, func(string) {
		p.updateEnabled()
	})
	p.operationSel.Horizontal = true
	p.operationSel.Selected = "Insert"

	p.idColumnSel = widget.NewSelect(nil, nil)
	p.idColumnSel.PlaceHolder = "ID column"

	p.suggestBtn = widget.NewButton("Suggest fields", func() {
		p.handleSuggest()
	})

	p.mappingEditor = NewMappingEditor()

	p.uploadBtn = widget.NewButton("Upload", func() {
		p.handleUpload()
	})
	p.uploadBtn.Importance = widget.HighImportance

	p.resultLabel = widget.NewLabel("")
	p.resultLabel.Wrapping = fyne.TextWrapWord

	p.updateEnabled()

	p.ExtendBaseWidget(p)
	return p
}

// SetOnSaveCSV sets the CSV export callback. limit is the row cap, 0
// for all rows.
func (p *Panel) SetOnSaveCSV(fn func(limit int)) {
	p.onSaveCSV = fn
}

// SetOnSaveExcel sets the Excel export callback.
func (p *Panel) SetOnSaveExcel(fn func(limit int)) {
	p.onSaveExcel = fn
}

// SetOnSaveDatabase sets the relational export callback.
func (p *Panel) SetOnSaveDatabase(fn func(target domain.DatabaseTarget)) {
	p.onSaveDatabase = fn
}

// SetOnSuggest sets the callback for describing the CRM object behind
// the mapping suggestions. creds is nil when the session connection
// should be used.
func (p *Panel) SetOnSuggest(fn func(object string, creds *domain.CRMCredentials)) {
	p.onSuggest = fn
}

// SetOnUpload sets the CRM upload callback. creds is nil when the
// session connection should be used.
func (p *Panel) SetOnUpload(fn func(req sink.UploadRequest, creds *domain.CRMCredentials)) {
	p.onUpload = fn
}

// SetColumns refreshes the mapping editor and the ID column picker
// after the working table changes.
func (p *Panel) SetColumns(columns []string) {
	p.hasTable = len(columns) > 0

	p.mappingEditor.SetColumns(columns)

	p.idColumnSel.Options = columns
	selected := p.idColumnSel.Selected
	p.idColumnSel.ClearSelected()
	for _, col := range columns {
		if col == selected {
			p.idColumnSel.SetSelected(selected)
			break
		}
	}
	// A column literally named Id is almost always the record ID.
	if p.idColumnSel.Selected == "" {
		for _, col := range columns {
			if strings.EqualFold(col, "Id") {
				p.idColumnSel.SetSelected(col)
				break
			}
		}
	}
	p.idColumnSel.Refresh()

	p.resultLabel.SetText("")
	p.updateEnabled()
}

// SetCRMConnected follows the session connection. Connecting snaps the
// upload back onto the session; disconnecting leaves only the panel's
// own login fields.
func (p *Panel) SetCRMConnected(connected bool) {
	p.crmConnected = connected
	if connected {
		p.useSessionCheck.Enable()
		p.useSessionCheck.SetChecked(true)
	} else {
		p.useSessionCheck.SetChecked(false)
		p.useSessionCheck.Disable()
	}
	p.updateEnabled()
}

// SetFieldSuggestions forwards described CRM fields to the mapping
// editor.
func (p *Panel) SetFieldSuggestions(fields []crm.Field) {
	p.mappingEditor.ApplySuggestions(fields)
}

// SetUploadResult shows the outcome of an upload run, spelling out the
// first few per-row failures.
func (p *Panel) SetUploadResult(result *sink.UploadResult) {
	if result == nil || (result.Succeeded == 0 && len(result.Errors) == 0) {
		p.resultLabel.SetText("")
		return
	}

	text := strconv.Itoa(result.Succeeded) + " rows uploaded"
	if len(result.Errors) > 0 {
		text += ", " + strconv.Itoa(len(result.Errors)) + " failed"
		for i, rowErr := range result.Errors {
			if i == maxListedRowErrors {
				text += "\n… and " + strconv.Itoa(len(result.Errors)-maxListedRowErrors) + " more"
				break
			}
			text += "\n" + rowErr.Error()
		}
	}
	p.resultLabel.SetText(text)
}

// overrideCredentials returns the panel's own login details, or nil
// when the session connection is in use.
func (p *Panel) overrideCredentials() *domain.CRMCredentials {
	if p.useSessionCheck.Checked {
		return nil
	}
	host := domain.HostProduction
	if p.crmHostSelect.Selected == "Sandbox" {
		host = domain.HostSandbox
	}
	return &domain.CRMCredentials{
		Username:      p.crmUserEntry.Text,
		Password:      p.crmPassEntry.Text,
		SecurityToken: p.crmTokenEntry.Text,
		Host:          host,
	}
}

func (p *Panel) handleSaveDatabase() {
	if p.onSaveDatabase == nil {
		return
	}
	p.onSaveDatabase(domain.DatabaseTarget{
		Driver:   p.driverSelect.Selected,
		Server:   p.serverEntry.Text,
		Database: p.databaseEntry.Text,
		Username: p.dbUserEntry.Text,
		Password: p.dbPassEntry.Text,
		Table:    p.tableEntry.Text,
	})
}

func (p *Panel) handleSuggest() {
	if p.onSuggest == nil || p.objectEntry.Text == "" {
		return
	}
	p.onSuggest(p.objectEntry.Text, p.overrideCredentials())
}

func (p *Panel) handleUpload() {
	if p.onUpload == nil {
		return
	}
	operation := sink.OpInsert
	if p.operationSel.Selected == "Update" {
		operation = sink.OpUpdate
	}
	req := sink.UploadRequest{
		Object:    p.objectEntry.Text,
		Operation: operation,
		Mapping:   p.mappingEditor.Mapping(),
	}
	if operation == sink.OpUpdate {
		req.IDColumn = p.idColumnSel.Selected
	}
	p.onUpload(req, p.overrideCredentials())
}

// updateDatabaseFields greys out the network fields for sqlite, which
// only needs the file path in the database field.
func (p *Panel) updateDatabaseFields() {
	if p.driverSelect.Selected == domain.DriverSQLite {
		p.serverEntry.Disable()
		p.dbUserEntry.Disable()
		p.dbPassEntry.Disable()
		p.databaseEntry.SetPlaceHolder("path/to/file.db")
	} else {
		p.serverEntry.Enable()
		p.dbUserEntry.Enable()
		p.dbPassEntry.Enable()
		p.databaseEntry.SetPlaceHolder("")
	}
	p.databaseEntry.Refresh()
}

func (p *Panel) updateEnabled() {
	setEnabled := func(w fyne.Disableable, enabled bool) {
		if enabled {
			w.Enable()
		} else {
			w.Disable()
		}
	}

	setEnabled(p.csvBtn, p.hasTable)
	setEnabled(p.excelBtn, p.hasTable)
	setEnabled(p.dbBtn, p.hasTable)

	// The upload can ride the session connection or the panel's own
	// login; either way it needs rows to send.
	overriding := !p.useSessionCheck.Checked
	setEnabled(p.suggestBtn, p.hasTable && (p.crmConnected || overriding))
	setEnabled(p.uploadBtn, p.hasTable && (p.crmConnected || overriding))

	setEnabled(p.crmUserEntry, overriding)
	setEnabled(p.crmPassEntry, overriding)
	setEnabled(p.crmTokenEntry, overriding)
	setEnabled(p.crmHostSelect, overriding)

	setEnabled(p.idColumnSel, p.hasTable && p.operationSel.Selected == "Update")
}

// CreateRenderer implements fyne.Widget.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	csvSection := components.NewSection("CSV file", container.NewVBox(
		widget.NewForm(widget.NewFormItem("Row limit", p.csvLimit)),
		p.csvBtn,
	), true)

	excelSection := components.NewSection("Excel file", container.NewVBox(
		widget.NewForm(widget.NewFormItem("Row limit", p.excelLimit)),
		p.excelBtn,
	), false)

	dbSection := components.NewSection("Database", container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Driver", p.driverSelect),
			widget.NewFormItem("Server", p.serverEntry),
			widget.NewFormItem("Database", p.databaseEntry),
			widget.NewFormItem("Username", p.dbUserEntry),
			widget.NewFormItem("Password", p.dbPassEntry),
			widget.NewFormItem("Table", p.tableEntry),
		),
		p.dbBtn,
	), false)

	crmSection := components.NewSection("CRM upload", container.NewVBox(
		p.useSessionCheck,
		widget.NewForm(
			widget.NewFormItem("Username", p.crmUserEntry),
			widget.NewFormItem("Password", p.crmPassEntry),
			widget.NewFormItem("Token", p.crmTokenEntry),
			widget.NewFormItem("Host", p.crmHostSelect),
		),
		widget.NewSeparator(),
		widget.NewForm(
			widget.NewFormItem("Object", p.objectEntry),
			widget.NewFormItem("Operation", p.operationSel),
			widget.NewFormItem("ID column", p.idColumnSel),
		),
		p.suggestBtn,
		widget.NewSeparator(),
		p.mappingEditor,
		p.uploadBtn,
		p.resultLabel,
	), false)

	content := container.NewVScroll(container.NewVBox(
		csvSection,
		excelSection,
		dbSection,
		crmSection,
	))
	return widget.NewSimpleRenderer(content)
}

// parseLimit reads a row limit entry. Blank or unparseable input means
// no limit.
func parseLimit(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
