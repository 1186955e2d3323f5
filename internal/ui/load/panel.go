package load

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rowboat-io/rowboat/internal/domain"
	"github.com/rowboat-io/rowboat/internal/model"
	"github.com/rowboat-io/rowboat/internal/ui/components"
)

// DefaultQuery pre-fills the SOQL editor with something that works on
// any org, so a first-time user can hit Run immediately.
const DefaultQuery = "SELECT Id, Name FROM Account LIMIT 100"

// Panel is the data source side of the window. A mode switch toggles
// between loading a local spreadsheet file and querying the CRM.
type Panel struct {
	widget.BaseWidget

	state *model.ConnectionUIState

	// File mode
	openBtn   *widget.Button
	fileLabel *widget.Label

	// CRM mode
	usernameEntry *widget.Entry
	passwordEntry *widget.Entry
	tokenEntry    *widget.Entry
	hostSelect    *widget.Select
	connectBtn    *widget.Button
	queryEntry    *widget.Entry
	runQueryBtn   *widget.Button

	modeTabs *components.ModeTabs

	onOpenFile   func()
	onConnect    func(creds domain.CRMCredentials)
	onDisconnect func()
	onRunQuery   func(soql string)
	onModeChange func(mode string)
}

// Source modes, re-exported so the window does not import components
// just for the constants.
const (
	ModeFile = components.ModeFile
	ModeCRM  = components.ModeCRM
)

// NewPanel creates the source panel. Connection-dependent controls
// follow state, so the panel greys out the query editor until the CRM
// session is live.
func NewPanel(state *model.ConnectionUIState) *Panel {
	p := &Panel{state: state}

	// File mode widgets
	p.openBtn = widget.NewButtonWithIcon("Open File…", theme.FolderOpenIcon(), func() {
		if p.onOpenFile != nil {
			p.onOpenFile()
		}
	})
	p.openBtn.Importance = widget.HighImportance

	p.fileLabel = widget.NewLabel("No file loaded")
	p.fileLabel.Wrapping = fyne.TextWrapWord

	formatHint := widget.NewLabel("Supported formats: CSV, XLS, XLSX")
	formatHint.Importance = widget.LowImportance

	fileContent := container.NewVBox(
		p.openBtn,
		p.fileLabel,
		formatHint,
	)

	// CRM mode widgets
	p.usernameEntry = widget.NewEntry()
	p.usernameEntry.SetPlaceHolder("user@example.com")

	p.passwordEntry = widget.NewPasswordEntry()

	p.tokenEntry = widget.NewPasswordEntry()
	p.tokenEntry.SetPlaceHolder("optional")

	p.hostSelect = widget.NewSelect([]string{"Production", "Sandbox"}, nil)
	p.hostSelect.SetSelected("Production")

	p.connectBtn = widget.NewButton("Connect", func() {
		p.handleConnectClick()
	})

	p.queryEntry = widget.NewMultiLineEntry()
	p.queryEntry.SetText(DefaultQuery)
	p.queryEntry.Wrapping = fyne.TextWrapWord

	p.runQueryBtn = widget.NewButton("Run Query", func() {
		p.handleRunQuery()
	})
	p.runQueryBtn.Importance = widget.HighImportance

	loginForm := widget.NewForm(
		widget.NewFormItem("Username", p.usernameEntry),
		widget.NewFormItem("Password", p.passwordEntry),
		widget.NewFormItem("Token", p.tokenEntry),
		widget.NewFormItem("Host", p.hostSelect),
	)

	crmContent := container.NewVBox(
		loginForm,
		p.connectBtn,
		widget.NewSeparator(),
		widget.NewLabel("SOQL query"),
		p.queryEntry,
		p.runQueryBtn,
	)

	p.modeTabs = components.NewModeTabs(fileContent, crmContent)
	p.modeTabs.SetOnModeChange(func(mode string) {
		if p.onModeChange != nil {
			p.onModeChange(mode)
		}
	})

	// Follow connection state for button text and control enablement.
	state.State.AddListener(binding.NewDataListener(func() {
		p.updateControls()
	}))

	p.ExtendBaseWidget(p)
	return p
}

// SetOnOpenFile sets the callback for the Open File button.
func (p *Panel) SetOnOpenFile(fn func()) {
	p.onOpenFile = fn
}

// SetOnConnect sets the callback invoked with the entered credentials
// when Connect is clicked while disconnected.
func (p *Panel) SetOnConnect(fn func(creds domain.CRMCredentials)) {
	p.onConnect = fn
}

// SetOnDisconnect sets the callback for clicking the button while connected.
func (p *Panel) SetOnDisconnect(fn func()) {
	p.onDisconnect = fn
}

// SetOnRunQuery sets the callback invoked with the SOQL text.
func (p *Panel) SetOnRunQuery(fn func(soql string)) {
	p.onRunQuery = fn
}

// SetOnModeChange sets the callback fired when the user switches
// between file and CRM mode.
func (p *Panel) SetOnModeChange(fn func(mode string)) {
	p.onModeChange = fn
}

// Mode returns the active source mode.
func (p *Panel) Mode() string {
	return p.modeTabs.Mode()
}

// SetFileName shows the name of the loaded file, or resets the label
// when name is empty.
func (p *Panel) SetFileName(name string) {
	if name == "" {
		p.fileLabel.SetText("No file loaded")
		return
	}
	p.fileLabel.SetText(name)
}

// Query returns the current SOQL text.
func (p *Panel) Query() string {
	return p.queryEntry.Text
}

// SetQuery replaces the SOQL text, used to restore a saved default.
func (p *Panel) SetQuery(soql string) {
	if soql == "" {
		return
	}
	p.queryEntry.SetText(soql)
}

// SetMode programmatically switches source (for keyboard shortcuts).
func (p *Panel) SetMode(mode string) {
	p.modeTabs.SetMode(mode)
}

// TriggerConnect acts like a click on the connect button (for keyboard
// shortcuts).
func (p *Panel) TriggerConnect() {
	p.handleConnectClick()
}

// TriggerRunQuery acts like a click on Run Query, ignored unless the
// connection allows it.
func (p *Panel) TriggerRunQuery() {
	if p.runQueryBtn.Disabled() {
		return
	}
	p.handleRunQuery()
}

// handleConnectClick connects or disconnects depending on the current
// connection state.
func (p *Panel) handleConnectClick() {
	state, err := p.state.State.Get()
	if err != nil {
		return
	}

	switch state {
	case "disconnected", "error":
		if p.onConnect != nil {
			p.onConnect(p.credentials())
		}
	case "connected":
		if p.onDisconnect != nil {
			p.onDisconnect()
		}
	case "connecting":
		// Do nothing while a login is in flight.
	}
}

func (p *Panel) handleRunQuery() {
	if p.onRunQuery == nil {
		return
	}
	p.onRunQuery(p.queryEntry.Text)
}

// credentials collects the login form into a CRMCredentials value.
// Nothing here is ever persisted.
func (p *Panel) credentials() domain.CRMCredentials {
	host := domain.HostProduction
	if p.hostSelect.Selected == "Sandbox" {
		host = domain.HostSandbox
	}
	return domain.CRMCredentials{
		Username:      p.usernameEntry.Text,
		Password:      p.passwordEntry.Text,
		SecurityToken: p.tokenEntry.Text,
		Host:          host,
	}
}

// updateControls updates button text and control enablement from the
// connection state.
func (p *Panel) updateControls() {
	state, err := p.state.State.Get()
	if err != nil {
		return
	}

	switch state {
	case "disconnected":
		p.connectBtn.SetText("Connect")
		p.connectBtn.Enable()
		p.setLoginEnabled(true)
		p.setQueryEnabled(false)
	case "connecting":
		p.connectBtn.SetText("Connecting...")
		p.connectBtn.Disable()
		p.setLoginEnabled(false)
		p.setQueryEnabled(false)
	case "connected":
		p.connectBtn.SetText("Disconnect")
		p.connectBtn.Enable()
		p.setLoginEnabled(false)
		p.setQueryEnabled(true)
	case "error":
		p.connectBtn.SetText("Retry")
		p.connectBtn.Enable()
		p.setLoginEnabled(true)
		p.setQueryEnabled(false)
	}
}

func (p *Panel) setLoginEnabled(enabled bool) {
	if enabled {
		p.usernameEntry.Enable()
		p.passwordEntry.Enable()
		p.tokenEntry.Enable()
		p.hostSelect.Enable()
		return
	}
	p.usernameEntry.Disable()
	p.passwordEntry.Disable()
	p.tokenEntry.Disable()
	p.hostSelect.Disable()
}

func (p *Panel) setQueryEnabled(enabled bool) {
	if enabled {
		p.queryEntry.Enable()
		p.runQueryBtn.Enable()
		return
	}
	p.queryEntry.Disable()
	p.runQueryBtn.Disable()
}

// CreateRenderer implements fyne.Widget.
func (p *Panel) CreateRenderer() fyne.WidgetRenderer {
	title := widget.NewLabel("Source")
	title.TextStyle = fyne.TextStyle{Bold: true}

	content := container.NewBorder(
		container.NewVBox(title, widget.NewSeparator()),
		nil, nil, nil,
		container.NewVScroll(p.modeTabs),
	)
	return widget.NewSimpleRenderer(content)
}
