package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Source modes.
const (
	ModeFile = "file"
	ModeCRM  = "crm"
)

const (
	labelFile = "File"
	labelCRM  = "CRM Query"
)

// ModeTabs toggles between the file and CRM source views using a
// horizontal RadioGroup. This visually distinguishes the source switch
// from the content-level AppTabs, and notifies listeners when the user
// changes source.
type ModeTabs struct {
	widget.BaseWidget

	modeSelect   *widget.RadioGroup
	fileContent  fyne.CanvasObject
	crmContent   fyne.CanvasObject
	contentStack *fyne.Container

	onModeChange func(mode string)
}

// NewModeTabs creates the source mode switch. fileContent shows under
// "File", crmContent under "CRM Query"; the file view starts active.
func NewModeTabs(fileContent, crmContent fyne.CanvasObject) *ModeTabs {
	m := &ModeTabs{
		fileContent: fileContent,
		crmContent:  crmContent,
	}

	m.modeSelect = widget.NewRadioGroup([]string{labelFile, labelCRM}, func(selected string) {
		mode := modeFor(selected)
		m.updateContent(mode)
		if m.onModeChange != nil {
			m.onModeChange(mode)
		}
	})
	m.modeSelect.Horizontal = true
	m.modeSelect.Selected = labelFile

	m.contentStack = container.NewStack(fileContent)

	m.ExtendBaseWidget(m)
	return m
}

// SetOnModeChange sets the callback invoked with ModeFile or ModeCRM
// when the user switches source.
func (m *ModeTabs) SetOnModeChange(fn func(mode string)) {
	m.onModeChange = fn
}

// SetMode programmatically switches source. Does nothing when already
// on the requested mode, so the change callback never fires twice.
func (m *ModeTabs) SetMode(mode string) {
	if m.Mode() == mode {
		return
	}

	switch mode {
	case ModeFile:
		m.modeSelect.SetSelected(labelFile)
	case ModeCRM:
		m.modeSelect.SetSelected(labelCRM)
	}
}

// Mode returns the active source mode, ModeFile or ModeCRM.
func (m *ModeTabs) Mode() string {
	return modeFor(m.modeSelect.Selected)
}

func modeFor(selected string) string {
	if selected == labelCRM {
		return ModeCRM
	}
	return ModeFile
}

// updateContent swaps the visible source view in the stack.
func (m *ModeTabs) updateContent(mode string) {
	switch mode {
	case ModeFile:
		m.contentStack.Objects = []fyne.CanvasObject{m.fileContent}
	case ModeCRM:
		m.contentStack.Objects = []fyne.CanvasObject{m.crmContent}
	}
	m.contentStack.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (m *ModeTabs) CreateRenderer() fyne.WidgetRenderer {
	content := container.NewBorder(m.modeSelect, nil, nil, nil, m.contentStack)
	return widget.NewSimpleRenderer(content)
}
