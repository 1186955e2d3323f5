package errors

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/rowboat-io/rowboat/internal/model"
)

// StatusBar shows the CRM session state on the left and the outcome of
// the last action plus the table shape on the right. Each connection
// state uses a distinct icon shape, not just a color:
//   - Disconnected: empty radio button (circle outline)
//   - Connecting: view-refresh icon (circular arrows)
//   - Connected: confirm icon (checkmark)
//   - Error: error icon (X shape)
type StatusBar struct {
	widget.BaseWidget

	state *model.ApplicationState

	indicator  *widget.Icon
	connLabel  *widget.Label
	busy       *widget.ProgressBarInfinite
	message    *widget.Label
	shapeLabel *widget.Label
}

// NewStatusBar creates a status bar bound to the application state.
func NewStatusBar(state *model.ApplicationState) *StatusBar {
	connLabel := widget.NewLabel("Disconnected")
	connLabel.Truncation = fyne.TextTruncateEllipsis

	message := widget.NewLabelWithData(state.StatusMessage)
	message.Truncation = fyne.TextTruncateEllipsis

	shapeLabel := widget.NewLabelWithData(state.ShapeLabel)
	shapeLabel.TextStyle = fyne.TextStyle{Italic: true}

	s := &StatusBar{
		state:      state,
		indicator:  widget.NewIcon(theme.RadioButtonIcon()),
		connLabel:  connLabel,
		busy:       widget.NewProgressBarInfinite(),
		message:    message,
		shapeLabel: shapeLabel,
	}
	s.ExtendBaseWidget(s)
	s.busy.Hide()
	s.busy.Stop()

	state.Connection.State.AddListener(binding.NewDataListener(s.updateConnection))
	state.Connection.Message.AddListener(binding.NewDataListener(s.updateConnection))
	state.Busy.AddListener(binding.NewDataListener(s.updateBusy))
	s.updateConnection()

	return s
}

func (s *StatusBar) updateConnection() {
	stateStr, _ := s.state.Connection.State.Get()
	message, _ := s.state.Connection.Message.Get()

	var icon fyne.Resource
	var fallback string
	switch stateStr {
	case "connecting":
		icon, fallback = theme.ViewRefreshIcon(), "Connecting..."
	case "connected":
		icon, fallback = theme.ConfirmIcon(), "Connected"
	case "error":
		icon, fallback = theme.ErrorIcon(), "Connection Error"
	default:
		icon, fallback = theme.RadioButtonIcon(), "Disconnected"
	}

	s.indicator.SetResource(icon)
	if message == "" {
		message = fallback
	}
	s.connLabel.SetText(message)
}

func (s *StatusBar) updateBusy() {
	busy, _ := s.state.Busy.Get()
	if busy {
		s.busy.Show()
		s.busy.Start()
	} else {
		s.busy.Stop()
		s.busy.Hide()
	}
}

// CreateRenderer implements fyne.Widget.
func (s *StatusBar) CreateRenderer() fyne.WidgetRenderer {
	bar := container.NewBorder(
		nil, nil,
		container.NewHBox(s.indicator, s.connLabel),
		container.NewHBox(s.busy, s.shapeLabel),
		s.message,
	)
	return widget.NewSimpleRenderer(bar)
}
