package model

import "fyne.io/fyne/v2/data/binding"

// ApplicationState holds the bindings reactive UI labels watch.
// Panels read the session store for table data; these carry the
// lightweight presentation state around it.
type ApplicationState struct {
	// SourceLabel names what produced the working table, e.g. a file
	// name or a query summary.
	SourceLabel binding.String

	// ShapeLabel is the "N rows × M columns" line for the status bar.
	ShapeLabel binding.String

	// StatusMessage is the outcome of the last action.
	StatusMessage binding.String

	// Busy is true while a load or save runs in the background.
	Busy binding.Bool

	Connection *ConnectionUIState
}

// NewApplicationState creates an ApplicationState with initialized bindings.
func NewApplicationState() *ApplicationState {
	return &ApplicationState{
		SourceLabel:   binding.NewString(),
		ShapeLabel:    binding.NewString(),
		StatusMessage: binding.NewString(),
		Busy:          binding.NewBool(),
		Connection:    NewConnectionUIState(),
	}
}

// ConnectionUIState mirrors the CRM session state for display.
// States: "disconnected", "connecting", "connected", "error"
type ConnectionUIState struct {
	State   binding.String
	Message binding.String
}

// NewConnectionUIState creates a ConnectionUIState starting disconnected.
func NewConnectionUIState() *ConnectionUIState {
	state := binding.NewString()
	_ = state.Set("disconnected")

	return &ConnectionUIState{
		State:   state,
		Message: binding.NewString(),
	}
}
