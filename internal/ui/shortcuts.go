package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/rowboat-io/rowboat/internal/ui/load"
)

// setupKeyboardShortcuts configures all keyboard shortcuts for the main window
func (w *MainWindow) setupKeyboardShortcuts() {
	canvas := w.window.Canvas()

	// Cmd+O: Open file
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyO,
		Modifier: fyne.KeyModifierSuper, // Cmd on macOS, Win on Windows
	}, func(shortcut fyne.Shortcut) {
		w.logger.Debug("keyboard shortcut: open file")
		w.handleOpenFile()
	})

	// Cmd+Enter: Run query (only useful on the CRM source)
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyReturn,
		Modifier: fyne.KeyModifierSuper,
	}, func(shortcut fyne.Shortcut) {
		if w.sourcePanel.Mode() != load.ModeCRM {
			return
		}
		w.logger.Debug("keyboard shortcut: run query")
		w.sourcePanel.TriggerRunQuery()
	})

	// Cmd+Shift+C: Connect or disconnect, matching the button
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyC,
		Modifier: fyne.KeyModifierSuper | fyne.KeyModifierShift,
	}, func(shortcut fyne.Shortcut) {
		w.logger.Debug("keyboard shortcut: toggle connection")
		w.sourcePanel.TriggerConnect()
	})

	// Cmd+1: Switch to the file source
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.Key1,
		Modifier: fyne.KeyModifierSuper,
	}, func(shortcut fyne.Shortcut) {
		w.logger.Debug("keyboard shortcut: file source")
		w.sourcePanel.SetMode(load.ModeFile)
	})

	// Cmd+2: Switch to the CRM source
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.Key2,
		Modifier: fyne.KeyModifierSuper,
	}, func(shortcut fyne.Shortcut) {
		w.logger.Debug("keyboard shortcut: CRM source")
		w.sourcePanel.SetMode(load.ModeCRM)
	})

	// Cmd+,: Preferences
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyComma,
		Modifier: fyne.KeyModifierSuper,
	}, func(shortcut fyne.Shortcut) {
		w.logger.Debug("keyboard shortcut: preferences")
		w.showPreferences()
	})

	// Cmd+Q: Quit
	canvas.AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyQ,
		Modifier: fyne.KeyModifierSuper,
	}, func(shortcut fyne.Shortcut) {
		w.logger.Debug("keyboard shortcut: quit")
		w.fyneApp.Quit()
	})

	// Escape: Cancel a running upload
	canvas.SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeyEscape {
			w.logger.Debug("keyboard shortcut: escape (cancel operation)")
			w.handleCancelOperation()
		}
	})

	w.logger.Info("keyboard shortcuts configured")
}
