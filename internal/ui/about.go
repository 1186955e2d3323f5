package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Version is set at build time via ldflags:
//
//	go build -ldflags "-X github.com/rowboat-io/rowboat/internal/ui.Version=1.2.3"
var Version = "dev"

// ShowAboutDialog displays information about the Rowboat application.
func ShowAboutDialog(parent fyne.Window) {
	content := container.NewVBox(
		widget.NewLabelWithStyle("Rowboat", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Load, clean and ship tabular data"),
		widget.NewLabel("Version "+Version),
		widget.NewSeparator(),
		widget.NewLabel("Built with Fyne and Go"),
	)
	dialog.ShowCustom("About Rowboat", "Close", content, parent)
}

// ShowShortcutDialog displays a reference of all keyboard shortcuts.
func ShowShortcutDialog(parent fyne.Window) {
	shortcuts := []struct{ action, key string }{
		{"Open File", "⌘ O"},
		{"Run Query", "⌘ Return"},
		{"Connect / Disconnect", "⌘ ⇧ C"},
		{"File Source", "⌘ 1"},
		{"CRM Source", "⌘ 2"},
		{"Preferences", "⌘ ,"},
		{"Quit", "⌘ Q"},
		{"Cancel Operation", "Escape"},
	}

	grid := container.NewGridWithColumns(2)
	for _, s := range shortcuts {
		grid.Add(widget.NewLabel(s.action))
		grid.Add(widget.NewLabelWithStyle(s.key, fyne.TextAlignTrailing, fyne.TextStyle{Monospace: true}))
	}

	dialog.ShowCustom("Keyboard Shortcuts", "Close", container.NewVScroll(grid), parent)
}
