package settings

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Preference keys (must match the constants used elsewhere in the app).
const (
	PrefAPIVersion   = "apiVersion"
	PrefDefaultQuery = "defaultQuery"
	PrefTheme        = "appTheme"
)

// PreferencesCallbacks provides hooks for the preferences dialog to apply changes.
type PreferencesCallbacks struct {
	OnThemeChange func(mode string) // Called with "system", "dark", or "light"
}

// ShowPreferencesDialog displays the unified preferences dialog with CRM and Appearance tabs.
func ShowPreferencesDialog(a fyne.App, window fyne.Window, callbacks PreferencesCallbacks) {
	prefs := a.Preferences()

	// --- CRM tab ---

	versionEntry := widget.NewEntry()
	versionEntry.SetText(prefs.StringWithFallback(PrefAPIVersion, ""))
	versionEntry.SetPlaceHolder("59.0")

	queryEntry := widget.NewEntry()
	queryEntry.SetText(prefs.StringWithFallback(PrefDefaultQuery, ""))
	queryEntry.SetPlaceHolder("SELECT Id, Name FROM Account LIMIT 100")

	crmTab := container.NewTabItem("CRM", container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("API version", versionEntry),
			widget.NewFormItem("Default query", queryEntry),
		),
		widget.NewLabel("The API version applies to the next login. Blank fields keep the built-in defaults."),
	))

	// --- Appearance tab ---

	themeSelector := widget.NewSelect(
		[]string{"System Default", "Light", "Dark"},
		nil,
	)

	savedTheme := prefs.StringWithFallback(PrefTheme, "system")
	switch savedTheme {
	case "dark":
		themeSelector.SetSelected("Dark")
	case "light":
		themeSelector.SetSelected("Light")
	default:
		themeSelector.SetSelected("System Default")
	}

	appearanceTab := container.NewTabItem("Appearance", container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Theme", themeSelector),
		),
	))

	// --- Build dialog ---

	tabs := container.NewAppTabs(crmTab, appearanceTab)

	dlg := dialog.NewCustomConfirm("Preferences", "Save", "Cancel", tabs, func(save bool) {
		if !save {
			return
		}

		prefs.SetString(PrefAPIVersion, strings.TrimSpace(versionEntry.Text))
		prefs.SetString(PrefDefaultQuery, strings.TrimSpace(queryEntry.Text))

		// Save and apply theme
		var mode string
		switch themeSelector.Selected {
		case "Dark":
			mode = "dark"
		case "Light":
			mode = "light"
		default:
			mode = "system"
		}
		prefs.SetString(PrefTheme, mode)
		if callbacks.OnThemeChange != nil {
			callbacks.OnThemeChange(mode)
		}
	}, window)

	dlg.Resize(fyne.NewSize(500, 350))
	dlg.Show()
}
