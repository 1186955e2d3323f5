package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// ThemePreferenceKey stores the chosen theme mode in the app preferences.
const ThemePreferenceKey = "appTheme"

// Theme modes.
const (
	themeSystem = "system"
	themeLight  = "light"
	themeDark   = "dark"
)

// forcedVariant pins a theme to one variant regardless of what the OS
// reports.
type forcedVariant struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (f *forcedVariant) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return f.Theme.Color(name, f.variant)
}

// ApplyTheme switches the application theme. Unknown modes fall back to
// following the system.
func ApplyTheme(a fyne.App, mode string) {
	switch mode {
	case themeDark:
		a.Settings().SetTheme(&forcedVariant{Theme: theme.DefaultTheme(), variant: theme.VariantDark})
	case themeLight:
		a.Settings().SetTheme(&forcedVariant{Theme: theme.DefaultTheme(), variant: theme.VariantLight})
	default:
		a.Settings().SetTheme(theme.DefaultTheme())
	}
}

// LoadThemePreference applies the saved theme mode at startup.
func LoadThemePreference(a fyne.App) {
	ApplyTheme(a, a.Preferences().StringWithFallback(ThemePreferenceKey, themeSystem))
}
