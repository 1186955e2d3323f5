package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"fyne.io/fyne/v2/app"
	rowboatApp "github.com/rowboat-io/rowboat/internal/app"
	"github.com/rowboat-io/rowboat/internal/ui"
)

func main() {
	if err := runApp(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// runApp is the main application entry point with panic recovery.
func runApp() (err error) {
	// Create a temporary stdout logger for bootstrap errors
	tempLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Recover from panics
	defer func() {
		if r := recover(); r != nil {
			tempLogger.Error("panic recovered",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	tempLogger.Info("starting Rowboat")

	// Load configuration from environment
	cfg := rowboatApp.ConfigFromEnv()

	// Create Fyne application
	fyneApp := app.NewWithID("io.rowboat.app")
	ui.LoadThemePreference(fyneApp)

	// Create and wire the application
	rowboatApp, err := rowboatApp.New(fyneApp, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	// Create main window
	mainWindow := ui.NewMainWindow(
		rowboatApp.FyneApp(),
		rowboatApp, // Pass the app as the controller
	)

	// Run the application (blocking)
	rowboatApp.Run(mainWindow.Window())

	rowboatApp.Logger().Info("application shutdown complete")
	return nil
}
