package ui

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"github.com/rowboat-io/rowboat/internal/chart"
	"github.com/rowboat-io/rowboat/internal/crm"
	"github.com/rowboat-io/rowboat/internal/domain"
	"github.com/rowboat-io/rowboat/internal/model"
	"github.com/rowboat-io/rowboat/internal/session"
	"github.com/rowboat-io/rowboat/internal/sink"
	"github.com/rowboat-io/rowboat/internal/tabular"
	"github.com/rowboat-io/rowboat/internal/ui/activity"
	"github.com/rowboat-io/rowboat/internal/ui/clean"
	uierrors "github.com/rowboat-io/rowboat/internal/ui/errors"
	"github.com/rowboat-io/rowboat/internal/ui/graph"
	"github.com/rowboat-io/rowboat/internal/ui/load"
	"github.com/rowboat-io/rowboat/internal/ui/preview"
	"github.com/rowboat-io/rowboat/internal/ui/save"
	"github.com/rowboat-io/rowboat/internal/ui/settings"
	"github.com/rowboat-io/rowboat/internal/ui/stats"
)

// Operation deadlines. File loads are local and fast; everything that
// crosses the network gets a generous but finite budget. Uploads run
// uncapped because row count drives their duration; Escape cancels.
const (
	connectTimeout  = 30 * time.Second
	queryTimeout    = 2 * time.Minute
	describeTimeout = 30 * time.Second
	databaseTimeout = 2 * time.Minute
)

// AppController defines the application operations the UI needs. Every
// method that mutates the working table records its own activity entry
// and notifies the session store, so the window only renders outcomes.
type AppController interface {
	State() *model.ApplicationState
	Logger() *slog.Logger
	Store() *session.Store

	Connect(ctx context.Context, creds domain.CRMCredentials) error
	Disconnect()

	LoadFile(path string) error
	RunQuery(ctx context.Context, soql string) error
	ClearTable()

	SortTable(column string, descending bool) error
	DropMissingRows(columns []string) error
	GroupTable(key string, columns []string, agg tabular.Aggregation) error

	ExportCSV(path string, limit int) error
	ExportExcel(path string, limit int) error
	ExportDatabase(ctx context.Context, target domain.DatabaseTarget) (int, error)
	DescribeObject(ctx context.Context, object string, creds *domain.CRMCredentials) ([]crm.Field, error)
	Upload(ctx context.Context, req sink.UploadRequest, creds *domain.CRMCredentials) (*sink.UploadResult, error)
}

// MainWindow manages the main application window and its layout.
type MainWindow struct {
	fyneApp fyne.App
	window  fyne.Window
	state   *model.ApplicationState
	logger  *slog.Logger
	app     AppController

	// Panel widgets
	sourcePanel   *load.Panel
	previewPanel  *preview.Panel
	statsPanel    *stats.Panel
	cleanPanel    *clean.Panel
	graphPanel    *graph.Panel
	savePanel     *save.Panel
	activityPanel *activity.Panel
	statusBar     *uierrors.StatusBar

	// Escape cancels a running upload.
	uploadMu     sync.Mutex
	uploadCancel context.CancelFunc
}

// NewMainWindow creates the main window with the application layout.
func NewMainWindow(fyneApp fyne.App, app AppController) *MainWindow {
	window := fyneApp.NewWindow("Rowboat")

	mw := &MainWindow{
		fyneApp: fyneApp,
		window:  window,
		state:   app.State(),
		logger:  app.Logger(),
		app:     app,
	}

	mw.sourcePanel = load.NewPanel(mw.state.Connection)
	mw.previewPanel = preview.NewPanel()
	mw.statsPanel = stats.NewPanel()
	mw.cleanPanel = clean.NewPanel()
	mw.graphPanel = graph.NewPanel()
	mw.savePanel = save.NewPanel()
	mw.activityPanel = activity.NewPanel()
	mw.statusBar = uierrors.NewStatusBar(mw.state)

	if q := fyneApp.Preferences().StringWithFallback(settings.PrefDefaultQuery, ""); q != "" {
		mw.sourcePanel.SetQuery(q)
	}

	mw.wireCallbacks()

	// The store notifies from whatever goroutine ran the operation,
	// so panel updates hop to the UI thread.
	store := app.Store()
	store.OnTableChange(func() {
		fyne.Do(mw.refreshTable)
	})
	store.OnActivity(func() {
		fyne.Do(mw.refreshActivity)
	})

	// The upload section follows the connection.
	mw.state.Connection.State.AddListener(binding.NewDataListener(func() {
		connState, err := mw.state.Connection.State.Get()
		if err != nil {
			return
		}
		mw.savePanel.SetCRMConnected(connState == "connected")
	}))

	mw.setupKeyboardShortcuts()
	mw.buildMainMenu()
	mw.SetContent()

	window.Resize(fyne.NewSize(1280, 800))

	return mw
}

// wireCallbacks sets up all the event handlers and connects components.
func (w *MainWindow) wireCallbacks() {
	w.sourcePanel.SetOnOpenFile(func() {
		w.handleOpenFile()
	})
	w.sourcePanel.SetOnConnect(func(creds domain.CRMCredentials) {
		w.handleConnect(creds)
	})
	w.sourcePanel.SetOnDisconnect(func() {
		w.handleDisconnect()
	})
	w.sourcePanel.SetOnRunQuery(func(soql string) {
		w.handleRunQuery(soql)
	})
	w.sourcePanel.SetOnModeChange(func(mode string) {
		w.handleModeChange(mode)
	})

	w.cleanPanel.SetOnSort(func(column string, descending bool) {
		w.handleSort(column, descending)
	})
	w.cleanPanel.SetOnDropMissing(func(columns []string) {
		w.handleDropMissing(columns)
	})
	w.cleanPanel.SetOnGroup(func(key string, columns []string, agg tabular.Aggregation) {
		w.handleGroup(key, columns, agg)
	})

	w.graphPanel.SetOnRender(func(kind chart.Kind, xCol, yCol string) {
		w.handleRenderChart(kind, xCol, yCol)
	})

	w.savePanel.SetOnSaveCSV(func(limit int) {
		w.handleSaveFile("export.csv", limit, w.app.ExportCSV)
	})
	w.savePanel.SetOnSaveExcel(func(limit int) {
		w.handleSaveFile("export.xlsx", limit, w.app.ExportExcel)
	})
	w.savePanel.SetOnSaveDatabase(func(target domain.DatabaseTarget) {
		w.handleSaveDatabase(target)
	})
	w.savePanel.SetOnSuggest(func(object string, creds *domain.CRMCredentials) {
		w.handleSuggest(object, creds)
	})
	w.savePanel.SetOnUpload(func(req sink.UploadRequest, creds *domain.CRMCredentials) {
		w.handleUpload(req, creds)
	})
}

// refreshTable pushes the current working table into every panel.
// Runs on the UI thread.
func (w *MainWindow) refreshTable() {
	t := w.app.Store().Table()

	w.previewPanel.SetTable(t)
	w.statsPanel.SetTable(t)

	var columns []string
	if t != nil {
		columns = t.Columns
	}
	w.cleanPanel.SetColumns(columns)
	w.graphPanel.SetColumns(columns, tabular.NumericColumns(t))
	w.savePanel.SetColumns(columns)

	// A chart built from the previous table is stale.
	w.graphPanel.SetChart(nil)

	_ = w.state.SourceLabel.Set(w.app.Store().SourceName())
	if t == nil {
		_ = w.state.ShapeLabel.Set("")
	} else {
		_ = w.state.ShapeLabel.Set(tabular.ShapeLine(t))
	}
}

// refreshActivity mirrors the session log into the activity panel.
// Runs on the UI thread.
func (w *MainWindow) refreshActivity() {
	w.activityPanel.SetEntries(w.app.Store().Activity())
}

// handleOpenFile lets the user pick a table file and loads it.
func (w *MainWindow) handleOpenFile() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			uierrors.ShowError(err, w.window)
			return
		}
		if rc == nil {
			return // cancelled
		}
		path := rc.URI().Path()
		_ = rc.Close()
		if path == "" {
			uierrors.ShowError(fmt.Errorf("choose a local file"), w.window)
			return
		}
		w.loadFile(path)
	}, w.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".xls", ".xlsx"}))
	fd.Show()
}

func (w *MainWindow) loadFile(path string) {
	name := filepath.Base(path)
	go func() {
		_ = w.state.Busy.Set(true)
		_ = w.state.StatusMessage.Set("Loading " + name)

		err := w.app.LoadFile(path)

		_ = w.state.Busy.Set(false)
		if err != nil {
			_ = w.state.StatusMessage.Set("Load failed")
			fyne.Do(func() {
				w.sourcePanel.SetFileName("")
				uierrors.ShowClassifiedError(err, w.window, func() {
					w.loadFile(path)
				})
			})
			return
		}

		_ = w.state.StatusMessage.Set("Loaded " + name)
		fyne.Do(func() {
			w.sourcePanel.SetFileName(name)
		})
	}()
}

// handleConnect logs in to the CRM. Connection state flows back through
// the client's state callback, so this only reports failure.
func (w *MainWindow) handleConnect(creds domain.CRMCredentials) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		if err := w.app.Connect(ctx, creds); err != nil {
			w.logger.Error("login failed", slog.Any("error", err))
			fyne.Do(func() {
				uierrors.ShowClassifiedError(err, w.window, func() {
					w.handleConnect(creds)
				})
			})
		}
	}()
}

func (w *MainWindow) handleDisconnect() {
	go w.app.Disconnect()
}

// handleRunQuery loads the working table from a SOQL query.
func (w *MainWindow) handleRunQuery(soql string) {
	go func() {
		_ = w.state.Busy.Set(true)
		_ = w.state.StatusMessage.Set("Running query")

		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		err := w.app.RunQuery(ctx, soql)

		_ = w.state.Busy.Set(false)
		if err != nil {
			_ = w.state.StatusMessage.Set("Query failed")
			fyne.Do(func() {
				uierrors.ShowClassifiedError(err, w.window, func() {
					w.handleRunQuery(soql)
				})
			})
			return
		}

		_ = w.state.StatusMessage.Set("Query complete")
	}()
}

// handleModeChange clears the working table and drops the CRM session
// when the user switches source, so file rows never masquerade as query
// results and a stale login never leaks into the next source.
func (w *MainWindow) handleModeChange(mode string) {
	w.logger.Debug("source mode changed", slog.String("mode", mode))
	if w.app.Store().HasTable() {
		w.app.ClearTable()
	}
	w.app.Disconnect()
	w.sourcePanel.SetFileName("")
	_ = w.state.StatusMessage.Set("")
}

func (w *MainWindow) handleSort(column string, descending bool) {
	go func() {
		if err := w.app.SortTable(column, descending); err != nil {
			fyne.Do(func() {
				uierrors.ShowClassifiedError(err, w.window, nil)
			})
			return
		}

		direction := "ascending"
		if descending {
			direction = "descending"
		}
		_ = w.state.StatusMessage.Set(fmt.Sprintf("Sorted by %s %s", column, direction))
	}()
}

func (w *MainWindow) handleDropMissing(columns []string) {
	go func() {
		before, _ := w.app.Store().Table().Shape()

		if err := w.app.DropMissingRows(columns); err != nil {
			fyne.Do(func() {
				uierrors.ShowClassifiedError(err, w.window, nil)
			})
			return
		}

		after, _ := w.app.Store().Table().Shape()
		_ = w.state.StatusMessage.Set(fmt.Sprintf("Removed %d rows, %d remain", before-after, after))
	}()
}

func (w *MainWindow) handleGroup(key string, columns []string, agg tabular.Aggregation) {
	go func() {
		if err := w.app.GroupTable(key, columns, agg); err != nil {
			fyne.Do(func() {
				uierrors.ShowClassifiedError(err, w.window, nil)
			})
			return
		}

		groups, _ := w.app.Store().Table().Shape()
		_ = w.state.StatusMessage.Set(fmt.Sprintf("Grouped by %s: %d groups", key, groups))
	}()
}

// handleRenderChart builds a chart from the current table. Build is
// pure and fast, so this stays on the UI thread.
func (w *MainWindow) handleRenderChart(kind chart.Kind, xCol, yCol string) {
	cfg, err := chart.Build(w.app.Store().Table(), kind, xCol, yCol)
	if err != nil {
		uierrors.ShowClassifiedError(err, w.window, nil)
		return
	}
	w.graphPanel.SetChart(cfg)
}

// handleSaveFile runs a file export after the user picks a location.
// The picked file is closed and re-written atomically by the exporter,
// which only works for local paths.
func (w *MainWindow) handleSaveFile(suggested string, limit int, export func(path string, limit int) error) {
	fd := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			uierrors.ShowError(err, w.window)
			return
		}
		if wc == nil {
			return // cancelled
		}
		path := wc.URI().Path()
		_ = wc.Close()
		if path == "" {
			uierrors.ShowError(fmt.Errorf("choose a local file"), w.window)
			return
		}

		name := filepath.Base(path)
		go func() {
			_ = w.state.Busy.Set(true)

			err := export(path, limit)

			_ = w.state.Busy.Set(false)
			if err != nil {
				_ = w.state.StatusMessage.Set("Save failed")
				fyne.Do(func() {
					uierrors.ShowClassifiedError(err, w.window, nil)
				})
				return
			}
			_ = w.state.StatusMessage.Set("Saved " + name)
		}()
	}, w.window)
	fd.SetFileName(suggested)
	fd.Show()
}

func (w *MainWindow) handleSaveDatabase(target domain.DatabaseTarget) {
	go func() {
		_ = w.state.Busy.Set(true)
		_ = w.state.StatusMessage.Set("Writing to database")

		ctx, cancel := context.WithTimeout(context.Background(), databaseTimeout)
		defer cancel()

		rows, err := w.app.ExportDatabase(ctx, target)

		_ = w.state.Busy.Set(false)
		if err != nil {
			_ = w.state.StatusMessage.Set("Database write failed")
			fyne.Do(func() {
				uierrors.ShowClassifiedError(err, w.window, func() {
					w.handleSaveDatabase(target)
				})
			})
			return
		}

		_ = w.state.StatusMessage.Set(fmt.Sprintf("Wrote %d rows to %s", rows, target.Table))
	}()
}

func (w *MainWindow) handleSuggest(object string, creds *domain.CRMCredentials) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), describeTimeout)
		defer cancel()

		fields, err := w.app.DescribeObject(ctx, object, creds)
		if err != nil {
			fyne.Do(func() {
				uierrors.ShowClassifiedError(err, w.window, nil)
			})
			return
		}

		fyne.Do(func() {
			w.savePanel.SetFieldSuggestions(fields)
		})
		_ = w.state.StatusMessage.Set(fmt.Sprintf("Described %s: %d fields", object, len(fields)))
	}()
}

// handleUpload pushes rows to the CRM one at a time. The cancel func is
// parked so Escape can abort a long run; a partial result still shows.
func (w *MainWindow) handleUpload(req sink.UploadRequest, creds *domain.CRMCredentials) {
	go func() {
		ctx, cancel := context.WithCancel(context.Background())
		w.uploadMu.Lock()
		w.uploadCancel = cancel
		w.uploadMu.Unlock()
		defer func() {
			w.uploadMu.Lock()
			w.uploadCancel = nil
			w.uploadMu.Unlock()
			cancel()
		}()

		_ = w.state.Busy.Set(true)
		_ = w.state.StatusMessage.Set("Uploading to " + req.Object)

		result, err := w.app.Upload(ctx, req, creds)

		_ = w.state.Busy.Set(false)
		fyne.Do(func() {
			w.savePanel.SetUploadResult(result)
			if err != nil {
				uierrors.ShowClassifiedError(err, w.window, nil)
			}
		})

		switch {
		case err != nil:
			_ = w.state.StatusMessage.Set("Upload stopped")
		case len(result.Errors) > 0:
			_ = w.state.StatusMessage.Set(fmt.Sprintf("Upload finished: %d ok, %d failed", result.Succeeded, len(result.Errors)))
		default:
			_ = w.state.StatusMessage.Set(fmt.Sprintf("Upload finished: %d rows", result.Succeeded))
		}
	}()
}

// handleCancelOperation aborts a running upload, if any.
func (w *MainWindow) handleCancelOperation() {
	w.uploadMu.Lock()
	cancel := w.uploadCancel
	w.uploadCancel = nil
	w.uploadMu.Unlock()

	if cancel != nil {
		w.logger.Debug("upload cancelled by user")
		cancel()
	}
}

// showPreferences opens the settings dialog, shared between the menu
// and the Cmd+, shortcut.
func (w *MainWindow) showPreferences() {
	settings.ShowPreferencesDialog(w.fyneApp, w.window, settings.PreferencesCallbacks{
		OnThemeChange: func(mode string) {
			ApplyTheme(w.fyneApp, mode)
		},
	})
}

// buildMainMenu attaches the application menu.
func (w *MainWindow) buildMainMenu() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open File…", func() {
			w.handleOpenFile()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences…", func() {
			w.showPreferences()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Keyboard Shortcuts", func() {
			ShowShortcutDialog(w.window)
		}),
		fyne.NewMenuItem("About Rowboat", func() {
			ShowAboutDialog(w.window)
		}),
	)

	w.window.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

// SetContent builds and sets the main window layout.
// Layout structure:
//
//	┌──────────────┬───────────────────────────────────────┐
//	│              │ Preview │ Statistics │ Cleaning │ ...  │
//	│   Source     ├───────────────────────────────────────┤
//	│   Panel      │                                       │
//	│              │           (selected tab)              │
//	│              │                                       │
//	├──────────────┴───────────────────────────────────────┤
//	│                      Status Bar                      │
//	└──────────────────────────────────────────────────────┘
func (w *MainWindow) SetContent() {
	tabs := container.NewAppTabs(
		container.NewTabItem("Preview", w.previewPanel),
		container.NewTabItem("Statistics", w.statsPanel),
		container.NewTabItem("Cleaning", w.cleanPanel),
		container.NewTabItem("Chart", w.graphPanel),
		container.NewTabItem("Save", w.savePanel),
		container.NewTabItem("Activity", w.activityPanel),
	)

	mainSplit := container.NewHSplit(
		w.sourcePanel,
		tabs,
	)
	mainSplit.SetOffset(0.28)

	content := container.NewBorder(
		nil,         // top
		w.statusBar, // bottom
		nil, nil,
		mainSplit,
	)

	w.window.SetContent(content)
}

// Window returns the underlying Fyne window.
func (w *MainWindow) Window() fyne.Window {
	return w.window
}
