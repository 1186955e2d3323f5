package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"

	"github.com/rowboat-io/rowboat/internal/crm"
	"github.com/rowboat-io/rowboat/internal/domain"
	apperrors "github.com/rowboat-io/rowboat/internal/errors"
	"github.com/rowboat-io/rowboat/internal/logging"
	"github.com/rowboat-io/rowboat/internal/model"
	"github.com/rowboat-io/rowboat/internal/session"
	"github.com/rowboat-io/rowboat/internal/sink"
	"github.com/rowboat-io/rowboat/internal/source"
	"github.com/rowboat-io/rowboat/internal/tabular"
)

// prefAPIVersion mirrors the key the preferences dialog writes
// (internal/ui/settings). A saved value applies to the next login.
const prefAPIVersion = "apiVersion"

// App is the main application coordinator, responsible for wiring
// together all components and managing their lifecycle. It implements
// the operations the UI drives; each one records its own activity
// entry, so the session log stays complete no matter which panel or
// shortcut triggered the work.
type App struct {
	fyneApp fyne.App
	window  fyne.Window
	config  *Config
	logger  *slog.Logger
	state   *model.ApplicationState
	store   *session.Store

	// crm is replaced on every login; a client is bound to one session.
	// Credentials pass through Connect and are never stored here.
	crmMu sync.RWMutex
	crm   *crm.Client
}

// New creates a new App instance with the given configuration.
// This performs all dependency injection and wiring.
func New(fyneApp fyne.App, cfg *Config) (*App, error) {
	var logger *slog.Logger
	var err error
	if cfg.LogPath != "" {
		logger, err = logging.InitLoggerAt(cfg.LogPath, cfg.Debug)
	} else {
		logger, err = logging.InitLogger("rowboat", cfg.Debug)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("initializing Rowboat application",
		slog.Bool("debug", cfg.Debug),
		slog.String("api_version", cfg.APIVersion),
	)

	state := model.NewApplicationState()
	store := session.NewStore(logger)

	logger.Info("application initialized successfully")

	return &App{
		fyneApp: fyneApp,
		config:  cfg,
		logger:  logger,
		state:   state,
		store:   store,
	}, nil
}

// Run starts the application and displays the main window.
// This is a blocking call that runs the Fyne event loop.
func (a *App) Run(window fyne.Window) {
	a.window = window
	a.logger.Info("starting application")
	a.window.ShowAndRun()
}

// State returns the application state for use by UI components.
func (a *App) State() *model.ApplicationState {
	return a.state
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Store returns the session store holding the working table and
// activity log.
func (a *App) Store() *session.Store {
	return a.store
}

// FyneApp returns the underlying Fyne application instance.
func (a *App) FyneApp() fyne.App {
	return a.fyneApp
}

// client returns the CRM client from the most recent login, or nil.
func (a *App) client() *crm.Client {
	a.crmMu.RLock()
	defer a.crmMu.RUnlock()
	return a.crm
}

// connectedClient returns the current client only while it holds a
// session.
func (a *App) connectedClient() (*crm.Client, error) {
	client := a.client()
	if client == nil || !client.Connected() {
		return nil, apperrors.ErrNotConnected
	}
	return client, nil
}

// apiVersion resolves the CRM API version for the next login:
// preferences first, then environment, then the client default.
func (a *App) apiVersion() string {
	if v := strings.TrimSpace(a.fyneApp.Preferences().StringWithFallback(prefAPIVersion, "")); v != "" {
		return v
	}
	if a.config.APIVersion != "" {
		return a.config.APIVersion
	}
	return crm.DefaultAPIVersion
}

// Connect logs in to the CRM with a fresh client. Credentials are used
// for the login call and kept only inside the resulting session.
func (a *App) Connect(ctx context.Context, creds domain.CRMCredentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	if old := a.client(); old != nil && old.Connected() {
		old.Logout()
	}

	client := crm.NewClient(a.logger, a.apiVersion())
	client.SetStateCallback(func(connState crm.ConnectionState, message string) {
		// Map connection state to UI state string
		var uiState string
		switch connState {
		case crm.StateDisconnected:
			uiState = "disconnected"
		case crm.StateConnecting:
			uiState = "connecting"
		case crm.StateConnected:
			uiState = "connected"
		case crm.StateError:
			uiState = "error"
		default:
			uiState = "disconnected"
		}

		_ = a.state.Connection.State.Set(uiState)
		_ = a.state.Connection.Message.Set(message)
	})

	a.crmMu.Lock()
	a.crm = client
	a.crmMu.Unlock()

	return client.Login(ctx, creds)
}

// Disconnect drops the CRM session, if any.
func (a *App) Disconnect() {
	if client := a.client(); client != nil {
		client.Logout()
	}
}

// LoadFile replaces the working table with the contents of a CSV, XLS
// or XLSX file. On failure the working table is cleared, so stale rows
// never outlive their source.
func (a *App) LoadFile(path string) error {
	name := filepath.Base(path)

	t, err := source.LoadFile(path)
	if err != nil {
		a.store.ClearTable()
		a.store.Record(domain.ActivityLoad, domain.ActivityFailed, "Load "+name, err.Error())
		return err
	}

	rows, cols := t.Shape()
	a.store.SetTable(t, name)
	a.store.Record(domain.ActivityLoad, domain.ActivityOK, "Load "+name,
		fmt.Sprintf("%d rows, %d columns", rows, cols))
	return nil
}

// RunQuery replaces the working table with the flattened records of a
// SOQL query. Like file loads, a failed query clears the table.
func (a *App) RunQuery(ctx context.Context, soql string) error {
	client, err := a.connectedClient()
	if err != nil {
		return err
	}

	label := queryLabel(soql)

	t, err := source.LoadQuery(ctx, client, soql, a.logger)
	if err != nil {
		a.store.ClearTable()
		a.store.Record(domain.ActivityLoad, domain.ActivityFailed, label, err.Error())
		return err
	}

	rows, cols := t.Shape()
	a.store.SetTable(t, label)
	a.store.Record(domain.ActivityLoad, domain.ActivityOK, label,
		fmt.Sprintf("%d rows, %d columns", rows, cols))
	return nil
}

// ClearTable drops the working table, e.g. when the user switches
// source mode.
func (a *App) ClearTable() {
	a.store.ClearTable()
}

// SortTable stably sorts the working table by one column.
func (a *App) SortTable(column string, descending bool) error {
	t := a.store.Table()
	if t == nil {
		return apperrors.ErrNoData
	}

	summary := "Sort by " + column
	sorted, err := tabular.Sort(t, column, descending)
	if err != nil {
		a.store.Record(domain.ActivityTransform, domain.ActivityFailed, summary, err.Error())
		return err
	}

	direction := "ascending"
	if descending {
		direction = "descending"
	}
	a.store.SetTable(sorted, a.store.SourceName())
	a.store.Record(domain.ActivityTransform, domain.ActivityOK, summary, direction)
	return nil
}

// DropMissingRows removes rows with a missing value in any of the given
// columns.
func (a *App) DropMissingRows(columns []string) error {
	t := a.store.Table()
	if t == nil {
		return apperrors.ErrNoData
	}

	summary := "Remove rows with missing values"
	before, _ := t.Shape()

	cleaned, err := tabular.DropMissing(t, columns)
	if err != nil {
		a.store.Record(domain.ActivityTransform, domain.ActivityFailed, summary, err.Error())
		return err
	}

	after, _ := cleaned.Shape()
	a.store.SetTable(cleaned, a.store.SourceName())
	a.store.Record(domain.ActivityTransform, domain.ActivityOK, summary,
		fmt.Sprintf("%d rows removed, %d remain", before-after, after))
	return nil
}

// GroupTable groups the working table by a key column, applying one
// aggregation to each of the chosen columns.
func (a *App) GroupTable(key string, columns []string, agg tabular.Aggregation) error {
	t := a.store.Table()
	if t == nil {
		return apperrors.ErrNoData
	}

	summary := fmt.Sprintf("Group by %s, %s of %s", key, agg, strings.Join(columns, ", "))

	specs := make([]tabular.AggSpec, 0, len(columns))
	for _, column := range columns {
		specs = append(specs, tabular.AggSpec{Column: column, Agg: agg})
	}

	grouped, err := tabular.GroupBy(t, key, specs)
	if err != nil {
		a.store.Record(domain.ActivityTransform, domain.ActivityFailed, summary, err.Error())
		return err
	}

	groups, _ := grouped.Shape()
	a.store.SetTable(grouped, a.store.SourceName())
	a.store.Record(domain.ActivityTransform, domain.ActivityOK, summary,
		fmt.Sprintf("%d groups", groups))
	return nil
}

// ExportCSV writes the working table to path as CSV. A positive limit
// caps the number of rows.
func (a *App) ExportCSV(path string, limit int) error {
	return a.exportFile(path, limit, "CSV", sink.EncodeCSV)
}

// ExportExcel writes the working table to path as an XLSX workbook.
func (a *App) ExportExcel(path string, limit int) error {
	return a.exportFile(path, limit, "Excel", sink.EncodeXLSX)
}

func (a *App) exportFile(path string, limit int, format string, encode func(*domain.Table, int) ([]byte, error)) error {
	t := a.store.Table()
	if t == nil {
		return apperrors.ErrNoData
	}

	summary := fmt.Sprintf("Save %s as %s", filepath.Base(path), format)

	data, err := encode(t, limit)
	if err != nil {
		a.store.Record(domain.ActivitySave, domain.ActivityFailed, summary, err.Error())
		return err
	}
	if err := sink.WriteFile(path, data); err != nil {
		a.store.Record(domain.ActivitySave, domain.ActivityFailed, summary, err.Error())
		return err
	}

	rows, _ := t.Shape()
	if limit > 0 && limit < rows {
		rows = limit
	}
	a.store.Record(domain.ActivitySave, domain.ActivityOK, summary,
		fmt.Sprintf("%d rows", rows))
	return nil
}

// ExportDatabase creates or replaces a table in the target database
// with the working table's rows.
func (a *App) ExportDatabase(ctx context.Context, target domain.DatabaseTarget) (int, error) {
	t := a.store.Table()
	if t == nil {
		return 0, apperrors.ErrNoData
	}

	summary := fmt.Sprintf("Write table %s to %s", target.Table, target.Driver)

	rows, err := sink.WriteTable(ctx, target, t, a.logger)
	if err != nil {
		a.store.Record(domain.ActivitySave, domain.ActivityFailed, summary, err.Error())
		return 0, err
	}

	a.store.Record(domain.ActivitySave, domain.ActivityOK, summary,
		fmt.Sprintf("%d rows", rows))
	return rows, nil
}

// saveClient resolves the client for a save-side CRM call. nil creds
// reuse the session connection; otherwise a throwaway client logs in
// just for this call and the returned cleanup logs it out again.
func (a *App) saveClient(ctx context.Context, creds *domain.CRMCredentials) (*crm.Client, func(), error) {
	if creds == nil {
		client, err := a.connectedClient()
		if err != nil {
			return nil, nil, err
		}
		return client, func() {}, nil
	}

	if err := creds.Validate(); err != nil {
		return nil, nil, err
	}

	// No state callback: a save-only login must not disturb the
	// connection indicator.
	client := crm.NewClient(a.logger, a.apiVersion())
	if err := client.Login(ctx, *creds); err != nil {
		return nil, nil, err
	}
	return client, client.Logout, nil
}

// DescribeObject fetches field metadata for a CRM object, used to
// suggest upload field mappings. nil creds use the session connection.
func (a *App) DescribeObject(ctx context.Context, object string, creds *domain.CRMCredentials) ([]crm.Field, error) {
	client, cleanup, err := a.saveClient(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return client.DescribeFields(ctx, object)
}

// Upload pushes working-table rows to the CRM one at a time per the
// request's field mapping. nil creds use the session connection.
// Partial results survive errors, so callers can report how far a
// cancelled or failed run got.
func (a *App) Upload(ctx context.Context, req sink.UploadRequest, creds *domain.CRMCredentials) (*sink.UploadResult, error) {
	t := a.store.Table()
	if t == nil {
		return nil, apperrors.ErrNoData
	}
	client, cleanup, err := a.saveClient(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	summary := fmt.Sprintf("Upload to %s (%s)", req.Object, req.Operation)

	result, err := sink.Upload(ctx, client, req, t, a.logger)
	if err != nil {
		detail := err.Error()
		if result != nil {
			detail = fmt.Sprintf("%d ok, %d failed: %v", result.Succeeded, len(result.Errors), err)
		}
		a.store.Record(domain.ActivitySave, domain.ActivityFailed, summary, detail)
		return result, err
	}

	// Row failures mark the entry failed so it surfaces under the
	// activity log's Failed filter.
	status := domain.ActivityOK
	if len(result.Errors) > 0 {
		status = domain.ActivityFailed
	}
	a.store.Record(domain.ActivitySave, status, summary,
		fmt.Sprintf("%d ok, %d failed", result.Succeeded, len(result.Errors)))
	return result, nil
}

// queryLabel condenses a SOQL query into a short source label.
func queryLabel(soql string) string {
	condensed := strings.Join(strings.Fields(soql), " ")

	const max = 60
	runes := []rune(condensed)
	if len(runes) <= max {
		return "Query: " + condensed
	}
	return "Query: " + string(runes[:max-1]) + "…"
}
