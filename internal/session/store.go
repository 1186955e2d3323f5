package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rowboat-io/rowboat/internal/domain"
)

const maxActivity = 100

// Store holds the working table and the activity log for one app
// session. Access is mutex-guarded; change callbacks fire after the
// lock is released so listeners can read back without deadlocking.
//
// The stored table is treated as immutable: transforms swap in a new
// table rather than editing in place.
type Store struct {
	mu         sync.RWMutex
	logger     *slog.Logger
	table      *domain.Table
	sourceName string
	activity   []domain.ActivityEntry

	onTableChange []func()
	onActivity    []func()
}

// NewStore creates an empty session store.
func NewStore(logger *slog.Logger) *Store {
	return &Store{logger: logger}
}

// Table returns the current working table, or nil when nothing is
// loaded. Callers must not mutate it.
func (s *Store) Table() *domain.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// HasTable reports whether a table is loaded.
func (s *Store) HasTable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table != nil
}

// SourceName returns the label of whatever produced the current table.
func (s *Store) SourceName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sourceName
}

// SetTable replaces the working table and notifies listeners.
func (s *Store) SetTable(t *domain.Table, sourceName string) {
	s.mu.Lock()
	s.table = t
	s.sourceName = sourceName
	s.mu.Unlock()

	rows, cols := t.Shape()
	s.logger.Debug("working table replaced",
		slog.String("source", sourceName),
		slog.Int("rows", rows),
		slog.Int("columns", cols),
	)
	s.notifyTable()
}

// ClearTable drops the working table, used when a load fails so stale
// data never lingers behind an error.
func (s *Store) ClearTable() {
	s.mu.Lock()
	cleared := s.table != nil
	s.table = nil
	s.sourceName = ""
	s.mu.Unlock()

	if cleared {
		s.logger.Debug("working table cleared")
	}
	s.notifyTable()
}

// OnTableChange registers a listener for table swaps. Not safe to call
// concurrently with notifications; register everything during setup.
func (s *Store) OnTableChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTableChange = append(s.onTableChange, fn)
}

// OnActivity registers a listener for new activity entries.
func (s *Store) OnActivity(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onActivity = append(s.onActivity, fn)
}

// Record appends one activity entry, trimming the log to its cap.
func (s *Store) Record(kind domain.ActivityKind, status, summary, detail string) {
	entry := domain.ActivityEntry{
		ID:        domain.NewActivityID(),
		Timestamp: time.Now(),
		Kind:      kind,
		Status:    status,
		Summary:   summary,
		Detail:    detail,
	}

	s.mu.Lock()
	s.activity = append(s.activity, entry)
	if len(s.activity) > maxActivity {
		s.activity = s.activity[len(s.activity)-maxActivity:]
	}
	s.mu.Unlock()

	s.logger.Debug("activity recorded",
		slog.String("kind", string(kind)),
		slog.String("status", status),
		slog.String("summary", summary),
	)
	for _, fn := range s.listeners(&s.onActivity) {
		fn()
	}
}

// Activity returns a copy of the log, newest entry last.
func (s *Store) Activity() []domain.ActivityEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ActivityEntry, len(s.activity))
	copy(out, s.activity)
	return out
}

func (s *Store) notifyTable() {
	for _, fn := range s.listeners(&s.onTableChange) {
		fn()
	}
}

func (s *Store) listeners(list *[]func()) []func() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]func(), len(*list))
	copy(out, *list)
	return out
}
