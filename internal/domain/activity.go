package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ActivityKind labels what a session log entry records.
type ActivityKind string

const (
	ActivityLoad      ActivityKind = "load"
	ActivityTransform ActivityKind = "transform"
	ActivitySave      ActivityKind = "save"
)

// Activity statuses
const (
	ActivityOK     = "ok"
	ActivityFailed = "failed"
)

// ActivityEntry is one line of the in-memory session log: something the
// user did, whether it worked, and any detail worth keeping around.
type ActivityEntry struct {
	ID        string
	Timestamp time.Time
	Kind      ActivityKind
	Summary   string
	Status    string
	Detail    string
}

// NewActivityID generates a time-ordered entry ID.
func NewActivityID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return id.String()
}
