package errors

import "errors"

// Sentinel errors for common failure modes.
var (
	ErrUnsupportedFormat       = errors.New("unsupported file format")
	ErrNoData                  = errors.New("no data")
	ErrConnectionFailed        = errors.New("connection failed")
	ErrLoginFailed             = errors.New("login failed")
	ErrNotConnected            = errors.New("not connected")
	ErrIncompatibleAggregation = errors.New("incompatible aggregation")
	ErrUserCancelled           = errors.New("user cancelled operation")
	ErrTimeout                 = errors.New("operation timed out")
)

// ValidationError represents a field validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
