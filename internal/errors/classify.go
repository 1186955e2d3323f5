package errors

import (
	"context"
	"errors"
)

// ErrorSeverity indicates the severity of an error for UI presentation.
type ErrorSeverity int

const (
	SeverityInfo    ErrorSeverity = iota // User should know, not blocking
	SeverityWarning                      // Degraded functionality
	SeverityError                        // Operation failed, can retry
	SeverityFatal                        // Application must exit
)

// ErrorAction represents a user action that can be taken in response to an error.
type ErrorAction struct {
	Label   string
	Handler func()
}

// UIError wraps an error with UI-friendly presentation metadata.
type UIError struct {
	Err      error
	Severity ErrorSeverity
	Title    string        // Short user-facing title
	Message  string        // Detailed user-facing message
	Recovery []string      // Suggested actions (bullet points)
	Actions  []ErrorAction // Buttons for user actions
	Details  string        // Technical details (collapsed by default)
}

func (e UIError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Title
}

// Unwrap returns the underlying error.
func (e UIError) Unwrap() error {
	return e.Err
}

// ClassifyError converts a standard error into a UIError with appropriate
// severity, title, message, and recovery suggestions.
func ClassifyError(err error) *UIError {
	if err == nil {
		return nil
	}

	// Check if already a UIError
	var uiErr *UIError
	if errors.As(err, &uiErr) {
		return uiErr
	}

	// Context errors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Request Timeout",
			Message:  "The server took too long to respond.",
			Recovery: []string{"Try again", "Check your network connection"},
			Actions:  []ErrorAction{{Label: "Retry"}},
		}

	case errors.Is(err, context.Canceled):
		return &UIError{
			Err:      err,
			Severity: SeverityInfo,
			Title:    "Cancelled",
			Message:  "The operation was cancelled.",
			Recovery: []string{},
		}

	case errors.Is(err, ErrUserCancelled):
		return &UIError{
			Err:      err,
			Severity: SeverityInfo,
			Title:    "Cancelled",
			Message:  "Operation cancelled by user.",
			Recovery: []string{},
		}

	case errors.Is(err, ErrUnsupportedFormat):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Unsupported File Format",
			Message:  "Only CSV, XLS and XLSX files can be loaded.",
			Recovery: []string{"Pick a .csv, .xls or .xlsx file"},
			Details:  err.Error(),
		}

	case errors.Is(err, ErrNoData):
		return &UIError{
			Err:      err,
			Severity: SeverityWarning,
			Title:    "No Data",
			Message:  "The source produced no rows.",
			Recovery: []string{
				"Check that the file has a header row and data",
				"Check the query returns records",
			},
		}

	case errors.Is(err, ErrLoginFailed):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Login Failed",
			Message:  "The CRM rejected the credentials.",
			Recovery: []string{
				"Check username and password",
				"Check the security token, or leave it blank if your org does not use one",
				"Check the environment (production vs sandbox)",
			},
			Details: err.Error(),
		}

	case errors.Is(err, ErrNotConnected):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Not Connected",
			Message:  "There is no active CRM connection.",
			Recovery: []string{"Connect with your credentials first"},
		}

	case errors.Is(err, ErrConnectionFailed):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Connection Failed",
			Message:  "Unable to connect to the server.",
			Recovery: []string{
				"Check that the server is reachable",
				"Verify the address and credentials",
				"Check your network connection",
			},
			Actions: []ErrorAction{{Label: "Retry"}},
			Details: err.Error(),
		}

	case errors.Is(err, ErrIncompatibleAggregation):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Incompatible Aggregation",
			Message:  "The chosen aggregation does not work on that column.",
			Recovery: []string{
				"Sum and mean need a numeric column",
				"Use count for text columns",
			},
			Details: err.Error(),
		}

	case errors.Is(err, ErrTimeout):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Operation Timeout",
			Message:  "The operation timed out.",
			Recovery: []string{"Try again"},
			Actions:  []ErrorAction{{Label: "Retry"}},
		}
	}

	// Validation errors
	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Validation Error",
			Message:  validationErr.Message,
			Recovery: []string{"Correct the field value and try again"},
			Details:  validationErr.Error(),
		}
	}

	// Default fallback for unknown errors
	return &UIError{
		Err:      err,
		Severity: SeverityError,
		Title:    "Unexpected Error",
		Message:  "An unexpected error occurred.",
		Recovery: []string{"Try again"},
		Details:  err.Error(),
	}
}
