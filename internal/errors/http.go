package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError carries the HTTP status and error payload of a failed CRM call.
type APIError struct {
	StatusCode int
	Code       string // CRM error code, e.g. INVALID_FIELD
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// ClassifyAPIError converts a CRM API error into a UIError with user-friendly
// messages, recovery suggestions, and appropriate actions.
func ClassifyAPIError(err error) *UIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		// Not an API error, fall back to standard classification
		return ClassifyError(err)
	}

	details := fmt.Sprintf("HTTP %d", apiErr.StatusCode)
	if apiErr.Code != "" {
		details += " " + apiErr.Code
	}
	if apiErr.Message != "" {
		details += ": " + apiErr.Message
	}

	switch {
	case apiErr.StatusCode == http.StatusUnauthorized:
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Session Expired",
			Message:  "The CRM session is no longer valid.",
			Recovery: []string{"Reconnect with your credentials"},
			Actions:  []ErrorAction{{Label: "Reconnect"}},
			Details:  details,
		}

	case apiErr.StatusCode == http.StatusForbidden:
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Access Denied",
			Message:  "Your user does not have permission for this object or field.",
			Recovery: []string{"Contact your CRM administrator for access"},
			Details:  details,
		}

	case apiErr.StatusCode == http.StatusNotFound:
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Not Found",
			Message:  "The object or record does not exist.",
			Recovery: []string{
				"Check the object name",
				"Check the record ID column",
			},
			Details: details,
		}

	case apiErr.StatusCode == http.StatusBadRequest:
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Invalid Request",
			Message:  "The CRM rejected the request.",
			Recovery: []string{
				"Check the query syntax",
				"Check the field mapping against the object's fields",
			},
			Details: details,
		}

	case apiErr.StatusCode == http.StatusTooManyRequests:
		return &UIError{
			Err:      err,
			Severity: SeverityWarning,
			Title:    "Rate Limited",
			Message:  "The CRM is throttling requests.",
			Recovery: []string{"Wait a moment and try again"},
			Actions:  []ErrorAction{{Label: "Retry"}},
			Details:  details,
		}

	case apiErr.StatusCode >= 500:
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Server Error",
			Message:  "The CRM encountered an unexpected error.",
			Recovery: []string{"Try again later"},
			Actions:  []ErrorAction{{Label: "Retry"}},
			Details:  details,
		}

	default:
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Request Failed",
			Message:  apiErr.Message,
			Recovery: []string{"Try again"},
			Details:  details,
		}
	}
}
