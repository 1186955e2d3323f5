package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyErrorNil(t *testing.T) {
	assert.Nil(t, ClassifyError(nil))
	assert.Nil(t, ClassifyAPIError(nil))
}

func TestClassifyErrorSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		title    string
		severity ErrorSeverity
	}{
		{"unsupported format", fmt.Errorf("open: %w", ErrUnsupportedFormat), "Unsupported File Format", SeverityError},
		{"no data", ErrNoData, "No Data", SeverityWarning},
		{"login failed", fmt.Errorf("crm: %w", ErrLoginFailed), "Login Failed", SeverityError},
		{"not connected", ErrNotConnected, "Not Connected", SeverityError},
		{"connection failed", ErrConnectionFailed, "Connection Failed", SeverityError},
		{"incompatible aggregation", fmt.Errorf("mean of %q: %w", "Name", ErrIncompatibleAggregation), "Incompatible Aggregation", SeverityError},
		{"timeout", ErrTimeout, "Operation Timeout", SeverityError},
		{"context deadline", context.DeadlineExceeded, "Request Timeout", SeverityError},
		{"context cancel", context.Canceled, "Cancelled", SeverityInfo},
		{"user cancel", ErrUserCancelled, "Cancelled", SeverityInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := ClassifyError(tt.err)
			require.NotNil(t, ui)
			assert.Equal(t, tt.title, ui.Title)
			assert.Equal(t, tt.severity, ui.Severity)
		})
	}
}

func TestClassifyErrorValidation(t *testing.T) {
	err := ValidationError{Field: "Table name", Message: "must start with a letter"}
	ui := ClassifyError(fmt.Errorf("save: %w", err))
	require.NotNil(t, ui)
	assert.Equal(t, "Validation Error", ui.Title)
	assert.Equal(t, "must start with a letter", ui.Message)
	assert.Contains(t, ui.Details, "Table name")
}

func TestClassifyErrorPassesThroughUIError(t *testing.T) {
	orig := &UIError{Title: "Custom", Severity: SeverityWarning}
	ui := ClassifyError(fmt.Errorf("wrapped: %w", orig))
	assert.Same(t, orig, ui)
}

func TestClassifyErrorUnknownFallback(t *testing.T) {
	ui := ClassifyError(fmt.Errorf("something odd"))
	require.NotNil(t, ui)
	assert.Equal(t, "Unexpected Error", ui.Title)
	assert.Equal(t, "something odd", ui.Details)
}

func TestClassifyAPIError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   string
		title  string
	}{
		{"unauthorized", http.StatusUnauthorized, "INVALID_SESSION_ID", "Session Expired"},
		{"forbidden", http.StatusForbidden, "INSUFFICIENT_ACCESS", "Access Denied"},
		{"not found", http.StatusNotFound, "NOT_FOUND", "Not Found"},
		{"bad request", http.StatusBadRequest, "MALFORMED_QUERY", "Invalid Request"},
		{"rate limited", http.StatusTooManyRequests, "", "Rate Limited"},
		{"server error", http.StatusBadGateway, "", "Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fmt.Errorf("query: %w", &APIError{StatusCode: tt.status, Code: tt.code, Message: "boom"})
			ui := ClassifyAPIError(err)
			require.NotNil(t, ui)
			assert.Equal(t, tt.title, ui.Title)
			assert.Contains(t, ui.Details, fmt.Sprintf("HTTP %d", tt.status))
		})
	}
}

func TestClassifyAPIErrorFallsBack(t *testing.T) {
	ui := ClassifyAPIError(ErrNoData)
	require.NotNil(t, ui)
	assert.Equal(t, "No Data", ui.Title)
}

func TestAPIErrorString(t *testing.T) {
	err := &APIError{StatusCode: 400, Code: "INVALID_FIELD", Message: "No such column"}
	assert.Equal(t, "INVALID_FIELD: No such column (HTTP 400)", err.Error())

	bare := &APIError{StatusCode: 503, Message: "unavailable"}
	assert.Equal(t, "unavailable (HTTP 503)", bare.Error())
}
