package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rowboat-io/rowboat/internal/domain"
	apperrors "github.com/rowboat-io/rowboat/internal/errors"
)

// DefaultAPIVersion is the REST API version used unless configured otherwise.
const DefaultAPIVersion = "59.0"

// ConnectionState represents the current state of the CRM session
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateError
)

// String returns a human-readable representation of the connection state
func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Client is a CRM REST client bound to one login session. It keeps the
// session token and instance URL behind a small state machine so the UI
// can follow along.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	apiVersion string

	mu          sync.RWMutex
	state       ConnectionState
	instanceURL string
	sessionID   string
	username    string

	// loginURL overrides the host-derived login endpoint; tests point it
	// at a local server.
	loginURL string

	// Callback for state changes
	onStateChange func(state ConnectionState, message string)
}

// NewClient creates a disconnected client.
func NewClient(logger *slog.Logger, apiVersion string) *Client {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		apiVersion: apiVersion,
		state:      StateDisconnected,
	}
}

// Login authenticates with the CRM and stores the session for later calls.
func (c *Client) Login(ctx context.Context, creds domain.CRMCredentials) error {
	c.updateState(StateConnecting, "Logging in as "+creds.Username)

	loginURL := c.loginURL
	if loginURL == "" {
		loginURL = creds.LoginURL(c.apiVersion)
	}

	instance, session, err := soapLogin(ctx, c.httpClient, loginURL, creds.Username, creds.Password+creds.Token())
	if err != nil {
		c.logger.Error("CRM login failed",
			slog.String("username", creds.Username),
			slog.String("host", creds.Host),
			slog.Any("error", err),
		)
		c.updateState(StateError, "Login failed: "+err.Error())
		return err
	}

	c.mu.Lock()
	c.instanceURL = instance
	c.sessionID = session
	c.username = creds.Username
	c.mu.Unlock()

	c.logger.Info("CRM session established",
		slog.String("username", creds.Username),
		slog.String("instance", instance),
	)
	c.updateState(StateConnected, "Connected as "+creds.Username)

	return nil
}

// Logout drops the session.
func (c *Client) Logout() {
	c.mu.Lock()
	username := c.username
	c.instanceURL = ""
	c.sessionID = ""
	c.username = ""
	c.mu.Unlock()

	if username != "" {
		c.logger.Info("CRM session dropped", slog.String("username", username))
	}
	c.updateState(StateDisconnected, "Disconnected")
}

// Connected reports whether the client holds a session.
func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID != ""
}

// State returns the current connection state
func (c *Client) State() ConnectionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Username returns the logged-in user, or "" when disconnected.
func (c *Client) Username() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.username
}

// SetStateCallback registers a callback function to be called on state changes
func (c *Client) SetStateCallback(fn func(state ConnectionState, message string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onStateChange = fn
}

func (c *Client) updateState(state ConnectionState, message string) {
	c.mu.Lock()
	c.state = state
	callback := c.onStateChange
	c.mu.Unlock()

	c.logger.Debug("CRM state changed",
		slog.String("state", state.String()),
		slog.String("message", message),
	)

	if callback != nil {
		callback(state, message)
	}
}

// QueryResult is one page of query results.
type QueryResult struct {
	TotalSize      int      `json:"totalSize"`
	Done           bool     `json:"done"`
	NextRecordsURL string   `json:"nextRecordsUrl"`
	Records        []Record `json:"records"`
}

// Query runs a SOQL query and returns the first page.
func (c *Client) Query(ctx context.Context, soql string) (*QueryResult, error) {
	c.logger.Debug("running query", slog.String("soql", soql))

	params := url.Values{}
	params.Set("q", soql)
	data, err := c.doRequest(ctx, http.MethodGet, c.restPath("query"), params, nil)
	if err != nil {
		return nil, err
	}

	var result QueryResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("parse query response: %w", err)
	}
	return &result, nil
}

// QueryAll runs a SOQL query and follows nextRecordsUrl until every page
// has been fetched.
func (c *Client) QueryAll(ctx context.Context, soql string) ([]Record, error) {
	page, err := c.Query(ctx, soql)
	if err != nil {
		return nil, err
	}

	records := page.Records
	for !page.Done && page.NextRecordsURL != "" {
		data, err := c.doRequest(ctx, http.MethodGet, page.NextRecordsURL, nil, nil)
		if err != nil {
			return nil, err
		}
		next := &QueryResult{}
		if err := json.Unmarshal(data, next); err != nil {
			return nil, fmt.Errorf("parse query page: %w", err)
		}
		records = append(records, next.Records...)
		page = next
	}

	c.logger.Info("query completed",
		slog.String("soql", soql),
		slog.Int("records", len(records)),
	)
	return records, nil
}

type saveResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

// Create inserts one record and returns its new ID.
func (c *Client) Create(ctx context.Context, object string, fields map[string]any) (string, error) {
	data, err := c.doRequest(ctx, http.MethodPost, c.restPath("sobjects/"+object), nil, fields)
	if err != nil {
		return "", err
	}

	var result saveResult
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("parse create response: %w", err)
	}
	return result.ID, nil
}

// Update patches one record by ID. The CRM replies 204 on success.
func (c *Client) Update(ctx context.Context, object, id string, fields map[string]any) error {
	_, err := c.doRequest(ctx, http.MethodPatch, c.restPath("sobjects/"+object+"/"+id), nil, fields)
	return err
}

func (c *Client) restPath(suffix string) string {
	return "/services/data/v" + c.apiVersion + "/" + suffix
}

// apiError is the error payload shape: an array of code/message pairs.
type apiError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

// doRequest performs one authenticated REST call and returns the raw body.
// Non-2xx responses come back as *errors.APIError.
func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values, body any) ([]byte, error) {
	c.mu.RLock()
	instance := c.instanceURL
	session := c.sessionID
	c.mu.RUnlock()

	if session == "" {
		return nil, apperrors.ErrNotConnected
	}

	fullURL := instance + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+session)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrConnectionFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &apperrors.APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload []apiError
		if json.Unmarshal(data, &payload) == nil && len(payload) > 0 {
			apiErr.Code = payload[0].ErrorCode
			apiErr.Message = payload[0].Message
		}
		c.logger.Error("CRM request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.String("code", apiErr.Code),
		)
		return nil, apiErr
	}

	return data, nil
}
