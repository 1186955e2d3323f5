package crm

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/rowboat-io/rowboat/internal/errors"
)

// The login call is the one SOAP endpoint we need: it takes nothing but
// username and password(+token) and returns a session usable as a REST
// bearer token. Everything after login is plain JSON.
const loginEnvelope = `<?xml version="1.0" encoding="utf-8"?>
<env:Envelope xmlns:env="http://schemas.xmlsoap.org/soap/envelope/">
  <env:Header>
    <CallOptions xmlns="urn:partner.soap.sforce.com">
      <client>rowboat</client>
    </CallOptions>
  </env:Header>
  <env:Body>
    <login xmlns="urn:partner.soap.sforce.com">
      <username>%s</username>
      <password>%s</password>
    </login>
  </env:Body>
</env:Envelope>`

type loginResult struct {
	ServerURL string `xml:"Body>loginResponse>result>serverUrl"`
	SessionID string `xml:"Body>loginResponse>result>sessionId"`
}

type loginFault struct {
	Code    string `xml:"Body>Fault>faultcode"`
	Message string `xml:"Body>Fault>faultstring"`
}

// soapLogin performs the SOAP login call against loginURL and returns the
// instance URL and session ID. The password must already carry the security
// token when the org requires one.
func soapLogin(ctx context.Context, client *http.Client, loginURL, username, password string) (string, string, error) {
	body := fmt.Sprintf(loginEnvelope, xmlEscape(username), xmlEscape(password))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL, strings.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=UTF-8")
	req.Header.Set("SOAPAction", "login")

	resp, err := client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", apperrors.ErrConnectionFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("read login response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var fault loginFault
		if xml.Unmarshal(data, &fault) == nil && fault.Message != "" {
			return "", "", fmt.Errorf("%w: %s", apperrors.ErrLoginFailed, fault.Message)
		}
		return "", "", fmt.Errorf("%w: HTTP %d", apperrors.ErrLoginFailed, resp.StatusCode)
	}

	var result loginResult
	if err := xml.Unmarshal(data, &result); err != nil {
		return "", "", fmt.Errorf("parse login response: %w", err)
	}
	if result.SessionID == "" || result.ServerURL == "" {
		return "", "", fmt.Errorf("%w: empty session in response", apperrors.ErrLoginFailed)
	}

	instance, err := instanceURL(result.ServerURL)
	if err != nil {
		return "", "", err
	}
	return instance, result.SessionID, nil
}

// instanceURL reduces the SOAP server URL to scheme and host.
func instanceURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	return u.Scheme + "://" + u.Host, nil
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
