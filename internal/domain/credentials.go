package domain

import (
	"fmt"
	"strings"

	apperrors "github.com/rowboat-io/rowboat/internal/errors"
)

// CRM login hosts. Production logs in through login.salesforce.com,
// sandboxes through test.salesforce.com.
const (
	HostProduction = "login"
	HostSandbox    = "test"
)

// CRMCredentials holds one set of CRM login details. Kept in memory for
// the session only, never written anywhere.
type CRMCredentials struct {
	Username      string
	Password      string
	SecurityToken string
	Host          string
}

// Token returns the security token with surrounding space removed.
// A blank token means the org does not require one.
func (c CRMCredentials) Token() string {
	return strings.TrimSpace(c.SecurityToken)
}

// Validate checks the fields a login cannot do without.
func (c CRMCredentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return apperrors.ValidationError{Field: "Username", Message: "username must not be empty"}
	}
	if c.Password == "" {
		return apperrors.ValidationError{Field: "Password", Message: "password must not be empty"}
	}
	return nil
}

// LoginURL returns the SOAP login endpoint for the configured host.
func (c CRMCredentials) LoginURL(apiVersion string) string {
	host := c.Host
	if host == "" {
		host = HostProduction
	}
	return fmt.Sprintf("https://%s.salesforce.com/services/Soap/u/%s", host, apiVersion)
}

// Supported database drivers for the relational sink.
const (
	DriverPostgres  = "postgres"
	DriverSQLServer = "sqlserver"
	DriverSQLite    = "sqlite"
)

// DatabaseTarget describes where the relational sink writes. For sqlite
// the Database field is the file path and the network fields are unused.
type DatabaseTarget struct {
	Driver   string
	Server   string
	Database string
	Username string
	Password string
	Table    string
}

// DSN builds the driver-specific connection string.
func (d DatabaseTarget) DSN() (string, error) {
	switch d.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			d.Server, d.Username, d.Password, d.Database), nil
	case DriverSQLServer:
		return fmt.Sprintf("sqlserver://%s:%s@%s?database=%s",
			d.Username, d.Password, d.Server, d.Database), nil
	case DriverSQLite:
		return d.Database, nil
	default:
		return "", fmt.Errorf("unknown database driver %q", d.Driver)
	}
}

// FieldMap routes one table column to a CRM field. A blank Destination
// drops the column from the upload.
type FieldMap struct {
	Source      string
	Destination string
}

// FieldMapping is the ordered set of column routes for an upload.
type FieldMapping []FieldMap

// Destination returns the mapped CRM field for a column, or "" when the
// column is unmapped or mapped to blank.
func (m FieldMapping) Destination(source string) string {
	for _, f := range m {
		if f.Source == source {
			return strings.TrimSpace(f.Destination)
		}
	}
	return ""
}

// Active returns the entries that actually route somewhere, with
// destination names trimmed.
func (m FieldMapping) Active() FieldMapping {
	out := make(FieldMapping, 0, len(m))
	for _, f := range m {
		if dest := strings.TrimSpace(f.Destination); dest != "" {
			out = append(out, FieldMap{Source: f.Source, Destination: dest})
		}
	}
	return out
}
