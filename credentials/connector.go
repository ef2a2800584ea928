package credentials

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/snowflakedb/gosnowflake"

	"github.com/polarflow/snowtask/keypair"
)

// Application is the fixed application identifier sent with every
// connection. Snowflake uses it to attribute usage in the partner portal.
const Application = "Polarflow_Snowtask_Collection"

// Connector composes Credentials with a connection target. Database and
// Warehouse are required before a connection can be opened.
type Connector struct {
	// Credentials authenticates the connection.
	Credentials Credentials `yaml:"credentials" json:"credentials"`

	// Database is the default database for the session.
	Database string `yaml:"database" json:"database"`

	// Warehouse is the compute warehouse for the session.
	Warehouse string `yaml:"warehouse" json:"warehouse"`

	// Schema is the default schema for the session. Optional.
	Schema string `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Validate checks the composed record: the credentials must validate and
// both database and warehouse must be present.
func (c Connector) Validate() error {
	if err := c.Credentials.Validate(); err != nil {
		return err
	}
	if c.Database == "" {
		return fmt.Errorf("%w: database", ErrMissingField)
	}
	if c.Warehouse == "" {
		return fmt.Errorf("%w: warehouse", ErrMissingField)
	}
	return nil
}

// ConnectConfig builds the driver configuration for one connection
// attempt. The result is transient: it carries unwrapped secrets and must
// not be persisted or logged.
//
// Field handling follows the record contract: unset fields are omitted,
// secrets are unwrapped, the okta authenticator is replaced by its
// resolved endpoint URL, and a present private key is resolved to its
// binary form with the password consumed as the passphrase.
func (c Connector) ConnectConfig() (*gosnowflake.Config, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cred := c.Credentials

	cfg := &gosnowflake.Config{
		Account:     cred.Account,
		User:        cred.User,
		Database:    c.Database,
		Warehouse:   c.Warehouse,
		Schema:      c.Schema,
		Role:        cred.Role,
		Application: Application,
	}

	if !cred.Password.IsZero() {
		cfg.Password = cred.Password.Reveal()
	}
	if !cred.Token.IsZero() {
		cfg.Token = cred.Token.Reveal()
	}
	if cred.Autocommit != nil {
		autocommit := strconv.FormatBool(*cred.Autocommit)
		cfg.Params = map[string]*string{"autocommit": &autocommit}
	}

	auth, err := ParseAuthenticator(string(cred.Authenticator))
	if err != nil {
		return nil, err
	}

	switch auth {
	case AuthDefault:
		cfg.Authenticator = gosnowflake.AuthTypeSnowflake
	case AuthExternalBrowser:
		cfg.Authenticator = gosnowflake.AuthTypeExternalBrowser
	case AuthOAuth:
		cfg.Authenticator = gosnowflake.AuthTypeOAuth
	case AuthUsernamePasswordMFA:
		cfg.Authenticator = gosnowflake.AuthTypeUsernamePasswordMFA
	case AuthOkta:
		endpoint, err := url.Parse(cred.oktaURL())
		if err != nil {
			return nil, fmt.Errorf("%w: okta_url: %v", ErrMissingField, err)
		}
		cfg.Authenticator = gosnowflake.AuthTypeOkta
		cfg.OktaURL = endpoint
	}

	if !cred.PrivateKey.IsZero() {
		// The password was the key passphrase; it is consumed here and must
		// not travel with the handshake.
		key, err := keypair.Resolve(cred.PrivateKey.Reveal(), cred.Password.Reveal())
		if err != nil {
			return nil, err
		}
		cfg.PrivateKey = key
		cfg.Authenticator = gosnowflake.AuthTypeJwt
		cfg.Password = ""
	}

	return cfg, nil
}

// DSN renders the connector as a driver connection string.
func (c Connector) DSN() (string, error) {
	cfg, err := c.ConnectConfig()
	if err != nil {
		return "", err
	}
	return gosnowflake.DSN(cfg)
}
