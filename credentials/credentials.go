package credentials

import (
	"errors"
	"fmt"

	"github.com/polarflow/snowtask/secret"
)

var (
	// ErrMissingAuthMethod is returned when a Credentials record carries no
	// authentication method at all.
	ErrMissingAuthMethod = errors.New(
		"credentials: one of the authentication fields must be set: password, private_key, authenticator, token")

	// ErrMissingToken is returned when the oauth authenticator is selected
	// without a token.
	ErrMissingToken = errors.New("credentials: token is required when authenticator is oauth")

	// ErrMissingOktaURL is returned when the okta authenticator is selected
	// without an endpoint URL.
	ErrMissingOktaURL = errors.New("credentials: okta_url is required when authenticator is okta")

	// ErrMissingField is returned when a required record field is absent.
	// The wrapping error names the field.
	ErrMissingField = errors.New("credentials: required field missing")
)

// Credentials holds the authentication configuration for a Snowflake
// account.
//
// At least one of Password, PrivateKey, Token, or a non-default
// Authenticator must be set. When PrivateKey is set, Password doubles as
// the key passphrase and is consumed during key resolution rather than
// being sent with the connection handshake.
type Credentials struct {
	// Account is the Snowflake account identifier.
	Account string `yaml:"account" json:"account"`

	// User is the login name used to authenticate.
	User string `yaml:"user" json:"user"`

	// Password is the login password, or the private key passphrase when
	// PrivateKey is set.
	Password secret.Secret `yaml:"password,omitempty" json:"password,omitempty"`

	// PrivateKey is the PEM private key for key-pair authentication. It is
	// normalized and resolved lazily, at connect-parameter build time.
	PrivateKey secret.SecretBytes `yaml:"private_key,omitempty" json:"private_key,omitempty"`

	// Authenticator selects the authentication method. Empty means
	// AuthDefault.
	Authenticator Authenticator `yaml:"authenticator,omitempty" json:"authenticator,omitempty"`

	// OktaURL is the native Okta endpoint used when Authenticator is
	// AuthOkta.
	OktaURL string `yaml:"okta_url,omitempty" json:"okta_url,omitempty"`

	// Endpoint is the historical name for OktaURL.
	//
	// Deprecated: set OktaURL. Endpoint is accepted only as an input alias
	// and loses to OktaURL when both are set.
	Endpoint string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`

	// Token is the OAuth or JWT token used when Authenticator is AuthOAuth.
	Token secret.Secret `yaml:"token,omitempty" json:"token,omitempty"`

	// Role is the default role to assume. Optional.
	Role string `yaml:"role,omitempty" json:"role,omitempty"`

	// Autocommit controls whether the session commits automatically.
	// Nil leaves the server default in place.
	Autocommit *bool `yaml:"autocommit,omitempty" json:"autocommit,omitempty"`
}

// Validate checks that the record is internally consistent: identity fields
// are present, the authenticator is known, at least one authentication
// method is provided, and authenticator-specific requirements are met.
func (c Credentials) Validate() error {
	if c.Account == "" {
		return fmt.Errorf("%w: account", ErrMissingField)
	}
	if c.User == "" {
		return fmt.Errorf("%w: user", ErrMissingField)
	}
	if !c.Authenticator.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAuthenticator, c.Authenticator)
	}

	// Valid passed above, so the parse cannot fail; it normalizes
	// deprecated spellings set programmatically rather than via YAML.
	auth, _ := ParseAuthenticator(string(c.Authenticator))

	hasAuthenticator := auth != AuthDefault
	if c.Password.IsZero() && c.PrivateKey.IsZero() && c.Token.IsZero() && !hasAuthenticator {
		return ErrMissingAuthMethod
	}

	switch auth {
	case AuthOAuth:
		if c.Token.IsZero() {
			return ErrMissingToken
		}
	case AuthOkta:
		if c.oktaURL() == "" {
			return ErrMissingOktaURL
		}
	}
	return nil
}

// oktaURL resolves the okta endpoint, preferring the canonical field over
// the deprecated alias.
func (c Credentials) oktaURL() string {
	if c.OktaURL != "" {
		return c.OktaURL
	}
	return c.Endpoint
}

// WithPassword returns a copy of the record with the password replaced.
func (c Credentials) WithPassword(password secret.Secret) Credentials {
	c.Password = password
	return c
}

// WithPrivateKey returns a copy of the record with the private key
// replaced.
func (c Credentials) WithPrivateKey(key secret.SecretBytes) Credentials {
	c.PrivateKey = key
	return c
}

// WithToken returns a copy of the record with the token replaced.
func (c Credentials) WithToken(token secret.Secret) Credentials {
	c.Token = token
	return c
}

// WithAuthenticator returns a copy of the record with the authenticator
// replaced.
func (c Credentials) WithAuthenticator(a Authenticator) Credentials {
	c.Authenticator = a
	return c
}
