package credentials

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Authenticator selects the method used to prove identity to Snowflake.
type Authenticator string

const (
	// AuthDefault is standard username/password authentication.
	AuthDefault Authenticator = "snowflake"

	// AuthExternalBrowser authenticates through a browser redirect. It only
	// works in environments where a browser is available.
	AuthExternalBrowser Authenticator = "externalbrowser"

	// AuthOkta authenticates against a native Okta endpoint. Requires
	// Credentials.OktaURL.
	AuthOkta Authenticator = "okta"

	// AuthOAuth authenticates with an OAuth or JWT token. Requires
	// Credentials.Token.
	AuthOAuth Authenticator = "oauth"

	// AuthUsernamePasswordMFA is username/password with MFA token caching.
	AuthUsernamePasswordMFA Authenticator = "username_password_mfa"
)

// ErrInvalidAuthenticator is returned when an authenticator value is not
// one of the supported kinds.
var ErrInvalidAuthenticator = errors.New("credentials: invalid authenticator")

// deprecated spelling accepted on input only; "okta" is canonical.
const deprecatedAuthOktaEndpoint = "okta_endpoint"

// ParseAuthenticator converts a string into an Authenticator. The empty
// string parses to AuthDefault. The historical "okta_endpoint" spelling is
// accepted as a deprecated alias for AuthOkta.
func ParseAuthenticator(s string) (Authenticator, error) {
	switch s {
	case "", string(AuthDefault):
		return AuthDefault, nil
	case string(AuthExternalBrowser):
		return AuthExternalBrowser, nil
	case string(AuthOkta), deprecatedAuthOktaEndpoint:
		return AuthOkta, nil
	case string(AuthOAuth):
		return AuthOAuth, nil
	case string(AuthUsernamePasswordMFA):
		return AuthUsernamePasswordMFA, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAuthenticator, s)
	}
}

// String returns the canonical spelling of the authenticator.
func (a Authenticator) String() string {
	return string(a)
}

// Valid reports whether the authenticator is one of the supported kinds.
// The empty value is valid and means AuthDefault.
func (a Authenticator) Valid() bool {
	_, err := ParseAuthenticator(string(a))
	return err == nil
}

// UnmarshalYAML implements yaml.Unmarshaler, normalizing deprecated
// spellings and rejecting unknown values.
func (a *Authenticator) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseAuthenticator(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
