package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/polarflow/snowtask/secret"
)

func baseCredentials() Credentials {
	return Credentials{
		Account:  "acme-eu1",
		User:     "loader",
		Password: secret.New("hunter2"),
	}
}

func TestParseAuthenticator(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Authenticator
		wantErr bool
	}{
		{name: "empty means default", input: "", want: AuthDefault},
		{name: "snowflake", input: "snowflake", want: AuthDefault},
		{name: "externalbrowser", input: "externalbrowser", want: AuthExternalBrowser},
		{name: "okta", input: "okta", want: AuthOkta},
		{name: "deprecated okta_endpoint alias", input: "okta_endpoint", want: AuthOkta},
		{name: "oauth", input: "oauth", want: AuthOAuth},
		{name: "mfa", input: "username_password_mfa", want: AuthUsernamePasswordMFA},
		{name: "unknown", input: "kerberos", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAuthenticator(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAuthenticator)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cred    Credentials
		wantErr error
	}{
		{
			name: "password auth",
			cred: baseCredentials(),
		},
		{
			name: "token auth",
			cred: Credentials{
				Account:       "acme-eu1",
				User:          "loader",
				Authenticator: AuthOAuth,
				Token:         secret.New("token"),
			},
		},
		{
			name: "non-default authenticator alone",
			cred: Credentials{
				Account:       "acme-eu1",
				User:          "loader",
				Authenticator: AuthExternalBrowser,
			},
		},
		{
			name: "private key auth",
			cred: Credentials{
				Account:    "acme-eu1",
				User:       "loader",
				PrivateKey: secret.NewBytes([]byte("pem")),
			},
		},
		{
			name: "no auth method at all",
			cred: Credentials{
				Account: "acme-eu1",
				User:    "loader",
			},
			wantErr: ErrMissingAuthMethod,
		},
		{
			name: "explicit default authenticator is not an auth method",
			cred: Credentials{
				Account:       "acme-eu1",
				User:          "loader",
				Authenticator: AuthDefault,
			},
			wantErr: ErrMissingAuthMethod,
		},
		{
			name:    "missing account",
			cred:    Credentials{User: "loader", Password: secret.New("x")},
			wantErr: ErrMissingField,
		},
		{
			name:    "missing user",
			cred:    Credentials{Account: "acme-eu1", Password: secret.New("x")},
			wantErr: ErrMissingField,
		},
		{
			name: "oauth without token",
			cred: Credentials{
				Account:       "acme-eu1",
				User:          "loader",
				Authenticator: AuthOAuth,
			},
			wantErr: ErrMissingToken,
		},
		{
			name: "okta without endpoint",
			cred: Credentials{
				Account:       "acme-eu1",
				User:          "loader",
				Authenticator: AuthOkta,
			},
			wantErr: ErrMissingOktaURL,
		},
		{
			name: "okta with deprecated endpoint alias only",
			cred: Credentials{
				Account:       "acme-eu1",
				User:          "loader",
				Authenticator: AuthOkta,
				Endpoint:      "https://acme.okta.com",
			},
		},
		{
			name: "unknown authenticator",
			cred: Credentials{
				Account:       "acme-eu1",
				User:          "loader",
				Password:      secret.New("x"),
				Authenticator: Authenticator("kerberos"),
			},
			wantErr: ErrInvalidAuthenticator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cred.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCredentials_WithOverrides(t *testing.T) {
	cred := baseCredentials()

	derived := cred.WithPassword(secret.New("changed")).WithAuthenticator(AuthExternalBrowser)

	assert.Equal(t, "changed", derived.Password.Reveal())
	assert.Equal(t, AuthExternalBrowser, derived.Authenticator)

	// The original record is untouched.
	assert.Equal(t, "hunter2", cred.Password.Reveal())
	assert.Equal(t, Authenticator(""), cred.Authenticator)
}

func TestCredentials_UnmarshalYAML(t *testing.T) {
	doc := `
account: acme-eu1
user: loader
password: hunter2
authenticator: okta_endpoint
endpoint: https://legacy.okta.com
okta_url: https://acme.okta.com
role: ANALYST
autocommit: false
`
	var cred Credentials
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cred))

	assert.Equal(t, "acme-eu1", cred.Account)
	assert.Equal(t, "hunter2", cred.Password.Reveal())
	assert.Equal(t, AuthOkta, cred.Authenticator, "deprecated spelling normalizes on decode")
	assert.Equal(t, "https://acme.okta.com", cred.OktaURL)
	assert.Equal(t, "https://legacy.okta.com", cred.Endpoint)
	require.NotNil(t, cred.Autocommit)
	assert.False(t, *cred.Autocommit)
	require.NoError(t, cred.Validate())
}

func TestCredentials_UnmarshalYAMLRejectsUnknownAuthenticator(t *testing.T) {
	var cred Credentials
	err := yaml.Unmarshal([]byte("account: a\nuser: u\nauthenticator: kerberos\n"), &cred)
	assert.ErrorIs(t, err, ErrInvalidAuthenticator)
}
