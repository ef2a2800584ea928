// Package credentials defines the configuration records used to open
// authenticated Snowflake connections.
//
// Credentials holds everything needed to prove identity: account and user,
// plus at least one authentication method (password, key-pair private key,
// OAuth token, or a non-default authenticator). Connector composes
// Credentials with the target database, warehouse, and schema.
//
// Both records are immutable value objects once constructed; use the With*
// helpers to derive variants. ConnectConfig translates a validated
// Connector into the *gosnowflake.Config the driver consumes: unset fields
// are omitted, secrets are unwrapped at the last moment, the okta endpoint
// replaces the authenticator, and a present private key is resolved to its
// binary form (consuming the password as its passphrase).
//
// Records can be loaded by name from a blockstore.Store; see LoadConnector
// and LoadCredentials.
package credentials
