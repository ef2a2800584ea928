package snowtask

import (
	"context"
	"errors"
	"fmt"

	"github.com/polarflow/snowtask/blockstore"
	"github.com/polarflow/snowtask/credentials"
	"github.com/polarflow/snowtask/keypair"
)

// Error kinds categorize task failures.
const (
	// KindConfiguration covers missing or inconsistent record fields.
	// Configuration errors are never retried.
	KindConfiguration = "configuration"

	// KindKeyFormat covers malformed PEM input.
	KindKeyFormat = "key_format"

	// KindKeyDecrypt covers private key decryption failures: wrong
	// passphrase or a passphrase-presence mismatch.
	KindKeyDecrypt = "key_decrypt"

	// KindStore covers block store failures.
	KindStore = "store"

	// KindTimeout covers deadline expiry while waiting on the warehouse,
	// usually during the polling loop.
	KindTimeout = "timeout"

	// KindQuery covers failures surfaced by the warehouse client,
	// including SQL and network errors. The underlying driver error is
	// preserved untranslated.
	KindQuery = "query"
)

// Error is a structured task error carrying the operation that failed and
// the category of failure.
//
// Error supports errors.Is and errors.As through Unwrap, so callers can
// still match the underlying sentinel (for example
// keypair.ErrBadPassphrase) or driver error types.
type Error struct {
	// Op is the operation that failed (e.g. "Query", "MultiQuery").
	Op string

	// Kind categorizes the error (e.g. KindConfiguration).
	Kind string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("snowtask: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("snowtask: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by Kind (and Op, when the target sets one).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != "" && e.Kind != t.Kind {
		return false
	}
	if t.Op != "" && e.Op != t.Op {
		return false
	}
	return t.Kind != "" || t.Op != ""
}

// wrapErr wraps err in an *Error with the kind derived from the underlying
// sentinel. A nil err stays nil.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kindOf(err), Err: err}
}

// kindOf maps sentinel errors from the record, key, and store packages to
// their error kind. Anything else came from the warehouse client.
func kindOf(err error) string {
	switch {
	case errors.Is(err, credentials.ErrMissingAuthMethod),
		errors.Is(err, credentials.ErrMissingField),
		errors.Is(err, credentials.ErrMissingToken),
		errors.Is(err, credentials.ErrMissingOktaURL),
		errors.Is(err, credentials.ErrInvalidAuthenticator):
		return KindConfiguration
	case errors.Is(err, keypair.ErrInvalidPEM):
		return KindKeyFormat
	case errors.Is(err, keypair.ErrBadPassphrase),
		errors.Is(err, keypair.ErrKeyEncrypted),
		errors.Is(err, keypair.ErrKeyNotEncrypted):
		return KindKeyDecrypt
	case errors.Is(err, blockstore.ErrNotFound),
		errors.Is(err, blockstore.ErrInvalidName),
		errors.Is(err, blockstore.ErrStorageFailed):
		return KindStore
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	default:
		return KindQuery
	}
}
