package snowtask

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/polarflow/snowtask/blockstore"
	"github.com/polarflow/snowtask/credentials"
	"github.com/polarflow/snowtask/keypair"
)

// TestErrorFormat verifies the Error() method formatting.
func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "with underlying error",
			err: &Error{
				Op:   "Query",
				Kind: KindConfiguration,
				Err:  credentials.ErrMissingAuthMethod,
			},
			want: "snowtask: Query (configuration): " + credentials.ErrMissingAuthMethod.Error(),
		},
		{
			name: "without underlying error",
			err: &Error{
				Op:   "MultiQuery",
				Kind: KindQuery,
			},
			want: "snowtask: MultiQuery: query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestKindOf verifies the sentinel-to-kind mapping.
func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing auth method", credentials.ErrMissingAuthMethod, KindConfiguration},
		{"missing field", credentials.ErrMissingField, KindConfiguration},
		{"missing token", credentials.ErrMissingToken, KindConfiguration},
		{"missing okta url", credentials.ErrMissingOktaURL, KindConfiguration},
		{"invalid authenticator", credentials.ErrInvalidAuthenticator, KindConfiguration},
		{"invalid pem", keypair.ErrInvalidPEM, KindKeyFormat},
		{"bad passphrase", keypair.ErrBadPassphrase, KindKeyDecrypt},
		{"key encrypted", keypair.ErrKeyEncrypted, KindKeyDecrypt},
		{"key not encrypted", keypair.ErrKeyNotEncrypted, KindKeyDecrypt},
		{"deadline exceeded", context.DeadlineExceeded, KindTimeout},
		{"store not found", blockstore.ErrNotFound, KindStore},
		{"store failure", blockstore.ErrStorageFailed, KindStore},
		{"driver error", errors.New("002003 (42S02): object does not exist"), KindQuery},
		{"wrapped sentinel", fmt.Errorf("validate: %w", credentials.ErrMissingField), KindConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kindOf(tt.err); got != tt.want {
				t.Errorf("kindOf(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

// TestWrapErr verifies wrapping behavior and errors.Is traversal.
func TestWrapErr(t *testing.T) {
	if wrapErr("Query", nil) != nil {
		t.Fatal("wrapErr(nil) should be nil")
	}

	err := wrapErr("Query", keypair.ErrBadPassphrase)

	var taskErr *Error
	if !errors.As(err, &taskErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if taskErr.Op != "Query" {
		t.Errorf("Op = %q, want %q", taskErr.Op, "Query")
	}
	if taskErr.Kind != KindKeyDecrypt {
		t.Errorf("Kind = %q, want %q", taskErr.Kind, KindKeyDecrypt)
	}

	// The original sentinel stays reachable through the wrapper.
	if !errors.Is(err, keypair.ErrBadPassphrase) {
		t.Error("wrapped error should match the underlying sentinel")
	}
}

// TestErrorIs verifies kind- and op-based matching between *Error values.
func TestErrorIs(t *testing.T) {
	err := wrapErr("MultiQuery", credentials.ErrMissingField)

	tests := []struct {
		name   string
		target *Error
		want   bool
	}{
		{"matching kind", &Error{Kind: KindConfiguration}, true},
		{"matching op", &Error{Op: "MultiQuery"}, true},
		{"matching both", &Error{Op: "MultiQuery", Kind: KindConfiguration}, true},
		{"wrong kind", &Error{Kind: KindQuery}, false},
		{"wrong op", &Error{Op: "Query", Kind: KindConfiguration}, false},
		{"empty target", &Error{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(err, tt.target); got != tt.want {
				t.Errorf("errors.Is = %v, want %v", got, tt.want)
			}
		})
	}
}
