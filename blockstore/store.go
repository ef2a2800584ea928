package blockstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by block store operations.
var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("blockstore: document not found")

	// ErrInvalidName is returned when a document name or kind is empty or
	// contains the separator character.
	ErrInvalidName = errors.New("blockstore: invalid document name")

	// ErrStorageFailed is returned when the underlying backend fails.
	ErrStorageFailed = errors.New("blockstore: storage operation failed")
)

// Kind categorizes documents so different record types can share one store.
type Kind string

const (
	// KindCredentials marks a credentials record document.
	KindCredentials Kind = "snowflake-credentials"

	// KindConnector marks a connector record document.
	KindConnector Kind = "snowflake-connector"
)

// Document is a named configuration payload. Data is opaque to the store;
// record packages own the encoding.
type Document struct {
	// Kind categorizes the document.
	Kind Kind `json:"kind"`

	// Name is the unique name within the kind.
	Name string `json:"name"`

	// Data is the serialized record, conventionally YAML.
	Data []byte `json:"data"`
}

// Store persists documents by kind and name.
//
// Implementations must be safe for concurrent use. Get returns ErrNotFound
// for missing documents; backend failures are wrapped in ErrStorageFailed.
type Store interface {
	// Get retrieves a document by kind and name.
	Get(ctx context.Context, kind Kind, name string) (*Document, error)

	// Put stores a document, replacing any existing document with the same
	// kind and name.
	Put(ctx context.Context, doc *Document) error

	// Delete removes a document. Deleting a missing document returns
	// ErrNotFound.
	Delete(ctx context.Context, kind Kind, name string) error

	// List returns the names of all documents of a kind, sorted.
	List(ctx context.Context, kind Kind) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// keySeparator joins kind and name into backend keys.
const keySeparator = "/"

// docKey validates kind and name and joins them into the backend key.
func docKey(kind Kind, name string) (string, error) {
	if kind == "" || name == "" {
		return "", ErrInvalidName
	}
	if strings.Contains(string(kind), keySeparator) || strings.Contains(name, keySeparator) {
		return "", fmt.Errorf("%w: %q must not contain %q", ErrInvalidName, name, keySeparator)
	}
	return string(kind) + keySeparator + name, nil
}
