package credentials

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/polarflow/snowtask/blockstore"
)

// LoadCredentials retrieves a credentials record by name from a block
// store, decodes it, and validates it.
func LoadCredentials(ctx context.Context, store blockstore.Store, name string) (*Credentials, error) {
	doc, err := store.Get(ctx, blockstore.KindCredentials, name)
	if err != nil {
		return nil, err
	}

	var cred Credentials
	if err := yaml.Unmarshal(doc.Data, &cred); err != nil {
		return nil, fmt.Errorf("credentials: decode %q: %w", name, err)
	}
	if err := cred.Validate(); err != nil {
		return nil, err
	}
	return &cred, nil
}

// LoadConnector retrieves a connector record by name from a block store,
// decodes it, and validates it.
func LoadConnector(ctx context.Context, store blockstore.Store, name string) (*Connector, error) {
	doc, err := store.Get(ctx, blockstore.KindConnector, name)
	if err != nil {
		return nil, err
	}

	var conn Connector
	if err := yaml.Unmarshal(doc.Data, &conn); err != nil {
		return nil, fmt.Errorf("credentials: decode %q: %w", name, err)
	}
	if err := conn.Validate(); err != nil {
		return nil, err
	}
	return &conn, nil
}
