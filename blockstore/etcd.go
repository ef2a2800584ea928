package blockstore

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// EtcdOptions configures the etcd-backed store.
type EtcdOptions struct {
	// Endpoints lists the etcd cluster members (e.g. "localhost:2379").
	Endpoints []string

	// Namespace prefixes every key. Defaults to "snowtask".
	Namespace string

	// TLS configuration for secure connections.
	TLS *tls.Config

	// DialTimeout is the maximum time to wait for the initial connection.
	// Defaults to 5s.
	DialTimeout time.Duration
}

// EtcdStore implements Store on top of an etcd cluster. Documents are
// stored as JSON values under "/<namespace>/block/<kind>/<name>".
type EtcdStore struct {
	client    *clientv3.Client
	namespace string
}

// NewEtcdStore connects to the etcd cluster.
func NewEtcdStore(opts EtcdOptions) (*EtcdStore, error) {
	if len(opts.Endpoints) == 0 {
		return nil, fmt.Errorf("blockstore: etcd endpoints cannot be empty")
	}
	if opts.Namespace == "" {
		opts.Namespace = "snowtask"
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}

	client, err := clientv3.New(clientv3.Config{
		Endpoints:   opts.Endpoints,
		DialTimeout: opts.DialTimeout,
		TLS:         opts.TLS,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: etcd dial: %v", ErrStorageFailed, err)
	}

	return &EtcdStore{client: client, namespace: opts.Namespace}, nil
}

func (s *EtcdStore) key(docKey string) string {
	return "/" + s.namespace + "/block/" + docKey
}

// Get retrieves a document by kind and name.
func (s *EtcdStore) Get(ctx context.Context, kind Kind, name string) (*Document, error) {
	key, err := docKey(kind, name)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Get(ctx, s.key(key))
	if err != nil {
		return nil, fmt.Errorf("%w: etcd get: %v", ErrStorageFailed, err)
	}
	if len(resp.Kvs) == 0 {
		return nil, ErrNotFound
	}

	var doc Document
	if err := json.Unmarshal(resp.Kvs[0].Value, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode document: %v", ErrStorageFailed, err)
	}
	return &doc, nil
}

// Put stores a document, replacing any existing one with the same key.
func (s *EtcdStore) Put(ctx context.Context, doc *Document) error {
	key, err := docKey(doc.Kind, doc.Name)
	if err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode document: %v", ErrStorageFailed, err)
	}
	if _, err := s.client.Put(ctx, s.key(key), string(data)); err != nil {
		return fmt.Errorf("%w: etcd put: %v", ErrStorageFailed, err)
	}
	return nil
}

// Delete removes a document.
func (s *EtcdStore) Delete(ctx context.Context, kind Kind, name string) error {
	key, err := docKey(kind, name)
	if err != nil {
		return err
	}

	resp, err := s.client.Delete(ctx, s.key(key))
	if err != nil {
		return fmt.Errorf("%w: etcd delete: %v", ErrStorageFailed, err)
	}
	if resp.Deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the sorted names of all documents of a kind.
func (s *EtcdStore) List(ctx context.Context, kind Kind) ([]string, error) {
	prefix := s.key(string(kind) + keySeparator)

	resp, err := s.client.Get(ctx, prefix, clientv3.WithPrefix(), clientv3.WithKeysOnly())
	if err != nil {
		return nil, fmt.Errorf("%w: etcd list: %v", ErrStorageFailed, err)
	}

	names := make([]string, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		names = append(names, strings.TrimPrefix(string(kv.Key), prefix))
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the etcd client.
func (s *EtcdStore) Close() error {
	return s.client.Close()
}
