package blockstore

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis-backed store.
type RedisOptions struct {
	// URL is the Redis connection string (e.g. "redis://localhost:6379").
	URL string

	// Namespace prefixes every key so several deployments can share one
	// Redis. Defaults to "snowtask".
	Namespace string

	// TLS configuration for secure connections.
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection
	// establishment. Defaults to 5s.
	ConnectTimeout time.Duration
}

// RedisStore implements Store on top of go-redis/v9. Documents are stored
// as JSON values under "<namespace>:block:<kind>/<name>".
type RedisStore struct {
	client    *redis.Client
	namespace string
}

// NewRedisStore connects to Redis and verifies connectivity with a ping.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.Namespace == "" {
		opts.Namespace = "snowtask"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("blockstore: parse redis URL: %w", err)
	}
	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: redis ping: %v", ErrStorageFailed, err)
	}

	return &RedisStore{client: client, namespace: opts.Namespace}, nil
}

func (s *RedisStore) key(docKey string) string {
	return s.namespace + ":block:" + docKey
}

// Get retrieves a document by kind and name.
func (s *RedisStore) Get(ctx context.Context, kind Kind, name string) (*Document, error) {
	key, err := docKey(kind, name)
	if err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: redis get: %v", ErrStorageFailed, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode document: %v", ErrStorageFailed, err)
	}
	return &doc, nil
}

// Put stores a document, replacing any existing one with the same key.
func (s *RedisStore) Put(ctx context.Context, doc *Document) error {
	key, err := docKey(doc.Kind, doc.Name)
	if err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode document: %v", ErrStorageFailed, err)
	}
	if err := s.client.Set(ctx, s.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %v", ErrStorageFailed, err)
	}
	return nil
}

// Delete removes a document.
func (s *RedisStore) Delete(ctx context.Context, kind Kind, name string) error {
	key, err := docKey(kind, name)
	if err != nil {
		return err
	}

	deleted, err := s.client.Del(ctx, s.key(key)).Result()
	if err != nil {
		return fmt.Errorf("%w: redis del: %v", ErrStorageFailed, err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the sorted names of all documents of a kind.
//
// SCAN is used instead of KEYS so listing does not block a shared Redis.
func (s *RedisStore) List(ctx context.Context, kind Kind) ([]string, error) {
	prefix := s.key(string(kind) + keySeparator)

	var names []string
	iter := s.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: redis scan: %v", ErrStorageFailed, err)
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
