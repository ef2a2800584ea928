package blockstore

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is a process-local Store for tests and single-binary
// development. The zero value is not usable; call NewMemoryStore.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Document)}
}

// Get retrieves a document by kind and name.
func (s *MemoryStore) Get(_ context.Context, kind Kind, name string) (*Document, error) {
	key, err := docKey(kind, name)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *doc
	copied.Data = append([]byte(nil), doc.Data...)
	return &copied, nil
}

// Put stores a document, replacing any existing one with the same key.
func (s *MemoryStore) Put(_ context.Context, doc *Document) error {
	key, err := docKey(doc.Kind, doc.Name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *doc
	copied.Data = append([]byte(nil), doc.Data...)
	s.docs[key] = &copied
	return nil
}

// Delete removes a document.
func (s *MemoryStore) Delete(_ context.Context, kind Kind, name string) error {
	key, err := docKey(kind, name)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[key]; !ok {
		return ErrNotFound
	}
	delete(s.docs, key)
	return nil
}

// List returns the sorted names of all documents of a kind.
func (s *MemoryStore) List(_ context.Context, kind Kind) ([]string, error) {
	prefix := string(kind) + keySeparator

	s.mu.RLock()
	defer s.mu.RUnlock()

	var names []string
	for key := range s.docs {
		if strings.HasPrefix(key, prefix) {
			names = append(names, strings.TrimPrefix(key, prefix))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
