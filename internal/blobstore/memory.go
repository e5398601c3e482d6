package blobstore

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/hashaudit/internal/common"
)

// MemoryStore keeps blobs in a map. Used in tests and single-process dev
// setups where the server and the engine share the store instance.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Put(ctx context.Context, data []byte) (string, error) {
	key := RandomStorageKey()

	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = cp
	return key, nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, common.ErrorNotFound
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}
