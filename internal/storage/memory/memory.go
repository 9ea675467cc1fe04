// Package memory implements an in-memory image store for tests.
package memory

import (
	"context"
	"sync"

	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/storage/core"
)

const backend = "memory"

// Store keeps blobs in a map. Unlike the local backend it is strict on
// delete: a missing key is reported as failed, matching remote semantics.
type Store struct {
	mu    sync.Mutex
	blobs map[string][]byte

	// UploadErr, when set, fails every Upload.
	UploadErr error
	// FailKeys marks keys whose deletion should be reported as failed.
	FailKeys map[string]bool
}

func New() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

func (s *Store) Upload(ctx context.Context, data []byte, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.UploadErr != nil {
		return &core.StoreError{Backend: backend, Op: "upload", Err: s.UploadErr}
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	s.blobs[key] = buf
	return nil
}

func (s *Store) DeleteMany(ctx context.Context, keys []string) (deleted, failed []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		if s.FailKeys[key] {
			failed = append(failed, key)
			continue
		}
		if _, ok := s.blobs[key]; !ok {
			failed = append(failed, key)
			continue
		}
		delete(s.blobs, key)
		deleted = append(deleted, key)
	}
	return deleted, failed, nil
}

// Len reports the number of stored blobs.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

// Has reports whether key is stored.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[key]
	return ok
}
