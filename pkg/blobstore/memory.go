package blobstore

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory implementation of Store, used in tests and
// local runs without an object storage backend.
type MemoryStore struct {
	buckets map[string]map[string][]byte
	mu      sync.RWMutex
}

// NewMemoryStore creates a new empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		buckets: make(map[string]map[string][]byte),
	}
}

// EnsureBucket creates the bucket if it does not exist yet.
func (s *MemoryStore) EnsureBucket(_ context.Context, bucket string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buckets[bucket]; !ok {
		s.buckets[bucket] = make(map[string][]byte)
	}
	return nil
}

// BucketExists reports whether the bucket exists.
func (s *MemoryStore) BucketExists(_ context.Context, bucket string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.buckets[bucket]
	return ok, nil
}

// Put writes a blob, overwriting any previous content under the same name.
// The bucket is created implicitly.
func (s *MemoryStore) Put(_ context.Context, bucket, name string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buckets[bucket]; !ok {
		s.buckets[bucket] = make(map[string][]byte)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.buckets[bucket][name] = cp
	return nil
}

// Get reads a blob fully into memory.
func (s *MemoryStore) Get(_ context.Context, bucket, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.buckets[bucket]
	if !ok {
		return nil, fmt.Errorf("bucket %s not found", bucket)
	}
	data, ok := b[name]
	if !ok {
		return nil, fmt.Errorf("blob %s/%s not found", bucket, name)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// URL returns a synthetic address for a blob.
func (s *MemoryStore) URL(bucket, name string) string {
	return fmt.Sprintf("memory://%s/%s", bucket, name)
}

// Len reports the number of blobs in a bucket. Test helper.
func (s *MemoryStore) Len(bucket string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.buckets[bucket])
}
