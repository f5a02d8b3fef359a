package testutils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

type memObject struct {
	data        []byte
	contentType string
}

// MemoryStore is an in-memory storage.Store for tests that must not
// reach a real MinIO instance.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string]memObject
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memObject)}
}

func (s *MemoryStore) Put(ctx context.Context, objectName, contentType string, r io.Reader, size int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectName] = memObject{data: data, contentType: contentType}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, objectName string) (io.ReadCloser, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[objectName]
	if !ok {
		return nil, "", fmt.Errorf("object %s not found", objectName)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.contentType, nil
}

func (s *MemoryStore) Remove(ctx context.Context, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectName)
	return nil
}

// Len reports how many objects are held.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
