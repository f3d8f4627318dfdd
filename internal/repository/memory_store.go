package repository

import (
	"context"
	"sync"

	domainRepo "go-medical-scheduling/internal/domain/repository"
)

// MemoryStore keeps a collection in process memory. Values are cloned on the
// way in and out so callers never share slices with the store.
type MemoryStore[T domainRepo.Entity[T]] struct {
	mu   sync.RWMutex
	data map[string]T
}

func NewMemoryStore[T domainRepo.Entity[T]]() *MemoryStore[T] {
	return &MemoryStore[T]{data: make(map[string]T)}
}

func (s *MemoryStore[T]) SaveAll(ctx context.Context, entities map[string]T) error {
	data := make(map[string]T, len(entities))
	for id, e := range entities {
		data[id] = e.Clone()
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore[T]) LoadAll(ctx context.Context) (map[string]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]T, len(s.data))
	for id, e := range s.data {
		out[id] = e.Clone()
	}
	return out, nil
}

func (s *MemoryStore[T]) FindByID(ctx context.Context, id string) (T, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[id]
	if !ok {
		var zero T
		return zero, false, nil
	}
	return e.Clone(), true, nil
}

func (s *MemoryStore[T]) Save(ctx context.Context, e T) error {
	s.mu.Lock()
	s.data[e.Key()] = e.Clone()
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.data, id)
	s.mu.Unlock()
	return nil
}
