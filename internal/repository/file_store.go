package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	domainRepo "go-medical-scheduling/internal/domain/repository"
)

// FileStore keeps a whole collection in one JSON document. Every write
// rewrites the document through a temp file and rename, so a crash leaves
// either the old or the new collection on disk.
type FileStore[T domainRepo.Entity[T]] struct {
	mu   sync.Mutex
	path string
}

func NewFileStore[T domainRepo.Entity[T]](dir, name string) (*FileStore[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &FileStore[T]{path: filepath.Join(dir, name+".json")}, nil
}

func (s *FileStore[T]) SaveAll(ctx context.Context, entities map[string]T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(entities)
}

func (s *FileStore[T]) LoadAll(ctx context.Context) (map[string]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore[T]) FindByID(ctx context.Context, id string) (T, bool, error) {
	var zero T

	all, err := s.LoadAll(ctx)
	if err != nil {
		return zero, false, err
	}
	e, ok := all[id]
	if !ok {
		return zero, false, nil
	}
	return e, true, nil
}

func (s *FileStore[T]) Save(ctx context.Context, e T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return err
	}
	all[e.Key()] = e
	return s.write(all)
}

func (s *FileStore[T]) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := all[id]; !ok {
		return nil
	}
	delete(all, id)
	return s.write(all)
}

func (s *FileStore[T]) read() (map[string]T, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]T), nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	out := make(map[string]T)
	if len(data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return out, nil
}

func (s *FileStore[T]) write(entities map[string]T) error {
	if entities == nil {
		entities = make(map[string]T)
	}
	data, err := json.MarshalIndent(entities, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
