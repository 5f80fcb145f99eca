// internal/storage/file.go
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileProvider persists every origin in one JSON document on disk. The CLI uses
// it so a login survives between invocations.
type FileProvider struct {
	mu   sync.Mutex
	path string
}

func NewFileProvider(path string) (*FileProvider, error) {
	if path == "" {
		return nil, errors.New("storage: file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileProvider{path: path}, nil
}

func (p *FileProvider) Open(origin string) Store {
	return &fileStore{provider: p, origin: origin}
}

func (p *FileProvider) Close() error { return nil }

func (p *FileProvider) load() (map[string]map[string]string, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.path, err)
	}

	doc := make(map[string]map[string]string)
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.path, err)
	}
	return doc, nil
}

// save writes to a sibling temp file and renames it over the document, so a
// crash never leaves a half-written store behind.
func (p *FileProvider) save(doc map[string]map[string]string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".storage-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p.path)
}

type fileStore struct {
	provider *FileProvider
	origin   string
}

func (s *fileStore) Get(_ context.Context, key string) (string, error) {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	doc, err := s.provider.load()
	if err != nil {
		return "", err
	}
	value, ok := doc[s.origin][key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *fileStore) SetMany(_ context.Context, entries map[string]string) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	doc, err := s.provider.load()
	if err != nil {
		return err
	}
	data, ok := doc[s.origin]
	if !ok {
		data = make(map[string]string, len(entries))
		doc[s.origin] = data
	}
	for k, v := range entries {
		data[k] = v
	}
	return s.provider.save(doc)
}

func (s *fileStore) Remove(_ context.Context, keys ...string) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	doc, err := s.provider.load()
	if err != nil {
		return err
	}
	data, ok := doc[s.origin]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(data, k)
	}
	if len(data) == 0 {
		delete(doc, s.origin)
	}
	return s.provider.save(doc)
}
