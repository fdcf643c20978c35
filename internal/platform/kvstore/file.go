package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File persiste todas las claves en un único objeto JSON en disco.
// Cada Set/Delete reescribe el archivo completo vía rename atómico.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) (*File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("kvstore: file path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("kvstore: create dir: %w", err)
	}
	return &File{path: path}, nil
}

func (f *File) Path() string { return f.path }

func (f *File) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if strings.TrimSpace(key) == "" {
		return nil, false, ErrEmptyKey
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.load()
	if err != nil {
		return nil, false, err
	}
	v, ok := all[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (f *File) Set(ctx context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.loadForWrite()
	if err != nil {
		return err
	}
	all[key] = string(value)
	return f.save(all)
}

func (f *File) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.loadForWrite()
	if err != nil {
		return err
	}
	if _, ok := all[key]; !ok {
		return nil
	}
	delete(all, key)
	return f.save(all)
}

// Los valores se guardan como string para que el archivo sea legible
// aunque el documento interno sea JSON.
func (f *File) load() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("kvstore: read: %w", err)
	}
	if len(raw) == 0 {
		return map[string]string{}, nil
	}

	out := map[string]string{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCorrupt, f.path, err)
	}
	return out, nil
}

// loadForWrite es load, pero un archivo corrupto se mueve a <path>.corrupt
// y se parte de un documento vacío. Las lecturas siguen reportando el error.
func (f *File) loadForWrite() (map[string]string, error) {
	all, err := f.load()
	if !errors.Is(err, ErrCorrupt) {
		return all, err
	}
	if err := os.Rename(f.path, f.path+".corrupt"); err != nil {
		return nil, fmt.Errorf("kvstore: move corrupt file aside: %w", err)
	}
	return map[string]string{}, nil
}

func (f *File) save(all map[string]string) error {
	b, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("kvstore: marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".kvstore-*")
	if err != nil {
		return fmt.Errorf("kvstore: temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("kvstore: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("kvstore: close: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("kvstore: chmod: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("kvstore: rename: %w", err)
	}
	return nil
}
