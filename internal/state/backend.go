package state

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Backend is a flat string key/value store. Get reports ok=false for keys
// that were never written.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// FileBackend keeps every key as a string field of one JSON document on disk.
// A missing or corrupt file reads as empty.
type FileBackend struct {
	path string
	mu   sync.Mutex
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Get(key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.read()
	if err != nil {
		return "", false, err
	}
	res := gjson.GetBytes(doc, gjson.Escape(key))
	if !res.Exists() {
		return "", false, nil
	}
	return res.String(), true, nil
}

func (b *FileBackend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	doc, err := b.read()
	if err != nil {
		return err
	}
	doc, err = sjson.SetBytes(doc, gjson.Escape(key), value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return b.write(doc)
}

func (b *FileBackend) read() ([]byte, error) {
	doc, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return []byte("{}"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if !gjson.ValidBytes(doc) || !gjson.ParseBytes(doc).IsObject() {
		slog.Warn("State file is not a JSON object, starting empty", slog.String("path", b.path))
		return []byte("{}"), nil
	}
	return doc, nil
}

func (b *FileBackend) write(doc []byte) error {
	if dir := filepath.Dir(b.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".state-*.json")
	if err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// MemoryBackend is an in-process Backend, used by tests and by surfaces that
// do not persist between runs.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (m *MemoryBackend) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
