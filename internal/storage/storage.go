package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nikbrunner/quotes/internal/model"
)

// Keys used by the quote store.
const (
	KeyQuotes      = "quotes"
	KeyFilter      = "lastSelectedFilter"
	KeyLastViewed  = "lastViewedQuote"
	defaultDirName = "quotes"
)

// KV is a persistent or session-scoped key-value slot store.
// Values are JSON documents and are always read and written wholesale.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// JSONStorage implements KV using a single JSON file that holds an object of
// key -> value. Every write rewrites the whole file.
type JSONStorage struct {
	mu   sync.Mutex
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Get returns the raw value stored under key.
// A missing file reads as an empty store.
func (s *JSONStorage) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.read()
	if err != nil {
		return nil, false, err
	}
	value, ok := slots[key]
	return value, ok, nil
}

// Set stores value under key. value must be valid JSON.
// A file that cannot be parsed is replaced rather than merged into.
func (s *JSONStorage) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("storage: value for %q is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.read()
	if err != nil {
		if !errors.Is(err, model.ErrParse) {
			return err
		}
		slots = map[string]json.RawMessage{}
	}
	slots[key] = json.RawMessage(value)
	return s.write(slots)
}

// Delete removes key. Deleting a missing key is not an error.
func (s *JSONStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	slots, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := slots[key]; !ok {
		return nil
	}
	delete(slots, key)
	return s.write(slots)
}

// Close is a no-op; the file is not held open between calls.
func (s *JSONStorage) Close() error {
	return nil
}

func (s *JSONStorage) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}

	slots := map[string]json.RawMessage{}
	if len(data) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, &model.ParseError{Source: "storage", Err: err}
	}
	return slots, nil
}

// write creates the directory if it doesn't exist and replaces the file via
// a temp file so readers never see a half-written document.
func (s *JSONStorage) write(slots map[string]json.RawMessage) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// MemoryStorage implements KV in memory. It backs the session slot, which
// lives only as long as the process.
type MemoryStorage struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{slots: make(map[string][]byte)}
}

func (s *MemoryStorage) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.slots[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (s *MemoryStorage) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.slots[key] = stored
	return nil
}

func (s *MemoryStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}

func (s *MemoryStorage) Close() error {
	return nil
}

// DefaultDir returns the default data directory: ~/.config/quotes
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", defaultDirName), nil
}

// DefaultJSONPath returns the default JSON store path: ~/.config/quotes/quotes.json
func DefaultJSONPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "quotes.json"), nil
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open opens the persistent store for backend at path.
// An empty path selects the backend's default location.
func Open(backend, path string) (KV, error) {
	switch backend {
	case "", BackendJSON:
		if path == "" {
			var err error
			if path, err = DefaultJSONPath(); err != nil {
				return nil, err
			}
		}
		return NewJSONStorage(path), nil
	case BackendSQLite:
		if path == "" {
			var err error
			if path, err = DefaultSQLitePath(); err != nil {
				return nil, err
			}
		}
		return NewSQLiteStorage(path)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
