package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/recyclemate/sessions"
)

var _ sessions.Storage = (*FileStorage)(nil)

// FileStorage keeps the key/value map in a JSON file so a session survives process restarts.
// The file is re-read on every access; writes go through a temp file and rename.
type FileStorage struct {
	path string
	mu   sync.Mutex
}

func New(path string) *FileStorage {
	return &FileStorage{path: filepath.Clean(path)}
}

// NewRepo returns a session store persisted at path.
func NewRepo(path string) *sessions.Store {
	return sessions.NewStore(New(path))
}

func (f *FileStorage) Path() string {
	return f.path
}

func (f *FileStorage) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileStorage) SetAll(values map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.read()
	if err != nil {
		return err
	}
	for k, v := range values {
		current[k] = v
	}
	return f.write(current)
}

func (f *FileStorage) Remove(keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.read()
	if err != nil {
		return err
	}
	if len(current) == 0 {
		return nil
	}
	for _, k := range keys {
		delete(current, k)
	}
	if len(current) == 0 {
		if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove session file: %w", err)
		}
		return nil
	}
	return f.write(current)
}

func (f *FileStorage) read() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(f.path) // #nosec G304 - path comes from local configuration
	if os.IsNotExist(err) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	return values, nil
}

func (f *FileStorage) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set session file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}
