package keyval

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// File is a file-backed Store. The whole key space is held in memory and
// flushed to a single JSON file on every mutation.
type File struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

var _ Store = (*File)(nil)

// OpenFile loads (or creates) a file-backed store at path.
func OpenFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("[OpenFile] path is required")
	}

	f := &File{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[OpenFile] os.ReadFile")
	}
	if len(data) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(data, &f.values); err != nil {
		return nil, errors.Wrap(err, "[OpenFile] json.Unmarshal")
	}
	return f, nil
}

// Get returns the value for key.
func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.values[key]
	return v, ok
}

// Set writes the value for key and flushes to disk.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[key] = value
	return f.flush()
}

// Delete removes the key and flushes to disk.
func (f *File) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.values[key]; !ok {
		return nil
	}
	delete(f.values, key)
	return f.flush()
}

// flush must be called with the mutex held.
func (f *File) flush() error {
	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[File.flush] json.MarshalIndent")
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.Wrap(err, "[File.flush] os.MkdirAll")
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return errors.Wrap(err, "[File.flush] os.WriteFile")
	}
	return nil
}
