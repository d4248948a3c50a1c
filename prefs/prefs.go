// Package prefs persists user-adjustable settings, such as volume levels,
// between runs in a small YAML file.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store is a key/value preference file. Changes are kept in memory until
// Save is called.
type Store struct {
	path   string
	Floats map[string]float64 `yaml:"floats"`
	Ints   map[string]int     `yaml:"ints"`
	Strs   map[string]string  `yaml:"strings"`
}

// Open loads the preferences at path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("prefs: read %s: %w", path, err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("prefs: unmarshal %s: %w", path, err)
		}
	}
	s.init()
	return s, nil
}

// Memory returns a store that is never written to disk.
func Memory() *Store {
	s := &Store{}
	s.init()
	return s
}

func (s *Store) init() {
	if s.Floats == nil {
		s.Floats = make(map[string]float64)
	}
	if s.Ints == nil {
		s.Ints = make(map[string]int)
	}
	if s.Strs == nil {
		s.Strs = make(map[string]string)
	}
}

func (s *Store) Path() string {
	return s.path
}

// Float returns the stored value for key, or def.
func (s *Store) Float(key string, def float64) float64 {
	if v, ok := s.Floats[key]; ok {
		return v
	}
	return def
}

func (s *Store) SetFloat(key string, v float64) {
	s.Floats[key] = v
}

func (s *Store) Int(key string, def int) int {
	if v, ok := s.Ints[key]; ok {
		return v
	}
	return def
}

func (s *Store) SetInt(key string, v int) {
	s.Ints[key] = v
}

func (s *Store) String(key, def string) string {
	if v, ok := s.Strs[key]; ok {
		return v
	}
	return def
}

func (s *Store) SetString(key, v string) {
	s.Strs[key] = v
}

// Has reports whether key is stored under any type.
func (s *Store) Has(key string) bool {
	_, f := s.Floats[key]
	_, i := s.Ints[key]
	_, str := s.Strs[key]
	return f || i || str
}

// Delete removes key from every type.
func (s *Store) Delete(key string) {
	delete(s.Floats, key)
	delete(s.Ints, key)
	delete(s.Strs, key)
}

// Save writes the store atomically. Memory stores are not written.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("prefs: marshal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("prefs: create %s: %w", dir, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("prefs: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("prefs: rename %s: %w", s.path, err)
	}
	return nil
}
