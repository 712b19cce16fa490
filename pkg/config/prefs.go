package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"vizex/pkg/common"
	"vizex/pkg/order"
	"vizex/pkg/theme"
)

// Prefs are the stored user preferences. Empty fields fall back to the
// built-in defaults.
type Prefs struct {
	Symbol      string `json:"mark,omitempty"`
	HeaderColor string `json:"header_color,omitempty"`
	HeaderStyle string `json:"header_style,omitempty"`
	TextColor   string `json:"text_color,omitempty"`
	GraphColor  string `json:"graph_color,omitempty"`
	Width       int    `json:"width,omitempty"`
	Sort        string `json:"sort,omitempty"`
	Order       string `json:"order,omitempty"`
}

// PrefKeys are the settable preference names, in display order.
var PrefKeys = []string{"mark", "header_color", "header_style", "text_color", "graph_color", "width", "sort", "order"}

// Get returns the stored value of key, "" when unset.
func (p Prefs) Get(key string) (string, error) {
	switch key {
	case "mark":
		return p.Symbol, nil
	case "header_color":
		return p.HeaderColor, nil
	case "header_style":
		return p.HeaderStyle, nil
	case "text_color":
		return p.TextColor, nil
	case "graph_color":
		return p.GraphColor, nil
	case "width":
		if p.Width == 0 {
			return "", nil
		}
		return strconv.Itoa(p.Width), nil
	case "sort":
		return p.Sort, nil
	case "order":
		return p.Order, nil
	default:
		return "", unknownKey(key)
	}
}

// Set validates value and stores it under key. An empty value clears the
// preference.
func (p *Prefs) Set(key, value string) error {
	if value != "" {
		if err := validate(key, value); err != nil {
			return err
		}
	}
	switch key {
	case "mark":
		p.Symbol = value
	case "header_color":
		p.HeaderColor = value
	case "header_style":
		p.HeaderStyle = value
	case "text_color":
		p.TextColor = value
	case "graph_color":
		p.GraphColor = value
	case "width":
		p.Width, _ = strconv.Atoi(value)
	case "sort":
		p.Sort = value
	case "order":
		p.Order = value
	default:
		return unknownKey(key)
	}
	return nil
}

func validate(key, value string) error {
	switch key {
	case "mark":
		if !theme.ValidSymbol(value) {
			return &common.ConfigError{Field: key, Value: value, Reason: "must be a single character of width 1"}
		}
	case "header_color", "text_color", "graph_color":
		if !theme.ValidColor(value) {
			return &common.ConfigError{Field: key, Value: value, Reason: "unknown color"}
		}
	case "header_style":
		if !theme.ValidAttr(value) {
			return &common.ConfigError{Field: key, Value: value, Reason: "unknown attribute"}
		}
	case "width":
		if n, err := strconv.Atoi(value); err != nil || n <= 0 {
			return &common.ConfigError{Field: key, Value: value, Reason: "must be a positive integer"}
		}
	case "sort":
		_, err := order.ParseKey(value)
		return err
	case "order":
		_, err := order.ParseDirection(value)
		return err
	}
	return nil
}

func unknownKey(key string) error {
	return &common.ConfigError{Field: "preference", Value: key, Reason: "unknown name"}
}

// Store is a lazily loaded preferences file. It is safe for concurrent use.
type Store struct {
	path   string
	prefs  Prefs
	loaded bool
	dirty  bool
	mu     sync.RWMutex
}

// NewStore returns a Store for the file at path. Nothing is read until the
// first Get or Modify.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file location.
func (s *Store) Path() string { return s.path }

// Get returns the preferences, loading them if needed. A missing file
// yields empty preferences.
func (s *Store) Get() (Prefs, error) {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.prefs, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.prefs, nil
	}
	return s.prefs, s.loadLocked()
}

// Modify applies fn to the preferences and marks them dirty. The change
// is discarded if fn fails.
func (s *Store) Modify(fn func(*Prefs) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		if err := s.loadLocked(); err != nil {
			return err
		}
	}

	p := s.prefs
	if err := fn(&p); err != nil {
		return err
	}
	s.prefs = p
	s.dirty = true
	return nil
}

// Save writes the preferences if they were modified.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}
	return s.saveLocked()
}

// Update is Modify plus Save under a file lock, re-reading the file first
// so that concurrent vizex processes do not overwrite each other.
func (s *Store) Update(fn func(*Prefs) error) error {
	unlock, err := lockFile(s.path, lockWait)
	if err != nil {
		return err
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return err
	}
	p := s.prefs
	if err := fn(&p); err != nil {
		return err
	}
	s.prefs = p
	return s.saveLocked()
}

// Reset removes the preferences file, restoring the defaults.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove preferences: %w", err)
	}
	s.prefs = Prefs{}
	s.loaded = true
	s.dirty = false
	return nil
}

// IsDirty reports whether there are unsaved changes.
func (s *Store) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// loadLocked must be called with the write lock held.
func (s *Store) loadLocked() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.prefs = Prefs{}
			s.loaded = true
			return nil
		}
		return fmt.Errorf("failed to read preferences: %w", err)
	}

	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return &common.ConfigError{Field: "preferences file", Value: s.path, Reason: err.Error()}
	}
	s.prefs = p
	s.loaded = true
	s.dirty = false
	slog.Debug("Loaded preferences", "path", s.path)
	return nil
}

// saveLocked writes atomically: temp file, then rename.
// Must be called with the write lock held.
func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempFile := s.path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempFile, s.path); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	s.dirty = false
	slog.Info("Saved preferences", "path", s.path)
	return nil
}
