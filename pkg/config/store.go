package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Well-known keys read by the controller layer.
const (
	KeyEnvironment     = "app.env"
	KeyThemeName       = "theme.name"
	KeyThemeLayoutPath = "theme.layoutPath"
	KeyMeta            = "meta"
)

// EnvProduction is the environment name that hides exception details
// from rendered error pages.
const EnvProduction = "prod"

// Cloner is implemented by values that must be deep-copied when a Store is cloned.
type Cloner interface {
	CloneValue() any
}

// Store is a concurrency-safe key/value configuration store.
//
// An application keeps one Store built at startup and hands each request
// its own Clone, so writes made while serving a request (page metadata,
// theme overrides) stay private to that request.
type Store struct {
	values map[string]any
	mu     sync.RWMutex
}

// New creates an empty Store.
func New() *Store {
	return &Store{values: make(map[string]any)}
}

// FromMap creates a Store holding a copy of values.
func FromMap(values map[string]any) *Store {
	s := New()
	maps.Copy(s.values, values)
	return s
}

// Get returns the value stored under key.
// Returns ErrKeyNotFound if the key was never added.
func (s *Store) Get(key string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return v, nil
}

// Add inserts or overwrites the value stored under key.
func (s *Store) Add(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

// Delete removes key from the store.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Keys returns all keys in lexical order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.values))
}

// Clone returns an independent copy of the store.
// Values implementing Cloner are deep-copied; everything else is copied by value.
func (s *Store) Clone() *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := &Store{values: make(map[string]any, len(s.values))}
	for k, v := range s.values {
		if cl, ok := v.(Cloner); ok {
			v = cl.CloneValue()
		}
		c.values[k] = v
	}
	return c
}

// Merge copies every entry of other into s, overwriting existing keys.
func (s *Store) Merge(other *Store) {
	if other == nil || other == s {
		return
	}
	src := other.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	maps.Copy(s.values, src.values)
}

// Value returns the value under key converted to T.
func Value[T any](s *Store, key string) (T, error) {
	var zero T

	v, err := s.Get(key)
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s holds %T", ErrTypeMismatch, key, v)
	}
	return typed, nil
}

// ValueOr returns the value under key, or def when the key is missing
// or holds a value of another type.
func ValueOr[T any](s *Store, key string, def T) T {
	v, err := Value[T](s, key)
	if err != nil {
		return def
	}
	return v
}

// String returns the string stored under key.
func String(s *Store, key string) (string, error) {
	return Value[string](s, key)
}

// IsNotFound reports whether err signals a missing key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}
