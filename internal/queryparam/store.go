// Package queryparam keeps the filter state in URL query parameters, the only
// representation that survives a reload, and converts it to the query string
// the Gutendex API expects.
package queryparam

import (
	"net/url"
	"sync"
)

// Store is a key/value view of the address bar's query parameters.
//
// Setting a key to the empty string removes it, so a present key is always
// meaningful.
type Store interface {
	// Get returns the value for key, or "" when the key is absent.
	Get(key string) string
	Has(key string) bool
	Set(key, value string)
	Remove(key string)
	// Encode returns the parameters as a query string without the leading "?".
	Encode() string
}

// URLStore writes through to a *url.URL. Every write replaces u.RawQuery in
// place, it never produces a second URL.
type URLStore struct {
	u *url.URL
}

var _ Store = (*URLStore)(nil)

// FromURL wraps u. Writes modify u.
func FromURL(u *url.URL) *URLStore {
	return &URLStore{u: u}
}

func (s *URLStore) Get(key string) string {
	return s.u.Query().Get(key)
}

func (s *URLStore) Has(key string) bool {
	return s.u.Query().Has(key)
}

func (s *URLStore) Set(key, value string) {
	q := s.u.Query()
	setOrDelete(q, key, value)
	s.u.RawQuery = q.Encode()
}

func (s *URLStore) Remove(key string) {
	q := s.u.Query()
	q.Del(key)
	s.u.RawQuery = q.Encode()
}

func (s *URLStore) Encode() string {
	return s.u.RawQuery
}

// URL returns the wrapped URL.
func (s *URLStore) URL() *url.URL {
	return s.u
}

// MemoryStore is an in-memory Store, used by the terminal mode and in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values url.Values
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: url.Values{}}
}

// ParseMemoryStore builds a MemoryStore from a raw query string, dropping empty values.
func ParseMemoryStore(rawQuery string) (*MemoryStore, error) {
	parsed, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, err
	}
	s := NewMemoryStore()
	for key := range parsed {
		s.Set(key, parsed.Get(key))
	}
	return s, nil
}

func (s *MemoryStore) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Get(key)
}

func (s *MemoryStore) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Has(key)
}

func (s *MemoryStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	setOrDelete(s.values, key, value)
}

func (s *MemoryStore) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values.Del(key)
}

func (s *MemoryStore) Encode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Encode()
}

func setOrDelete(q url.Values, key, value string) {
	if value == "" {
		q.Del(key)
		return
	}
	q.Set(key, value)
}
