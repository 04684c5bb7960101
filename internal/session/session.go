// Package session gives every browser its own search.Controller, identified
// by a cookie and kept in a bounded LRU.
package session

import (
	"net/http"
	"time"

	"github.com/Xunop/gutenbrowse/internal/log"
	"github.com/Xunop/gutenbrowse/internal/search"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	CookieName   = "gutenbrowse_session"
	cookieMaxAge = 7 * 24 * time.Hour
)

// Manager maps session IDs to controllers. The least recently used session
// is evicted when the cache is full; its next request simply starts idle.
type Manager struct {
	cache   *lru.Cache[string, *search.Controller]
	fetcher search.Fetcher
}

func NewManager(size int, fetcher search.Fetcher) (*Manager, error) {
	cache, err := lru.NewWithEvict(size, func(id string, _ *search.Controller) {
		log.Debug("Session evicted", zap.String("session_id", id))
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to create session cache")
	}
	return &Manager{cache: cache, fetcher: fetcher}, nil
}

// Controller returns the controller for the request's session, creating the
// session and setting its cookie when needed.
func (m *Manager) Controller(w http.ResponseWriter, r *http.Request) *search.Controller {
	if cookie, err := r.Cookie(CookieName); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			if c, ok := m.cache.Get(cookie.Value); ok {
				return c
			}
			c := search.NewController(m.fetcher)
			m.cache.Add(cookie.Value, c)
			return c
		}
	}

	id := uuid.NewString()
	c := search.NewController(m.fetcher)
	m.cache.Add(id, c)
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	log.Debug("Session created", zap.String("session_id", id))
	return c
}

// Peek returns the controller for the request's session without creating one.
func (m *Manager) Peek(r *http.Request) (*search.Controller, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, false
	}
	return m.cache.Get(cookie.Value)
}

func (m *Manager) Len() int {
	return m.cache.Len()
}
