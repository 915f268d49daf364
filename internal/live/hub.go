package live

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/Zachkp/live-portfolio/internal/content"
)

// ErrHubFull is returned when the session limit is reached.
var ErrHubFull = errors.New("live: too many sessions")

// Hub tracks the open sessions of a server.
type Hub struct {
	portfolio *content.Portfolio
	opts      Options
	limit     int

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewHub creates a hub serving p. A non-positive limit means no limit.
func NewHub(p *content.Portfolio, opts Options, limit int) *Hub {
	return &Hub{
		portfolio: p,
		opts:      opts,
		limit:     limit,
		sessions:  make(map[string]*Session),
	}
}

// Open creates and registers a new session. The caller runs it. A full hub
// refuses before any session is built; a slot that fills while building is
// refused at registration.
func (h *Hub) Open() (*Session, error) {
	if h.full() {
		return nil, ErrHubFull
	}
	id, err := newSessionID()
	if err != nil {
		return nil, err
	}
	s, err := NewSession(id, h.portfolio, h.opts)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.limit > 0 && len(h.sessions) >= h.limit {
		return nil, ErrHubFull
	}
	h.sessions[id] = s
	return s, nil
}

func (h *Hub) full() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.limit > 0 && len(h.sessions) >= h.limit
}

// Get returns a registered session.
func (h *Hub) Get(id string) (*Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.sessions[id]
	return s, ok
}

// Remove forgets a session. The session's own Run is responsible for
// unmounting.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, id)
}

// Len returns the number of registered sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
