package session

import (
	"sync"
	"time"
)

// Manager hands out one Controller per session and evicts controllers whose
// sessions have gone quiet. Debounce state never crosses sessions.
type Manager struct {
	pipeline Pipeline
	debounce time.Duration
	timeout  time.Duration
	ttl      time.Duration

	mu          sync.Mutex
	controllers map[string]*Controller
}

// NewManager creates a session manager.
func NewManager(pipeline Pipeline, debounce, timeout, ttl time.Duration) *Manager {
	m := &Manager{
		pipeline:    pipeline,
		debounce:    debounce,
		timeout:     timeout,
		ttl:         ttl,
		controllers: make(map[string]*Controller),
	}

	go m.cleanup()

	return m
}

// Get returns the controller for a session, creating it on first use.
func (m *Manager) Get(sessionID string) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.controllers[sessionID]
	if !ok {
		c = NewController(m.pipeline, m.debounce, m.timeout)
		m.controllers[sessionID] = c
	}
	return c
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.controllers)
}

// cleanup evicts idle sessions periodically.
func (m *Manager) cleanup() {
	ticker := time.NewTicker(m.ttl)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()
		for id, c := range m.controllers {
			if now.Sub(c.IdleSince()) >= m.ttl {
				delete(m.controllers, id)
			}
		}
		m.mu.Unlock()
	}
}
