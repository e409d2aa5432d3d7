// File: internal/services/reconcile/manager.go
package reconcile

import (
	"context"
	"sync"
)

// Manager runs at most one reconciler per checkout session and serves its
// state to polling clients. Close cancels every in-flight run; a torn-down
// server must not leave timers refreshing stale sessions.
type Manager struct {
	reconciler *Reconciler

	mu       sync.RWMutex
	sessions map[string]*session
	closed   bool
}

type session struct {
	state  State
	cancel context.CancelFunc
}

func NewManager(reconciler *Reconciler) *Manager {
	return &Manager{
		reconciler: reconciler,
		sessions:   make(map[string]*session),
	}
}

// Start launches reconciliation for a checkout session. Idempotent: a second
// redirect with the same session id does not spawn a second poller.
func (m *Manager) Start(sessionID string, userID uint) {
	if sessionID == "" {
		return
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	if _, exists := m.sessions[sessionID]; exists {
		m.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{state: StatePolling, cancel: cancel}
	m.sessions[sessionID] = s
	m.mu.Unlock()

	go func() {
		defer cancel()
		final := m.reconciler.Run(ctx, userID)
		m.mu.Lock()
		s.state = final
		m.mu.Unlock()
	}()
}

// State reports the session's reconciliation state.
func (m *Manager) State(sessionID string) (State, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return "", false
	}
	return s.state, true
}

// Close cancels all in-flight reconciliations.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for _, s := range m.sessions {
		s.cancel()
	}
}
