package state

import (
	"sync"

	"github.com/google/uuid"

	"github.com/openfoodshare/foodgate/internal/gateway"
)

// Session holds per-session gateway state.
type Session struct {
	ID      string
	Gateway *gateway.Gateway
}

var (
	sessions = make(map[string]*Session)
	mu       sync.RWMutex
)

// GetOrCreateSession returns the session for id, creating it against gw
// when absent. An empty id gets a generated one.
func GetOrCreateSession(id string, gw *gateway.Gateway) *Session {
	mu.RLock()
	if s, ok := sessions[id]; ok {
		mu.RUnlock()
		return s
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	if s, ok := sessions[id]; ok {
		return s
	}

	if id == "" {
		id = uuid.New().String()
	}
	s := &Session{ID: id, Gateway: gw}
	sessions[id] = s
	return s
}

// GetSession returns the session for id, or nil.
func GetSession(id string) *Session {
	mu.RLock()
	defer mu.RUnlock()
	return sessions[id]
}

// CloseSession drops the session. Connections are per-operation, so there
// is nothing store-side to release.
func CloseSession(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(sessions, id)
}
