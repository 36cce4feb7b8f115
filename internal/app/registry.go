package app

import (
	"context"
	"sync"

	"github.com/dkeye/CodeRelay/internal/core"
	"github.com/rs/zerolog/log"
)

type connEntry struct {
	Name   string
	Named  bool
	State  core.SessionState
	Conn   core.SignalConnection
	Cancel context.CancelFunc
}

// Registry maps live connections to their display name and transport endpoint.
type Registry struct {
	mu    sync.RWMutex
	conns map[core.ConnID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[core.ConnID]*connEntry)}
}

// Bind registers a freshly upgraded connection in the Connected state.
func (r *Registry) Bind(id core.ConnID, conn core.SignalConnection, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = &connEntry{State: core.StateConnected, Conn: conn, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("bound connection")
}

// SetName attaches a display name and moves the connection to Joined.
// Names for unbound ids are still recorded so lookups stay consistent.
func (r *Registry) SetName(id core.ConnID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[id]
	if !ok {
		e = &connEntry{}
		r.conns[id] = e
	}
	e.Name = name
	e.Named = true
	e.State = core.StateJoined
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Str("username", name).Msg("set name")
}

func (r *Registry) Name(id core.ConnID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok || !e.Named {
		return "", false
	}
	return e.Name, true
}

func (r *Registry) Conn(id core.ConnID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok || e.Conn == nil {
		return nil, false
	}
	return e.Conn, true
}

func (r *Registry) State(id core.ConnID) core.SessionState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.conns[id]; ok {
		return e.State
	}
	return core.StateDisconnected
}

func (r *Registry) Remove(id core.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[id]; !ok {
		return
	}
	delete(r.conns, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("removed connection")
}

// Cancel cancels the connection-scoped context. It reports false for unknown ids.
func (r *Registry) Cancel(id core.ConnID) bool {
	r.mu.RLock()
	e, ok := r.conns[id]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("canceled connection")
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
