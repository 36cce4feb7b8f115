// Package orch coordinates room membership and notification fan-out.
package orch

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/dkeye/CodeRelay/internal/app"
	"github.com/dkeye/CodeRelay/internal/core"
	"github.com/dkeye/CodeRelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// ErrNotConnected is returned for events from a connection that is not bound
// or has already disconnected.
var ErrNotConnected = errors.New("connection not registered")

// Orchestrator is the session coordinator. Every mutation of the registry and
// the room directory, and every fan-out, happens under mu.
type Orchestrator struct {
	mu sync.Mutex

	Registry *app.Registry
	Rooms    core.RoomDirectory
	Policy   app.Policy
}

func New(reg *app.Registry, rooms core.RoomDirectory, policy app.Policy) *Orchestrator {
	return &Orchestrator{Registry: reg, Rooms: rooms, Policy: policy}
}

// Connect binds a new transport endpoint. The connection starts unnamed.
func (o *Orchestrator) Connect(id core.ConnID, conn core.SignalConnection, cancel func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Registry.Bind(id, conn, cancel)
}

// Members returns the current membership snapshot of a room.
func (o *Orchestrator) Members(room domain.RoomID) []domain.Client {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshot(room)
}

func (o *Orchestrator) RoomList() []domain.RoomInfo {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Rooms.Rooms()
}

func (o *Orchestrator) Connections() int {
	return o.Registry.Len()
}

// snapshot must be called with mu held.
func (o *Orchestrator) snapshot(room domain.RoomID) []domain.Client {
	ids := o.Rooms.MembersOf(room)
	out := make([]domain.Client, 0, len(ids))
	for _, id := range ids {
		name, _ := o.Registry.Name(id)
		out = append(out, domain.Client{ConnID: id, Username: name})
	}
	return out
}

// sendTo enqueues one frame per recipient, skipping except. Must be called with mu held.
func (o *Orchestrator) sendTo(room domain.RoomID, recipients []core.ConnID, except core.ConnID, f core.Frame) int {
	sent := 0
	for _, id := range recipients {
		if id == except {
			continue
		}
		if o.deliver(room, id, f) {
			sent++
		}
	}
	return sent
}

func (o *Orchestrator) deliver(room domain.RoomID, id core.ConnID, f core.Frame) bool {
	conn, ok := o.Registry.Conn(id)
	if !ok {
		log.Warn().Str("module", "orch").Str("conn", string(id)).Msg("deliver: no connection")
		return false
	}
	err := conn.TrySend(f)
	if err == nil {
		return true
	}
	if !errors.Is(err, core.ErrBackpressure) {
		log.Debug().Err(err).Str("module", "orch").Str("conn", string(id)).Msg("deliver failed")
		return false
	}
	action := app.DropFrame
	if o.Policy != nil {
		action = o.Policy.OnBackPressure(room, id)
	}
	switch action {
	case app.KickMember:
		log.Warn().Str("module", "orch").Str("conn", string(id)).Str("room", string(room)).Msg("slow member, kicking")
		o.Registry.Cancel(id)
		conn.Close()
	case app.DropFrame, app.NoAction:
		log.Warn().Str("module", "orch").Str("conn", string(id)).Str("room", string(room)).Msg("slow member, frame dropped")
	}
	return false
}

func encode(v any) core.Frame {
	b, err := json.Marshal(v)
	if err != nil {
		// every payload is a plain struct of strings
		log.Error().Err(err).Str("module", "orch").Msg("encode")
		return nil
	}
	return b
}
