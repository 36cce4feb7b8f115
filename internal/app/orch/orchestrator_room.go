package orch

import (
	"github.com/dkeye/CodeRelay/internal/core"
	"github.com/dkeye/CodeRelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Join names the connection, subscribes it to room and sends the fresh
// snapshot to every member, the joiner included. Repeated joins re-broadcast.
func (o *Orchestrator) Join(id core.ConnID, room domain.RoomID, username string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Registry.State(id) == core.StateDisconnected {
		return ErrNotConnected
	}

	o.Registry.SetName(id, username)
	o.Rooms.Join(id, room)

	clients := o.snapshot(room)
	frame := encode(domain.Joined{
		Type:     domain.TypeJoined,
		Clients:  clients,
		Username: username,
		ConnID:   id,
	})
	members := make([]core.ConnID, len(clients))
	for i, c := range clients {
		members[i] = c.ConnID
	}
	sent := o.sendTo(room, members, "", frame)
	log.Info().Str("module", "orch").Str("conn", string(id)).Str("username", username).Str("room", string(room)).Int("members", len(clients)).Int("sent", sent).Msg("joined")
	return nil
}

// Disconnect notifies the other members of every room the connection was in,
// then tears down its subscriptions and registry entry. The whole sequence is
// one critical section, and a second call is a no-op.
func (o *Orchestrator) Disconnect(id core.ConnID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Registry.State(id) == core.StateDisconnected {
		return
	}
	o.notifyDisconnecting(id)
	o.Rooms.Drop(id)
	o.Registry.Remove(id)
	log.Info().Str("module", "orch").Str("conn", string(id)).Msg("disconnected")
}

func (o *Orchestrator) notifyDisconnecting(id core.ConnID) {
	rooms := o.Rooms.RoomsOf(id)
	if len(rooms) == 0 {
		return
	}
	name, _ := o.Registry.Name(id)
	frame := encode(domain.Disconnected{
		Type:     domain.TypeDisconnected,
		ConnID:   id,
		Username: name,
	})
	for _, room := range rooms {
		sent := o.sendTo(room, o.Rooms.MembersOf(room), id, frame)
		log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(room)).Int("sent", sent).Msg("leaving room")
	}
}
