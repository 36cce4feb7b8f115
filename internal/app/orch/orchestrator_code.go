package orch

import (
	"github.com/dkeye/CodeRelay/internal/core"
	"github.com/dkeye/CodeRelay/internal/domain"
	"github.com/rs/zerolog/log"
)

// CodeChange relays code to every other member of room. The sender is never
// echoed, and an empty room is a no-op.
func (o *Orchestrator) CodeChange(from core.ConnID, room domain.RoomID, code string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Registry.State(from) == core.StateDisconnected {
		return ErrNotConnected
	}
	frame := encode(domain.CodeChange{Type: domain.TypeCodeChange, Code: code})
	sent := o.sendTo(room, o.Rooms.MembersOf(room), from, frame)
	log.Debug().Str("module", "orch").Str("from", string(from)).Str("room", string(room)).Int("sent", sent).Msg("code change")
	return nil
}

// SyncCode unicasts code to target as a code-change. Room membership is not checked.
func (o *Orchestrator) SyncCode(from, target core.ConnID, code string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.Registry.State(from) == core.StateDisconnected {
		return ErrNotConnected
	}
	frame := encode(domain.CodeChange{Type: domain.TypeCodeChange, Code: code})
	ok := o.deliver("", target, frame)
	log.Debug().Str("module", "orch").Str("from", string(from)).Str("target", string(target)).Bool("sent", ok).Msg("sync code")
	return nil
}
