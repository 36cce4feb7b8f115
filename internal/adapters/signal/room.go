package signal

import (
	"errors"

	"github.com/dkeye/CodeRelay/internal/core"
	"github.com/dkeye/CodeRelay/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleJoin(id core.ConnID, data []byte) error {
	var p domain.JoinRequest
	if err := decode(data, &p, "join"); err != nil {
		return err
	}
	room, err := domain.ParseRoomID(p.RoomID)
	if err != nil {
		return err
	}
	name, err := domain.ParseUsername(p.Username)
	if err != nil {
		return err
	}
	log.Info().Str("module", "signal").Str("conn", string(id)).Str("room", string(room)).Str("username", name).Msg("join")
	return ctl.Orch.Join(id, room, name)
}

func (ctl *SignalWSController) handleCodeChange(id core.ConnID, data []byte) error {
	var p domain.CodeChangeRequest
	if err := decode(data, &p, "code-change"); err != nil {
		return err
	}
	room, err := domain.ParseRoomID(p.RoomID)
	if err != nil {
		return err
	}
	return ctl.Orch.CodeChange(id, room, p.Code)
}

var errMissingTarget = errors.New("missing targetConnId")

func (ctl *SignalWSController) handleSyncCode(id core.ConnID, data []byte) error {
	var p domain.SyncCodeRequest
	if err := decode(data, &p, "sync-code"); err != nil {
		return err
	}
	if p.TargetConnID == "" {
		return errMissingTarget
	}
	return ctl.Orch.SyncCode(id, p.TargetConnID, p.Code)
}
