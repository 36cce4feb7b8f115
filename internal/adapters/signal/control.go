package signal

import "github.com/dkeye/CodeRelay/internal/domain"

func (ctl *SignalWSController) handlePing(
	conn *WsSignalConn,
) {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: domain.TypePong,
	}
	ctl.sendJSON(conn, resp)
}
