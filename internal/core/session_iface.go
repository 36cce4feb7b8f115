package core

import "github.com/dkeye/CodeRelay/internal/domain"

type ConnID = domain.ConnID

// SessionState is the lifecycle position of a connection.
type SessionState int

const (
	StateDisconnected SessionState = iota
	StateConnected
	StateJoined
)

func (s SessionState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateJoined:
		return "joined"
	default:
		return "disconnected"
	}
}
