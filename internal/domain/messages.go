package domain

// Message types carried in the "type" field of every frame.
const (
	TypeJoin         = "join"
	TypeJoined       = "joined"
	TypeCodeChange   = "code-change"
	TypeSyncCode     = "sync-code"
	TypeDisconnected = "disconnected"
	TypePing         = "ping"
	TypePong         = "pong"
	TypeError        = "error"
)

type JoinRequest struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type CodeChangeRequest struct {
	RoomID string `json:"roomId"`
	Code   string `json:"code"`
}

type SyncCodeRequest struct {
	TargetConnID ConnID `json:"targetConnId"`
	Code         string `json:"code"`
}

type Joined struct {
	Type     string   `json:"type"`
	Clients  []Client `json:"clients"`
	Username string   `json:"username"`
	ConnID   ConnID   `json:"connId"`
}

type CodeChange struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

type Disconnected struct {
	Type     string `json:"type"`
	ConnID   ConnID `json:"connId"`
	Username string `json:"username"`
}

type Error struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
