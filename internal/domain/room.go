package domain

type RoomID string

func ParseRoomID(raw string) (RoomID, error) {
	if len(raw) == 0 {
		return "", ErrRoomEmpty
	}
	if len(raw) > MaxRoomIDLen {
		return "", ErrRoomTooLong
	}
	return RoomID(raw), nil
}

// RoomInfo is a read-only view for APIs.
type RoomInfo struct {
	Name        RoomID `json:"name"`
	MemberCount int    `json:"client_count"`
}
