package core

import (
	"github.com/dkeye/CodeRelay/internal/domain"
)

// RoomDirectory is the group-membership primitive of the transport.
// Room membership is derived from it on every query and never cached elsewhere.
type RoomDirectory interface {
	// Join subscribes conn to room. Joining twice keeps the original position.
	Join(conn ConnID, room domain.RoomID)
	// MembersOf returns subscribers in subscription order; empty for unknown rooms.
	MembersOf(room domain.RoomID) []ConnID
	// RoomsOf returns the rooms conn belongs to in the order it joined them.
	RoomsOf(conn ConnID) []domain.RoomID
	// Drop removes conn from every room. This is transport teardown.
	Drop(conn ConnID)
	Rooms() []domain.RoomInfo
}
