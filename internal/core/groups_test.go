package core

import (
	"sync"
	"testing"

	"github.com/dkeye/CodeRelay/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestGroupsMembersOfUnknownRoomIsEmpty(t *testing.T) {
	g := NewGroups()
	members := g.MembersOf("nope")
	assert.NotNil(t, members)
	assert.Empty(t, members)
	assert.Empty(t, g.RoomsOf("nobody"))
}

func TestGroupsJoinKeepsSubscriptionOrder(t *testing.T) {
	g := NewGroups()
	g.Join("a", "abc")
	g.Join("b", "abc")
	g.Join("c", "abc")

	assert.Equal(t, []ConnID{"a", "b", "c"}, g.MembersOf("abc"))
}

func TestGroupsJoinIsIdempotent(t *testing.T) {
	g := NewGroups()
	g.Join("a", "abc")
	g.Join("b", "abc")
	g.Join("a", "abc")

	assert.Equal(t, []ConnID{"a", "b"}, g.MembersOf("abc"))
	assert.Equal(t, []domain.RoomID{"abc"}, g.RoomsOf("a"))
}

func TestGroupsRoomsOfTracksJoinOrder(t *testing.T) {
	g := NewGroups()
	g.Join("a", "r2")
	g.Join("a", "r1")

	assert.Equal(t, []domain.RoomID{"r2", "r1"}, g.RoomsOf("a"))
}

func TestGroupsDropRemovesFromEveryRoom(t *testing.T) {
	g := NewGroups()
	g.Join("a", "r1")
	g.Join("a", "r2")
	g.Join("b", "r1")

	g.Drop("a")

	assert.Equal(t, []ConnID{"b"}, g.MembersOf("r1"))
	assert.Empty(t, g.MembersOf("r2"))
	assert.Empty(t, g.RoomsOf("a"))
	assert.Equal(t, []domain.RoomInfo{{Name: "r1", MemberCount: 1}}, g.Rooms())

	// second drop is a no-op
	g.Drop("a")
	assert.Equal(t, []ConnID{"b"}, g.MembersOf("r1"))
}

func TestGroupsReturnsCopies(t *testing.T) {
	g := NewGroups()
	g.Join("a", "r1")
	members := g.MembersOf("r1")
	members[0] = "mutated"
	assert.Equal(t, []ConnID{"a"}, g.MembersOf("r1"))
}

func TestGroupsConcurrentJoinAndDrop(t *testing.T) {
	g := NewGroups()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id ConnID) {
			defer wg.Done()
			g.Join(id, "room")
			_ = g.MembersOf("room")
			g.Drop(id)
		}(ConnID(string(rune('A' + i))))
	}
	wg.Wait()
	assert.Empty(t, g.MembersOf("room"))
	assert.Empty(t, g.Rooms())
}
