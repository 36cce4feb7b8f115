package core

import (
	"sort"
	"sync"

	"github.com/dkeye/CodeRelay/internal/domain"
	"github.com/rs/zerolog/log"
)

type group struct {
	order []ConnID
	index map[ConnID]struct{}
}

// Groups is a threadsafe in-memory RoomDirectory.
// It never touches transport resources.
type Groups struct {
	mu     sync.RWMutex
	rooms  map[domain.RoomID]*group
	byConn map[ConnID][]domain.RoomID
}

func NewGroups() *Groups {
	return &Groups{
		rooms:  make(map[domain.RoomID]*group),
		byConn: make(map[ConnID][]domain.RoomID),
	}
}

func (g *Groups) Join(conn ConnID, room domain.RoomID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	grp, ok := g.rooms[room]
	if !ok {
		grp = &group{index: make(map[ConnID]struct{})}
		g.rooms[room] = grp
	}
	if _, ok := grp.index[conn]; ok {
		return
	}
	grp.index[conn] = struct{}{}
	grp.order = append(grp.order, conn)
	g.byConn[conn] = append(g.byConn[conn], room)
	log.Debug().Str("module", "core.groups").Str("conn", string(conn)).Str("room", string(room)).Int("members", len(grp.order)).Msg("subscribed")
}

func (g *Groups) MembersOf(room domain.RoomID) []ConnID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	grp, ok := g.rooms[room]
	if !ok {
		return []ConnID{}
	}
	out := make([]ConnID, len(grp.order))
	copy(out, grp.order)
	return out
}

func (g *Groups) RoomsOf(conn ConnID) []domain.RoomID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	rooms := g.byConn[conn]
	out := make([]domain.RoomID, len(rooms))
	copy(out, rooms)
	return out
}

func (g *Groups) Drop(conn ConnID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, room := range g.byConn[conn] {
		grp, ok := g.rooms[room]
		if !ok {
			continue
		}
		delete(grp.index, conn)
		for i, c := range grp.order {
			if c == conn {
				grp.order = append(grp.order[:i], grp.order[i+1:]...)
				break
			}
		}
		if len(grp.order) == 0 {
			delete(g.rooms, room)
		}
	}
	delete(g.byConn, conn)
	log.Debug().Str("module", "core.groups").Str("conn", string(conn)).Msg("dropped from all rooms")
}

// Rooms lists non-empty rooms sorted by name.
func (g *Groups) Rooms() []domain.RoomInfo {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]domain.RoomInfo, 0, len(g.rooms))
	for name, grp := range g.rooms {
		out = append(out, domain.RoomInfo{Name: name, MemberCount: len(grp.order)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
