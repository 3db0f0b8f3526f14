package game

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bryans04/rps-arena/internal/protocol"
)

// LobbyName is the default room every connection starts in. The lobby is
// never torn down.
const LobbyName = "lobby"

// Registry owns the room map and the connection-to-room assignment. It is
// the explicit replacement for a process-wide server singleton: handlers
// and dispatch receive it as a dependency. Lock ordering is registry mutex
// first, room mutex second; rooms never call back into the registry.
type Registry struct {
	mu  sync.Mutex
	log zerolog.Logger
	cfg RoomConfig

	rooms    map[string]*Room
	players  map[int64]*Player
	byClient map[int64]*Room
}

func NewRegistry(cfg RoomConfig, log zerolog.Logger) *Registry {
	g := &Registry{
		log:      log,
		cfg:      cfg,
		rooms:    make(map[string]*Room),
		players:  make(map[int64]*Player),
		byClient: make(map[int64]*Room),
	}
	g.rooms[LobbyName] = NewRoom(LobbyName, cfg, log)
	return g
}

// Connect registers a new connection, assigns it a display name when none
// was provided, sends the client its id and places it in the lobby.
func (g *Registry) Connect(conn Conn, name string) *Player {
	if strings.TrimSpace(name) == "" {
		name = "guest-" + uuid.NewString()[:8]
	}
	p := NewPlayer(conn, name)

	g.mu.Lock()
	g.players[p.ID()] = p
	lobby := g.rooms[LobbyName]
	g.byClient[p.ID()] = lobby
	g.mu.Unlock()

	p.send(protocol.Payload{Type: protocol.PayloadClientID, ClientID: p.ID(), Name: name})
	lobby.AddClient(p)
	g.log.Info().Int64("client", p.ID()).Str("name", name).Msg("client connected")
	return p
}

// Disconnect removes a connection from its room and forgets it. Calling it
// for an unknown id is a no-op, so the eviction path and the read-loop
// teardown can both run it.
func (g *Registry) Disconnect(id int64) {
	g.mu.Lock()
	p := g.players[id]
	room := g.byClient[id]
	delete(g.players, id)
	delete(g.byClient, id)
	if room != nil {
		room.RemoveClient(id)
		g.removeIfEmpty(room)
	}
	g.mu.Unlock()

	if p == nil {
		return
	}
	p.conn.Close()
	g.log.Info().Int64("client", id).Msg("client disconnected")
}

// Create makes a new named room and moves the creator into it.
func (g *Registry) Create(id int64, roomName string) error {
	key, err := roomKey(roomName)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.rooms[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRoom, key)
	}
	g.rooms[key] = NewRoom(key, g.cfg, g.log)
	return g.moveLocked(id, key)
}

// Join moves a client into the named room, creating the room when it is
// first referenced.
func (g *Registry) Join(id int64, roomName string) error {
	key, err := roomKey(roomName)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.rooms[key]; !exists {
		g.rooms[key] = NewRoom(key, g.cfg, g.log)
	}
	return g.moveLocked(id, key)
}

// Leave returns a client to the lobby.
func (g *Registry) Leave(id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.moveLocked(id, LobbyName)
}

func (g *Registry) moveLocked(id int64, key string) error {
	p, ok := g.players[id]
	if !ok {
		return ErrNotInRoom
	}
	target := g.rooms[key]
	if target == nil {
		return ErrRoomNotFound
	}
	old := g.byClient[id]
	if old == target {
		return nil
	}
	if old != nil {
		old.RemoveClient(id)
		g.removeIfEmpty(old)
	}
	g.byClient[id] = target
	target.AddClient(p)
	return nil
}

// removeIfEmpty tears down an empty non-lobby room. Called with g.mu held,
// which keeps the emptiness check and the delete atomic: members are only
// ever added under the registry lock.
func (g *Registry) removeIfEmpty(room *Room) {
	if room.Name() == LobbyName {
		return
	}
	if !room.Empty() {
		return
	}
	delete(g.rooms, room.Name())
	room.Shutdown()
	g.log.Info().Str("room", room.Name()).Msg("room removed")
}

// RoomOf returns the room a client currently belongs to, or nil.
func (g *Registry) RoomOf(id int64) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.byClient[id]
}

// List returns room names containing the query, sorted.
func (g *Registry) List(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, 0, len(g.rooms))
	for name := range g.rooms {
		if query == "" || strings.Contains(name, query) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func roomKey(name string) (string, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return "", ErrRoomNotFound
	}
	return key, nil
}
