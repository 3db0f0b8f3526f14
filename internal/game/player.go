package game

import (
	"fmt"

	"github.com/bryans04/rps-arena/internal/protocol"
)

// Conn is the transport boundary: an already-framed, ordered connection to
// one client. Send failure is the disconnect signal; the orchestrator never
// does its own I/O framing.
type Conn interface {
	ID() int64
	Send(p protocol.Payload) error
	Close()
}

// Player is the per-connection participant record. All fields are guarded
// by the owning room's mutex; the record survives room moves and is reset,
// not recreated, between sessions.
type Player struct {
	id   int64
	name string
	conn Conn

	ready      bool
	spectator  bool
	away       bool
	eliminated bool
	tookTurn   bool
	choice     string
	prevChoice string
	points     int
}

func NewPlayer(conn Conn, name string) *Player {
	return &Player{id: conn.ID(), name: name, conn: conn}
}

func (p *Player) ID() int64    { return p.id }
func (p *Player) Name() string { return p.name }

func (p *Player) DisplayName() string {
	return fmt.Sprintf("%s#%d", p.name, p.id)
}

// eligible reports whether the player takes part in round resolution and
// turn order: ready, not a spectator, not eliminated, not away.
func (p *Player) eligible() bool {
	return p.ready && !p.spectator && !p.eliminated && !p.away
}

// resetSession clears everything that belongs to a single session. Name and
// connection survive.
func (p *Player) resetSession() {
	p.ready = false
	p.spectator = false
	p.eliminated = false
	p.tookTurn = false
	p.choice = ""
	p.prevChoice = ""
	p.points = 0
}

// send reports success; a false return means the connection is gone and the
// caller should evict the player.
func (p *Player) send(pl protocol.Payload) bool {
	return p.conn.Send(pl) == nil
}
