package game

import (
	"errors"
	"fmt"

	"github.com/bryans04/rps-arena/internal/protocol"
)

// Dispatch routes a decoded inbound payload to the matching registry or
// room operation. The kind set is closed; unknown kinds are logged and
// dropped. Rejections are reported only to the sender, never as a broadcast.
func (g *Registry) Dispatch(p *Player, pl protocol.Payload) {
	switch pl.Type {
	case protocol.PayloadConnect:
		// name is bound during the handshake; a repeat connect is noise

	case protocol.PayloadRoomCreate:
		if err := g.Create(p.ID(), pl.Name); err != nil {
			g.reject(p, err)
		}
	case protocol.PayloadRoomJoin:
		if err := g.Join(p.ID(), pl.Name); err != nil {
			g.reject(p, err)
		}
	case protocol.PayloadRoomLeave:
		if err := g.Leave(p.ID()); err != nil {
			g.reject(p, err)
		}
	case protocol.PayloadRoomList:
		p.send(protocol.Payload{Type: protocol.PayloadRoomList, Rooms: g.List(pl.Name)})

	case protocol.PayloadMessage:
		g.withRoom(p, func(r *Room) { r.HandleMessage(p.ID(), pl.Message) })
	case protocol.PayloadReady:
		g.withRoom(p, func(r *Room) { r.SetReady(p.ID()) })
	case protocol.PayloadTurnAction:
		g.withRoom(p, func(r *Room) { r.HandleTurn(p.ID()) })
	case protocol.PayloadPlayerPick:
		g.withRoom(p, func(r *Room) { r.HandlePick(p.ID(), pl.Choice) })
	case protocol.PayloadGameMode:
		g.withRoom(p, func(r *Room) { r.SetGameMode(p.ID(), pl.GameMode, pl.Cooldown) })
	case protocol.PayloadAway:
		g.withRoom(p, func(r *Room) { r.SetAway(p.ID(), pl.Flag) })

	default:
		g.log.Warn().Str("type", string(pl.Type)).Int64("client", p.ID()).
			Msg("dropping payload of unknown type")
	}
}

func (g *Registry) withRoom(p *Player, fn func(*Room)) {
	room := g.RoomOf(p.ID())
	if room == nil {
		g.reject(p, ErrNotInRoom)
		return
	}
	fn(room)
}

func (g *Registry) reject(p *Player, err error) {
	msg := "Something went wrong"
	switch {
	case errors.Is(err, ErrDuplicateRoom):
		msg = "That room already exists"
	case errors.Is(err, ErrRoomNotFound):
		msg = "That room doesn't exist"
	case errors.Is(err, ErrNotInRoom):
		msg = "You must be in a room to do that"
	default:
		msg = fmt.Sprintf("Request failed: %v", err)
	}
	p.send(protocol.Payload{
		Type:     protocol.PayloadMessage,
		ClientID: protocol.DefaultClientID,
		Message:  msg,
	})
}
