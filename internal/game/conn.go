package game

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/bryans04/rps-arena/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	outboxSize = 256
)

var nextClientID atomic.Int64

// wsConn adapts a gorilla websocket to the Conn boundary. Writes go through
// a buffered outbox drained by a single write pump; Send never blocks, and
// a full or closed outbox is reported as the send failure that gets the
// connection evicted.
type wsConn struct {
	id   int64
	sock *websocket.Conn
	log  zerolog.Logger

	outbox    chan protocol.Payload
	closed    chan struct{}
	closeOnce sync.Once
}

func newWSConn(sock *websocket.Conn, log zerolog.Logger) *wsConn {
	id := nextClientID.Add(1)
	c := &wsConn{
		id:     id,
		sock:   sock,
		log:    log.With().Int64("client", id).Logger(),
		outbox: make(chan protocol.Payload, outboxSize),
		closed: make(chan struct{}),
	}
	sock.SetReadDeadline(time.Now().Add(pongWait))
	sock.SetPongHandler(func(string) error {
		return sock.SetReadDeadline(time.Now().Add(pongWait))
	})
	return c
}

func (c *wsConn) ID() int64 { return c.id }

func (c *wsConn) Send(p protocol.Payload) error {
	select {
	case <-c.closed:
		return ErrConnClosed
	default:
	}
	select {
	case c.outbox <- p:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (c *wsConn) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.sock.SetWriteDeadline(time.Now().Add(writeWait))
		c.sock.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.sock.Close()
	})
}

func (c *wsConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-c.closed:
			return
		case p := <-c.outbox:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteJSON(p); err != nil {
				c.log.Debug().Err(err).Msg("write failed")
				c.Close()
				return
			}
		case <-ticker.C:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}

// readPayload reads and decodes a single frame.
func (c *wsConn) readPayload() (protocol.Payload, error) {
	var p protocol.Payload
	err := c.sock.ReadJSON(&p)
	return p, err
}

// readLoop delivers decoded inbound payloads to the dispatcher until the
// connection dies. A token bucket caps how fast one client can act.
func (c *wsConn) readLoop(g *Registry, p *Player) {
	defer g.Disconnect(c.id)
	defer c.Close()

	limiter := rate.NewLimiter(rate.Limit(10), 20)
	for {
		pl, err := c.readPayload()
		if err != nil {
			return
		}
		if !limiter.Allow() {
			c.log.Warn().Str("type", string(pl.Type)).Msg("rate limited, dropping payload")
			continue
		}
		if pl.Type == protocol.PayloadDisconnect {
			return
		}
		g.Dispatch(p, pl)
	}
}
