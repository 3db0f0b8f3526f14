package game

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/bryans04/rps-arena/internal/protocol"
)

const connectTimeout = 10 * time.Second

// Handler exposes the HTTP surface: the websocket endpoint and the room
// list. Game state is reachable only through the registry it holds.
type Handler struct {
	reg      *Registry
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(reg *Registry, log zerolog.Logger, allowedOrigins []string) *Handler {
	return &Handler{
		reg: reg,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// non-browser clients send no origin
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ws", h.ConnectHandler)
	r.GET("/rooms", h.RoomsHandler)
}

// ConnectHandler upgrades the request and hands the socket to the game.
func (h *Handler) ConnectHandler(ctx *gin.Context) {
	sock, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	conn := newWSConn(sock, h.log)
	go conn.writePump()
	go h.serveConn(conn)
}

// serveConn waits for the connect-with-name payload, registers the client
// in the lobby and then pumps inbound payloads into dispatch.
func (h *Handler) serveConn(conn *wsConn) {
	conn.sock.SetReadDeadline(time.Now().Add(connectTimeout))
	pl, err := conn.readPayload()
	if err != nil || pl.Type != protocol.PayloadConnect {
		h.log.Warn().Int64("client", conn.ID()).Msg("connection dropped before connect payload")
		conn.Close()
		return
	}
	conn.sock.SetReadDeadline(time.Now().Add(pongWait))
	player := h.reg.Connect(conn, pl.Name)
	conn.readLoop(h.reg, player)
}

// RoomsHandler lists room names, optionally filtered by ?q=.
func (h *Handler) RoomsHandler(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"rooms": h.reg.List(ctx.Query("q"))})
}
