package main

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bryans04/rps-arena/config"
	"github.com/bryans04/rps-arena/internal/game"
	"github.com/bryans04/rps-arena/internal/logger"
)

func createServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")
		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.JSON(http.StatusForbidden, gin.H{"error": "forbidden origin"})
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowHeaders: []string{
			"Content-Type",
			"Origin",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)
	log.Info().Str("instance", uuid.NewString()).Str("addr", cfg.ListenAddr).
		Msg("rps-arena server starting")

	gin.SetMode(cfg.GinMode)

	reg := game.NewRegistry(game.RoomConfig{
		RoundSeconds: cfg.RoundSeconds,
		TurnSeconds:  cfg.TurnSeconds,
		TurnBased:    cfg.TurnBased,
	}, log)

	r := createServer(cfg.AllowedOrigins)
	game.NewHandler(reg, log, cfg.AllowedOrigins).RegisterRoutes(r)

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
