package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/voyago/citychat-server/internal/config"
	"github.com/voyago/citychat-server/internal/core"
	"github.com/voyago/citychat-server/internal/store"
)

// NewServer builds the HTTP server: websocket endpoint plus the read-only
// message history API.
func NewServer(hub *core.Hub, st store.MessageStore, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, logger)))

	messages := NewMessageHandlers(st, cfg.HistoryLimit, logger)
	api := router.Group("/api")
	api.GET("/rooms/:room/messages", messages.ListRoomMessages)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
