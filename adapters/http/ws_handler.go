package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gayathrinuthana/portfolio-api/internal/realtime"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

type WSHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	logger   logger.Logger
}

func NewWSHandler(hub *realtime.Hub, allowedOrigins []string, log logger.Logger) *WSHandler {
	originSet := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originSet[o] = true
	}

	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(originSet) == 0 {
					return true
				}
				return originSet[r.Header.Get("Origin")]
			},
		},
		logger: log,
	}
}

// Serve upgrades the request and registers the client with the hub. Room
// subscriptions arrive later as join messages on the socket.
func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := realtime.NewClient(h.hub, conn, h.logger)
	h.hub.Register <- client
	client.Start()
}
