package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/cargoflow/cargoflow/internal/broadcast"
)

// StreamHandler upgrades dashboard connections into the broadcast hub.
type StreamHandler struct {
	hub      *broadcast.Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewStreamHandler constructs StreamHandler.
func NewStreamHandler(hub *broadcast.Hub, logger *slog.Logger) *StreamHandler {
	return &StreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Dashboard origins are enforced upstream at the ingress.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Watch handles GET /ws/shipments/:publicId.
func (h *StreamHandler) Watch(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			slog.String("error", err.Error()))
		return
	}
	h.hub.Register(c.Param("publicId"), conn)
}
