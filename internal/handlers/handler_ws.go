package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/peerfx/peerfx_backend/internal/middleware"
	"github.com/peerfx/peerfx_backend/internal/platform/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers enforce the origin; API clients connect with tokens. The
	// channel only carries opaque refresh hints, never data.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsHandler upgrades connections onto the refresh-event hub.
type wsHandler struct {
	hub *ws.Hub
}

func newWSHandler(hub *ws.Hub) *wsHandler {
	return &wsHandler{hub: hub}
}

// registerWSRoutes registers the websocket endpoint on the authenticated group.
func registerWSRoutes(rg *gin.RouterGroup, hub *ws.Hub) {
	h := newWSHandler(hub)
	rg.GET("/ws", h.serveWS)
}

// serveWS godoc
// @Summary Subscribe to marketplace refresh events
// @Description Upgrades to a websocket that receives opaque refresh hints when requests, offers or messages change
// @Tags ws
// @Success 101 "Switching protocols"
// @Security BearerAuth
// @Router /ws [get]
func (h *wsHandler) serveWS(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	ws.NewClient(h.hub, conn)
}
