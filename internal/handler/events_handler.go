package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type FeedHub interface {
	Serve(ctx context.Context, conn *websocket.Conn)
}

// the page is served from any origin, same as the REST API
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type EventsHandler struct {
	hub FeedHub
	log *zap.Logger
}

func NewEventsHandler(hub FeedHub, log *zap.Logger) *EventsHandler {
	return &EventsHandler{hub: hub, log: log}
}

// Stream godoc
// @Summary      Feed de cambios (WebSocket)
// @Description  Conexión WebSocket que recibe {"action","id","at"} por cada registro creado, actualizado o eliminado.
// @Description  <br>
// @Description  **No es un endpoint HTTP estándar:** use `ws://` o `wss://`.
// @Tags         WebSocket
// @Success      101 {string} string "101 Switching Protocols"
// @Router       /ws/registros [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("EventsHandler.Stream(): failed to upgrade to WebSocket", zap.Error(err))
		return
	}
	h.hub.Serve(c.Request.Context(), conn)
}
