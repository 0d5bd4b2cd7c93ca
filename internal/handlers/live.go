package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// LiveServer streams hub events over an upgraded connection.
type LiveServer interface {
	Serve(upgrader *websocket.Upgrader, w http.ResponseWriter, r *http.Request) error
}

// LiveHandler upgrades GET /api/live to a websocket carrying new_message events.
type LiveHandler struct {
	hub      LiveServer
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewLiveHandler(log *slog.Logger, hub LiveServer, upgrader websocket.Upgrader) *LiveHandler {
	return &LiveHandler{
		hub:      hub,
		upgrader: upgrader,
		logger:   log.With(slog.String("handler", "live")),
	}
}

func (h *LiveHandler) Register(e *echo.Echo) {
	e.GET("/api/live", h.Stream)
}

// Stream blocks for the lifetime of the websocket session.
func (h *LiveHandler) Stream(c echo.Context) error {
	if err := h.hub.Serve(&h.upgrader, c.Response(), c.Request()); err != nil {
		// The upgrader has already written the HTTP error.
		h.logger.Warn("live upgrade failed", slog.String("remote_ip", c.RealIP()), slog.Any("error", err))
	}
	return nil
}
