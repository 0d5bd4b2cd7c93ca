package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/risut/crm/internal/settings"
)

// ForwardingSettings reads and writes the webhook forwarding configuration.
type ForwardingSettings interface {
	GetForwarding(ctx context.Context) (settings.ForwardingConfig, error)
	SetForwarding(ctx context.Context, req settings.ForwardingRequest) (settings.ForwardingConfig, error)
}

// SettingsHandler exposes the forwarding configuration under /api/webhooks/config.
type SettingsHandler struct {
	service ForwardingSettings
	logger  *slog.Logger
}

func NewSettingsHandler(log *slog.Logger, service ForwardingSettings) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		logger:  log.With(slog.String("handler", "settings")),
	}
}

func (h *SettingsHandler) Register(e *echo.Echo) {
	group := e.Group("/api/webhooks/config")
	group.GET("", h.Get)
	group.POST("", h.Upsert)
}

// Get returns {success, config}.
func (h *SettingsHandler) Get(c echo.Context) error {
	cfg, err := h.service.GetForwarding(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "config": cfg})
}

// Upsert merges the request into the stored configuration.
func (h *SettingsHandler) Upsert(c echo.Context) error {
	var req settings.ForwardingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cfg, err := h.service.SetForwarding(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidURL) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "config": cfg})
}
