package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/risut/crm/internal/stats"
)

// StatsSource computes dashboard counters.
type StatsSource interface {
	Get(ctx context.Context) (stats.Stats, error)
}

type StatsHandler struct {
	source StatsSource
	logger *slog.Logger
}

func NewStatsHandler(log *slog.Logger, source StatsSource) *StatsHandler {
	return &StatsHandler{
		source: source,
		logger: log.With(slog.String("handler", "stats")),
	}
}

func (h *StatsHandler) Register(e *echo.Echo) {
	e.GET("/api/stats", h.Get)
}

func (h *StatsHandler) Get(c echo.Context) error {
	s, err := h.source.Get(c.Request().Context())
	if err != nil {
		h.logger.Error("compute stats failed", slog.Any("error", err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch statistics")
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "stats": s})
}
