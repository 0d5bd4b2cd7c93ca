package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/risut/crm/internal/tags"
)

// TagService manages the tag catalog.
type TagService interface {
	List(ctx context.Context) ([]tags.Tag, error)
	Create(ctx context.Context, req tags.CreateRequest) (tags.Tag, error)
	Delete(ctx context.Context, id string) error
}

// TagsHandler serves the tag catalog. Assignments live under /api/chats/:chatId/tags.
type TagsHandler struct {
	service TagService
	logger  *slog.Logger
}

func NewTagsHandler(log *slog.Logger, service TagService) *TagsHandler {
	return &TagsHandler{
		service: service,
		logger:  log.With(slog.String("handler", "tags")),
	}
}

func (h *TagsHandler) Register(e *echo.Echo) {
	group := e.Group("/api/tags")
	group.GET("", h.List)
	group.POST("", h.Create)
	group.DELETE("/:id", h.Delete)
}

func (h *TagsHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []tags.Tag{}
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "tags": items})
}

func (h *TagsHandler) Create(c echo.Context) error {
	var req tags.CreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	tag, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, tags.ErrTagExists) {
			return echo.NewHTTPError(http.StatusBadRequest, "tag already exists")
		}
		return serviceError(err, tags.ErrInvalidInput, nil, "")
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "tag": tag})
}

func (h *TagsHandler) Delete(c echo.Context) error {
	id, err := requireParam(c, "id", "tag id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return notFoundOr(err, tags.ErrNotFound, "tag not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
