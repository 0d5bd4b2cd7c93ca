package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/risut/crm/internal/notes"
)

// NoteService manages chat notes.
type NoteService interface {
	ListByChat(ctx context.Context, chatID string) ([]notes.Note, error)
	Create(ctx context.Context, req notes.CreateRequest) (notes.Note, error)
	Delete(ctx context.Context, id string) error
}

type NotesHandler struct {
	service NoteService
	logger  *slog.Logger
}

func NewNotesHandler(log *slog.Logger, service NoteService) *NotesHandler {
	return &NotesHandler{
		service: service,
		logger:  log.With(slog.String("handler", "notes")),
	}
}

func (h *NotesHandler) Register(e *echo.Echo) {
	group := e.Group("/api/notes")
	group.GET("/:chatId", h.List)
	group.POST("", h.Create)
	group.DELETE("/:noteId", h.Delete)
}

// List returns the chat's notes, newest first.
func (h *NotesHandler) List(c echo.Context) error {
	chatID, err := requireParam(c, "chatId", "chat id")
	if err != nil {
		return err
	}
	items, err := h.service.ListByChat(c.Request().Context(), chatID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []notes.Note{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *NotesHandler) Create(c echo.Context) error {
	var req notes.CreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	note, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return serviceError(err, notes.ErrInvalidInput, nil, "")
	}
	return c.JSON(http.StatusOK, note)
}

func (h *NotesHandler) Delete(c echo.Context) error {
	id, err := requireParam(c, "noteId", "note id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return notFoundOr(err, notes.ErrNotFound, "note not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}
