package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/risut/crm/internal/contacts"
)

// ContactService manages contacts.
type ContactService interface {
	List(ctx context.Context) ([]contacts.Contact, error)
	Get(ctx context.Context, id string) (contacts.Contact, error)
	GetByChat(ctx context.Context, chatID string) (contacts.Contact, error)
	Save(ctx context.Context, req contacts.SaveRequest) (contacts.Contact, error)
	Update(ctx context.Context, id string, req contacts.UpdateRequest) (contacts.Contact, error)
	Delete(ctx context.Context, id string) error
}

// ContactsHandler serves contact CRUD.
type ContactsHandler struct {
	service ContactService
	logger  *slog.Logger
}

// NewContactsHandler creates a ContactsHandler.
func NewContactsHandler(log *slog.Logger, service ContactService) *ContactsHandler {
	return &ContactsHandler{
		service: service,
		logger:  log.With(slog.String("handler", "contacts")),
	}
}

// Register registers contact routes.
func (h *ContactsHandler) Register(e *echo.Echo) {
	group := e.Group("/api/contacts")
	group.GET("", h.List)
	group.GET("/chat/:chatId", h.GetByChat)
	group.GET("/:id", h.Get)
	group.POST("", h.Save)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// List returns all contacts, newest first.
func (h *ContactsHandler) List(c echo.Context) error {
	items, err := h.service.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []contacts.Contact{}
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "contacts": items})
}

func (h *ContactsHandler) Get(c echo.Context) error {
	id, err := requireParam(c, "id", "contact id")
	if err != nil {
		return err
	}
	contact, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return notFoundOr(err, contacts.ErrNotFound, "contact not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "contact": contact})
}

// GetByChat returns the chat's contact, or contact: null when none was saved.
func (h *ContactsHandler) GetByChat(c echo.Context) error {
	chatID, err := requireParam(c, "chatId", "chat id")
	if err != nil {
		return err
	}
	contact, err := h.service.GetByChat(c.Request().Context(), chatID)
	if err != nil {
		if errors.Is(err, contacts.ErrNotFound) {
			return c.JSON(http.StatusOK, map[string]any{"success": true, "contact": nil})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "contact": contact})
}

// Save creates or replaces the contact of a chat and renames the chat.
func (h *ContactsHandler) Save(c echo.Context) error {
	var req contacts.SaveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	contact, err := h.service.Save(c.Request().Context(), req)
	if err != nil {
		return serviceError(err, contacts.ErrInvalidInput, nil, "")
	}
	return c.JSON(http.StatusCreated, map[string]any{"success": true, "contact": contact})
}

func (h *ContactsHandler) Update(c echo.Context) error {
	id, err := requireParam(c, "id", "contact id")
	if err != nil {
		return err
	}
	var req contacts.UpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	contact, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		return serviceError(err, contacts.ErrInvalidInput, contacts.ErrNotFound, "contact not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "contact": contact})
}

func (h *ContactsHandler) Delete(c echo.Context) error {
	id, err := requireParam(c, "id", "contact id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return notFoundOr(err, contacts.ErrNotFound, "contact not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "contact deleted"})
}
