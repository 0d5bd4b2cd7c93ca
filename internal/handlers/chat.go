package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/risut/crm/internal/chats"
	"github.com/risut/crm/internal/message"
	"github.com/risut/crm/internal/tags"
)

// MessageLister lists the stored history of a chat.
type MessageLister interface {
	ListByChat(ctx context.Context, chatID string) ([]message.Message, error)
}

// ChatTagService manages tag assignments of a chat.
type ChatTagService interface {
	ListByChat(ctx context.Context, chatID string) ([]tags.Tag, error)
	AddToChat(ctx context.Context, chatID, tagID string) error
	RemoveFromChat(ctx context.Context, chatID, tagID string) error
}

// ChatHandler serves the inbox: chats, their history and their tags.
type ChatHandler struct {
	chats    chats.Service
	messages MessageLister
	tags     ChatTagService
	logger   *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(log *slog.Logger, chatService chats.Service, messages MessageLister, tagService ChatTagService) *ChatHandler {
	return &ChatHandler{
		chats:    chatService,
		messages: messages,
		tags:     tagService,
		logger:   log.With(slog.String("handler", "chat")),
	}
}

// Register registers all chat routes.
func (h *ChatHandler) Register(e *echo.Echo) {
	group := e.Group("/api/chats")
	group.GET("", h.List)
	group.GET("/:chatId", h.Get)
	group.GET("/:chatId/messages", h.ListMessages)
	group.POST("/:chatId/read", h.MarkRead)
	group.DELETE("/:chatId", h.Delete)
	group.GET("/:chatId/tags", h.ListTags)
	group.POST("/:chatId/tags/:tagId", h.AddTag)
	group.DELETE("/:chatId/tags/:tagId", h.RemoveTag)
}

// List returns chats, most recent activity first.
func (h *ChatHandler) List(c echo.Context) error {
	items, err := h.chats.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []chats.Chat{}
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "chats": items})
}

func (h *ChatHandler) Get(c echo.Context) error {
	chatID, err := requireParam(c, "chatId", "chat id")
	if err != nil {
		return err
	}
	chat, err := h.chats.Get(c.Request().Context(), chatID)
	if err != nil {
		return notFoundOr(err, chats.ErrNotFound, "chat not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "chat": chat})
}

// ListMessages returns the chat history in ascending timestamp order.
func (h *ChatHandler) ListMessages(c echo.Context) error {
	chatID, err := requireParam(c, "chatId", "chat id")
	if err != nil {
		return err
	}
	items, err := h.messages.ListByChat(c.Request().Context(), chatID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []message.Message{}
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "messages": items})
}

// MarkRead resets the unread counter.
func (h *ChatHandler) MarkRead(c echo.Context) error {
	chatID, err := requireParam(c, "chatId", "chat id")
	if err != nil {
		return err
	}
	chat, err := h.chats.MarkRead(c.Request().Context(), chatID)
	if err != nil {
		return notFoundOr(err, chats.ErrNotFound, "chat not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "chat": chat})
}

// Delete removes the chat with its messages, notes, tag links and contact.
func (h *ChatHandler) Delete(c echo.Context) error {
	chatID, err := requireParam(c, "chatId", "chat id")
	if err != nil {
		return err
	}
	if err := h.chats.Delete(c.Request().Context(), chatID); err != nil {
		return notFoundOr(err, chats.ErrNotFound, "chat not found")
	}
	h.logger.Info("chat deleted", slog.String("chat_id", chatID))
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (h *ChatHandler) ListTags(c echo.Context) error {
	chatID, err := requireParam(c, "chatId", "chat id")
	if err != nil {
		return err
	}
	items, err := h.tags.ListByChat(c.Request().Context(), chatID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []tags.Tag{}
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "tags": items})
}

func (h *ChatHandler) AddTag(c echo.Context) error {
	chatID, tagID, err := chatTagParams(c)
	if err != nil {
		return err
	}
	if err := h.tags.AddToChat(c.Request().Context(), chatID, tagID); err != nil {
		return notFoundOr(err, tags.ErrNotFound, "chat or tag not found")
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (h *ChatHandler) RemoveTag(c echo.Context) error {
	chatID, tagID, err := chatTagParams(c)
	if err != nil {
		return err
	}
	if err := h.tags.RemoveFromChat(c.Request().Context(), chatID, tagID); err != nil {
		if errors.Is(err, tags.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "tag not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func chatTagParams(c echo.Context) (string, string, error) {
	chatID, err := requireParam(c, "chatId", "chat id")
	if err != nil {
		return "", "", err
	}
	tagID, err := requireParam(c, "tagId", "tag id")
	if err != nil {
		return "", "", err
	}
	return chatID, tagID, nil
}
