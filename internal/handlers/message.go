package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/risut/crm/internal/message"
	"github.com/risut/crm/internal/meta"
)

// InstagramSender delivers outbound Instagram messages.
type InstagramSender interface {
	SendInstagramMessage(ctx context.Context, recipientID, text string) (meta.SendResult, error)
}

// MessageRecorder persists a message and updates its chat, broadcasting it when new.
type MessageRecorder interface {
	Record(ctx context.Context, msg message.Canonical) (message.Message, bool, error)
}

// SendRequest is the body of POST /api/messages/send.
type SendRequest struct {
	RecipientID string `json:"recipientId" validate:"required"`
	Text        string `json:"text" validate:"required"`
	Platform    string `json:"platform" validate:"required"`
}

// BulkRecipient is one target of a bulk send.
type BulkRecipient struct {
	ID       string `json:"id" validate:"required"`
	Platform string `json:"platform" validate:"required"`
}

// BulkRequest is the body of POST /api/messages/bulk.
type BulkRequest struct {
	Recipients []BulkRecipient `json:"recipients" validate:"required,min=1,dive"`
	Text       string          `json:"text" validate:"required"`
}

// BulkFailure names a recipient that could not be reached.
type BulkFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BulkResults splits a bulk send by outcome.
type BulkResults struct {
	Successful []string      `json:"successful"`
	Failed     []BulkFailure `json:"failed"`
}

// MessageHandler serves outbound sends.
type MessageHandler struct {
	sender   InstagramSender
	recorder MessageRecorder
	now      func() time.Time
	logger   *slog.Logger
}

// NewMessageHandler creates a MessageHandler.
func NewMessageHandler(log *slog.Logger, sender InstagramSender, recorder MessageRecorder) *MessageHandler {
	return &MessageHandler{
		sender:   sender,
		recorder: recorder,
		now:      time.Now,
		logger:   log.With(slog.String("handler", "message")),
	}
}

// Register registers message routes.
func (h *MessageHandler) Register(e *echo.Echo) {
	group := e.Group("/api/messages")
	group.POST("/send", h.Send)
	group.POST("/bulk", h.Bulk)
}

// Send delivers one message and records it as outbound.
func (h *MessageHandler) Send(c echo.Context) error {
	var req SendRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Platform != message.PlatformInstagram {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported platform")
	}
	ctx := c.Request().Context()
	result, err := h.sender.SendInstagramMessage(ctx, req.RecipientID, req.Text)
	if err != nil {
		return sendError(err)
	}
	h.record(ctx, req.RecipientID, req.Text, result)
	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": result})
}

// Bulk sends the same text to each recipient in order. The Graph client paces the sends.
func (h *MessageHandler) Bulk(c echo.Context) error {
	var req BulkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	results := BulkResults{Successful: []string{}, Failed: []BulkFailure{}}
	for _, r := range req.Recipients {
		if r.Platform != message.PlatformInstagram {
			results.Failed = append(results.Failed, BulkFailure{ID: r.ID, Error: "unsupported platform"})
			continue
		}
		result, err := h.sender.SendInstagramMessage(ctx, r.ID, req.Text)
		if err != nil {
			h.logger.Warn("bulk send failed", slog.String("recipient_id", r.ID), slog.Any("error", err))
			results.Failed = append(results.Failed, BulkFailure{ID: r.ID, Error: err.Error()})
			continue
		}
		h.record(ctx, r.ID, req.Text, result)
		results.Successful = append(results.Successful, r.ID)
	}
	h.logger.Info("bulk send finished",
		slog.Int("successful", len(results.Successful)),
		slog.Int("failed", len(results.Failed)))
	return c.JSON(http.StatusOK, map[string]any{"success": true, "results": results})
}

// record stores a delivered message. A storage failure does not undo the send.
func (h *MessageHandler) record(ctx context.Context, recipientID, text string, result meta.SendResult) {
	if h.recorder == nil {
		return
	}
	now := h.now()
	providerID := strings.TrimSpace(result.MessageID)
	if providerID == "" {
		providerID = fmt.Sprintf("msg_%d", now.UnixNano())
	}
	_, _, err := h.recorder.Record(ctx, message.Canonical{
		Platform:          message.PlatformInstagram,
		ChatID:            recipientID,
		Text:              text,
		MessageType:       message.TypeText,
		ProviderMessageID: providerID,
		Direction:         message.DirectionOutbound,
		Timestamp:         now.Unix(),
	})
	if err != nil {
		h.logger.Error("record outbound message failed",
			slog.String("chat_id", recipientID),
			slog.String("message_id", providerID),
			slog.Any("error", err))
	}
}

func sendError(err error) error {
	if errors.Is(err, meta.ErrAccessTokenMissing) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return echo.NewHTTPError(http.StatusBadGateway, "failed to send message: "+err.Error())
}
