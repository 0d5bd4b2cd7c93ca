package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/risut/crm/internal/metrics"
	"github.com/risut/crm/internal/webhook"
)

const eventReceived = "EVENT_RECEIVED"

// SignatureVerifier authenticates a raw webhook body.
type SignatureVerifier interface {
	Verify(body []byte, header string) error
}

// Dispatcher hands a verified delivery to background processing.
type Dispatcher interface {
	Dispatch(raw []byte)
}

// WebhookHandler serves the provider-facing subscription handshake and event delivery.
type WebhookHandler struct {
	verifyToken  string
	maxBodyBytes int64
	verifier     SignatureVerifier
	dispatcher   Dispatcher
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// WebhookOptions configures a WebhookHandler.
type WebhookOptions struct {
	VerifyToken  string
	MaxBodyBytes int64
	Metrics      *metrics.Metrics
}

// NewWebhookHandler creates a webhook handler.
func NewWebhookHandler(log *slog.Logger, verifier SignatureVerifier, dispatcher Dispatcher, opts WebhookOptions) *WebhookHandler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	return &WebhookHandler{
		verifyToken:  strings.TrimSpace(opts.VerifyToken),
		maxBodyBytes: opts.MaxBodyBytes,
		verifier:     verifier,
		dispatcher:   dispatcher,
		metrics:      opts.Metrics,
		logger:       log.With(slog.String("handler", "webhook")),
	}
}

func (h *WebhookHandler) Register(e *echo.Echo) {
	e.GET("/api/webhooks", h.Handshake)
	e.POST("/api/webhooks", h.Receive)
}

// Handshake answers the hub.challenge subscription check.
func (h *WebhookHandler) Handshake(c echo.Context) error {
	mode := c.QueryParam("hub.mode")
	token := c.QueryParam("hub.verify_token")
	challenge := c.QueryParam("hub.challenge")

	if mode == "" || token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "hub.mode and hub.verify_token are required")
	}
	if mode != "subscribe" || h.verifyToken == "" || token != h.verifyToken {
		h.logger.Warn("webhook verification rejected", slog.String("mode", mode))
		return echo.NewHTTPError(http.StatusForbidden, "verification failed")
	}
	h.logger.Info("webhook verified")
	return c.String(http.StatusOK, challenge)
}

// Receive authenticates a delivery, hands it off and acknowledges immediately.
func (h *WebhookHandler) Receive(c echo.Context) error {
	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.metrics.WebhookRequest("too_large")
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "payload too large")
		}
		h.metrics.WebhookRequest("read_error")
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.verifier.Verify(body, c.Request().Header.Get(webhook.SignatureHeader)); err != nil {
		h.metrics.WebhookRequest("unauthorized")
		h.logger.Warn("webhook signature rejected",
			slog.String("remote_ip", c.RealIP()),
			slog.Any("error", err))
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	h.metrics.WebhookRequest("accepted")
	h.dispatcher.Dispatch(body)
	return c.String(http.StatusOK, eventReceived)
}
