// Package meta is a thin client for the Meta Graph messaging API.
package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/risut/crm/internal/metrics"
)

const (
	DefaultBaseURL    = "https://graph.facebook.com"
	DefaultAPIVersion = "v18.0"
	defaultTimeout    = 15 * time.Second
	maxErrorBody      = 64 << 10
)

// ErrAccessTokenMissing is returned when no page access token is configured.
var ErrAccessTokenMissing = errors.New("META_ACCESS_TOKEN is not configured")

// APIError is a non-2xx Graph response.
type APIError struct {
	StatusCode int
	Message    string
	Type       string
	Code       int
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("graph api status %d", e.StatusCode)
	}
	return fmt.Sprintf("graph api status %d: %s", e.StatusCode, e.Message)
}

// SendResult is the Graph response to a send.
type SendResult struct {
	RecipientID string `json:"recipient_id"`
	MessageID   string `json:"message_id"`
}

// Config configures a Client.
type Config struct {
	BaseURL           string
	APIVersion        string
	AccessToken       string
	SendRatePerSecond float64
	HTTPClient        *http.Client
	Metrics           *metrics.Metrics
}

// Client sends messages through the Graph API. Sends share one rate limiter.
type Client struct {
	baseURL     string
	version     string
	accessToken string
	http        *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// NewClient creates a client. A non-positive SendRatePerSecond disables limiting.
func NewClient(log *slog.Logger, cfg Config) *Client {
	if log == nil {
		log = slog.Default()
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(cfg.APIVersion) == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	limit := rate.Inf
	if cfg.SendRatePerSecond > 0 {
		limit = rate.Limit(cfg.SendRatePerSecond)
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		version:     strings.Trim(cfg.APIVersion, "/"),
		accessToken: strings.TrimSpace(cfg.AccessToken),
		http:        cfg.HTTPClient,
		limiter:     rate.NewLimiter(limit, 1),
		logger:      log.With(slog.String("component", "meta_client")),
		metrics:     cfg.Metrics,
	}
}

type sendRequest struct {
	Recipient struct {
		ID string `json:"id"`
	} `json:"recipient"`
	Message struct {
		Text string `json:"text"`
	} `json:"message"`
	AccessToken string `json:"access_token"`
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendInstagramMessage sends a text message to an Instagram-scoped user ID.
func (c *Client) SendInstagramMessage(ctx context.Context, recipientID, text string) (SendResult, error) {
	if c.accessToken == "" {
		return SendResult{}, ErrAccessTokenMissing
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return SendResult{}, fmt.Errorf("rate limit wait: %w", err)
	}

	var body sendRequest
	body.Recipient.ID = recipientID
	body.Message.Text = text
	body.AccessToken = c.accessToken
	payload, err := json.Marshal(body)
	if err != nil {
		return SendResult{}, err
	}

	url := c.baseURL + "/" + c.version + "/me/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return SendResult{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.GraphSend("error")
		return SendResult{}, fmt.Errorf("send instagram message: %w", err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		c.metrics.GraphSend("error")
		return SendResult{}, fmt.Errorf("read graph response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.GraphSend("rejected")
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env errorEnvelope
		if json.Unmarshal(respBody, &env) == nil {
			apiErr.Message = env.Error.Message
			apiErr.Type = env.Error.Type
			apiErr.Code = env.Error.Code
		}
		c.logger.Warn("graph send rejected", slog.String("recipient_id", recipientID), slog.Any("error", apiErr))
		return SendResult{}, apiErr
	}

	var result SendResult
	if len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, &result); err != nil {
			c.logger.Warn("graph send response not understood", slog.Any("error", err))
		}
	}
	c.metrics.GraphSend("ok")
	return result, nil
}
