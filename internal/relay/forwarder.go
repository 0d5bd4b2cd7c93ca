// Package relay forwards raw webhook deliveries to an external automation endpoint.
package relay

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/risut/crm/internal/metrics"
	"github.com/risut/crm/internal/settings"
)

// DefaultTimeout bounds one forwarding attempt.
const DefaultTimeout = 10 * time.Second

// ConfigSource returns the current forwarding configuration.
type ConfigSource interface {
	GetForwarding(ctx context.Context) (settings.ForwardingConfig, error)
}

// Forwarder posts deliveries to the configured URL. Failures are logged and counted, never returned.
type Forwarder struct {
	config   ConfigSource
	client   *http.Client
	timeout  time.Duration
	excluded []string
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// Options configures a Forwarder.
type Options struct {
	Timeout         time.Duration
	ExcludedObjects []string
	Client          *http.Client
	Metrics         *metrics.Metrics
}

// NewForwarder creates a forwarder reading its target from config on every call.
func NewForwarder(log *slog.Logger, config ConfigSource, opts Options) *Forwarder {
	if log == nil {
		log = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Client == nil {
		opts.Client = &http.Client{}
	}
	return &Forwarder{
		config:   config,
		client:   opts.Client,
		timeout:  opts.Timeout,
		excluded: opts.ExcludedObjects,
		logger:   log.With(slog.String("component", "relay")),
		metrics:  opts.Metrics,
	}
}

// Forward posts raw unchanged when forwarding is enabled for object.
func (f *Forwarder) Forward(ctx context.Context, raw []byte, object string) {
	if slices.Contains(f.excluded, object) {
		f.metrics.RelayForward("excluded")
		return
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	cfg, err := f.config.GetForwarding(ctx)
	if err != nil {
		f.metrics.RelayForward("error")
		f.logger.Error("load forwarding config failed", slog.Any("error", err))
		return
	}
	if !cfg.Enabled || cfg.URL == "" {
		f.metrics.RelayForward("disabled")
		return
	}
	if err := f.post(ctx, cfg.URL, raw); err != nil {
		f.metrics.RelayForward("error")
		f.logger.Error("forward webhook failed", slog.String("url", cfg.URL), slog.String("object", object), slog.Any("error", err))
		return
	}
	f.metrics.RelayForward("ok")
	f.logger.Debug("webhook forwarded", slog.String("url", cfg.URL), slog.String("object", object))
}

func (f *Forwarder) post(ctx context.Context, url string, raw []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
