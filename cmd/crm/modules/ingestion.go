package modules

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/risut/crm/internal/boot"
	"github.com/risut/crm/internal/chats"
	"github.com/risut/crm/internal/live"
	"github.com/risut/crm/internal/message"
	"github.com/risut/crm/internal/meta"
	"github.com/risut/crm/internal/metrics"
	"github.com/risut/crm/internal/relay"
	"github.com/risut/crm/internal/settings"
	"github.com/risut/crm/internal/webhook"
)

// IngestionModule wires the webhook path: verification, relay, normalization, storage and live fan-out.
var IngestionModule = fx.Module(
	"ingestion",
	fx.Provide(
		provideHub,
		provideVerifier,
		provideForwarder,
		providePipeline,
		provideMetaClient,
	),
)

func provideHub(lc fx.Lifecycle, log *slog.Logger, rc *boot.RuntimeConfig, m *metrics.Metrics) *live.Hub {
	hub := live.NewHub(log, rc.Live.BufferSize, m)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			hub.Close()
			return nil
		},
	})
	return hub
}

func provideVerifier(log *slog.Logger, rc *boot.RuntimeConfig) *webhook.Verifier {
	return webhook.NewVerifier(log, rc.Webhook.AppSecret, rc.Webhook.AllowUnsigned)
}

func provideForwarder(log *slog.Logger, rc *boot.RuntimeConfig, settingsService *settings.Service, m *metrics.Metrics) *relay.Forwarder {
	return relay.NewForwarder(log, settingsService, relay.Options{
		Timeout:         rc.Relay.Timeout.Duration,
		ExcludedObjects: rc.Relay.ExcludedObjects,
		Metrics:         m,
	})
}

func providePipeline(lc fx.Lifecycle, log *slog.Logger, rc *boot.RuntimeConfig, messages *message.DBService, chatService *chats.DBService, hub *live.Hub, forwarder *relay.Forwarder, m *metrics.Metrics) *webhook.Pipeline {
	pipeline := webhook.NewPipeline(log, webhook.PipelineDeps{
		Normalizer: webhook.Normalizer{
			InstagramAccountID: rc.Meta.InstagramAccountID,
			FacebookPageID:     rc.Meta.FacebookPageID,
		},
		Messages:       messages,
		Chats:          chatService,
		Broadcaster:    hub,
		Relay:          forwarder,
		PersistTimeout: rc.Webhook.PersistTimeout.Duration,
		Metrics:        m,
	})
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := pipeline.WaitContext(ctx); err != nil {
				log.Warn("webhook deliveries still in flight at shutdown", slog.Any("error", err))
			}
			return nil
		},
	})
	return pipeline
}

func provideMetaClient(log *slog.Logger, rc *boot.RuntimeConfig, m *metrics.Metrics) *meta.Client {
	return meta.NewClient(log, meta.Config{
		BaseURL:           rc.Meta.GraphBaseURL,
		APIVersion:        rc.Meta.APIVersion,
		AccessToken:       rc.Meta.AccessToken,
		SendRatePerSecond: rc.Meta.SendRatePerSecond,
		Metrics:           m,
	})
}
