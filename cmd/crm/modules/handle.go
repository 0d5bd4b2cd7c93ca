package modules

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/risut/crm/internal/boot"
	"github.com/risut/crm/internal/chats"
	"github.com/risut/crm/internal/contacts"
	"github.com/risut/crm/internal/handlers"
	"github.com/risut/crm/internal/live"
	"github.com/risut/crm/internal/message"
	"github.com/risut/crm/internal/meta"
	"github.com/risut/crm/internal/metrics"
	"github.com/risut/crm/internal/notes"
	"github.com/risut/crm/internal/server"
	"github.com/risut/crm/internal/settings"
	"github.com/risut/crm/internal/stats"
	"github.com/risut/crm/internal/tags"
	"github.com/risut/crm/internal/webhook"
)

var HandlersModule = fx.Module(
	"handlers",
	fx.Provide(
		annotateHandler(handlers.NewPingHandler),
		annotateHandler(provideWebhookHandler),
		annotateHandler(provideSettingsHandler),
		annotateHandler(provideChatHandler),
		annotateHandler(provideMessageHandler),
		annotateHandler(provideContactsHandler),
		annotateHandler(provideTagsHandler),
		annotateHandler(provideNotesHandler),
		annotateHandler(provideStatsHandler),
		annotateHandler(provideLiveHandler),
		annotateHandler(provideMetricsHandler),
	),
)

// annotateHandler wraps a handler provider function with fx.Annotate
// to register it as a server.Handler with the correct group tag
func annotateHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

// ---------------------------------------------------------------------------
// handler providers (interface adaptation / config extraction)
// ---------------------------------------------------------------------------

func provideWebhookHandler(log *slog.Logger, rc *boot.RuntimeConfig, verifier *webhook.Verifier, pipeline *webhook.Pipeline, m *metrics.Metrics) *handlers.WebhookHandler {
	return handlers.NewWebhookHandler(log, verifier, pipeline, handlers.WebhookOptions{
		VerifyToken:  rc.Webhook.VerifyToken,
		MaxBodyBytes: rc.Webhook.MaxBodyBytes,
		Metrics:      m,
	})
}

func provideSettingsHandler(log *slog.Logger, service *settings.Service) *handlers.SettingsHandler {
	return handlers.NewSettingsHandler(log, service)
}

func provideChatHandler(log *slog.Logger, chatService *chats.DBService, messages *message.DBService, tagService *tags.Service) *handlers.ChatHandler {
	return handlers.NewChatHandler(log, chatService, messages, tagService)
}

func provideMessageHandler(log *slog.Logger, client *meta.Client, pipeline *webhook.Pipeline) *handlers.MessageHandler {
	return handlers.NewMessageHandler(log, client, pipeline)
}

func provideContactsHandler(log *slog.Logger, service *contacts.Service) *handlers.ContactsHandler {
	return handlers.NewContactsHandler(log, service)
}

func provideTagsHandler(log *slog.Logger, service *tags.Service) *handlers.TagsHandler {
	return handlers.NewTagsHandler(log, service)
}

func provideNotesHandler(log *slog.Logger, service *notes.Service) *handlers.NotesHandler {
	return handlers.NewNotesHandler(log, service)
}

func provideStatsHandler(log *slog.Logger, service *stats.Service) *handlers.StatsHandler {
	return handlers.NewStatsHandler(log, service)
}

func provideLiveHandler(log *slog.Logger, rc *boot.RuntimeConfig, hub *live.Hub) *handlers.LiveHandler {
	return handlers.NewLiveHandler(log, hub, live.Upgrader(rc.Live.AllowedOrigins))
}

func provideMetricsHandler(m *metrics.Metrics) *handlers.MetricsHandler {
	return handlers.NewMetricsHandler(m.Handler())
}
