package modules

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"github.com/risut/crm/internal/boot"
	"github.com/risut/crm/internal/chats"
	"github.com/risut/crm/internal/contacts"
	dbsqlc "github.com/risut/crm/internal/db/sqlc"
	"github.com/risut/crm/internal/message"
	"github.com/risut/crm/internal/notes"
	"github.com/risut/crm/internal/settings"
	"github.com/risut/crm/internal/stats"
	"github.com/risut/crm/internal/tags"
)

var DomainModule = fx.Module(
	"domain",
	fx.Provide(
		provideMessageService,
		provideChatService,
		provideContactService,
		provideTagService,
		provideNoteService,
		provideStatsService,
		provideSettingsService,
	),
)

// ---------------------------------------------------------------------------
// domain service providers (interface adapters)
// ---------------------------------------------------------------------------

func provideMessageService(log *slog.Logger, queries *dbsqlc.Queries) *message.DBService {
	return message.NewService(log, queries)
}

func provideChatService(log *slog.Logger, queries *dbsqlc.Queries, conn *pgxpool.Pool) *chats.DBService {
	return chats.NewService(log, queries, chats.PgTxRunner(conn))
}

// Contact saves rename the chat inside the same transaction.
func provideContactService(log *slog.Logger, queries *dbsqlc.Queries, conn *pgxpool.Pool) *contacts.Service {
	return contacts.NewService(log, queries, contacts.PgTxRunner(log, conn))
}

func provideTagService(queries *dbsqlc.Queries) *tags.Service {
	return tags.NewService(queries)
}

func provideNoteService(queries *dbsqlc.Queries) *notes.Service {
	return notes.NewService(queries)
}

func provideStatsService(queries *dbsqlc.Queries) *stats.Service {
	return stats.NewService(queries)
}

// The file and env defaults apply until forwarding is first saved through the API.
func provideSettingsService(log *slog.Logger, queries *dbsqlc.Queries, rc *boot.RuntimeConfig) *settings.Service {
	return settings.NewService(log, queries, settings.ForwardingConfig{
		Enabled: rc.Relay.Enabled,
		URL:     rc.Relay.URL,
	})
}
