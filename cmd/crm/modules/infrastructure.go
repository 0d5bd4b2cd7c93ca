package modules

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"github.com/risut/crm/internal/boot"
	"github.com/risut/crm/internal/config"
	"github.com/risut/crm/internal/db"
	dbsqlc "github.com/risut/crm/internal/db/sqlc"
	"github.com/risut/crm/internal/logger"
	"github.com/risut/crm/internal/metrics"
)

var InfraModule = fx.Module(
	"infra",
	fx.Provide(
		provideConfig,
		boot.ProvideRuntimeConfig,
		provideLogger,
		provideDBConn,
		provideDBQueries,
		metrics.New,
	),
)

// ---------------------------------------------------------------------------
// infrastructure providers
// ---------------------------------------------------------------------------

func provideConfig() (config.Config, error) {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(rc *boot.RuntimeConfig) *slog.Logger {
	logger.Init(rc.Log.Level, rc.Log.Format)
	return logger.L
}

func provideDBConn(lc fx.Lifecycle, rc *boot.RuntimeConfig) (*pgxpool.Pool, error) {
	conn, err := db.Open(context.Background(), rc.Postgres)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			conn.Close()
			return nil
		},
	})
	return conn, nil
}

func provideDBQueries(conn *pgxpool.Pool) *dbsqlc.Queries {
	return dbsqlc.New(conn)
}
