package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/risut/crm/cmd/crm/modules"
	dbembed "github.com/risut/crm/db"
	"github.com/risut/crm/internal/boot"
	"github.com/risut/crm/internal/config"
	"github.com/risut/crm/internal/db"
	"github.com/risut/crm/internal/logger"
	"github.com/risut/crm/internal/version"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := newServeCommand()
	root := &cobra.Command{
		Use:           "crm",
		Short:         "Omnichannel CRM webhook and inbox API",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, newMigrateCommand(), newVersionCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			app := fx.New(
				modules.InfraModule,
				modules.DomainModule,
				modules.IngestionModule,
				modules.HandlersModule,
				modules.ServerModule,
				fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
					return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
				}),
			)
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
}

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	run := func(command string, args []string) error {
		cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		rc, err := boot.FromEnv(cfg, os.Getenv)
		if err != nil {
			return err
		}
		logger.Init(rc.Log.Level, rc.Log.Format)
		migrations, err := dbembed.Migrations()
		if err != nil {
			return fmt.Errorf("load migrations: %w", err)
		}
		return db.RunMigrate(logger.L.With(slog.String("component", "migrate")), rc.Postgres, migrations, command, args)
	}
	for _, sub := range []struct {
		use   string
		short string
		args  cobra.PositionalArgs
	}{
		{"up", "Apply all pending migrations", cobra.NoArgs},
		{"down", "Roll back all migrations", cobra.NoArgs},
		{"version", "Print the current schema version", cobra.NoArgs},
		{"force VERSION", "Set the schema version without running migrations", cobra.ExactArgs(1)},
	} {
		name := strings.Fields(sub.use)[0]
		cmd.AddCommand(&cobra.Command{
			Use:   sub.use,
			Short: sub.short,
			Args:  sub.args,
			RunE: func(_ *cobra.Command, args []string) error {
				return run(name, args)
			},
		})
	}
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "crm %s\n", version.GetInfo())
		},
	}
}
