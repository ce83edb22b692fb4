package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/testboard-dev/testboard/internal/core"
	"github.com/testboard-dev/testboard/internal/database"
)

func NewMigrateCommand() *cobra.Command {
	migrate := cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema up to date",
		Args:  cobra.ExactArgs(0),
		Run: func(cmd *cobra.Command, args []string) {
			core.LoadConfig() // nolint
			db, err := core.DatabaseFactory()
			if err != nil {
				slog.Error("could not connect to database", "err", err)
				return
			}

			if err := database.RunMigrations(db); err != nil {
				slog.Error("could not run migrations", "err", err)
				return
			}
			slog.Info("database schema is up to date")
		},
	}

	return &migrate
}
