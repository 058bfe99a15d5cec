package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/dailytrack-backend/internal/app"
	"github.com/yungbote/dailytrack-backend/internal/data/db"
)

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(rootOpts)
			if err != nil {
				return err
			}
			defer log.Sync()

			cfg := app.LoadConfig(log)
			pg, err := db.NewPostgresService(log, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pg.Close()
			if err := pg.AutoMigrateAll(); err != nil {
				return fmt.Errorf("automigrate: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return err
		},
	}
}
