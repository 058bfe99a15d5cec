package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yungbote/dailytrack-backend/internal/app"
	"github.com/yungbote/dailytrack-backend/internal/data/db"
	trackingrepo "github.com/yungbote/dailytrack-backend/internal/data/repos/tracking"
	domain "github.com/yungbote/dailytrack-backend/internal/domain/tracking"
	"github.com/yungbote/dailytrack-backend/internal/tracking"
)

func NewTodayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Print the record for the current logical day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(rootOpts)
			if err != nil {
				return err
			}
			defer log.Sync()

			cfg := app.LoadConfig(log)
			clock, err := tracking.NewClock(cfg.Timezone)
			if err != nil {
				return err
			}
			pg, err := db.NewPostgresService(log, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pg.Close()

			day := clock.Today()
			row, err := trackingrepo.NewDailyRecordRepo(pg.DB(), log).Get(cmd.Context(), day.Date)
			if err != nil {
				return err
			}
			return writeRecord(cmd.OutOrStdout(), rootOpts.Format, day, row)
		},
	}
}

func writeRecord(w io.Writer, format string, day tracking.Day, row *domain.DailyRecord) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"day": day.String(), "record": row})
	}
	if row == nil {
		_, err := fmt.Fprintf(w, "%s: no record\n", day.String())
		return err
	}
	parts := make([]string, 0, len(tracking.Columns()))
	for _, col := range tracking.Columns() {
		if v := row.Value(col); v != nil {
			parts = append(parts, string(col)+"="+tracking.FormatValue(*v))
		}
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", day.String(), strings.Join(parts, ", "))
	return err
}
