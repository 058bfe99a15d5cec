package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/dailytrack-backend/internal/app"
	"github.com/yungbote/dailytrack-backend/internal/platform/envutil"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFiles []string
	LogMode  string
	Format   string // "json" | "text"
}

var ValidFormats = []string{"text", "json"}

// NewRootCommand builds the dailytrack CLI. With no subcommand it serves.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "dailytrack",
		Short: "Daily metric tracker fed by Telegram messages",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return app.LoadDotEnv(opts.EnvFiles...)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringSliceVar(&opts.EnvFiles, "env-file", nil, "dotenv file(s) to load (default .env)")
	cmd.PersistentFlags().StringVar(&opts.LogMode, "log-mode", "", "logger mode (development|production|test); defaults to LOG_MODE")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	serve := NewServeCommand(opts)
	cmd.RunE = serve.RunE
	cmd.AddCommand(serve)
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewParseCommand(opts))
	cmd.AddCommand(NewTodayCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func newLogger(opts *RootOptions) (*logger.Logger, error) {
	mode := opts.LogMode
	if mode == "" {
		mode = envutil.String("LOG_MODE", "development")
	}
	log, err := logger.New(mode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}
