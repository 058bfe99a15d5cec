package app

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/dailytrack-backend/internal/clients/redis"
	"github.com/yungbote/dailytrack-backend/internal/clients/telegram"
	"github.com/yungbote/dailytrack-backend/internal/observability"
	"github.com/yungbote/dailytrack-backend/internal/platform/envutil"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
	"github.com/yungbote/dailytrack-backend/internal/tracking"
)

const (
	StoreDriverGorm = "gorm"
	StoreDriverPgx  = "pgx"
)

type Config struct {
	Port           string
	Timezone       string
	StoreDriver    string
	DatabaseURL    string
	AutoMigrate    bool
	VocabularyFile string
	NotifyTimeout  time.Duration
	WebhookSecret  string
	CORSOrigins    []string

	Telegram telegram.Config
	Redis    redis.Config
	Otel     observability.OtelConfig
}

// LoadDotEnv loads .env style files into the process environment. Missing
// files are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:           envutil.String("PORT", "8080"),
		Timezone:       envutil.String("TRACKER_TIMEZONE", tracking.DefaultTimezone),
		StoreDriver:    strings.ToLower(envutil.String("STORE_DRIVER", StoreDriverGorm)),
		DatabaseURL:    envutil.String("DATABASE_URL", ""),
		AutoMigrate:    envutil.Bool("DB_AUTO_MIGRATE", true),
		VocabularyFile: envutil.String("VOCABULARY_FILE", ""),
		NotifyTimeout:  envutil.Seconds("NOTIFY_TIMEOUT_SECONDS", 10*time.Second),
		WebhookSecret:  envutil.String("TELEGRAM_WEBHOOK_SECRET", ""),
		CORSOrigins:    splitList(envutil.String("CORS_ALLOW_ORIGINS", "")),
		Telegram:       telegram.ConfigFromEnv(),
		Redis: redis.Config{
			Addr:   envutil.String("REDIS_ADDR", ""),
			Prefix: envutil.String("DEDUP_KEY_PREFIX", ""),
			TTL:    envutil.Seconds("DEDUP_TTL_SECONDS", 24*time.Hour),
		},
		Otel: observability.OtelConfigFromEnv(),
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = postgresDSNFromParts()
	}
	if cfg.StoreDriver != StoreDriverGorm && cfg.StoreDriver != StoreDriverPgx {
		if log != nil {
			log.Warn("Unknown STORE_DRIVER, falling back to gorm", "store_driver", cfg.StoreDriver)
		}
		cfg.StoreDriver = StoreDriverGorm
	}
	if log != nil {
		log.Info("Config loaded",
			"port", cfg.Port,
			"timezone", cfg.Timezone,
			"store_driver", cfg.StoreDriver,
			"telegram_enabled", cfg.Telegram.Token != "",
			"dedup_enabled", cfg.Redis.Addr != "",
			"webhook_secret_set", cfg.WebhookSecret != "",
		)
	}
	return cfg
}

func postgresDSNFromParts() string {
	u := url.URL{
		Scheme: "postgres",
		User: url.UserPassword(
			envutil.String("POSTGRES_USER", "postgres"),
			envutil.String("POSTGRES_PASSWORD", ""),
		),
		Host: envutil.String("POSTGRES_HOST", "localhost") + ":" + envutil.String("POSTGRES_PORT", "5432"),
		Path: "/" + envutil.String("POSTGRES_NAME", "dailytrack"),
	}
	q := url.Values{}
	q.Set("sslmode", envutil.String("POSTGRES_SSLMODE", "disable"))
	u.RawQuery = q.Encode()
	return u.String()
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
