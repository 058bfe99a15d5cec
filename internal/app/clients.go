package app

import (
	"fmt"

	"github.com/yungbote/dailytrack-backend/internal/clients/redis"
	"github.com/yungbote/dailytrack-backend/internal/clients/telegram"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
)

type Clients struct {
	Telegram    telegram.Client
	UpdateGuard redis.UpdateGuard
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// Telegram
	if cfg.Telegram.Token != "" {
		c, err := telegram.New(log, cfg.Telegram)
		if err != nil {
			return Clients{}, fmt.Errorf("init telegram client: %w", err)
		}
		out.Telegram = c
	} else {
		log.Warn("TELEGRAM_TOKEN not set; confirmations will only be logged")
	}

	// Redis
	if cfg.Redis.Addr != "" {
		g, err := redis.NewUpdateGuard(log, cfg.Redis)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis update guard: %w", err)
		}
		out.UpdateGuard = g
	}

	return out, nil
}

func (c Clients) Close() {
	if c.UpdateGuard != nil {
		_ = c.UpdateGuard.Close()
	}
}
