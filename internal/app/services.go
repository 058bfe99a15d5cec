package app

import (
	"fmt"

	"github.com/yungbote/dailytrack-backend/internal/observability"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
	"github.com/yungbote/dailytrack-backend/internal/services"
	"github.com/yungbote/dailytrack-backend/internal/tracking"
)

type Services struct {
	Parser     *tracking.Parser
	Clock      *tracking.Clock
	Reconciler services.Reconciler
	Notifier   services.Notifier
	Tracking   services.TrackingService
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, repos Repos, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	vocab, err := tracking.LoadVocabulary(cfg.VocabularyFile)
	if err != nil {
		return Services{}, fmt.Errorf("load vocabulary: %w", err)
	}
	clock, err := tracking.NewClock(cfg.Timezone)
	if err != nil {
		return Services{}, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	var notifier services.Notifier
	if clients.Telegram != nil {
		notifier = services.NewTelegramNotifier(clients.Telegram)
	} else {
		notifier = services.NewLogNotifier(log)
	}

	parser := tracking.NewParser(vocab)
	reconciler := services.NewReconciler(log, repos.DailyRecord)
	return Services{
		Parser:     parser,
		Clock:      clock,
		Reconciler: reconciler,
		Notifier:   notifier,
		Tracking: services.NewTrackingService(
			log,
			parser,
			clock,
			reconciler,
			repos.DailyRecord,
			repos.MessageLog,
			notifier,
			services.TrackingServiceConfig{NotifyTimeout: cfg.NotifyTimeout, Metrics: metrics},
		),
	}, nil
}
