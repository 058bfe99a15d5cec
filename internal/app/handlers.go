package app

import (
	"github.com/yungbote/dailytrack-backend/internal/http"
	httpH "github.com/yungbote/dailytrack-backend/internal/http/handlers"
	"github.com/yungbote/dailytrack-backend/internal/observability"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Webhook *httpH.WebhookHandler
	Record  *httpH.RecordHandler
}

func wireHandlers(log *logger.Logger, clients Clients, services Services, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		Webhook: httpH.NewWebhookHandler(httpH.WebhookHandlerDeps{
			Log:      log,
			Tracking: services.Tracking,
			Guard:    clients.UpdateGuard,
			Metrics:  metrics,
		}),
		Record: httpH.NewRecordHandler(services.Tracking),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *http.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewServer(log, http.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		WebhookHandler: handlers.Webhook,
		RecordHandler:  handlers.Record,
		HealthHandler:  handlers.Health,
		ServiceName:    serviceName,
		WebhookSecret:  cfg.WebhookSecret,
		CORSOrigins:    cfg.CORSOrigins,
	})
}
