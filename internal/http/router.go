package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/dailytrack-backend/internal/http/handlers"
	httpMW "github.com/yungbote/dailytrack-backend/internal/http/middleware"
	"github.com/yungbote/dailytrack-backend/internal/observability"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	WebhookHandler *httpH.WebhookHandler
	RecordHandler  *httpH.RecordHandler
	HealthHandler  *httpH.HealthHandler

	ServiceName   string
	WebhookSecret string
	CORSOrigins   []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.RequestContext())
	r.Use(httpMW.AccessLog(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/favicon.ico", cfg.HealthHandler.NoContent)
		r.GET("/favicon.png", cfg.HealthHandler.NoContent)
	}

	// Metrics
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	// Telegram
	if cfg.WebhookHandler != nil {
		r.POST("/telegram_webhook", httpMW.WebhookSecret(cfg.WebhookSecret), cfg.WebhookHandler.Telegram)
	}

	api := r.Group("/api")
	api.Use(httpMW.CORS(cfg.CORSOrigins...))
	{
		if cfg.HealthHandler != nil {
			api.GET("/health", cfg.HealthHandler.Health)
		}
		if cfg.RecordHandler != nil {
			api.GET("/records/today", cfg.RecordHandler.Today)
			api.POST("/parse", cfg.RecordHandler.Parse)
			api.GET("/messages", cfg.RecordHandler.Messages)
		}
	}

	return r
}
