package observability

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yungbote/dailytrack-backend/internal/platform/envutil"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests     *CounterVec
	apiLatency      *HistogramVec
	apiInflight     *Gauge
	webhookOutcomes *CounterVec
	notifyFailures  *Counter
	dbStats         *GaugeVec

	scrapeInterval time.Duration
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

func Current() *Metrics {
	return instance
}

// Init returns the process-wide metrics, or nil when METRICS_ENABLED is off.
// Every method on a nil *Metrics is a no-op.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics(envutil.Seconds("METRICS_SCRAPE_INTERVAL_SECONDS", 10*time.Second))
		if log != nil {
			log.Info("metrics enabled")
		}
	})
	return instance
}

// NewMetrics builds an unregistered set. Most callers want Init.
func NewMetrics(scrapeInterval time.Duration) *Metrics {
	if scrapeInterval <= 0 {
		scrapeInterval = 10 * time.Second
	}
	return &Metrics{
		apiRequests: NewCounterVec("dt_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"dt_api_request_duration_seconds",
			"API request latency in seconds by method/route.",
			[]string{"method", "route"},
			[]float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		),
		apiInflight:     NewGauge("dt_api_inflight_requests", "In-flight API requests."),
		webhookOutcomes: NewCounterVec("dt_webhook_outcomes_total", "Webhook updates by outcome status.", []string{"status"}),
		notifyFailures:  NewCounter("dt_notify_failures_total", "Confirmations that could not be delivered."),
		dbStats:         NewGaugeVec("dt_db_pool", "Database pool statistics.", []string{"stat"}),
		scrapeInterval:  scrapeInterval,
	}
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) IncWebhookOutcome(status string) {
	if m == nil {
		return
	}
	m.webhookOutcomes.Inc(strings.TrimSpace(status))
}

func (m *Metrics) IncNotifyFailure() {
	if m == nil {
		return
	}
	m.notifyFailures.Inc()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.webhookOutcomes,
		m.notifyFailures,
		m.dbStats,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

// StartSQLCollector samples database/sql pool stats until ctx is done.
func (m *Metrics) StartSQLCollector(ctx context.Context, db *sql.DB) {
	if m == nil || db == nil {
		return
	}
	m.collect(ctx, func() {
		stats := db.Stats()
		m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
		m.dbStats.Set(float64(stats.InUse), "in_use")
		m.dbStats.Set(float64(stats.Idle), "idle")
		m.dbStats.Set(float64(stats.WaitCount), "wait_count")
		m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
	})
}

// StartPgxCollector samples pgxpool stats until ctx is done.
func (m *Metrics) StartPgxCollector(ctx context.Context, pool *pgxpool.Pool) {
	if m == nil || pool == nil {
		return
	}
	m.collect(ctx, func() {
		stats := pool.Stat()
		m.dbStats.Set(float64(stats.TotalConns()), "open_connections")
		m.dbStats.Set(float64(stats.AcquiredConns()), "in_use")
		m.dbStats.Set(float64(stats.IdleConns()), "idle")
		m.dbStats.Set(float64(stats.EmptyAcquireCount()), "wait_count")
		m.dbStats.Set(stats.AcquireDuration().Seconds(), "wait_duration_seconds")
	})
}

func (m *Metrics) collect(ctx context.Context, sample func()) {
	go func() {
		ticker := time.NewTicker(m.scrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sample()
			}
		}
	}()
}
