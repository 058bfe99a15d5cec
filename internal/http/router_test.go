package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpH "github.com/yungbote/dailytrack-backend/internal/http/handlers"
	httpMW "github.com/yungbote/dailytrack-backend/internal/http/middleware"
	"github.com/yungbote/dailytrack-backend/internal/observability"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
	"github.com/yungbote/dailytrack-backend/internal/services"
	"github.com/yungbote/dailytrack-backend/internal/tracking"
)

type previewOnly struct {
	services.TrackingService
	parser *tracking.Parser
}

func (p previewOnly) Preview(text string) *services.Outcome {
	u := p.parser.Parse(text)
	return &services.Outcome{Status: services.StatusSuccess, Message: tracking.Confirmation(u), Updates: u}
}

func newTestRouter(t *testing.T, secret string, m *observability.Metrics) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := previewOnly{parser: tracking.NewParser(nil)}
	return NewRouter(RouterConfig{
		Log:            logger.Nop(),
		Metrics:        m,
		WebhookHandler: httpH.NewWebhookHandler(httpH.WebhookHandlerDeps{Log: logger.Nop(), Tracking: svc}),
		RecordHandler:  httpH.NewRecordHandler(svc),
		HealthHandler:  httpH.NewHealthHandler(),
		WebhookSecret:  secret,
	})
}

func do(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouterHealthRoutes(t *testing.T) {
	r := newTestRouter(t, "", nil)
	for _, path := range []string{"/", "/healthcheck", "/api/health"} {
		rec := do(r, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"), path)
	}
	rec := do(r, httptest.NewRequest(http.MethodGet, "/favicon.png", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRouterWebhookRequiresSecret(t *testing.T) {
	r := newTestRouter(t, "hunter2", nil)
	body := `{"update_id":1}`

	rec := do(r, httptest.NewRequest(http.MethodPost, "/telegram_webhook", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/telegram_webhook", strings.NewReader(body))
	req.Header.Set(httpMW.HeaderTelegramSecret, "hunter2")
	rec = do(r, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"no_message"}`, rec.Body.String())
}

func TestRouterExposesMetrics(t *testing.T) {
	m := observability.NewMetrics(time.Second)
	r := newTestRouter(t, "", m)

	do(r, httptest.NewRequest(http.MethodPost, "/telegram_webhook", strings.NewReader(`{"update_id":1}`)))
	rec := do(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `dt_api_requests_total{method="POST",route="/telegram_webhook",status="200"} 1`)
}

func TestRouterParsePreview(t *testing.T) {
	r := newTestRouter(t, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader(`{"text":"peso 71.2"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := do(r, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Updated today: Peso=71.2"`)
}
