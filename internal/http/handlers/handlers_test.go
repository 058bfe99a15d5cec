package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	domain "github.com/yungbote/dailytrack-backend/internal/domain/tracking"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
	"github.com/yungbote/dailytrack-backend/internal/services"
	"github.com/yungbote/dailytrack-backend/internal/tracking"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

type fakeTracking struct {
	mu     sync.Mutex
	calls  []services.InboundMessage
	err    error
	parser *tracking.Parser
	today  *domain.DailyRecord

	messages  []*domain.MessageLog
	lastLimit int
}

func newFakeTracking() *fakeTracking {
	return &fakeTracking{parser: tracking.NewParser(nil)}
}

func (f *fakeTracking) HandleMessage(_ context.Context, msg services.InboundMessage) (*services.Outcome, error) {
	f.mu.Lock()
	f.calls = append(f.calls, msg)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.Preview(msg.Text), nil
}

func (f *fakeTracking) Preview(text string) *services.Outcome {
	updates := f.parser.Parse(text)
	if updates.Empty() {
		return &services.Outcome{Status: services.StatusNoValidFields, Message: "No valid fields found in message.", Updates: updates}
	}
	return &services.Outcome{Status: services.StatusSuccess, Message: tracking.Confirmation(updates), Updates: updates}
}

func (f *fakeTracking) Today(context.Context) (*domain.DailyRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.today, nil
}

func (f *fakeTracking) RecentMessages(_ context.Context, limit int) ([]*domain.MessageLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.messages) {
		return f.messages[:limit], nil
	}
	return f.messages, nil
}

func (f *fakeTracking) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeGuard struct {
	mu       sync.Mutex
	seen     map[int64]bool
	released []int64
	err      error
}

func (g *fakeGuard) Claim(_ context.Context, id int64) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return false, g.err
	}
	if g.seen == nil {
		g.seen = map[int64]bool{}
	}
	if g.seen[id] {
		return false, nil
	}
	g.seen[id] = true
	return true, nil
}

func (g *fakeGuard) Release(_ context.Context, id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.seen, id)
	g.released = append(g.released, id)
	return nil
}

func (g *fakeGuard) Close() error { return nil }

var errBoom = errors.New("boom")

func serve(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealthRoutes(t *testing.T) {
	h := NewHealthHandler()
	r := gin.New()
	r.GET("/", h.Root)
	r.GET("/healthcheck", h.HealthCheck)
	r.GET("/api/health", h.Health)
	r.GET("/favicon.ico", h.NoContent)

	if rec := serve(t, r, http.MethodGet, "/healthcheck", ""); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: %d %q", rec.Code, rec.Body.String())
	}
	if rec := serve(t, r, http.MethodGet, "/api/health", ""); !strings.Contains(rec.Body.String(), `"healthy"`) {
		t.Fatalf("health body: %q", rec.Body.String())
	}
	if rec := serve(t, r, http.MethodGet, "/", ""); rec.Code != http.StatusOK {
		t.Fatalf("root: %d", rec.Code)
	}
	if rec := serve(t, r, http.MethodGet, "/favicon.ico", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("favicon: %d", rec.Code)
	}
}
