package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yungbote/dailytrack-backend/internal/platform/ctxutil"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
)

func TestWebhookSecret(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		secret string
		header string
		want   int
	}{
		{name: "disabled", secret: "", header: "", want: http.StatusOK},
		{name: "match", secret: "s3cret", header: "s3cret", want: http.StatusOK},
		{name: "missing", secret: "s3cret", header: "", want: http.StatusUnauthorized},
		{name: "mismatch", secret: "s3cret", header: "s3cre", want: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := gin.New()
			r.POST("/hook", WebhookSecret(tc.secret), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodPost, "/hook", nil)
			if tc.header != "" {
				req.Header.Set(HeaderTelegramSecret, tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tc.want)
			}
		})
	}
}

func TestRequestContext(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	var seen *ctxutil.RequestData
	r := gin.New()
	r.Use(RequestContext())
	r.GET("/x", func(c *gin.Context) {
		seen = ctxutil.RequestDataFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(headerRequestID, " req-1 ")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if seen == nil {
		t.Fatal("request data not attached")
	}
	if seen.RequestID != "req-1" {
		t.Fatalf("unexpected request id: got=%q", seen.RequestID)
	}
	if seen.TraceID == "" || rec.Header().Get(headerTraceID) != seen.TraceID {
		t.Fatalf("trace id not echoed: ctx=%q header=%q", seen.TraceID, rec.Header().Get(headerTraceID))
	}
	if rec.Header().Get(headerRequestID) != "req-1" {
		t.Fatalf("request id not echoed: %q", rec.Header().Get(headerRequestID))
	}
}

func observedLogger(level zapcore.Level) (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestAccessLogWebhookDelivery(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	log, logs := observedLogger(zapcore.InfoLevel)
	r := gin.New()
	r.Use(RequestContext(), AccessLog(log))
	r.POST("/telegram_webhook", func(c *gin.Context) {
		d := ctxutil.RequestDataFrom(c.Request.Context())
		d.NoteUpdate(77, "42")
		d.NoteOutcome("success")
		c.Status(http.StatusOK)
	})
	r.GET("/healthcheck", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/telegram_webhook", nil))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected only the webhook line at info, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if entries[0].Message != "Webhook delivery" {
		t.Fatalf("unexpected message: %q", entries[0].Message)
	}
	if fields["update_id"] != int64(77) || fields["outcome"] != "success" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if chat, _ := fields["chat_id"].(string); chat == "42" || chat == "" {
		t.Fatalf("chat id should be hashed, got %q", chat)
	}
	if fields["path"] != "/telegram_webhook" || fields["request_id"] == "" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

func TestAccessLogLevels(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	log, logs := observedLogger(zapcore.DebugLevel)
	r := gin.New()
	r.Use(RequestContext(), AccessLog(log))
	r.GET("/status/:code", func(c *gin.Context) {
		switch c.Param("code") {
		case "500":
			c.Status(http.StatusInternalServerError)
		case "404":
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusOK)
		}
	})

	want := map[string]zapcore.Level{
		"/status/200": zapcore.DebugLevel,
		"/status/404": zapcore.WarnLevel,
		"/status/500": zapcore.ErrorLevel,
	}
	for path := range want {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	for _, e := range logs.All() {
		fields := e.ContextMap()
		path := strings.Replace(fields["path"].(string), ":code", "", 1)
		code := fields["status"]
		key := path + fmt.Sprint(code)
		if lvl, ok := want[key]; !ok || lvl != e.Level {
			t.Fatalf("unexpected level for %s: %s", key, e.Level)
		}
	}
	if logs.Len() != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), logs.Len())
	}
}
