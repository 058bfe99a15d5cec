package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/dailytrack-backend/internal/platform/ctxutil"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"
)

// RequestContext puts a ctxutil.RequestData on the request context and echoes
// its ids back as headers. Caller-supplied ids win; otherwise the trace id
// comes from the active span, falling back to a fresh uuid.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		d := &ctxutil.RequestData{
			RequestID: strings.TrimSpace(c.GetHeader(headerRequestID)),
			TraceID:   strings.TrimSpace(c.GetHeader(headerTraceID)),
		}
		if d.RequestID == "" {
			d.RequestID = uuid.NewString()
		}
		if d.TraceID == "" {
			d.TraceID = spanTraceID(c)
		}
		if d.TraceID == "" {
			d.TraceID = uuid.NewString()
		}
		c.Request = c.Request.WithContext(ctxutil.WithRequestData(c.Request.Context(), d))
		c.Writer.Header().Set(headerTraceID, d.TraceID)
		c.Writer.Header().Set(headerRequestID, d.RequestID)
		c.Next()
	}
}

// AccessLog writes one line per request. Webhook deliveries are logged at
// info with the update and outcome the handler noted; probes and other
// successful traffic stay at debug.
func AccessLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		d := ctxutil.RequestDataFrom(c.Request.Context())
		fields = append(fields, d.LogFields()...)

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		case d != nil && d.Outcome != "":
			log.Info("Webhook delivery", fields...)
		default:
			log.Debug("HTTP request", fields...)
		}
	}
}

func spanTraceID(c *gin.Context) string {
	if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return ""
}
