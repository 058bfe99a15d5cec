package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/dailytrack-backend/internal/clients/redis"
	"github.com/yungbote/dailytrack-backend/internal/clients/telegram"
	"github.com/yungbote/dailytrack-backend/internal/observability"
	"github.com/yungbote/dailytrack-backend/internal/platform/ctxutil"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
	"github.com/yungbote/dailytrack-backend/internal/services"
)

const (
	statusNoMessage          = "no_message"
	statusUnknownMessageType = "unknown_message_type"
	statusInvalidPayload     = "invalid_payload"
	statusDuplicate          = "duplicate"
	statusError              = "error"
)

type WebhookHandlerDeps struct {
	Log      *logger.Logger
	Tracking services.TrackingService
	// Guard may be nil, in which case redelivered updates are processed again.
	Guard   redis.UpdateGuard
	Metrics *observability.Metrics
}

type WebhookHandler struct {
	log      *logger.Logger
	tracking services.TrackingService
	guard    redis.UpdateGuard
	metrics  *observability.Metrics
}

func NewWebhookHandler(deps WebhookHandlerDeps) *WebhookHandler {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &WebhookHandler{
		log:      log.With("handler", "WebhookHandler"),
		tracking: deps.Tracking,
		guard:    deps.Guard,
		metrics:  deps.Metrics,
	}
}

// POST /telegram_webhook
func (h *WebhookHandler) Telegram(c *gin.Context) {
	var update telegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.log.Warn("Invalid webhook payload", "error", err)
		h.respond(c, http.StatusBadRequest, gin.H{"status": statusInvalidPayload})
		return
	}
	h.log.Debug("Received webhook update", "update_id", update.UpdateID)

	msg := update.Message
	if msg == nil {
		h.respond(c, http.StatusOK, gin.H{"status": statusNoMessage})
		return
	}
	in := services.InboundMessage{UpdateID: update.UpdateID, Text: msg.Text}
	if msg.Chat != nil {
		in.Recipient = strconv.FormatInt(msg.Chat.ID, 10)
	}
	ctxutil.RequestDataFrom(c.Request.Context()).NoteUpdate(in.UpdateID, in.Recipient)

	// Whitespace-only text is still text; the parser turns it into no_valid_fields.
	if msg.Text == "" {
		h.log.Warn("Unknown message type", "update_id", update.UpdateID)
		h.respond(c, http.StatusOK, gin.H{"status": statusUnknownMessageType})
		return
	}

	ctx := c.Request.Context()
	if !h.claim(ctx, update.UpdateID) {
		h.respond(c, http.StatusOK, gin.H{"status": statusDuplicate})
		return
	}

	out, err := h.tracking.HandleMessage(ctx, in)
	if err != nil {
		h.release(ctx, update.UpdateID)
		h.log.Error("Unhandled error in webhook", "update_id", update.UpdateID, "error", err)
		h.respond(c, http.StatusInternalServerError, gin.H{"status": statusError, "error": "internal error"})
		return
	}
	h.respond(c, http.StatusOK, gin.H{"status": out.Status, "message": out.Message})
}

func (h *WebhookHandler) respond(c *gin.Context, code int, body gin.H) {
	if status, ok := body["status"].(string); ok {
		h.metrics.IncWebhookOutcome(status)
		ctxutil.RequestDataFrom(c.Request.Context()).NoteOutcome(status)
	}
	c.JSON(code, body)
}

func (h *WebhookHandler) claim(ctx context.Context, updateID int64) bool {
	if h.guard == nil || updateID == 0 {
		return true
	}
	first, err := h.guard.Claim(ctx, updateID)
	if err != nil {
		h.log.Warn("Update de-duplication unavailable", "update_id", updateID, "error", err)
		return true
	}
	return first
}

func (h *WebhookHandler) release(ctx context.Context, updateID int64) {
	if h.guard == nil || updateID == 0 {
		return
	}
	if err := h.guard.Release(context.WithoutCancel(ctx), updateID); err != nil {
		h.log.Warn("Could not release update id", "update_id", updateID, "error", err)
	}
}
