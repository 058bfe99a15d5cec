package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/yungbote/dailytrack-backend/internal/domain/tracking"
	"github.com/yungbote/dailytrack-backend/internal/http/response"
	"github.com/yungbote/dailytrack-backend/internal/services"
)

type RecordHandler struct {
	tracking services.TrackingService
}

func NewRecordHandler(tracking services.TrackingService) *RecordHandler {
	return &RecordHandler{tracking: tracking}
}

// GET /api/records/today
func (h *RecordHandler) Today(c *gin.Context) {
	row, err := h.tracking.Today(c.Request.Context())
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "record_lookup_failed", err)
		return
	}
	if row == nil {
		response.RespondError(c, http.StatusNotFound, "no_record_today", nil)
		return
	}
	response.RespondOK(c, gin.H{"record": row})
}

const (
	defaultMessageLimit = 20
	maxMessageLimit     = 100
)

// GET /api/messages?limit=20
func (h *RecordHandler) Messages(c *gin.Context) {
	limit := defaultMessageLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", nil)
			return
		}
		limit = min(n, maxMessageLimit)
	}
	rows, err := h.tracking.RecentMessages(c.Request.Context(), limit)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "message_lookup_failed", err)
		return
	}
	if rows == nil {
		rows = []*domain.MessageLog{}
	}
	response.RespondOK(c, gin.H{"messages": rows})
}

// POST /api/parse
// body: { "text": "s 7, p 70" }
func (h *RecordHandler) Parse(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	out := h.tracking.Preview(req.Text)
	response.RespondOK(c, gin.H{
		"status":  out.Status,
		"message": out.Message,
		"updates": out.Updates.Map(),
	})
}
