package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/yungbote/dailytrack-backend/internal/domain/tracking"
)

func newRecordRouter(svc *fakeTracking) *gin.Engine {
	h := NewRecordHandler(svc)
	r := gin.New()
	r.GET("/api/records/today", h.Today)
	r.POST("/api/parse", h.Parse)
	r.GET("/api/messages", h.Messages)
	return r
}

func TestRecordParse(t *testing.T) {
	rec := serve(t, newRecordRouter(newFakeTracking()), http.MethodPost, "/api/parse", `{"text":"kcal 2100, cerve 2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected code: %d", rec.Code)
	}
	var body struct {
		Status  string             `json:"status"`
		Updates map[string]float64 `json:"updates"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "success" || body.Updates["KCal"] != 2100 || body.Updates["Cerve"] != 2 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestRecordParseRejectsBadJSON(t *testing.T) {
	rec := serve(t, newRecordRouter(newFakeTracking()), http.MethodPost, "/api/parse", `nope`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected code: %d", rec.Code)
	}
}

func TestRecordToday(t *testing.T) {
	svc := newFakeTracking()
	r := newRecordRouter(svc)

	if rec := serve(t, r, http.MethodGet, "/api/records/today", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing record: got %d", rec.Code)
	}

	peso := 70.0
	svc.today = &domain.DailyRecord{Day: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Peso: &peso}
	if rec := serve(t, r, http.MethodGet, "/api/records/today", ""); rec.Code != http.StatusOK {
		t.Fatalf("existing record: got %d", rec.Code)
	}

	svc.err = errBoom
	rec := serve(t, r, http.MethodGet, "/api/records/today", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("failing lookup: got %d", rec.Code)
	}
	if got := rec.Body.String(); got == "" || !json.Valid([]byte(got)) {
		t.Fatalf("expected json error envelope, got %q", got)
	}
}

func TestRecordMessages(t *testing.T) {
	svc := newFakeTracking()
	r := newRecordRouter(svc)

	rec := serve(t, r, http.MethodGet, "/api/messages", "")
	if rec.Code != http.StatusOK || rec.Body.String() != `{"messages":[]}` {
		t.Fatalf("empty log: %d %s", rec.Code, rec.Body.String())
	}
	if svc.lastLimit != defaultMessageLimit {
		t.Fatalf("default limit: got %d", svc.lastLimit)
	}

	svc.messages = []*domain.MessageLog{
		{UpdateID: 2, ChatID: "42", Text: "kcal 2000", Status: domain.MessageStatusApplied},
		{UpdateID: 1, ChatID: "42", Text: "p 70", Status: domain.MessageStatusFailed},
	}
	rec = serve(t, r, http.MethodGet, "/api/messages?limit=1", "")
	var body struct {
		Messages []domain.MessageLog `json:"messages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Messages) != 1 || body.Messages[0].UpdateID != 2 {
		t.Fatalf("unexpected messages: %+v", body.Messages)
	}

	serve(t, r, http.MethodGet, "/api/messages?limit=5000", "")
	if svc.lastLimit != maxMessageLimit {
		t.Fatalf("limit not capped: got %d", svc.lastLimit)
	}

	for _, bad := range []string{"0", "-3", "ten"} {
		if rec := serve(t, r, http.MethodGet, "/api/messages?limit="+bad, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("limit %q: got %d", bad, rec.Code)
		}
	}

	svc.err = errBoom
	if rec := serve(t, r, http.MethodGet, "/api/messages", ""); rec.Code != http.StatusInternalServerError {
		t.Fatalf("failing lookup: got %d", rec.Code)
	}
}
