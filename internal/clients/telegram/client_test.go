package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
)

func newTestClient(t *testing.T, srv *httptest.Server, retries int) Client {
	t.Helper()
	c, err := New(logger.Nop(), Config{Token: "123:abc", BaseURL: srv.URL, Timeout: 2 * time.Second, MaxRetries: retries})
	require.NoError(t, err)
	return c
}

func TestSendMessage(t *testing.T) {
	var got sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:abc/sendMessage", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":9,"chat":{"id":42},"text":"Updated today: Peso=70"}}`))
	}))
	defer srv.Close()

	msg, err := newTestClient(t, srv, 0).SendMessage(context.Background(), "42", "Updated today: Peso=70")
	require.NoError(t, err)
	assert.Equal(t, int64(9), msg.MessageID)
	assert.Equal(t, "42", got.ChatID)
	assert.Equal(t, "Updated today: Peso=70", got.Text)
}

func TestSendMessageRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`bad gateway`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":1}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, 2).SendMessage(context.Background(), "42", "hi")
	require.NoError(t, err)
	assert.EqualValues(t, 2, calls.Load())
}

func TestSendMessageClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv, 3).SendMessage(context.Background(), "42", "hi")
	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, 400, herr.StatusCode)
	assert.Contains(t, herr.Error(), "chat not found")
	assert.EqualValues(t, 1, calls.Load())
}

func TestSendMessageValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()
	c := newTestClient(t, srv, 0)

	_, err := c.SendMessage(context.Background(), " ", "hi")
	require.Error(t, err)
	_, err = c.SendMessage(context.Background(), "42", "")
	require.Error(t, err)
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New(logger.Nop(), Config{})
	require.Error(t, err)
	_, err = New(nil, Config{Token: "x"})
	require.Error(t, err)
}
