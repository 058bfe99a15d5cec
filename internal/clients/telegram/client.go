package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/dailytrack-backend/internal/pkg/httpx"
	"github.com/yungbote/dailytrack-backend/internal/platform/ctxutil"
	"github.com/yungbote/dailytrack-backend/internal/platform/envutil"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
)

type Client interface {
	SendMessage(ctx context.Context, chatID string, text string) (*Message, error)
}

type Config struct {
	Token      string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

func ConfigFromEnv() Config {
	return Config{
		Token:      envutil.String("TELEGRAM_TOKEN", ""),
		BaseURL:    envutil.String("TELEGRAM_BASE_URL", ""),
		Timeout:    envutil.Seconds("TELEGRAM_TIMEOUT_SECONDS", 15*time.Second),
		MaxRetries: envutil.Int("TELEGRAM_MAX_RETRIES", 3),
	}
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	cfg.Token = strings.TrimSpace(cfg.Token)
	if cfg.Token == "" {
		return nil, fmt.Errorf("missing TELEGRAM_TOKEN")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = "https://api.telegram.org"
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	return &client{
		log:        log.With("client", "TelegramClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

type Chat struct {
	ID       int64  `json:"id"`
	Type     string `json:"type,omitempty"`
	Username string `json:"username,omitempty"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	Date      int64  `json:"date,omitempty"`
	Chat      *Chat  `json:"chat,omitempty"`
	Text      string `json:"text,omitempty"`
}

// Update is the webhook payload Telegram posts for every event.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type apiResponse[T any] struct {
	OK          bool   `json:"ok"`
	Result      *T     `json:"result,omitempty"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
	Parameters  *struct {
		RetryAfter int `json:"retry_after,omitempty"`
	} `json:"parameters,omitempty"`
}

func (c *client) SendMessage(ctx context.Context, chatID string, text string) (*Message, error) {
	chatID = strings.TrimSpace(chatID)
	if chatID == "" {
		return nil, fmt.Errorf("telegram: chat id required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("telegram: text required")
	}
	return call[Message](ctx, c, "sendMessage", sendMessageRequest{ChatID: chatID, Text: text})
}

// ---------- HTTP / retry helpers ----------

type HTTPError struct {
	StatusCode  int
	Description string
	RetryAfterS int
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "telegram: <nil error>"
	}
	msg := strings.TrimSpace(e.Description)
	if msg == "" {
		msg = "<empty description>"
	}
	return fmt.Sprintf("telegram http %d: %s", e.StatusCode, msg)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (e *HTTPError) RetryAfter() time.Duration {
	if e == nil || e.RetryAfterS <= 0 {
		return 0
	}
	return time.Duration(e.RetryAfterS) * time.Second
}

func call[T any](ctx context.Context, c *client, method string, body any) (*T, error) {
	ctx = ctxutil.Default(ctx)
	endpoint := fmt.Sprintf("%s/bot%s/%s", c.cfg.BaseURL, c.cfg.Token, method)

	var out *T
	err := httpx.Retry(ctx, httpx.RetryPolicy{
		MaxRetries: c.cfg.MaxRetries,
		Backoff:    time.Second,
		MaxBackoff: 10 * time.Second,
		OnRetry: func(attempt int, sleep time.Duration, err error) {
			c.log.Warn("Telegram request retrying",
				"method", method,
				"attempt", attempt,
				"max_retries", c.cfg.MaxRetries,
				"sleep", sleep.String(),
				"error", err.Error(),
			)
		},
	}, func(ctx context.Context) error {
		res, err := callOnce[T](ctx, c, endpoint, body)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func callOnce[T any](ctx context.Context, c *client, endpoint string, body any) (*T, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	payload, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}

	var env apiResponse[T]
	decodeErr := json.Unmarshal(payload, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || (decodeErr == nil && !env.OK) {
		herr := &HTTPError{StatusCode: resp.StatusCode, Description: string(payload)}
		if decodeErr == nil {
			herr.Description = env.Description
			if env.ErrorCode != 0 {
				herr.StatusCode = env.ErrorCode
			}
			if env.Parameters != nil {
				herr.RetryAfterS = env.Parameters.RetryAfter
			}
		}
		if herr.RetryAfterS == 0 {
			herr.RetryAfterS = int(httpx.RetryAfterHeader(resp) / time.Second)
		}
		return nil, herr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("telegram decode error: %w", decodeErr)
	}
	if env.Result == nil {
		var zero T
		return &zero, nil
	}
	return env.Result, nil
}
