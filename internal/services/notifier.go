package services

import (
	"context"
	"fmt"

	"github.com/yungbote/dailytrack-backend/internal/clients/telegram"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
)

// Notifier delivers a confirmation to the chat a message came from.
// Delivery is best effort; callers log failures and move on.
type Notifier interface {
	Notify(ctx context.Context, recipient string, text string) error
}

type telegramNotifier struct {
	client telegram.Client
}

func NewTelegramNotifier(client telegram.Client) Notifier {
	return &telegramNotifier{client: client}
}

func (n *telegramNotifier) Notify(ctx context.Context, recipient string, text string) error {
	if n == nil || n.client == nil {
		return fmt.Errorf("telegram notifier not configured")
	}
	_, err := n.client.SendMessage(ctx, recipient, text)
	return err
}

type logNotifier struct {
	log *logger.Logger
}

// NewLogNotifier only logs the confirmation; used when no bot token is set.
func NewLogNotifier(log *logger.Logger) Notifier {
	return &logNotifier{log: log.With("service", "LogNotifier")}
}

func (n *logNotifier) Notify(_ context.Context, recipient string, text string) error {
	n.log.Info("Confirmation not delivered (no notifier configured)", "recipient", recipient, "text", text)
	return nil
}
