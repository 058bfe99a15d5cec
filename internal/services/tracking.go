package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"

	trackingrepo "github.com/yungbote/dailytrack-backend/internal/data/repos/tracking"
	domain "github.com/yungbote/dailytrack-backend/internal/domain/tracking"
	"github.com/yungbote/dailytrack-backend/internal/observability"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
	"github.com/yungbote/dailytrack-backend/internal/tracking"
)

var tracer = otel.Tracer("github.com/yungbote/dailytrack-backend/internal/services")

const (
	StatusSuccess       = "success"
	StatusNoValidFields = "no_valid_fields"

	noValidFieldsMessage = "No valid fields found in message."
)

// InboundMessage is the part of a chat event the pipeline needs.
type InboundMessage struct {
	UpdateID  int64
	Recipient string
	Text      string
}

// Outcome is the result of a pipeline run that did not fail.
type Outcome struct {
	Status  string
	Message string
	Updates *tracking.Updates
	Day     *tracking.Day
}

type TrackingService interface {
	HandleMessage(ctx context.Context, msg InboundMessage) (*Outcome, error)
	Preview(text string) *Outcome
	Today(ctx context.Context) (*domain.DailyRecord, error)
	RecentMessages(ctx context.Context, limit int) ([]*domain.MessageLog, error)
}

type TrackingServiceConfig struct {
	NotifyTimeout time.Duration
	Metrics       *observability.Metrics
}

type trackingService struct {
	log        *logger.Logger
	parser     *tracking.Parser
	clock      *tracking.Clock
	reconciler Reconciler
	records    trackingrepo.DailyRecordRepo
	messages   trackingrepo.MessageLogRepo
	notifier   Notifier
	cfg        TrackingServiceConfig
}

func NewTrackingService(
	log *logger.Logger,
	parser *tracking.Parser,
	clock *tracking.Clock,
	reconciler Reconciler,
	records trackingrepo.DailyRecordRepo,
	messages trackingrepo.MessageLogRepo,
	notifier Notifier,
	cfg TrackingServiceConfig,
) TrackingService {
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 10 * time.Second
	}
	return &trackingService{
		log:        log.With("service", "TrackingService"),
		parser:     parser,
		clock:      clock,
		reconciler: reconciler,
		records:    records,
		messages:   messages,
		notifier:   notifier,
		cfg:        cfg,
	}
}

// HandleMessage runs parse -> reconcile -> notify. Zero recognised fields is
// an Outcome, not an error, and never reaches storage. Only storage faults
// are returned as errors; a failed notification is logged and ignored.
func (s *trackingService) HandleMessage(ctx context.Context, msg InboundMessage) (*Outcome, error) {
	ctx, span := tracer.Start(ctx, "tracking.handle_message")
	defer span.End()

	updates := s.parser.Parse(msg.Text)
	span.SetAttributes(attribute.Int("tracking.parsed_columns", updates.Len()))

	if updates.Empty() {
		s.log.Info("No valid fields in message", "update_id", msg.UpdateID, "chat_id", msg.Recipient)
		return &Outcome{Status: StatusNoValidFields, Message: noValidFieldsMessage, Updates: updates}, nil
	}

	day := s.clock.Today()
	summary, err := s.reconciler.Reconcile(ctx, day, updates)
	if err != nil {
		s.log.Error("Reconciliation failed",
			"update_id", msg.UpdateID,
			"day", day.String(),
			"transient", errors.Is(err, trackingrepo.ErrStorageUnavailable),
			"error", err,
		)
		s.record(ctx, msg, domain.MessageStatusFailed, updates, &day)
		return nil, err
	}

	confirmation := tracking.Confirmation(summary.Updates)
	s.log.Info("Daily record updated", "update_id", msg.UpdateID, "day", day.String(), "updates", tracking.Format(updates))
	s.record(ctx, msg, domain.MessageStatusApplied, updates, &day)
	s.notify(ctx, msg.Recipient, confirmation)

	return &Outcome{Status: StatusSuccess, Message: confirmation, Updates: updates, Day: &day}, nil
}

// Preview parses text without touching storage.
func (s *trackingService) Preview(text string) *Outcome {
	updates := s.parser.Parse(text)
	if updates.Empty() {
		return &Outcome{Status: StatusNoValidFields, Message: noValidFieldsMessage, Updates: updates}
	}
	return &Outcome{Status: StatusSuccess, Message: tracking.Confirmation(updates), Updates: updates}
}

func (s *trackingService) Today(ctx context.Context) (*domain.DailyRecord, error) {
	return s.records.Get(ctx, s.clock.Today().Date)
}

// RecentMessages returns the newest message log entries, newest first.
func (s *trackingService) RecentMessages(ctx context.Context, limit int) ([]*domain.MessageLog, error) {
	if s.messages == nil {
		return nil, nil
	}
	return s.messages.ListRecent(ctx, limit)
}

// notify runs after the commit with its own deadline so a slow or cancelled
// request cannot undo or hold up a stored update.
func (s *trackingService) notify(ctx context.Context, recipient, text string) {
	if s.notifier == nil || recipient == "" {
		return
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.NotifyTimeout)
	defer cancel()
	nctx, span := tracer.Start(nctx, "tracking.notify")
	defer span.End()

	if err := s.notifier.Notify(nctx, recipient, text); err != nil {
		span.RecordError(err)
		s.cfg.Metrics.IncNotifyFailure()
		s.log.Warn("Confirmation delivery failed", "chat_id", recipient, "error", err)
	}
}

func (s *trackingService) record(ctx context.Context, msg InboundMessage, status string, updates *tracking.Updates, day *tracking.Day) {
	if s.messages == nil {
		return
	}
	entry := &domain.MessageLog{
		UpdateID: msg.UpdateID,
		ChatID:   msg.Recipient,
		Text:     msg.Text,
		Status:   status,
	}
	if !updates.Empty() {
		if raw, err := json.Marshal(updates.Map()); err == nil {
			entry.Parsed = datatypes.JSON(raw)
		}
	}
	if day != nil {
		d := day.Date
		entry.Day = &d
	}
	if err := s.messages.Create(context.WithoutCancel(ctx), entry); err != nil {
		s.log.Warn("Message log write failed", "update_id", msg.UpdateID, "error", err)
	}
}
