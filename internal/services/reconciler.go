package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	trackingrepo "github.com/yungbote/dailytrack-backend/internal/data/repos/tracking"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
	"github.com/yungbote/dailytrack-backend/internal/tracking"
)

// Reconciler is the only writer of daily records.
type Reconciler interface {
	Reconcile(ctx context.Context, day tracking.Day, updates *tracking.Updates) (*tracking.Summary, error)
}

type reconciler struct {
	log     *logger.Logger
	records trackingrepo.DailyRecordRepo
}

func NewReconciler(log *logger.Logger, records trackingrepo.DailyRecordRepo) Reconciler {
	return &reconciler{
		log:     log.With("service", "Reconciler"),
		records: records,
	}
}

// Reconcile merges updates into the record for day. An empty update set is
// rejected with tracking.ErrEmptyUpdate and an unknown column with
// tracking.ErrUnknownColumn, both before storage is touched.
func (r *reconciler) Reconcile(ctx context.Context, day tracking.Day, updates *tracking.Updates) (*tracking.Summary, error) {
	ctx, span := tracer.Start(ctx, "tracking.reconcile")
	defer span.End()
	span.SetAttributes(
		attribute.String("tracking.day", day.String()),
		attribute.Int("tracking.columns", updates.Len()),
	)

	if err := updates.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := r.records.Upsert(ctx, day, updates); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upsert failed")
		return nil, fmt.Errorf("reconcile %s: %w", day.String(), err)
	}
	return &tracking.Summary{Day: day, Updates: updates}, nil
}
