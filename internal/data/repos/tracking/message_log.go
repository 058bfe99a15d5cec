package tracking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/yungbote/dailytrack-backend/internal/domain/tracking"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
)

type MessageLogRepo interface {
	Create(ctx context.Context, entry *domain.MessageLog) error
	ListRecent(ctx context.Context, limit int) ([]*domain.MessageLog, error)
}

type messageLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMessageLogRepo(db *gorm.DB, baseLog *logger.Logger) MessageLogRepo {
	return &messageLogRepo{
		db:  db,
		log: baseLog.With("repo", "MessageLogRepo"),
	}
}

func (r *messageLogRepo) Create(ctx context.Context, entry *domain.MessageLog) error {
	if entry == nil {
		return nil
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return MapError("create message log", err)
	}
	return nil
}

func (r *messageLogRepo) ListRecent(ctx context.Context, limit int) ([]*domain.MessageLog, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []*domain.MessageLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, MapError("list message log", err)
	}
	return out, nil
}
