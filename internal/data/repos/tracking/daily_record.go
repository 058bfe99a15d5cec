package tracking

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/yungbote/dailytrack-backend/internal/domain/tracking"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
	core "github.com/yungbote/dailytrack-backend/internal/tracking"
)

// DailyRecordRepo is the per-day record store. Upsert is a single atomic
// insert-or-merge keyed by day: metrics absent from updates keep their stored
// value.
type DailyRecordRepo interface {
	Upsert(ctx context.Context, day core.Day, updates *core.Updates) error
	Get(ctx context.Context, date time.Time) (*domain.DailyRecord, error)
}

type dailyRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyRecordRepo(db *gorm.DB, baseLog *logger.Logger) DailyRecordRepo {
	return &dailyRecordRepo{
		db:  db,
		log: baseLog.With("repo", "DailyRecordRepo"),
	}
}

// mergeOnConflict never varies: every metric column is written, and a NULL
// in the proposed row falls back to the stored value.
var mergeOnConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "day"}},
	DoUpdates: mergeAssignments(),
}

func mergeAssignments() clause.Set {
	set := clause.Set{{
		Column: clause.Column{Name: "timestamp"},
		Value:  gorm.Expr(`excluded."timestamp"`),
	}}
	for _, name := range metricColumnNames() {
		set = append(set, clause.Assignment{
			Column: clause.Column{Name: name},
			Value:  gorm.Expr(coalesceExcluded(name)),
		})
	}
	return set
}

func (r *dailyRecordRepo) Upsert(ctx context.Context, day core.Day, updates *core.Updates) error {
	if err := updates.Validate(); err != nil {
		return err
	}
	row := domain.NewDailyRecord(day, updates)
	err := r.db.WithContext(ctx).
		Clauses(mergeOnConflict).
		Create(row).Error
	if err != nil {
		return MapError("upsert daily record", err)
	}
	r.log.Debug("daily record upserted", "day", day.String(), "columns", updates.Len())
	return nil
}

func (r *dailyRecordRepo) Get(ctx context.Context, date time.Time) (*domain.DailyRecord, error) {
	var row domain.DailyRecord
	err := r.db.WithContext(ctx).
		Where("day = ?", date).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, MapError("get daily record", err)
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

const tableName = "general_track"

func metricColumnNames() []string {
	cols := core.Columns()
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, c.DBName())
	}
	return out
}

func quoteIdent(name string) string { return `"` + name + `"` }

func coalesceExcluded(name string) string {
	return "COALESCE(excluded." + quoteIdent(name) + ", " + tableName + "." + quoteIdent(name) + ")"
}
