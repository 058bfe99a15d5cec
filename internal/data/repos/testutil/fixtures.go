package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	domain "github.com/yungbote/dailytrack-backend/internal/domain/tracking"
	core "github.com/yungbote/dailytrack-backend/internal/tracking"
)

// SeedDailyRecord inserts a row for day holding the given metrics.
func SeedDailyRecord(tb testing.TB, ctx context.Context, tx *gorm.DB, day core.Day, metrics map[core.Column]float64) *domain.DailyRecord {
	tb.Helper()
	u := core.NewUpdates()
	for _, c := range core.Columns() {
		if v, ok := metrics[c]; ok {
			u.Set(c, v)
		}
	}
	row := domain.NewDailyRecord(day, u)
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed daily record: %v", err)
	}
	return row
}
