package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/dailytrack-backend/internal/domain/tracking"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&tracking.DailyRecord{},
		&tracking.MessageLog{},
	)
}
