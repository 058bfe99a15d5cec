package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	trackingrepo "github.com/yungbote/dailytrack-backend/internal/data/repos/tracking"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
)

type Repos struct {
	DailyRecord trackingrepo.DailyRecordRepo
	MessageLog  trackingrepo.MessageLogRepo
}

// wireRepos uses the pgx record store when pool is non-nil, gorm otherwise.
// The message log always goes through gorm.
func wireRepos(db *gorm.DB, pool *pgxpool.Pool, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	records := trackingrepo.NewDailyRecordRepo(db, log)
	if pool != nil {
		records = trackingrepo.NewPgxDailyRecordRepo(pool, log)
	}
	return Repos{
		DailyRecord: records,
		MessageLog:  trackingrepo.NewMessageLogRepo(db, log),
	}
}
