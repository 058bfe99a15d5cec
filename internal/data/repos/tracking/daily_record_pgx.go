package tracking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/yungbote/dailytrack-backend/internal/domain/tracking"
	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
	core "github.com/yungbote/dailytrack-backend/internal/tracking"
)

type pgxDailyRecordRepo struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewPgxDailyRecordRepo runs the same merge as the gorm repo as one fixed,
// parameterised statement on a connection taken from pool for the duration
// of the call.
func NewPgxDailyRecordRepo(pool *pgxpool.Pool, baseLog *logger.Logger) DailyRecordRepo {
	return &pgxDailyRecordRepo{
		pool: pool,
		log:  baseLog.With("repo", "PgxDailyRecordRepo"),
	}
}

var (
	upsertDailyRecordSQL = buildUpsertSQL()
	selectDailyRecordSQL = buildSelectSQL()
)

func buildUpsertSQL() string {
	metrics := metricColumnNames()
	cols := append([]string{"day", "timestamp"}, metrics...)

	quoted := make([]string, len(cols))
	placeholders := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	sets := []string{`"timestamp" = excluded."timestamp"`}
	for _, m := range metrics {
		sets = append(sets, quoteIdent(m)+" = "+coalesceExcluded(m))
	}

	return "INSERT INTO " + tableName + " (" + strings.Join(quoted, ", ") + ")" +
		" VALUES (" + strings.Join(placeholders, ", ") + ")" +
		" ON CONFLICT (day) DO UPDATE SET " + strings.Join(sets, ", ")
}

func buildSelectSQL() string {
	cols := append([]string{"id", "day", "timestamp"}, metricColumnNames()...)
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	return "SELECT " + strings.Join(quoted, ", ") + " FROM " + tableName + " WHERE day = $1 LIMIT 1"
}

func upsertArgs(row *domain.DailyRecord) []any {
	args := []any{row.Day, row.Timestamp}
	for _, v := range row.Metrics() {
		args = append(args, v)
	}
	return args
}

func (r *pgxDailyRecordRepo) Upsert(ctx context.Context, day core.Day, updates *core.Updates) error {
	if err := updates.Validate(); err != nil {
		return err
	}
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return MapError("acquire connection", err)
	}
	defer conn.Release()

	row := domain.NewDailyRecord(day, updates)
	if _, err := conn.Exec(ctx, upsertDailyRecordSQL, upsertArgs(row)...); err != nil {
		return MapError("upsert daily record", err)
	}
	r.log.Debug("daily record upserted", "day", day.String(), "columns", updates.Len())
	return nil
}

func (r *pgxDailyRecordRepo) Get(ctx context.Context, date time.Time) (*domain.DailyRecord, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, MapError("acquire connection", err)
	}
	defer conn.Release()

	var row domain.DailyRecord
	err = conn.QueryRow(ctx, selectDailyRecordSQL, date).Scan(
		&row.ID,
		&row.Day,
		&row.Timestamp,
		&row.Suenho,
		&row.SuenhoProfundo,
		&row.Peso,
		&row.KCal,
		&row.KMNad,
		&row.Cerve,
		&row.Copete,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, MapError("get daily record", err)
	}
	return &row, nil
}
