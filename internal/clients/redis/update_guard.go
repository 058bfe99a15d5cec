package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
)

// UpdateGuard remembers webhook update ids so a redelivered update is only
// processed once.
type UpdateGuard interface {
	// Claim reports whether id was not seen before and marks it as seen.
	Claim(ctx context.Context, id int64) (bool, error)
	// Release forgets id so a redelivery gets processed again.
	Release(ctx context.Context, id int64) error
	Close() error
}

type Config struct {
	Addr   string
	Prefix string
	TTL    time.Duration
}

type updateGuard struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewUpdateGuard(log *logger.Logger, cfg Config) (UpdateGuard, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newUpdateGuard(log, rdb, cfg), nil
}

func newUpdateGuard(log *logger.Logger, rdb *goredis.Client, cfg Config) *updateGuard {
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "dailytrack:update"
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &updateGuard{
		log:    log.With("service", "RedisUpdateGuard"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (g *updateGuard) key(id int64) string {
	return g.prefix + ":" + strconv.FormatInt(id, 10)
}

func (g *updateGuard) Claim(ctx context.Context, id int64) (bool, error) {
	if g == nil || g.rdb == nil {
		return true, fmt.Errorf("redis update guard not initialized")
	}
	ok, err := g.rdb.SetNX(ctx, g.key(id), time.Now().UTC().Unix(), g.ttl).Result()
	if err != nil {
		return true, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

func (g *updateGuard) Release(ctx context.Context, id int64) error {
	if g == nil || g.rdb == nil {
		return nil
	}
	return g.rdb.Del(ctx, g.key(id)).Err()
}

func (g *updateGuard) Close() error {
	if g == nil || g.rdb == nil {
		return nil
	}
	return g.rdb.Close()
}
