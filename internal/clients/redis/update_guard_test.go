package redis

import (
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/dailytrack-backend/internal/platform/logger"
)

func TestNewUpdateGuardValidation(t *testing.T) {
	_, err := NewUpdateGuard(nil, Config{Addr: "localhost:6379"})
	require.Error(t, err)

	_, err = NewUpdateGuard(logger.Nop(), Config{})
	require.Error(t, err)
}

func TestUpdateGuardDefaults(t *testing.T) {
	rdb := goredis.NewClient(&goredis.Options{Addr: "localhost:0"})
	defer rdb.Close()

	g := newUpdateGuard(logger.Nop(), rdb, Config{})
	assert.Equal(t, "dailytrack:update:77", g.key(77))
	assert.Equal(t, 24*time.Hour, g.ttl)

	g = newUpdateGuard(logger.Nop(), rdb, Config{Prefix: "x", TTL: time.Minute})
	assert.Equal(t, "x:1", g.key(1))
	assert.Equal(t, time.Minute, g.ttl)
}
