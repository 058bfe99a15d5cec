package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVs(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"telegram_token", "123:abc",
		"chat_id", int64(42),
		"status", "success",
		"dangling",
	})
	assert.Len(t, out, 7)
	assert.Equal(t, "[REDACTED]", out[1])
	hashed, ok := out[3].(string)
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(hashed, "hash:"))
	assert.Equal(t, "success", out[5])
	assert.Equal(t, "dangling", out[6])
}

func TestHashValueStable(t *testing.T) {
	assert.Equal(t, hashValue("42"), hashValue(42))
	assert.Equal(t, "", hashValue(nil))
}

func TestNopLogger(t *testing.T) {
	l := Nop().With("component", "test")
	l.Info("nothing to see", "k", "v")
	l.Sync()
}
