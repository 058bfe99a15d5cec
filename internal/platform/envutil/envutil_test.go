package envutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReaders(t *testing.T) {
	t.Setenv("ENVUTIL_STR", "  hello ")
	t.Setenv("ENVUTIL_INT", "42")
	t.Setenv("ENVUTIL_BAD_INT", "forty")
	t.Setenv("ENVUTIL_BOOL", "Yes")
	t.Setenv("ENVUTIL_SECS", "15")
	t.Setenv("ENVUTIL_FLOAT", "0.25")

	assert.Equal(t, "hello", String("ENVUTIL_STR", "x"))
	assert.Equal(t, "x", String("ENVUTIL_MISSING", "x"))
	assert.Equal(t, 42, Int("ENVUTIL_INT", 1))
	assert.Equal(t, 1, Int("ENVUTIL_BAD_INT", 1))
	assert.True(t, Bool("ENVUTIL_BOOL", false))
	assert.True(t, Bool("ENVUTIL_MISSING", true))
	assert.Equal(t, 15*time.Second, Seconds("ENVUTIL_SECS", time.Second))
	assert.Equal(t, time.Second, Seconds("ENVUTIL_MISSING", time.Second))
	assert.InDelta(t, 0.25, Float("ENVUTIL_FLOAT", 1), 1e-9)
	assert.InDelta(t, 1.0, Float("ENVUTIL_STR", 1), 1e-9)
}
