package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "od:7:42", key(7, 42))
	assert.NotEqual(t, key(1, 23), key(12, 3))
}

// TestRedisCache_Unreachable verifies errors from the server surface to the caller
// instead of being reported as cache misses.
func TestRedisCache_Unreachable(t *testing.T) {
	c := NewRedisCache("127.0.0.1:1", "", 0, time.Minute)
	t.Cleanup(func() { _ = c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := c.GetOrder(ctx, 1, 1)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.Error(t, c.Ping(ctx))
}
