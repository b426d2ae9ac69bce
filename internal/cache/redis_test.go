package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRedis(t *testing.T) {
	t.Run("connects to reachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		InitRedis(mr.Addr())
		t.Cleanup(func() { client = nil })

		c := GetClient()
		require.NotNil(t, c)
		assert.NoError(t, c.Ping(context.Background()).Err())
	})

	t.Run("accepts redis URLs", func(t *testing.T) {
		mr := miniredis.RunT(t)
		InitRedis("redis://" + mr.Addr() + "/0")
		t.Cleanup(func() { client = nil })
		assert.NotNil(t, GetClient())
	})

	t.Run("invalid URL leaves client nil", func(t *testing.T) {
		InitRedis("redis://:bad url")
		assert.Nil(t, GetClient())
	})

	t.Run("unreachable server leaves client nil", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		InitRedis(addr)
		assert.Nil(t, GetClient())
	})
}
