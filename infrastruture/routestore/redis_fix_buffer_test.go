package routestore

import (
	"context"
	"testing"
	"time"

	"github.com/HeartlessDevil29/Labirint/maze"
	"github.com/HeartlessDevil29/Labirint/service/i"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redsync/redsync/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

var fixes = []maze.Coordinate{{Lat: 10.5, Lon: -20.25}, {Lat: -89.999999, Lon: 179.5}}

func newTestBuffer(t *testing.T) (*RedisFixBuffer, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	buffer, err := NewRedisFixBuffer(client, "", 60, nopLogger{})
	require.NoError(t, err)
	return buffer.(*RedisFixBuffer), mr
}

func TestNewRedisFixBuffer(t *testing.T) {
	_, err := NewRedisFixBuffer(nil, "", 60, nopLogger{})
	assert.Error(t, err)

	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	_, err = NewRedisFixBuffer(client, "", 60, nil)
	assert.Error(t, err)

	_, err = NewRedisFixBuffer(client, "", 0, nopLogger{})
	assert.Error(t, err)

	buffer, err := NewRedisFixBuffer(client, "", 60, nopLogger{})
	require.NoError(t, err)

	id := uuid.MustParse("2b0f3c1e-6b7a-4f60-9a52-3f9d1c0b7e11")
	assert.Equal(t, "labirint:route:2b0f3c1e-6b7a-4f60-9a52-3f9d1c0b7e11:fixes", buffer.(*RedisFixBuffer).key(id))
}

func TestRedisFixBuffer(t *testing.T) {
	ctx := context.Background()

	t.Run("Append keeps the first TTL", func(t *testing.T) {
		b, mr := newTestBuffer(t)
		id := uuid.New()

		count, err := b.Append(ctx, id, fixes[:1])
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.Equal(t, 60*time.Second, mr.TTL(b.key(id)))

		mr.FastForward(10 * time.Second)
		count, err = b.Append(ctx, id, fixes[1:])
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.Equal(t, 50*time.Second, mr.TTL(b.key(id)))

		stored, err := b.Fixes(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, fixes, stored)
	})

	t.Run("Drain below the minimum leaves the list", func(t *testing.T) {
		b, mr := newTestBuffer(t)
		id := uuid.New()
		_, err := b.Append(ctx, id, fixes[:1])
		require.NoError(t, err)

		drained, err := b.Drain(ctx, id, 2)
		require.NoError(t, err)
		assert.Equal(t, fixes[:1], drained)
		assert.True(t, mr.Exists(b.key(id)))

		_, err = b.Append(ctx, id, fixes[1:])
		assert.NoError(t, err)
	})

	t.Run("Drain clears and closes the route", func(t *testing.T) {
		b, mr := newTestBuffer(t)
		id := uuid.New()
		_, err := b.Append(ctx, id, fixes)
		require.NoError(t, err)

		drained, err := b.Drain(ctx, id, 2)
		require.NoError(t, err)
		assert.Equal(t, fixes, drained)
		assert.False(t, mr.Exists(b.key(id)))

		_, err = b.Append(ctx, id, fixes[:1])
		assert.ErrorIs(t, err, i.ErrBufferClosed)
		assert.False(t, mr.Exists(b.key(id)))

		_, err = b.Drain(ctx, id, 2)
		assert.ErrorIs(t, err, i.ErrBufferClosed)
	})

	t.Run("Restore reopens the route", func(t *testing.T) {
		b, _ := newTestBuffer(t)
		id := uuid.New()
		_, err := b.Append(ctx, id, fixes)
		require.NoError(t, err)
		_, err = b.Drain(ctx, id, 2)
		require.NoError(t, err)

		require.NoError(t, b.Restore(ctx, id, fixes))
		count, err := b.Append(ctx, id, fixes[:1])
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("Lock is released after the request is canceled", func(t *testing.T) {
		b, _ := newTestBuffer(t)
		key := b.key(uuid.New())

		reqCtx, cancel := context.WithCancel(ctx)
		err := b.withLock(reqCtx, key, func() error {
			cancel()
			return nil
		})
		require.NoError(t, err)

		mutex := b.locker.NewMutex(key+":lock", redsync.WithTries(1))
		require.NoError(t, mutex.Lock())
		_, err = mutex.Unlock()
		assert.NoError(t, err)
	})
}

func TestFixCodec(t *testing.T) {
	t.Run("Round trip keeps order", func(t *testing.T) {
		members, err := encodeFixes(fixes)
		require.NoError(t, err)
		assert.Equal(t, `{"latitude":10.5,"longitude":-20.25}`, members[0])

		raw := make([]string, len(members))
		for n, m := range members {
			raw[n] = m.(string)
		}
		decoded, err := decodeFixes(raw)
		require.NoError(t, err)
		assert.Equal(t, fixes, decoded)
	})

	t.Run("Corrupt member", func(t *testing.T) {
		_, err := decodeFixes([]string{"not json"})
		assert.Error(t, err)
	})
}
