package routestore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/HeartlessDevil29/Labirint/maze"
	"github.com/HeartlessDevil29/Labirint/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	fixesKeyFmt   = "%s:route:%s:fixes"
	closedKeyFmt  = "%s:closed"
	lockKeyFmt    = "%s:lock"
	defaultPrefix = "labirint"
	unlockTimeout = 2 * time.Second
)

// RedisFixBuffer keeps the fixes of routes being recorded in Redis lists with TTL support.
// Writes to one route are serialized by a redsync mutex.
type RedisFixBuffer struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	ttl    time.Duration
	logger i.Logger
}

// NewRedisFixBuffer initializes a RedisFixBuffer with the provided Redis client and TTL.
// A route's buffer expires ttlSeconds after its first fix.
func NewRedisFixBuffer(client *redis.Client, prefix string, ttlSeconds int, logger i.Logger) (i.FixBuffer, error) {
	if client == nil || logger == nil {
		return nil, fmt.Errorf("redis client and logger are required")
	}
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("route ttl must be positive, got %d", ttlSeconds)
	}
	if prefix == "" {
		prefix = defaultPrefix
	}

	buffer := &RedisFixBuffer{
		client: client,
		prefix: prefix,
		ttl:    time.Duration(ttlSeconds) * time.Second,
		logger: logger,
	}
	pool := goredis.NewPool(client)
	buffer.locker = redsync.New(pool)
	return buffer, nil
}

// Append pushes fixes to the tail of the route's list and sets expiration if necessary.
func (b *RedisFixBuffer) Append(ctx context.Context, routeID uuid.UUID, fixes []maze.Coordinate) (int64, error) {
	members, err := encodeFixes(fixes)
	if err != nil {
		return 0, err
	}

	key := b.key(routeID)
	var count int64
	err = b.withLock(ctx, key, func() error {
		if err := b.ensureOpen(ctx, key); err != nil {
			return err
		}
		n, err := b.client.RPush(ctx, key, members...).Result()
		if err != nil {
			return err
		}
		count = n
		b.expireIfUnset(ctx, key)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Fixes returns every buffered fix of the route in recording order.
func (b *RedisFixBuffer) Fixes(ctx context.Context, routeID uuid.UUID) ([]maze.Coordinate, error) {
	raw, err := b.client.LRange(ctx, b.key(routeID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return decodeFixes(raw)
}

// Drain removes and returns the route's fixes when at least minFixes are buffered,
// and marks the route closed so later appends are refused.
func (b *RedisFixBuffer) Drain(ctx context.Context, routeID uuid.UUID, minFixes int) ([]maze.Coordinate, error) {
	key := b.key(routeID)
	var fixes []maze.Coordinate
	err := b.withLock(ctx, key, func() error {
		if err := b.ensureOpen(ctx, key); err != nil {
			return err
		}
		raw, err := b.client.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return err
		}
		if fixes, err = decodeFixes(raw); err != nil {
			return err
		}
		if len(fixes) < minFixes {
			return nil
		}

		_, err = b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.Set(ctx, fmt.Sprintf(closedKeyFmt, key), 1, b.ttl)
			return nil
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return fixes, nil
}

// Restore reopens a drained route and pushes fixes back into its list.
func (b *RedisFixBuffer) Restore(ctx context.Context, routeID uuid.UUID, fixes []maze.Coordinate) error {
	members, err := encodeFixes(fixes)
	if err != nil {
		return err
	}

	key := b.key(routeID)
	return b.withLock(ctx, key, func() error {
		_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, fmt.Sprintf(closedKeyFmt, key))
			if len(members) > 0 {
				pipe.RPush(ctx, key, members...)
				pipe.Expire(ctx, key, b.ttl)
			}
			return nil
		})
		return err
	})
}

// withLock runs fn while holding the route's mutex. The mutex is released
// with its own context so a canceled request still frees it.
func (b *RedisFixBuffer) withLock(ctx context.Context, key string, fn func() error) error {
	mutex := b.locker.NewMutex(fmt.Sprintf(lockKeyFmt, key))
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		unlockCtx, cancel := context.WithTimeout(context.Background(), unlockTimeout)
		defer cancel()
		if _, err := mutex.UnlockContext(unlockCtx); err != nil {
			b.logger.Warning(fmt.Sprintf("releasing lock of %s: %s", key, err))
		}
	}()

	return fn()
}

func (b *RedisFixBuffer) ensureOpen(ctx context.Context, key string) error {
	closed, err := b.client.Exists(ctx, fmt.Sprintf(closedKeyFmt, key)).Result()
	if err != nil {
		return err
	}
	if closed > 0 {
		return i.ErrBufferClosed
	}
	return nil
}

// Set expiration only if it's not already set
func (b *RedisFixBuffer) expireIfUnset(ctx context.Context, key string) {
	ttl, err := b.client.TTL(ctx, key).Result()
	if err == nil && ttl == -1 {
		if err := b.client.Expire(ctx, key, b.ttl).Err(); err != nil {
			b.logger.Warning(fmt.Sprintf("setting ttl on %s: %s", key, err))
		}
	}
}

func (b *RedisFixBuffer) key(routeID uuid.UUID) string {
	return fmt.Sprintf(fixesKeyFmt, b.prefix, routeID)
}

func encodeFixes(fixes []maze.Coordinate) ([]interface{}, error) {
	members := make([]interface{}, 0, len(fixes))
	for _, fix := range fixes {
		data, err := json.Marshal(fix)
		if err != nil {
			return nil, err
		}
		members = append(members, string(data))
	}
	return members, nil
}

func decodeFixes(raw []string) ([]maze.Coordinate, error) {
	fixes := make([]maze.Coordinate, 0, len(raw))
	for _, member := range raw {
		var fix maze.Coordinate
		if err := json.Unmarshal([]byte(member), &fix); err != nil {
			return nil, fmt.Errorf("decoding buffered fix %q: %w", member, err)
		}
		fixes = append(fixes, fix)
	}
	return fixes, nil
}
