package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one sorted set per requester, scored by search time in
// milliseconds, so several processes can share a quota.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to redisURL and checks the connection
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStoreFromClient(rdb, ttl), nil
}

// NewRedisStoreFromClient wraps an existing redis.Client for use in tests.
// Keys expire ttl after their last write.
func NewRedisStoreFromClient(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func quotaKey(nationID int) string { return "pnw:quota:" + strconv.Itoa(nationID) }

func (s *RedisStore) Count(ctx context.Context, nationID int, since time.Time) (int, error) {
	key := quotaKey(nationID)

	var card *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(since.UnixMilli(), 10))
		card = pipe.ZCard(ctx, key)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count searches: %w", err)
	}
	return int(card.Val()), nil
}

// reserveScript prunes, counts and conditionally adds in one server-side step.
// KEYS[1] quota key; ARGV since ms, at ms, member, limit, ttl ms.
var reserveScript = redis.NewScript(`
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', ARGV[1])
if redis.call('ZCARD', KEYS[1]) >= tonumber(ARGV[4]) then
  return 0
end
redis.call('ZADD', KEYS[1], ARGV[2], ARGV[3])
if tonumber(ARGV[5]) > 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[5])
end
return 1
`)

func (s *RedisStore) Reserve(ctx context.Context, nationID int, since time.Time, entry Entry, limit int) (bool, error) {
	ok, err := reserveScript.Run(ctx, s.rdb, []string{quotaKey(nationID)},
		since.UnixMilli(),
		entry.At.UnixMilli(),
		entry.ID,
		limit,
		s.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("reserve search: %w", err)
	}
	return ok == 1, nil
}

func (s *RedisStore) Release(ctx context.Context, nationID int, entryID string) error {
	if err := s.rdb.ZRem(ctx, quotaKey(nationID), entryID).Err(); err != nil {
		return fmt.Errorf("release search: %w", err)
	}
	return nil
}
