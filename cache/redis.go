// Package cache keeps computed leaderboards in redis between writes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/alex-pricope/event-judging-system/scoring"
	"github.com/alex-pricope/event-judging-system/storage"
	"github.com/redis/go-redis/v9"
)

const DefaultPrefix = "leaderboard:"

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings redis, failing fast when it is unreachable.
func NewRedisClient(ctx context.Context, config RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
		PoolSize: 100,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", config.Addr, err)
	}

	logging.Log.Infof("CACHE: redis connection established at %s", config.Addr)
	return client, nil
}

// RedisLeaderboardCache implements scoring.LeaderboardCache. Redis failures are
// logged and treated as misses so scoring never depends on the cache.
type RedisLeaderboardCache struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

var _ scoring.LeaderboardCache = (*RedisLeaderboardCache)(nil)

func NewRedisLeaderboardCache(client *redis.Client, ttl time.Duration) *RedisLeaderboardCache {
	return &RedisLeaderboardCache{Client: client, TTL: ttl, Prefix: DefaultPrefix}
}

func (c *RedisLeaderboardCache) key(event storage.EventType) string {
	return c.Prefix + string(event)
}

func (c *RedisLeaderboardCache) Get(ctx context.Context, event storage.EventType) ([]scoring.Standing, bool) {
	val, err := c.Client.Get(ctx, c.key(event)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		logging.Log.Warnf("CACHE: get for %s failed: %v", event, err)
		return nil, false
	}

	var standings []scoring.Standing
	if err := json.Unmarshal(val, &standings); err != nil {
		logging.Log.Warnf("CACHE: dropping unreadable entry for %s: %v", event, err)
		c.Invalidate(ctx, event)
		return nil, false
	}
	return standings, true
}

func (c *RedisLeaderboardCache) Set(ctx context.Context, event storage.EventType, standings []scoring.Standing) {
	data, err := json.Marshal(standings)
	if err != nil {
		logging.Log.Warnf("CACHE: failed to encode standings for %s: %v", event, err)
		return
	}
	if err := c.Client.Set(ctx, c.key(event), data, c.TTL).Err(); err != nil {
		logging.Log.Warnf("CACHE: set for %s failed: %v", event, err)
	}
}

func (c *RedisLeaderboardCache) Invalidate(ctx context.Context, event storage.EventType) {
	if err := c.Client.Del(ctx, c.key(event)).Err(); err != nil {
		logging.Log.Warnf("CACHE: invalidate for %s failed: %v", event, err)
		return
	}
	logging.Log.Debugf("CACHE: invalidated leaderboard for %s", event)
}
