package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/alex-pricope/event-judging-system/scoring"
	"github.com/alex-pricope/event-judging-system/storage"
	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisLeaderboardCache, *miniredis.Miniredis) {
	t.Helper()
	logging.Log = logrus.New()

	server := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), RedisConfig{Addr: server.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLeaderboardCache(client, time.Minute), server
}

func TestRedisLeaderboardCache(t *testing.T) {
	ctx := context.Background()
	standings := []scoring.Standing{
		{TeamID: "t1", TeamName: "AI Innovators", TotalMembers: 3, Round1Marks: 37.5, TotalMarks: 37.5, JudgeCount: 2},
		{TeamID: "t2", TeamName: "Beta", SelectedForRound2: true, Round1Marks: 10.67, Round2Marks: 20, TotalMarks: 30.67, JudgeCount: 3},
	}

	t.Run("Happy path - set then get", func(t *testing.T) {
		c, server := newTestCache(t)

		c.Set(ctx, storage.EventPosterPresentation, standings)
		got, ok := c.Get(ctx, storage.EventPosterPresentation)
		require.True(t, ok)
		assert.Equal(t, standings, got)

		assert.True(t, server.Exists("leaderboard:poster-presentation"))
		assert.Equal(t, time.Minute, server.TTL("leaderboard:poster-presentation"))
	})

	t.Run("Happy path - events are cached separately", func(t *testing.T) {
		c, _ := newTestCache(t)

		c.Set(ctx, storage.EventPosterPresentation, standings)
		_, ok := c.Get(ctx, storage.EventStartupExpo)
		assert.False(t, ok)
	})

	t.Run("Happy path - invalidate drops the entry", func(t *testing.T) {
		c, server := newTestCache(t)

		c.Set(ctx, storage.EventPaperPresentation, standings)
		c.Invalidate(ctx, storage.EventPaperPresentation)

		_, ok := c.Get(ctx, storage.EventPaperPresentation)
		assert.False(t, ok)
		assert.False(t, server.Exists("leaderboard:paper-presentation"))
	})

	t.Run("Unhappy path - corrupt entry is a miss and gets removed", func(t *testing.T) {
		c, server := newTestCache(t)
		require.NoError(t, server.Set("leaderboard:startup-expo", "{not json"))

		_, ok := c.Get(ctx, storage.EventStartupExpo)
		assert.False(t, ok)
		assert.False(t, server.Exists("leaderboard:startup-expo"))
	})

	t.Run("Unhappy path - redis down is a miss", func(t *testing.T) {
		c, server := newTestCache(t)
		c.Set(ctx, storage.EventStartupExpo, standings)
		server.Close()

		_, ok := c.Get(ctx, storage.EventStartupExpo)
		assert.False(t, ok)
		c.Invalidate(ctx, storage.EventStartupExpo)
	})
}

func TestNewRedisClientUnreachable(t *testing.T) {
	logging.Log = logrus.New()
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	_, err := NewRedisClient(context.Background(), RedisConfig{Addr: addr})
	assert.Error(t, err)
}
