package scoring

import (
	"context"

	"github.com/alex-pricope/event-judging-system/storage"
)

// LeaderboardCache holds averaged leaderboards per event. Implementations log and
// swallow their own failures; a failed Get is a miss.
type LeaderboardCache interface {
	Get(ctx context.Context, event storage.EventType) ([]Standing, bool)
	Set(ctx context.Context, event storage.EventType, standings []Standing)
	Invalidate(ctx context.Context, event storage.EventType)
}

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) Get(context.Context, storage.EventType) ([]Standing, bool) { return nil, false }
func (NopCache) Set(context.Context, storage.EventType, []Standing)        {}
func (NopCache) Invalidate(context.Context, storage.EventType)             {}
