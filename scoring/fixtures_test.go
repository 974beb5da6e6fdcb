package scoring

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alex-pricope/event-judging-system/auth"
	"github.com/alex-pricope/event-judging-system/storage"
	"github.com/alex-pricope/event-judging-system/testutil"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	stores     *storage.Stores
	recorder   *Recorder
	aggregator *Aggregator
	cache      *memoryCache
	clock      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		stores: testutil.NewSQLStores(t),
		cache:  newMemoryCache(),
		clock:  time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
	}
	f.recorder = NewRecorder(f.stores.Teams, f.stores.Evaluations, f.cache)
	f.recorder.now = func() time.Time {
		f.clock = f.clock.Add(time.Minute)
		return f.clock
	}
	f.aggregator = NewAggregator(f.stores.Teams, f.stores.Judges, f.stores.Evaluations, f.cache)
	return f
}

func (f *fixture) team(t *testing.T, name string, event storage.EventType) *storage.Team {
	t.Helper()
	team := &storage.Team{
		ID:        gonanoid.Must(),
		Name:      name,
		EventType: event,
		Members:   []storage.Member{{Name: "Ada", Email: "ada@example.com"}, {Name: "Linus", Email: "linus@example.com", Role: "lead"}},
	}
	require.NoError(t, f.stores.Teams.Create(context.Background(), team))
	return team
}

func (f *fixture) judge(t *testing.T, name string, event storage.EventType) auth.JudgePrincipal {
	t.Helper()
	judge := &storage.Judge{
		ID:            gonanoid.Must(),
		Name:          name,
		Email:         name + "@judges.example.com",
		PasswordHash:  "not-a-real-hash",
		AssignedEvent: event,
		IsActive:      true,
	}
	require.NoError(t, f.stores.Judges.Create(context.Background(), judge))
	return auth.NewJudgePrincipal(judge)
}

func (f *fixture) submit(t *testing.T, judge auth.JudgePrincipal, team *storage.Team, rounds ...storage.Round) *storage.Evaluation {
	t.Helper()
	evaluation, _, err := f.recorder.SubmitEvaluation(context.Background(), judge, team.ID, rounds, "")
	require.NoError(t, err)
	return evaluation
}

type memoryCache struct {
	mu          sync.Mutex
	boards      map[storage.EventType][]Standing
	invalidated map[storage.EventType]int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		boards:      make(map[storage.EventType][]Standing),
		invalidated: make(map[storage.EventType]int),
	}
}

func (c *memoryCache) Get(_ context.Context, event storage.EventType) ([]Standing, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	standings, ok := c.boards[event]
	return standings, ok
}

func (c *memoryCache) Set(_ context.Context, event storage.EventType, standings []Standing) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.boards[event] = standings
}

func (c *memoryCache) Invalidate(_ context.Context, event storage.EventType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.boards, event)
	c.invalidated[event]++
}
