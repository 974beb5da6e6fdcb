package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/alex-pricope/event-judging-system/api/transport"
	"github.com/alex-pricope/event-judging-system/auth"
	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/alex-pricope/event-judging-system/scoring"
	"github.com/alex-pricope/event-judging-system/storage"
	"github.com/alex-pricope/event-judging-system/testutil"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "secret123"

type testEnv struct {
	router *gin.Engine
	stores *storage.Stores
	tokens *auth.TokenService
	hasher *auth.PasswordHasher
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logging.Log = logrus.New()

	stores := testutil.NewSQLStores(t)
	tokens := auth.NewTokenService("test-secret", time.Hour)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	directory := &auth.Directory{Admins: stores.Admins, Judges: stores.Judges}
	authenticate := transport.AuthMiddleware(tokens, directory, true)

	recorder := scoring.NewRecorder(stores.Teams, stores.Evaluations, nil)
	aggregator := scoring.NewAggregator(stores.Teams, stores.Judges, stores.Evaluations, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()

	NewAuthController(stores.Admins, stores.Judges, tokens, hasher, InitialAdmin{
		Name:     "Super Admin",
		Email:    "admin@example.com",
		Password: "admin-password",
	}).RegisterRoutes(r)

	adminGroup := r.Group("/admin", authenticate, transport.RequireAdmin())
	judgeGroup := r.Group("/judge", authenticate, transport.RequireJudge())

	NewTeamController(stores.Teams, stores.Evaluations, nil).RegisterRoutes(adminGroup)
	NewJudgeController(stores.Judges, hasher).RegisterRoutes(adminGroup)
	NewEvaluationController(stores.Teams, recorder).RegisterRoutes(judgeGroup)
	leaderboards := NewLeaderboardController(aggregator)
	leaderboards.RegisterAdminRoutes(adminGroup)
	leaderboards.RegisterJudgeRoutes(judgeGroup)

	return &testEnv{router: r, stores: stores, tokens: tokens, hasher: hasher}
}

// adminToken stores an admin and returns a token for it.
func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	hash, err := e.hasher.Hash(testPassword)
	require.NoError(t, err)
	admin := &storage.Admin{ID: gonanoid.Must(), Name: "Admin", Email: gonanoid.Must(8) + "@admins.example.com", PasswordHash: hash}
	require.NoError(t, e.stores.Admins.Create(context.Background(), admin))

	token, err := e.tokens.Issue(admin.ID, auth.RoleAdmin)
	require.NoError(t, err)
	return token
}

// judge stores an active judge for event and returns it with a token.
func (e *testEnv) judge(t *testing.T, name string, event storage.EventType) (*storage.Judge, string) {
	t.Helper()
	hash, err := e.hasher.Hash(testPassword)
	require.NoError(t, err)
	judge := &storage.Judge{
		ID:            gonanoid.Must(),
		Name:          name,
		Email:         name + "@judges.example.com",
		PasswordHash:  hash,
		AssignedEvent: event,
		IsActive:      true,
	}
	require.NoError(t, e.stores.Judges.Create(context.Background(), judge))

	token, err := e.tokens.Issue(judge.ID, auth.RoleJudge)
	require.NoError(t, err)
	return judge, token
}

func (e *testEnv) team(t *testing.T, name string, event storage.EventType) *storage.Team {
	t.Helper()
	team := &storage.Team{
		ID:        gonanoid.Must(),
		Name:      name,
		EventType: event,
		Members:   []storage.Member{{Name: "Grace", Email: "grace@example.com"}},
	}
	require.NoError(t, e.stores.Teams.Create(context.Background(), team))
	return team
}

func fullRound(number, score int) map[string]interface{} {
	questions := make([]map[string]int, 0, scoring.QuestionsCount)
	for q := 1; q <= scoring.QuestionsCount; q++ {
		questions = append(questions, map[string]int{"questionNumber": q, "score": score})
	}
	return map[string]interface{}{"roundNumber": number, "questions": questions}
}
