package api

import (
	"net/http"
	"testing"
	"time"

	testutils "github.com/alex-pricope/event-judging-system/api/controllers/testing"
	"github.com/alex-pricope/event-judging-system/api/models"
	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/alex-pricope/event-judging-system/scoring"
	"github.com/alex-pricope/event-judging-system/testutil"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		AuthConfig: AuthConfig{
			JWTSecret:           "integration-secret",
			TokenTTL:            time.Hour,
			BcryptCost:          4,
			EnforceActiveJudges: true,
		},
		SetupConfig: SetupConfig{
			AdminName:     "Super Admin",
			AdminEmail:    "admin@example.com",
			AdminPassword: "admin-password",
		},
	}
}

func login(t *testing.T, router *gin.Engine, path, email, password string) string {
	t.Helper()
	res := testutils.PerformRequest(router, http.MethodPost, path, models.LoginRequest{Email: email, Password: password}, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	return testutils.DecodeBody[models.LoginResponse](res).Token
}

func TestEvaluationFlow(t *testing.T) {
	logging.Log = logrus.New()
	router := NewHandler(gin.TestMode, testConfig(), testutil.NewSQLStores(t), scoring.NopCache{})

	res := testutils.PerformRequest(router, http.MethodPost, "/auth/setup/initial-admin", nil, nil)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	admin := testutils.BearerHeaders(login(t, router, "/auth/admin/login", "admin@example.com", "admin-password"))

	res = testutils.PerformRequest(router, http.MethodPost, "/admin/teams", models.TeamCreateRequest{
		Name:      "AI Innovators",
		EventType: "poster-presentation",
		Members:   []models.Member{{Name: "Ada", Email: "ada@example.com"}, {Name: "Alan", Email: "alan@example.com"}},
	}, admin)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	team := testutils.DecodeBody[models.TeamResponse](res)

	for _, email := range []string{"a@judges.example.com", "b@judges.example.com"} {
		res = testutils.PerformRequest(router, http.MethodPost, "/admin/judges", models.JudgeCreateRequest{
			Name: email, Email: email, Password: "judge-pass", AssignedEvent: "poster-presentation",
		}, admin)
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
	}
	judgeA := testutils.BearerHeaders(login(t, router, "/auth/judge/login", "a@judges.example.com", "judge-pass"))
	judgeB := testutils.BearerHeaders(login(t, router, "/auth/judge/login", "b@judges.example.com", "judge-pass"))

	round := func(number, score int) models.RoundRequest {
		r := models.RoundRequest{RoundNumber: number}
		for q := 1; q <= 5; q++ {
			r.Questions = append(r.Questions, models.QuestionScoreRequest{QuestionNumber: q, Score: score})
		}
		return r
	}

	t.Run("Happy path - two judges score round 1", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/judge/evaluations",
			models.SubmitEvaluationRequest{TeamID: team.ID, Rounds: []models.RoundRequest{round(1, 5)}}, judgeA)
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())
		res = testutils.PerformRequest(router, http.MethodPost, "/judge/evaluations",
			models.SubmitEvaluationRequest{TeamID: team.ID, Rounds: []models.RoundRequest{round(1, 10)}}, judgeB)
		require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

		res = testutils.PerformRequest(router, http.MethodGet, "/judge/leaderboard/poster-presentation", nil, judgeA)
		require.Equal(t, http.StatusOK, res.Code)
		entries := testutils.DecodeBody[[]models.LeaderboardEntry](res)
		require.Len(t, entries, 1)
		assert.Equal(t, 37.5, entries[0].Round1Marks)
		assert.Equal(t, 2, entries[0].JudgeCount)
		assert.False(t, entries[0].SelectedForRound2)
	})

	t.Run("Happy path - selection and round 2", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/judge/teams/"+team.ID+"/select-round2", nil, judgeB)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		res = testutils.PerformRequest(router, http.MethodPost, "/judge/evaluations",
			models.SubmitEvaluationRequest{TeamID: team.ID, Rounds: []models.RoundRequest{round(1, 10), round(2, 6)}}, judgeB)
		require.Equal(t, http.StatusOK, res.Code, res.Body.String())

		res = testutils.PerformRequest(router, http.MethodGet, "/admin/leaderboards/all", nil, admin)
		require.Equal(t, http.StatusOK, res.Code)
		boards := testutils.DecodeBody[map[string][]models.LeaderboardEntry](res)
		entry := boards["poster-presentation"][0]
		assert.True(t, entry.SelectedForRound2)
		assert.Equal(t, 37.5, entry.Round1Marks)
		assert.Equal(t, 30.0, entry.Round2Marks)
		assert.Equal(t, 67.5, entry.TotalMarks)
	})

	t.Run("Happy path - request id echoed", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/admin/event-types", nil, map[string]string{
			"Authorization": admin["Authorization"],
			"X-Request-ID":  "flow-123",
		})
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "flow-123", res.Header().Get("X-Request-ID"))
	})
}
