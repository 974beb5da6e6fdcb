package controllers

import (
	"net/http"
	"sort"

	"github.com/alex-pricope/event-judging-system/api/models"
	"github.com/alex-pricope/event-judging-system/api/transport"
	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/alex-pricope/event-judging-system/scoring"
	"github.com/alex-pricope/event-judging-system/storage"
	"github.com/gin-gonic/gin"
)

type EvaluationController struct {
	teams    storage.TeamStorage
	recorder *scoring.Recorder
}

func NewEvaluationController(teams storage.TeamStorage, recorder *scoring.Recorder) *EvaluationController {
	return &EvaluationController{teams: teams, recorder: recorder}
}

// RegisterRoutes mounts the judge scoring surface on a judge-only group.
func (c *EvaluationController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/teams/assigned", c.getAssignedTeams)
	group.GET("/teams/all", c.getAllTeams)
	group.POST("/teams/:teamId/select-round2", c.selectForRound2)
	group.POST("/evaluations", c.submitEvaluation)
	group.GET("/evaluations/team/:teamId", c.getEvaluation)
}

// @Security BearerAuth
// @Summary Teams of the judge's assigned event
// @Tags judge
// @Produce json
// @Success 200 {array} models.TeamResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /judge/teams/assigned [get]
func (c *EvaluationController) getAssignedTeams(g *gin.Context) {
	judge, ok := transport.Judge(g)
	if !ok {
		g.JSON(http.StatusUnauthorized, &models.ErrorResponse{Error: "not authorized"})
		return
	}

	teams, err := c.teams.GetByEvent(g.Request.Context(), judge.AssignedEvent)
	if err != nil {
		respondError(g, "EVAL", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformTeamsFromStorage(teams))
}

// @Security BearerAuth
// @Summary All teams, ordered by event then name
// @Tags judge
// @Produce json
// @Success 200 {array} models.TeamResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /judge/teams/all [get]
func (c *EvaluationController) getAllTeams(g *gin.Context) {
	teams, err := c.teams.GetAll(g.Request.Context())
	if err != nil {
		respondError(g, "EVAL", err)
		return
	}
	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].EventType != teams[j].EventType {
			return teams[i].EventType < teams[j].EventType
		}
		return teams[i].Name < teams[j].Name
	})
	g.JSON(http.StatusOK, models.TransformTeamsFromStorage(teams))
}

// submitEvaluation godoc
// @Security BearerAuth
// @Summary Create or update the caller's evaluation of a team
// @Description Round and evaluation totals are always recomputed from the question scores.
// @Tags judge
// @Accept json
// @Produce json
// @Param evaluation body models.SubmitEvaluationRequest true "Scores"
// @Success 200 {object} models.EvaluationResponse "Updated"
// @Success 201 {object} models.EvaluationResponse "Created"
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse "Team belongs to another event"
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /judge/evaluations [post]
func (c *EvaluationController) submitEvaluation(g *gin.Context) {
	judge, ok := transport.Judge(g)
	if !ok {
		g.JSON(http.StatusUnauthorized, &models.ErrorResponse{Error: "not authorized"})
		return
	}

	var req models.SubmitEvaluationRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Warnf("EVAL: invalid evaluation request from %s: %v", judge.ID, err)
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request"})
		return
	}

	evaluation, created, err := c.recorder.SubmitEvaluation(g.Request.Context(), judge, req.TeamID, req.StorageRounds(), req.Remarks)
	if err != nil {
		respondError(g, "EVAL", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	g.JSON(status, models.TransformEvaluationFromStorage(evaluation))
}

// @Security BearerAuth
// @Summary The caller's evaluation of a team
// @Tags judge
// @Produce json
// @Param teamId path string true "Team ID"
// @Success 200 {object} models.EvaluationResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /judge/evaluations/team/{teamId} [get]
func (c *EvaluationController) getEvaluation(g *gin.Context) {
	judge, ok := transport.Judge(g)
	if !ok {
		g.JSON(http.StatusUnauthorized, &models.ErrorResponse{Error: "not authorized"})
		return
	}

	evaluation, err := c.recorder.GetEvaluation(g.Request.Context(), judge, g.Param("teamId"))
	if err != nil {
		respondError(g, "EVAL", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformEvaluationFromStorage(evaluation))
}

// @Security BearerAuth
// @Summary Select a team for Round 2
// @Description Requires the caller to have scored at least one Round 1 question for the team.
// @Tags judge
// @Produce json
// @Param teamId path string true "Team ID"
// @Success 200 {object} models.SelectForRound2Response
// @Failure 400 {object} models.ErrorResponse "Round 1 not evaluated"
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /judge/teams/{teamId}/select-round2 [post]
func (c *EvaluationController) selectForRound2(g *gin.Context) {
	judge, ok := transport.Judge(g)
	if !ok {
		g.JSON(http.StatusUnauthorized, &models.ErrorResponse{Error: "not authorized"})
		return
	}

	team, err := c.recorder.SelectForRound2(g.Request.Context(), judge, g.Param("teamId"))
	if err != nil {
		respondError(g, "EVAL", err)
		return
	}
	g.JSON(http.StatusOK, &models.SelectForRound2Response{
		Message: "Team selected for Round 2",
		Team:    models.TransformTeamFromStorage(team),
	})
}
