package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/alex-pricope/event-judging-system/api/models"
	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/alex-pricope/event-judging-system/scoring"
	"github.com/alex-pricope/event-judging-system/storage"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type TeamController struct {
	teams       storage.TeamStorage
	evaluations storage.EvaluationStorage
	cache       scoring.LeaderboardCache
}

func NewTeamController(teams storage.TeamStorage, evaluations storage.EvaluationStorage, cache scoring.LeaderboardCache) *TeamController {
	if cache == nil {
		cache = scoring.NopCache{}
	}
	return &TeamController{teams: teams, evaluations: evaluations, cache: cache}
}

// RegisterRoutes mounts team management on an admin-only group.
func (c *TeamController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/teams", c.getAll)
	group.GET("/teams/:id", c.get)
	group.POST("/teams", c.create)
	group.PUT("/teams/:id", c.update)
	group.DELETE("/teams/:id", c.delete)
}

// @Security BearerAuth
// @Summary Get all teams, newest first
// @Tags admin/teams
// @Produce json
// @Success 200 {array} models.TeamResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/teams [get]
func (c *TeamController) getAll(g *gin.Context) {
	teams, err := c.teams.GetAll(g.Request.Context())
	if err != nil {
		respondError(g, "TEAM", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformTeamsFromStorage(teams))
}

// @Security BearerAuth
// @Summary Get a team by ID
// @Tags admin/teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} models.TeamResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/teams/{id} [get]
func (c *TeamController) get(g *gin.Context) {
	team, err := c.teams.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		respondError(g, "TEAM", err)
		return
	}
	if team == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "team not found"})
		return
	}
	g.JSON(http.StatusOK, models.TransformTeamFromStorage(team))
}

// @Security BearerAuth
// @Summary Create a team
// @Tags admin/teams
// @Accept json
// @Produce json
// @Param team body models.TeamCreateRequest true "Team object"
// @Success 201 {object} models.TeamResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/teams [post]
func (c *TeamController) create(g *gin.Context) {
	var req models.TeamCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Warnf("TEAM: invalid create team request: %v", err)
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request empty name"})
		return
	}
	event, err := parseEventType(req.EventType)
	if err != nil {
		respondError(g, "TEAM", err)
		return
	}

	now := time.Now().UTC()
	team := &storage.Team{
		ID:          gonanoid.Must(),
		Name:        name,
		EventType:   event,
		Members:     models.TransformMembersToStorage(req.Members),
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.teams.Create(g.Request.Context(), team); err != nil {
		respondError(g, "TEAM", err)
		return
	}
	c.cache.Invalidate(g.Request.Context(), team.EventType)

	logging.Log.Infof("TEAM: created team %s (%s)", team.ID, team.EventType)
	g.JSON(http.StatusCreated, models.TransformTeamFromStorage(team))
}

// @Security BearerAuth
// @Summary Update a team
// @Description Only the fields present in the body are changed.
// @Tags admin/teams
// @Accept json
// @Produce json
// @Param id path string true "Team ID"
// @Param team body models.TeamUpdateRequest true "Fields to change"
// @Success 200 {object} models.TeamResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/teams/{id} [put]
func (c *TeamController) update(g *gin.Context) {
	ctx := g.Request.Context()

	var req models.TeamUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Warnf("TEAM: invalid update team request: %v", err)
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request"})
		return
	}

	team, err := c.teams.Get(ctx, g.Param("id"))
	if err != nil {
		respondError(g, "TEAM", err)
		return
	}
	if team == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "team not found"})
		return
	}
	previousEvent := team.EventType

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request empty name"})
			return
		}
		team.Name = name
	}
	if req.EventType != nil {
		event, err := parseEventType(*req.EventType)
		if err != nil {
			respondError(g, "TEAM", err)
			return
		}
		team.EventType = event
	}
	if req.Members != nil {
		for _, m := range *req.Members {
			if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Email) == "" {
				g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "every member needs a name and an email"})
				return
			}
		}
		team.Members = models.TransformMembersToStorage(*req.Members)
	}
	if req.Description != nil {
		team.Description = *req.Description
	}
	team.UpdatedAt = time.Now().UTC()

	if err := c.teams.Update(ctx, team); err != nil {
		respondError(g, "TEAM", err)
		return
	}
	c.cache.Invalidate(ctx, team.EventType)
	if previousEvent != team.EventType {
		c.cache.Invalidate(ctx, previousEvent)
	}

	g.JSON(http.StatusOK, models.TransformTeamFromStorage(team))
}

// @Security BearerAuth
// @Summary Delete a team and all of its evaluations
// @Tags admin/teams
// @Produce json
// @Param id path string true "Team ID"
// @Success 200 {object} models.TeamDeleteResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/teams/{id} [delete]
func (c *TeamController) delete(g *gin.Context) {
	ctx := g.Request.Context()

	team, err := c.teams.Get(ctx, g.Param("id"))
	if err != nil {
		respondError(g, "TEAM", err)
		return
	}
	if team == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "team not found"})
		return
	}

	// evaluations are removed before the team so none outlive it
	deleted, err := c.evaluations.DeleteByTeam(ctx, team.ID)
	if err != nil {
		respondError(g, "TEAM", err)
		return
	}
	if err := c.teams.Delete(ctx, team.ID); err != nil {
		respondError(g, "TEAM", err)
		return
	}
	c.cache.Invalidate(ctx, team.EventType)

	g.JSON(http.StatusOK, &models.TeamDeleteResponse{
		Message:            "Team and associated evaluations removed",
		EvaluationsDeleted: deleted,
	})
}
