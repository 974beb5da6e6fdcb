package controllers

import (
	"net/http"

	"github.com/alex-pricope/event-judging-system/api/models"
	"github.com/alex-pricope/event-judging-system/scoring"
	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	aggregator *scoring.Aggregator
}

func NewLeaderboardController(aggregator *scoring.Aggregator) *LeaderboardController {
	return &LeaderboardController{aggregator: aggregator}
}

// RegisterAdminRoutes mounts the admin views. The per-event board there is the
// summed one.
func (c *LeaderboardController) RegisterAdminRoutes(group *gin.RouterGroup) {
	group.GET("/event-types", c.getEventTypes)
	group.GET("/leaderboard/:eventType", c.getRawLeaderboard)
	group.GET("/leaderboards/all", c.getAllLeaderboards)
	group.GET("/analytics/team/:teamId", c.getTeamAnalytics)
}

func (c *LeaderboardController) RegisterJudgeRoutes(group *gin.RouterGroup) {
	group.GET("/leaderboard/:eventType", c.getLeaderboard)
	group.GET("/leaderboards/all", c.getAllLeaderboards)
	group.GET("/analytics/team/:teamId", c.getTeamAnalytics)
}

// @Security BearerAuth
// @Summary List the event types
// @Tags admin
// @Produce json
// @Success 200 {array} models.EventTypeResponse
// @Router /admin/event-types [get]
func (c *LeaderboardController) getEventTypes(g *gin.Context) {
	g.JSON(http.StatusOK, models.TransformEventTypes())
}

// @Security BearerAuth
// @Summary Summed leaderboard for one event
// @Description Adds up every judge's round totals. Includes the raw evaluations.
// @Tags admin
// @Produce json
// @Param eventType path string true "Event type" Enums(poster-presentation, paper-presentation, startup-expo)
// @Success 200 {array} models.RawLeaderboardEntry
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/leaderboard/{eventType} [get]
func (c *LeaderboardController) getRawLeaderboard(g *gin.Context) {
	event, err := parseEventType(g.Param("eventType"))
	if err != nil {
		respondError(g, "LEADERBOARD", err)
		return
	}
	standings, err := c.aggregator.RankTeams(g.Request.Context(), event)
	if err != nil {
		respondError(g, "LEADERBOARD", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformRawStandings(standings))
}

// @Security BearerAuth
// @Summary Averaged leaderboard for one event
// @Description Each round is averaged over the judges who scored it, rounded to two decimals.
// @Tags judge
// @Produce json
// @Param eventType path string true "Event type" Enums(poster-presentation, paper-presentation, startup-expo)
// @Success 200 {array} models.LeaderboardEntry
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /judge/leaderboard/{eventType} [get]
func (c *LeaderboardController) getLeaderboard(g *gin.Context) {
	event, err := parseEventType(g.Param("eventType"))
	if err != nil {
		respondError(g, "LEADERBOARD", err)
		return
	}
	standings, err := c.aggregator.RankTeamsAveraged(g.Request.Context(), event)
	if err != nil {
		respondError(g, "LEADERBOARD", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformStandings(standings))
}

// @Security BearerAuth
// @Summary Averaged leaderboards for every event
// @Tags admin,judge
// @Produce json
// @Success 200 {object} map[string][]models.LeaderboardEntry
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/leaderboards/all [get]
// @Router /judge/leaderboards/all [get]
func (c *LeaderboardController) getAllLeaderboards(g *gin.Context) {
	boards, err := c.aggregator.AllLeaderboards(g.Request.Context())
	if err != nil {
		respondError(g, "LEADERBOARD", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformAllStandings(boards))
}

// @Security BearerAuth
// @Summary Every judge's score sheet for a team
// @Tags admin,judge
// @Produce json
// @Param teamId path string true "Team ID"
// @Success 200 {object} models.TeamAnalyticsResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/analytics/team/{teamId} [get]
// @Router /judge/analytics/team/{teamId} [get]
func (c *LeaderboardController) getTeamAnalytics(g *gin.Context) {
	analytics, err := c.aggregator.TeamAnalytics(g.Request.Context(), g.Param("teamId"))
	if err != nil {
		respondError(g, "LEADERBOARD", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformTeamAnalytics(analytics))
}
