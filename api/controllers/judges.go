package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/alex-pricope/event-judging-system/api/models"
	"github.com/alex-pricope/event-judging-system/auth"
	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/alex-pricope/event-judging-system/storage"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type JudgeController struct {
	judges storage.JudgeStorage
	hasher *auth.PasswordHasher
}

func NewJudgeController(judges storage.JudgeStorage, hasher *auth.PasswordHasher) *JudgeController {
	return &JudgeController{judges: judges, hasher: hasher}
}

// RegisterRoutes mounts judge account management on an admin-only group.
func (c *JudgeController) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/judges", c.getAll)
	group.POST("/judges", c.create)
	group.PUT("/judges/:id", c.update)
	group.DELETE("/judges/:id", c.delete)
}

// @Security BearerAuth
// @Summary Get all judges, newest first
// @Tags admin/judges
// @Produce json
// @Success 200 {array} models.JudgeResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/judges [get]
func (c *JudgeController) getAll(g *gin.Context) {
	judges, err := c.judges.GetAll(g.Request.Context())
	if err != nil {
		respondError(g, "JUDGE", err)
		return
	}

	responses := make([]models.JudgeResponse, 0, len(judges))
	for _, j := range judges {
		responses = append(responses, models.TransformJudgeFromStorage(j))
	}
	g.JSON(http.StatusOK, responses)
}

// @Security BearerAuth
// @Summary Create a judge account
// @Tags admin/judges
// @Accept json
// @Produce json
// @Param judge body models.JudgeCreateRequest true "Judge object"
// @Success 201 {object} models.JudgeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/judges [post]
func (c *JudgeController) create(g *gin.Context) {
	var req models.JudgeCreateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Warnf("JUDGE: invalid create judge request: %v", err)
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request"})
		return
	}
	event, err := parseEventType(req.AssignedEvent)
	if err != nil {
		respondError(g, "JUDGE", err)
		return
	}

	hash, err := c.hasher.Hash(req.Password)
	if err != nil {
		respondError(g, "JUDGE", err)
		return
	}

	now := time.Now().UTC()
	judge := &storage.Judge{
		ID:            gonanoid.Must(),
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.TrimSpace(req.Email),
		PasswordHash:  hash,
		AssignedEvent: event,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := c.judges.Create(g.Request.Context(), judge); err != nil {
		respondError(g, "JUDGE", err)
		return
	}

	logging.Log.Infof("JUDGE: created judge %s for %s", judge.ID, judge.AssignedEvent)
	g.JSON(http.StatusCreated, models.TransformJudgeFromStorage(judge))
}

// @Security BearerAuth
// @Summary Update a judge account
// @Description Only the fields present in the body are changed. A new password is re-hashed.
// @Tags admin/judges
// @Accept json
// @Produce json
// @Param id path string true "Judge ID"
// @Param judge body models.JudgeUpdateRequest true "Fields to change"
// @Success 200 {object} models.JudgeResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/judges/{id} [put]
func (c *JudgeController) update(g *gin.Context) {
	ctx := g.Request.Context()

	var req models.JudgeUpdateRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Warnf("JUDGE: invalid update judge request: %v", err)
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request"})
		return
	}

	judge, err := c.judges.Get(ctx, g.Param("id"))
	if err != nil {
		respondError(g, "JUDGE", err)
		return
	}
	if judge == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "judge not found"})
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		judge.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		judge.Email = strings.TrimSpace(*req.Email)
	}
	if req.AssignedEvent != nil {
		event, err := parseEventType(*req.AssignedEvent)
		if err != nil {
			respondError(g, "JUDGE", err)
			return
		}
		judge.AssignedEvent = event
	}
	if req.IsActive != nil {
		judge.IsActive = *req.IsActive
	}
	if req.Password != nil {
		hash, err := c.hasher.Hash(*req.Password)
		if err != nil {
			respondError(g, "JUDGE", err)
			return
		}
		judge.PasswordHash = hash
	}
	judge.UpdatedAt = time.Now().UTC()

	if err := c.judges.Update(ctx, judge); err != nil {
		respondError(g, "JUDGE", err)
		return
	}
	g.JSON(http.StatusOK, models.TransformJudgeFromStorage(judge))
}

// @Security BearerAuth
// @Summary Delete a judge account
// @Description Evaluations already submitted by the judge are kept.
// @Tags admin/judges
// @Produce json
// @Param id path string true "Judge ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /admin/judges/{id} [delete]
func (c *JudgeController) delete(g *gin.Context) {
	ctx := g.Request.Context()

	judge, err := c.judges.Get(ctx, g.Param("id"))
	if err != nil {
		respondError(g, "JUDGE", err)
		return
	}
	if judge == nil {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "judge not found"})
		return
	}
	if err := c.judges.Delete(ctx, judge.ID); err != nil {
		respondError(g, "JUDGE", err)
		return
	}
	g.JSON(http.StatusOK, &models.MessageResponse{Message: "Judge removed"})
}
