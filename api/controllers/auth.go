package controllers

import (
	"net/http"
	"time"

	"github.com/alex-pricope/event-judging-system/api/models"
	"github.com/alex-pricope/event-judging-system/auth"
	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/alex-pricope/event-judging-system/storage"
	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// InitialAdmin is the account created by the setup endpoint.
type InitialAdmin struct {
	Name     string
	Email    string
	Password string
}

type AuthController struct {
	admins  storage.AdminStorage
	judges  storage.JudgeStorage
	tokens  *auth.TokenService
	hasher  *auth.PasswordHasher
	initial InitialAdmin
}

func NewAuthController(admins storage.AdminStorage, judges storage.JudgeStorage, tokens *auth.TokenService, hasher *auth.PasswordHasher, initial InitialAdmin) *AuthController {
	return &AuthController{
		admins:  admins,
		judges:  judges,
		tokens:  tokens,
		hasher:  hasher,
		initial: initial,
	}
}

func (c *AuthController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/auth")

	group.POST("/admin/login", c.loginAdmin)
	group.POST("/judge/login", c.loginJudge)
	group.POST("/setup/initial-admin", c.createInitialAdmin)
}

// loginAdmin godoc
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Admin credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /auth/admin/login [post]
func (c *AuthController) loginAdmin(g *gin.Context) {
	var req models.LoginRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request"})
		return
	}

	admin, err := c.admins.GetByEmail(g.Request.Context(), req.Email)
	if err != nil {
		respondError(g, "AUTH", err)
		return
	}
	if admin == nil || !c.passwordMatches(req.Password, admin.PasswordHash) {
		logging.Log.Warnf("AUTH: failed admin login for %s", req.Email)
		g.JSON(http.StatusUnauthorized, &models.ErrorResponse{Error: "invalid email or password"})
		return
	}

	token, err := c.tokens.Issue(admin.ID, auth.RoleAdmin)
	if err != nil {
		respondError(g, "AUTH", err)
		return
	}

	isSuper := admin.IsSuper
	g.JSON(http.StatusOK, &models.LoginResponse{
		ID:      admin.ID,
		Name:    admin.Name,
		Email:   admin.Email,
		Role:    string(auth.RoleAdmin),
		IsSuper: &isSuper,
		Token:   token,
	})
}

// loginJudge godoc
// @Summary Judge login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Judge credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse "Account deactivated"
// @Failure 500 {object} models.ErrorResponse
// @Router /auth/judge/login [post]
func (c *AuthController) loginJudge(g *gin.Context) {
	var req models.LoginRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request"})
		return
	}

	judge, err := c.judges.GetByEmail(g.Request.Context(), req.Email)
	if err != nil {
		respondError(g, "AUTH", err)
		return
	}
	if judge == nil || !c.passwordMatches(req.Password, judge.PasswordHash) {
		logging.Log.Warnf("AUTH: failed judge login for %s", req.Email)
		g.JSON(http.StatusUnauthorized, &models.ErrorResponse{Error: "invalid email or password"})
		return
	}
	if !judge.IsActive {
		logging.Log.Warnf("AUTH: deactivated judge %s tried to log in", judge.ID)
		g.JSON(http.StatusForbidden, &models.ErrorResponse{Error: "your account has been deactivated"})
		return
	}

	token, err := c.tokens.Issue(judge.ID, auth.RoleJudge)
	if err != nil {
		respondError(g, "AUTH", err)
		return
	}

	g.JSON(http.StatusOK, &models.LoginResponse{
		ID:            judge.ID,
		Name:          judge.Name,
		Email:         judge.Email,
		Role:          string(auth.RoleJudge),
		AssignedEvent: string(judge.AssignedEvent),
		Token:         token,
	})
}

// createInitialAdmin godoc
// @Summary Create the first admin
// @Description Creates the configured super admin. Only works while no admin exists.
// @Tags auth
// @Produce json
// @Success 201 {object} models.InitialAdminResponse
// @Failure 400 {object} models.ErrorResponse "Admin already exists"
// @Failure 500 {object} models.ErrorResponse
// @Router /auth/setup/initial-admin [post]
func (c *AuthController) createInitialAdmin(g *gin.Context) {
	ctx := g.Request.Context()

	exists, err := c.admins.Exists(ctx)
	if err != nil {
		respondError(g, "AUTH", err)
		return
	}
	if exists {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "admin already exists"})
		return
	}
	if c.initial.Email == "" || c.initial.Password == "" {
		logging.Log.Errorf("AUTH: initial admin requested but setup credentials are not configured")
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "initial admin is not configured"})
		return
	}

	hash, err := c.hasher.Hash(c.initial.Password)
	if err != nil {
		respondError(g, "AUTH", err)
		return
	}
	admin := &storage.Admin{
		ID:           gonanoid.Must(),
		Name:         c.initial.Name,
		Email:        c.initial.Email,
		PasswordHash: hash,
		IsSuper:      true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := c.admins.Create(ctx, admin); err != nil {
		respondError(g, "AUTH", err)
		return
	}

	logging.Log.Infof("AUTH: initial admin %s created", admin.ID)
	g.JSON(http.StatusCreated, &models.InitialAdminResponse{
		Message: "Initial admin created successfully",
		ID:      admin.ID,
		Email:   admin.Email,
	})
}

func (c *AuthController) passwordMatches(password, hash string) bool {
	ok, err := c.hasher.Verify(password, hash)
	if err != nil {
		logging.Log.Errorf("AUTH: stored password hash is unreadable: %v", err)
		return false
	}
	return ok
}
