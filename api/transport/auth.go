package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/alex-pricope/event-judging-system/auth"
	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/alex-pricope/event-judging-system/scoring"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type PrincipalLoader interface {
	Load(ctx context.Context, claims *auth.Claims) (auth.Principal, error)
}

// AuthMiddleware resolves the Bearer token into a principal and stores it on the
// context. With enforceActive set, deactivated judges are turned away on every request.
func AuthMiddleware(tokens TokenVerifier, principals PrincipalLoader, enforceActive bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			logging.Log.Warnf("AUTH: missing token on %s", c.Request.URL.Path)
			abortWithError(c, scoring.UnauthenticatedError("not authorized, no token"))
			return
		}
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			abortWithError(c, scoring.UnauthenticatedError("not authorized, malformed token"))
			return
		}

		claims, err := tokens.Verify(strings.TrimSpace(token))
		if err != nil {
			logging.Log.Warnf("AUTH: rejected token on %s: %v", c.Request.URL.Path, err)
			abortWithError(c, scoring.UnauthenticatedError("not authorized, token failed"))
			return
		}

		principal, err := principals.Load(c.Request.Context(), claims)
		if errors.Is(err, auth.ErrUnknownPrincipal) {
			logging.Log.Warnf("AUTH: token for unknown %s %s", claims.Role, claims.UserID)
			abortWithError(c, scoring.UnauthenticatedError("not authorized, user not found"))
			return
		}
		if err != nil {
			logging.Log.Errorf("AUTH: failed to load %s %s: %v", claims.Role, claims.UserID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		if judge, ok := principal.(auth.JudgePrincipal); ok && enforceActive && !judge.IsActive {
			logging.Log.Warnf("AUTH: deactivated judge %s tried %s", judge.ID, c.Request.URL.Path)
			abortWithError(c, scoring.ForbiddenError("your account has been deactivated"))
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return requireRole(auth.RoleAdmin, "access denied, admin only")
}

func RequireJudge() gin.HandlerFunc {
	return requireRole(auth.RoleJudge, "access denied, judge only")
}

func requireRole(role auth.Role, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := Principal(c)
		if !ok {
			abortWithError(c, scoring.UnauthenticatedError("not authorized"))
			return
		}
		if principal.Role() != role {
			logging.Log.Warnf("AUTH: %s %s denied on %s", principal.Role(), principal.Identity(), c.Request.URL.Path)
			abortWithError(c, scoring.ForbiddenError("%s", message))
			return
		}
		c.Next()
	}
}

// abortWithError stops the chain with the status matching the error's kind.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch scoring.KindOf(err) {
	case scoring.KindUnauthenticated:
		status = http.StatusUnauthorized
	case scoring.KindForbidden:
		status = http.StatusForbidden
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func Principal(c *gin.Context) (auth.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	principal, ok := value.(auth.Principal)
	return principal, ok
}

// Judge returns the calling judge. Only valid behind RequireJudge.
func Judge(c *gin.Context) (auth.JudgePrincipal, bool) {
	principal, ok := Principal(c)
	if !ok {
		return auth.JudgePrincipal{}, false
	}
	judge, ok := principal.(auth.JudgePrincipal)
	return judge, ok
}

// Admin returns the calling admin. Only valid behind RequireAdmin.
func Admin(c *gin.Context) (auth.AdminPrincipal, bool) {
	principal, ok := Principal(c)
	if !ok {
		return auth.AdminPrincipal{}, false
	}
	admin, ok := principal.(auth.AdminPrincipal)
	return admin, ok
}
