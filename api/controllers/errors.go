package controllers

import (
	"errors"
	"net/http"

	"github.com/alex-pricope/event-judging-system/api/models"
	"github.com/alex-pricope/event-judging-system/api/transport"
	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/alex-pricope/event-judging-system/scoring"
	"github.com/alex-pricope/event-judging-system/storage"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// respondError writes the status for err. Unclassified errors are logged and
// reported as a bare 500.
func respondError(g *gin.Context, prefix string, err error) {
	var scoringErr *scoring.Error
	switch {
	case errors.As(err, &scoringErr):
		g.JSON(statusForKind(scoringErr.Kind), &models.ErrorResponse{Error: scoringErr.Message})
	case errors.Is(err, storage.ErrItemNotFound):
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "item not found"})
	case errors.Is(err, storage.ErrDuplicateName):
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "team name already exists"})
	case errors.Is(err, storage.ErrDuplicateEmail):
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "email already exists"})
	case errors.Is(err, storage.ErrItemWithIDAlreadyExists):
		g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "item with ID already exists"})
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "password must be at most 72 bytes"})
	default:
		logging.Log.WithField("requestId", transport.RequestID(g)).Errorf("%s: %s %s failed: %v", prefix, g.Request.Method, g.Request.URL.Path, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "internal server error"})
	}
}

func statusForKind(kind scoring.Kind) int {
	switch kind {
	case scoring.KindValidation, scoring.KindInvalidState:
		return http.StatusBadRequest
	case scoring.KindUnauthenticated:
		return http.StatusUnauthorized
	case scoring.KindForbidden:
		return http.StatusForbidden
	case scoring.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func parseEventType(value string) (storage.EventType, error) {
	event := storage.EventType(value)
	if !event.Valid() {
		return "", scoring.ValidationError("invalid event type %q", value)
	}
	return event, nil
}
