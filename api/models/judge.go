package models

import (
	"time"

	"github.com/alex-pricope/event-judging-system/storage"
)

type JudgeCreateRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6,max=72"`
	AssignedEvent string `json:"assignedEvent" binding:"required"`
}

// JudgeUpdateRequest applies only the fields that are present. A password is re-hashed.
type JudgeUpdateRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Password      *string `json:"password" binding:"omitempty,min=6,max=72"`
	AssignedEvent *string `json:"assignedEvent"`
	IsActive      *bool   `json:"isActive"`
}

type JudgeResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	AssignedEvent string    `json:"assignedEvent"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

func TransformJudgeFromStorage(j *storage.Judge) JudgeResponse {
	return JudgeResponse{
		ID:            j.ID,
		Name:          j.Name,
		Email:         j.Email,
		AssignedEvent: string(j.AssignedEvent),
		IsActive:      j.IsActive,
		CreatedAt:     j.CreatedAt,
	}
}
