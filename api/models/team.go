package models

import (
	"time"

	"github.com/alex-pricope/event-judging-system/storage"
)

type Member struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role,omitempty"`
}

type TeamCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	EventType   string   `json:"eventType" binding:"required"`
	Members     []Member `json:"members" binding:"dive"`
	Description string   `json:"description"`
}

// TeamUpdateRequest applies only the fields that are present.
type TeamUpdateRequest struct {
	Name        *string   `json:"name"`
	EventType   *string   `json:"eventType"`
	Members     *[]Member `json:"members"`
	Description *string   `json:"description"`
}

type TeamResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	EventType         string    `json:"eventType"`
	Members           []Member  `json:"members"`
	TotalMembers      int       `json:"totalMembers"`
	Description       string    `json:"description"`
	SelectedForRound2 bool      `json:"selectedForRound2"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type TeamDeleteResponse struct {
	Message            string `json:"message"`
	EvaluationsDeleted int    `json:"evaluationsDeleted"`
}

type SelectForRound2Response struct {
	Message string       `json:"message"`
	Team    TeamResponse `json:"team"`
}

func TransformMembersToStorage(members []Member) []storage.Member {
	out := make([]storage.Member, 0, len(members))
	for _, m := range members {
		out = append(out, storage.Member{Name: m.Name, Email: m.Email, Role: m.Role})
	}
	return out
}

func TransformTeamFromStorage(t *storage.Team) TeamResponse {
	members := make([]Member, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, Member{Name: m.Name, Email: m.Email, Role: m.Role})
	}
	return TeamResponse{
		ID:                t.ID,
		Name:              t.Name,
		EventType:         string(t.EventType),
		Members:           members,
		TotalMembers:      t.TotalMembers,
		Description:       t.Description,
		SelectedForRound2: t.SelectedForRound2,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func TransformTeamsFromStorage(teams []*storage.Team) []TeamResponse {
	responses := make([]TeamResponse, 0, len(teams))
	for _, t := range teams {
		responses = append(responses, TransformTeamFromStorage(t))
	}
	return responses
}
