package models

import (
	"time"

	"github.com/alex-pricope/event-judging-system/storage"
)

type QuestionScoreRequest struct {
	QuestionNumber int `json:"questionNumber"`
	Score          int `json:"score"`
}

// RoundRequest carries a round's scores. Any totalScore sent by the client is ignored.
type RoundRequest struct {
	RoundNumber int                    `json:"roundNumber"`
	Questions   []QuestionScoreRequest `json:"questions"`
}

type SubmitEvaluationRequest struct {
	TeamID  string         `json:"teamId" binding:"required"`
	Rounds  []RoundRequest `json:"rounds"`
	Remarks string         `json:"remarks"`
}

func (r SubmitEvaluationRequest) StorageRounds() []storage.Round {
	rounds := make([]storage.Round, 0, len(r.Rounds))
	for _, round := range r.Rounds {
		questions := make([]storage.QuestionScore, 0, len(round.Questions))
		for _, q := range round.Questions {
			questions = append(questions, storage.QuestionScore{QuestionNumber: q.QuestionNumber, Score: q.Score})
		}
		rounds = append(rounds, storage.Round{RoundNumber: round.RoundNumber, Questions: questions})
	}
	return rounds
}

type QuestionScoreResponse struct {
	QuestionNumber int `json:"questionNumber"`
	Score          int `json:"score"`
}

type RoundResponse struct {
	RoundNumber int                     `json:"roundNumber"`
	Questions   []QuestionScoreResponse `json:"questions"`
	TotalScore  int                     `json:"totalScore"`
}

type EvaluationResponse struct {
	ID          string          `json:"id"`
	TeamID      string          `json:"teamId"`
	JudgeID     string          `json:"judgeId"`
	EventType   string          `json:"eventType"`
	Rounds      []RoundResponse `json:"rounds"`
	Remarks     string          `json:"remarks"`
	TotalScore  int             `json:"totalScore"`
	EvaluatedAt time.Time       `json:"evaluatedAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func TransformRoundsFromStorage(rounds []storage.Round) []RoundResponse {
	out := make([]RoundResponse, 0, len(rounds))
	for _, round := range rounds {
		questions := make([]QuestionScoreResponse, 0, len(round.Questions))
		for _, q := range round.Questions {
			questions = append(questions, QuestionScoreResponse{QuestionNumber: q.QuestionNumber, Score: q.Score})
		}
		out = append(out, RoundResponse{RoundNumber: round.RoundNumber, Questions: questions, TotalScore: round.TotalScore})
	}
	return out
}

func TransformEvaluationFromStorage(e *storage.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		ID:          e.ID,
		TeamID:      e.TeamID,
		JudgeID:     e.JudgeID,
		EventType:   string(e.EventType),
		Rounds:      TransformRoundsFromStorage(e.Rounds),
		Remarks:     e.Remarks,
		TotalScore:  e.TotalScore,
		EvaluatedAt: e.EvaluatedAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
