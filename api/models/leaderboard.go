package models

import (
	"time"

	"github.com/alex-pricope/event-judging-system/scoring"
	"github.com/alex-pricope/event-judging-system/storage"
)

type LeaderboardEntry struct {
	TeamID            string  `json:"teamId"`
	TeamName          string  `json:"teamName"`
	TotalMembers      int     `json:"totalMembers"`
	SelectedForRound2 bool    `json:"selectedForRound2"`
	Round1Marks       float64 `json:"round1Marks"`
	Round2Marks       float64 `json:"round2Marks"`
	TotalMarks        float64 `json:"totalMarks"`
	JudgeCount        int     `json:"judgeCount"`
}

type RawLeaderboardEntry struct {
	TeamID       string               `json:"teamId"`
	TeamName     string               `json:"teamName"`
	TotalMembers int                  `json:"totalMembers"`
	Round1Marks  int                  `json:"round1Marks"`
	Round2Marks  int                  `json:"round2Marks"`
	TotalMarks   int                  `json:"totalMarks"`
	Evaluations  []EvaluationResponse `json:"evaluations"`
}

type EventTypeResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type JudgeEvaluationResponse struct {
	JudgeID     string          `json:"judgeId"`
	JudgeName   string          `json:"judgeName"`
	JudgeEmail  string          `json:"judgeEmail"`
	Rounds      []RoundResponse `json:"rounds"`
	Remarks     string          `json:"remarks"`
	TotalScore  int             `json:"totalScore"`
	EvaluatedAt time.Time       `json:"evaluatedAt"`
}

type TeamAnalyticsResponse struct {
	Team        TeamResponse              `json:"team"`
	Evaluations []JudgeEvaluationResponse `json:"evaluations"`
}

func TransformStandings(standings []scoring.Standing) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(standings))
	for _, s := range standings {
		entries = append(entries, LeaderboardEntry{
			TeamID:            s.TeamID,
			TeamName:          s.TeamName,
			TotalMembers:      s.TotalMembers,
			SelectedForRound2: s.SelectedForRound2,
			Round1Marks:       s.Round1Marks,
			Round2Marks:       s.Round2Marks,
			TotalMarks:        s.TotalMarks,
			JudgeCount:        s.JudgeCount,
		})
	}
	return entries
}

func TransformAllStandings(boards map[storage.EventType][]scoring.Standing) map[string][]LeaderboardEntry {
	out := make(map[string][]LeaderboardEntry, len(boards))
	for event, standings := range boards {
		out[string(event)] = TransformStandings(standings)
	}
	return out
}

func TransformRawStandings(standings []scoring.RawStanding) []RawLeaderboardEntry {
	entries := make([]RawLeaderboardEntry, 0, len(standings))
	for _, s := range standings {
		evaluations := make([]EvaluationResponse, 0, len(s.Evaluations))
		for _, e := range s.Evaluations {
			evaluations = append(evaluations, TransformEvaluationFromStorage(e))
		}
		entries = append(entries, RawLeaderboardEntry{
			TeamID:       s.TeamID,
			TeamName:     s.TeamName,
			TotalMembers: s.TotalMembers,
			Round1Marks:  s.Round1Marks,
			Round2Marks:  s.Round2Marks,
			TotalMarks:   s.TotalMarks,
			Evaluations:  evaluations,
		})
	}
	return entries
}

func TransformTeamAnalytics(a *scoring.TeamAnalytics) TeamAnalyticsResponse {
	sheets := make([]JudgeEvaluationResponse, 0, len(a.Evaluations))
	for _, e := range a.Evaluations {
		sheets = append(sheets, JudgeEvaluationResponse{
			JudgeID:     e.JudgeID,
			JudgeName:   e.JudgeName,
			JudgeEmail:  e.JudgeEmail,
			Rounds:      TransformRoundsFromStorage(e.Rounds),
			Remarks:     e.Remarks,
			TotalScore:  e.TotalScore,
			EvaluatedAt: e.EvaluatedAt,
		})
	}
	return TeamAnalyticsResponse{
		Team:        TransformTeamFromStorage(a.Team),
		Evaluations: sheets,
	}
}

func TransformEventTypes() []EventTypeResponse {
	out := make([]EventTypeResponse, 0, len(storage.EventTypes))
	for _, event := range storage.EventTypes {
		out = append(out, EventTypeResponse{Key: string(event), Label: storage.ValidEventTypes[event]})
	}
	return out
}
