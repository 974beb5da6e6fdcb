package scoring

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/alex-pricope/event-judging-system/storage"
)

// Standing is one team's row on the averaged leaderboard.
type Standing struct {
	TeamID            string  `json:"teamId"`
	TeamName          string  `json:"teamName"`
	TotalMembers      int     `json:"totalMembers"`
	SelectedForRound2 bool    `json:"selectedForRound2"`
	Round1Marks       float64 `json:"round1Marks"`
	Round2Marks       float64 `json:"round2Marks"`
	TotalMarks        float64 `json:"totalMarks"`
	JudgeCount        int     `json:"judgeCount"`
}

// RawStanding is one team's row on the summed leaderboard.
type RawStanding struct {
	TeamID       string
	TeamName     string
	TotalMembers int
	Round1Marks  int
	Round2Marks  int
	TotalMarks   int
	Evaluations  []*storage.Evaluation
}

type JudgeEvaluation struct {
	JudgeID     string
	JudgeName   string
	JudgeEmail  string
	Rounds      []storage.Round
	Remarks     string
	TotalScore  int
	EvaluatedAt time.Time
}

type TeamAnalytics struct {
	Team        *storage.Team
	Evaluations []JudgeEvaluation
}

// Aggregator builds leaderboards and per-team analytics from stored evaluations.
// Teams with equal totals keep alphabetical order by name.
type Aggregator struct {
	teams       storage.TeamStorage
	judges      storage.JudgeStorage
	evaluations storage.EvaluationStorage
	cache       LeaderboardCache
}

func NewAggregator(teams storage.TeamStorage, judges storage.JudgeStorage, evaluations storage.EvaluationStorage, cache LeaderboardCache) *Aggregator {
	if cache == nil {
		cache = NopCache{}
	}
	return &Aggregator{
		teams:       teams,
		judges:      judges,
		evaluations: evaluations,
		cache:       cache,
	}
}

type teamEvaluations struct {
	team        *storage.Team
	evaluations []*storage.Evaluation
}

func (a *Aggregator) load(ctx context.Context, event storage.EventType) ([]teamEvaluations, error) {
	if !event.Valid() {
		return nil, ValidationError("invalid event type %q", event)
	}

	teams, err := a.teams.GetByEvent(ctx, event)
	if err != nil {
		return nil, err
	}
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Name != teams[j].Name {
			return teams[i].Name < teams[j].Name
		}
		return teams[i].ID < teams[j].ID
	})

	out := make([]teamEvaluations, 0, len(teams))
	for _, team := range teams {
		evaluations, err := a.evaluations.GetByTeam(ctx, team.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, teamEvaluations{team: team, evaluations: evaluations})
	}
	return out, nil
}

// RankTeams sums every judge's round totals per team. Kept for the legacy admin view.
func (a *Aggregator) RankTeams(ctx context.Context, event storage.EventType) ([]RawStanding, error) {
	loaded, err := a.load(ctx, event)
	if err != nil {
		return nil, err
	}

	standings := make([]RawStanding, 0, len(loaded))
	for _, te := range loaded {
		round1, round2 := 0, 0
		for _, e := range te.evaluations {
			round1 += roundTotal(e.Round(Round1))
			round2 += roundTotal(e.Round(Round2))
		}
		standings = append(standings, RawStanding{
			TeamID:       te.team.ID,
			TeamName:     te.team.Name,
			TotalMembers: te.team.TotalMembers,
			Round1Marks:  round1,
			Round2Marks:  round2,
			TotalMarks:   round1 + round2,
			Evaluations:  te.evaluations,
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].TotalMarks > standings[j].TotalMarks
	})
	return standings, nil
}

// RankTeamsAveraged averages each round over the judges who scored at least one
// question in it. Rounds nobody scored contribute 0.
func (a *Aggregator) RankTeamsAveraged(ctx context.Context, event storage.EventType) ([]Standing, error) {
	if cached, ok := a.cache.Get(ctx, event); ok {
		return cached, nil
	}

	loaded, err := a.load(ctx, event)
	if err != nil {
		return nil, err
	}

	standings := make([]Standing, 0, len(loaded))
	for _, te := range loaded {
		round1 := roundAverage(te.evaluations, Round1)
		round2 := roundAverage(te.evaluations, Round2)
		standings = append(standings, Standing{
			TeamID:            te.team.ID,
			TeamName:          te.team.Name,
			TotalMembers:      te.team.TotalMembers,
			SelectedForRound2: te.team.SelectedForRound2,
			Round1Marks:       roundTo2(round1),
			Round2Marks:       roundTo2(round2),
			TotalMarks:        roundTo2(round1 + round2),
			JudgeCount:        len(te.evaluations),
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].TotalMarks > standings[j].TotalMarks
	})

	a.cache.Set(ctx, event, standings)
	logging.Log.Debugf("LEADERBOARD: computed %d standings for %s", len(standings), event)
	return standings, nil
}

func (a *Aggregator) AllLeaderboards(ctx context.Context) (map[storage.EventType][]Standing, error) {
	boards := make(map[storage.EventType][]Standing, len(storage.EventTypes))
	for _, event := range storage.EventTypes {
		standings, err := a.RankTeamsAveraged(ctx, event)
		if err != nil {
			return nil, err
		}
		boards[event] = standings
	}
	return boards, nil
}

// TeamAnalytics returns the team and every judge's full score sheet for it.
// Evaluations left behind by deleted judges are kept with empty judge details.
func (a *Aggregator) TeamAnalytics(ctx context.Context, teamID string) (*TeamAnalytics, error) {
	team, err := a.teams.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, NotFoundError("Team not found")
	}

	evaluations, err := a.evaluations.GetByTeam(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	judges := make(map[string]*storage.Judge)
	sheets := make([]JudgeEvaluation, 0, len(evaluations))
	for _, e := range evaluations {
		judge, seen := judges[e.JudgeID]
		if !seen {
			judge, err = a.judges.Get(ctx, e.JudgeID)
			if err != nil {
				return nil, err
			}
			judges[e.JudgeID] = judge
		}

		sheet := JudgeEvaluation{
			JudgeID:     e.JudgeID,
			Rounds:      e.Rounds,
			Remarks:     e.Remarks,
			TotalScore:  e.TotalScore,
			EvaluatedAt: e.EvaluatedAt,
		}
		if judge != nil {
			sheet.JudgeName = judge.Name
			sheet.JudgeEmail = judge.Email
		} else {
			logging.Log.Warnf("LEADERBOARD: evaluation %s references missing judge %s", e.ID, e.JudgeID)
		}
		sheets = append(sheets, sheet)
	}

	return &TeamAnalytics{Team: team, Evaluations: sheets}, nil
}

func roundTotal(round *storage.Round) int {
	if round == nil {
		return 0
	}
	perRound, _ := ComputeTotals([]storage.Round{*round})
	return perRound[0]
}

func roundAverage(evaluations []*storage.Evaluation, number int) float64 {
	sum, count := 0, 0
	for _, e := range evaluations {
		if !hasScores(e, number) {
			continue
		}
		sum += roundTotal(e.Round(number))
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
