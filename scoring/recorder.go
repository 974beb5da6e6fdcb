package scoring

import (
	"context"
	"time"

	"github.com/alex-pricope/event-judging-system/auth"
	"github.com/alex-pricope/event-judging-system/logging"
	"github.com/alex-pricope/event-judging-system/storage"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Recorder writes judges' evaluations and drives the Round 2 selection.
type Recorder struct {
	teams       storage.TeamStorage
	evaluations storage.EvaluationStorage
	cache       LeaderboardCache
	now         func() time.Time
}

func NewRecorder(teams storage.TeamStorage, evaluations storage.EvaluationStorage, cache LeaderboardCache) *Recorder {
	if cache == nil {
		cache = NopCache{}
	}
	return &Recorder{
		teams:       teams,
		evaluations: evaluations,
		cache:       cache,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SubmitEvaluation creates or overwrites the judge's evaluation of a team.
// The returned bool is true when a new evaluation was created.
func (r *Recorder) SubmitEvaluation(ctx context.Context, judge auth.JudgePrincipal, teamID string, rounds []storage.Round, remarks string) (*storage.Evaluation, bool, error) {
	if teamID == "" {
		return nil, false, ValidationError("teamId is required")
	}
	if err := ValidateRounds(rounds); err != nil {
		return nil, false, err
	}

	team, err := r.authorizedTeam(ctx, judge, teamID, "evaluate")
	if err != nil {
		return nil, false, err
	}

	existing, err := r.evaluations.Get(ctx, team.ID, judge.ID)
	if err != nil {
		return nil, false, err
	}

	now := r.now()
	created := existing == nil
	evaluation := existing
	if created {
		id, err := gonanoid.New()
		if err != nil {
			return nil, false, err
		}
		evaluation = &storage.Evaluation{
			ID:        id,
			TeamID:    team.ID,
			JudgeID:   judge.ID,
			EventType: team.EventType,
			CreatedAt: now,
		}
	}
	evaluation.Rounds = copyRounds(rounds)
	evaluation.Remarks = remarks
	evaluation.EvaluatedAt = now
	evaluation.UpdatedAt = now
	ApplyTotals(evaluation)

	if err := r.evaluations.Put(ctx, evaluation); err != nil {
		return nil, false, err
	}
	r.cache.Invalidate(ctx, team.EventType)

	logging.Log.Infof("EVAL: judge %s scored team %s (total %d, created %t)", judge.ID, team.ID, evaluation.TotalScore, created)
	return evaluation, created, nil
}

// SelectForRound2 unlocks Round 2 for a whole team. Any judge of the team's event who
// has at least one Round 1 score can do it; repeating it is a no-op.
func (r *Recorder) SelectForRound2(ctx context.Context, judge auth.JudgePrincipal, teamID string) (*storage.Team, error) {
	team, err := r.authorizedTeam(ctx, judge, teamID, "select")
	if err != nil {
		return nil, err
	}

	evaluation, err := r.evaluations.Get(ctx, team.ID, judge.ID)
	if err != nil {
		return nil, err
	}
	if evaluation == nil {
		return nil, InvalidStateError("Please complete Round 1 evaluation first")
	}
	if !hasScores(evaluation, Round1) {
		return nil, InvalidStateError("Round 1 evaluation is incomplete")
	}

	if err := r.teams.SetSelectedForRound2(ctx, team.ID); err != nil {
		return nil, err
	}
	team.SelectedForRound2 = true
	r.cache.Invalidate(ctx, team.EventType)

	logging.Log.Infof("EVAL: judge %s selected team %s for round 2", judge.ID, team.ID)
	return team, nil
}

// GetEvaluation returns the calling judge's own evaluation of a team.
func (r *Recorder) GetEvaluation(ctx context.Context, judge auth.JudgePrincipal, teamID string) (*storage.Evaluation, error) {
	evaluation, err := r.evaluations.Get(ctx, teamID, judge.ID)
	if err != nil {
		return nil, err
	}
	if evaluation == nil {
		return nil, NotFoundError("Evaluation not found")
	}
	return evaluation, nil
}

func (r *Recorder) authorizedTeam(ctx context.Context, judge auth.JudgePrincipal, teamID, action string) (*storage.Team, error) {
	team, err := r.teams.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, NotFoundError("Team not found")
	}
	if team.EventType != judge.AssignedEvent {
		logging.Log.Warnf("EVAL: judge %s (%s) tried to %s team %s (%s)", judge.ID, judge.AssignedEvent, action, team.ID, team.EventType)
		return nil, ForbiddenError("You can only %s teams from your assigned event", action)
	}
	return team, nil
}

func copyRounds(rounds []storage.Round) []storage.Round {
	out := make([]storage.Round, len(rounds))
	for i, round := range rounds {
		questions := make([]storage.QuestionScore, len(round.Questions))
		copy(questions, round.Questions)
		out[i] = storage.Round{RoundNumber: round.RoundNumber, Questions: questions}
	}
	return out
}
