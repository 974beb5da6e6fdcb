package scoring

import "github.com/alex-pricope/event-judging-system/storage"

const (
	MinScore       = 1
	MaxScore       = 10
	QuestionsCount = 5
	Round1         = 1
	Round2         = 2
)

// ComputeTotals returns each round's question sum, in input order, and their grand total.
func ComputeTotals(rounds []storage.Round) ([]int, int) {
	perRound := make([]int, len(rounds))
	grand := 0
	for i, round := range rounds {
		for _, q := range round.Questions {
			perRound[i] += q.Score
		}
		grand += perRound[i]
	}
	return perRound, grand
}

// ApplyTotals overwrites every derived total on the evaluation from its question scores.
func ApplyTotals(evaluation *storage.Evaluation) {
	perRound, grand := ComputeTotals(evaluation.Rounds)
	for i := range evaluation.Rounds {
		evaluation.Rounds[i].TotalScore = perRound[i]
	}
	evaluation.TotalScore = grand
}

// ValidateRounds checks submitted rounds before anything is persisted.
// A round with no questions is allowed and means "not evaluated yet".
func ValidateRounds(rounds []storage.Round) error {
	seenRounds := make(map[int]bool, len(rounds))
	for _, round := range rounds {
		if round.RoundNumber != Round1 && round.RoundNumber != Round2 {
			return ValidationError("round number must be %d or %d, got %d", Round1, Round2, round.RoundNumber)
		}
		if seenRounds[round.RoundNumber] {
			return ValidationError("round %d submitted more than once", round.RoundNumber)
		}
		seenRounds[round.RoundNumber] = true

		if len(round.Questions) > QuestionsCount {
			return ValidationError("round %d has %d questions, at most %d allowed", round.RoundNumber, len(round.Questions), QuestionsCount)
		}
		seenQuestions := make(map[int]bool, len(round.Questions))
		for _, q := range round.Questions {
			if q.QuestionNumber < 1 || q.QuestionNumber > QuestionsCount {
				return ValidationError("round %d: question number must be between 1 and %d, got %d", round.RoundNumber, QuestionsCount, q.QuestionNumber)
			}
			if seenQuestions[q.QuestionNumber] {
				return ValidationError("round %d: question %d scored more than once", round.RoundNumber, q.QuestionNumber)
			}
			seenQuestions[q.QuestionNumber] = true
			if q.Score < MinScore || q.Score > MaxScore {
				return ValidationError("round %d question %d: score must be between %d and %d, got %d", round.RoundNumber, q.QuestionNumber, MinScore, MaxScore, q.Score)
			}
		}
	}
	return nil
}

// hasScores reports whether the evaluation holds at least one question score for the round.
func hasScores(evaluation *storage.Evaluation, number int) bool {
	round := evaluation.Round(number)
	return round != nil && len(round.Questions) > 0
}
