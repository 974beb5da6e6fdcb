package scoring

import (
	"context"
	"testing"

	"github.com/alex-pricope/event-judging-system/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankTeamsAveraged(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - round 1 averaged across judges", func(t *testing.T) {
		f := newFixture(t)
		team := f.team(t, "AI Innovators", storage.EventPosterPresentation)
		judgeA := f.judge(t, "judge-a", storage.EventPosterPresentation)
		judgeB := f.judge(t, "judge-b", storage.EventPosterPresentation)

		f.submit(t, judgeA, team, scored(1, 5, 5, 5, 5, 5))
		f.submit(t, judgeB, team, scored(1, 10, 10, 10, 10, 10))

		standings, err := f.aggregator.RankTeamsAveraged(ctx, storage.EventPosterPresentation)
		require.NoError(t, err)
		require.Len(t, standings, 1)
		assert.Equal(t, team.ID, standings[0].TeamID)
		assert.Equal(t, "AI Innovators", standings[0].TeamName)
		assert.Equal(t, 2, standings[0].TotalMembers)
		assert.Equal(t, 37.5, standings[0].Round1Marks)
		assert.Equal(t, 0.0, standings[0].Round2Marks)
		assert.Equal(t, 37.5, standings[0].TotalMarks)
		assert.Equal(t, 2, standings[0].JudgeCount)
	})

	t.Run("Happy path - round 2 only averages judges who scored it", func(t *testing.T) {
		f := newFixture(t)
		team := f.team(t, "AI Innovators", storage.EventPosterPresentation)
		judgeA := f.judge(t, "judge-a", storage.EventPosterPresentation)
		judgeB := f.judge(t, "judge-b", storage.EventPosterPresentation)

		f.submit(t, judgeA, team, scored(1, 5, 5, 5, 5, 5))
		f.submit(t, judgeB, team, scored(1, 10, 10, 10, 10, 10))
		f.submit(t, judgeA, team, scored(1, 5, 5, 5, 5, 5), scored(2, 8, 8, 8, 8, 8))

		standings, err := f.aggregator.RankTeamsAveraged(ctx, storage.EventPosterPresentation)
		require.NoError(t, err)
		require.Len(t, standings, 1)
		assert.Equal(t, 37.5, standings[0].Round1Marks)
		assert.Equal(t, 40.0, standings[0].Round2Marks)
		assert.Equal(t, 77.5, standings[0].TotalMarks)
		assert.Equal(t, 2, standings[0].JudgeCount)
	})

	t.Run("Happy path - averages rounded to two decimals", func(t *testing.T) {
		f := newFixture(t)
		team := f.team(t, "Thirds", storage.EventPaperPresentation)
		for i, scores := range [][]int{{5, 5}, {5, 6}, {5, 6}} {
			judge := f.judge(t, []string{"one", "two", "three"}[i], storage.EventPaperPresentation)
			f.submit(t, judge, team, scored(1, scores...))
		}

		standings, err := f.aggregator.RankTeamsAveraged(ctx, storage.EventPaperPresentation)
		require.NoError(t, err)
		require.Len(t, standings, 1)
		assert.Equal(t, 10.67, standings[0].Round1Marks)
		assert.Equal(t, 10.67, standings[0].TotalMarks)
		assert.Equal(t, 3, standings[0].JudgeCount)
	})

	t.Run("Happy path - sorted by total with ties kept alphabetical", func(t *testing.T) {
		f := newFixture(t)
		zeta := f.team(t, "Zeta", storage.EventStartupExpo)
		alpha := f.team(t, "Alpha", storage.EventStartupExpo)
		mid := f.team(t, "Mid", storage.EventStartupExpo)
		f.team(t, "Unscored", storage.EventStartupExpo)
		f.team(t, "Other Event", storage.EventPosterPresentation)
		judge := f.judge(t, "ranker", storage.EventStartupExpo)

		f.submit(t, judge, zeta, scored(1, 9, 9))
		f.submit(t, judge, alpha, scored(1, 9, 9))
		f.submit(t, judge, mid, scored(1, 10, 10))

		standings, err := f.aggregator.RankTeamsAveraged(ctx, storage.EventStartupExpo)
		require.NoError(t, err)

		var names []string
		for _, s := range standings {
			names = append(names, s.TeamName)
		}
		assert.Equal(t, []string{"Mid", "Alpha", "Zeta", "Unscored"}, names)
		assert.Equal(t, 0, standings[3].JudgeCount)
		assert.Equal(t, 0.0, standings[3].TotalMarks)
	})

	t.Run("Happy path - evaluation with empty rounds counts as a judge but not a score", func(t *testing.T) {
		f := newFixture(t)
		team := f.team(t, "Drafts", storage.EventPosterPresentation)
		scorer := f.judge(t, "scorer", storage.EventPosterPresentation)
		drafter := f.judge(t, "drafter", storage.EventPosterPresentation)

		f.submit(t, scorer, team, scored(1, 6, 6))
		f.submit(t, drafter, team, scored(1))

		standings, err := f.aggregator.RankTeamsAveraged(ctx, storage.EventPosterPresentation)
		require.NoError(t, err)
		require.Len(t, standings, 1)
		assert.Equal(t, 12.0, standings[0].Round1Marks)
		assert.Equal(t, 2, standings[0].JudgeCount)
	})

	t.Run("Happy path - cached standings are served until invalidated", func(t *testing.T) {
		f := newFixture(t)
		team := f.team(t, "Cached", storage.EventPosterPresentation)
		judge := f.judge(t, "cacher", storage.EventPosterPresentation)
		f.submit(t, judge, team, scored(1, 4))

		first, err := f.aggregator.RankTeamsAveraged(ctx, storage.EventPosterPresentation)
		require.NoError(t, err)
		require.Len(t, first, 1)

		// written behind the recorder's back, so nothing invalidates
		require.NoError(t, f.stores.Teams.Create(ctx, &storage.Team{ID: "late", Name: "Late", EventType: storage.EventPosterPresentation}))

		cached, err := f.aggregator.RankTeamsAveraged(ctx, storage.EventPosterPresentation)
		require.NoError(t, err)
		assert.Len(t, cached, 1)

		f.cache.Invalidate(ctx, storage.EventPosterPresentation)
		fresh, err := f.aggregator.RankTeamsAveraged(ctx, storage.EventPosterPresentation)
		require.NoError(t, err)
		assert.Len(t, fresh, 2)
	})

	t.Run("Unhappy path - unknown event type", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.aggregator.RankTeamsAveraged(ctx, storage.EventType("hackathon"))
		require.Error(t, err)
		assert.True(t, IsKind(err, KindValidation))
	})
}

func TestRankTeams(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := f.team(t, "First", storage.EventPaperPresentation)
	second := f.team(t, "Second", storage.EventPaperPresentation)
	judgeA := f.judge(t, "summer-a", storage.EventPaperPresentation)
	judgeB := f.judge(t, "summer-b", storage.EventPaperPresentation)

	f.submit(t, judgeA, first, scored(1, 5, 5, 5, 5, 5), scored(2, 2))
	f.submit(t, judgeB, first, scored(1, 10, 10, 10, 10, 10))
	f.submit(t, judgeA, second, scored(1, 1))

	standings, err := f.aggregator.RankTeams(ctx, storage.EventPaperPresentation)
	require.NoError(t, err)
	require.Len(t, standings, 2)

	assert.Equal(t, "First", standings[0].TeamName)
	assert.Equal(t, 75, standings[0].Round1Marks)
	assert.Equal(t, 2, standings[0].Round2Marks)
	assert.Equal(t, 77, standings[0].TotalMarks)
	assert.Len(t, standings[0].Evaluations, 2)

	assert.Equal(t, second.ID, standings[1].TeamID)
	assert.Equal(t, 1, standings[1].TotalMarks)
}

func TestAllLeaderboards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	team := f.team(t, "Everywhere", storage.EventStartupExpo)
	judge := f.judge(t, "all", storage.EventStartupExpo)
	f.submit(t, judge, team, scored(1, 7, 7, 7))

	boards, err := f.aggregator.AllLeaderboards(ctx)
	require.NoError(t, err)
	require.Len(t, boards, 3)
	assert.Empty(t, boards[storage.EventPosterPresentation])
	assert.Empty(t, boards[storage.EventPaperPresentation])
	require.Len(t, boards[storage.EventStartupExpo], 1)
	assert.Equal(t, 21.0, boards[storage.EventStartupExpo][0].Round1Marks)
}

func TestTeamAnalytics(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy path - every judge's sheet with judge details", func(t *testing.T) {
		f := newFixture(t)
		team := f.team(t, "Analyzed", storage.EventPosterPresentation)
		sarah := f.judge(t, "sarah", storage.EventPosterPresentation)
		michael := f.judge(t, "michael", storage.EventPosterPresentation)

		_, _, err := f.recorder.SubmitEvaluation(ctx, sarah, team.ID, []storage.Round{scored(1, 8, 9)}, "great poster")
		require.NoError(t, err)
		f.submit(t, michael, team, scored(1, 6), scored(2, 7))

		analytics, err := f.aggregator.TeamAnalytics(ctx, team.ID)
		require.NoError(t, err)
		assert.Equal(t, team.ID, analytics.Team.ID)
		require.Len(t, analytics.Evaluations, 2)

		byJudge := map[string]JudgeEvaluation{}
		for _, e := range analytics.Evaluations {
			byJudge[e.JudgeID] = e
		}
		assert.Equal(t, "sarah", byJudge[sarah.ID].JudgeName)
		assert.Equal(t, "sarah@judges.example.com", byJudge[sarah.ID].JudgeEmail)
		assert.Equal(t, "great poster", byJudge[sarah.ID].Remarks)
		assert.Equal(t, 17, byJudge[sarah.ID].TotalScore)
		assert.Equal(t, 13, byJudge[michael.ID].TotalScore)
		assert.Len(t, byJudge[michael.ID].Rounds, 2)
	})

	t.Run("Happy path - evaluation from a deleted judge is kept", func(t *testing.T) {
		f := newFixture(t)
		team := f.team(t, "Orphaned", storage.EventPosterPresentation)
		judge := f.judge(t, "leaving", storage.EventPosterPresentation)
		f.submit(t, judge, team, scored(1, 5))
		require.NoError(t, f.stores.Judges.Delete(ctx, judge.ID))

		analytics, err := f.aggregator.TeamAnalytics(ctx, team.ID)
		require.NoError(t, err)
		require.Len(t, analytics.Evaluations, 1)
		assert.Equal(t, judge.ID, analytics.Evaluations[0].JudgeID)
		assert.Empty(t, analytics.Evaluations[0].JudgeName)
		assert.Equal(t, 5, analytics.Evaluations[0].TotalScore)
	})

	t.Run("Unhappy path - team not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.aggregator.TeamAnalytics(ctx, "ghost")
		require.Error(t, err)
		assert.True(t, IsKind(err, KindNotFound))
	})
}
