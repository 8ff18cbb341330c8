package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/orchestrators/coach"
	"github.com/KirkDiggler/rpg-fitness/internal/testutils"
	"github.com/KirkDiggler/rpg-fitness/internal/testutils/builders"
)

type RenderTestSuite struct {
	suite.Suite
}

func TestRenderSuite(t *testing.T) {
	suite.Run(t, new(RenderTestSuite))
}

func (s *RenderTestSuite) TestRenderStatus() {
	snap := builders.NewSnapshotBuilder(testutils.TestUserID, testutils.TestNow).
		WithName(testutils.TestUserName).
		WithPillarLevel(fitness.PillarPush, 2).
		Build()
	snap.User.Debuffs = []fitness.Debuff{{Name: "Tennis elbow", AffectedExercises: []string{"pull-up"}}}

	var buf bytes.Buffer
	renderStatus(&buf, snap)
	out := buf.String()

	s.Contains(out, testutils.TestUserName)
	s.Regexp(`Rank\s+│\s+E\s`, out)
	s.Contains(out, "strength")
	for _, p := range fitness.AllPillars {
		s.Contains(out, string(p))
	}
	s.Contains(out, "Tennis elbow")
}

func (s *RenderTestSuite) TestRenderQuests() {
	out := &coach.GenerateQuestsOutput{
		Daily: []fitness.Quest{
			{Type: fitness.QuestDaily, Name: "Standard Push-up", Pillar: fitness.PillarPush, Sets: 3, Reps: "8-12", XPReward: 24, Status: fitness.QuestPending},
		},
		Weekly: []fitness.Quest{
			{Type: fitness.QuestWeekly, Name: "Weekly Consistency", Pillar: fitness.PillarEndurance, Sets: 1, Reps: "3 sessions", XPReward: 150, Status: fitness.QuestPending},
		},
		Generated: true,
		Fallback:  true,
	}

	var buf bytes.Buffer
	renderQuests(&buf, out)
	text := buf.String()

	s.Contains(text, "Standard Push-up")
	s.Contains(text, "3 x 8-12")
	s.Contains(text, "Weekly Consistency")
	s.Contains(text, "built locally")
}

func (s *RenderTestSuite) TestRenderQuestsUnchangedSet() {
	var buf bytes.Buffer
	renderQuests(&buf, &coach.GenerateQuestsOutput{})
	s.Contains(buf.String(), "still valid")
}
