package progression_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-fitness/internal/progression"
)

type StoreTestSuite struct {
	suite.Suite
	clock *clock.Fixed
	start time.Time
	store *progression.Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	s.start = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s.clock = clock.NewFixed(s.start)
	s.store = s.newStore(progression.NewSnapshot("user-1", s.start))
}

func (s *StoreTestSuite) newStore(snap *fitness.Snapshot) *progression.Store {
	store, err := progression.New(&progression.Config{
		Snapshot:    snap,
		Clock:       s.clock,
		IDGenerator: idgen.NewSequential("id"),
		Location:    time.UTC,
	})
	s.Require().NoError(err)
	return store
}

func (s *StoreTestSuite) snapshot() *fitness.Snapshot {
	snap, err := s.store.Snapshot()
	s.Require().NoError(err)
	return snap
}

func (s *StoreTestSuite) addDailyQuest(q fitness.Quest) fitness.Quest {
	if q.Type == "" {
		q.Type = fitness.QuestDaily
	}
	added, err := s.store.AddQuest(q)
	s.Require().NoError(err)
	return *added
}

func (s *StoreTestSuite) TestConfigValidation() {
	_, err := progression.New(nil)
	s.Error(err)

	_, err = progression.New(&progression.Config{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = progression.New(&progression.Config{Snapshot: &fitness.Snapshot{}})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *StoreTestSuite) TestNewStoreUnlocksEntrySkills() {
	snap := s.snapshot()

	for _, p := range fitness.AllPillars {
		pl := snap.User.PillarLevels[p]
		s.Require().NotNil(pl, p)
		s.Equal(0, pl.Level)
		s.Equal(150, pl.XPToNext)
		s.Equal([]string{string(p) + "-l0-s0", string(p) + "-l0-s1"}, pl.UnlockedSkills)
	}
	s.Len(snap.User.UserSkills, 12)
}

func (s *StoreTestSuite) TestCurves() {
	s.Equal(220, progression.ExpToNextLevel(1))
	s.Equal(246, progression.ExpToNextLevel(2))
	s.Equal(0, progression.ExpToNextLevel(100))

	s.Equal(150, progression.PillarXPToNext(0))
	s.Equal(180, progression.PillarXPToNext(1))
	s.Equal(216, progression.PillarXPToNext(2))
	s.Equal(259, progression.PillarXPToNext(3))
	s.Equal(311, progression.PillarXPToNext(4))

	s.Equal(fitness.TierBronze, progression.AthleteTierFor(1))
	s.Equal(fitness.TierSilver, progression.AthleteTierFor(21))
	s.Equal(fitness.TierGold, progression.AthleteTierFor(51))
	s.Equal(fitness.TierPlatinum, progression.AthleteTierFor(76))
	s.Equal(fitness.TierDiamond, progression.AthleteTierFor(90))
}

func (s *StoreTestSuite) TestAddExpLevelsUp() {
	s.Require().NoError(s.store.AddExp(250))

	user := s.snapshot().User
	s.Equal(2, user.Level)
	s.Equal(30, user.Exp)
	s.Equal(246, user.ExpToNextLevel)
}

func (s *StoreTestSuite) TestAddExpUserLevelCap() {
	s.Require().NoError(s.store.AddExp(1_000_000_000))

	user := s.snapshot().User
	s.Equal(progression.MaxUserLevel, user.Level)
	s.Equal(0, user.Exp)
	s.Equal(0, user.ExpToNextLevel)
	s.Equal(fitness.TierDiamond, user.AthleteTier)

	s.Require().NoError(s.store.AddExp(500))
	user = s.snapshot().User
	s.Equal(progression.MaxUserLevel, user.Level)
	s.Equal(0, user.Exp)
}

func (s *StoreTestSuite) TestAddMovementXPPillarCap() {
	leveled, err := s.store.AddMovementXP(fitness.PillarPush, 1_000_000_000)
	s.Require().NoError(err)
	s.True(leveled)

	pl := s.snapshot().User.PillarLevels[fitness.PillarPush]
	s.Equal(fitness.MaxPillarLevel, pl.Level)
	s.LessOrEqual(pl.XP, pl.XPToNext)
	// levels 0-3 fully open plus three skills at level 4
	s.Len(pl.UnlockedSkills, 4*5+3)

	leveled, err = s.store.AddMovementXP(fitness.PillarPush, 1_000_000_000)
	s.Require().NoError(err)
	s.False(leveled)
	s.Equal(fitness.MaxPillarLevel, s.snapshot().User.PillarLevels[fitness.PillarPush].Level)
}

func (s *StoreTestSuite) TestAddMovementXPInvalidPillar() {
	_, err := s.store.AddMovementXP(fitness.Pillar("arms"), 10)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *StoreTestSuite) TestUnlocksAreMonotonic() {
	level := 3
	s.Require().NoError(s.store.UpdatePerformanceProfile(progression.PerformanceUpdate{
		PillarLevels: map[fitness.Pillar]int{fitness.PillarPull: level},
	}))
	before := s.snapshot().User.PillarLevels[fitness.PillarPull].UnlockedSkills
	s.Len(before, 3*5+3)

	s.Require().NoError(s.store.UpdatePerformanceProfile(progression.PerformanceUpdate{
		PillarLevels: map[fitness.Pillar]int{fitness.PillarPull: 1},
	}))
	after := s.snapshot().User.PillarLevels[fitness.PillarPull]
	s.Equal(level, after.Level)
	s.Subset(after.UnlockedSkills, before)

	s.Require().NoError(s.store.UpdatePerformanceProfile(progression.PerformanceUpdate{
		PillarLevels: map[fitness.Pillar]int{fitness.PillarPull: 4},
	}))
	s.Subset(s.snapshot().User.PillarLevels[fitness.PillarPull].UnlockedSkills, before)
}

func (s *StoreTestSuite) TestPerformanceUpdateNeverLowersPillarLevel() {
	s.Require().NoError(s.store.UpdatePerformanceProfile(progression.PerformanceUpdate{
		PillarLevels: map[fitness.Pillar]int{fitness.PillarLegs: 2},
	}))
	_, err := s.store.AddMovementXP(fitness.PillarLegs, 40)
	s.Require().NoError(err)

	s.Require().NoError(s.store.UpdatePerformanceProfile(progression.PerformanceUpdate{
		PillarLevels: map[fitness.Pillar]int{fitness.PillarLegs: 0, fitness.PillarPush: 1},
	}))

	user := s.snapshot().User
	legs := user.PillarLevels[fitness.PillarLegs]
	s.Equal(2, legs.Level)
	s.Equal(40, legs.XP, "ignored update keeps accumulated xp")
	s.Equal(1, user.PillarLevels[fitness.PillarPush].Level)
}

func (s *StoreTestSuite) TestSyncKeepsExistingUnlockData() {
	snap := progression.NewSnapshot("user-2", s.start)
	unlockedAt := s.start.Add(-48 * time.Hour)
	snap.User.UserSkills["push-l0-s0"] = &fitness.UserSkill{Unlocked: true, UnlockedAt: unlockedAt, MasteryLevel: 120}
	store := s.newStore(snap)

	s.Require().NoError(store.SynchronizeSkills())
	got, err := store.Snapshot()
	s.Require().NoError(err)

	us := got.User.UserSkills["push-l0-s0"]
	s.True(us.UnlockedAt.Equal(unlockedAt))
	s.Equal(120, us.MasteryLevel)
}

func (s *StoreTestSuite) TestSyncSkipsDisabledSkills() {
	_, err := s.store.DisableSkill("core-l1-s0", progression.ConstraintInput{Reason: "lower back pain"})
	s.Require().NoError(err)

	s.Require().NoError(s.store.UpdatePerformanceProfile(progression.PerformanceUpdate{
		PillarLevels: map[fitness.Pillar]int{fitness.PillarCore: 1},
	}))

	user := s.snapshot().User
	s.False(user.IsSkillUnlocked("core-l1-s0"))
	s.True(user.IsSkillUnlocked("core-l1-s1"))
	s.True(user.IsSkillUnlocked("core-l1-s2"))
	s.False(user.IsSkillUnlocked("core-l1-s3"))

	_, err = s.store.EnableSkill("core-l1-s0")
	s.Require().NoError(err)
	s.True(s.snapshot().User.IsSkillUnlocked("core-l1-s0"))
}

func (s *StoreTestSuite) TestAddSkillXPLegacyMastery() {
	snap := progression.NewSnapshot("user-3", s.start)
	snap.User.UserSkills["push-l0-s0"] = &fitness.UserSkill{Unlocked: true, UnlockedAt: s.start, MasteryLevel: 3}
	store := s.newStore(snap)

	changed, err := store.AddSkillXP("push-l0-s0", 10)
	s.Require().NoError(err)
	s.True(changed)

	got, err := store.Snapshot()
	s.Require().NoError(err)
	s.Equal(310, got.User.UserSkills["push-l0-s0"].MasteryLevel)
}

func (s *StoreTestSuite) TestAddSkillXPBounds() {
	changed, err := s.store.AddSkillXP("push-l3-s0", 10)
	s.Require().NoError(err)
	s.False(changed, "locked skills gain nothing")

	_, err = s.store.AddSkillXP("push-l0-s0", 10_000)
	s.Require().NoError(err)
	s.Equal(progression.MaxMastery, s.snapshot().User.UserSkills["push-l0-s0"].MasteryLevel)
}

func (s *StoreTestSuite) TestNormalizeMastery() {
	testCases := []struct {
		in, want int
	}{
		{-3, 0},
		{0, 0},
		{1, 100},
		{5, 500},
		{6, 6},
		{250, 250},
		{900, 500},
	}
	for _, tc := range testCases {
		s.Equal(tc.want, progression.NormalizeMastery(tc.in), "input %d", tc.in)
	}
}

func (s *StoreTestSuite) TestAttemptLevelUp() {
	_, err := s.store.AddMovementXP(fitness.PillarLegs, 100)
	s.Require().NoError(err)

	s.Run("failure costs 20 percent and keeps the level", func() {
		pl, err := s.store.AttemptLevelUp(fitness.PillarLegs, false)
		s.Require().NoError(err)
		s.Equal(0, pl.Level)
		s.Equal(80, pl.XP)
	})

	s.Run("success raises the level and resets xp", func() {
		pl, err := s.store.AttemptLevelUp(fitness.PillarLegs, true)
		s.Require().NoError(err)
		s.Equal(1, pl.Level)
		s.Equal(0, pl.XP)
		s.Equal(180, pl.XPToNext)
		s.Contains(pl.UnlockedSkills, "legs-l0-s4")
		s.Contains(pl.UnlockedSkills, "legs-l1-s2")
	})
}

func (s *StoreTestSuite) TestCompleteQuest() {
	q := s.addDailyQuest(fitness.Quest{
		Name:     "Standard Push-up",
		Pillar:   fitness.PillarPush,
		Sets:     3,
		Reps:     "8-12",
		XPReward: 30,
	})

	result, err := s.store.CompleteQuest(q.ID)
	s.Require().NoError(err)
	s.False(result.AlreadyTerminal)
	s.Equal(30, result.ExpAwarded)
	s.Equal(10, result.PillarXPAwarded)
	s.Equal("push-l0-s1", result.MasterySkillID)
	s.Equal("strength", result.StatBoosted)
	s.Equal(1, result.StatBoostApplied)

	snap := s.snapshot()
	s.Equal(30, snap.User.Exp)
	s.Equal(10, snap.User.PillarLevels[fitness.PillarPush].XP)
	s.Equal(30, snap.User.UserSkills["push-l0-s1"].MasteryLevel)
	s.Equal(11, snap.User.Stats.Strength)
	s.Equal(fitness.QuestCompleted, snap.DailyQuests[0].Status)
	s.Require().NotNil(snap.DailyQuests[0].CompletedAt)
	s.Require().Len(snap.QuestHistory, 1)
	s.Equal(q.ID, snap.QuestHistory[0].ID)
	s.Require().Len(snap.TrainingHistory, 1)
	s.Equal(1, snap.TrainingHistory[0].QuestsCompleted)
	s.Equal(30, snap.TrainingHistory[0].ExpGained)
	s.Equal(1, snap.User.TotalWorkouts)
	s.Equal(1, snap.User.Streak)
}

func (s *StoreTestSuite) TestCompleteQuestIsIdempotent() {
	q := s.addDailyQuest(fitness.Quest{Name: "Dead Hang", Pillar: fitness.PillarPull, XPReward: 25})

	_, err := s.store.CompleteQuest(q.ID)
	s.Require().NoError(err)
	once := s.snapshot()

	result, err := s.store.CompleteQuest(q.ID)
	s.Require().NoError(err)
	s.True(result.AlreadyTerminal)
	s.Equal(once, s.snapshot())
}

func (s *StoreTestSuite) TestCompleteQuestUnlocksLinkedSkill() {
	level := 1
	q := s.addDailyQuest(fitness.Quest{
		Name:       "Diamond Push-up",
		Pillar:     fitness.PillarPush,
		SkillID:    "push-l1-s0",
		SkillLevel: &level,
		XPReward:   20,
		StatBoost:  &fitness.StatBoost{Stat: "discipline", Amount: 200},
	})

	result, err := s.store.CompleteQuest(q.ID)
	s.Require().NoError(err)
	s.Equal("push-l1-s0", result.UnlockedSkillID)
	s.Equal("push-l1-s0", result.MasterySkillID)

	user := s.snapshot().User
	s.True(user.IsSkillUnlocked("push-l1-s0"))
	s.Contains(user.PillarLevels[fitness.PillarPush].UnlockedSkills, "push-l1-s0")
	s.Equal(20, user.UserSkills["push-l1-s0"].MasteryLevel)
	s.Equal(fitness.StatMax, user.Stats.Discipline)
}

func (s *StoreTestSuite) TestCompleteQuestNotFound() {
	_, err := s.store.CompleteQuest("missing")
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *StoreTestSuite) TestFailQuestIsTerminal() {
	q := s.addDailyQuest(fitness.Quest{Name: "Plank", Pillar: fitness.PillarCore, XPReward: 20})

	failed, err := s.store.FailQuest(q.ID)
	s.Require().NoError(err)
	s.Equal(fitness.QuestFailed, failed.Status)

	result, err := s.store.CompleteQuest(q.ID)
	s.Require().NoError(err)
	s.True(result.AlreadyTerminal)

	snap := s.snapshot()
	s.Empty(snap.QuestHistory)
	s.Equal(0, snap.User.Exp)
	s.Empty(snap.TrainingHistory)
}

func (s *StoreTestSuite) TestStreakAcrossDays() {
	for day := 0; day < 3; day++ {
		q := s.addDailyQuest(fitness.Quest{Name: "Bodyweight Squat", Pillar: fitness.PillarLegs, XPReward: 20})
		_, err := s.store.CompleteQuest(q.ID)
		s.Require().NoError(err)

		q = s.addDailyQuest(fitness.Quest{Name: "Glute Bridge", Pillar: fitness.PillarLegs, XPReward: 20})
		_, err = s.store.CompleteQuest(q.ID)
		s.Require().NoError(err)

		s.clock.AdvanceDays(1)
	}

	snap := s.snapshot()
	s.Len(snap.TrainingHistory, 3)
	s.Equal(2, snap.TrainingHistory[0].QuestsCompleted)
	s.Equal(3, snap.User.TotalWorkouts)
	s.Equal(3, snap.User.Streak)

	s.clock.AdvanceDays(2)
	s.Require().NoError(s.store.RecordTrainingDay(s.clock.Now(), 0))
	snap = s.snapshot()
	s.Equal(4, snap.User.TotalWorkouts)
	s.Equal(1, snap.User.Streak)
}

func (s *StoreTestSuite) TestDerivedMetrics() {
	day := func(d int, completed bool) fitness.TrainingDay {
		return fitness.TrainingDay{Date: time.Date(2026, 2, d, 0, 0, 0, 0, time.UTC), Completed: completed}
	}

	testCases := []struct {
		name       string
		history    []fitness.TrainingDay
		wantTotal  int
		wantStreak int
	}{
		{"empty", nil, 0, 0},
		{"single", []fitness.TrainingDay{day(3, true)}, 1, 1},
		{"gap breaks the run", []fitness.TrainingDay{day(1, true), day(3, true), day(4, true), day(5, true)}, 4, 3},
		{"incomplete days ignored", []fitness.TrainingDay{day(1, true), day(2, false), day(3, true)}, 2, 1},
		{"unordered input", []fitness.TrainingDay{day(5, true), day(3, true), day(4, true)}, 3, 3},
		{"month boundary", []fitness.TrainingDay{
			{Date: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), Completed: true},
			day(1, true),
		}, 2, 2},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			total, streak := progression.DerivedMetrics(tc.history, time.UTC)
			s.Equal(tc.wantTotal, total)
			s.Equal(tc.wantStreak, streak)
		})
	}
}

func (s *StoreTestSuite) TestUpdateAndRemoveQuest() {
	q := s.addDailyQuest(fitness.Quest{Name: "Wall Sit", Pillar: fitness.PillarLegs, XPReward: 5, Sets: 20})
	s.Equal(fitness.DailyXPMin, q.XPReward)
	s.Equal(fitness.MaxSets, q.Sets)
	s.Equal(fitness.DifficultyMedium, q.Difficulty)

	xp, hard, name := 9999, fitness.DifficultyHard, "Wall Sit Hold"
	updated, err := s.store.UpdateQuest(q.ID, progression.QuestUpdate{XPReward: &xp, Difficulty: &hard, Name: &name})
	s.Require().NoError(err)
	s.Equal(fitness.DailyXPMax, updated.XPReward)
	s.Equal(fitness.DifficultyHard, updated.Difficulty)
	s.Equal("Wall Sit Hold", updated.Name)

	s.Require().NoError(s.store.RemoveQuest(q.ID))
	s.Empty(s.snapshot().DailyQuests)

	err = s.store.RemoveQuest(q.ID)
	s.True(errors.IsNotFound(err))
}

func (s *StoreTestSuite) TestUpdateTerminalQuestFails() {
	q := s.addDailyQuest(fitness.Quest{Name: "Dead Bug", Pillar: fitness.PillarCore, XPReward: 20})
	_, err := s.store.CompleteQuest(q.ID)
	s.Require().NoError(err)

	name := "changed"
	_, err = s.store.UpdateQuest(q.ID, progression.QuestUpdate{Name: &name})
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *StoreTestSuite) TestReplaceQuests() {
	s.Require().NoError(s.store.ReplaceQuests(
		[]fitness.Quest{{Name: "A", Pillar: fitness.PillarPush}, {Name: "B", Pillar: fitness.PillarPull}},
		[]fitness.Quest{{Name: "W", Pillar: fitness.PillarCore}},
	))

	snap := s.snapshot()
	s.Len(snap.DailyQuests, 2)
	s.Len(snap.WeeklyQuests, 1)
	s.Equal(fitness.QuestWeekly, snap.WeeklyQuests[0].Type)
	s.Equal(fitness.QuestPending, snap.DailyQuests[0].Status)
	s.NotEmpty(snap.DailyQuests[1].ID)
	s.True(snap.LastQuestGeneration.Equal(s.start))
}

func (s *StoreTestSuite) TestPerformanceProfileClamps() {
	rank := fitness.Rank("SSS")
	level := 500
	s.Require().NoError(s.store.UpdatePerformanceProfile(progression.PerformanceUpdate{
		Stats:      map[string]int{"strength": -50, "Agility": 99999, "charisma": 40},
		RadarStats: map[string]int{"power": 0},
		Rank:       &rank,
		Level:      &level,
	}))

	user := s.snapshot().User
	s.Equal(fitness.StatMin, user.Stats.Strength)
	s.Equal(fitness.StatMax, user.Stats.Agility)
	s.Equal(fitness.StatMin, user.RadarStats.Power)
	s.Equal(fitness.RankE, user.Rank)
	s.Equal(progression.MaxUserLevel, user.Level)
	s.Equal(0, user.ExpToNextLevel)
}

func (s *StoreTestSuite) TestTrainingContext() {
	bad := fitness.Objective("bulk forever")
	minutes, freq := 5, 12
	s.Require().NoError(s.store.UpdateTrainingContext(progression.TrainingContextUpdate{
		Objective:         &bad,
		AvailableTime:     &minutes,
		TrainingFrequency: &freq,
	}))

	user := s.snapshot().User
	s.Equal(fitness.ObjectiveGeneral, user.Objective)
	s.Equal(progression.MinAvailableTime, user.AvailableTime)
	s.Equal(progression.MaxTrainingFrequency, user.TrainingFrequency)
}

func (s *StoreTestSuite) TestBio() {
	bio, err := s.store.UpdateBio("Former swimmer", progression.BioAppend)
	s.Require().NoError(err)
	s.Equal("Former swimmer", bio)

	bio, err = s.store.UpdateBio("Wants a muscle-up <img src=x>", progression.BioAppend)
	s.Require().NoError(err)
	s.Equal("Former swimmer\nWants a muscle-up", bio)

	bio, err = s.store.UpdateBio("Fresh start", progression.BioReplace)
	s.Require().NoError(err)
	s.Equal("Fresh start", bio)
}

func (s *StoreTestSuite) TestDebuffs() {
	d, err := s.store.AddDebuff(progression.DebuffInput{
		Name:              "Knee tendinitis",
		AffectedExercises: []string{"Jump Squat", "jump squat", "Box Jump"},
	})
	s.Require().NoError(err)
	s.Equal([]string{"Jump Squat", "Box Jump"}, d.AffectedExercises)

	merged, err := s.store.AddDebuff(progression.DebuffInput{Name: "knee TENDINITIS", AffectedExercises: []string{"Pistol Squat"}})
	s.Require().NoError(err)
	s.Equal(d.ID, merged.ID)
	s.Len(s.snapshot().User.Debuffs, 1)

	_, err = s.store.AddDebuff(progression.DebuffInput{Name: "Wrist sprain"})
	s.Require().NoError(err)

	removed, err := s.store.RemoveDebuff("wrist")
	s.Require().NoError(err)
	s.Equal("Wrist sprain", removed.Name)

	_, err = s.store.RemoveDebuff("elbow")
	s.True(errors.IsNotFound(err))

	n, err := s.store.ClearDebuffs()
	s.Require().NoError(err)
	s.Equal(1, n)
	s.Empty(s.snapshot().User.Debuffs)
}

func (s *StoreTestSuite) TestCustomSkills() {
	first, err := s.store.AddCustomSkill(progression.CustomSkillInput{
		Name:   "Ring Push-up",
		Pillar: fitness.PillarPush,
		Level:  0,
		Tags:   []string{"rings"},
		Reason: "Has rings at home",
	})
	s.Require().NoError(err)
	s.Equal("custom-push-ring-push-up", first.ID)
	s.Equal(fitness.SourceAdaptiveAI, first.Source)

	second, err := s.store.AddCustomSkill(progression.CustomSkillInput{Name: "Ring Push-up", Pillar: fitness.PillarPush, Level: 9})
	s.Require().NoError(err)
	s.Equal("custom-push-ring-push-up-2", second.ID)
	s.Equal(fitness.MaxPillarLevel, second.Level)

	user := s.snapshot().User
	s.True(user.IsSkillUnlocked(first.ID), "skills at the pillar level unlock immediately")
	s.False(user.IsSkillUnlocked(second.ID))

	_, err = s.store.AddCustomSkill(progression.CustomSkillInput{Name: "x", Pillar: "arms"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.store.DisableSkill("ring push up", progression.ConstraintInput{Reason: "shoulder"})
	s.Require().NoError(err)
	s.True(s.snapshot().User.IsSkillDisabled(first.ID))

	removed, err := s.store.RemoveCustomSkill(first.ID)
	s.Require().NoError(err)
	s.Equal(first.ID, removed.ID)

	user = s.snapshot().User
	s.NotContains(user.UserSkills, first.ID)
	s.NotContains(user.SkillConstraints, first.ID)
	s.NotContains(user.PillarLevels[fitness.PillarPush].UnlockedSkills, first.ID)
	s.Len(user.CustomSkills[fitness.PillarPush], 1)

	_, err = s.store.RemoveCustomSkill("push-l0-s0")
	s.True(errors.IsFailedPrecondition(err))

	_, err = s.store.RemoveCustomSkill("custom-nope")
	s.True(errors.IsNotFound(err))
}

func (s *StoreTestSuite) TestDisableKeepsUnlockHistory() {
	def, err := s.store.DisableSkill("Standard Push-up", progression.ConstraintInput{
		Reason:    "wrist pain",
		Condition: "until cleared by physio",
		Tags:      []string{"wrist"},
	})
	s.Require().NoError(err)
	s.Equal("push-l0-s1", def.ID)

	user := s.snapshot().User
	s.True(user.IsSkillUnlocked("push-l0-s1"))
	s.True(user.IsSkillDisabled("push-l0-s1"))
	c := user.SkillConstraints["push-l0-s1"]
	s.Equal("wrist pain", c.Reason)
	s.Equal([]string{"wrist"}, c.Tags)

	_, err = s.store.DisableSkill("Underwater Basket Weaving", progression.ConstraintInput{})
	s.True(errors.IsNotFound(err))
}

func (s *StoreTestSuite) TestDisableGymVariant() {
	def, err := s.store.DisableSkill("gym-leg-press", progression.ConstraintInput{Reason: "knee"})
	s.Require().NoError(err)
	s.Equal(fitness.SourceGymVariant, def.Source)
	s.True(s.snapshot().User.IsSkillDisabled("gym-leg-press"))
}

func (s *StoreTestSuite) TestFailedMutationLeavesStateUntouched() {
	before := s.snapshot()

	_, err := s.store.RemoveDebuff("nothing")
	s.Require().Error(err)
	_, err = s.store.CompleteQuest("missing")
	s.Require().Error(err)

	s.Equal(before, s.snapshot())
}

func (s *StoreTestSuite) TestEquipmentAndRecovery() {
	gym := true
	items, err := s.store.SetEquipment([]string{"Dumbbells", "dumbbells", "Treadmill"}, &gym)
	s.Require().NoError(err)
	s.Len(items, 2)

	snap := s.snapshot()
	s.True(snap.User.HasGymAccess)
	s.Len(snap.Equipment, 2)

	_, err = s.store.SetRecovery("sleepy", "")
	s.True(errors.IsInvalidArgument(err))

	status, err := s.store.SetRecovery(fitness.RecoveryFatigued, "bad sleep")
	s.Require().NoError(err)
	s.Equal(fitness.RecoveryFatigued, status.Level)
	s.Equal(fitness.RecoveryFatigued, s.snapshot().Recovery.Level)
}

func (s *StoreTestSuite) TestRecordTrainingLog() {
	entry, err := s.store.RecordTrainingLog(fitness.TrainingLogEntry{
		Description:     "45 min run <script>x</script>",
		DurationMinutes: 45,
		XPMultiplier:    1.0,
		XPAwarded:       15,
	})
	s.Require().NoError(err)
	s.Equal("45 min run", entry.Description)
	s.NotEmpty(entry.ID)

	snap := s.snapshot()
	s.Equal(15, snap.User.Exp)
	s.Len(snap.TrainingLogs, 1)
	s.Require().Len(snap.TrainingHistory, 1)
	s.Equal(15, snap.TrainingHistory[0].ExpGained)
	s.Equal(1, snap.User.TotalWorkouts)

	_, err = s.store.RecordTrainingLog(fitness.TrainingLogEntry{Description: "   "})
	s.True(errors.IsInvalidArgument(err))
}

func (s *StoreTestSuite) TestImportAssessment() {
	s.Require().NoError(s.store.ImportAssessment(progression.Assessment{
		Name:              "Ana",
		Rank:              fitness.RankC,
		Level:             12,
		Stats:             map[string]int{"strength": 40, "flexibility": 400},
		PillarLevels:      map[fitness.Pillar]int{fitness.PillarPull: 2, fitness.PillarMobility: 7},
		Objective:         fitness.ObjectiveSkill,
		FitnessLevel:      fitness.FitnessIntermediate,
		AvailableTime:     60,
		TrainingFrequency: 4,
		HeightCm:          20,
		Debuffs:           []progression.DebuffInput{{Name: "Tight hamstrings"}, {Name: ""}},
		Equipment:         []string{"Pull-up bar"},
	}))

	snap := s.snapshot()
	user := snap.User
	s.Equal("Ana", user.Name)
	s.Equal(fitness.RankC, user.Rank)
	s.Equal(12, user.Level)
	s.Equal(40, user.Stats.Strength)
	s.Equal(fitness.StatMax, user.Stats.Flexibility)
	s.Equal(2, user.PillarLevels[fitness.PillarPull].Level)
	s.Equal(fitness.MaxPillarLevel, user.PillarLevels[fitness.PillarMobility].Level)
	s.Len(user.PillarLevels[fitness.PillarPull].UnlockedSkills, 2*5+3)
	s.Equal(progression.MinHeightCm, user.HeightCm)
	s.Len(user.Debuffs, 1)
	s.Len(snap.Equipment, 1)
}

func (s *StoreTestSuite) TestReset() {
	_, err := s.store.AddMovementXP(fitness.PillarPush, 10_000)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Reset())

	snap := s.snapshot()
	s.Equal("user-1", snap.UserID)
	s.Equal(0, snap.User.PillarLevels[fitness.PillarPush].Level)
	s.Len(snap.User.PillarLevels[fitness.PillarPush].UnlockedSkills, 2)
}

func (s *StoreTestSuite) TestHydrateLegacySnapshot() {
	legacy := &fitness.Snapshot{
		UserID: "legacy",
		User: &fitness.UserProfile{
			Name: "Old",
			Rank: "Z",
			PillarLevels: map[fitness.Pillar]*fitness.PillarLevel{
				fitness.PillarPush: {Level: 9},
			},
			UserSkills: map[string]*fitness.UserSkill{
				"push-l0-s0": {Unlocked: true, MasteryLevel: 4},
			},
		},
		DailyQuests: []fitness.Quest{{ID: "q1", Name: "Old quest", Status: "in_progress"}},
		TrainingHistory: []fitness.TrainingDay{
			{Date: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), Completed: true},
			{Date: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), Completed: true},
		},
	}

	store := s.newStore(legacy)
	snap, err := store.Snapshot()
	s.Require().NoError(err)

	s.Equal(fitness.SnapshotVersion, snap.Version)
	s.Equal(fitness.RankE, snap.User.Rank)
	s.Equal(1, snap.User.Level)
	s.Equal(220, snap.User.ExpToNextLevel)
	s.Equal(fitness.MaxPillarLevel, snap.User.PillarLevels[fitness.PillarPush].Level)
	s.NotNil(snap.User.PillarLevels[fitness.PillarEndurance])
	s.Equal(400, snap.User.UserSkills["push-l0-s0"].MasteryLevel, "legacy mastery is read on the 0-500 scale")
	s.Equal(fitness.QuestPending, snap.DailyQuests[0].Status)
	s.Equal(2, snap.User.TotalWorkouts)
	s.Equal(2, snap.User.Streak)
	s.NotNil(snap.QuestHistory)
}
