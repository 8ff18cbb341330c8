package progression

import (
	"math"
	"time"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/textnorm"
)

// pillarXPShare is the fraction of quest XP credited to the quest's pillar
const pillarXPShare = 0.35

// defaultStatByPillar is boosted when a quest carries no valid stat boost
var defaultStatByPillar = map[fitness.Pillar]string{
	fitness.PillarPush:      "strength",
	fitness.PillarPull:      "strength",
	fitness.PillarCore:      "vitality",
	fitness.PillarLegs:      "agility",
	fitness.PillarMobility:  "flexibility",
	fitness.PillarEndurance: "stamina",
}

// CompletionResult summarizes what a quest completion awarded
type CompletionResult struct {
	Quest fitness.Quest
	// AlreadyTerminal is true when the call was a no-op
	AlreadyTerminal bool

	ExpAwarded       int
	PillarXPAwarded  int
	UserLeveledUp    bool
	PillarLeveledUp  bool
	UnlockedSkillID  string
	MasterySkillID   string
	StatBoosted      string
	StatBoostApplied int
}

// QuestUpdate holds the editable quest fields. Nil fields are left unchanged.
type QuestUpdate struct {
	Name           *string
	Description    *string
	ExecutionGuide *string
	Pillar         *fitness.Pillar
	Sets           *int
	Reps           *string
	XPReward       *int
	Difficulty     *fitness.Difficulty
}

// ReplaceQuests installs a freshly generated quest set
func (s *Store) ReplaceQuests(daily, weekly []fitness.Quest) error {
	return s.mutate(func(snap *fitness.Snapshot) error {
		now := s.clock.Now()
		snap.DailyQuests = s.prepareQuests(daily, fitness.QuestDaily, now)
		snap.WeeklyQuests = s.prepareQuests(weekly, fitness.QuestWeekly, now)
		snap.LastQuestGeneration = now
		return nil
	})
}

func (s *Store) prepareQuests(quests []fitness.Quest, questType fitness.QuestType, now time.Time) []fitness.Quest {
	out := make([]fitness.Quest, 0, len(quests))
	for _, q := range quests {
		if q.ID == "" {
			q.ID = s.ids.Generate()
		}
		q.Type = questType
		if q.Status == "" {
			q.Status = fitness.QuestPending
		}
		if q.CreatedAt.IsZero() {
			q.CreatedAt = now
		}
		out = append(out, q)
	}
	return out
}

// CompleteQuest runs the completion pipeline for a pending quest. Completing a
// quest that is already completed or failed changes nothing.
func (s *Store) CompleteQuest(questID string) (*CompletionResult, error) {
	var result *CompletionResult
	err := s.mutate(func(snap *fitness.Snapshot) error {
		var err error
		result, err = s.completeQuest(snap, questID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) completeQuest(snap *fitness.Snapshot, questID string) (*CompletionResult, error) {
	q := snap.FindQuest(questID)
	if q == nil {
		return nil, errors.QuestNotFound(questID)
	}
	if q.Status.IsTerminal() {
		return &CompletionResult{Quest: *q, AlreadyTerminal: true}, nil
	}

	now := s.clock.Now()
	user := snap.User
	result := &CompletionResult{}

	pillarLevelBefore := user.PillarLevelOf(q.Pillar)
	levelBefore := user.Level

	s.addExp(user, q.XPReward)
	result.ExpAwarded = max(q.XPReward, 0)
	result.UserLeveledUp = user.Level > levelBefore

	if q.Pillar.IsValid() {
		result.PillarXPAwarded = int(math.Floor(float64(max(q.XPReward, 0)) * pillarXPShare))
		result.PillarLeveledUp = s.addMovementXP(user, q.Pillar, result.PillarXPAwarded)
	}

	masteryTarget := ""
	if q.SkillID != "" {
		if def, err := s.catalog.GetSkillDefinition(user, q.SkillID); err == nil {
			if s.unlock(user, def.Pillar, def.ID, now) {
				result.UnlockedSkillID = def.ID
			}
			masteryTarget = def.ID
		}
	}
	if masteryTarget == "" {
		masteryTarget = s.bestMasteryMatch(user, q, pillarLevelBefore)
	}
	if masteryTarget != "" && addSkillXP(user, masteryTarget, q.XPReward) {
		result.MasterySkillID = masteryTarget
	}

	result.StatBoosted, result.StatBoostApplied = applyStatBoost(user, q)

	s.upsertTrainingDay(snap, now, &fitness.CompletedTrainingQuest{
		QuestID:     q.ID,
		Name:        q.Name,
		Pillar:      q.Pillar,
		Type:        q.Type,
		Sets:        q.Sets,
		Reps:        q.Reps,
		XPReward:    q.XPReward,
		CompletedAt: now,
	}, result.ExpAwarded)
	recomputeDerived(snap, s.loc)

	q.Status = fitness.QuestCompleted
	completedAt := now
	q.CompletedAt = &completedAt
	snap.QuestHistory = append(snap.QuestHistory, *q)

	result.Quest = *q
	return result, nil
}

// bestMasteryMatch picks the unlocked skill at level on the quest's pillar whose
// name matches the quest name, preferring an exact match
func (s *Store) bestMasteryMatch(user *fitness.UserProfile, q *fitness.Quest, level int) string {
	var candidates []fitness.SkillDefinition
	for _, def := range s.catalog.ForLevel(q.Pillar, level) {
		if user.IsSkillUnlocked(def.ID) {
			candidates = append(candidates, def)
		}
	}
	for _, def := range user.CustomSkills[q.Pillar] {
		if def.Level == level && user.IsSkillUnlocked(def.ID) {
			candidates = append(candidates, def)
		}
	}

	for _, def := range candidates {
		if textnorm.Equal(def.Name, q.Name) {
			return def.ID
		}
	}
	best, bestLen := "", 0
	for _, def := range candidates {
		if !textnorm.FuzzyMatch(def.Name, q.Name) {
			continue
		}
		if l := len(textnorm.Key(def.Name)); l > bestLen {
			best, bestLen = def.ID, l
		}
	}
	return best
}

// DefaultStatFor returns the stat a quest on pillar boosts when it names none
func DefaultStatFor(pillar fitness.Pillar) string {
	return defaultStatByPillar[pillar]
}

func applyStatBoost(user *fitness.UserProfile, q *fitness.Quest) (string, int) {
	stat, amount := defaultStatByPillar[q.Pillar], 1
	if q.StatBoost != nil {
		if _, ok := user.Stats.Get(q.StatBoost.Stat); ok && q.StatBoost.Amount > 0 {
			stat, amount = q.StatBoost.Stat, q.StatBoost.Amount
		}
	}

	current, ok := user.Stats.Get(stat)
	if !ok {
		return "", 0
	}
	next := clampStat(current + amount)
	user.Stats.Set(stat, next)
	return stat, next - current
}

// FailQuest marks a pending quest failed. Failed quests stay out of history.
func (s *Store) FailQuest(questID string) (*fitness.Quest, error) {
	var out fitness.Quest
	err := s.mutate(func(snap *fitness.Snapshot) error {
		q := snap.FindQuest(questID)
		if q == nil {
			return errors.QuestNotFound(questID)
		}
		if !q.Status.IsTerminal() {
			q.Status = fitness.QuestFailed
		}
		out = *q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AddQuest appends a pending quest to the daily or weekly list
func (s *Store) AddQuest(q fitness.Quest) (*fitness.Quest, error) {
	if !q.Type.IsValid() {
		q.Type = fitness.QuestDaily
	}
	if !q.Pillar.IsValid() {
		return nil, errors.InvalidPillar(string(q.Pillar))
	}
	if textnorm.Key(q.Name) == "" {
		return nil, errors.InvalidArgument("quest name is required")
	}

	var out fitness.Quest
	err := s.mutate(func(snap *fitness.Snapshot) error {
		now := s.clock.Now()
		q.ID = s.ids.Generate()
		q.Status = fitness.QuestPending
		q.CreatedAt = now
		q.CompletedAt = nil
		q.Sets = ClampSets(q.Sets)
		q.XPReward = ClampQuestXP(q.Type, q.XPReward)
		if !q.Difficulty.IsValid() {
			q.Difficulty = fitness.DifficultyMedium
		}

		if q.Type == fitness.QuestWeekly {
			snap.WeeklyQuests = append(snap.WeeklyQuests, q)
		} else {
			snap.DailyQuests = append(snap.DailyQuests, q)
		}
		out = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateQuest edits a pending quest
func (s *Store) UpdateQuest(questID string, upd QuestUpdate) (*fitness.Quest, error) {
	var out fitness.Quest
	err := s.mutate(func(snap *fitness.Snapshot) error {
		q := snap.FindQuest(questID)
		if q == nil {
			return errors.QuestNotFound(questID)
		}
		if q.Status.IsTerminal() {
			return errors.FailedPreconditionf("quest %s is already %s", questID, q.Status)
		}

		if upd.Name != nil && textnorm.Key(*upd.Name) != "" {
			q.Name = *upd.Name
		}
		if upd.Description != nil {
			q.Description = *upd.Description
		}
		if upd.ExecutionGuide != nil {
			q.ExecutionGuide = *upd.ExecutionGuide
		}
		if upd.Pillar != nil && upd.Pillar.IsValid() {
			q.Pillar = *upd.Pillar
		}
		if upd.Sets != nil {
			q.Sets = ClampSets(*upd.Sets)
		}
		if upd.Reps != nil && *upd.Reps != "" {
			q.Reps = *upd.Reps
		}
		if upd.XPReward != nil {
			q.XPReward = ClampQuestXP(q.Type, *upd.XPReward)
		}
		if upd.Difficulty != nil && upd.Difficulty.IsValid() {
			q.Difficulty = *upd.Difficulty
		}
		out = *q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveQuest deletes an active quest
func (s *Store) RemoveQuest(questID string) error {
	return s.mutate(func(snap *fitness.Snapshot) error {
		for i := range snap.DailyQuests {
			if snap.DailyQuests[i].ID == questID {
				snap.DailyQuests = append(snap.DailyQuests[:i], snap.DailyQuests[i+1:]...)
				return nil
			}
		}
		for i := range snap.WeeklyQuests {
			if snap.WeeklyQuests[i].ID == questID {
				snap.WeeklyQuests = append(snap.WeeklyQuests[:i], snap.WeeklyQuests[i+1:]...)
				return nil
			}
		}
		return errors.QuestNotFound(questID)
	})
}

// ClampQuestXP bounds a reward to the range of its quest type
func ClampQuestXP(questType fitness.QuestType, xp int) int {
	if questType == fitness.QuestWeekly {
		return min(max(xp, fitness.WeeklyXPMin), fitness.WeeklyXPMax)
	}
	return min(max(xp, fitness.DailyXPMin), fitness.DailyXPMax)
}

// ClampSets bounds a set count to the allowed range
func ClampSets(sets int) int {
	return min(max(sets, fitness.MinSets), fitness.MaxSets)
}
