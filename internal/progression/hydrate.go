package progression

import (
	"time"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
)

// Starting values for a new profile
const (
	DefaultStat              = 10
	DefaultAvailableTime     = 45
	DefaultTrainingFrequency = 3
)

// NewSnapshot returns the state of a brand new user
func NewSnapshot(userID string, now time.Time) *fitness.Snapshot {
	user := &fitness.UserProfile{
		Rank:              fitness.RankE,
		Level:             1,
		ExpToNextLevel:    ExpToNextLevel(1),
		AthleteTier:       fitness.TierBronze,
		Objective:         fitness.ObjectiveGeneral,
		FitnessLevel:      fitness.FitnessBeginner,
		AvailableTime:     DefaultAvailableTime,
		TrainingFrequency: DefaultTrainingFrequency,
		CreatedAt:         now,
	}
	for _, name := range fitness.StatNames {
		user.Stats.Set(name, DefaultStat)
	}
	for _, name := range fitness.RadarStatNames {
		user.RadarStats.Set(name, DefaultStat)
	}

	snap := &fitness.Snapshot{
		Version: fitness.SnapshotVersion,
		UserID:  userID,
		User:    user,
	}
	Hydrate(snap, now, time.Local)
	return snap
}

// Hydrate fills defaults into a loaded snapshot so older or partial data can be
// used as is. Legacy mastery values are left untouched; they are normalized
// whenever they are read or written.
func Hydrate(snap *fitness.Snapshot, now time.Time, loc *time.Location) {
	if snap.Version < fitness.SnapshotVersion {
		snap.Version = fitness.SnapshotVersion
	}
	if snap.User == nil {
		snap.User = NewSnapshot(snap.UserID, now).User
	}

	user := snap.User
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if !user.Rank.IsValid() {
		user.Rank = fitness.RankE
	}
	if user.Level < 1 {
		user.Level = 1
	}
	if user.Level >= MaxUserLevel {
		user.Level = MaxUserLevel
		user.Exp = 0
		user.ExpToNextLevel = 0
	} else if user.ExpToNextLevel <= 0 {
		user.ExpToNextLevel = ExpToNextLevel(user.Level)
	}
	if user.Exp < 0 {
		user.Exp = 0
	}
	user.AthleteTier = AthleteTierFor(user.Level)
	if !user.Objective.IsValid() {
		user.Objective = fitness.ObjectiveGeneral
	}
	if !user.FitnessLevel.IsValid() {
		user.FitnessLevel = fitness.FitnessBeginner
	}
	if user.AvailableTime <= 0 {
		user.AvailableTime = DefaultAvailableTime
	}
	if user.TrainingFrequency <= 0 {
		user.TrainingFrequency = DefaultTrainingFrequency
	}

	for _, name := range fitness.StatNames {
		v, _ := user.Stats.Get(name)
		user.Stats.Set(name, clampStat(v))
	}
	for _, name := range fitness.RadarStatNames {
		v, _ := user.RadarStats.Get(name)
		user.RadarStats.Set(name, clampStat(v))
	}

	if user.Debuffs == nil {
		user.Debuffs = []fitness.Debuff{}
	}
	if user.UserSkills == nil {
		user.UserSkills = make(map[string]*fitness.UserSkill)
	}
	if user.CustomSkills == nil {
		user.CustomSkills = make(map[fitness.Pillar][]fitness.SkillDefinition)
	}
	if user.SkillConstraints == nil {
		user.SkillConstraints = make(map[string]*fitness.SkillConstraint)
	}
	for _, p := range fitness.AllPillars {
		pl := ensurePillar(user, p)
		pl.Level = min(max(pl.Level, fitness.MinPillarLevel), fitness.MaxPillarLevel)
		if pl.XP < 0 {
			pl.XP = 0
		}
		if pl.UnlockedSkills == nil {
			pl.UnlockedSkills = []string{}
		}
	}

	if snap.DailyQuests == nil {
		snap.DailyQuests = []fitness.Quest{}
	}
	if snap.WeeklyQuests == nil {
		snap.WeeklyQuests = []fitness.Quest{}
	}
	if snap.QuestHistory == nil {
		snap.QuestHistory = []fitness.Quest{}
	}
	for _, quests := range [][]fitness.Quest{snap.DailyQuests, snap.WeeklyQuests} {
		for i := range quests {
			switch quests[i].Status {
			case fitness.QuestPending, fitness.QuestCompleted, fitness.QuestFailed:
			default:
				quests[i].Status = fitness.QuestPending
			}
		}
	}
	if snap.TrainingHistory == nil {
		snap.TrainingHistory = []fitness.TrainingDay{}
	}
	if snap.TrainingLogs == nil {
		snap.TrainingLogs = []fitness.TrainingLogEntry{}
	}
	if snap.Equipment == nil {
		snap.Equipment = []fitness.EquipmentItem{}
	}

	recomputeDerived(snap, loc)
}

func clampStat(v int) int {
	return min(max(v, fitness.StatMin), fitness.StatMax)
}
