// Package fitness contains the domain types for the fitness progression engine
package fitness

// Pillar is one of the six independently leveled movement categories
type Pillar string

// Movement pillars
const (
	PillarPush      Pillar = "push"
	PillarPull      Pillar = "pull"
	PillarCore      Pillar = "core"
	PillarLegs      Pillar = "legs"
	PillarMobility  Pillar = "mobility"
	PillarEndurance Pillar = "endurance"
)

// AllPillars lists the pillars in their canonical order. Round-robin quest
// assignment and every "for each pillar" loop follow this order.
var AllPillars = []Pillar{
	PillarPush,
	PillarPull,
	PillarCore,
	PillarLegs,
	PillarMobility,
	PillarEndurance,
}

// IsValid reports whether p is a known pillar
func (p Pillar) IsValid() bool {
	switch p {
	case PillarPush, PillarPull, PillarCore, PillarLegs, PillarMobility, PillarEndurance:
		return true
	}
	return false
}

// String returns the pillar identifier
func (p Pillar) String() string {
	return string(p)
}

// Pillar level bounds
const (
	MinPillarLevel = 0
	MaxPillarLevel = 4
)

// Rank is the ordinal hunter rank, E < D < C < B < A < S
type Rank string

// Ranks in ascending order
const (
	RankE Rank = "E"
	RankD Rank = "D"
	RankC Rank = "C"
	RankB Rank = "B"
	RankA Rank = "A"
	RankS Rank = "S"
)

var rankOrder = map[Rank]int{
	RankE: 0,
	RankD: 1,
	RankC: 2,
	RankB: 3,
	RankA: 4,
	RankS: 5,
}

// IsValid reports whether r is a known rank
func (r Rank) IsValid() bool {
	_, ok := rankOrder[r]
	return ok
}

// Ordinal returns the position of the rank, or -1 when unknown
func (r Rank) Ordinal() int {
	if o, ok := rankOrder[r]; ok {
		return o
	}
	return -1
}

// Less reports whether r ranks below other
func (r Rank) Less(other Rank) bool {
	return r.Ordinal() < other.Ordinal()
}

// AthleteTier is the display-only tier derived from the user level
type AthleteTier string

// Athlete tiers
const (
	TierBronze   AthleteTier = "Bronze"
	TierSilver   AthleteTier = "Silver"
	TierGold     AthleteTier = "Gold"
	TierPlatinum AthleteTier = "Platinum"
	TierDiamond  AthleteTier = "Diamond"
)

// FitnessLevel describes the self-reported training background
type FitnessLevel string

// Fitness levels
const (
	FitnessBeginner     FitnessLevel = "beginner"
	FitnessIntermediate FitnessLevel = "intermediate"
	FitnessAdvanced     FitnessLevel = "advanced"
	FitnessElite        FitnessLevel = "elite"
)

// IsValid reports whether f is a known fitness level
func (f FitnessLevel) IsValid() bool {
	switch f {
	case FitnessBeginner, FitnessIntermediate, FitnessAdvanced, FitnessElite:
		return true
	}
	return false
}

// Objective is the user's primary training goal
type Objective string

// Objectives
const (
	ObjectiveStrength    Objective = "strength"
	ObjectiveHypertrophy Objective = "hypertrophy"
	ObjectiveFatLoss     Objective = "fat_loss"
	ObjectiveEndurance   Objective = "endurance"
	ObjectiveMobility    Objective = "mobility"
	ObjectiveSkill       Objective = "skill"
	ObjectiveGeneral     Objective = "general"
)

// IsValid reports whether o is a known objective
func (o Objective) IsValid() bool {
	switch o {
	case ObjectiveStrength, ObjectiveHypertrophy, ObjectiveFatLoss, ObjectiveEndurance,
		ObjectiveMobility, ObjectiveSkill, ObjectiveGeneral:
		return true
	}
	return false
}

// QuestType separates daily from weekly quests
type QuestType string

// Quest types
const (
	QuestDaily  QuestType = "daily"
	QuestWeekly QuestType = "weekly"
)

// IsValid reports whether t is a known quest type
func (t QuestType) IsValid() bool {
	return t == QuestDaily || t == QuestWeekly
}

// QuestStatus is the quest state machine position
type QuestStatus string

// Quest statuses. Completed and failed are terminal.
const (
	QuestPending   QuestStatus = "pending"
	QuestCompleted QuestStatus = "completed"
	QuestFailed    QuestStatus = "failed"
)

// IsTerminal reports whether no further transition is allowed
func (s QuestStatus) IsTerminal() bool {
	return s == QuestCompleted || s == QuestFailed
}

// Difficulty of a quest
type Difficulty string

// Difficulties
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is a known difficulty
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// SkillSource records where a skill definition came from
type SkillSource string

// Skill sources
const (
	SourceCore       SkillSource = "core"
	SourceAdaptiveAI SkillSource = "adaptive-ai"
	SourceGymVariant SkillSource = "gym-variant"
)

// ConstraintStatus enables or disables a skill
type ConstraintStatus string

// Constraint statuses
const (
	ConstraintActive   ConstraintStatus = "active"
	ConstraintDisabled ConstraintStatus = "disabled"
)

// IsValid reports whether c is a known constraint status
func (c ConstraintStatus) IsValid() bool {
	return c == ConstraintActive || c == ConstraintDisabled
}

// EquipmentCategory groups equipment items
type EquipmentCategory string

// Equipment categories
const (
	EquipmentFreeWeight EquipmentCategory = "free-weight"
	EquipmentBarbell    EquipmentCategory = "barbell"
	EquipmentMachine    EquipmentCategory = "machine"
	EquipmentCable      EquipmentCategory = "cable"
	EquipmentCardio     EquipmentCategory = "cardio"
	EquipmentAccessory  EquipmentCategory = "accessory"
	EquipmentBodyweight EquipmentCategory = "bodyweight"
	EquipmentOther      EquipmentCategory = "other"
)

// RecoveryLevel summarizes how recovered the user feels
type RecoveryLevel string

// Recovery levels
const (
	RecoveryFresh     RecoveryLevel = "fresh"
	RecoveryNormal    RecoveryLevel = "normal"
	RecoveryFatigued  RecoveryLevel = "fatigued"
	RecoveryExhausted RecoveryLevel = "exhausted"
)

// IsValid reports whether r is a known recovery level
func (r RecoveryLevel) IsValid() bool {
	switch r {
	case RecoveryFresh, RecoveryNormal, RecoveryFatigued, RecoveryExhausted:
		return true
	}
	return false
}
