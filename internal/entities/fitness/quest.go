package fitness

import "time"

// StatBoost is the stat increase applied when a quest completes
type StatBoost struct {
	Stat   string `json:"stat"`
	Amount int    `json:"amount"`
}

// Quest is a daily or weekly prescribed exercise task
type Quest struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	ExecutionGuide string `json:"executionGuide,omitempty"`

	// Provenance back to the skill that produced the quest
	SkillID     string   `json:"skillId,omitempty"`
	SkillLevel  *int     `json:"skillLevel,omitempty"`
	SkillTags   []string `json:"skillTags,omitempty"`
	SkillReason string   `json:"skillReason,omitempty"`

	Type       QuestType   `json:"type"`
	Pillar     Pillar      `json:"pillar"`
	Sets       int         `json:"sets"`
	Reps       string      `json:"reps"`
	Sessions   int         `json:"sessions,omitempty"`
	XPReward   int         `json:"xpReward"`
	Difficulty Difficulty  `json:"difficulty"`
	StatBoost  *StatBoost  `json:"statBoost,omitempty"`
	Status     QuestStatus `json:"status"`

	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Quest reward and volume bounds
const (
	DailyXPMin  = 18
	DailyXPMax  = 40
	WeeklyXPMin = 110
	WeeklyXPMax = 220

	MinSets = 1
	MaxSets = 8
)

// CompletedTrainingQuest is the snapshot of a quest stored on a TrainingDay
type CompletedTrainingQuest struct {
	QuestID     string    `json:"questId"`
	Name        string    `json:"name"`
	Pillar      Pillar    `json:"pillar"`
	Type        QuestType `json:"type"`
	Sets        int       `json:"sets"`
	Reps        string    `json:"reps"`
	XPReward    int       `json:"xpReward"`
	CompletedAt time.Time `json:"completedAt"`
}

// TrainingDay aggregates all training on one calendar day.
// Date is local midnight and acts as the record key.
type TrainingDay struct {
	Date            time.Time                `json:"date"`
	Completed       bool                     `json:"completed"`
	QuestsCompleted int                      `json:"questsCompleted"`
	ExpGained       int                      `json:"expGained"`
	Quests          []CompletedTrainingQuest `json:"quests"`
}

// TrainingLogEntry is a free-form session logged by the user and analyzed by the coach
type TrainingLogEntry struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"durationMinutes"`
	RPE             int       `json:"rpe,omitempty"`
	VolumePercent   int       `json:"volumePercent"`
	CadenceNote     string    `json:"cadenceNote,omitempty"`
	ProtectionTags  []string  `json:"protectionTags,omitempty"`
	XPMultiplier    float64   `json:"xpMultiplier"`
	Analysis        string    `json:"analysis,omitempty"`
	XPAwarded       int       `json:"xpAwarded"`
	// Fallback is true when the entry was produced without the AI gateway
	Fallback bool `json:"fallback,omitempty"`
}

// EquipmentItem is one normalized piece of equipment
type EquipmentItem struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Category EquipmentCategory `json:"category"`
}

// RecoveryStatus is the user's self-reported readiness
type RecoveryStatus struct {
	Level     RecoveryLevel `json:"level"`
	Note      string        `json:"note,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
