package fitness

import (
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotVersion is the schema version written by this build.
// Version 1 snapshots predate the envelope and carry no version field.
const SnapshotVersion = 2

// Snapshot is the whole persisted state of one user
type Snapshot struct {
	Version int    `json:"version"`
	UserID  string `json:"userId"`

	User *UserProfile `json:"user"`

	DailyQuests  []Quest `json:"dailyQuests"`
	WeeklyQuests []Quest `json:"weeklyQuests"`
	QuestHistory []Quest `json:"questHistory"`

	TrainingHistory []TrainingDay      `json:"trainingHistory"`
	TrainingLogs    []TrainingLogEntry `json:"trainingLogs"`

	Equipment []EquipmentItem `json:"equipment"`
	Recovery  *RecoveryStatus `json:"recovery,omitempty"`

	LastQuestGeneration time.Time `json:"lastQuestGeneration"`
	SavedAt             time.Time `json:"savedAt"`
}

// Clone returns a deep copy of the snapshot
func (s *Snapshot) Clone() (*Snapshot, error) {
	if s == nil {
		return nil, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	var out Snapshot
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &out, nil
}

// FindQuest returns a pointer to the active quest with id, searching daily then weekly
func (s *Snapshot) FindQuest(id string) *Quest {
	for i := range s.DailyQuests {
		if s.DailyQuests[i].ID == id {
			return &s.DailyQuests[i]
		}
	}
	for i := range s.WeeklyQuests {
		if s.WeeklyQuests[i].ID == id {
			return &s.WeeklyQuests[i]
		}
	}
	return nil
}
