// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/progression"
)

// SnapshotBuilder provides a fluent interface for building test snapshots
type SnapshotBuilder struct {
	snap *fitness.Snapshot
}

// NewSnapshotBuilder starts from a fresh profile created at now
func NewSnapshotBuilder(userID string, now time.Time) *SnapshotBuilder {
	return &SnapshotBuilder{snap: progression.NewSnapshot(userID, now)}
}

// WithName sets the display name
func (b *SnapshotBuilder) WithName(name string) *SnapshotBuilder {
	b.snap.User.Name = name
	return b
}

// WithPillarLevel sets one pillar level
func (b *SnapshotBuilder) WithPillarLevel(p fitness.Pillar, level int) *SnapshotBuilder {
	if pl := b.snap.User.PillarLevels[p]; pl != nil {
		pl.Level = level
	} else {
		b.snap.User.PillarLevels[p] = &fitness.PillarLevel{Level: level}
	}
	return b
}

// WithTrainingContext sets available minutes and weekly frequency
func (b *SnapshotBuilder) WithTrainingContext(minutes, perWeek int) *SnapshotBuilder {
	b.snap.User.AvailableTime = minutes
	b.snap.User.TrainingFrequency = perWeek
	return b
}

// WithFitnessLevel sets the self-reported fitness level
func (b *SnapshotBuilder) WithFitnessLevel(l fitness.FitnessLevel) *SnapshotBuilder {
	b.snap.User.FitnessLevel = l
	return b
}

// WithDailyQuests installs active daily quests
func (b *SnapshotBuilder) WithDailyQuests(quests ...fitness.Quest) *SnapshotBuilder {
	b.snap.DailyQuests = append(b.snap.DailyQuests, quests...)
	return b
}

// WithLastQuestGeneration sets when quests were last generated
func (b *SnapshotBuilder) WithLastQuestGeneration(t time.Time) *SnapshotBuilder {
	b.snap.LastQuestGeneration = t
	return b
}

// Build returns the snapshot
func (b *SnapshotBuilder) Build() *fitness.Snapshot {
	return b.snap
}
