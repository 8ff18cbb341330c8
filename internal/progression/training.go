package progression

import (
	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/textnorm"
)

// Training log bounds
const (
	MaxTrainingDescription = 1000
	MaxAnalysisLength      = 2000
	maxRecoveryNote        = 280
)

// RecordTrainingLog stores an analyzed session: its XP goes to the user level,
// its day is marked trained and the derived metrics are rebuilt
func (s *Store) RecordTrainingLog(entry fitness.TrainingLogEntry) (*fitness.TrainingLogEntry, error) {
	entry.Description = textnorm.Sanitize(entry.Description, MaxTrainingDescription)
	if entry.Description == "" {
		return nil, errors.InvalidArgument("training description is required")
	}
	entry.Analysis = textnorm.Sanitize(entry.Analysis, MaxAnalysisLength)
	entry.CadenceNote = textnorm.SanitizeLine(entry.CadenceNote, maxRecoveryNote)
	entry.ProtectionTags = textnorm.CleanList(entry.ProtectionTags, 40)
	entry.XPAwarded = max(entry.XPAwarded, 0)

	var out fitness.TrainingLogEntry
	err := s.mutate(func(snap *fitness.Snapshot) error {
		if entry.ID == "" {
			entry.ID = s.ids.Generate()
		}
		if entry.Date.IsZero() {
			entry.Date = s.clock.Now()
		}

		s.addExp(snap.User, entry.XPAwarded)
		s.upsertTrainingDay(snap, entry.Date, nil, entry.XPAwarded)
		recomputeDerived(snap, s.loc)
		snap.TrainingLogs = append(snap.TrainingLogs, entry)

		out = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetRecovery records how recovered the user feels
func (s *Store) SetRecovery(level fitness.RecoveryLevel, note string) (*fitness.RecoveryStatus, error) {
	if !level.IsValid() {
		return nil, errors.InvalidArgumentf("invalid recovery level %q", level)
	}

	var out fitness.RecoveryStatus
	err := s.mutate(func(snap *fitness.Snapshot) error {
		snap.Recovery = &fitness.RecoveryStatus{
			Level:     level,
			Note:      textnorm.SanitizeLine(note, maxRecoveryNote),
			UpdatedAt: s.clock.Now(),
		}
		out = *snap.Recovery
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
