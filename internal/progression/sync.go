package progression

import (
	"time"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
)

// How many canonical skills open up at a pillar's current level
const (
	entryLevelUnlocks   = 2
	currentLevelUnlocks = 3
)

// SynchronizeSkills re-runs skill unlocking for the given pillars, or all of them
func (s *Store) SynchronizeSkills(pillars ...fitness.Pillar) error {
	for _, p := range pillars {
		if !p.IsValid() {
			return errors.InvalidPillar(string(p))
		}
	}
	if len(pillars) == 0 {
		pillars = fitness.AllPillars
	}
	return s.mutate(func(snap *fitness.Snapshot) error {
		s.synchronize(snap.User, pillars...)
		return nil
	})
}

// UnlockSkill unlocks a canonical or custom skill by id. Unlocking twice keeps
// the original unlock time and mastery.
func (s *Store) UnlockSkill(skillID string) (*fitness.SkillDefinition, error) {
	var def *fitness.SkillDefinition
	err := s.mutate(func(snap *fitness.Snapshot) error {
		var err error
		def, err = s.catalog.GetSkillDefinition(snap.User, skillID)
		if err != nil {
			return err
		}
		s.unlock(snap.User, def.Pillar, def.ID, s.clock.Now())
		return nil
	})
	return def, err
}

// synchronize brings unlocks in line with pillar levels. Every level below the
// current one is fully unlocked; the current level opens its first two skills
// at level 0 and first three otherwise. Disabled skills are skipped. Unlocks
// are never removed.
func (s *Store) synchronize(user *fitness.UserProfile, pillars ...fitness.Pillar) {
	now := s.clock.Now()
	for _, pillar := range pillars {
		pl := ensurePillar(user, pillar)
		for level := fitness.MinPillarLevel; level <= pl.Level && level <= fitness.MaxPillarLevel; level++ {
			defs := s.catalog.ForLevel(pillar, level)
			n := len(defs)
			if level == pl.Level {
				n = currentLevelUnlocks
				if level == 0 {
					n = entryLevelUnlocks
				}
				n = min(n, len(defs))
			}
			for _, def := range defs[:n] {
				if user.IsSkillDisabled(def.ID) {
					continue
				}
				s.unlock(user, pillar, def.ID, now)
			}
		}
	}
}

// unlock marks skillID unlocked and records it on the pillar. It reports
// whether the skill was newly unlocked.
func (s *Store) unlock(user *fitness.UserProfile, pillar fitness.Pillar, skillID string, now time.Time) bool {
	if user.UserSkills == nil {
		user.UserSkills = make(map[string]*fitness.UserSkill)
	}

	pl := ensurePillar(user, pillar)
	if !pl.HasUnlocked(skillID) {
		pl.UnlockedSkills = append(pl.UnlockedSkills, skillID)
	}

	us, ok := user.UserSkills[skillID]
	switch {
	case ok && us != nil && us.Unlocked:
		return false
	case ok && us != nil:
		us.Unlocked = true
		us.UnlockedAt = now
	default:
		user.UserSkills[skillID] = &fitness.UserSkill{Unlocked: true, UnlockedAt: now}
	}
	return true
}
