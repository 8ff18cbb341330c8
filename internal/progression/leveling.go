package progression

import (
	"math"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
)

// Leveling limits
const (
	MaxUserLevel = 100
	MaxMastery   = 500

	// legacyMasteryCeiling is the top of the old 0-5 star scale
	legacyMasteryCeiling = 5
	legacyMasteryScale   = 100

	failedChallengeRetention = 0.8
)

// ExpToNextLevel returns the experience needed to leave level. It is 0 at the cap.
func ExpToNextLevel(level int) int {
	if level >= MaxUserLevel {
		return 0
	}
	if level < 1 {
		level = 1
	}
	return int(math.Floor(220 * math.Pow(1.12, float64(level-1))))
}

// PillarXPToNext returns the pillar experience needed to leave level
func PillarXPToNext(level int) int {
	return max(100, int(math.Floor(150*math.Pow(1.2, float64(level)))))
}

// AthleteTierFor maps a user level to its display tier
func AthleteTierFor(level int) fitness.AthleteTier {
	switch {
	case level >= 90:
		return fitness.TierDiamond
	case level >= 76:
		return fitness.TierPlatinum
	case level >= 51:
		return fitness.TierGold
	case level >= 21:
		return fitness.TierSilver
	default:
		return fitness.TierBronze
	}
}

// NormalizeMastery reads a stored mastery value on the 0-500 scale.
// Values of 1-5 are legacy star ratings and are scaled by 100. A genuine
// 1-5 XP value on the new scale is indistinguishable and gets scaled too.
func NormalizeMastery(v int) int {
	switch {
	case v <= 0:
		return 0
	case v <= legacyMasteryCeiling:
		return v * legacyMasteryScale
	default:
		return min(v, MaxMastery)
	}
}

// AddExp awards user experience
func (s *Store) AddExp(amount int) error {
	return s.mutate(func(snap *fitness.Snapshot) error {
		s.addExp(snap.User, amount)
		return nil
	})
}

// AddMovementXP awards pillar experience. It reports whether the pillar leveled up.
func (s *Store) AddMovementXP(pillar fitness.Pillar, amount int) (bool, error) {
	if !pillar.IsValid() {
		return false, errors.InvalidPillar(string(pillar))
	}

	var leveled bool
	err := s.mutate(func(snap *fitness.Snapshot) error {
		leveled = s.addMovementXP(snap.User, pillar, amount)
		return nil
	})
	return leveled, err
}

// AddSkillXP awards mastery to an unlocked skill. It reports whether anything changed.
func (s *Store) AddSkillXP(skillID string, amount int) (bool, error) {
	var changed bool
	err := s.mutate(func(snap *fitness.Snapshot) error {
		changed = addSkillXP(snap.User, skillID, amount)
		return nil
	})
	return changed, err
}

// AttemptLevelUp resolves a pillar challenge. Success raises the level by one
// and resets its XP; failure keeps the level and costs 20% of the XP.
func (s *Store) AttemptLevelUp(pillar fitness.Pillar, success bool) (*fitness.PillarLevel, error) {
	if !pillar.IsValid() {
		return nil, errors.InvalidPillar(string(pillar))
	}

	var result fitness.PillarLevel
	err := s.mutate(func(snap *fitness.Snapshot) error {
		pl := ensurePillar(snap.User, pillar)
		if success {
			if pl.Level < fitness.MaxPillarLevel {
				pl.Level++
				pl.XP = 0
				pl.XPToNext = PillarXPToNext(pl.Level)
				s.synchronize(snap.User, pillar)
			}
		} else {
			pl.XP = int(math.Floor(float64(pl.XP) * failedChallengeRetention))
		}
		result = *pl
		result.UnlockedSkills = append([]string(nil), pl.UnlockedSkills...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Store) addExp(user *fitness.UserProfile, amount int) {
	if amount > 0 && user.Level < MaxUserLevel {
		user.Exp += amount
		for user.Level < MaxUserLevel {
			if user.ExpToNextLevel <= 0 {
				user.ExpToNextLevel = ExpToNextLevel(user.Level)
			}
			if user.Exp < user.ExpToNextLevel {
				break
			}
			user.Exp -= user.ExpToNextLevel
			user.Level++
			user.ExpToNextLevel = ExpToNextLevel(user.Level)
		}
	}

	if user.Level >= MaxUserLevel {
		user.Level = MaxUserLevel
		user.Exp = 0
		user.ExpToNextLevel = 0
	}
	user.AthleteTier = AthleteTierFor(user.Level)
}

// addMovementXP stops accumulating at the pillar level cap
func (s *Store) addMovementXP(user *fitness.UserProfile, pillar fitness.Pillar, amount int) bool {
	pl := ensurePillar(user, pillar)
	if amount <= 0 || pl.Level >= fitness.MaxPillarLevel {
		return false
	}

	start := pl.Level
	pl.XP += amount
	for pl.Level < fitness.MaxPillarLevel && pl.XP >= pl.XPToNext {
		pl.XP -= pl.XPToNext
		pl.Level++
		pl.XPToNext = PillarXPToNext(pl.Level)
	}
	if pl.Level >= fitness.MaxPillarLevel {
		pl.XP = min(pl.XP, pl.XPToNext)
	}

	if pl.Level > start {
		s.synchronize(user, pillar)
		return true
	}
	return false
}

func addSkillXP(user *fitness.UserProfile, skillID string, amount int) bool {
	us, ok := user.UserSkills[skillID]
	if !ok || us == nil || !us.Unlocked {
		return false
	}
	us.MasteryLevel = min(max(NormalizeMastery(us.MasteryLevel)+amount, 0), MaxMastery)
	return true
}

func ensurePillar(user *fitness.UserProfile, pillar fitness.Pillar) *fitness.PillarLevel {
	if user.PillarLevels == nil {
		user.PillarLevels = make(map[fitness.Pillar]*fitness.PillarLevel)
	}
	pl, ok := user.PillarLevels[pillar]
	if !ok || pl == nil {
		pl = &fitness.PillarLevel{XPToNext: PillarXPToNext(0), UnlockedSkills: []string{}}
		user.PillarLevels[pillar] = pl
	}
	if pl.XPToNext <= 0 {
		pl.XPToNext = PillarXPToNext(pl.Level)
	}
	return pl
}
