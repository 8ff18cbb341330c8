package progression

import (
	"strings"

	"github.com/KirkDiggler/rpg-fitness/internal/catalog/equipment"
	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/textnorm"
)

// Profile value bounds
const (
	MinAvailableTime     = 10
	MaxAvailableTime     = 180
	MinTrainingFrequency = 1
	MaxTrainingFrequency = 7
	MinHeightCm          = 100
	MaxHeightCm          = 250
	MinWeightKg          = 30
	MaxWeightKg          = 300
	MinAge               = 10
	MaxAge               = 100

	MaxBioLength     = 2000
	MaxNameLength    = 80
	MaxTextLength    = 500
	MaxListItemLen   = 60
	maxTagsPerRecord = 12
)

// BioMode selects how UpdateBio treats the existing bio
type BioMode string

// Bio modes
const (
	BioAppend  BioMode = "append"
	BioReplace BioMode = "replace"
)

// TrainingContextUpdate holds training preferences. Nil fields are unchanged;
// invalid enum values are ignored.
type TrainingContextUpdate struct {
	Objective         *fitness.Objective
	FitnessLevel      *fitness.FitnessLevel
	AvailableTime     *int
	TrainingFrequency *int
}

// PerformanceUpdate overwrites stats, rank and level and raises pillar levels
type PerformanceUpdate struct {
	Stats        map[string]int
	RadarStats   map[string]int
	PillarLevels map[fitness.Pillar]int
	Rank         *fitness.Rank
	Level        *int
}

// DebuffInput describes a limitation to record
type DebuffInput struct {
	Name              string
	Description       string
	AffectedExercises []string
}

// CustomSkillInput describes an AI-authored skill
type CustomSkillInput struct {
	Name         string
	Pillar       fitness.Pillar
	Level        int
	Requirements []string
	Benefits     []string
	Tags         []string
	Reason       string
}

// ConstraintInput is the clinical context recorded with a disabled skill
type ConstraintInput struct {
	Reason    string
	Condition string
	Tags      []string
}

// Assessment is an initial profile produced by onboarding
type Assessment struct {
	Name              string
	Rank              fitness.Rank
	Level             int
	Stats             map[string]int
	RadarStats        map[string]int
	PillarLevels      map[fitness.Pillar]int
	Objective         fitness.Objective
	FitnessLevel      fitness.FitnessLevel
	AvailableTime     int
	TrainingFrequency int
	HeightCm          int
	WeightKg          int
	Age               int
	Debuffs           []DebuffInput
	Equipment         []string
	HasGymAccess      bool
}

// ClampAvailableTime bounds session minutes
func ClampAvailableTime(v int) int {
	return min(max(v, MinAvailableTime), MaxAvailableTime)
}

// ClampTrainingFrequency bounds sessions per week
func ClampTrainingFrequency(v int) int {
	return min(max(v, MinTrainingFrequency), MaxTrainingFrequency)
}

// ClampPillarLevel bounds a pillar level
func ClampPillarLevel(v int) int {
	return min(max(v, fitness.MinPillarLevel), fitness.MaxPillarLevel)
}

// ClampUserLevel bounds a user level
func ClampUserLevel(v int) int {
	return min(max(v, 1), MaxUserLevel)
}

// ClampStat bounds a stat value
func ClampStat(v int) int {
	return clampStat(v)
}

// UpdateBio appends to or replaces the bio
func (s *Store) UpdateBio(text string, mode BioMode) (string, error) {
	text = textnorm.Sanitize(text, MaxBioLength)

	var bio string
	err := s.mutate(func(snap *fitness.Snapshot) error {
		user := snap.User
		switch {
		case mode == BioReplace:
			user.Bio = text
		case text == "":
		case user.Bio == "":
			user.Bio = text
		default:
			user.Bio = textnorm.Sanitize(user.Bio+"\n"+text, MaxBioLength)
		}
		bio = user.Bio
		return nil
	})
	return bio, err
}

// SetEquipment replaces the equipment list. Gym access changes only when hasGymAccess is set.
func (s *Store) SetEquipment(names []string, hasGymAccess *bool) ([]fitness.EquipmentItem, error) {
	items := equipment.Normalize(names)
	err := s.mutate(func(snap *fitness.Snapshot) error {
		snap.Equipment = append([]fitness.EquipmentItem(nil), items...)
		if hasGymAccess != nil {
			snap.User.HasGymAccess = *hasGymAccess
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateTrainingContext applies training preferences
func (s *Store) UpdateTrainingContext(upd TrainingContextUpdate) error {
	return s.mutate(func(snap *fitness.Snapshot) error {
		user := snap.User
		if upd.Objective != nil && upd.Objective.IsValid() {
			user.Objective = *upd.Objective
		}
		if upd.FitnessLevel != nil && upd.FitnessLevel.IsValid() {
			user.FitnessLevel = *upd.FitnessLevel
		}
		if upd.AvailableTime != nil {
			user.AvailableTime = ClampAvailableTime(*upd.AvailableTime)
		}
		if upd.TrainingFrequency != nil {
			user.TrainingFrequency = ClampTrainingFrequency(*upd.TrainingFrequency)
		}
		return nil
	})
}

// UpdatePerformanceProfile overwrites the provided stats, rank and user level.
// Pillar levels are only raised, and touched pillars re-run skill synchronization.
func (s *Store) UpdatePerformanceProfile(upd PerformanceUpdate) error {
	return s.mutate(func(snap *fitness.Snapshot) error {
		s.applyPerformance(snap.User, upd)
		return nil
	})
}

func (s *Store) applyPerformance(user *fitness.UserProfile, upd PerformanceUpdate) {
	for name, v := range upd.Stats {
		user.Stats.Set(strings.ToLower(name), clampStat(v))
	}
	for name, v := range upd.RadarStats {
		user.RadarStats.Set(strings.ToLower(name), clampStat(v))
	}

	var touched []fitness.Pillar
	for _, p := range fitness.AllPillars {
		v, ok := upd.PillarLevels[p]
		if !ok {
			continue
		}
		pl := ensurePillar(user, p)
		// pillar levels only move up; a lower value from the model is ignored
		if level := ClampPillarLevel(v); level > pl.Level {
			pl.Level = level
			pl.XP = 0
			pl.XPToNext = PillarXPToNext(level)
		}
		touched = append(touched, p)
	}
	if len(touched) > 0 {
		s.synchronize(user, touched...)
	}

	if upd.Rank != nil && upd.Rank.IsValid() {
		user.Rank = *upd.Rank
	}
	if upd.Level != nil {
		setUserLevel(user, ClampUserLevel(*upd.Level))
	}
}

func setUserLevel(user *fitness.UserProfile, level int) {
	user.Level = level
	user.ExpToNextLevel = ExpToNextLevel(level)
	if level >= MaxUserLevel {
		user.Exp = 0
	} else {
		user.Exp = min(max(user.Exp, 0), user.ExpToNextLevel-1)
	}
	user.AthleteTier = AthleteTierFor(level)
}

// AddDebuff records a limitation. A debuff with the same name is merged.
func (s *Store) AddDebuff(in DebuffInput) (*fitness.Debuff, error) {
	name := textnorm.SanitizeLine(in.Name, MaxNameLength)
	if textnorm.Key(name) == "" {
		return nil, errors.InvalidArgument("debuff name is required")
	}
	desc := textnorm.Sanitize(in.Description, MaxTextLength)
	affected := textnorm.CleanList(in.AffectedExercises, MaxListItemLen)

	var out fitness.Debuff
	err := s.mutate(func(snap *fitness.Snapshot) error {
		user := snap.User
		for i := range user.Debuffs {
			d := &user.Debuffs[i]
			if !textnorm.Equal(d.Name, name) {
				continue
			}
			if desc != "" {
				d.Description = desc
			}
			d.AffectedExercises = textnorm.CleanList(append(d.AffectedExercises, affected...), MaxListItemLen)
			out = *d
			return nil
		}

		d := fitness.Debuff{
			ID:                s.ids.Generate(),
			Name:              name,
			Description:       desc,
			AffectedExercises: affected,
			CreatedAt:         s.clock.Now(),
		}
		user.Debuffs = append(user.Debuffs, d)
		out = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveDebuff removes a debuff by id, falling back to a name match
func (s *Store) RemoveDebuff(ref string) (*fitness.Debuff, error) {
	var out fitness.Debuff
	err := s.mutate(func(snap *fitness.Snapshot) error {
		user := snap.User
		idx := -1
		for i, d := range user.Debuffs {
			if d.ID == ref {
				idx = i
				break
			}
		}
		if idx < 0 {
			for i, d := range user.Debuffs {
				if textnorm.Equal(d.Name, ref) {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			for i, d := range user.Debuffs {
				if textnorm.FuzzyMatch(d.Name, ref) {
					idx = i
					break
				}
			}
		}
		if idx < 0 {
			return errors.NotFoundf("debuff %q not found", ref)
		}

		out = user.Debuffs[idx]
		user.Debuffs = append(user.Debuffs[:idx], user.Debuffs[idx+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearDebuffs removes every debuff and returns how many were removed
func (s *Store) ClearDebuffs() (int, error) {
	var n int
	err := s.mutate(func(snap *fitness.Snapshot) error {
		n = len(snap.User.Debuffs)
		snap.User.Debuffs = []fitness.Debuff{}
		return nil
	})
	return n, err
}

// AddCustomSkill stores an AI-authored skill under a collision-free id. Skills
// at or below the pillar's level are unlocked straight away.
func (s *Store) AddCustomSkill(in CustomSkillInput) (*fitness.SkillDefinition, error) {
	if !in.Pillar.IsValid() {
		return nil, errors.InvalidPillar(string(in.Pillar))
	}
	name := textnorm.SanitizeLine(in.Name, MaxNameLength)
	if textnorm.Key(name) == "" {
		return nil, errors.InvalidArgument("skill name is required")
	}

	var out fitness.SkillDefinition
	err := s.mutate(func(snap *fitness.Snapshot) error {
		user := snap.User
		level := ClampPillarLevel(in.Level)
		base := "custom-" + string(in.Pillar) + "-" + textnorm.Slug(name)
		id := idgen.Unique(base, func(candidate string) bool {
			_, err := s.catalog.GetSkillDefinition(user, candidate)
			return err == nil
		}, s.ids)

		def := fitness.SkillDefinition{
			ID:           id,
			Name:         name,
			Pillar:       in.Pillar,
			Level:        level,
			SkillIndex:   len(user.CustomSkills[in.Pillar]),
			Requirements: textnorm.CleanList(in.Requirements, MaxTextLength),
			Benefits:     textnorm.CleanList(in.Benefits, MaxTextLength),
			Tags:         capList(textnorm.CleanList(in.Tags, MaxListItemLen), maxTagsPerRecord),
			Source:       fitness.SourceAdaptiveAI,
			Reason:       textnorm.Sanitize(in.Reason, MaxTextLength),
		}
		user.CustomSkills[in.Pillar] = append(user.CustomSkills[in.Pillar], def)
		if level <= user.PillarLevelOf(in.Pillar) {
			s.unlock(user, in.Pillar, id, s.clock.Now())
		}

		out = def
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DisableSkill takes a skill out of generation pools. Its unlock and mastery are kept.
func (s *Store) DisableSkill(ref string, in ConstraintInput) (*fitness.SkillDefinition, error) {
	return s.setConstraint(ref, fitness.ConstraintDisabled, in)
}

// EnableSkill lifts a constraint and lets synchronization pick the skill up again
func (s *Store) EnableSkill(ref string) (*fitness.SkillDefinition, error) {
	return s.setConstraint(ref, fitness.ConstraintActive, ConstraintInput{})
}

func (s *Store) setConstraint(ref string, status fitness.ConstraintStatus, in ConstraintInput) (*fitness.SkillDefinition, error) {
	var out *fitness.SkillDefinition
	err := s.mutate(func(snap *fitness.Snapshot) error {
		user := snap.User
		def, err := s.resolveSkill(user, ref)
		if err != nil {
			return err
		}

		c, ok := user.SkillConstraints[def.ID]
		if !ok || c == nil {
			c = &fitness.SkillConstraint{}
			user.SkillConstraints[def.ID] = c
		}
		c.Status = status
		c.UpdatedAt = s.clock.Now()
		if status == fitness.ConstraintDisabled {
			c.Reason = textnorm.Sanitize(in.Reason, MaxTextLength)
			c.Condition = textnorm.SanitizeLine(in.Condition, MaxNameLength)
			c.Tags = capList(textnorm.CleanList(in.Tags, MaxListItemLen), maxTagsPerRecord)
		} else if def.Source == fitness.SourceCore {
			s.synchronize(user, def.Pillar)
		}

		out = def
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveCustomSkill deletes an AI-authored skill along with its unlock and constraint records
func (s *Store) RemoveCustomSkill(skillID string) (*fitness.SkillDefinition, error) {
	if _, ok := s.catalog.Get(skillID); ok {
		return nil, errors.FailedPreconditionf("skill %s is part of the core tree and cannot be removed", skillID)
	}

	var out fitness.SkillDefinition
	err := s.mutate(func(snap *fitness.Snapshot) error {
		user := snap.User
		for pillar, defs := range user.CustomSkills {
			for i, def := range defs {
				if def.ID != skillID {
					continue
				}
				out = def
				user.CustomSkills[pillar] = append(defs[:i], defs[i+1:]...)
				delete(user.UserSkills, skillID)
				delete(user.SkillConstraints, skillID)
				if pl := user.Pillar(pillar); pl != nil {
					pl.UnlockedSkills = removeString(pl.UnlockedSkills, skillID)
				}
				return nil
			}
		}
		return errors.SkillNotFound("custom skill", skillID)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ResolveSkill finds a skill by id or name across the core tree, custom skills
// and gym variants
func (s *Store) ResolveSkill(ref string) (*fitness.SkillDefinition, error) {
	var (
		def *fitness.SkillDefinition
		err error
	)
	s.view(func(snap *fitness.Snapshot) {
		def, err = s.resolveSkill(snap.User, ref)
	})
	return def, err
}

func (s *Store) resolveSkill(user *fitness.UserProfile, ref string) (*fitness.SkillDefinition, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, errors.InvalidArgument("skill reference is required")
	}
	if def, err := s.catalog.GetSkillDefinition(user, ref); err == nil {
		return def, nil
	}

	var variants []fitness.SkillDefinition
	for _, p := range fitness.AllPillars {
		variants = append(variants, s.equipment.Variants(p)...)
	}
	for i := range variants {
		if variants[i].ID == ref {
			return &variants[i], nil
		}
	}

	if def, ok := s.catalog.FindByName(user, ref); ok {
		return def, nil
	}
	for i := range variants {
		if textnorm.FuzzyMatch(variants[i].Name, ref) {
			return &variants[i], nil
		}
	}
	return nil, errors.NotFoundf("skill %q not found", ref)
}

// ImportAssessment replaces the profile with an onboarding result and
// synchronizes every pillar. Quest and training history are kept.
func (s *Store) ImportAssessment(a Assessment) error {
	return s.mutate(func(snap *fitness.Snapshot) error {
		now := s.clock.Now()
		user := NewSnapshot(snap.UserID, now).User
		if snap.User != nil && !snap.User.CreatedAt.IsZero() {
			user.CreatedAt = snap.User.CreatedAt
		}

		user.Name = textnorm.SanitizeLine(a.Name, MaxNameLength)
		if a.Objective.IsValid() {
			user.Objective = a.Objective
		}
		if a.FitnessLevel.IsValid() {
			user.FitnessLevel = a.FitnessLevel
		}
		if a.AvailableTime > 0 {
			user.AvailableTime = ClampAvailableTime(a.AvailableTime)
		}
		if a.TrainingFrequency > 0 {
			user.TrainingFrequency = ClampTrainingFrequency(a.TrainingFrequency)
		}
		user.HeightCm = clampOptional(a.HeightCm, MinHeightCm, MaxHeightCm)
		user.WeightKg = clampOptional(a.WeightKg, MinWeightKg, MaxWeightKg)
		user.Age = clampOptional(a.Age, MinAge, MaxAge)
		user.HasGymAccess = a.HasGymAccess

		upd := PerformanceUpdate{
			Stats:        a.Stats,
			RadarStats:   a.RadarStats,
			PillarLevels: a.PillarLevels,
		}
		if a.Rank.IsValid() {
			upd.Rank = &a.Rank
		}
		if a.Level > 0 {
			upd.Level = &a.Level
		}
		snap.User = user
		s.applyPerformance(user, upd)
		s.synchronize(user, fitness.AllPillars...)

		for _, in := range a.Debuffs {
			name := textnorm.SanitizeLine(in.Name, MaxNameLength)
			if textnorm.Key(name) == "" {
				continue
			}
			user.Debuffs = append(user.Debuffs, fitness.Debuff{
				ID:                s.ids.Generate(),
				Name:              name,
				Description:       textnorm.Sanitize(in.Description, MaxTextLength),
				AffectedExercises: textnorm.CleanList(in.AffectedExercises, MaxListItemLen),
				CreatedAt:         now,
			})
		}

		snap.Equipment = equipment.Normalize(a.Equipment)
		recomputeDerived(snap, s.loc)
		return nil
	})
}

// clampOptional keeps 0 as "unknown" and clamps anything else
func clampOptional(v, lo, hi int) int {
	if v <= 0 {
		return 0
	}
	return min(max(v, lo), hi)
}

func capList(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

func removeString(values []string, target string) []string {
	out := values[:0]
	for _, v := range values {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}
