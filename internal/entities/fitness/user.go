package fitness

import "time"

// Stats holds the six primary attributes, each in [StatMin, StatMax]
type Stats struct {
	Strength    int `json:"strength"`
	Agility     int `json:"agility"`
	Stamina     int `json:"stamina"`
	Vitality    int `json:"vitality"`
	Discipline  int `json:"discipline"`
	Flexibility int `json:"flexibility"`
}

// RadarStats is the secondary, display-only stat set
type RadarStats struct {
	Power        int `json:"power"`
	Speed        int `json:"speed"`
	Balance      int `json:"balance"`
	Coordination int `json:"coordination"`
	Technique    int `json:"technique"`
	Recovery     int `json:"recovery"`
}

// Stat bounds shared by Stats and RadarStats
const (
	StatMin = 1
	StatMax = 100
)

// StatNames lists the keys accepted by Stats.Get and Stats.Set
var StatNames = []string{"strength", "agility", "stamina", "vitality", "discipline", "flexibility"}

// RadarStatNames lists the keys accepted by RadarStats.Get and RadarStats.Set
var RadarStatNames = []string{"power", "speed", "balance", "coordination", "technique", "recovery"}

func (s *Stats) field(name string) *int {
	switch name {
	case "strength":
		return &s.Strength
	case "agility":
		return &s.Agility
	case "stamina":
		return &s.Stamina
	case "vitality":
		return &s.Vitality
	case "discipline":
		return &s.Discipline
	case "flexibility":
		return &s.Flexibility
	}
	return nil
}

// Get returns the named stat
func (s *Stats) Get(name string) (int, bool) {
	f := s.field(name)
	if f == nil {
		return 0, false
	}
	return *f, true
}

// Set assigns the named stat, returning false for unknown names
func (s *Stats) Set(name string, value int) bool {
	f := s.field(name)
	if f == nil {
		return false
	}
	*f = value
	return true
}

func (r *RadarStats) field(name string) *int {
	switch name {
	case "power":
		return &r.Power
	case "speed":
		return &r.Speed
	case "balance":
		return &r.Balance
	case "coordination":
		return &r.Coordination
	case "technique":
		return &r.Technique
	case "recovery":
		return &r.Recovery
	}
	return nil
}

// Get returns the named radar stat
func (r *RadarStats) Get(name string) (int, bool) {
	f := r.field(name)
	if f == nil {
		return 0, false
	}
	return *f, true
}

// Set assigns the named radar stat, returning false for unknown names
func (r *RadarStats) Set(name string, value int) bool {
	f := r.field(name)
	if f == nil {
		return false
	}
	*f = value
	return true
}

// PillarLevel tracks leveling for one movement pillar
type PillarLevel struct {
	Level          int      `json:"level"`
	XP             int      `json:"xp"`
	XPToNext       int      `json:"xpToNext"`
	UnlockedSkills []string `json:"unlockedSkills"`
}

// HasUnlocked reports whether skillID is in the pillar's unlocked set
func (p *PillarLevel) HasUnlocked(skillID string) bool {
	for _, id := range p.UnlockedSkills {
		if id == skillID {
			return true
		}
	}
	return false
}

// UserSkill joins a user to a skill definition.
// MasteryLevel is XP on the 0-500 scale; values of 5 or less are legacy
// star ratings and must be read through a normalizer.
type UserSkill struct {
	Unlocked     bool      `json:"unlocked"`
	UnlockedAt   time.Time `json:"unlockedAt"`
	MasteryLevel int       `json:"masteryLevel"`
}

// SkillConstraint overrides a skill's availability without touching its unlock history
type SkillConstraint struct {
	Status    ConstraintStatus `json:"status"`
	Reason    string           `json:"reason,omitempty"`
	Condition string           `json:"condition,omitempty"`
	Tags      []string         `json:"tags,omitempty"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Debuff is a named limitation (injury, condition) with the exercises it affects
type Debuff struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	AffectedExercises []string  `json:"affectedExercises,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// UserProfile is the single per-session user record
type UserProfile struct {
	Name           string      `json:"name"`
	Bio            string      `json:"bio,omitempty"`
	Rank           Rank        `json:"rank"`
	Level          int         `json:"level"`
	Exp            int         `json:"exp"`
	ExpToNextLevel int         `json:"expToNextLevel"`
	AthleteTier    AthleteTier `json:"athleteTier"`
	Stats          Stats       `json:"stats"`
	RadarStats     RadarStats  `json:"radarStats"`

	HeightCm int `json:"height"`
	WeightKg int `json:"weight"`
	Age      int `json:"age"`

	Objective    Objective    `json:"objective"`
	FitnessLevel FitnessLevel `json:"fitnessLevel"`

	// Derived from training history; never incremented directly
	Streak        int `json:"streak"`
	TotalWorkouts int `json:"totalWorkouts"`

	Debuffs          []Debuff                     `json:"debuffs"`
	PillarLevels     map[Pillar]*PillarLevel      `json:"pillarLevels"`
	UserSkills       map[string]*UserSkill        `json:"userSkills"`
	CustomSkills     map[Pillar][]SkillDefinition `json:"customSkills"`
	SkillConstraints map[string]*SkillConstraint  `json:"skillConstraints"`

	HasGymAccess      bool `json:"hasGymAccess"`
	AvailableTime     int  `json:"availableTime"`
	TrainingFrequency int  `json:"trainingFrequency"`

	CreatedAt time.Time `json:"createdAt"`
}

// Pillar returns the pillar record, or nil when missing
func (u *UserProfile) Pillar(p Pillar) *PillarLevel {
	if u == nil || u.PillarLevels == nil {
		return nil
	}
	return u.PillarLevels[p]
}

// PillarLevelOf returns the level for p, 0 when the record is missing
func (u *UserProfile) PillarLevelOf(p Pillar) int {
	if pl := u.Pillar(p); pl != nil {
		return pl.Level
	}
	return 0
}

// IsSkillUnlocked reports whether the user has skillID unlocked
func (u *UserProfile) IsSkillUnlocked(skillID string) bool {
	if u == nil || u.UserSkills == nil {
		return false
	}
	us, ok := u.UserSkills[skillID]
	return ok && us != nil && us.Unlocked
}

// IsSkillDisabled reports whether a constraint disables skillID
func (u *UserProfile) IsSkillDisabled(skillID string) bool {
	if u == nil || u.SkillConstraints == nil {
		return false
	}
	c, ok := u.SkillConstraints[skillID]
	return ok && c != nil && c.Status == ConstraintDisabled
}

// SkillDefinition describes a named exercise progression
type SkillDefinition struct {
	ID           string      `json:"id" yaml:"id"`
	Name         string      `json:"name" yaml:"name"`
	Pillar       Pillar      `json:"pillar" yaml:"pillar"`
	Level        int         `json:"level" yaml:"level"`
	SkillIndex   int         `json:"skillIndex" yaml:"skill_index"`
	Requirements []string    `json:"requirements,omitempty" yaml:"requirements"`
	Benefits     []string    `json:"benefits,omitempty" yaml:"benefits"`
	Tags         []string    `json:"tags,omitempty" yaml:"tags"`
	Source       SkillSource `json:"source" yaml:"source"`
	Reason       string      `json:"reason,omitempty" yaml:"reason"`
	// Equipment keywords, set on gym variants only
	Equipment []string `json:"equipment,omitempty" yaml:"equipment"`
}
