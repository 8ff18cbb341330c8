// Package skills holds the canonical skill tree and the lookups built on it
package skills

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/textnorm"
)

//go:embed skills.yaml
var skillsYAML []byte

// SkillsPerLevel is the number of canonical skills defined at every pillar level
const SkillsPerLevel = 5

type catalogFile struct {
	Pillars map[fitness.Pillar][]levelEntry `yaml:"pillars"`
}

type levelEntry struct {
	Level  int                       `yaml:"level"`
	Skills []fitness.SkillDefinition `yaml:"skills"`
}

// Catalog is the immutable canonical skill tree
type Catalog struct {
	byID    map[string]fitness.SkillDefinition
	byLevel map[fitness.Pillar][][]fitness.SkillDefinition
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded skill tree
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(skillsYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded skill catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// ID returns the canonical identifier of a catalog skill
func ID(pillar fitness.Pillar, level, index int) string {
	return fmt.Sprintf("%s-l%d-s%d", pillar, level, index)
}

// Load parses a YAML skill tree. Every pillar must define levels 0-4 with
// SkillsPerLevel skills each.
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse skill catalog")
	}

	c := &Catalog{
		byID:    make(map[string]fitness.SkillDefinition),
		byLevel: make(map[fitness.Pillar][][]fitness.SkillDefinition),
	}

	for _, pillar := range fitness.AllPillars {
		entries, ok := file.Pillars[pillar]
		if !ok {
			return nil, errors.InvalidArgumentf("skill catalog is missing pillar %s", pillar)
		}

		levels := make([][]fitness.SkillDefinition, fitness.MaxPillarLevel+1)
		for _, entry := range entries {
			if entry.Level < fitness.MinPillarLevel || entry.Level > fitness.MaxPillarLevel {
				return nil, errors.InvalidArgumentf("pillar %s has out of range level %d", pillar, entry.Level)
			}
			if len(entry.Skills) != SkillsPerLevel {
				return nil, errors.InvalidArgumentf("pillar %s level %d has %d skills, want %d",
					pillar, entry.Level, len(entry.Skills), SkillsPerLevel)
			}

			defs := make([]fitness.SkillDefinition, 0, SkillsPerLevel)
			for i, def := range entry.Skills {
				def.ID = ID(pillar, entry.Level, i)
				def.Pillar = pillar
				def.Level = entry.Level
				def.SkillIndex = i
				def.Source = fitness.SourceCore
				defs = append(defs, def)
				c.byID[def.ID] = def
			}
			levels[entry.Level] = defs
		}

		for lvl, defs := range levels {
			if defs == nil {
				return nil, errors.InvalidArgumentf("pillar %s is missing level %d", pillar, lvl)
			}
		}
		c.byLevel[pillar] = levels
	}

	for pillar := range file.Pillars {
		if !pillar.IsValid() {
			return nil, errors.InvalidArgumentf("skill catalog has unknown pillar %q", pillar)
		}
	}

	return c, nil
}

// Get returns the canonical skill with id
func (c *Catalog) Get(id string) (*fitness.SkillDefinition, bool) {
	def, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return cloneDef(def), true
}

// ForLevel returns the canonical skills of one pillar level in skill-index order
func (c *Catalog) ForLevel(pillar fitness.Pillar, level int) []fitness.SkillDefinition {
	levels, ok := c.byLevel[pillar]
	if !ok || level < 0 || level >= len(levels) {
		return nil
	}
	out := make([]fitness.SkillDefinition, 0, len(levels[level]))
	for _, def := range levels[level] {
		out = append(out, *cloneDef(def))
	}
	return out
}

// ForPillar returns every canonical skill of a pillar ordered by level then index
func (c *Catalog) ForPillar(pillar fitness.Pillar) []fitness.SkillDefinition {
	var out []fitness.SkillDefinition
	for level := fitness.MinPillarLevel; level <= fitness.MaxPillarLevel; level++ {
		out = append(out, c.ForLevel(pillar, level)...)
	}
	return out
}

// GetSkillDefinition looks id up in the canonical tree first, then in the
// user's custom skills
func (c *Catalog) GetSkillDefinition(user *fitness.UserProfile, id string) (*fitness.SkillDefinition, error) {
	if def, ok := c.Get(id); ok {
		return def, nil
	}
	if user != nil {
		for _, pillar := range fitness.AllPillars {
			for _, def := range user.CustomSkills[pillar] {
				if def.ID == id {
					return cloneDef(def), nil
				}
			}
		}
	}
	return nil, errors.SkillNotFound("skill", id)
}

// FindByName resolves a free-text skill name against the canonical tree and
// the user's custom skills. An exact key match wins over a fuzzy one.
func (c *Catalog) FindByName(user *fitness.UserProfile, name string) (*fitness.SkillDefinition, bool) {
	candidates := c.allFor(user)

	for _, def := range candidates {
		if textnorm.Equal(def.Name, name) {
			return cloneDef(def), true
		}
	}
	for _, def := range candidates {
		if textnorm.FuzzyMatch(def.Name, name) {
			return cloneDef(def), true
		}
	}
	return nil, false
}

// GetUnlockedSkillPool returns the skills available for generation on a pillar:
// unlocked and enabled definitions, then enabled custom skills at or below the
// pillar level. When nothing in that set sits at the current level the canonical
// skills for that level are appended, so the pool is never empty.
func (c *Catalog) GetUnlockedSkillPool(user *fitness.UserProfile, pillar fitness.Pillar) []fitness.SkillDefinition {
	if user == nil {
		return c.ForLevel(pillar, fitness.MinPillarLevel)
	}

	current := user.PillarLevelOf(pillar)
	seen := make(map[string]bool)
	var pool []fitness.SkillDefinition

	add := func(def fitness.SkillDefinition) {
		if seen[def.ID] {
			return
		}
		seen[def.ID] = true
		pool = append(pool, *cloneDef(def))
	}

	for _, def := range c.ForPillar(pillar) {
		if user.IsSkillUnlocked(def.ID) && !user.IsSkillDisabled(def.ID) {
			add(def)
		}
	}

	customs := append([]fitness.SkillDefinition(nil), user.CustomSkills[pillar]...)
	sort.SliceStable(customs, func(i, j int) bool { return customs[i].Level < customs[j].Level })
	for _, def := range customs {
		if user.IsSkillDisabled(def.ID) {
			continue
		}
		if def.Level <= current || user.IsSkillUnlocked(def.ID) {
			add(def)
		}
	}

	for _, def := range pool {
		if def.Level == current {
			return pool
		}
	}

	canonical := c.ForLevel(pillar, current)
	added := 0
	for _, def := range canonical {
		if user.IsSkillDisabled(def.ID) {
			continue
		}
		add(def)
		added++
	}
	if added == 0 && len(pool) == 0 {
		for _, def := range canonical {
			add(def)
		}
	}

	return pool
}

func (c *Catalog) allFor(user *fitness.UserProfile) []fitness.SkillDefinition {
	var out []fitness.SkillDefinition
	for _, pillar := range fitness.AllPillars {
		out = append(out, c.ForPillar(pillar)...)
		if user != nil {
			out = append(out, user.CustomSkills[pillar]...)
		}
	}
	return out
}

func cloneDef(def fitness.SkillDefinition) *fitness.SkillDefinition {
	def.Requirements = append([]string(nil), def.Requirements...)
	def.Benefits = append([]string(nil), def.Benefits...)
	def.Tags = append([]string(nil), def.Tags...)
	def.Equipment = append([]string(nil), def.Equipment...)
	return &def
}
