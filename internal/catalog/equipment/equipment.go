// Package equipment normalizes free-text equipment lists and supplies the
// gym-variant skill pool
package equipment

import (
	_ "embed"
	"fmt"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/textnorm"
)

//go:embed gym_variants.yaml
var gymVariantsYAML []byte

// MaxNameLength caps a stored equipment name
const MaxNameLength = 60

type categoryRule struct {
	category fitness.EquipmentCategory
	pattern  *regexp.Regexp
}

// Evaluated in order; the first match wins. "Cable machine" is a cable,
// "rowing machine" is a machine.
var categoryRules = []categoryRule{
	{fitness.EquipmentCable, regexp.MustCompile(`\b(cable|polea|pulley|crossover)`)},
	{fitness.EquipmentMachine, regexp.MustCompile(`\b(machine|maquina|smith|leg press|prensa|pulldown|pec deck|hack squat|leg curl|leg extension)`)},
	{fitness.EquipmentBarbell, regexp.MustCompile(`\b(barbell|barra olimpica|olympic bar|ez bar|trap bar|hex bar|squat rack|power rack|rack)\b`)},
	{fitness.EquipmentFreeWeight, regexp.MustCompile(`\b(dumbbell|mancuerna|kettlebell|pesa|plate|disco|weight vest|weights?)`)},
	{fitness.EquipmentCardio, regexp.MustCompile(`\b(treadmill|cinta|bike|bicicleta|rower|rowing|remo|elliptical|eliptica|stair ?master|stepper|jump rope|skipping rope|comba|ski ?erg)`)},
	{fitness.EquipmentBodyweight, regexp.MustCompile(`\b(pull ?up bar|chin ?up bar|barra de dominadas|dominadas|dip (bar|station)|paralelas|parallettes|rings|anillas|bar|barra)\b`)},
	{fitness.EquipmentAccessory, regexp.MustCompile(`\b(band|banda|elastic|mat|esterilla|foam roller|roller|bench|banco|box|cajon|trx|suspension|ball|balon|ab wheel|rueda|step)`)},
}

// InferCategory maps a free-text equipment name to a category
func InferCategory(name string) fitness.EquipmentCategory {
	folded := textnorm.Key(name)
	if folded == "" {
		return fitness.EquipmentOther
	}
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(folded) {
			return rule.category
		}
	}
	return fitness.EquipmentOther
}

// Normalize sanitizes, de-duplicates and categorizes free-text equipment names.
// Order of first appearance is kept.
func Normalize(names []string) []fitness.EquipmentItem {
	cleaned := textnorm.CleanList(names, MaxNameLength)
	items := make([]fitness.EquipmentItem, 0, len(cleaned))
	for _, name := range cleaned {
		items = append(items, fitness.EquipmentItem{
			ID:       textnorm.Slug(name),
			Name:     name,
			Category: InferCategory(name),
		})
	}
	return items
}

// Names returns the display names of items
func Names(items []fitness.EquipmentItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Name)
	}
	return out
}

type variantsFile struct {
	Variants []fitness.SkillDefinition `yaml:"variants"`
}

// Catalog holds the gym-variant skills
type Catalog struct {
	variants []fitness.SkillDefinition
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded gym variants
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(gymVariantsYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded gym variants are invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses a YAML list of gym variants
func Load(data []byte) (*Catalog, error) {
	var file variantsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse gym variants")
	}

	seen := make(map[string]bool, len(file.Variants))
	c := &Catalog{variants: make([]fitness.SkillDefinition, 0, len(file.Variants))}
	for i, def := range file.Variants {
		if !def.Pillar.IsValid() {
			return nil, errors.InvalidArgumentf("gym variant %d has unknown pillar %q", i, def.Pillar)
		}
		if def.Level < fitness.MinPillarLevel || def.Level > fitness.MaxPillarLevel {
			return nil, errors.InvalidArgumentf("gym variant %q has out of range level %d", def.Name, def.Level)
		}
		if len(def.Equipment) == 0 {
			return nil, errors.InvalidArgumentf("gym variant %q has no equipment keywords", def.Name)
		}
		if def.ID == "" {
			def.ID = "gym-" + textnorm.Slug(def.Name)
		}
		if seen[def.ID] {
			return nil, errors.AlreadyExistsf("duplicate gym variant id %s", def.ID)
		}
		seen[def.ID] = true
		def.Source = fitness.SourceGymVariant
		c.variants = append(c.variants, def)
	}
	return c, nil
}

// Variants returns every gym variant of a pillar
func (c *Catalog) Variants(pillar fitness.Pillar) []fitness.SkillDefinition {
	var out []fitness.SkillDefinition
	for _, def := range c.variants {
		if def.Pillar == pillar {
			out = append(out, copyDef(def))
		}
	}
	return out
}

// GymSkillPool returns the gym variants for a pillar the user can perform.
// Nothing is returned without gym access. An empty equipment list means the
// gym is unfiltered; otherwise a variant needs one keyword matching an owned item.
func (c *Catalog) GymSkillPool(user *fitness.UserProfile, items []fitness.EquipmentItem, pillar fitness.Pillar) []fitness.SkillDefinition {
	if user == nil || !user.HasGymAccess {
		return nil
	}

	var out []fitness.SkillDefinition
	for _, def := range c.Variants(pillar) {
		if user.IsSkillDisabled(def.ID) {
			continue
		}
		if len(items) == 0 || matchesAny(def.Equipment, items) {
			out = append(out, def)
		}
	}
	return out
}

func matchesAny(keywords []string, items []fitness.EquipmentItem) bool {
	for _, kw := range keywords {
		for _, item := range items {
			if textnorm.FuzzyMatch(kw, item.Name) {
				return true
			}
		}
	}
	return false
}

func copyDef(def fitness.SkillDefinition) fitness.SkillDefinition {
	def.Equipment = append([]string(nil), def.Equipment...)
	def.Tags = append([]string(nil), def.Tags...)
	def.Benefits = append([]string(nil), def.Benefits...)
	def.Requirements = append([]string(nil), def.Requirements...)
	return def
}
