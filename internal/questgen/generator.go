// Package questgen builds the daily and weekly quest set for a user from the
// current snapshot and an optional AI-proposed payload. Generation is pure: it
// reads the snapshot and returns quests without touching the store.
package questgen

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/rpg-fitness/internal/catalog/equipment"
	"github.com/KirkDiggler/rpg-fitness/internal/catalog/skills"
	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/textnorm"
	"github.com/KirkDiggler/rpg-fitness/internal/progression"
)

// RecentWindow is how far back quest history counts as recently used
const RecentWindow = 10 * 24 * time.Hour

const (
	maxQuestName        = 80
	maxQuestDescription = 500
	maxStatBoost        = 3
	minWeeklySessions   = 2
	maxWeeklySessions   = 7
)

var defaultReps = map[fitness.Pillar]string{
	fitness.PillarPush:      "8-12",
	fitness.PillarPull:      "6-10",
	fitness.PillarCore:      "30-45s",
	fitness.PillarLegs:      "10-15",
	fitness.PillarMobility:  "60s hold",
	fitness.PillarEndurance: "10 min",
}

var pillarTitle = cases.Title(language.English)

// Config holds the dependencies for the generator
type Config struct {
	Catalog   *skills.Catalog
	Equipment *equipment.Catalog
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Equipment == nil {
		vb.RequiredField("Equipment")
	}

	return vb.Build()
}

// Generator produces quest sets
type Generator struct {
	catalog   *skills.Catalog
	equipment *equipment.Catalog
}

// New creates a generator
func New(cfg *Config) (*Generator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid questgen config")
	}
	return &Generator{catalog: cfg.Catalog, equipment: cfg.Equipment}, nil
}

// Result is one generated quest set. Quests carry no ids or status yet; the
// store assigns those when the set is installed.
type Result struct {
	Daily  []fitness.Quest
	Weekly []fitness.Quest
	// UsedAI is true when at least one AI draft was applied to a quest
	UsedAI bool
}

// ResolveDailyQuestCount maps available minutes to the number of daily quests
func ResolveDailyQuestCount(availableTime int) int {
	switch {
	case availableTime <= 20:
		return 2
	case availableTime <= 35:
		return 3
	case availableTime <= 50:
		return 4
	case availableTime <= 70:
		return 5
	default:
		return 6
	}
}

// DeriveSets picks a set count from the session length and weekly frequency
func DeriveSets(availableTime, frequency int) int {
	sets := int(math.Round(float64(availableTime) / 15))
	sets = min(max(sets, 2), 6)
	if frequency >= 5 {
		sets--
	}
	return progression.ClampSets(sets)
}

// DefaultReps returns the rep prescription used when a quest has none
func DefaultReps(pillar fitness.Pillar) string {
	if reps, ok := defaultReps[pillar]; ok {
		return reps
	}
	return "8-12"
}

// Generate builds the daily and weekly quests. A nil payload means fully local
// generation.
func (g *Generator) Generate(snap *fitness.Snapshot, now time.Time, payload *Payload) *Result {
	user := snap.User
	if user == nil {
		user = &fitness.UserProfile{}
	}

	run := &generation{
		gen:      g,
		user:     user,
		recent:   recentNames(snap.QuestHistory, now),
		selected: make(map[string]bool),
		pools:    make(map[fitness.Pillar][]fitness.SkillDefinition),
	}
	for _, pillar := range fitness.AllPillars {
		if pool := g.pool(user, snap.Equipment, pillar); len(pool) > 0 {
			run.pools[pillar] = pool
			run.active = append(run.active, pillar)
		}
	}
	if len(run.active) == 0 {
		run.active = fitness.AllPillars
	}

	result := &Result{}
	count := ResolveDailyQuestCount(user.AvailableTime)
	for i := range count {
		var draft *QuestDraft
		if payload != nil && i < len(payload.Daily) {
			draft = &payload.Daily[i]
		}
		q, usedAI := run.daily(i, draft)
		result.Daily = append(result.Daily, q)
		result.UsedAI = result.UsedAI || usedAI
	}

	var weeklyDraft *QuestDraft
	if payload != nil && len(payload.Weekly) > 0 {
		weeklyDraft = &payload.Weekly[0]
	}
	weekly, usedAI := run.weekly(weeklyDraft)
	result.Weekly = []fitness.Quest{weekly}
	result.UsedAI = result.UsedAI || usedAI

	return result
}

// NormalizeDraft turns a free-standing draft into a quest with every field
// bounded. It is used for quests the coach adds outside a generation run.
func (g *Generator) NormalizeDraft(user *fitness.UserProfile, draft QuestDraft, questType fitness.QuestType) fitness.Quest {
	if user == nil {
		user = &fitness.UserProfile{}
	}
	pillar := draft.Pillar
	if !pillar.IsValid() {
		pillar = fitness.PillarCore
	}
	local := fitness.Quest{
		Name:       textnorm.SanitizeLine(draft.Name, maxQuestName),
		Type:       questType,
		Pillar:     pillar,
		Sets:       DeriveSets(user.AvailableTime, user.TrainingFrequency),
		Reps:       DefaultReps(pillar),
		XPReward:   progression.ClampQuestXP(questType, 0),
		Difficulty: fitness.DifficultyMedium,
		StatBoost:  &fitness.StatBoost{Stat: progression.DefaultStatFor(pillar), Amount: 1},
	}
	if questType == fitness.QuestWeekly {
		local.Sessions = weeklySessions(user)
	}
	applyDraft(&local, &draft)
	return local
}

func (g *Generator) pool(user *fitness.UserProfile, items []fitness.EquipmentItem, pillar fitness.Pillar) []fitness.SkillDefinition {
	pool := g.catalog.GetUnlockedSkillPool(user, pillar)
	if user.HasGymAccess {
		pool = append(pool, g.equipment.GymSkillPool(user, items, pillar)...)
	}
	return avoidDebuffs(pool, user.Debuffs)
}

// avoidDebuffs drops skills named by an active debuff, unless that would leave nothing
func avoidDebuffs(pool []fitness.SkillDefinition, debuffs []fitness.Debuff) []fitness.SkillDefinition {
	var affected []string
	for _, d := range debuffs {
		affected = append(affected, d.AffectedExercises...)
	}
	if len(affected) == 0 {
		return pool
	}

	var out []fitness.SkillDefinition
	for _, def := range pool {
		blocked := false
		for _, name := range affected {
			if textnorm.FuzzyMatch(def.Name, name) {
				blocked = true
				break
			}
		}
		if !blocked {
			out = append(out, def)
		}
	}
	if len(out) == 0 {
		return pool
	}
	return out
}

func recentNames(history []fitness.Quest, now time.Time) map[string]bool {
	cutoff := now.Add(-RecentWindow)
	out := make(map[string]bool)
	for _, q := range history {
		at := q.CreatedAt
		if q.CompletedAt != nil {
			at = *q.CompletedAt
		}
		if at.Before(cutoff) {
			continue
		}
		if key := textnorm.Key(q.Name); key != "" {
			out[key] = true
		}
	}
	return out
}

// generation is the state of one Generate call
type generation struct {
	gen      *Generator
	user     *fitness.UserProfile
	recent   map[string]bool
	selected map[string]bool
	active   []fitness.Pillar
	pools    map[fitness.Pillar][]fitness.SkillDefinition
}

// candidates filters a pool to names neither recent nor already selected,
// relaxing to not-selected and then to the raw pool
func (r *generation) candidates(pillar fitness.Pillar) []fitness.SkillDefinition {
	pool := r.pools[pillar]

	var fresh, unselected []fitness.SkillDefinition
	for _, def := range pool {
		key := textnorm.Key(def.Name)
		if r.selected[key] {
			continue
		}
		unselected = append(unselected, def)
		if !r.recent[key] {
			fresh = append(fresh, def)
		}
	}
	switch {
	case len(fresh) > 0:
		return fresh
	case len(unselected) > 0:
		return unselected
	default:
		return pool
	}
}

func (r *generation) daily(slot int, draft *QuestDraft) (fitness.Quest, bool) {
	pillar := r.active[slot%len(r.active)]
	candidates := r.candidates(pillar)

	var skill *fitness.SkillDefinition
	if len(candidates) > 0 {
		skill = &candidates[slot%len(candidates)]
	}
	if draft != nil {
		if match := matchDraft(candidates, draft.Name); match != nil {
			skill = match
		}
	}

	q := r.localQuest(fitness.QuestDaily, pillar, skill)
	if draft != nil {
		applyDraft(&q, draft)
	}
	if skill != nil {
		r.selected[textnorm.Key(skill.Name)] = true
	}
	return q, draft != nil
}

func (r *generation) weekly(draft *QuestDraft) (fitness.Quest, bool) {
	pillar := r.active[0]
	for _, p := range r.active {
		if r.user.PillarLevelOf(p) < r.user.PillarLevelOf(pillar) {
			pillar = p
		}
	}
	candidates := r.candidates(pillar)

	var skill *fitness.SkillDefinition
	if len(candidates) > 0 {
		skill = &candidates[0]
	}
	if draft != nil {
		if match := matchDraft(candidates, draft.Name); match != nil {
			skill = match
		}
	}

	q := r.localQuest(fitness.QuestWeekly, pillar, skill)
	if draft != nil {
		applyDraft(&q, draft)
	}
	return q, draft != nil
}

// matchDraft returns the candidate the AI name refers to, preferring an exact match
func matchDraft(candidates []fitness.SkillDefinition, name string) *fitness.SkillDefinition {
	if textnorm.Key(name) == "" {
		return nil
	}
	for i := range candidates {
		if textnorm.Equal(candidates[i].Name, name) {
			return &candidates[i]
		}
	}
	for i := range candidates {
		if textnorm.FuzzyMatch(candidates[i].Name, name) {
			return &candidates[i]
		}
	}
	return nil
}

func (r *generation) localQuest(questType fitness.QuestType, pillar fitness.Pillar, skill *fitness.SkillDefinition) fitness.Quest {
	sets := DeriveSets(r.user.AvailableTime, r.user.TrainingFrequency)
	reps := DefaultReps(pillar)
	difficulty := difficultyFor(r.user.FitnessLevel)

	q := fitness.Quest{
		Type:       questType,
		Pillar:     pillar,
		Sets:       sets,
		Reps:       reps,
		Difficulty: difficulty,
		StatBoost:  &fitness.StatBoost{Stat: progression.DefaultStatFor(pillar), Amount: 1},
	}

	level := r.user.PillarLevelOf(pillar)
	name := pillarTitle.String(string(pillar)) + " Practice"
	if skill != nil {
		level = skill.Level
		name = skill.Name
		skillLevel := skill.Level
		q.SkillID = skill.ID
		q.SkillLevel = &skillLevel
		q.SkillTags = append([]string(nil), skill.Tags...)
		q.SkillReason = skill.Reason
		if q.SkillReason == "" {
			q.SkillReason = fmt.Sprintf("Unlocked %s level %d skill", pillar, skill.Level)
		}
	}

	if questType == fitness.QuestWeekly {
		q.Sessions = weeklySessions(r.user)
		q.Name = fmt.Sprintf("%s Consistency Block", pillarTitle.String(string(pillar)))
		q.Description = fmt.Sprintf("Train %s %d times this week, built around %s.", pillar, q.Sessions, name)
		q.ExecutionGuide = fmt.Sprintf("Each session: %d sets of %s. Leave at least one rest day between hard sessions.", sets, reps)
		q.XPReward = progression.ClampQuestXP(questType, 110+15*q.Sessions)
		return q
	}

	q.Name = name
	q.Description = fmt.Sprintf("%s work for the %s pillar.", name, pillar)
	if skill != nil && len(skill.Benefits) > 0 {
		q.Description = strings.TrimSuffix(skill.Benefits[0], ".") + "."
	}
	q.ExecutionGuide = fmt.Sprintf("%d sets of %s. Rest 60-90s between sets.", sets, reps)
	q.XPReward = progression.ClampQuestXP(questType, 20+4*level+difficultyBonus(difficulty))
	return q
}

// applyDraft overlays the usable AI fields onto a locally built quest.
// The quest keeps the locally chosen skill name and the weekly session count
// derived from training frequency; garbled values keep the local default.
func applyDraft(q *fitness.Quest, d *QuestDraft) {
	if q.Name == "" {
		q.Name = textnorm.SanitizeLine(d.Name, maxQuestName)
	}
	if desc := textnorm.Sanitize(d.Description, maxQuestDescription); desc != "" {
		q.Description = desc
	}
	if guide := textnorm.Sanitize(d.ExecutionGuide, maxQuestDescription); guide != "" {
		q.ExecutionGuide = guide
	}
	if d.Sets != nil {
		q.Sets = progression.ClampSets(*d.Sets)
	}
	if reps := textnorm.SanitizeLine(d.Reps, 40); reps != "" {
		q.Reps = reps
	}
	if d.XPReward != nil {
		q.XPReward = progression.ClampQuestXP(q.Type, *d.XPReward)
	}
	q.Difficulty = fitness.Difficulty(d.Difficulty)
	if !q.Difficulty.IsValid() {
		q.Difficulty = fitness.DifficultyMedium
	}
	if d.StatBoost != nil && d.StatBoost.Amount > 0 {
		var stats fitness.Stats
		if _, ok := stats.Get(d.StatBoost.Stat); ok {
			q.StatBoost = &fitness.StatBoost{Stat: d.StatBoost.Stat, Amount: min(d.StatBoost.Amount, maxStatBoost)}
		}
	}
}

func weeklySessions(user *fitness.UserProfile) int {
	return min(max(user.TrainingFrequency, minWeeklySessions), maxWeeklySessions)
}

func difficultyFor(level fitness.FitnessLevel) fitness.Difficulty {
	switch level {
	case fitness.FitnessBeginner:
		return fitness.DifficultyEasy
	case fitness.FitnessAdvanced, fitness.FitnessElite:
		return fitness.DifficultyHard
	default:
		return fitness.DifficultyMedium
	}
}

func difficultyBonus(d fitness.Difficulty) int {
	switch d {
	case fitness.DifficultyHard:
		return 4
	case fitness.DifficultyMedium:
		return 2
	default:
		return 0
	}
}
