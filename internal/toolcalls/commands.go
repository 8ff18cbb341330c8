package toolcalls

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/jsonargs"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/textnorm"
	"github.com/KirkDiggler/rpg-fitness/internal/progression"
	"github.com/KirkDiggler/rpg-fitness/internal/questgen"
)

// command is a parsed tool call. Every tool has its own command type; parsing
// coerces and bounds the arguments, running applies them to the store.
type command interface {
	run(ctx context.Context, e *Executor) (string, error)
}

type parseFunc func(args jsonargs.Args) (command, error)

var parsers = map[string]parseFunc{
	ToolGetUserState:          func(jsonargs.Args) (command, error) { return getUserState{}, nil },
	ToolUpdateBio:             parseUpdateBio,
	ToolUpdateEquipment:       parseUpdateEquipment,
	ToolUpdateTrainingContext: parseUpdateTrainingContext,
	ToolUpdatePerformance:     parseUpdatePerformance,
	ToolAddDebuff:             parseAddDebuff,
	ToolRemoveDebuff:          parseRemoveDebuff,
	ToolClearDebuffs:          func(jsonargs.Args) (command, error) { return clearDebuffs{}, nil },
	ToolAddCustomSkill:        parseAddCustomSkill,
	ToolDisableSkill:          parseDisableSkill,
	ToolEnableSkill:           parseEnableSkill,
	ToolRemoveCustomSkill:     parseRemoveCustomSkill,
	ToolAddQuest:              parseAddQuest,
	ToolUpdateQuest:           parseUpdateQuest,
	ToolRemoveQuest:           parseRemoveQuest,
	ToolSetRecoveryStatus:     parseSetRecovery,
}

func required(args jsonargs.Args, keys ...string) (string, error) {
	v, ok := args.First(keys...)
	if !ok {
		return "", errors.MissingArgument(keys[0])
	}
	return v, nil
}

func optionalInt(args jsonargs.Args, key string) *int {
	if v, ok := args.Int(key); ok {
		return &v
	}
	return nil
}

func optionalText(args jsonargs.Args, key string, maxRunes int) *string {
	v, ok := args.String(key)
	if !ok {
		return nil
	}
	v = textnorm.Sanitize(v, maxRunes)
	return &v
}

func lowerArg(args jsonargs.Args, key string) (string, bool) {
	v, ok := args.String(key)
	if !ok {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(v)), true
}

// get_user_state

type getUserState struct{}

func (getUserState) run(_ context.Context, e *Executor) (string, error) {
	snap, err := e.store.Snapshot()
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.CodeInternal, "failed to encode user state")
	}
	return string(data), nil
}

// update_bio

type updateBio struct {
	text string
	mode progression.BioMode
}

func parseUpdateBio(args jsonargs.Args) (command, error) {
	text, err := required(args, "text", "bio")
	if err != nil {
		return nil, err
	}
	mode := progression.BioAppend
	if m, _ := lowerArg(args, "mode"); m == string(progression.BioReplace) {
		mode = progression.BioReplace
	}
	return updateBio{text: text, mode: mode}, nil
}

func (c updateBio) run(_ context.Context, e *Executor) (string, error) {
	bio, err := e.store.UpdateBio(c.text, c.mode)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Bio updated (%d characters).", len([]rune(bio))), nil
}

// update_equipment

type updateEquipment struct {
	names     []string
	gymAccess *bool
}

func parseUpdateEquipment(args jsonargs.Args) (command, error) {
	names, ok := args.StringList("equipment")
	if !ok {
		return nil, errors.MissingArgument("equipment")
	}
	c := updateEquipment{names: names}
	if v, ok := args.Bool("hasGymAccess"); ok {
		c.gymAccess = &v
	}
	return c, nil
}

func (c updateEquipment) run(_ context.Context, e *Executor) (string, error) {
	items, err := e.store.SetEquipment(c.names, c.gymAccess)
	if err != nil {
		return "", err
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	if len(names) == 0 {
		return "Equipment cleared.", nil
	}
	return "Equipment updated: " + strings.Join(names, ", ") + ".", nil
}

// update_training_context

type updateTrainingContext struct {
	upd progression.TrainingContextUpdate
}

func parseUpdateTrainingContext(args jsonargs.Args) (command, error) {
	var upd progression.TrainingContextUpdate
	if v, ok := lowerArg(args, "objective"); ok {
		o := fitness.Objective(v)
		upd.Objective = &o
	}
	if v, ok := lowerArg(args, "fitnessLevel"); ok {
		f := fitness.FitnessLevel(v)
		upd.FitnessLevel = &f
	}
	upd.AvailableTime = optionalInt(args, "availableTime")
	upd.TrainingFrequency = optionalInt(args, "trainingFrequency")
	return updateTrainingContext{upd: upd}, nil
}

func (c updateTrainingContext) run(_ context.Context, e *Executor) (string, error) {
	if err := e.store.UpdateTrainingContext(c.upd); err != nil {
		return "", err
	}
	return "Training context updated.", nil
}

// update_performance_profile

type updatePerformance struct {
	upd progression.PerformanceUpdate
}

func parseUpdatePerformance(args jsonargs.Args) (command, error) {
	upd := progression.PerformanceUpdate{
		Stats:      args.IntMap("stats"),
		RadarStats: args.IntMap("radarStats"),
		Level:      optionalInt(args, "level"),
	}
	if levels := args.IntMap("pillarLevels"); len(levels) > 0 {
		upd.PillarLevels = make(map[fitness.Pillar]int, len(levels))
		for k, v := range levels {
			if p := fitness.Pillar(k); p.IsValid() {
				upd.PillarLevels[p] = v
			}
		}
	}
	if v, ok := args.String("rank"); ok {
		r := fitness.Rank(strings.ToUpper(strings.TrimSpace(v)))
		upd.Rank = &r
	}
	return updatePerformance{upd: upd}, nil
}

func (c updatePerformance) run(_ context.Context, e *Executor) (string, error) {
	if err := e.store.UpdatePerformanceProfile(c.upd); err != nil {
		return "", err
	}
	return "Performance profile updated.", nil
}

// add_debuff

type addDebuff struct {
	in progression.DebuffInput
}

func parseAddDebuff(args jsonargs.Args) (command, error) {
	name, err := required(args, "name")
	if err != nil {
		return nil, err
	}
	in := progression.DebuffInput{Name: name}
	in.Description, _ = args.String("description")
	in.AffectedExercises, _ = args.StringList("affectedExercises")
	return addDebuff{in: in}, nil
}

func (c addDebuff) run(_ context.Context, e *Executor) (string, error) {
	d, err := e.store.AddDebuff(c.in)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Debuff recorded: %s (%s).", d.Name, d.ID), nil
}

// remove_debuff

type removeDebuff struct {
	ref string
}

func parseRemoveDebuff(args jsonargs.Args) (command, error) {
	ref, err := required(args, "id", "name")
	if err != nil {
		return nil, err
	}
	return removeDebuff{ref: ref}, nil
}

func (c removeDebuff) run(_ context.Context, e *Executor) (string, error) {
	d, err := e.store.RemoveDebuff(c.ref)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Debuff removed: %s.", d.Name), nil
}

// clear_debuffs

type clearDebuffs struct{}

func (clearDebuffs) run(_ context.Context, e *Executor) (string, error) {
	n, err := e.store.ClearDebuffs()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Cleared %d debuffs.", n), nil
}

// add_custom_skill

type addCustomSkill struct {
	in progression.CustomSkillInput
}

func parseAddCustomSkill(args jsonargs.Args) (command, error) {
	name, err := required(args, "name")
	if err != nil {
		return nil, err
	}
	in := progression.CustomSkillInput{Name: name}
	if p, ok := lowerArg(args, "pillar"); ok {
		in.Pillar = fitness.Pillar(p)
	}
	if !in.Pillar.IsValid() {
		return nil, errors.InvalidArgumentf("pillar must be one of %s", strings.Join(pillarNames(), ", "))
	}
	in.Level, _ = args.Int("level")
	in.Requirements, _ = args.StringList("requirements")
	in.Benefits, _ = args.StringList("benefits")
	in.Tags, _ = args.StringList("tags")
	in.Reason, _ = args.String("reason")
	return addCustomSkill{in: in}, nil
}

func (c addCustomSkill) run(_ context.Context, e *Executor) (string, error) {
	def, err := e.store.AddCustomSkill(c.in)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Custom skill added: %s (%s, %s level %d).", def.Name, def.ID, def.Pillar, def.Level), nil
}

// disable_skill / enable_skill

type setSkillStatus struct {
	ref     string
	disable bool
	in      progression.ConstraintInput
}

func parseDisableSkill(args jsonargs.Args) (command, error) {
	ref, err := required(args, "skillId", "skillName")
	if err != nil {
		return nil, err
	}
	c := setSkillStatus{ref: ref, disable: true}
	c.in.Reason, _ = args.String("reason")
	c.in.Condition, _ = args.String("condition")
	c.in.Tags, _ = args.StringList("tags")
	return c, nil
}

func parseEnableSkill(args jsonargs.Args) (command, error) {
	ref, err := required(args, "skillId", "skillName")
	if err != nil {
		return nil, err
	}
	return setSkillStatus{ref: ref}, nil
}

func (c setSkillStatus) run(_ context.Context, e *Executor) (string, error) {
	if c.disable {
		def, err := e.store.DisableSkill(c.ref, c.in)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Skill disabled: %s (%s).", def.Name, def.ID), nil
	}
	def, err := e.store.EnableSkill(c.ref)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Skill enabled: %s (%s).", def.Name, def.ID), nil
}

// remove_custom_skill

type removeCustomSkill struct {
	id string
}

func parseRemoveCustomSkill(args jsonargs.Args) (command, error) {
	id, err := required(args, "skillId")
	if err != nil {
		return nil, err
	}
	return removeCustomSkill{id: id}, nil
}

func (c removeCustomSkill) run(_ context.Context, e *Executor) (string, error) {
	def, err := e.store.RemoveCustomSkill(c.id)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Custom skill removed: %s.", def.Name), nil
}

// add_quest

type addQuest struct {
	draft     questgen.QuestDraft
	questType fitness.QuestType
}

func parseAddQuest(args jsonargs.Args) (command, error) {
	draft := questgen.DraftFromArgs(args)
	if textnorm.Key(draft.Name) == "" {
		return nil, errors.MissingArgument("name")
	}
	questType := fitness.QuestDaily
	if t, _ := lowerArg(args, "type"); fitness.QuestType(t) == fitness.QuestWeekly {
		questType = fitness.QuestWeekly
	}
	return addQuest{draft: draft, questType: questType}, nil
}

func (c addQuest) run(_ context.Context, e *Executor) (string, error) {
	snap, err := e.store.Snapshot()
	if err != nil {
		return "", err
	}

	// An exact skill name pins the pillar and links the quest to the skill
	skill, _ := e.store.ResolveSkill(c.draft.Name)
	if skill != nil && !textnorm.Equal(skill.Name, c.draft.Name) {
		skill = nil
	}
	if !c.draft.Pillar.IsValid() && skill != nil {
		c.draft.Pillar = skill.Pillar
	}

	q := e.generator.NormalizeDraft(snap.User, c.draft, c.questType)
	if skill != nil && skill.Pillar == q.Pillar {
		level := skill.Level
		q.Name = skill.Name
		q.SkillID = skill.ID
		q.SkillLevel = &level
		q.SkillTags = append([]string(nil), skill.Tags...)
	}

	added, err := e.store.AddQuest(q)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Quest added: %s (%s, %s, %d XP).", added.Name, added.ID, added.Type, added.XPReward), nil
}

// update_quest

type updateQuest struct {
	id  string
	upd progression.QuestUpdate
}

func parseUpdateQuest(args jsonargs.Args) (command, error) {
	id, err := required(args, "questId", "id")
	if err != nil {
		return nil, err
	}
	upd := progression.QuestUpdate{
		Name:           optionalText(args, "name", progression.MaxNameLength),
		Description:    optionalText(args, "description", progression.MaxTextLength),
		ExecutionGuide: optionalText(args, "executionGuide", progression.MaxTextLength),
		Reps:           optionalText(args, "reps", 40),
		Sets:           optionalInt(args, "sets"),
		XPReward:       optionalInt(args, "xpReward"),
	}
	if v, ok := lowerArg(args, "pillar"); ok {
		p := fitness.Pillar(v)
		upd.Pillar = &p
	}
	if v, ok := lowerArg(args, "difficulty"); ok {
		d := fitness.Difficulty(v)
		upd.Difficulty = &d
	}
	return updateQuest{id: id, upd: upd}, nil
}

func (c updateQuest) run(_ context.Context, e *Executor) (string, error) {
	q, err := e.store.UpdateQuest(c.id, c.upd)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Quest updated: %s (%d x %s, %d XP, %s).", q.Name, q.Sets, q.Reps, q.XPReward, q.Difficulty), nil
}

// remove_quest

type removeQuest struct {
	id string
}

func parseRemoveQuest(args jsonargs.Args) (command, error) {
	id, err := required(args, "questId", "id")
	if err != nil {
		return nil, err
	}
	return removeQuest{id: id}, nil
}

func (c removeQuest) run(_ context.Context, e *Executor) (string, error) {
	if err := e.store.RemoveQuest(c.id); err != nil {
		return "", err
	}
	return "Quest removed.", nil
}

// set_recovery_status

type setRecovery struct {
	level fitness.RecoveryLevel
	note  string
}

func parseSetRecovery(args jsonargs.Args) (command, error) {
	level, _ := lowerArg(args, "level")
	note, _ := args.String("note")
	return setRecovery{level: fitness.RecoveryLevel(level), note: note}, nil
}

func (c setRecovery) run(_ context.Context, e *Executor) (string, error) {
	level := c.level
	if !level.IsValid() {
		// Keep the current level; only the note changes
		level = fitness.RecoveryNormal
		snap, err := e.store.Snapshot()
		if err != nil {
			return "", err
		}
		if snap.Recovery != nil && snap.Recovery.Level.IsValid() {
			level = snap.Recovery.Level
		}
	}
	status, err := e.store.SetRecovery(level, c.note)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Recovery set to %s.", status.Level), nil
}
