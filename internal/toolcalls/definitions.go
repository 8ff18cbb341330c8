package toolcalls

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
)

// Tool names. These are the wire contract with the AI gateway.
const (
	ToolGetUserState          = "get_user_state"
	ToolUpdateBio             = "update_bio"
	ToolUpdateEquipment       = "update_equipment"
	ToolUpdateTrainingContext = "update_training_context"
	ToolUpdatePerformance     = "update_performance_profile"
	ToolAddDebuff             = "add_debuff"
	ToolRemoveDebuff          = "remove_debuff"
	ToolClearDebuffs          = "clear_debuffs"
	ToolAddCustomSkill        = "add_custom_skill"
	ToolDisableSkill          = "disable_skill"
	ToolEnableSkill           = "enable_skill"
	ToolRemoveCustomSkill     = "remove_custom_skill"
	ToolAddQuest              = "add_quest"
	ToolUpdateQuest           = "update_quest"
	ToolRemoveQuest           = "remove_quest"
	ToolSetRecoveryStatus     = "set_recovery_status"
)

// Definition describes one tool for function calling. Parameters carry types
// and enums only; range bounds are enforced by clamping at execution time.
type Definition struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
}

func object(required []string, props map[string]*jsonschema.Schema) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object", Properties: props, Required: required}
}

func str(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: desc}
}

func integer(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Description: desc}
}

func boolean(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "boolean", Description: desc}
}

func strList(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "array", Description: desc, Items: &jsonschema.Schema{Type: "string"}}
}

func enum(desc string, values ...string) *jsonschema.Schema {
	s := &jsonschema.Schema{Type: "string", Description: desc}
	for _, v := range values {
		s.Enum = append(s.Enum, v)
	}
	return s
}

func intMap(desc string, keys ...string) *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema, len(keys))
	for _, k := range keys {
		props[k] = &jsonschema.Schema{Type: "integer"}
	}
	return &jsonschema.Schema{Type: "object", Description: desc, Properties: props}
}

func pillarNames() []string {
	out := make([]string, len(fitness.AllPillars))
	for i, p := range fitness.AllPillars {
		out[i] = string(p)
	}
	return out
}

// Definitions returns every tool in a stable order
func Definitions() []Definition {
	pillars := pillarNames()

	return []Definition{
		{
			Name:        ToolGetUserState,
			Description: "Read the full user state: profile, pillar levels, unlocked skills, quests, equipment and recovery.",
			Parameters:  object(nil, map[string]*jsonschema.Schema{}),
		},
		{
			Name:        ToolUpdateBio,
			Description: "Append to or replace the user's biography notes.",
			Parameters: object([]string{"text"}, map[string]*jsonschema.Schema{
				"text": str("Bio text to store"),
				"mode": enum("append (default) or replace", "append", "replace"),
			}),
		},
		{
			Name:        ToolUpdateEquipment,
			Description: "Replace the user's equipment list and optionally set gym access.",
			Parameters: object([]string{"equipment"}, map[string]*jsonschema.Schema{
				"equipment":    strList("Equipment the user owns or can use"),
				"hasGymAccess": boolean("Whether the user trains in a gym"),
			}),
		},
		{
			Name:        ToolUpdateTrainingContext,
			Description: "Update objective, fitness level, minutes per session (10-180) and sessions per week (1-7).",
			Parameters: object(nil, map[string]*jsonschema.Schema{
				"objective":         enum("Primary goal", "strength", "hypertrophy", "fat_loss", "endurance", "mobility", "skill", "general"),
				"fitnessLevel":      enum("Training background", "beginner", "intermediate", "advanced", "elite"),
				"availableTime":     integer("Minutes per session, 10-180"),
				"trainingFrequency": integer("Sessions per week, 1-7"),
			}),
		},
		{
			Name:        ToolUpdatePerformance,
			Description: "Overwrite stats (1-100), radar stats (1-100), rank and user level (1-100). Pillar levels (0-4) can only be raised.",
			Parameters: object(nil, map[string]*jsonschema.Schema{
				"stats":        intMap("Stat values", fitness.StatNames...),
				"radarStats":   intMap("Radar chart values", fitness.RadarStatNames...),
				"pillarLevels": intMap("Pillar levels", pillars...),
				"rank":         enum("Hunter rank", "E", "D", "C", "B", "A", "S"),
				"level":        integer("User level, 1-100"),
			}),
		},
		{
			Name:        ToolAddDebuff,
			Description: "Record an injury or limitation and the exercises it affects.",
			Parameters: object([]string{"name"}, map[string]*jsonschema.Schema{
				"name":              str("Short name of the limitation"),
				"description":       str("Details"),
				"affectedExercises": strList("Exercises to avoid"),
			}),
		},
		{
			Name:        ToolRemoveDebuff,
			Description: "Remove a debuff by id or by name.",
			Parameters: object(nil, map[string]*jsonschema.Schema{
				"id":   str("Debuff id"),
				"name": str("Debuff name"),
			}),
		},
		{
			Name:        ToolClearDebuffs,
			Description: "Remove every debuff.",
			Parameters:  object(nil, map[string]*jsonschema.Schema{}),
		},
		{
			Name:        ToolAddCustomSkill,
			Description: "Add a personalized skill to a pillar's tree.",
			Parameters: object([]string{"name", "pillar"}, map[string]*jsonschema.Schema{
				"name":         str("Skill name"),
				"pillar":       enum("Pillar", pillars...),
				"level":        integer("Tree level, 0-4"),
				"requirements": strList("Prerequisites"),
				"benefits":     strList("Benefits"),
				"tags":         strList("Tags"),
				"reason":       str("Why the skill was added"),
			}),
		},
		{
			Name:        ToolDisableSkill,
			Description: "Disable a skill for safety without losing its progress.",
			Parameters: object(nil, map[string]*jsonschema.Schema{
				"skillId":   str("Skill id"),
				"skillName": str("Skill name, used when the id is unknown"),
				"reason":    str("Clinical reason"),
				"condition": str("Condition that motivates the restriction"),
				"tags":      strList("Tags"),
			}),
		},
		{
			Name:        ToolEnableSkill,
			Description: "Re-enable a previously disabled skill.",
			Parameters: object(nil, map[string]*jsonschema.Schema{
				"skillId":   str("Skill id"),
				"skillName": str("Skill name, used when the id is unknown"),
			}),
		},
		{
			Name:        ToolRemoveCustomSkill,
			Description: "Delete a custom skill. Core skills cannot be removed.",
			Parameters: object([]string{"skillId"}, map[string]*jsonschema.Schema{
				"skillId": str("Custom skill id"),
			}),
		},
		{
			Name:        ToolAddQuest,
			Description: "Add a quest to today's or this week's list.",
			Parameters: object([]string{"name", "pillar"}, map[string]*jsonschema.Schema{
				"name":           str("Exercise name"),
				"description":    str("What to do"),
				"executionGuide": str("How to do it"),
				"pillar":         enum("Pillar", pillars...),
				"type":           enum("Quest type", "daily", "weekly"),
				"sets":           integer("Sets, 1-8"),
				"reps":           str("Reps or duration"),
				"xpReward":       integer("XP, 18-40 daily or 110-220 weekly"),
				"difficulty":     enum("Difficulty", "easy", "medium", "hard"),
			}),
		},
		{
			Name:        ToolUpdateQuest,
			Description: "Edit a pending quest.",
			Parameters: object([]string{"questId"}, map[string]*jsonschema.Schema{
				"questId":        str("Quest id"),
				"name":           str("Exercise name"),
				"description":    str("What to do"),
				"executionGuide": str("How to do it"),
				"pillar":         enum("Pillar", pillars...),
				"sets":           integer("Sets, 1-8"),
				"reps":           str("Reps or duration"),
				"xpReward":       integer("XP reward"),
				"difficulty":     enum("Difficulty", "easy", "medium", "hard"),
			}),
		},
		{
			Name:        ToolRemoveQuest,
			Description: "Remove an active quest.",
			Parameters: object([]string{"questId"}, map[string]*jsonschema.Schema{
				"questId": str("Quest id"),
			}),
		},
		{
			Name:        ToolSetRecoveryStatus,
			Description: "Record how recovered the user feels.",
			Parameters: object([]string{"level"}, map[string]*jsonschema.Schema{
				"level": enum("Recovery level", "fresh", "normal", "fatigued", "exhausted"),
				"note":  str("Optional note"),
			}),
		},
	}
}
