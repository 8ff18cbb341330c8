package questgen

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/jsonargs"
)

// Payload is an AI-proposed quest set after shape validation. Field values are
// still untrusted and are normalized during generation.
type Payload struct {
	Daily  []QuestDraft
	Weekly []QuestDraft
}

// QuestDraft is one proposed quest. Numeric fields are nil when missing or unparsable.
type QuestDraft struct {
	Name           string
	Description    string
	ExecutionGuide string
	Pillar         fitness.Pillar
	Sets           *int
	Reps           string
	XPReward       *int
	Difficulty     string
	StatBoost      *fitness.StatBoost
}

// ParsePayload validates the {daily: [...], weekly: [...]} shape. A missing or
// non-array daily list, or a non-array weekly list, is an error. Array entries
// that are not objects are dropped.
func ParsePayload(data []byte) (*Payload, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.InvalidArgument("quest payload is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.InvalidArgument("quest payload must be an object")
	}

	daily := root.Get("daily")
	if !daily.IsArray() {
		return nil, errors.InvalidArgument("quest payload is missing the daily array")
	}
	weekly := root.Get("weekly")
	if weekly.Exists() && !weekly.IsArray() {
		return nil, errors.InvalidArgument("quest payload weekly field must be an array")
	}

	return &Payload{
		Daily:  draftsFrom(daily),
		Weekly: draftsFrom(weekly),
	}, nil
}

func draftsFrom(list gjson.Result) []QuestDraft {
	var out []QuestDraft
	for _, item := range list.Array() {
		if !item.IsObject() {
			continue
		}
		obj, ok := item.Value().(map[string]any)
		if !ok {
			continue
		}
		out = append(out, DraftFromArgs(obj))
	}
	return out
}

// DraftFromArgs reads a quest draft from an untyped argument object
func DraftFromArgs(args jsonargs.Args) QuestDraft {
	var d QuestDraft
	d.Name, _ = args.First("name", "exercise", "title")
	d.Description, _ = args.String("description")
	d.ExecutionGuide, _ = args.String("executionGuide")
	if p, ok := args.String("pillar"); ok {
		d.Pillar = fitness.Pillar(strings.ToLower(strings.TrimSpace(p)))
	}
	if v, ok := args.Int("sets"); ok {
		d.Sets = &v
	}
	d.Reps, _ = args.String("reps")
	if v, ok := args.Int("xpReward"); ok {
		d.XPReward = &v
	}
	if v, ok := args.String("difficulty"); ok {
		d.Difficulty = strings.ToLower(strings.TrimSpace(v))
	}
	if boost, ok := args.Object("statBoost"); ok {
		stat, _ := boost.String("stat")
		amount, _ := boost.Int("amount")
		d.StatBoost = &fitness.StatBoost{Stat: strings.ToLower(strings.TrimSpace(stat)), Amount: amount}
	}
	return d
}
