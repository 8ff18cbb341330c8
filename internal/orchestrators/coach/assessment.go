package coach

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-fitness/internal/clients/gateway"
	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/jsonargs"
	"github.com/KirkDiggler/rpg-fitness/internal/progression"
)

const maxAnswersLength = 8000

// Assess sends the onboarding answers to the gateway and imports the returned
// profile. Nothing is stored when the gateway fails.
func (o *orchestrator) Assess(ctx context.Context, input *AssessInput) (*AssessOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if strings.TrimSpace(input.UserID) == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}
	answers := strings.TrimSpace(input.Answers)
	if answers == "" {
		return nil, errors.InvalidArgument("assessment answers are required")
	}
	if o.gateway == nil {
		return nil, errors.Unavailable("AI gateway is not configured")
	}
	if r := []rune(answers); len(r) > maxAnswersLength {
		answers = string(r[:maxAnswersLength])
	}

	res, err := o.gateway.Generate(ctx, &gateway.Request{
		Intent: gateway.IntentAssessment,
		Prompt: assessmentPrompt(answers),
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "assessment failed")
	}
	data, err := gateway.ExtractJSON(res.Text)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "assessment reply was not a profile")
	}
	assessment, err := parseAssessment(data)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "assessment reply was not a profile")
	}

	snap, err := o.update(ctx, input.UserID, func(store *progression.Store) error {
		return store.ImportAssessment(*assessment)
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "assessment imported",
		"user_id", input.UserID,
		"rank", snap.User.Rank,
		"level", snap.User.Level)
	return &AssessOutput{Snapshot: snap}, nil
}

// parseAssessment coerces an assessment payload. Range checks happen in
// ImportAssessment; this only fixes types and casing.
func parseAssessment(data []byte) (*progression.Assessment, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "assessment is not an object")
	}
	args := jsonargs.Args(raw)

	a := &progression.Assessment{
		Stats:      args.IntMap("stats"),
		RadarStats: args.IntMap("radarStats"),
	}
	if levels := args.IntMap("pillarLevels"); len(levels) > 0 {
		a.PillarLevels = make(map[fitness.Pillar]int, len(levels))
		for k, v := range levels {
			if p := fitness.Pillar(k); p.IsValid() {
				a.PillarLevels[p] = v
			}
		}
	}
	if len(a.Stats) == 0 && len(a.PillarLevels) == 0 && !args.Has("level") {
		return nil, errors.InvalidArgument("assessment has no stats, pillar levels or level")
	}

	a.Name, _ = args.First("name", "userName")
	if v, ok := args.String("rank"); ok {
		a.Rank = fitness.Rank(strings.ToUpper(strings.TrimSpace(v)))
	}
	a.Level, _ = args.Int("level")
	if v, ok := args.String("objective"); ok {
		a.Objective = fitness.Objective(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := args.String("fitnessLevel"); ok {
		a.FitnessLevel = fitness.FitnessLevel(strings.ToLower(strings.TrimSpace(v)))
	}
	a.AvailableTime, _ = args.Int("availableTime")
	a.TrainingFrequency, _ = args.Int("trainingFrequency")
	a.HeightCm = firstInt(args, "height", "heightCm")
	a.WeightKg = firstInt(args, "weight", "weightKg")
	a.Age, _ = args.Int("age")
	a.Equipment, _ = args.StringList("equipment")
	a.HasGymAccess, _ = args.Bool("hasGymAccess")
	a.Debuffs = debuffsFrom(raw["debuffs"])

	return a, nil
}

func firstInt(args jsonargs.Args, keys ...string) int {
	for _, k := range keys {
		if v, ok := args.Int(k); ok {
			return v
		}
	}
	return 0
}

// debuffsFrom accepts a list of debuff objects or plain names
func debuffsFrom(v any) []progression.DebuffInput {
	list, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]progression.DebuffInput, 0, len(list))
	for _, item := range list {
		if name, ok := item.(string); ok {
			out = append(out, progression.DebuffInput{Name: name})
			continue
		}
		obj, ok := jsonargs.Object(item)
		if !ok {
			continue
		}
		args := jsonargs.Args(obj)
		in := progression.DebuffInput{}
		in.Name, _ = args.First("name", "title")
		in.Description, _ = args.String("description")
		in.AffectedExercises, _ = args.StringList("affectedExercises")
		out = append(out, in)
	}
	return out
}
