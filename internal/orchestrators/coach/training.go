package coach

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"strings"

	"github.com/KirkDiggler/rpg-fitness/internal/clients/gateway"
	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/jsonargs"
	"github.com/KirkDiggler/rpg-fitness/internal/progression"
)

// Training log bounds
const (
	MinLoggedMinutes = 5
	MaxLoggedMinutes = 240

	MinVolumePercent = 0
	MaxVolumePercent = 200
	MinXPMultiplier  = 0.5
	MaxXPMultiplier  = 2.0

	neutralVolume     = 100
	neutralMultiplier = 1.0
	neutralAnalysis   = "Session logged."
)

// trainingAnalysis is the gateway's read of one session
type trainingAnalysis struct {
	VolumePercent  int
	CadenceNote    string
	ProtectionTags []string
	XPMultiplier   float64
	Analysis       string
	Fallback       bool
}

func neutralAnalysisResult() trainingAnalysis {
	return trainingAnalysis{
		VolumePercent: neutralVolume,
		XPMultiplier:  neutralMultiplier,
		Analysis:      neutralAnalysis,
		Fallback:      true,
	}
}

// TrainingXP is the experience a session earns
func TrainingXP(durationMinutes int, multiplier float64) int {
	minutes := min(max(durationMinutes, MinLoggedMinutes), MaxLoggedMinutes)
	multiplier = math.Min(math.Max(multiplier, MinXPMultiplier), MaxXPMultiplier)
	return int(math.Round(float64(minutes) / 3 * multiplier))
}

func (o *orchestrator) LogTraining(ctx context.Context, input *LogTrainingInput) (*LogTrainingOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, errors.InvalidArgument("training description is required")
	}

	minutes := min(max(input.DurationMinutes, MinLoggedMinutes), MaxLoggedMinutes)
	rpe := min(max(input.RPE, 0), 10)

	var entry *fitness.TrainingLogEntry
	snap, err := o.update(ctx, input.UserID, func(store *progression.Store) error {
		analysis := o.analyzeTraining(ctx, input)

		var err error
		entry, err = store.RecordTrainingLog(fitness.TrainingLogEntry{
			Date:            input.Date,
			Description:     input.Description,
			DurationMinutes: minutes,
			RPE:             rpe,
			VolumePercent:   analysis.VolumePercent,
			CadenceNote:     analysis.CadenceNote,
			ProtectionTags:  analysis.ProtectionTags,
			XPMultiplier:    analysis.XPMultiplier,
			Analysis:        analysis.Analysis,
			XPAwarded:       TrainingXP(minutes, analysis.XPMultiplier),
			Fallback:        analysis.Fallback,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "training logged",
		"user_id", input.UserID,
		"minutes", minutes,
		"xp", entry.XPAwarded,
		"fallback", entry.Fallback)
	return &LogTrainingOutput{Entry: entry, User: snap.User}, nil
}

func (o *orchestrator) analyzeTraining(ctx context.Context, input *LogTrainingInput) trainingAnalysis {
	if o.gateway == nil {
		return neutralAnalysisResult()
	}

	res, err := o.gateway.Generate(ctx, &gateway.Request{
		Intent: gateway.IntentTrainingLog,
		Prompt: trainingPrompt(input),
	})
	if err != nil {
		o.fallback(ctx, gateway.IntentTrainingLog, input.UserID, err)
		return neutralAnalysisResult()
	}

	data, err := gateway.ExtractJSON(res.Text)
	if err != nil {
		o.fallback(ctx, gateway.IntentTrainingLog, input.UserID, err)
		return neutralAnalysisResult()
	}
	analysis, err := parseTrainingAnalysis(data)
	if err != nil {
		o.fallback(ctx, gateway.IntentTrainingLog, input.UserID, err)
		return neutralAnalysisResult()
	}
	return analysis
}

// parseTrainingAnalysis reads a training_log payload. Missing numbers take
// their neutral values; out-of-range numbers are clamped.
func parseTrainingAnalysis(data []byte) (trainingAnalysis, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return trainingAnalysis{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "training analysis is not an object")
	}
	args := jsonargs.Args(raw)

	out := trainingAnalysis{
		VolumePercent: neutralVolume,
		XPMultiplier:  neutralMultiplier,
		Analysis:      neutralAnalysis,
	}
	if v, ok := args.Int("volumePercent"); ok {
		out.VolumePercent = min(max(v, MinVolumePercent), MaxVolumePercent)
	}
	if v, ok := args.Float("xpMultiplier"); ok && !math.IsNaN(v) {
		out.XPMultiplier = math.Min(math.Max(v, MinXPMultiplier), MaxXPMultiplier)
	}
	if v, ok := args.String("cadenceNote"); ok {
		out.CadenceNote = v
	}
	if v, ok := args.StringList("protectionTags"); ok {
		out.ProtectionTags = v
	}
	if v, ok := args.String("analysis"); ok && strings.TrimSpace(v) != "" {
		out.Analysis = v
	}
	return out, nil
}
