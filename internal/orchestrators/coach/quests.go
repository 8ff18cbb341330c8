package coach

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-fitness/internal/clients/gateway"
	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/questgen"
	"github.com/KirkDiggler/rpg-fitness/internal/repositories/snapshot"
)

// Quest set sources reported to metrics
const (
	sourceAI    = "ai"
	sourceLocal = "local"
)

func (o *orchestrator) GenerateQuests(ctx context.Context, input *GenerateQuestsInput) (*GenerateQuestsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if strings.TrimSpace(input.UserID) == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	unlock := o.lockUser(input.UserID)
	defer unlock()

	store, err := o.load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	snap, err := store.Snapshot()
	if err != nil {
		return nil, err
	}

	now := o.clock.Now()
	if !input.Force && len(snap.DailyQuests) > 0 {
		due, err := questgen.NeedsRefresh(o.resetSchedule, snap.LastQuestGeneration, now)
		if err != nil {
			return nil, err
		}
		if !due {
			return &GenerateQuestsOutput{Daily: snap.DailyQuests, Weekly: snap.WeeklyQuests}, nil
		}
	}

	payload, fellBack := o.requestQuestPayload(ctx, snap)
	result := o.generator.Generate(snap, now, payload)

	if err := store.ReplaceQuests(result.Daily, result.Weekly); err != nil {
		return nil, err
	}
	saved, err := o.save(ctx, store)
	if err != nil {
		return nil, err
	}

	source := sourceLocal
	if result.UsedAI {
		source = sourceAI
	}
	o.metrics.QuestSetGenerated(source)
	slog.InfoContext(ctx, "quests generated",
		"user_id", input.UserID,
		"daily", len(saved.DailyQuests),
		"weekly", len(saved.WeeklyQuests),
		"source", source)

	return &GenerateQuestsOutput{
		Daily:     saved.DailyQuests,
		Weekly:    saved.WeeklyQuests,
		Generated: true,
		UsedAI:    result.UsedAI,
		Fallback:  fellBack,
	}, nil
}

// requestQuestPayload asks the gateway for quest suggestions. A nil payload
// means local generation; fellBack reports whether that was due to a failure.
func (o *orchestrator) requestQuestPayload(ctx context.Context, snap *fitness.Snapshot) (payload *questgen.Payload, fellBack bool) {
	if o.gateway == nil {
		return nil, false
	}

	res, err := o.gateway.Generate(ctx, &gateway.Request{
		Intent:  gateway.IntentGenerateQuests,
		Prompt:  questPrompt(snap.User),
		Context: o.summarize(snap),
	})
	if err != nil {
		o.fallback(ctx, gateway.IntentGenerateQuests, snap.UserID, err)
		return nil, true
	}

	data, err := gateway.ExtractJSON(res.Text)
	if err == nil {
		payload, err = questgen.ParsePayload(data)
	}
	if err != nil {
		o.fallback(ctx, gateway.IntentGenerateQuests, snap.UserID, err)
		return nil, true
	}
	return payload, false
}

func (o *orchestrator) RefreshDueQuests(ctx context.Context, _ *RefreshDueQuestsInput) (*RefreshDueQuestsOutput, error) {
	list, err := o.repo.List(ctx, snapshot.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	out := &RefreshDueQuestsOutput{Failed: map[string]error{}}
	for _, userID := range list.UserIDs {
		if err := ctx.Err(); err != nil {
			return out, errors.WrapWithCode(err, errors.CodeCanceled, "quest refresh canceled")
		}

		res, err := o.GenerateQuests(ctx, &GenerateQuestsInput{UserID: userID})
		switch {
		case err != nil:
			slog.ErrorContext(ctx, "scheduled quest refresh failed", "user_id", userID, "error", err)
			out.Failed[userID] = err
		case res.Generated:
			out.Refreshed = append(out.Refreshed, userID)
		default:
			out.Skipped = append(out.Skipped, userID)
		}
	}

	slog.InfoContext(ctx, "scheduled quest refresh finished",
		"refreshed", len(out.Refreshed),
		"skipped", len(out.Skipped),
		"failed", len(out.Failed))
	return out, nil
}
