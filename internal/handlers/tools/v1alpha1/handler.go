// Package v1alpha1 handles the tool gRPC service interface
package v1alpha1

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/orchestrators/coach"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/jsonargs"
	"github.com/KirkDiggler/rpg-fitness/internal/toolcalls"
)

// HandlerConfig holds dependencies for the tool handler
type HandlerConfig struct {
	CoachService coach.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.CoachService == nil {
		return errors.InvalidArgument("coach service is required")
	}
	return nil
}

// Handler implements ToolServiceServer
type Handler struct {
	coach coach.Service
}

var _ ToolServiceServer = (*Handler)(nil)

// NewHandler creates a new tool handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{coach: cfg.CoachService}, nil
}

// GetState returns the user's snapshot as {"snapshot": {...}}
func (h *Handler) GetState(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	args := jsonargs.Args(req.AsMap())
	userID, err := requireUserID(args)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.coach.GetState(ctx, &coach.GetStateInput{UserID: userID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(map[string]any{"snapshot": out.Snapshot})
}

// ExecuteTools applies {"calls": [{"name", "args"}]} and returns {"results": [...]}.
// A failing call yields an error response inside results, not a gRPC error.
func (h *Handler) ExecuteTools(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	args := jsonargs.Args(req.AsMap())
	userID, err := requireUserID(args)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	calls, err := callsFrom(args["calls"])
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.coach.ExecuteTools(ctx, &coach.ExecuteToolsInput{UserID: userID, Calls: calls})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(map[string]any{"results": out.Results})
}

// GenerateQuests returns the current quests, regenerating when due or when force is set
func (h *Handler) GenerateQuests(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	args := jsonargs.Args(req.AsMap())
	userID, err := requireUserID(args)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	force, _ := args.Bool("force")

	out, err := h.coach.GenerateQuests(ctx, &coach.GenerateQuestsInput{UserID: userID, Force: force})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(map[string]any{
		"dailyQuests":  out.Daily,
		"weeklyQuests": out.Weekly,
		"generated":    out.Generated,
		"usedAi":       out.UsedAI,
		"fallback":     out.Fallback,
	})
}

// CompleteQuest completes {"questId"} and reports the rewards
func (h *Handler) CompleteQuest(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	args := jsonargs.Args(req.AsMap())
	userID, err := requireUserID(args)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	questID, _ := args.First("questId", "id")
	if questID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("questId is required"))
	}

	out, err := h.coach.CompleteQuest(ctx, &coach.CompleteQuestInput{UserID: userID, QuestID: questID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	r := out.Result
	return respond(map[string]any{
		"quest":            r.Quest,
		"alreadyCompleted": r.AlreadyTerminal,
		"expAwarded":       r.ExpAwarded,
		"pillarXpAwarded":  r.PillarXPAwarded,
		"userLeveledUp":    r.UserLeveledUp,
		"pillarLeveledUp":  r.PillarLeveledUp,
		"unlockedSkillId":  r.UnlockedSkillID,
		"masterySkillId":   r.MasterySkillID,
		"statBoosted":      r.StatBoosted,
		"statBoostApplied": r.StatBoostApplied,
		"user":             out.User,
	})
}

// LogTraining records {"description", "durationMinutes", "rpe", "date"}
func (h *Handler) LogTraining(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	args := jsonargs.Args(req.AsMap())
	userID, err := requireUserID(args)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	description, _ := args.String("description")
	if strings.TrimSpace(description) == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("description is required"))
	}

	input := &coach.LogTrainingInput{UserID: userID, Description: description}
	input.DurationMinutes, _ = args.Int("durationMinutes")
	input.RPE, _ = args.Int("rpe")
	if raw, ok := args.String("date"); ok && raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		input.Date = date
	}

	out, err := h.coach.LogTraining(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(map[string]any{"entry": out.Entry, "user": out.User})
}

func requireUserID(args jsonargs.Args) (string, error) {
	userID, _ := args.String("userId")
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.InvalidArgument("userId is required")
	}
	return userID, nil
}

func callsFrom(v any) ([]toolcalls.Call, error) {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return nil, errors.InvalidArgument("calls must be a non-empty list")
	}

	calls := make([]toolcalls.Call, 0, len(list))
	for i, item := range list {
		obj, ok := jsonargs.Object(item)
		if !ok {
			return nil, errors.InvalidArgumentf("calls[%d] is not an object", i)
		}
		call := jsonargs.Args(obj)
		name, _ := call.String("name")
		if name == "" {
			return nil, errors.InvalidArgumentf("calls[%d].name is required", i)
		}
		callArgs, _ := call.Object("args")
		calls = append(calls, toolcalls.Call{Name: name, Args: callArgs})
	}
	return calls, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.InvalidArgumentf("date %q is neither RFC 3339 nor YYYY-MM-DD", raw)
}

// respond converts entity values to a Struct through their JSON form
func respond(v map[string]any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.ToGRPCError(errors.Wrap(err, "failed to encode response"))
	}
	return st, nil
}
