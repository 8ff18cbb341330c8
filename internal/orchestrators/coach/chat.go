package coach

import (
	"context"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-fitness/internal/clients/gateway"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/textnorm"
	"github.com/KirkDiggler/rpg-fitness/internal/progression"
	"github.com/KirkDiggler/rpg-fitness/internal/toolcalls"
)

const (
	maxMessageLength = 4000
	maxReplyLength   = 8000
)

// Tools returns the tool table in the gateway's request shape
func Tools() []gateway.Tool {
	defs := toolcalls.Definitions()
	out := make([]gateway.Tool, 0, len(defs))
	for _, d := range defs {
		out = append(out, gateway.Tool{Name: d.Name, Description: d.Description, Parameters: d.Parameters})
	}
	return out
}

// Chat sends one message and runs the tool loop until the model answers in
// text or the round limit is hit. Tool mutations are saved once at the end,
// also when a later gateway call fails.
func (o *orchestrator) Chat(ctx context.Context, input *ChatInput) (*ChatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if strings.TrimSpace(input.UserID) == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}
	message := textnorm.Sanitize(input.Message, maxMessageLength)
	if message == "" {
		return nil, errors.InvalidArgument("message is required")
	}
	if o.gateway == nil {
		return nil, errors.Unavailable("AI gateway is not configured")
	}

	unlock := o.lockUser(input.UserID)
	defer unlock()

	store, err := o.load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	exec, err := o.executor(store)
	if err != nil {
		return nil, err
	}

	out := &ChatOutput{
		History: append(append(make([]gateway.Turn, 0, len(input.History)+1), input.History...),
			gateway.Turn{Role: gateway.RoleUser, Text: message}),
	}
	tools := Tools()

	var reply string
	for round := 0; ; round++ {
		res, err := o.gateway.Generate(ctx, &gateway.Request{
			Intent:  gateway.IntentChat,
			Prompt:  chatPrompt(),
			Context: o.contextFor(store),
			History: out.History,
			Tools:   tools,
		})
		if err != nil {
			if len(out.ToolResults) > 0 {
				if _, saveErr := o.save(ctx, store); saveErr != nil {
					slog.ErrorContext(ctx, "failed to save tool results", "user_id", input.UserID, "error", saveErr)
				}
			}
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "coach is unavailable")
		}

		if !res.HasFunctionCalls() {
			reply = res.Text
			break
		}
		if round >= o.maxToolRounds {
			slog.WarnContext(ctx, "tool round limit reached", "user_id", input.UserID, "rounds", round)
			out.ToolRoundsExhausted = true
			reply = res.Text
			break
		}

		calls := make([]toolcalls.Call, 0, len(res.FunctionCalls))
		for _, fc := range res.FunctionCalls {
			calls = append(calls, toolcalls.Call{Name: fc.Name, Args: fc.Args})
		}
		results := exec.Execute(ctx, calls)
		out.ToolResults = append(out.ToolResults, results...)

		turn := gateway.Turn{Role: gateway.RoleTool}
		for _, r := range results {
			turn.FunctionResults = append(turn.FunctionResults, gateway.FunctionResult{Name: r.Name, Response: r.Response})
		}
		out.History = append(out.History,
			gateway.Turn{Role: gateway.RoleModel, FunctionCalls: res.FunctionCalls},
			turn)
	}

	reply = textnorm.Sanitize(reply, maxReplyLength)
	if strings.Contains(reply, InterviewCompleteSentinel) {
		out.InterviewComplete = true
		reply = strings.TrimSpace(strings.ReplaceAll(reply, InterviewCompleteSentinel, ""))
	}
	out.Reply = reply
	out.History = append(out.History, gateway.Turn{Role: gateway.RoleModel, Text: reply})

	if len(out.ToolResults) > 0 {
		if _, err := o.save(ctx, store); err != nil {
			return nil, err
		}
	}

	slog.InfoContext(ctx, "chat turn",
		"user_id", input.UserID,
		"tool_calls", len(out.ToolResults),
		"interview_complete", out.InterviewComplete)
	return out, nil
}

func (o *orchestrator) contextFor(store *progression.Store) *userContext {
	snap, err := store.Snapshot()
	if err != nil {
		return &userContext{}
	}
	return o.summarize(snap)
}
