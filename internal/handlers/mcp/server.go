// Package mcp exposes the coaching tool table to MCP clients. One server is
// bound to one user; every tool call is applied to that user's snapshot.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/orchestrators/coach"
	"github.com/KirkDiggler/rpg-fitness/internal/toolcalls"
)

// Implementation name reported to clients
const implementationName = "rpg-fitness"

// Extra tools served next to the tool table
const (
	ToolGenerateQuests = "generate_quests"
	ToolCompleteQuest  = "complete_quest"
)

// Config holds the dependencies for the MCP server
type Config struct {
	CoachService coach.Service
	UserID       string
	Version      string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CoachService == nil {
		vb.RequiredField("CoachService")
	}
	if strings.TrimSpace(c.UserID) == "" {
		vb.RequiredField("UserID")
	}

	return vb.Build()
}

// Server wraps the MCP SDK server
type Server struct {
	MCPServer *sdkmcp.Server

	coach  coach.Service
	userID string
}

// NewServer creates a server with every tool registered
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid mcp config")
	}

	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		MCPServer: sdkmcp.NewServer(&sdkmcp.Implementation{Name: implementationName, Version: version}, nil),
		coach:     cfg.CoachService,
		userID:    strings.TrimSpace(cfg.UserID),
	}
	s.registerTools()
	return s, nil
}

// Run serves over the transport until the client disconnects or ctx ends
func (s *Server) Run(ctx context.Context, transport sdkmcp.Transport) error {
	slog.InfoContext(ctx, "mcp server starting", "user_id", s.userID)
	if err := s.MCPServer.Run(ctx, transport); err != nil {
		return errors.Wrap(err, "mcp server stopped")
	}
	return nil
}

func (s *Server) registerTools() {
	for _, def := range toolcalls.Definitions() {
		s.MCPServer.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.Parameters,
		}, s.toolHandler(def.Name))
	}

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        ToolGenerateQuests,
		Description: "Return today's quests, generating a new set when the daily reset has passed or force is set.",
	}, s.handleGenerateQuests)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        ToolCompleteQuest,
		Description: "Mark a quest completed and award its experience.",
	}, s.handleCompleteQuest)
}

// toolHandler runs one tool-table call through the executor. An "Error: ..."
// response is returned as a tool error so the client can tell it apart.
func (s *Server) toolHandler(name string) sdkmcp.ToolHandler {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
		args := map[string]any{}
		if raw := req.Params.Arguments; len(raw) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return errorResult("Error: arguments must be a JSON object"), nil
			}
		}

		out, err := s.coach.ExecuteTools(ctx, &coach.ExecuteToolsInput{
			UserID: s.userID,
			Calls:  []toolcalls.Call{{Name: name, Args: args}},
		})
		if err != nil {
			return nil, err
		}
		if len(out.Results) == 0 {
			return errorResult("Error: no result"), nil
		}

		res := out.Results[0]
		if res.Err != nil || strings.HasPrefix(res.Response, "Error:") {
			return errorResult(res.Response), nil
		}
		return &sdkmcp.CallToolResult{
			Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: res.Response}},
		}, nil
	}
}

func errorResult(text string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: text}},
		IsError: true,
	}
}

type generateQuestsInput struct {
	Force bool `json:"force,omitempty" jsonschema:"regenerate even when the current set is still valid"`
}

// questSummary keeps the output schema flat
type questSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Pillar   string `json:"pillar"`
	Sets     int    `json:"sets"`
	Reps     string `json:"reps"`
	XPReward int    `json:"xpReward"`
	Status   string `json:"status"`
	Guide    string `json:"executionGuide,omitempty"`
}

func summarize(quests []fitness.Quest) []questSummary {
	out := make([]questSummary, 0, len(quests))
	for _, q := range quests {
		out = append(out, questSummary{
			ID:       q.ID,
			Name:     q.Name,
			Type:     string(q.Type),
			Pillar:   string(q.Pillar),
			Sets:     q.Sets,
			Reps:     q.Reps,
			XPReward: q.XPReward,
			Status:   string(q.Status),
			Guide:    q.ExecutionGuide,
		})
	}
	return out
}

type generateQuestsOutput struct {
	DailyQuests  []questSummary `json:"dailyQuests"`
	WeeklyQuests []questSummary `json:"weeklyQuests"`
	Generated    bool           `json:"generated"`
	Fallback     bool           `json:"fallback"`
}

func (s *Server) handleGenerateQuests(ctx context.Context, _ *sdkmcp.CallToolRequest, input generateQuestsInput) (*sdkmcp.CallToolResult, generateQuestsOutput, error) {
	out, err := s.coach.GenerateQuests(ctx, &coach.GenerateQuestsInput{UserID: s.userID, Force: input.Force})
	if err != nil {
		return nil, generateQuestsOutput{}, err
	}
	return nil, generateQuestsOutput{
		DailyQuests:  summarize(out.Daily),
		WeeklyQuests: summarize(out.Weekly),
		Generated:    out.Generated,
		Fallback:     out.Fallback,
	}, nil
}

type completeQuestInput struct {
	QuestID string `json:"questId" jsonschema:"ID of the quest to complete"`
}

type completeQuestOutput struct {
	QuestName        string `json:"questName"`
	AlreadyCompleted bool   `json:"alreadyCompleted"`
	ExpAwarded       int    `json:"expAwarded"`
	UserLevel        int    `json:"userLevel"`
	UserLeveledUp    bool   `json:"userLeveledUp"`
	PillarLeveledUp  bool   `json:"pillarLeveledUp"`
	UnlockedSkillID  string `json:"unlockedSkillId,omitempty"`
}

func (s *Server) handleCompleteQuest(ctx context.Context, _ *sdkmcp.CallToolRequest, input completeQuestInput) (*sdkmcp.CallToolResult, completeQuestOutput, error) {
	if strings.TrimSpace(input.QuestID) == "" {
		return nil, completeQuestOutput{}, errors.InvalidArgument("questId is required")
	}

	out, err := s.coach.CompleteQuest(ctx, &coach.CompleteQuestInput{UserID: s.userID, QuestID: input.QuestID})
	if err != nil {
		return nil, completeQuestOutput{}, err
	}

	r := out.Result
	return nil, completeQuestOutput{
		QuestName:        r.Quest.Name,
		AlreadyCompleted: r.AlreadyTerminal,
		ExpAwarded:       r.ExpAwarded,
		UserLevel:        out.User.Level,
		UserLeveledUp:    r.UserLeveledUp,
		PillarLeveledUp:  r.PillarLeveledUp,
		UnlockedSkillID:  r.UnlockedSkillID,
	}, nil
}
