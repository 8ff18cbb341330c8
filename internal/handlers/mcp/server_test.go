package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-fitness/internal/handlers/mcp"
	"github.com/KirkDiggler/rpg-fitness/internal/orchestrators/coach"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-fitness/internal/repositories/snapshot"
	"github.com/KirkDiggler/rpg-fitness/internal/testutils"
	"github.com/KirkDiggler/rpg-fitness/internal/toolcalls"
)

type ServerTestSuite struct {
	suite.Suite
	ctx     context.Context
	cancel  context.CancelFunc
	repo    *snapshot.InMemoryRepository
	session *sdkmcp.ClientSession
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 10*time.Second)

	fixed := clock.NewFixed(testutils.TestNow)
	s.repo = snapshot.NewInMemory(fixed)
	svc, err := coach.NewOrchestrator(&coach.Config{
		Repository:  s.repo,
		Clock:       fixed,
		IDGenerator: idgen.NewSequential("id"),
		Location:    time.UTC,
	})
	s.Require().NoError(err)

	srv, err := mcp.NewServer(&mcp.Config{CoachService: svc, UserID: testutils.TestUserID})
	s.Require().NoError(err)

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	_, err = srv.MCPServer.Connect(s.ctx, serverTransport, nil)
	s.Require().NoError(err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	s.session, err = client.Connect(s.ctx, clientTransport, nil)
	s.Require().NoError(err)
}

func (s *ServerTestSuite) TearDownTest() {
	if s.session != nil {
		_ = s.session.Close()
	}
	s.cancel()
}

func (s *ServerTestSuite) call(name string, args map[string]any) *sdkmcp.CallToolResult {
	res, err := s.session.CallTool(s.ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	s.Require().NoError(err)
	return res
}

func textOf(res *sdkmcp.CallToolResult) string {
	for _, c := range res.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func (s *ServerTestSuite) TestNewServerValidation() {
	_, err := mcp.NewServer(nil)
	s.Error(err)

	_, err = mcp.NewServer(&mcp.Config{UserID: "u"})
	s.Error(err)
}

func (s *ServerTestSuite) TestListsEveryTool() {
	res, err := s.session.ListTools(s.ctx, nil)
	s.Require().NoError(err)

	names := make(map[string]bool, len(res.Tools))
	for _, t := range res.Tools {
		names[t.Name] = true
	}
	for _, def := range toolcalls.Definitions() {
		s.True(names[def.Name], "missing %s", def.Name)
	}
	s.True(names[mcp.ToolGenerateQuests])
	s.True(names[mcp.ToolCompleteQuest])
	s.Len(res.Tools, len(toolcalls.Definitions())+2)
}

func (s *ServerTestSuite) TestToolTableCallMutatesTheBoundUser() {
	res := s.call(toolcalls.ToolAddDebuff, map[string]any{
		"name":              "Tennis elbow",
		"affectedExercises": []any{"pull-up"},
	})
	s.False(res.IsError, textOf(res))
	s.Contains(textOf(res), "Tennis elbow")

	out, err := s.repo.Get(s.ctx, snapshot.GetInput{UserID: testutils.TestUserID})
	s.Require().NoError(err)
	s.Require().Len(out.Snapshot.User.Debuffs, 1)
	s.Equal([]string{"pull-up"}, out.Snapshot.User.Debuffs[0].AffectedExercises)
}

func (s *ServerTestSuite) TestGetUserStateReturnsJSON() {
	res := s.call(toolcalls.ToolGetUserState, nil)
	s.Require().False(res.IsError)

	var state map[string]any
	s.Require().NoError(json.Unmarshal([]byte(textOf(res)), &state))
	s.Equal(testutils.TestUserID, state["userId"])
}

func (s *ServerTestSuite) TestFailingToolIsAToolError() {
	res := s.call(toolcalls.ToolRemoveQuest, map[string]any{"questId": "nope"})
	s.True(res.IsError)
	s.Contains(textOf(res), "Error:")
}

func (s *ServerTestSuite) TestGenerateAndCompleteQuest() {
	res := s.call(mcp.ToolGenerateQuests, map[string]any{})
	s.Require().False(res.IsError, textOf(res))

	var generated struct {
		DailyQuests []struct {
			ID       string `json:"id"`
			XPReward int    `json:"xpReward"`
		} `json:"dailyQuests"`
		Generated bool `json:"generated"`
	}
	s.Require().NoError(json.Unmarshal([]byte(textOf(res)), &generated))
	s.True(generated.Generated)
	s.Require().Len(generated.DailyQuests, 4)

	quest := generated.DailyQuests[0]
	res = s.call(mcp.ToolCompleteQuest, map[string]any{"questId": quest.ID})
	s.Require().False(res.IsError, textOf(res))

	var completed struct {
		ExpAwarded       int  `json:"expAwarded"`
		AlreadyCompleted bool `json:"alreadyCompleted"`
	}
	s.Require().NoError(json.Unmarshal([]byte(textOf(res)), &completed))
	s.Equal(quest.XPReward, completed.ExpAwarded)
	s.False(completed.AlreadyCompleted)
}

func (s *ServerTestSuite) TestCompleteUnknownQuest() {
	res, err := s.session.CallTool(s.ctx, &sdkmcp.CallToolParams{
		Name:      mcp.ToolCompleteQuest,
		Arguments: map[string]any{"questId": "missing"},
	})
	if err == nil {
		s.True(res.IsError)
	}
}
