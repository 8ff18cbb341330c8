// Package gateway is the client for the generative AI backend that writes
// assessments, quest payloads, training analyses and coach replies
package gateway

//go:generate mockgen -destination=mock/mock_client.go -package=gatewaymock github.com/KirkDiggler/rpg-fitness/internal/clients/gateway Client

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
)

// Intent tells the backend which kind of answer is expected
type Intent string

// Intents
const (
	IntentAssessment     Intent = "assessment"
	IntentGenerateQuests Intent = "generate_quests"
	IntentTrainingLog    Intent = "training_log"
	IntentChat           Intent = "chat"
)

// Conversation roles
const (
	RoleUser  = "user"
	RoleModel = "model"
	RoleTool  = "tool"
)

// Tool is a function the model may call
type Tool struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters"`
}

// FunctionCall is a tool invocation emitted by the model
type FunctionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// FunctionResult answers one FunctionCall
type FunctionResult struct {
	Name     string `json:"name"`
	Response string `json:"response"`
}

// Turn is one entry of a conversation
type Turn struct {
	Role            string           `json:"role"`
	Text            string           `json:"text,omitempty"`
	FunctionCalls   []FunctionCall   `json:"functionCalls,omitempty"`
	FunctionResults []FunctionResult `json:"functionResults,omitempty"`
}

// Request is one generation request
type Request struct {
	Intent Intent `json:"intent"`
	Prompt string `json:"prompt"`
	// Context is a JSON-encodable summary of the user state
	Context any    `json:"context,omitempty"`
	History []Turn `json:"history,omitempty"`
	Tools   []Tool `json:"tools,omitempty"`
}

// Response carries either text or function calls
type Response struct {
	Text          string         `json:"text,omitempty"`
	FunctionCalls []FunctionCall `json:"functionCalls,omitempty"`
}

// HasFunctionCalls reports whether the model asked for tools
func (r *Response) HasFunctionCalls() bool {
	return r != nil && len(r.FunctionCalls) > 0
}

// Client defines the interface to the AI backend
type Client interface {
	// Generate sends one request. Transport failures, timeouts and empty
	// answers are returned as Unavailable errors.
	Generate(ctx context.Context, req *Request) (*Response, error)
}
