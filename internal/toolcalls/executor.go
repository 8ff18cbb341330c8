// Package toolcalls is the trust boundary between AI-issued function calls and
// the progression store. Each call is parsed into a typed command with every
// argument coerced and bounded, then applied. A failing call produces an error
// response without stopping the rest of the batch.
package toolcalls

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/metrics"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/jsonargs"
	"github.com/KirkDiggler/rpg-fitness/internal/progression"
	"github.com/KirkDiggler/rpg-fitness/internal/questgen"
)

// UnknownToolResponse is returned for a tool name outside the table
const UnknownToolResponse = "Unknown Protocol."

// Call is one function call issued by the model
type Call struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// Result is the response fed back to the model for one call
type Result struct {
	Name     string `json:"name"`
	Response string `json:"response"`
	// Err is the failure behind an "Error: ..." response
	Err error `json:"-"`
}

// Config holds the dependencies for the executor
type Config struct {
	Store     *progression.Store
	Generator *questgen.Generator
	// Metrics is optional
	Metrics *metrics.Metrics
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.Generator == nil {
		vb.RequiredField("Generator")
	}

	return vb.Build()
}

// Executor applies tool calls to one user's store
type Executor struct {
	store     *progression.Store
	generator *questgen.Generator
	metrics   *metrics.Metrics
}

// New creates an executor
func New(cfg *Config) (*Executor, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid tool executor config")
	}
	return &Executor{
		store:     cfg.Store,
		generator: cfg.Generator,
		metrics:   cfg.Metrics,
	}, nil
}

// IsKnown reports whether name is in the tool table
func IsKnown(name string) bool {
	_, ok := parsers[name]
	return ok
}

// Execute runs calls in order and returns one result per call
func (e *Executor) Execute(ctx context.Context, calls []Call) []Result {
	results := make([]Result, 0, len(calls))
	for _, call := range calls {
		if err := ctx.Err(); err != nil {
			results = append(results, errorResult(call.Name, errors.WrapWithCode(err, errors.CodeCanceled, "tool call canceled")))
			continue
		}
		results = append(results, e.ExecuteOne(ctx, call))
	}
	return results
}

// ExecuteOne runs a single call. Unknown tools, invalid arguments, store errors
// and panics all come back as a textual response.
func (e *Executor) ExecuteOne(ctx context.Context, call Call) (result Result) {
	parse, ok := parsers[call.Name]
	if !ok {
		slog.WarnContext(ctx, "unknown tool call", "tool", call.Name)
		e.metrics.ToolCall("unknown", metrics.OutcomeUnknown)
		return Result{Name: call.Name, Response: UnknownToolResponse}
	}

	defer func() {
		if r := recover(); r != nil {
			err := errors.Internalf("tool %s panicked: %v", call.Name, r)
			slog.ErrorContext(ctx, "tool call panicked", "tool", call.Name, "panic", fmt.Sprint(r))
			e.metrics.ToolCall(call.Name, metrics.OutcomeError)
			result = errorResult(call.Name, err)
		}
	}()

	cmd, err := parse(jsonargs.Args(call.Args))
	if err != nil {
		return e.fail(ctx, call.Name, err)
	}
	response, err := cmd.run(ctx, e)
	if err != nil {
		return e.fail(ctx, call.Name, err)
	}

	slog.DebugContext(ctx, "tool call applied", "tool", call.Name, "user_id", e.store.UserID())
	e.metrics.ToolCall(call.Name, metrics.OutcomeOK)
	return Result{Name: call.Name, Response: response}
}

func (e *Executor) fail(ctx context.Context, name string, err error) Result {
	slog.WarnContext(ctx, "tool call failed", "tool", name, "user_id", e.store.UserID(), "error", err)
	e.metrics.ToolCall(name, metrics.OutcomeError)
	return errorResult(name, err)
}

func errorResult(name string, err error) Result {
	return Result{Name: name, Response: "Error: " + errors.GetMessage(err), Err: err}
}
