package coach

import (
	"time"

	"github.com/KirkDiggler/rpg-fitness/internal/clients/gateway"
	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/progression"
	"github.com/KirkDiggler/rpg-fitness/internal/toolcalls"
)

// GetStateInput contains the user to read
type GetStateInput struct {
	UserID string
}

// GetStateOutput contains the hydrated snapshot
type GetStateOutput struct {
	Snapshot *fitness.Snapshot
}

// ResetInput contains the user whose progress is discarded
type ResetInput struct {
	UserID string
}

// ResetOutput contains the fresh snapshot
type ResetOutput struct {
	Snapshot *fitness.Snapshot
}

// GenerateQuestsInput contains parameters for a quest refresh
type GenerateQuestsInput struct {
	UserID string
	// Force regenerates even when the reset schedule says the current set is still valid
	Force bool
}

// GenerateQuestsOutput contains the active quest set
type GenerateQuestsOutput struct {
	Daily  []fitness.Quest
	Weekly []fitness.Quest
	// Generated is false when the existing set was returned unchanged
	Generated bool
	// UsedAI is true when at least one AI suggestion made it into the set
	UsedAI bool
	// Fallback is true when the gateway failed and the set was built locally
	Fallback bool
}

// RefreshDueQuestsInput contains parameters for the scheduled refresh
type RefreshDueQuestsInput struct{}

// RefreshDueQuestsOutput summarizes a scheduled refresh
type RefreshDueQuestsOutput struct {
	Refreshed []string
	Skipped   []string
	// Failed maps user IDs to the error that stopped their refresh
	Failed map[string]error
}

// CompleteQuestInput identifies the quest to complete
type CompleteQuestInput struct {
	UserID  string
	QuestID string
}

// CompleteQuestOutput contains what the completion awarded
type CompleteQuestOutput struct {
	Result *progression.CompletionResult
	User   *fitness.UserProfile
}

// FailQuestInput identifies the quest to fail
type FailQuestInput struct {
	UserID  string
	QuestID string
}

// FailQuestOutput contains the failed quest
type FailQuestOutput struct {
	Quest *fitness.Quest
}

// AttemptLevelUpInput contains the outcome of a pillar challenge
type AttemptLevelUpInput struct {
	UserID  string
	Pillar  fitness.Pillar
	Success bool
}

// AttemptLevelUpOutput contains the pillar after the attempt
type AttemptLevelUpOutput struct {
	Pillar *fitness.PillarLevel
}

// LogTrainingInput describes a free-form training session
type LogTrainingInput struct {
	UserID          string
	Description     string
	DurationMinutes int
	// RPE is the rate of perceived exertion, 1-10. 0 means not given.
	RPE int
	// Date defaults to now
	Date time.Time
}

// LogTrainingOutput contains the stored log entry
type LogTrainingOutput struct {
	Entry *fitness.TrainingLogEntry
	User  *fitness.UserProfile
}

// AssessInput contains the onboarding answers
type AssessInput struct {
	UserID  string
	Answers string
}

// AssessOutput contains the imported profile
type AssessOutput struct {
	Snapshot *fitness.Snapshot
}

// ChatInput is one user message in a coaching conversation
type ChatInput struct {
	UserID  string
	Message string
	// History holds the earlier turns; it is not modified
	History []gateway.Turn
}

// ChatOutput contains the coach reply and everything the tools did
type ChatOutput struct {
	Reply             string
	InterviewComplete bool
	ToolResults       []toolcalls.Result
	// ToolRoundsExhausted is true when the model kept calling tools past the round limit
	ToolRoundsExhausted bool
	// History is the input history plus every turn of this exchange
	History []gateway.Turn
}

// ExecuteToolsInput contains tool calls to apply directly
type ExecuteToolsInput struct {
	UserID string
	Calls  []toolcalls.Call
}

// ExecuteToolsOutput contains one result per call
type ExecuteToolsOutput struct {
	Results []toolcalls.Result
}
