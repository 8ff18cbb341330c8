// Package coach implements the application service around the progression
// engine: it loads a user's snapshot, runs one operation against a Store,
// consults the AI gateway where the operation needs it and saves the result.
package coach

//go:generate mockgen -destination=mock/mock_service.go -package=coachmock github.com/KirkDiggler/rpg-fitness/internal/orchestrators/coach Service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-fitness/internal/catalog/equipment"
	"github.com/KirkDiggler/rpg-fitness/internal/catalog/skills"
	"github.com/KirkDiggler/rpg-fitness/internal/clients/gateway"
	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/metrics"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-fitness/internal/progression"
	"github.com/KirkDiggler/rpg-fitness/internal/questgen"
	"github.com/KirkDiggler/rpg-fitness/internal/repositories/snapshot"
	"github.com/KirkDiggler/rpg-fitness/internal/toolcalls"
)

// DefaultMaxToolRounds bounds how many tool batches one chat message may run
const DefaultMaxToolRounds = 4

const errUserIDEmpty = "user ID is required"

// Service defines the coaching operations
type Service interface {
	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)
	Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error)

	GenerateQuests(ctx context.Context, input *GenerateQuestsInput) (*GenerateQuestsOutput, error)
	RefreshDueQuests(ctx context.Context, input *RefreshDueQuestsInput) (*RefreshDueQuestsOutput, error)
	CompleteQuest(ctx context.Context, input *CompleteQuestInput) (*CompleteQuestOutput, error)
	FailQuest(ctx context.Context, input *FailQuestInput) (*FailQuestOutput, error)
	AttemptLevelUp(ctx context.Context, input *AttemptLevelUpInput) (*AttemptLevelUpOutput, error)

	LogTraining(ctx context.Context, input *LogTrainingInput) (*LogTrainingOutput, error)
	Assess(ctx context.Context, input *AssessInput) (*AssessOutput, error)
	Chat(ctx context.Context, input *ChatInput) (*ChatOutput, error)
	ExecuteTools(ctx context.Context, input *ExecuteToolsInput) (*ExecuteToolsOutput, error)
}

// Config holds the dependencies for the coach orchestrator
type Config struct {
	Repository snapshot.Repository
	// Gateway is optional. Without it quests and training logs use the
	// local fallbacks, and assessment and chat report Unavailable.
	Gateway gateway.Client

	Catalog     *skills.Catalog
	Equipment   *equipment.Catalog
	Clock       clock.Clock
	IDGenerator idgen.Generator
	Location    *time.Location

	// ResetSchedule is the cron spec for the daily quest reset
	ResetSchedule string
	MaxToolRounds int
	// Metrics is optional
	Metrics *metrics.Metrics
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.ResetSchedule != "" {
		if _, err := questgen.ParseSchedule(c.ResetSchedule); err != nil {
			vb.InvalidField("ResetSchedule", errors.GetMessage(err))
		}
	}
	errors.ValidateMin("MaxToolRounds", c.MaxToolRounds, 0, vb)

	return vb.Build()
}

type orchestrator struct {
	repo      snapshot.Repository
	gateway   gateway.Client
	catalog   *skills.Catalog
	equipment *equipment.Catalog
	clock     clock.Clock
	ids       idgen.Generator
	loc       *time.Location
	generator *questgen.Generator
	metrics   *metrics.Metrics

	resetSchedule string
	maxToolRounds int

	// locks serializes operations per user inside this process
	locks sync.Map
}

// NewOrchestrator creates a new coach orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		repo:          cfg.Repository,
		gateway:       cfg.Gateway,
		catalog:       cfg.Catalog,
		equipment:     cfg.Equipment,
		clock:         cfg.Clock,
		ids:           cfg.IDGenerator,
		loc:           cfg.Location,
		metrics:       cfg.Metrics,
		resetSchedule: cfg.ResetSchedule,
		maxToolRounds: cfg.MaxToolRounds,
	}
	if o.catalog == nil {
		o.catalog = skills.Default()
	}
	if o.equipment == nil {
		o.equipment = equipment.Default()
	}
	if o.loc == nil {
		o.loc = time.Local
	}
	if o.resetSchedule == "" {
		o.resetSchedule = questgen.DefaultResetSchedule
	}
	if o.maxToolRounds == 0 {
		o.maxToolRounds = DefaultMaxToolRounds
	}

	gen, err := questgen.New(&questgen.Config{Catalog: o.catalog, Equipment: o.equipment})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create quest generator")
	}
	o.generator = gen

	return o, nil
}

// lockUser blocks until the caller owns userID and returns the release func
func (o *orchestrator) lockUser(userID string) func() {
	v, _ := o.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// load returns a Store for userID, starting a fresh profile when nothing is stored
func (o *orchestrator) load(ctx context.Context, userID string) (*progression.Store, error) {
	var snap *fitness.Snapshot

	out, err := o.repo.Get(ctx, snapshot.GetInput{UserID: userID})
	switch {
	case err == nil:
		snap = out.Snapshot
	case errors.IsNotFound(err):
		slog.InfoContext(ctx, "starting new profile", "user_id", userID)
		snap = progression.NewSnapshot(userID, o.clock.Now())
	default:
		return nil, errors.Wrapf(err, "failed to load snapshot for %s", userID)
	}

	store, err := progression.New(&progression.Config{
		Snapshot:    snap,
		Catalog:     o.catalog,
		Equipment:   o.equipment,
		Clock:       o.clock,
		IDGenerator: o.ids,
		Location:    o.loc,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open progression store")
	}
	return store, nil
}

// save persists the store's current state and returns what was written
func (o *orchestrator) save(ctx context.Context, store *progression.Store) (*fitness.Snapshot, error) {
	snap, err := store.Snapshot()
	if err != nil {
		return nil, err
	}

	out, err := o.repo.Save(ctx, snapshot.SaveInput{Snapshot: snap})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save snapshot for %s", snap.UserID)
	}
	return out.Snapshot, nil
}

// update loads the user, applies fn and saves when fn succeeds
func (o *orchestrator) update(ctx context.Context, userID string, fn func(store *progression.Store) error) (*fitness.Snapshot, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}
	unlock := o.lockUser(userID)
	defer unlock()

	store, err := o.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(store); err != nil {
		return nil, err
	}
	return o.save(ctx, store)
}

// fallback records that an AI-backed step used its local substitute
func (o *orchestrator) fallback(ctx context.Context, intent gateway.Intent, userID string, err error) {
	slog.WarnContext(ctx, "gateway fallback", "intent", intent, "user_id", userID, "error", err)
	o.metrics.GatewayFallback(string(intent))
}

func (o *orchestrator) GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if strings.TrimSpace(input.UserID) == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	store, err := o.load(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	snap, err := store.Snapshot()
	if err != nil {
		return nil, err
	}
	return &GetStateOutput{Snapshot: snap}, nil
}

func (o *orchestrator) Reset(ctx context.Context, input *ResetInput) (*ResetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	snap, err := o.update(ctx, input.UserID, func(store *progression.Store) error {
		return store.Reset()
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "profile reset", "user_id", input.UserID)
	return &ResetOutput{Snapshot: snap}, nil
}

func (o *orchestrator) CompleteQuest(ctx context.Context, input *CompleteQuestInput) (*CompleteQuestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.QuestID == "" {
		return nil, errors.InvalidArgument("quest ID is required")
	}

	var result *progression.CompletionResult
	snap, err := o.update(ctx, input.UserID, func(store *progression.Store) error {
		var err error
		result, err = store.CompleteQuest(input.QuestID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if !result.AlreadyTerminal {
		slog.InfoContext(ctx, "quest completed",
			"user_id", input.UserID,
			"quest_id", input.QuestID,
			"exp", result.ExpAwarded,
			"pillar_xp", result.PillarXPAwarded,
			"unlocked", result.UnlockedSkillID)
	}
	return &CompleteQuestOutput{Result: result, User: snap.User}, nil
}

func (o *orchestrator) FailQuest(ctx context.Context, input *FailQuestInput) (*FailQuestOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.QuestID == "" {
		return nil, errors.InvalidArgument("quest ID is required")
	}

	var quest *fitness.Quest
	_, err := o.update(ctx, input.UserID, func(store *progression.Store) error {
		var err error
		quest, err = store.FailQuest(input.QuestID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &FailQuestOutput{Quest: quest}, nil
}

func (o *orchestrator) AttemptLevelUp(ctx context.Context, input *AttemptLevelUpInput) (*AttemptLevelUpOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var pl *fitness.PillarLevel
	_, err := o.update(ctx, input.UserID, func(store *progression.Store) error {
		var err error
		pl, err = store.AttemptLevelUp(input.Pillar, input.Success)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "level-up attempt",
		"user_id", input.UserID,
		"pillar", input.Pillar,
		"success", input.Success,
		"level", pl.Level)
	return &AttemptLevelUpOutput{Pillar: pl}, nil
}

func (o *orchestrator) ExecuteTools(ctx context.Context, input *ExecuteToolsInput) (*ExecuteToolsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var results []toolcalls.Result
	_, err := o.update(ctx, input.UserID, func(store *progression.Store) error {
		exec, err := o.executor(store)
		if err != nil {
			return err
		}
		results = exec.Execute(ctx, input.Calls)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ExecuteToolsOutput{Results: results}, nil
}

func (o *orchestrator) executor(store *progression.Store) (*toolcalls.Executor, error) {
	return toolcalls.New(&toolcalls.Config{
		Store:     store,
		Generator: o.generator,
		Metrics:   o.metrics,
	})
}
