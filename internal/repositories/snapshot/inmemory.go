package snapshot

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/clock"
)

// InMemoryRepository implements Repository using in-memory storage.
// Snapshots are stored encoded so callers never share state with the store.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string][]byte
	clock clock.Clock
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates a new in-memory repository. A nil clock uses real time.
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		store: make(map[string][]byte),
		clock: c,
	}
}

// Get retrieves a snapshot by user ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.UserID == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	r.mu.RLock()
	data, exists := r.store[input.UserID]
	r.mu.RUnlock()
	if !exists {
		return nil, errors.NotFoundf("snapshot for user %s not found", input.UserID)
	}

	snap, err := decode(input.UserID, data)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Snapshot: snap}, nil
}

// Save stores a snapshot
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	snap, data, err := encode(input, r.clock.Now())
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.store[snap.UserID] = data
	r.mu.Unlock()

	return &SaveOutput{Snapshot: snap}, nil
}

// Delete removes a snapshot
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.UserID == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.store[input.UserID]
	delete(r.store, input.UserID)
	return &DeleteOutput{Deleted: exists}, nil
}

// List returns every stored user ID
func (r *InMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.store))
	for id := range r.store {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return &ListOutput{UserIDs: ids}, nil
}
