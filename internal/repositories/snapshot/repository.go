// Package snapshot provides storage for per-user progression snapshots
package snapshot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=snapshotmock github.com/KirkDiggler/rpg-fitness/internal/repositories/snapshot Repository

const (
	errSnapshotNil = "snapshot cannot be nil"
	errUserIDEmpty = "user ID cannot be empty"
)

// GetInput contains parameters for loading a snapshot
type GetInput struct {
	UserID string
}

// GetOutput contains the loaded snapshot
type GetOutput struct {
	Snapshot *fitness.Snapshot
}

// SaveInput contains the snapshot to persist. Last write wins.
type SaveInput struct {
	Snapshot *fitness.Snapshot
}

// SaveOutput reports what was written
type SaveOutput struct {
	Snapshot *fitness.Snapshot
}

// DeleteInput contains parameters for removing a snapshot
type DeleteInput struct {
	UserID string
}

// DeleteOutput contains the result of a delete
type DeleteOutput struct {
	Deleted bool
}

// ListInput contains parameters for listing stored users
type ListInput struct{}

// ListOutput contains the stored user IDs in ascending order
type ListOutput struct {
	UserIDs []string
}

// Repository defines the interface for snapshot storage operations
type Repository interface {
	// Get loads the snapshot for a user. Returns NotFound when none is stored.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save stamps the snapshot version and save time and stores it
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete removes a user's snapshot
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns every user with a stored snapshot
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// encode validates input, stamps the envelope fields written on every save
// and returns the stamped copy with its JSON form
func encode(input SaveInput, now time.Time) (*fitness.Snapshot, []byte, error) {
	if input.Snapshot == nil {
		return nil, nil, errors.InvalidArgument(errSnapshotNil)
	}
	if input.Snapshot.UserID == "" {
		return nil, nil, errors.InvalidArgument(errUserIDEmpty)
	}

	snap, err := input.Snapshot.Clone()
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to copy snapshot")
	}
	snap.Version = fitness.SnapshotVersion
	snap.SavedAt = now

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to marshal snapshot")
	}
	return snap, data, nil
}

func decode(userID string, data []byte) (*fitness.Snapshot, error) {
	var snap fitness.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to unmarshal snapshot").
			WithMeta(errors.MetaUserID, userID)
	}
	if snap.UserID == "" {
		snap.UserID = userID
	}
	return &snap, nil
}
