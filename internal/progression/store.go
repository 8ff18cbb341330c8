// Package progression owns the canonical user, skill, quest and pillar state.
//
// Every mutation runs against a private copy of the current snapshot and only
// replaces it when the whole operation succeeds, so a failed call never leaves
// partially applied changes behind. Callers read through Snapshot, which
// returns a deep copy.
package progression

import (
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-fitness/internal/catalog/equipment"
	"github.com/KirkDiggler/rpg-fitness/internal/catalog/skills"
	"github.com/KirkDiggler/rpg-fitness/internal/entities/fitness"
	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-fitness/internal/pkg/idgen"
)

// Config holds the dependencies for a Store
type Config struct {
	// Snapshot is the persisted state to start from. It is hydrated on load.
	Snapshot *fitness.Snapshot

	Catalog     *skills.Catalog
	Equipment   *equipment.Catalog
	Clock       clock.Clock
	IDGenerator idgen.Generator
	// Location decides calendar-day boundaries for training history
	Location *time.Location
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Snapshot == nil {
		vb.RequiredField("Snapshot")
	} else if c.Snapshot.UserID == "" {
		vb.RequiredField("Snapshot.UserID")
	}

	return vb.Build()
}

func (c *Config) withDefaults() {
	if c.Catalog == nil {
		c.Catalog = skills.Default()
	}
	if c.Equipment == nil {
		c.Equipment = equipment.Default()
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.IDGenerator == nil {
		c.IDGenerator = idgen.NewUUID("")
	}
	if c.Location == nil {
		c.Location = time.Local
	}
}

// Store is the mutex guarded state container for one user
type Store struct {
	mu   sync.Mutex
	snap *fitness.Snapshot

	catalog   *skills.Catalog
	equipment *equipment.Catalog
	clock     clock.Clock
	ids       idgen.Generator
	loc       *time.Location
}

// New hydrates cfg.Snapshot and wraps it in a Store
func New(cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid progression config")
	}
	cfg.withDefaults()

	snap, err := cfg.Snapshot.Clone()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to copy snapshot")
	}

	s := &Store{
		catalog:   cfg.Catalog,
		equipment: cfg.Equipment,
		clock:     cfg.Clock,
		ids:       cfg.IDGenerator,
		loc:       cfg.Location,
	}

	Hydrate(snap, cfg.Clock.Now(), cfg.Location)
	s.synchronize(snap.User, fitness.AllPillars...)
	s.snap = snap

	return s, nil
}

// UserID returns the owner of the state
func (s *Store) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.UserID
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() (*fitness.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.snap.Clone()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to copy snapshot")
	}
	normalizeMastery(out.User)
	return out, nil
}

// normalizeMastery rewrites every mastery value on the 0-500 scale so callers
// never see a legacy star rating
func normalizeMastery(user *fitness.UserProfile) {
	if user == nil {
		return
	}
	for _, us := range user.UserSkills {
		if us != nil {
			us.MasteryLevel = NormalizeMastery(us.MasteryLevel)
		}
	}
}

// Catalog returns the skill catalog the store resolves skills against
func (s *Store) Catalog() *skills.Catalog {
	return s.catalog
}

// EquipmentCatalog returns the gym-variant catalog
func (s *Store) EquipmentCatalog() *equipment.Catalog {
	return s.equipment
}

// Reset discards all progress and starts a fresh profile
func (s *Store) Reset() error {
	return s.mutate(func(snap *fitness.Snapshot) error {
		fresh := NewSnapshot(snap.UserID, s.clock.Now())
		s.synchronize(fresh.User, fitness.AllPillars...)
		*snap = *fresh
		return nil
	})
}

// mutate applies fn to a copy of the state and swaps it in when fn succeeds
func (s *Store) mutate(fn func(snap *fitness.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.snap.Clone()
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "failed to copy snapshot")
	}
	if err := fn(next); err != nil {
		return err
	}

	s.snap = next
	return nil
}

// view runs fn against the live state under the lock. fn must not mutate.
func (s *Store) view(fn func(snap *fitness.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.snap)
}
