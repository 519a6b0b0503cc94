// Package storage holds the game state that the crafting box reads from.
package storage

import (
	"context"
	"sync"

	"github.com/hammamikhairi/craftbox/internal/domain"
	"github.com/hammamikhairi/craftbox/internal/logger"
)

// Compile-time interface check.
var _ domain.StateSource = (*MemoryStore)(nil)

// MemoryStore is an in-memory game state store. Safe for concurrent access.
// Every read hands out a deep copy, so callers never share state with it.
type MemoryStore struct {
	mu    sync.RWMutex
	state *domain.GameState
	log   *logger.Logger
}

// NewMemoryStore creates a store holding initial. A nil initial starts from
// an empty, idle state.
func NewMemoryStore(log *logger.Logger, initial *domain.GameState) *MemoryStore {
	if initial == nil {
		initial = &domain.GameState{}
	}
	st := initial.Clone()
	if st.Recipes == nil {
		st.Recipes = make(domain.RecipeCatalog)
	}
	if st.Inventory == nil {
		st.Inventory = make(map[string]int)
	}
	if st.Flags == nil {
		st.Flags = make(domain.FlagSet)
	}
	return &MemoryStore{state: st, log: log}
}

// Snapshot returns a copy of the current state.
func (s *MemoryStore) Snapshot(ctx context.Context) (*domain.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone(), nil
}

// Save overwrites the stored state with a copy of state.
func (s *MemoryStore) Save(ctx context.Context, state *domain.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving state (status=%s, saves=%d)", state.CraftingBox.Status, state.Saves)
	s.state = state.Clone()
	return nil
}

// Update applies fn to a working copy and stores it if fn succeeds. A failed
// fn leaves the stored state untouched.
func (s *MemoryStore) Update(ctx context.Context, fn func(st *domain.GameState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.Clone()
	if err := fn(work); err != nil {
		return err
	}
	s.state = work
	return nil
}
