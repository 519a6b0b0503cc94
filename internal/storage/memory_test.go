package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/craftbox/internal/domain"
	"github.com/hammamikhairi/craftbox/internal/logger"
)

func TestMemoryStoreSnapshotIsCopy(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	readyAt := time.Date(2025, 1, 1, 0, 0, 10, 0, time.UTC)
	store := NewMemoryStore(log, &domain.GameState{
		CraftingBox: domain.CraftingProgress{
			Item:    &domain.ItemRef{Collectible: "Axe"},
			Status:  domain.StatusCrafting,
			ReadyAt: &readyAt,
		},
		Inventory: map[string]int{"Wood": 5},
		Flags:     domain.FlagSet{"CRAFTING_BOX": true},
	})
	ctx := context.Background()

	snap, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	snap.Inventory["Wood"] = 0
	snap.CraftingBox.Item.Collectible = "Pickaxe"
	*snap.CraftingBox.ReadyAt = readyAt.Add(time.Hour)
	snap.Flags["CRAFTING_BOX"] = false

	again, _ := store.Snapshot(ctx)
	if again.Inventory["Wood"] != 5 {
		t.Fatalf("expected inventory to remain 5, got %d", again.Inventory["Wood"])
	}
	if again.CraftingBox.Item.Collectible != "Axe" {
		t.Fatalf("expected item Axe, got %s", again.CraftingBox.Item.Collectible)
	}
	if !again.CraftingBox.ReadyAt.Equal(readyAt) {
		t.Fatalf("expected readyAt %v, got %v", readyAt, *again.CraftingBox.ReadyAt)
	}
	if !again.Flags.Enabled("CRAFTING_BOX") {
		t.Fatalf("expected flag to remain enabled")
	}
}

func TestMemoryStoreNilInitial(t *testing.T) {
	store := NewMemoryStore(logger.New(logger.LevelOff, nil), nil)
	snap, _ := store.Snapshot(context.Background())
	if snap.CraftingBox.Status != domain.StatusIdle {
		t.Fatalf("expected idle, got %s", snap.CraftingBox.Status)
	}
	if snap.Inventory == nil || snap.Recipes == nil || snap.Flags == nil {
		t.Fatalf("expected maps to be initialised: %+v", snap)
	}
}

func TestMemoryStoreSaveAndUpdate(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := NewMemoryStore(log, nil)
	ctx := context.Background()

	st := &domain.GameState{Inventory: map[string]int{"Stone": 2}}
	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("save: %v", err)
	}
	st.Inventory["Stone"] = 100

	err := store.Update(ctx, func(s *domain.GameState) error {
		s.Inventory["Stone"]++
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	boom := errors.New("boom")
	err = store.Update(ctx, func(s *domain.GameState) error {
		s.Inventory["Stone"] = 0
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	snap, _ := store.Snapshot(ctx)
	if snap.Inventory["Stone"] != 3 {
		t.Fatalf("expected 3 stone, got %d", snap.Inventory["Stone"])
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	store := NewMemoryStore(logger.New(logger.LevelOff, nil), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	const workers = 20
	const iterations = 100

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				_ = store.Update(ctx, func(s *domain.GameState) error {
					s.Saves++
					return nil
				})
				_, _ = store.Snapshot(ctx)
			}
		}()
	}
	wg.Wait()

	snap, _ := store.Snapshot(ctx)
	if snap.Saves != workers*iterations {
		t.Fatalf("expected %d saves, got %d", workers*iterations, snap.Saves)
	}
}
