package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/craftbox/internal/catalog"
	"github.com/hammamikhairi/craftbox/internal/clock"
	"github.com/hammamikhairi/craftbox/internal/crafting"
	"github.com/hammamikhairi/craftbox/internal/domain"
	"github.com/hammamikhairi/craftbox/internal/logger"
	"github.com/hammamikhairi/craftbox/internal/storage"
)

var start = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// recordingSink keeps every intent the box sends.
type recordingSink struct {
	mu      sync.Mutex
	intents []domain.Intent
	err     error
}

func (s *recordingSink) Send(ctx context.Context, intent domain.Intent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.intents = append(s.intents, intent)
	return nil
}

func (s *recordingSink) kinds() []domain.IntentKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.IntentKind, len(s.intents))
	for i, in := range s.intents {
		out[i] = in.Kind
	}
	return out
}

func (s *recordingSink) last() domain.Intent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.intents[len(s.intents)-1]
}

type fixture struct {
	box   *Box
	store *storage.MemoryStore
	sink  *recordingSink
	clk   *clock.Fake
	ctx   context.Context
}

func setupBox(t *testing.T, progress domain.CraftingProgress, access bool) *fixture {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	recipes, err := catalog.NewMemorySource(log).Catalog(context.Background())
	require.NoError(t, err)

	store := storage.NewMemoryStore(log, &domain.GameState{
		CraftingBox: progress,
		Recipes:     recipes,
		Flags:       domain.FlagSet{crafting.FeatureCraftingBox: access},
	})
	sink := &recordingSink{}
	clk := clock.NewFake(start)

	n := 0
	box := New(store, sink, clk, log, WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("req-%d", n)
	}))
	return &fixture{box: box, store: store, sink: sink, clk: clk, ctx: context.Background()}
}

func idleWith(item string) domain.CraftingProgress {
	return domain.CraftingProgress{Item: &domain.ItemRef{Collectible: item}, Status: domain.StatusIdle}
}

func TestOpenSendsSaveAndSeeds(t *testing.T) {
	f := setupBox(t, idleWith("Axe"), true)

	v, err := f.box.Open(f.ctx)
	require.NoError(t, err)

	assert.Equal(t, []domain.IntentKind{domain.IntentSave}, f.sink.kinds())
	assert.True(t, v.Open)
	assert.True(t, v.Access)
	want := domain.SlotArray{{Item: "Wood", Quantity: 3}}
	if diff := cmp.Diff(want, v.Slots); diff != "" {
		t.Fatalf("seeded slots mismatch (-want +got):\n%s", diff)
	}
	require.NotNil(t, v.Active)
	assert.Equal(t, "Axe", v.Active.Output)
	assert.True(t, v.CanConfirm)
}

func TestOpenWithoutItem(t *testing.T) {
	f := setupBox(t, domain.CraftingProgress{}, true)

	v, err := f.box.Open(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotArray{}, v.Slots)
	assert.Nil(t, v.Active)
	assert.False(t, v.CanConfirm)
}

func TestOpenSaveFailureStillOpens(t *testing.T) {
	f := setupBox(t, idleWith("Axe"), true)
	f.sink.err = errors.New("queue full")

	v, err := f.box.Open(f.ctx)
	require.NoError(t, err)
	assert.True(t, v.Open)
}

func TestCloseDiscardsSelection(t *testing.T) {
	f := setupBox(t, idleWith("Axe"), true)
	_, err := f.box.Open(f.ctx)
	require.NoError(t, err)

	f.box.Close()
	assert.Equal(t, domain.SlotArray{}, f.box.Slots())

	_, err = f.box.SetSlot(f.ctx, 0, domain.RecipeIngredient{Item: "Wood", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrBoxClosed)
	assert.ErrorIs(t, f.box.SetTab(TabRecipes), domain.ErrBoxClosed)
}

func TestApplyRecipe(t *testing.T) {
	f := setupBox(t, domain.CraftingProgress{}, true)
	_, err := f.box.Open(f.ctx)
	require.NoError(t, err)
	require.NoError(t, f.box.SetTab(TabRecipes))

	slots, err := f.box.ApplyRecipe(f.ctx, "Pickaxe")
	require.NoError(t, err)

	want := domain.SlotArray{{Item: "Wood", Quantity: 2}, {Item: "Stone", Quantity: 3}}
	if diff := cmp.Diff(want, slots); diff != "" {
		t.Fatalf("slots mismatch (-want +got):\n%s", diff)
	}

	v, err := f.box.View(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, TabCraft, v.Tab)
	require.NotNil(t, v.Selected)
	assert.Equal(t, "Pickaxe", v.Target().Output)
}

func TestApplyRecipeUnknown(t *testing.T) {
	f := setupBox(t, domain.CraftingProgress{}, true)
	_, err := f.box.Open(f.ctx)
	require.NoError(t, err)

	_, err = f.box.ApplyRecipe(f.ctx, "Sword")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAccessDenied(t *testing.T) {
	f := setupBox(t, idleWith("Axe"), false)

	v, err := f.box.Open(f.ctx)
	require.NoError(t, err)
	assert.False(t, v.Access)
	assert.False(t, v.CanConfirm)

	_, err = f.box.ApplyRecipe(f.ctx, "Axe")
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = f.box.Confirm(f.ctx)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	// Only the save went out.
	assert.Equal(t, []domain.IntentKind{domain.IntentSave}, f.sink.kinds())
}

func TestSetSlot(t *testing.T) {
	f := setupBox(t, domain.CraftingProgress{}, true)
	_, err := f.box.Open(f.ctx)
	require.NoError(t, err)

	tests := []struct {
		name    string
		index   int
		value   domain.RecipeIngredient
		wantErr error
	}{
		{"first slot", 0, domain.RecipeIngredient{Item: "Wood", Quantity: 1}, nil},
		{"last slot", 8, domain.RecipeIngredient{Item: "Stone", Quantity: 2}, nil},
		{"clear", 0, domain.EmptySlot, nil},
		{"negative index", -1, domain.RecipeIngredient{Item: "Wood", Quantity: 1}, domain.ErrInvalidIndex},
		{"index past end", 9, domain.RecipeIngredient{Item: "Wood", Quantity: 1}, domain.ErrInvalidIndex},
		{"zero quantity", 1, domain.RecipeIngredient{Item: "Wood"}, domain.ErrInvalidIngredient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := f.box.Slots()
			slots, err := f.box.SetSlot(f.ctx, tt.index, tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, slots)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, slots[tt.index])
		})
	}
}

func TestConfirmInsufficientSendsNothing(t *testing.T) {
	f := setupBox(t, idleWith("Axe"), true)
	_, err := f.box.Open(f.ctx)
	require.NoError(t, err)

	_, err = f.box.SetSlot(f.ctx, 0, domain.RecipeIngredient{Item: "Wood", Quantity: 2})
	require.NoError(t, err)

	_, err = f.box.Confirm(f.ctx)
	require.ErrorIs(t, err, domain.ErrInsufficientIngredients)

	var shortfall *domain.ShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.Equal(t, map[string]int{"Wood": 1}, shortfall.Missing)

	v, err := f.box.View(f.ctx)
	require.NoError(t, err)
	assert.False(t, v.CanConfirm)
	assert.Equal(t, map[string]int{"Wood": 1}, v.Shortfall)

	assert.Equal(t, []domain.IntentKind{domain.IntentSave}, f.sink.kinds())
}

func TestConfirmSendsOneStartCraft(t *testing.T) {
	f := setupBox(t, idleWith("Axe"), true)
	_, err := f.box.Open(f.ctx)
	require.NoError(t, err)
	f.clk.Advance(5 * time.Second)

	id, err := f.box.Confirm(f.ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	assert.Equal(t, []domain.IntentKind{domain.IntentSave, domain.IntentStartCraft}, f.sink.kinds())
	got := f.sink.last()
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Axe", got.Recipe)
	assert.Equal(t, domain.SlotArray{{Item: "Wood", Quantity: 3}}, got.Slots)
	assert.True(t, got.IssuedAt.Equal(start.Add(5*time.Second)))
}

func TestConfirmNoActiveRecipe(t *testing.T) {
	f := setupBox(t, domain.CraftingProgress{}, true)
	_, err := f.box.Open(f.ctx)
	require.NoError(t, err)

	_, err = f.box.Confirm(f.ctx)
	assert.ErrorIs(t, err, domain.ErrNoActiveRecipe)
}

func TestConfirmWhileCrafting(t *testing.T) {
	readyAt := start.Add(time.Minute)
	f := setupBox(t, domain.CraftingProgress{
		Item:    &domain.ItemRef{Collectible: "Axe"},
		Status:  domain.StatusCrafting,
		ReadyAt: &readyAt,
	}, true)
	_, err := f.box.Open(f.ctx)
	require.NoError(t, err)

	_, err = f.box.Confirm(f.ctx)
	assert.ErrorIs(t, err, domain.ErrCraftInProgress)
	assert.Len(t, f.sink.kinds(), 1)
}

func TestReadinessAndCollect(t *testing.T) {
	readyAt := start.Add(30 * time.Second)
	f := setupBox(t, domain.CraftingProgress{
		Item:    &domain.ItemRef{Collectible: "Axe"},
		Status:  domain.StatusCrafting,
		ReadyAt: &readyAt,
	}, true)

	f.clk.Set(readyAt.Add(-time.Millisecond))
	v, err := f.box.View(f.ctx)
	require.NoError(t, err)
	assert.False(t, v.Ready)
	assert.Equal(t, time.Millisecond, v.Remaining)

	_, err = f.box.Collect(f.ctx)
	assert.ErrorIs(t, err, domain.ErrNotReady)
	assert.Empty(t, f.sink.kinds())

	f.clk.Set(readyAt)
	v, err = f.box.View(f.ctx)
	require.NoError(t, err)
	assert.True(t, v.Ready)
	assert.Zero(t, v.Remaining)

	_, err = f.box.Collect(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.IntentKind{domain.IntentCollect}, f.sink.kinds())
}

func TestViewRecipesSorted(t *testing.T) {
	f := setupBox(t, domain.CraftingProgress{}, true)

	v, err := f.box.View(f.ctx)
	require.NoError(t, err)
	require.NotEmpty(t, v.Recipes)
	for i := 1; i < len(v.Recipes); i++ {
		assert.Less(t, v.Recipes[i-1].Output, v.Recipes[i].Output)
	}
}

func TestViewReflectsUpdatedSnapshot(t *testing.T) {
	f := setupBox(t, domain.CraftingProgress{}, true)

	v, err := f.box.View(f.ctx)
	require.NoError(t, err)
	assert.Nil(t, v.Active)

	require.NoError(t, f.store.Update(f.ctx, func(st *domain.GameState) error {
		st.CraftingBox.Item = &domain.ItemRef{Wearable: "Basic Hat"}
		return nil
	}))

	v, err = f.box.View(f.ctx)
	require.NoError(t, err)
	require.NotNil(t, v.Active)
	assert.Equal(t, "Basic Hat", v.Active.Output)
}

func TestTabString(t *testing.T) {
	assert.Equal(t, "craft", TabCraft.String())
	assert.Equal(t, "recipes", TabRecipes.String())
	assert.Equal(t, "unknown", Tab(7).String())
}
