// Package engine implements the crafting box controller: the open/closed
// view, its tabs, the player's slot selection, and the requests it sends to
// the game-state owner.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hammamikhairi/craftbox/internal/clock"
	"github.com/hammamikhairi/craftbox/internal/crafting"
	"github.com/hammamikhairi/craftbox/internal/domain"
	"github.com/hammamikhairi/craftbox/internal/logger"
)

// Option configures the box.
type Option func(*Box)

// WithFeatureKey sets the flag that gates the box.
func WithFeatureKey(key string) Option {
	return func(b *Box) {
		b.featureKey = key
	}
}

// WithIDGenerator replaces the intent ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(b *Box) {
		b.newID = fn
	}
}

// Box is the crafting box controller. It reads a fresh snapshot for every
// operation and only owns its own view state: whether it is open, which tab
// shows, the nine slots, and which recipe the player applied.
// Safe for concurrent use.
type Box struct {
	state      domain.StateSource
	sink       domain.IntentSink
	clk        clock.Clock
	log        *logger.Logger
	featureKey string
	newID      func() string

	mu       sync.Mutex
	open     bool
	tab      Tab
	slots    domain.SlotArray
	selected string
}

// New creates a crafting box with the given dependencies and options.
func New(state domain.StateSource, sink domain.IntentSink, clk clock.Clock, log *logger.Logger, opts ...Option) *Box {
	b := &Box{
		state:      state,
		sink:       sink,
		clk:        clk,
		log:        log,
		featureKey: crafting.FeatureCraftingBox,
		newID:      generateID,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Open asks the owner to save, then opens the box with the slots seeded
// from the item currently in progress.
func (b *Box) Open(ctx context.Context) (View, error) {
	if err := b.send(ctx, domain.Intent{Kind: domain.IntentSave}); err != nil {
		// Saving is best effort; the box still opens.
		b.log.Warn("save request not sent: %v", err)
	}

	snap, err := b.state.Snapshot(ctx)
	if err != nil {
		return View{}, fmt.Errorf("reading game state: %w", err)
	}

	b.mu.Lock()
	b.open = true
	b.selected = ""
	var active *domain.Recipe
	if r, ok := crafting.ResolveRecipe(snap.CraftingBox.Item, snap.Recipes); ok {
		active = &r
	}
	b.slots = crafting.SeedFromRecipe(active)
	b.mu.Unlock()

	b.log.Info("crafting box opened (item=%q)", snap.CraftingBox.Item.Name())
	return b.view(snap), nil
}

// Close shuts the box and throws away the slot selection.
func (b *Box) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.open = false
	b.slots = domain.SlotArray{}
	b.selected = ""
	b.log.Debug("crafting box closed")
}

// SetTab switches the visible tab.
func (b *Box) SetTab(tab Tab) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return domain.ErrBoxClosed
	}
	b.tab = tab
	return nil
}

// ApplyRecipe seeds the slots from a catalog recipe and switches to the
// craft tab.
func (b *Box) ApplyRecipe(ctx context.Context, output string) (domain.SlotArray, error) {
	snap, err := b.gate(ctx)
	if err != nil {
		return domain.SlotArray{}, err
	}

	r, ok := snap.Recipes[output]
	if !ok {
		return domain.SlotArray{}, fmt.Errorf("recipe %q: %w", output, domain.ErrNotFound)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.slots = crafting.SeedFromRecipe(&r)
	b.selected = output
	b.tab = TabCraft

	if n := crafting.Overflow(r); n > 0 {
		b.log.Warn("recipe %s: %d ingredients did not fit in the slots", output, n)
	}
	b.log.Debug("applied recipe %s: %s", output, b.slots)
	return b.slots, nil
}

// SetSlot puts value in one slot. domain.EmptySlot clears it.
func (b *Box) SetSlot(ctx context.Context, index int, value domain.RecipeIngredient) (domain.SlotArray, error) {
	if !value.IsEmpty() && !value.Valid() {
		return b.Slots(), fmt.Errorf("slot %d: %w: %s", index, domain.ErrInvalidIngredient, value)
	}
	if _, err := b.gate(ctx); err != nil {
		return b.Slots(), err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := crafting.SetSlot(b.slots, index, value)
	if err != nil {
		return b.slots, err
	}
	b.slots = next
	return b.slots, nil
}

// ClearSlot empties one slot.
func (b *Box) ClearSlot(ctx context.Context, index int) (domain.SlotArray, error) {
	return b.SetSlot(ctx, index, domain.EmptySlot)
}

// Slots returns the current selection.
func (b *Box) Slots() domain.SlotArray {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.slots
}

// Confirm asks the owner to start crafting with the current slots. It sends
// exactly one start request, and none at all if the slots do not cover the
// target recipe. The returned ID identifies the request.
func (b *Box) Confirm(ctx context.Context) (string, error) {
	snap, err := b.gate(ctx)
	if err != nil {
		return "", err
	}

	box := snap.CraftingBox
	if box.Status == domain.StatusCrafting || box.Status == domain.StatusReady {
		return "", domain.ErrCraftInProgress
	}

	b.mu.Lock()
	slots := b.slots
	selected := b.selected
	b.mu.Unlock()

	target, err := b.target(snap, selected)
	if err != nil {
		return "", err
	}
	if err := crafting.Satisfies(slots, target); err != nil {
		b.log.Warn("craft refused: %v", err)
		return "", err
	}

	intent := domain.Intent{
		ID:       b.newID(),
		Kind:     domain.IntentStartCraft,
		Recipe:   target.Output,
		Slots:    slots,
		IssuedAt: b.clk.Now(),
	}
	if err := b.send(ctx, intent); err != nil {
		return "", fmt.Errorf("sending craft request: %w", err)
	}

	b.log.Info("craft requested: %s (%s)", target.Output, intent.ID)
	return intent.ID, nil
}

// Collect asks the owner to hand over a finished craft.
func (b *Box) Collect(ctx context.Context) (string, error) {
	snap, err := b.state.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("reading game state: %w", err)
	}
	if !crafting.HasAccess(snap.Flags, b.featureKey) {
		return "", domain.ErrAccessDenied
	}

	box := snap.CraftingBox
	if !crafting.IsReady(box.Status, box.ReadyAt, b.clk.Now()) {
		return "", domain.ErrNotReady
	}

	intent := domain.Intent{ID: b.newID(), Kind: domain.IntentCollect, IssuedAt: b.clk.Now()}
	if err := b.send(ctx, intent); err != nil {
		return "", fmt.Errorf("sending collect request: %w", err)
	}
	b.log.Info("collect requested: %s (%s)", box.Item.Name(), intent.ID)
	return intent.ID, nil
}

// View derives the presentation state from a fresh snapshot.
func (b *Box) View(ctx context.Context) (View, error) {
	snap, err := b.state.Snapshot(ctx)
	if err != nil {
		return View{}, fmt.Errorf("reading game state: %w", err)
	}
	return b.view(snap), nil
}

func (b *Box) view(snap *domain.GameState) View {
	now := b.clk.Now()
	box := snap.CraftingBox

	b.mu.Lock()
	v := View{
		Open:   b.open,
		Tab:    b.tab,
		Slots:  b.slots,
		Status: box.Status,
	}
	selected := b.selected
	b.mu.Unlock()

	v.Access = crafting.HasAccess(snap.Flags, b.featureKey)
	v.Ready = crafting.IsReady(box.Status, box.ReadyAt, now)
	v.Remaining = crafting.Remaining(box.Status, box.ReadyAt, now)
	v.Inventory = snap.Inventory

	if r, ok := crafting.ResolveRecipe(box.Item, snap.Recipes); ok {
		v.Active = &r
	}
	if r, ok := snap.Recipes[selected]; ok && selected != "" {
		v.Selected = &r
	}

	v.Recipes = make([]domain.RecipeSummary, 0, len(snap.Recipes))
	for _, r := range snap.Recipes {
		v.Recipes = append(v.Recipes, domain.RecipeSummary{
			Output:      r.Output,
			Description: r.Description,
			Category:    r.Category,
			Ingredients: len(r.Ingredients),
		})
	}
	sort.Slice(v.Recipes, func(i, j int) bool { return v.Recipes[i].Output < v.Recipes[j].Output })

	if target := v.Target(); target != nil && v.Access {
		err := crafting.Satisfies(v.Slots, *target)
		var shortfall *domain.ShortfallError
		if errors.As(err, &shortfall) {
			v.Shortfall = shortfall.Missing
		}
		busy := box.Status == domain.StatusCrafting || box.Status == domain.StatusReady
		v.CanConfirm = err == nil && v.Open && !busy
	}
	return v
}

// gate reads a snapshot and checks the box is open and the feature is on.
func (b *Box) gate(ctx context.Context) (*domain.GameState, error) {
	b.mu.Lock()
	open := b.open
	b.mu.Unlock()
	if !open {
		return nil, domain.ErrBoxClosed
	}

	snap, err := b.state.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading game state: %w", err)
	}
	if !crafting.HasAccess(snap.Flags, b.featureKey) {
		return nil, domain.ErrAccessDenied
	}
	return snap, nil
}

// target re-resolves the recipe to craft against the snapshot: the applied
// recipe if the player chose one, otherwise the item in progress.
func (b *Box) target(snap *domain.GameState, selected string) (domain.Recipe, error) {
	if selected != "" {
		r, ok := snap.Recipes[selected]
		if !ok {
			return domain.Recipe{}, fmt.Errorf("recipe %q: %w", selected, domain.ErrNotFound)
		}
		return r, nil
	}
	if r, ok := crafting.ResolveRecipe(snap.CraftingBox.Item, snap.Recipes); ok {
		return r, nil
	}
	return domain.Recipe{}, domain.ErrNoActiveRecipe
}

func (b *Box) send(ctx context.Context, intent domain.Intent) error {
	if intent.ID == "" {
		intent.ID = b.newID()
	}
	if intent.IssuedAt.IsZero() {
		intent.IssuedAt = b.clk.Now()
	}
	return b.sink.Send(ctx, intent)
}
