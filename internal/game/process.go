// Package game is a reference owner of the game state. It is the single
// writer: intents sent by the crafting box are queued and applied one at a
// time on the process goroutine.
package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/craftbox/internal/clock"
	"github.com/hammamikhairi/craftbox/internal/crafting"
	"github.com/hammamikhairi/craftbox/internal/domain"
	"github.com/hammamikhairi/craftbox/internal/logger"
	"github.com/hammamikhairi/craftbox/internal/storage"
)

// ErrQueueFull is returned by Send when the intent queue has no room.
var ErrQueueFull = errors.New("intent queue full")

// Compile-time interface checks.
var (
	_ domain.IntentSink  = (*Process)(nil)
	_ domain.StateSource = (*Process)(nil)
)

// Option configures the process.
type Option func(*Process)

// WithDefaultDuration sets the craft time for recipes that do not set one.
func WithDefaultDuration(d time.Duration) Option {
	return func(p *Process) {
		p.defaultDuration = d
	}
}

// WithQueueSize sets how many intents may wait before Send refuses more.
func WithQueueSize(n int) Option {
	return func(p *Process) {
		p.queueSize = n
	}
}

// WithCatalog makes the process copy recipes from src into the game state
// on start and every interval after that.
func WithCatalog(src domain.CatalogSource, interval time.Duration) Option {
	return func(p *Process) {
		p.catalog = src
		p.catalogInterval = interval
	}
}

// WithAppliedHook registers fn to run after each intent is applied, with the
// error the intent was rejected with, if any.
func WithAppliedHook(fn func(domain.Intent, error)) Option {
	return func(p *Process) {
		p.onApplied = fn
	}
}

// Process owns the game state and applies intents against it.
type Process struct {
	store           *storage.MemoryStore
	clk             clock.Clock
	log             *logger.Logger
	defaultDuration time.Duration
	queueSize       int
	catalog         domain.CatalogSource
	catalogInterval time.Duration
	onApplied       func(domain.Intent, error)

	queue chan domain.Intent

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a game process over store.
func New(store *storage.MemoryStore, clk clock.Clock, log *logger.Logger, opts ...Option) *Process {
	p := &Process{
		store:           store,
		clk:             clk,
		log:             log,
		defaultDuration: 30 * time.Second,
		queueSize:       32,
		catalogInterval: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.queue = make(chan domain.Intent, p.queueSize)
	return p
}

// Snapshot returns a copy of the current game state.
func (p *Process) Snapshot(ctx context.Context) (*domain.GameState, error) {
	return p.store.Snapshot(ctx)
}

// Send queues an intent. It never waits for the intent to be applied.
func (p *Process) Send(ctx context.Context, intent domain.Intent) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case p.queue <- intent:
		p.log.Debug("queued intent %s (%s)", intent.Kind, intent.ID)
		return nil
	default:
		return ErrQueueFull
	}
}

// Start begins applying queued intents. Non-blocking.
func (p *Process) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		p.log.Warn("game process already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true

	if p.catalog != nil {
		p.syncCatalog(childCtx)
	}

	go p.loop(childCtx, p.done)
	p.log.Info("game process started (default craft=%s)", p.defaultDuration)
}

// Stop shuts the process down and waits for the loop to exit.
func (p *Process) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.cancel()
	p.running = false
	done := p.done
	p.mu.Unlock()

	<-done
	p.log.Info("game process stopped")
}

func (p *Process) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	var refresh <-chan time.Time
	if p.catalog != nil && p.catalogInterval > 0 {
		ticker := time.NewTicker(p.catalogInterval)
		defer ticker.Stop()
		refresh = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case intent := <-p.queue:
			err := p.Apply(ctx, intent)
			if p.onApplied != nil {
				p.onApplied(intent, err)
			}
		case <-refresh:
			p.syncCatalog(ctx)
		}
	}
}

// Apply applies one intent synchronously. The loop calls it for queued
// intents; tests may call it directly.
func (p *Process) Apply(ctx context.Context, intent domain.Intent) error {
	var err error
	switch intent.Kind {
	case domain.IntentSave:
		err = p.save(ctx)
	case domain.IntentStartCraft:
		err = p.startCraft(ctx, intent)
	case domain.IntentCollect:
		err = p.collect(ctx)
	default:
		err = fmt.Errorf("unknown intent kind %d", intent.Kind)
	}

	if err != nil {
		p.log.Warn("intent %s (%s) rejected: %v", intent.Kind, intent.ID, err)
		return err
	}
	p.log.Info("intent %s (%s) applied", intent.Kind, intent.ID)
	return nil
}

func (p *Process) save(ctx context.Context) error {
	now := p.clk.Now()
	return p.store.Update(ctx, func(st *domain.GameState) error {
		st.Saves++
		st.SavedAt = now
		return nil
	})
}

func (p *Process) startCraft(ctx context.Context, intent domain.Intent) error {
	now := p.clk.Now()
	return p.store.Update(ctx, func(st *domain.GameState) error {
		for i, slot := range intent.Slots {
			if !slot.IsEmpty() && !slot.Valid() {
				return fmt.Errorf("slot %d: %w: %s", i, domain.ErrInvalidIngredient, slot)
			}
		}
		if st.CraftingBox.Status == domain.StatusCrafting {
			return domain.ErrCraftInProgress
		}

		recipe, ok := st.Recipes[intent.Recipe]
		if !ok {
			return fmt.Errorf("recipe %q: %w", intent.Recipe, domain.ErrNotFound)
		}
		if err := crafting.Satisfies(intent.Slots, recipe); err != nil {
			return err
		}

		// The player must actually own what went into the slots.
		spend := intent.Slots.Totals()
		missing := make(map[string]int)
		for item, qty := range spend {
			if short := qty - st.Inventory[item]; short > 0 {
				missing[item] = short
			}
		}
		if len(missing) > 0 {
			return &domain.ShortfallError{Recipe: recipe.Output, Missing: missing}
		}
		for item, qty := range spend {
			st.Inventory[item] -= qty
			if st.Inventory[item] == 0 {
				delete(st.Inventory, item)
			}
		}

		duration := recipe.Duration
		if duration <= 0 {
			duration = p.defaultDuration
		}
		readyAt := now.Add(duration)

		st.CraftingBox = domain.CraftingProgress{
			Item:    itemRef(recipe),
			Status:  domain.StatusCrafting,
			ReadyAt: &readyAt,
		}
		return nil
	})
}

func (p *Process) collect(ctx context.Context) error {
	now := p.clk.Now()
	return p.store.Update(ctx, func(st *domain.GameState) error {
		box := st.CraftingBox
		if !crafting.IsReady(box.Status, box.ReadyAt, now) {
			return domain.ErrNotReady
		}
		if st.Inventory == nil {
			st.Inventory = make(map[string]int)
		}
		st.Inventory[box.Item.Name()]++
		st.CraftingBox = domain.CraftingProgress{Status: domain.StatusCollected}
		return nil
	})
}

func (p *Process) syncCatalog(ctx context.Context) {
	recipes, err := p.catalog.Catalog(ctx)
	if err != nil {
		p.log.Error("game: reading catalog: %v", err)
		return
	}
	err = p.store.Update(ctx, func(st *domain.GameState) error {
		st.Recipes = recipes
		return nil
	})
	if err != nil {
		p.log.Error("game: storing catalog: %v", err)
		return
	}
	p.log.Debug("game: catalog synced, %d recipes", len(recipes))
}

func itemRef(r domain.Recipe) *domain.ItemRef {
	if r.Category == domain.CategoryWearable {
		return &domain.ItemRef{Wearable: r.Output}
	}
	return &domain.ItemRef{Collectible: r.Output}
}
