package domain

import "context"

// CatalogSource provides recipes. Implementations can be in-memory,
// file-backed, or mirror an external game state.
type CatalogSource interface {
	Catalog(ctx context.Context) (RecipeCatalog, error)
	Get(ctx context.Context, output string) (*Recipe, error)
	List(ctx context.Context) ([]RecipeSummary, error)
}

// StateSource hands out read-only snapshots of the external game state.
// Every call must return a fresh copy the caller may keep.
type StateSource interface {
	Snapshot(ctx context.Context) (*GameState, error)
}

// IntentSink accepts requests for the game-state owner. Send only enqueues;
// a nil error does not mean the owner applied the intent.
type IntentSink interface {
	Send(ctx context.Context, intent Intent) error
}

// FeatureFlags answers whether a feature is switched on.
type FeatureFlags interface {
	Enabled(key string) bool
}

// CommandParser converts raw player input into structured commands.
type CommandParser interface {
	Parse(ctx context.Context, input string) (*Command, error)
}

// Notifier delivers messages to the player. Implementations can write to
// stdout or a terminal UI.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
