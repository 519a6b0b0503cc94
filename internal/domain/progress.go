package domain

import "time"

// CraftingStatus is the stored lifecycle state of the crafting box.
// Ready is never written by the core; it is derived from readyAt.
type CraftingStatus int

const (
	StatusIdle CraftingStatus = iota
	StatusCrafting
	StatusReady
	StatusCollected
)

// String returns a human-readable crafting status.
func (s CraftingStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusCrafting:
		return "crafting"
	case StatusReady:
		return "ready"
	case StatusCollected:
		return "collected"
	default:
		return "unknown"
	}
}

// ItemRef identifies the item in progress. At most one field is expected to
// be set; Collectible wins when both are.
type ItemRef struct {
	Collectible string
	Wearable    string
}

// Name returns the item identity, or "" when neither field is set.
func (r *ItemRef) Name() string {
	if r == nil {
		return ""
	}
	if r.Collectible != "" {
		return r.Collectible
	}
	return r.Wearable
}

// CraftingProgress is the crafting box as the game state sees it.
type CraftingProgress struct {
	Item    *ItemRef
	Status  CraftingStatus
	ReadyAt *time.Time // meaningful only while Crafting or Ready
}

// Clone returns a deep copy.
func (p CraftingProgress) Clone() CraftingProgress {
	if p.Item != nil {
		item := *p.Item
		p.Item = &item
	}
	if p.ReadyAt != nil {
		at := *p.ReadyAt
		p.ReadyAt = &at
	}
	return p
}

// GameState is one immutable snapshot of the externally owned game state.
type GameState struct {
	CraftingBox CraftingProgress
	Recipes     RecipeCatalog
	Inventory   map[string]int
	Flags       FlagSet
	SavedAt     time.Time
	Saves       int
}

// Clone returns a deep copy of the snapshot.
func (g *GameState) Clone() *GameState {
	if g == nil {
		return nil
	}
	out := *g
	out.CraftingBox = g.CraftingBox.Clone()
	out.Recipes = g.Recipes.Clone()
	if g.Inventory != nil {
		out.Inventory = make(map[string]int, len(g.Inventory))
		for k, v := range g.Inventory {
			out.Inventory[k] = v
		}
	}
	out.Flags = g.Flags.Clone()
	return &out
}

// FlagSet is a plain feature flag store keyed by feature identity.
type FlagSet map[string]bool

// Enabled reports whether key is set.
func (f FlagSet) Enabled(key string) bool {
	return f[key]
}

// Clone returns a copy of the flag set.
func (f FlagSet) Clone() FlagSet {
	if f == nil {
		return nil
	}
	out := make(FlagSet, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
