package engine

import (
	"time"

	"github.com/hammamikhairi/craftbox/internal/domain"
)

// Tab is the page shown inside the crafting box.
type Tab int

const (
	TabCraft Tab = iota
	TabRecipes
)

// String returns a human-readable tab name.
func (t Tab) String() string {
	switch t {
	case TabCraft:
		return "craft"
	case TabRecipes:
		return "recipes"
	default:
		return "unknown"
	}
}

// View is everything a renderer needs to draw the crafting box, derived from
// one snapshot and one reading of the clock.
type View struct {
	Open       bool
	Access     bool
	Tab        Tab
	Slots      domain.SlotArray
	Active     *domain.Recipe // recipe for the item in progress
	Selected   *domain.Recipe // recipe the player applied, if any
	Status     domain.CraftingStatus
	Ready      bool
	Remaining  time.Duration
	CanConfirm bool
	Shortfall  map[string]int
	Recipes    []domain.RecipeSummary
	Inventory  map[string]int
}

// Target is the recipe a confirm would craft.
func (v View) Target() *domain.Recipe {
	if v.Selected != nil {
		return v.Selected
	}
	return v.Active
}
