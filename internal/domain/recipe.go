// Package domain defines the core types and interfaces for the crafting box.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"fmt"
	"time"
)

// RecipeIngredient is one required item and how many of it a recipe needs.
// The zero value is the empty slot marker.
type RecipeIngredient struct {
	Item     string `yaml:"item"`
	Quantity int    `yaml:"quantity"`
}

// EmptySlot marks a slot with nothing in it.
var EmptySlot = RecipeIngredient{}

// IsEmpty reports whether the ingredient is the empty slot marker.
func (ri RecipeIngredient) IsEmpty() bool {
	return ri.Item == "" && ri.Quantity == 0
}

// Valid reports whether the ingredient names an item with a positive quantity.
func (ri RecipeIngredient) Valid() bool {
	return ri.Item != "" && ri.Quantity > 0
}

func (ri RecipeIngredient) String() string {
	if ri.IsEmpty() {
		return "-"
	}
	return fmt.Sprintf("%s x%d", ri.Item, ri.Quantity)
}

// Recipe describes what it takes to craft one output item.
type Recipe struct {
	Output      string
	Description string
	Category    ItemCategory
	Ingredients []RecipeIngredient
	Duration    time.Duration // 0 means the process default
}

// ItemCategory says which inventory family an output belongs to.
type ItemCategory int

const (
	CategoryCollectible ItemCategory = iota
	CategoryWearable
)

// String returns a human-readable category.
func (c ItemCategory) String() string {
	switch c {
	case CategoryCollectible:
		return "collectible"
	case CategoryWearable:
		return "wearable"
	default:
		return "unknown"
	}
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	Output      string
	Description string
	Category    ItemCategory
	Ingredients int
}

// RecipeCatalog maps output identity to its recipe. Keys are unique.
type RecipeCatalog map[string]Recipe

// Clone returns a copy that shares no slices with c.
func (c RecipeCatalog) Clone() RecipeCatalog {
	if c == nil {
		return nil
	}
	out := make(RecipeCatalog, len(c))
	for k, r := range c {
		out[k] = r.Clone()
	}
	return out
}

// Clone returns a copy of the recipe with its own ingredient slice.
func (r Recipe) Clone() Recipe {
	if r.Ingredients != nil {
		r.Ingredients = append([]RecipeIngredient(nil), r.Ingredients...)
	}
	return r
}

// Requirements sums the recipe's ingredient quantities per item.
func (r Recipe) Requirements() map[string]int {
	need := make(map[string]int, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if ing.IsEmpty() {
			continue
		}
		need[ing.Item] += ing.Quantity
	}
	return need
}
