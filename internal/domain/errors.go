package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors used across layers.
var (
	ErrNotFound                = errors.New("not found")
	ErrInvalidIndex            = errors.New("invalid slot index")
	ErrInvalidIngredient       = errors.New("invalid ingredient")
	ErrInsufficientIngredients = errors.New("insufficient ingredients")
	ErrAccessDenied            = errors.New("feature not available")
	ErrNoActiveRecipe          = errors.New("no active recipe")
	ErrCraftInProgress         = errors.New("craft already in progress")
	ErrNotReady                = errors.New("craft is not ready")
	ErrBoxClosed               = errors.New("crafting box is closed")
)

// ShortfallError lists the items a selection is missing for a recipe.
type ShortfallError struct {
	Recipe  string
	Missing map[string]int // item -> quantity still needed
}

func (e *ShortfallError) Error() string {
	items := make([]string, 0, len(e.Missing))
	for item := range e.Missing {
		items = append(items, item)
	}
	sort.Strings(items)
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%s x%d", item, e.Missing[item])
	}
	return fmt.Sprintf("%s: %s needs %s", ErrInsufficientIngredients, e.Recipe, strings.Join(parts, ", "))
}

// Unwrap makes errors.Is(err, ErrInsufficientIngredients) hold.
func (e *ShortfallError) Unwrap() error {
	return ErrInsufficientIngredients
}
