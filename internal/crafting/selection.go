package crafting

import (
	"fmt"

	"github.com/hammamikhairi/craftbox/internal/domain"
)

// SeedFromRecipe lays a recipe's ingredients into a fresh slot array in
// order. Missing positions stay empty and anything past the capacity is
// dropped. A nil recipe gives all-empty slots.
func SeedFromRecipe(recipe *domain.Recipe) domain.SlotArray {
	var slots domain.SlotArray
	if recipe == nil {
		return slots
	}
	copy(slots[:], recipe.Ingredients)
	return slots
}

// SetSlot returns a copy of slots with position index replaced by value.
// Pass domain.EmptySlot to clear. An index outside [0, SlotCapacity) fails
// with ErrInvalidIndex and returns slots unchanged.
func SetSlot(slots domain.SlotArray, index int, value domain.RecipeIngredient) (domain.SlotArray, error) {
	if index < 0 || index >= domain.SlotCapacity {
		return slots, fmt.Errorf("slot %d: %w", index, domain.ErrInvalidIndex)
	}
	slots[index] = value
	return slots, nil
}

// ClearSlot empties one position.
func ClearSlot(slots domain.SlotArray, index int) (domain.SlotArray, error) {
	return SetSlot(slots, index, domain.EmptySlot)
}

// Overflow returns how many of a recipe's ingredients do not fit in the
// slot array.
func Overflow(recipe domain.Recipe) int {
	if n := len(recipe.Ingredients) - domain.SlotCapacity; n > 0 {
		return n
	}
	return 0
}
