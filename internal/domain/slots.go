package domain

import "strings"

// SlotCapacity is the fixed number of ingredient slots in the crafting box.
const SlotCapacity = 9

// SlotArray is the ingredient selection. Its length is always SlotCapacity;
// empty positions hold EmptySlot. Being an array, it is copied on assignment.
type SlotArray [SlotCapacity]RecipeIngredient

// Filled returns the number of non-empty slots.
func (s SlotArray) Filled() int {
	n := 0
	for _, slot := range s {
		if !slot.IsEmpty() {
			n++
		}
	}
	return n
}

// Totals sums slot quantities per item.
func (s SlotArray) Totals() map[string]int {
	have := make(map[string]int)
	for _, slot := range s {
		if slot.IsEmpty() {
			continue
		}
		have[slot.Item] += slot.Quantity
	}
	return have
}

// Ingredients returns the non-empty slots in order.
func (s SlotArray) Ingredients() []RecipeIngredient {
	out := make([]RecipeIngredient, 0, SlotCapacity)
	for _, slot := range s {
		if !slot.IsEmpty() {
			out = append(out, slot)
		}
	}
	return out
}

func (s SlotArray) String() string {
	parts := make([]string, len(s))
	for i, slot := range s {
		parts[i] = slot.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
