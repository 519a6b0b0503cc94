package crafting

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/craftbox/internal/domain"
)

func TestSatisfies(t *testing.T) {
	hat := domain.Recipe{
		Output: "Basic Hat",
		Ingredients: []domain.RecipeIngredient{
			{Item: "Wool", Quantity: 2},
			{Item: "Thread", Quantity: 1},
		},
	}

	tests := []struct {
		name        string
		slots       domain.SlotArray
		wantMissing map[string]int
	}{
		{
			name:  "exact",
			slots: domain.SlotArray{{Item: "Wool", Quantity: 2}, {Item: "Thread", Quantity: 1}},
		},
		{
			name:  "spread across slots and reordered",
			slots: domain.SlotArray{{Item: "Thread", Quantity: 1}, {}, {Item: "Wool", Quantity: 1}, {Item: "Wool", Quantity: 1}},
		},
		{
			name:  "extras allowed",
			slots: domain.SlotArray{{Item: "Wool", Quantity: 5}, {Item: "Thread", Quantity: 1}, {Item: "Stone", Quantity: 1}},
		},
		{
			name:        "too few",
			slots:       domain.SlotArray{{Item: "Wool", Quantity: 1}, {Item: "Thread", Quantity: 1}},
			wantMissing: map[string]int{"Wool": 1},
		},
		{
			name:        "empty",
			slots:       domain.SlotArray{},
			wantMissing: map[string]int{"Wool": 2, "Thread": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Satisfies(tt.slots, hat)
			if tt.wantMissing == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInsufficientIngredients))

			var shortfall *domain.ShortfallError
			require.True(t, errors.As(err, &shortfall))
			assert.Equal(t, tt.wantMissing, shortfall.Missing)
			assert.Equal(t, "Basic Hat", shortfall.Recipe)
		})
	}
}

func TestHasAccess(t *testing.T) {
	assert.True(t, HasAccess(domain.FlagSet{FeatureCraftingBox: true}, FeatureCraftingBox))
	assert.False(t, HasAccess(domain.FlagSet{FeatureCraftingBox: false}, FeatureCraftingBox))
	assert.False(t, HasAccess(domain.FlagSet{}, FeatureCraftingBox))
	assert.False(t, HasAccess(nil, FeatureCraftingBox))
}
