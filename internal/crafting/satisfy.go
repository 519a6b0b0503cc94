package crafting

import "github.com/hammamikhairi/craftbox/internal/domain"

// Satisfies checks that the selected slots cover every quantity the recipe
// asks for. Items may be spread over several slots. Extra items are allowed.
// On a shortfall it returns a *domain.ShortfallError.
func Satisfies(slots domain.SlotArray, recipe domain.Recipe) error {
	have := slots.Totals()
	missing := make(map[string]int)
	for item, qty := range recipe.Requirements() {
		if short := qty - have[item]; short > 0 {
			missing[item] = short
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &domain.ShortfallError{Recipe: recipe.Output, Missing: missing}
}
