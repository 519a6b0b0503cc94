package crafting

import "github.com/hammamikhairi/craftbox/internal/domain"

// ResolveRecipe looks up the recipe for the item in progress. It reports
// false when item is nil, names nothing, or is not in the catalog.
func ResolveRecipe(item *domain.ItemRef, catalog domain.RecipeCatalog) (domain.Recipe, bool) {
	name := item.Name()
	if name == "" {
		return domain.Recipe{}, false
	}
	r, ok := catalog[name]
	return r, ok
}
