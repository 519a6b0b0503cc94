package crafting

import "github.com/hammamikhairi/craftbox/internal/domain"

// FeatureCraftingBox is the flag that turns the crafting box on.
const FeatureCraftingBox = "CRAFTING_BOX"

// HasAccess reports whether the feature key is enabled. A nil flag store
// grants nothing.
func HasAccess(flags domain.FeatureFlags, key string) bool {
	if flags == nil {
		return false
	}
	return flags.Enabled(key)
}
