// Package catalog provides recipe catalog sources.
package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hammamikhairi/craftbox/internal/crafting"
	"github.com/hammamikhairi/craftbox/internal/domain"
	"github.com/hammamikhairi/craftbox/internal/logger"
)

// Compile-time interface check.
var _ domain.CatalogSource = (*MemorySource)(nil)

// MemorySource holds recipes in memory. Safe for concurrent reads.
type MemorySource struct {
	mu      sync.RWMutex
	recipes domain.RecipeCatalog
	log     *logger.Logger
}

// NewMemorySource creates a catalog holding the given recipes. With no
// recipes it is preloaded with the built-in set.
func NewMemorySource(log *logger.Logger, recipes ...domain.Recipe) *MemorySource {
	src := &MemorySource{
		recipes: make(domain.RecipeCatalog),
		log:     log,
	}
	if len(recipes) == 0 {
		recipes = Builtin()
	}
	for _, r := range recipes {
		src.put(r)
	}
	src.log.Debug("catalog seeded with %d recipes", len(src.recipes))
	return src
}

// Catalog returns a snapshot the caller owns.
func (s *MemorySource) Catalog(ctx context.Context) (domain.RecipeCatalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recipes.Clone(), nil
}

// Get returns a copy of the recipe for output.
func (s *MemorySource) Get(ctx context.Context, output string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[output]
	if !ok {
		s.log.Debug("recipe not found: %s", output)
		return nil, domain.ErrNotFound
	}
	r = r.Clone()
	return &r, nil
}

// List returns summaries of all recipes sorted by output name.
func (s *MemorySource) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("listing all recipes, count=%d", len(s.recipes))

	out := make([]domain.RecipeSummary, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, summarize(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Output < out[j].Output })
	return out, nil
}

// Search returns recipes whose output, description or ingredient names
// contain the query string.
func (s *MemorySource) Search(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	s.log.Debug("searching recipes for: %s", q)

	var out []domain.RecipeSummary
	for _, r := range s.recipes {
		if matches(r, q) {
			out = append(out, summarize(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Output < out[j].Output })
	return out, nil
}

// Unlock adds or replaces a recipe.
func (s *MemorySource) Unlock(ctx context.Context, recipe domain.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(recipe)
	s.log.Info("recipe unlocked: %s", recipe.Output)
}

// Replace swaps the whole catalog, e.g. after the backing file changed.
func (s *MemorySource) Replace(recipes []domain.Recipe) {
	next := make(domain.RecipeCatalog, len(recipes))
	for _, r := range recipes {
		if n := crafting.Overflow(r); n > 0 {
			s.log.Warn("recipe %s has %d ingredients, %d will not fit in the slots", r.Output, len(r.Ingredients), n)
		}
		next[r.Output] = r.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes = next
	s.log.Info("catalog replaced, %d recipes", len(next))
}

// Names returns every output name, sorted.
func (s *MemorySource) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.recipes))
	for name := range s.recipes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *MemorySource) put(r domain.Recipe) {
	if n := crafting.Overflow(r); n > 0 {
		s.log.Warn("recipe %s has %d ingredients, %d will not fit in the slots", r.Output, len(r.Ingredients), n)
	}
	s.recipes[r.Output] = r.Clone()
}

func summarize(r domain.Recipe) domain.RecipeSummary {
	return domain.RecipeSummary{
		Output:      r.Output,
		Description: r.Description,
		Category:    r.Category,
		Ingredients: len(r.Ingredients),
	}
}

func matches(r domain.Recipe, query string) bool {
	if strings.Contains(strings.ToLower(r.Output), query) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description), query) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Item), query) {
			return true
		}
	}
	return false
}

// Builtin returns the recipes shipped with the game.
func Builtin() []domain.Recipe {
	return []domain.Recipe{
		{
			Output:      "Axe",
			Description: "Chops trees.",
			Category:    domain.CategoryCollectible,
			Duration:    30 * time.Second,
			Ingredients: []domain.RecipeIngredient{
				{Item: "Wood", Quantity: 3},
			},
		},
		{
			Output:      "Pickaxe",
			Description: "Breaks stone.",
			Category:    domain.CategoryCollectible,
			Duration:    45 * time.Second,
			Ingredients: []domain.RecipeIngredient{
				{Item: "Wood", Quantity: 2},
				{Item: "Stone", Quantity: 3},
			},
		},
		{
			Output:      "Basic Hat",
			Description: "Keeps the sun off.",
			Category:    domain.CategoryWearable,
			Duration:    time.Minute,
			Ingredients: []domain.RecipeIngredient{
				{Item: "Wool", Quantity: 2},
				{Item: "Thread", Quantity: 1},
			},
		},
		{
			Output:      "Doll",
			Description: "A small stitched doll.",
			Category:    domain.CategoryCollectible,
			Duration:    2 * time.Minute,
			Ingredients: []domain.RecipeIngredient{
				{Item: "Wool", Quantity: 1},
				{Item: "Thread", Quantity: 2},
				{Item: "Cotton", Quantity: 1},
				{Item: "Button", Quantity: 2},
			},
		},
	}
}
