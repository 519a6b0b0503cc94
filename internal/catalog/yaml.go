package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/craftbox/internal/domain"
)

type fileFormat struct {
	Recipes []recipeEntry `yaml:"recipes"`
}

type recipeEntry struct {
	Output      string                    `yaml:"output"`
	Description string                    `yaml:"description"`
	Category    string                    `yaml:"category"`
	Duration    string                    `yaml:"duration"`
	Ingredients []domain.RecipeIngredient `yaml:"ingredients"`
}

// LoadYAML decodes and validates a recipe catalog document.
func LoadYAML(r io.Reader) ([]domain.Recipe, error) {
	var doc fileFormat
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	seen := make(map[string]bool, len(doc.Recipes))
	out := make([]domain.Recipe, 0, len(doc.Recipes))
	for i, e := range doc.Recipes {
		r, err := e.toRecipe()
		if err != nil {
			return nil, fmt.Errorf("recipe %d: %w", i, err)
		}
		if seen[r.Output] {
			return nil, fmt.Errorf("recipe %d: duplicate output %q", i, r.Output)
		}
		seen[r.Output] = true
		out = append(out, r)
	}
	return out, nil
}

// LoadFile reads a catalog YAML file from disk.
func LoadFile(path string) ([]domain.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

func (e recipeEntry) toRecipe() (domain.Recipe, error) {
	output := strings.TrimSpace(e.Output)
	if output == "" {
		return domain.Recipe{}, fmt.Errorf("missing output")
	}

	r := domain.Recipe{
		Output:      output,
		Description: e.Description,
	}

	switch strings.ToLower(e.Category) {
	case "", "collectible":
		r.Category = domain.CategoryCollectible
	case "wearable":
		r.Category = domain.CategoryWearable
	default:
		return domain.Recipe{}, fmt.Errorf("%s: unknown category %q", output, e.Category)
	}

	if e.Duration != "" {
		d, err := time.ParseDuration(e.Duration)
		if err != nil {
			return domain.Recipe{}, fmt.Errorf("%s: duration: %w", output, err)
		}
		if d < 0 {
			return domain.Recipe{}, fmt.Errorf("%s: negative duration", output)
		}
		r.Duration = d
	}

	if len(e.Ingredients) == 0 {
		return domain.Recipe{}, fmt.Errorf("%s: no ingredients", output)
	}
	for j, ing := range e.Ingredients {
		if !ing.Valid() {
			return domain.Recipe{}, fmt.Errorf("%s: ingredient %d needs an item and a positive quantity", output, j)
		}
		r.Ingredients = append(r.Ingredients, ing)
	}
	return r, nil
}
