package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"levain/internal/bakermath"
	"levain/models"
)

// RecipeInput carries the editable parts of a recipe. Formula percentages are ignored
// and recomputed from the weights.
type RecipeInput struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Ingredients []models.RecipeIngredient `json:"ingredients"`
	Stages      []models.Stage            `json:"stages"`
}

// Recipes is the recipe collection.
type Recipes struct {
	mu          sync.Mutex
	kv          KV
	ingredients *Ingredients
	newID       func() string
	now         func() time.Time
}

// List returns every recipe with formula percentages recomputed against the current
// ingredient directory.
func (s *Recipes) List(ctx context.Context) ([]models.Recipe, error) {
	items, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	dir, err := s.ingredients.Directory(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Ingredients = bakermath.CalculatePercentages(items[i].Ingredients, dir)
	}
	return items, nil
}

func (s *Recipes) Get(ctx context.Context, id string) (models.Recipe, error) {
	items, err := s.List(ctx)
	if err != nil {
		return models.Recipe{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Recipe{}, ErrNotFound
}

func (s *Recipes) Create(ctx context.Context, input RecipeInput) (models.Recipe, error) {
	dir, err := s.ingredients.Directory(ctx)
	if err != nil {
		return models.Recipe{}, err
	}
	recipe, err := s.build(input, dir)
	if err != nil {
		return models.Recipe{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return models.Recipe{}, err
	}
	now := s.now()
	recipe.ID = s.newID()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	items = append(items, recipe)
	if err := s.kv.Set(ctx, RecipesKey, items); err != nil {
		return models.Recipe{}, fmt.Errorf("create recipe: %w", err)
	}
	return recipe, nil
}

func (s *Recipes) Update(ctx context.Context, id string, input RecipeInput) (models.Recipe, error) {
	dir, err := s.ingredients.Directory(ctx)
	if err != nil {
		return models.Recipe{}, err
	}
	recipe, err := s.build(input, dir)
	if err != nil {
		return models.Recipe{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return models.Recipe{}, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		recipe.ID = id
		recipe.CreatedAt = items[i].CreatedAt
		recipe.UpdatedAt = s.now()
		items[i] = recipe
		if err := s.kv.Set(ctx, RecipesKey, items); err != nil {
			return models.Recipe{}, fmt.Errorf("update recipe: %w", err)
		}
		return recipe, nil
	}
	return models.Recipe{}, ErrNotFound
}

// Delete removes a recipe. Scalings taken from it are kept.
func (s *Recipes) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items = append(items[:i], items[i+1:]...)
		if err := s.kv.Set(ctx, RecipesKey, items); err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}
		return nil
	}
	return ErrNotFound
}

// UsesIngredient reports whether any recipe formula or stage references id.
func (s *Recipes) UsesIngredient(ctx context.Context, id string) (bool, error) {
	items, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	for _, recipe := range items {
		for _, item := range recipe.Ingredients {
			if item.IngredientID == id {
				return true, nil
			}
		}
		for _, stage := range recipe.Stages {
			for _, item := range stage.Ingredients {
				if item.IngredientID == id {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

func (s *Recipes) load(ctx context.Context) ([]models.Recipe, error) {
	var items []models.Recipe
	if _, err := s.kv.Get(ctx, RecipesKey, &items); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	if items == nil {
		items = []models.Recipe{}
	}
	return items, nil
}

// build validates input and returns the recipe it describes without id or timestamps.
func (s *Recipes) build(input RecipeInput, dir bakermath.IngredientDirectory) (models.Recipe, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Recipe{}, ErrInvalidName
	}

	formula := make([]models.RecipeIngredient, 0, len(input.Ingredients))
	for _, item := range input.Ingredients {
		if _, ok := dir.Resolve(item.IngredientID); !ok {
			return models.Recipe{}, fmt.Errorf("%w: %q", ErrUnknownIngredient, item.IngredientID)
		}
		if item.Weight <= 0 {
			return models.Recipe{}, ErrInvalidWeight
		}
		formula = append(formula, models.RecipeIngredient{IngredientID: item.IngredientID, Weight: item.Weight})
	}

	var stages []models.Stage
	for _, stage := range input.Stages {
		built := models.Stage{
			ID:             strings.TrimSpace(stage.ID),
			Name:           strings.TrimSpace(stage.Name),
			Notes:          strings.TrimSpace(stage.Notes),
			PercentageMode: stage.PercentageMode,
			Ingredients:    make([]models.StageIngredient, 0, len(stage.Ingredients)),
		}
		if built.ID == "" {
			built.ID = s.newID()
		}
		for _, item := range stage.Ingredients {
			if _, ok := dir.Resolve(item.IngredientID); !ok {
				return models.Recipe{}, fmt.Errorf("%w: %q", ErrUnknownIngredient, item.IngredientID)
			}
			if item.Weight < 0 {
				return models.Recipe{}, ErrInvalidWeight
			}
			built.Ingredients = append(built.Ingredients, item)
		}
		stages = append(stages, built)
	}

	return models.Recipe{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Ingredients: bakermath.CalculatePercentages(formula, dir),
		Stages:      stages,
	}, nil
}
