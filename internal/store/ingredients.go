package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"levain/internal/bakermath"
	"levain/models"
)

// IngredientInput carries the editable fields of an ingredient.
type IngredientInput struct {
	Name    string `json:"name"`
	IsFlour bool   `json:"isFlour"`
}

// Ingredients is the ingredient directory collection.
type Ingredients struct {
	mu      sync.Mutex
	kv      KV
	recipes *Recipes
	newID   func() string
}

func (s *Ingredients) List(ctx context.Context) ([]models.Ingredient, error) {
	var items []models.Ingredient
	if _, err := s.kv.Get(ctx, IngredientsKey, &items); err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	if items == nil {
		items = []models.Ingredient{}
	}
	return items, nil
}

// Directory returns the current ingredient list indexed for the math core.
func (s *Ingredients) Directory(ctx context.Context) (bakermath.IngredientDirectory, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return bakermath.NewDirectory(items), nil
}

func (s *Ingredients) Get(ctx context.Context, id string) (models.Ingredient, error) {
	items, err := s.List(ctx)
	if err != nil {
		return models.Ingredient{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Ingredient{}, ErrNotFound
}

func (s *Ingredients) Create(ctx context.Context, input IngredientInput) (models.Ingredient, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Ingredient{}, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.List(ctx)
	if err != nil {
		return models.Ingredient{}, err
	}
	ingredient := models.Ingredient{ID: s.newID(), Name: name, IsFlour: input.IsFlour}
	items = append(items, ingredient)
	if err := s.kv.Set(ctx, IngredientsKey, items); err != nil {
		return models.Ingredient{}, fmt.Errorf("create ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *Ingredients) Update(ctx context.Context, id string, input IngredientInput) (models.Ingredient, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Ingredient{}, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.List(ctx)
	if err != nil {
		return models.Ingredient{}, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i].Name = name
		items[i].IsFlour = input.IsFlour
		if err := s.kv.Set(ctx, IngredientsKey, items); err != nil {
			return models.Ingredient{}, fmt.Errorf("update ingredient: %w", err)
		}
		return items[i], nil
	}
	return models.Ingredient{}, ErrNotFound
}

// Delete removes an ingredient. Ingredients still referenced by a recipe formula or
// stage are kept and ErrIngredientInUse is returned.
func (s *Ingredients) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.List(ctx)
	if err != nil {
		return err
	}
	index := -1
	for i, item := range items {
		if item.ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return ErrNotFound
	}

	if s.recipes != nil {
		used, err := s.recipes.UsesIngredient(ctx, id)
		if err != nil {
			return err
		}
		if used {
			return ErrIngredientInUse
		}
	}

	items = append(items[:index], items[index+1:]...)
	if err := s.kv.Set(ctx, IngredientsKey, items); err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return nil
}
