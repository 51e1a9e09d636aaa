package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"levain/models"
)

// Scalings is the collection of saved scaling runs, newest first. Records are
// immutable once added.
type Scalings struct {
	mu      sync.Mutex
	kv      KV
	recipes *Recipes
	newID   func() string
	now     func() time.Time
}

func (s *Scalings) List(ctx context.Context) ([]models.Scaling, error) {
	var items []models.Scaling
	if _, err := s.kv.Get(ctx, ScalingsKey, &items); err != nil {
		return nil, fmt.Errorf("list scalings: %w", err)
	}
	if items == nil {
		items = []models.Scaling{}
	}
	return items, nil
}

func (s *Scalings) ListForRecipe(ctx context.Context, recipeID string) ([]models.Scaling, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Scaling, 0, len(items))
	for _, item := range items {
		if item.RecipeID == recipeID {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func (s *Scalings) Get(ctx context.Context, id string) (models.Scaling, error) {
	items, err := s.List(ctx)
	if err != nil {
		return models.Scaling{}, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Scaling{}, ErrNotFound
}

// Add stores scaling as a new record with a fresh id and creation time. The recipe
// it was taken from must still exist.
func (s *Scalings) Add(ctx context.Context, scaling models.Scaling) (models.Scaling, error) {
	if scaling.DesiredWeight <= 0 {
		return models.Scaling{}, ErrInvalidWeight
	}
	if s.recipes != nil {
		if _, err := s.recipes.Get(ctx, scaling.RecipeID); err != nil {
			return models.Scaling{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.List(ctx)
	if err != nil {
		return models.Scaling{}, err
	}
	scaling.ID = s.newID()
	scaling.CreatedAt = s.now()
	if len(scaling.ScaledStages) == 0 {
		scaling.ScaledStages = nil
	}
	if scaling.ScaledIngredients == nil {
		scaling.ScaledIngredients = []models.ScaledIngredient{}
	}
	items = append([]models.Scaling{scaling}, items...)
	if err := s.kv.Set(ctx, ScalingsKey, items); err != nil {
		return models.Scaling{}, fmt.Errorf("save scaling: %w", err)
	}
	return scaling, nil
}

func (s *Scalings) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.List(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items = append(items[:i], items[i+1:]...)
		if err := s.kv.Set(ctx, ScalingsKey, items); err != nil {
			return fmt.Errorf("delete scaling: %w", err)
		}
		return nil
	}
	return ErrNotFound
}
