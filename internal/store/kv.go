// Package store persists ingredients, recipes and scalings as JSON collections in a
// key-value backend.
package store

import (
	"context"
	"errors"
)

// Collection keys. They match the keys used by earlier releases so exported data can
// be loaded unchanged.
const (
	IngredientsKey = "bakers-notebook:ingredients"
	RecipesKey     = "bakers-notebook:recipes"
	ScalingsKey    = "bakers-notebook:scalings"
)

var (
	ErrNotFound          = errors.New("store: record not found")
	ErrInvalidName       = errors.New("store: name must not be empty")
	ErrInvalidWeight     = errors.New("store: weight must be greater than zero")
	ErrUnknownIngredient = errors.New("store: unknown ingredient")
	ErrIngredientInUse   = errors.New("store: ingredient is used by a recipe")
	ErrNilBackend        = errors.New("store: backend is nil")
)

// KV reads and writes JSON-serialisable values by string key.
type KV interface {
	// Get decodes the value stored at key into dest. It reports false when the key
	// has never been written.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// Store bundles the three collections over a single backend.
type Store struct {
	Ingredients *Ingredients
	Recipes     *Recipes
	Scalings    *Scalings
}

// New wires the collections to kv.
func New(kv KV) (*Store, error) {
	if kv == nil {
		return nil, ErrNilBackend
	}
	ingredients := &Ingredients{kv: kv, newID: newID}
	recipes := &Recipes{kv: kv, ingredients: ingredients, newID: newID, now: nowUTC}
	ingredients.recipes = recipes
	return &Store{
		Ingredients: ingredients,
		Recipes:     recipes,
		Scalings:    &Scalings{kv: kv, recipes: recipes, newID: newID, now: nowUTC},
	}, nil
}
