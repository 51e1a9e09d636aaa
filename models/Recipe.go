package models

import "time"

// RecipeIngredient is a line of the overall formula. Percentage is derived from the
// weight and the formula's flour total and is recomputed whenever a recipe is loaded.
type RecipeIngredient struct {
	IngredientID string   `json:"ingredientId"`
	Weight       float64  `json:"weight"` // grams
	Percentage   *float64 `json:"percentage,omitempty"`
}

// StageIngredient is a row of a production stage. FromFormula rows draw their weight
// from the overall formula; the others are extras such as a starter culture.
type StageIngredient struct {
	IngredientID string  `json:"ingredientId"`
	Weight       float64 `json:"weight"`
	FromFormula  bool    `json:"fromFormula"`
}

// Stage is a named production step. Order within a recipe is production order.
type Stage struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Notes          string            `json:"notes,omitempty"`
	PercentageMode bool              `json:"percentageMode"`
	Ingredients    []StageIngredient `json:"ingredients"`
}

type Recipe struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Stages      []Stage            `json:"stages,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// HasStages reports whether the recipe is split into named production stages.
func (r Recipe) HasStages() bool {
	return len(r.Stages) > 0
}
