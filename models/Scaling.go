package models

import "time"

// ScaledIngredient is one line of a formula rescaled to a target dough weight.
type ScaledIngredient struct {
	IngredientID   string  `json:"ingredientId"`
	IngredientName string  `json:"ingredientName"`
	OriginalWeight float64 `json:"originalWeight"`
	ScaledWeight   float64 `json:"scaledWeight"`
	Percentage     float64 `json:"percentage"`
	IsFlour        bool    `json:"isFlour"`
}

type ScaledStageIngredient struct {
	IngredientID   string  `json:"ingredientId"`
	IngredientName string  `json:"ingredientName"`
	OriginalWeight float64 `json:"originalWeight"`
	ScaledWeight   float64 `json:"scaledWeight"`
	FromFormula    bool    `json:"fromFormula"`
}

type ScaledStage struct {
	StageID     string                  `json:"stageId"`
	StageName   string                  `json:"stageName"`
	Ingredients []ScaledStageIngredient `json:"ingredients"`
}

// Scaling is an immutable snapshot of a scaling run. It is only ever created or deleted.
type Scaling struct {
	ID                string             `json:"id"`
	RecipeID          string             `json:"recipeId"`
	RecipeName        string             `json:"recipeName"`
	DesiredWeight     float64            `json:"desiredWeight"`
	ScaledIngredients []ScaledIngredient `json:"scaledIngredients"`
	ScaledStages      []ScaledStage      `json:"scaledStages,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
}
