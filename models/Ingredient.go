package models

// Ingredient is a directory entry referenced by identifier from recipes and stages.
type Ingredient struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsFlour bool   `json:"isFlour"`
}

// UnknownIngredientName is displayed for identifiers missing from the directory.
const UnknownIngredientName = "Unknown"
