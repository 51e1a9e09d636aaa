package bakermath

import "levain/models"

const (
	flourID   = "flour"
	ryeID     = "rye"
	waterID   = "water"
	saltID    = "salt"
	starterID = "starter"
)

func testDirectory() IngredientDirectory {
	return NewDirectory([]models.Ingredient{
		{ID: flourID, Name: "Bread Flour", IsFlour: true},
		{ID: ryeID, Name: "Whole Rye", IsFlour: true},
		{ID: waterID, Name: "Water"},
		{ID: saltID, Name: "Salt"},
		{ID: starterID, Name: "Starter"},
	})
}

func countryLoaf() []models.RecipeIngredient {
	return []models.RecipeIngredient{
		{IngredientID: flourID, Weight: 1000},
		{IngredientID: waterID, Weight: 700},
		{IngredientID: saltID, Weight: 20},
	}
}

func pct(v float64) *float64 {
	return &v
}
