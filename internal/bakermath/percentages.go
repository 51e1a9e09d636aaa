package bakermath

import "levain/models"

// CalculatePercentages annotates every item with its baker's percentage relative to
// the flour total of the items passed in. When that flour total is zero the items are
// returned unchanged.
func CalculatePercentages(items []models.RecipeIngredient, dir Directory) []models.RecipeIngredient {
	result := cloneRecipeIngredients(items)
	totalFlour := FlourWeight(items, dir)
	if totalFlour == 0 {
		return result
	}

	for i := range result {
		pct := 100 * result[i].Weight / totalFlour
		result[i].Percentage = &pct
	}
	return result
}

// FlourWeight sums the weights of items whose ingredient is a flour.
func FlourWeight(items []models.RecipeIngredient, dir Directory) float64 {
	total := 0.0
	for _, item := range items {
		if isFlour(dir, item.IngredientID) {
			total += item.Weight
		}
	}
	return total
}

func TotalWeight(items []models.RecipeIngredient) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Weight
	}
	return total
}

// TotalPercentage sums the percentages of items; missing percentages count as zero.
func TotalPercentage(items []models.RecipeIngredient) float64 {
	total := 0.0
	for _, item := range items {
		if item.Percentage != nil {
			total += *item.Percentage
		}
	}
	return total
}

// StageFlourWeight sums flour weights within a set of stage rows, extras included.
func StageFlourWeight(items []models.StageIngredient, dir Directory) float64 {
	total := 0.0
	for _, item := range items {
		if isFlour(dir, item.IngredientID) {
			total += item.Weight
		}
	}
	return total
}

// StageTotalWeight is the weight of every row of a stage, extras included.
func StageTotalWeight(items []models.StageIngredient) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Weight
	}
	return total
}

// PercentageOf returns weight as a percentage of base, or nil when base is zero.
func PercentageOf(weight, base float64) *float64 {
	if base == 0 {
		return nil
	}
	pct := 100 * weight / base
	return &pct
}

func cloneRecipeIngredients(items []models.RecipeIngredient) []models.RecipeIngredient {
	result := make([]models.RecipeIngredient, len(items))
	for i, item := range items {
		result[i] = item
		if item.Percentage != nil {
			pct := *item.Percentage
			result[i].Percentage = &pct
		}
	}
	return result
}
