package bakermath

import (
	"math"

	"levain/models"
)

// ScaleRecipe rescales a formula to desiredWeight through its baker's percentages.
// The flour weight is rounded up and each ingredient rounded to the nearest gram, so
// the actual total may drift from the target by a few grams. A formula without flour
// has no percentage basis and yields an empty result.
func ScaleRecipe(formula []models.RecipeIngredient, desiredWeight float64, dir Directory) []models.ScaledIngredient {
	withPct := CalculatePercentages(formula, dir)
	totalPct := TotalPercentage(withPct)
	if totalPct == 0 {
		return []models.ScaledIngredient{}
	}

	flourWeight := ScaledFlourWeight(desiredWeight, totalPct)
	scaled := make([]models.ScaledIngredient, 0, len(withPct))
	for _, item := range withPct {
		pct := 0.0
		if item.Percentage != nil {
			pct = *item.Percentage
		}
		ingredient := Lookup(dir, item.IngredientID)
		scaled = append(scaled, models.ScaledIngredient{
			IngredientID:   item.IngredientID,
			IngredientName: ingredient.Name,
			OriginalWeight: item.Weight,
			ScaledWeight:   roundHalfUp(flourWeight * pct / 100),
			Percentage:     pct,
			IsFlour:        ingredient.IsFlour,
		})
	}
	return scaled
}

// ScaledFlourWeight is the flour weight needed to reach desiredWeight at totalPct,
// rounded up to the next whole gram.
func ScaledFlourWeight(desiredWeight, totalPct float64) float64 {
	if totalPct == 0 {
		return 0
	}
	return math.Ceil(desiredWeight / totalPct * 100)
}

// ScaleFactor is the flat multiplier applied to stage weights. It is 1 when the
// original total is zero.
func ScaleFactor(desiredWeight, originalWeight float64) float64 {
	if originalWeight == 0 {
		return 1
	}
	return desiredWeight / originalWeight
}

// ScaleStages multiplies every stage row by factor and rounds to the nearest gram.
// Stage weights are not re-derived from percentages.
func ScaleStages(stages []models.Stage, factor float64, dir Directory) []models.ScaledStage {
	scaled := make([]models.ScaledStage, 0, len(stages))
	for _, stage := range stages {
		rows := make([]models.ScaledStageIngredient, 0, len(stage.Ingredients))
		for _, item := range stage.Ingredients {
			rows = append(rows, models.ScaledStageIngredient{
				IngredientID:   item.IngredientID,
				IngredientName: Lookup(dir, item.IngredientID).Name,
				OriginalWeight: item.Weight,
				ScaledWeight:   roundHalfUp(item.Weight * factor),
				FromFormula:    item.FromFormula,
			})
		}
		scaled = append(scaled, models.ScaledStage{
			StageID:     stage.ID,
			StageName:   stage.Name,
			Ingredients: rows,
		})
	}
	return scaled
}

// ScaledCarryIn is CarryIn over scaled stages.
func ScaledCarryIn(stages []models.ScaledStage) []float64 {
	carry := make([]float64, len(stages)+1)
	for i, stage := range stages {
		added := 0.0
		for _, item := range stage.Ingredients {
			if item.FromFormula {
				added += item.ScaledWeight
			}
		}
		carry[i+1] = carry[i] + added
	}
	return carry
}

// ScaledTotal sums the scaled formula weights.
func ScaledTotal(items []models.ScaledIngredient) float64 {
	total := 0.0
	for _, item := range items {
		total += item.ScaledWeight
	}
	return total
}

// Result is one scaling run over a recipe.
type Result struct {
	DesiredWeight  float64
	OriginalWeight float64
	ActualWeight   float64
	FlourWeight    float64
	ScaleFactor    float64
	Ingredients    []models.ScaledIngredient
	Stages         []models.ScaledStage
	StageCarryIn   []float64
}

// Drift is the actual scaled total minus the target.
func (r Result) Drift() float64 {
	return r.ActualWeight - r.DesiredWeight
}

// Scale runs the formula and, when present, the stages of recipe through the scaler.
// The two are independent views: the formula through its percentages, the stages by a
// flat factor.
func Scale(recipe models.Recipe, desiredWeight float64, dir Directory) Result {
	original := TotalWeight(recipe.Ingredients)
	ingredients := ScaleRecipe(recipe.Ingredients, desiredWeight, dir)
	result := Result{
		DesiredWeight:  desiredWeight,
		OriginalWeight: original,
		ActualWeight:   ScaledTotal(ingredients),
		FlourWeight:    ScaledFlourWeight(desiredWeight, TotalPercentage(CalculatePercentages(recipe.Ingredients, dir))),
		ScaleFactor:    ScaleFactor(desiredWeight, original),
		Ingredients:    ingredients,
	}
	if recipe.HasStages() {
		result.Stages = ScaleStages(recipe.Stages, result.ScaleFactor, dir)
		result.StageCarryIn = ScaledCarryIn(result.Stages)
	}
	return result
}
