package bakermath

import "levain/models"

// StageRowView is a stage row with its display percentage and formula availability.
type StageRowView struct {
	IngredientID string
	Name         string
	IsFlour      bool
	Weight       float64
	FromFormula  bool
	Percentage   *float64
	Availability RowAvailability
}

type StageView struct {
	Summary StageSummary
	Notes   string
	Rows    []StageRowView
}

// Breakdown is the full derived view of a recipe: the annotated formula, its stages
// and the final mix.
type Breakdown struct {
	Formula         []models.RecipeIngredient
	TotalWeight     float64
	TotalPercentage float64
	FlourWeight     float64
	Allocations     map[string]float64
	OverAllocations map[string]float64
	CarryIn         []float64
	Stages          []StageView
	FinalMix        FinalMixView
	HasFinalMix     bool
}

// Analyze derives the breakdown of recipe. Single-stage recipes get no stage views and
// no final mix.
func Analyze(recipe models.Recipe, dir Directory) Breakdown {
	formula := CalculatePercentages(recipe.Ingredients, dir)
	breakdown := Breakdown{
		Formula:         formula,
		TotalWeight:     TotalWeight(formula),
		TotalPercentage: TotalPercentage(formula),
		FlourWeight:     FlourWeight(formula, dir),
		Allocations:     StageAllocations(recipe.Stages),
		OverAllocations: OverAllocations(recipe.Stages, formula),
		CarryIn:         CarryIn(recipe.Stages),
	}
	if !recipe.HasStages() {
		return breakdown
	}

	summaries := SummarizeStages(recipe.Stages, dir)
	breakdown.Stages = make([]StageView, len(recipe.Stages))
	for i, stage := range recipe.Stages {
		availability := StageAvailability(recipe.Stages, formula, i)
		rows := make([]StageRowView, len(stage.Ingredients))
		for j, item := range stage.Ingredients {
			ingredient := Lookup(dir, item.IngredientID)
			base := StagePercentageBase(ingredient.IsFlour, breakdown.FlourWeight, summaries[i].FlourWeight)
			rows[j] = StageRowView{
				IngredientID: item.IngredientID,
				Name:         ingredient.Name,
				IsFlour:      ingredient.IsFlour,
				Weight:       item.Weight,
				FromFormula:  item.FromFormula,
				Percentage:   PercentageOf(item.Weight, base),
				Availability: availability[j],
			}
		}
		breakdown.Stages[i] = StageView{Summary: summaries[i], Notes: stage.Notes, Rows: rows}
	}

	breakdown.FinalMix, breakdown.HasFinalMix = ResolveFinalMix(recipe.Stages, formula, dir)
	return breakdown
}
