package bakermath

import "levain/models"

// StageAllocations returns, per ingredient, the grams drawn from the overall formula
// across every stage. Extras never contribute and no upper bound is enforced.
func StageAllocations(stages []models.Stage) map[string]float64 {
	return OtherStageAllocations(stages, -1)
}

// OtherStageAllocations is StageAllocations with the stage at index exclude skipped.
// An out-of-range index excludes nothing.
func OtherStageAllocations(stages []models.Stage, exclude int) map[string]float64 {
	allocations := make(map[string]float64)
	for i, stage := range stages {
		if i == exclude {
			continue
		}
		for _, item := range stage.Ingredients {
			if item.FromFormula {
				allocations[item.IngredientID] += item.Weight
			}
		}
	}
	return allocations
}

// Available is what remains of an ingredient for the stage being edited. A negative
// result means the ingredient is over-allocated.
func Available(formulaWeight, otherAllocation, stageWeight float64) float64 {
	return formulaWeight - otherAllocation - stageWeight
}

// RowAvailability describes one stage row against the formula.
type RowAvailability struct {
	IngredientID  string
	Tracked       bool // false for extras, which have no formula budget
	Available     float64
	OverAllocated bool
}

// StageAvailability computes the available grams for every row of stages[index].
func StageAvailability(stages []models.Stage, formula []models.RecipeIngredient, index int) []RowAvailability {
	if index < 0 || index >= len(stages) {
		return nil
	}
	formulaWeights := formulaWeightsByID(formula)
	others := OtherStageAllocations(stages, index)

	rows := make([]RowAvailability, 0, len(stages[index].Ingredients))
	for _, item := range stages[index].Ingredients {
		row := RowAvailability{IngredientID: item.IngredientID}
		if item.IngredientID != "" && item.FromFormula {
			row.Tracked = true
			row.Available = Available(formulaWeights[item.IngredientID], others[item.IngredientID], item.Weight)
			row.OverAllocated = row.Available < 0
		}
		rows = append(rows, row)
	}
	return rows
}

// OverAllocations lists the ingredients whose stage allocations exceed the formula,
// mapped to the excess grams.
func OverAllocations(stages []models.Stage, formula []models.RecipeIngredient) map[string]float64 {
	formulaWeights := formulaWeightsByID(formula)
	excess := make(map[string]float64)
	for id, allocated := range StageAllocations(stages) {
		if over := allocated - formulaWeights[id]; over > 0 {
			excess[id] = over
		}
	}
	return excess
}

func formulaWeightsByID(formula []models.RecipeIngredient) map[string]float64 {
	weights := make(map[string]float64, len(formula))
	for _, item := range formula {
		weights[item.IngredientID] += item.Weight
	}
	return weights
}
