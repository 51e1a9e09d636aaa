package bakermath

import "levain/models"

// FinalMix returns what is left of each formula ingredient once every named stage has
// drawn its share. Rows whose remainder is zero or negative are dropped; order follows
// the formula.
func FinalMix(stages []models.Stage, formula []models.RecipeIngredient) []models.StageIngredient {
	allocations := StageAllocations(stages)
	remaining := make([]models.StageIngredient, 0, len(formula))
	for _, item := range formula {
		weight := item.Weight - allocations[item.IngredientID]
		if weight <= 0 {
			continue
		}
		remaining = append(remaining, models.StageIngredient{
			IngredientID: item.IngredientID,
			Weight:       weight,
			FromFormula:  true,
		})
	}
	return remaining
}

// FinalMixRow is a final-mix line ready for display.
type FinalMixRow struct {
	IngredientID string
	Name         string
	IsFlour      bool
	Weight       float64
	Percentage   *float64
}

// FinalMixView is the final mixing step: the carry-in from every named stage plus the
// remaining formula ingredients.
type FinalMixView struct {
	CarryIn          float64
	CarryInLabel     string
	Rows             []FinalMixRow
	FormulaFlour     float64
	FinalMixFlour    float64
	RemainingWeight  float64
	TotalDoughWeight float64
}

// ShowCarryIn reports whether the carry-in pseudo-row is rendered. Any non-zero
// carry-in is shown so the rows add up to the dough total.
func (v FinalMixView) ShowCarryIn() bool {
	return v.CarryIn != 0
}

// ResolveFinalMix builds the final-mix view. Flour rows are percentaged against the
// whole formula's flour, other rows against the final mix's own flour. The boolean is
// false when there is neither a remainder nor a carry-in to show.
func ResolveFinalMix(stages []models.Stage, formula []models.RecipeIngredient, dir Directory) (FinalMixView, bool) {
	remaining := FinalMix(stages, formula)
	carry := CarryIn(stages)
	view := FinalMixView{
		CarryIn:       carry[len(carry)-1],
		CarryInLabel:  carryInLabel(stages),
		FormulaFlour:  FlourWeight(formula, dir),
		FinalMixFlour: StageFlourWeight(remaining, dir),
	}
	if len(remaining) == 0 && view.CarryIn == 0 {
		return view, false
	}

	view.Rows = make([]FinalMixRow, 0, len(remaining))
	for _, item := range remaining {
		ingredient := Lookup(dir, item.IngredientID)
		row := FinalMixRow{
			IngredientID: item.IngredientID,
			Name:         ingredient.Name,
			IsFlour:      ingredient.IsFlour,
			Weight:       item.Weight,
		}
		if ingredient.IsFlour {
			row.Percentage = PercentageOf(item.Weight, view.FormulaFlour)
		} else {
			row.Percentage = PercentageOf(item.Weight, view.FinalMixFlour)
		}
		view.RemainingWeight += item.Weight
		view.Rows = append(view.Rows, row)
	}
	view.TotalDoughWeight = view.CarryIn + view.RemainingWeight
	return view, true
}

func carryInLabel(stages []models.Stage) string {
	if len(stages) > 0 {
		if name := stages[len(stages)-1].Name; name != "" {
			return name + " (carry-in)"
		}
	}
	return "Carry-in from previous stages"
}
