package bakermath

import "levain/models"

// CarryIn returns the running dough weight flowing into each stage. The result has
// len(stages)+1 elements: result[0] is always zero and the last element is the carry-in
// of the final mix. Only formula rows contribute.
func CarryIn(stages []models.Stage) []float64 {
	carry := make([]float64, len(stages)+1)
	for i, stage := range stages {
		carry[i+1] = carry[i] + formulaRowsWeight(stage.Ingredients)
	}
	return carry
}

// StageSummary is the weight breakdown shown on a stage card.
type StageSummary struct {
	Index       int
	StageID     string
	Name        string
	NewWeight   float64
	FlourWeight float64
	CarryIn     float64
	Cumulative  float64
}

// ProcessOnly reports a stage that adds no new mass.
func (s StageSummary) ProcessOnly() bool {
	return s.NewWeight == 0
}

// ShowCumulative reports whether the card shows carry-in and cumulative weight rather
// than the stage total alone.
func (s StageSummary) ShowCumulative() bool {
	return s.CarryIn != 0
}

// SummarizeStages walks stages in order and reports their new weight and carry-in.
func SummarizeStages(stages []models.Stage, dir Directory) []StageSummary {
	carry := CarryIn(stages)
	summaries := make([]StageSummary, len(stages))
	for i, stage := range stages {
		total := StageTotalWeight(stage.Ingredients)
		summaries[i] = StageSummary{
			Index:       i,
			StageID:     stage.ID,
			Name:        stage.Name,
			NewWeight:   total,
			FlourWeight: StageFlourWeight(stage.Ingredients, dir),
			CarryIn:     carry[i],
			Cumulative:  total + carry[i],
		}
	}
	return summaries
}

// MoveStage swaps the stage at index with its neighbour and returns the reordered
// copy. Callers must recompute carry-ins afterwards. Moves past either end return an
// unchanged copy.
func MoveStage(stages []models.Stage, index int, up bool) []models.Stage {
	next := make([]models.Stage, len(stages))
	copy(next, stages)
	target := index + 1
	if up {
		target = index - 1
	}
	if index < 0 || index >= len(next) || target < 0 || target >= len(next) {
		return next
	}
	next[index], next[target] = next[target], next[index]
	return next
}

func formulaRowsWeight(items []models.StageIngredient) float64 {
	total := 0.0
	for _, item := range items {
		if item.FromFormula {
			total += item.Weight
		}
	}
	return total
}
