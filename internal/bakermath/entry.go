package bakermath

// EntryMode records which field of an editor row the baker typed into last.
type EntryMode int

const (
	WeightEntered EntryMode = iota
	PercentageEntered
)

func (m EntryMode) String() string {
	if m == PercentageEntered {
		return "percentage"
	}
	return "weight"
}

// ParseEntryMode maps "percentage" to PercentageEntered and anything else to WeightEntered.
func ParseEntryMode(value string) EntryMode {
	if value == "percentage" {
		return PercentageEntered
	}
	return WeightEntered
}

// FormulaRow is a formula line while it is being edited.
type FormulaRow struct {
	IngredientID string
	Weight       float64
	Percentage   float64
	Mode         EntryMode
}

// RecalculateFormula reconciles weights and percentages of an edited formula. Flour
// rows always derive their percentage from weight. The edited row, when entered by
// weight, derives its percentage. Other rows carrying a percentage derive their weight
// from the flour total so they follow flour changes. Percentages are kept to one
// decimal. Without flour the rows are returned unchanged.
func RecalculateFormula(rows []FormulaRow, dir Directory, edited int) []FormulaRow {
	result := make([]FormulaRow, len(rows))
	copy(result, rows)

	flour := 0.0
	for _, row := range rows {
		if row.IngredientID != "" && isFlour(dir, row.IngredientID) {
			flour += row.Weight
		}
	}
	if flour <= 0 {
		return result
	}

	for i, row := range result {
		if row.IngredientID == "" {
			continue
		}
		switch {
		case isFlour(dir, row.IngredientID):
			row.Percentage = roundTenth(row.Weight / flour * 100)
		case i == edited && row.Mode == WeightEntered:
			row.Percentage = roundTenth(row.Weight / flour * 100)
		case row.Percentage > 0:
			row.Weight = roundHalfUp(row.Percentage / 100 * flour)
		default:
			row.Percentage = roundTenth(row.Weight / flour * 100)
		}
		result[i] = row
	}
	return result
}

// StageRow is a stage line while it is being edited.
type StageRow struct {
	IngredientID string
	Weight       float64
	Percentage   float64
	FromFormula  bool
	Mode         EntryMode
}

// StagePercentageBase picks the denominator for a stage row: flour rows are measured
// against the whole formula's flour, other rows against the stage's own flour.
func StagePercentageBase(flour bool, formulaFlour, stageFlour float64) float64 {
	if flour {
		return formulaFlour
	}
	return stageFlour
}

// StageRowWeight converts a percentage entry to grams against base, or 0 without a base.
func StageRowWeight(percentage, base float64) float64 {
	if base <= 0 {
		return 0
	}
	return roundHalfUp(percentage / 100 * base)
}

// RecalculateStage applies an edit to rows[edited]. A percentage entry sets the weight,
// a weight entry refreshes the percentage. When the edited row is a flour the new stage
// flour cascades through the other rows.
func RecalculateStage(rows []StageRow, dir Directory, formulaFlour float64, percentageMode bool, edited int) []StageRow {
	result := make([]StageRow, len(rows))
	copy(result, rows)
	if edited < 0 || edited >= len(result) {
		return result
	}

	row := result[edited]
	flour := isFlour(dir, row.IngredientID)
	base := StagePercentageBase(flour, formulaFlour, stageRowsFlour(rows, dir))
	switch row.Mode {
	case PercentageEntered:
		row.Weight = StageRowWeight(row.Percentage, base)
	default:
		if base > 0 {
			row.Percentage = row.Weight / base * 100
		}
	}
	result[edited] = row

	if flour {
		result = CascadeStageFlour(result, dir, stageRowsFlour(result, dir), edited, percentageMode)
	}
	return result
}

// CascadeStageFlour propagates a new stage flour total. In percentage mode, non-flour
// rows entered by percentage get a new weight; rows entered by weight keep their grams
// and refresh the displayed percentage. Flour rows and the skipped row are untouched.
func CascadeStageFlour(rows []StageRow, dir Directory, newFlour float64, skip int, percentageMode bool) []StageRow {
	result := make([]StageRow, len(rows))
	copy(result, rows)
	if !percentageMode || newFlour <= 0 {
		return result
	}

	for i, row := range result {
		if i == skip || isFlour(dir, row.IngredientID) {
			continue
		}
		if row.Mode == PercentageEntered && row.Percentage > 0 {
			row.Weight = roundHalfUp(row.Percentage / 100 * newFlour)
		} else {
			row.Percentage = row.Weight / newFlour * 100
		}
		result[i] = row
	}
	return result
}

func stageRowsFlour(rows []StageRow, dir Directory) float64 {
	total := 0.0
	for _, row := range rows {
		if isFlour(dir, row.IngredientID) {
			total += row.Weight
		}
	}
	return total
}
