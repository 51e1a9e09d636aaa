package pages

import (
	"fmt"

	"levain/internal/bakermath"
	"levain/internal/views/components"
	"levain/models"
)

// ScalingSheetData is the printable view of a saved scaling.
type ScalingSheetData struct {
	Title   string
	Stats   []components.Stat
	Formula components.CardData
	Stages  []components.CardData
}

// BuildScalingSheet lays out a saved scaling. The stage cards use the scaled stage
// weights and their own carry-ins, independent of the scaled formula.
func BuildScalingSheet(scaling models.Scaling) ScalingSheetData {
	actual := bakermath.ScaledTotal(scaling.ScaledIngredients)
	data := ScalingSheetData{
		Title: fmt.Sprintf("%s scaled to %s g", scaling.RecipeName, FormatGrams(scaling.DesiredWeight)),
		Stats: []components.Stat{
			{Label: "Target", Value: FormatGrams(scaling.DesiredWeight) + " g"},
			{Label: "Actual", Value: FormatGrams(actual) + " g"},
			{Label: "Difference", Value: FormatDrift(actual - scaling.DesiredWeight), Warn: actual != scaling.DesiredWeight},
		},
		Formula: components.CardData{
			Title:       "Scaled formula",
			Empty:       "Nothing to scale: the formula has no flour.",
			ShowPercent: true,
		},
	}
	if saved := FormatSheetDate(scaling.CreatedAt); saved != "" {
		data.Stats = append(data.Stats, components.Stat{Label: "Saved", Value: saved})
	}

	totalPct := 0.0
	for _, item := range scaling.ScaledIngredients {
		pct := item.Percentage
		totalPct += pct
		row := components.Row{
			Label:   item.IngredientName,
			Weight:  FormatGrams(item.ScaledWeight),
			Percent: FormatPercent(&pct),
		}
		if item.IsFlour {
			row.Badges = []string{flourBadge}
		}
		data.Formula.Rows = append(data.Formula.Rows, row)
	}
	if len(data.Formula.Rows) > 0 {
		data.Formula.Rows = append(data.Formula.Rows, components.Row{
			Label:   "Total",
			Weight:  FormatGrams(actual),
			Percent: FormatPercent(&totalPct),
			Total:   true,
		})
	}

	carry := bakermath.ScaledCarryIn(scaling.ScaledStages)
	for i, stage := range scaling.ScaledStages {
		data.Stages = append(data.Stages, scaledStageCard(stage, i, carry[i]))
	}
	return data
}

func scaledStageCard(stage models.ScaledStage, index int, carryIn float64) components.CardData {
	position := fmt.Sprintf("Stage %d", index+1)
	card := components.CardData{
		Eyebrow: position,
		Title:   stage.StageName,
		Empty:   "Process step, no ingredients at this stage.",
	}
	if card.Title == "" {
		card.Title = position
	}
	if len(stage.Ingredients) == 0 {
		return card
	}

	newWeight := 0.0
	for _, item := range stage.Ingredients {
		newWeight += item.ScaledWeight
		row := components.Row{Label: item.IngredientName, Weight: FormatGrams(item.ScaledWeight)}
		if !item.FromFormula {
			row.Badges = []string{extraBadge}
		}
		card.Rows = append(card.Rows, row)
	}
	card.Rows = append(card.Rows, stageTotals(newWeight, carryIn)...)
	return card
}
