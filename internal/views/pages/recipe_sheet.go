package pages

import (
	"fmt"
	"sort"

	"levain/internal/bakermath"
	"levain/internal/views/components"
	"levain/models"
)

const (
	flourBadge = "(flour)"
	extraBadge = "extra"
)

// RecipeSheetData is everything the production sheet of a recipe shows.
type RecipeSheetData struct {
	Title       string
	Description string
	Stats       []components.Stat
	Formula     components.CardData
	Stages      []components.CardData
	FinalMix    *components.CardData
}

// BuildRecipeSheet lays out recipe for the kitchen: the overall formula, a card per
// stage with carry-in totals, and the final mix.
func BuildRecipeSheet(recipe models.Recipe, dir bakermath.Directory) RecipeSheetData {
	breakdown := bakermath.Analyze(recipe, dir)
	data := RecipeSheetData{
		Title:       recipe.Name,
		Description: recipe.Description,
		Formula:     formulaCard(breakdown, dir),
	}

	data.Stats = []components.Stat{
		{Label: "Total dough", Value: FormatGrams(breakdown.TotalWeight) + " g"},
		{Label: "Flour", Value: FormatGrams(breakdown.FlourWeight) + " g"},
		{Label: "Total percentage", Value: fmt.Sprintf("%.1f%%", breakdown.TotalPercentage)},
	}
	data.Stats = append(data.Stats, overAllocationStats(breakdown.OverAllocations, dir)...)

	for _, stage := range breakdown.Stages {
		data.Stages = append(data.Stages, stageCard(stage))
	}
	if breakdown.HasFinalMix {
		card := finalMixCard(breakdown.FinalMix)
		data.FinalMix = &card
	}
	return data
}

func formulaCard(breakdown bakermath.Breakdown, dir bakermath.Directory) components.CardData {
	card := components.CardData{
		Title:       "Overall formula",
		Empty:       "No ingredients yet.",
		ShowPercent: true,
	}
	for _, item := range breakdown.Formula {
		ingredient := bakermath.Lookup(dir, item.IngredientID)
		row := components.Row{
			Label:   ingredient.Name,
			Weight:  FormatGrams(item.Weight),
			Percent: FormatPercent(item.Percentage),
		}
		if ingredient.IsFlour {
			row.Badges = []string{flourBadge}
		}
		card.Rows = append(card.Rows, row)
	}
	if len(card.Rows) > 0 {
		card.Rows = append(card.Rows, components.Row{
			Label:   "Total",
			Weight:  FormatGrams(breakdown.TotalWeight),
			Percent: fmt.Sprintf("%.1f%%", breakdown.TotalPercentage),
			Total:   true,
		})
	}
	return card
}

func stageCard(stage bakermath.StageView) components.CardData {
	summary := stage.Summary
	position := fmt.Sprintf("Stage %d", summary.Index+1)
	card := components.CardData{
		Eyebrow:     position,
		Title:       summary.Name,
		Notes:       stage.Notes,
		Empty:       "Process step, no new ingredients added at this stage.",
		ShowPercent: true,
		NoteColumn:  "Available",
	}
	if card.Title == "" {
		card.Title = position
	}

	hasExtras := false
	for _, row := range stage.Rows {
		line := components.Row{
			Label:   row.Name,
			Weight:  FormatGrams(row.Weight),
			Percent: FormatPercent(row.Percentage),
		}
		if row.IsFlour {
			line.Badges = append(line.Badges, flourBadge)
		}
		if !row.FromFormula {
			hasExtras = true
			line.Badges = append(line.Badges, extraBadge)
		}
		if row.Availability.Tracked {
			line.Note = FormatAvailable(row.Availability.Available)
			line.Warn = row.Availability.OverAllocated
		}
		card.Rows = append(card.Rows, line)
	}
	if summary.ProcessOnly() {
		return card
	}

	card.Rows = append(card.Rows, stageTotals(summary.NewWeight, summary.CarryIn)...)
	if summary.FlourWeight > 0 {
		card.Legend = "Flour %: of total formula flour · Others %: of stage flour"
		if hasExtras {
			card.Legend += " · extra = not in overall formula"
		}
	}
	return card
}

// stageTotals shows the stage total alone when nothing is carried in, otherwise the
// new weight, the carry-in and the cumulative dough weight.
func stageTotals(newWeight, carryIn float64) []components.Row {
	if carryIn == 0 {
		return []components.Row{{Label: "Stage total", Weight: FormatGrams(newWeight), Total: true}}
	}
	return []components.Row{
		{Label: "New ingredients", Weight: FormatGrams(newWeight), Muted: true},
		{Label: "+ Carry-in from previous stages", Weight: FormatGrams(carryIn), Muted: true},
		{Label: "Cumulative dough weight", Weight: FormatGrams(newWeight + carryIn), Total: true},
	}
}

func finalMixCard(view bakermath.FinalMixView) components.CardData {
	card := components.CardData{
		Title:       "Final Mix",
		Subtitle:    "Combine carry-in with remaining ingredients",
		ShowPercent: true,
	}
	if view.ShowCarryIn() {
		card.Rows = append(card.Rows, components.Row{
			Label:   view.CarryInLabel,
			Weight:  FormatGrams(view.CarryIn),
			Percent: DefaultDash(""),
			Muted:   true,
		})
	}
	for _, row := range view.Rows {
		line := components.Row{
			Label:   row.Name,
			Weight:  FormatGrams(row.Weight),
			Percent: FormatPercent(row.Percentage),
		}
		if row.IsFlour {
			line.Badges = []string{flourBadge}
		}
		card.Rows = append(card.Rows, line)
	}
	card.Rows = append(card.Rows, components.Row{
		Label:  "Total dough weight",
		Weight: FormatGrams(view.TotalDoughWeight),
		Total:  true,
	})
	if view.FinalMixFlour > 0 {
		card.Legend = "Flour %: of total formula flour · Others %: of final mix flour"
	}
	return card
}

func overAllocationStats(excess map[string]float64, dir bakermath.Directory) []components.Stat {
	ids := make([]string, 0, len(excess))
	for id := range excess {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	stats := make([]components.Stat, 0, len(ids))
	for _, id := range ids {
		stats = append(stats, components.Stat{
			Label: "Over-allocated " + bakermath.Lookup(dir, id).Name,
			Value: "+" + FormatGrams(excess[id]) + " g",
			Warn:  true,
		})
	}
	return stats
}
