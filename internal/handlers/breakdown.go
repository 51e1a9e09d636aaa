package handlers

import (
	"net/http"
	"sort"

	"levain/internal/bakermath"
)

type allocationResponse struct {
	IngredientID   string  `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	FormulaWeight  float64 `json:"formula_weight"`
	Allocated      float64 `json:"allocated"`
	Excess         float64 `json:"excess,omitempty"`
}

type stageRowResponse struct {
	IngredientID   string   `json:"ingredient_id"`
	IngredientName string   `json:"ingredient_name"`
	IsFlour        bool     `json:"is_flour"`
	Weight         float64  `json:"weight"`
	FromFormula    bool     `json:"from_formula"`
	Percentage     *float64 `json:"percentage"`
	Available      *float64 `json:"available,omitempty"`
	OverAllocated  bool     `json:"over_allocated"`
}

type stageBreakdownResponse struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Notes          string             `json:"notes,omitempty"`
	NewWeight      float64            `json:"new_weight"`
	FlourWeight    float64            `json:"flour_weight"`
	CarryIn        float64            `json:"carry_in"`
	Cumulative     float64            `json:"cumulative"`
	ShowCumulative bool               `json:"show_cumulative"`
	ProcessOnly    bool               `json:"process_only"`
	Rows           []stageRowResponse `json:"rows"`
}

type finalMixRowResponse struct {
	IngredientID   string   `json:"ingredient_id"`
	IngredientName string   `json:"ingredient_name"`
	IsFlour        bool     `json:"is_flour"`
	Weight         float64  `json:"weight"`
	Percentage     *float64 `json:"percentage"`
}

type finalMixResponse struct {
	CarryIn          float64               `json:"carry_in"`
	CarryInLabel     string                `json:"carry_in_label,omitempty"`
	ShowCarryIn      bool                  `json:"show_carry_in"`
	Rows             []finalMixRowResponse `json:"rows"`
	FinalMixFlour    float64               `json:"final_mix_flour"`
	RemainingWeight  float64               `json:"remaining_weight"`
	TotalDoughWeight float64               `json:"total_dough_weight"`
}

type breakdownResponse struct {
	RecipeID        string                   `json:"recipe_id"`
	RecipeName      string                   `json:"recipe_name"`
	TotalWeight     float64                  `json:"total_weight"`
	TotalPercentage float64                  `json:"total_percentage"`
	FlourWeight     float64                  `json:"flour_weight"`
	Allocations     []allocationResponse     `json:"allocations"`
	CarryIn         []float64                `json:"carry_in"`
	Stages          []stageBreakdownResponse `json:"stages"`
	FinalMix        *finalMixResponse        `json:"final_mix,omitempty"`
}

func showBreakdown(w http.ResponseWriter, r *http.Request, id string) {
	recipe, dir, ok := loadRecipe(w, r, id)
	if !ok {
		return
	}
	breakdown := bakermath.Analyze(recipe, dir)

	response := breakdownResponse{
		RecipeID:        recipe.ID,
		RecipeName:      recipe.Name,
		TotalWeight:     breakdown.TotalWeight,
		TotalPercentage: breakdown.TotalPercentage,
		FlourWeight:     breakdown.FlourWeight,
		Allocations:     projectAllocations(breakdown, dir),
		CarryIn:         breakdown.CarryIn,
		Stages:          make([]stageBreakdownResponse, 0, len(breakdown.Stages)),
	}
	for _, stage := range breakdown.Stages {
		response.Stages = append(response.Stages, projectStageView(stage))
	}
	if breakdown.HasFinalMix {
		response.FinalMix = projectFinalMix(breakdown.FinalMix)
	}
	writeJSON(w, http.StatusOK, response)
}

// projectAllocations lists allocated ingredients in formula order, followed by any
// allocated ids the formula no longer contains.
func projectAllocations(breakdown bakermath.Breakdown, dir bakermath.Directory) []allocationResponse {
	formulaWeights := make(map[string]float64, len(breakdown.Formula))
	order := make([]string, 0, len(breakdown.Allocations))
	for _, item := range breakdown.Formula {
		if _, seen := formulaWeights[item.IngredientID]; !seen {
			if _, allocated := breakdown.Allocations[item.IngredientID]; allocated {
				order = append(order, item.IngredientID)
			}
		}
		formulaWeights[item.IngredientID] += item.Weight
	}
	var strays []string
	for id := range breakdown.Allocations {
		if _, ok := formulaWeights[id]; !ok {
			strays = append(strays, id)
		}
	}
	sort.Strings(strays)
	order = append(order, strays...)

	allocations := make([]allocationResponse, 0, len(order))
	for _, id := range order {
		allocations = append(allocations, allocationResponse{
			IngredientID:   id,
			IngredientName: bakermath.Lookup(dir, id).Name,
			FormulaWeight:  formulaWeights[id],
			Allocated:      breakdown.Allocations[id],
			Excess:         breakdown.OverAllocations[id],
		})
	}
	return allocations
}

func projectStageView(stage bakermath.StageView) stageBreakdownResponse {
	projected := stageBreakdownResponse{
		ID:             stage.Summary.StageID,
		Name:           stage.Summary.Name,
		Notes:          stage.Notes,
		NewWeight:      stage.Summary.NewWeight,
		FlourWeight:    stage.Summary.FlourWeight,
		CarryIn:        stage.Summary.CarryIn,
		Cumulative:     stage.Summary.Cumulative,
		ShowCumulative: stage.Summary.ShowCumulative(),
		ProcessOnly:    stage.Summary.ProcessOnly(),
		Rows:           make([]stageRowResponse, 0, len(stage.Rows)),
	}
	for _, row := range stage.Rows {
		item := stageRowResponse{
			IngredientID:   row.IngredientID,
			IngredientName: row.Name,
			IsFlour:        row.IsFlour,
			Weight:         row.Weight,
			FromFormula:    row.FromFormula,
			Percentage:     row.Percentage,
			OverAllocated:  row.Availability.OverAllocated,
		}
		if row.Availability.Tracked {
			available := row.Availability.Available
			item.Available = &available
		}
		projected.Rows = append(projected.Rows, item)
	}
	return projected
}

func projectFinalMix(view bakermath.FinalMixView) *finalMixResponse {
	projected := &finalMixResponse{
		CarryIn:          view.CarryIn,
		ShowCarryIn:      view.ShowCarryIn(),
		Rows:             make([]finalMixRowResponse, 0, len(view.Rows)),
		FinalMixFlour:    view.FinalMixFlour,
		RemainingWeight:  view.RemainingWeight,
		TotalDoughWeight: view.TotalDoughWeight,
	}
	if projected.ShowCarryIn {
		projected.CarryInLabel = view.CarryInLabel
	}
	for _, row := range view.Rows {
		projected.Rows = append(projected.Rows, finalMixRowResponse{
			IngredientID:   row.IngredientID,
			IngredientName: row.Name,
			IsFlour:        row.IsFlour,
			Weight:         row.Weight,
			Percentage:     row.Percentage,
		})
	}
	return projected
}
