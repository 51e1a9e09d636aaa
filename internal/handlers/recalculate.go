package handlers

import (
	"net/http"

	"levain/internal/bakermath"
)

type formulaRowPayload struct {
	IngredientID string  `json:"ingredient_id"`
	Weight       float64 `json:"weight"`
	Percentage   float64 `json:"percentage"`
	Mode         string  `json:"mode"`
}

type stageRowPayload struct {
	IngredientID string  `json:"ingredient_id"`
	Weight       float64 `json:"weight"`
	Percentage   float64 `json:"percentage"`
	FromFormula  bool    `json:"from_formula"`
	Mode         string  `json:"mode"`
}

type recalculateFormulaRequest struct {
	Rows   []formulaRowPayload `json:"rows"`
	Edited int                 `json:"edited"`
}

type recalculateStageRequest struct {
	Rows           []stageRowPayload `json:"rows"`
	FormulaFlour   float64           `json:"formula_flour"`
	PercentageMode bool              `json:"percentage_mode"`
	Edited         int               `json:"edited"`
}

type cascadeStageRequest struct {
	Rows           []stageRowPayload `json:"rows"`
	NewFlour       float64           `json:"new_flour"`
	Skip           int               `json:"skip"`
	PercentageMode bool              `json:"percentage_mode"`
}

type rowsResponse[T any] struct {
	Rows []T `json:"rows"`
}

// Recalculate reconciles weights and percentages of rows being edited in a recipe or
// stage form. Nothing is stored.
func Recalculate(w http.ResponseWriter, r *http.Request) {
	if !requireNotebook(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	segments := resourcePath(r, "/app/api/recalculate")
	if len(segments) != 1 {
		http.NotFound(w, r)
		return
	}

	switch segments[0] {
	case "formula":
		var payload recalculateFormulaRequest
		if !decodeJSON(w, r, &payload) {
			return
		}
		dir, ok := loadDirectory(w, r)
		if !ok {
			return
		}
		rows := bakermath.RecalculateFormula(formulaRows(payload.Rows), dir, payload.Edited)
		writeJSON(w, http.StatusOK, rowsResponse[formulaRowPayload]{Rows: projectFormulaRows(rows)})
	case "stage":
		var payload recalculateStageRequest
		if !decodeJSON(w, r, &payload) {
			return
		}
		dir, ok := loadDirectory(w, r)
		if !ok {
			return
		}
		rows := bakermath.RecalculateStage(stageRows(payload.Rows), dir, payload.FormulaFlour, payload.PercentageMode, payload.Edited)
		writeJSON(w, http.StatusOK, rowsResponse[stageRowPayload]{Rows: projectStageRows(rows)})
	case "cascade":
		var payload cascadeStageRequest
		if !decodeJSON(w, r, &payload) {
			return
		}
		dir, ok := loadDirectory(w, r)
		if !ok {
			return
		}
		rows := bakermath.CascadeStageFlour(stageRows(payload.Rows), dir, payload.NewFlour, payload.Skip, payload.PercentageMode)
		writeJSON(w, http.StatusOK, rowsResponse[stageRowPayload]{Rows: projectStageRows(rows)})
	default:
		http.NotFound(w, r)
	}
}

func loadDirectory(w http.ResponseWriter, r *http.Request) (bakermath.IngredientDirectory, bool) {
	dir, err := notebook.Ingredients.Directory(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "load ingredients")
		return nil, false
	}
	return dir, true
}

func formulaRows(payload []formulaRowPayload) []bakermath.FormulaRow {
	rows := make([]bakermath.FormulaRow, 0, len(payload))
	for _, row := range payload {
		rows = append(rows, bakermath.FormulaRow{
			IngredientID: row.IngredientID,
			Weight:       row.Weight,
			Percentage:   row.Percentage,
			Mode:         bakermath.ParseEntryMode(row.Mode),
		})
	}
	return rows
}

func projectFormulaRows(rows []bakermath.FormulaRow) []formulaRowPayload {
	projected := make([]formulaRowPayload, 0, len(rows))
	for _, row := range rows {
		projected = append(projected, formulaRowPayload{
			IngredientID: row.IngredientID,
			Weight:       row.Weight,
			Percentage:   row.Percentage,
			Mode:         row.Mode.String(),
		})
	}
	return projected
}

func stageRows(payload []stageRowPayload) []bakermath.StageRow {
	rows := make([]bakermath.StageRow, 0, len(payload))
	for _, row := range payload {
		rows = append(rows, bakermath.StageRow{
			IngredientID: row.IngredientID,
			Weight:       row.Weight,
			Percentage:   row.Percentage,
			FromFormula:  row.FromFormula,
			Mode:         bakermath.ParseEntryMode(row.Mode),
		})
	}
	return rows
}

func projectStageRows(rows []bakermath.StageRow) []stageRowPayload {
	projected := make([]stageRowPayload, 0, len(rows))
	for _, row := range rows {
		projected = append(projected, stageRowPayload{
			IngredientID: row.IngredientID,
			Weight:       row.Weight,
			Percentage:   row.Percentage,
			FromFormula:  row.FromFormula,
			Mode:         row.Mode.String(),
		})
	}
	return projected
}
