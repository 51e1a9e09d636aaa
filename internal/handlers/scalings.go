package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"levain/internal/bakermath"
	applog "levain/internal/log"
	"levain/models"
)

const sessionScalingPreviewKey = "scaling_preview"

type scaleRequest struct {
	DesiredWeight float64 `json:"desired_weight"`
}

type scaledIngredientResponse struct {
	IngredientID   string  `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	OriginalWeight float64 `json:"original_weight"`
	ScaledWeight   float64 `json:"scaled_weight"`
	Percentage     float64 `json:"percentage"`
	IsFlour        bool    `json:"is_flour"`
}

type scaledStageRowResponse struct {
	IngredientID   string  `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	OriginalWeight float64 `json:"original_weight"`
	ScaledWeight   float64 `json:"scaled_weight"`
	FromFormula    bool    `json:"from_formula"`
}

type scaledStageResponse struct {
	StageID     string                   `json:"stage_id"`
	StageName   string                   `json:"stage_name"`
	CarryIn     float64                  `json:"carry_in"`
	Ingredients []scaledStageRowResponse `json:"ingredients"`
}

type scalingResponse struct {
	ID            string                     `json:"id,omitempty"`
	RecipeID      string                     `json:"recipe_id"`
	RecipeName    string                     `json:"recipe_name"`
	DesiredWeight float64                    `json:"desired_weight"`
	ActualWeight  float64                    `json:"actual_weight"`
	Drift         float64                    `json:"drift"`
	Ingredients   []scaledIngredientResponse `json:"ingredients"`
	Stages        []scaledStageResponse      `json:"stages,omitempty"`
	FinalCarryIn  float64                    `json:"final_carry_in,omitempty"`
	CreatedAt     *time.Time                 `json:"created_at,omitempty"`
}

// scaleRecipe runs the scaler over a stored recipe and keeps the result in the session
// until the baker saves it.
func scaleRecipe(w http.ResponseWriter, r *http.Request, id string) {
	var payload scaleRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.DesiredWeight <= 0 {
		applog.Debug(r.Context(), "rejected scaling target", "recipe", id, "desired", payload.DesiredWeight)
		writeJSONError(w, http.StatusBadRequest, "desired weight must be greater than zero")
		return
	}

	recipe, dir, ok := loadRecipe(w, r, id)
	if !ok {
		return
	}
	result := bakermath.Scale(recipe, payload.DesiredWeight, dir)
	preview := models.Scaling{
		RecipeID:          recipe.ID,
		RecipeName:        recipe.Name,
		DesiredWeight:     payload.DesiredWeight,
		ScaledIngredients: result.Ingredients,
		ScaledStages:      result.Stages,
	}

	if sessionManager != nil {
		encoded, err := json.Marshal(preview)
		if err != nil {
			applog.Error(r.Context(), "failed to encode scaling preview", "error", err)
			writeJSONError(w, http.StatusInternalServerError, "unable to scale recipe")
			return
		}
		sessionManager.Put(r.Context(), sessionScalingPreviewKey, string(encoded))
	}
	applog.Debug(r.Context(), "recipe scaled", "recipe", recipe.ID, "desired", payload.DesiredWeight, "actual", result.ActualWeight)
	writeJSON(w, http.StatusOK, projectScaling(preview))
}

// ScalingResource handles saved scaling runs. POST persists the preview held in the
// session; records are never updated.
func ScalingResource(w http.ResponseWriter, r *http.Request) {
	if !requireNotebook(w, r) {
		return
	}

	segments := resourcePath(r, "/app/api/scalings")
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			listScalings(w, r)
		case http.MethodPost:
			saveScaling(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if len(segments) > 1 {
		http.NotFound(w, r)
		return
	}

	id := segments[0]
	switch r.Method {
	case http.MethodGet:
		scaling, err := notebook.Scalings.Get(r.Context(), id)
		if err != nil {
			writeStoreError(w, r, err, "load scaling")
			return
		}
		writeJSON(w, http.StatusOK, projectScaling(scaling))
	case http.MethodDelete:
		if err := notebook.Scalings.Delete(r.Context(), id); err != nil {
			writeStoreError(w, r, err, "delete scaling")
			return
		}
		applog.Info(r.Context(), "scaling deleted", "id", id)
		writeDeleted(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listScalings(w http.ResponseWriter, r *http.Request) {
	var (
		items []models.Scaling
		err   error
	)
	if recipeID := r.URL.Query().Get("recipe_id"); recipeID != "" {
		items, err = notebook.Scalings.ListForRecipe(r.Context(), recipeID)
	} else {
		items, err = notebook.Scalings.List(r.Context())
	}
	if err != nil {
		writeStoreError(w, r, err, "load scalings")
		return
	}
	responses := make([]scalingResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, projectScaling(item))
	}
	writeJSON(w, http.StatusOK, responses)
}

func saveScaling(w http.ResponseWriter, r *http.Request) {
	if sessionManager == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "sessions are not configured")
		return
	}
	encoded := sessionManager.GetString(r.Context(), sessionScalingPreviewKey)
	if encoded == "" {
		applog.Debug(r.Context(), "save requested without a scaling preview")
		writeJSONError(w, http.StatusBadRequest, "scale a recipe before saving")
		return
	}
	var preview models.Scaling
	if err := json.Unmarshal([]byte(encoded), &preview); err != nil {
		sessionManager.Remove(r.Context(), sessionScalingPreviewKey)
		applog.Error(r.Context(), "failed to decode scaling preview", "error", err)
		writeJSONError(w, http.StatusBadRequest, "scale a recipe before saving")
		return
	}

	saved, err := notebook.Scalings.Add(r.Context(), preview)
	if err != nil {
		writeStoreError(w, r, err, "save scaling")
		return
	}
	sessionManager.Remove(r.Context(), sessionScalingPreviewKey)
	applog.Info(r.Context(), "scaling saved", "id", saved.ID, "recipe", saved.RecipeID)

	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/app/scalings/"+saved.ID+"/sheet")
	}
	writeJSON(w, http.StatusCreated, projectScaling(saved))
}

func projectScaling(scaling models.Scaling) scalingResponse {
	response := scalingResponse{
		ID:            scaling.ID,
		RecipeID:      scaling.RecipeID,
		RecipeName:    scaling.RecipeName,
		DesiredWeight: scaling.DesiredWeight,
		ActualWeight:  bakermath.ScaledTotal(scaling.ScaledIngredients),
		Ingredients:   make([]scaledIngredientResponse, 0, len(scaling.ScaledIngredients)),
	}
	response.Drift = response.ActualWeight - response.DesiredWeight
	if !scaling.CreatedAt.IsZero() {
		created := scaling.CreatedAt
		response.CreatedAt = &created
	}
	for _, item := range scaling.ScaledIngredients {
		response.Ingredients = append(response.Ingredients, scaledIngredientResponse{
			IngredientID:   item.IngredientID,
			IngredientName: item.IngredientName,
			OriginalWeight: item.OriginalWeight,
			ScaledWeight:   item.ScaledWeight,
			Percentage:     item.Percentage,
			IsFlour:        item.IsFlour,
		})
	}
	if len(scaling.ScaledStages) == 0 {
		return response
	}

	carry := bakermath.ScaledCarryIn(scaling.ScaledStages)
	response.FinalCarryIn = carry[len(carry)-1]
	for i, stage := range scaling.ScaledStages {
		projected := scaledStageResponse{
			StageID:     stage.StageID,
			StageName:   stage.StageName,
			CarryIn:     carry[i],
			Ingredients: make([]scaledStageRowResponse, 0, len(stage.Ingredients)),
		}
		for _, item := range stage.Ingredients {
			projected.Ingredients = append(projected.Ingredients, scaledStageRowResponse{
				IngredientID:   item.IngredientID,
				IngredientName: item.IngredientName,
				OriginalWeight: item.OriginalWeight,
				ScaledWeight:   item.ScaledWeight,
				FromFormula:    item.FromFormula,
			})
		}
		response.Stages = append(response.Stages, projected)
	}
	return response
}
