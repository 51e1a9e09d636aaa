package handlers

import (
	"net/http"
	"strconv"
	"time"

	"levain/internal/bakermath"
	applog "levain/internal/log"
	"levain/internal/store"
	"levain/models"
)

type recipeIngredientPayload struct {
	IngredientID string  `json:"ingredient_id"`
	Weight       float64 `json:"weight"`
}

type stageIngredientPayload struct {
	IngredientID string  `json:"ingredient_id"`
	Weight       float64 `json:"weight"`
	FromFormula  bool    `json:"from_formula"`
}

type stagePayload struct {
	ID             string                   `json:"id"`
	Name           string                   `json:"name"`
	Notes          string                   `json:"notes"`
	PercentageMode bool                     `json:"percentage_mode"`
	Ingredients    []stageIngredientPayload `json:"ingredients"`
}

type recipeRequest struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Ingredients []recipeIngredientPayload `json:"ingredients"`
	Stages      []stagePayload            `json:"stages"`
}

type recipeIngredientResponse struct {
	IngredientID   string   `json:"ingredient_id"`
	IngredientName string   `json:"ingredient_name"`
	IsFlour        bool     `json:"is_flour"`
	Weight         float64  `json:"weight"`
	Percentage     *float64 `json:"percentage"`
}

type stageIngredientResponse struct {
	IngredientID   string  `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	Weight         float64 `json:"weight"`
	FromFormula    bool    `json:"from_formula"`
}

type stageResponse struct {
	ID             string                    `json:"id"`
	Name           string                    `json:"name"`
	Notes          string                    `json:"notes,omitempty"`
	PercentageMode bool                      `json:"percentage_mode"`
	Ingredients    []stageIngredientResponse `json:"ingredients"`
}

type recipeResponse struct {
	ID              string                     `json:"id"`
	Name            string                     `json:"name"`
	Description     string                     `json:"description"`
	Ingredients     []recipeIngredientResponse `json:"ingredients"`
	Stages          []stageResponse            `json:"stages"`
	TotalWeight     float64                    `json:"total_weight"`
	TotalPercentage float64                    `json:"total_percentage"`
	FlourWeight     float64                    `json:"flour_weight"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

type moveStageRequest struct {
	Direction string `json:"direction"`
}

// RecipeResource handles REST-style interactions for recipes and their derived views.
func RecipeResource(w http.ResponseWriter, r *http.Request) {
	if !requireNotebook(w, r) {
		return
	}

	segments := resourcePath(r, "/app/api/recipes")
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			listRecipes(w, r)
		case http.MethodPost:
			createRecipe(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id := segments[0]
	if len(segments) > 1 {
		switch {
		case len(segments) == 2 && segments[1] == "breakdown":
			if r.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			showBreakdown(w, r, id)
		case len(segments) == 2 && segments[1] == "scale":
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			scaleRecipe(w, r, id)
		case len(segments) == 4 && segments[1] == "stages" && segments[3] == "move":
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			moveStage(w, r, id, segments[2])
		default:
			http.NotFound(w, r)
		}
		return
	}

	switch r.Method {
	case http.MethodGet:
		showRecipe(w, r, id)
	case http.MethodPut:
		updateRecipe(w, r, id)
	case http.MethodDelete:
		deleteRecipe(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recipes, err := notebook.Recipes.List(ctx)
	if err != nil {
		writeStoreError(w, r, err, "load recipes")
		return
	}
	dir, err := notebook.Ingredients.Directory(ctx)
	if err != nil {
		writeStoreError(w, r, err, "load ingredients")
		return
	}
	responses := make([]recipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		responses = append(responses, projectRecipe(recipe, dir))
	}
	writeJSON(w, http.StatusOK, responses)
}

func showRecipe(w http.ResponseWriter, r *http.Request, id string) {
	recipe, dir, ok := loadRecipe(w, r, id)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(recipe, dir))
}

func createRecipe(w http.ResponseWriter, r *http.Request) {
	var payload recipeRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	ctx := r.Context()
	recipe, err := notebook.Recipes.Create(ctx, payload.input())
	if err != nil {
		writeStoreError(w, r, err, "create recipe")
		return
	}
	dir, err := notebook.Ingredients.Directory(ctx)
	if err != nil {
		writeStoreError(w, r, err, "load ingredients")
		return
	}
	applog.Info(ctx, "recipe created", "id", recipe.ID, "stages", len(recipe.Stages))
	writeJSON(w, http.StatusCreated, projectRecipe(recipe, dir))
}

func updateRecipe(w http.ResponseWriter, r *http.Request, id string) {
	var payload recipeRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	ctx := r.Context()
	recipe, err := notebook.Recipes.Update(ctx, id, payload.input())
	if err != nil {
		writeStoreError(w, r, err, "update recipe")
		return
	}
	dir, err := notebook.Ingredients.Directory(ctx)
	if err != nil {
		writeStoreError(w, r, err, "load ingredients")
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(recipe, dir))
}

func deleteRecipe(w http.ResponseWriter, r *http.Request, id string) {
	if err := notebook.Recipes.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, "delete recipe")
		return
	}
	applog.Info(r.Context(), "recipe deleted", "id", id)
	writeDeleted(w, r)
}

// moveStage swaps a stage with its neighbour and stores the new order. Carry-ins are
// derived on read so nothing else needs updating.
func moveStage(w http.ResponseWriter, r *http.Request, id, indexValue string) {
	index, err := strconv.Atoi(indexValue)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	var payload moveStageRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	if payload.Direction != "up" && payload.Direction != "down" {
		writeJSONError(w, http.StatusBadRequest, `direction must be "up" or "down"`)
		return
	}

	recipe, dir, ok := loadRecipe(w, r, id)
	if !ok {
		return
	}
	if index < 0 || index >= len(recipe.Stages) {
		writeJSONError(w, http.StatusBadRequest, "stage index out of range")
		return
	}

	recipe.Stages = bakermath.MoveStage(recipe.Stages, index, payload.Direction == "up")
	updated, err := notebook.Recipes.Update(r.Context(), id, store.RecipeInput{
		Name:        recipe.Name,
		Description: recipe.Description,
		Ingredients: recipe.Ingredients,
		Stages:      recipe.Stages,
	})
	if err != nil {
		writeStoreError(w, r, err, "reorder stages")
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(updated, dir))
}

func loadRecipe(w http.ResponseWriter, r *http.Request, id string) (models.Recipe, bakermath.IngredientDirectory, bool) {
	ctx := r.Context()
	recipe, err := notebook.Recipes.Get(ctx, id)
	if err != nil {
		writeStoreError(w, r, err, "load recipe")
		return models.Recipe{}, nil, false
	}
	dir, err := notebook.Ingredients.Directory(ctx)
	if err != nil {
		writeStoreError(w, r, err, "load ingredients")
		return models.Recipe{}, nil, false
	}
	return recipe, dir, true
}

func (p recipeRequest) input() store.RecipeInput {
	input := store.RecipeInput{
		Name:        p.Name,
		Description: p.Description,
		Ingredients: make([]models.RecipeIngredient, 0, len(p.Ingredients)),
	}
	for _, item := range p.Ingredients {
		input.Ingredients = append(input.Ingredients, models.RecipeIngredient{IngredientID: item.IngredientID, Weight: item.Weight})
	}
	for _, stage := range p.Stages {
		converted := models.Stage{
			ID:             stage.ID,
			Name:           stage.Name,
			Notes:          stage.Notes,
			PercentageMode: stage.PercentageMode,
			Ingredients:    make([]models.StageIngredient, 0, len(stage.Ingredients)),
		}
		for _, item := range stage.Ingredients {
			converted.Ingredients = append(converted.Ingredients, models.StageIngredient{
				IngredientID: item.IngredientID,
				Weight:       item.Weight,
				FromFormula:  item.FromFormula,
			})
		}
		input.Stages = append(input.Stages, converted)
	}
	return input
}

func projectRecipe(recipe models.Recipe, dir bakermath.Directory) recipeResponse {
	formula := bakermath.CalculatePercentages(recipe.Ingredients, dir)
	response := recipeResponse{
		ID:              recipe.ID,
		Name:            recipe.Name,
		Description:     recipe.Description,
		Ingredients:     make([]recipeIngredientResponse, 0, len(formula)),
		Stages:          make([]stageResponse, 0, len(recipe.Stages)),
		TotalWeight:     bakermath.TotalWeight(formula),
		TotalPercentage: bakermath.TotalPercentage(formula),
		FlourWeight:     bakermath.FlourWeight(formula, dir),
		CreatedAt:       recipe.CreatedAt,
		UpdatedAt:       recipe.UpdatedAt,
	}
	for _, item := range formula {
		ingredient := bakermath.Lookup(dir, item.IngredientID)
		response.Ingredients = append(response.Ingredients, recipeIngredientResponse{
			IngredientID:   item.IngredientID,
			IngredientName: ingredient.Name,
			IsFlour:        ingredient.IsFlour,
			Weight:         item.Weight,
			Percentage:     item.Percentage,
		})
	}
	for _, stage := range recipe.Stages {
		projected := stageResponse{
			ID:             stage.ID,
			Name:           stage.Name,
			Notes:          stage.Notes,
			PercentageMode: stage.PercentageMode,
			Ingredients:    make([]stageIngredientResponse, 0, len(stage.Ingredients)),
		}
		for _, item := range stage.Ingredients {
			projected.Ingredients = append(projected.Ingredients, stageIngredientResponse{
				IngredientID:   item.IngredientID,
				IngredientName: bakermath.Lookup(dir, item.IngredientID).Name,
				Weight:         item.Weight,
				FromFormula:    item.FromFormula,
			})
		}
		response.Stages = append(response.Stages, projected)
	}
	return response
}
