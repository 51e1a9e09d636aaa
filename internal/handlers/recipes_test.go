package handlers

import (
	"net/http"
	"testing"
)

func TestRecipeResourceCreateAnnotatesPercentages(t *testing.T) {
	st, cleanup := withTestNotebook(t)
	t.Cleanup(cleanup)
	b := seedBakery(t, st)

	payload := recipeRequest{
		Name: "Focaccia",
		Ingredients: []recipeIngredientPayload{
			{IngredientID: b.flour.ID, Weight: 500},
			{IngredientID: b.water.ID, Weight: 400},
			{IngredientID: b.salt.ID, Weight: 10},
		},
	}
	w := doJSON(t, RecipeResource, nil, http.MethodPost, "/app/api/recipes", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	recipe := decodeBody[recipeResponse](t, w)
	if recipe.TotalWeight != 910 {
		t.Fatalf("TotalWeight = %v, want 910", recipe.TotalWeight)
	}
	if recipe.TotalPercentage != 182 {
		t.Fatalf("TotalPercentage = %v, want 182", recipe.TotalPercentage)
	}
	if recipe.FlourWeight != 500 {
		t.Fatalf("FlourWeight = %v, want 500", recipe.FlourWeight)
	}
	water := recipe.Ingredients[1]
	if water.IngredientName != "Water" || water.Percentage == nil || *water.Percentage != 80 {
		t.Fatalf("unexpected water row %+v", water)
	}
	if len(recipe.Stages) != 0 {
		t.Fatalf("expected no stages, got %d", len(recipe.Stages))
	}
}

func TestRecipeResourceValidation(t *testing.T) {
	st, cleanup := withTestNotebook(t)
	t.Cleanup(cleanup)
	b := seedBakery(t, st)

	tests := []struct {
		name    string
		payload recipeRequest
		want    int
	}{
		{
			name:    "missing name",
			payload: recipeRequest{Ingredients: []recipeIngredientPayload{{IngredientID: b.flour.ID, Weight: 100}}},
			want:    http.StatusBadRequest,
		},
		{
			name:    "zero weight",
			payload: recipeRequest{Name: "Loaf", Ingredients: []recipeIngredientPayload{{IngredientID: b.flour.ID}}},
			want:    http.StatusBadRequest,
		},
		{
			name:    "unknown ingredient",
			payload: recipeRequest{Name: "Loaf", Ingredients: []recipeIngredientPayload{{IngredientID: "nope", Weight: 10}}},
			want:    http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, RecipeResource, nil, http.MethodPost, "/app/api/recipes", tt.payload)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.want, w.Body.String())
			}
		})
	}

	w := doJSON(t, RecipeResource, nil, http.MethodPut, "/app/api/recipes/missing", recipeRequest{Name: "Loaf"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown recipe, got %d", w.Code)
	}
}

func TestRecipeBreakdown(t *testing.T) {
	st, cleanup := withTestNotebook(t)
	t.Cleanup(cleanup)
	b := seedBakery(t, st)

	w := doJSON(t, RecipeResource, nil, http.MethodGet, "/app/api/recipes/"+b.recipe.ID+"/breakdown", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	breakdown := decodeBody[breakdownResponse](t, w)

	if want := []float64{0, 200, 1600}; len(breakdown.CarryIn) != 3 || breakdown.CarryIn[1] != want[1] || breakdown.CarryIn[2] != want[2] {
		t.Fatalf("CarryIn = %v, want %v", breakdown.CarryIn, want)
	}
	if len(breakdown.Allocations) != 2 {
		t.Fatalf("expected allocations for flour and water, got %+v", breakdown.Allocations)
	}
	if breakdown.Allocations[0].IngredientID != b.flour.ID || breakdown.Allocations[0].Allocated != 1000 {
		t.Fatalf("unexpected flour allocation %+v", breakdown.Allocations[0])
	}

	levain := breakdown.Stages[0]
	if levain.NewWeight != 220 || levain.CarryIn != 0 || levain.ShowCumulative {
		t.Fatalf("unexpected levain summary %+v", levain)
	}
	if starter := levain.Rows[2]; starter.Available != nil || starter.FromFormula {
		t.Fatalf("expected untracked starter row, got %+v", starter)
	}
	if water := levain.Rows[1]; water.Available == nil || *water.Available != 100 {
		t.Fatalf("expected 100 g of water available in levain, got %+v", water)
	}

	autolyse := breakdown.Stages[1]
	if autolyse.CarryIn != 200 || autolyse.Cumulative != 1600 || !autolyse.ShowCumulative {
		t.Fatalf("unexpected autolyse summary %+v", autolyse)
	}

	mix := breakdown.FinalMix
	if mix == nil {
		t.Fatal("expected a final mix")
	}
	if !mix.ShowCarryIn || mix.CarryIn != 1600 || mix.CarryInLabel != "Autolyse (carry-in)" {
		t.Fatalf("unexpected carry-in %+v", mix)
	}
	if len(mix.Rows) != 2 || mix.Rows[0].Weight != 100 || mix.Rows[1].Weight != 20 {
		t.Fatalf("unexpected final mix rows %+v", mix.Rows)
	}
	if mix.Rows[1].Percentage != nil {
		t.Fatalf("expected no percentage without final-mix flour, got %v", *mix.Rows[1].Percentage)
	}
	if mix.TotalDoughWeight != 1720 {
		t.Fatalf("TotalDoughWeight = %v, want 1720", mix.TotalDoughWeight)
	}
}

func TestRecipeMoveStage(t *testing.T) {
	st, cleanup := withTestNotebook(t)
	t.Cleanup(cleanup)
	b := seedBakery(t, st)

	path := "/app/api/recipes/" + b.recipe.ID + "/stages/1/move"
	w := doJSON(t, RecipeResource, nil, http.MethodPost, path, moveStageRequest{Direction: "up"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	recipe := decodeBody[recipeResponse](t, w)
	if recipe.Stages[0].Name != "Autolyse" || recipe.Stages[1].Name != "Levain" {
		t.Fatalf("unexpected stage order %q, %q", recipe.Stages[0].Name, recipe.Stages[1].Name)
	}

	w = doJSON(t, RecipeResource, nil, http.MethodGet, "/app/api/recipes/"+b.recipe.ID+"/breakdown", nil)
	breakdown := decodeBody[breakdownResponse](t, w)
	if breakdown.Stages[1].CarryIn != 1400 {
		t.Fatalf("expected carry-in recomputed to 1400, got %v", breakdown.Stages[1].CarryIn)
	}

	tests := []struct {
		name string
		path string
		body moveStageRequest
		want int
	}{
		{name: "bad direction", path: path, body: moveStageRequest{Direction: "left"}, want: http.StatusBadRequest},
		{name: "out of range", path: "/app/api/recipes/" + b.recipe.ID + "/stages/5/move", body: moveStageRequest{Direction: "up"}, want: http.StatusBadRequest},
		{name: "bad index", path: "/app/api/recipes/" + b.recipe.ID + "/stages/x/move", body: moveStageRequest{Direction: "up"}, want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, RecipeResource, nil, http.MethodPost, tt.path, tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRecipeDelete(t *testing.T) {
	st, cleanup := withTestNotebook(t)
	t.Cleanup(cleanup)
	b := seedBakery(t, st)

	w := doJSON(t, RecipeResource, nil, http.MethodDelete, "/app/api/recipes/"+b.recipe.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}
	w = doJSON(t, RecipeResource, nil, http.MethodGet, "/app/api/recipes", nil)
	if list := decodeBody[[]recipeResponse](t, w); len(list) != 0 {
		t.Fatalf("expected no recipes, got %d", len(list))
	}
}
