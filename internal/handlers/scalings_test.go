package handlers

import (
	"net/http"
	"testing"
)

func TestScaleThenSaveScaling(t *testing.T) {
	st, cleanup := withTestNotebook(t)
	t.Cleanup(cleanup)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)
	b := seedBakery(t, st)

	ctx := sessionContext(t, sm)
	w := doJSON(t, RecipeResource, ctx, http.MethodPost, "/app/api/recipes/"+b.recipe.ID+"/scale", scaleRequest{DesiredWeight: 860})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	preview := decodeBody[scalingResponse](t, w)
	if preview.ID != "" {
		t.Fatalf("expected an unsaved preview, got id %q", preview.ID)
	}
	if preview.ActualWeight != 860 || preview.Drift != 0 {
		t.Fatalf("unexpected totals actual=%v drift=%v", preview.ActualWeight, preview.Drift)
	}
	if got := preview.Ingredients[0].ScaledWeight; got != 500 {
		t.Fatalf("scaled flour = %v, want 500", got)
	}
	if len(preview.Stages) != 2 {
		t.Fatalf("expected 2 scaled stages, got %d", len(preview.Stages))
	}
	if got := preview.Stages[0].Ingredients[2].ScaledWeight; got != 10 {
		t.Fatalf("scaled starter = %v, want 10", got)
	}
	if preview.Stages[1].CarryIn != 100 || preview.FinalCarryIn != 800 {
		t.Fatalf("unexpected scaled carry-ins %v / %v", preview.Stages[1].CarryIn, preview.FinalCarryIn)
	}
	if sm.GetString(ctx, sessionScalingPreviewKey) == "" {
		t.Fatal("expected preview stored in session")
	}

	w = doJSON(t, ScalingResource, ctx, http.MethodPost, "/app/api/scalings", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	saved := decodeBody[scalingResponse](t, w)
	if saved.ID == "" || saved.CreatedAt == nil || saved.RecipeName != "Country loaf" {
		t.Fatalf("unexpected saved scaling %+v", saved)
	}
	if sm.GetString(ctx, sessionScalingPreviewKey) != "" {
		t.Fatal("expected preview cleared after save")
	}

	w = doJSON(t, ScalingResource, ctx, http.MethodPost, "/app/api/scalings", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 on second save, got %d", w.Code)
	}

	w = doJSON(t, ScalingResource, nil, http.MethodGet, "/app/api/scalings?recipe_id="+b.recipe.ID, nil)
	if list := decodeBody[[]scalingResponse](t, w); len(list) != 1 || list[0].ID != saved.ID {
		t.Fatalf("unexpected scalings for recipe %+v", list)
	}
	w = doJSON(t, ScalingResource, nil, http.MethodGet, "/app/api/scalings?recipe_id=other", nil)
	if list := decodeBody[[]scalingResponse](t, w); len(list) != 0 {
		t.Fatalf("expected no scalings for other recipe, got %d", len(list))
	}

	w = doJSON(t, ScalingResource, nil, http.MethodGet, "/app/api/scalings/"+saved.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	w = doJSON(t, ScalingResource, nil, http.MethodDelete, "/app/api/scalings/"+saved.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}
	w = doJSON(t, ScalingResource, nil, http.MethodGet, "/app/api/scalings/"+saved.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", w.Code)
	}
}

func TestScaleRejects(t *testing.T) {
	st, cleanup := withTestNotebook(t)
	t.Cleanup(cleanup)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)
	b := seedBakery(t, st)

	tests := []struct {
		name string
		path string
		body scaleRequest
		want int
	}{
		{name: "zero target", path: "/app/api/recipes/" + b.recipe.ID + "/scale", body: scaleRequest{}, want: http.StatusBadRequest},
		{name: "negative target", path: "/app/api/recipes/" + b.recipe.ID + "/scale", body: scaleRequest{DesiredWeight: -5}, want: http.StatusBadRequest},
		{name: "unknown recipe", path: "/app/api/recipes/missing/scale", body: scaleRequest{DesiredWeight: 500}, want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, RecipeResource, sessionContext(t, sm), http.MethodPost, tt.path, tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestScaleWithoutFlourIsEmpty(t *testing.T) {
	st, cleanup := withTestNotebook(t)
	t.Cleanup(cleanup)
	sm, cleanupSession := withTestSessionManager(t)
	t.Cleanup(cleanupSession)
	b := seedBakery(t, st)

	w := doJSON(t, RecipeResource, nil, http.MethodPost, "/app/api/recipes", recipeRequest{
		Name:        "Brine",
		Ingredients: []recipeIngredientPayload{{IngredientID: b.water.ID, Weight: 1000}, {IngredientID: b.salt.ID, Weight: 50}},
	})
	brine := decodeBody[recipeResponse](t, w)

	w = doJSON(t, RecipeResource, sessionContext(t, sm), http.MethodPost, "/app/api/recipes/"+brine.ID+"/scale", scaleRequest{DesiredWeight: 500})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if preview := decodeBody[scalingResponse](t, w); len(preview.Ingredients) != 0 || preview.ActualWeight != 0 {
		t.Fatalf("expected empty scaling without flour, got %+v", preview)
	}
}
