package handlers

import (
	"net/http"

	"levain/internal/views/pages"
)

// RecipeSheet renders the production sheet of a stored recipe at
// /app/recipes/{id}/sheet.
func RecipeSheet(w http.ResponseWriter, r *http.Request) {
	id, ok := sheetID(w, r, "/app/recipes")
	if !ok {
		return
	}
	recipe, dir, ok := loadRecipe(w, r, id)
	if !ok {
		return
	}
	data := pages.BuildRecipeSheet(recipe, dir)
	renderPage(w, r, data.Title, pages.RecipeSheet(data))
}

// ScalingSheet renders a saved scaling at /app/scalings/{id}/sheet.
func ScalingSheet(w http.ResponseWriter, r *http.Request) {
	id, ok := sheetID(w, r, "/app/scalings")
	if !ok {
		return
	}
	scaling, err := notebook.Scalings.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, "load scaling")
		return
	}
	data := pages.BuildScalingSheet(scaling)
	renderPage(w, r, data.Title, pages.ScalingSheet(data))
}

func sheetID(w http.ResponseWriter, r *http.Request, prefix string) (string, bool) {
	if !requireNotebook(w, r) {
		return "", false
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return "", false
	}
	segments := resourcePath(r, prefix)
	if len(segments) != 2 || segments[1] != "sheet" {
		http.NotFound(w, r)
		return "", false
	}
	return segments[0], true
}
