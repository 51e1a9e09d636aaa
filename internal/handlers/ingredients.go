package handlers

import (
	"net/http"

	applog "levain/internal/log"
	"levain/internal/store"
	"levain/models"
)

type ingredientResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsFlour bool   `json:"is_flour"`
}

type ingredientRequest struct {
	Name    string `json:"name"`
	IsFlour bool   `json:"is_flour"`
}

// IngredientResource handles REST-style interactions for the ingredient directory.
func IngredientResource(w http.ResponseWriter, r *http.Request) {
	if !requireNotebook(w, r) {
		return
	}

	segments := resourcePath(r, "/app/api/ingredients")
	if len(segments) == 0 {
		switch r.Method {
		case http.MethodGet:
			listIngredients(w, r)
		case http.MethodPost:
			createIngredient(w, r)
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
		showIngredient(w, r, id)
	case http.MethodPut:
		updateIngredient(w, r, id)
	case http.MethodDelete:
		deleteIngredient(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func listIngredients(w http.ResponseWriter, r *http.Request) {
	items, err := notebook.Ingredients.List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "load ingredients")
		return
	}
	responses := make([]ingredientResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, projectIngredient(item))
	}
	writeJSON(w, http.StatusOK, responses)
}

func showIngredient(w http.ResponseWriter, r *http.Request, id string) {
	item, err := notebook.Ingredients.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, err, "load ingredient")
		return
	}
	writeJSON(w, http.StatusOK, projectIngredient(item))
}

func createIngredient(w http.ResponseWriter, r *http.Request) {
	var payload ingredientRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	item, err := notebook.Ingredients.Create(r.Context(), store.IngredientInput{Name: payload.Name, IsFlour: payload.IsFlour})
	if err != nil {
		writeStoreError(w, r, err, "create ingredient")
		return
	}
	applog.Info(r.Context(), "ingredient created", "id", item.ID, "flour", item.IsFlour)
	writeJSON(w, http.StatusCreated, projectIngredient(item))
}

func updateIngredient(w http.ResponseWriter, r *http.Request, id string) {
	var payload ingredientRequest
	if !decodeJSON(w, r, &payload) {
		return
	}
	item, err := notebook.Ingredients.Update(r.Context(), id, store.IngredientInput{Name: payload.Name, IsFlour: payload.IsFlour})
	if err != nil {
		writeStoreError(w, r, err, "update ingredient")
		return
	}
	writeJSON(w, http.StatusOK, projectIngredient(item))
}

func deleteIngredient(w http.ResponseWriter, r *http.Request, id string) {
	if err := notebook.Ingredients.Delete(r.Context(), id); err != nil {
		writeStoreError(w, r, err, "delete ingredient")
		return
	}
	applog.Info(r.Context(), "ingredient deleted", "id", id)
	writeDeleted(w, r)
}

// writeDeleted answers a successful delete. htmx swaps need a 200 to remove the row.
func writeDeleted(w http.ResponseWriter, r *http.Request) {
	if isHTMX(r) {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func projectIngredient(item models.Ingredient) ingredientResponse {
	return ingredientResponse{ID: item.ID, Name: item.Name, IsFlour: item.IsFlour}
}
