package handlers

import (
	"net/http"

	"levain/internal/views/pages"
)

// Home renders the notebook index: stored recipes, saved scalings and the import form.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !requireNotebook(w, r) {
		return
	}

	recipes, err := notebook.Recipes.List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "load recipes")
		return
	}
	scalings, err := notebook.Scalings.List(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "load scalings")
		return
	}
	renderPage(w, r, "Baker's notebook", pages.Notebook(pages.BuildNotebook(recipes, scalings)))
}
