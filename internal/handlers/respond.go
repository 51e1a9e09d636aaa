package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"levain/internal/importer"
	applog "levain/internal/log"
	"levain/internal/store"
	"levain/internal/views/layout"
	"levain/internal/views/theme"
)

const maxJSONBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		applog.Debug(r.Context(), "invalid request payload", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}

// requireNotebook reports whether storage is configured, answering 503 otherwise.
func requireNotebook(w http.ResponseWriter, r *http.Request) bool {
	if notebook == nil {
		applog.Debug(r.Context(), "request without configured storage", "path", r.URL.Path)
		writeJSONError(w, http.StatusServiceUnavailable, "storage is not configured")
		return false
	}
	return true
}

// writeStoreError maps storage and validation failures onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		applog.Debug(r.Context(), "record not found", "path", r.URL.Path)
		writeJSONError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrInvalidName),
		errors.Is(err, store.ErrInvalidWeight),
		errors.Is(err, store.ErrUnknownIngredient),
		errors.Is(err, importer.ErrNoIngredients),
		errors.Is(err, importer.ErrEmptyDocument):
		applog.Debug(r.Context(), "rejected request", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusBadRequest, userMessage(err))
	case errors.Is(err, store.ErrIngredientInUse):
		applog.Debug(r.Context(), "ingredient still referenced", "path", r.URL.Path)
		writeJSONError(w, http.StatusConflict, userMessage(err))
	default:
		applog.Error(r.Context(), "failed to "+action, "error", err, "path", r.URL.Path)
		writeJSONError(w, http.StatusInternalServerError, "unable to "+action)
	}
}

// userMessage strips the package prefix from sentinel error text.
func userMessage(err error) string {
	message := err.Error()
	for _, prefix := range []string{"store: ", "importer: "} {
		message = strings.TrimPrefix(message, prefix)
	}
	return message
}

func renderComponent(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render page", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// renderPage wraps content in the document layout unless the request came from htmx,
// which only needs the fragment.
func renderPage(w http.ResponseWriter, r *http.Request, title string, content templ.Component) {
	if isHTMX(r) {
		renderComponent(w, r, content)
		return
	}
	renderComponent(w, r, layout.Layout(title, theme.Resolve(r.URL.Query().Get("theme")), content))
}

// resourcePath splits the path below prefix into its segments.
func resourcePath(r *http.Request, prefix string) []string {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
