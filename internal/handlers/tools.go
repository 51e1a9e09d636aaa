package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"levain/internal/importer"
	applog "levain/internal/log"
)

type importResponse struct {
	Recipe             recipeResponse       `json:"recipe"`
	CreatedIngredients []ingredientResponse `json:"created_ingredients"`
	MatchedIngredients int                  `json:"matched_ingredients"`
	Warnings           []string             `json:"warnings"`
}

// ToolsImportRecipe turns pasted text or an uploaded .txt/.pdf into a stored recipe.
// htmx callers are redirected to the new recipe's sheet.
func ToolsImportRecipe(w http.ResponseWriter, r *http.Request) {
	if !requireNotebook(w, r) {
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(importer.MaxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		applog.Debug(r.Context(), "failed to parse recipe import form", "error", err)
		writeJSONError(w, http.StatusBadRequest, "upload is too large or invalid")
		return
	}

	nameHint := strings.TrimSpace(r.FormValue("recipe_name_hint"))
	rawText := strings.TrimSpace(r.FormValue("recipe_text"))

	fileBytes, fileType, err := readRecipeUpload(r)
	if err != nil {
		applog.Debug(r.Context(), "recipe upload read failed", "error", err)
		writeJSONError(w, http.StatusBadRequest, "unable to read the uploaded file")
		return
	}
	if len(fileBytes) > 0 {
		extracted, err := importer.ExtractText(fileBytes, fileType)
		if err != nil {
			applog.Debug(r.Context(), "failed to extract recipe text", "error", err, "mime", fileType)
			writeJSONError(w, http.StatusBadRequest, "the uploaded document could not be read")
			return
		}
		if rawText != "" {
			rawText += "\n\n"
		}
		rawText += extracted
	}

	draft, err := importer.Parse(rawText, nameHint)
	if err != nil {
		writeStoreError(w, r, err, "parse recipe")
		return
	}
	result, err := importer.Import(r.Context(), notebook, draft)
	if err != nil {
		writeStoreError(w, r, err, "import recipe")
		return
	}
	applog.Info(r.Context(), "recipe imported",
		"id", result.Recipe.ID,
		"matched", result.MatchedIngredients,
		"created", len(result.CreatedIngredients),
		"warnings", len(result.Warnings),
	)
	for _, warning := range result.Warnings {
		applog.Warn(r.Context(), "recipe import warning", "id", result.Recipe.ID, "warning", warning)
	}

	dir, err := notebook.Ingredients.Directory(r.Context())
	if err != nil {
		writeStoreError(w, r, err, "load ingredients")
		return
	}
	response := importResponse{
		Recipe:             projectRecipe(result.Recipe, dir),
		CreatedIngredients: make([]ingredientResponse, 0, len(result.CreatedIngredients)),
		MatchedIngredients: result.MatchedIngredients,
		Warnings:           result.Warnings,
	}
	if response.Warnings == nil {
		response.Warnings = []string{}
	}
	for _, item := range result.CreatedIngredients {
		response.CreatedIngredients = append(response.CreatedIngredients, projectIngredient(item))
	}

	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/app/recipes/"+result.Recipe.ID+"/sheet")
	}
	writeJSON(w, http.StatusCreated, response)
}

func readRecipeUpload(r *http.Request) ([]byte, string, error) {
	if r.MultipartForm == nil {
		return nil, "", nil
	}
	file, header, err := r.FormFile("recipe_file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", nil
		}
		return nil, "", err
	}
	defer file.Close()

	if header.Size > importer.MaxUploadSize {
		return nil, "", fmt.Errorf("file exceeds %d bytes", importer.MaxUploadSize)
	}

	buf := bytes.NewBuffer(make([]byte, 0, header.Size))
	if _, err := io.Copy(buf, file); err != nil {
		return nil, "", err
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = importer.MimeTypeFromName(header.Filename)
	}
	return buf.Bytes(), mime, nil
}
