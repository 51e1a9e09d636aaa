package pages

import (
	"net/url"

	"github.com/a-h/templ"

	"levain/internal/bakermath"
	"levain/models"
)

// NotebookEntry is one recipe line on the notebook index.
type NotebookEntry struct {
	ID          string
	Name        string
	Description string
	TotalWeight float64
	Stages      int
}

// NotebookScaling is one saved scaling on the notebook index.
type NotebookScaling struct {
	ID     string
	Recipe string
	Target float64
	Saved  string
}

type NotebookData struct {
	Recipes  []NotebookEntry
	Scalings []NotebookScaling
}

// BuildNotebook summarises the stored recipes and scalings for the index page.
func BuildNotebook(recipes []models.Recipe, scalings []models.Scaling) NotebookData {
	data := NotebookData{
		Recipes:  make([]NotebookEntry, 0, len(recipes)),
		Scalings: make([]NotebookScaling, 0, len(scalings)),
	}
	for _, recipe := range recipes {
		data.Recipes = append(data.Recipes, NotebookEntry{
			ID:          recipe.ID,
			Name:        recipe.Name,
			Description: recipe.Description,
			TotalWeight: bakermath.TotalWeight(recipe.Ingredients),
			Stages:      len(recipe.Stages),
		})
	}
	for _, scaling := range scalings {
		data.Scalings = append(data.Scalings, NotebookScaling{
			ID:     scaling.ID,
			Recipe: scaling.RecipeName,
			Target: scaling.DesiredWeight,
			Saved:  DefaultDash(FormatSheetDate(scaling.CreatedAt)),
		})
	}
	return data
}

func recipeSheetURL(id string) templ.SafeURL {
	return templ.URL("/app/recipes/" + url.PathEscape(id) + "/sheet")
}

func scalingSheetURL(id string) templ.SafeURL {
	return templ.URL("/app/scalings/" + url.PathEscape(id) + "/sheet")
}
