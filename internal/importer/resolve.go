package importer

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"levain/internal/store"
	"levain/models"
)

// Result reports what an import created.
type Result struct {
	Recipe             models.Recipe
	CreatedIngredients []models.Ingredient
	MatchedIngredients int
	Warnings           []string
}

// Import matches each draft line against the ingredient directory, creates the
// ingredients it cannot find and stores the draft as a new recipe. Repeated lines for
// the same ingredient are summed.
func Import(ctx context.Context, st *store.Store, draft Draft) (Result, error) {
	if len(draft.Lines) == 0 {
		return Result{}, ErrNoIngredients
	}

	existing, err := st.Ingredients.List(ctx)
	if err != nil {
		return Result{}, err
	}
	recipes, err := st.Recipes.List(ctx)
	if err != nil {
		return Result{}, err
	}

	var result Result
	known := make([]models.Ingredient, len(existing))
	copy(known, existing)

	var formula []models.RecipeIngredient
	positions := map[string]int{}
	for _, line := range draft.Lines {
		ingredient, ok, fuzzy := matchIngredient(known, line.Name)
		if ok {
			result.MatchedIngredients++
			if fuzzy {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%q was matched to %q by a near spelling.", line.Name, ingredient.Name))
			}
			if line.IsFlour != ingredient.IsFlour {
				result.Warnings = append(result.Warnings, fmt.Sprintf("%q matched %q, whose flour flag was kept.", line.Name, ingredient.Name))
			}
		} else {
			ingredient, err = st.Ingredients.Create(ctx, store.IngredientInput{Name: line.Name, IsFlour: line.IsFlour})
			if err != nil {
				return Result{}, fmt.Errorf("create ingredient %q: %w", line.Name, err)
			}
			known = append(known, ingredient)
			result.CreatedIngredients = append(result.CreatedIngredients, ingredient)
		}

		if pos, seen := positions[ingredient.ID]; seen {
			formula[pos].Weight += line.Grams
			continue
		}
		positions[ingredient.ID] = len(formula)
		formula = append(formula, models.RecipeIngredient{IngredientID: ingredient.ID, Weight: line.Grams})
	}

	for _, skipped := range draft.Skipped {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Skipped %q.", skipped))
	}

	recipe, err := st.Recipes.Create(ctx, store.RecipeInput{
		Name:        determineRecipeName(recipes, draft.Name),
		Description: draft.Description,
		Ingredients: formula,
	})
	if err != nil {
		return Result{}, fmt.Errorf("create recipe: %w", err)
	}
	result.Recipe = recipe
	return result, nil
}

func determineRecipeName(existing []models.Recipe, requested string) string {
	trimmed := strings.TrimSpace(requested)
	if trimmed == "" {
		trimmed = "Imported recipe"
	}
	taken := make(map[string]struct{}, len(existing))
	for _, recipe := range existing {
		taken[strings.ToLower(strings.TrimSpace(recipe.Name))] = struct{}{}
	}
	if _, ok := taken[strings.ToLower(trimmed)]; !ok {
		return trimmed
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", trimmed, n)
		if _, ok := taken[strings.ToLower(candidate)]; !ok {
			return candidate
		}
	}
}

// matchIngredient looks the name up by its normalized form first. The boolean
// result reports whether a match was found, and fuzzy is set when it was only a
// near spelling.
func matchIngredient(known []models.Ingredient, name string) (ingredient models.Ingredient, ok, fuzzy bool) {
	target := normalizeIngredientName(name)
	if target == "" {
		return models.Ingredient{}, false, false
	}
	for _, candidate := range known {
		if normalizeIngredientName(candidate.Name) == target {
			return candidate, true, false
		}
	}
	for _, candidate := range known {
		if similarName(normalizeIngredientName(candidate.Name), target) {
			return candidate, true, true
		}
	}
	return models.Ingredient{}, false, false
}

func normalizeIngredientName(value string) string {
	var builder strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

const (
	minFuzzyNameLength  = 6
	longFuzzyNameLength = 12
)

// similarName tolerates a single typo in names of six or more letters and two in
// names of twelve or more. Both names must start with the same letter.
func similarName(a, b string) bool {
	if a == b {
		return true
	}
	ra, rb := []rune(a), []rune(b)
	shorter := min(len(ra), len(rb))
	if shorter < minFuzzyNameLength || ra[0] != rb[0] {
		return false
	}
	limit := 1
	if shorter >= longFuzzyNameLength {
		limit = 2
	}
	return levenshtein.ComputeDistance(a, b) <= limit
}
