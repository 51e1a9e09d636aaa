package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"levain/internal/bakermath"
	"levain/models"
)

func sheetDirectory() bakermath.IngredientDirectory {
	return bakermath.NewDirectory([]models.Ingredient{
		{ID: "flour", Name: "Bread flour", IsFlour: true},
		{ID: "water", Name: "Water"},
		{ID: "salt", Name: "Salt"},
		{ID: "starter", Name: "Starter"},
	})
}

func levainLoaf() models.Recipe {
	return models.Recipe{
		Name: "Country loaf",
		Ingredients: []models.RecipeIngredient{
			{IngredientID: "flour", Weight: 1000},
			{IngredientID: "water", Weight: 700},
			{IngredientID: "salt", Weight: 20},
		},
		Stages: []models.Stage{
			{
				ID:   "levain",
				Name: "Levain",
				Ingredients: []models.StageIngredient{
					{IngredientID: "flour", Weight: 100, FromFormula: true},
					{IngredientID: "water", Weight: 100, FromFormula: true},
					{IngredientID: "starter", Weight: 20},
				},
			},
			{ID: "bulk", Name: "Bulk"},
		},
	}
}

func TestBuildRecipeSheetStageCards(t *testing.T) {
	t.Parallel()

	data := BuildRecipeSheet(levainLoaf(), sheetDirectory())
	if len(data.Stages) != 2 {
		t.Fatalf("len(Stages) = %d, want 2", len(data.Stages))
	}

	levain := data.Stages[0]
	if levain.Eyebrow != "Stage 1" || levain.Title != "Levain" {
		t.Fatalf("levain header = %q / %q", levain.Eyebrow, levain.Title)
	}
	// three ingredient rows plus the stage total
	if len(levain.Rows) != 4 {
		t.Fatalf("len(levain.Rows) = %d, want 4", len(levain.Rows))
	}
	if levain.Rows[0].Percent != "10.0%" || levain.Rows[0].Note != "900g" {
		t.Fatalf("flour row = %+v, want 10.0%% and 900g available", levain.Rows[0])
	}
	if levain.Rows[1].Percent != "100.0%" {
		t.Fatalf("water row percent = %q, want 100.0%%", levain.Rows[1].Percent)
	}
	if levain.Rows[2].Note != "" || levain.Rows[2].Badges[0] != extraBadge {
		t.Fatalf("starter row = %+v, want untracked extra", levain.Rows[2])
	}
	if total := levain.Rows[3]; total.Label != "Stage total" || total.Weight != "220" {
		t.Fatalf("levain total row = %+v", total)
	}
	if !strings.Contains(levain.Legend, "extra") {
		t.Fatalf("expected extras legend, got %q", levain.Legend)
	}

	if len(data.Stages[1].Rows) != 0 {
		t.Fatalf("process-only stage rows = %+v, want none", data.Stages[1].Rows)
	}

	if data.FinalMix == nil {
		t.Fatal("expected a final mix card")
	}
	rows := data.FinalMix.Rows
	if rows[0].Label != "Bulk (carry-in)" || rows[0].Weight != "200" {
		t.Fatalf("carry-in row = %+v", rows[0])
	}
	if rows[1].Label != "Bread flour" || rows[1].Percent != "90.0%" {
		t.Fatalf("final flour row = %+v, want 90.0%% of formula flour", rows[1])
	}
	if rows[2].Label != "Water" || rows[2].Percent != "66.7%" {
		t.Fatalf("final water row = %+v, want 66.7%% of final mix flour", rows[2])
	}
	if last := rows[len(rows)-1]; last.Weight != "1720" {
		t.Fatalf("total dough weight = %q, want 1720", last.Weight)
	}
}

func TestBuildRecipeSheetFlagsOverAllocation(t *testing.T) {
	t.Parallel()

	recipe := levainLoaf()
	recipe.Stages[0].Ingredients[1].Weight = 800
	data := BuildRecipeSheet(recipe, sheetDirectory())

	water := data.Stages[0].Rows[1]
	if !water.Warn || water.Note != "−100g!" {
		t.Fatalf("water row = %+v, want over-allocation warning", water)
	}
	found := false
	for _, stat := range data.Stats {
		if stat.Warn && stat.Label == "Over-allocated Water" && stat.Value == "+100 g" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected over-allocation stat in %+v", data.Stats)
	}
}

func TestBuildRecipeSheetCumulativeTotals(t *testing.T) {
	t.Parallel()

	recipe := levainLoaf()
	recipe.Stages[1].Ingredients = []models.StageIngredient{{IngredientID: "water", Weight: 50, FromFormula: true}}
	data := BuildRecipeSheet(recipe, sheetDirectory())

	rows := data.Stages[1].Rows
	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, want ingredient plus three total rows", len(rows))
	}
	if rows[2].Weight != "200" || rows[3].Weight != "250" || rows[3].Label != "Cumulative dough weight" {
		t.Fatalf("total rows = %+v", rows[1:])
	}
}

func TestRecipeSheetRenders(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := RecipeSheet(BuildRecipeSheet(levainLoaf(), sheetDirectory())).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render recipe sheet: %v", err)
	}
	out := buf.String()
	for _, token := range []string{"<h1>Country loaf</h1>", "Overall formula", "Levain", "Final Mix", "Total dough weight"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected output to contain %q", token)
		}
	}
}

func TestBuildScalingSheet(t *testing.T) {
	t.Parallel()

	recipe := levainLoaf()
	result := bakermath.Scale(recipe, 860, sheetDirectory())
	scaling := models.Scaling{
		RecipeName:        recipe.Name,
		DesiredWeight:     860,
		ScaledIngredients: result.Ingredients,
		ScaledStages:      result.Stages,
		CreatedAt:         time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}

	data := BuildScalingSheet(scaling)
	if data.Title != "Country loaf scaled to 860 g" {
		t.Fatalf("Title = %q", data.Title)
	}
	if data.Stats[2].Value != "0 g" || data.Stats[2].Warn {
		t.Fatalf("difference stat = %+v, want exact", data.Stats[2])
	}
	if got := data.Formula.Rows[0].Weight; got != "500" {
		t.Fatalf("scaled flour = %q, want 500", got)
	}
	if len(data.Stages) != 2 {
		t.Fatalf("len(Stages) = %d, want 2", len(data.Stages))
	}
	if got := data.Stages[0].Rows[0].Weight; got != "50" {
		t.Fatalf("scaled levain flour = %q, want 50", got)
	}
	if len(data.Stages[1].Rows) != 0 {
		t.Fatalf("scaled process stage rows = %+v, want none", data.Stages[1].Rows)
	}

	var buf bytes.Buffer
	if err := ScalingSheet(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render scaling sheet: %v", err)
	}
	if !strings.Contains(buf.String(), "Scaled formula") {
		t.Fatalf("expected scaled formula card: %s", buf.String())
	}
}

func TestNotebookListsRecipesAndScalings(t *testing.T) {
	t.Parallel()

	recipe := levainLoaf()
	recipe.ID = "loaf"
	data := BuildNotebook([]models.Recipe{recipe}, []models.Scaling{{
		ID:            "s1",
		RecipeName:    "Country loaf",
		DesiredWeight: 1800,
		CreatedAt:     time.Date(2025, 3, 4, 9, 30, 0, 0, time.UTC),
	}})
	if got := data.Recipes[0].TotalWeight; got != 1720 {
		t.Fatalf("TotalWeight = %v, want 1720", got)
	}

	var buf bytes.Buffer
	if err := Notebook(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render notebook: %v", err)
	}
	html := buf.String()
	for _, want := range []string{`/app/recipes/loaf/sheet`, `/app/scalings/s1/sheet`, "04 Mar 2025 09:30", `name="recipe_text"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("notebook html missing %q", want)
		}
	}
}

func TestNotebookEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Notebook(BuildNotebook(nil, nil)).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render notebook: %v", err)
	}
	if !strings.Contains(buf.String(), "No recipes yet") {
		t.Fatal("expected empty notebook message")
	}
	if strings.Contains(buf.String(), "Saved scalings") {
		t.Fatal("did not expect a scalings section")
	}
}
