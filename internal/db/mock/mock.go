package mock

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "levain/internal/log"
	"levain/internal/store"
	"levain/models"
)

// New returns an in-memory sqlite database seeded with a small bread notebook.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:levain-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Entry{}); err != nil {
		return nil, err
	}

	kv, err := store.NewSQLStore(db)
	if err != nil {
		return nil, err
	}
	st, err := store.New(kv)
	if err != nil {
		return nil, err
	}

	if err := seed(ctx, st); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, st *store.Store) error {
	existing, err := st.Recipes.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		applog.Debug(ctx, "mock database already seeded", "recipes", len(existing))
		return nil
	}

	applog.Debug(ctx, "seeding mock database")

	ids := map[string]string{}
	for _, input := range []store.IngredientInput{
		{Name: "Bread flour", IsFlour: true},
		{Name: "Whole wheat flour", IsFlour: true},
		{Name: "Water"},
		{Name: "Salt"},
		{Name: "Sourdough starter"},
		{Name: "Olive oil"},
		{Name: "Instant yeast"},
	} {
		ingredient, err := st.Ingredients.Create(ctx, input)
		if err != nil {
			return fmt.Errorf("seed ingredient %s: %w", input.Name, err)
		}
		ids[input.Name] = ingredient.ID
	}

	country := store.RecipeInput{
		Name:        "Country sourdough",
		Description: "Levain-leavened loaf with an autolyse and 75% hydration.",
		Ingredients: []models.RecipeIngredient{
			{IngredientID: ids["Bread flour"], Weight: 900},
			{IngredientID: ids["Whole wheat flour"], Weight: 100},
			{IngredientID: ids["Water"], Weight: 750},
			{IngredientID: ids["Salt"], Weight: 20},
		},
		Stages: []models.Stage{
			{
				Name:  "Levain",
				Notes: "Ripen 8-10 hours at 24°C.",
				Ingredients: []models.StageIngredient{
					{IngredientID: ids["Bread flour"], Weight: 100, FromFormula: true},
					{IngredientID: ids["Water"], Weight: 100, FromFormula: true},
					{IngredientID: ids["Sourdough starter"], Weight: 20},
				},
			},
			{
				Name:  "Autolyse",
				Notes: "Rest 45 minutes before adding levain and salt.",
				Ingredients: []models.StageIngredient{
					{IngredientID: ids["Bread flour"], Weight: 800, FromFormula: true},
					{IngredientID: ids["Whole wheat flour"], Weight: 100, FromFormula: true},
					{IngredientID: ids["Water"], Weight: 600, FromFormula: true},
				},
			},
		},
	}

	focaccia := store.RecipeInput{
		Name:        "Same-day focaccia",
		Description: "Straight dough, no preferment.",
		Ingredients: []models.RecipeIngredient{
			{IngredientID: ids["Bread flour"], Weight: 500},
			{IngredientID: ids["Water"], Weight: 400},
			{IngredientID: ids["Salt"], Weight: 12},
			{IngredientID: ids["Olive oil"], Weight: 40},
			{IngredientID: ids["Instant yeast"], Weight: 4},
		},
	}

	for _, input := range []store.RecipeInput{country, focaccia} {
		if _, err := st.Recipes.Create(ctx, input); err != nil {
			return fmt.Errorf("seed recipe %s: %w", input.Name, err)
		}
	}

	return nil
}
