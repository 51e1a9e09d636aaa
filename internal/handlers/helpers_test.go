package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"levain/internal/store"
	"levain/models"
)

func withTestSessionManager(t *testing.T) (*scs.SessionManager, func()) {
	t.Helper()
	original := sessionManager
	sm := scs.New()
	sessionManager = sm
	return sm, func() {
		sessionManager = original
	}
}

func withTestNotebook(t *testing.T) (*store.Store, func()) {
	t.Helper()
	original := notebook

	dsn := fmt.Sprintf("file:handlers-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := db.AutoMigrate(&models.Entry{}); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	kv, err := store.NewSQLStore(db)
	if err != nil {
		t.Fatalf("NewSQLStore: %v", err)
	}
	st, err := store.New(kv)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	notebook = st
	return st, func() {
		notebook = original
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

func sessionContext(t *testing.T, sm *scs.SessionManager) context.Context {
	t.Helper()
	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("failed to load session context: %v", err)
	}
	return ctx
}

func doJSON(t *testing.T, handler http.HandlerFunc, ctx context.Context, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if ctx != nil {
		req = req.WithContext(ctx)
	}
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

type bakery struct {
	flour, water, salt, starter models.Ingredient
	recipe                      models.Recipe
}

// seedBakery stores a country loaf with a levain and an autolyse stage.
func seedBakery(t *testing.T, st *store.Store) bakery {
	t.Helper()
	ctx := context.Background()

	create := func(name string, flour bool) models.Ingredient {
		item, err := st.Ingredients.Create(ctx, store.IngredientInput{Name: name, IsFlour: flour})
		if err != nil {
			t.Fatalf("create ingredient %s: %v", name, err)
		}
		return item
	}
	b := bakery{
		flour:   create("Bread flour", true),
		water:   create("Water", false),
		salt:    create("Salt", false),
		starter: create("Starter", false),
	}

	recipe, err := st.Recipes.Create(ctx, store.RecipeInput{
		Name: "Country loaf",
		Ingredients: []models.RecipeIngredient{
			{IngredientID: b.flour.ID, Weight: 1000},
			{IngredientID: b.water.ID, Weight: 700},
			{IngredientID: b.salt.ID, Weight: 20},
		},
		Stages: []models.Stage{
			{
				Name: "Levain",
				Ingredients: []models.StageIngredient{
					{IngredientID: b.flour.ID, Weight: 100, FromFormula: true},
					{IngredientID: b.water.ID, Weight: 100, FromFormula: true},
					{IngredientID: b.starter.ID, Weight: 20},
				},
			},
			{
				Name: "Autolyse",
				Ingredients: []models.StageIngredient{
					{IngredientID: b.flour.ID, Weight: 900, FromFormula: true},
					{IngredientID: b.water.ID, Weight: 500, FromFormula: true},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	b.recipe = recipe
	return b
}
