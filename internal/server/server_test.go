package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"levain/internal/handlers"
	"levain/internal/store"
	"levain/models"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:server-%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
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
	return st
}

func TestNewAppliesSessionDefaults(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	flour, err := st.Ingredients.Create(ctx, store.IngredientInput{Name: "Bread flour", IsFlour: true})
	if err != nil {
		t.Fatalf("create flour: %v", err)
	}
	recipe, err := st.Recipes.Create(ctx, store.RecipeInput{
		Name:        "Plain loaf",
		Ingredients: []models.RecipeIngredient{{IngredientID: flour.ID, Weight: 500}},
	})
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	cfg := Config{Addr: ":8080", Session: SessionConfig{CookieSecure: true}, Store: st}
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	t.Cleanup(func() {
		handlers.Configure(nil, nil)
	})

	if srv.httpServer.Addr != ":8080" {
		t.Fatalf("expected server addr :8080, got %q", srv.httpServer.Addr)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/app/api/recipes/"+recipe.ID+"/scale", strings.NewReader(`{"desired_weight": 1000}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected scale to return 200, got %d: %s", rr.Code, rr.Body.String())
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie to be set")
	}
	if cookies[0].Name != "levain_session" {
		t.Fatalf("expected default session cookie name, got %q", cookies[0].Name)
	}
	if !cookies[0].Secure {
		t.Fatal("expected cookie secure flag to be true")
	}

	// the preview travels with the cookie to the save request
	rr2 := httptest.NewRecorder()
	save := httptest.NewRequest(http.MethodPost, "/app/api/scalings", nil)
	save.AddCookie(cookies[0])
	srv.Handler().ServeHTTP(rr2, save)
	if rr2.Code != http.StatusCreated {
		t.Fatalf("expected saved scaling, got %d: %s", rr2.Code, rr2.Body.String())
	}
	saved, err := st.Scalings.List(ctx)
	if err != nil {
		t.Fatalf("list scalings: %v", err)
	}
	if len(saved) != 1 || saved[0].ScaledIngredients[0].ScaledWeight != 1000 {
		t.Fatalf("unexpected saved scalings %+v", saved)
	}
}

func TestServerHandler(t *testing.T) {
	cfg := Config{Addr: ":9090"}
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		handlers.Configure(nil, nil)
	})

	handler := srv.Handler()
	if handler == nil {
		t.Fatal("expected non-nil handler")
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected /healthz to return 200, got %d", rr.Code)
	}
}
