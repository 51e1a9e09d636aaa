package server

import (
	"context"
	"net/http"

	"levain/internal/handlers"
	applog "levain/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")

	mux.HandleFunc("/app/api/ingredients", handlers.IngredientResource)
	mux.HandleFunc("/app/api/ingredients/", handlers.IngredientResource)
	applog.Debug(context.Background(), "route registered", "path", "/app/api/ingredients")
	mux.HandleFunc("/app/api/recipes", handlers.RecipeResource)
	mux.HandleFunc("/app/api/recipes/", handlers.RecipeResource)
	applog.Debug(context.Background(), "route registered", "path", "/app/api/recipes")
	mux.HandleFunc("/app/api/scalings", handlers.ScalingResource)
	mux.HandleFunc("/app/api/scalings/", handlers.ScalingResource)
	applog.Debug(context.Background(), "route registered", "path", "/app/api/scalings")
	mux.HandleFunc("/app/api/recalculate/", handlers.Recalculate)
	applog.Debug(context.Background(), "route registered", "path", "/app/api/recalculate/")

	mux.HandleFunc("/app/recipes/", handlers.RecipeSheet)
	mux.HandleFunc("/app/scalings/", handlers.ScalingSheet)
	applog.Debug(context.Background(), "route registered", "path", "/app/{recipes,scalings}/{id}/sheet", "html", true)
	mux.HandleFunc("/app/tools/import", handlers.ToolsImportRecipe)
	applog.Debug(context.Background(), "route registered", "path", "/app/tools/import")

	mux.HandleFunc("/", handlers.Home)
	applog.Debug(context.Background(), "route registered", "path", "/")
	return mux
}
