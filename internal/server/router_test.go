package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"levain/internal/handlers"
)

func TestNewRouterRoutes(t *testing.T) {
	handlers.Configure(nil, nil)

	router := newRouter()
	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{name: "health", method: http.MethodGet, path: "/healthz", want: http.StatusOK},
		{name: "ingredients without storage", method: http.MethodGet, path: "/app/api/ingredients", want: http.StatusServiceUnavailable},
		{name: "recipe without storage", method: http.MethodGet, path: "/app/api/recipes/abc", want: http.StatusServiceUnavailable},
		{name: "scalings without storage", method: http.MethodGet, path: "/app/api/scalings", want: http.StatusServiceUnavailable},
		{name: "sheet without storage", method: http.MethodGet, path: "/app/recipes/abc/sheet", want: http.StatusServiceUnavailable},
		{name: "unknown page", method: http.MethodGet, path: "/nope", want: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			if rr.Code != tt.want {
				t.Fatalf("%s %s = %d, want %d", tt.method, tt.path, rr.Code, tt.want)
			}
		})
	}
}
