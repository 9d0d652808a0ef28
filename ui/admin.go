package ui

import (
	"encoding/json"
	"log"
	"net/http"

	"titanic/app"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewAdminRouter builds the operator-only router served on the profiling port
func NewAdminRouter(pages *app.PageRegistry) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ok",
			"pages":  pages.Len(),
		}); err != nil {
			log.Printf("[Admin] Error encoding health response: %v", err)
		}
	})
	r.Mount("/debug", middleware.Profiler())

	return r
}
