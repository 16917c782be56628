package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Keyon00/MoonTV/handlers"
)

// corsMiddleware handles CORS for API routes
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Register mounts API endpoints onto the provided router.
func Register(
	r *mux.Router,
	searchHandler *handlers.SearchHandler,
	detailHandler *handlers.DetailHandler,
	sourcesHandler *handlers.SourcesHandler,
	serverHandler *handlers.ServerHandler,
) {
	api := r.PathPrefix("/api").Subrouter()
	api.Use(corsMiddleware)

	api.HandleFunc("/search", searchHandler.Search).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/detail", detailHandler.Detail).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/sources", sourcesHandler.List).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/server", serverHandler.Info).Methods(http.MethodGet, http.MethodOptions)
}
