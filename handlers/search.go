package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Keyon00/MoonTV/config"
	"github.com/Keyon00/MoonTV/models"
	"github.com/Keyon00/MoonTV/services/videoapi"
	"github.com/Keyon00/MoonTV/utils/filter"
)

type searchService interface {
	Search(ctx context.Context, source config.SourceConfig, query string) []models.SearchResult
	SearchAll(ctx context.Context, query string) []models.SearchResult
	Source(key string) (config.SourceConfig, bool)
}

var _ searchService = (*videoapi.Service)(nil)

// SearchHandler serves aggregate and per-source search requests.
type SearchHandler struct {
	Service       searchService
	FilterOptions filter.Options
}

func NewSearchHandler(svc searchService, filterOpts filter.Options) *SearchHandler {
	return &SearchHandler{Service: svc, FilterOptions: filterOpts}
}

type searchResponse struct {
	Results []models.SearchResult `json:"results"`
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}

	var results []models.SearchResult
	if key := strings.TrimSpace(r.URL.Query().Get("source")); key != "" {
		source, ok := h.Service.Source(key)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown source: "+key)
			return
		}
		results = h.Service.Search(r.Context(), source, query)
	} else {
		results = h.Service.SearchAll(r.Context(), query)
	}

	results = filter.Results(results, h.FilterOptions)
	if results == nil {
		results = []models.SearchResult{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(searchResponse{Results: results})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
