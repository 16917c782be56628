package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Keyon00/MoonTV/config"
	"github.com/Keyon00/MoonTV/models"
	"github.com/Keyon00/MoonTV/services/videoapi"
)

type detailService interface {
	Detail(ctx context.Context, source config.SourceConfig, id string) (models.SearchResult, error)
	Source(key string) (config.SourceConfig, bool)
}

var _ detailService = (*videoapi.Service)(nil)

// DetailHandler serves single-title detail lookups.
type DetailHandler struct {
	Service detailService
}

func NewDetailHandler(svc detailService) *DetailHandler {
	return &DetailHandler{Service: svc}
}

func (h *DetailHandler) Detail(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.URL.Query().Get("source"))
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if key == "" || id == "" {
		writeError(w, http.StatusBadRequest, "missing source or id parameter")
		return
	}

	source, ok := h.Service.Source(key)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown source: "+key)
		return
	}

	result, err := h.Service.Detail(r.Context(), source, id)
	if err != nil {
		status := classifyDetailError(err)
		log.Printf("[detail] %s/%s failed: %v", key, id, err)
		writeError(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// classifyDetailError maps the detail error taxonomy onto HTTP statuses:
// upstream refusals and unusable payloads are 502, expired deadlines 504.
func classifyDetailError(err error) int {
	var reqErr *videoapi.RequestFailedError
	if errors.As(err, &reqErr) {
		return http.StatusBadGateway
	}
	var payloadErr *videoapi.InvalidPayloadError
	if errors.As(err, &payloadErr) {
		return http.StatusBadGateway
	}
	if videoapi.IsTimeout(err) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}
