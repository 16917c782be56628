package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Keyon00/MoonTV/config"
)

type sourceLister interface {
	Sources() []config.SourceConfig
}

// SourcesHandler exposes the configured upstream providers.
type SourcesHandler struct {
	Service sourceLister
}

func NewSourcesHandler(svc sourceLister) *SourcesHandler {
	return &SourcesHandler{Service: svc}
}

type sourceInfo struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	HasDetail bool   `json:"has_detail"`
}

func (h *SourcesHandler) List(w http.ResponseWriter, r *http.Request) {
	sources := h.Service.Sources()
	out := make([]sourceInfo, 0, len(sources))
	for _, src := range sources {
		out = append(out, sourceInfo{
			Key:       src.Key,
			Name:      src.Name,
			HasDetail: src.Detail != "",
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
