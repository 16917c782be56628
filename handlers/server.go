package handlers

import (
	"encoding/json"
	"net/http"
)

// ServerVersion is stamped at build time via -ldflags.
var ServerVersion = "dev"

// ServerHandler answers the banner endpoint clients use to probe the API.
type ServerHandler struct{}

func NewServerHandler() *ServerHandler {
	return &ServerHandler{}
}

func (h *ServerHandler) Info(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"name":    "MoonTV",
		"version": ServerVersion,
	})
}
