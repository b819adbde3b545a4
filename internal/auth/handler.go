package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type shareRequest struct {
	DisplayName string `json:"displayName"`
}

type shareResponse struct {
	Token     string `json:"token"`
	ProjectID string `json:"projectId"`
}

// Share issues a new token for the project of the caller's token, so a
// collaborator can join under their own name.
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	grant := GrantFromContext(r.Context())
	if grant == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing token"})
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.DisplayName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "displayName is required"})
		return
	}

	token, err := h.service.IssueToken(grant.ProjectID, req.DisplayName)
	if err != nil {
		slog.Error("issue token failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusCreated, shareResponse{Token: token, ProjectID: grant.ProjectID})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
