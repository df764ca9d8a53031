package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/CardioRisk/internal/assessment"
	"github.com/MikeSquared-Agency/CardioRisk/internal/store"
)

type AdminHandler struct {
	pipeline *assessment.Pipeline
	store    store.Store
}

func NewAdminHandler(p *assessment.Pipeline, s store.Store) *AdminHandler {
	return &AdminHandler{pipeline: p, store: s}
}

type ModelInfo struct {
	ModelID  string   `json:"model_id"`
	Features []string `json:"features"`
}

type StatsResponse struct {
	Model        ModelInfo    `json:"model"`
	AuditEnabled bool         `json:"audit_enabled"`
	Assessments  *store.Stats `json:"assessments,omitempty"`
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{
		Model: ModelInfo{
			ModelID:  h.pipeline.ModelID(),
			Features: h.pipeline.Manifest().Names(),
		},
		AuditEnabled: h.store != nil,
	}
	if h.store != nil {
		stats, err := h.store.GetStats(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		resp.Assessments = stats
	}
	writeJSON(w, http.StatusOK, resp)
}
