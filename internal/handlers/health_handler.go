package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jenny-yujl/marketingTrain/internal/interfaces"
)

type StorageHealth struct {
	Backend string `json:"backend"`
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Storage StorageHealth `json:"storage"`
}

type HealthHandler struct {
	*BaseHandler
	store   interfaces.Storage
	timeout time.Duration
}

func NewHealthHandler(base *BaseHandler, store interfaces.Storage) *HealthHandler {
	return &HealthHandler{BaseHandler: base, store: store, timeout: 2 * time.Second}
}

// Health handles GET /health
// @Tags Health
// @Summary Service and storage health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:  "ok",
		Storage: StorageHealth{Backend: h.store.Backend(), Status: "up"},
	}
	if err := h.store.Ping(ctx); err != nil {
		h.Logger.Warn("storage health check failed", zap.String("backend", resp.Storage.Backend), zap.Error(err))
		resp.Status = "degraded"
		resp.Storage.Status = "down"
		resp.Storage.Error = "storage unreachable"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
