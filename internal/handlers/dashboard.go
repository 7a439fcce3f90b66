package handlers

import (
	"net/http"

	"github.com/arahmani/freelance-ops/internal/auth"
	"github.com/arahmani/freelance-ops/internal/httpx"
	"github.com/arahmani/freelance-ops/internal/services"
)

type DashboardHandler struct {
	Svc *services.DashboardService
}

func NewDashboardHandler(svc *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Svc: svc}
}

// Summary: GET /api/dashboard/summary
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	summary, err := h.Svc.Summary(r.Context(), userID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, "Dashboard stats retrieved successfully", summary)
}
