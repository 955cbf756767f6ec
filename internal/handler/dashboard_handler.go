package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safestep/safestep-api/internal/models"
	"github.com/safestep/safestep-api/pkg/response"
)

type dashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// DashboardHandler wires the stats aggregator to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(svc dashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Stats returns the dashboard summary figures.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, response.Fields{"stats": stats})
}
