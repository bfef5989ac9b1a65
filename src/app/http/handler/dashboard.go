package handler

import (
	"github.com/gin-gonic/gin"

	"inventory/src/app/http/response"
	"inventory/src/core/usecase"
)

// DashboardHandler handles the inventory statistics endpoints.
type DashboardHandler struct {
	uc *usecase.Handlers
}

func NewDashboardHandler(uc *usecase.Handlers) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats returns the headline figures.
// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	out, err := h.uc.GetDashboardStats.Handle(c.Request.Context(), usecase.GetDashboardStatsQuery{})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, out)
}

// ProductsByCategory returns the per-category breakdown.
// GET /api/dashboard/products-by-category
func (h *DashboardHandler) ProductsByCategory(c *gin.Context) {
	out, err := h.uc.GetProductsByCategoryStats.Handle(c.Request.Context(), usecase.GetProductsByCategoryStatsQuery{})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, out)
}
