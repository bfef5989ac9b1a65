package usecase

import (
	"context"

	"inventory/src/core/ports"
)

// GetDashboardStatsQuery asks for the headline inventory figures.
type GetDashboardStatsQuery struct{}

// GetProductsByCategoryStatsQuery asks for the per-category breakdown.
type GetProductsByCategoryStatsQuery struct{}

// GetDashboardStatsHandler handles GetDashboardStatsQuery.
type GetDashboardStatsHandler struct {
	dashboard ports.DashboardReader
}

// NewGetDashboardStatsHandler creates a new GetDashboardStatsHandler.
func NewGetDashboardStatsHandler(dashboard ports.DashboardReader) *GetDashboardStatsHandler {
	return &GetDashboardStatsHandler{dashboard: dashboard}
}

func (h *GetDashboardStatsHandler) Handle(ctx context.Context, _ GetDashboardStatsQuery) (*DashboardStats, error) {
	products, err := h.dashboard.TotalProducts(ctx)
	if err != nil {
		return nil, err
	}
	value, err := h.dashboard.TotalStockValue(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := h.dashboard.LowStockProductCount(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := h.dashboard.TotalCategories(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalProducts:        products,
		TotalStockValue:      amount(value),
		LowStockProductCount: lowStock,
		TotalCategories:      categories,
	}, nil
}

// GetProductsByCategoryStatsHandler handles GetProductsByCategoryStatsQuery.
type GetProductsByCategoryStatsHandler struct {
	dashboard ports.DashboardReader
}

// NewGetProductsByCategoryStatsHandler creates a new GetProductsByCategoryStatsHandler.
func NewGetProductsByCategoryStatsHandler(dashboard ports.DashboardReader) *GetProductsByCategoryStatsHandler {
	return &GetProductsByCategoryStatsHandler{dashboard: dashboard}
}

func (h *GetProductsByCategoryStatsHandler) Handle(ctx context.Context, _ GetProductsByCategoryStatsQuery) ([]CategoryStats, error) {
	rows, err := h.dashboard.ProductsByCategory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryStats, 0, len(rows))
	for _, r := range rows {
		out = append(out, toCategoryStats(r))
	}
	return out, nil
}
