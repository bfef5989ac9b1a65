package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/src/core/usecase"
)

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	h := newHandlers(t)
	electronics := createCategory(t, h, "Electronics")
	createCategory(t, h, "Books")
	createProduct(t, h, "Headphones", "129.99", electronics.ID, 3)
	createProduct(t, h, "Speaker", "59.00", electronics.ID, 10)

	stats, err := h.GetDashboardStats.Handle(ctx, usecase.GetDashboardStatsQuery{})
	require.NoError(t, err)
	assert.Equal(t, usecase.DashboardStats{
		TotalProducts:        2,
		TotalStockValue:      979.97,
		LowStockProductCount: 1,
		TotalCategories:      2,
	}, *stats)

	rows, err := h.GetProductsByCategoryStats.Handle(ctx, usecase.GetProductsByCategoryStatsQuery{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	byName := map[string]usecase.CategoryStats{}
	for _, r := range rows {
		byName[r.CategoryName] = r
	}
	assert.Equal(t, 0, byName["Books"].ProductCount)
	assert.Equal(t, 2, byName["Electronics"].ProductCount)
	assert.Equal(t, 979.97, byName["Electronics"].TotalValue)
}
