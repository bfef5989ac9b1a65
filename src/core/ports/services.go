package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryBreakdown aggregates the products of one category.
type CategoryBreakdown struct {
	CategoryID   uuid.UUID
	CategoryName string
	ProductCount int
	TotalValue   decimal.Decimal
}

// DashboardReader computes inventory-wide statistics.
// ProductsByCategory includes categories without products, with zero counts.
type DashboardReader interface {
	TotalProducts(ctx context.Context) (int, error)
	// TotalStockValue sums price times stock over all products.
	TotalStockValue(ctx context.Context) (decimal.Decimal, error)
	LowStockProductCount(ctx context.Context) (int, error)
	TotalCategories(ctx context.Context) (int, error)
	ProductsByCategory(ctx context.Context) ([]CategoryBreakdown, error)
}
