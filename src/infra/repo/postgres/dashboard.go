package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"inventory/src/core/domain"
	"inventory/src/core/ports"
)

// DashboardReader implements ports.DashboardReader with aggregate queries.
type DashboardReader struct {
	db querier
}

var _ ports.DashboardReader = (*DashboardReader)(nil)

func NewDashboardReader(db querier) *DashboardReader {
	return &DashboardReader{db: db}
}

func (r *DashboardReader) count(ctx context.Context, op, q string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, translate(err, op)
	}
	return n, nil
}

func (r *DashboardReader) TotalProducts(ctx context.Context) (int, error) {
	return r.count(ctx, "count products", `SELECT COUNT(*) FROM products`)
}

func (r *DashboardReader) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	const q = `SELECT COALESCE(SUM(price_amount * stock_quantity), 0) FROM products`
	if err := r.db.QueryRow(ctx, q).Scan(&total); err != nil {
		return decimal.Zero, translate(err, "sum stock value")
	}
	return total, nil
}

func (r *DashboardReader) LowStockProductCount(ctx context.Context) (int, error) {
	return r.count(ctx, "count low stock products",
		`SELECT COUNT(*) FROM products WHERE stock_quantity < $1`, domain.LowStockThreshold)
}

func (r *DashboardReader) TotalCategories(ctx context.Context) (int, error) {
	return r.count(ctx, "count categories", `SELECT COUNT(*) FROM categories`)
}

// ProductsByCategory left-joins products so empty categories report zeros.
func (r *DashboardReader) ProductsByCategory(ctx context.Context) ([]ports.CategoryBreakdown, error) {
	const q = `
		SELECT c.id, c.name, COUNT(p.id),
		       COALESCE(SUM(p.price_amount * p.stock_quantity), 0)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		GROUP BY c.id, c.name
		ORDER BY c.name
	`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, translate(err, "products by category")
	}
	defer rows.Close()

	out := make([]ports.CategoryBreakdown, 0)
	for rows.Next() {
		var b ports.CategoryBreakdown
		if err := rows.Scan(&b.CategoryID, &b.CategoryName, &b.ProductCount, &b.TotalValue); err != nil {
			return nil, translate(err, "scan category breakdown")
		}
		out = append(out, b)
	}
	return out, translate(rows.Err(), "products by category")
}
