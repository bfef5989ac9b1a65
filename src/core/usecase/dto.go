package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"inventory/src/core/domain"
	"inventory/src/core/ports"
)

// CategoryDTO is the transport shape of a category.
type CategoryDTO struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	ProductCount int        `json:"productCount"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

// ProductDTO is the transport shape of a product.
type ProductDTO struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	Currency      string     `json:"currency"`
	StockQuantity int        `json:"stockQuantity"`
	IsLowStock    bool       `json:"isLowStock"`
	CategoryID    uuid.UUID  `json:"categoryId"`
	CategoryName  string     `json:"categoryName"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt"`
}

// PagedProducts is one page of a product listing.
type PagedProducts struct {
	Products   []ProductDTO `json:"products"`
	TotalCount int          `json:"totalCount"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
}

// DashboardStats are the headline inventory figures.
type DashboardStats struct {
	TotalProducts        int     `json:"totalProducts"`
	TotalStockValue      float64 `json:"totalStockValue"`
	LowStockProductCount int     `json:"lowStockProductCount"`
	TotalCategories      int     `json:"totalCategories"`
}

// CategoryStats is one row of the per-category breakdown.
type CategoryStats struct {
	CategoryID   uuid.UUID `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	ProductCount int       `json:"productCount"`
	TotalValue   float64   `json:"totalValue"`
}

func toCategoryDTO(c *domain.Category, productCount int) *CategoryDTO {
	return &CategoryDTO{
		ID:           c.ID(),
		Name:         c.Name(),
		Description:  c.Description(),
		ProductCount: productCount,
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
}

func toProductDTO(p *domain.Product, categoryName string) ProductDTO {
	return ProductDTO{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		Price:         amount(p.Price().Amount()),
		Currency:      p.Price().Currency(),
		StockQuantity: p.StockQuantity(),
		IsLowStock:    p.IsLowStock(),
		CategoryID:    p.CategoryID(),
		CategoryName:  categoryName,
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func toCategoryStats(b ports.CategoryBreakdown) CategoryStats {
	return CategoryStats{
		CategoryID:   b.CategoryID,
		CategoryName: b.CategoryName,
		ProductCount: b.ProductCount,
		TotalValue:   amount(b.TotalValue),
	}
}

// amount rounds to cents for transport.
func amount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// productMapper resolves category names while mapping products.
type productMapper struct {
	categories ports.CategoryRepository
}

// one maps a single product, looking up its category by id. A dangling
// category reference maps to an empty name.
func (m productMapper) one(ctx context.Context, p *domain.Product) (*ProductDTO, error) {
	var name string
	c, err := m.categories.GetByID(ctx, p.CategoryID())
	switch {
	case err == nil:
		name = c.Name()
	case !domain.IsNotFound(err):
		return nil, err
	}
	dto := toProductDTO(p, name)
	return &dto, nil
}

// many maps a list with one category query for the whole batch.
func (m productMapper) many(ctx context.Context, products []*domain.Product) ([]ProductDTO, error) {
	out := make([]ProductDTO, 0, len(products))
	if len(products) == 0 {
		return out, nil
	}
	all, err := m.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(all))
	for _, c := range all {
		names[c.ID()] = c.Name()
	}
	for _, p := range products {
		out = append(out, toProductDTO(p, names[p.CategoryID()]))
	}
	return out, nil
}
