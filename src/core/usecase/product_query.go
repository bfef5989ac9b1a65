package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"inventory/src/core/domain"
	"inventory/src/core/ports"
)

// GetProductByIDQuery loads one product.
type GetProductByIDQuery struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

// GetProductsByCategoryQuery lists the products of one category.
type GetProductsByCategoryQuery struct {
	CategoryID uuid.UUID `json:"categoryId" validate:"required"`
}

// GetLowStockProductsQuery lists products below domain.LowStockThreshold.
type GetLowStockProductsQuery struct{}

// SearchProductsQuery pages through products with optional name and
// category filters applied by the repository.
type SearchProductsQuery struct {
	SearchTerm string     `json:"search" validate:"max=200"`
	CategoryID *uuid.UUID `json:"categoryId"`
	Page       int        `json:"page" validate:"gte=1,lte=1000000"`
	PageSize   int        `json:"pageSize" validate:"gte=1,lte=100"`
}

// GetProductsQuery is the simple paging query. SearchName takes priority
// over CategoryID; with neither the repository pages natively.
type GetProductsQuery struct {
	Page       int    `json:"page" validate:"gte=1,lte=1000000"`
	PageSize   int    `json:"pageSize" validate:"gte=1,lte=100"`
	SearchName string `json:"searchName" validate:"max=200"`
	CategoryID string `json:"categoryId" validate:"omitempty,uuid"`
}

// GetProductByIDHandler handles GetProductByIDQuery.
type GetProductByIDHandler struct {
	products ports.ProductRepository
	mapper   productMapper
}

// NewGetProductByIDHandler creates a new GetProductByIDHandler.
func NewGetProductByIDHandler(products ports.ProductRepository, categories ports.CategoryRepository) *GetProductByIDHandler {
	return &GetProductByIDHandler{products: products, mapper: productMapper{categories: categories}}
}

func (h *GetProductByIDHandler) Handle(ctx context.Context, q GetProductByIDQuery) (*ProductDTO, error) {
	p, err := h.products.GetByID(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	return h.mapper.one(ctx, p)
}

// GetProductsByCategoryHandler handles GetProductsByCategoryQuery.
type GetProductsByCategoryHandler struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	mapper     productMapper
}

// NewGetProductsByCategoryHandler creates a new GetProductsByCategoryHandler.
func NewGetProductsByCategoryHandler(products ports.ProductRepository, categories ports.CategoryRepository) *GetProductsByCategoryHandler {
	return &GetProductsByCategoryHandler{
		products:   products,
		categories: categories,
		mapper:     productMapper{categories: categories},
	}
}

// Handle fails with ErrNotFound for an unknown category.
func (h *GetProductsByCategoryHandler) Handle(ctx context.Context, q GetProductsByCategoryQuery) ([]ProductDTO, error) {
	if err := ensureCategoryExists(ctx, h.categories, q.CategoryID); err != nil {
		return nil, err
	}
	products, err := h.products.GetByCategoryID(ctx, q.CategoryID)
	if err != nil {
		return nil, err
	}
	return h.mapper.many(ctx, products)
}

// GetLowStockProductsHandler handles GetLowStockProductsQuery.
type GetLowStockProductsHandler struct {
	products ports.ProductRepository
	mapper   productMapper
}

// NewGetLowStockProductsHandler creates a new GetLowStockProductsHandler.
func NewGetLowStockProductsHandler(products ports.ProductRepository, categories ports.CategoryRepository) *GetLowStockProductsHandler {
	return &GetLowStockProductsHandler{products: products, mapper: productMapper{categories: categories}}
}

func (h *GetLowStockProductsHandler) Handle(ctx context.Context, _ GetLowStockProductsQuery) ([]ProductDTO, error) {
	products, err := h.products.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return h.mapper.many(ctx, products)
}

// SearchProductsHandler handles SearchProductsQuery.
type SearchProductsHandler struct {
	products ports.ProductRepository
	mapper   productMapper
}

// NewSearchProductsHandler creates a new SearchProductsHandler.
func NewSearchProductsHandler(products ports.ProductRepository, categories ports.CategoryRepository) *SearchProductsHandler {
	return &SearchProductsHandler{products: products, mapper: productMapper{categories: categories}}
}

func (h *SearchProductsHandler) Handle(ctx context.Context, q SearchProductsQuery) (*PagedProducts, error) {
	items, total, err := h.products.Search(ctx, ports.ProductSearch{
		Term:       strings.TrimSpace(q.SearchTerm),
		CategoryID: q.CategoryID,
		Page:       q.Page,
		PageSize:   q.PageSize,
	})
	if err != nil {
		return nil, err
	}
	return h.page(ctx, items, total, q.Page, q.PageSize)
}

func (h *SearchProductsHandler) page(ctx context.Context, items []*domain.Product, total, page, pageSize int) (*PagedProducts, error) {
	dtos, err := h.mapper.many(ctx, items)
	if err != nil {
		return nil, err
	}
	return &PagedProducts{
		Products:   dtos,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// GetProductsHandler handles GetProductsQuery.
type GetProductsHandler struct {
	products ports.ProductRepository
	mapper   productMapper
}

// NewGetProductsHandler creates a new GetProductsHandler.
func NewGetProductsHandler(products ports.ProductRepository, categories ports.CategoryRepository) *GetProductsHandler {
	return &GetProductsHandler{products: products, mapper: productMapper{categories: categories}}
}

// Handle picks exactly one source: name search, then category filter, then
// native paging. The first two are sliced here and report the size of the
// full result as TotalCount.
func (h *GetProductsHandler) Handle(ctx context.Context, q GetProductsQuery) (*PagedProducts, error) {
	var (
		items []*domain.Product
		total int
		err   error
	)

	switch {
	case strings.TrimSpace(q.SearchName) != "":
		var all []*domain.Product
		all, err = h.products.SearchByName(ctx, strings.TrimSpace(q.SearchName))
		items, total = slicePage(all, q.Page, q.PageSize), len(all)
	case strings.TrimSpace(q.CategoryID) != "":
		id, perr := uuid.Parse(strings.TrimSpace(q.CategoryID))
		if perr != nil {
			return nil, domain.NewValidationError("categoryId", "categoryId must be a valid UUID")
		}
		var all []*domain.Product
		all, err = h.products.GetByCategoryID(ctx, id)
		items, total = slicePage(all, q.Page, q.PageSize), len(all)
	default:
		items, total, err = h.products.GetPaged(ctx, q.Page, q.PageSize)
	}
	if err != nil {
		return nil, err
	}

	dtos, err := h.mapper.many(ctx, items)
	if err != nil {
		return nil, err
	}
	return &PagedProducts{
		Products:   dtos,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages(total, q.PageSize),
	}, nil
}

// slicePage returns the requested 1-based page of items.
func slicePage[T any](items []T, page, pageSize int) []T {
	start := ports.PageOffset(page, pageSize)
	if pageSize <= 0 || start < 0 || start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
