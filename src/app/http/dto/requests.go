package dto

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"inventory/src/core/domain"
	"inventory/src/core/usecase"
)

// CreateCategoryRequest is the payload for POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (r CreateCategoryRequest) ToCommand() usecase.CreateCategoryCommand {
	return usecase.CreateCategoryCommand{Name: r.Name, Description: r.Description}
}

// UpdateCategoryRequest is the payload for PUT /api/categories/{id}. The body
// id must equal the path id.
type UpdateCategoryRequest struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// ToCommand supplies both fields, making the update a full replacement.
func (r UpdateCategoryRequest) ToCommand() usecase.UpdateCategoryCommand {
	return usecase.UpdateCategoryCommand{
		ID:          r.ID,
		Name:        domain.Some(r.Name),
		Description: domain.Some(r.Description),
	}
}

// CreateProductRequest is the payload for POST /api/products.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Currency      string          `json:"currency"`
	CategoryID    uuid.UUID       `json:"categoryId"`
	StockQuantity int             `json:"stockQuantity"`
}

func (r CreateProductRequest) ToCommand() usecase.CreateProductCommand {
	return usecase.CreateProductCommand{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		Currency:      r.Currency,
		CategoryID:    r.CategoryID,
		StockQuantity: r.StockQuantity,
	}
}

// UpdateProductRequest is the payload for PUT and PATCH /api/products/{id}.
// Absent or null fields are left unchanged.
type UpdateProductRequest struct {
	ID            *uuid.UUID                       `json:"id"`
	Name          domain.Optional[string]          `json:"name"`
	Description   domain.Optional[string]          `json:"description"`
	Price         domain.Optional[decimal.Decimal] `json:"price"`
	Currency      domain.Optional[string]          `json:"currency"`
	CategoryID    domain.Optional[uuid.UUID]       `json:"categoryId"`
	StockQuantity domain.Optional[int]             `json:"stockQuantity"`
}

// MatchesPath reports whether the body id, when given, equals the path id.
func (r UpdateProductRequest) MatchesPath(id uuid.UUID) bool {
	return r.ID == nil || *r.ID == id
}

func (r UpdateProductRequest) ToCommand(id uuid.UUID) usecase.UpdateProductCommand {
	return usecase.UpdateProductCommand{
		ID:            id,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		Currency:      r.Currency,
		CategoryID:    r.CategoryID,
		StockQuantity: r.StockQuantity,
	}
}

// UpdateStockRequest is the payload for PATCH /api/products/{id}/stock.
type UpdateStockRequest struct {
	ID       uuid.UUID `json:"id"`
	Quantity *int      `json:"quantity" binding:"required"`
}

func (r UpdateStockRequest) ToCommand() usecase.UpdateProductStockCommand {
	return usecase.UpdateProductStockCommand{ID: r.ID, Quantity: *r.Quantity}
}

// AdjustStockRequest is the payload for POST /api/products/{id}/stock/add
// and /stock/remove.
type AdjustStockRequest struct {
	Quantity int `json:"quantity"`
}

func (r AdjustStockRequest) ToCommand(id uuid.UUID, direction usecase.StockDirection) usecase.AdjustProductStockCommand {
	return usecase.AdjustProductStockCommand{ID: id, Direction: direction, Quantity: r.Quantity}
}

// Default paging applied when the query string omits page or pageSize.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// ProductListParams is the query string of GET /api/products and
// GET /api/products/list.
type ProductListParams struct {
	Search     string `form:"search"`
	SearchName string `form:"searchName"`
	CategoryID string `form:"categoryId"`
	Page       *int   `form:"page"`
	PageSize   *int   `form:"pageSize"`
}

func (p ProductListParams) paging() (int, int) {
	page, size := DefaultPage, DefaultPageSize
	if p.Page != nil {
		page = *p.Page
	}
	if p.PageSize != nil {
		size = *p.PageSize
	}
	return page, size
}

// ToSearchQuery builds the unified search. categoryId must already be a
// valid uuid when present, see CategoryUUID.
func (p ProductListParams) ToSearchQuery(categoryID *uuid.UUID) usecase.SearchProductsQuery {
	page, size := p.paging()
	return usecase.SearchProductsQuery{
		SearchTerm: strings.TrimSpace(p.Search),
		CategoryID: categoryID,
		Page:       page,
		PageSize:   size,
	}
}

// ToProductsQuery builds the priority-based paging query. searchName falls
// back to search so both spellings are accepted.
func (p ProductListParams) ToProductsQuery() usecase.GetProductsQuery {
	page, size := p.paging()
	name := p.SearchName
	if name == "" {
		name = p.Search
	}
	return usecase.GetProductsQuery{
		Page:       page,
		PageSize:   size,
		SearchName: strings.TrimSpace(name),
		CategoryID: strings.TrimSpace(p.CategoryID),
	}
}

// CategoryUUID parses the categoryId filter. An empty value yields nil.
func (p ProductListParams) CategoryUUID() (*uuid.UUID, error) {
	raw := strings.TrimSpace(p.CategoryID)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.NewValidationError("categoryId", "categoryId must be a valid UUID")
	}
	return &id, nil
}
