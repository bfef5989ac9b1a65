package usecase

import (
	"log/slog"

	"inventory/src/core/ports"
)

// Handlers holds every use case, each wrapped in validation.
type Handlers struct {
	CreateCategory  Handler[CreateCategoryCommand, *CategoryDTO]
	UpdateCategory  Handler[UpdateCategoryCommand, *CategoryDTO]
	DeleteCategory  Handler[DeleteCategoryCommand, bool]
	GetCategories   Handler[GetCategoriesQuery, []CategoryDTO]
	GetCategoryByID Handler[GetCategoryByIDQuery, *CategoryDTO]

	CreateProduct         Handler[CreateProductCommand, *ProductDTO]
	UpdateProduct         Handler[UpdateProductCommand, *ProductDTO]
	UpdateProductStock    Handler[UpdateProductStockCommand, *ProductDTO]
	AdjustProductStock    Handler[AdjustProductStockCommand, *ProductDTO]
	DeleteProduct         Handler[DeleteProductCommand, bool]
	GetProductByID        Handler[GetProductByIDQuery, *ProductDTO]
	GetProductsByCategory Handler[GetProductsByCategoryQuery, []ProductDTO]
	GetLowStockProducts   Handler[GetLowStockProductsQuery, []ProductDTO]
	SearchProducts        Handler[SearchProductsQuery, *PagedProducts]
	GetProducts           Handler[GetProductsQuery, *PagedProducts]

	GetDashboardStats          Handler[GetDashboardStatsQuery, *DashboardStats]
	GetProductsByCategoryStats Handler[GetProductsByCategoryStatsQuery, []CategoryStats]
}

// LoggerFactory returns the logger for a named component.
type LoggerFactory func(component string) *slog.Logger

// NewHandlers wires the use cases to one store.
func NewHandlers(store ports.Store, v Validator, logFor LoggerFactory) *Handlers {
	categories, products := store.Categories, store.Products
	catLog := logFor("category")
	prodLog := logFor("product")

	return &Handlers{
		CreateCategory:  Validated(v, NewCreateCategoryHandler(categories, catLog).Handle),
		UpdateCategory:  Validated(v, NewUpdateCategoryHandler(categories, catLog).Handle),
		DeleteCategory:  Validated(v, NewDeleteCategoryHandler(categories, catLog).Handle),
		GetCategories:   Validated(v, NewGetCategoriesHandler(categories).Handle),
		GetCategoryByID: Validated(v, NewGetCategoryByIDHandler(categories).Handle),

		CreateProduct:         Validated(v, NewCreateProductHandler(products, categories, prodLog).Handle),
		UpdateProduct:         Validated(v, NewUpdateProductHandler(products, categories, prodLog).Handle),
		UpdateProductStock:    Validated(v, NewUpdateProductStockHandler(products, categories, prodLog).Handle),
		AdjustProductStock:    Validated(v, NewAdjustProductStockHandler(products, categories, prodLog).Handle),
		DeleteProduct:         Validated(v, NewDeleteProductHandler(products, prodLog).Handle),
		GetProductByID:        Validated(v, NewGetProductByIDHandler(products, categories).Handle),
		GetProductsByCategory: Validated(v, NewGetProductsByCategoryHandler(products, categories).Handle),
		GetLowStockProducts:   Validated(v, NewGetLowStockProductsHandler(products, categories).Handle),
		SearchProducts:        Validated(v, NewSearchProductsHandler(products, categories).Handle),
		GetProducts:           Validated(v, NewGetProductsHandler(products, categories).Handle),

		GetDashboardStats:          Validated(v, NewGetDashboardStatsHandler(store.Dashboard).Handle),
		GetProductsByCategoryStats: Validated(v, NewGetProductsByCategoryStatsHandler(store.Dashboard).Handle),
	}
}
