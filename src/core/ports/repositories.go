// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo. This ensures the core has no dependency on infrastructure.
//
// Every method takes a context. Adapters translate a cancelled context into
// domain.ErrCancelled and a missing record into domain.ErrNotFound.
package ports

import (
	"context"
	"math"

	"github.com/google/uuid"

	"inventory/src/core/domain"
)

// Repository is the base interface for all repositories.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// ProductSearch filters the unified product search. Zero values disable a filter.
type ProductSearch struct {
	Term       string
	CategoryID *uuid.UUID
	Page       int
	PageSize   int
}

// Offset returns the number of rows to skip for the requested page.
func (s ProductSearch) Offset() int {
	return PageOffset(s.Page, s.PageSize)
}

// PageOffset converts a 1-based page into a row offset. Offsets that would
// overflow saturate at math.MaxInt so callers see an empty page.
func PageOffset(page, pageSize int) int {
	if page < 1 || pageSize <= 0 {
		return 0
	}
	if page-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (page - 1) * pageSize
}

// CategoryRepository persists categories.
type CategoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	GetAll(ctx context.Context) ([]*domain.Category, error)
	// GetByName is an exact, case-sensitive lookup used for duplicate detection.
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// HasProducts reports whether any product references the category.
	HasProducts(ctx context.Context, id uuid.UUID) (bool, error)
	// GetAllWithProductCount maps category id to product count. Categories
	// without products are absent from the map.
	GetAllWithProductCount(ctx context.Context) (map[uuid.UUID]int, error)
	GetByIDWithProductCount(ctx context.Context, id uuid.UUID) (*domain.Category, int, error)
}

// ProductRepository persists products. List results are ordered by name.
type ProductRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetAll(ctx context.Context) ([]*domain.Product, error)
	GetByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Product, error)
	// SearchByName is a case-insensitive substring match.
	SearchByName(ctx context.Context, term string) ([]*domain.Product, error)
	// GetLowStock returns products below domain.LowStockThreshold.
	GetLowStock(ctx context.Context) ([]*domain.Product, error)
	GetPaged(ctx context.Context, page, pageSize int) ([]*domain.Product, int, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Search(ctx context.Context, q ProductSearch) ([]*domain.Product, int, error)
}

// Store bundles the adapters of one storage backend.
type Store struct {
	Categories CategoryRepository
	Products   ProductRepository
	Dashboard  DashboardReader
	Health     Repository
}
