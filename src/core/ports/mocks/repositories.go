// Package mocks holds testify mocks of the repository ports.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"inventory/src/core/domain"
	"inventory/src/core/ports"
)

// CategoryRepository is a mock of ports.CategoryRepository.
type CategoryRepository struct {
	mock.Mock
}

// NewCategoryRepository returns a mock that asserts its expectations on cleanup.
func NewCategoryRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *CategoryRepository {
	m := &CategoryRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

func (m *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Category)
	return c, args.Error(1)
}

func (m *CategoryRepository) GetAll(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]*domain.Category)
	return cs, args.Error(1)
}

func (m *CategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(*domain.Category)
	return c, args.Error(1)
}

func (m *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CategoryRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *CategoryRepository) HasProducts(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *CategoryRepository) GetAllWithProductCount(ctx context.Context) (map[uuid.UUID]int, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).(map[uuid.UUID]int)
	return counts, args.Error(1)
}

func (m *CategoryRepository) GetByIDWithProductCount(ctx context.Context, id uuid.UUID) (*domain.Category, int, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*domain.Category)
	return c, args.Int(1), args.Error(2)
}

// ProductRepository is a mock of ports.ProductRepository.
type ProductRepository struct {
	mock.Mock
}

// NewProductRepository returns a mock that asserts its expectations on cleanup.
func NewProductRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ProductRepository {
	m := &ProductRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ ports.ProductRepository = (*ProductRepository)(nil)

func (m *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Product)
	return p, args.Error(1)
}

func (m *ProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]*domain.Product)
	return ps, args.Error(1)
}

func (m *ProductRepository) GetByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Product, error) {
	args := m.Called(ctx, categoryID)
	ps, _ := args.Get(0).([]*domain.Product)
	return ps, args.Error(1)
}

func (m *ProductRepository) SearchByName(ctx context.Context, term string) ([]*domain.Product, error) {
	args := m.Called(ctx, term)
	ps, _ := args.Get(0).([]*domain.Product)
	return ps, args.Error(1)
}

func (m *ProductRepository) GetLowStock(ctx context.Context) ([]*domain.Product, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]*domain.Product)
	return ps, args.Error(1)
}

func (m *ProductRepository) GetPaged(ctx context.Context, page, pageSize int) ([]*domain.Product, int, error) {
	args := m.Called(ctx, page, pageSize)
	ps, _ := args.Get(0).([]*domain.Product)
	return ps, args.Int(1), args.Error(2)
}

func (m *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProductRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepository) Search(ctx context.Context, q ports.ProductSearch) ([]*domain.Product, int, error) {
	args := m.Called(ctx, q)
	ps, _ := args.Get(0).([]*domain.Product)
	return ps, args.Int(1), args.Error(2)
}
