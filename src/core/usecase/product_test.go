package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"inventory/src/core/domain"
	"inventory/src/core/ports/mocks"
	"inventory/src/core/usecase"
)

func TestCreateProduct(t *testing.T) {
	h := newHandlers(t)
	electronics := createCategory(t, h, "Electronics")

	p := createProduct(t, h, "Headphones", "129.99", electronics.ID, 5)
	assert.Equal(t, "Headphones", p.Name)
	assert.Equal(t, 129.99, p.Price)
	assert.Equal(t, domain.DefaultCurrency, p.Currency)
	assert.Equal(t, "Electronics", p.CategoryName)
	assert.True(t, p.IsLowStock)
}

func TestCreateProduct_UnknownCategoryPersistsNothing(t *testing.T) {
	categories := mocks.NewCategoryRepository(t)
	products := mocks.NewProductRepository(t)
	missing := uuid.New()

	categories.On("Exists", mock.Anything, missing).Return(false, nil).Once()

	h := usecase.NewCreateProductHandler(products, categories, discardLogger())
	_, err := h.Handle(context.Background(), usecase.CreateProductCommand{
		Name:          "Headphones",
		Description:   "over-ear",
		Price:         decimal.RequireFromString("10"),
		CategoryID:    missing,
		StockQuantity: 1,
	})

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, "categoryId", domain.FieldOf(err))
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_Validation(t *testing.T) {
	h := newHandlers(t)
	c := createCategory(t, h, "Electronics")

	cases := []struct {
		name  string
		cmd   usecase.CreateProductCommand
		field string
	}{
		{"blank name", usecase.CreateProductCommand{Name: " ", Description: "d", CategoryID: c.ID}, "name"},
		{"negative price", usecase.CreateProductCommand{Name: "n", Description: "d", Price: decimal.NewFromInt(-1), CategoryID: c.ID}, "price"},
		{"sub-cent price", usecase.CreateProductCommand{Name: "n", Description: "d", Price: decimal.RequireFromString("129.999"), CategoryID: c.ID}, "price"},
		{"currency length", usecase.CreateProductCommand{Name: "n", Description: "d", Currency: "EURO", CategoryID: c.ID}, "currency"},
		{"negative stock", usecase.CreateProductCommand{Name: "n", Description: "d", CategoryID: c.ID, StockQuantity: -1}, "stockQuantity"},
		{"missing category", usecase.CreateProductCommand{Name: "n", Description: "d"}, "categoryId"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.CreateProduct.Handle(context.Background(), tc.cmd)
			require.Error(t, err)
			assert.True(t, domain.IsValidationError(err))
			assert.Equal(t, tc.field, domain.FieldOf(err))
		})
	}
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	h := newHandlers(t)
	electronics := createCategory(t, h, "Electronics")
	audio := createCategory(t, h, "Audio")
	p := createProduct(t, h, "Headphones", "129.99", electronics.ID, 5)

	t.Run("currency alone keeps the amount", func(t *testing.T) {
		got, err := h.UpdateProduct.Handle(ctx, usecase.UpdateProductCommand{
			ID:       p.ID,
			Currency: domain.Some("eur"),
		})
		require.NoError(t, err)
		assert.Equal(t, "EUR", got.Currency)
		assert.Equal(t, 129.99, got.Price)
	})

	t.Run("sub-cent price", func(t *testing.T) {
		_, err := h.UpdateProduct.Handle(ctx, usecase.UpdateProductCommand{
			ID:    p.ID,
			Price: domain.Some(decimal.RequireFromString("0.001")),
		})
		assert.True(t, domain.IsValidationError(err))
		assert.Equal(t, "price", domain.FieldOf(err))
	})

	t.Run("move to another category", func(t *testing.T) {
		got, err := h.UpdateProduct.Handle(ctx, usecase.UpdateProductCommand{
			ID:         p.ID,
			CategoryID: domain.Some(audio.ID),
		})
		require.NoError(t, err)
		assert.Equal(t, "Audio", got.CategoryName)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := h.UpdateProduct.Handle(ctx, usecase.UpdateProductCommand{
			ID:         p.ID,
			CategoryID: domain.Some(uuid.New()),
		})
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("unchanged values do not stamp", func(t *testing.T) {
		fresh := createProduct(t, h, "Cable", "5.00", electronics.ID, 50)
		got, err := h.UpdateProduct.Handle(ctx, usecase.UpdateProductCommand{
			ID:   fresh.ID,
			Name: domain.Some("Cable"),
		})
		require.NoError(t, err)
		assert.Nil(t, got.UpdatedAt)
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := h.UpdateProduct.Handle(ctx, usecase.UpdateProductCommand{
			ID:   uuid.New(),
			Name: domain.Some("x"),
		})
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestUpdateProductStock(t *testing.T) {
	ctx := context.Background()
	h := newHandlers(t)
	c := createCategory(t, h, "Electronics")
	p := createProduct(t, h, "Headphones", "129.99", c.ID, 5)

	got, err := h.UpdateProductStock.Handle(ctx, usecase.UpdateProductStockCommand{ID: uuid.New(), Quantity: 3})
	require.NoError(t, err, "missing product is not an error")
	assert.Nil(t, got)

	_, err = h.UpdateProductStock.Handle(ctx, usecase.UpdateProductStockCommand{ID: p.ID, Quantity: -1})
	assert.True(t, domain.IsValidationError(err))

	got, err = h.UpdateProductStock.Handle(ctx, usecase.UpdateProductStockCommand{ID: p.ID, Quantity: 20})
	require.NoError(t, err)
	assert.Equal(t, 20, got.StockQuantity)
	assert.False(t, got.IsLowStock)
}

func TestAdjustProductStock(t *testing.T) {
	ctx := context.Background()
	h := newHandlers(t)
	c := createCategory(t, h, "Electronics")
	p := createProduct(t, h, "Headphones", "129.99", c.ID, 5)

	got, err := h.AdjustProductStock.Handle(ctx, usecase.AdjustProductStockCommand{ID: p.ID, Direction: usecase.StockAdd, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 9, got.StockQuantity)

	_, err = h.AdjustProductStock.Handle(ctx, usecase.AdjustProductStockCommand{ID: p.ID, Direction: usecase.StockRemove, Quantity: 10})
	assert.True(t, domain.IsInvalidOperation(err))

	after, err := h.GetProductByID.Handle(ctx, usecase.GetProductByIDQuery{ID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, 9, after.StockQuantity, "failed removal leaves stock untouched")

	_, err = h.AdjustProductStock.Handle(ctx, usecase.AdjustProductStockCommand{ID: p.ID, Direction: "sideways", Quantity: 1})
	assert.Equal(t, "direction", domain.FieldOf(err))
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	h := newHandlers(t)
	c := createCategory(t, h, "Electronics")
	p := createProduct(t, h, "Headphones", "129.99", c.ID, 5)

	ok, err := h.DeleteProduct.Handle(ctx, usecase.DeleteProductCommand{ID: p.ID})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.DeleteProduct.Handle(ctx, usecase.DeleteProductCommand{ID: p.ID})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLowStockScenario(t *testing.T) {
	ctx := context.Background()
	h := newHandlers(t)
	electronics := createCategory(t, h, "Electronics")
	p := createProduct(t, h, "Headphones", "129.99", electronics.ID, 5)

	low, err := h.GetLowStockProducts.Handle(ctx, usecase.GetLowStockProductsQuery{})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, p.ID, low[0].ID)

	_, err = h.UpdateProductStock.Handle(ctx, usecase.UpdateProductStockCommand{ID: p.ID, Quantity: 20})
	require.NoError(t, err)

	low, err = h.GetLowStockProducts.Handle(ctx, usecase.GetLowStockProductsQuery{})
	require.NoError(t, err)
	assert.Empty(t, low)
}
