package usecase_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"inventory/src/core/usecase"
	"inventory/src/core/validation"
	"inventory/src/infra/logger"
	"inventory/src/infra/repo/memory"
)

func discardLogger() *slog.Logger {
	return logger.Discard()
}

func newHandlers(t *testing.T) *usecase.Handlers {
	t.Helper()
	return usecase.NewHandlers(memory.New().Ports(), validation.New(), logger.Components(discardLogger()))
}

func createCategory(t *testing.T, h *usecase.Handlers, name string) *usecase.CategoryDTO {
	t.Helper()
	c, err := h.CreateCategory.Handle(context.Background(), usecase.CreateCategoryCommand{Name: name, Description: "desc"})
	require.NoError(t, err)
	return c
}

func createProduct(t *testing.T, h *usecase.Handlers, name string, price string, categoryID uuid.UUID, stock int) *usecase.ProductDTO {
	t.Helper()
	p, err := h.CreateProduct.Handle(context.Background(), usecase.CreateProductCommand{
		Name:          name,
		Description:   name + " description",
		Price:         decimal.RequireFromString(price),
		CategoryID:    categoryID,
		StockQuantity: stock,
	})
	require.NoError(t, err)
	return p
}
