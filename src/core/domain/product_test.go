package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUSD(t *testing.T, amount string) Money {
	t.Helper()
	m, err := NewUSD(decimal.RequireFromString(amount))
	require.NoError(t, err)
	return m
}

func newTestProduct(t *testing.T, stock int) *Product {
	t.Helper()
	p, err := NewProduct("Headphones", "Over-ear", mustUSD(t, "129.99"), uuid.New(), stock)
	require.NoError(t, err)
	return p
}

func TestNewProduct_Validation(t *testing.T) {
	price := mustUSD(t, "1")
	cat := uuid.New()

	tests := []struct {
		name      string
		pname     string
		desc      string
		price     Money
		category  uuid.UUID
		stock     int
		wantField string
	}{
		{name: "blank name", pname: " ", desc: "d", price: price, category: cat, wantField: "name"},
		{name: "blank description", pname: "n", desc: "", price: price, category: cat, wantField: "description"},
		{name: "missing price", pname: "n", desc: "d", category: cat, wantField: "price"},
		{name: "missing category", pname: "n", desc: "d", price: price, wantField: "categoryId"},
		{name: "negative stock", pname: "n", desc: "d", price: price, category: cat, stock: -1, wantField: "stockQuantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.pname, tt.desc, tt.price, tt.category, tt.stock)
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Equal(t, tt.wantField, FieldOf(err))
		})
	}
}

func TestProduct_IsLowStock(t *testing.T) {
	cases := map[int]bool{0: true, 5: true, 9: true, 10: false, 11: false, 500: false}
	for qty, want := range cases {
		p := newTestProduct(t, qty)
		assert.Equal(t, want, p.IsLowStock(), "stock %d", qty)
	}
}

func TestProduct_StockMutations(t *testing.T) {
	t.Run("update stock rejects negative", func(t *testing.T) {
		p := newTestProduct(t, 5)
		assert.True(t, IsValidationError(p.UpdateStock(-1)))
		require.NoError(t, p.UpdateStock(20))
		assert.Equal(t, 20, p.StockQuantity())
	})

	t.Run("add stock", func(t *testing.T) {
		p := newTestProduct(t, 5)
		assert.True(t, IsValidationError(p.AddStock(0)))
		require.NoError(t, p.AddStock(3))
		assert.Equal(t, 8, p.StockQuantity())
	})

	t.Run("remove stock", func(t *testing.T) {
		p := newTestProduct(t, 5)
		assert.True(t, IsValidationError(p.RemoveStock(-2)))

		err := p.RemoveStock(6)
		assert.True(t, IsInvalidOperation(err))
		assert.Equal(t, 5, p.StockQuantity(), "failed removal leaves stock untouched")

		require.NoError(t, p.RemoveStock(5))
		assert.Equal(t, 0, p.StockQuantity())
	})
}

func TestProduct_PartialUpdate(t *testing.T) {
	stepClock(t)

	t.Run("equal values do not stamp", func(t *testing.T) {
		p := newTestProduct(t, 5)
		require.NoError(t, p.PartialUpdate(ProductPatch{
			Name:          Some("Headphones"),
			Price:         Some(mustUSD(t, "129.990")),
			StockQuantity: Some(5),
		}))
		assert.Nil(t, p.UpdatedAt())
	})

	t.Run("changed fields applied", func(t *testing.T) {
		p := newTestProduct(t, 5)
		newCat := uuid.New()
		require.NoError(t, p.PartialUpdate(ProductPatch{
			Description: Some("Closed back"),
			CategoryID:  Some(newCat),
		}))
		require.NotNil(t, p.UpdatedAt())
		assert.Equal(t, "Closed back", p.Description())
		assert.Equal(t, newCat, p.CategoryID())
		assert.Equal(t, "Headphones", p.Name())
	})

	t.Run("invalid stock applies nothing", func(t *testing.T) {
		p := newTestProduct(t, 5)
		err := p.PartialUpdate(ProductPatch{Name: Some("Speakers"), StockQuantity: Some(-3)})
		assert.True(t, IsValidationError(err))
		assert.Equal(t, "Headphones", p.Name())
		assert.Nil(t, p.UpdatedAt())
	})
}

func TestProduct_Update(t *testing.T) {
	stepClock(t)
	p := newTestProduct(t, 5)
	cat := p.CategoryID()

	require.NoError(t, p.Update("Headphones", "Over-ear", p.Price(), cat, 5))
	assert.NotNil(t, p.UpdatedAt(), "full update always stamps")

	err := p.Update("Headphones", "Over-ear", Money{}, cat, 5)
	assert.Equal(t, "price", FieldOf(err))
}

func TestProduct_StockValue(t *testing.T) {
	p := newTestProduct(t, 3)
	assert.Equal(t, "389.97 USD", p.StockValue().String())
}
