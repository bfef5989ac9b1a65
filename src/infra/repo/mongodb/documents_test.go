package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inventory/src/core/domain"
	"inventory/src/core/ports"
)

func TestDecimal128RoundTrip(t *testing.T) {
	for _, s := range []string{"0", "19.99", "1234567.89", "0.01"} {
		d := decimal.RequireFromString(s)
		v, err := toDecimal128(d)
		require.NoError(t, err)

		back, err := fromDecimal128(v)
		require.NoError(t, err)
		assert.True(t, d.Equal(back), "expected %s, got %s", d, back)
	}
}

func TestFromDecimal128Exponent(t *testing.T) {
	v, err := primitive.ParseDecimal128("1.5E+3")
	require.NoError(t, err)

	d, err := fromDecimal128(v)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1500).Equal(d))
}

func TestProductDocRoundTrip(t *testing.T) {
	price, err := domain.NewUSD(decimal.RequireFromString("25.50"))
	require.NoError(t, err)
	p, err := domain.NewProduct("Lamp", "Desk lamp", price, uuid.New(), 4)
	require.NoError(t, err)

	doc, err := toProductDoc(p)
	require.NoError(t, err)
	assert.Equal(t, p.ID().String(), doc.ID)
	assert.Equal(t, "USD", doc.PriceCurrency)

	got, err := doc.toDomain()
	require.NoError(t, err)
	assert.Equal(t, p.ID(), got.ID())
	assert.Equal(t, p.CategoryID(), got.CategoryID())
	assert.True(t, p.Price().Equal(got.Price()))
	assert.Equal(t, 4, got.StockQuantity())
}

func TestCategoryDocRejectsBadID(t *testing.T) {
	doc := categoryDoc{ID: "not-a-uuid", Name: "Books", CreatedAt: time.Now()}
	_, err := doc.toDomain()
	assert.Error(t, err)
}

func TestSubstringEscapesRegex(t *testing.T) {
	got := substring("  a.b* ")
	assert.Equal(t, bson.M{"$regex": `a\.b\*`, "$options": "i"}, got)
}

func TestSearchFilter(t *testing.T) {
	assert.Empty(t, searchFilter(ports.ProductSearch{Term: "   "}))

	id := uuid.New()
	f := searchFilter(ports.ProductSearch{Term: "lap", CategoryID: &id})
	assert.Equal(t, id.String(), f["category_id"])
	assert.Contains(t, f, "name")
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "op"))
	assert.True(t, domain.IsCancelled(translate(context.Canceled, "op")))
	assert.True(t, domain.IsCancelled(translate(errors.Wrap(context.DeadlineExceeded, "x"), "op")))

	err := translate(errors.New("boom"), "insert product")
	assert.EqualError(t, err, "insert product: boom")
}
