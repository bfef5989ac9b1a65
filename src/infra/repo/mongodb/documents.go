// Package mongodb implements the repository ports on MongoDB. Ids are stored
// as uuid strings in _id and money amounts as Decimal128.
package mongodb

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory/src/core/domain"
	"inventory/src/core/ports"
	"inventory/src/infra/db"
)

const (
	categoriesCollection = "categories"
	productsCollection   = "products"
)

type categoryDoc struct {
	ID          string     `bson:"_id"`
	Name        string     `bson:"name"`
	Description string     `bson:"description"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   *time.Time `bson:"updated_at,omitempty"`
}

type productDoc struct {
	ID            string               `bson:"_id"`
	Name          string               `bson:"name"`
	Description   string               `bson:"description"`
	PriceAmount   primitive.Decimal128 `bson:"price_amount"`
	PriceCurrency string               `bson:"price_currency"`
	CategoryID    string               `bson:"category_id"`
	StockQuantity int                  `bson:"stock_quantity"`
	CreatedAt     time.Time            `bson:"created_at"`
	UpdatedAt     *time.Time           `bson:"updated_at,omitempty"`
}

// New returns the Mongo-backed ports for one database.
func New(m *db.Mongo, log *slog.Logger) ports.Store {
	return ports.Store{
		Categories: NewCategoryRepository(m.Database, log),
		Products:   NewProductRepository(m.Database, log),
		Dashboard:  NewDashboardReader(m.Database),
		Health:     m,
	}
}

// EnsureIndexes creates the unique category name index and the product
// lookup indexes. It is safe to call on every start.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	_, err := database.Collection(categoriesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return translate(err, "create category indexes")
	}
	_, err = database.Collection(productsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "stock_quantity", Value: 1}}},
	})
	return translate(err, "create product indexes")
}

func toCategoryDoc(c *domain.Category) categoryDoc {
	return categoryDoc{
		ID:          c.ID().String(),
		Name:        c.Name(),
		Description: c.Description(),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}
}

func (d categoryDoc) toDomain() (*domain.Category, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "stored category id %q", d.ID)
	}
	return domain.RehydrateCategory(id, d.Name, d.Description, d.CreatedAt, d.UpdatedAt), nil
}

func toProductDoc(p *domain.Product) (productDoc, error) {
	amount, err := toDecimal128(p.Price().Amount())
	if err != nil {
		return productDoc{}, err
	}
	return productDoc{
		ID:            p.ID().String(),
		Name:          p.Name(),
		Description:   p.Description(),
		PriceAmount:   amount,
		PriceCurrency: p.Price().Currency(),
		CategoryID:    p.CategoryID().String(),
		StockQuantity: p.StockQuantity(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}, nil
}

func (d productDoc) toDomain() (*domain.Product, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "stored product id %q", d.ID)
	}
	categoryID, err := uuid.Parse(d.CategoryID)
	if err != nil {
		return nil, errors.Wrapf(err, "stored category id %q of product %s", d.CategoryID, id)
	}
	amount, err := fromDecimal128(d.PriceAmount)
	if err != nil {
		return nil, err
	}
	price, err := domain.NewMoney(amount, d.PriceCurrency)
	if err != nil {
		return nil, errors.Wrapf(err, "stored price of product %s", id)
	}
	return domain.RehydrateProduct(id, d.Name, d.Description, price, categoryID, d.StockQuantity, d.CreatedAt, d.UpdatedAt), nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, errors.Wrapf(err, "convert %s to decimal128", d)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "convert decimal128 %s", v)
	}
	return d, nil
}

// translate maps driver errors onto the domain taxonomy.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domain.NewCancelledError(err)
	default:
		return errors.Wrap(err, op)
	}
}

// substring builds a case-insensitive regex filter matching term literally.
func substring(term string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(strings.TrimSpace(term)), "$options": "i"}
}
