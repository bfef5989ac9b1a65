package mongodb

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"inventory/src/core/domain"
	"inventory/src/core/ports"
)

// DashboardReader implements ports.DashboardReader with aggregation pipelines.
type DashboardReader struct {
	categories *mongo.Collection
	products   *mongo.Collection
}

var _ ports.DashboardReader = (*DashboardReader)(nil)

func NewDashboardReader(database *mongo.Database) *DashboardReader {
	return &DashboardReader{
		categories: database.Collection(categoriesCollection),
		products:   database.Collection(productsCollection),
	}
}

// stockValue is price times stock of the document in scope, as Decimal128.
var stockValue = bson.D{{Key: "$multiply", Value: bson.A{"$price_amount", "$stock_quantity"}}}

func (r *DashboardReader) TotalProducts(ctx context.Context) (int, error) {
	n, err := r.products.CountDocuments(ctx, bson.M{})
	return int(n), translate(err, "count products")
}

type totalRow struct {
	Total primitive.Decimal128 `bson:"total"`
}

func (r *DashboardReader) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: stockValue}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "total", Value: bson.D{{Key: "$toDecimal", Value: "$total"}}},
		}}},
	}
	cur, err := r.products.Aggregate(ctx, pipeline)
	if err != nil {
		return decimal.Zero, translate(err, "sum stock value")
	}
	var rows []totalRow
	if err := cur.All(ctx, &rows); err != nil {
		return decimal.Zero, translate(err, "decode stock value")
	}
	if len(rows) == 0 {
		return decimal.Zero, nil
	}
	return fromDecimal128(rows[0].Total)
}

func (r *DashboardReader) LowStockProductCount(ctx context.Context) (int, error) {
	n, err := r.products.CountDocuments(ctx, bson.M{"stock_quantity": bson.M{"$lt": domain.LowStockThreshold}})
	return int(n), translate(err, "count low stock products")
}

func (r *DashboardReader) TotalCategories(ctx context.Context) (int, error) {
	n, err := r.categories.CountDocuments(ctx, bson.M{})
	return int(n), translate(err, "count categories")
}

type breakdownRow struct {
	ID    string               `bson:"_id"`
	Name  string               `bson:"name"`
	Count int                  `bson:"count"`
	Total primitive.Decimal128 `bson:"total"`
}

// ProductsByCategory starts from categories and looks up their products, so
// categories without products report zeros.
func (r *DashboardReader) ProductsByCategory(ctx context.Context) ([]ports.CategoryBreakdown, error) {
	itemValue := bson.D{{Key: "$multiply", Value: bson.A{"$$p.price_amount", "$$p.stock_quantity"}}}
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: productsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "category_id"},
			{Key: "as", Value: "items"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "name", Value: 1},
			{Key: "count", Value: bson.D{{Key: "$size", Value: "$items"}}},
			{Key: "total", Value: bson.D{{Key: "$toDecimal", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$map", Value: bson.D{
					{Key: "input", Value: "$items"},
					{Key: "as", Value: "p"},
					{Key: "in", Value: itemValue},
				}},
			}}}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
	}
	cur, err := r.categories.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err, "products by category")
	}
	var rows []breakdownRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, translate(err, "decode category breakdown")
	}

	out := make([]ports.CategoryBreakdown, 0, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "stored category id %q", row.ID)
		}
		total, err := fromDecimal128(row.Total)
		if err != nil {
			return nil, err
		}
		out = append(out, ports.CategoryBreakdown{
			CategoryID:   id,
			CategoryName: row.Name,
			ProductCount: row.Count,
			TotalValue:   total,
		})
	}
	return out, nil
}
