package mongodb

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory/src/core/domain"
	"inventory/src/core/ports"
)

// ProductRepository implements ports.ProductRepository.
type ProductRepository struct {
	products *mongo.Collection
	log      *slog.Logger
}

var _ ports.ProductRepository = (*ProductRepository)(nil)

func NewProductRepository(database *mongo.Database, log *slog.Logger) *ProductRepository {
	return &ProductRepository{products: database.Collection(productsCollection), log: log}
}

var byName = bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}

func (r *ProductRepository) find(ctx context.Context, op string, filter bson.M, opts ...*options.FindOptions) ([]*domain.Product, error) {
	opts = append([]*options.FindOptions{options.Find().SetSort(byName)}, opts...)
	cur, err := r.products.Find(ctx, filter, opts...)
	if err != nil {
		return nil, translate(err, op)
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate(err, op)
	}

	out := make([]*domain.Product, 0, len(docs))
	for _, d := range docs {
		p, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var doc productDoc
	if err := r.products.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFoundError("product")
		}
		return nil, translate(err, "get product")
	}
	return doc.toDomain()
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return r.find(ctx, "list products", bson.M{})
}

func (r *ProductRepository) GetByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Product, error) {
	return r.find(ctx, "list products by category", bson.M{"category_id": categoryID.String()})
}

func (r *ProductRepository) SearchByName(ctx context.Context, term string) ([]*domain.Product, error) {
	return r.find(ctx, "search products", bson.M{"name": substring(term)})
}

func (r *ProductRepository) GetLowStock(ctx context.Context) ([]*domain.Product, error) {
	return r.find(ctx, "list low stock products",
		bson.M{"stock_quantity": bson.M{"$lt": domain.LowStockThreshold}})
}

func (r *ProductRepository) GetPaged(ctx context.Context, page, pageSize int) ([]*domain.Product, int, error) {
	return r.Search(ctx, ports.ProductSearch{Page: page, PageSize: pageSize})
}

func searchFilter(s ports.ProductSearch) bson.M {
	filter := bson.M{}
	if strings.TrimSpace(s.Term) != "" {
		filter["name"] = substring(s.Term)
	}
	if s.CategoryID != nil {
		filter["category_id"] = s.CategoryID.String()
	}
	return filter
}

func (r *ProductRepository) Search(ctx context.Context, s ports.ProductSearch) ([]*domain.Product, int, error) {
	filter := searchFilter(s)
	total, err := r.products.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, translate(err, "count products")
	}

	page := options.Find().SetSkip(int64(s.Offset())).SetLimit(int64(s.PageSize))
	items, err := r.find(ctx, "page products", filter, page)
	if err != nil {
		return nil, 0, err
	}
	return items, int(total), nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	doc, err := toProductDoc(p)
	if err != nil {
		return err
	}
	if _, err := r.products.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.NewAlreadyExistsError("product id already exists")
		}
		return translate(err, "insert product")
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	doc, err := toProductDoc(p)
	if err != nil {
		return err
	}
	res, err := r.products.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return translate(err, "update product")
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFoundError("product")
	}
	r.log.Debug("product document updated", "product_id", p.ID())
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.products.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return translate(err, "delete product")
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFoundError("product")
	}
	return nil
}

func (r *ProductRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.products.CountDocuments(ctx, bson.M{"_id": id.String()}, options.Count().SetLimit(1))
	return n > 0, translate(err, "product exists")
}
