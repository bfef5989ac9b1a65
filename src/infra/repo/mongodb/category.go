package mongodb

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"inventory/src/core/domain"
	"inventory/src/core/ports"
)

// CategoryRepository implements ports.CategoryRepository.
type CategoryRepository struct {
	categories *mongo.Collection
	products   *mongo.Collection
	log        *slog.Logger
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

func NewCategoryRepository(database *mongo.Database, log *slog.Logger) *CategoryRepository {
	return &CategoryRepository{
		categories: database.Collection(categoriesCollection),
		products:   database.Collection(productsCollection),
		log:        log,
	}
}

func (r *CategoryRepository) findOne(ctx context.Context, filter bson.M, op string) (*domain.Category, error) {
	var doc categoryDoc
	if err := r.categories.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewNotFoundError("category")
		}
		return nil, translate(err, op)
	}
	return doc.toDomain()
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()}, "get category")
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]*domain.Category, error) {
	cur, err := r.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, translate(err, "list categories")
	}
	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate(err, "decode categories")
	}

	out := make([]*domain.Category, 0, len(docs))
	for _, d := range docs {
		c, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.findOne(ctx, bson.M{"name": name}, "get category by name")
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	if _, err := r.categories.InsertOne(ctx, toCategoryDoc(c)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.NewAlreadyExistsError("category name already exists")
		}
		return translate(err, "insert category")
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	res, err := r.categories.ReplaceOne(ctx, bson.M{"_id": c.ID().String()}, toCategoryDoc(c))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.NewAlreadyExistsError("category name already exists")
		}
		return translate(err, "update category")
	}
	if res.MatchedCount == 0 {
		return domain.NewNotFoundError("category")
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.categories.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return translate(err, "delete category")
	}
	if res.DeletedCount == 0 {
		return domain.NewNotFoundError("category")
	}
	r.log.Debug("category document deleted", "category_id", id)
	return nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.categories.CountDocuments(ctx, bson.M{"_id": id.String()}, options.Count().SetLimit(1))
	return n > 0, translate(err, "category exists")
}

func (r *CategoryRepository) HasProducts(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.products.CountDocuments(ctx, bson.M{"category_id": id.String()}, options.Count().SetLimit(1))
	return n > 0, translate(err, "category has products")
}

type countRow struct {
	ID    string `bson:"_id"`
	Count int    `bson:"count"`
}

func (r *CategoryRepository) GetAllWithProductCount(ctx context.Context) (map[uuid.UUID]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.products.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err, "count products per category")
	}
	var rows []countRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, translate(err, "decode product counts")
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			continue
		}
		counts[id] = row.Count
	}
	return counts, nil
}

func (r *CategoryRepository) GetByIDWithProductCount(ctx context.Context, id uuid.UUID) (*domain.Category, int, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	n, err := r.products.CountDocuments(ctx, bson.M{"category_id": id.String()})
	if err != nil {
		return nil, 0, translate(err, "count category products")
	}
	return c, int(n), nil
}
