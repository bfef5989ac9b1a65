package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"inventory/src/core/domain"
	"inventory/src/core/ports"
)

// CategoryRepository implements ports.CategoryRepository.
type CategoryRepository struct {
	db  querier
	log *slog.Logger
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

func NewCategoryRepository(db querier, log *slog.Logger) *CategoryRepository {
	return &CategoryRepository{db: db, log: log}
}

const categoryColumns = `id, name, description, created_at, updated_at`

func scanCategory(row pgx.Row, extra ...any) (*domain.Category, error) {
	var (
		id          uuid.UUID
		name        string
		description string
		createdAt   time.Time
		updatedAt   *time.Time
	)
	dest := append([]any{&id, &name, &description, &createdAt, &updatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return domain.RehydrateCategory(id, name, description, createdAt, updatedAt), nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	const q = `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	c, err := scanCategory(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NewNotFoundError("category")
		}
		return nil, translate(err, "get category")
	}
	return c, nil
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]*domain.Category, error) {
	const q = `SELECT ` + categoryColumns + ` FROM categories ORDER BY name`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, translate(err, "list categories")
	}
	defer rows.Close()

	var out []*domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, translate(err, "scan category")
		}
		out = append(out, c)
	}
	return out, translate(rows.Err(), "list categories")
}

func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	const q = `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1`
	c, err := scanCategory(r.db.QueryRow(ctx, q, name))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NewNotFoundError("category")
		}
		return nil, translate(err, "get category by name")
	}
	return c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	const q = `
		INSERT INTO categories (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, q, c.ID(), c.Name(), c.Description(), c.CreatedAt(), c.UpdatedAt())
	if err != nil {
		if isUniqueViolation(err) {
			r.log.Debug("category insert hit unique constraint", "name", c.Name())
			return domain.NewAlreadyExistsError("category name already exists")
		}
		return translate(err, "insert category")
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	const q = `
		UPDATE categories
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, q, c.ID(), c.Name(), c.Description(), c.UpdatedAt())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewAlreadyExistsError("category name already exists")
		}
		return translate(err, "update category")
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("category")
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete category")
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("category")
	}
	return nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&ok)
	return ok, translate(err, "category exists")
}

func (r *CategoryRepository) HasProducts(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE category_id = $1)`, id).Scan(&ok)
	return ok, translate(err, "category has products")
}

func (r *CategoryRepository) GetAllWithProductCount(ctx context.Context) (map[uuid.UUID]int, error) {
	const q = `
		SELECT c.id, COUNT(p.id)
		FROM categories c
		JOIN products p ON p.category_id = c.id
		GROUP BY c.id
	`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, translate(err, "count products per category")
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var (
			id uuid.UUID
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, translate(err, "scan product count")
		}
		counts[id] = n
	}
	return counts, translate(rows.Err(), "count products per category")
}

func (r *CategoryRepository) GetByIDWithProductCount(ctx context.Context, id uuid.UUID) (*domain.Category, int, error) {
	const q = `
		SELECT c.id, c.name, c.description, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id)
		FROM categories c
		WHERE c.id = $1
	`
	var count int
	c, err := scanCategory(r.db.QueryRow(ctx, q, id), &count)
	if err != nil {
		if isNoRows(err) {
			return nil, 0, domain.NewNotFoundError("category")
		}
		return nil, 0, translate(err, "get category with count")
	}
	return c, count, nil
}
