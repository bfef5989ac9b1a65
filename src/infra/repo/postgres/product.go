package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"inventory/src/core/domain"
	"inventory/src/core/ports"
)

// ProductRepository implements ports.ProductRepository.
type ProductRepository struct {
	db  querier
	log *slog.Logger
}

var _ ports.ProductRepository = (*ProductRepository)(nil)

func NewProductRepository(db querier, log *slog.Logger) *ProductRepository {
	return &ProductRepository{db: db, log: log}
}

const productColumns = `id, name, description, price_amount, price_currency, category_id, stock_quantity, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		id          uuid.UUID
		name        string
		description string
		amount      decimal.Decimal
		currency    string
		categoryID  uuid.UUID
		stock       int
		createdAt   time.Time
		updatedAt   *time.Time
	)
	if err := row.Scan(&id, &name, &description, &amount, &currency, &categoryID, &stock, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	price, err := domain.NewMoney(amount, strings.TrimSpace(currency))
	if err != nil {
		return nil, errors.Wrapf(err, "stored price of product %s", id)
	}
	return domain.RehydrateProduct(id, name, description, price, categoryID, stock, createdAt, updatedAt), nil
}

func (r *ProductRepository) list(ctx context.Context, op, q string, args ...any) ([]*domain.Product, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, translate(err, op)
	}
	defer rows.Close()

	out := make([]*domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, translate(err, op)
		}
		out = append(out, p)
	}
	return out, translate(rows.Err(), op)
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRow(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.NewNotFoundError("product")
		}
		return nil, translate(err, "get product")
	}
	return p, nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products ORDER BY name, id`
	return r.list(ctx, "list products", q)
}

func (r *ProductRepository) GetByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE category_id = $1 ORDER BY name, id`
	return r.list(ctx, "list products by category", q, categoryID)
}

func (r *ProductRepository) SearchByName(ctx context.Context, term string) ([]*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE name ILIKE $1 ORDER BY name, id`
	return r.list(ctx, "search products", q, likePattern(term))
}

func (r *ProductRepository) GetLowStock(ctx context.Context) ([]*domain.Product, error) {
	const q = `SELECT ` + productColumns + ` FROM products WHERE stock_quantity < $1 ORDER BY name, id`
	return r.list(ctx, "list low stock products", q, domain.LowStockThreshold)
}

func (r *ProductRepository) GetPaged(ctx context.Context, page, pageSize int) ([]*domain.Product, int, error) {
	return r.Search(ctx, ports.ProductSearch{Page: page, PageSize: pageSize})
}

// Search filters by name substring and category in SQL and returns one page
// plus the total number of matches.
func (r *ProductRepository) Search(ctx context.Context, s ports.ProductSearch) ([]*domain.Product, int, error) {
	var (
		where []string
		args  []any
	)
	if term := strings.TrimSpace(s.Term); term != "" {
		args = append(args, likePattern(term))
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if s.CategoryID != nil {
		args = append(args, *s.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	filter := ""
	if len(where) > 0 {
		filter = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+filter, args...).Scan(&total); err != nil {
		return nil, 0, translate(err, "count products")
	}

	pageArgs := append(args, s.PageSize, s.Offset())
	q := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY name, id LIMIT $%d OFFSET $%d`,
		productColumns, filter, len(args)+1, len(args)+2)
	items, err := r.list(ctx, "page products", q, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	const q = `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, q,
		p.ID(), p.Name(), p.Description(),
		p.Price().Amount(), p.Price().Currency(),
		p.CategoryID(), p.StockQuantity(),
		p.CreatedAt(), p.UpdatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewAlreadyExistsError("product id already exists")
		}
		return translate(err, "insert product")
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	const q = `
		UPDATE products
		SET name = $2, description = $3, price_amount = $4, price_currency = $5,
		    category_id = $6, stock_quantity = $7, updated_at = $8
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, q,
		p.ID(), p.Name(), p.Description(),
		p.Price().Amount(), p.Price().Currency(),
		p.CategoryID(), p.StockQuantity(), p.UpdatedAt(),
	)
	if err != nil {
		return translate(err, "update product")
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("product")
	}
	r.log.Debug("product row updated", "product_id", p.ID())
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translate(err, "delete product")
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("product")
	}
	return nil
}

func (r *ProductRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&ok)
	return ok, translate(err, "product exists")
}
