package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ProductPatch carries the fields of a partial product update.
type ProductPatch struct {
	Name          Optional[string]
	Description   Optional[string]
	Price         Optional[Money]
	CategoryID    Optional[uuid.UUID]
	StockQuantity Optional[int]
}

// Product is a stock keeping unit that belongs to one category.
type Product struct {
	id            uuid.UUID
	name          string
	description   string
	price         Money
	categoryID    uuid.UUID
	stockQuantity int
	createdAt     time.Time
	updatedAt     *time.Time
}

// NewProduct validates every field and creates a product with a fresh id.
func NewProduct(name, description string, price Money, categoryID uuid.UUID, stock int) (*Product, error) {
	p := &Product{id: uuid.New(), createdAt: now()}
	if err := p.assign(name, description, price, categoryID, stock); err != nil {
		return nil, err
	}
	return p, nil
}

// RehydrateProduct rebuilds a stored product without re-validating it.
func RehydrateProduct(
	id uuid.UUID,
	name, description string,
	price Money,
	categoryID uuid.UUID,
	stock int,
	createdAt time.Time,
	updatedAt *time.Time,
) *Product {
	return &Product{
		id:            id,
		name:          name,
		description:   description,
		price:         price,
		categoryID:    categoryID,
		stockQuantity: stock,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (p *Product) ID() uuid.UUID {
	return p.id
}

func (p *Product) Name() string {
	return p.name
}

func (p *Product) Description() string {
	return p.description
}

func (p *Product) Price() Money {
	return p.price
}

func (p *Product) CategoryID() uuid.UUID {
	return p.categoryID
}

func (p *Product) StockQuantity() int {
	return p.stockQuantity
}

func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Product) UpdatedAt() *time.Time {
	return p.updatedAt
}

// IsLowStock reports whether stock is below LowStockThreshold.
func (p *Product) IsLowStock() bool {
	return p.stockQuantity < LowStockThreshold
}

// StockValue is price times quantity on hand.
func (p *Product) StockValue() Money {
	v, err := p.price.Multiply(p.stockQuantity)
	if err != nil {
		return p.price
	}
	return v
}

// Update replaces every field and always stamps UpdatedAt.
func (p *Product) Update(name, description string, price Money, categoryID uuid.UUID, stock int) error {
	if err := p.assign(name, description, price, categoryID, stock); err != nil {
		return err
	}
	p.touch()
	return nil
}

// PartialUpdate sets only the supplied fields whose value differs from the
// current one. UpdatedAt moves only if something changed. Every supplied value
// is validated before any is applied.
func (p *Product) PartialUpdate(patch ProductPatch) error {
	next := *p

	if v, ok := patch.Name.Get(); ok {
		n, err := normalizeProductName(v)
		if err != nil {
			return err
		}
		next.name = n
	}
	if v, ok := patch.Description.Get(); ok {
		d, err := normalizeDescription(v)
		if err != nil {
			return err
		}
		next.description = d
	}
	if v, ok := patch.Price.Get(); ok {
		if err := validatePrice(v); err != nil {
			return err
		}
		next.price = v
	}
	if v, ok := patch.CategoryID.Get(); ok {
		if err := validateCategoryID(v); err != nil {
			return err
		}
		next.categoryID = v
	}
	if v, ok := patch.StockQuantity.Get(); ok {
		if err := validateStock(v); err != nil {
			return err
		}
		next.stockQuantity = v
	}

	changed := next.name != p.name ||
		next.description != p.description ||
		!next.price.Equal(p.price) ||
		next.categoryID != p.categoryID ||
		next.stockQuantity != p.stockQuantity
	if !changed {
		return nil
	}

	*p = next
	p.touch()
	return nil
}

// UpdateStock sets the quantity on hand.
func (p *Product) UpdateStock(qty int) error {
	if err := validateStock(qty); err != nil {
		return err
	}
	p.stockQuantity = qty
	p.touch()
	return nil
}

// AddStock increases the quantity on hand by qty.
func (p *Product) AddStock(qty int) error {
	if qty <= 0 {
		return NewValidationError("quantity", "quantity to add must be positive")
	}
	p.stockQuantity += qty
	p.touch()
	return nil
}

// RemoveStock decreases the quantity on hand by qty. It fails without
// touching the stock if fewer than qty units are available.
func (p *Product) RemoveStock(qty int) error {
	if qty <= 0 {
		return NewValidationError("quantity", "quantity to remove must be positive")
	}
	if qty > p.stockQuantity {
		return NewInvalidOperationError(
			fmt.Sprintf("insufficient stock: requested %d, available %d", qty, p.stockQuantity))
	}
	p.stockQuantity -= qty
	p.touch()
	return nil
}

// Clone returns an independent copy.
func (p *Product) Clone() *Product {
	cp := *p
	return &cp
}

func (p *Product) assign(name, description string, price Money, categoryID uuid.UUID, stock int) error {
	n, err := normalizeProductName(name)
	if err != nil {
		return err
	}
	d, err := normalizeDescription(description)
	if err != nil {
		return err
	}
	if err := validatePrice(price); err != nil {
		return err
	}
	if err := validateCategoryID(categoryID); err != nil {
		return err
	}
	if err := validateStock(stock); err != nil {
		return err
	}
	p.name = n
	p.description = d
	p.price = price
	p.categoryID = categoryID
	p.stockQuantity = stock
	return nil
}

func (p *Product) touch() {
	t := now()
	p.updatedAt = &t
}

func normalizeProductName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", NewValidationError("name", "product name is required")
	}
	if utf8.RuneCountInString(n) > MaxProductNameLength {
		return "", NewValidationError("name",
			fmt.Sprintf("product name cannot exceed %d characters", MaxProductNameLength))
	}
	return n, nil
}

func normalizeDescription(description string) (string, error) {
	d := strings.TrimSpace(description)
	if d == "" {
		return "", NewValidationError("description", "product description is required")
	}
	return d, nil
}

// validatePrice rejects the zero Money, which stands in for a missing price.
func validatePrice(m Money) error {
	if m.IsZero() {
		return NewValidationError("price", "price is required")
	}
	return nil
}

func validateCategoryID(id uuid.UUID) error {
	if id == uuid.Nil {
		return NewValidationError("categoryId", "category id is required")
	}
	return nil
}

func validateStock(qty int) error {
	if qty < 0 {
		return NewValidationError("stockQuantity", "stock quantity cannot be negative")
	}
	return nil
}
