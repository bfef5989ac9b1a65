package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"inventory/src/core/domain"
	"inventory/src/core/ports"
)

// CreateProductCommand creates a product in an existing category.
// An empty Currency means domain.DefaultCurrency.
type CreateProductCommand struct {
	Name          string          `json:"name" validate:"notblank,max=200"`
	Description   string          `json:"description" validate:"notblank,max=2000"`
	Price         decimal.Decimal `json:"price" validate:"gte=0"`
	Currency      string          `json:"currency" validate:"omitempty,len=3,alpha"`
	CategoryID    uuid.UUID       `json:"categoryId" validate:"required"`
	StockQuantity int             `json:"stockQuantity" validate:"gte=0"`
}

// UpdateProductCommand changes the supplied fields of a product.
type UpdateProductCommand struct {
	ID            uuid.UUID                        `json:"id" validate:"required"`
	Name          domain.Optional[string]          `json:"name" validate:"omitempty,notblank,max=200"`
	Description   domain.Optional[string]          `json:"description" validate:"omitempty,notblank,max=2000"`
	Price         domain.Optional[decimal.Decimal] `json:"price" validate:"omitempty,gte=0"`
	Currency      domain.Optional[string]          `json:"currency" validate:"omitempty,len=3,alpha"`
	CategoryID    domain.Optional[uuid.UUID]       `json:"categoryId"`
	StockQuantity domain.Optional[int]             `json:"stockQuantity" validate:"omitempty,gte=0"`
}

// IsEmpty reports that no field was supplied.
func (c UpdateProductCommand) IsEmpty() bool {
	return !c.Name.IsSet() &&
		!c.Description.IsSet() &&
		!c.Price.IsSet() &&
		!c.Currency.IsSet() &&
		!c.CategoryID.IsSet() &&
		!c.StockQuantity.IsSet()
}

// UpdateProductStockCommand sets the quantity on hand.
type UpdateProductStockCommand struct {
	ID       uuid.UUID `json:"id" validate:"required"`
	Quantity int       `json:"quantity" validate:"gte=0"`
}

// StockDirection selects AddStock or RemoveStock.
type StockDirection string

const (
	StockAdd    StockDirection = "add"
	StockRemove StockDirection = "remove"
)

// AdjustProductStockCommand moves stock up or down by a positive quantity.
type AdjustProductStockCommand struct {
	ID        uuid.UUID      `json:"id" validate:"required"`
	Direction StockDirection `json:"direction" validate:"oneof=add remove"`
	Quantity  int            `json:"quantity" validate:"gt=0"`
}

// DeleteProductCommand removes a product.
type DeleteProductCommand struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

// CreateProductHandler handles CreateProductCommand.
type CreateProductHandler struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	mapper     productMapper
	log        *slog.Logger
}

// NewCreateProductHandler creates a new CreateProductHandler.
func NewCreateProductHandler(products ports.ProductRepository, categories ports.CategoryRepository, log *slog.Logger) *CreateProductHandler {
	return &CreateProductHandler{
		products:   products,
		categories: categories,
		mapper:     productMapper{categories: categories},
		log:        log,
	}
}

// Handle verifies the category before building anything, persists the
// product and returns it as stored.
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*ProductDTO, error) {
	if err := ensureCategoryExists(ctx, h.categories, cmd.CategoryID); err != nil {
		return nil, err
	}

	currency := cmd.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	price, err := domain.NewMoney(cmd.Price, currency)
	if err != nil {
		return nil, priceError(err)
	}
	p, err := domain.NewProduct(cmd.Name, cmd.Description, price, cmd.CategoryID, cmd.StockQuantity)
	if err != nil {
		return nil, err
	}
	if err := h.products.Create(ctx, p); err != nil {
		return nil, err
	}

	stored, err := h.products.GetByID(ctx, p.ID())
	if err != nil {
		return nil, err
	}

	h.log.Info("product created", "product_id", p.ID(), "category_id", p.CategoryID())
	return h.mapper.one(ctx, stored)
}

// UpdateProductHandler handles UpdateProductCommand for both PUT and PATCH.
type UpdateProductHandler struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	mapper     productMapper
	log        *slog.Logger
}

// NewUpdateProductHandler creates a new UpdateProductHandler.
func NewUpdateProductHandler(products ports.ProductRepository, categories ports.CategoryRepository, log *slog.Logger) *UpdateProductHandler {
	return &UpdateProductHandler{
		products:   products,
		categories: categories,
		mapper:     productMapper{categories: categories},
		log:        log,
	}
}

// Handle applies the supplied fields. A price or currency on its own is
// combined with the product's current other half.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*ProductDTO, error) {
	p, err := h.products.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if id, ok := cmd.CategoryID.Get(); ok {
		if err := ensureCategoryExists(ctx, h.categories, id); err != nil {
			return nil, err
		}
	}

	patch := domain.ProductPatch{
		Name:          cmd.Name,
		Description:   cmd.Description,
		CategoryID:    cmd.CategoryID,
		StockQuantity: cmd.StockQuantity,
	}
	if cmd.Price.IsSet() || cmd.Currency.IsSet() {
		current := p.Price()
		price, err := domain.NewMoney(
			cmd.Price.OrElse(current.Amount()),
			cmd.Currency.OrElse(current.Currency()),
		)
		if err != nil {
			return nil, priceError(err)
		}
		patch.Price = domain.Some(price)
	}

	if err := p.PartialUpdate(patch); err != nil {
		return nil, err
	}
	if err := h.products.Update(ctx, p); err != nil {
		return nil, err
	}

	stored, err := h.products.GetByID(ctx, p.ID())
	if err != nil {
		return nil, err
	}

	h.log.Info("product updated", "product_id", p.ID())
	return h.mapper.one(ctx, stored)
}

// UpdateProductStockHandler handles UpdateProductStockCommand.
type UpdateProductStockHandler struct {
	products ports.ProductRepository
	mapper   productMapper
	log      *slog.Logger
}

// NewUpdateProductStockHandler creates a new UpdateProductStockHandler.
func NewUpdateProductStockHandler(products ports.ProductRepository, categories ports.CategoryRepository, log *slog.Logger) *UpdateProductStockHandler {
	return &UpdateProductStockHandler{
		products: products,
		mapper:   productMapper{categories: categories},
		log:      log,
	}
}

// Handle returns a nil result and no error when the product does not exist.
func (h *UpdateProductStockHandler) Handle(ctx context.Context, cmd UpdateProductStockCommand) (*ProductDTO, error) {
	p, err := h.products.GetByID(ctx, cmd.ID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if err := p.UpdateStock(cmd.Quantity); err != nil {
		return nil, err
	}
	if err := h.products.Update(ctx, p); err != nil {
		return nil, err
	}

	h.log.Info("product stock set", "product_id", p.ID(), "quantity", p.StockQuantity())
	return h.mapper.one(ctx, p)
}

// AdjustProductStockHandler handles AdjustProductStockCommand.
type AdjustProductStockHandler struct {
	products ports.ProductRepository
	mapper   productMapper
	log      *slog.Logger
}

// NewAdjustProductStockHandler creates a new AdjustProductStockHandler.
func NewAdjustProductStockHandler(products ports.ProductRepository, categories ports.CategoryRepository, log *slog.Logger) *AdjustProductStockHandler {
	return &AdjustProductStockHandler{
		products: products,
		mapper:   productMapper{categories: categories},
		log:      log,
	}
}

func (h *AdjustProductStockHandler) Handle(ctx context.Context, cmd AdjustProductStockCommand) (*ProductDTO, error) {
	p, err := h.products.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	switch cmd.Direction {
	case StockAdd:
		err = p.AddStock(cmd.Quantity)
	case StockRemove:
		err = p.RemoveStock(cmd.Quantity)
	default:
		err = domain.NewValidationError("direction", fmt.Sprintf("unknown stock direction %q", cmd.Direction))
	}
	if err != nil {
		return nil, err
	}
	if err := h.products.Update(ctx, p); err != nil {
		return nil, err
	}

	h.log.Info("product stock adjusted",
		"product_id", p.ID(),
		"direction", cmd.Direction,
		"quantity", cmd.Quantity,
		"stock", p.StockQuantity(),
	)
	return h.mapper.one(ctx, p)
}

// DeleteProductHandler handles DeleteProductCommand.
type DeleteProductHandler struct {
	products ports.ProductRepository
	log      *slog.Logger
}

// NewDeleteProductHandler creates a new DeleteProductHandler.
func NewDeleteProductHandler(products ports.ProductRepository, log *slog.Logger) *DeleteProductHandler {
	return &DeleteProductHandler{products: products, log: log}
}

// Handle returns false when the product does not exist.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) (bool, error) {
	exists, err := h.products.Exists(ctx, cmd.ID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	if err := h.products.Delete(ctx, cmd.ID); err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	h.log.Info("product deleted", "product_id", cmd.ID)
	return true, nil
}

func ensureCategoryExists(ctx context.Context, categories ports.CategoryRepository, id uuid.UUID) error {
	ok, err := categories.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.DomainError{
			Base:    domain.ErrNotFound,
			Message: fmt.Sprintf("category %s not found", id),
			Field:   "categoryId",
		}
	}
	return nil
}

// priceError reports money amount failures against the price field.
func priceError(err error) error {
	if domain.IsValidationError(err) && domain.FieldOf(err) == "amount" {
		return domain.NewValidationError("price", strings.Replace(domain.MessageOf(err), "amount", "price", 1))
	}
	return err
}
