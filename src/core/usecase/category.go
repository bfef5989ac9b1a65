package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"inventory/src/core/domain"
	"inventory/src/core/ports"
)

// CreateCategoryCommand creates a category with a unique name.
type CreateCategoryCommand struct {
	Name        string `json:"name" validate:"notblank,max=100"`
	Description string `json:"description" validate:"max=1000"`
}

// UpdateCategoryCommand changes the supplied fields of a category.
type UpdateCategoryCommand struct {
	ID          uuid.UUID               `json:"id" validate:"required"`
	Name        domain.Optional[string] `json:"name" validate:"omitempty,notblank,max=100"`
	Description domain.Optional[string] `json:"description" validate:"omitempty,max=1000"`
}

// IsEmpty reports that neither field was supplied.
func (c UpdateCategoryCommand) IsEmpty() bool {
	return !c.Name.IsSet() && !c.Description.IsSet()
}

// DeleteCategoryCommand removes a category without products.
type DeleteCategoryCommand struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

// GetCategoriesQuery lists every category.
type GetCategoriesQuery struct{}

// GetCategoryByIDQuery loads one category.
type GetCategoryByIDQuery struct {
	ID uuid.UUID `json:"id" validate:"required"`
}

// CreateCategoryHandler handles CreateCategoryCommand.
type CreateCategoryHandler struct {
	categories ports.CategoryRepository
	log        *slog.Logger
}

// NewCreateCategoryHandler creates a new CreateCategoryHandler.
func NewCreateCategoryHandler(categories ports.CategoryRepository, log *slog.Logger) *CreateCategoryHandler {
	return &CreateCategoryHandler{categories: categories, log: log}
}

// Handle rejects a name that an existing category already uses (exact match).
func (h *CreateCategoryHandler) Handle(ctx context.Context, cmd CreateCategoryCommand) (*CategoryDTO, error) {
	name := strings.TrimSpace(cmd.Name)
	if err := ensureNameFree(ctx, h.categories, name, uuid.Nil); err != nil {
		return nil, err
	}

	c, err := domain.NewCategory(name, cmd.Description)
	if err != nil {
		return nil, err
	}
	if err := h.categories.Create(ctx, c); err != nil {
		return nil, err
	}

	h.log.Info("category created", "category_id", c.ID(), "name", c.Name())
	return toCategoryDTO(c, 0), nil
}

// UpdateCategoryHandler handles UpdateCategoryCommand.
type UpdateCategoryHandler struct {
	categories ports.CategoryRepository
	log        *slog.Logger
}

// NewUpdateCategoryHandler creates a new UpdateCategoryHandler.
func NewUpdateCategoryHandler(categories ports.CategoryRepository, log *slog.Logger) *UpdateCategoryHandler {
	return &UpdateCategoryHandler{categories: categories, log: log}
}

func (h *UpdateCategoryHandler) Handle(ctx context.Context, cmd UpdateCategoryCommand) (*CategoryDTO, error) {
	c, err := h.categories.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	patch := domain.CategoryPatch{Description: cmd.Description}
	if name, ok := cmd.Name.Get(); ok {
		name = strings.TrimSpace(name)
		if err := ensureNameFree(ctx, h.categories, name, c.ID()); err != nil {
			return nil, err
		}
		patch.Name = domain.Some(name)
	}

	if err := c.PartialUpdate(patch); err != nil {
		return nil, err
	}
	if err := h.categories.Update(ctx, c); err != nil {
		return nil, err
	}

	updated, count, err := h.categories.GetByIDWithProductCount(ctx, c.ID())
	if err != nil {
		return nil, err
	}

	h.log.Info("category updated", "category_id", c.ID())
	return toCategoryDTO(updated, count), nil
}

// DeleteCategoryHandler handles DeleteCategoryCommand.
type DeleteCategoryHandler struct {
	categories ports.CategoryRepository
	log        *slog.Logger
}

// NewDeleteCategoryHandler creates a new DeleteCategoryHandler.
func NewDeleteCategoryHandler(categories ports.CategoryRepository, log *slog.Logger) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{categories: categories, log: log}
}

// Handle returns false when the category does not exist. A category that
// still has products is kept and ErrHasDependents returned.
func (h *DeleteCategoryHandler) Handle(ctx context.Context, cmd DeleteCategoryCommand) (bool, error) {
	exists, err := h.categories.Exists(ctx, cmd.ID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	hasProducts, err := h.categories.HasProducts(ctx, cmd.ID)
	if err != nil {
		return false, err
	}
	if hasProducts {
		return false, domain.NewHasDependentsError("cannot delete category with existing products")
	}

	if err := h.categories.Delete(ctx, cmd.ID); err != nil {
		if domain.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}

	h.log.Info("category deleted", "category_id", cmd.ID)
	return true, nil
}

// GetCategoriesHandler handles GetCategoriesQuery.
type GetCategoriesHandler struct {
	categories ports.CategoryRepository
}

// NewGetCategoriesHandler creates a new GetCategoriesHandler.
func NewGetCategoriesHandler(categories ports.CategoryRepository) *GetCategoriesHandler {
	return &GetCategoriesHandler{categories: categories}
}

// Handle lists all categories; those without products report a count of 0.
func (h *GetCategoriesHandler) Handle(ctx context.Context, _ GetCategoriesQuery) ([]CategoryDTO, error) {
	all, err := h.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := h.categories.GetAllWithProductCount(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CategoryDTO, 0, len(all))
	for _, c := range all {
		out = append(out, *toCategoryDTO(c, counts[c.ID()]))
	}
	return out, nil
}

// GetCategoryByIDHandler handles GetCategoryByIDQuery.
type GetCategoryByIDHandler struct {
	categories ports.CategoryRepository
}

// NewGetCategoryByIDHandler creates a new GetCategoryByIDHandler.
func NewGetCategoryByIDHandler(categories ports.CategoryRepository) *GetCategoryByIDHandler {
	return &GetCategoryByIDHandler{categories: categories}
}

func (h *GetCategoryByIDHandler) Handle(ctx context.Context, q GetCategoryByIDQuery) (*CategoryDTO, error) {
	c, count, err := h.categories.GetByIDWithProductCount(ctx, q.ID)
	if err != nil {
		return nil, err
	}
	return toCategoryDTO(c, count), nil
}

// ensureNameFree fails with ErrAlreadyExists when a category other than self
// already uses name.
func ensureNameFree(ctx context.Context, categories ports.CategoryRepository, name string, self uuid.UUID) error {
	existing, err := categories.GetByName(ctx, name)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID() == self {
		return nil
	}
	return &domain.DomainError{
		Base:    domain.ErrAlreadyExists,
		Message: fmt.Sprintf("category with name %q already exists", name),
		Field:   "name",
	}
}
