package handler

import (
	"github.com/gin-gonic/gin"

	"inventory/src/app/http/dto"
	"inventory/src/app/http/response"
	"inventory/src/app/middleware"
	"inventory/src/core/usecase"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	uc *usecase.Handlers
}

func NewCategoryHandler(uc *usecase.Handlers) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List returns every category with its product count.
// GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	out, err := h.uc.GetCategories.Handle(c.Request.Context(), usecase.GetCategoriesQuery{})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, out)
}

// Get returns one category.
// GET /api/categories/:id
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.uc.GetCategoryByID.Handle(c.Request.Context(), usecase.GetCategoryByIDQuery{ID: id})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, out)
}

// Create adds a category.
// POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.uc.CreateCategory.Handle(c.Request.Context(), req.ToCommand())
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, "/api/categories/"+out.ID.String(), out)
}

// Update replaces the name and description of a category.
// PUT /api/categories/:id
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID != id {
		response.BadRequest(c, "id in path does not match id in body", middleware.GetRequestID(c))
		return
	}

	out, err := h.uc.UpdateCategory.Handle(c.Request.Context(), req.ToCommand())
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, out)
}

// Delete removes a category that has no products.
// DELETE /api/categories/:id
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.uc.DeleteCategory.Handle(c.Request.Context(), usecase.DeleteCategoryCommand{ID: id})
	if err != nil {
		fail(c, err)
		return
	}
	if !deleted {
		response.NotFound(c, "category not found", middleware.GetRequestID(c))
		return
	}
	response.NoContent(c)
}

// Products lists the products of one category.
// GET /api/categories/:id/products
func (h *CategoryHandler) Products(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.uc.GetProductsByCategory.Handle(c.Request.Context(), usecase.GetProductsByCategoryQuery{CategoryID: id})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, out)
}
