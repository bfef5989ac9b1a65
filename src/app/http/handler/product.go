package handler

import (
	"github.com/gin-gonic/gin"

	"inventory/src/app/http/dto"
	"inventory/src/app/http/response"
	"inventory/src/app/middleware"
	"inventory/src/core/usecase"
)

// ProductHandler handles product endpoints.
type ProductHandler struct {
	uc *usecase.Handlers
}

func NewProductHandler(uc *usecase.Handlers) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func bindListParams(c *gin.Context) (dto.ProductListParams, bool) {
	var p dto.ProductListParams
	if err := c.ShouldBindQuery(&p); err != nil {
		response.BadRequest(c, "invalid query: "+err.Error(), middleware.GetRequestID(c))
		return p, false
	}
	return p, true
}

// List pages through products filtered by name and category.
// GET /api/products?search=&categoryId=&page=&pageSize=
func (h *ProductHandler) List(c *gin.Context) {
	params, ok := bindListParams(c)
	if !ok {
		return
	}
	categoryID, err := params.CategoryUUID()
	if err != nil {
		fail(c, err)
		return
	}
	out, err := h.uc.SearchProducts.Handle(c.Request.Context(), params.ToSearchQuery(categoryID))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, out)
}

// ListPaged is the simple listing where a name search wins over the
// category filter.
// GET /api/products/list?searchName=&categoryId=&page=&pageSize=
func (h *ProductHandler) ListPaged(c *gin.Context) {
	params, ok := bindListParams(c)
	if !ok {
		return
	}
	out, err := h.uc.GetProducts.Handle(c.Request.Context(), params.ToProductsQuery())
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, out)
}

// LowStock lists products below the low-stock threshold.
// GET /api/products/low-stock
func (h *ProductHandler) LowStock(c *gin.Context) {
	out, err := h.uc.GetLowStockProducts.Handle(c.Request.Context(), usecase.GetLowStockProductsQuery{})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, out)
}

// Get returns one product.
// GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	out, err := h.uc.GetProductByID.Handle(c.Request.Context(), usecase.GetProductByIDQuery{ID: id})
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, out)
}

// Create adds a product to an existing category.
// POST /api/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.uc.CreateProduct.Handle(c.Request.Context(), req.ToCommand())
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, "/api/products/"+out.ID.String(), out)
}

// Update changes the supplied fields of a product.
// PUT /api/products/:id and PATCH /api/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.MatchesPath(id) {
		response.BadRequest(c, "id in path does not match id in body", middleware.GetRequestID(c))
		return
	}

	out, err := h.uc.UpdateProduct.Handle(c.Request.Context(), req.ToCommand(id))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, out)
}

// UpdateStock sets the stock level.
// PATCH /api/products/:id/stock
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateStockRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.ID != id {
		response.BadRequest(c, "id in path does not match id in body", middleware.GetRequestID(c))
		return
	}

	out, err := h.uc.UpdateProductStock.Handle(c.Request.Context(), req.ToCommand())
	if err != nil {
		fail(c, err)
		return
	}
	if out == nil {
		response.NotFound(c, "product not found", middleware.GetRequestID(c))
		return
	}
	response.NoContent(c)
}

// AddStock receives goods into stock.
// POST /api/products/:id/stock/add
func (h *ProductHandler) AddStock(c *gin.Context) {
	h.adjustStock(c, usecase.StockAdd)
}

// RemoveStock takes goods out of stock; removing more than is held fails
// with 422.
// POST /api/products/:id/stock/remove
func (h *ProductHandler) RemoveStock(c *gin.Context) {
	h.adjustStock(c, usecase.StockRemove)
}

func (h *ProductHandler) adjustStock(c *gin.Context, direction usecase.StockDirection) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AdjustStockRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.uc.AdjustProductStock.Handle(c.Request.Context(), req.ToCommand(id, direction))
	if err != nil {
		fail(c, err)
		return
	}
	response.OK(c, out)
}

// Delete removes a product.
// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	deleted, err := h.uc.DeleteProduct.Handle(c.Request.Context(), usecase.DeleteProductCommand{ID: id})
	if err != nil {
		fail(c, err)
		return
	}
	if !deleted {
		response.NotFound(c, "product not found", middleware.GetRequestID(c))
		return
	}
	response.NoContent(c)
}
