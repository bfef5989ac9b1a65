package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/src/app/http/response"
	"inventory/src/core/usecase"
	"inventory/src/infra/auth"
	"inventory/src/infra/config"
	"inventory/src/infra/logger"
	"inventory/src/infra/repo/memory"
)

type testAPI struct {
	t      *testing.T
	srv    *Server
	tokens *auth.TokenService
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0, ShutdownTimeout: time.Second},
		Store:  config.StoreConfig{Driver: config.DriverMemory},
		Log:    config.LogConfig{Level: "error", Format: "plain"},
		Auth: config.AuthConfig{
			Enabled:   true,
			JWTSecret: "test-secret",
			JWTIssuer: "inventory",
			TokenTTL:  time.Hour,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func newAPI(t *testing.T, mutate ...func(*config.Config)) *testAPI {
	t.Helper()
	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	srv, err := New(cfg, logger.Discard(), memory.New().Ports())
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(config.AuthConfig{
		JWTSecret: "test-secret",
		JWTIssuer: "inventory",
		TokenTTL:  time.Hour,
	})
	require.NoError(t, err)

	return &testAPI{t: t, srv: srv, tokens: tokens}
}

func (a *testAPI) token(roles ...string) string {
	a.t.Helper()
	tok, err := a.tokens.Issue("tester", roles)
	require.NoError(a.t, err)
	return tok
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (a *testAPI) createCategory(token, name string) usecase.CategoryDTO {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/categories", token, map[string]any{"name": name, "description": "desc"})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[usecase.CategoryDTO](a.t, rec)
}

func (a *testAPI) createProduct(token, name string, categoryID fmt.Stringer, stock int) usecase.ProductDTO {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/products", token, map[string]any{
		"name":          name,
		"description":   name + " description",
		"price":         129.99,
		"currency":      "USD",
		"categoryId":    categoryID.String(),
		"stockQuantity": stock,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[usecase.ProductDTO](a.t, rec)
}

func names(products []usecase.ProductDTO) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestHealthNeedsNoAuth(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[usecase.HealthStatus](t, rec).Status)

	rec = api.do(http.MethodGet, "/api/health/detailed", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[usecase.HealthStatus](t, rec)
	assert.Equal(t, "healthy", status.Components["store"].Status)
	assert.Equal(t, config.DriverMemory, status.Components["store"].Backend)
}

func TestAuthentication(t *testing.T) {
	api := newAPI(t)

	rec := api.do(http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodGet, "/api/categories", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodGet, "/api/categories", api.token(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRoleRequirements(t *testing.T) {
	api := newAPI(t)
	reader := api.token()
	manager := api.token(auth.RoleManager)

	rec := api.do(http.MethodPost, "/api/categories", reader, map[string]any{"name": "Books"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c := api.createCategory(manager, "Books")

	rec = api.do(http.MethodDelete, "/api/categories/"+c.ID.String(), manager, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodDelete, "/api/categories/"+c.ID.String(), api.token(auth.RoleAdmin), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthDisabledActsAsAdmin(t *testing.T) {
	api := newAPI(t, func(c *config.Config) {
		c.Auth = config.AuthConfig{Enabled: false}
	})

	c := api.createCategory("", "Garden")
	rec := api.do(http.MethodDelete, "/api/categories/"+c.ID.String(), "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCreateCategorySetsLocation(t *testing.T) {
	api := newAPI(t)
	rec := api.do(http.MethodPost, "/api/categories", api.token(auth.RoleManager),
		map[string]any{"name": "Electronics", "description": "desc"})

	require.Equal(t, http.StatusCreated, rec.Code)
	c := decode[usecase.CategoryDTO](t, rec)
	assert.Equal(t, "/api/categories/"+c.ID.String(), rec.Header().Get("Location"))
	assert.Equal(t, 0, c.ProductCount)
}

func TestLowStockScenario(t *testing.T) {
	api := newAPI(t)
	admin := api.token(auth.RoleAdmin)

	c := api.createCategory(admin, "Electronics")
	p := api.createProduct(admin, "Headphones", c.ID, 5)
	assert.Equal(t, 129.99, p.Price)
	assert.Equal(t, "Electronics", p.CategoryName)
	assert.True(t, p.IsLowStock)

	rec := api.do(http.MethodGet, "/api/products/low-stock", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, names(decode[[]usecase.ProductDTO](t, rec)), "Headphones")

	rec = api.do(http.MethodPatch, "/api/products/"+p.ID.String()+"/stock", admin,
		map[string]any{"id": p.ID.String(), "quantity": 20})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = api.do(http.MethodGet, "/api/products/low-stock", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, names(decode[[]usecase.ProductDTO](t, rec)), "Headphones")
}

func TestDuplicateCategoryName(t *testing.T) {
	api := newAPI(t)
	admin := api.token(auth.RoleAdmin)

	api.createCategory(admin, "Books")
	rec := api.do(http.MethodPost, "/api/categories", admin, map[string]any{"name": "Books"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "ALREADY_EXISTS", decode[response.Error](t, rec).Error.Code)

	rec = api.do(http.MethodGet, "/api/categories", admin, nil)
	assert.Len(t, decode[[]usecase.CategoryDTO](t, rec), 1)
}

func TestDeleteCategoryWithProducts(t *testing.T) {
	api := newAPI(t)
	admin := api.token(auth.RoleAdmin)

	c := api.createCategory(admin, "Toys")
	p := api.createProduct(admin, "Kite", c.ID, 12)

	rec := api.do(http.MethodDelete, "/api/categories/"+c.ID.String(), admin, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "HAS_DEPENDENTS", decode[response.Error](t, rec).Error.Code)

	rec = api.do(http.MethodGet, "/api/categories/"+c.ID.String(), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[usecase.CategoryDTO](t, rec).ProductCount)

	rec = api.do(http.MethodDelete, "/api/products/"+p.ID.String(), admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = api.do(http.MethodDelete, "/api/categories/"+c.ID.String(), admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = api.do(http.MethodDelete, "/api/categories/"+c.ID.String(), admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCategoryRequiresMatchingID(t *testing.T) {
	api := newAPI(t)
	admin := api.token(auth.RoleAdmin)
	c := api.createCategory(admin, "Music")
	other := api.createCategory(admin, "Films")

	rec := api.do(http.MethodPut, "/api/categories/"+c.ID.String(), admin,
		map[string]any{"id": other.ID.String(), "name": "Audio"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPut, "/api/categories/"+c.ID.String(), admin,
		map[string]any{"id": c.ID.String(), "name": "Audio", "description": "sound"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[usecase.CategoryDTO](t, rec)
	assert.Equal(t, "Audio", got.Name)
	assert.NotNil(t, got.UpdatedAt)

	rec = api.do(http.MethodPut, "/api/categories/"+c.ID.String(), admin,
		map[string]any{"id": c.ID.String(), "name": "Films"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateStockErrors(t *testing.T) {
	api := newAPI(t)
	admin := api.token(auth.RoleAdmin)
	c := api.createCategory(admin, "Office")
	p := api.createProduct(admin, "Stapler", c.ID, 3)

	rec := api.do(http.MethodPatch, "/api/products/"+p.ID.String()+"/stock", admin,
		map[string]any{"id": c.ID.String(), "quantity": 4})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	missing := c.ID.String()
	rec = api.do(http.MethodPatch, "/api/products/"+missing+"/stock", admin,
		map[string]any{"id": missing, "quantity": 4})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodPatch, "/api/products/"+p.ID.String()+"/stock", admin,
		map[string]any{"id": p.ID.String(), "quantity": -1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "quantity", decode[response.Error](t, rec).Error.Field)

	rec = api.do(http.MethodGet, "/api/products/not-a-uuid", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdjustStock(t *testing.T) {
	api := newAPI(t)
	admin := api.token(auth.RoleAdmin)
	c := api.createCategory(admin, "Garden")
	p := api.createProduct(admin, "Rake", c.ID, 3)

	rec := api.do(http.MethodPost, "/api/products/"+p.ID.String()+"/stock/add", admin, map[string]any{"quantity": 9})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 12, decode[usecase.ProductDTO](t, rec).StockQuantity)

	rec = api.do(http.MethodPost, "/api/products/"+p.ID.String()+"/stock/remove", admin, map[string]any{"quantity": 13})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = api.do(http.MethodGet, "/api/products/"+p.ID.String(), admin, nil)
	assert.Equal(t, 12, decode[usecase.ProductDTO](t, rec).StockQuantity)
}

func TestCreateProductValidation(t *testing.T) {
	api := newAPI(t)
	admin := api.token(auth.RoleAdmin)
	c := api.createCategory(admin, "Books")

	rec := api.do(http.MethodPost, "/api/products", admin, map[string]any{
		"name": "Novel", "description": "A novel", "price": 10, "currency": "US",
		"categoryId": c.ID.String(), "stockQuantity": 1,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[response.Error](t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "currency", body.Error.Field)

	rec = api.do(http.MethodPost, "/api/products", admin, map[string]any{
		"name": "Novel", "description": "A novel", "price": 10,
		"categoryId": "7b0c3c8e-3b58-4b8a-9a55-2d6c1c7f4a10", "stockQuantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(http.MethodGet, "/api/products", admin, nil)
	assert.Equal(t, 0, decode[usecase.PagedProducts](t, rec).TotalCount)
}

func TestPatchProduct(t *testing.T) {
	api := newAPI(t)
	admin := api.token(auth.RoleAdmin)
	c := api.createCategory(admin, "Kitchen")
	p := api.createProduct(admin, "Kettle", c.ID, 15)

	rec := api.do(http.MethodPatch, "/api/products/"+p.ID.String(), admin, map[string]any{"price": 49.5})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[usecase.ProductDTO](t, rec)
	assert.Equal(t, 49.5, got.Price)
	assert.Equal(t, "Kettle", got.Name)
	assert.Equal(t, "USD", got.Currency)

	rec = api.do(http.MethodPut, "/api/products/"+p.ID.String(), admin, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchPagination(t *testing.T) {
	api := newAPI(t)
	admin := api.token(auth.RoleAdmin)
	c := api.createCategory(admin, "Stationery")
	for i := 1; i <= 7; i++ {
		api.createProduct(admin, fmt.Sprintf("Pen %d", i), c.ID, 20)
	}

	rec := api.do(http.MethodGet, "/api/products?search=pen&page=3&pageSize=3", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[usecase.PagedProducts](t, rec)
	assert.Equal(t, 7, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Products, 1)

	rec = api.do(http.MethodGet, "/api/products?pageSize=101", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/products?page=4611686018427387904&pageSize=4", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = api.do(http.MethodGet, "/api/products/list?searchName=pen&page=4611686018427387904&pageSize=4", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/products?categoryId=nope", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodGet, "/api/products/list?categoryId="+c.ID.String()+"&pageSize=5", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode[usecase.PagedProducts](t, rec)
	assert.Equal(t, 7, page.TotalCount)
	assert.Len(t, page.Products, 5)

	rec = api.do(http.MethodGet, "/api/categories/"+c.ID.String()+"/products", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]usecase.ProductDTO](t, rec), 7)
}

func TestDashboard(t *testing.T) {
	api := newAPI(t)
	admin := api.token(auth.RoleAdmin)
	c := api.createCategory(admin, "Audio")
	api.createCategory(admin, "Empty")
	api.createProduct(admin, "Speaker", c.ID, 2)

	rec := api.do(http.MethodGet, "/api/dashboard/stats", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[usecase.DashboardStats](t, rec)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalCategories)
	assert.Equal(t, 1, stats.LowStockProductCount)
	assert.InDelta(t, 259.98, stats.TotalStockValue, 0.001)

	rec = api.do(http.MethodGet, "/api/dashboard/products-by-category", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rows := decode[[]usecase.CategoryStats](t, rec)
	require.Len(t, rows, 2)
	assert.Equal(t, "Audio", rows[0].CategoryName)
	assert.Equal(t, 1, rows[0].ProductCount)
	assert.Equal(t, 0, rows[1].ProductCount)
}

func TestRateLimit(t *testing.T) {
	api := newAPI(t, func(c *config.Config) {
		c.RateLimit = config.RateLimitConfig{Enabled: true, Requests: 2, Window: time.Minute, Queue: 0}
	})

	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/health", "", nil).Code)
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/health", "", nil).Code)

	rec := api.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestEdgeHeaders(t *testing.T) {
	api := newAPI(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/categories", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set(requestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	api.srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "req-123", rec.Header().Get(requestIDHeader))

	rec = api.do(http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

const requestIDHeader = "X-Request-ID"
