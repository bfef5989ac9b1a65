// Package memory is a thread-safe in-process store implementing every
// repository port. It backs local development and the behavioural tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"inventory/src/core/domain"
	"inventory/src/core/ports"
)

// Store keeps categories and products in maps guarded by one lock.
// Entities are cloned on the way in and out.
type Store struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]*domain.Category
	products   map[uuid.UUID]*domain.Product
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		categories: make(map[uuid.UUID]*domain.Category),
		products:   make(map[uuid.UUID]*domain.Product),
	}
}

// compile-time assertions
var (
	_ ports.CategoryRepository = (*Categories)(nil)
	_ ports.ProductRepository  = (*Products)(nil)
	_ ports.DashboardReader    = (*Store)(nil)
	_ ports.Repository         = (*Store)(nil)
)

// Ports exposes the store through the repository interfaces.
func (s *Store) Ports() ports.Store {
	return ports.Store{
		Categories: &Categories{s: s},
		Products:   &Products{s: s},
		Dashboard:  s,
		Health:     s,
	}
}

// Health always succeeds unless ctx is done.
func (s *Store) Health(ctx context.Context) error {
	return checkCtx(ctx)
}

func checkCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return domain.NewCancelledError(err)
	}
	return nil
}

// Categories implements ports.CategoryRepository.
type Categories struct {
	s *Store
}

func (r *Categories) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, domain.NewNotFoundError("category")
	}
	return c.Clone(), nil
}

func (r *Categories) GetAll(ctx context.Context) ([]*domain.Category, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (r *Categories) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if c := r.s.categoryByName(name); c != nil {
		return c.Clone(), nil
	}
	return nil, domain.NewNotFoundError("category")
}

func (r *Categories) Create(ctx context.Context, c *domain.Category) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[c.ID()]; ok {
		return domain.NewAlreadyExistsError("category id already exists")
	}
	if r.s.categoryByName(c.Name()) != nil {
		return domain.NewAlreadyExistsError("category name already exists")
	}
	r.s.categories[c.ID()] = c.Clone()
	return nil
}

func (r *Categories) Update(ctx context.Context, c *domain.Category) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[c.ID()]; !ok {
		return domain.NewNotFoundError("category")
	}
	if other := r.s.categoryByName(c.Name()); other != nil && other.ID() != c.ID() {
		return domain.NewAlreadyExistsError("category name already exists")
	}
	r.s.categories[c.ID()] = c.Clone()
	return nil
}

func (r *Categories) Delete(ctx context.Context, id uuid.UUID) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[id]; !ok {
		return domain.NewNotFoundError("category")
	}
	delete(r.s.categories, id)
	return nil
}

func (r *Categories) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := checkCtx(ctx); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.categories[id]
	return ok, nil
}

func (r *Categories) HasProducts(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := checkCtx(ctx); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.products {
		if p.CategoryID() == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *Categories) GetAllWithProductCount(ctx context.Context) (map[uuid.UUID]int, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.productCounts(), nil
}

func (r *Categories) GetByIDWithProductCount(ctx context.Context, id uuid.UUID) (*domain.Category, int, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.categories[id]
	if !ok {
		return nil, 0, domain.NewNotFoundError("category")
	}
	return c.Clone(), r.s.productCounts()[id], nil
}

// Products implements ports.ProductRepository.
type Products struct {
	s *Store
}

func (r *Products) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.NewNotFoundError("product")
	}
	return p.Clone(), nil
}

func (r *Products) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return r.filter(ctx, func(*domain.Product) bool { return true })
}

func (r *Products) GetByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Product, error) {
	return r.filter(ctx, func(p *domain.Product) bool { return p.CategoryID() == categoryID })
}

func (r *Products) SearchByName(ctx context.Context, term string) ([]*domain.Product, error) {
	return r.filter(ctx, nameContains(term))
}

func (r *Products) GetLowStock(ctx context.Context) ([]*domain.Product, error) {
	return r.filter(ctx, (*domain.Product).IsLowStock)
}

func (r *Products) GetPaged(ctx context.Context, page, pageSize int) ([]*domain.Product, int, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, 0, err
	}
	return paginate(all, page, pageSize), len(all), nil
}

func (r *Products) Search(ctx context.Context, q ports.ProductSearch) ([]*domain.Product, int, error) {
	match := nameContains(q.Term)
	all, err := r.filter(ctx, func(p *domain.Product) bool {
		if q.CategoryID != nil && p.CategoryID() != *q.CategoryID {
			return false
		}
		return match(p)
	})
	if err != nil {
		return nil, 0, err
	}
	return paginate(all, q.Page, q.PageSize), len(all), nil
}

func (r *Products) Create(ctx context.Context, p *domain.Product) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[p.ID()]; ok {
		return domain.NewAlreadyExistsError("product id already exists")
	}
	r.s.products[p.ID()] = p.Clone()
	return nil
}

func (r *Products) Update(ctx context.Context, p *domain.Product) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[p.ID()]; !ok {
		return domain.NewNotFoundError("product")
	}
	r.s.products[p.ID()] = p.Clone()
	return nil
}

func (r *Products) Delete(ctx context.Context, id uuid.UUID) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.products[id]; !ok {
		return domain.NewNotFoundError("product")
	}
	delete(r.s.products, id)
	return nil
}

func (r *Products) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := checkCtx(ctx); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.products[id]
	return ok, nil
}

// filter returns matching products ordered by name.
func (r *Products) filter(ctx context.Context, keep func(*domain.Product) bool) ([]*domain.Product, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.Product, 0)
	for _, p := range r.s.products {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	sortProducts(out)
	return out, nil
}

// TotalProducts implements ports.DashboardReader.
func (s *Store) TotalProducts(ctx context.Context) (int, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products), nil
}

func (s *Store) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	if err := checkCtx(ctx); err != nil {
		return decimal.Zero, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, p := range s.products {
		total = total.Add(p.StockValue().Amount())
	}
	return total, nil
}

func (s *Store) LowStockProductCount(ctx context.Context) (int, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	for _, p := range s.products {
		if p.IsLowStock() {
			n++
		}
	}
	return n, nil
}

func (s *Store) TotalCategories(ctx context.Context) (int, error) {
	if err := checkCtx(ctx); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.categories), nil
}

// ProductsByCategory includes empty categories, ordered by category name.
func (s *Store) ProductsByCategory(ctx context.Context) ([]ports.CategoryBreakdown, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make(map[uuid.UUID]*ports.CategoryBreakdown, len(s.categories))
	for id, c := range s.categories {
		rows[id] = &ports.CategoryBreakdown{CategoryID: id, CategoryName: c.Name(), TotalValue: decimal.Zero}
	}
	for _, p := range s.products {
		row, ok := rows[p.CategoryID()]
		if !ok {
			continue
		}
		row.ProductCount++
		row.TotalValue = row.TotalValue.Add(p.StockValue().Amount())
	}

	out := make([]ports.CategoryBreakdown, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryName < out[j].CategoryName })
	return out, nil
}

// categoryByName is an exact match. Callers hold the lock.
func (s *Store) categoryByName(name string) *domain.Category {
	for _, c := range s.categories {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// productCounts omits categories without products. Callers hold the lock.
func (s *Store) productCounts() map[uuid.UUID]int {
	counts := make(map[uuid.UUID]int)
	for _, p := range s.products {
		counts[p.CategoryID()]++
	}
	return counts
}

func nameContains(term string) func(*domain.Product) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	return func(p *domain.Product) bool {
		return term == "" || strings.Contains(strings.ToLower(p.Name()), term)
	}
}

func sortProducts(ps []*domain.Product) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Name() != ps[j].Name() {
			return ps[i].Name() < ps[j].Name()
		}
		return ps[i].ID().String() < ps[j].ID().String()
	})
}

func paginate(ps []*domain.Product, page, pageSize int) []*domain.Product {
	start := ports.PageOffset(page, pageSize)
	if pageSize <= 0 || start < 0 || start >= len(ps) {
		return []*domain.Product{}
	}
	end := start + pageSize
	if end > len(ps) {
		end = len(ps)
	}
	return ps[start:end]
}
