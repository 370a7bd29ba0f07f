// Package memory provides in-memory implementations of the persistence
// ports. They back the unit tests and the "memory" database type and
// mirror the semantics of the gormdb implementations, including conflict
// and not-found errors and the non-negative stock guard.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/warehub/warehub/internal/domain"
)

// Store holds all three collections behind one lock, which stands in for
// the database's atomicity in tests.
type Store struct {
	mu        sync.RWMutex
	products  map[int64]domain.Product
	suppliers map[int64]domain.Supplier
	orders    map[int64]domain.Order
}

func NewStore() *Store {
	return &Store{
		products:  make(map[int64]domain.Product),
		suppliers: make(map[int64]domain.Supplier),
		orders:    make(map[int64]domain.Order),
	}
}

func (s *Store) Products() *ProductRepository   { return &ProductRepository{store: s} }
func (s *Store) Suppliers() *SupplierRepository { return &SupplierRepository{store: s} }
func (s *Store) Orders() *OrderRepository       { return &OrderRepository{store: s} }

func paginate[T any](rows []T, opts domain.ListOptions) []T {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	size := opts.PageSize
	if size < 1 || size > 500 {
		size = 10
	}
	start := (page - 1) * size
	if start >= len(rows) {
		return nil
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func sortRows[T any](rows []T, less func(a, b T) bool, desc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

// ProductRepository is the in-memory domain.ProductRepository.
type ProductRepository struct {
	store *Store
}

func (r *ProductRepository) List(_ context.Context, filter domain.ProductFilter, opts domain.ListOptions) ([]domain.Product, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rows []domain.Product
	for _, p := range r.store.products {
		if q := strings.TrimSpace(filter.Search); q != "" {
			if !containsFold(p.Name, q) && !containsFold(p.SKU, q) {
				continue
			}
		}
		rows = append(rows, p)
	}

	desc := strings.EqualFold(opts.SortOrder, "desc")
	switch opts.SortBy {
	case "sku":
		sortRows(rows, func(a, b domain.Product) bool { return a.SKU < b.SKU }, desc)
	case "price":
		sortRows(rows, func(a, b domain.Product) bool { return a.Price < b.Price }, desc)
	case "stock":
		sortRows(rows, func(a, b domain.Product) bool { return a.Stock < b.Stock }, desc)
	case "createdAt":
		sortRows(rows, func(a, b domain.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }, desc)
	default:
		sortRows(rows, func(a, b domain.Product) bool { return a.Name < b.Name }, desc)
	}

	return paginate(rows, opts), int64(len(rows)), nil
}

func (r *ProductRepository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *ProductRepository) GetByIDs(_ context.Context, ids []int64) (map[int64]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make(map[int64]domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.store.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *ProductRepository) GetBySKU(_ context.Context, sku string) (*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, p := range r.store.products {
		if p.SKU == sku {
			out := p
			return &out, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *ProductRepository) Create(_ context.Context, product *domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.SKU == product.SKU {
			return domain.Conflict("Product with this SKU already exists")
		}
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.store.products[product.ID] = *product
	return nil
}

func (r *ProductRepository) Update(_ context.Context, product *domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.ID != product.ID && p.SKU == product.SKU {
			return domain.Conflict("Product with this SKU already exists")
		}
	}
	product.UpdatedAt = time.Now()
	r.store.products[product.ID] = *product
	return nil
}

func (r *ProductRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.store.products, id)
	return nil
}

func (r *ProductRepository) AdjustStock(_ context.Context, id int64, delta int) (*domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if p.Stock+delta < 0 {
		return nil, domain.Validation("Insufficient stock")
	}
	p.Stock += delta
	p.UpdatedAt = time.Now()
	r.store.products[id] = p
	return &p, nil
}

func (r *ProductRepository) SetStock(_ context.Context, id int64, qty int) (*domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	p.Stock = qty
	p.UpdatedAt = time.Now()
	r.store.products[id] = p
	return &p, nil
}

func (r *ProductRepository) ListBelowStock(_ context.Context, threshold int, limit int) ([]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var rows []domain.Product
	for _, p := range r.store.products {
		if p.Stock < threshold {
			rows = append(rows, p)
		}
	}
	sortRows(rows, func(a, b domain.Product) bool { return a.Stock < b.Stock }, false)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// SupplierRepository is the in-memory domain.SupplierRepository.
type SupplierRepository struct {
	store *Store
}

func (r *SupplierRepository) List(_ context.Context, filter domain.SupplierFilter, opts domain.ListOptions) ([]domain.Supplier, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rows []domain.Supplier
	for _, s := range r.store.suppliers {
		if q := strings.TrimSpace(filter.Search); q != "" {
			if !containsFold(s.Name, q) && !containsFold(s.Contact.Email, q) {
				continue
			}
		}
		rows = append(rows, s)
	}

	desc := strings.EqualFold(opts.SortOrder, "desc")
	switch opts.SortBy {
	case "email":
		sortRows(rows, func(a, b domain.Supplier) bool { return a.Contact.Email < b.Contact.Email }, desc)
	case "createdAt":
		sortRows(rows, func(a, b domain.Supplier) bool { return a.CreatedAt.Before(b.CreatedAt) }, desc)
	default:
		sortRows(rows, func(a, b domain.Supplier) bool { return a.Name < b.Name }, desc)
	}

	return paginate(rows, opts), int64(len(rows)), nil
}

func (r *SupplierRepository) GetByID(_ context.Context, id int64) (*domain.Supplier, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	s, ok := r.store.suppliers[id]
	if !ok {
		return nil, domain.ErrSupplierNotFound
	}
	return &s, nil
}

func (r *SupplierRepository) GetByIDs(_ context.Context, ids []int64) (map[int64]domain.Supplier, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make(map[int64]domain.Supplier, len(ids))
	for _, id := range ids {
		if s, ok := r.store.suppliers[id]; ok {
			out[id] = s
		}
	}
	return out, nil
}

func (r *SupplierRepository) GetByEmail(_ context.Context, email string) (*domain.Supplier, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, s := range r.store.suppliers {
		if s.Contact.Email == email {
			out := s
			return &out, nil
		}
	}
	return nil, domain.ErrSupplierNotFound
}

func (r *SupplierRepository) Create(_ context.Context, supplier *domain.Supplier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.suppliers {
		if s.Contact.Email == supplier.Contact.Email {
			return domain.Conflict("Supplier with this email already exists")
		}
	}
	now := time.Now()
	supplier.CreatedAt = now
	supplier.UpdatedAt = now
	r.store.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepository) Update(_ context.Context, supplier *domain.Supplier) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.suppliers {
		if s.ID != supplier.ID && s.Contact.Email == supplier.Contact.Email {
			return domain.Conflict("Supplier with this email already exists")
		}
	}
	supplier.UpdatedAt = time.Now()
	r.store.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *SupplierRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.suppliers[id]; !ok {
		return domain.ErrSupplierNotFound
	}
	delete(r.store.suppliers, id)
	return nil
}

// OrderRepository is the in-memory domain.OrderRepository.
type OrderRepository struct {
	store *Store
}

func (r *OrderRepository) List(_ context.Context, filter domain.OrderFilter, opts domain.ListOptions) ([]domain.Order, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var rows []domain.Order
	for _, o := range r.store.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.SupplierID != 0 && o.SupplierID != filter.SupplierID {
			continue
		}
		rows = append(rows, o)
	}

	desc := opts.SortOrder == "" || strings.EqualFold(opts.SortOrder, "desc")
	switch opts.SortBy {
	case "status":
		sortRows(rows, func(a, b domain.Order) bool { return a.Status < b.Status }, desc)
	case "totalAmount":
		sortRows(rows, func(a, b domain.Order) bool { return a.TotalAmount < b.TotalAmount }, desc)
	case "createdAt":
		sortRows(rows, func(a, b domain.Order) bool { return a.CreatedAt.Before(b.CreatedAt) }, desc)
	default:
		sortRows(rows, func(a, b domain.Order) bool { return a.OrderDate.Before(b.OrderDate) }, desc)
	}

	return paginate(rows, opts), int64(len(rows)), nil
}

func (r *OrderRepository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	o, ok := r.store.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &o, nil
}

func (r *OrderRepository) Create(_ context.Context, order *domain.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	r.store.orders[order.ID] = *order
	return nil
}

func (r *OrderRepository) Update(_ context.Context, order *domain.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders[order.ID]; !ok {
		return domain.ErrOrderNotFound
	}
	order.UpdatedAt = time.Now()
	r.store.orders[order.ID] = *order
	return nil
}

func (r *OrderRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.store.orders, id)
	return nil
}

func (r *OrderRepository) ProcessDelivery(_ context.Context, order *domain.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.orders[order.ID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if stored.ProcessedAt != nil {
		return domain.Validation("Order already processed")
	}

	for _, item := range order.Items {
		if p, ok := r.store.products[item.ProductID]; ok {
			p.Stock += item.Qty
			p.UpdatedAt = time.Now()
			r.store.products[item.ProductID] = p
		}
	}
	now := time.Now()
	stored.ProcessedAt = &now
	stored.UpdatedAt = now
	r.store.orders[order.ID] = stored
	return nil
}
