package domain

import "context"

// ListOptions carries pagination and sorting for list queries. SortBy uses
// the API field names (camelCase); implementations map them to store columns.
type ListOptions struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// ProductFilter matches name or SKU case-insensitively when Search is set.
type ProductFilter struct {
	Search string
}

// SupplierFilter matches name or contact email case-insensitively.
type SupplierFilter struct {
	Search string
}

// OrderFilter narrows order lists by status and/or supplier.
type OrderFilter struct {
	Status     OrderStatus
	SupplierID int64
}

// ProductRepository is the persistence port for products.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter, opts ListOptions) ([]Product, int64, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]Product, error)
	GetBySKU(ctx context.Context, sku string) (*Product, error)
	// Create fails with a ConflictError when the SKU is already taken.
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id int64) error
	// AdjustStock atomically adds delta to the product's stock. A negative
	// result is rejected with a ValidationError and leaves stock unchanged.
	AdjustStock(ctx context.Context, id int64, delta int) (*Product, error)
	SetStock(ctx context.Context, id int64, qty int) (*Product, error)
	ListBelowStock(ctx context.Context, threshold int, limit int) ([]Product, error)
}

// SupplierRepository is the persistence port for suppliers.
type SupplierRepository interface {
	List(ctx context.Context, filter SupplierFilter, opts ListOptions) ([]Supplier, int64, error)
	GetByID(ctx context.Context, id int64) (*Supplier, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]Supplier, error)
	GetByEmail(ctx context.Context, email string) (*Supplier, error)
	// Create fails with a ConflictError when the contact email is taken.
	Create(ctx context.Context, supplier *Supplier) error
	Update(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, id int64) error
}

// OrderRepository is the persistence port for purchase orders.
type OrderRepository interface {
	List(ctx context.Context, filter OrderFilter, opts ListOptions) ([]Order, int64, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id int64) error
	// ProcessDelivery credits each item's quantity to its product's stock and
	// stamps the order's processed-at time, as one atomic unit where the
	// store supports it. A second call for the same order fails with a
	// ValidationError.
	ProcessDelivery(ctx context.Context, order *Order) error
}
