package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/warehub/warehub/internal/domain"
	"github.com/warehub/warehub/pkg/common"
)

// ProductService owns product records: normalization, SKU uniqueness and the
// stock-adjustment primitive.
type ProductService struct {
	products domain.ProductRepository
}

func NewProductService(products domain.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// CreateProductInput carries the create payload. Price and Stock are
// pointers so a missing field can be told apart from a zero value.
type CreateProductInput struct {
	SKU   string   `json:"sku" validate:"max=64"`
	Name  string   `json:"name" validate:"max=255"`
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock *int     `json:"stock" validate:"omitempty,gte=0"`
}

// UpdateProductInput carries a partial update; nil fields are unchanged.
type UpdateProductInput struct {
	SKU   *string  `json:"sku" validate:"omitempty,max=64"`
	Name  *string  `json:"name" validate:"omitempty,max=255"`
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock *int     `json:"stock" validate:"omitempty,gte=0"`
}

func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter, opts domain.ListOptions) ([]domain.Product, int64, error) {
	return s.products.List(ctx, filter, opts)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// GetBySKU looks a product up by SKU, case-insensitively.
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return s.products.GetBySKU(ctx, strings.ToUpper(strings.TrimSpace(sku)))
}

func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	sku := strings.ToUpper(strings.TrimSpace(in.SKU))
	name := strings.TrimSpace(in.Name)
	if sku == "" || name == "" || in.Price == nil || in.Stock == nil {
		return nil, domain.Validation("SKU, name, price, and stock are required")
	}
	if *in.Price < 0 {
		return nil, domain.Validation("Price must be non-negative")
	}
	if *in.Stock < 0 {
		return nil, domain.Validation("Stock must be non-negative")
	}

	// Explicit pre-check; the unique index catches the race and maps to the
	// same conflict class.
	if _, err := s.products.GetBySKU(ctx, sku); err == nil {
		return nil, domain.Conflict("Product with this SKU already exists")
	} else if !errors.Is(err, domain.ErrProductNotFound) {
		return nil, err
	}

	product := &domain.Product{
		ID:    common.UUIDint64(),
		SKU:   sku,
		Name:  name,
		Price: *in.Price,
		Stock: *in.Stock,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, in UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.SKU != nil {
		sku := strings.ToUpper(strings.TrimSpace(*in.SKU))
		if sku == "" {
			return nil, domain.Validation("SKU must not be empty")
		}
		if sku != product.SKU {
			if _, err := s.products.GetBySKU(ctx, sku); err == nil {
				return nil, domain.Conflict("Product with this SKU already exists")
			} else if !errors.Is(err, domain.ErrProductNotFound) {
				return nil, err
			}
			product.SKU = sku
		}
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Validation("Name must not be empty")
		}
		product.Name = name
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, domain.Validation("Price must be non-negative")
		}
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.Validation("Stock must be non-negative")
		}
		product.Stock = *in.Stock
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, id)
}

// AdjustStock applies a stock operation. The operation string is
// case-insensitive; subtract fails when the result would go negative.
func (s *ProductService) AdjustStock(ctx context.Context, id int64, operation string, quantity *int) (*domain.Product, error) {
	if operation == "" || quantity == nil {
		return nil, domain.Validation("Operation and quantity are required")
	}
	qty := *quantity
	if qty < 0 {
		return nil, domain.Validation("Quantity must be non-negative")
	}

	switch strings.ToLower(operation) {
	case domain.StockOpAdd:
		return s.products.AdjustStock(ctx, id, qty)
	case domain.StockOpSubtract:
		return s.products.AdjustStock(ctx, id, -qty)
	case domain.StockOpSet:
		return s.products.SetStock(ctx, id, qty)
	default:
		return nil, domain.Validation("Invalid operation. Use add, subtract, or set")
	}
}

// All returns every product, used by the CSV export. The repository caps a
// single page at 500 rows, so this pages until the full catalog is read.
func (s *ProductService) All(ctx context.Context) ([]domain.Product, error) {
	const batch = 500
	var all []domain.Product
	for page := 1; ; page++ {
		rows, total, err := s.products.List(ctx, domain.ProductFilter{}, domain.ListOptions{Page: page, PageSize: batch, SortBy: "sku"})
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
		if len(rows) == 0 || int64(len(all)) >= total {
			return all, nil
		}
	}
}

// LowStock lists products whose stock is below threshold.
func (s *ProductService) LowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	return s.products.ListBelowStock(ctx, threshold, 100)
}
