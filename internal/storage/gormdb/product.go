package gormdb

import (
	"context"
	"errors"
	"strings"

	"github.com/warehub/warehub/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository is the GORM implementation of domain.ProductRepository.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

var productSortColumns = map[string]string{
	"name":      "name",
	"sku":       "sku",
	"price":     "price",
	"stock":     "stock",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter, opts domain.ListOptions) ([]domain.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Product{})
	if q := strings.TrimSpace(filter.Search); q != "" {
		if strings.EqualFold(r.db.Name(), "postgres") {
			query = query.Where("name ILIKE ? OR sku ILIKE ?", "%"+q+"%", "%"+q+"%")
		} else {
			lq := "%" + strings.ToLower(q) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", lq, lq)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := pageBounds(opts.Page, opts.PageSize)
	var rows []domain.Product
	err := query.
		Order(orderBy(productSortColumns, opts.SortBy, opts.SortOrder, "name ASC")).
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	var rows []domain.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[int64]domain.Product, len(rows))
	for _, p := range rows {
		out[p.ID] = p
	}
	return out, nil
}

func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	err := r.db.WithContext(ctx).Create(product).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Conflict("Product with this SKU already exists")
	}
	return err
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	err := r.db.WithContext(ctx).Save(product).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Conflict("Product with this SKU already exists")
	}
	return err
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// AdjustStock applies the delta with a single conditional update so a
// concurrent adjustment can never drive stock negative.
func (r *ProductRepository) AdjustStock(ctx context.Context, id int64, delta int) (*domain.Product, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, domain.Validation("Insufficient stock")
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) SetStock(ctx context.Context, id int64, qty int) (*domain.Product, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", id).
		Update("stock", qty)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrProductNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepository) ListBelowStock(ctx context.Context, threshold int, limit int) ([]domain.Product, error) {
	var rows []domain.Product
	err := r.db.WithContext(ctx).
		Where("stock < ?", threshold).
		Order("stock ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
