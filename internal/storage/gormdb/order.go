package gormdb

import (
	"context"
	"errors"
	"time"

	"github.com/warehub/warehub/internal/domain"
	"gorm.io/gorm"
)

// OrderRepository is the GORM implementation of domain.OrderRepository.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

var orderSortColumns = map[string]string{
	"orderDate":   "order_date",
	"status":      "status",
	"totalAmount": "total_amount",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// orderListSort resolves the order-list sort clause. Orders sort newest
// first, so an empty sortOrder means descending here.
func orderListSort(opts domain.ListOptions) string {
	sortOrder := opts.SortOrder
	if sortOrder == "" {
		sortOrder = "desc"
	}
	return orderBy(orderSortColumns, opts.SortBy, sortOrder, "order_date DESC")
}

func (r *OrderRepository) List(ctx context.Context, filter domain.OrderFilter, opts domain.ListOptions) ([]domain.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.SupplierID != 0 {
		query = query.Where("supplier_id = ?", filter.SupplierID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := pageBounds(opts.Page, opts.PageSize)
	var rows []domain.Order
	err := query.
		Order(orderListSort(opts)).
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// ProcessDelivery runs the stock credits and the processed-at stamp in one
// transaction. The conditional stamp doubles as the idempotency guard under
// concurrent processing of the same order.
func (r *OrderRepository) ProcessDelivery(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if err := tx.Model(&domain.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Qty)).Error; err != nil {
				return err
			}
		}
		res := tx.Model(&domain.Order{}).
			Where("id = ? AND processed_at IS NULL", order.ID).
			Update("processed_at", time.Now())
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.Validation("Order already processed")
		}
		return nil
	})
}
