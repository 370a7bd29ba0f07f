package gormdb

import (
	"context"
	"errors"
	"strings"

	"github.com/warehub/warehub/internal/domain"
	"gorm.io/gorm"
)

// SupplierRepository is the GORM implementation of domain.SupplierRepository.
type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

var supplierSortColumns = map[string]string{
	"name":      "name",
	"email":     "contact_email",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func (r *SupplierRepository) List(ctx context.Context, filter domain.SupplierFilter, opts domain.ListOptions) ([]domain.Supplier, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Supplier{})
	if q := strings.TrimSpace(filter.Search); q != "" {
		if strings.EqualFold(r.db.Name(), "postgres") {
			query = query.Where("name ILIKE ? OR contact_email ILIKE ?", "%"+q+"%", "%"+q+"%")
		} else {
			lq := "%" + strings.ToLower(q) + "%"
			query = query.Where("LOWER(name) LIKE ? OR LOWER(contact_email) LIKE ?", lq, lq)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := pageBounds(opts.Page, opts.PageSize)
	var rows []domain.Supplier
	err := query.
		Order(orderBy(supplierSortColumns, opts.SortBy, opts.SortOrder, "name ASC")).
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	return rows, total, err
}

func (r *SupplierRepository) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.WithContext(ctx).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSupplierNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]domain.Supplier, error) {
	var rows []domain.Supplier
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[int64]domain.Supplier, len(rows))
	for _, s := range rows {
		out[s.ID] = s
	}
	return out, nil
}

func (r *SupplierRepository) GetByEmail(ctx context.Context, email string) (*domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.WithContext(ctx).Where("contact_email = ?", email).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSupplierNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	err := r.db.WithContext(ctx).Create(supplier).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Conflict("Supplier with this email already exists")
	}
	return err
}

func (r *SupplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	err := r.db.WithContext(ctx).Save(supplier).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.Conflict("Supplier with this email already exists")
	}
	return err
}

func (r *SupplierRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Supplier{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}
