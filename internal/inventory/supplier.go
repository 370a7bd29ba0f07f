package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/warehub/warehub/internal/domain"
	"github.com/warehub/warehub/pkg/common"
)

// SupplierService owns supplier records and enforces contact-email
// uniqueness.
type SupplierService struct {
	suppliers domain.SupplierRepository
}

func NewSupplierService(suppliers domain.SupplierRepository) *SupplierService {
	return &SupplierService{suppliers: suppliers}
}

// ContactInput mirrors the contact sub-record of the request payload.
type ContactInput struct {
	Email   *string `json:"email" validate:"omitempty,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=64"`
	Address *string `json:"address" validate:"omitempty,max=512"`
}

type CreateSupplierInput struct {
	Name    string        `json:"name" validate:"max=255"`
	Contact *ContactInput `json:"contact"`
}

type UpdateSupplierInput struct {
	Name    *string       `json:"name" validate:"omitempty,max=255"`
	Contact *ContactInput `json:"contact"`
}

func (s *SupplierService) List(ctx context.Context, filter domain.SupplierFilter, opts domain.ListOptions) ([]domain.Supplier, int64, error) {
	return s.suppliers.List(ctx, filter, opts)
}

func (s *SupplierService) Get(ctx context.Context, id int64) (*domain.Supplier, error) {
	return s.suppliers.GetByID(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *SupplierService) Create(ctx context.Context, in CreateSupplierInput) (*domain.Supplier, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Contact == nil || in.Contact.Email == nil || strings.TrimSpace(*in.Contact.Email) == "" {
		return nil, domain.Validation("Name and contact email are required")
	}
	email := normalizeEmail(*in.Contact.Email)
	if !domain.ValidEmail(email) {
		return nil, domain.Validation("Please enter a valid email")
	}

	if _, err := s.suppliers.GetByEmail(ctx, email); err == nil {
		return nil, domain.Conflict("Supplier with this email already exists")
	} else if !errors.Is(err, domain.ErrSupplierNotFound) {
		return nil, err
	}

	supplier := &domain.Supplier{
		ID:   common.UUIDint64(),
		Name: name,
		Contact: domain.SupplierContact{
			Email: email,
		},
	}
	if in.Contact.Phone != nil {
		supplier.Contact.Phone = strings.TrimSpace(*in.Contact.Phone)
	}
	if in.Contact.Address != nil {
		supplier.Contact.Address = strings.TrimSpace(*in.Contact.Address)
	}

	if err := s.suppliers.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) Update(ctx context.Context, id int64, in UpdateSupplierInput) (*domain.Supplier, error) {
	supplier, err := s.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Validation("Name must not be empty")
		}
		supplier.Name = name
	}
	if in.Contact != nil {
		if in.Contact.Email != nil {
			email := normalizeEmail(*in.Contact.Email)
			if !domain.ValidEmail(email) {
				return nil, domain.Validation("Please enter a valid email")
			}
			if email != supplier.Contact.Email {
				if _, err := s.suppliers.GetByEmail(ctx, email); err == nil {
					return nil, domain.Conflict("Supplier with this email already exists")
				} else if !errors.Is(err, domain.ErrSupplierNotFound) {
					return nil, err
				}
				supplier.Contact.Email = email
			}
		}
		if in.Contact.Phone != nil {
			supplier.Contact.Phone = strings.TrimSpace(*in.Contact.Phone)
		}
		if in.Contact.Address != nil {
			supplier.Contact.Address = strings.TrimSpace(*in.Contact.Address)
		}
	}

	if err := s.suppliers.Update(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *SupplierService) Delete(ctx context.Context, id int64) error {
	return s.suppliers.Delete(ctx, id)
}
