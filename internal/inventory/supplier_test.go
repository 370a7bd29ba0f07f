package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehub/warehub/internal/domain"
	"github.com/warehub/warehub/internal/inventory"
	"github.com/warehub/warehub/internal/storage/memory"
)

func newSupplierService(t *testing.T) *inventory.SupplierService {
	t.Helper()
	return inventory.NewSupplierService(memory.NewStore().Suppliers())
}

func mustCreateSupplier(t *testing.T, svc *inventory.SupplierService, name, email string) *domain.Supplier {
	t.Helper()
	s, err := svc.Create(context.Background(), inventory.CreateSupplierInput{
		Name:    name,
		Contact: &inventory.ContactInput{Email: sptr(email)},
	})
	require.NoError(t, err)
	return s
}

func TestSupplierCreateNormalizes(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	s, err := svc.Create(ctx, inventory.CreateSupplierInput{
		Name: "  Acme Metals  ",
		Contact: &inventory.ContactInput{
			Email:   sptr("  Orders@Acme.COM "),
			Phone:   sptr(" +1 555 0100 "),
			Address: sptr(" 1 Foundry Way "),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Metals", s.Name)
	assert.Equal(t, "orders@acme.com", s.Contact.Email)
	assert.Equal(t, "+1 555 0100", s.Contact.Phone)
	assert.Equal(t, "1 Foundry Way", s.Contact.Address)

	got, err := svc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Contact, got.Contact)
}

func TestSupplierCreateValidation(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, inventory.CreateSupplierInput{Name: "Acme"})
	assert.True(t, domain.IsValidation(err), "missing contact: %v", err)

	_, err = svc.Create(ctx, inventory.CreateSupplierInput{
		Contact: &inventory.ContactInput{Email: sptr("a@b.com")},
	})
	assert.True(t, domain.IsValidation(err), "missing name: %v", err)

	_, err = svc.Create(ctx, inventory.CreateSupplierInput{
		Name:    "Acme",
		Contact: &inventory.ContactInput{Email: sptr("not-an-email")},
	})
	assert.True(t, domain.IsValidation(err), "bad email: %v", err)
}

func TestSupplierCreateDuplicateEmail(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	mustCreateSupplier(t, svc, "Acme", "orders@acme.com")
	_, err := svc.Create(ctx, inventory.CreateSupplierInput{
		Name:    "Other",
		Contact: &inventory.ContactInput{Email: sptr("ORDERS@acme.com")},
	})
	assert.True(t, domain.IsConflict(err), "duplicate email in any case must conflict, got %v", err)
}

func TestSupplierUpdate(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	s1 := mustCreateSupplier(t, svc, "Acme", "orders@acme.com")
	s2 := mustCreateSupplier(t, svc, "Globex", "sales@globex.com")

	// Partial update leaves other fields alone.
	updated, err := svc.Update(ctx, s2.ID, inventory.UpdateSupplierInput{Name: sptr("Globex Corp")})
	require.NoError(t, err)
	assert.Equal(t, "Globex Corp", updated.Name)
	assert.Equal(t, "sales@globex.com", updated.Contact.Email)

	// Changing to a taken email conflicts.
	_, err = svc.Update(ctx, s2.ID, inventory.UpdateSupplierInput{
		Contact: &inventory.ContactInput{Email: sptr("orders@acme.com")},
	})
	assert.True(t, domain.IsConflict(err))

	// Clearing the phone with an empty string is allowed.
	updated, err = svc.Update(ctx, s1.ID, inventory.UpdateSupplierInput{
		Contact: &inventory.ContactInput{Phone: sptr("")},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Contact.Phone)

	_, err = svc.Update(ctx, 404404, inventory.UpdateSupplierInput{Name: sptr("X")})
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)
}

func TestSupplierListSearch(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	mustCreateSupplier(t, svc, "Acme Metals", "orders@acme.com")
	mustCreateSupplier(t, svc, "Globex", "sales@globex.com")

	_, total, err := svc.List(ctx, domain.SupplierFilter{Search: "acme"}, domain.ListOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	// Email matches too.
	_, total, err = svc.List(ctx, domain.SupplierFilter{Search: "sales@"}, domain.ListOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestSupplierDelete(t *testing.T) {
	svc := newSupplierService(t)
	ctx := context.Background()

	s := mustCreateSupplier(t, svc, "Acme", "orders@acme.com")
	require.NoError(t, svc.Delete(ctx, s.ID))
	_, err := svc.Get(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)
}
