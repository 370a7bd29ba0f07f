package inventory_test

import (
	"context"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehub/warehub/internal/domain"
	"github.com/warehub/warehub/internal/inventory"
	"github.com/warehub/warehub/internal/storage/memory"
)

type orderFixture struct {
	orders    *inventory.OrderService
	products  *inventory.ProductService
	suppliers *inventory.SupplierService
	store     *memory.Store
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	store := memory.NewStore()
	return &orderFixture{
		orders:    inventory.NewOrderService(store.Orders(), store.Products(), store.Suppliers(), EventBus.New()),
		products:  inventory.NewProductService(store.Products()),
		suppliers: inventory.NewSupplierService(store.Suppliers()),
		store:     store,
	}
}

func item(productID int64, qty int, price float64) inventory.OrderItemInput {
	return inventory.OrderItemInput{ProductID: productID, Qty: iptr(qty), Price: f64(price)}
}

func TestOrderCreate(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()

	sup := mustCreateSupplier(t, fx.suppliers, "Acme", "orders@acme.com")
	widget := mustCreateProduct(t, fx.products, "WH-001", "Widget", 19.99, 100)
	gadget := mustCreateProduct(t, fx.products, "WH-002", "Gadget", 29.99, 50)

	order, err := fx.orders.Create(ctx, inventory.CreateOrderInput{
		SupplierID: sup.ID,
		Items: []inventory.OrderItemInput{
			item(widget.ID, 5, 19.99),
			item(gadget.ID, 3, 29.99),
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.InDelta(t, 189.92, order.TotalAmount, 0.0001)
	assert.False(t, order.OrderDate.IsZero())
	assert.Nil(t, order.ProcessedAt)

	// Joined references are populated on the detail view.
	require.NotNil(t, order.Supplier)
	assert.Equal(t, "Acme", order.Supplier.Name)
	require.Len(t, order.Items, 2)
	require.NotNil(t, order.Items[0].Product)
	assert.Equal(t, "WH-001", order.Items[0].Product.SKU)
}

func TestOrderCreatePriceSnapshot(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()

	sup := mustCreateSupplier(t, fx.suppliers, "Acme", "orders@acme.com")
	widget := mustCreateProduct(t, fx.products, "WH-001", "Widget", 19.99, 100)

	// The submitted price is stored as-is, not re-read from the catalog.
	order, err := fx.orders.Create(ctx, inventory.CreateOrderInput{
		SupplierID: sup.ID,
		Items:      []inventory.OrderItemInput{item(widget.ID, 2, 15.00)},
	})
	require.NoError(t, err)
	assert.Equal(t, 15.00, order.Items[0].Price)
	assert.InDelta(t, 30.00, order.TotalAmount, 0.0001)
}

func TestOrderCreateValidation(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()

	sup := mustCreateSupplier(t, fx.suppliers, "Acme", "orders@acme.com")
	widget := mustCreateProduct(t, fx.products, "WH-001", "Widget", 19.99, 100)

	_, err := fx.orders.Create(ctx, inventory.CreateOrderInput{
		Items: []inventory.OrderItemInput{item(widget.ID, 1, 1)},
	})
	assert.EqualError(t, err, "Supplier ID is required")

	_, err = fx.orders.Create(ctx, inventory.CreateOrderInput{
		SupplierID: 404404,
		Items:      []inventory.OrderItemInput{item(widget.ID, 1, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)

	_, err = fx.orders.Create(ctx, inventory.CreateOrderInput{SupplierID: sup.ID})
	assert.EqualError(t, err, "Order must contain at least one item")

	_, err = fx.orders.Create(ctx, inventory.CreateOrderInput{
		SupplierID: sup.ID,
		Items:      []inventory.OrderItemInput{{ProductID: widget.ID, Qty: iptr(0), Price: f64(1)}},
	})
	assert.EqualError(t, err, "Each item must have productId, qty, and price")

	_, err = fx.orders.Create(ctx, inventory.CreateOrderInput{
		SupplierID: sup.ID,
		Items:      []inventory.OrderItemInput{{ProductID: widget.ID, Qty: iptr(1)}},
	})
	assert.EqualError(t, err, "Each item must have productId, qty, and price")

	_, err = fx.orders.Create(ctx, inventory.CreateOrderInput{
		SupplierID: sup.ID,
		Items:      []inventory.OrderItemInput{item(widget.ID, 1, -5)},
	})
	assert.EqualError(t, err, "Item price must be non-negative")

	_, err = fx.orders.Create(ctx, inventory.CreateOrderInput{
		SupplierID: sup.ID,
		Items:      []inventory.OrderItemInput{item(404404, 1, 1)},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestOrderUpdate(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()

	sup1 := mustCreateSupplier(t, fx.suppliers, "Acme", "orders@acme.com")
	sup2 := mustCreateSupplier(t, fx.suppliers, "Globex", "sales@globex.com")
	widget := mustCreateProduct(t, fx.products, "WH-001", "Widget", 19.99, 100)

	order, err := fx.orders.Create(ctx, inventory.CreateOrderInput{
		SupplierID: sup1.ID,
		Items:      []inventory.OrderItemInput{item(widget.ID, 2, 10)},
	})
	require.NoError(t, err)

	// Swapping supplier leaves items and total intact.
	updated, err := fx.orders.Update(ctx, order.ID, inventory.UpdateOrderInput{SupplierID: &sup2.ID})
	require.NoError(t, err)
	assert.Equal(t, sup2.ID, updated.SupplierID)
	assert.InDelta(t, 20.0, updated.TotalAmount, 0.0001)

	// Replacing items recomputes the total.
	updated, err = fx.orders.Update(ctx, order.ID, inventory.UpdateOrderInput{
		Items: []inventory.OrderItemInput{item(widget.ID, 5, 10)},
	})
	require.NoError(t, err)
	assert.InDelta(t, 50.0, updated.TotalAmount, 0.0001)

	_, err = fx.orders.Update(ctx, order.ID, inventory.UpdateOrderInput{SupplierID: i64ptr(404404)})
	assert.ErrorIs(t, err, domain.ErrSupplierNotFound)

	_, err = fx.orders.Update(ctx, 404404, inventory.UpdateOrderInput{SupplierID: &sup1.ID})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	bogus := "bogus"
	_, err = fx.orders.Update(ctx, order.ID, inventory.UpdateOrderInput{Status: &bogus})
	assert.EqualError(t, err, "Invalid status. Must be one of: pending, confirmed, shipped, delivered, cancelled")
}

func TestOrderUpdateStatus(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()

	sup := mustCreateSupplier(t, fx.suppliers, "Acme", "orders@acme.com")
	widget := mustCreateProduct(t, fx.products, "WH-001", "Widget", 19.99, 100)
	order, err := fx.orders.Create(ctx, inventory.CreateOrderInput{
		SupplierID: sup.ID,
		Items:      []inventory.OrderItemInput{item(widget.ID, 1, 10)},
	})
	require.NoError(t, err)

	updated, err := fx.orders.UpdateStatus(ctx, order.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, updated.Status)

	_, err = fx.orders.UpdateStatus(ctx, order.ID, "")
	assert.EqualError(t, err, "Status is required")

	_, err = fx.orders.UpdateStatus(ctx, order.ID, "bogus")
	assert.EqualError(t, err, "Invalid status. Must be one of: pending, confirmed, shipped, delivered, cancelled")

	_, err = fx.orders.UpdateStatus(ctx, 404404, "confirmed")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderProcess(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()

	sup := mustCreateSupplier(t, fx.suppliers, "Acme", "orders@acme.com")
	widget := mustCreateProduct(t, fx.products, "WH-001", "Widget", 19.99, 100)
	gadget := mustCreateProduct(t, fx.products, "WH-002", "Gadget", 29.99, 50)

	order, err := fx.orders.Create(ctx, inventory.CreateOrderInput{
		SupplierID: sup.ID,
		Items: []inventory.OrderItemInput{
			item(widget.ID, 5, 19.99),
			item(gadget.ID, 3, 29.99),
		},
	})
	require.NoError(t, err)

	// Processing before delivery is rejected.
	err = fx.orders.Process(ctx, order.ID)
	assert.EqualError(t, err, "Order must be delivered to process stock update")

	_, err = fx.orders.UpdateStatus(ctx, order.ID, "delivered")
	require.NoError(t, err)

	require.NoError(t, fx.orders.Process(ctx, order.ID))

	got, err := fx.products.Get(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 105, got.Stock)
	got, err = fx.products.Get(ctx, gadget.ID)
	require.NoError(t, err)
	assert.Equal(t, 53, got.Stock)

	processed, err := fx.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.NotNil(t, processed.ProcessedAt)

	// A second call must not credit stock again.
	err = fx.orders.Process(ctx, order.ID)
	assert.EqualError(t, err, "Order already processed")
	got, err = fx.products.Get(ctx, widget.ID)
	require.NoError(t, err)
	assert.Equal(t, 105, got.Stock)

	err = fx.orders.Process(ctx, 404404)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderListFilters(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()

	sup1 := mustCreateSupplier(t, fx.suppliers, "Acme", "orders@acme.com")
	sup2 := mustCreateSupplier(t, fx.suppliers, "Globex", "sales@globex.com")
	widget := mustCreateProduct(t, fx.products, "WH-001", "Widget", 19.99, 100)

	o1, err := fx.orders.Create(ctx, inventory.CreateOrderInput{
		SupplierID: sup1.ID,
		Items:      []inventory.OrderItemInput{item(widget.ID, 1, 10)},
	})
	require.NoError(t, err)
	_, err = fx.orders.Create(ctx, inventory.CreateOrderInput{
		SupplierID: sup2.ID,
		Items:      []inventory.OrderItemInput{item(widget.ID, 2, 10)},
	})
	require.NoError(t, err)
	_, err = fx.orders.UpdateStatus(ctx, o1.ID, "shipped")
	require.NoError(t, err)

	views, total, err := fx.orders.List(ctx, domain.OrderFilter{}, domain.ListOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, views, 2)

	_, total, err = fx.orders.List(ctx, domain.OrderFilter{Status: "shipped"}, domain.ListOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = fx.orders.List(ctx, domain.OrderFilter{SupplierID: sup2.ID}, domain.ListOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestOrderViewNullRefs(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()

	sup := mustCreateSupplier(t, fx.suppliers, "Acme", "orders@acme.com")
	widget := mustCreateProduct(t, fx.products, "WH-001", "Widget", 19.99, 100)

	order, err := fx.orders.Create(ctx, inventory.CreateOrderInput{
		SupplierID: sup.ID,
		Items:      []inventory.OrderItemInput{item(widget.ID, 1, 10)},
	})
	require.NoError(t, err)

	// Deleting the referenced records nulls the joins but keeps the order readable.
	require.NoError(t, fx.products.Delete(ctx, widget.ID))
	require.NoError(t, fx.suppliers.Delete(ctx, sup.ID))

	got, err := fx.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Supplier)
	require.Len(t, got.Items, 1)
	assert.Nil(t, got.Items[0].Product)
	assert.Equal(t, widget.ID, got.Items[0].ProductID)
}

func TestOrderDelete(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()

	sup := mustCreateSupplier(t, fx.suppliers, "Acme", "orders@acme.com")
	widget := mustCreateProduct(t, fx.products, "WH-001", "Widget", 19.99, 100)
	order, err := fx.orders.Create(ctx, inventory.CreateOrderInput{
		SupplierID: sup.ID,
		Items:      []inventory.OrderItemInput{item(widget.ID, 1, 10)},
	})
	require.NoError(t, err)

	require.NoError(t, fx.orders.Delete(ctx, order.ID))
	_, err = fx.orders.Get(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	assert.ErrorIs(t, fx.orders.Delete(ctx, order.ID), domain.ErrOrderNotFound)
}
