package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/warehub/warehub/internal/domain"
	"github.com/warehub/warehub/pkg/common"
	"go.uber.org/zap"
)

// OrderService is the purchase-order workflow engine: it validates item and
// supplier references, derives totals, guards the status enum and credits
// product stock when a delivered order is processed.
type OrderService struct {
	orders    domain.OrderRepository
	products  domain.ProductRepository
	suppliers domain.SupplierRepository
	bus       EventBus.Bus
}

func NewOrderService(
	orders domain.OrderRepository,
	products domain.ProductRepository,
	suppliers domain.SupplierRepository,
	bus EventBus.Bus,
) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		suppliers: suppliers,
		bus:       bus,
	}
}

// OrderItemInput is one requested line item. Qty and Price are pointers so
// missing fields can be rejected explicitly.
type OrderItemInput struct {
	ProductID int64
	Qty       *int
	Price     *float64
}

type CreateOrderInput struct {
	Items      []OrderItemInput
	SupplierID int64
}

// UpdateOrderInput is a partial update; nil fields are unchanged.
type UpdateOrderInput struct {
	Items      []OrderItemInput
	SupplierID *int64
	Status     *string
}

// SupplierRef is the supplier summary joined into order responses. A deleted
// supplier leaves the reference null rather than failing the read.
type SupplierRef struct {
	ID      int64              `json:"id,string"`
	Name    string             `json:"name"`
	Contact SupplierContactRef `json:"contact"`
}

type SupplierContactRef struct {
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// ProductRef is the product summary joined into order items.
type ProductRef struct {
	ID    int64   `json:"id,string"`
	SKU   string  `json:"sku"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock *int    `json:"stock,omitempty"`
}

type OrderItemView struct {
	ProductID int64       `json:"productId,string"`
	Qty       int         `json:"qty"`
	Price     float64     `json:"price"`
	Product   *ProductRef `json:"product"`
}

// OrderView is an order joined with its supplier and item-product summaries.
type OrderView struct {
	domain.Order
	Supplier *SupplierRef    `json:"supplier"`
	Items    []OrderItemView `json:"items"`
}

func (s *OrderService) publish(topic string, orderID int64) {
	if s.bus != nil {
		s.bus.Publish(topic, orderID)
	}
}

// validateItems checks item shape and product existence and returns the
// normalized item list. Prices are taken from the caller, not the product.
func (s *OrderService) validateItems(ctx context.Context, items []OrderItemInput) (domain.OrderItems, error) {
	if len(items) == 0 {
		return nil, domain.Validation("Order must contain at least one item")
	}
	validated := make(domain.OrderItems, 0, len(items))
	for _, item := range items {
		if item.ProductID == 0 || item.Qty == nil || *item.Qty < 1 || item.Price == nil {
			return nil, domain.Validation("Each item must have productId, qty, and price")
		}
		if *item.Price < 0 {
			return nil, domain.Validation("Item price must be non-negative")
		}
		if _, err := s.products.GetByID(ctx, item.ProductID); err != nil {
			return nil, err
		}
		validated = append(validated, domain.OrderItem{
			ProductID: item.ProductID,
			Qty:       *item.Qty,
			Price:     *item.Price,
		})
	}
	return validated, nil
}

func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*OrderView, error) {
	if in.SupplierID == 0 {
		return nil, domain.Validation("Supplier ID is required")
	}
	if _, err := s.suppliers.GetByID(ctx, in.SupplierID); err != nil {
		return nil, err
	}
	items, err := s.validateItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:         common.UUIDint64(),
		Items:      items,
		SupplierID: in.SupplierID,
		Status:     domain.OrderStatusPending,
		OrderDate:  time.Now(),
	}
	order.ComputeTotal()

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	s.publish(TopicOrderCreated, order.ID)
	return s.view(ctx, order, true)
}

func (s *OrderService) Update(ctx context.Context, id int64, in UpdateOrderInput) (*OrderView, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Items != nil {
		items, err := s.validateItems(ctx, in.Items)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}
	if in.SupplierID != nil {
		if _, err := s.suppliers.GetByID(ctx, *in.SupplierID); err != nil {
			return nil, err
		}
		order.SupplierID = *in.SupplierID
	}
	if in.Status != nil {
		status, err := parseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		order.Status = status
	}
	order.ComputeTotal()

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return s.view(ctx, order, true)
}

func parseStatus(raw string) (domain.OrderStatus, error) {
	status := domain.OrderStatus(raw)
	if !status.Valid() {
		names := make([]string, len(domain.OrderStatuses))
		for i, v := range domain.OrderStatuses {
			names[i] = string(v)
		}
		return "", domain.Validation("Invalid status. Must be one of: " + strings.Join(names, ", "))
	}
	return status, nil
}

// UpdateStatus changes only the status field.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, raw string) (*OrderView, error) {
	if raw == "" {
		return nil, domain.Validation("Status is required")
	}
	status, err := parseStatus(raw)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransition(status) {
		return nil, domain.Validation("Status transition not allowed")
	}
	order.Status = status

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	s.publish(TopicOrderStatusChanged, order.ID)
	return s.view(ctx, order, true)
}

// Process credits each item's quantity to the product's stock once the order
// has been delivered. The processed-at stamp keeps a repeated call from
// double-crediting stock.
func (s *OrderService) Process(ctx context.Context, id int64) error {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderStatusDelivered {
		return domain.Validation("Order must be delivered to process stock update")
	}
	if order.ProcessedAt != nil {
		return domain.Validation("Order already processed")
	}

	if err := s.orders.ProcessDelivery(ctx, order); err != nil {
		return err
	}
	zap.L().Info("order processed, stock credited",
		zap.Int64("order_id", order.ID),
		zap.Int("items", len(order.Items)))
	s.publish(TopicOrderProcessed, order.ID)
	return nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*OrderView, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, order, true)
}

func (s *OrderService) List(ctx context.Context, filter domain.OrderFilter, opts domain.ListOptions) ([]OrderView, int64, error) {
	orders, total, err := s.orders.List(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.views(ctx, orders, false)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	return s.orders.Delete(ctx, id)
}

func (s *OrderService) view(ctx context.Context, order *domain.Order, detail bool) (*OrderView, error) {
	views, err := s.views(ctx, []domain.Order{*order}, detail)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// views joins orders with supplier and product summaries. References that no
// longer resolve (deleted product or supplier) come back null.
func (s *OrderService) views(ctx context.Context, orders []domain.Order, detail bool) ([]OrderView, error) {
	supplierIDs := make([]int64, 0, len(orders))
	var productIDs []int64
	seenSupplier := map[int64]bool{}
	seenProduct := map[int64]bool{}
	for _, o := range orders {
		if !seenSupplier[o.SupplierID] {
			seenSupplier[o.SupplierID] = true
			supplierIDs = append(supplierIDs, o.SupplierID)
		}
		for _, item := range o.Items {
			if !seenProduct[item.ProductID] {
				seenProduct[item.ProductID] = true
				productIDs = append(productIDs, item.ProductID)
			}
		}
	}

	suppliers := map[int64]domain.Supplier{}
	if len(supplierIDs) > 0 {
		var err error
		suppliers, err = s.suppliers.GetByIDs(ctx, supplierIDs)
		if err != nil {
			return nil, err
		}
	}
	products := map[int64]domain.Product{}
	if len(productIDs) > 0 {
		var err error
		products, err = s.products.GetByIDs(ctx, productIDs)
		if err != nil {
			return nil, err
		}
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		view := OrderView{Order: o}
		if sup, ok := suppliers[o.SupplierID]; ok {
			ref := &SupplierRef{
				ID:      sup.ID,
				Name:    sup.Name,
				Contact: SupplierContactRef{Email: sup.Contact.Email},
			}
			if detail {
				ref.Contact.Phone = sup.Contact.Phone
				ref.Contact.Address = sup.Contact.Address
			}
			view.Supplier = ref
		}
		view.Items = make([]OrderItemView, 0, len(o.Items))
		for _, item := range o.Items {
			iv := OrderItemView{ProductID: item.ProductID, Qty: item.Qty, Price: item.Price}
			if p, ok := products[item.ProductID]; ok {
				ref := &ProductRef{ID: p.ID, SKU: p.SKU, Name: p.Name, Price: p.Price}
				if detail {
					stock := p.Stock
					ref.Stock = &stock
				}
				iv.Product = ref
			}
			view.Items = append(view.Items, iv)
		}
		views = append(views, view)
	}
	return views, nil
}
