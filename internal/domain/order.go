package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// OrderStatus is the lifecycle state of a purchase order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every valid status value.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Valid reports whether s is one of the enumerated statuses.
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransition reports whether a status change from s to next is allowed.
// Every valid-to-valid transition is currently permitted; the table exists so
// that tightening the lifecycle is a one-line change per edge.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	return s.Valid() && next.Valid()
}

// OrderItem is a single line of a purchase order. Price is the unit price
// captured from the caller at order time, not re-read from the product.
type OrderItem struct {
	ProductID int64   `json:"productId,string"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
}

// OrderItems is persisted as a single JSON document on the order row.
type OrderItems []OrderItem

// Value implements driver.Valuer.
func (items OrderItems) Value() (driver.Value, error) {
	return json.Marshal(items)
}

// Scan implements sql.Scanner.
func (items *OrderItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	case nil:
		*items = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into OrderItems", value)
	}
}

// Order is a purchase order placed against a supplier to replenish stock.
// TotalAmount is derived from the items on every save and is never taken
// from input. ProcessedAt is set once stock has been credited for a
// delivered order, which keeps processing idempotent.
type Order struct {
	ID          int64       `gorm:"primaryKey" json:"id,string"`
	Items       OrderItems  `gorm:"type:jsonb" json:"items"`
	SupplierID  int64       `gorm:"index" json:"supplierId,string"`
	Status      OrderStatus `gorm:"size:32;index" json:"status"`
	TotalAmount float64     `json:"totalAmount"`
	OrderDate   time.Time   `gorm:"index" json:"orderDate"`
	ProcessedAt *time.Time  `json:"processedAt,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "orders"
}

// ComputeTotal recalculates TotalAmount from the current item list.
func (o *Order) ComputeTotal() {
	var total float64
	for _, item := range o.Items {
		total += float64(item.Qty) * item.Price
	}
	o.TotalAmount = total
}
