package domain

import "time"

// Product is a stock-keeping unit held in the warehouse catalog.
// SKU is normalized to uppercase and unique across the catalog.
type Product struct {
	ID        int64     `gorm:"primaryKey" json:"id,string" csv:"id"`
	SKU       string    `gorm:"size:64;uniqueIndex" json:"sku" csv:"sku"`
	Name      string    `gorm:"size:255;index" json:"name" csv:"name"`
	Price     float64   `json:"price" csv:"price"`
	Stock     int       `gorm:"default:0" json:"stock" csv:"stock"`
	CreatedAt time.Time `json:"createdAt" csv:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" csv:"-"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// Stock adjustment operations accepted by the stock endpoint.
const (
	StockOpAdd      = "add"
	StockOpSubtract = "subtract"
	StockOpSet      = "set"
)
