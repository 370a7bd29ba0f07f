// Package api maps the HTTP surface onto the inventory services.
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/warehub/warehub/internal/inventory"
)

type Handler struct {
	products  *inventory.ProductService
	suppliers *inventory.SupplierService
	orders    *inventory.OrderService
}

func NewHandler(
	products *inventory.ProductService,
	suppliers *inventory.SupplierService,
	orders *inventory.OrderService,
) *Handler {
	return &Handler{products: products, suppliers: suppliers, orders: orders}
}

// Register wires every route. Paths and verbs are part of the public
// contract and must not change.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", h.health)

	e.GET("/products", h.listProducts)
	e.GET("/products/export", h.exportProducts)
	e.GET("/products/sku/:sku", h.getProductBySKU)
	e.GET("/products/:id", h.getProduct)
	e.POST("/products", h.createProduct)
	e.PUT("/products/:id", h.updateProduct)
	e.DELETE("/products/:id", h.deleteProduct)
	e.PATCH("/products/:id/stock", h.adjustStock)

	e.GET("/suppliers", h.listSuppliers)
	e.GET("/suppliers/:id", h.getSupplier)
	e.POST("/suppliers", h.createSupplier)
	e.PUT("/suppliers/:id", h.updateSupplier)
	e.DELETE("/suppliers/:id", h.deleteSupplier)

	e.GET("/orders", h.listOrders)
	e.GET("/orders/:id", h.getOrder)
	e.POST("/orders", h.createOrder)
	e.PUT("/orders/:id", h.updateOrder)
	e.DELETE("/orders/:id", h.deleteOrder)
	e.PATCH("/orders/:id/status", h.updateOrderStatus)
	e.POST("/orders/:id/process", h.processOrder)
}
