package app

import (
	"github.com/warehub/warehub/config"
	"github.com/warehub/warehub/internal/inventory"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// ServiceProvider provides access to the inventory services
type ServiceProvider interface {
	ProductService() *inventory.ProductService
	SupplierService() *inventory.SupplierService
	OrderService() *inventory.OrderService
}
