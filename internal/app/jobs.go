package app

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/warehub/warehub/internal/inventory"
	"go.uber.org/zap"
)

func (a *Application) initJob() {
	a.sched = cron.New()

	interval := a.appConfig.Inventory.LowStockInterval
	if interval == "" {
		interval = "@every 1h"
	}
	if _, err := a.sched.AddFunc(interval, a.SchedLowStockScanTask); err != nil {
		zap.L().Error("failed to schedule low stock scan", zap.Error(err))
	}
	a.sched.Start()
}

// SchedLowStockScanTask logs a warning for every product whose stock has
// fallen below the configured threshold.
func (a *Application) SchedLowStockScanTask() {
	threshold := a.appConfig.Inventory.LowStockThreshold
	if threshold <= 0 {
		return
	}
	products, err := a.products.LowStock(context.Background(), threshold)
	if err != nil {
		zap.L().Error("low stock scan failed", zap.Error(err))
		return
	}
	for _, p := range products {
		zap.L().Warn("product below stock threshold",
			zap.String("sku", p.SKU),
			zap.String("name", p.Name),
			zap.Int("stock", p.Stock),
			zap.Int("threshold", threshold))
	}
}

// subscribeEvents attaches the default listeners for order workflow events.
func (a *Application) subscribeEvents() {
	_ = a.bus.Subscribe(inventory.TopicOrderCreated, func(orderID int64) {
		zap.L().Info("order created", zap.Int64("order_id", orderID))
	})
	_ = a.bus.Subscribe(inventory.TopicOrderStatusChanged, func(orderID int64) {
		zap.L().Info("order status changed", zap.Int64("order_id", orderID))
	})
	_ = a.bus.Subscribe(inventory.TopicOrderProcessed, func(orderID int64) {
		zap.L().Info("order delivery processed", zap.Int64("order_id", orderID))
		// Stock just changed, re-check thresholds right away.
		go a.SchedLowStockScanTask()
	})
}
