package app

import (
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"github.com/warehub/warehub/config"
	"github.com/warehub/warehub/internal/domain"
	"github.com/warehub/warehub/internal/inventory"
	"github.com/warehub/warehub/internal/storage/gormdb"
	"github.com/warehub/warehub/internal/storage/memory"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	sched     *cron.Cron
	bus       EventBus.Bus

	products  *inventory.ProductService
	suppliers *inventory.SupplierService
	orders    *inventory.OrderService
}

// Ensure Application implements all interfaces
var (
	_ DBProvider      = (*Application)(nil)
	_ ConfigProvider  = (*Application)(nil)
	_ ServiceProvider = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

func (a *Application) ProductService() *inventory.ProductService {
	return a.products
}

func (a *Application) SupplierService() *inventory.SupplierService {
	return a.suppliers
}

func (a *Application) OrderService() *inventory.OrderService {
	return a.orders
}

func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}
	zap.ReplaceGlobals(logger)

	var (
		productRepo  domain.ProductRepository
		supplierRepo domain.SupplierRepository
		orderRepo    domain.OrderRepository
	)
	if cfg.Database.Type == "memory" {
		// Volatile store for local development and demos.
		store := memory.NewStore()
		productRepo = store.Products()
		supplierRepo = store.Suppliers()
		orderRepo = store.Orders()
		zap.S().Warn("running with in-memory store, data will not survive a restart")
	} else {
		a.gormDB, err = gormdb.Open(cfg.Database)
		if err != nil {
			return err
		}
		zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)
		if err := a.MigrateDB(false); err != nil {
			zap.S().Errorf("database migration failed: %v", err)
		}
		productRepo = gormdb.NewProductRepository(a.gormDB)
		supplierRepo = gormdb.NewSupplierRepository(a.gormDB)
		orderRepo = gormdb.NewOrderRepository(a.gormDB)
	}

	a.bus = EventBus.New()
	a.products = inventory.NewProductService(productRepo)
	a.suppliers = inventory.NewSupplierService(supplierRepo)
	a.orders = inventory.NewOrderService(orderRepo, productRepo, supplierRepo, a.bus)

	a.subscribeEvents()
	a.initJob()
	return nil
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEBUG_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	if track {
		if err := a.gormDB.Debug().Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	} else {
		if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	}
	return nil
}

func (a *Application) DropAll() {
	if a.gormDB == nil {
		return
	}
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() {
	if a.gormDB == nil {
		zap.S().Warn("initdb skipped, the in-memory store has no schema")
		return
	}
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	err := a.gormDB.Migrator().AutoMigrate(domain.Tables...)
	if err != nil {
		zap.S().Error(err)
	}
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	_ = zap.L().Sync()
}
