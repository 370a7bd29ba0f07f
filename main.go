package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warehub/warehub/config"
	"github.com/warehub/warehub/internal/api"
	"github.com/warehub/warehub/internal/app"
	"github.com/warehub/warehub/internal/webserver"
	"go.uber.org/zap"
)

var (
	h        bool
	initdb   bool
	conffile string
)

func init() {
	flag.BoolVar(&h, "h", false, "help usage")
	flag.BoolVar(&initdb, "initdb", false, "drop and re-create the database schema, then exit")
	flag.StringVar(&conffile, "c", "warehub.yml", "config file")
}

func main() {
	flag.Parse()
	if h {
		flag.Usage()
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(conffile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "init application: %v\n", err)
		os.Exit(1)
	}
	defer application.Release()

	if initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	ws := webserver.New(cfg)
	handler := api.NewHandler(
		application.ProductService(),
		application.SupplierService(),
		application.OrderService(),
	)
	handler.Register(ws.Echo())

	go func() {
		if err := ws.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalf("web server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.S().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ws.Shutdown(ctx); err != nil {
		zap.S().Errorf("shutdown error: %v", err)
	}
}
