// Package server boots the HTTP service: config, database or memory
// store, cache, storage, queue workers, middleware stack and routes.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stockroomhq/stockroom/app/controllers"
	"github.com/stockroomhq/stockroom/app/repositories"
	"github.com/stockroomhq/stockroom/app/routes"
	"github.com/stockroomhq/stockroom/app/services"
	"github.com/stockroomhq/stockroom/config"
	"github.com/stockroomhq/stockroom/database/seeders"
	"github.com/stockroomhq/stockroom/pkg/cache"
	"github.com/stockroomhq/stockroom/pkg/database"
	"github.com/stockroomhq/stockroom/pkg/logger"
	"github.com/stockroomhq/stockroom/pkg/metrics"
	"github.com/stockroomhq/stockroom/pkg/middleware"
	"github.com/stockroomhq/stockroom/pkg/queue"
	"github.com/stockroomhq/stockroom/pkg/reqid"
	"github.com/stockroomhq/stockroom/pkg/router"
	"github.com/stockroomhq/stockroom/pkg/storage"
)

// repoSet bundles one repository per entity.
type repoSet struct {
	items     repositories.ItemRepository
	customers repositories.CustomerRepository
	suppliers repositories.SupplierRepository
	orders    repositories.OrderRepository
	stock     repositories.StockRepository
}

// buildRepos selects the persistence backend. The "memory" driver
// serves a seeded in-process store; everything else goes through GORM.
func buildRepos() (repoSet, error) {
	if config.DatabaseDriver() == "memory" {
		store := repositories.NewMemoryStore()
		items := seeders.DemoItems()
		store.Seed(items)
		for _, c := range seeders.DemoCustomers() {
			if err := store.CreateCustomer(&c); err != nil {
				return repoSet{}, err
			}
		}
		for _, sup := range seeders.DemoSuppliers() {
			if err := store.CreateSupplier(&sup); err != nil {
				return repoSet{}, err
			}
		}
		logger.Info("using in-memory store", "items", len(items))
		return repoSet{
			items:     store,
			customers: store.Customers(),
			suppliers: store.Suppliers(),
			orders:    store.Orders(),
			stock:     store,
		}, nil
	}
	if err := database.Connect(); err != nil {
		return repoSet{}, fmt.Errorf("database: %w", err)
	}
	db := database.DB
	return repoSet{
		items:     repositories.NewGormItemRepository(db),
		customers: repositories.NewGormCustomerRepository(db),
		suppliers: repositories.NewGormSupplierRepository(db),
		orders:    repositories.NewGormOrderRepository(db),
		stock:     repositories.NewGormStockRepository(db),
	}, nil
}

// buildRouter assembles the middleware stack and the route table.
func buildRouter(repos repoSet) *router.Router {
	threshold := config.LowStockThreshold()

	inventoryService := services.NewInventoryService(repos.items, threshold)
	customerService := services.NewCustomerService(repos.customers)
	supplierService := services.NewSupplierService(repos.suppliers)
	orderService := services.NewOrderService(repos.orders, repos.customers, repos.items)
	stockService := services.NewStockService(repos.stock, repos.items, threshold)
	reportService := services.NewReportService(repos.items, repos.orders)
	dashboardService := services.NewDashboardService(
		inventoryService, repos.customers, repos.orders, repos.stock, reportService)

	r := router.New()
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(200, time.Minute),
	)
	routes.Register(r, routes.Controllers{
		Inventory: controllers.NewInventoryController(inventoryService),
		Customers: controllers.NewCustomerController(customerService),
		Suppliers: controllers.NewSupplierController(supplierService),
		Orders:    controllers.NewOrderController(orderService, dashboardService),
		Stock:     controllers.NewStockController(stockService),
		Reports:   controllers.NewReportController(reportService),
		Dashboard: controllers.NewDashboardController(dashboardService),
	})
	r.HandleFunc("/metrics", metrics.Handler())
	return r
}

// Routes builds the route table without touching the database, for
// the route:list command.
func Routes() []router.RouteInfo {
	store := repositories.NewMemoryStore()
	r := buildRouter(repoSet{
		items:     store,
		customers: store.Customers(),
		suppliers: store.Suppliers(),
		orders:    store.Orders(),
		stock:     store,
	})
	return r.Routes()
}

// Run boots everything and blocks until SIGINT or SIGTERM, then shuts
// down gracefully.
func Run() error {
	config.Load()

	if uri := config.MongoLogURI(); uri != "" {
		h, err := logger.EnableMongo(uri, config.MongoLogDatabase(), config.MongoLogCollection())
		if err != nil {
			logger.Warn("mongo log handler disabled", "error", err)
		} else {
			defer h.Close()
		}
	}

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, cache disabled", "error", err)
	}
	if err := storage.Connect(); err != nil {
		return err
	}

	repos, err := buildRepos()
	if err != nil {
		return err
	}

	services.RegisterJobs()
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB, ""))
	} else {
		queue.SetDriver(queue.NewMemoryDriver(1024))
	}
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	workersDone := make(chan struct{})
	go func() {
		queue.StartWorkers(workerCtx, config.QueueWorkers())
		close(workersDone)
	}()

	r := buildRouter(repos)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		stopWorkers()
		<-workersDone
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	stopWorkers()
	<-workersDone
	return nil
}
