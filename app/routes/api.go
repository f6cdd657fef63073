// Package routes wires every controller onto the named-route router.
package routes

import (
	"github.com/stockroomhq/stockroom/app/controllers"
	"github.com/stockroomhq/stockroom/pkg/router"
)

// Controllers carries everything the route table mounts.
type Controllers struct {
	Inventory *controllers.InventoryController
	Customers *controllers.CustomerController
	Suppliers *controllers.SupplierController
	Orders    *controllers.OrderController
	Stock     *controllers.StockController
	Reports   *controllers.ReportController
	Dashboard *controllers.DashboardController
}

// Register mounts the full API surface.
func Register(r *router.Router, c Controllers) {
	r.Get("/health", "health", controllers.Health)

	api := r.Group("/api")

	inv := api.Group("/inventory")
	inv.Get("/", "inventory.list", c.Inventory.List)
	inv.Post("/", "inventory.create", c.Inventory.Create)
	inv.Get("/low-stock", "inventory.low_stock", c.Inventory.LowStock)
	inv.Get("/categories", "inventory.categories", c.Inventory.Categories)
	inv.Get("/{id}", "inventory.show", c.Inventory.Show)
	inv.Put("/{id}", "inventory.update", c.Inventory.Update)
	inv.Delete("/{id}", "inventory.delete", c.Inventory.Delete)

	customers := api.Group("/customers")
	customers.Get("/", "customers.list", c.Customers.List)
	customers.Post("/", "customers.create", c.Customers.Create)
	customers.Get("/{id}", "customers.show", c.Customers.Show)
	customers.Put("/{id}", "customers.update", c.Customers.Update)
	customers.Delete("/{id}", "customers.delete", c.Customers.Delete)

	suppliers := api.Group("/suppliers")
	suppliers.Get("/", "suppliers.list", c.Suppliers.List)
	suppliers.Post("/", "suppliers.create", c.Suppliers.Create)
	suppliers.Get("/{id}", "suppliers.show", c.Suppliers.Show)
	suppliers.Put("/{id}", "suppliers.update", c.Suppliers.Update)
	suppliers.Delete("/{id}", "suppliers.delete", c.Suppliers.Delete)

	orders := api.Group("/orders")
	orders.Get("/", "orders.list", c.Orders.List)
	orders.Post("/", "orders.create", c.Orders.Create)
	orders.Get("/{id}", "orders.show", c.Orders.Show)
	orders.Put("/{id}", "orders.update", c.Orders.Update)
	orders.Post("/{id}/cancel", "orders.cancel", c.Orders.Cancel)

	stock := api.Group("/stock")
	stock.Get("/movements", "stock.movements", c.Stock.Movements)
	stock.Post("/movements", "stock.record", c.Stock.Record)
	stock.Get("/levels", "stock.levels", c.Stock.Levels)

	reports := api.Group("/reports")
	reports.Get("/valuation", "reports.valuation", c.Reports.Valuation)
	reports.Get("/sales", "reports.sales", c.Reports.Sales)
	reports.Post("/export", "reports.export", c.Reports.Export)

	api.Get("/dashboard/summary", "dashboard.summary", c.Dashboard.Summary)
}
