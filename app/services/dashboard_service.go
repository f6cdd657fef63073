package services

import (
	"fmt"
	"time"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/app/repositories"
	"github.com/stockroomhq/stockroom/pkg/cache"
)

// dashboardCacheKey holds the rendered summary in Redis.
const dashboardCacheKey = "stockroom:dashboard:summary"

// dashboardTTL keeps the summary slightly stale rather than hammering
// every table on each page load.
const dashboardTTL = 60 * time.Second

// Alert is an actionable dashboard notice.
type Alert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// DashboardSummary is the landing page payload.
type DashboardSummary struct {
	TotalItems      int                    `json:"total_items"`
	TotalCustomers  int                    `json:"total_customers"`
	TotalOrders     int                    `json:"total_orders"`
	PendingOrders   int                    `json:"pending_orders"`
	LowStockCount   int                    `json:"low_stock_count"`
	InventoryValue  float64                `json:"inventory_value"`
	RecentOrders    []models.Order         `json:"recent_orders"`
	RecentMovements []models.StockMovement `json:"recent_movements"`
	Alerts          []Alert                `json:"alerts"`
	GeneratedAt     time.Time              `json:"generated_at"`
}

// DashboardService assembles the summary from the other services.
type DashboardService struct {
	inventory *InventoryService
	customers repositories.CustomerRepository
	orders    repositories.OrderRepository
	stock     repositories.StockRepository
	reports   *ReportService
}

func NewDashboardService(
	inventory *InventoryService,
	customers repositories.CustomerRepository,
	orders repositories.OrderRepository,
	stock repositories.StockRepository,
	reports *ReportService,
) *DashboardService {
	return &DashboardService{
		inventory: inventory,
		customers: customers,
		orders:    orders,
		stock:     stock,
		reports:   reports,
	}
}

// Summary returns the cached dashboard, rebuilding it on a cache miss.
func (s *DashboardService) Summary() (DashboardSummary, error) {
	var summary DashboardSummary
	if cache.Get(dashboardCacheKey, &summary) {
		return summary, nil
	}
	summary, err := s.build()
	if err != nil {
		return DashboardSummary{}, err
	}
	// Cache write failures degrade to a rebuild on the next request.
	_ = cache.Set(dashboardCacheKey, summary, dashboardTTL)
	return summary, nil
}

// Invalidate drops the cached summary. Called after writes that would
// make the dashboard visibly stale.
func (s *DashboardService) Invalidate() {
	_ = cache.Forget(dashboardCacheKey)
}

func (s *DashboardService) build() (DashboardSummary, error) {
	items, err := s.inventory.repo.All()
	if err != nil {
		return DashboardSummary{}, err
	}
	customers, err := s.customers.All()
	if err != nil {
		return DashboardSummary{}, err
	}
	orders, err := s.orders.All()
	if err != nil {
		return DashboardSummary{}, err
	}
	low, err := s.inventory.LowStock(0)
	if err != nil {
		return DashboardSummary{}, err
	}
	valuation, err := s.reports.Valuation()
	if err != nil {
		return DashboardSummary{}, err
	}
	movements, err := s.stock.Movements(0, 5)
	if err != nil {
		return DashboardSummary{}, err
	}

	summary := DashboardSummary{
		TotalItems:      len(items),
		TotalCustomers:  len(customers),
		TotalOrders:     len(orders),
		LowStockCount:   len(low),
		InventoryValue:  valuation.TotalRetailValue,
		RecentMovements: movements,
		RecentOrders:    orders,
		Alerts:          []Alert{},
		GeneratedAt:     time.Now().UTC(),
	}
	for _, o := range orders {
		if o.Status == models.OrderPending {
			summary.PendingOrders++
		}
	}
	if len(summary.RecentOrders) > 5 {
		summary.RecentOrders = summary.RecentOrders[:5]
	}
	if summary.RecentOrders == nil {
		summary.RecentOrders = []models.Order{}
	}
	if summary.RecentMovements == nil {
		summary.RecentMovements = []models.StockMovement{}
	}

	if len(low) > 0 {
		summary.Alerts = append(summary.Alerts, Alert{
			Type:    "warning",
			Message: fmt.Sprintf("%d items have low stock levels", len(low)),
		})
	}
	if summary.PendingOrders > 0 {
		summary.Alerts = append(summary.Alerts, Alert{
			Type:    "info",
			Message: fmt.Sprintf("%d orders are awaiting confirmation", summary.PendingOrders),
		})
	}
	return summary, nil
}
