package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/app/repositories"
	"github.com/stockroomhq/stockroom/pkg/apperr"
	"github.com/stockroomhq/stockroom/pkg/collection"
	"github.com/stockroomhq/stockroom/pkg/storage"
)

// Valuation is the inventory valuation report.
type Valuation struct {
	TotalItems       int     `json:"total_items"`
	TotalQuantity    int     `json:"total_quantity"`
	TotalCostValue   float64 `json:"total_cost_value"`
	TotalRetailValue float64 `json:"total_retail_value"`
	PotentialProfit  float64 `json:"potential_profit"`
}

// SalesSummary aggregates shipped and delivered orders over a period.
type SalesSummary struct {
	From              *time.Time `json:"from,omitempty"`
	To                *time.Time `json:"to,omitempty"`
	TotalOrders       int        `json:"total_orders"`
	TotalRevenue      float64    `json:"total_revenue"`
	TotalItemsSold    int        `json:"total_items_sold"`
	AverageOrderValue float64    `json:"average_order_value"`
}

// ExportResult describes a generated export file.
type ExportResult struct {
	Disk string `json:"disk"`
	Path string `json:"path"`
	URL  string `json:"url"`
	Rows int    `json:"rows"`
}

// ReportService implements the reporting operations.
type ReportService struct {
	items  repositories.ItemRepository
	orders repositories.OrderRepository
}

func NewReportService(
	items repositories.ItemRepository,
	orders repositories.OrderRepository,
) *ReportService {
	return &ReportService{items: items, orders: orders}
}

// Valuation totals stock on hand at cost and at retail.
func (s *ReportService) Valuation() (Valuation, error) {
	items, err := s.items.All()
	if err != nil {
		return Valuation{}, err
	}
	v := Valuation{TotalItems: len(items)}
	for _, it := range items {
		v.TotalQuantity += it.Quantity
		v.TotalCostValue += float64(it.Quantity) * it.CostPrice
		v.TotalRetailValue += float64(it.Quantity) * it.Price
	}
	v.PotentialProfit = v.TotalRetailValue - v.TotalCostValue
	return v, nil
}

// Sales summarizes shipped and delivered orders between from and to.
// Either bound may be nil for an open range.
func (s *ReportService) Sales(from, to *time.Time) (SalesSummary, error) {
	var (
		orders []models.Order
		err    error
	)
	if from != nil {
		orders, err = s.orders.Since(*from)
	} else {
		orders, err = s.orders.All()
	}
	if err != nil {
		return SalesSummary{}, err
	}

	sold := collection.Filter(orders, func(o models.Order) bool {
		if o.Status != models.OrderShipped && o.Status != models.OrderDelivered {
			return false
		}
		if to != nil && o.OrderDate.After(*to) {
			return false
		}
		return true
	})

	summary := SalesSummary{From: from, To: to, TotalOrders: len(sold)}
	for _, o := range sold {
		summary.TotalRevenue += o.TotalAmount
		for _, line := range o.Items {
			summary.TotalItemsSold += line.Quantity
		}
	}
	if summary.TotalOrders > 0 {
		summary.AverageOrderValue = summary.TotalRevenue / float64(summary.TotalOrders)
	}
	return summary, nil
}

// ExportCSV writes the full inventory as CSV through the storage layer
// and returns where it landed. disk "" means the default disk.
func (s *ReportService) ExportCSV(disk string) (ExportResult, error) {
	items, err := s.items.All()
	if err != nil {
		return ExportResult{}, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{
		"id", "name", "sku", "category", "quantity",
		"price", "cost_price", "min_stock_level", "updated_at",
	}
	if err := w.Write(header); err != nil {
		return ExportResult{}, apperr.Internal(err)
	}
	for _, it := range items {
		record := []string{
			strconv.FormatUint(uint64(it.ID), 10),
			it.Name,
			it.SKU,
			string(it.Category),
			strconv.Itoa(it.Quantity),
			strconv.FormatFloat(it.Price, 'f', 2, 64),
			strconv.FormatFloat(it.CostPrice, 'f', 2, 64),
			strconv.Itoa(it.MinStockLevel),
			it.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return ExportResult{}, apperr.Internal(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return ExportResult{}, apperr.Internal(err)
	}

	path := fmt.Sprintf("exports/inventory-%s.csv", time.Now().UTC().Format("20060102-150405"))
	target := storage.Default()
	diskName := "default"
	if disk != "" {
		target = storage.Disk(disk)
		diskName = disk
	}
	if err := target.Put(path, buf.Bytes()); err != nil {
		return ExportResult{}, apperr.Internal(err)
	}
	return ExportResult{
		Disk: diskName,
		Path: path,
		URL:  target.URL(path),
		Rows: len(items),
	}, nil
}
