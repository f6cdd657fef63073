package services

import (
	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/pkg/logger"
	"github.com/stockroomhq/stockroom/pkg/queue"
)

// LowStockAlertJobName is the queue envelope type for low stock alerts.
const LowStockAlertJobName = "inventory.low_stock_alert"

// LowStockAlertJob fires when an item's quantity falls to or below its
// reorder point. The handler currently logs the alert; a mail or chat
// notifier can hook in here later.
type LowStockAlertJob struct {
	ItemID   uint   `json:"item_id"`
	SKU      string `json:"sku"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

func (j *LowStockAlertJob) Name() string { return LowStockAlertJobName }

func (j *LowStockAlertJob) Handle() error {
	logger.Warn("low stock alert",
		"item_id", j.ItemID,
		"sku", j.SKU,
		"name", j.ItemName,
		"quantity", j.Quantity,
	)
	return nil
}

// dispatchLowStockAlert queues an alert for item. Queue problems are
// logged, not surfaced, because the triggering write already succeeded.
func dispatchLowStockAlert(item models.Item) {
	job := &LowStockAlertJob{
		ItemID:   item.ID,
		SKU:      item.SKU,
		ItemName: item.Name,
		Quantity: item.Quantity,
	}
	if err := queue.Dispatch(job); err != nil {
		logger.Warn("low stock alert not queued", "sku", item.SKU, "error", err)
	}
}

// RegisterJobs wires every background job into the queue registry.
// Call once at boot before workers start.
func RegisterJobs() {
	queue.Register(LowStockAlertJobName, func() queue.Job { return &LowStockAlertJob{} })
}
