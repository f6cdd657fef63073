package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/pkg/apperr"
	"github.com/stockroomhq/stockroom/pkg/metrics"
)

// OrderRepository is the order data access contract. Create and Cancel
// adjust item stock and write the matching stock movements in the same
// transaction as the order itself.
type OrderRepository interface {
	All() ([]models.Order, error)
	Find(id uint) (models.Order, error)
	Create(o *models.Order) error

	// Update persists status, dates and notes. Lines and stock are not
	// touched; stock only moves through Create, Cancel and the ledger.
	Update(o *models.Order) error

	Cancel(o *models.Order) error

	// Since returns orders placed at or after t, newest first.
	Since(t time.Time) ([]models.Order, error)
}

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) All() ([]models.Order, error) {
	defer metrics.ObserveDBQuery("order_all", time.Now())

	var orders []models.Order
	err := r.db.Preload("Customer").Preload("Items").Preload("Items.Item").
		Order("order_date DESC, id DESC").Find(&orders).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return orders, nil
}

func (r *GormOrderRepository) Find(id uint) (models.Order, error) {
	defer metrics.ObserveDBQuery("order_find", time.Now())

	var o models.Order
	err := r.db.Preload("Customer").Preload("Items").Preload("Items.Item").
		First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return o, apperr.NotFoundf("order %d not found", id)
	}
	if err != nil {
		return o, apperr.Internal(err)
	}
	return o, nil
}

// Create persists the order, decrements stock for every line and
// records an outbound movement per line. Stock is re-checked inside
// the transaction so concurrent orders cannot oversell.
func (r *GormOrderRepository) Create(o *models.Order) error {
	defer metrics.ObserveDBQuery("order_create", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, line := range o.Items {
			var item models.Item
			if err := tx.First(&item, line.ItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFoundf("item %d not found", line.ItemID)
				}
				return apperr.Internal(err)
			}
			if item.Quantity < line.Quantity {
				return apperr.Validation(map[string]string{
					"items": fmt.Sprintf(
						"insufficient stock for %s: %d requested, %d available",
						item.SKU, line.Quantity, item.Quantity),
				})
			}
		}
		if err := tx.Create(o).Error; err != nil {
			return apperr.Internal(err)
		}
		for _, line := range o.Items {
			err := tx.Model(&models.Item{}).Where("id = ?", line.ItemID).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", line.Quantity)).Error
			if err != nil {
				return apperr.Internal(err)
			}
			movement := models.StockMovement{
				ItemID:        line.ItemID,
				Type:          models.MovementOut,
				Quantity:      -line.Quantity,
				ReferenceType: "order",
				ReferenceID:   o.ID,
				Notes:         fmt.Sprintf("order %s", o.OrderNumber),
			}
			if err := tx.Create(&movement).Error; err != nil {
				return apperr.Internal(err)
			}
		}
		return nil
	})
}

func (r *GormOrderRepository) Update(o *models.Order) error {
	defer metrics.ObserveDBQuery("order_update", time.Now())

	err := r.db.Model(&models.Order{}).Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"status":        o.Status,
			"required_date": o.RequiredDate,
			"shipped_date":  o.ShippedDate,
			"notes":         o.Notes,
		}).Error
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Cancel marks the order cancelled, restores stock for every line and
// records a return movement per line.
func (r *GormOrderRepository) Cancel(o *models.Order) error {
	defer metrics.ObserveDBQuery("order_cancel", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Order{}).Where("id = ?", o.ID).
			Update("status", models.OrderCancelled).Error
		if err != nil {
			return apperr.Internal(err)
		}
		for _, line := range o.Items {
			err := tx.Model(&models.Item{}).Where("id = ?", line.ItemID).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", line.Quantity)).Error
			if err != nil {
				return apperr.Internal(err)
			}
			movement := models.StockMovement{
				ItemID:        line.ItemID,
				Type:          models.MovementReturn,
				Quantity:      line.Quantity,
				ReferenceType: "order",
				ReferenceID:   o.ID,
				Notes:         fmt.Sprintf("cancelled order %s", o.OrderNumber),
			}
			if err := tx.Create(&movement).Error; err != nil {
				return apperr.Internal(err)
			}
		}
		o.Status = models.OrderCancelled
		return nil
	})
}

func (r *GormOrderRepository) Since(t time.Time) ([]models.Order, error) {
	defer metrics.ObserveDBQuery("order_since", time.Now())

	var orders []models.Order
	err := r.db.Preload("Items").
		Where("order_date >= ?", t).
		Order("order_date DESC, id DESC").Find(&orders).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return orders, nil
}
