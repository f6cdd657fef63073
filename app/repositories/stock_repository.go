package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/pkg/apperr"
	"github.com/stockroomhq/stockroom/pkg/metrics"
)

// StockRepository is the stock ledger data access contract.
type StockRepository interface {
	// Movements returns ledger entries newest first. itemID 0 means all
	// items; limit 0 means no limit.
	Movements(itemID uint, limit int) ([]models.StockMovement, error)

	// Record writes a manual movement and applies its signed quantity
	// to the item's stock in the same transaction.
	Record(m *models.StockMovement) error
}

type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

func (r *GormStockRepository) Movements(itemID uint, limit int) ([]models.StockMovement, error) {
	defer metrics.ObserveDBQuery("stock_movements", time.Now())

	tx := r.db.Preload("Item").Order("created_at DESC, id DESC")
	if itemID != 0 {
		tx = tx.Where("item_id = ?", itemID)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var movements []models.StockMovement
	if err := tx.Find(&movements).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return movements, nil
}

func (r *GormStockRepository) Record(m *models.StockMovement) error {
	defer metrics.ObserveDBQuery("stock_record", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.First(&item, m.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("item %d not found", m.ItemID)
			}
			return apperr.Internal(err)
		}
		if item.Quantity+m.Quantity < 0 {
			return apperr.Validation(map[string]string{
				"quantity": "movement would drive stock below zero",
			})
		}
		err := tx.Model(&models.Item{}).Where("id = ?", m.ItemID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", m.Quantity)).Error
		if err != nil {
			return apperr.Internal(err)
		}
		if err := tx.Create(m).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}
