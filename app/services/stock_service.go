package services

import (
	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/app/repositories"
	"github.com/stockroomhq/stockroom/pkg/apperr"
	"github.com/stockroomhq/stockroom/pkg/collection"
	"github.com/stockroomhq/stockroom/pkg/validate"
)

// RecordMovementInput is the payload for a manual ledger entry.
// Quantity is signed: positive adds stock, negative removes it.
type RecordMovementInput struct {
	ItemID   uint   `json:"item_id"  validate:"required"`
	Type     string `json:"type"     validate:"required,in=in,out,adjustment,transfer,return,damage"`
	Quantity int    `json:"quantity" validate:"required"`
	Notes    string `json:"notes"    validate:"nullable,max=2000"`
}

// StockLevel is one row of the level overview.
type StockLevel struct {
	ItemID        uint   `json:"item_id"`
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	Quantity      int    `json:"quantity"`
	MinStockLevel int    `json:"min_stock_level"`
	LowStock      bool   `json:"low_stock"`
}

// StockService implements the stock ledger operations.
type StockService struct {
	stock     repositories.StockRepository
	items     repositories.ItemRepository
	threshold int
}

func NewStockService(
	stock repositories.StockRepository,
	items repositories.ItemRepository,
	lowStockThreshold int,
) *StockService {
	return &StockService{stock: stock, items: items, threshold: lowStockThreshold}
}

// Movements returns ledger entries, newest first. itemID 0 means all
// items, limit 0 means no limit.
func (s *StockService) Movements(itemID uint, limit int) ([]models.StockMovement, error) {
	movements, err := s.stock.Movements(itemID, limit)
	if err != nil {
		return nil, err
	}
	if movements == nil {
		movements = []models.StockMovement{}
	}
	return movements, nil
}

// Record validates and writes a manual movement. Inbound types must
// carry positive quantities and outbound types negative ones, so the
// ledger stays readable.
func (s *StockService) Record(in RecordMovementInput) (models.StockMovement, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.StockMovement{}, apperr.Validation(errs)
	}
	t := models.MovementType(in.Type)
	switch t {
	case models.MovementIn, models.MovementReturn:
		if in.Quantity < 0 {
			return models.StockMovement{}, apperr.Validation(map[string]string{
				"quantity": "must be positive for inbound movements",
			})
		}
	case models.MovementOut, models.MovementDamage:
		if in.Quantity > 0 {
			return models.StockMovement{}, apperr.Validation(map[string]string{
				"quantity": "must be negative for outbound movements",
			})
		}
	}

	m := models.StockMovement{
		ItemID:        in.ItemID,
		Type:          t,
		Quantity:      in.Quantity,
		ReferenceType: "manual",
		Notes:         in.Notes,
	}
	if err := s.stock.Record(&m); err != nil {
		return models.StockMovement{}, err
	}

	if item, err := s.items.Find(in.ItemID); err == nil && item.LowStock(s.threshold) {
		dispatchLowStockAlert(item)
	}
	return m, nil
}

// Levels returns the stock overview for every item with its low-stock
// flag, lowest stock first.
func (s *StockService) Levels() ([]StockLevel, error) {
	items, err := s.items.All()
	if err != nil {
		return nil, err
	}
	collection.SortByStable(items, func(a, b models.Item) bool {
		return a.Quantity < b.Quantity
	})
	levels := collection.Map(items, func(it models.Item) StockLevel {
		return StockLevel{
			ItemID:        it.ID,
			Name:          it.Name,
			SKU:           it.SKU,
			Quantity:      it.Quantity,
			MinStockLevel: it.MinStockLevel,
			LowStock:      it.LowStock(s.threshold),
		}
	})
	if levels == nil {
		levels = []StockLevel{}
	}
	return levels, nil
}
