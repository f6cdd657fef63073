// Package services holds the business rules between controllers and
// repositories. Services validate input, enforce domain invariants and
// return apperr values that controllers map to HTTP status codes.
package services

import (
	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/app/repositories"
	"github.com/stockroomhq/stockroom/pkg/apperr"
	"github.com/stockroomhq/stockroom/pkg/collection"
	"github.com/stockroomhq/stockroom/pkg/query"
	"github.com/stockroomhq/stockroom/pkg/validate"
)

// CreateItemInput is the payload for creating an inventory item.
type CreateItemInput struct {
	Name          string  `json:"name"          validate:"required,max=100"`
	Description   string  `json:"description"   validate:"nullable,max=2000"`
	Category      string  `json:"category"      validate:"required,in=electronics,clothing,books,home,other"`
	Quantity      int     `json:"quantity"      validate:"gte=0"`
	Price         float64 `json:"price"         validate:"gte=0"`
	CostPrice     float64 `json:"costPrice"     validate:"gte=0"`
	SKU           string  `json:"sku"           validate:"required,max=50"`
	MinStockLevel int     `json:"minStockLevel" validate:"gte=0"`
	SupplierID    *uint   `json:"supplierId"`
}

// UpdateItemInput is the payload for updating an item. All fields are
// optional; nil means "leave unchanged".
type UpdateItemInput struct {
	Name          *string  `json:"name"          validate:"min=1,max=100"`
	Description   *string  `json:"description"   validate:"max=2000"`
	Category      *string  `json:"category"      validate:"in=electronics,clothing,books,home,other"`
	Quantity      *int     `json:"quantity"      validate:"gte=0"`
	Price         *float64 `json:"price"         validate:"gte=0"`
	CostPrice     *float64 `json:"costPrice"     validate:"gte=0"`
	SKU           *string  `json:"sku"           validate:"min=1,max=50"`
	MinStockLevel *int     `json:"minStockLevel" validate:"gte=0"`
	SupplierID    *uint    `json:"supplierId"`
}

// CategoryCount is one entry of the per-category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// InventoryService implements the inventory operations.
type InventoryService struct {
	repo      repositories.ItemRepository
	threshold int
}

func NewInventoryService(repo repositories.ItemRepository, lowStockThreshold int) *InventoryService {
	return &InventoryService{repo: repo, threshold: lowStockThreshold}
}

// List runs the filter, sort and pagination pipeline.
func (s *InventoryService) List(p query.Params) (query.Result[models.Item], error) {
	return s.repo.List(p)
}

func (s *InventoryService) Get(id uint) (models.Item, error) {
	return s.repo.Find(id)
}

func (s *InventoryService) Create(in CreateItemInput) (models.Item, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Item{}, apperr.Validation(errs)
	}
	item := models.Item{
		Name:          in.Name,
		Description:   in.Description,
		Category:      models.Category(in.Category),
		Quantity:      in.Quantity,
		Price:         in.Price,
		CostPrice:     in.CostPrice,
		SKU:           in.SKU,
		MinStockLevel: in.MinStockLevel,
		SupplierID:    in.SupplierID,
	}
	if item.MinStockLevel == 0 {
		item.MinStockLevel = s.threshold
	}
	if err := s.repo.Create(&item); err != nil {
		return models.Item{}, err
	}
	s.notifyIfLow(item)
	return item, nil
}

func (s *InventoryService) Update(id uint, in UpdateItemInput) (models.Item, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Item{}, apperr.Validation(errs)
	}
	item, err := s.repo.Find(id)
	if err != nil {
		return models.Item{}, err
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Category != nil {
		item.Category = models.Category(*in.Category)
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.CostPrice != nil {
		item.CostPrice = *in.CostPrice
	}
	if in.SKU != nil {
		item.SKU = *in.SKU
	}
	if in.MinStockLevel != nil {
		item.MinStockLevel = *in.MinStockLevel
	}
	if in.SupplierID != nil {
		item.SupplierID = in.SupplierID
	}
	if err := s.repo.Update(&item); err != nil {
		return models.Item{}, err
	}
	s.notifyIfLow(item)
	return item, nil
}

func (s *InventoryService) Delete(id uint) error {
	return s.repo.Delete(id)
}

// LowStock returns every item at or below its reorder point, lowest
// stock first. A threshold <= 0 means the configured default.
func (s *InventoryService) LowStock(threshold int) ([]models.Item, error) {
	if threshold <= 0 {
		threshold = s.threshold
	}
	items, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	low := collection.Filter(items, func(it models.Item) bool {
		return it.LowStock(threshold)
	})
	collection.SortByStable(low, func(a, b models.Item) bool {
		return a.Quantity < b.Quantity
	})
	if low == nil {
		low = []models.Item{}
	}
	return low, nil
}

// CategoryCounts returns the item count per category, in the fixed
// category display order, including empty categories.
func (s *InventoryService) CategoryCounts() ([]CategoryCount, error) {
	items, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	grouped := collection.GroupBy(items, func(it models.Item) string {
		return string(it.Category)
	})
	out := make([]CategoryCount, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		out = append(out, CategoryCount{
			Category: string(c),
			Count:    len(grouped[string(c)]),
		})
	}
	return out, nil
}

func (s *InventoryService) notifyIfLow(item models.Item) {
	if item.LowStock(s.threshold) {
		dispatchLowStockAlert(item)
	}
}
