// Package repositories contains the data access layer. Each entity has
// a repository interface with a GORM implementation and an in-process
// memory implementation selected by the DB_DRIVER setting.
package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/pkg/apperr"
	"github.com/stockroomhq/stockroom/pkg/metrics"
	"github.com/stockroomhq/stockroom/pkg/query"
)

// ItemRepository is the inventory data access contract.
type ItemRepository interface {
	// List applies the filter, sort and pagination parameters and
	// returns one page plus the filtered total.
	List(p query.Params) (query.Result[models.Item], error)

	// All returns every item, unfiltered.
	All() ([]models.Item, error)

	Find(id uint) (models.Item, error)
	Create(item *models.Item) error
	Update(item *models.Item) error
	Delete(id uint) error
}

// ItemFields adapts models.Item to the query pipeline.
var ItemFields = query.Fields[models.Item]{
	Name:        func(it models.Item) string { return it.Name },
	SKU:         func(it models.Item) string { return it.SKU },
	Description: func(it models.Item) string { return it.Description },
	Category:    func(it models.Item) string { return string(it.Category) },
	Price:       func(it models.Item) float64 { return it.Price },
	Quantity:    func(it models.Item) int { return it.Quantity },
}

// GormItemRepository stores items in the configured SQL database.
type GormItemRepository struct {
	db *gorm.DB
}

func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// orderClause maps validated sort parameters to a SQL ORDER BY. The
// sort key is whitelisted by query.ParseParams so no user input
// reaches the SQL string, and the id tiebreak keeps page boundaries
// stable between equal keys.
func orderClause(p query.Params) string {
	column := map[string]string{
		query.SortByName:     "LOWER(name)",
		query.SortByPrice:    "price",
		query.SortByQuantity: "quantity",
	}[p.SortBy]
	dir := "ASC"
	if p.SortDir == query.SortDesc {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s, id ASC", column, dir)
}

func (r *GormItemRepository) List(p query.Params) (query.Result[models.Item], error) {
	defer metrics.ObserveDBQuery("item_list", time.Now())

	res := query.Result[models.Item]{Items: []models.Item{}, Page: p.Page, Limit: p.Limit}

	tx := r.db.Model(&models.Item{})
	if p.Category != query.CategoryAll {
		tx = tx.Where("LOWER(category) = ?", p.Category)
	}
	if p.Search != "" {
		needle := "%" + strings.ToLower(p.Search) + "%"
		tx = tx.Where(
			"LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(description) LIKE ?",
			needle, needle, needle,
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return res, apperr.Internal(err)
	}
	res.Total = int(total)

	err := tx.Order(orderClause(p)).
		Offset((p.Page - 1) * p.Limit).
		Limit(p.Limit).
		Find(&res.Items).Error
	if err != nil {
		return res, apperr.Internal(err)
	}
	return res, nil
}

func (r *GormItemRepository) All() ([]models.Item, error) {
	defer metrics.ObserveDBQuery("item_all", time.Now())

	var items []models.Item
	if err := r.db.Order("id ASC").Find(&items).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return items, nil
}

func (r *GormItemRepository) Find(id uint) (models.Item, error) {
	defer metrics.ObserveDBQuery("item_find", time.Now())

	var item models.Item
	err := r.db.First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, apperr.NotFoundf("item %d not found", id)
	}
	if err != nil {
		return item, apperr.Internal(err)
	}
	return item, nil
}

func (r *GormItemRepository) Create(item *models.Item) error {
	defer metrics.ObserveDBQuery("item_create", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Item{}).
			Where("sku = ?", item.SKU).Count(&count).Error; err != nil {
			return apperr.Internal(err)
		}
		if count > 0 {
			return apperr.Conflictf("an item with SKU %q already exists", item.SKU)
		}
		if err := tx.Create(item).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

func (r *GormItemRepository) Update(item *models.Item) error {
	defer metrics.ObserveDBQuery("item_update", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Item{}).
			Where("sku = ? AND id <> ?", item.SKU, item.ID).
			Count(&count).Error; err != nil {
			return apperr.Internal(err)
		}
		if count > 0 {
			return apperr.Conflictf("an item with SKU %q already exists", item.SKU)
		}
		if err := tx.Save(item).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

func (r *GormItemRepository) Delete(id uint) error {
	defer metrics.ObserveDBQuery("item_delete", time.Now())

	res := r.db.Delete(&models.Item{}, id)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("item %d not found", id)
	}
	return nil
}
