package models

import "time"

// Category is the fixed product category enumeration.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryBooks       Category = "books"
	CategoryHome        Category = "home"
	CategoryOther       Category = "other"
)

// CategoryAll is the list-query sentinel that matches every category.
const CategoryAll = "all"

// Categories returns every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryClothing,
		CategoryBooks,
		CategoryHome,
		CategoryOther,
	}
}

// ValidCategory reports whether s names a category.
func ValidCategory(s string) bool {
	for _, c := range Categories() {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Item represents one stocked inventory record. No soft delete: a deleted
// item is gone, so the primary key and timestamps are declared explicitly
// instead of embedding gorm.Model.
type Item struct {
	ID            uint      `gorm:"primaryKey"               json:"id"`
	Name          string    `gorm:"size:100;not null;index"  json:"name"`
	Description   string    `gorm:"type:text"                json:"description"`
	Category      Category  `gorm:"size:20;not null;index"   json:"category"`
	Quantity      int       `gorm:"not null;default:0"       json:"quantity"`
	Price         float64   `gorm:"not null;default:0"       json:"price"`
	CostPrice     float64   `gorm:"not null;default:0"       json:"costPrice"`
	SKU           string    `gorm:"size:50;not null;uniqueIndex" json:"sku"`
	MinStockLevel int       `gorm:"not null;default:10"      json:"minStockLevel"`
	SupplierID    *uint     `gorm:"index"                    json:"supplierId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// LowStock reports whether quantity has fallen to or below threshold.
// A per-item MinStockLevel overrides the threshold when higher.
func (i Item) LowStock(threshold int) bool {
	if i.MinStockLevel > threshold {
		threshold = i.MinStockLevel
	}
	return i.Quantity <= threshold
}
