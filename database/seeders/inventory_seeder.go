// Package seeders loads the demo dataset. The same records back the
// "memory" driver and the database seed command, so both modes start
// from an identical catalogue.
package seeders

import (
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/pkg/logger"
)

// DemoItems returns the demo catalogue: ten items across every
// category, including one out-of-stock record.
func DemoItems() []models.Item {
	return []models.Item{
		{
			Name:        "Wireless Headphones",
			Description: "Over-ear Bluetooth headphones with noise cancellation",
			Category:    models.CategoryElectronics,
			Quantity:    25,
			Price:       99.99,
			CostPrice:   54.50,
			SKU:         "WH-001",
		},
		{
			Name:        "Cotton T-Shirt",
			Description: "Plain crew-neck tee, 100% organic cotton",
			Category:    models.CategoryClothing,
			Quantity:    50,
			Price:       19.99,
			CostPrice:   6.25,
			SKU:         "TS-002",
		},
		{
			Name:        "Python Programming Book",
			Description: "Hands-on introduction to Python for beginners",
			Category:    models.CategoryBooks,
			Quantity:    15,
			Price:       29.99,
			CostPrice:   14.00,
			SKU:         "PB-003",
		},
		{
			Name:        "Coffee Mug",
			Description: "Ceramic mug, 350ml, dishwasher safe",
			Category:    models.CategoryHome,
			Quantity:    30,
			Price:       12.99,
			CostPrice:   4.10,
			SKU:         "CM-004",
		},
		{
			Name:        "USB-C Charger",
			Description: "65W fast charger with braided cable",
			Category:    models.CategoryElectronics,
			Quantity:    40,
			Price:       34.99,
			CostPrice:   17.80,
			SKU:         "ELX-003",
		},
		{
			Name:        "Desk Lamp",
			Description: "Adjustable LED desk lamp with touch dimmer",
			Category:    models.CategoryHome,
			Quantity:    20,
			Price:       39.99,
			CostPrice:   21.00,
			SKU:         "DL-006",
		},
		{
			Name:        "Running Shoes",
			Description: "Lightweight road running shoes, breathable mesh",
			Category:    models.CategoryClothing,
			Quantity:    35,
			Price:       79.99,
			CostPrice:   41.30,
			SKU:         "RS-007",
		},
		{
			Name:        "Notebook",
			Description: "A5 dotted notebook, 180 pages",
			Category:    models.CategoryOther,
			Quantity:    100,
			Price:       8.99,
			CostPrice:   2.90,
			SKU:         "NB-008",
		},
		{
			Name:        "HDMI Cable",
			Description: "2m braided cable, 4K at 60Hz",
			Category:    models.CategoryElectronics,
			Quantity:    60,
			Price:       14.99,
			CostPrice:   5.75,
			SKU:         "ELX-888",
		},
		{
			Name:        "World Atlas",
			Description: "Hardcover atlas with political and physical maps",
			Category:    models.CategoryBooks,
			Quantity:    0,
			Price:       15.00,
			CostPrice:   7.60,
			SKU:         "BK-505",
		},
	}
}

// DemoCustomers returns two demo customers for order testing.
func DemoCustomers() []models.Customer {
	return []models.Customer{
		{
			FirstName:    "Ava",
			LastName:     "Martinez",
			Email:        "ava.martinez@example.com",
			Phone:        "+1-555-0101",
			AddressLine1: "12 Harbor Street",
			City:         "Portland",
			State:        "OR",
			PostalCode:   "97201",
			Country:      "USA",
		},
		{
			FirstName:    "Noah",
			LastName:     "Kim",
			Email:        "noah.kim@example.com",
			Phone:        "+1-555-0102",
			AddressLine1: "88 Birch Avenue",
			City:         "Austin",
			State:        "TX",
			PostalCode:   "78701",
			Country:      "USA",
		},
	}
}

// DemoSuppliers returns two demo suppliers.
func DemoSuppliers() []models.Supplier {
	return []models.Supplier{
		{
			Name:          "Acme Wholesale",
			ContactPerson: "Priya Shah",
			Email:         "orders@acmewholesale.example.com",
			Phone:         "+1-555-0201",
			AddressLine1:  "400 Dock Road",
			City:          "Oakland",
			State:         "CA",
			PostalCode:    "94607",
			Country:       "USA",
			PaymentTerms:  "Net 30",
			IsActive:      true,
		},
		{
			Name:          "Northwind Traders",
			ContactPerson: "Liam O'Connor",
			Email:         "supply@northwind.example.com",
			Phone:         "+1-555-0202",
			AddressLine1:  "7 Quay Lane",
			City:          "Seattle",
			State:         "WA",
			PostalCode:    "98101",
			Country:       "USA",
			PaymentTerms:  "Net 45",
			IsActive:      true,
		},
	}
}

// Run seeds the database. A populated items table means the seed has
// already run, so it is skipped rather than duplicated.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Item{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("seed skipped, items table already populated", "count", count)
		return nil
	}
	items := DemoItems()
	if err := db.Create(&items).Error; err != nil {
		return err
	}
	customers := DemoCustomers()
	if err := db.Create(&customers).Error; err != nil {
		return err
	}
	suppliers := DemoSuppliers()
	if err := db.Create(&suppliers).Error; err != nil {
		return err
	}
	logger.Info("seeded demo data",
		"items", len(items), "customers", len(customers), "suppliers", len(suppliers))
	return nil
}
