// Package migrations registers the schema migrations. Blank-import it
// from the CLI so init ordering fills the registry before the runner
// starts.
package migrations

import (
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/pkg/migration"
)

func init() {
	migration.Register("0001_create_core_tables", createCoreTables{})
}

// createCoreTables creates the suppliers, items, customers, orders,
// order_items and stock_movements tables.
type createCoreTables struct{}

func (createCoreTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Supplier{},
		&models.Item{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.StockMovement{},
	)
}

func (createCoreTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&models.StockMovement{},
		&models.OrderItem{},
		&models.Order{},
		&models.Customer{},
		&models.Item{},
		&models.Supplier{},
	)
}
