package models

import "time"

// MovementType classifies a stock movement.
type MovementType string

const (
	MovementIn         MovementType = "in"         // stock received
	MovementOut        MovementType = "out"        // stock sold or used
	MovementAdjustment MovementType = "adjustment" // manual correction
	MovementTransfer   MovementType = "transfer"   // between locations
	MovementReturn     MovementType = "return"     // customer return
	MovementDamage     MovementType = "damage"     // damaged or lost
)

// ValidMovementType reports whether s names a movement type.
func ValidMovementType(s string) bool {
	switch MovementType(s) {
	case MovementIn, MovementOut, MovementAdjustment,
		MovementTransfer, MovementReturn, MovementDamage:
		return true
	}
	return false
}

// StockMovement is one entry in the stock ledger. Quantity is signed:
// negative for stock leaving, positive for stock arriving.
type StockMovement struct {
	ID            uint         `gorm:"primaryKey"     json:"id"`
	ItemID        uint         `gorm:"not null;index" json:"item_id"`
	Item          *Item        `json:"item,omitempty"`
	Type          MovementType `gorm:"size:20;not null" json:"type"`
	Quantity      int          `gorm:"not null"       json:"quantity"`
	ReferenceType string       `gorm:"size:50"        json:"reference_type"`
	ReferenceID   uint         `json:"reference_id"`
	Notes         string       `gorm:"type:text"      json:"notes"`
	CreatedAt     time.Time    `json:"created_at"`
}
