package models

import "time"

// Supplier represents a vendor items are sourced from. Suppliers that
// are still referenced by items are deactivated instead of deleted, so
// IsActive doubles as the soft-delete flag.
type Supplier struct {
	ID            uint      `gorm:"primaryKey"                    json:"id"`
	Name          string    `gorm:"size:200;not null;index"       json:"name"`
	ContactPerson string    `gorm:"size:100"                      json:"contact_person"`
	Email         string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone         string    `gorm:"size:20"                       json:"phone"`
	AddressLine1  string    `gorm:"size:200"                      json:"address_line1"`
	AddressLine2  string    `gorm:"size:200"                      json:"address_line2"`
	City          string    `gorm:"size:100"                      json:"city"`
	State         string    `gorm:"size:50"                       json:"state"`
	PostalCode    string    `gorm:"size:20"                       json:"postal_code"`
	Country       string    `gorm:"size:50;default:USA"           json:"country"`
	TaxID         string    `gorm:"size:50"                       json:"tax_id"`
	PaymentTerms  string    `gorm:"size:100"                      json:"payment_terms"`
	IsActive      bool      `gorm:"not null;default:true"         json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
