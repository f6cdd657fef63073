package models

import "time"

// Customer represents a buyer with a unique email address.
type Customer struct {
	ID           uint      `gorm:"primaryKey"                    json:"id"`
	FirstName    string    `gorm:"size:100;not null"             json:"first_name"`
	LastName     string    `gorm:"size:100;not null"             json:"last_name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone        string    `gorm:"size:20"                       json:"phone"`
	AddressLine1 string    `gorm:"size:200"                      json:"address_line1"`
	AddressLine2 string    `gorm:"size:200"                      json:"address_line2"`
	City         string    `gorm:"size:100"                      json:"city"`
	State        string    `gorm:"size:50"                       json:"state"`
	PostalCode   string    `gorm:"size:20"                       json:"postal_code"`
	Country      string    `gorm:"size:50;default:USA"           json:"country"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName joins first and last name for display.
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
