package models

import "time"

// OrderStatus is the order lifecycle enumeration.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderReturned   OrderStatus = "returned"
)

// ValidOrderStatus reports whether s names a status.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped,
		OrderDelivered, OrderCancelled, OrderReturned:
		return true
	}
	return false
}

// Cancellable reports whether an order in this status may still be cancelled.
// Shipped and delivered orders cannot.
func (s OrderStatus) Cancellable() bool {
	return s != OrderShipped && s != OrderDelivered
}

// Order is a customer order with line items. Monetary fields are computed
// at creation time and stored, not derived on read.
type Order struct {
	ID           uint        `gorm:"primaryKey"                   json:"id"`
	OrderNumber  string      `gorm:"size:50;not null;uniqueIndex" json:"order_number"`
	CustomerID   uint        `gorm:"not null;index"               json:"customer_id"`
	Customer     *Customer   `json:"customer,omitempty"`
	Status       OrderStatus `gorm:"size:20;not null;default:pending" json:"status"`
	OrderDate    time.Time   `json:"order_date"`
	RequiredDate *time.Time  `json:"required_date,omitempty"`
	ShippedDate  *time.Time  `json:"shipped_date,omitempty"`
	Subtotal     float64     `gorm:"not null;default:0" json:"subtotal"`
	TaxAmount    float64     `gorm:"not null;default:0" json:"tax_amount"`
	ShippingCost float64     `gorm:"not null;default:0" json:"shipping_cost"`
	TotalAmount  float64     `gorm:"not null;default:0" json:"total_amount"`
	Notes        string      `gorm:"type:text"          json:"notes"`
	Items        []OrderItem `json:"items"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID         uint    `gorm:"primaryKey"     json:"id"`
	OrderID    uint    `gorm:"not null;index" json:"order_id"`
	ItemID     uint    `gorm:"not null;index" json:"item_id"`
	Item       *Item   `json:"item,omitempty"`
	Quantity   int     `gorm:"not null"       json:"quantity"`
	UnitPrice  float64 `gorm:"not null"       json:"unit_price"`
	TotalPrice float64 `gorm:"not null"       json:"total_price"`
}
