package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/app/repositories"
	"github.com/stockroomhq/stockroom/pkg/apperr"
	"github.com/stockroomhq/stockroom/pkg/validate"
)

// OrderLineInput is one requested line of a new order. UnitPrice is
// optional; absent means "use the item's current price", while an
// explicit zero prices the line free.
type OrderLineInput struct {
	ItemID    uint     `json:"item_id"    validate:"required"`
	Quantity  int      `json:"quantity"   validate:"required,gte=1"`
	UnitPrice *float64 `json:"unit_price" validate:"gte=0"`
}

// CreateOrderInput is the payload for placing an order.
type CreateOrderInput struct {
	CustomerID   uint             `json:"customer_id"   validate:"required"`
	Items        []OrderLineInput `json:"items"`
	TaxRate      float64          `json:"tax_rate"      validate:"gte=0,lte=1"`
	ShippingCost float64          `json:"shipping_cost" validate:"gte=0"`
	RequiredDate *time.Time       `json:"required_date"`
	Notes        string           `json:"notes"         validate:"nullable,max=2000"`
}

// UpdateOrderInput is the partial-update payload for an order.
type UpdateOrderInput struct {
	Status       *string    `json:"status"`
	RequiredDate *time.Time `json:"required_date"`
	Notes        *string    `json:"notes" validate:"max=2000"`
}

// OrderService implements order placement and lifecycle.
type OrderService struct {
	orders    repositories.OrderRepository
	customers repositories.CustomerRepository
	items     repositories.ItemRepository
}

func NewOrderService(
	orders repositories.OrderRepository,
	customers repositories.CustomerRepository,
	items repositories.ItemRepository,
) *OrderService {
	return &OrderService{orders: orders, customers: customers, items: items}
}

func (s *OrderService) List() ([]models.Order, error) {
	orders, err := s.orders.All()
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

func (s *OrderService) Get(id uint) (models.Order, error) {
	return s.orders.Find(id)
}

// newOrderNumber builds a number like ORD-20260901-3F7A21C4. The
// random suffix avoids a counter query and stays unique across
// processes.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

// Create verifies the customer and stock, prices the lines, computes
// totals and persists the order together with its stock movements.
func (s *OrderService) Create(in CreateOrderInput) (models.Order, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Order{}, apperr.Validation(errs)
	}
	if len(in.Items) == 0 {
		return models.Order{}, apperr.Validation(map[string]string{
			"items": "at least one line is required",
		})
	}
	for _, line := range in.Items {
		if errs := validate.Struct(line); validate.HasErrors(errs) {
			return models.Order{}, apperr.Validation(errs)
		}
	}
	if _, err := s.customers.Find(in.CustomerID); err != nil {
		return models.Order{}, err
	}

	now := time.Now().UTC()
	order := models.Order{
		OrderNumber:  newOrderNumber(now),
		CustomerID:   in.CustomerID,
		Status:       models.OrderPending,
		OrderDate:    now,
		RequiredDate: in.RequiredDate,
		ShippingCost: in.ShippingCost,
		Notes:        in.Notes,
	}
	for _, line := range in.Items {
		item, err := s.items.Find(line.ItemID)
		if err != nil {
			return models.Order{}, err
		}
		unitPrice := item.Price
		if line.UnitPrice != nil {
			unitPrice = *line.UnitPrice
		}
		totalPrice := unitPrice * float64(line.Quantity)
		order.Subtotal += totalPrice
		order.Items = append(order.Items, models.OrderItem{
			ItemID:     line.ItemID,
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: totalPrice,
		})
	}
	order.TaxAmount = order.Subtotal * in.TaxRate
	order.TotalAmount = order.Subtotal + order.TaxAmount + order.ShippingCost

	if err := s.orders.Create(&order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// Update changes status, required date or notes. Moving to shipped
// stamps the shipped date if it is not already set.
func (s *OrderService) Update(id uint, in UpdateOrderInput) (models.Order, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return models.Order{}, apperr.Validation(errs)
	}
	order, err := s.orders.Find(id)
	if err != nil {
		return models.Order{}, err
	}
	if in.Status != nil {
		if !models.ValidOrderStatus(*in.Status) {
			return models.Order{}, apperr.Validation(map[string]string{
				"status": fmt.Sprintf("unknown status %q", *in.Status),
			})
		}
		order.Status = models.OrderStatus(*in.Status)
		if order.Status == models.OrderShipped && order.ShippedDate == nil {
			now := time.Now().UTC()
			order.ShippedDate = &now
		}
	}
	if in.RequiredDate != nil {
		order.RequiredDate = in.RequiredDate
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}
	if err := s.orders.Update(&order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// Cancel cancels an order and restores its stock. Shipped and
// delivered orders cannot be cancelled; cancelling twice is a no-op
// rejected as a conflict so stock is never restored twice.
func (s *OrderService) Cancel(id uint) (models.Order, error) {
	order, err := s.orders.Find(id)
	if err != nil {
		return models.Order{}, err
	}
	if order.Status == models.OrderCancelled {
		return models.Order{}, apperr.Conflictf("order %s is already cancelled", order.OrderNumber)
	}
	if !order.Status.Cancellable() {
		return models.Order{}, apperr.Conflictf(
			"order %s cannot be cancelled once %s", order.OrderNumber, order.Status)
	}
	if err := s.orders.Cancel(&order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}
