package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/app/repositories"
	"github.com/stockroomhq/stockroom/pkg/apperr"
)

func orderFixture(t *testing.T) (*OrderService, *repositories.MemoryStore, models.Customer) {
	t.Helper()
	store := repositories.NewMemoryStore()
	store.Seed([]models.Item{
		{Name: "Wireless Headphones", SKU: "WH-001", Category: models.CategoryElectronics, Quantity: 25, Price: 99.99},
		{Name: "HDMI Cable", SKU: "ELX-888", Category: models.CategoryElectronics, Quantity: 60, Price: 14.99},
	})
	customer := models.Customer{FirstName: "Ava", LastName: "Martinez", Email: "ava@example.com"}
	require.NoError(t, store.CreateCustomer(&customer))

	svc := NewOrderService(store.Orders(), store.Customers(), store)
	return svc, store, customer
}

func unitPrice(v float64) *float64 { return &v }

func TestOrderCreateComputesTotals(t *testing.T) {
	svc, store, customer := orderFixture(t)

	order, err := svc.Create(CreateOrderInput{
		CustomerID:   customer.ID,
		TaxRate:      0.08,
		ShippingCost: 10,
		Items: []OrderLineInput{
			{ItemID: 1, Quantity: 2},
			{ItemID: 2, Quantity: 3, UnitPrice: unitPrice(12.50)},
		},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))
	assert.Equal(t, models.OrderPending, order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 99.99, order.Items[0].UnitPrice, "falls back to catalogue price")
	assert.Equal(t, 12.50, order.Items[1].UnitPrice, "explicit price wins")

	subtotal := 2*99.99 + 3*12.50
	assert.InDelta(t, subtotal, order.Subtotal, 1e-9)
	assert.InDelta(t, subtotal*0.08, order.TaxAmount, 1e-9)
	assert.InDelta(t, subtotal*1.08+10, order.TotalAmount, 1e-9)

	item, err := store.Find(1)
	require.NoError(t, err)
	assert.Equal(t, 23, item.Quantity)
}

func TestOrderCreateHonorsExplicitZeroPrice(t *testing.T) {
	svc, _, customer := orderFixture(t)

	// An explicit zero is a free line, not a request for the catalogue
	// price.
	order, err := svc.Create(CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []OrderLineInput{{ItemID: 1, Quantity: 1, UnitPrice: unitPrice(0)}},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 0.0, order.Items[0].UnitPrice)
	assert.Equal(t, 0.0, order.Subtotal)
	assert.Equal(t, 0.0, order.TotalAmount)
}

func TestOrderCreateRequiresLines(t *testing.T) {
	svc, _, customer := orderFixture(t)

	_, err := svc.Create(CreateOrderInput{CustomerID: customer.ID})
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Contains(t, e.Fields, "items")
}

func TestOrderCreateUnknownCustomer(t *testing.T) {
	svc, _, _ := orderFixture(t)

	_, err := svc.Create(CreateOrderInput{
		CustomerID: 999,
		Items:      []OrderLineInput{{ItemID: 1, Quantity: 1}},
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestOrderCreateInsufficientStock(t *testing.T) {
	svc, store, customer := orderFixture(t)

	_, err := svc.Create(CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []OrderLineInput{{ItemID: 1, Quantity: 26}},
	})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	item, _ := store.Find(1)
	assert.Equal(t, 25, item.Quantity)
}

func TestOrderCancelRestoresStock(t *testing.T) {
	svc, store, customer := orderFixture(t)

	order, err := svc.Create(CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []OrderLineInput{{ItemID: 2, Quantity: 10}},
	})
	require.NoError(t, err)

	item, _ := store.Find(2)
	require.Equal(t, 50, item.Quantity)

	cancelled, err := svc.Cancel(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, cancelled.Status)

	item, _ = store.Find(2)
	assert.Equal(t, 60, item.Quantity)

	// A second cancel must not restore stock again.
	_, err = svc.Cancel(order.ID)
	assert.True(t, apperr.IsConflict(err))
	item, _ = store.Find(2)
	assert.Equal(t, 60, item.Quantity)
}

func TestOrderCancelRejectedOnceShipped(t *testing.T) {
	svc, _, customer := orderFixture(t)

	order, err := svc.Create(CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []OrderLineInput{{ItemID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	shipped := "shipped"
	updated, err := svc.Update(order.ID, UpdateOrderInput{Status: &shipped})
	require.NoError(t, err)
	require.NotNil(t, updated.ShippedDate)

	_, err = svc.Cancel(order.ID)
	assert.True(t, apperr.IsConflict(err))
}

func TestOrderUpdateRejectsUnknownStatus(t *testing.T) {
	svc, _, customer := orderFixture(t)

	order, err := svc.Create(CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []OrderLineInput{{ItemID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	bogus := "teleported"
	_, err = svc.Update(order.ID, UpdateOrderInput{Status: &bogus})
	assert.True(t, apperr.IsValidation(err))
}
