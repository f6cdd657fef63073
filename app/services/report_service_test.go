package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/app/repositories"
)

func TestValuation(t *testing.T) {
	store := repositories.NewMemoryStore()
	store.Seed([]models.Item{
		{Name: "A", SKU: "A-1", Category: models.CategoryOther, Quantity: 10, Price: 5.00, CostPrice: 2.00},
		{Name: "B", SKU: "B-1", Category: models.CategoryOther, Quantity: 4, Price: 20.00, CostPrice: 12.50},
		{Name: "C", SKU: "C-1", Category: models.CategoryOther, Quantity: 0, Price: 99.00, CostPrice: 50.00},
	})
	svc := NewReportService(store, store.Orders())

	v, err := svc.Valuation()
	require.NoError(t, err)
	assert.Equal(t, 3, v.TotalItems)
	assert.Equal(t, 14, v.TotalQuantity)
	assert.InDelta(t, 10*2.00+4*12.50, v.TotalCostValue, 1e-9)
	assert.InDelta(t, 10*5.00+4*20.00, v.TotalRetailValue, 1e-9)
	assert.InDelta(t, v.TotalRetailValue-v.TotalCostValue, v.PotentialProfit, 1e-9)
}

func TestSalesSummaryCountsOnlyShippedAndDelivered(t *testing.T) {
	svc, store, customer := orderFixture(t)
	reports := NewReportService(store, store.Orders())

	place := func(qty int, status models.OrderStatus) {
		t.Helper()
		order, err := svc.Create(CreateOrderInput{
			CustomerID: customer.ID,
			Items:      []OrderLineInput{{ItemID: 2, Quantity: qty, UnitPrice: unitPrice(10)}},
		})
		require.NoError(t, err)
		if status != models.OrderPending {
			s := string(status)
			_, err = svc.Update(order.ID, UpdateOrderInput{Status: &s})
			require.NoError(t, err)
		}
	}
	place(2, models.OrderShipped)
	place(3, models.OrderDelivered)
	place(4, models.OrderPending) // not counted

	summary, err := reports.Sales(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalOrders)
	assert.Equal(t, 5, summary.TotalItemsSold)
	assert.InDelta(t, 50.0, summary.TotalRevenue, 1e-9)
	assert.InDelta(t, 25.0, summary.AverageOrderValue, 1e-9)
}

func TestSalesSummaryDateBounds(t *testing.T) {
	svc, store, customer := orderFixture(t)
	reports := NewReportService(store, store.Orders())

	order, err := svc.Create(CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []OrderLineInput{{ItemID: 1, Quantity: 1, UnitPrice: unitPrice(10)}},
	})
	require.NoError(t, err)
	s := string(models.OrderDelivered)
	_, err = svc.Update(order.ID, UpdateOrderInput{Status: &s})
	require.NoError(t, err)

	future := time.Now().UTC().Add(time.Hour)
	past := time.Now().UTC().Add(-time.Hour)

	within, err := reports.Sales(&past, &future)
	require.NoError(t, err)
	assert.Equal(t, 1, within.TotalOrders)

	tooLate, err := reports.Sales(&future, nil)
	require.NoError(t, err)
	assert.Zero(t, tooLate.TotalOrders)

	tooEarly, err := reports.Sales(nil, &past)
	require.NoError(t, err)
	assert.Zero(t, tooEarly.TotalOrders)
}
