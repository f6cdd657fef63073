package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/pkg/apperr"
	"github.com/stockroomhq/stockroom/pkg/query"
)

func seededStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	s.Seed([]models.Item{
		{Name: "Wireless Headphones", SKU: "WH-001", Category: models.CategoryElectronics, Quantity: 25, Price: 99.99},
		{Name: "Coffee Mug", SKU: "CM-004", Category: models.CategoryHome, Quantity: 30, Price: 12.99},
		{Name: "World Atlas", SKU: "BK-505", Category: models.CategoryBooks, Quantity: 0, Price: 15.00},
	})
	return s
}

func listParams() query.Params {
	return query.Params{
		Category: query.CategoryAll,
		SortBy:   query.SortByName,
		SortDir:  query.SortAsc,
		Page:     1,
		Limit:    query.DefaultLimit,
	}
}

func TestMemoryStoreSeedAssignsIDs(t *testing.T) {
	s := seededStore(t)
	items, err := s.All()
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, uint(1), items[0].ID)
	assert.Equal(t, uint(3), items[2].ID)
}

func TestMemoryStoreListRunsPipeline(t *testing.T) {
	s := seededStore(t)
	res, err := s.List(listParams())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, "Coffee Mug", res.Items[0].Name)
	assert.Equal(t, "Wireless Headphones", res.Items[1].Name)
	assert.Equal(t, "World Atlas", res.Items[2].Name)
}

func TestMemoryStoreCreateRejectsDuplicateSKU(t *testing.T) {
	s := seededStore(t)
	err := s.Create(&models.Item{Name: "Another Headset", SKU: "WH-001", Category: models.CategoryElectronics})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	items, _ := s.All()
	assert.Len(t, items, 3, "collection unchanged after rejected create")
}

func TestMemoryStoreUpdateSKUConflictExcludesSelf(t *testing.T) {
	s := seededStore(t)

	// Keeping your own SKU is not a conflict.
	item, err := s.Find(1)
	require.NoError(t, err)
	item.Price = 89.99
	require.NoError(t, s.Update(&item))

	// Taking another record's SKU is.
	other, err := s.Find(2)
	require.NoError(t, err)
	other.SKU = "WH-001"
	err = s.Update(&other)
	assert.True(t, apperr.IsConflict(err))
}

func TestMemoryStoreUpdateUnknownIDIsNotFound(t *testing.T) {
	s := seededStore(t)

	// A missing id is not-found even when the SKU collides with an
	// existing record.
	ghost := models.Item{ID: 99, Name: "Ghost", SKU: "WH-001", Category: models.CategoryOther}
	err := s.Update(&ghost)
	assert.True(t, apperr.IsNotFound(err))
	assert.False(t, apperr.IsConflict(err))
}

func TestMemoryStoreUpdateRefreshesTimestamp(t *testing.T) {
	s := seededStore(t)
	before, err := s.Find(1)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	before.Quantity = 19
	require.NoError(t, s.Update(&before))

	after, err := s.Find(1)
	require.NoError(t, err)
	assert.Equal(t, 19, after.Quantity)
	assert.True(t, after.UpdatedAt.After(after.CreatedAt))
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
}

func TestMemoryStoreDeleteThenFind(t *testing.T) {
	s := seededStore(t)
	require.NoError(t, s.Delete(2))

	_, err := s.Find(2)
	assert.True(t, apperr.IsNotFound(err))
	assert.True(t, apperr.IsNotFound(s.Delete(2)))
}

func TestMemoryStoreCustomerEmailUnique(t *testing.T) {
	s := NewMemoryStore()
	c := models.Customer{FirstName: "Ava", LastName: "Martinez", Email: "ava@example.com"}
	require.NoError(t, s.CreateCustomer(&c))

	dup := models.Customer{FirstName: "Other", LastName: "Person", Email: "ava@example.com"}
	assert.True(t, apperr.IsConflict(s.CreateCustomer(&dup)))
}

func TestMemoryStoreOrderLifecycle(t *testing.T) {
	s := seededStore(t)
	c := models.Customer{FirstName: "Ava", LastName: "Martinez", Email: "ava@example.com"}
	require.NoError(t, s.CreateCustomer(&c))

	order := models.Order{
		OrderNumber: "ORD-20260901-TEST0001",
		CustomerID:  c.ID,
		Status:      models.OrderPending,
		OrderDate:   time.Now().UTC(),
		Items: []models.OrderItem{
			{ItemID: 1, Quantity: 5, UnitPrice: 99.99, TotalPrice: 499.95},
		},
	}
	require.NoError(t, s.CreateOrder(&order))
	require.NotZero(t, order.ID)

	item, err := s.Find(1)
	require.NoError(t, err)
	assert.Equal(t, 20, item.Quantity, "stock decremented on order")

	movements, err := s.Movements(1, 0)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, models.MovementOut, movements[0].Type)
	assert.Equal(t, -5, movements[0].Quantity)

	require.NoError(t, s.CancelOrder(&order))
	assert.Equal(t, models.OrderCancelled, order.Status)

	item, err = s.Find(1)
	require.NoError(t, err)
	assert.Equal(t, 25, item.Quantity, "stock restored on cancel")

	movements, err = s.Movements(1, 0)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, models.MovementReturn, movements[0].Type, "newest first")
}

func TestMemoryStoreOrderInsufficientStock(t *testing.T) {
	s := seededStore(t)
	c := models.Customer{FirstName: "Noah", LastName: "Kim", Email: "noah@example.com"}
	require.NoError(t, s.CreateCustomer(&c))

	order := models.Order{
		OrderNumber: "ORD-20260901-TEST0002",
		CustomerID:  c.ID,
		OrderDate:   time.Now().UTC(),
		Items: []models.OrderItem{
			{ItemID: 3, Quantity: 1, UnitPrice: 15.00, TotalPrice: 15.00},
		},
	}
	err := s.CreateOrder(&order)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	item, _ := s.Find(3)
	assert.Equal(t, 0, item.Quantity, "stock untouched after rejected order")
}

func TestMemoryStoreRecordMovement(t *testing.T) {
	s := seededStore(t)

	m := models.StockMovement{ItemID: 3, Type: models.MovementIn, Quantity: 12, ReferenceType: "manual"}
	require.NoError(t, s.Record(&m))
	require.NotZero(t, m.ID)

	item, err := s.Find(3)
	require.NoError(t, err)
	assert.Equal(t, 12, item.Quantity)

	below := models.StockMovement{ItemID: 3, Type: models.MovementOut, Quantity: -20, ReferenceType: "manual"}
	assert.True(t, apperr.IsValidation(s.Record(&below)))
}
