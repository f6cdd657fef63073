package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/app/repositories"
	"github.com/stockroomhq/stockroom/pkg/apperr"
)

func stockFixture(t *testing.T) (*StockService, *repositories.MemoryStore) {
	t.Helper()
	store := repositories.NewMemoryStore()
	store.Seed([]models.Item{
		{Name: "Wireless Headphones", SKU: "WH-001", Category: models.CategoryElectronics, Quantity: 25, Price: 99.99},
		{Name: "World Atlas", SKU: "BK-505", Category: models.CategoryBooks, Quantity: 0, Price: 15.00},
	})
	return NewStockService(store, store, 10), store
}

func TestStockRecordAppliesQuantity(t *testing.T) {
	svc, store := stockFixture(t)

	m, err := svc.Record(RecordMovementInput{ItemID: 2, Type: "in", Quantity: 30})
	require.NoError(t, err)
	assert.Equal(t, "manual", m.ReferenceType)

	item, err := store.Find(2)
	require.NoError(t, err)
	assert.Equal(t, 30, item.Quantity)
}

func TestStockRecordSignConventions(t *testing.T) {
	svc, _ := stockFixture(t)

	_, err := svc.Record(RecordMovementInput{ItemID: 1, Type: "in", Quantity: -5})
	assert.True(t, apperr.IsValidation(err), "inbound must be positive")

	_, err = svc.Record(RecordMovementInput{ItemID: 1, Type: "out", Quantity: 5})
	assert.True(t, apperr.IsValidation(err), "outbound must be negative")

	_, err = svc.Record(RecordMovementInput{ItemID: 1, Type: "teleport", Quantity: 5})
	assert.True(t, apperr.IsValidation(err), "unknown type rejected")

	_, err = svc.Record(RecordMovementInput{ItemID: 1, Type: "adjustment", Quantity: -5})
	assert.NoError(t, err, "adjustments may go either way")
}

func TestStockRecordNeverDrivesBelowZero(t *testing.T) {
	svc, store := stockFixture(t)

	_, err := svc.Record(RecordMovementInput{ItemID: 1, Type: "out", Quantity: -30})
	assert.True(t, apperr.IsValidation(err))

	item, _ := store.Find(1)
	assert.Equal(t, 25, item.Quantity)
}

func TestStockLevels(t *testing.T) {
	svc, _ := stockFixture(t)

	levels, err := svc.Levels()
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, "BK-505", levels[0].SKU, "lowest stock first")
	assert.True(t, levels[0].LowStock)
	assert.False(t, levels[1].LowStock)
}

func TestStockMovementsFilterByItem(t *testing.T) {
	svc, _ := stockFixture(t)

	_, err := svc.Record(RecordMovementInput{ItemID: 1, Type: "adjustment", Quantity: 1})
	require.NoError(t, err)
	_, err = svc.Record(RecordMovementInput{ItemID: 2, Type: "in", Quantity: 5})
	require.NoError(t, err)

	all, err := svc.Movements(0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := svc.Movements(2, 0)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, models.MovementIn, one[0].Type)
}
