package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/app/repositories"
	"github.com/stockroomhq/stockroom/pkg/apperr"
)

func inventoryFixture(t *testing.T) (*InventoryService, *repositories.MemoryStore) {
	t.Helper()
	store := repositories.NewMemoryStore()
	store.Seed([]models.Item{
		{Name: "Wireless Headphones", SKU: "WH-001", Category: models.CategoryElectronics, Quantity: 25, Price: 99.99},
		{Name: "World Atlas", SKU: "BK-505", Category: models.CategoryBooks, Quantity: 0, Price: 15.00},
		{Name: "Desk Lamp", SKU: "DL-006", Category: models.CategoryHome, Quantity: 8, Price: 39.99, MinStockLevel: 5},
	})
	return NewInventoryService(store, 10), store
}

func TestInventoryCreateValidatesShape(t *testing.T) {
	svc, _ := inventoryFixture(t)

	_, err := svc.Create(CreateItemInput{
		Category: "furniture",
		Quantity: -3,
	})
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	require.Equal(t, apperr.KindValidation, e.Kind)
	assert.Contains(t, e.Fields, "name")
	assert.Contains(t, e.Fields, "category")
	assert.Contains(t, e.Fields, "quantity")
	assert.Contains(t, e.Fields, "sku")
}

func TestInventoryCreateDefaultsMinStockLevel(t *testing.T) {
	svc, _ := inventoryFixture(t)

	item, err := svc.Create(CreateItemInput{
		Name:     "Notebook",
		Category: "other",
		Quantity: 100,
		Price:    8.99,
		SKU:      "NB-008",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, item.MinStockLevel)
}

func TestInventoryUpdatePartial(t *testing.T) {
	svc, _ := inventoryFixture(t)

	price := 89.99
	item, err := svc.Update(1, UpdateItemInput{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 89.99, item.Price)
	assert.Equal(t, "Wireless Headphones", item.Name)
	assert.Equal(t, 25, item.Quantity)
}

func TestInventoryUpdateRejectsEmptyNameAndSKU(t *testing.T) {
	svc, store := inventoryFixture(t)

	// A supplied-but-empty name or sku must not be written through.
	empty := ""
	_, err := svc.Update(1, UpdateItemInput{Name: &empty, SKU: &empty})
	require.True(t, apperr.IsValidation(err))
	e, _ := apperr.As(err)
	assert.Contains(t, e.Fields, "name")
	assert.Contains(t, e.Fields, "sku")

	item, findErr := store.Find(1)
	require.NoError(t, findErr)
	assert.Equal(t, "Wireless Headphones", item.Name)
	assert.Equal(t, "WH-001", item.SKU)
}

func TestInventoryUpdateUnknownID(t *testing.T) {
	svc, _ := inventoryFixture(t)

	name := "Ghost"
	_, err := svc.Update(999, UpdateItemInput{Name: &name})
	assert.True(t, apperr.IsNotFound(err))
}

func TestInventoryLowStockHonorsPerItemLevel(t *testing.T) {
	svc, _ := inventoryFixture(t)

	// Default threshold 10: atlas (0) and lamp (8) both qualify; the
	// lamp's own level of 5 does not lower the effective threshold.
	low, err := svc.LowStock(0)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "BK-505", low[0].SKU, "lowest stock first")
	assert.Equal(t, "DL-006", low[1].SKU)

	// Tighter threshold of 3: the lamp's own level of 5 becomes the
	// effective threshold and 8 > 5, so only the atlas remains.
	low, err = svc.LowStock(3)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "BK-505", low[0].SKU)
}

func TestInventoryCategoryCounts(t *testing.T) {
	svc, _ := inventoryFixture(t)

	counts, err := svc.CategoryCounts()
	require.NoError(t, err)
	require.Len(t, counts, 5)

	byName := map[string]int{}
	for _, c := range counts {
		byName[c.Category] = c.Count
	}
	assert.Equal(t, 1, byName["electronics"])
	assert.Equal(t, 1, byName["books"])
	assert.Equal(t, 1, byName["home"])
	assert.Equal(t, 0, byName["clothing"])
	assert.Equal(t, 0, byName["other"])
}
