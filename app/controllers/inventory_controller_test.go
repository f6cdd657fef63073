package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/app/controllers"
	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/app/repositories"
	"github.com/stockroomhq/stockroom/app/routes"
	"github.com/stockroomhq/stockroom/app/services"
	"github.com/stockroomhq/stockroom/pkg/router"
)

func testServer(t *testing.T) (*httptest.Server, *repositories.MemoryStore) {
	t.Helper()
	store := repositories.NewMemoryStore()
	store.Seed([]models.Item{
		{Name: "Wireless Headphones", Description: "Bluetooth", Category: models.CategoryElectronics, Quantity: 25, Price: 99.99, SKU: "WH-001"},
		{Name: "Coffee Mug", Description: "Ceramic", Category: models.CategoryHome, Quantity: 30, Price: 12.99, SKU: "CM-004"},
		{Name: "HDMI Cable", Description: "2m braided", Category: models.CategoryElectronics, Quantity: 60, Price: 14.99, SKU: "ELX-888"},
		{Name: "World Atlas", Description: "Hardcover", Category: models.CategoryBooks, Quantity: 0, Price: 15.00, SKU: "BK-505"},
	})

	inventory := services.NewInventoryService(store, 10)
	customers := services.NewCustomerService(store.Customers())
	suppliers := services.NewSupplierService(store.Suppliers())
	orders := services.NewOrderService(store.Orders(), store.Customers(), store)
	stock := services.NewStockService(store, store, 10)
	reports := services.NewReportService(store, store.Orders())
	dashboard := services.NewDashboardService(inventory, store.Customers(), store.Orders(), store, reports)

	r := router.New()
	routes.Register(r, routes.Controllers{
		Inventory: controllers.NewInventoryController(inventory),
		Customers: controllers.NewCustomerController(customers),
		Suppliers: controllers.NewSupplierController(suppliers),
		Orders:    controllers.NewOrderController(orders, dashboard),
		Stock:     controllers.NewStockController(stock),
		Reports:   controllers.NewReportController(reports),
		Dashboard: controllers.NewDashboardController(dashboard),
	})

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)
	return srv, store
}

type listBody struct {
	Items []models.Item `json:"items"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestInventoryList(t *testing.T) {
	srv, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/api/inventory")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[listBody](t, resp)
	assert.Equal(t, 4, body.Total)
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 5, body.Limit)
	require.Len(t, body.Items, 4)
	assert.Equal(t, "Coffee Mug", body.Items[0].Name)
}

func TestInventoryListFiltered(t *testing.T) {
	srv, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/api/inventory?category=electronics&sortBy=price&sortDir=desc")
	require.NoError(t, err)
	body := decode[listBody](t, resp)

	assert.Equal(t, 2, body.Total)
	require.Len(t, body.Items, 2)
	assert.Equal(t, "WH-001", body.Items[0].SKU)
	assert.Equal(t, "ELX-888", body.Items[1].SKU)
}

func TestInventoryListMalformedParamsNormalize(t *testing.T) {
	srv, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/api/inventory?page=banana&limit=-3&sortBy=sku")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[listBody](t, resp)
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 1, body.Limit)
	assert.Equal(t, 4, body.Total)
}

func TestInventoryCreate(t *testing.T) {
	srv, _ := testServer(t)

	resp := postJSON(t, srv.URL+"/api/inventory", map[string]any{
		"name":     "Desk Lamp",
		"category": "home",
		"quantity": 20,
		"price":    39.99,
		"sku":      "DL-006",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	item := decode[models.Item](t, resp)
	assert.NotZero(t, item.ID)
	assert.Equal(t, "DL-006", item.SKU)
	assert.Equal(t, 10, item.MinStockLevel, "defaults to the configured threshold")
}

func TestInventoryCreateDuplicateSKU(t *testing.T) {
	srv, store := testServer(t)

	resp := postJSON(t, srv.URL+"/api/inventory", map[string]any{
		"name":     "Headphones Clone",
		"category": "electronics",
		"quantity": 1,
		"price":    1.00,
		"sku":      "WH-001",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	items, err := store.All()
	require.NoError(t, err)
	assert.Len(t, items, 4, "collection unchanged")
}

func TestInventoryCreateValidation(t *testing.T) {
	srv, _ := testServer(t)

	resp := postJSON(t, srv.URL+"/api/inventory", map[string]any{
		"category": "furniture",
		"quantity": -1,
		"price":    -1,
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decode[struct {
		Errors map[string]string `json:"errors"`
	}](t, resp)
	assert.Contains(t, body.Errors, "name")
	assert.Contains(t, body.Errors, "category")
	assert.Contains(t, body.Errors, "quantity")
	assert.Contains(t, body.Errors, "price")
	assert.Contains(t, body.Errors, "sku")
}

func TestInventoryShowNotFound(t *testing.T) {
	srv, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/api/inventory/999")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInventoryPartialUpdate(t *testing.T) {
	srv, _ := testServer(t)

	body, _ := json.Marshal(map[string]any{"quantity": 5})
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/inventory/1", bytes.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	item := decode[models.Item](t, resp)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, "Wireless Headphones", item.Name, "unspecified fields unchanged")
	assert.Equal(t, 99.99, item.Price)
}

func TestInventoryUpdateEmptyNameAndSKU(t *testing.T) {
	srv, store := testServer(t)

	body, _ := json.Marshal(map[string]any{"name": "", "sku": ""})
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/inventory/1", bytes.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	errs := decode[struct {
		Errors map[string]string `json:"errors"`
	}](t, resp)
	assert.Contains(t, errs.Errors, "name")
	assert.Contains(t, errs.Errors, "sku")

	item, findErr := store.Find(1)
	require.NoError(t, findErr)
	assert.Equal(t, "Wireless Headphones", item.Name)
	assert.Equal(t, "WH-001", item.SKU)
}

func TestInventoryDelete(t *testing.T) {
	srv, _ := testServer(t)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/inventory/2", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]bool](t, resp)
	assert.True(t, body["success"])

	resp2, err := http.DefaultClient.Do(req.Clone(req.Context()))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestInventoryLowStock(t *testing.T) {
	srv, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/api/inventory/low-stock")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[struct {
		Data []models.Item `json:"data"`
	}](t, resp)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "BK-505", body.Data[0].SKU)
}

func TestInventoryCategories(t *testing.T) {
	srv, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/api/inventory/categories")
	require.NoError(t, err)
	body := decode[struct {
		Data []services.CategoryCount `json:"data"`
	}](t, resp)

	require.Len(t, body.Data, 5)
	counts := map[string]int{}
	for _, c := range body.Data {
		counts[c.Category] = c.Count
	}
	assert.Equal(t, 2, counts["electronics"])
	assert.Equal(t, 1, counts["home"])
	assert.Equal(t, 1, counts["books"])
	assert.Equal(t, 0, counts["clothing"])
}
