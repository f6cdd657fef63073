package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom/app/models"
	"github.com/stockroomhq/stockroom/app/services"
)

func TestSupplierCreateAndList(t *testing.T) {
	srv, _ := testServer(t)

	resp := postJSON(t, srv.URL+"/api/suppliers", map[string]any{
		"name":  "Acme Wholesale",
		"email": "orders@acme.example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[struct {
		Data models.Supplier `json:"data"`
	}](t, resp)
	assert.Equal(t, "USA", created.Data.Country)
	assert.True(t, created.Data.IsActive)

	resp, err := http.Get(srv.URL + "/api/suppliers?search=acme")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listed := decode[struct {
		Data services.SupplierPage `json:"data"`
	}](t, resp)
	assert.Equal(t, 1, listed.Data.Total)
	require.Len(t, listed.Data.Items, 1)
	assert.Equal(t, "Acme Wholesale", listed.Data.Items[0].Name)
}

func TestSupplierDuplicateEmailConflicts(t *testing.T) {
	srv, _ := testServer(t)

	resp := postJSON(t, srv.URL+"/api/suppliers", map[string]any{
		"name":  "Acme Wholesale",
		"email": "orders@acme.example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/suppliers", map[string]any{
		"name":  "Acme Clone",
		"email": "orders@acme.example.com",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
