package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRoutesAndURL(t *testing.T) {
	r := New()
	r.Get("/items/{id}", "items.show", ok)

	path, found := r.Path("items.show")
	require.True(t, found)
	assert.Equal(t, "/items/{id}", path)

	url, err := r.URL("items.show", map[string]string{"id": "42"})
	require.NoError(t, err)
	assert.Equal(t, "/items/42", url)

	_, err = r.URL("items.show", nil)
	assert.Error(t, err, "missing parameter")

	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestGroupPrefixing(t *testing.T) {
	r := New()
	api := r.Group("/api")
	inv := api.Group("/inventory")
	inv.Get("/", "inventory.list", ok)
	inv.Get("/{id}", "inventory.show", ok)

	path, found := r.Path("inventory.list")
	require.True(t, found)
	assert.Equal(t, "/api/inventory", path)

	path, _ = r.Path("inventory.show")
	assert.Equal(t, "/api/inventory/{id}", path)
}

func TestParamAndDispatch(t *testing.T) {
	r := New()
	var got string
	r.Get("/items/{id}", "items.show", func(w http.ResponseWriter, req *http.Request) {
		got = Param(req, "id")
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/items/7")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "7", got)
}

func TestGroupMiddlewareApplies(t *testing.T) {
	r := New()
	calls := 0
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			calls++
			next.ServeHTTP(w, req)
		})
	}
	grp := r.Group("/admin", mw)
	grp.Get("/ping", "admin.ping", ok)
	r.Get("/open", "open", ok)

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/admin/ping")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 1, calls)

	resp, err = http.Get(srv.URL + "/open")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 1, calls, "middleware scoped to the group")
}

func TestRoutesListing(t *testing.T) {
	r := New()
	r.Get("/a", "a", ok)
	r.Post("/b", "b", ok)
	r.HandleFunc("/unnamed", ok)

	infos := r.Routes()
	require.Len(t, infos, 2, "unnamed routes are not listed")
	assert.Equal(t, "a", infos[0].Name)
	assert.Equal(t, http.MethodPost, infos[1].Method)
}
