package controllers

import (
	"net/http"
	"strconv"

	"github.com/stockroomhq/stockroom/app/services"
	"github.com/stockroomhq/stockroom/pkg/bind"
	"github.com/stockroomhq/stockroom/pkg/query"
	"github.com/stockroomhq/stockroom/pkg/response"
)

// InventoryController serves the /api/inventory endpoints. List, CRUD
// and delete keep the exact body shapes the web client was built
// against, so they bypass the response envelope.
type InventoryController struct {
	service *services.InventoryService
}

func NewInventoryController(service *services.InventoryService) *InventoryController {
	return &InventoryController{service: service}
}

// List handles GET /api/inventory. Malformed query parameters never
// fail; they normalize to defaults.
func (c *InventoryController) List(w http.ResponseWriter, r *http.Request) {
	p := query.ParseParams(r.URL.Query())
	result, err := c.service.List(p)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// Show handles GET /api/inventory/{id}.
func (c *InventoryController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "item not found")
		return
	}
	item, err := c.service.Get(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

// Create handles POST /api/inventory.
func (c *InventoryController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateItemInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	item, err := c.service.Create(in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/inventory/{id}. Absent fields are left
// unchanged.
func (c *InventoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "item not found")
		return
	}
	var in services.UpdateItemInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	item, err := c.service.Update(id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/inventory/{id}.
func (c *InventoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "item not found")
		return
	}
	if err := c.service.Delete(id); err != nil {
		respondError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// LowStock handles GET /api/inventory/low-stock. An optional threshold
// query parameter overrides the configured reorder point.
func (c *InventoryController) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold := 0
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			threshold = n
		}
	}
	items, err := c.service.LowStock(threshold)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, items)
}

// Categories handles GET /api/inventory/categories.
func (c *InventoryController) Categories(w http.ResponseWriter, r *http.Request) {
	counts, err := c.service.CategoryCounts()
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, counts)
}
