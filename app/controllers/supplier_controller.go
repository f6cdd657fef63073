package controllers

import (
	"net/http"
	"strconv"

	"github.com/stockroomhq/stockroom/app/repositories"
	"github.com/stockroomhq/stockroom/app/services"
	"github.com/stockroomhq/stockroom/pkg/bind"
	"github.com/stockroomhq/stockroom/pkg/response"
)

// SupplierController serves the /api/suppliers endpoints.
type SupplierController struct {
	service *services.SupplierService
}

func NewSupplierController(service *services.SupplierService) *SupplierController {
	return &SupplierController{service: service}
}

func (c *SupplierController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repositories.SupplierFilter{Search: q.Get("search")}
	if v := q.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Page = n
		}
	}
	if v := q.Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}
	if v := q.Get("is_active"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Active = &b
		}
	}
	page, err := c.service.List(f)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, page)
}

func (c *SupplierController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "supplier not found")
		return
	}
	supplier, err := c.service.Get(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, supplier)
}

func (c *SupplierController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateSupplierInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	supplier, err := c.service.Create(in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, supplier)
}

func (c *SupplierController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "supplier not found")
		return
	}
	var in services.UpdateSupplierInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	supplier, err := c.service.Update(id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, supplier)
}

func (c *SupplierController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "supplier not found")
		return
	}
	if err := c.service.Delete(id); err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, map[string]bool{"deleted": true})
}
