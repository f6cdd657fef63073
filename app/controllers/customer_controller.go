package controllers

import (
	"net/http"

	"github.com/stockroomhq/stockroom/app/services"
	"github.com/stockroomhq/stockroom/pkg/bind"
	"github.com/stockroomhq/stockroom/pkg/response"
)

// CustomerController serves the /api/customers endpoints.
type CustomerController struct {
	service *services.CustomerService
}

func NewCustomerController(service *services.CustomerService) *CustomerController {
	return &CustomerController{service: service}
}

func (c *CustomerController) List(w http.ResponseWriter, r *http.Request) {
	customers, err := c.service.List()
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, customers)
}

func (c *CustomerController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "customer not found")
		return
	}
	customer, err := c.service.Get(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, customer)
}

func (c *CustomerController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateCustomerInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	customer, err := c.service.Create(in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, customer)
}

func (c *CustomerController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "customer not found")
		return
	}
	var in services.UpdateCustomerInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	customer, err := c.service.Update(id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, customer)
}

func (c *CustomerController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "customer not found")
		return
	}
	if err := c.service.Delete(id); err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, map[string]bool{"deleted": true})
}
