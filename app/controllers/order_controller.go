package controllers

import (
	"net/http"

	"github.com/stockroomhq/stockroom/app/services"
	"github.com/stockroomhq/stockroom/pkg/bind"
	"github.com/stockroomhq/stockroom/pkg/response"
)

// OrderController serves the /api/orders endpoints.
type OrderController struct {
	service   *services.OrderService
	dashboard *services.DashboardService
}

func NewOrderController(service *services.OrderService, dashboard *services.DashboardService) *OrderController {
	return &OrderController{service: service, dashboard: dashboard}
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	orders, err := c.service.List()
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, orders)
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "order not found")
		return
	}
	order, err := c.service.Get(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, order)
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	order, err := c.service.Create(in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	c.dashboard.Invalidate()
	response.Created(w, order)
}

func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "order not found")
		return
	}
	var in services.UpdateOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	order, err := c.service.Update(id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	c.dashboard.Invalidate()
	response.Success(w, order)
}

// Cancel handles POST /api/orders/{id}/cancel. Restores stock unless
// the order has already shipped.
func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.NotFound(w, "order not found")
		return
	}
	order, err := c.service.Cancel(id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	c.dashboard.Invalidate()
	response.Success(w, order)
}
