package controllers

import (
	"net/http"
	"strconv"

	"github.com/stockroomhq/stockroom/app/services"
	"github.com/stockroomhq/stockroom/pkg/bind"
	"github.com/stockroomhq/stockroom/pkg/response"
)

// StockController serves the /api/stock endpoints.
type StockController struct {
	service *services.StockService
}

func NewStockController(service *services.StockService) *StockController {
	return &StockController{service: service}
}

// Movements handles GET /api/stock/movements with optional item_id and
// limit filters.
func (c *StockController) Movements(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var itemID uint
	if raw := q.Get("item_id"); raw != "" {
		if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
			itemID = uint(n)
		}
	}
	limit := 50
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	movements, err := c.service.Movements(itemID, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, movements)
}

// Record handles POST /api/stock/movements.
func (c *StockController) Record(w http.ResponseWriter, r *http.Request) {
	var in services.RecordMovementInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	movement, err := c.service.Record(in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, movement)
}

// Levels handles GET /api/stock/levels.
func (c *StockController) Levels(w http.ResponseWriter, r *http.Request) {
	levels, err := c.service.Levels()
	if err != nil {
		respondError(w, r, err)
		return
	}
	if r.URL.Query().Get("low_stock_only") == "true" {
		low := levels[:0:0]
		for _, l := range levels {
			if l.LowStock {
				low = append(low, l)
			}
		}
		if low == nil {
			low = []services.StockLevel{}
		}
		levels = low
	}
	response.Success(w, levels)
}
