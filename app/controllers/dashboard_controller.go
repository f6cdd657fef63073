package controllers

import (
	"net/http"

	"github.com/stockroomhq/stockroom/app/services"
	"github.com/stockroomhq/stockroom/pkg/response"
)

// DashboardController serves GET /api/dashboard/summary.
type DashboardController struct {
	service *services.DashboardService
}

func NewDashboardController(service *services.DashboardService) *DashboardController {
	return &DashboardController{service: service}
}

func (c *DashboardController) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.service.Summary()
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, summary)
}
