package controllers

import (
	"net/http"
	"time"

	"github.com/stockroomhq/stockroom/app/services"
	"github.com/stockroomhq/stockroom/pkg/bind"
	"github.com/stockroomhq/stockroom/pkg/response"
)

// ReportController serves the /api/reports endpoints.
type ReportController struct {
	service *services.ReportService
}

func NewReportController(service *services.ReportService) *ReportController {
	return &ReportController{service: service}
}

// Valuation handles GET /api/reports/valuation.
func (c *ReportController) Valuation(w http.ResponseWriter, r *http.Request) {
	v, err := c.service.Valuation()
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, v)
}

// parseDateParam accepts RFC3339 or a bare date.
func parseDateParam(raw string) *time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// Sales handles GET /api/reports/sales?from=...&to=... Malformed dates
// are ignored, widening the range rather than failing.
func (c *ReportController) Sales(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var from, to *time.Time
	if raw := q.Get("from"); raw != "" {
		from = parseDateParam(raw)
	}
	if raw := q.Get("to"); raw != "" {
		to = parseDateParam(raw)
	}
	summary, err := c.service.Sales(from, to)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, summary)
}

type exportRequest struct {
	Disk string `json:"disk" validate:"nullable,in=local,s3"`
}

// Export handles POST /api/reports/export. The body may pick a storage
// disk; an empty body exports to the default disk.
func (c *ReportController) Export(w http.ResponseWriter, r *http.Request) {
	var in exportRequest
	if r.ContentLength > 0 {
		if errs, err := bind.JSON(r, &in); err != nil {
			response.BadRequest(w, err.Error())
			return
		} else if errs != nil {
			response.ValidationError(w, errs)
			return
		}
	}
	result, err := c.service.ExportCSV(in.Disk)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, result)
}
