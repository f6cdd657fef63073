// Package controllers holds the HTTP handlers. Controllers bind and
// decode requests, call a service and translate the service's error
// kind to a status code. No business rules live here.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/stockroomhq/stockroom/pkg/apperr"
	"github.com/stockroomhq/stockroom/pkg/logger"
	"github.com/stockroomhq/stockroom/pkg/response"
	"github.com/stockroomhq/stockroom/pkg/router"
)

// pathID reads the {id} route parameter as a positive integer.
func pathID(r *http.Request) (uint, bool) {
	raw := router.Param(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// respondError maps a service error to its HTTP shape. Unknown errors
// are logged with the request context and surfaced as a generic 500.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	if e, ok := apperr.As(err); ok {
		switch e.Kind {
		case apperr.KindValidation:
			response.ValidationError(w, e.Fields)
			return
		case apperr.KindConflict:
			response.Conflict(w, e.Message)
			return
		case apperr.KindNotFound:
			response.NotFound(w, e.Message)
			return
		}
	}
	logger.WithCtx(r.Context()).Error("request failed",
		"method", r.Method, "path", r.URL.Path, "error", err)
	response.Internal(w)
}
