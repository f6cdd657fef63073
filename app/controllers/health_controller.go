package controllers

import (
	"net/http"
	"time"

	"github.com/stockroomhq/stockroom/pkg/response"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Health handles GET /health.
func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
