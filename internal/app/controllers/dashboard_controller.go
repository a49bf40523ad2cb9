package controllers

import (
	"net/http"

	"github.com/gymtrack/gymtrack-api/internal/app/services"
)

type DashboardController struct {
	service *services.DashboardService
}

func NewDashboardController(s *services.DashboardService) *DashboardController {
	return &DashboardController{service: s}
}

func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
