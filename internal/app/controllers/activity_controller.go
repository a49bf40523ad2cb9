package controllers

import (
	"net/http"

	"github.com/gymtrack/gymtrack-api/internal/app/services"
)

type ActivityController struct {
	service *services.ActivityService
}

func NewActivityController(s *services.ActivityService) *ActivityController {
	return &ActivityController{service: s}
}

func (c *ActivityController) List(w http.ResponseWriter, r *http.Request) {
	entries, err := c.service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
