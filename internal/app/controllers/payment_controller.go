package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gymtrack/gymtrack-api/internal/app/repositories"
	"github.com/gymtrack/gymtrack-api/internal/app/services"
	"github.com/gymtrack/gymtrack-api/internal/domain/payment"
)

type PaymentController struct {
	service *services.PaymentService
}

func NewPaymentController(s *services.PaymentService) *PaymentController {
	return &PaymentController{service: s}
}

func (c *PaymentController) List(w http.ResponseWriter, r *http.Request) {
	payments, err := c.service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (c *PaymentController) Create(w http.ResponseWriter, r *http.Request) {
	var in payment.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := c.service.Create(r.Context(), in)
	if err != nil {
		c.writePaymentError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (c *PaymentController) Update(w http.ResponseWriter, r *http.Request) {
	var in payment.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p, err := c.service.Update(r.Context(), paymentID(r), in)
	if err != nil {
		c.writePaymentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (c *PaymentController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), paymentID(r)); err != nil {
		c.writePaymentError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "payment deleted"})
}

func (c *PaymentController) writePaymentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repositories.ErrPaymentNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, services.ErrValidation):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func paymentID(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}
