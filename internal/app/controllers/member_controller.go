package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gymtrack/gymtrack-api/internal/app/repositories"
	"github.com/gymtrack/gymtrack-api/internal/app/services"
	"github.com/gymtrack/gymtrack-api/internal/domain/member"
	"github.com/gymtrack/gymtrack-api/internal/platform/whatsapp"
)

type MemberController struct {
	service   *services.MemberService
	reminders *services.ReminderService
	exporter  *services.Exporter
}

func NewMemberController(s *services.MemberService, r *services.ReminderService, e *services.Exporter) *MemberController {
	return &MemberController{service: s, reminders: r, exporter: e}
}

func (c *MemberController) List(w http.ResponseWriter, r *http.Request) {
	members, err := c.service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (c *MemberController) Get(w http.ResponseWriter, r *http.Request) {
	m, err := c.service.Get(r.Context(), memberID(r))
	if err != nil {
		c.writeMemberError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (c *MemberController) Create(w http.ResponseWriter, r *http.Request) {
	var in member.CreateMemberInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	m, err := c.service.Create(r.Context(), in)
	if err != nil {
		c.writeMemberError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (c *MemberController) Update(w http.ResponseWriter, r *http.Request) {
	var in member.UpdateMemberInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	m, err := c.service.Update(r.Context(), memberID(r), in)
	if err != nil {
		c.writeMemberError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type updatePaymentRequest struct {
	Payment string `json:"payment"`
}

func (c *MemberController) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var in updatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	m, err := c.service.UpdatePayment(r.Context(), memberID(r), in.Payment)
	if err != nil {
		c.writeMemberError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (c *MemberController) Delete(w http.ResponseWriter, r *http.Request) {
	m, err := c.service.Delete(r.Context(), memberID(r))
	if err != nil {
		c.writeMemberError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "member deleted",
		"member":  m,
	})
}

type remindRequest struct {
	Message string `json:"message"`
}

func (c *MemberController) Remind(w http.ResponseWriter, r *http.Request) {
	var in remindRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	err := c.reminders.Remind(r.Context(), memberID(r), in.Message)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, err)
		case errors.Is(err, services.ErrAlreadyPaid):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, whatsapp.ErrDisabled), errors.Is(err, whatsapp.ErrNotConnected):
			writeError(w, http.StatusServiceUnavailable, err)
		default:
			writeError(w, http.StatusBadGateway, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "reminder sent"})
}

func (c *MemberController) RemindOverdue(w http.ResponseWriter, r *http.Request) {
	report := c.reminders.RemindOverdue(r.Context(), "manual")
	writeJSON(w, http.StatusOK, report)
}

func (c *MemberController) Export(w http.ResponseWriter, r *http.Request) {
	result, err := c.exporter.ExportMembers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if result.URL != "" {
		writeJSON(w, http.StatusOK, map[string]string{
			"filename": result.Filename,
			"url":      result.URL,
		})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}

func (c *MemberController) writeMemberError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repositories.ErrMemberNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, services.ErrValidation):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func memberID(r *http.Request) member.ID {
	return member.ID(strings.TrimSpace(chi.URLParam(r, "id")))
}
