package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gymtrack/gymtrack-api/internal/app/repositories"
	"github.com/gymtrack/gymtrack-api/internal/app/services"
	"github.com/gymtrack/gymtrack-api/internal/config"
	"github.com/gymtrack/gymtrack-api/internal/domain/member"
	waLog "go.mau.fi/whatsmeow/util/log"
)

func newMemberTestServer(t *testing.T) (*chi.Mux, repositories.MemberRepository) {
	t.Helper()
	repo := repositories.NewInMemoryMemberRepo()
	activity := services.NewActivityService(repositories.NewInMemoryActivityRepo(), waLog.Noop)
	recon := services.NewReconciler(repo, waLog.Noop)
	memberSvc := services.NewMemberService(repo, activity, recon, config.GymConfig{DefaultAmount: 1000})
	reminderSvc := services.NewReminderService(repo, nil, nil, config.GymConfig{CountryCode: "91"}, waLog.Noop)
	exporter := services.NewExporter(repo, nil, waLog.Noop)
	ctrl := NewMemberController(memberSvc, reminderSvc, exporter)

	r := chi.NewRouter()
	r.Get("/api/members", ctrl.List)
	r.Post("/api/members", ctrl.Create)
	r.Get("/api/members/export", ctrl.Export)
	r.Post("/api/members/remind-overdue", ctrl.RemindOverdue)
	r.Get("/api/members/{id}", ctrl.Get)
	r.Put("/api/members/{id}", ctrl.Update)
	r.Put("/api/members/{id}/payment", ctrl.UpdatePayment)
	r.Delete("/api/members/{id}", ctrl.Delete)
	r.Post("/api/members/{id}/remind", ctrl.Remind)
	return r, repo
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateMemberEndpoint(t *testing.T) {
	r, _ := newMemberTestServer(t)

	rec := doJSON(t, r, http.MethodPost, "/api/members", map[string]any{
		"name":  "Asha",
		"phone": "9876543210",
		"plan":  "Monthly",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}

	var m member.Member
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.ID == "" || m.Payment != member.PaymentPending {
		t.Fatalf("unexpected member: %+v", m)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/members", map[string]any{"phone": "1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name got %d", rec.Code)
	}
}

func TestGetMemberNotFound(t *testing.T) {
	r, _ := newMemberTestServer(t)

	rec := doJSON(t, r, http.MethodGet, "/api/members/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestUpdatePaymentEndpoint(t *testing.T) {
	r, repo := newMemberTestServer(t)
	ctx := context.Background()
	if err := repo.Create(ctx, &member.Member{ID: "m1", Name: "x", Phone: "1", Payment: member.PaymentPending}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := doJSON(t, r, http.MethodPut, "/api/members/m1/payment", map[string]string{"payment": "paid"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var m member.Member
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Payment != member.PaymentPaid || m.PaymentDate == nil {
		t.Fatalf("expected Paid with payment date, got %+v", m)
	}

	rec = doJSON(t, r, http.MethodPut, "/api/members/m1/payment", map[string]string{"payment": "cancelled"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status got %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodPut, "/api/members/nope/payment", map[string]string{"payment": "paid"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestRemindEndpointStatusMapping(t *testing.T) {
	r, repo := newMemberTestServer(t)
	ctx := context.Background()
	due := time.Now().UTC().AddDate(0, 0, -1)
	seed := []*member.Member{
		{ID: "paid", Name: "p", Phone: "1", Payment: member.PaymentPaid},
		{ID: "due", Name: "d", Phone: "1", Payment: member.PaymentOverdue, DueDate: &due},
	}
	for _, m := range seed {
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	rec := doJSON(t, r, http.MethodPost, "/api/members/paid/remind", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for paid member got %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodPost, "/api/members/nope/remind", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	// Gateway is disabled in this setup.
	rec = doJSON(t, r, http.MethodPost, "/api/members/due/remind", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with disabled gateway got %d", rec.Code)
	}
}

func TestRemindOverdueEndpoint(t *testing.T) {
	r, repo := newMemberTestServer(t)
	ctx := context.Background()
	due := time.Now().UTC().AddDate(0, 0, -1)
	if err := repo.Create(ctx, &member.Member{ID: "m1", Name: "x", Phone: "1", Payment: member.PaymentOverdue, DueDate: &due}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := doJSON(t, r, http.MethodPost, "/api/members/remind-overdue", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var report services.BatchReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Disabled gateway: the member is recorded as failed, not dropped.
	if report.Failed != 1 || len(report.Results) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestExportEndpoint(t *testing.T) {
	r, repo := newMemberTestServer(t)
	if err := repo.Create(context.Background(), &member.Member{ID: "m1", Name: "x", Phone: "1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := doJSON(t, r, http.MethodGet, "/api/members/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("expected text/csv got %q", ct)
	}
	if rec.Header().Get("Content-Disposition") == "" {
		t.Fatalf("expected attachment disposition")
	}
}

func TestDeleteMemberEndpoint(t *testing.T) {
	r, repo := newMemberTestServer(t)
	if err := repo.Create(context.Background(), &member.Member{ID: "m1", Name: "x", Phone: "1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := doJSON(t, r, http.MethodDelete, "/api/members/m1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodDelete, "/api/members/m1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on double delete got %d", rec.Code)
	}
}
