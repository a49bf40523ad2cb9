package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gymtrack/gymtrack-api/internal/app/controllers"
	"github.com/gymtrack/gymtrack-api/internal/app/repositories"
	"github.com/gymtrack/gymtrack-api/internal/app/services"
	"github.com/gymtrack/gymtrack-api/internal/config"
	"github.com/gymtrack/gymtrack-api/internal/domain/member"
	httpPlatform "github.com/gymtrack/gymtrack-api/internal/platform/http"
	"github.com/gymtrack/gymtrack-api/pkg/logger"
)

type recordingGateway struct {
	sent []string
}

func (g *recordingGateway) SendText(ctx context.Context, phone, body string) error {
	g.sent = append(g.sent, phone)
	return nil
}

func newTestAPI(t *testing.T) (http.Handler, *recordingGateway) {
	t.Helper()
	log := logger.InitForTests()
	gw := &recordingGateway{}

	memberRepo := repositories.NewInMemoryMemberRepo()
	gymCfg := config.GymConfig{Name: "Iron Temple", CountryCode: "91", Currency: "₹", DefaultAmount: 1000}

	activitySvc := services.NewActivityService(repositories.NewInMemoryActivityRepo(), log.App)
	recon := services.NewReconciler(memberRepo, log.App)
	memberSvc := services.NewMemberService(memberRepo, activitySvc, recon, gymCfg)
	reminderSvc := services.NewReminderService(memberRepo, gw, nil, gymCfg, log.App)
	paymentSvc := services.NewPaymentService(repositories.NewInMemoryPaymentRepo(), activitySvc)
	dashboardSvc := services.NewDashboardService(memberRepo)
	exporter := services.NewExporter(memberRepo, nil, log.App)

	authSvc, err := services.NewAuthService(config.AdminConfig{
		Username: "admin", Password: "s3cret", JWTSecret: "integration-key",
	})
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}

	router := httpPlatform.NewRouter(httpPlatform.RouterConfig{
		AuthCtrl:      controllers.NewAuthController(authSvc),
		MemberCtrl:    controllers.NewMemberController(memberSvc, reminderSvc, exporter),
		PaymentCtrl:   controllers.NewPaymentController(paymentSvc),
		ActivityCtrl:  controllers.NewActivityController(activitySvc),
		DashboardCtrl: controllers.NewDashboardController(dashboardSvc),
		Validator:     authSvc,
		Logger:        log.HTTP,
	})
	return router, gw
}

func request(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := request(t, h, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin", "password": "s3cret",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return resp.Token
}

func TestAPIRejectsMissingToken(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := request(t, h, http.MethodGet, "/api/members", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", rec.Code)
	}
	rec = request(t, h, http.MethodGet, "/api/members", "bogus-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token got %d", rec.Code)
	}
}

func TestMemberLifecycleFlow(t *testing.T) {
	h, gw := newTestAPI(t)
	token := login(t, h)

	// Create a member whose membership already lapsed.
	pastDue := time.Now().UTC().AddDate(0, 0, -5)
	rec := request(t, h, http.MethodPost, "/api/members", token, map[string]any{
		"name":    "Ravi",
		"phone":   "98765 43210",
		"dueDate": pastDue.Format(time.RFC3339),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create member: %d %s", rec.Code, rec.Body.String())
	}
	var created member.Member
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Listing reconciles: the lapsed member comes back Overdue.
	rec = request(t, h, http.MethodGet, "/api/members", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list members: %d", rec.Code)
	}
	var listed []member.Member
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].Payment != member.PaymentOverdue {
		t.Fatalf("expected one overdue member, got %+v", listed)
	}

	// Batch reminder reaches the gateway with the normalized number.
	rec = request(t, h, http.MethodPost, "/api/members/remind-overdue", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remind overdue: %d", rec.Code)
	}
	var report services.BatchReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Sent != 1 || report.Failed != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(gw.sent) != 1 || gw.sent[0] != "919876543210" {
		t.Fatalf("expected delivery to 919876543210, got %v", gw.sent)
	}

	// Settling the payment clears the overdue flag and stamps the date.
	rec = request(t, h, http.MethodPut, "/api/members/"+string(created.ID)+"/payment", token, map[string]string{
		"payment": "Paid",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update payment: %d %s", rec.Code, rec.Body.String())
	}
	var paid member.Member
	if err := json.Unmarshal(rec.Body.Bytes(), &paid); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if paid.Payment != member.PaymentPaid || paid.PaymentDate == nil {
		t.Fatalf("expected settled member, got %+v", paid)
	}

	// A paid member cannot be reminded again.
	rec = request(t, h, http.MethodPost, "/api/members/"+string(created.ID)+"/remind", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 reminding paid member got %d", rec.Code)
	}

	// Dashboard reflects the settled revenue.
	rec = request(t, h, http.MethodGet, "/api/dashboard", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard: %d", rec.Code)
	}
	var stats services.DashboardStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalMembers != 1 || stats.TotalRevenue != 1000 || stats.OverduePayments != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	// Activity log captured the lifecycle.
	rec = request(t, h, http.MethodGet, "/api/activities", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("activities: %d", rec.Code)
	}
}
