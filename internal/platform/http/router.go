package http

import (
	"encoding/json"
	stdhttp "net/http"
	"os"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gymtrack/gymtrack-api/internal/app/controllers"
	"github.com/gymtrack/gymtrack-api/internal/platform/middleware"
	waLog "go.mau.fi/whatsmeow/util/log"
	yaml "gopkg.in/yaml.v3"
)

type RouterConfig struct {
	AuthCtrl      *controllers.AuthController
	MemberCtrl    *controllers.MemberController
	PaymentCtrl   *controllers.PaymentController
	ActivityCtrl  *controllers.ActivityController
	DashboardCtrl *controllers.DashboardController
	Validator     middleware.TokenValidator
	Logger        waLog.Logger
	SwaggerEnable bool
}

func NewRouter(cfg RouterConfig) stdhttp.Handler {
	r := chi.NewRouter()

	r.Use(middleware.CORS)
	r.Use(middleware.Logging(cfg.Logger.Sub("HTTP")))

	r.Get("/", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":      "ok",
			"name":        "GymTrack API",
			"version":     "0.1.0",
			"description": "gym membership management backend",
			"endpoints": map[string]string{
				"health":        "/health",
				"login":         "/api/auth/login",
				"members":       "/api/members",
				"payments":      "/api/payments",
				"activities":    "/api/activities",
				"dashboard":     "/api/dashboard",
				"documentation": "/docs",
				"openapi_yaml":  "/openapi.yaml",
				"openapi_json":  "/openapi.json",
			},
		})
	})

	r.Get("/health", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	if cfg.SwaggerEnable {
		registerDocs(r)
	}

	r.Post("/api/auth/login", cfg.AuthCtrl.Login)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Auth(cfg.Validator))

		api.Route("/members", func(m chi.Router) {
			m.Get("/", cfg.MemberCtrl.List)
			m.Post("/", cfg.MemberCtrl.Create)
			m.Get("/export", cfg.MemberCtrl.Export)
			m.Post("/remind-overdue", cfg.MemberCtrl.RemindOverdue)
			m.Get("/{id}", cfg.MemberCtrl.Get)
			m.Put("/{id}", cfg.MemberCtrl.Update)
			m.Put("/{id}/payment", cfg.MemberCtrl.UpdatePayment)
			m.Delete("/{id}", cfg.MemberCtrl.Delete)
			m.Post("/{id}/remind", cfg.MemberCtrl.Remind)
		})

		api.Route("/payments", func(p chi.Router) {
			p.Get("/", cfg.PaymentCtrl.List)
			p.Post("/", cfg.PaymentCtrl.Create)
			p.Put("/{id}", cfg.PaymentCtrl.Update)
			p.Delete("/{id}", cfg.PaymentCtrl.Delete)
		})

		api.Get("/activities", cfg.ActivityCtrl.List)
		api.Get("/dashboard", cfg.DashboardCtrl.Stats)
	})

	return r
}

func registerDocs(r chi.Router) {
	var (
		once     sync.Once
		yamlData []byte
		yamlErr  error
	)
	loadYAML := func() ([]byte, error) {
		once.Do(func() { yamlData, yamlErr = os.ReadFile("docs/openapi.yaml") })
		return yamlData, yamlErr
	}

	r.Get("/openapi.yaml", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		data, err := loadYAML()
		if err != nil {
			w.WriteHeader(stdhttp.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(data)
	})

	r.Get("/openapi.json", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		data, err := loadYAML()
		if err != nil {
			w.WriteHeader(stdhttp.StatusNotFound)
			return
		}
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			w.WriteHeader(stdhttp.StatusInternalServerError)
			return
		}
		jsonBytes, err := json.Marshal(v)
		if err != nil {
			w.WriteHeader(stdhttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(jsonBytes)
	})

	r.Get("/docs", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<!DOCTYPE html><html><head><title>API Docs</title><link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css"/></head><body><div id="swagger-ui"></div><script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script><script>window.onload=()=>{SwaggerUIBundle({url:'/openapi.yaml',dom_id:'#swagger-ui'});};</script></body></html>`))
	})
}
