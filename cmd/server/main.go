package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gymtrack/gymtrack-api/internal/app/controllers"
	"github.com/gymtrack/gymtrack-api/internal/app/repositories"
	"github.com/gymtrack/gymtrack-api/internal/app/services"
	"github.com/gymtrack/gymtrack-api/internal/config"
	"github.com/gymtrack/gymtrack-api/internal/platform/database"
	httpPlatform "github.com/gymtrack/gymtrack-api/internal/platform/http"
	"github.com/gymtrack/gymtrack-api/internal/platform/whatsapp"
	"github.com/gymtrack/gymtrack-api/pkg/journal"
	"github.com/gymtrack/gymtrack-api/pkg/logger"
	storagepkg "github.com/gymtrack/gymtrack-api/pkg/storage"
	minioStorage "github.com/gymtrack/gymtrack-api/pkg/storage/minio"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.MustLoad()
	loggers := logger.New("INFO")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Printf("configuration: driver=%s env=%s", cfg.DBDriver, cfg.Env)

	var objectStorage storagepkg.Service
	if cfg.Storage.Enabled() {
		store, err := minioStorage.New(ctx, minioStorage.Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			UseSSL:    cfg.Storage.UseSSL,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			log.Fatalf("storage initialization error: %v", err)
		}
		objectStorage = store
		log.Printf("object storage enabled bucket=%s endpoint=%s", cfg.Storage.Bucket, cfg.Storage.Endpoint)
	}

	var (
		memberRepo   repositories.MemberRepository
		paymentRepo  repositories.PaymentRepository
		activityRepo repositories.ActivityRepository
		dbClose      func() error
	)

	switch cfg.DBDriver {
	case "postgres", "sqlite":
		log.Printf("initializing %s repositories with GORM", cfg.DBDriver)
		db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("database connection error: %v", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("database handle retrieval error: %v", err)
		}
		dbClose = sqlDB.Close

		memberRepo, err = repositories.NewGormMemberRepo(db)
		if err != nil {
			log.Fatalf("member repository initialization error: %v", err)
		}
		paymentRepo, err = repositories.NewGormPaymentRepo(db)
		if err != nil {
			log.Fatalf("payment repository initialization error: %v", err)
		}

		if cfg.DBDriver == "postgres" {
			activityRepo, err = repositories.NewPostgresActivityRepo(sqlDB)
			if err != nil {
				log.Fatalf("activity repository initialization error: %v", err)
			}
		}
	case "mongo":
		log.Printf("initializing mongo repositories db=%s", cfg.MongoDatabase)
		mongoDB, closeFn, err := database.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			log.Fatalf("mongo connection error: %v", err)
		}
		dbClose = closeFn

		memberRepo, err = repositories.NewMongoMemberRepo(ctx, mongoDB)
		if err != nil {
			log.Fatalf("member repository initialization error: %v", err)
		}
		paymentRepo, err = repositories.NewMongoPaymentRepo(ctx, mongoDB)
		if err != nil {
			log.Fatalf("payment repository initialization error: %v", err)
		}
		activityRepo = repositories.NewMongoActivityRepo(mongoDB)
	default:
		log.Printf("initializing in-memory repositories")
		memberRepo = repositories.NewInMemoryMemberRepo()
		paymentRepo = repositories.NewInMemoryPaymentRepo()
	}
	if activityRepo == nil {
		activityRepo = repositories.NewInMemoryActivityRepo()
	}

	if dbClose != nil {
		defer func() {
			if err := dbClose(); err != nil {
				log.Printf("error closing database: %v", err)
			}
		}()
	}

	var gateway whatsapp.Gateway
	switch cfg.WhatsApp.Provider {
	case "meta":
		g, err := whatsapp.NewMetaGateway(nil, whatsapp.MetaConfig{
			PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
			AccessToken:   cfg.WhatsApp.AccessToken,
		}, loggers.App.Sub("WA"))
		if err != nil {
			log.Fatalf("whatsapp gateway initialization error: %v", err)
		}
		gateway = g
		log.Printf("whatsapp provider: meta cloud API")
	case "meow":
		g, disconnect, err := whatsapp.NewMeowGateway(ctx, whatsapp.MeowConfig{
			DataDir:     cfg.WhatsApp.DataDir,
			SessionName: cfg.WhatsApp.SessionName,
		}, loggers.App.Sub("WA"))
		if err != nil {
			log.Fatalf("whatsapp gateway initialization error: %v", err)
		}
		defer disconnect()
		gateway = g
		log.Printf("whatsapp provider: native session %q", cfg.WhatsApp.SessionName)
	default:
		gateway = whatsapp.NewDisabledGateway()
		log.Printf("whatsapp provider: disabled")
	}

	reminderJournal := journal.NewWriter(cfg.JournalDir, loggers.App.Sub("Journal"))

	activitySvc := services.NewActivityService(activityRepo, loggers.App.Sub("Activity"))
	recon := services.NewReconciler(memberRepo, loggers.App.Sub("Reconciler"))
	memberSvc := services.NewMemberService(memberRepo, activitySvc, recon, cfg.Gym)
	reminderSvc := services.NewReminderService(memberRepo, gateway, reminderJournal, cfg.Gym, loggers.App.Sub("Reminder"))
	paymentSvc := services.NewPaymentService(paymentRepo, activitySvc)
	dashboardSvc := services.NewDashboardService(memberRepo)
	exporter := services.NewExporter(memberRepo, objectStorage, loggers.App)

	authSvc, err := services.NewAuthService(cfg.Admin)
	if err != nil {
		log.Fatalf("auth initialization error: %v", err)
	}

	// Catch up on members that went overdue while the server was down,
	// then keep the daily pass running.
	if _, err := recon.Run(ctx); err != nil {
		log.Printf("startup reconcile error: %v", err)
	}
	scheduler := services.NewScheduler(recon, reminderSvc, cfg.Gym.ReminderHour, loggers.App)
	scheduler.Start(ctx)

	router := httpPlatform.NewRouter(httpPlatform.RouterConfig{
		AuthCtrl:      controllers.NewAuthController(authSvc),
		MemberCtrl:    controllers.NewMemberController(memberSvc, reminderSvc, exporter),
		PaymentCtrl:   controllers.NewPaymentController(paymentSvc),
		ActivityCtrl:  controllers.NewActivityController(activitySvc),
		DashboardCtrl: controllers.NewDashboardController(dashboardSvc),
		Validator:     authSvc,
		Logger:        loggers.HTTP,
		SwaggerEnable: cfg.SwaggerEnable,
	})

	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: router}
	go func() {
		log.Printf("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down...")
	cancel()
	_ = srv.Shutdown(context.Background())
}
